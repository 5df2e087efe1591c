package registry

import (
	"testing"

	"github.com/vovakirdan/games-hub/internal/core"
)

type fakeGame struct{ resets int }

func (g *fakeGame) ID() string                           { return "fake" }
func (g *fakeGame) Title() string                        { return "Fake Game" }
func (g *fakeGame) Description() string                  { return "for tests" }
func (g *fakeGame) Reset(core.RuntimeConfig)             { g.resets++ }
func (g *fakeGame) Step(core.FrameInput) core.StepResult { return core.StepResult{} }
func (g *fakeGame) Render(*core.Screen)                  {}
func (g *fakeGame) State() core.GameState                { return core.GameState{} }

func TestRegisterAndCreate(t *testing.T) {
	Register("registry-test", func() Game { return &fakeGame{} })

	if !Exists("registry-test") {
		t.Fatal("registered game should exist")
	}

	var found bool
	for _, info := range List() {
		if info.ID == "registry-test" {
			found = true
			if info.Title != "Fake Game" || info.Description != "for tests" {
				t.Errorf("info = %+v", info)
			}
		}
	}
	if !found {
		t.Error("List() should include registered game")
	}

	g, err := Create("registry-test")
	if err != nil {
		t.Fatalf("Create() failed: %v", err)
	}
	if g.Title() != "Fake Game" {
		t.Errorf("Create() returned %q", g.Title())
	}
}

func TestCreateUnknown(t *testing.T) {
	if _, err := Create("does-not-exist"); err == nil {
		t.Error("Create() of unknown game should error")
	}
}

func TestRegisterDuplicatePanics(t *testing.T) {
	Register("registry-dup", func() Game { return &fakeGame{} })

	defer func() {
		if recover() == nil {
			t.Error("duplicate Register should panic")
		}
	}()
	Register("registry-dup", func() Game { return &fakeGame{} })
}

func TestRegisterEmptyIDPanics(t *testing.T) {
	defer func() {
		if recover() == nil {
			t.Error("Register with an empty id should panic")
		}
	}()
	Register("", func() Game { return &fakeGame{} })
}

func TestListSorted(t *testing.T) {
	Register("registry-b", func() Game { return &fakeGame{} })
	Register("registry-a", func() Game { return &fakeGame{} })

	list := List()
	for i := 1; i < len(list); i++ {
		if list[i-1].ID > list[i].ID {
			t.Errorf("List() not sorted: %q before %q", list[i-1].ID, list[i].ID)
		}
	}
}

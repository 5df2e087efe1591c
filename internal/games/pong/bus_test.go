package pong

import (
	"io"
	"testing"

	"github.com/charmbracelet/log"

	"github.com/vovakirdan/games-hub/internal/core"
)

func TestBusDeliversInOrder(t *testing.T) {
	bus := NewBus(log.New(io.Discard))

	var got []EventKind
	bus.Subscribe(func(ev Event) { got = append(got, ev.Kind) })
	bus.Subscribe(nil)

	bus.Publish(Event{Kind: EventWallBounce}, Event{Kind: EventPaddleHit}, Event{Kind: EventPointScored})

	expected := []EventKind{EventWallBounce, EventPaddleHit, EventPointScored}
	if len(got) != len(expected) {
		t.Fatalf("got %v, expected %v", got, expected)
	}
	for i := range expected {
		if got[i] != expected[i] {
			t.Errorf("event %d = %v, expected %v", i, got[i], expected[i])
		}
	}
}

func TestBusSurvivesPanickingSubscriber(t *testing.T) {
	bus := NewBus(log.New(io.Discard))

	calls := 0
	bus.Subscribe(func(Event) { panic("boom") })
	bus.Subscribe(func(Event) { calls++ })

	bus.Publish(Event{Kind: EventPaddleHit}, Event{Kind: EventPaddleHit})

	if calls != 2 {
		t.Errorf("second subscriber called %d times, expected 2", calls)
	}
}

func TestParticlesFromEvents(t *testing.T) {
	tests := []struct {
		name  string
		ev    Event
		n     int
		color string
	}{
		{"top wall", Event{Kind: EventWallBounce, Top: true}, WallParticles, "cyan"},
		{"bottom wall", Event{Kind: EventWallBounce}, WallParticles, "pink"},
		{"left paddle", Event{Kind: EventPaddleHit, Side: core.SideLeft}, PaddleParticles, "lime"},
		{"right paddle", Event{Kind: EventPaddleHit, Side: core.SideRight}, PaddleParticles, "pink"},
		{"point", Event{Kind: EventPointScored, Side: core.SideLeft}, 0, ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			p := NewParticles(1)
			p.Handle(tt.ev)

			if p.Len() != tt.n {
				t.Fatalf("spawned %d particles, expected %d", p.Len(), tt.n)
			}
			for _, pt := range p.List() {
				if pt.Color != tt.color || pt.Life != 1 {
					t.Errorf("particle = %+v", pt)
				}
				if pt.VX < -3 || pt.VX > 3 || pt.VY < -3 || pt.VY > 3 {
					t.Errorf("velocity out of spread: %+v", pt)
				}
			}
		})
	}
}

func TestParticlesDecay(t *testing.T) {
	p := NewParticles(1)
	p.Spawn(100, 100, "lime", 5)

	p.Update(0.5)
	if p.Len() != 5 {
		t.Fatalf("particles died early: %d left", p.Len())
	}
	if life := p.List()[0].Life; life < 0.549 || life > 0.551 {
		t.Errorf("life after 0.5s = %v, expected 0.55", life)
	}

	p.Update(0.7)
	if p.Len() != 0 {
		t.Errorf("particles should be gone after 1.2s, %d left", p.Len())
	}
}

func TestAudioCues(t *testing.T) {
	enabled := true
	a := NewAudio(func() bool { return enabled })

	a.Handle(Event{Kind: EventPaddleHit})
	a.Handle(Event{Kind: EventWallBounce})
	a.Handle(Event{Kind: EventPointScored})
	a.Handle(Event{Kind: EventMatchEnded})

	cues := a.Drain()
	expected := []string{CueTick, CueWall, CueScore}
	if len(cues) != len(expected) {
		t.Fatalf("cues = %v, expected %v", cues, expected)
	}
	for i := range expected {
		if cues[i] != expected[i] {
			t.Errorf("cue %d = %q, expected %q", i, cues[i], expected[i])
		}
	}
	if a.Drain() != nil {
		t.Error("Drain should clear pending cues")
	}

	enabled = false
	a.Handle(Event{Kind: EventPaddleHit})
	if a.Drain() != nil {
		t.Error("muted audio must not queue cues")
	}
}

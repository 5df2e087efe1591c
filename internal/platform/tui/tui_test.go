package tui

import (
	"bytes"
	"context"
	"io"
	"strings"
	"testing"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/log"

	"github.com/vovakirdan/games-hub/internal/config"
	"github.com/vovakirdan/games-hub/internal/core"
	"github.com/vovakirdan/games-hub/internal/games/pong"
	"github.com/vovakirdan/games-hub/internal/hub"
	"github.com/vovakirdan/games-hub/internal/storage"
)

func newTestHub(t *testing.T) (*hub.Hub, *hub.Player) {
	t.Helper()
	backend, err := storage.OpenBackend(context.Background(), storage.Options{Backend: "memory"})
	if err != nil {
		t.Fatal(err)
	}
	h := hub.New(backend, config.DefaultPongConfig(), log.New(io.Discard))
	p, err := h.Player(context.Background(), hub.LocalPlayer)
	if err != nil {
		t.Fatal(err)
	}
	return h, p
}

func keyMsg(s string) tea.KeyMsg {
	switch s {
	case "enter":
		return tea.KeyMsg{Type: tea.KeyEnter}
	case "esc":
		return tea.KeyMsg{Type: tea.KeyEsc}
	case "down":
		return tea.KeyMsg{Type: tea.KeyDown}
	}
	return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(s)}
}

func TestKeyMapActions(t *testing.T) {
	keys := DefaultKeyMap()
	tests := []struct {
		key      string
		expected core.Action
	}{
		{"w", core.ActionUp},
		{"down", core.ActionDown},
		{"enter", core.ActionConfirm},
		{"p", core.ActionPause},
		{"r", core.ActionRestart},
		{"esc", core.ActionBack},
		{"q", core.ActionQuit},
		{"x", core.ActionNone},
	}

	for _, tt := range tests {
		if got := keys.Action(keyMsg(tt.key)); got != tt.expected {
			t.Errorf("Action(%q) = %v, expected %v", tt.key, got, tt.expected)
		}
	}
}

func TestKeyHold(t *testing.T) {
	var h keyHold
	now := time.Now()

	h.press(core.ActionUp, now)
	if up, down := h.held(now.Add(50 * time.Millisecond)); !up || down {
		t.Errorf("held = (%v, %v) shortly after press", up, down)
	}
	if up, _ := h.held(now.Add(keyHoldDuration)); up {
		t.Error("key should expire after the hold duration")
	}

	h.press(core.ActionDown, now)
	if up, down := h.held(now); up || !down {
		t.Error("pressing down should release up")
	}

	h.release()
	if up, down := h.held(now); up || down {
		t.Error("release should clear both directions")
	}
}

func TestGameModelPlaysPong(t *testing.T) {
	h, p := newTestHub(t)
	game := pong.NewWithServices(h.Services(p))
	var bell bytes.Buffer

	m := NewGameModel(game, core.RuntimeConfig{ScreenW: 80, ScreenH: 24, TickRate: 60, Seed: 1}, &bell)
	m.Init()

	step := func(msg tea.Msg) {
		next, _ := m.Update(msg)
		m = next.(GameModel)
	}

	start := time.Now()
	step(keyMsg("enter"))
	step(TickMsg(start))
	if !m.State().Active {
		t.Fatal("enter should start the match")
	}

	step(keyMsg("esc"))
	step(TickMsg(start.Add(16 * time.Millisecond)))
	if !m.State().Paused {
		t.Fatal("esc during play should pause")
	}

	if !strings.Contains(m.View(), "PAUSED") {
		t.Error("paused view should show the overlay")
	}

	step(keyMsg("esc"))
	step(TickMsg(start.Add(32 * time.Millisecond)))
	if m.BackToMenu() {
		t.Fatal("esc while paused should not leave the game")
	}
	if m.State().Paused || !m.State().Active {
		t.Fatal("esc while paused should resume")
	}

	step(keyMsg("p"))
	step(TickMsg(start.Add(48 * time.Millisecond)))
	if !m.State().Paused {
		t.Fatal("p should pause")
	}
	step(keyMsg("b"))
	if !m.BackToMenu() {
		t.Error("b while paused should leave the game")
	}
}

func TestGameModelMouseDrag(t *testing.T) {
	h, p := newTestHub(t)
	game := pong.NewWithServices(h.Services(p))
	m := NewGameModel(game, core.RuntimeConfig{ScreenW: 80, ScreenH: 24, Seed: 1}, nil)
	m.Init()

	m.Update(tea.MouseMsg{X: 3, Y: 5, Button: tea.MouseButtonLeft, Action: tea.MouseActionPress})
	if in := m.pointer.Snapshot(); !in.PointerActive || in.PointerY != 5 {
		t.Errorf("press: %+v", in)
	}
	m.Update(tea.MouseMsg{X: 3, Y: 9, Button: tea.MouseButtonLeft, Action: tea.MouseActionMotion})
	if in := m.pointer.Snapshot(); in.PointerY != 9 {
		t.Errorf("drag: %+v", in)
	}
	m.Update(tea.MouseMsg{X: 3, Y: 9, Action: tea.MouseActionRelease})
	if m.pointer.Snapshot().PointerActive {
		t.Error("release should return control to the keys")
	}
}

func TestMenuSettings(t *testing.T) {
	_, p := newTestHub(t)
	m := NewMenuModel(p, 80, 24)

	for i, item := range m.items {
		if item.kind == itemDifficulty {
			m.cursor = i
		}
	}
	next, _ := m.Update(keyMsg("enter"))
	m = next.(MenuModel)

	if d := p.Settings.Difficulty(); d != config.DifficultyHard {
		t.Errorf("difficulty = %v, expected hard after one step from normal", d)
	}
	if !strings.Contains(m.View(), "Difficulty: hard") {
		t.Error("menu should show the new difficulty")
	}
	if m.Choice() != ChoiceNone {
		t.Error("adjusting a setting is not a navigation choice")
	}
}

func TestMenuPlayChoice(t *testing.T) {
	_, p := newTestHub(t)
	m := NewMenuModel(p, 80, 24)

	next, _ := m.Update(keyMsg("enter"))
	m = next.(MenuModel)

	if m.Choice() != ChoicePlay || m.GameID() != "pong" {
		t.Errorf("choice = %v game = %q", m.Choice(), m.GameID())
	}
}

func TestShopBuyAndEquip(t *testing.T) {
	_, p := newTestHub(t)
	m := NewShopModel(p, 80, 24)

	next, _ := m.Update(keyMsg("enter"))
	m = next.(ShopModel)
	if !strings.Contains(m.status, "Not enough coins") {
		t.Errorf("status = %q, expected insufficient coins", m.status)
	}

	p.Economy.OnMatchEnd(core.SideLeft, 7, 0)
	next, _ = m.Update(keyMsg("enter"))
	m = next.(ShopModel)

	first := m.items[0]
	if !first.Owned || !first.Equipped {
		t.Errorf("first item after purchase = %+v", first)
	}
	if p.Economy.Coins() != 20-first.Price {
		t.Errorf("coins = %d", p.Economy.Coins())
	}
}

func TestSessionNavigation(t *testing.T) {
	h, p := newTestHub(t)
	m := NewSessionModel(h, p, core.RuntimeConfig{ScreenW: 80, ScreenH: 24}, nil)

	update := func(msg tea.Msg) {
		next, _ := m.Update(msg)
		m = next.(SessionModel)
	}

	update(keyMsg("down"))
	update(keyMsg("enter"))
	if m.screen != screenShop {
		t.Fatalf("screen = %v, expected shop", m.screen)
	}

	update(keyMsg("esc"))
	if m.screen != screenMenu {
		t.Fatalf("esc should return to the menu, screen = %v", m.screen)
	}

	update(keyMsg("enter"))
	if m.screen != screenGame || m.game == nil {
		t.Fatal("first menu entry should open the game")
	}
}

func TestRenderScreenKeepsText(t *testing.T) {
	s := core.NewScreen(10, 2)
	s.DrawTextColor(0, 0, "YOU", core.ColorNeonCyan)
	s.DrawTextColor(5, 1, "CPU", core.ColorNeonPink)

	out := RenderScreen(s)
	if !strings.Contains(out, "YOU") || !strings.Contains(out, "CPU") {
		t.Errorf("rendered output lost text: %q", out)
	}
	if strings.Count(out, "\n") != 1 {
		t.Error("expected one newline between two rows")
	}
}

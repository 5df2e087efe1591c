package tui

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"time"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/vovakirdan/games-hub/internal/core"
	"github.com/vovakirdan/games-hub/internal/loop"
	"github.com/vovakirdan/games-hub/internal/registry"
)

// GameModel runs one registered game inside the terminal.
type GameModel struct {
	game    registry.Game
	screen  *core.Screen
	config  core.RuntimeConfig
	keys    KeyMap
	clock   *loop.Clock
	hold    *keyHold
	pointer *core.InputState
	actions core.InputFrame
	state   core.GameState
	bell    io.Writer

	quitting   bool
	backToMenu bool
}

// NewGameModel creates a game model. Cues produced by the game ring the
// terminal bell on bell; nil keeps the game silent.
func NewGameModel(game registry.Game, cfg core.RuntimeConfig, bell io.Writer) GameModel {
	if cfg.Seed == 0 {
		cfg.Seed = time.Now().UnixNano()
	}
	if cfg.TickRate <= 0 {
		cfg.TickRate = loop.DefaultFPS
	}

	return GameModel{
		game:    game,
		screen:  core.NewScreen(cfg.ScreenW, cfg.ScreenH),
		config:  cfg,
		keys:    DefaultKeyMap(),
		clock:   &loop.Clock{},
		hold:    &keyHold{},
		pointer: &core.InputState{},
		actions: core.NewInputFrame(),
		bell:    bell,
	}
}

// Init resets the game and starts the tick loop.
func (m GameModel) Init() tea.Cmd {
	m.game.Reset(m.config)
	return tickCmd(m.config.TickRate)
}

// Update handles messages.
func (m GameModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		return m.handleKey(msg)

	case tea.MouseMsg:
		m.handleMouse(msg)
		return m, nil

	case tea.WindowSizeMsg:
		m.config.ScreenW = msg.Width
		m.config.ScreenH = msg.Height
		m.screen.Resize(msg.Width, msg.Height)
		m.game.Reset(m.config)
		return m, nil

	case TickMsg:
		return m.handleTick(time.Time(msg))
	}
	return m, nil
}

// handleKey processes keyboard input.
func (m GameModel) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if key.Matches(msg, m.keys.Screenshot) {
		m.saveScreenshot()
		return m, nil
	}

	switch action := m.keys.Action(msg); action {
	case core.ActionQuit:
		m.quitting = true
		return m, tea.Quit

	case core.ActionBack:
		// Esc toggles pause during a match; B, or Esc outside one, leaves the game.
		if m.state.Active || (m.state.Paused && msg.Type == tea.KeyEsc) {
			m.actions.Set(core.ActionPause)
		} else {
			m.backToMenu = true
		}

	case core.ActionUp, core.ActionDown:
		m.hold.press(action, time.Now())

	case core.ActionNone:

	default:
		m.actions.Set(action)
	}
	return m, nil
}

// handleMouse maps a left-button drag to pointer control. Rows are passed
// through; the game converts them to playfield coordinates.
func (m GameModel) handleMouse(msg tea.MouseMsg) {
	if msg.Button != tea.MouseButtonLeft && msg.Action != tea.MouseActionRelease {
		return
	}
	y := float64(msg.Y)
	switch msg.Action {
	case tea.MouseActionPress:
		m.pointer.PointerPress(y)
	case tea.MouseActionMotion:
		m.pointer.PointerMove(y)
	case tea.MouseActionRelease:
		m.pointer.PointerRelease()
	}
}

// handleTick advances the game by the wall-clock time since the last tick.
func (m GameModel) handleTick(now time.Time) (tea.Model, tea.Cmd) {
	intent := m.pointer.Snapshot()
	intent.Up, intent.Down = m.hold.held(now)

	result := m.game.Step(core.FrameInput{
		DT:      m.clock.Frame(now),
		Actions: m.actions,
		Intent:  intent,
	})
	m.state = result.State
	m.ring(result.Cues)

	if m.state.Paused || m.state.GameOver {
		m.hold.release()
	}
	m.actions.Clear()
	return m, tickCmd(m.config.TickRate)
}

// ring sounds the terminal bell once per frame with cues.
func (m GameModel) ring(cues []string) {
	if m.bell == nil || len(cues) == 0 {
		return
	}
	//nolint:errcheck // A missed bell is not worth reporting
	m.bell.Write([]byte{'\a'})
}

// saveScreenshot saves the current screen to a file.
func (m *GameModel) saveScreenshot() {
	m.game.Render(m.screen)

	home, err := os.UserHomeDir()
	if err != nil {
		return
	}
	dir := filepath.Join(home, ".arcade", "screenshots")
	//nolint:errcheck // Best-effort directory creation
	os.MkdirAll(dir, 0o755)

	timestamp := time.Now().Format("20060102_150405")
	path := filepath.Join(dir, fmt.Sprintf("%s_%s.txt", m.game.ID(), timestamp))

	//nolint:errcheck // Best-effort save, game continues regardless
	os.WriteFile(path, []byte(m.screen.String()), 0o600)
}

// View renders the game.
func (m GameModel) View() string {
	if m.quitting {
		return ""
	}
	m.game.Render(m.screen)
	return RenderScreen(m.screen)
}

// IsQuitting returns true if user requested to quit entirely.
func (m GameModel) IsQuitting() bool {
	return m.quitting
}

// BackToMenu returns true if user requested to go back to menu.
func (m GameModel) BackToMenu() bool {
	return m.backToMenu
}

// State returns the game state seen on the last tick.
func (m GameModel) State() core.GameState {
	return m.state
}

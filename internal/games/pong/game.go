// Package pong implements Neon Pong: a human-controlled left paddle against
// an AI on the right, simulated in device pixels with fixed sub-steps, plus
// the coin economy hooks that reward play.
package pong

import (
	"math"

	"github.com/charmbracelet/log"

	"github.com/vovakirdan/games-hub/internal/config"
	"github.com/vovakirdan/games-hub/internal/core"
	"github.com/vovakirdan/games-hub/internal/economy"
	"github.com/vovakirdan/games-hub/internal/registry"
)

// Terminal cells are mapped to a virtual playfield of this many device pixels.
const (
	CellW = 8
	CellH = 16
)

// Rows reserved around the playfield: scores on top, status at the bottom.
const (
	hudTop    = 1
	hudBottom = 1
)

// Services are shared hub collaborators injected by the platform.
type Services struct {
	Economy  *economy.Economy
	Settings *economy.Settings
	Recorder MatchRecorder
	Logger   *log.Logger
}

// Package-level settings, applied by the CLI before the game is created.
var (
	configPath       string
	difficultyPreset config.DifficultyPreset
	winTarget        int
	services         Services
)

// SetConfigPath sets a custom config file path.
func SetConfigPath(path string) {
	configPath = path
}

// SetDifficultyPreset overrides the stored difficulty. Unknown names are ignored.
func SetDifficultyPreset(preset string) {
	if d, err := config.ParseDifficulty(preset); err == nil {
		difficultyPreset = d
	}
}

// SetWinTarget overrides the configured win score.
func SetWinTarget(n int) {
	winTarget = n
}

// SetServices injects the shared economy, settings and match recorder.
func SetServices(s Services) {
	services = s
}

// Game adapts a Session to the registry's terminal game interface.
type Game struct {
	session *Session
	svc     *Services
	runtime core.RuntimeConfig
	cols    int
	rows    int
}

// New creates a new Pong game instance. The session is built on first Reset.
func New() *Game {
	return &Game{}
}

// NewWithServices creates a game bound to s instead of the package-level
// services. Servers use it to give every connection its own player.
func NewWithServices(s Services) *Game {
	g := New()
	g.Bind(s)
	return g
}

// Bind attaches services to a game created by the registry. It must be
// called before the first Reset.
func (g *Game) Bind(s Services) {
	g.svc = &s
}

func (g *Game) services() Services {
	if g.svc != nil {
		return *g.svc
	}
	return services
}

// ID returns the unique identifier for this game.
func (g *Game) ID() string {
	return "pong"
}

// Title returns the display name for this game.
func (g *Game) Title() string {
	return "Neon Pong"
}

// Description returns the gallery blurb.
func (g *Game) Description() string {
	return "First to 7 against the AI. Earn coins, unlock neon trails."
}

// Reset builds the session on first call and resizes it afterwards, so a
// terminal resize never throws away a match in progress.
func (g *Game) Reset(runtime core.RuntimeConfig) {
	g.runtime = runtime
	g.cols = core.Max(runtime.ScreenW, 1)
	g.rows = core.Max(runtime.ScreenH-hudTop-hudBottom, 1)
	w, h := float64(g.cols*CellW), float64(g.rows*CellH)

	if g.session != nil {
		if err := g.session.Resize(w, h); err != nil {
			g.logger().Warn("resize rejected", "error", err)
		}
		return
	}

	cfg, err := config.LoadPong(configPath)
	if err != nil {
		g.logger().Warn("cannot load pong config, using defaults", "error", err)
		cfg = config.DefaultPongConfig()
	}

	svc := g.services()
	settings := svc.Settings
	if settings != nil && difficultyPreset != "" {
		settings.SetDifficulty(difficultyPreset)
	}

	session, err := NewSession(SessionConfig{
		Width:     w,
		Height:    h,
		Config:    cfg,
		Economy:   svc.Economy,
		Settings:  settings,
		Recorder:  svc.Recorder,
		Logger:    svc.Logger,
		Seed:      runtime.Seed,
		WinTarget: winTarget,
	})
	if err != nil {
		g.logger().Error("cannot create session", "error", err)
		return
	}
	g.session = session
	if settings == nil && difficultyPreset != "" {
		_ = g.session.SetDifficulty(difficultyPreset)
	}
}

func (g *Game) logger() *log.Logger {
	if l := g.services().Logger; l != nil {
		return l
	}
	return log.Default()
}

// Step handles discrete actions and advances one frame.
func (g *Game) Step(in core.FrameInput) core.StepResult {
	if g.session == nil {
		return core.StepResult{State: g.State()}
	}

	state := g.session.State()
	switch {
	case in.Actions.Has(core.ActionConfirm) || in.Actions.Has(core.ActionRestart):
		if state == StateIdle || state == StateEnded || in.Actions.Has(core.ActionRestart) {
			g.session.Start()
		}
	case in.Actions.Has(core.ActionPause):
		g.session.TogglePause()
	}

	intent := in.Intent
	if intent.PointerActive {
		intent.PointerY = g.rowToField(intent.PointerY)
	}

	res := g.session.Frame(in.DT, intent)
	return core.StepResult{State: g.State(), Cues: res.Cues}
}

// rowToField converts a screen row into playfield pixels, aiming at the
// middle of the cell.
func (g *Game) rowToField(row float64) float64 {
	return (row - hudTop + 0.5) * CellH
}

// State returns the current game state.
func (g *Game) State() core.GameState {
	if g.session == nil {
		return core.GameState{}
	}
	snap := g.session.Snapshot()
	return core.GameState{
		Score:    snap.LeftScore,
		GameOver: snap.State == StateEnded,
		Paused:   snap.State == StatePaused,
		Active:   snap.State == StateRunning,
	}
}

// Session exposes the underlying session to platform code.
func (g *Game) Session() *Session {
	return g.session
}

// cellX maps a playfield x to a column.
func cellX(x float64) int {
	return int(math.Floor(x / CellW))
}

// cellY maps a playfield y to a screen row.
func cellY(y float64) int {
	return int(math.Floor(y/CellH)) + hudTop
}

// Register the game with the registry
func init() {
	registry.Register("pong", func() registry.Game {
		return New()
	})
}

package pong

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/charmbracelet/log"

	"github.com/vovakirdan/games-hub/internal/config"
	"github.com/vovakirdan/games-hub/internal/core"
	"github.com/vovakirdan/games-hub/internal/economy"
	"github.com/vovakirdan/games-hub/internal/storage"
)

// MatchRecorder stores finished matches.
type MatchRecorder interface {
	SaveMatch(ctx context.Context, rec storage.MatchRecord) (int64, error)
}

// SessionConfig wires a Session. Economy and Settings default to in-memory
// stores when nil; Recorder is optional.
type SessionConfig struct {
	Width, Height float64
	Config        config.PongConfig
	Economy       *economy.Economy
	Settings      *economy.Settings
	Recorder      MatchRecorder
	Logger        *log.Logger
	Seed          int64
	Scale         float64
	WinTarget     int
}

// FrameResult is what one frame produced.
type FrameResult struct {
	Events []Event
	Cues   []string
}

// Session is one player's seat at the table: a match plus the collaborators
// that react to its events. All methods are safe for concurrent use; the
// frame callback and input handlers may run on different goroutines.
type Session struct {
	mu sync.Mutex

	match     *Match
	bus       *Bus
	particles *Particles
	audio     *Audio
	economy   *economy.Economy
	settings  *economy.Settings
	recorder  MatchRecorder
	logger    *log.Logger

	status string
}

// NewSession creates a session with an idle match.
func NewSession(cfg SessionConfig) (*Session, error) {
	logger := cfg.Logger
	if logger == nil {
		logger = log.Default()
	}
	if cfg.Config.Physics.SubStep <= 0 {
		cfg.Config = config.DefaultPongConfig()
	}

	settings := cfg.Settings
	if settings == nil {
		settings = economy.NewSettings(storage.NewMemoryKV(), logger)
	}
	eco := cfg.Economy
	if eco == nil {
		eco = economy.New(storage.NewMemoryKV(), cfg.Config.Economy, logger)
	}

	match, err := NewMatch(cfg.Width, cfg.Height,
		WithConfig(cfg.Config),
		WithDifficulty(settings.Difficulty()),
		WithWinTarget(cfg.WinTarget),
		WithSeed(cfg.Seed),
		WithScale(cfg.Scale),
	)
	if err != nil {
		return nil, err
	}

	seed := cfg.Seed
	if seed == 0 {
		seed = time.Now().UnixNano()
	}

	s := &Session{
		match:     match,
		bus:       NewBus(logger),
		particles: NewParticles(seed),
		audio:     NewAudio(func() bool { return settings.Values().AudioEnabled }),
		economy:   eco,
		settings:  settings,
		recorder:  cfg.Recorder,
		logger:    logger,
	}

	s.bus.Subscribe(s.particles.Handle)
	s.bus.Subscribe(s.audio.Handle)
	s.bus.Subscribe(s.handleScoring)
	return s, nil
}

// Subscribe adds an event subscriber, called from within Frame.
func (s *Session) Subscribe(fn Subscriber) {
	s.bus.Subscribe(fn)
}

// Start begins a new match using the stored difficulty.
func (s *Session) Start() {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.match.State() != StateRunning && s.match.State() != StatePaused {
		if err := s.match.SetDifficulty(s.settings.Difficulty()); err != nil {
			s.logger.Warn("cannot apply difficulty", "error", err)
		}
	}
	s.match.Start()
	s.particles.Clear()
	s.status = "Good luck!"
	s.logger.Debug("match started", "difficulty", s.match.Difficulty(), "win_target", s.match.WinTarget())
}

// TogglePause pauses or resumes a running match.
func (s *Session) TogglePause() {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.match.TogglePause()
	switch s.match.State() {
	case StatePaused:
		s.status = "Paused"
	case StateRunning:
		s.status = ""
	}
}

// SetDifficulty changes and persists the difficulty between matches.
func (s *Session) SetDifficulty(d config.DifficultyPreset) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if err := s.match.SetDifficulty(d); err != nil {
		return err
	}
	s.settings.SetDifficulty(d)
	return nil
}

// Resize forwards a playfield change to the match.
func (s *Session) Resize(w, h float64) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.match.Resize(w, h)
}

// Frame advances one rendered frame. Particles keep animating while the
// match is paused or over.
func (s *Session) Frame(dt float64, in core.Intent) FrameResult {
	s.mu.Lock()
	defer s.mu.Unlock()

	events := s.match.Step(dt, in)
	s.bus.Publish(events...)
	s.particles.Update(dt)

	return FrameResult{Events: events, Cues: s.audio.Drain()}
}

// handleScoring credits coins and records finished matches.
// It runs inside Frame with s.mu held.
func (s *Session) handleScoring(ev Event) {
	switch ev.Kind {
	case EventPointScored:
		if d := s.economy.OnRallyPoint(ev.Side); d.Coins > 0 {
			s.status = fmt.Sprintf("+%d coins", d.Coins)
		} else {
			s.status = ""
		}

	case EventMatchEnded:
		delta, _ := s.economy.OnMatchEnd(ev.Side, ev.LeftScore, ev.RightScore)
		if ev.Side == core.SideLeft {
			s.status = fmt.Sprintf("You win! +%d coins", delta.Coins)
		} else {
			s.status = fmt.Sprintf("Defeat. +%d coins", delta.Coins)
		}
		s.logger.Info("match ended",
			"winner", ev.Side,
			"left", ev.LeftScore,
			"right", ev.RightScore,
			"coins", delta.Balance,
		)
		s.record(ev)
	}
}

func (s *Session) record(ev Event) {
	if s.recorder == nil {
		return
	}
	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
	defer cancel()

	_, err := s.recorder.SaveMatch(ctx, storage.MatchRecord{
		Difficulty: string(s.match.Difficulty()),
		LeftScore:  ev.LeftScore,
		RightScore: ev.RightScore,
		Winner:     ev.Side.String(),
		DurationMS: int64(s.match.Elapsed() * 1000),
	})
	if err != nil {
		s.logger.Warn("cannot record match", "error", err)
	}
}

// Snapshot returns the render state, including particles and the player's
// cosmetics and balance.
func (s *Session) Snapshot() Snapshot {
	s.mu.Lock()
	defer s.mu.Unlock()

	snap := s.match.Snapshot()
	snap.Particles = s.particles.List()
	snap.TrailColor = s.economy.Trail()
	snap.Coins = s.economy.Coins()
	snap.Status = s.status
	return snap
}

// State returns the match lifecycle position.
func (s *Session) State() Lifecycle {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.match.State()
}

// Economy returns the session's economy.
func (s *Session) Economy() *economy.Economy { return s.economy }

// Settings returns the session's settings.
func (s *Session) Settings() *economy.Settings { return s.settings }

// WithMatch runs fn with exclusive access to the match.
func (s *Session) WithMatch(fn func(m *Match)) {
	s.mu.Lock()
	defer s.mu.Unlock()
	fn(s.match)
}

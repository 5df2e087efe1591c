package pong

import (
	"errors"
	"math"
	"math/rand"
	"time"

	"github.com/vovakirdan/games-hub/internal/config"
	"github.com/vovakirdan/games-hub/internal/core"
)

var (
	ErrInvalidPlayfield = errors.New("pong: playfield dimensions must be positive")
	ErrMatchInProgress  = errors.New("pong: difficulty cannot change during a match")
)

// Lifecycle is the match state machine position.
type Lifecycle int

const (
	StateIdle Lifecycle = iota
	StateRunning
	StatePaused
	StateEnded
)

func (l Lifecycle) String() string {
	switch l {
	case StateIdle:
		return "idle"
	case StateRunning:
		return "running"
	case StatePaused:
		return "paused"
	case StateEnded:
		return "ended"
	default:
		return "unknown"
	}
}

// MarshalText encodes the lifecycle by name.
func (l Lifecycle) MarshalText() ([]byte, error) {
	return []byte(l.String()), nil
}

// Point is a past ball position.
type Point struct {
	X float64 `json:"x"`
	Y float64 `json:"y"`
}

// Ball is the ball's center and velocity. Velocity is px per 1/60 s.
type Ball struct {
	X, Y   float64
	VX, VY float64
}

// Speed returns the velocity magnitude.
func (b Ball) Speed() float64 {
	return math.Hypot(b.VX, b.VY)
}

// Match owns one Pong match: paddles, ball, scores and lifecycle.
// It is mutated only by its own methods and by Advance; it is not safe for
// concurrent use.
type Match struct {
	cfg        config.PongConfig
	difficulty config.DifficultyPreset
	scale      float64
	rng        *rand.Rand

	width, height float64

	leftY, rightY float64
	ball          Ball

	paddleW, paddleH, ballR float64
	aiSpeed, accel          float64

	leftScore, rightScore int
	winTarget             int

	running, paused bool
	ended           bool
	winner          core.Side
	elapsed         float64

	trail []Point
}

// Option configures a Match.
type Option func(*Match)

// WithConfig replaces the default tuning.
func WithConfig(cfg config.PongConfig) Option {
	return func(m *Match) {
		m.cfg = cfg
		if cfg.Gameplay.WinScore > 0 {
			m.winTarget = cfg.Gameplay.WinScore
		}
	}
}

// WithDifficulty sets the starting difficulty.
func WithDifficulty(d config.DifficultyPreset) Option {
	return func(m *Match) { m.difficulty = d }
}

// WithWinTarget sets the score that ends the match.
func WithWinTarget(n int) Option {
	return func(m *Match) {
		if n > 0 {
			m.winTarget = n
		}
	}
}

// WithSeed makes serves reproducible. Zero seeds from the clock.
func WithSeed(seed int64) Option {
	return func(m *Match) {
		if seed != 0 {
			m.rng = rand.New(rand.NewSource(seed))
		}
	}
}

// WithScale sets the device pixel ratio applied to speeds and the paddle inset.
func WithScale(scale float64) Option {
	return func(m *Match) {
		if scale > 0 {
			m.scale = scale
		}
	}
}

// NewMatch creates an idle match on a w×h playfield in device pixels.
func NewMatch(w, h float64, opts ...Option) (*Match, error) {
	if !(w > 0 && h > 0) || math.IsInf(w, 0) || math.IsInf(h, 0) {
		return nil, ErrInvalidPlayfield
	}

	cfg := config.DefaultPongConfig()
	m := &Match{
		cfg:        cfg,
		difficulty: config.DifficultyNormal,
		scale:      1,
		winTarget:  cfg.Gameplay.WinScore,
		width:      w,
		height:     h,
	}
	for _, opt := range opts {
		opt(m)
	}
	if m.rng == nil {
		m.rng = rand.New(rand.NewSource(time.Now().UnixNano()))
	}

	m.resetGeometry()
	m.ResetBall(m.randomDirection())
	return m, nil
}

// resetGeometry derives paddle and ball sizes from the playfield, centers the
// paddles and reloads difficulty-dependent speeds.
func (m *Match) resetGeometry() {
	m.deriveSizes()

	m.leftY = m.height/2 - m.paddleH/2
	m.rightY = m.leftY

	ai := m.cfg.AI(m.difficulty)
	m.aiSpeed = ai.AISpeed * m.scale
	m.accel = ai.Accel
}

// deriveSizes computes paddle and ball sizes from the playfield.
func (m *Match) deriveSizes() {
	p := m.cfg.Paddles
	ph := m.cfg.Physics

	m.paddleW = math.Max(p.MinWidth, math.Floor(m.width*p.Width))
	m.paddleH = math.Max(p.MinHeight, math.Floor(m.height*p.Height))
	m.ballR = math.Max(ph.MinBallRadius, math.Floor(math.Min(m.width, m.height)*ph.BallRadius))
}

func (m *Match) randomDirection() int {
	if m.rng.Float64() > 0.5 {
		return 1
	}
	return -1
}

// Start begins a fresh match from Idle or Ended (or restarts a running one).
func (m *Match) Start() {
	m.leftScore = 0
	m.rightScore = 0
	m.running = true
	m.paused = false
	m.ended = false
	m.winner = core.SideNone
	m.elapsed = 0
	m.resetGeometry()
	m.ResetBall(m.randomDirection())
}

// TogglePause flips the pause flag. It does nothing unless the match is running.
func (m *Match) TogglePause() {
	if !m.running {
		return
	}
	m.paused = !m.paused
}

// ResetBall serves from the center toward direction (+1 right, -1 left) at a
// random angle and clears the trail. Paddles are untouched.
func (m *Match) ResetBall(direction int) {
	if direction >= 0 {
		direction = 1
	} else {
		direction = -1
	}

	ph := m.cfg.Physics
	speed := math.Min(m.width, m.height) * ph.ServeSpeed
	angle := (m.rng.Float64()*2*ph.ServeAngle - ph.ServeAngle) * math.Pi

	m.ball = Ball{
		X:  m.width / 2,
		Y:  m.height / 2,
		VX: math.Cos(angle) * speed * float64(direction),
		VY: math.Sin(angle) * speed,
	}
	m.trail = m.trail[:0]
}

// Step advances the match by dt seconds. It returns nil while the match is
// idle, ended or paused.
func (m *Match) Step(dt float64, in core.Intent) []Event {
	if !m.running || m.paused || dt <= 0 {
		return nil
	}
	m.elapsed += dt

	events := Advance(dt, m, in)

	scored := false
	for i := range events {
		if events[i].Kind != EventPointScored {
			continue
		}
		scored = true
		if ended := m.awardPoint(&events[i]); ended != nil {
			events = append(events, *ended)
		}
		break
	}

	if !scored {
		m.pushTrail()
	}
	return events
}

// awardPoint applies a point event and returns a match-ended event when the
// scorer reached the win target.
func (m *Match) awardPoint(ev *Event) *Event {
	if ev.Side == core.SideLeft {
		m.leftScore++
	} else {
		m.rightScore++
	}
	ev.LeftScore = m.leftScore
	ev.RightScore = m.rightScore

	score := m.rightScore
	if ev.Side == core.SideLeft {
		score = m.leftScore
	}
	if score >= m.winTarget {
		m.running = false
		m.paused = false
		m.ended = true
		m.winner = ev.Side
		return &Event{
			Kind:       EventMatchEnded,
			Side:       ev.Side,
			X:          m.ball.X,
			Y:          m.ball.Y,
			LeftScore:  m.leftScore,
			RightScore: m.rightScore,
		}
	}

	// Serve toward the side that conceded.
	if ev.Side == core.SideLeft {
		m.ResetBall(1)
	} else {
		m.ResetBall(-1)
	}
	return nil
}

func (m *Match) pushTrail() {
	limit := m.cfg.Gameplay.TrailLength
	if limit <= 0 {
		return
	}
	if len(m.trail) < limit {
		m.trail = append(m.trail, Point{})
	}
	copy(m.trail[1:], m.trail[:len(m.trail)-1])
	m.trail[0] = Point{X: m.ball.X, Y: m.ball.Y}
}

// Resize changes the playfield. Sizes are re-derived and paddles and ball are
// pulled back inside the new bounds; scores and velocity are kept.
func (m *Match) Resize(w, h float64) error {
	if !(w > 0 && h > 0) || math.IsInf(w, 0) || math.IsInf(h, 0) {
		return ErrInvalidPlayfield
	}
	if w == m.width && h == m.height {
		return nil
	}

	m.width, m.height = w, h
	m.deriveSizes()

	maxY := h - m.paddleH
	m.leftY = core.ClampF(m.leftY, 0, maxY)
	m.rightY = core.ClampF(m.rightY, 0, maxY)
	m.ball.X = core.ClampF(m.ball.X, m.ballR, w-m.ballR)
	m.ball.Y = core.ClampF(m.ball.Y, m.ballR, h-m.ballR)
	m.trail = m.trail[:0]
	return nil
}

// SetDifficulty changes the difficulty between matches.
func (m *Match) SetDifficulty(d config.DifficultyPreset) error {
	if m.running {
		return ErrMatchInProgress
	}
	m.difficulty = d
	ai := m.cfg.AI(d)
	m.aiSpeed = ai.AISpeed * m.scale
	m.accel = ai.Accel
	return nil
}

// State returns the lifecycle position.
func (m *Match) State() Lifecycle {
	switch {
	case m.running && m.paused:
		return StatePaused
	case m.running:
		return StateRunning
	case m.ended:
		return StateEnded
	default:
		return StateIdle
	}
}

// Scores returns left and right scores.
func (m *Match) Scores() (left, right int) {
	return m.leftScore, m.rightScore
}

// Winner returns the side that won, or SideNone before the match ends.
func (m *Match) Winner() core.Side { return m.winner }

// Difficulty returns the current difficulty.
func (m *Match) Difficulty() config.DifficultyPreset { return m.difficulty }

// Elapsed returns the seconds of unpaused play since Start.
func (m *Match) Elapsed() float64 { return m.elapsed }

// WinTarget returns the score that ends the match.
func (m *Match) WinTarget() int { return m.winTarget }

// Size returns the playfield dimensions.
func (m *Match) Size() (w, h float64) { return m.width, m.height }

// Ball returns the ball state.
func (m *Match) Ball() Ball { return m.ball }

// BallRadius returns the ball radius.
func (m *Match) BallRadius() float64 { return m.ballR }

// SpeedCeiling returns the maximum ball speed for the current playfield.
func (m *Match) SpeedCeiling() float64 {
	return m.cfg.Physics.SpeedCeiling * math.Min(m.width, m.height)
}

// paddleInset is the distance from each side edge to the paddle's outer face.
func (m *Match) paddleInset() float64 {
	return m.cfg.Paddles.Inset * m.scale
}

// LeftPaddle returns the human paddle's rectangle.
func (m *Match) LeftPaddle() core.RectF {
	return core.RectF{X: m.paddleInset(), Y: m.leftY, W: m.paddleW, H: m.paddleH}
}

// RightPaddle returns the AI paddle's rectangle.
func (m *Match) RightPaddle() core.RectF {
	return core.RectF{X: m.width - m.paddleInset() - m.paddleW, Y: m.rightY, W: m.paddleW, H: m.paddleH}
}

// Trail returns past ball positions, newest first.
func (m *Match) Trail() []Point {
	out := make([]Point, len(m.trail))
	copy(out, m.trail)
	return out
}

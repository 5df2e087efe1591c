package pong

import (
	"github.com/vovakirdan/games-hub/internal/config"
	"github.com/vovakirdan/games-hub/internal/core"
)

// Snapshot is a read-only copy of everything a renderer needs for one frame.
type Snapshot struct {
	Width      float64                 `json:"width"`
	Height     float64                 `json:"height"`
	Left       core.RectF              `json:"left"`
	Right      core.RectF              `json:"right"`
	Ball       Point                   `json:"ball"`
	BallRadius float64                 `json:"ballRadius"`
	LeftScore  int                     `json:"leftScore"`
	RightScore int                     `json:"rightScore"`
	WinTarget  int                     `json:"winTarget"`
	State      Lifecycle               `json:"state"`
	Winner     core.Side               `json:"winner"`
	Difficulty config.DifficultyPreset `json:"difficulty"`
	Trail      []Point                 `json:"trail"`

	// Filled by Session.
	TrailColor string     `json:"trailColor,omitempty"`
	Particles  []Particle `json:"particles,omitempty"`
	Coins      int        `json:"coins"`
	Status     string     `json:"status,omitempty"`
	Cues       []string   `json:"cues,omitempty"`
}

// Snapshot returns the match state for rendering.
func (m *Match) Snapshot() Snapshot {
	return Snapshot{
		Width:      m.width,
		Height:     m.height,
		Left:       m.LeftPaddle(),
		Right:      m.RightPaddle(),
		Ball:       Point{X: m.ball.X, Y: m.ball.Y},
		BallRadius: m.ballR,
		LeftScore:  m.leftScore,
		RightScore: m.rightScore,
		WinTarget:  m.winTarget,
		State:      m.State(),
		Winner:     m.winner,
		Difficulty: m.difficulty,
		Trail:      m.Trail(),
	}
}

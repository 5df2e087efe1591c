package pong

import "github.com/vovakirdan/games-hub/internal/core"

// EventKind names something that happened during a frame.
type EventKind int

const (
	EventWallBounce EventKind = iota + 1
	EventPaddleHit
	EventPointScored
	EventMatchEnded
)

func (k EventKind) String() string {
	switch k {
	case EventWallBounce:
		return "wall-bounce"
	case EventPaddleHit:
		return "paddle-hit"
	case EventPointScored:
		return "point-scored"
	case EventMatchEnded:
		return "match-ended"
	default:
		return "unknown"
	}
}

// MarshalText encodes the kind by name.
func (k EventKind) MarshalText() ([]byte, error) {
	return []byte(k.String()), nil
}

// Event is emitted by the engine and consumed by presentation and economy
// subscribers. Side is the paddle that was hit, the side that scored, or the
// winner, depending on Kind.
type Event struct {
	Kind       EventKind `json:"kind"`
	Side       core.Side `json:"side"`
	Top        bool      `json:"top,omitempty"` // wall bounces only
	X          float64   `json:"x"`
	Y          float64   `json:"y"`
	LeftScore  int       `json:"leftScore"`
	RightScore int       `json:"rightScore"`
}

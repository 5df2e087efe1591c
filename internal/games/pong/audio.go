package pong

// Audio cue names.
const (
	CueTick  = "tick"
	CueWall  = "wall"
	CueScore = "score"
)

// Audio collects named sound cues from events. Playing them is up to the
// sink: the TUI rings the terminal bell, the browser synthesizes a blip.
type Audio struct {
	enabled func() bool
	pending []string
}

// NewAudio creates a cue collector. enabled is consulted per event; nil
// means always enabled.
func NewAudio(enabled func() bool) *Audio {
	return &Audio{enabled: enabled}
}

// Handle is a Bus subscriber.
func (a *Audio) Handle(ev Event) {
	if a.enabled != nil && !a.enabled() {
		return
	}
	switch ev.Kind {
	case EventWallBounce:
		a.pending = append(a.pending, CueWall)
	case EventPaddleHit:
		a.pending = append(a.pending, CueTick)
	case EventPointScored:
		a.pending = append(a.pending, CueScore)
	}
}

// Drain returns and clears the cues collected since the last call.
func (a *Audio) Drain() []string {
	if len(a.pending) == 0 {
		return nil
	}
	out := a.pending
	a.pending = nil
	return out
}

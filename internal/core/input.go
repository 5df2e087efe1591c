package core

import "sync"

// Action represents a semantic game action, abstracted from physical key presses.
// This allows games to work with high-level intents rather than raw input.
type Action int

const (
	ActionNone    Action = iota
	ActionUp             // W, Up arrow - move paddle up
	ActionDown           // S, Down arrow - move paddle down
	ActionConfirm        // Enter - start match / confirm selection
	ActionBack           // B, Escape - go back to menu
	ActionRestart        // R key - restart after a match ended
	ActionQuit           // Q, Ctrl+C - exit game/session
	ActionPause          // P, Space - pause/unpause match
)

// String returns a human-readable name for the action.
func (a Action) String() string {
	switch a {
	case ActionNone:
		return "None"
	case ActionUp:
		return "Up"
	case ActionDown:
		return "Down"
	case ActionConfirm:
		return "Confirm"
	case ActionBack:
		return "Back"
	case ActionRestart:
		return "Restart"
	case ActionQuit:
		return "Quit"
	case ActionPause:
		return "Pause"
	default:
		return "Unknown"
	}
}

// InputFrame carries the discrete actions triggered during one frame.
type InputFrame struct {
	Actions map[Action]bool
}

// NewInputFrame creates an empty input frame.
func NewInputFrame() InputFrame {
	return InputFrame{
		Actions: make(map[Action]bool),
	}
}

// Set marks an action as triggered for this frame.
func (f *InputFrame) Set(a Action) {
	if f.Actions == nil {
		f.Actions = make(map[Action]bool)
	}
	f.Actions[a] = true
}

// Has returns true if the given action was triggered this frame.
func (f InputFrame) Has(a Action) bool {
	if f.Actions == nil {
		return false
	}
	return f.Actions[a]
}

// Clear resets all actions for the next frame.
func (f *InputFrame) Clear() {
	for k := range f.Actions {
		delete(f.Actions, k)
	}
}

// Intent is the paddle-control snapshot read by the physics engine.
// PointerY is in device pixels, absolute within the playfield.
type Intent struct {
	Up            bool
	Down          bool
	PointerY      float64
	PointerActive bool
}

// UsingPointer reports whether pointer control overrides the keys.
func (i Intent) UsingPointer() bool {
	return i.PointerActive
}

// InputState is the shared, continuously-updated control state.
// Writers may run on any goroutine; the last write wins.
type InputState struct {
	mu     sync.Mutex
	intent Intent
}

// SetUp records whether the up control is held.
func (s *InputState) SetUp(held bool) {
	s.mu.Lock()
	s.intent.Up = held
	s.mu.Unlock()
}

// SetDown records whether the down control is held.
func (s *InputState) SetDown(held bool) {
	s.mu.Lock()
	s.intent.Down = held
	s.mu.Unlock()
}

// PointerPress activates pointer control at the given Y.
func (s *InputState) PointerPress(y float64) {
	s.mu.Lock()
	s.intent.PointerY = y
	s.intent.PointerActive = true
	s.mu.Unlock()
}

// PointerMove updates the pointer position. It has no effect on control
// unless a press is active.
func (s *InputState) PointerMove(y float64) {
	s.mu.Lock()
	s.intent.PointerY = y
	s.mu.Unlock()
}

// PointerRelease returns control to the keys.
func (s *InputState) PointerRelease() {
	s.mu.Lock()
	s.intent.PointerActive = false
	s.mu.Unlock()
}

// Set replaces the whole state at once.
func (s *InputState) Set(in Intent) {
	s.mu.Lock()
	s.intent = in
	s.mu.Unlock()
}

// Reset releases every control.
func (s *InputState) Reset() {
	s.Set(Intent{})
}

// Snapshot returns the current intent by value.
func (s *InputState) Snapshot() Intent {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.intent
}

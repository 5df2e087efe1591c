package core

// RuntimeConfig is what the platform knows about the terminal a game runs in.
type RuntimeConfig struct {
	ScreenW  int   // columns
	ScreenH  int   // rows
	TickRate int   // frames per second; the platform falls back to 60
	Seed     int64 // 0 seeds from the clock
}

// GameState is the summary the platform uses to route keys and draw chrome.
type GameState struct {
	Score    int  // the human's points
	GameOver bool
	Paused   bool
	Active   bool // a round is in play, so Esc pauses instead of leaving
}

// FrameInput is everything a game receives for one rendered frame.
type FrameInput struct {
	DT      float64    // seconds since the previous frame, already capped
	Actions InputFrame // discrete actions pressed this frame
	Intent  Intent     // paddle control; PointerY is a screen row here
}

// StepResult is what one frame produced.
type StepResult struct {
	State GameState
	Cues  []string // audio cue names, oldest first
}

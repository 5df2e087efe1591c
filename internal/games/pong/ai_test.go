package pong

import "testing"

func TestFollow(t *testing.T) {
	tests := []struct {
		name     string
		ballY    float64
		paddleY  float64
		expected float64
	}{
		{"snaps when close", 356, 298, 302},
		{"steps down", 500, 100, 106.5},
		{"steps up", 100, 400, 393.5},
		{"clamps at top", 0, 3, 0},
		{"clamps at bottom", 600, 490, 492},
		{"already aligned", 354, 300, 300},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := Follow(tt.ballY, 108, tt.paddleY, 6.5, 1, 600)
			if got != tt.expected {
				t.Errorf("Follow(%v, paddleY=%v) = %v, expected %v", tt.ballY, tt.paddleY, got, tt.expected)
			}
		})
	}
}

func TestFollowScalesWithSubStep(t *testing.T) {
	got := Follow(500, 108, 100, 8, 0.25, 600)
	if got != 102 {
		t.Errorf("quarter-frame step = %v, expected 102", got)
	}
}

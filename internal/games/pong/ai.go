package pong

import (
	"math"

	"github.com/vovakirdan/games-hub/internal/core"
)

// Follow moves the opposing paddle toward the ball's current height.
// It reacts to where the ball is, never where it will be; lower difficulties
// stay beatable because of that.
//
// maxSpeed is in px per reference frame and dtScaled is the sub-step expressed
// in reference frames (sub-step seconds * 60).
func Follow(ballY, paddleHeight, paddleY, maxSpeed, dtScaled, fieldHeight float64) float64 {
	target := ballY - paddleHeight/2
	step := maxSpeed * dtScaled

	if math.Abs(target-paddleY) < step {
		paddleY = target
	} else if target > paddleY {
		paddleY += step
	} else {
		paddleY -= step
	}

	return core.ClampF(paddleY, 0, fieldHeight-paddleHeight)
}

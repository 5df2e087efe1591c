package loop

import (
	"context"
	"time"

	"github.com/charmbracelet/log"
)

// DefaultFPS is used when a driver is asked to run at a non-positive rate.
const DefaultFPS = 60

// FrameFunc is invoked once per frame with the capped delta in seconds.
type FrameFunc func(dt float64)

// Driver calls a FrameFunc at a target rate until its context ends.
// Pausing a game never stops the driver; the frame callback decides what a
// paused frame does.
type Driver struct {
	logger *log.Logger
	now    func() time.Time
}

// NewDriver creates a driver. A nil logger falls back to the default logger.
func NewDriver(logger *log.Logger) *Driver {
	if logger == nil {
		logger = log.Default()
	}
	return &Driver{logger: logger, now: time.Now}
}

// Run blocks, calling frame at fps until ctx is cancelled.
// A panicking frame is logged and the loop keeps going.
func (d *Driver) Run(ctx context.Context, fps int, frame FrameFunc) {
	if fps <= 0 {
		fps = DefaultFPS
	}

	ticker := time.NewTicker(time.Second / time.Duration(fps))
	defer ticker.Stop()

	var clock Clock
	clock.Frame(d.now())

	for {
		select {
		case <-ctx.Done():
			d.logger.Debug("frame driver stopped", "reason", ctx.Err())
			return
		case t := <-ticker.C:
			d.runFrame(frame, clock.Frame(t))
		}
	}
}

func (d *Driver) runFrame(frame FrameFunc, dt float64) {
	defer func() {
		if r := recover(); r != nil {
			d.logger.Error("frame panicked", "panic", r)
		}
	}()
	frame(dt)
}

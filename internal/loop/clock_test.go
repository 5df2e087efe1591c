package loop

import (
	"context"
	"sync/atomic"
	"testing"
	"time"
)

func TestClockFrame(t *testing.T) {
	base := time.Unix(1000, 0)

	tests := []struct {
		name     string
		offsets  []time.Duration
		expected []float64
	}{
		{
			name:     "first frame is zero",
			offsets:  []time.Duration{0},
			expected: []float64{0},
		},
		{
			name:     "regular frames",
			offsets:  []time.Duration{0, 16 * time.Millisecond, 32 * time.Millisecond},
			expected: []float64{0, 0.016, 0.016},
		},
		{
			name:     "long stall is capped",
			offsets:  []time.Duration{0, 5 * time.Second},
			expected: []float64{0, MaxFrameDelta},
		},
		{
			name:     "clock going backwards",
			offsets:  []time.Duration{0, 20 * time.Millisecond, 10 * time.Millisecond},
			expected: []float64{0, 0.02, 0},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var c Clock
			for i, off := range tt.offsets {
				got := c.Frame(base.Add(off))
				if diff := got - tt.expected[i]; diff > 1e-9 || diff < -1e-9 {
					t.Errorf("frame %d: got %v, expected %v", i, got, tt.expected[i])
				}
			}
		})
	}
}

func TestClockReset(t *testing.T) {
	var c Clock
	c.Frame(time.Unix(0, 0))
	c.Reset()
	if got := c.Frame(time.Unix(10, 0)); got != 0 {
		t.Errorf("frame after Reset = %v, expected 0", got)
	}
}

func TestDriverRunsUntilCancelled(t *testing.T) {
	d := NewDriver(nil)
	ctx, cancel := context.WithCancel(context.Background())

	var frames atomic.Int32
	var maxDT atomic.Value
	maxDT.Store(0.0)

	done := make(chan struct{})
	go func() {
		d.Run(ctx, 200, func(dt float64) {
			if dt > maxDT.Load().(float64) {
				maxDT.Store(dt)
			}
			if frames.Add(1) == 5 {
				cancel()
			}
		})
		close(done)
	}()

	select {
	case <-done:
	case <-time.After(2 * time.Second):
		t.Fatal("driver did not stop after cancel")
	}

	if frames.Load() < 5 {
		t.Errorf("expected at least 5 frames, got %d", frames.Load())
	}
	if got := maxDT.Load().(float64); got > MaxFrameDelta {
		t.Errorf("driver delta %v exceeds cap", got)
	}
}

func TestDriverSurvivesPanickingFrame(t *testing.T) {
	d := NewDriver(nil)
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	var frames atomic.Int32
	done := make(chan struct{})
	go func() {
		d.Run(ctx, 200, func(float64) {
			n := frames.Add(1)
			if n == 1 {
				panic("boom")
			}
			if n == 3 {
				cancel()
			}
		})
		close(done)
	}()

	select {
	case <-done:
	case <-time.After(2 * time.Second):
		t.Fatal("driver stopped making progress after panic")
	}
}

package pong

import (
	"math"

	"github.com/vovakirdan/games-hub/internal/core"
)

// minSubStep absorbs float residue so a 1/60 frame is exactly four sub-steps.
const minSubStep = 1e-9

// Advance integrates dt seconds of play in fixed sub-steps and resolves every
// collision inside that span. It mutates m and returns what happened, in
// order. A point ends the frame: the remaining sub-steps are dropped and the
// point is the last event.
//
// Per sub-step: player paddle, AI paddle, rally ramp, integrate, top wall,
// bottom wall, left paddle, right paddle, out of bounds.
func Advance(dt float64, m *Match, in core.Intent) []Event {
	var events []Event

	sub := m.cfg.Physics.SubStep
	maxY := m.height - m.paddleH

	for remaining := dt; remaining > minSubStep; remaining -= sub {
		d := math.Min(remaining, sub)
		frames := d * 60 // sub-step in reference frames

		m.movePlayer(in, frames, maxY)
		m.rightY = Follow(m.ball.Y, m.paddleH, m.rightY, m.aiSpeed, frames, m.height)
		m.ramp(d)

		m.ball.X += m.ball.VX * frames
		m.ball.Y += m.ball.VY * frames

		events = m.collideWalls(events)
		events = m.collidePaddles(events)

		if ev, ok := m.outOfBounds(); ok {
			return append(events, ev)
		}
	}
	return events
}

// movePlayer positions the human paddle from the pointer when a press is
// active, otherwise from the held keys.
func (m *Match) movePlayer(in core.Intent, frames, maxY float64) {
	if in.UsingPointer() {
		m.leftY = core.ClampF(in.PointerY-m.paddleH/2, 0, maxY)
		return
	}

	speed := m.cfg.Paddles.PlayerSpeed * m.scale * frames
	if in.Up {
		m.leftY -= speed
	}
	if in.Down {
		m.leftY += speed
	}
	m.leftY = core.ClampF(m.leftY, 0, maxY)
}

// ramp grows the ball speed by the difficulty's rate, up to the ceiling.
// A zero or non-finite speed is left alone.
func (m *Match) ramp(d float64) {
	s := m.ball.Speed()
	if s <= 0 || math.IsNaN(s) || math.IsInf(s, 0) {
		return
	}
	target := math.Min(s*(1+m.accel*d), m.SpeedCeiling())
	scale := target / s
	m.ball.VX *= scale
	m.ball.VY *= scale
}

// capSpeed pulls the ball back to the ceiling after a paddle hit overshoots it.
func (m *Match) capSpeed() {
	s := m.ball.Speed()
	ceiling := m.SpeedCeiling()
	if s <= ceiling || math.IsNaN(s) || math.IsInf(s, 0) {
		return
	}
	scale := ceiling / s
	m.ball.VX *= scale
	m.ball.VY *= scale
}

func (m *Match) collideWalls(events []Event) []Event {
	r := m.ballR
	if m.ball.Y-r <= 0 {
		m.ball.Y = r
		m.ball.VY = -m.ball.VY
		events = append(events, Event{Kind: EventWallBounce, Top: true, X: m.ball.X, Y: m.ball.Y})
	}
	if m.ball.Y+r >= m.height {
		m.ball.Y = m.height - r
		m.ball.VY = -m.ball.VY
		events = append(events, Event{Kind: EventWallBounce, X: m.ball.X, Y: m.ball.Y})
	}
	return events
}

func (m *Match) collidePaddles(events []Event) []Event {
	r := m.ballR
	phys := m.cfg.Physics

	left := m.LeftPaddle()
	if m.ball.X-r <= left.Right() && left.SpansY(m.ball.Y) && m.ball.VX < 0 {
		m.ball.X = left.Right() + r
		m.ball.VX *= -phys.Rebound
		m.ball.VY += (m.ball.Y - left.CenterY()) * phys.Spin
		m.capSpeed()
		events = append(events, Event{Kind: EventPaddleHit, Side: core.SideLeft, X: m.ball.X, Y: m.ball.Y})
	}

	right := m.RightPaddle()
	if m.ball.X+r >= right.X && right.SpansY(m.ball.Y) && m.ball.VX > 0 {
		m.ball.X = right.X - r
		m.ball.VX *= -phys.Rebound
		m.ball.VY += (m.ball.Y - right.CenterY()) * phys.Spin
		m.capSpeed()
		events = append(events, Event{Kind: EventPaddleHit, Side: core.SideRight, X: m.ball.X, Y: m.ball.Y})
	}
	return events
}

// outOfBounds reports a point once the ball is fully past a side edge.
func (m *Match) outOfBounds() (Event, bool) {
	margin := m.ballR * m.cfg.Physics.OutOfBoundsRadii
	switch {
	case m.ball.X < -margin:
		return Event{Kind: EventPointScored, Side: core.SideRight, X: m.ball.X, Y: m.ball.Y}, true
	case m.ball.X > m.width+margin:
		return Event{Kind: EventPointScored, Side: core.SideLeft, X: m.ball.X, Y: m.ball.Y}, true
	default:
		return Event{}, false
	}
}

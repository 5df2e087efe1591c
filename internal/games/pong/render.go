package pong

import (
	"fmt"
	"unicode/utf8"

	"github.com/vovakirdan/games-hub/internal/core"
)

// Visual characters for rendering
const (
	PaddleChar = '█'
	BallChar   = '●'
	NetChar    = '┊'
	TrailChar  = '·'
)

// Render draws the current game state to the screen.
func (g *Game) Render(dst *core.Screen) {
	dst.Clear()
	if g.session == nil {
		dst.DrawTextCentered(dst.Height()/2, "pong: no playfield", core.ColorRed)
		return
	}
	snap := g.session.Snapshot()

	g.drawNet(dst)
	g.drawTrail(dst, snap)
	g.drawParticles(dst, snap)

	dst.DrawRect(snap.Left.ToCells(CellW, CellH).Offset(0, hudTop), PaddleChar, core.ColorNeonCyan)
	dst.DrawRect(snap.Right.ToCells(CellW, CellH).Offset(0, hudTop), PaddleChar, core.ColorNeonPink)
	dst.SetColor(cellX(snap.Ball.X), cellY(snap.Ball.Y), BallChar, core.ColorBrightWhite)

	g.drawHUD(dst, snap)

	switch snap.State {
	case StateIdle:
		drawCenteredMessage(dst, "NEON PONG", fmt.Sprintf("First to %d  |  Enter to start", snap.WinTarget), core.ColorNeonCyan)
	case StatePaused:
		drawCenteredMessage(dst, "PAUSED", "P/Esc to resume, B for menu", core.ColorYellow)
	case StateEnded:
		title, c := "YOU WIN!", core.ColorNeonLime
		if snap.Winner != core.SideLeft {
			title, c = "CPU WINS!", core.ColorNeonPink
		}
		sub := fmt.Sprintf("%d - %d  |  %s  |  Enter to play again", snap.LeftScore, snap.RightScore, snap.Status)
		drawCenteredMessage(dst, title, sub, c)
	}
}

func (g *Game) drawNet(dst *core.Screen) {
	centerX := dst.Width() / 2
	for y := hudTop; y < dst.Height()-hudBottom; y += 2 {
		dst.SetColor(centerX, y, NetChar, core.ColorGray)
	}
}

// drawTrail draws the older half of the trail dimmer than the newer half.
func (g *Game) drawTrail(dst *core.Screen, snap Snapshot) {
	bright := core.ColorByName(snap.TrailColor)
	for i := len(snap.Trail) - 1; i >= 1; i-- {
		c := bright
		if i > len(snap.Trail)/2 {
			c = core.ColorGray
		}
		p := snap.Trail[i]
		dst.SetColor(cellX(p.X), cellY(p.Y), TrailChar, c)
	}
}

func (g *Game) drawParticles(dst *core.Screen, snap Snapshot) {
	for _, p := range snap.Particles {
		ch := '.'
		if p.Life > 0.5 {
			ch = '*'
		}
		y := cellY(p.Y)
		if y < hudTop || y >= dst.Height()-hudBottom {
			continue
		}
		dst.SetColor(cellX(p.X), y, ch, core.ColorByName(p.Color))
	}
}

func (g *Game) drawHUD(dst *core.Screen, snap Snapshot) {
	w := dst.Width()
	centerX := w / 2

	dst.DrawTextColor(1, 0, "YOU", core.ColorNeonCyan)
	dst.DrawTextColor(w-4, 0, "CPU", core.ColorNeonPink)
	dst.DrawTextColor(centerX-4, 0, fmt.Sprintf("%2d", snap.LeftScore), core.ColorBrightWhite)
	dst.DrawTextColor(centerX+3, 0, fmt.Sprintf("%-2d", snap.RightScore), core.ColorBrightWhite)

	coins := fmt.Sprintf("◈ %d", snap.Coins)
	dst.DrawTextColor(6, 0, coins, core.ColorYellow)
	diff := "[" + string(snap.Difficulty) + "]"
	dst.DrawTextColor(w-5-len(diff), 0, diff, core.ColorGray)

	bottom := dst.Height() - 1
	hint := "W/S move · mouse drag · P pause · R restart · Esc menu"
	if snap.Status != "" && snap.State == StateRunning {
		hint = snap.Status + "  ·  " + hint
	}
	dst.DrawTextCentered(bottom, hint, core.ColorGray)
}

// drawCenteredMessage draws a message box in the center of the screen.
func drawCenteredMessage(dst *core.Screen, title, subtitle string, c core.Color) {
	w := dst.Width()
	h := dst.Height()

	boxW := core.Min(core.Max(runeLen(title), runeLen(subtitle))+4, w)
	boxH := 5
	boxX := (w - boxW) / 2
	boxY := (h - boxH) / 2

	box := core.NewRect(boxX, boxY, boxW, boxH)
	dst.DrawRect(box, ' ', core.ColorDefault)
	dst.DrawBox(box, c)

	dst.DrawTextColor(boxX+(boxW-runeLen(title))/2, boxY+1, title, c)
	dst.DrawTextColor(boxX+(boxW-runeLen(subtitle))/2, boxY+3, subtitle, core.ColorDefault)
}

func runeLen(s string) int {
	return utf8.RuneCountInString(s)
}

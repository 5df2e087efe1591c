// Package tui is the terminal front end of the hub: the Bubble Tea models
// for the menu, shop, leaderboard and game screens, and the SSH server
// that hosts them for remote players.
package tui

import (
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/vovakirdan/games-hub/internal/loop"
)

// TickMsg asks the game screen to advance one frame.
type TickMsg time.Time

// tickCmd schedules the next frame. Non-positive rates fall back to the
// driver default.
func tickCmd(tickRate int) tea.Cmd {
	if tickRate <= 0 {
		tickRate = loop.DefaultFPS
	}
	return tea.Tick(time.Second/time.Duration(tickRate), func(t time.Time) tea.Msg {
		return TickMsg(t)
	})
}

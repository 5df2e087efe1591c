package tui

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/table"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/vovakirdan/games-hub/internal/hub"
	"github.com/vovakirdan/games-hub/internal/storage"
)

const historyLimit = 50

type leaderboardTab int

const (
	tabBest leaderboardTab = iota
	tabHistory
)

// LeaderboardModel shows the player's best margins and, when the backend
// keeps one, the recent match history.
type LeaderboardModel struct {
	player  *hub.Player
	matches *storage.Store
	tab     leaderboardTab
	table   table.Model
	help    help.Model
	keys    KeyMap
	stats   storage.MatchStats
	width   int
	height  int
	done    bool
	err     error
}

// NewLeaderboardModel creates the leaderboard screen. matches may be nil.
func NewLeaderboardModel(player *hub.Player, matches *storage.Store, width, height int) LeaderboardModel {
	m := LeaderboardModel{
		player:  player,
		matches: matches,
		help:    help.New(),
		keys:    DefaultKeyMap(),
		width:   width,
		height:  height,
	}
	m.reload()
	return m
}

// createTable creates a table with the given columns and the shared styles.
func (m *LeaderboardModel) createTable(columns []table.Column) table.Model {
	t := table.New(
		table.WithColumns(columns),
		table.WithFocused(true),
		table.WithHeight(max(m.height-10, 5)),
	)

	s := table.DefaultStyles()
	s.Header = s.Header.
		BorderStyle(lipgloss.NormalBorder()).
		BorderForeground(lipgloss.Color("240")).
		BorderBottom(true).
		Bold(true)
	s.Selected = s.Selected.
		Foreground(lipgloss.Color("229")).
		Background(lipgloss.Color("57")).
		Bold(false)
	t.SetStyles(s)
	return t
}

// reload rebuilds the table for the active tab.
func (m *LeaderboardModel) reload() {
	if m.tab == tabHistory && m.matches != nil {
		m.loadHistory()
		return
	}
	m.tab = tabBest
	m.loadBest()
}

func (m *LeaderboardModel) loadBest() {
	m.table = m.createTable([]table.Column{
		{Title: "#", Width: 4},
		{Title: "Score", Width: 9},
		{Title: "Margin", Width: 8},
		{Title: "Date", Width: 16},
	})

	entries := m.player.Economy.Leaderboard()
	rows := make([]table.Row, len(entries))
	for i, e := range entries {
		rows[i] = table.Row{
			fmt.Sprintf("%d", i+1),
			fmt.Sprintf("%d - %d", e.Left, e.Right),
			fmt.Sprintf("%+d", e.Margin()),
			time.UnixMilli(e.Date).Format("Jan 02 15:04"),
		}
	}
	m.table.SetRows(rows)
}

func (m *LeaderboardModel) loadHistory() {
	m.table = m.createTable([]table.Column{
		{Title: "Date", Width: 14},
		{Title: "Score", Width: 9},
		{Title: "Result", Width: 8},
		{Title: "Level", Width: 8},
		{Title: "Time", Width: 7},
	})

	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
	defer cancel()

	records, err := m.matches.RecentMatches(ctx, m.player.Name, historyLimit)
	if err != nil {
		m.err = err
		return
	}
	if m.stats, err = m.matches.Stats(ctx, storage.MatchFilter{Player: m.player.Name}); err != nil {
		m.err = err
	}

	rows := make([]table.Row, len(records))
	for i, r := range records {
		result := "loss"
		if r.Winner == "left" {
			result = "win"
		}
		rows[i] = table.Row{
			r.PlayedTime().Format("Jan 02 15:04"),
			fmt.Sprintf("%d - %d", r.LeftScore, r.RightScore),
			result,
			r.Difficulty,
			r.Duration().Round(time.Second).String(),
		}
	}
	m.table.SetRows(rows)
}

// Init initializes the leaderboard model.
func (m LeaderboardModel) Init() tea.Cmd {
	return nil
}

// Update handles messages for the leaderboard.
func (m LeaderboardModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	var cmd tea.Cmd

	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch {
		case key.Matches(msg, m.keys.Quit), key.Matches(msg, m.keys.Back):
			m.done = true
			return m, nil

		case key.Matches(msg, m.keys.NextTab), key.Matches(msg, m.keys.Left), key.Matches(msg, m.keys.Right):
			if m.matches != nil {
				m.tab = 1 - m.tab
				m.reload()
			}
			return m, nil
		}

	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.help.Width = msg.Width
		m.reload()
		return m, nil
	}

	m.table, cmd = m.table.Update(msg)
	return m, cmd
}

// View renders the leaderboard.
func (m LeaderboardModel) View() string {
	var b strings.Builder

	title := "BEST MARGINS"
	if m.tab == tabHistory {
		title = "MATCH HISTORY"
	}
	b.WriteString("\n")
	b.WriteString(centerText(titleStyle.Render(title), m.width))
	b.WriteString("\n")
	if m.matches != nil {
		b.WriteString(centerText(mutedStyle.Render("tab: best margins / match history"), m.width))
	}
	b.WriteString("\n\n")

	switch {
	case m.err != nil:
		b.WriteString(centerText(mutedStyle.Render("Cannot load history: "+m.err.Error()), m.width))
	case len(m.table.Rows()) == 0:
		empty := lipgloss.NewStyle().
			Foreground(lipgloss.Color("241")).
			Italic(true).
			Padding(2, 4).
			Render("No matches recorded yet.\nWin a match to make the board!")
		b.WriteString(centerText(panelStyle.Render(empty), m.width))
	default:
		b.WriteString(centerText(panelStyle.Render(m.table.View()), m.width))
	}

	if m.tab == tabHistory && m.err == nil {
		b.WriteString("\n")
		summary := fmt.Sprintf("played %d  ·  won %d  ·  lost %d  ·  best margin %+d",
			m.stats.Played, m.stats.Wins, m.stats.Losses, m.stats.BestMargin)
		b.WriteString(centerText(accentStyle.Render(summary), m.width))
	}

	b.WriteString("\n")
	b.WriteString(centerText(mutedStyle.Render(m.help.View(m.keys)), m.width))
	return b.String()
}

// Done returns true once the player leaves the screen.
func (m LeaderboardModel) Done() bool {
	return m.done
}

package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/vovakirdan/games-hub/internal/hub"
	"github.com/vovakirdan/games-hub/internal/registry"
)

// MenuChoice is what the player picked in the hub menu.
type MenuChoice int

const (
	ChoiceNone MenuChoice = iota
	ChoicePlay
	ChoiceShop
	ChoiceLeaderboard
	ChoiceQuit
)

type menuItemKind int

const (
	itemGame menuItemKind = iota
	itemShop
	itemLeaderboard
	itemDifficulty
	itemSound
	itemQuit
)

// MenuItem is one line of the hub menu.
type MenuItem struct {
	kind   menuItemKind
	GameID string
	Title  string
}

// MenuModel is the hub's main menu: the game gallery plus shop, leaderboard
// and settings entries.
type MenuModel struct {
	items  []MenuItem
	cursor int
	width  int
	height int
	player *hub.Player
	keys   KeyMap
	help   help.Model

	choice MenuChoice
	gameID string
}

// NewMenuModel creates the menu for player.
func NewMenuModel(player *hub.Player, width, height int) MenuModel {
	games := registry.List()
	items := make([]MenuItem, 0, len(games)+5)
	for _, g := range games {
		items = append(items, MenuItem{kind: itemGame, GameID: g.ID, Title: "Play " + g.Title})
	}
	items = append(items,
		MenuItem{kind: itemShop, Title: "Trail Shop"},
		MenuItem{kind: itemLeaderboard, Title: "Leaderboard"},
		MenuItem{kind: itemDifficulty},
		MenuItem{kind: itemSound},
		MenuItem{kind: itemQuit, Title: "Quit"},
	)

	return MenuModel{
		items:  items,
		width:  width,
		height: height,
		player: player,
		keys:   DefaultKeyMap(),
		help:   help.New(),
	}
}

// Init initializes the menu model.
func (m MenuModel) Init() tea.Cmd {
	return nil
}

// Update handles messages for the menu.
func (m MenuModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		return m.handleKey(msg)
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.help.Width = msg.Width
	}
	return m, nil
}

// handleKey processes keyboard input for menu navigation.
func (m MenuModel) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, m.keys.Quit):
		m.choice = ChoiceQuit

	case key.Matches(msg, m.keys.Up):
		if m.cursor > 0 {
			m.cursor--
		}

	case key.Matches(msg, m.keys.Down):
		if m.cursor < len(m.items)-1 {
			m.cursor++
		}

	case key.Matches(msg, m.keys.Left), key.Matches(msg, m.keys.Right):
		m.adjust(m.items[m.cursor])

	case key.Matches(msg, m.keys.Confirm):
		m.activate(m.items[m.cursor])
	}
	return m, nil
}

func (m *MenuModel) activate(item MenuItem) {
	switch item.kind {
	case itemGame:
		m.choice = ChoicePlay
		m.gameID = item.GameID
	case itemShop:
		m.choice = ChoiceShop
	case itemLeaderboard:
		m.choice = ChoiceLeaderboard
	case itemQuit:
		m.choice = ChoiceQuit
	default:
		m.adjust(item)
	}
}

// adjust cycles a setting in place.
func (m *MenuModel) adjust(item MenuItem) {
	settings := m.player.Settings
	switch item.kind {
	case itemDifficulty:
		settings.SetDifficulty(settings.Difficulty().Next())
	case itemSound:
		settings.SetAudioEnabled(!settings.Values().AudioEnabled)
	}
}

func (m MenuModel) label(item MenuItem) string {
	values := m.player.Settings.Values()
	switch item.kind {
	case itemDifficulty:
		return fmt.Sprintf("Difficulty: %s", values.Difficulty)
	case itemSound:
		if values.AudioEnabled {
			return "Sound: on"
		}
		return "Sound: off"
	default:
		return item.Title
	}
}

// View renders the menu.
func (m MenuModel) View() string {
	var b strings.Builder

	b.WriteString("\n")
	b.WriteString(centerText(titleStyle.Render("N E O N   G A M E S   H U B"), m.width))
	b.WriteString("\n\n")
	coins := coinStyle.Render(fmt.Sprintf("◈ %d coins", m.player.Economy.Coins()))
	trail := accentStyle.Render("trail: " + m.player.Economy.Trail())
	b.WriteString(centerText(coins+"   "+trail, m.width))
	b.WriteString("\n\n")

	for i, item := range m.items {
		line := "  " + m.label(item)
		if i == m.cursor {
			line = accentStyle.Render("> " + m.label(item))
		}
		b.WriteString(centerText(line, m.width))
		b.WriteString("\n")
	}

	b.WriteString("\n")
	b.WriteString(centerText(mutedStyle.Render(m.help.View(m.keys)), m.width))
	b.WriteString("\n")
	return b.String()
}

// Choice returns what the player picked, or ChoiceNone.
func (m MenuModel) Choice() MenuChoice {
	return m.choice
}

// GameID returns the picked game when Choice is ChoicePlay.
func (m MenuModel) GameID() string {
	return m.gameID
}

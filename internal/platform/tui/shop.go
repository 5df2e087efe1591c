package tui

import (
	"errors"
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/table"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/vovakirdan/games-hub/internal/economy"
	"github.com/vovakirdan/games-hub/internal/hub"
)

// ShopModel lists trail cosmetics. Confirming an item buys it, or equips it
// when already owned.
type ShopModel struct {
	player *hub.Player
	table  table.Model
	help   help.Model
	keys   KeyMap
	items  []economy.ShopEntry
	status string
	width  int
	height int
	done   bool
}

// NewShopModel creates the shop screen.
func NewShopModel(player *hub.Player, width, height int) ShopModel {
	t := table.New(
		table.WithColumns([]table.Column{
			{Title: "Trail", Width: 14},
			{Title: "Price", Width: 7},
			{Title: "Status", Width: 10},
		}),
		table.WithFocused(true),
		table.WithHeight(6),
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

	m := ShopModel{
		player: player,
		table:  t,
		help:   help.New(),
		keys:   DefaultKeyMap(),
		width:  width,
		height: height,
	}
	m.refresh()
	return m
}

// refresh reloads the catalog, keeping the cursor.
func (m *ShopModel) refresh() {
	m.items = m.player.Economy.Shop()
	rows := make([]table.Row, len(m.items))
	for i, it := range m.items {
		status := ""
		switch {
		case it.Equipped:
			status = "equipped"
		case it.Owned:
			status = "owned"
		}
		rows[i] = table.Row{it.Name, fmt.Sprintf("◈ %d", it.Price), status}
	}
	m.table.SetRows(rows)
}

// Init initializes the shop model.
func (m ShopModel) Init() tea.Cmd {
	return nil
}

// Update handles messages for the shop.
func (m ShopModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	var cmd tea.Cmd

	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch {
		case key.Matches(msg, m.keys.Quit), key.Matches(msg, m.keys.Back):
			m.done = true
			return m, nil
		case key.Matches(msg, m.keys.Confirm):
			m.buyOrEquip()
			return m, nil
		}

	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.help.Width = msg.Width
		return m, nil
	}

	m.table, cmd = m.table.Update(msg)
	return m, cmd
}

func (m *ShopModel) buyOrEquip() {
	i := m.table.Cursor()
	if i < 0 || i >= len(m.items) {
		return
	}
	item := m.items[i]
	eco := m.player.Economy

	var err error
	if item.Owned {
		err = eco.Equip(item.ID)
	} else {
		err = eco.Purchase(item.ID)
	}

	switch {
	case errors.Is(err, economy.ErrInsufficientCoins):
		m.status = fmt.Sprintf("Not enough coins for %s (◈ %d).", item.Name, item.Price)
	case err != nil:
		m.status = err.Error()
	case item.Owned:
		m.status = item.Name + " equipped."
	default:
		m.status = fmt.Sprintf("Bought %s for ◈ %d.", item.Name, item.Price)
	}
	m.refresh()
}

// View renders the shop.
func (m ShopModel) View() string {
	var b strings.Builder

	b.WriteString("\n")
	b.WriteString(centerText(titleStyle.Render("TRAIL SHOP"), m.width))
	b.WriteString("\n\n")
	b.WriteString(centerText(coinStyle.Render(fmt.Sprintf("◈ %d coins", m.player.Economy.Coins())), m.width))
	b.WriteString("\n\n")
	b.WriteString(centerText(panelStyle.Render(m.table.View()), m.width))
	b.WriteString("\n")
	if m.status != "" {
		b.WriteString(centerText(accentStyle.Render(m.status), m.width))
		b.WriteString("\n")
	}
	b.WriteString("\n")
	b.WriteString(centerText(mutedStyle.Render(m.help.View(m.keys)), m.width))
	return b.String()
}

// Done returns true once the player leaves the shop.
func (m ShopModel) Done() bool {
	return m.done
}

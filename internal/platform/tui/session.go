package tui

import (
	"io"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/vovakirdan/games-hub/internal/core"
	"github.com/vovakirdan/games-hub/internal/games/pong"
	"github.com/vovakirdan/games-hub/internal/hub"
	"github.com/vovakirdan/games-hub/internal/registry"
)

type screen int

const (
	screenMenu screen = iota
	screenGame
	screenShop
	screenLeaderboard
)

// serviceBinder is implemented by games that take per-player services.
type serviceBinder interface {
	Bind(pong.Services)
}

// SessionModel manages one player's flow between the menu, a game, the shop
// and the leaderboard. It is the top-level model both locally and over SSH.
type SessionModel struct {
	hub    *hub.Hub
	player *hub.Player
	config core.RuntimeConfig
	bell   io.Writer

	screen screen
	menu   MenuModel
	game   *GameModel
	shop   ShopModel
	board  LeaderboardModel

	direct   string // game to open at start; leaving it ends the session
	quitting bool
}

// NewSessionModel creates a session that starts at the menu.
func NewSessionModel(h *hub.Hub, player *hub.Player, cfg core.RuntimeConfig, bell io.Writer) SessionModel {
	return SessionModel{
		hub:    h,
		player: player,
		config: cfg,
		bell:   bell,
		menu:   NewMenuModel(player, cfg.ScreenW, cfg.ScreenH),
	}
}

// Direct makes the session open gameID immediately and end when the player
// leaves it.
func (m SessionModel) Direct(gameID string) SessionModel {
	m.direct = gameID
	return m
}

// Init initializes the session.
func (m SessionModel) Init() tea.Cmd {
	if m.direct == "" {
		return m.menu.Init()
	}
	return nil
}

// Update routes messages to the active screen and handles transitions.
func (m SessionModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	if wsm, ok := msg.(tea.WindowSizeMsg); ok {
		m.config.ScreenW = wsm.Width
		m.config.ScreenH = wsm.Height
		if m.direct != "" && m.game == nil {
			return m.openGame(m.direct)
		}
	}

	switch m.screen {
	case screenGame:
		return m.updateGame(msg)
	case screenShop:
		return m.updateShop(msg)
	case screenLeaderboard:
		return m.updateLeaderboard(msg)
	default:
		return m.updateMenu(msg)
	}
}

func (m SessionModel) updateMenu(msg tea.Msg) (tea.Model, tea.Cmd) {
	newMenu, cmd := m.menu.Update(msg)
	if menuModel, ok := newMenu.(MenuModel); ok {
		m.menu = menuModel
	}

	switch m.menu.Choice() {
	case ChoiceQuit:
		m.quitting = true
		return m, tea.Quit
	case ChoicePlay:
		return m.openGame(m.menu.GameID())
	case ChoiceShop:
		m.shop = NewShopModel(m.player, m.config.ScreenW, m.config.ScreenH)
		m.screen = screenShop
		return m, m.shop.Init()
	case ChoiceLeaderboard:
		m.board = NewLeaderboardModel(m.player, m.hub.Matches(), m.config.ScreenW, m.config.ScreenH)
		m.screen = screenLeaderboard
		return m, m.board.Init()
	}
	return m, cmd
}

// openGame creates the game bound to this session's player.
func (m SessionModel) openGame(id string) (tea.Model, tea.Cmd) {
	game, err := registry.Create(id)
	if err != nil {
		m.hub.Logger().Error("cannot open game", "game", id, "error", err)
		return m.backToMenu()
	}
	if b, ok := game.(serviceBinder); ok {
		b.Bind(m.hub.Services(m.player))
	}

	gm := NewGameModel(game, m.config, m.bell)
	m.game = &gm
	m.screen = screenGame
	return m, m.game.Init()
}

func (m SessionModel) updateGame(msg tea.Msg) (tea.Model, tea.Cmd) {
	newModel, cmd := m.game.Update(msg)
	if gameModel, ok := newModel.(GameModel); ok {
		m.game = &gameModel
	}

	switch {
	case m.game.IsQuitting():
		m.quitting = true
		return m, tea.Quit
	case m.game.BackToMenu():
		m.game = nil
		if m.direct != "" {
			m.quitting = true
			return m, tea.Quit
		}
		return m.backToMenu()
	}
	return m, cmd
}

func (m SessionModel) updateShop(msg tea.Msg) (tea.Model, tea.Cmd) {
	newModel, cmd := m.shop.Update(msg)
	if shopModel, ok := newModel.(ShopModel); ok {
		m.shop = shopModel
	}
	if m.shop.Done() {
		return m.backToMenu()
	}
	return m, cmd
}

func (m SessionModel) updateLeaderboard(msg tea.Msg) (tea.Model, tea.Cmd) {
	newModel, cmd := m.board.Update(msg)
	if boardModel, ok := newModel.(LeaderboardModel); ok {
		m.board = boardModel
	}
	if m.board.Done() {
		return m.backToMenu()
	}
	return m, cmd
}

func (m SessionModel) backToMenu() (tea.Model, tea.Cmd) {
	m.screen = screenMenu
	m.menu = NewMenuModel(m.player, m.config.ScreenW, m.config.ScreenH)
	return m, m.menu.Init()
}

// View renders the active screen.
func (m SessionModel) View() string {
	if m.quitting {
		return ""
	}

	switch m.screen {
	case screenGame:
		if m.game != nil {
			return m.game.View()
		}
	case screenShop:
		return m.shop.View()
	case screenLeaderboard:
		return m.board.View()
	}
	return m.menu.View()
}

// Run starts the hub locally for player. A non-empty gameID skips the menu.
func Run(h *hub.Hub, player *hub.Player, cfg core.RuntimeConfig, gameID string, bell io.Writer) error {
	model := NewSessionModel(h, player, cfg, bell)
	if gameID != "" {
		model = model.Direct(gameID)
	}

	p := tea.NewProgram(
		model,
		tea.WithAltScreen(),
		tea.WithMouseCellMotion(),
	)

	_, err := p.Run()
	return err
}

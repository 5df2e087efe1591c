// Package hub wires the shared backend into per-player services: one
// economy and one settings store per player namespace.
package hub

import (
	"context"
	"fmt"
	"regexp"
	"sync"

	"github.com/charmbracelet/log"

	"github.com/vovakirdan/games-hub/internal/config"
	"github.com/vovakirdan/games-hub/internal/economy"
	"github.com/vovakirdan/games-hub/internal/games/pong"
	"github.com/vovakirdan/games-hub/internal/storage"
)

// LocalPlayer is the namespace of the player at the local terminal.
const LocalPlayer = ""

var playerName = regexp.MustCompile(`^[A-Za-z0-9_.-]{1,32}$`)

// Player is one player's persisted state.
type Player struct {
	Name     string
	Economy  *economy.Economy
	Settings *economy.Settings
}

// Hub hands out players over a single backend. Players are cached so that
// concurrent sessions of the same player share one wallet.
type Hub struct {
	backend *storage.Backend
	cfg     config.PongConfig
	logger  *log.Logger

	mu      sync.Mutex
	players map[string]*playerSlot
}

// playerSlot loads its player once, outside Hub.mu. Only callers asking for
// the same name wait on a slow load.
type playerSlot struct {
	once   sync.Once
	player *Player
}

// New creates a hub over an open backend.
func New(backend *storage.Backend, cfg config.PongConfig, logger *log.Logger) *Hub {
	if logger == nil {
		logger = log.Default()
	}
	return &Hub{
		backend: backend,
		cfg:     cfg,
		logger:  logger,
		players: make(map[string]*playerSlot),
	}
}

// Player loads (once) and returns the named player. LocalPlayer uses the
// unprefixed keys.
func (h *Hub) Player(ctx context.Context, name string) (*Player, error) {
	if name != LocalPlayer && !playerName.MatchString(name) {
		return nil, fmt.Errorf("hub: invalid player name %q", name)
	}

	h.mu.Lock()
	slot, ok := h.players[name]
	if !ok {
		slot = &playerSlot{}
		h.players[name] = slot
	}
	h.mu.Unlock()

	slot.once.Do(func() {
		slot.player = h.load(ctx, name)
	})
	return slot.player, nil
}

func (h *Hub) load(ctx context.Context, name string) *Player {
	prefix := ""
	if name != LocalPlayer {
		prefix = "player:" + name + ":"
	}
	kv := storage.WithPrefix(h.backend.KV, prefix)
	logger := h.logger.With("player", name)

	p := &Player{
		Name:     name,
		Economy:  economy.New(kv, h.cfg.Economy, logger),
		Settings: economy.NewSettings(kv, logger),
	}
	p.Economy.Load(ctx)
	p.Settings.Load(ctx)
	return p
}

// playerRecorder stamps recorded matches with the player's name.
type playerRecorder struct {
	store *storage.Store
	name  string
}

func (r playerRecorder) SaveMatch(ctx context.Context, rec storage.MatchRecord) (int64, error) {
	rec.Player = r.name
	return r.store.SaveMatch(ctx, rec)
}

// Services returns pong collaborators bound to p.
func (h *Hub) Services(p *Player) pong.Services {
	var rec pong.MatchRecorder
	if h.backend.Matches != nil {
		rec = playerRecorder{store: h.backend.Matches, name: p.Name}
	}
	return pong.Services{
		Economy:  p.Economy,
		Settings: p.Settings,
		Recorder: rec,
		Logger:   h.logger,
	}
}

// Config returns the pong tuning the hub was created with.
func (h *Hub) Config() config.PongConfig { return h.cfg }

// Matches returns the match history store, or nil when the backend has none.
func (h *Hub) Matches() *storage.Store { return h.backend.Matches }

// Logger returns the hub logger.
func (h *Hub) Logger() *log.Logger { return h.logger }

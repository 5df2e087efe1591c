// Package economy tracks the player's coins, cosmetics and leaderboard and
// keeps them persisted. The in-memory state is authoritative: a failed write
// is logged and play continues.
package economy

import (
	"context"
	"errors"
	"slices"
	"sort"
	"strings"
	"sync"
	"time"

	"github.com/charmbracelet/log"

	"github.com/vovakirdan/games-hub/internal/config"
	"github.com/vovakirdan/games-hub/internal/core"
	"github.com/vovakirdan/games-hub/internal/storage"
)

var (
	ErrInsufficientCoins = errors.New("economy: insufficient coins")
	ErrUnknownItem       = errors.New("economy: unknown item")
	ErrNotOwned          = errors.New("economy: item not owned")
)

const persistTimeout = 2 * time.Second

// Delta reports a coin change and the resulting balance.
type Delta struct {
	Coins   int `json:"coins"`
	Balance int `json:"balance"`
}

// LeaderboardEntry is one finished match, keyed by margin.
type LeaderboardEntry struct {
	Date  int64 `json:"date"` // unix milliseconds
	Left  int   `json:"left"`
	Right int   `json:"right"`
}

// Margin is the human's lead at the end of the match.
func (e LeaderboardEntry) Margin() int {
	return e.Left - e.Right
}

// ShopEntry is a catalog item with the player's relation to it.
type ShopEntry struct {
	config.ShopItem
	Owned    bool `json:"owned"`
	Equipped bool `json:"equipped"`
}

// Economy owns coins, owned cosmetics, the equipped trail and the leaderboard.
// Each mutation persists before returning. Safe for concurrent use.
type Economy struct {
	mu     sync.Mutex
	kv     storage.KV
	cfg    config.EconomyConfig
	logger *log.Logger
	now    func() time.Time

	coins       int
	owned       []string
	trail       string
	leaderboard []LeaderboardEntry
}

// New creates an economy with default state. Call Load to read persisted state.
func New(kv storage.KV, cfg config.EconomyConfig, logger *log.Logger) *Economy {
	if logger == nil {
		logger = log.Default()
	}
	if cfg.LeaderboardSize <= 0 {
		cfg.LeaderboardSize = 20
	}
	if cfg.DefaultTrail == "" {
		cfg.DefaultTrail = "cyan"
	}
	return &Economy{
		kv:     kv,
		cfg:    cfg,
		logger: logger,
		now:    time.Now,
		trail:  cfg.DefaultTrail,
	}
}

// Load reads persisted state. Missing keys keep defaults; unreadable keys are
// logged and also keep defaults.
func (e *Economy) Load(ctx context.Context) {
	e.mu.Lock()
	defer e.mu.Unlock()

	e.coins = load(ctx, e, storage.KeyCoins, 0)
	e.owned = load(ctx, e, storage.KeyOwned, []string{})
	e.trail = load(ctx, e, storage.KeyTrail, e.cfg.DefaultTrail)
	e.leaderboard = load(ctx, e, storage.KeyLeaderboard, []LeaderboardEntry{})
	if e.coins < 0 {
		e.coins = 0
	}
}

func load[T any](ctx context.Context, e *Economy, key string, fallback T) T {
	v, err := storage.GetJSON(ctx, e.kv, key, fallback)
	if err != nil {
		e.logger.Warn("load failed, using default", "key", key, "error", err)
	}
	return v
}

// persist writes v at key and logs failures. Callers hold e.mu.
func (e *Economy) persist(key string, v any) {
	ctx, cancel := context.WithTimeout(context.Background(), persistTimeout)
	defer cancel()
	if err := storage.SetJSON(ctx, e.kv, key, v); err != nil {
		e.logger.Warn("persist failed", "key", key, "error", err)
	}
}

// Coins returns the current balance.
func (e *Economy) Coins() int {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.coins
}

// Trail returns the equipped trail color name.
func (e *Economy) Trail() string {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.trail
}

// Owned returns the owned item IDs in purchase order.
func (e *Economy) Owned() []string {
	e.mu.Lock()
	defer e.mu.Unlock()
	return slices.Clone(e.owned)
}

// Leaderboard returns entries ordered by margin, best first.
func (e *Economy) Leaderboard() []LeaderboardEntry {
	e.mu.Lock()
	defer e.mu.Unlock()
	return slices.Clone(e.leaderboard)
}

// Shop returns the catalog with ownership and equip flags.
func (e *Economy) Shop() []ShopEntry {
	e.mu.Lock()
	defer e.mu.Unlock()

	entries := make([]ShopEntry, 0, len(e.cfg.Shop))
	for _, it := range e.cfg.Shop {
		entries = append(entries, ShopEntry{
			ShopItem: it,
			Owned:    slices.Contains(e.owned, it.ID),
			Equipped: trailName(it.ID) == e.trail,
		})
	}
	return entries
}

// OnRallyPoint credits the human when the left side scores.
func (e *Economy) OnRallyPoint(scorer core.Side) Delta {
	e.mu.Lock()
	defer e.mu.Unlock()

	if scorer != core.SideLeft {
		return Delta{Balance: e.coins}
	}
	e.coins += e.cfg.RallyCoins
	e.persist(storage.KeyCoins, e.coins)
	return Delta{Coins: e.cfg.RallyCoins, Balance: e.coins}
}

// OnMatchEnd records the result on the leaderboard and pays the match reward.
func (e *Economy) OnMatchEnd(winner core.Side, left, right int) (Delta, LeaderboardEntry) {
	e.mu.Lock()
	defer e.mu.Unlock()

	entry := LeaderboardEntry{Date: e.now().UnixMilli(), Left: left, Right: right}
	board := append(slices.Clone(e.leaderboard), entry)
	sort.SliceStable(board, func(i, j int) bool {
		return board[i].Margin() > board[j].Margin()
	})
	if len(board) > e.cfg.LeaderboardSize {
		board = board[:e.cfg.LeaderboardSize]
	}
	e.leaderboard = board
	e.persist(storage.KeyLeaderboard, e.leaderboard)

	reward := e.cfg.LossCoins
	if winner == core.SideLeft {
		reward = e.cfg.WinCoins
	}
	e.coins += reward
	e.persist(storage.KeyCoins, e.coins)

	return Delta{Coins: reward, Balance: e.coins}, entry
}

// Purchase buys an item if it is not owned yet, then equips it.
// An insufficient balance leaves all state untouched.
func (e *Economy) Purchase(itemID string) error {
	e.mu.Lock()
	defer e.mu.Unlock()

	item, ok := e.cfg.Item(itemID)
	if !ok {
		return ErrUnknownItem
	}

	if !slices.Contains(e.owned, item.ID) {
		if e.coins < item.Price {
			return ErrInsufficientCoins
		}
		e.coins -= item.Price
		e.owned = append(e.owned, item.ID)
		e.persist(storage.KeyCoins, e.coins)
		e.persist(storage.KeyOwned, e.owned)
	}

	e.equipLocked(item.ID)
	return nil
}

// Equip selects an owned item's trail.
func (e *Economy) Equip(itemID string) error {
	e.mu.Lock()
	defer e.mu.Unlock()

	if _, ok := e.cfg.Item(itemID); !ok {
		return ErrUnknownItem
	}
	if !slices.Contains(e.owned, itemID) {
		return ErrNotOwned
	}
	e.equipLocked(itemID)
	return nil
}

func (e *Economy) equipLocked(itemID string) {
	e.trail = trailName(itemID)
	e.persist(storage.KeyTrail, e.trail)
}

// trailName strips the catalog prefix: "trail-pink" is stored as "pink".
func trailName(itemID string) string {
	return strings.TrimPrefix(itemID, "trail-")
}

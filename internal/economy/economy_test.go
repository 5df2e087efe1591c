package economy

import (
	"context"
	"errors"
	"slices"
	"testing"
	"time"

	"github.com/vovakirdan/games-hub/internal/config"
	"github.com/vovakirdan/games-hub/internal/core"
	"github.com/vovakirdan/games-hub/internal/storage"
)

// flakyKV fails every write while failing is set.
type flakyKV struct {
	*storage.MemoryKV
	failing bool
}

func (f *flakyKV) Set(ctx context.Context, key string, value []byte) error {
	if f.failing {
		return errors.New("quota exceeded")
	}
	return f.MemoryKV.Set(ctx, key, value)
}

func newTestEconomy(t *testing.T, kv storage.KV) *Economy {
	t.Helper()
	e := New(kv, config.DefaultPongConfig().Economy, nil)
	e.Load(context.Background())
	return e
}

func setCoins(t *testing.T, kv storage.KV, coins int) {
	t.Helper()
	if err := storage.SetJSON(context.Background(), kv, storage.KeyCoins, coins); err != nil {
		t.Fatal(err)
	}
}

func TestOnRallyPoint(t *testing.T) {
	kv := storage.NewMemoryKV()
	e := newTestEconomy(t, kv)

	d := e.OnRallyPoint(core.SideLeft)
	if d.Coins != 3 || d.Balance != 3 {
		t.Errorf("left point delta = %+v, expected +3", d)
	}

	d = e.OnRallyPoint(core.SideRight)
	if d.Coins != 0 || d.Balance != 3 {
		t.Errorf("right point delta = %+v, expected no change", d)
	}

	persisted, _ := storage.GetJSON(context.Background(), kv, storage.KeyCoins, -1)
	if persisted != 3 {
		t.Errorf("persisted coins = %d, expected 3", persisted)
	}
}

func TestOnMatchEndRewards(t *testing.T) {
	tests := []struct {
		name   string
		winner core.Side
		left   int
		right  int
		reward int
	}{
		{"win", core.SideLeft, 7, 4, 20},
		{"loss", core.SideRight, 2, 7, 5},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			e := newTestEconomy(t, storage.NewMemoryKV())
			d, entry := e.OnMatchEnd(tt.winner, tt.left, tt.right)
			if d.Coins != tt.reward || d.Balance != tt.reward {
				t.Errorf("delta = %+v, expected +%d", d, tt.reward)
			}
			if entry.Left != tt.left || entry.Right != tt.right || entry.Date == 0 {
				t.Errorf("entry = %+v", entry)
			}
		})
	}
}

func TestLeaderboardOrderingAndBound(t *testing.T) {
	kv := storage.NewMemoryKV()
	e := newTestEconomy(t, kv)

	// Margins +2, -1, +5, 0 end up as +5, +2, 0, -1.
	e.OnMatchEnd(core.SideLeft, 7, 5)
	e.OnMatchEnd(core.SideRight, 6, 7)
	e.OnMatchEnd(core.SideLeft, 7, 2)
	e.OnMatchEnd(core.SideLeft, 7, 7)

	var margins []int
	for _, entry := range e.Leaderboard() {
		margins = append(margins, entry.Margin())
	}
	if !slices.Equal(margins, []int{5, 2, 0, -1}) {
		t.Errorf("margins = %v, expected [5 2 0 -1]", margins)
	}

	persisted, err := storage.GetJSON(context.Background(), kv, storage.KeyLeaderboard, []LeaderboardEntry(nil))
	if err != nil || len(persisted) != 4 || persisted[0].Margin() != 5 {
		t.Errorf("persisted leaderboard = %+v, %v", persisted, err)
	}

	for i := 0; i < 30; i++ {
		e.OnMatchEnd(core.SideRight, 0, 7)
	}
	board := e.Leaderboard()
	if len(board) != 20 {
		t.Fatalf("leaderboard size = %d, expected 20", len(board))
	}
	if board[0].Margin() != 5 {
		t.Errorf("best entry lost after truncation: %+v", board[0])
	}
}

func TestLeaderboardStableForEqualMargins(t *testing.T) {
	e := newTestEconomy(t, storage.NewMemoryKV())
	tick := int64(0)
	e.now = func() time.Time {
		tick++
		return time.UnixMilli(tick)
	}

	e.OnMatchEnd(core.SideLeft, 7, 5)
	e.OnMatchEnd(core.SideLeft, 7, 5)
	e.OnMatchEnd(core.SideLeft, 7, 5)

	board := e.Leaderboard()
	for i := 1; i < len(board); i++ {
		if board[i-1].Date > board[i].Date {
			t.Errorf("equal margins reordered: %+v", board)
		}
	}
}

func TestPurchase(t *testing.T) {
	kv := storage.NewMemoryKV()
	setCoins(t, kv, 25)
	e := newTestEconomy(t, kv)

	if err := e.Purchase("trail-lime"); !errors.Is(err, ErrInsufficientCoins) {
		t.Fatalf("Purchase(trail-lime) = %v, expected ErrInsufficientCoins", err)
	}
	if e.Coins() != 25 || len(e.Owned()) != 0 || e.Trail() != "cyan" {
		t.Errorf("failed purchase changed state: coins=%d owned=%v trail=%s", e.Coins(), e.Owned(), e.Trail())
	}

	if err := e.Purchase("trail-pink"); err != nil {
		t.Fatalf("Purchase(trail-pink) = %v", err)
	}
	if e.Coins() != 5 {
		t.Errorf("coins = %d, expected 5", e.Coins())
	}
	if e.Trail() != "pink" {
		t.Errorf("purchase should equip: trail = %q", e.Trail())
	}

	// Buying an owned item never charges again.
	if err := e.Purchase("trail-pink"); err != nil {
		t.Fatalf("re-purchase = %v", err)
	}
	if e.Coins() != 5 {
		t.Errorf("re-purchase charged: coins = %d", e.Coins())
	}

	if err := e.Purchase("trail-gold"); !errors.Is(err, ErrUnknownItem) {
		t.Errorf("unknown item = %v", err)
	}

	ctx := context.Background()
	owned, _ := storage.GetJSON(ctx, kv, storage.KeyOwned, []string(nil))
	trail, _ := storage.GetJSON(ctx, kv, storage.KeyTrail, "")
	coins, _ := storage.GetJSON(ctx, kv, storage.KeyCoins, 0)
	if !slices.Equal(owned, []string{"trail-pink"}) || trail != "pink" || coins != 5 {
		t.Errorf("persisted state = %v / %q / %d", owned, trail, coins)
	}
}

func TestEquip(t *testing.T) {
	kv := storage.NewMemoryKV()
	setCoins(t, kv, 100)
	e := newTestEconomy(t, kv)

	if err := e.Equip("trail-sunset"); !errors.Is(err, ErrNotOwned) {
		t.Errorf("Equip(not owned) = %v, expected ErrNotOwned", err)
	}
	if err := e.Equip("trail-rainbow"); !errors.Is(err, ErrUnknownItem) {
		t.Errorf("Equip(unknown) = %v, expected ErrUnknownItem", err)
	}

	_ = e.Purchase("trail-sunset")
	_ = e.Purchase("trail-lime")
	if err := e.Equip("trail-sunset"); err != nil {
		t.Fatalf("Equip(owned) = %v", err)
	}
	if e.Trail() != "sunset" {
		t.Errorf("trail = %q", e.Trail())
	}

	shop := e.Shop()
	if len(shop) != 4 {
		t.Fatalf("shop size = %d", len(shop))
	}
	for _, it := range shop {
		wantOwned := it.ID == "trail-sunset" || it.ID == "trail-lime"
		if it.Owned != wantOwned || it.Equipped != (it.ID == "trail-sunset") {
			t.Errorf("shop entry %+v", it)
		}
	}
}

func TestPersistenceFailureKeepsMemoryState(t *testing.T) {
	kv := &flakyKV{MemoryKV: storage.NewMemoryKV()}
	setCoins(t, kv, 40)
	e := newTestEconomy(t, kv)

	kv.failing = true
	d := e.OnRallyPoint(core.SideLeft)
	if d.Balance != 43 || e.Coins() != 43 {
		t.Errorf("in-memory balance = %d, expected 43", e.Coins())
	}
	if err := e.Purchase("trail-pink"); err != nil {
		t.Errorf("purchase should succeed in memory: %v", err)
	}
	if e.Coins() != 23 {
		t.Errorf("coins = %d, expected 23", e.Coins())
	}

	persisted, _ := storage.GetJSON(context.Background(), kv, storage.KeyCoins, 0)
	if persisted != 40 {
		t.Errorf("failed writes should not reach storage, got %d", persisted)
	}
}

func TestLoadRestoresState(t *testing.T) {
	kv := storage.NewMemoryKV()
	setCoins(t, kv, 60)
	first := newTestEconomy(t, kv)
	_ = first.Purchase("trail-lime")
	first.OnMatchEnd(core.SideLeft, 7, 1)

	second := newTestEconomy(t, kv)
	if second.Coins() != first.Coins() || second.Trail() != "lime" {
		t.Errorf("reloaded coins=%d trail=%q", second.Coins(), second.Trail())
	}
	if len(second.Leaderboard()) != 1 {
		t.Errorf("reloaded leaderboard = %+v", second.Leaderboard())
	}
}

func TestLoadCorruptValuesUseDefaults(t *testing.T) {
	kv := storage.NewMemoryKV()
	ctx := context.Background()
	_ = kv.Set(ctx, storage.KeyCoins, []byte("{"))
	_ = kv.Set(ctx, storage.KeyLeaderboard, []byte(`"nope"`))

	e := newTestEconomy(t, kv)
	if e.Coins() != 0 || len(e.Leaderboard()) != 0 || e.Trail() != "cyan" {
		t.Errorf("corrupt state not defaulted: coins=%d board=%v trail=%q", e.Coins(), e.Leaderboard(), e.Trail())
	}
}

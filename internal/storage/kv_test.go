package storage

import (
	"context"
	"errors"
	"testing"

	"github.com/redis/go-redis/v9"
)

type failingKV struct{ err error }

func (f failingKV) Get(context.Context, string) ([]byte, error) { return nil, f.err }
func (f failingKV) Set(context.Context, string, []byte) error   { return f.err }

func TestJSONHelpers(t *testing.T) {
	ctx := context.Background()
	kv := NewMemoryKV()

	got, err := GetJSON(ctx, kv, KeyOwned, []string{"default"})
	if err != nil || len(got) != 1 || got[0] != "default" {
		t.Errorf("missing key should return fallback, got %v, %v", got, err)
	}

	if err := SetJSON(ctx, kv, KeyOwned, []string{"trail-pink", "trail-lime"}); err != nil {
		t.Fatalf("SetJSON() failed: %v", err)
	}
	got, err = GetJSON(ctx, kv, KeyOwned, []string(nil))
	if err != nil || len(got) != 2 || got[1] != "trail-lime" {
		t.Errorf("GetJSON() = %v, %v", got, err)
	}
}

func TestGetJSONCorruptValue(t *testing.T) {
	ctx := context.Background()
	kv := NewMemoryKV()
	_ = kv.Set(ctx, KeyCoins, []byte("not json"))

	got, err := GetJSON(ctx, kv, KeyCoins, 7)
	if err == nil {
		t.Error("corrupt value should report an error")
	}
	if got != 7 {
		t.Errorf("corrupt value should yield fallback, got %d", got)
	}
}

func TestJSONHelpersPropagateBackendErrors(t *testing.T) {
	ctx := context.Background()
	boom := errors.New("disk full")
	kv := failingKV{err: boom}

	if _, err := GetJSON(ctx, kv, KeyCoins, 0); !errors.Is(err, boom) {
		t.Errorf("GetJSON error = %v, expected wrapped backend error", err)
	}
	if err := SetJSON(ctx, kv, KeyCoins, 5); !errors.Is(err, boom) {
		t.Errorf("SetJSON error = %v, expected wrapped backend error", err)
	}
}

func TestMemoryKVCopiesValues(t *testing.T) {
	ctx := context.Background()
	kv := NewMemoryKV()

	buf := []byte("abc")
	_ = kv.Set(ctx, "k", buf)
	buf[0] = 'X'

	got, _ := kv.Get(ctx, "k")
	if string(got) != "abc" {
		t.Errorf("stored value aliased caller buffer: %q", got)
	}
	if kv.Keys() != 1 {
		t.Errorf("Keys() = %d", kv.Keys())
	}
}

func TestOpenBackend(t *testing.T) {
	ctx := context.Background()

	mem, err := OpenBackend(ctx, Options{Backend: "memory"})
	if err != nil || mem.Name != "memory" || mem.Matches != nil {
		t.Fatalf("memory backend = %+v, %v", mem, err)
	}
	if err := mem.Close(); err != nil {
		t.Errorf("memory Close() = %v", err)
	}

	sq, err := OpenBackend(ctx, Options{Backend: "sqlite", DBPath: t.TempDir() + "/hub.db"})
	if err != nil {
		t.Fatalf("sqlite backend: %v", err)
	}
	defer sq.Close()
	if sq.Matches == nil {
		t.Error("sqlite backend should expose match history")
	}

	if _, err := OpenBackend(ctx, Options{Backend: "etcd"}); err == nil {
		t.Error("unknown backend should error")
	}
}

func TestRedisInvalidURL(t *testing.T) {
	if _, err := ConnectRedis(context.Background(), "not-a-url://"); err == nil {
		t.Error("invalid redis URL should error")
	}
}

func TestRedisKVUnreachable(t *testing.T) {
	client := redis.NewClient(&redis.Options{Addr: "127.0.0.1:1", MaxRetries: -1})
	kv := NewRedisKV(client, "")
	defer kv.Close()

	_, err := kv.Get(context.Background(), KeyCoins)
	if err == nil || errors.Is(err, ErrNotFound) {
		t.Errorf("unreachable redis should surface a backend error, got %v", err)
	}
	if kv.prefix != "hub:" {
		t.Errorf("default prefix = %q", kv.prefix)
	}
}

func TestWithPrefixIsolatesPlayers(t *testing.T) {
	ctx := context.Background()
	base := NewMemoryKV()
	alice := WithPrefix(base, "alice:")
	bob := WithPrefix(base, "bob:")

	if err := SetJSON(ctx, alice, KeyCoins, 40); err != nil {
		t.Fatal(err)
	}
	if got, _ := GetJSON(ctx, bob, KeyCoins, 0); got != 0 {
		t.Errorf("bob sees alice's coins: %d", got)
	}
	if got, _ := GetJSON(ctx, alice, KeyCoins, 0); got != 40 {
		t.Errorf("alice coins = %d, expected 40", got)
	}
	if _, err := base.Get(ctx, "alice:"+KeyCoins); err != nil {
		t.Errorf("prefixed key not stored in base: %v", err)
	}
	if WithPrefix(base, "") != KV(base) {
		t.Error("empty prefix should return the store unchanged")
	}
}

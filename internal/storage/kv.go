// Package storage persists hub state: a small key-value store for settings,
// coins, cosmetics and the leaderboard, plus match history on SQLite.
package storage

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
)

// ErrNotFound is returned by KV.Get when a key has never been written.
var ErrNotFound = errors.New("storage: key not found")

// Keys used by the hub.
const (
	KeyDifficulty   = "settings.difficulty"
	KeyTheme        = "settings.theme"
	KeyCoins        = "meta.coins"
	KeyOwned        = "cosmetic.owned"
	KeyTrail        = "cosmetic.trail"
	KeyLeaderboard  = "leaderboard"
	KeyAudioEnabled = "audio.enabled"
	KeyAudioVolume  = "audio.volume"
)

// KV is a string-keyed store of opaque values.
type KV interface {
	Get(ctx context.Context, key string) ([]byte, error)
	Set(ctx context.Context, key string, value []byte) error
}

// GetJSON decodes the value at key. A missing key yields fallback and no
// error; a read or decode failure yields fallback and the error.
func GetJSON[T any](ctx context.Context, kv KV, key string, fallback T) (T, error) {
	data, err := kv.Get(ctx, key)
	if errors.Is(err, ErrNotFound) {
		return fallback, nil
	}
	if err != nil {
		return fallback, fmt.Errorf("storage: cannot read %s: %w", key, err)
	}

	var v T
	if err := json.Unmarshal(data, &v); err != nil {
		return fallback, fmt.Errorf("storage: cannot decode %s: %w", key, err)
	}
	return v, nil
}

// SetJSON encodes v and writes it at key.
func SetJSON(ctx context.Context, kv KV, key string, v any) error {
	data, err := json.Marshal(v)
	if err != nil {
		return fmt.Errorf("storage: cannot encode %s: %w", key, err)
	}
	if err := kv.Set(ctx, key, data); err != nil {
		return fmt.Errorf("storage: cannot write %s: %w", key, err)
	}
	return nil
}

package storage

import (
	"context"
	"fmt"
	"io"
	"time"
)

// Backend bundles the KV used for hub state with the optional match history
// store. Matches is nil for backends without SQL.
type Backend struct {
	KV      KV
	Matches *Store
	Name    string
	closer  io.Closer
}

// Options selects and configures a backend.
type Options struct {
	Backend  string // sqlite, redis or memory
	DBPath   string
	RedisURL string
}

// OpenBackend opens the backend named in opts.
func OpenBackend(ctx context.Context, opts Options) (*Backend, error) {
	switch opts.Backend {
	case "", "sqlite":
		store, err := Open(opts.DBPath)
		if err != nil {
			return nil, err
		}
		return &Backend{KV: store, Matches: store, Name: "sqlite", closer: store}, nil

	case "redis":
		ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
		defer cancel()
		client, err := ConnectRedis(ctx, opts.RedisURL)
		if err != nil {
			return nil, err
		}
		kv := NewRedisKV(client, "")
		return &Backend{KV: kv, Name: "redis", closer: kv}, nil

	case "memory":
		return &Backend{KV: NewMemoryKV(), Name: "memory"}, nil

	default:
		return nil, fmt.Errorf("storage: unknown backend %q", opts.Backend)
	}
}

// Close releases the backend's resources.
func (b *Backend) Close() error {
	if b == nil || b.closer == nil {
		return nil
	}
	return b.closer.Close()
}

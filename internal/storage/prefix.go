package storage

import "context"

// PrefixKV namespaces every key of an underlying KV, so several players can
// share one backend.
type PrefixKV struct {
	kv     KV
	prefix string
}

// WithPrefix returns kv with prefix prepended to every key. An empty prefix
// returns kv unchanged.
func WithPrefix(kv KV, prefix string) KV {
	if prefix == "" {
		return kv
	}
	return &PrefixKV{kv: kv, prefix: prefix}
}

func (p *PrefixKV) Get(ctx context.Context, key string) ([]byte, error) {
	return p.kv.Get(ctx, p.prefix+key)
}

func (p *PrefixKV) Set(ctx context.Context, key string, value []byte) error {
	return p.kv.Set(ctx, p.prefix+key, value)
}

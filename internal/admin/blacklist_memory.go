package admin

import (
	"context"
	"sync"
	"time"
)

// MemoryBlacklist is the single-process fallback used when Redis is not configured.
type MemoryBlacklist struct {
	mu      sync.Mutex
	entries map[string]time.Time
	now     func() time.Time
}

func NewMemoryBlacklist() *MemoryBlacklist {
	return &MemoryBlacklist{entries: map[string]time.Time{}, now: time.Now}
}

func (b *MemoryBlacklist) Add(ctx context.Context, token string, ttl time.Duration) error {
	b.mu.Lock()
	defer b.mu.Unlock()
	now := b.now()
	for k, exp := range b.entries {
		if now.After(exp) {
			delete(b.entries, k)
		}
	}
	b.entries[token] = now.Add(ttl)
	return nil
}

func (b *MemoryBlacklist) Contains(ctx context.Context, token string) (bool, error) {
	b.mu.Lock()
	defer b.mu.Unlock()
	exp, ok := b.entries[token]
	return ok && !b.now().After(exp), nil
}

// Package ratelimit counts attempts per key inside a fixed window.
package ratelimit

import (
	"context"
	"sync"
	"time"

	"github.com/go-redis/redis/v8"
)

type Counter interface {
	Count(ctx context.Context, key string) (int64, error)
	Incr(ctx context.Context, key string, window time.Duration) (int64, error)
	Reset(ctx context.Context, key string) error
}

// ======================================================
// REDIS
// ======================================================

type RedisCounter struct {
	client *redis.Client
	prefix string
}

func NewRedisCounter(client *redis.Client, prefix string) *RedisCounter {
	return &RedisCounter{client: client, prefix: prefix}
}

func (r *RedisCounter) key(k string) string {
	return r.prefix + k
}

func (r *RedisCounter) Count(ctx context.Context, key string) (int64, error) {
	n, err := r.client.Get(ctx, r.key(key)).Int64()
	if err == redis.Nil {
		return 0, nil
	}
	return n, err
}

// incrWindow increments KEYS[1] and sets its expiry on the first hit in
// one server-side step.
var incrWindow = redis.NewScript(`
local n = redis.call("INCR", KEYS[1])
if n == 1 then
	redis.call("PEXPIRE", KEYS[1], ARGV[1])
end
return n
`)

// Incr bumps the counter; the window starts with the first hit.
func (r *RedisCounter) Incr(ctx context.Context, key string, window time.Duration) (int64, error) {
	return incrWindow.Run(ctx, r.client, []string{r.key(key)}, window.Milliseconds()).Int64()
}

func (r *RedisCounter) Reset(ctx context.Context, key string) error {
	return r.client.Del(ctx, r.key(key)).Err()
}

// ======================================================
// MEMORY
// ======================================================

type entry struct {
	count   int64
	expires time.Time
}

const sweepEvery = time.Minute

// MemoryCounter is the single-process fallback used when no redis address
// is configured. Expired keys are swept on writes at most once per
// sweepEvery.
type MemoryCounter struct {
	mu        sync.Mutex
	entries   map[string]entry
	now       func() time.Time
	lastSweep time.Time
}

func NewMemoryCounter() *MemoryCounter {
	return &MemoryCounter{entries: map[string]entry{}, now: time.Now}
}

func (m *MemoryCounter) live(key string) (entry, bool) {
	e, ok := m.entries[key]
	if !ok {
		return entry{}, false
	}
	if !m.now().Before(e.expires) {
		delete(m.entries, key)
		return entry{}, false
	}
	return e, true
}

func (m *MemoryCounter) Count(_ context.Context, key string) (int64, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	e, _ := m.live(key)
	return e.count, nil
}

func (m *MemoryCounter) sweep() {
	now := m.now()
	if now.Sub(m.lastSweep) < sweepEvery {
		return
	}
	m.lastSweep = now
	for k, e := range m.entries {
		if !now.Before(e.expires) {
			delete(m.entries, k)
		}
	}
}

func (m *MemoryCounter) Incr(_ context.Context, key string, window time.Duration) (int64, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.sweep()
	e, ok := m.live(key)
	if !ok {
		e = entry{expires: m.now().Add(window)}
	}
	e.count++
	m.entries[key] = e
	return e.count, nil
}

func (m *MemoryCounter) Reset(_ context.Context, key string) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	delete(m.entries, key)
	return nil
}

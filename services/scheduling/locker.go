package scheduling

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/go-redis/redis/v8"
	"github.com/google/uuid"
	"go.uber.org/zap"
)

// Locker serializes work on a key. Acquire blocks until the key is held or
// ctx ends.
type Locker interface {
	Acquire(ctx context.Context, key string) (*Lease, error)
}

// Lease is a held key. ValidUntil is the last instant the holder may still
// act under the lock; zero means the hold never lapses on its own.
type Lease struct {
	ValidUntil time.Time
	release    func()
}

// Release gives the key back. It is safe to call more than once.
func (l *Lease) Release() {
	if l != nil && l.release != nil {
		l.release()
	}
}

// Bind derives a context that ends when the lease stops being trustworthy.
func (l *Lease) Bind(ctx context.Context) (context.Context, context.CancelFunc) {
	if l == nil || l.ValidUntil.IsZero() {
		return context.WithCancel(ctx)
	}
	return context.WithDeadline(ctx, l.ValidUntil)
}

// LockKey is the serialization key for bookings of one provider on one day.
func LockKey(providerID string, date time.Time) string {
	return fmt.Sprintf("lock:sessions:%s:%s", providerID, date.Format(DateLayout))
}

// MemoryLocker is an in-process keyed mutex.
type MemoryLocker struct {
	mu    sync.Mutex
	locks map[string]*memoryLock
}

type memoryLock struct {
	held chan struct{}
	refs int
}

func NewMemoryLocker() *MemoryLocker {
	return &MemoryLocker{locks: make(map[string]*memoryLock)}
}

func (m *MemoryLocker) Acquire(ctx context.Context, key string) (*Lease, error) {
	m.mu.Lock()
	l, ok := m.locks[key]
	if !ok {
		l = &memoryLock{held: make(chan struct{}, 1)}
		m.locks[key] = l
	}
	l.refs++
	m.mu.Unlock()

	select {
	case l.held <- struct{}{}:
	case <-ctx.Done():
		m.unref(key, l)
		return nil, ctx.Err()
	}

	var once sync.Once
	return &Lease{release: func() {
		once.Do(func() {
			<-l.held
			m.unref(key, l)
		})
	}}, nil
}

func (m *MemoryLocker) unref(key string, l *memoryLock) {
	m.mu.Lock()
	defer m.mu.Unlock()
	l.refs--
	if l.refs == 0 {
		delete(m.locks, key)
	}
}

// releaseScript deletes the key only if it still holds our token.
var releaseScript = redis.NewScript(`
if redis.call("get", KEYS[1]) == ARGV[1] then
	return redis.call("del", KEYS[1])
end
return 0
`)

// leaseMargin is the share of the TTL held back from ValidUntil to absorb
// clock drift and in-flight writes.
const leaseMargin = 5

// RedisLocker is a lease-based lock shared by every process using the same Redis.
// The lease is never extended; callers bound their work with Lease.Bind.
type RedisLocker struct {
	client     *redis.Client
	ttl        time.Duration
	retryDelay time.Duration
	logger     *zap.Logger
}

func NewRedisLocker(client *redis.Client, ttl time.Duration, logger *zap.Logger) *RedisLocker {
	if ttl <= 0 {
		ttl = 10 * time.Second
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &RedisLocker{client: client, ttl: ttl, retryDelay: 25 * time.Millisecond, logger: logger}
}

// Acquire polls SET NX until it wins. Waiting is bounded by the lease TTL,
// since a stuck holder's lease expires by then anyway.
func (r *RedisLocker) Acquire(ctx context.Context, key string) (*Lease, error) {
	ctx, cancel := context.WithTimeout(ctx, r.ttl)
	defer cancel()

	token := uuid.NewString()
	var sent time.Time
	for {
		sent = time.Now()
		ok, err := r.client.SetNX(ctx, key, token, r.ttl).Result()
		if err != nil {
			return nil, fmt.Errorf("failed to acquire lock %s: %w", key, err)
		}
		if ok {
			break
		}
		select {
		case <-ctx.Done():
			return nil, fmt.Errorf("timed out waiting for lock %s: %w", key, ctx.Err())
		case <-time.After(r.retryDelay):
		}
	}

	var once sync.Once
	return &Lease{ValidUntil: sent.Add(r.ttl - r.ttl/leaseMargin), release: func() {
		once.Do(func() {
			releaseCtx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
			defer cancel()
			if err := releaseScript.Run(releaseCtx, r.client, []string{key}, token).Err(); err != nil {
				r.logger.Warn("Failed to release booking lock", zap.String("key", key), zap.Error(err))
			}
		})
	}}, nil
}

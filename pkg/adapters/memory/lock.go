package memory

import (
	"context"
	"sync"
	"time"

	"github.com/aretw0/quotient/pkg/ports"
)

// lockEntry holds the per-key semaphore and the reference count.
type lockEntry struct {
	sem  chan struct{}
	refs int
}

// Locker implements ports.DistributedLocker within a single process.
// It uses reference counting to garbage collect unused keys. The ttl passed to
// Lock is ignored: a lock is held until its UnlockFunc runs.
type Locker struct {
	mu    sync.Mutex
	locks map[string]*lockEntry
}

// NewLocker creates an in-process locker.
func NewLocker() *Locker {
	return &Locker{
		locks: make(map[string]*lockEntry),
	}
}

// acquire gets or creates the entry for key and increments its reference count.
// The caller must call release(key) once done with the entry.
func (l *Locker) acquire(key string) *lockEntry {
	l.mu.Lock()
	defer l.mu.Unlock()

	entry, exists := l.locks[key]
	if !exists {
		entry = &lockEntry{sem: make(chan struct{}, 1)}
		l.locks[key] = entry
	}
	entry.refs++
	return entry
}

// release decrements the reference count and deletes the entry if it reaches zero.
func (l *Locker) release(key string) {
	l.mu.Lock()
	defer l.mu.Unlock()

	entry, exists := l.locks[key]
	if !exists {
		return
	}
	entry.refs--
	if entry.refs <= 0 {
		delete(l.locks, key)
	}
}

// Lock blocks until key is free or ctx is done.
func (l *Locker) Lock(ctx context.Context, key string, _ time.Duration) (ports.UnlockFunc, error) {
	entry := l.acquire(key)

	select {
	case entry.sem <- struct{}{}:
	case <-ctx.Done():
		l.release(key)
		return nil, ctx.Err()
	}

	var once sync.Once
	return func(context.Context) error {
		once.Do(func() {
			<-entry.sem
			l.release(key)
		})
		return nil
	}, nil
}

// held reports how many keys currently have waiters or holders.
func (l *Locker) held() int {
	l.mu.Lock()
	defer l.mu.Unlock()
	return len(l.locks)
}

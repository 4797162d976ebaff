package lock

import (
	"context"
	"sync"
)

// Locker serializes the booking critical section per staff member. Acquire
// blocks until the key is held or ctx is done; the returned release func must
// be called exactly once.
type Locker interface {
	Acquire(ctx context.Context, key string) (func(), error)
}

// ===============================
// In-process keyed locks
// ===============================

type KeyedLocker struct {
	mu      sync.Mutex
	entries map[string]*entry
}

type entry struct {
	ch   chan struct{}
	refs int
}

func NewKeyedLocker() *KeyedLocker {
	return &KeyedLocker{entries: make(map[string]*entry)}
}

func (l *KeyedLocker) Acquire(ctx context.Context, key string) (func(), error) {
	l.mu.Lock()
	e, ok := l.entries[key]
	if !ok {
		e = &entry{ch: make(chan struct{}, 1)}
		l.entries[key] = e
	}
	e.refs++
	l.mu.Unlock()

	select {
	case e.ch <- struct{}{}:
	case <-ctx.Done():
		l.put(key, e)
		return nil, ctx.Err()
	}

	var once sync.Once
	release := func() {
		once.Do(func() {
			<-e.ch
			l.put(key, e)
		})
	}
	return release, nil
}

func (l *KeyedLocker) put(key string, e *entry) {
	l.mu.Lock()
	e.refs--
	if e.refs == 0 {
		delete(l.entries, key)
	}
	l.mu.Unlock()
}

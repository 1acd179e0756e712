// Package local holds the single-process adapters: a keyed mutex locker and
// a publisher that writes domain events to the log. They are the defaults
// when no Redis address is configured.
package local

import (
	"context"
	"sync"
	"time"

	"lastmile/internal/pkg/errs"
)

// KeyedLocker is an in-process ports.Locker. Each key is a one-slot
// semaphore that lives while someone holds or waits for it.
type KeyedLocker struct {
	mu      sync.Mutex
	slots   map[string]*slot
	timeout time.Duration
}

type slot struct {
	ch   chan struct{}
	refs int
}

// NewKeyedLocker returns a locker that waits at most timeout for a key when
// the caller's context has no deadline of its own.
func NewKeyedLocker(timeout time.Duration) *KeyedLocker {
	return &KeyedLocker{
		slots:   make(map[string]*slot),
		timeout: timeout,
	}
}

func (l *KeyedLocker) Lock(ctx context.Context, keys ...string) (func(), error) {
	if _, ok := ctx.Deadline(); !ok && l.timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, l.timeout)
		defer cancel()
	}

	held := make([]string, 0, len(keys))
	release := func() {
		for i := len(held) - 1; i >= 0; i-- {
			l.release(held[i])
		}
	}

	for _, key := range dedupe(keys) {
		s := l.acquireSlot(key)
		select {
		case s.ch <- struct{}{}:
			held = append(held, key)
		case <-ctx.Done():
			l.dropSlot(key)
			release()
			return nil, errs.NewRuleViolationErrorWithCause(
				errs.ErrConcurrentModification,
				key,
				"lock wait expired",
				ctx.Err(),
			)
		}
	}

	var once sync.Once
	return func() { once.Do(release) }, nil
}

func (l *KeyedLocker) acquireSlot(key string) *slot {
	l.mu.Lock()
	defer l.mu.Unlock()
	s, ok := l.slots[key]
	if !ok {
		s = &slot{ch: make(chan struct{}, 1)}
		l.slots[key] = s
	}
	s.refs++
	return s
}

func (l *KeyedLocker) release(key string) {
	l.mu.Lock()
	s := l.slots[key]
	l.mu.Unlock()
	<-s.ch
	l.dropSlot(key)
}

func (l *KeyedLocker) dropSlot(key string) {
	l.mu.Lock()
	defer l.mu.Unlock()
	s := l.slots[key]
	s.refs--
	if s.refs == 0 {
		delete(l.slots, key)
	}
}

// dedupe keeps the first occurrence of every key and preserves order.
func dedupe(keys []string) []string {
	seen := make(map[string]bool, len(keys))
	out := make([]string, 0, len(keys))
	for _, k := range keys {
		if seen[k] {
			continue
		}
		seen[k] = true
		out = append(out, k)
	}
	return out
}

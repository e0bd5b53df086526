package state

import (
	"context"
	"sync"
)

// Reader is the read-only side of a Value. Components hand these out so
// consumers can observe shared state without being able to write it.
type Reader[T any] interface {
	// Get returns the latest committed value.
	Get() T
	// Load returns the latest committed value together with a channel that is
	// closed on the next commit.
	Load() (T, <-chan struct{})
}

// Value holds the latest value of a piece of shared state and broadcasts
// commits to watchers by closing a channel.
//
// The zero Value is ready to use and holds the zero T.
type Value[T any] struct {
	mu      sync.RWMutex
	val     T
	version uint64
	changed chan struct{}
}

// NewValue returns a Value initialised to v.
func NewValue[T any](v T) *Value[T] {
	return &Value[T]{val: v}
}

// Get returns the latest committed value.
func (v *Value[T]) Get() T {
	v.mu.RLock()
	defer v.mu.RUnlock()
	return v.val
}

// Version reports how many times Set has been called.
func (v *Value[T]) Version() uint64 {
	v.mu.RLock()
	defer v.mu.RUnlock()
	return v.version
}

// Load returns the current value and a channel closed on the next Set.
func (v *Value[T]) Load() (T, <-chan struct{}) {
	v.mu.Lock()
	defer v.mu.Unlock()
	if v.changed == nil {
		v.changed = make(chan struct{})
	}
	return v.val, v.changed
}

// Set commits next and wakes every watcher. It never calls into consumer
// code, so it is safe to call while holding other locks.
func (v *Value[T]) Set(next T) {
	v.mu.Lock()
	defer v.mu.Unlock()
	v.val = next
	v.version++
	if v.changed != nil {
		close(v.changed)
		v.changed = nil
	}
}

// Watch calls fn with the current value and then with every committed value
// until ctx is done. Commits that land while fn runs are coalesced; fn always
// sees the newest value. Watch blocks; run it in its own goroutine.
func Watch[T any](ctx context.Context, r Reader[T], fn func(T)) {
	for {
		val, changed := r.Load()
		fn(val)
		select {
		case <-ctx.Done():
			return
		case <-changed:
		}
	}
}

// Await blocks until the value satisfies pred or ctx is done.
func Await[T any](ctx context.Context, r Reader[T], pred func(T) bool) (T, error) {
	for {
		val, changed := r.Load()
		if pred(val) {
			return val, nil
		}
		select {
		case <-ctx.Done():
			return val, ctx.Err()
		case <-changed:
		}
	}
}

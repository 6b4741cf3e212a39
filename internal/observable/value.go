// Package observable provides a latest-value cell that publishes immutable
// snapshots to subscribers.
package observable

import "sync"

// Value holds the most recently published value of type T.
// Readers can poll Get or subscribe for change notifications.
type Value[T any] struct {
	mu      sync.RWMutex
	current T
	subs    map[chan T]struct{}
}

// New creates a cell holding initial.
func New[T any](initial T) *Value[T] {
	return &Value[T]{
		current: initial,
		subs:    make(map[chan T]struct{}),
	}
}

// Get returns the latest published value.
func (v *Value[T]) Get() T {
	v.mu.RLock()
	defer v.mu.RUnlock()
	return v.current
}

// Set publishes val to all subscribers.
// A subscriber that has not consumed the previous value has it replaced,
// so it always observes the latest value next.
func (v *Value[T]) Set(val T) {
	v.mu.Lock()
	defer v.mu.Unlock()

	v.current = val
	for ch := range v.subs {
		select {
		case ch <- val:
		default:
			// Drop the stale value and retry once.
			select {
			case <-ch:
			default:
			}
			select {
			case ch <- val:
			default:
			}
		}
	}
}

// Subscribe registers a new subscriber and returns its channel.
func (v *Value[T]) Subscribe() chan T {
	ch := make(chan T, 1)
	v.mu.Lock()
	v.subs[ch] = struct{}{}
	v.mu.Unlock()
	return ch
}

// Unsubscribe removes a subscriber and closes its channel.
func (v *Value[T]) Unsubscribe(ch chan T) {
	v.mu.Lock()
	if _, ok := v.subs[ch]; ok {
		delete(v.subs, ch)
		close(ch)
	}
	v.mu.Unlock()
}

package reactive

import (
	"fmt"
	"sync"
)

var _ Source[int] = (*Atom[int])(nil)

// Source is anything a [Selector] can derive from.
type Source[S any] interface {
	Snapshot() (S, uint64)
	Subscribe(fn func(S)) (unsubscribe func())
}

// An Atom is a keyed observable value.
//
// Writes are serialized: a write holds the atom until its subscribers
// have been notified, so two transitions never interleave. Stored values
// must be treated as immutable by readers.
type Atom[T any] struct {
	key string

	writeMu sync.Mutex
	mu      sync.RWMutex
	value   T
	version uint64

	subs subscribers[T]
}

func NewAtom[T any](root *Root, key string, def T) (*Atom[T], error) {
	const op = "NewAtom"

	a := &Atom[T]{key: key, value: def}
	if err := root.register(a); err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	return a, nil
}

func (a *Atom[T]) Key() string {
	return a.key
}

func (a *Atom[T]) Get() T {
	v, _ := a.Snapshot()
	return v
}

// Snapshot returns the current value together with its version.
// The version grows by one with every applied write.
func (a *Atom[T]) Snapshot() (T, uint64) {
	a.mu.RLock()
	defer a.mu.RUnlock()
	return a.value, a.version
}

func (a *Atom[T]) Set(v T) {
	a.Update(func(T) (T, bool) { return v, true })
}

// Update applies fn to the current value. When fn reports a change the new
// value is stored and subscribers are called with it, in registration order,
// before Update returns. Subscribers must not write to the same atom.
func (a *Atom[T]) Update(fn func(prev T) (next T, changed bool)) bool {
	a.writeMu.Lock()
	defer a.writeMu.Unlock()

	prev, _ := a.Snapshot()
	next, changed := fn(prev)
	if !changed {
		return false
	}

	a.mu.Lock()
	a.value = next
	a.version++
	a.mu.Unlock()

	a.subs.notify(next)
	return true
}

func (a *Atom[T]) Subscribe(fn func(T)) (unsubscribe func()) {
	return a.subs.add(fn)
}

func (a *Atom[T]) unsubscribeAll() {
	a.subs.clear()
}

package reactive

import (
	"fmt"
	"sync"
)

var _ Source[int] = (*Selector[int, int])(nil)

// A Selector is a value derived from a [Source] by a pure function.
//
// The value is recomputed from the source snapshot whenever the source
// version moves; it is never patched incrementally.
type Selector[S, T any] struct {
	key string
	src Source[S]
	get func(S) T

	mu          sync.Mutex
	memoOK      bool
	memoVersion uint64
	memo        T

	subs     subscribers[T]
	unsubSrc func()
}

func NewSelector[S, T any](
	root *Root, key string, src Source[S], get func(S) T,
) (*Selector[S, T], error) {
	const op = "NewSelector"

	s := &Selector[S, T]{key: key, src: src, get: get}
	s.unsubSrc = src.Subscribe(s.onSourceChange)
	if err := root.register(s); err != nil {
		s.unsubSrc()
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	return s, nil
}

func (s *Selector[S, T]) Key() string {
	return s.key
}

func (s *Selector[S, T]) Get() T {
	v, _ := s.Snapshot()
	return v
}

// Snapshot evaluates the selector for the current source snapshot.
// The returned version is the source version.
func (s *Selector[S, T]) Snapshot() (T, uint64) {
	sv, version := s.src.Snapshot()
	return s.At(sv, version), version
}

// At evaluates the selector for a source snapshot the caller already holds.
func (s *Selector[S, T]) At(sv S, version uint64) T {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.memoOK && s.memoVersion == version {
		return s.memo
	}
	v := s.get(sv)
	s.memo, s.memoVersion, s.memoOK = v, version, true
	return v
}

func (s *Selector[S, T]) Subscribe(fn func(T)) (unsubscribe func()) {
	return s.subs.add(fn)
}

func (s *Selector[S, T]) onSourceChange(sv S) {
	if s.subs.len() == 0 {
		return
	}
	s.subs.notify(s.get(sv))
}

func (s *Selector[S, T]) unsubscribeAll() {
	s.unsubSrc()
	s.subs.clear()
}

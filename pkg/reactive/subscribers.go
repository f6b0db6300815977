package reactive

import "sync"

type subscriber[T any] struct {
	id uint64
	fn func(T)
}

// subscribers keeps callbacks in registration order.
type subscribers[T any] struct {
	mu     sync.Mutex
	nextID uint64
	list   []subscriber[T]
}

func (s *subscribers[T]) add(fn func(T)) (unsubscribe func()) {
	s.mu.Lock()
	s.nextID++
	id := s.nextID
	s.list = append(s.list, subscriber[T]{id, fn})
	s.mu.Unlock()

	var once sync.Once
	return func() {
		once.Do(func() { s.remove(id) })
	}
}

func (s *subscribers[T]) remove(id uint64) {
	s.mu.Lock()
	defer s.mu.Unlock()
	for i, sub := range s.list {
		if sub.id == id {
			s.list = append(s.list[:i:i], s.list[i+1:]...)
			return
		}
	}
}

func (s *subscribers[T]) clear() {
	s.mu.Lock()
	s.list = nil
	s.mu.Unlock()
}

func (s *subscribers[T]) len() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.list)
}

func (s *subscribers[T]) notify(v T) {
	s.mu.Lock()
	list := make([]subscriber[T], len(s.list))
	copy(list, s.list)
	s.mu.Unlock()

	for _, sub := range list {
		sub.fn(v)
	}
}

// Package reactive provides observable state for a single application
// session: keyed atoms holding values and selectors deriving values from them.
//
// Every node is registered in an explicit [Root] instead of a process-wide
// registry, so the owner of the Root controls the session lifecycle.
package reactive

import (
	"errors"
	"fmt"
	"slices"
	"sync"
)

var (
	ErrEmptyKey     = errors.New("empty key")
	ErrDuplicateKey = errors.New("duplicate key")
	ErrRootClosed   = errors.New("root is closed")
)

type node interface {
	Key() string
	unsubscribeAll()
}

// A Root owns the atoms and selectors of one session.
type Root struct {
	mu     sync.Mutex
	nodes  map[string]node
	closed bool
}

func NewRoot() *Root {
	return &Root{nodes: make(map[string]node)}
}

func (r *Root) register(n node) error {
	const op = "Root.register"

	key := n.Key()
	if key == "" {
		return fmt.Errorf("%s: %w", op, ErrEmptyKey)
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	if r.closed {
		return fmt.Errorf("%s: %w", op, ErrRootClosed)
	}
	if _, ok := r.nodes[key]; ok {
		return fmt.Errorf("%s: %q: %w", op, key, ErrDuplicateKey)
	}
	r.nodes[key] = n
	return nil
}

// Keys returns the registered keys in lexical order.
func (r *Root) Keys() []string {
	r.mu.Lock()
	defer r.mu.Unlock()

	keys := make([]string, 0, len(r.nodes))
	for k := range r.nodes {
		keys = append(keys, k)
	}
	slices.Sort(keys)
	return keys
}

// Close drops every subscription of every registered node.
// Values stay readable; no further nodes can be registered.
func (r *Root) Close() {
	r.mu.Lock()
	if r.closed {
		r.mu.Unlock()
		return
	}
	r.closed = true
	nodes := make([]node, 0, len(r.nodes))
	for _, n := range r.nodes {
		nodes = append(nodes, n)
	}
	r.mu.Unlock()

	for _, n := range nodes {
		n.unsubscribeAll()
	}
}

// SPDX-License-Identifier: MIT

package backend

import (
	"fmt"
	"sort"

	"github.com/puzpuzpuz/xsync/v4"
)

// Registry maps backend names to implementations. It is safe for concurrent
// use; the zero value is not usable, call NewRegistry.
type Registry struct {
	m *xsync.Map[string, NumericBackend]
}

// NewRegistry returns an empty registry.
func NewRegistry() *Registry {
	return &Registry{m: xsync.NewMap[string, NumericBackend]()}
}

// Register adds b under b.Name().
//
// Errors: ErrInvalidBackend (nil or unnamed), ErrDuplicateBackend.
func (r *Registry) Register(b NumericBackend) error {
	if b == nil || b.Name() == "" {
		return ErrInvalidBackend
	}
	if _, loaded := r.m.LoadOrStore(b.Name(), b); loaded {
		return fmt.Errorf("%q: %w", b.Name(), ErrDuplicateBackend)
	}

	return nil
}

// Lookup returns the backend registered under name.
//
// Errors: ErrUnknownBackend.
func (r *Registry) Lookup(name string) (NumericBackend, error) {
	b, ok := r.m.Load(name)
	if !ok {
		return nil, fmt.Errorf("%q: %w", name, ErrUnknownBackend)
	}

	return b, nil
}

// Names returns the registered names in ascending order.
func (r *Registry) Names() []string {
	names := make([]string, 0, r.m.Size())
	r.m.Range(func(name string, _ NumericBackend) bool {
		names = append(names, name)
		return true
	})
	sort.Strings(names)

	return names
}

// defaultRegistry is pre-populated with the built-in backends.
var defaultRegistry = func() *Registry {
	r := NewRegistry()
	_ = r.Register(NewReference())
	_ = r.Register(NewGonum())

	return r
}()

// Register adds b to the default registry.
func Register(b NumericBackend) error { return defaultRegistry.Register(b) }

// Lookup finds name in the default registry.
func Lookup(name string) (NumericBackend, error) { return defaultRegistry.Lookup(name) }

// Names lists the default registry in ascending order.
func Names() []string { return defaultRegistry.Names() }

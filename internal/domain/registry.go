package domain

import (
	"sync"

	"codeberg.org/mutker/errbridge/internal/errors"
)

type registry struct {
	mu      sync.RWMutex
	domains map[ID][]Value
}

var defaultRegistry = &registry{domains: make(map[ID][]Value)}

// Register records the complete case set of one domain so that cases can
// be resolved by name on the receiving side of a boundary. Registering
// the same case set again is a no-op.
func Register(cases ...Value) error {
	return defaultRegistry.register(cases)
}

// Lookup resolves a case of a registered domain by name.
func Lookup(id ID, name string) (Value, error) {
	return defaultRegistry.lookup(id, name)
}

// Cases returns the registered cases of a domain in registration order.
func Cases(id ID) []Value {
	defaultRegistry.mu.RLock()
	defer defaultRegistry.mu.RUnlock()

	return append([]Value(nil), defaultRegistry.domains[id]...)
}

func (r *registry) register(cases []Value) error {
	errFactory := errors.New()

	if len(cases) == 0 {
		return errFactory.New(errors.ErrEmptyDomain)
	}

	id := cases[0].Domain()
	seen := make(map[string]struct{}, len(cases))
	for _, c := range cases {
		if c.Domain() != id {
			return errFactory.WithData(errors.ErrMixedDomain, struct {
				Want ID
				Got  ID
			}{
				Want: id,
				Got:  c.Domain(),
			})
		}
		if _, ok := seen[c.Case()]; ok {
			return errFactory.WithData(errors.ErrDuplicateCase, c.Case())
		}
		seen[c.Case()] = struct{}{}
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	if existing, ok := r.domains[id]; ok {
		if !sameCases(existing, cases) {
			return errFactory.WithData(errors.ErrDomainConflict, id)
		}
		return nil
	}

	r.domains[id] = append([]Value(nil), cases...)

	return nil
}

func (r *registry) lookup(id ID, name string) (Value, error) {
	errFactory := errors.New()

	r.mu.RLock()
	defer r.mu.RUnlock()

	cases, ok := r.domains[id]
	if !ok {
		return nil, errFactory.WithData(errors.ErrUnknownDomain, id)
	}

	for _, c := range cases {
		if c.Case() == name {
			return c, nil
		}
	}

	return nil, errFactory.WithData(errors.ErrUnknownCase, string(id)+"."+name)
}

func sameCases(a, b []Value) bool {
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		if a[i] != b[i] {
			return false
		}
	}

	return true
}

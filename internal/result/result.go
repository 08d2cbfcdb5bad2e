// Package result contains the Of result type, which holds either a value
// or an error carrier, never both and never neither.
//
// It is the delivery form used when a call site is compiled without
// unwinding: callers branch on HasValue instead of recovering a panic.
package result

import (
	"codeberg.org/mutker/errbridge/internal/carrier"
	"codeberg.org/mutker/errbridge/internal/errors"
)

type state uint8

const (
	stateEmpty state = iota
	stateValue
	stateError
)

// Of is either a T value or an error carrier.
//
// The zero Of holds neither; it only exists so the type can be declared
// and every extractor on it panics.
type Of[T any] struct {
	state state
	value T
	err   *carrier.Carrier
}

// Value returns a result holding v.
func Value[T any](v T) Of[T] {
	return Of[T]{state: stateValue, value: v}
}

// Error returns a result holding c. A nil carrier is a contract violation.
func Error[T any](c *carrier.Carrier) Of[T] {
	if c == nil {
		panic(errors.Violation(errors.ErrContractViolation, "result: nil carrier"))
	}

	return Of[T]{state: stateError, err: c}
}

// HasValue reports whether r holds a value. It never panics.
func (r Of[T]) HasValue() bool {
	return r.state == stateValue
}

// Value returns r's value. It panics if r holds an error.
func (r Of[T]) Value() T {
	if r.state != stateValue {
		panic(errors.Violation(errors.ErrContractViolation, "result: Value called on "+r.state.String()))
	}

	return r.value
}

// Err returns r's carrier. It panics if r holds a value.
func (r Of[T]) Err() *carrier.Carrier {
	if r.state != stateError {
		panic(errors.Violation(errors.ErrContractViolation, "result: Err called on "+r.state.String()))
	}

	return r.err
}

// Release releases the carrier held by r, if any.
func (r Of[T]) Release() {
	if r.state == stateError {
		r.err.Release()
	}
}

func (s state) String() string {
	switch s {
	case stateValue:
		return "value result"
	case stateError:
		return "error result"
	default:
		return "empty result"
	}
}

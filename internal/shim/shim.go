// Package shim implements the call contract for fallible operations that
// live behind a boundary.
//
// A boundary operation receives a context token and an error slot in
// addition to its own arguments, and returns its success value normally.
// On failure it writes exactly one domain error into the slot. The shim
// runs the operation once, inspects the slot, and delivers either the
// value or a carrier, in one of two forms:
//
//   - Result mode (Call): a result.Of[T] the caller branches on.
//   - Unwinding mode (Throwing): the value, or a panic with the
//     *carrier.Carrier that Catch or Try recover.
//
// Both forms share Invoke, so the operation itself is written once.
// Generated call-site wrappers pick one form at build time, see Unwinding.
package shim

import (
	"time"

	"codeberg.org/mutker/errbridge/internal/carrier"
	"codeberg.org/mutker/errbridge/internal/domain"
	"codeberg.org/mutker/errbridge/internal/errors"
	"codeberg.org/mutker/errbridge/internal/result"
)

// Context is the opaque token passed to every boundary operation.
type Context struct {
	operation string
}

// Operation returns the name the operation was invoked under.
func (c Context) Operation() string {
	return c.operation
}

// Slot is the error-signal channel of one call. It holds the raw handle
// word of a boxed error and is written only on failure.
type Slot struct {
	raw uintptr
}

// Raise records v as the call's failure. A slot can be written once.
func (s *Slot) Raise(v domain.Value) {
	if s.raw != 0 {
		panic(errors.Violation(errors.ErrSlotRewritten, v.Case()))
	}

	s.raw = carrier.Box(v)
}

// Raised reports whether the slot has been written.
func (s *Slot) Raised() bool {
	return s.raw != 0
}

// Operation is a fallible boundary call in its raw calling convention.
type Operation[T any] func(ctx Context, slot *Slot) T

// Invoke runs op once and returns either its value and a nil carrier, or
// the zero value and the carrier built from the slot. If op panics after
// writing the slot, the boxed error is released before the panic
// continues.
func Invoke[T any](name string, op Operation[T]) (T, *carrier.Carrier) {
	var slot Slot

	defer func() {
		if r := recover(); r != nil {
			if slot.raw != 0 {
				carrier.Adopt(slot.raw).Release()
			}
			panic(r)
		}
	}()

	v := op(Context{operation: name}, &slot)
	if slot.raw == 0 {
		return v, nil
	}

	var zero T

	return zero, carrier.Adopt(slot.raw)
}

// Call invokes op and wraps the outcome in a result.
func Call[T any](name string, op Operation[T], opts ...Option) result.Of[T] {
	v, c := invoke(name, op, ResultMode, opts)
	if c != nil {
		return result.Error[T](c)
	}

	return result.Value(v)
}

// Throwing invokes op and returns its value, or panics with the carrier.
func Throwing[T any](name string, op Operation[T], opts ...Option) T {
	v, c := invoke(name, op, UnwindingMode, opts)
	if c != nil {
		panic(c)
	}

	return v
}

// Catch runs fn and returns the carrier it panicked with, or nil if fn
// returned normally. Panics with any other value are not recovered.
func Catch(fn func()) (c *carrier.Carrier) {
	defer func() {
		if r := recover(); r != nil {
			thrown, ok := r.(*carrier.Carrier)
			if !ok {
				panic(r)
			}
			c = thrown
		}
	}()

	fn()

	return nil
}

// Try runs fn like Catch and also returns its value.
func Try[T any](fn func() T) (v T, c *carrier.Carrier) {
	c = Catch(func() { v = fn() })

	return v, c
}

func invoke[T any](name string, op Operation[T], mode Mode, opts []Option) (T, *carrier.Carrier) {
	o := newOptions(opts)
	if o.observer == nil {
		return Invoke(name, op)
	}

	started := time.Now()
	v, c := Invoke(name, op)

	outcome := Outcome{
		Operation: name,
		Mode:      mode,
		Started:   started,
		Duration:  time.Since(started),
	}
	if c != nil {
		outcome.Failed = true
		outcome.Domain = c.Domain()
		outcome.Case = c.Case()
	} else {
		outcome.Value = v
	}
	o.observer.Observe(outcome)

	return v, c
}

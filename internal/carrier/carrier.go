// Package carrier implements the opaque error carrier: a type-erased box
// holding exactly one domain error value behind a runtime handle, tagged
// with the value's domain so that the concrete case can be recovered
// without reinterpreting the handle blindly.
package carrier

import (
	"reflect"
	"runtime"
	"runtime/cgo"
	"sync"
	"sync/atomic"

	"codeberg.org/mutker/errbridge/internal/domain"
	"codeberg.org/mutker/errbridge/internal/errors"
)

var outstanding atomic.Int64

// Carrier transports one domain.Value across a call boundary.
// A Carrier must not be copied; pass it by pointer.
type Carrier struct {
	handle cgo.Handle
	tag    reflect.Type

	domain  domain.ID
	name    string
	message string

	once     sync.Once
	released atomic.Bool
}

// Box stores v behind a new runtime handle and returns the raw handle
// word. The word is what a callee writes into an error slot; exactly one
// Adopt call must take ownership of it.
func Box(v domain.Value) uintptr {
	if v == nil {
		panic(errors.Violation(errors.ErrContractViolation, "carrier: nil error value"))
	}

	outstanding.Add(1)

	return uintptr(cgo.NewHandle(v))
}

// Adopt takes ownership of a raw handle word produced by Box.
func Adopt(raw uintptr) *Carrier {
	if raw == 0 {
		panic(errors.Violation(errors.ErrContractViolation, "carrier: adopt of empty handle"))
	}

	h := cgo.Handle(raw)
	v, ok := h.Value().(domain.Value)
	if !ok {
		panic(errors.Violation(errors.ErrContractViolation, "carrier: handle does not hold a domain value"))
	}

	c := &Carrier{
		handle:  h,
		tag:     reflect.TypeOf(v),
		domain:  v.Domain(),
		name:    v.Case(),
		message: v.Error(),
	}
	runtime.SetFinalizer(c, (*Carrier).release)

	return c
}

// New boxes v and returns a Carrier owning it.
func New(v domain.Value) *Carrier {
	return Adopt(Box(v))
}

// As recovers the carried value as domain type D. The second result is
// false when the carrier holds a case of any other domain; a mismatch is
// an ordinary outcome, not an error. As never mutates the carrier.
func As[D domain.Value](c *Carrier) (D, bool) {
	var zero D
	if c == nil {
		return zero, false
	}

	if reflect.TypeOf((*D)(nil)).Elem() != c.tag {
		return zero, false
	}

	v, ok := c.load().(D)
	if !ok {
		return zero, false
	}

	return v, true
}

// Is reports whether the carrier holds exactly the case target.
func Is[D domain.Value](c *Carrier, target D) bool {
	v, ok := As[D](c)
	return ok && any(v) == any(target)
}

// Domain returns the identifier of the carried value's domain.
func (c *Carrier) Domain() domain.ID {
	return c.domain
}

// Case returns the name of the carried case.
func (c *Carrier) Case() string {
	return c.name
}

func (c *Carrier) Error() string {
	return c.message
}

// Unwrap exposes the carried value to errors.Is and errors.As. It returns
// nil once the carrier has been released.
func (c *Carrier) Unwrap() error {
	if c.released.Load() {
		return nil
	}

	return c.load()
}

// GetMessage forwards to the carried value.
func (c *Carrier) GetMessage() {
	c.load().GetMessage()
}

// Release deletes the underlying handle. It is safe to call more than
// once; only the first call has an effect. Carriers that are dropped
// without Release are released by the garbage collector.
func (c *Carrier) Release() {
	runtime.SetFinalizer(c, nil)
	c.release()
}

// Released reports whether Release has run.
func (c *Carrier) Released() bool {
	return c.released.Load()
}

// Outstanding returns the number of boxed values whose handle has not
// been released yet.
func Outstanding() int64 {
	return outstanding.Load()
}

func (c *Carrier) release() {
	c.once.Do(func() {
		c.released.Store(true)
		c.handle.Delete()
		outstanding.Add(-1)
	})
}

func (c *Carrier) load() domain.Value {
	if c.released.Load() {
		panic(errors.Violation(errors.ErrCarrierReleased, c.domain))
	}

	return c.handle.Value().(domain.Value)
}

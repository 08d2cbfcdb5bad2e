//go:build !errbridge_unwind

package functions

import (
	"codeberg.org/mutker/errbridge/internal/result"
	"codeberg.org/mutker/errbridge/internal/shim"
)

// Division divides a by b. Failures are returned as the error alternative
// of the result and carry a DivByZero case.
func Division(a, b int, opts ...shim.Option) result.Of[float32] {
	return shim.Call(DivisionName, DivisionOp(a, b), opts...)
}

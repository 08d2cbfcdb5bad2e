//go:build errbridge_unwind

package functions

import (
	"codeberg.org/mutker/errbridge/internal/shim"
)

// Division divides a by b. Failures panic with a *carrier.Carrier holding
// a DivByZero case; recover it with shim.Catch or shim.Try.
func Division(a, b int, opts ...shim.Option) float32 {
	return shim.Throwing(DivisionName, DivisionOp(a, b), opts...)
}

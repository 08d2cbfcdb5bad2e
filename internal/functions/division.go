package functions

import (
	"codeberg.org/mutker/errbridge/internal/shim"
)

// DivisionName is the operation name division is invoked under.
const DivisionName = "functions.division"

// DivisionOp returns the boundary operation computing a / b.
//
// The quotient is Go integer division (truncated toward zero) widened to
// float32, so DivisionOp(7, 2) yields 3 and DivisionOp(-7, 2) yields -3.
func DivisionOp(a, b int) shim.Operation[float32] {
	return func(_ shim.Context, slot *shim.Slot) float32 {
		return division(slot, a, b)
	}
}

func division(slot *shim.Slot, a, b int) float32 {
	if b == 0 {
		if a == 0 {
			slot.Raise(BothAreZero)
		} else {
			slot.Raise(DivisorIsZero)
		}
		return 0
	}

	return float32(a / b)
}

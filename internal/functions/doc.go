// Package functions is the call-site wrapper for the division operation:
// the shape a binding generator emits for one fallible boundary function.
//
// DivisionOp is the single implementation in the boundary calling
// convention. Division wraps it for the mode this binary is built in:
// default builds return a result.Of[float32]; builds with the
// errbridge_unwind tag return a float32 and panic with the carrier.
package functions

//go:build !errbridge_unwind

package shim

// Unwinding is false in default builds ("exceptions disabled"): call-site
// wrappers return a result.Of.
const Unwinding = false

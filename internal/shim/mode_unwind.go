//go:build errbridge_unwind

package shim

// Unwinding is true when the binary is built with the errbridge_unwind
// tag ("exceptions enabled"). Call-site wrappers then return plain values
// and panic with the carrier on failure.
const Unwinding = true

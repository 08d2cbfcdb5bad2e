package functions

import (
	"codeberg.org/mutker/errbridge/internal/domain"
)

// DivByZeroDomain identifies the DivByZero error domain.
const DivByZeroDomain domain.ID = "functions.DivByZero"

// DivByZero is the error domain of Division.
type DivByZero uint8

const (
	// BothAreZero is raised when dividend and divisor are both zero.
	BothAreZero DivByZero = iota + 1
	// DivisorIsZero is raised when only the divisor is zero.
	DivisorIsZero
)

var divByZeroCases = map[DivByZero]string{
	BothAreZero:   "bothAreZero",
	DivisorIsZero: "divisorIsZero",
}

func init() {
	if err := domain.Register(BothAreZero, DivisorIsZero); err != nil {
		panic(err)
	}
}

func (e DivByZero) Domain() domain.ID {
	return DivByZeroDomain
}

func (e DivByZero) Case() string {
	if name, ok := divByZeroCases[e]; ok {
		return name
	}

	return "unknown"
}

func (e DivByZero) Error() string {
	switch e {
	case BothAreZero:
		return "both dividend and divisor are zero"
	case DivisorIsZero:
		return "divisor is zero"
	default:
		return "unknown division error"
	}
}

func (e DivByZero) GetMessage() {
	domain.Report(e)
}

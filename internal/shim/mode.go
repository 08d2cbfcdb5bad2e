package shim

// Mode names how a call site receives failures.
type Mode uint8

const (
	// ResultMode delivers failures as the error alternative of a result.
	ResultMode Mode = iota
	// UnwindingMode delivers failures as a panic with the carrier.
	UnwindingMode
)

func (m Mode) String() string {
	switch m {
	case ResultMode:
		return "result"
	case UnwindingMode:
		return "unwinding"
	default:
		return "unknown"
	}
}

// Compiled returns the mode selected for this binary.
func Compiled() Mode {
	if Unwinding {
		return UnwindingMode
	}

	return ResultMode
}

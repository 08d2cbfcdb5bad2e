package errors

// ErrorCode identifies a class of failure. Codes are stable strings so
// they can be logged and matched across processes.
type ErrorCode string

// Coder is implemented by errors that carry an ErrorCode.
type Coder interface {
	Code() ErrorCode
}

// Error is a coded error with optional message, data and cause.
type Error interface {
	error
	Coder
	WithMessage(msg string) Error
	WithData(data any) Error
	GetData() any
	Unwrap() error
}

// Factory builds Error values. Packages take one with New and keep it
// local to the function that reports.
type Factory interface {
	New(code ErrorCode) Error
	Wrap(code ErrorCode, err error) Error
	WithMessage(code ErrorCode, msg string) Error
	WithData(code ErrorCode, data any) Error
}

package errors

// Common error codes
const (
	// System errors
	ErrInvalidArgument ErrorCode = "invalid_argument"

	// Contract errors
	ErrContractViolation ErrorCode = "contract_violation"
	ErrCarrierReleased   ErrorCode = "carrier_released"
	ErrSlotRewritten     ErrorCode = "error_slot_rewritten"

	// Configuration errors
	ErrInvalidConfig   ErrorCode = "invalid_configuration"
	ErrBindFlags       ErrorCode = "bind_flags_failed"
	ErrReadConfig      ErrorCode = "read_config_failed"
	ErrInvalidOperands ErrorCode = "invalid_operands"

	// Logging errors
	ErrInvalidLogLevel ErrorCode = "invalid_log_level"

	// Domain registry errors
	ErrEmptyDomain      ErrorCode = "empty_domain"
	ErrMixedDomain      ErrorCode = "mixed_domain"
	ErrDuplicateCase    ErrorCode = "duplicate_case"
	ErrDomainConflict   ErrorCode = "domain_conflict"
	ErrUnknownDomain    ErrorCode = "unknown_domain"
	ErrUnknownCase      ErrorCode = "unknown_case"
	ErrMissingErrorInfo ErrorCode = "missing_error_info"

	// Operation errors
	ErrTimeout ErrorCode = "operation_timeout"

	// Journal errors
	ErrInitJournal   ErrorCode = "init_journal_failed"
	ErrRecordJournal ErrorCode = "record_journal_failed"
	ErrCloseJournal  ErrorCode = "close_journal_failed"
)

// Common error messages
var errorMessages = map[ErrorCode]string{
	ErrInvalidArgument:   "Invalid argument provided",
	ErrContractViolation: "Contract violation",
	ErrCarrierReleased:   "Error carrier used after release",
	ErrSlotRewritten:     "Error slot written twice",
	ErrInvalidConfig:     "Invalid configuration",
	ErrBindFlags:         "Failed to bind flags",
	ErrReadConfig:        "Failed to read config file",
	ErrInvalidOperands:   "Invalid operand pair",
	ErrInvalidLogLevel:   "Invalid log level",
	ErrEmptyDomain:       "Error domain has no cases",
	ErrMixedDomain:       "Cases belong to different error domains",
	ErrDuplicateCase:     "Duplicate error case",
	ErrDomainConflict:    "Error domain already registered with different cases",
	ErrUnknownDomain:     "Unknown error domain",
	ErrUnknownCase:       "Unknown error case",
	ErrMissingErrorInfo:  "Status carries no error info",
	ErrTimeout:           "Operation timed out",
	ErrInitJournal:       "Failed to initialize journal",
	ErrRecordJournal:     "Failed to record call outcome",
	ErrCloseJournal:      "Failed to close journal",
}

// GetErrorMessage returns the message for a given error code
func GetErrorMessage(code ErrorCode) string {
	if msg, ok := errorMessages[code]; ok {
		return msg
	}

	return string(code)
}

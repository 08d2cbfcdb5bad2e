// Package domain defines error domains: closed sets of named error cases
// that can cross a call boundary inside a carrier.
package domain

import (
	"codeberg.org/mutker/errbridge/internal/logger"
)

// ID identifies an error domain at runtime.
type ID string

// Value is one case of an error domain. Cases are immutable constants,
// comparable with ==, and carry nothing beyond their case tag.
type Value interface {
	error

	// Domain returns the identifier of the domain the case belongs to.
	Domain() ID

	// Case returns the case name, unique within the domain.
	Case() string

	// GetMessage renders a human-readable description of the case to the
	// diagnostic log. Callers must not depend on the output format.
	GetMessage()
}

// Report writes the description of v to the diagnostic log. Domains use
// it to implement GetMessage.
func Report(v Value) {
	logger.Info().
		Str("domain", string(v.Domain())).
		Str("case", v.Case()).
		Msg(v.Error())
}

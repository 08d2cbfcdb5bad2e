package journal

import (
	"context"
	"time"

	"codeberg.org/mutker/errbridge/internal/shim"
)

// Journal records the outcome of shim calls. It is a shim.Observer, so
// it can be passed to shim.WithObserver directly.
type Journal interface {
	shim.Observer
	Record(ctx context.Context, entry *Entry) error
	Recent(ctx context.Context, limit int) ([]Entry, error)
	Flush() error
	Close() error
}

// Repository defines the interface for journal storage
type Repository interface {
	Record(entry *Entry) error
	Recent(ctx context.Context, limit int) ([]Entry, error)
	Flush() error
	Close() error
}

// Entry is one recorded call outcome.
type Entry struct {
	StartedAt time.Time
	Duration  time.Duration
	Operation string
	Mode      string
	Failed    bool
	Value     string
	Domain    string
	Case      string
}

// EntryFromOutcome converts a shim outcome into a journal entry.
func EntryFromOutcome(o shim.Outcome) Entry {
	e := Entry{
		StartedAt: o.Started,
		Duration:  o.Duration,
		Operation: o.Operation,
		Mode:      o.Mode.String(),
		Failed:    o.Failed,
		Domain:    string(o.Domain),
		Case:      o.Case,
	}
	if !o.Failed && o.Value != nil {
		e.Value = formatValue(o.Value)
	}

	return e
}

package journal

import (
	"context"
	"fmt"
	"strconv"

	"codeberg.org/mutker/errbridge/internal/errors"
	"codeberg.org/mutker/errbridge/internal/logger"
	"codeberg.org/mutker/errbridge/internal/shim"
)

type service struct {
	repo   Repository
	cfg    Config
	logger logger.Logger
}

// No-op implementation
type noopJournal struct{}

// NewService returns a journal for cfg. A disabled configuration yields a
// journal that records nothing.
func NewService(cfg Config, log logger.Logger) (Journal, error) {
	errFactory := errors.New()

	if err := cfg.Validate(); err != nil {
		return nil, errFactory.Wrap(ErrInvalidConfig, err)
	}

	if !cfg.Enabled {
		log.Debug().Msg("Call journal disabled, using no-op journal")
		return &noopJournal{}, nil
	}

	repo, err := NewRepository(cfg, log)
	if err != nil {
		log.Debug().Err(err).Msg("Failed to create journal repository")
		return nil, err
	}

	return &service{
		repo:   repo,
		cfg:    cfg,
		logger: log,
	}, nil
}

func (s *service) Observe(outcome shim.Outcome) {
	entry := EntryFromOutcome(outcome)
	if err := s.Record(context.Background(), &entry); err != nil {
		s.logger.Error().Err(err).
			Str("operation", outcome.Operation).
			Msg("Failed to journal call outcome")
	}
}

func (s *service) Record(ctx context.Context, entry *Entry) error {
	errFactory := errors.New()

	if entry == nil || entry.Operation == "" {
		return errFactory.New(ErrInvalidEntry)
	}

	select {
	case <-ctx.Done():
		return errFactory.Wrap(ErrOperationTimeout, ctx.Err())
	default:
		if err := s.repo.Record(entry); err != nil {
			return errFactory.Wrap(ErrRecordFailed, err)
		}
	}

	return nil
}

func (s *service) Recent(ctx context.Context, limit int) ([]Entry, error) {
	return s.repo.Recent(ctx, limit)
}

func (s *service) Flush() error {
	return s.repo.Flush()
}

func (s *service) Close() error {
	if err := s.repo.Close(); err != nil {
		return errors.New().Wrap(ErrStorageClose, err)
	}
	return nil
}

func (*noopJournal) Observe(_ shim.Outcome) {}

func (*noopJournal) Record(_ context.Context, _ *Entry) error {
	return nil
}

func (*noopJournal) Recent(_ context.Context, _ int) ([]Entry, error) {
	return nil, nil
}

func (*noopJournal) Flush() error {
	return nil
}

func (*noopJournal) Close() error {
	return nil
}

func formatValue(v any) string {
	switch x := v.(type) {
	case float32:
		return strconv.FormatFloat(float64(x), 'g', -1, 32)
	case float64:
		return strconv.FormatFloat(x, 'g', -1, 64)
	case struct{}:
		return ""
	default:
		return fmt.Sprint(x)
	}
}

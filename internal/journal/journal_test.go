package journal_test

import (
	"context"
	"database/sql"
	"os"
	"path/filepath"
	"testing"
	"time"

	"codeberg.org/mutker/errbridge/internal/errors"
	"codeberg.org/mutker/errbridge/internal/functions"
	"codeberg.org/mutker/errbridge/internal/journal"
	"codeberg.org/mutker/errbridge/internal/logger"
	"codeberg.org/mutker/errbridge/internal/shim"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testConfig(t *testing.T, batch int) journal.Config {
	t.Helper()

	dir := t.TempDir()
	cfg := journal.DefaultConfig()
	cfg.Enabled = true
	cfg.DBPath = filepath.Join(dir, "db", "journal.db")
	cfg.BackupDir = filepath.Join(dir, "backups")
	cfg.BatchSize = batch

	return cfg
}

func TestDisabledJournalIsNoop(t *testing.T) {
	j, err := journal.NewService(journal.DefaultConfig(), logger.Get())
	require.NoError(t, err)

	j.Observe(shim.Outcome{Operation: "x"})
	require.NoError(t, j.Record(context.Background(), &journal.Entry{Operation: "x"}))

	entries, err := j.Recent(context.Background(), 10)
	require.NoError(t, err)
	assert.Empty(t, entries)
	assert.NoError(t, j.Flush())
	assert.NoError(t, j.Close())
}

func TestValidate(t *testing.T) {
	cfg := journal.DefaultConfig()
	assert.NoError(t, cfg.Validate())

	cfg.Enabled = true
	cfg.DBPath = ""
	assert.True(t, errors.HasCode(cfg.Validate(), journal.ErrInvalidDBPath))

	cfg.DBPath = "/tmp/j.db"
	cfg.BatchSize = 0
	assert.True(t, errors.HasCode(cfg.Validate(), journal.ErrInvalidConfig))

	_, err := journal.NewService(cfg, logger.Get())
	assert.True(t, errors.HasCode(err, journal.ErrInvalidConfig))
}

func TestObserveShimCalls(t *testing.T) {
	j, err := journal.NewService(testConfig(t, 1), logger.Get())
	require.NoError(t, err)
	defer j.Close()

	r := shim.Call(functions.DivisionName, functions.DivisionOp(4, 2), shim.WithObserver(j))
	require.True(t, r.HasValue())

	c := shim.Catch(func() {
		shim.Throwing(functions.DivisionName, functions.DivisionOp(1, 0), shim.WithObserver(j))
	})
	require.NotNil(t, c)
	c.Release()

	entries, err := j.Recent(context.Background(), 10)
	require.NoError(t, err)
	require.Len(t, entries, 2)

	// Most recent first
	failed, ok := entries[0], entries[1]
	assert.Equal(t, functions.DivisionName, failed.Operation)
	assert.Equal(t, "unwinding", failed.Mode)
	assert.True(t, failed.Failed)
	assert.Equal(t, string(functions.DivByZeroDomain), failed.Domain)
	assert.Equal(t, "divisorIsZero", failed.Case)
	assert.Empty(t, failed.Value)

	assert.Equal(t, "result", ok.Mode)
	assert.False(t, ok.Failed)
	assert.Equal(t, "2", ok.Value)
	assert.Empty(t, ok.Domain)
	assert.Empty(t, ok.Case)
	assert.False(t, ok.StartedAt.IsZero())
}

func TestBatchedRecording(t *testing.T) {
	j, err := journal.NewService(testConfig(t, 3), logger.Get())
	require.NoError(t, err)
	defer j.Close()

	ctx := context.Background()
	for i := 0; i < 2; i++ {
		require.NoError(t, j.Record(ctx, &journal.Entry{
			StartedAt: time.Now(),
			Operation: "batched",
			Mode:      "result",
		}))
	}

	entries, err := j.Recent(ctx, 10)
	require.NoError(t, err)
	assert.Empty(t, entries, "entries below batch size stay buffered")

	require.NoError(t, j.Flush())

	entries, err = j.Recent(ctx, 10)
	require.NoError(t, err)
	assert.Len(t, entries, 2)
}

func TestPeriodicFlush(t *testing.T) {
	cfg := testConfig(t, 10)
	cfg.BatchTimeout = 1

	j, err := journal.NewService(cfg, logger.Get())
	require.NoError(t, err)
	defer j.Close()

	r := shim.Call(functions.DivisionName, functions.DivisionOp(9, 3), shim.WithObserver(j))
	require.True(t, r.HasValue())

	ctx := context.Background()
	entries, err := j.Recent(ctx, 10)
	require.NoError(t, err)
	assert.Empty(t, entries)

	assert.Eventually(t, func() bool {
		entries, err := j.Recent(ctx, 10)
		return err == nil && len(entries) == 1
	}, 5*time.Second, 50*time.Millisecond, "partial batch should be flushed by the ticker")
}

func TestCloseFlushesBuffer(t *testing.T) {
	cfg := testConfig(t, 10)

	j, err := journal.NewService(cfg, logger.Get())
	require.NoError(t, err)
	require.NoError(t, j.Record(context.Background(), &journal.Entry{
		StartedAt: time.Now(),
		Operation: "pending",
		Mode:      "result",
	}))
	require.NoError(t, j.Close())
	require.NoError(t, j.Close())

	reopened, err := journal.NewService(cfg, logger.Get())
	require.NoError(t, err)
	defer reopened.Close()

	entries, err := reopened.Recent(context.Background(), 10)
	require.NoError(t, err)
	require.Len(t, entries, 1)
	assert.Equal(t, "pending", entries[0].Operation)
}

func TestRecordRejectsInvalidEntries(t *testing.T) {
	j, err := journal.NewService(testConfig(t, 1), logger.Get())
	require.NoError(t, err)
	defer j.Close()

	assert.True(t, errors.HasCode(j.Record(context.Background(), nil), journal.ErrInvalidEntry))
	assert.True(t, errors.HasCode(j.Record(context.Background(), &journal.Entry{}), journal.ErrInvalidEntry))

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	err = j.Record(ctx, &journal.Entry{Operation: "late", Mode: "result"})
	assert.True(t, errors.HasCode(err, journal.ErrOperationTimeout))
}

func TestSchemaMismatchIsBackedUp(t *testing.T) {
	cfg := testConfig(t, 1)
	require.NoError(t, os.MkdirAll(filepath.Dir(cfg.DBPath), 0o755))

	db, err := sql.Open("sqlite3", cfg.DBPath)
	require.NoError(t, err)
	_, err = db.Exec(`
		CREATE TABLE schema_versions (version INTEGER PRIMARY KEY, applied_at TEXT NOT NULL);
		INSERT INTO schema_versions (version, applied_at) VALUES (99, datetime('now'));
		CREATE TABLE calls (legacy TEXT);`)
	require.NoError(t, err)
	require.NoError(t, db.Close())

	j, err := journal.NewService(cfg, logger.Get())
	require.NoError(t, err)
	defer j.Close()

	backups, err := filepath.Glob(filepath.Join(cfg.BackupDir, "journal_v99_*.db"))
	require.NoError(t, err)
	assert.Len(t, backups, 1)

	require.NoError(t, j.Record(context.Background(), &journal.Entry{Operation: "fresh", Mode: "result"}))
	entries, err := j.Recent(context.Background(), 10)
	require.NoError(t, err)
	assert.Len(t, entries, 1)
}

func TestEntryFromOutcome(t *testing.T) {
	started := time.Now()
	e := journal.EntryFromOutcome(shim.Outcome{
		Operation: "nvml.device_count",
		Mode:      shim.ResultMode,
		Value:     3,
		Started:   started,
		Duration:  time.Millisecond,
	})

	assert.Equal(t, "3", e.Value)
	assert.Equal(t, "result", e.Mode)
	assert.Equal(t, started, e.StartedAt)
	assert.Equal(t, time.Millisecond, e.Duration)

	e = journal.EntryFromOutcome(shim.Outcome{Operation: "nvml.init", Value: struct{}{}})
	assert.Empty(t, e.Value)

	e = journal.EntryFromOutcome(shim.Outcome{Operation: "functions.division", Value: float32(2.5)})
	assert.Equal(t, "2.5", e.Value)
}

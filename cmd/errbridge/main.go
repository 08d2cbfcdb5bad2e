package main

import (
	"os"

	"codeberg.org/mutker/errbridge/internal/carrier"
	"codeberg.org/mutker/errbridge/internal/config"
	"codeberg.org/mutker/errbridge/internal/errors"
	"codeberg.org/mutker/errbridge/internal/functions"
	"codeberg.org/mutker/errbridge/internal/gpu"
	"codeberg.org/mutker/errbridge/internal/journal"
	"codeberg.org/mutker/errbridge/internal/logger"
	"codeberg.org/mutker/errbridge/internal/shim"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		logger.Error().Err(err).Msg("failed to load config")
		os.Exit(1)
	}

	level, err := logger.ParseLevel(cfg.LogLevel)
	if err != nil {
		logger.Error().Err(err).Msg("invalid log level")
		os.Exit(1)
	}
	logger.Init(level, logger.IsService())

	journalCfg := journal.DefaultConfig()
	journalCfg.Enabled = cfg.Journal
	journalCfg.DBPath = cfg.JournalDB
	journalCfg.BatchSize = cfg.JournalBatch
	journalCfg.BatchTimeout = cfg.JournalBatchTimeout

	calls, err := journal.NewService(journalCfg, logger.Get())
	if err != nil {
		var appErr errors.Error
		if errors.As(err, &appErr) {
			logger.FatalWithCode(appErr).Msg("failed to open journal")
		}
		logger.Fatal().Err(err).Msg("failed to open journal")
	}
	defer func() {
		if err := calls.Close(); err != nil {
			logger.Error().Err(err).Msg("failed to close journal")
		}
	}()

	logger.Info().Str("mode", shim.Compiled().String()).Msg("Running division pairs")

	for _, pair := range cfg.Pairs {
		runDivision(pair, calls)
	}

	if cfg.GPU {
		probeGPU(calls)
	}
}

func logFailure(operation string, c *carrier.Carrier) {
	logger.Warn().
		Str("operation", operation).
		Str("domain", string(c.Domain())).
		Str("case", c.Case()).
		Msg(c.Error())
}

func probeGPU(observer shim.Observer) {
	client := gpu.New()

	if r := shim.Call(gpu.InitName, client.Init(), shim.WithObserver(observer)); !r.HasValue() {
		c := r.Err()
		defer c.Release()
		if ret, ok := carrier.As[gpu.Return](c); ok {
			ret.GetMessage()
		}
		logFailure(gpu.InitName, c)
		return
	}
	defer func() {
		if r := shim.Call(gpu.ShutdownName, client.Shutdown(), shim.WithObserver(observer)); !r.HasValue() {
			logFailure(gpu.ShutdownName, r.Err())
			r.Release()
		}
	}()

	count := shim.Call(gpu.DeviceCountName, client.DeviceCount(), shim.WithObserver(observer))
	if !count.HasValue() {
		logFailure(gpu.DeviceCountName, count.Err())
		count.Release()
		return
	}

	for i := 0; i < count.Value(); i++ {
		name := shim.Call(gpu.DeviceNameName, client.DeviceName(i), shim.WithObserver(observer))
		if !name.HasValue() {
			logFailure(gpu.DeviceNameName, name.Err())
			name.Release()
			continue
		}
		logger.Info().Int("index", i).Str("name", name.Value()).Msg("Detected GPU")
	}
}

func reportDivisionFailure(pair config.Pair, c *carrier.Carrier) {
	defer c.Release()

	e, ok := carrier.As[functions.DivByZero](c)
	if !ok {
		logFailure(functions.DivisionName, c)
		return
	}

	logger.Info().
		Int("a", pair.A).
		Int("b", pair.B).
		Str("case", e.Case()).
		Msg("division failed")
	e.GetMessage()
}

//go:build !errbridge_unwind

package main

import (
	"codeberg.org/mutker/errbridge/internal/config"
	"codeberg.org/mutker/errbridge/internal/functions"
	"codeberg.org/mutker/errbridge/internal/logger"
	"codeberg.org/mutker/errbridge/internal/shim"
)

func runDivision(pair config.Pair, observer shim.Observer) {
	r := functions.Division(pair.A, pair.B, shim.WithObserver(observer))
	if !r.HasValue() {
		reportDivisionFailure(pair, r.Err())
		return
	}

	logger.Info().
		Int("a", pair.A).
		Int("b", pair.B).
		Float32("result", r.Value()).
		Msg("division succeeded")
}

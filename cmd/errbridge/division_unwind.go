//go:build errbridge_unwind

package main

import (
	"codeberg.org/mutker/errbridge/internal/config"
	"codeberg.org/mutker/errbridge/internal/functions"
	"codeberg.org/mutker/errbridge/internal/logger"
	"codeberg.org/mutker/errbridge/internal/shim"
)

func runDivision(pair config.Pair, observer shim.Observer) {
	v, c := shim.Try(func() float32 {
		return functions.Division(pair.A, pair.B, shim.WithObserver(observer))
	})
	if c != nil {
		reportDivisionFailure(pair, c)
		return
	}

	logger.Info().
		Int("a", pair.A).
		Int("b", pair.B).
		Float32("result", v).
		Msg("division succeeded")
}

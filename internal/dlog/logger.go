// Package dlog provides the package-scoped logger used across kzgshard,
// mirroring the github.com/consensys/gnark/logger idiom of a single
// zerolog.Logger obtained through a package-level accessor.
package dlog

import (
	"os"
	"sync"

	"github.com/rs/zerolog"
)

var (
	once   sync.Once
	global zerolog.Logger
)

// Logger returns the shared zerolog.Logger. Level defaults to info and can be
// lowered to debug (or raised to warn/error) via KZGSHARD_LOG.
func Logger() *zerolog.Logger {
	once.Do(func() {
		level := zerolog.InfoLevel
		if env := os.Getenv("KZGSHARD_LOG"); env != "" {
			if lvl, err := zerolog.ParseLevel(env); err == nil {
				level = lvl
			}
		}
		global = zerolog.New(zerolog.ConsoleWriter{Out: os.Stderr}).
			Level(level).
			With().Timestamp().Logger()
	})
	return &global
}

// SetOutput redirects the logger's writer, for tests that want to assert on
// log output instead of spamming stderr.
func SetOutput(w interface{ Write([]byte) (int, error) }) {
	Logger() // ensure initialized
	global = global.Output(w)
}

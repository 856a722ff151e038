// Command atomfs performs crash-safe filesystem operations from the command
// line: atomic writes, parked removals, verified copies, links and mirrors.
package main

import (
	"log/slog"
	"os"
	"time"

	"github.com/lmittmann/tint"
)

//nolint:gochecknoglobals
var (
	ExitCode = 0
	Version  string
)

func setupLogging(level slog.Level) {
	slog.SetDefault(slog.New(
		tint.NewHandler(os.Stderr, &tint.Options{
			Level:      level,
			TimeFormat: time.Kitchen,
		}),
	))
}

func main() {
	defer func() {
		os.Exit(ExitCode)
	}()

	setupLogging(slog.LevelInfo)

	if err := newRootCmd().Execute(); err != nil {
		slog.Error("Operation failed.",
			"err", err,
		)
		ExitCode = 1
	}
}

//go:build !js

package shell

import (
	"log/slog"
	"os"
)

// NewPlatformLogger returns the logger for the current target: a text
// handler on stderr at info level.
func NewPlatformLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{
		Level: slog.LevelInfo,
	}))
}

//go:build js

package shell

import (
	"context"
	"fmt"
	"log/slog"
	"strings"
	"syscall/js"
)

// NewPlatformLogger returns the logger for the current target: records are
// forwarded to the browser console, filtered to warnings and above.
func NewPlatformLogger() *slog.Logger {
	return slog.New(&consoleHandler{level: slog.LevelWarn})
}

type consoleHandler struct {
	level slog.Level
	attrs []slog.Attr
}

func (h *consoleHandler) Enabled(_ context.Context, level slog.Level) bool {
	return level >= h.level
}

func (h *consoleHandler) Handle(_ context.Context, rec slog.Record) error {
	var sb strings.Builder
	sb.WriteString(rec.Message)

	appendAttr := func(attr slog.Attr) bool {
		fmt.Fprintf(&sb, " %s=%v", attr.Key, attr.Value)
		return true
	}

	for _, attr := range h.attrs {
		appendAttr(attr)
	}

	rec.Attrs(appendAttr)

	console := js.Global().Get("console")

	switch {
	case rec.Level >= slog.LevelError:
		console.Call("error", sb.String())
	case rec.Level >= slog.LevelWarn:
		console.Call("warn", sb.String())
	case rec.Level >= slog.LevelInfo:
		console.Call("info", sb.String())
	default:
		console.Call("debug", sb.String())
	}

	return nil
}

func (h *consoleHandler) WithAttrs(attrs []slog.Attr) slog.Handler {
	merged := append(append([]slog.Attr{}, h.attrs...), attrs...)
	return &consoleHandler{level: h.level, attrs: merged}
}

func (h *consoleHandler) WithGroup(name string) slog.Handler {
	// groups are not visible in the console output, keep the handler as is
	return h
}

package main

import (
	"log/slog"
	"os"

	"github.com/oliverbestmann/cubes/app"
	"github.com/oliverbestmann/cubes/shell"
)

func main() {
	log := shell.NewPlatformLogger()
	slog.SetDefault(log)

	loop, err := shell.NewEventLoop()
	if err != nil {
		fatal(log, "Cannot build event loop", err)
	}

	a := app.New(log)

	if err := loop.Run(a); err != nil {
		fatal(log, "Event loop failed", err)
	}

	if err := a.Err(); err != nil {
		fatal(log, "Application failed", err)
	}
}

func fatal(log *slog.Logger, msg string, err error) {
	log.Error(msg, slog.Any("err", err))
	os.Exit(1)
}

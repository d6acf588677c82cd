// Package app owns the window/renderer pair and translates platform events
// into renderer operations.
//
// Known gap: the Suspended signal keeps all GPU resources alive, even though
// some platforms invalidate them while the app is in the background.
package app

import (
	"errors"
	"fmt"
	"log/slog"

	"github.com/oliverbestmann/cubes/gfx"
	"github.com/oliverbestmann/cubes/shell"
)

const (
	windowWidth  = 800
	windowHeight = 800
	windowTitle  = "Cubes"
)

// Renderer is what the controller drives per frame. *gfx.State is the real
// implementation.
type Renderer interface {
	// Size returns the currently configured surface size.
	Size() (uint32, uint32)

	Resize(width, height uint32)

	// HandleInput reports whether the event was consumed. Consumed events
	// are not dispatched any further.
	HandleInput(ev shell.Event) bool

	Update()
	Render() error
	Release()
}

// App is the shell.Handler of the application. It holds at most one
// window/renderer pair, created when the platform signals Resumed, and
// drives a frame per RedrawRequested event.
type App struct {
	log *slog.Logger

	window   shell.Window
	renderer Renderer

	// err holds the failure that made the app exit the loop, if any
	err error

	newRenderer func(win shell.Window, log *slog.Logger) (Renderer, error)
}

func New(log *slog.Logger) *App {
	return &App{
		log: log,
		newRenderer: func(win shell.Window, log *slog.Logger) (Renderer, error) {
			return gfx.NewState(win, log)
		},
	}
}

// Err returns the failure that terminated the loop, or nil after a normal
// exit.
func (a *App) Err() error {
	return a.err
}

func (a *App) HandleEvent(loop shell.ActiveLoop, ev shell.Event) {
	switch ev.(type) {
	case shell.Resumed:
		a.log.Info("Resumed")

		if a.window != nil {
			return
		}

		if err := a.start(loop); err != nil {
			a.fail(loop, err)
		}

	case shell.Suspended:
		// the GPU resources are kept alive here even though the platform
		// may invalidate them, see the known gap in the package docs
		a.log.Info("Suspended")

	default:
		a.handleWindowEvent(loop, ev)
	}
}

func (a *App) start(loop shell.ActiveLoop) error {
	win, err := loop.CreateWindow(shell.WindowOptions{
		Width:  windowWidth,
		Height: windowHeight,
		Title:  windowTitle,
	})

	if err != nil {
		return fmt.Errorf("create window: %w", err)
	}

	renderer, err := a.newRenderer(win, a.log)
	if err != nil {
		win.Destroy()
		return fmt.Errorf("create renderer: %w", err)
	}

	a.window = win
	a.renderer = renderer

	// kick off continuous rendering
	win.RequestRedraw()

	return nil
}

func (a *App) handleWindowEvent(loop shell.ActiveLoop, ev shell.Event) {
	if a.window == nil {
		return
	}

	// events for other windows and device level events are not ours
	id, ok := eventWindow(ev)
	if !ok || id != a.window.ID() {
		return
	}

	if a.renderer.HandleInput(ev) {
		return
	}

	switch ev := ev.(type) {
	case shell.CloseRequested:
		a.log.Info("Close requested")
		a.shutdown(loop)

	case shell.KeyEvent:
		if ev.Key == shell.KeyEscape && ev.Pressed {
			a.shutdown(loop)
		}

	case shell.Resized:
		a.renderer.Resize(ev.Width, ev.Height)

	case shell.ScaleFactorChanged:
		// scale changes do not trigger a logical resize for now
		a.log.Debug("Ignoring scale factor change", slog.Float64("scale", ev.Scale))

	case shell.RedrawRequested:
		a.redraw(loop)
	}
}

func (a *App) redraw(loop shell.ActiveLoop) {
	a.renderer.Update()

	switch err := a.renderer.Render(); {
	case err == nil:

	case errors.Is(err, gfx.ErrSurfaceLost):
		// reconfiguring at the current size recovers the surface, the
		// next frame retries
		width, height := a.renderer.Size()

		a.log.Warn("Surface lost, reconfiguring",
			slog.Int("width", int(width)),
			slog.Int("height", int(height)),
		)

		a.renderer.Resize(width, height)

	case errors.Is(err, gfx.ErrOutOfMemory):
		a.log.Error("Out of memory, cannot render", slog.Any("err", err))
		a.shutdown(loop)
		return

	default:
		// outdated, timeout and the like resolve on the next frame
		a.log.Error("Render failed", slog.Any("err", err))
	}

	a.window.RequestRedraw()
}

func (a *App) fail(loop shell.ActiveLoop, err error) {
	a.err = err
	a.shutdown(loop)
}

func (a *App) shutdown(loop shell.ActiveLoop) {
	loop.Exit()

	// the renderer's surface references the window, release it first
	if a.renderer != nil {
		a.renderer.Release()
		a.renderer = nil
	}

	if a.window != nil {
		a.window.Destroy()
		a.window = nil
	}
}

// eventWindow returns the id of the window an event belongs to. Events
// without a window, like Resumed, report false.
func eventWindow(ev shell.Event) (shell.WindowID, bool) {
	switch ev := ev.(type) {
	case shell.CloseRequested:
		return ev.Window, true
	case shell.Resized:
		return ev.Window, true
	case shell.ScaleFactorChanged:
		return ev.Window, true
	case shell.KeyEvent:
		return ev.Window, true
	case shell.RedrawRequested:
		return ev.Window, true
	}

	return 0, false
}

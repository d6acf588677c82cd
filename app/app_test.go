package app

import (
	"errors"
	"fmt"
	"log/slog"
	"testing"

	"github.com/oliverbestmann/cubes/gfx"
	"github.com/oliverbestmann/cubes/shell"
	"github.com/oliverbestmann/webgpu/wgpu"
)

type fakeLoop struct {
	exited  bool
	windows int
}

func (l *fakeLoop) CreateWindow(opts shell.WindowOptions) (shell.Window, error) {
	l.windows++
	return &fakeWindow{id: 1}, nil
}

func (l *fakeLoop) Exit() {
	l.exited = true
}

type fakeWindow struct {
	id        shell.WindowID
	redraws   int
	destroyed bool
}

func (w *fakeWindow) ID() shell.WindowID                         { return w.id }
func (w *fakeWindow) Size() (uint32, uint32)                     { return 800, 800 }
func (w *fakeWindow) SurfaceDescriptor() *wgpu.SurfaceDescriptor { return nil }
func (w *fakeWindow) RequestRedraw()                             { w.redraws++ }
func (w *fakeWindow) Destroy()                                   { w.destroyed = true }

type scriptedRenderer struct {
	width, height uint32

	// renderErrs are returned by Render in order, then nil
	renderErrs []error

	renders  int
	updates  int
	resizes  [][2]uint32
	released bool
	consume  bool
}

func (r *scriptedRenderer) Size() (uint32, uint32) {
	return r.width, r.height
}

func (r *scriptedRenderer) Resize(width, height uint32) {
	r.resizes = append(r.resizes, [2]uint32{width, height})

	if width > 0 && height > 0 {
		r.width, r.height = width, height
	}
}

func (r *scriptedRenderer) HandleInput(ev shell.Event) bool {
	return r.consume
}

func (r *scriptedRenderer) Update() {
	r.updates++
}

func (r *scriptedRenderer) Render() error {
	r.renders++

	if len(r.renderErrs) > 0 {
		err := r.renderErrs[0]
		r.renderErrs = r.renderErrs[1:]
		return err
	}

	return nil
}

func (r *scriptedRenderer) Release() {
	r.released = true
}

// startApp resumes a fresh App with a scripted renderer in place.
func startApp(t *testing.T) (*App, *fakeLoop, *fakeWindow, *scriptedRenderer) {
	t.Helper()

	renderer := &scriptedRenderer{width: 800, height: 800}

	a := New(slog.New(slog.DiscardHandler))
	a.newRenderer = func(win shell.Window, log *slog.Logger) (Renderer, error) {
		return renderer, nil
	}

	loop := &fakeLoop{}
	a.HandleEvent(loop, shell.Resumed{})

	win, ok := a.window.(*fakeWindow)
	if !ok {
		t.Fatalf("no window after Resumed")
	}

	return a, loop, win, renderer
}

func TestResumedCreatesWindowPair(t *testing.T) {
	a, loop, win, _ := startApp(t)

	if loop.windows != 1 {
		t.Errorf("created %d windows, want 1", loop.windows)
	}

	if a.renderer == nil {
		t.Error("no renderer after Resumed")
	}

	if win.redraws == 0 {
		t.Error("first redraw was not requested")
	}

	// a second Resumed must not create another pair
	a.HandleEvent(loop, shell.Resumed{})

	if loop.windows != 1 {
		t.Errorf("created %d windows after repeated Resumed, want 1", loop.windows)
	}
}

func TestRedrawRendersAndRequestsNext(t *testing.T) {
	a, loop, win, renderer := startApp(t)

	before := win.redraws
	a.HandleEvent(loop, shell.RedrawRequested{Window: win.id})

	if renderer.updates != 1 || renderer.renders != 1 {
		t.Errorf("got %d updates, %d renders, want 1 and 1", renderer.updates, renderer.renders)
	}

	if win.redraws != before+1 {
		t.Error("next redraw was not requested")
	}
}

func TestSurfaceLostResizesAtCurrentSize(t *testing.T) {
	a, loop, win, renderer := startApp(t)

	// the surface was resized since startup, recovery must use the
	// current size, not the original one
	a.HandleEvent(loop, shell.Resized{Window: win.id, Width: 1024, Height: 768})

	renderer.renderErrs = []error{fmt.Errorf("%w: gone", gfx.ErrSurfaceLost)}
	a.HandleEvent(loop, shell.RedrawRequested{Window: win.id})

	want := [2]uint32{1024, 768}
	last := renderer.resizes[len(renderer.resizes)-1]
	if last != want {
		t.Errorf("recovery resize = %v, want %v", last, want)
	}

	if loop.exited {
		t.Error("loop exited on a recoverable error")
	}

	// the next frame renders again
	a.HandleEvent(loop, shell.RedrawRequested{Window: win.id})

	if renderer.renders != 2 {
		t.Errorf("got %d renders, want 2", renderer.renders)
	}
}

func TestOutOfMemoryExitsLoop(t *testing.T) {
	a, loop, win, renderer := startApp(t)

	renderer.renderErrs = []error{fmt.Errorf("%w: frame", gfx.ErrOutOfMemory)}
	a.HandleEvent(loop, shell.RedrawRequested{Window: win.id})

	if !loop.exited {
		t.Fatal("loop did not exit on out of memory")
	}

	if !renderer.released {
		t.Error("renderer was not released")
	}

	if !win.destroyed {
		t.Error("window was not destroyed")
	}

	// a stray redraw after shutdown must not render
	a.HandleEvent(loop, shell.RedrawRequested{Window: win.id})

	if renderer.renders != 1 {
		t.Errorf("got %d renders after shutdown, want 1", renderer.renders)
	}
}

func TestTransientRenderErrorsContinue(t *testing.T) {
	a, loop, win, renderer := startApp(t)

	before := win.redraws
	renderer.renderErrs = []error{errors.New("acquire surface texture: some transient condition")}
	a.HandleEvent(loop, shell.RedrawRequested{Window: win.id})

	if loop.exited {
		t.Error("loop exited on a transient error")
	}

	if len(renderer.resizes) != 0 {
		t.Error("transient error triggered a resize")
	}

	if win.redraws != before+1 {
		t.Error("next redraw was not requested after a transient error")
	}
}

func TestForeignWindowEventsIgnored(t *testing.T) {
	a, loop, _, renderer := startApp(t)

	a.HandleEvent(loop, shell.Resized{Window: 99, Width: 10, Height: 10})
	a.HandleEvent(loop, shell.KeyEvent{Window: 99, Key: shell.KeyEscape, Pressed: true})
	a.HandleEvent(loop, shell.RedrawRequested{Window: 99})

	if len(renderer.resizes) != 0 || renderer.renders != 0 {
		t.Error("events for a foreign window reached the renderer")
	}

	if loop.exited {
		t.Error("events for a foreign window exited the loop")
	}
}

func TestEscapeKey(t *testing.T) {
	t.Run("release does not exit", func(t *testing.T) {
		a, loop, win, _ := startApp(t)

		a.HandleEvent(loop, shell.KeyEvent{Window: win.id, Key: shell.KeyEscape, Pressed: false})

		if loop.exited {
			t.Error("escape release exited the loop")
		}
	})

	t.Run("press exits", func(t *testing.T) {
		a, loop, win, _ := startApp(t)

		a.HandleEvent(loop, shell.KeyEvent{Window: win.id, Key: shell.KeyEscape, Pressed: true})

		if !loop.exited {
			t.Error("escape press did not exit the loop")
		}
	})

	t.Run("other keys do nothing", func(t *testing.T) {
		a, loop, win, _ := startApp(t)

		a.HandleEvent(loop, shell.KeyEvent{Window: win.id, Key: shell.KeySpace, Pressed: true})

		if loop.exited {
			t.Error("space press exited the loop")
		}
	})
}

func TestCloseRequestedReleasesEverything(t *testing.T) {
	a, loop, win, renderer := startApp(t)

	a.HandleEvent(loop, shell.CloseRequested{Window: win.id})

	if !loop.exited {
		t.Fatal("close request did not exit the loop")
	}

	if !renderer.released || !win.destroyed {
		t.Error("close request did not release the window pair")
	}

	if a.window != nil || a.renderer != nil {
		t.Error("window pair still referenced after shutdown")
	}
}

func TestResizeForwarded(t *testing.T) {
	a, loop, win, renderer := startApp(t)

	a.HandleEvent(loop, shell.Resized{Window: win.id, Width: 640, Height: 480})

	want := [2]uint32{640, 480}
	if len(renderer.resizes) != 1 || renderer.resizes[0] != want {
		t.Errorf("resizes = %v, want [%v]", renderer.resizes, want)
	}
}

func TestScaleFactorChangeIgnored(t *testing.T) {
	a, loop, win, renderer := startApp(t)

	a.HandleEvent(loop, shell.ScaleFactorChanged{Window: win.id, Scale: 2})

	if len(renderer.resizes) != 0 {
		t.Error("scale factor change triggered a resize")
	}
}

func TestConsumedInputShortCircuits(t *testing.T) {
	a, loop, win, renderer := startApp(t)

	renderer.consume = true
	a.HandleEvent(loop, shell.KeyEvent{Window: win.id, Key: shell.KeyEscape, Pressed: true})

	if loop.exited {
		t.Error("consumed event still dispatched")
	}
}

func TestSuspendedKeepsState(t *testing.T) {
	a, loop, _, renderer := startApp(t)

	a.HandleEvent(loop, shell.Suspended{})

	if a.window == nil || renderer.released {
		t.Error("suspended released the window pair")
	}

	if loop.exited {
		t.Error("suspended exited the loop")
	}
}

func TestRendererFailureFailsApp(t *testing.T) {
	a := New(slog.New(slog.DiscardHandler))
	a.newRenderer = func(win shell.Window, log *slog.Logger) (Renderer, error) {
		return nil, errors.New("no adapter")
	}

	loop := &fakeLoop{}
	a.HandleEvent(loop, shell.Resumed{})

	if !loop.exited {
		t.Error("loop kept running without a renderer")
	}

	if a.Err() == nil {
		t.Error("Err() = nil, want the startup failure")
	}
}

//go:build !js

package shell

import (
	"fmt"
	"log/slog"

	"github.com/go-gl/glfw/v3.3/glfw"
	"github.com/oliverbestmann/webgpu/wgpu"
	"github.com/oliverbestmann/webgpu/wgpuglfw"
	"github.com/pkg/profile"
)

type glfwLoop struct {
	// events queued by glfw callbacks, drained in order by Run
	queue []Event

	window *glfwWindow
	nextID WindowID
	exit   bool
}

func NewEventLoop() (EventLoop, error) {
	if err := glfw.Init(); err != nil {
		return nil, fmt.Errorf("initialize glfw: %w", err)
	}

	glfw.WindowHint(glfw.ClientAPI, glfw.NoAPI)

	return &glfwLoop{nextID: 1}, nil
}

func (l *glfwLoop) Run(h Handler) error {
	defer glfw.Terminate()

	h.HandleEvent(l, Resumed{})

	for !l.exit {
		glfw.PollEvents()

		// dispatch the callback events of this poll in delivery order
		for len(l.queue) > 0 && !l.exit {
			ev := l.queue[0]
			l.queue = l.queue[1:]
			h.HandleEvent(l, ev)
		}

		win := l.window
		if l.exit || win == nil {
			continue
		}

		if win.win.ShouldClose() {
			// reset the flag so the handler stays in charge of the
			// decision to exit
			win.win.SetShouldClose(false)
			h.HandleEvent(l, CloseRequested{Window: win.id})
			continue
		}

		if win.takeRedraw() && !l.exit {
			h.HandleEvent(l, RedrawRequested{Window: win.id})
		}
	}

	return nil
}

func (l *glfwLoop) Exit() {
	l.exit = true
}

func (l *glfwLoop) CreateWindow(opts WindowOptions) (Window, error) {
	window, err := glfw.CreateWindow(opts.Width, opts.Height, opts.Title, nil, nil)
	if err != nil {
		return nil, fmt.Errorf("create window: %w", err)
	}

	w := &glfwWindow{
		id:   l.nextID,
		win:  window,
		prof: profile.Start(profile.CPUProfile),

		// draw the first frame without waiting for a request
		redraw: true,
	}

	l.nextID++
	l.window = w

	window.SetKeyCallback(func(_ *glfw.Window, glfwKey glfw.Key, scancode int, action glfw.Action, mods glfw.ModifierKey) {
		if action == glfw.Repeat {
			return
		}

		key, ok := keyOf(glfwKey)
		if !ok {
			return
		}

		l.queue = append(l.queue, KeyEvent{
			Window:  w.id,
			Key:     key,
			Pressed: action == glfw.Press,
		})
	})

	window.SetFramebufferSizeCallback(func(_ *glfw.Window, width, height int) {
		l.queue = append(l.queue, Resized{
			Window: w.id,
			Width:  uint32(width),
			Height: uint32(height),
		})
	})

	window.SetContentScaleCallback(func(_ *glfw.Window, x, y float32) {
		l.queue = append(l.queue, ScaleFactorChanged{
			Window: w.id,
			Scale:  float64(x),
		})
	})

	return w, nil
}

type glfwWindow struct {
	id     WindowID
	win    *glfw.Window
	prof   interface{ Stop() }
	redraw bool
}

func (w *glfwWindow) ID() WindowID {
	return w.id
}

func (w *glfwWindow) Size() (uint32, uint32) {
	width, height := w.win.GetFramebufferSize()
	return uint32(width), uint32(height)
}

func (w *glfwWindow) SurfaceDescriptor() *wgpu.SurfaceDescriptor {
	return wgpuglfw.GetSurfaceDescriptor(w.win)
}

func (w *glfwWindow) RequestRedraw() {
	w.redraw = true
}

func (w *glfwWindow) takeRedraw() bool {
	redraw := w.redraw
	w.redraw = false
	return redraw
}

func (w *glfwWindow) Destroy() {
	w.prof.Stop()
	w.win.Destroy()
}

var glfwToKey = map[glfw.Key]Key{
	glfw.KeyEscape: KeyEscape,
	glfw.KeySpace:  KeySpace,
	glfw.KeyEnter:  KeyEnter,
	glfw.KeyLeft:   KeyLeft,
	glfw.KeyRight:  KeyRight,
	glfw.KeyUp:     KeyUp,
	glfw.KeyDown:   KeyDown,
	glfw.KeyW:      KeyW,
	glfw.KeyA:      KeyA,
	glfw.KeyS:      KeyS,
	glfw.KeyD:      KeyD,
}

func keyOf(glfwKey glfw.Key) (key Key, ok bool) {
	key, ok = glfwToKey[glfwKey]
	if !ok {
		slog.Warn(
			"Unknown key code",
			slog.String("key", glfw.GetKeyName(glfwKey, 0)),
		)
	}

	return
}

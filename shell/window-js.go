//go:build js

package shell

import (
	"fmt"
	"syscall/js"

	"github.com/oliverbestmann/webgpu/wgpu"
)

// MountElementID is the id of the document element the canvas is attached
// to. The embedding page must provide it; startup fails otherwise.
const MountElementID = "cubes"

type jsLoop struct {
	queue  []Event
	window *jsWindow
	exit   bool
	done   chan struct{}
}

func NewEventLoop() (EventLoop, error) {
	return &jsLoop{done: make(chan struct{})}, nil
}

func (l *jsLoop) Run(h Handler) error {
	h.HandleEvent(l, Resumed{})

	var frame js.Func
	frame = js.FuncOf(func(this js.Value, args []js.Value) any {
		if l.exit {
			frame.Release()
			close(l.done)
			return nil
		}

		l.runFrame(h)

		js.Global().Call("requestAnimationFrame", frame)
		return nil
	})

	js.Global().Call("requestAnimationFrame", frame)

	<-l.done
	return nil
}

func (l *jsLoop) runFrame(h Handler) {
	for len(l.queue) > 0 && !l.exit {
		ev := l.queue[0]
		l.queue = l.queue[1:]
		h.HandleEvent(l, ev)
	}

	win := l.window
	if l.exit || win == nil {
		return
	}

	// track the viewport: resize the canvas backing store and tell the
	// handler before it draws
	if width, height := viewportSize(); width != win.width || height != win.height {
		win.setBackingSize(width, height)
		h.HandleEvent(l, Resized{Window: win.id, Width: width, Height: height})
	}

	if win.takeRedraw() && !l.exit {
		h.HandleEvent(l, RedrawRequested{Window: win.id})
	}
}

func (l *jsLoop) Exit() {
	l.exit = true
}

func (l *jsLoop) CreateWindow(opts WindowOptions) (Window, error) {
	document := js.Global().Get("document")

	mount := document.Call("getElementById", MountElementID)
	if mount.IsNull() {
		return nil, fmt.Errorf("no element with id %q to mount the canvas on", MountElementID)
	}

	canvas := document.Call("createElement", "canvas")
	canvas.Set("style", "width:100vw; height:100vh")
	mount.Call("appendChild", canvas)

	document.Set("title", opts.Title)

	w := &jsWindow{
		id:     1,
		canvas: canvas,
		redraw: true,
	}

	width, height := viewportSize()
	w.setBackingSize(width, height)

	onKey := func(pressed bool) js.Func {
		return js.FuncOf(func(this js.Value, args []js.Value) any {
			if args[0].Get("repeat").Bool() {
				return nil
			}

			key := keyOfCode(args[0].Get("code").String())
			l.queue = append(l.queue, KeyEvent{
				Window:  w.id,
				Key:     key,
				Pressed: pressed,
			})
			return nil
		})
	}

	document.Call("addEventListener", "keydown", onKey(true))
	document.Call("addEventListener", "keyup", onKey(false))

	l.window = w

	return w, nil
}

type jsWindow struct {
	id     WindowID
	canvas js.Value
	width  uint32
	height uint32
	redraw bool
}

func (w *jsWindow) ID() WindowID {
	return w.id
}

func (w *jsWindow) Size() (uint32, uint32) {
	return w.width, w.height
}

func (w *jsWindow) setBackingSize(width, height uint32) {
	w.canvas.Set("width", width)
	w.canvas.Set("height", height)
	w.width, w.height = width, height
}

func (w *jsWindow) SurfaceDescriptor() *wgpu.SurfaceDescriptor {
	return &wgpu.SurfaceDescriptor{Canvas: w.canvas}
}

func (w *jsWindow) RequestRedraw() {
	w.redraw = true
}

func (w *jsWindow) takeRedraw() bool {
	redraw := w.redraw
	w.redraw = false
	return redraw
}

func (w *jsWindow) Destroy() {
	w.canvas.Call("remove")
}

func viewportSize() (uint32, uint32) {
	ratio := js.Global().Get("devicePixelRatio").Float()

	vv := js.Global().Get("visualViewport")
	width := vv.Get("width").Float()
	height := vv.Get("height").Float()

	return uint32(width * ratio), uint32(height * ratio)
}

var codeToKey = map[string]Key{
	"Escape":     KeyEscape,
	"Space":      KeySpace,
	"Enter":      KeyEnter,
	"ArrowLeft":  KeyLeft,
	"ArrowRight": KeyRight,
	"ArrowUp":    KeyUp,
	"ArrowDown":  KeyDown,
	"KeyW":       KeyW,
	"KeyA":       KeyA,
	"KeyS":       KeyS,
	"KeyD":       KeyD,
}

func keyOfCode(code string) Key {
	return codeToKey[code]
}

package shell

// Event is one platform event delivered to a Handler. Events are delivered
// on a single goroutine, strictly in platform order.
type Event interface {
	isEvent()
}

// Resumed signals that the platform is ready and windows may be created.
// On native targets this fires once before the first poll, on the web once
// before the first animation frame.
type Resumed struct{}

// Suspended signals that the platform may invalidate GPU resources soon,
// for example when a mobile app moves to the background.
type Suspended struct{}

// CloseRequested signals that the user asked to close the window.
type CloseRequested struct {
	Window WindowID
}

// Resized carries the new size of the window in physical pixels. A size of
// zero in either dimension is possible, e.g. for a minimized window.
type Resized struct {
	Window WindowID
	Width  uint32
	Height uint32
}

// ScaleFactorChanged signals that the window moved to a display with a
// different device pixel ratio.
type ScaleFactorChanged struct {
	Window WindowID
	Scale  float64
}

type KeyEvent struct {
	Window  WindowID
	Key     Key
	Pressed bool
}

// RedrawRequested asks the handler to draw a frame for the window. The loop
// delivers it once per RequestRedraw call; a handler that wants continuous
// rendering calls RequestRedraw again while handling it.
type RedrawRequested struct {
	Window WindowID
}

func (Resumed) isEvent()            {}
func (Suspended) isEvent()          {}
func (CloseRequested) isEvent()     {}
func (Resized) isEvent()            {}
func (ScaleFactorChanged) isEvent() {}
func (KeyEvent) isEvent()           {}
func (RedrawRequested) isEvent()    {}

// Handler receives the events of an event loop. The ActiveLoop passed with
// every event is only valid for the duration of the call.
type Handler interface {
	HandleEvent(loop ActiveLoop, ev Event)
}

// ActiveLoop is the running event loop as seen from inside a Handler.
type ActiveLoop interface {
	CreateWindow(opts WindowOptions) (Window, error)

	// Exit stops the loop after the current dispatch returns. No further
	// events are delivered.
	Exit()
}

// EventLoop drives a Handler until Exit is called or the platform tears the
// loop down. Run blocks the calling goroutine and polls continuously.
type EventLoop interface {
	Run(h Handler) error
}

package shell

import "github.com/oliverbestmann/webgpu/wgpu"

// WindowID identifies a window within the event loop. Events carry the id of
// the window they originated from so a handler can filter out events for
// windows it does not own.
type WindowID uint64

type WindowOptions struct {
	// Width and Height are in logical units. The platform may scale them
	// to a different physical pixel size.
	Width  int
	Height int
	Title  string
}

// Window is a platform window (or canvas) that a webgpu surface can be
// created on. The surface holds a reference to the window's native handle,
// so the window must not be destroyed while such a surface is alive.
type Window interface {
	ID() WindowID

	// Size returns the current size of the window in physical pixels.
	Size() (uint32, uint32)

	SurfaceDescriptor() *wgpu.SurfaceDescriptor

	// RequestRedraw asks the event loop to deliver a RedrawRequested event
	// for this window on the next iteration.
	RequestRedraw()

	Destroy()
}

package gfx

import (
	"runtime"

	"github.com/oliverbestmann/webgpu/wgpu"
)

func init() {
	// glfw and the webgpu surface must stay on the main thread
	runtime.LockOSThread()

	wgpu.SetLogLevel(wgpu.LogLevelWarn)
}

// Context encapsulates the low level state of the webgpu context,
// this includes the Device, Surface and active Adapter.
//
// The Surface references the native handle of the window it was created
// from. Release the Context before destroying that window.
type Context struct {
	*wgpu.Device
	*wgpu.Queue
	Surface *wgpu.Surface
	Adapter *wgpu.Adapter
}

// New creates a webgpu Context for the given surface descriptor. The
// adapter is the first one the instance reports as compatible with the
// surface, the device is requested with default features and limits.
func New(sd *wgpu.SurfaceDescriptor) (ctx *Context, err error) {
	defer func() {
		if err != nil && ctx != nil {
			ctx.Release()
			ctx = nil
		}
	}()

	ctx = &Context{}

	// create the webgpu instance
	instance := wgpu.CreateInstance(nil)
	defer instance.Release()

	// create a Surface based on the window
	ctx.Surface = instance.CreateSurface(sd)

	// create an adapter that can render to the Surface
	ctx.Adapter, err = instance.RequestAdapter(&wgpu.RequestAdapterOptions{
		CompatibleSurface: ctx.Surface,
	})

	if err != nil {
		return
	}

	// get a Device with the default settings
	ctx.Device, err = ctx.Adapter.RequestDevice(nil)
	if err != nil {
		return
	}

	ctx.Queue = ctx.Device.GetQueue()

	return ctx, nil
}

func (d *Context) Release() {
	if d.Queue != nil {
		d.Queue.Release()
		d.Queue = nil
	}

	if d.Device != nil {
		d.Device.Release()
		d.Device = nil
	}

	if d.Adapter != nil {
		d.Adapter.Release()
		d.Adapter = nil
	}

	if d.Surface != nil {
		d.Surface.Release()
		d.Surface = nil
	}
}

package gfx

import (
	"fmt"
	"log/slog"

	"github.com/oliverbestmann/cubes/shell"
	"github.com/oliverbestmann/webgpu/wgpu"
)

// clearColor is the background every frame starts from, linear values.
var clearColor = wgpu.Color{R: 0.1, G: 0.2, B: 0.3, A: 1.0}

// State owns everything needed to produce one frame: the webgpu context,
// the surface configuration and the fixed triangle pipeline.
//
// The surface references the window State was created for. Release State
// before destroying that window.
type State struct {
	ctx *Context
	log *slog.Logger

	config    *wgpu.SurfaceConfiguration
	pipelines *PipelineCache[trianglePipeline]
	pipeline  *wgpu.RenderPipeline

	frames presenter
}

// NewState negotiates an adapter and device compatible with the window's
// surface and configures the surface at the window's current size. Any
// failure here is fatal for the application, there is no fallback.
func NewState(window shell.Window, log *slog.Logger) (*State, error) {
	ctx, err := New(window.SurfaceDescriptor())
	if err != nil {
		return nil, fmt.Errorf("initializing wgpu: %w", err)
	}

	caps := ctx.Surface.GetCapabilities(ctx.Adapter)
	log.Info("Available surface formats", slog.Any("formats", caps.Formats))

	format := preferredFormat(caps.Formats)

	width, height := window.Size()

	config := &wgpu.SurfaceConfiguration{
		Usage:       wgpu.TextureUsageRenderAttachment,
		Format:      format,
		Width:       width,
		Height:      height,
		PresentMode: caps.PresentModes[0],
		AlphaMode:   caps.AlphaModes[0],

		// try to reduce input latency
		DesiredMaximumFrameLatency: 1,
	}

	st := &State{
		ctx:    ctx,
		log:    log,
		config: config,
		frames: &surfacePresenter{ctx: ctx},
	}

	st.pipelines = NewPipelineCache[trianglePipeline](ctx)

	st.pipeline, err = st.pipelines.Get(trianglePipeline{TargetFormat: format})
	if err != nil {
		ctx.Release()
		return nil, fmt.Errorf("create render pipeline: %w", err)
	}

	st.frames.configure(config)

	log.Info("Surface configured",
		slog.Any("format", format),
		slog.Int("width", int(width)),
		slog.Int("height", int(height)),
	)

	return st, nil
}

// Size returns the dimensions the surface is currently configured at.
func (s *State) Size() (uint32, uint32) {
	return s.config.Width, s.config.Height
}

// Resize reconfigures the surface to the given physical pixel size.
// Zero-area sizes, e.g. from a minimized window, are ignored and the last
// valid configuration stays in place.
func (s *State) Resize(width, height uint32) {
	if width == 0 || height == 0 {
		s.log.Debug("Ignoring zero-area resize")
		return
	}

	s.config.Width = width
	s.config.Height = height
	s.frames.configure(s.config)
}

// HandleInput reports whether the event was consumed. Nothing is consumed
// today, the hook exists so input handling has a place to go.
func (s *State) HandleInput(ev shell.Event) bool {
	return false
}

// Update advances per-frame state. There is none yet.
func (s *State) Update() {}

// Render draws one frame: clear to the background color, then the triangle.
// Acquisition failures come back as the surface error taxonomy of this
// package, see ErrSurfaceLost and friends.
func (s *State) Render() error {
	return s.frames.renderFrame(framePass{
		pipeline:      s.pipeline,
		clearColor:    clearColor,
		vertexCount:   3,
		instanceCount: 1,
	})
}

func (s *State) Release() {
	s.pipelines.Release()
	s.ctx.Release()
}

// preferredFormat picks an srgb capable format from the surface's supported
// list, falling back to the first supported format.
func preferredFormat(formats []wgpu.TextureFormat) wgpu.TextureFormat {
	for _, format := range formats {
		if isSrgb(format) {
			return format
		}
	}

	return formats[0]
}

func isSrgb(format wgpu.TextureFormat) bool {
	switch format {
	case wgpu.TextureFormatBGRA8UnormSrgb, wgpu.TextureFormatRGBA8UnormSrgb:
		return true
	}

	return false
}

package gfx

import (
	"fmt"

	"github.com/oliverbestmann/webgpu/wgpu"
)

// framePass describes the single render pass that makes up one frame.
type framePass struct {
	pipeline      *wgpu.RenderPipeline
	clearColor    wgpu.Color
	vertexCount   uint32
	instanceCount uint32
}

// presenter is the slice of the surface that State needs per frame. The
// real implementation below encodes against the wgpu queue, tests swap in
// a recording fake.
type presenter interface {
	configure(config *wgpu.SurfaceConfiguration)
	renderFrame(fp framePass) error
}

type surfacePresenter struct {
	ctx *Context
}

func (p *surfacePresenter) configure(config *wgpu.SurfaceConfiguration) {
	p.ctx.Surface.Configure(p.ctx.Device, config)
}

func (p *surfacePresenter) renderFrame(fp framePass) error {
	screen, err := p.ctx.Surface.GetCurrentTexture()
	if err != nil {
		return classifyAcquire(err)
	}

	defer func() {
		if screen != nil {
			screen.Release()
		}
	}()

	view, err := screen.CreateView(nil)
	if err != nil {
		return fmt.Errorf("create surface texture view: %w", err)
	}

	defer view.Release()

	encoder, err := p.ctx.CreateCommandEncoder(&wgpu.CommandEncoderDescriptor{
		Label: "Frame",
	})

	if err != nil {
		return fmt.Errorf("create command encoder: %w", err)
	}

	defer encoder.Release()

	pass := encoder.BeginRenderPass(&wgpu.RenderPassDescriptor{
		Label: "Frame",
		ColorAttachments: []wgpu.RenderPassColorAttachment{
			{
				View:       view,
				LoadOp:     wgpu.LoadOpClear,
				StoreOp:    wgpu.StoreOpStore,
				ClearValue: fp.clearColor,
			},
		},
	})

	defer func() {
		if pass != nil {
			pass.Release()
		}
	}()

	pass.SetPipeline(fp.pipeline)
	pass.Draw(fp.vertexCount, fp.instanceCount, 0, 0)

	if err := pass.End(); err != nil {
		return fmt.Errorf("end render pass: %w", err)
	}

	// must release pass before finishing the encoder
	pass.Release()
	pass = nil

	cmdBuffer, err := encoder.Finish(nil)
	if err != nil {
		return fmt.Errorf("finish command encoder: %w", err)
	}

	defer cmdBuffer.Release()

	p.ctx.Submit(cmdBuffer)

	p.ctx.Surface.Present()

	// no release needed after a successful present
	screen = nil

	return nil
}

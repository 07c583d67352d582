package backend

import (
	"github.com/Carmen-Shannon/oxy-triangle/common"
	"github.com/Carmen-Shannon/oxy-triangle/engine/geometry"
	"github.com/Carmen-Shannon/oxy-triangle/engine/renderer"
	"github.com/Carmen-Shannon/oxy-triangle/engine/renderer/pipeline"
	"github.com/cockroachdb/errors"
	"github.com/cogentcore/webgpu/wgpu"
)

// texture is a surface texture view with the format configured on the surface.
type texture struct {
	format common.PixelFormat
	view   *wgpu.TextureView
}

func (t texture) Format() common.PixelFormat {
	return t.format
}

// drawable holds the surface texture and view acquired for one frame.
type drawable struct {
	surface *wgpu.Surface
	texture *wgpu.Texture
	view    *wgpu.TextureView
	format  common.PixelFormat
}

var _ renderer.Drawable = &drawable{}

func (d *drawable) Texture() renderer.Texture {
	return texture{format: d.format, view: d.view}
}

func (d *drawable) Present() error {
	if d.texture == nil {
		return errors.New("backend: present of a released drawable")
	}
	d.surface.Present()
	return nil
}

func (d *drawable) Release() {
	if d.view != nil {
		d.view.Release()
		d.view = nil
	}
	if d.texture != nil {
		d.texture.Release()
		d.texture = nil
	}
}

// commandQueue hands out command encoders on the device's single queue.
type commandQueue struct {
	device *wgpu.Device
	queue  *wgpu.Queue
}

var _ renderer.CommandQueue = &commandQueue{}

func (q *commandQueue) CommandBuffer() (renderer.CommandBuffer, error) {
	encoder, err := q.device.CreateCommandEncoder(nil)
	if err != nil {
		return nil, errors.Wrap(err, "backend: create command encoder")
	}
	return &commandBuffer{queue: q.queue, encoder: encoder}, nil
}

// Release is a no-op: the queue belongs to the device and is released with it.
func (q *commandQueue) Release() {}

// commandBuffer records into a wgpu command encoder and submits the finished buffer on Commit.
type commandBuffer struct {
	queue    *wgpu.Queue
	encoder  *wgpu.CommandEncoder
	pass     *renderEncoder
	drawable renderer.Drawable
}

var _ renderer.CommandBuffer = &commandBuffer{}

func (c *commandBuffer) RenderCommandEncoder(desc *renderer.RenderPassDescriptor) (renderer.RenderCommandEncoder, error) {
	if c.encoder == nil {
		return nil, errors.New("backend: command buffer already committed")
	}
	if c.pass != nil {
		return nil, errors.New("backend: render pass already open")
	}
	if desc == nil || len(desc.ColorAttachments) == 0 {
		return nil, errors.New("backend: render pass without color attachment")
	}

	attachments := make([]wgpu.RenderPassColorAttachment, 0, len(desc.ColorAttachments))
	for i, a := range desc.ColorAttachments {
		view, ok := c.viewFor(a.Texture)
		if !ok {
			return nil, errors.Newf("backend: color attachment %d is not a surface texture", i)
		}
		attachments = append(attachments, wgpu.RenderPassColorAttachment{
			View:       view,
			LoadOp:     toLoadOp(a.LoadAction),
			StoreOp:    toStoreOp(a.StoreAction),
			ClearValue: toColor(a.ClearColor),
		})
	}

	pass := c.encoder.BeginRenderPass(&wgpu.RenderPassDescriptor{
		ColorAttachments: attachments,
	})
	c.pass = &renderEncoder{pass: pass}
	return c.pass, nil
}

func (c *commandBuffer) PresentDrawable(d renderer.Drawable) {
	c.drawable = d
}

func (c *commandBuffer) Commit() error {
	if c.encoder == nil {
		return errors.New("backend: command buffer already committed")
	}
	if c.pass != nil && c.pass.pass != nil {
		return errors.New("backend: commit with an open render pass")
	}

	cmd, err := c.encoder.Finish(nil)
	c.encoder.Release()
	c.encoder = nil
	if err != nil {
		return errors.Wrap(err, "backend: finish command encoder")
	}

	c.queue.Submit(cmd)
	cmd.Release()

	if c.drawable != nil {
		if err := c.drawable.Present(); err != nil {
			return errors.Wrap(err, "backend: present")
		}
	}
	return nil
}

func (c *commandBuffer) Release() {
	if c.pass != nil {
		c.pass.release()
	}
	if c.encoder != nil {
		c.encoder.Release()
		c.encoder = nil
	}
}

// viewFor returns the view behind a drawable texture. Only surface textures acquired from this backend qualify.
func (c *commandBuffer) viewFor(t renderer.Texture) (*wgpu.TextureView, bool) {
	bt, ok := t.(texture)
	if !ok || bt.view == nil {
		return nil, false
	}
	return bt.view, true
}

// renderEncoder records commands into one wgpu render pass. The first command that could not
// be recorded is kept in err and returned by EndEncoding.
type renderEncoder struct {
	pass *wgpu.RenderPassEncoder
	err  error
}

var _ renderer.RenderCommandEncoder = &renderEncoder{}

func (e *renderEncoder) SetRenderPipelineState(p pipeline.Pipeline) {
	rp, ok := p.RenderPipeline().(*wgpu.RenderPipeline)
	if !ok || rp == nil {
		e.fail(errors.Newf("backend: pipeline %q has no wgpu render pipeline", p.PipelineKey()))
		return
	}
	e.pass.SetPipeline(rp)
}

func (e *renderEncoder) SetVertexBuffer(index uint32, buf geometry.GPUBuffer, offset uint64) {
	b, ok := buf.(*gpuBuffer)
	if !ok || b.buffer == nil {
		e.fail(errors.Newf("backend: vertex buffer %d was not created by this device", index))
		return
	}
	e.pass.SetVertexBuffer(index, b.buffer, offset, wgpu.WholeSize)
}

// DrawPrimitives ignores topology: WebGPU fixes it in the pipeline.
func (e *renderEncoder) DrawPrimitives(_ common.PrimitiveTopology, start, count uint32) {
	e.pass.Draw(count, 1, start, 0)
}

func (e *renderEncoder) EndEncoding() error {
	if e.pass == nil {
		return errors.New("backend: render pass already ended")
	}
	err := e.pass.End()
	e.release()
	if err != nil {
		return errors.Wrap(err, "backend: end render pass")
	}
	return e.err
}

func (e *renderEncoder) fail(err error) {
	if e.err == nil {
		e.err = err
	}
}

func (e *renderEncoder) release() {
	if e.pass != nil {
		e.pass.Release()
		e.pass = nil
	}
}

package renderer

import (
	"log"
	"sync"

	"github.com/Carmen-Shannon/oxy-triangle/common"
	"github.com/Carmen-Shannon/oxy-triangle/engine/geometry"
	"github.com/Carmen-Shannon/oxy-triangle/engine/renderer/pipeline"
	"github.com/cockroachdb/errors"
)

// renderer is the implementation of the Renderer interface.
type renderer struct {
	mu *sync.Mutex

	label      string
	clearColor common.Color
	observer   func(from, to FrameState)

	device   Device
	surface  PresentationSurface
	pipeline pipeline.Pipeline
	geometry geometry.GeometryBuffer
	queue    CommandQueue

	state    FrameState
	frames   uint64
	released bool
}

// Renderer draws one frame per RenderFrame call: acquire a drawable, clear it, draw the geometry
// with the pipeline, present and commit. All GPU objects except the per-frame drawable and
// command buffer are created once in NewRenderer.
type Renderer interface {
	// RenderFrame runs one full frame. On any failure the frame is abandoned, its drawable is
	// released and the renderer is back in FrameStateIdle, ready for the next call.
	//
	// Returns:
	//   - error: nil on success, otherwise an error marked with one of the Err* categories
	RenderFrame() error

	// State returns the current frame state. Outside of RenderFrame it is always FrameStateIdle.
	//
	// Returns:
	//   - FrameState: the current state
	State() FrameState

	// FrameCount returns the number of frames committed successfully.
	//
	// Returns:
	//   - uint64: the committed frame count
	FrameCount() uint64

	// Resize forwards a new window size to the surface. Zero sizes (minimized windows) are ignored.
	//
	// Parameters:
	//   - width: the new width in pixels
	//   - height: the new height in pixels
	//
	// Returns:
	//   - error: an error if the surface cannot be reconfigured
	Resize(width, height int) error

	// Release frees the command queue and the geometry's GPU buffer. The renderer cannot draw afterwards.
	Release()
}

var _ Renderer = &renderer{}

// NewRenderer uploads the geometry, checks the pipeline against the surface and creates the command queue.
//
// Parameters:
//   - device: the GPU device
//   - surface: the presentation surface bound to the window
//   - p: a compiled pipeline
//   - g: the geometry to draw every frame
//   - options: variadic list of RendererBuilderOption functions to configure the Renderer
//
// Returns:
//   - Renderer: the ready renderer
//   - error: ErrNoDevice, ErrPipelineCreation, ErrFormatMismatch, or an upload or queue error
func NewRenderer(device Device, surface PresentationSurface, p pipeline.Pipeline, g geometry.GeometryBuffer, options ...RendererBuilderOption) (Renderer, error) {
	r := &renderer{
		mu:         &sync.Mutex{},
		clearColor: common.ColorOpaqueBlack,
		device:     device,
		surface:    surface,
		pipeline:   p,
		geometry:   g,
		state:      FrameStateIdle,
	}
	for _, opt := range options {
		opt(r)
	}

	if device == nil {
		return nil, errors.Wrap(ErrNoDevice, "renderer: nil device")
	}
	if surface == nil {
		return nil, errors.New("renderer: nil presentation surface")
	}
	if g == nil {
		return nil, errors.New("renderer: nil geometry")
	}
	if p == nil || !p.Compiled() {
		return nil, errors.Mark(errors.New("renderer: pipeline is not compiled"), ErrPipelineCreation)
	}
	r.label = common.Coalesce(r.label, p.Label(), "Renderer")

	if p.ColorFormat() != surface.PixelFormat() {
		return nil, errors.Wrapf(ErrFormatMismatch, "renderer %q: pipeline %s, surface %s", r.label, p.ColorFormat(), surface.PixelFormat())
	}
	if !g.Layout().Equal(p.VertexLayout()) {
		return nil, errors.Wrapf(pipeline.ErrVertexLayoutMismatch, "renderer %q: geometry %q", r.label, g.Label())
	}
	if err := g.Validate(); err != nil {
		log.Printf("[Renderer] %s: %v; drawing %d whole vertices", r.label, err, g.VertexCount())
	}

	if err := g.Upload(device); err != nil {
		return nil, errors.Wrapf(err, "renderer %q", r.label)
	}

	queue, err := device.NewCommandQueue()
	if err != nil {
		g.Release()
		return nil, errors.Wrapf(err, "renderer %q: create command queue", r.label)
	}
	r.queue = queue

	log.Printf("[Renderer] %s ready: %s, %d vertices (%d bytes)", r.label, surface.PixelFormat(), g.VertexCount(), g.ByteSize())
	return r, nil
}

func (r *renderer) RenderFrame() error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if r.released {
		return errors.Wrapf(ErrInvalidFrameState, "renderer %q: released", r.label)
	}
	if r.state != FrameStateIdle {
		return errors.Wrapf(ErrInvalidFrameState, "renderer %q: frame already in %s", r.label, r.state)
	}

	drawable, err := r.surface.AcquireDrawable()
	if err != nil {
		return errors.Mark(errors.Wrapf(err, "renderer %q: acquire drawable", r.label), ErrDrawableUnavailable)
	}
	defer drawable.Release()
	r.advance()

	texture := drawable.Texture()
	if texture.Format() != r.pipeline.ColorFormat() {
		return r.abort(errors.Wrapf(ErrFormatMismatch, "renderer %q: drawable %s, pipeline %s", r.label, texture.Format(), r.pipeline.ColorFormat()))
	}
	pass := NewRenderPassDescriptor(texture, r.clearColor)
	r.advance()

	cmd, err := r.queue.CommandBuffer()
	if err != nil {
		return r.abort(errors.Mark(errors.Wrapf(err, "renderer %q: command buffer", r.label), ErrEncoding))
	}
	defer cmd.Release()

	encoder, err := cmd.RenderCommandEncoder(pass)
	if err != nil {
		return r.abort(errors.Mark(errors.Wrapf(err, "renderer %q: begin render pass", r.label), ErrEncoding))
	}
	r.advance()

	vertices, err := r.geometry.Buffer()
	if err != nil {
		_ = encoder.EndEncoding()
		return r.abort(errors.Mark(errors.Wrapf(err, "renderer %q", r.label), ErrEncoding))
	}
	encoder.SetRenderPipelineState(r.pipeline)
	encoder.SetVertexBuffer(0, vertices, 0)
	encoder.DrawPrimitives(r.pipeline.Topology(), 0, r.geometry.VertexCount())
	if err := encoder.EndEncoding(); err != nil {
		return r.abort(errors.Mark(errors.Wrapf(err, "renderer %q: end encoding", r.label), ErrEncoding))
	}

	cmd.PresentDrawable(drawable)
	if err := cmd.Commit(); err != nil {
		return r.abort(errors.Mark(errors.Wrapf(err, "renderer %q: commit", r.label), ErrSubmission))
	}
	r.advance()
	r.frames++
	r.advance()
	return nil
}

func (r *renderer) State() FrameState {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.state
}

func (r *renderer) FrameCount() uint64 {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.frames
}

func (r *renderer) Resize(width, height int) error {
	if width <= 0 || height <= 0 {
		return nil
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	if err := r.surface.Resize(width, height); err != nil {
		return errors.Wrapf(err, "renderer %q: resize to %dx%d", r.label, width, height)
	}
	return nil
}

func (r *renderer) Release() {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.released {
		return
	}
	r.released = true
	r.queue.Release()
	r.geometry.Release()
}

// advance moves to the next state in the frame sequence.
func (r *renderer) advance() {
	r.setState(r.state.next())
}

// abort returns the renderer to idle after a failed step and passes err through.
func (r *renderer) abort(err error) error {
	r.setState(FrameStateIdle)
	return err
}

func (r *renderer) setState(to FrameState) {
	from := r.state
	r.state = to
	if r.observer != nil && from != to {
		r.observer(from, to)
	}
}

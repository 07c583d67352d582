package renderer

import (
	"github.com/Carmen-Shannon/oxy-triangle/common"
	"github.com/Carmen-Shannon/oxy-triangle/engine/geometry"
	"github.com/Carmen-Shannon/oxy-triangle/engine/renderer/pipeline"
)

// PresentMode controls how rendered frames are presented to the display surface.
type PresentMode int

const (
	// PresentModeVSync waits for the next vertical blank before presenting, capping frame rate
	// to the monitor's refresh rate. Eliminates tearing.
	PresentModeVSync PresentMode = iota

	// PresentModeImmediate presents frames as soon as they are submitted without waiting for
	// vertical blank. May tear but gives the lowest latency and an uncapped frame rate.
	PresentModeImmediate
)

func (m PresentMode) String() string {
	switch m {
	case PresentModeVSync:
		return "VSync"
	case PresentModeImmediate:
		return "Immediate"
	default:
		return "Unknown"
	}
}

// Device is the GPU device the renderer allocates from. It creates vertex buffers, render
// pipelines and the command queue.
type Device interface {
	geometry.BufferAllocator
	pipeline.Factory

	// NewCommandQueue creates a queue that command buffers are created from and submitted to.
	//
	// Returns:
	//   - CommandQueue: the queue
	//   - error: an error if the device cannot provide a queue
	NewCommandQueue() (CommandQueue, error)
}

// PresentationSurface is the window-bound surface frames are presented to.
type PresentationSurface interface {
	// PixelFormat returns the format drawables are configured with.
	//
	// Returns:
	//   - common.PixelFormat: the surface format
	PixelFormat() common.PixelFormat

	// AcquireDrawable returns the next presentable texture. The caller must Release it.
	//
	// Returns:
	//   - Drawable: the drawable for this frame
	//   - error: an error marked ErrDrawableUnavailable if none can be obtained right now
	AcquireDrawable() (Drawable, error)

	// Resize reconfigures the surface for a new window size.
	//
	// Parameters:
	//   - width: the new width in pixels
	//   - height: the new height in pixels
	//
	// Returns:
	//   - error: an error if reconfiguration fails
	Resize(width, height int) error
}

// Texture is a GPU image a render pass can draw into.
type Texture interface {
	// Format returns the pixel format of the texture.
	//
	// Returns:
	//   - common.PixelFormat: the format
	Format() common.PixelFormat
}

// Drawable is a presentable texture valid for exactly one frame.
type Drawable interface {
	// Texture returns the color texture to render into.
	//
	// Returns:
	//   - Texture: the drawable's texture
	Texture() Texture

	// Present queues the drawable for display.
	//
	// Returns:
	//   - error: an error if the surface refuses the drawable
	Present() error

	// Release frees the drawable. Calling it more than once is a no-op.
	Release()
}

// CommandQueue creates command buffers. It is created once per renderer and reused every frame.
type CommandQueue interface {
	// CommandBuffer creates a new, empty command buffer.
	//
	// Returns:
	//   - CommandBuffer: the command buffer
	//   - error: an error if the device cannot create one
	CommandBuffer() (CommandBuffer, error)

	// Release frees the queue.
	Release()
}

// CommandBuffer records one frame of work, then is committed once and discarded.
type CommandBuffer interface {
	// RenderCommandEncoder begins a render pass described by desc.
	//
	// Parameters:
	//   - desc: the render pass attachments
	//
	// Returns:
	//   - RenderCommandEncoder: the encoder for the pass
	//   - error: an error if the pass cannot begin
	RenderCommandEncoder(desc *RenderPassDescriptor) (RenderCommandEncoder, error)

	// PresentDrawable schedules d to be presented after the commands in this buffer complete.
	//
	// Parameters:
	//   - d: the drawable rendered by this buffer
	PresentDrawable(d Drawable)

	// Commit submits the buffer to its queue and presents any scheduled drawable.
	//
	// Returns:
	//   - error: an error if submission or presentation fails
	Commit() error

	// Release frees the buffer. Calling it more than once is a no-op.
	Release()
}

// RenderCommandEncoder encodes draw commands into a render pass.
type RenderCommandEncoder interface {
	// SetRenderPipelineState binds the compiled pipeline.
	SetRenderPipelineState(p pipeline.Pipeline)

	// SetVertexBuffer binds buf to vertex buffer slot index, starting at offset bytes.
	SetVertexBuffer(index uint32, buf geometry.GPUBuffer, offset uint64)

	// DrawPrimitives draws count vertices starting at vertex start.
	DrawPrimitives(topology common.PrimitiveTopology, start, count uint32)

	// EndEncoding closes the pass. No commands may be encoded afterwards.
	//
	// Returns:
	//   - error: an error if any recorded command was invalid
	EndEncoding() error
}

package backend

import (
	"log"
	"runtime"
	"slices"
	"sync"

	"github.com/Carmen-Shannon/oxy-triangle/common"
	"github.com/Carmen-Shannon/oxy-triangle/engine/renderer"
	"github.com/cockroachdb/errors"
	"github.com/cogentcore/webgpu/wgpu"
)

// ErrUnsupportedFormat is returned when the surface cannot be configured with the requested pixel format.
var ErrUnsupportedFormat = errors.New("backend: surface does not support pixel format")

// WindowBinder is the capability a window provides so a GPU surface can be bound to it.
type WindowBinder interface {
	// SurfaceDescriptor returns the platform-specific descriptor for the native window handle.
	SurfaceDescriptor() *wgpu.SurfaceDescriptor

	// Width returns the framebuffer width in pixels.
	Width() int

	// Height returns the framebuffer height in pixels.
	Height() int
}

// presentationSurface is the implementation of the PresentationSurface interface.
type presentationSurface struct {
	mu *sync.Mutex

	instance *wgpu.Instance
	adapter  *wgpu.Adapter
	surface  *wgpu.Surface
	dev      *device

	label                string
	pixelFormat          common.PixelFormat
	textureFormat        wgpu.TextureFormat
	alphaMode            wgpu.CompositeAlphaMode
	presentMode          renderer.PresentMode
	forceFallbackAdapter bool
	width, height        int
}

// PresentationSurface is a WebGPU surface bound to a window, plus the device and queue created for it.
type PresentationSurface interface {
	renderer.PresentationSurface

	// Device returns the GPU device created for this surface.
	//
	// Returns:
	//   - renderer.Device: the device
	Device() renderer.Device

	// Release frees the device, surface, adapter and instance.
	Release()
}

var _ PresentationSurface = &presentationSurface{}

// NewPresentationSurface binds a WebGPU surface to a window, requests the default adapter and a device,
// and configures the surface for BGRA8Unorm drawables at the window's size.
//
// Parameters:
//   - binder: the window to present into
//   - options: variadic list of SurfaceBuilderOption functions to configure the surface
//
// Returns:
//   - PresentationSurface: the configured surface
//   - error: an error marked renderer.ErrNoDevice if no adapter or device is available, or ErrUnsupportedFormat
func NewPresentationSurface(binder WindowBinder, options ...SurfaceBuilderOption) (PresentationSurface, error) {
	runtime.LockOSThread()
	s := &presentationSurface{
		mu:          &sync.Mutex{},
		label:       "Main",
		pixelFormat: common.PixelFormatBGRA8Unorm,
		presentMode: renderer.PresentModeImmediate,
	}
	for _, opt := range options {
		opt(s)
	}
	if binder == nil {
		return nil, errors.New("backend: nil window binder")
	}

	tf, ok := toTextureFormat(s.pixelFormat)
	if !ok {
		return nil, errors.Wrapf(ErrUnsupportedFormat, "%s", s.pixelFormat)
	}
	s.textureFormat = tf
	s.width, s.height = binder.Width(), binder.Height()

	s.instance = wgpu.CreateInstance(nil)
	s.surface = s.instance.CreateSurface(binder.SurfaceDescriptor())

	a, err := s.instance.RequestAdapter(&wgpu.RequestAdapterOptions{
		ForceFallbackAdapter: s.forceFallbackAdapter,
		CompatibleSurface:    s.surface,
	})
	if err != nil {
		s.Release()
		return nil, errors.Mark(errors.Wrap(err, "backend: request adapter"), renderer.ErrNoDevice)
	}
	s.adapter = a

	d, err := a.RequestDevice(&wgpu.DeviceDescriptor{
		Label: s.label + " Device",
	})
	if err != nil {
		s.Release()
		return nil, errors.Mark(errors.Wrap(err, "backend: request device"), renderer.ErrNoDevice)
	}
	s.dev = &device{device: d, queue: d.GetQueue()}

	capabilities := s.surface.GetCapabilities(s.adapter)
	if !slices.Contains(capabilities.Formats, s.textureFormat) {
		s.Release()
		return nil, errors.Wrapf(ErrUnsupportedFormat, "%s not in surface formats %v", s.pixelFormat, capabilities.Formats)
	}
	if len(capabilities.AlphaModes) > 0 {
		s.alphaMode = capabilities.AlphaModes[0]
	}

	s.configure()
	log.Printf("[Renderer] surface %dx%d %s, present mode %s", s.width, s.height, s.pixelFormat, s.presentMode)
	return s, nil
}

func (s *presentationSurface) PixelFormat() common.PixelFormat {
	return s.pixelFormat
}

func (s *presentationSurface) Device() renderer.Device {
	return s.dev
}

func (s *presentationSurface) AcquireDrawable() (renderer.Drawable, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	surfaceTexture, err := s.surface.GetCurrentTexture()
	if err != nil {
		// outdated or lost surfaces come back after a reconfigure
		s.configure()
		return nil, errors.Mark(errors.Wrap(err, "backend: get current texture"), renderer.ErrDrawableUnavailable)
	}

	view, err := surfaceTexture.CreateView(nil)
	if err != nil {
		surfaceTexture.Release()
		return nil, errors.Mark(errors.Wrap(err, "backend: create texture view"), renderer.ErrDrawableUnavailable)
	}

	return &drawable{
		surface: s.surface,
		texture: surfaceTexture,
		view:    view,
		format:  s.pixelFormat,
	}, nil
}

func (s *presentationSurface) Resize(width, height int) error {
	if width <= 0 || height <= 0 {
		return errors.Newf("backend: invalid surface size %dx%d", width, height)
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	s.width, s.height = width, height
	s.configure()
	return nil
}

func (s *presentationSurface) Release() {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.dev != nil {
		s.dev.release()
		s.dev = nil
	}
	if s.surface != nil {
		s.surface.Release()
		s.surface = nil
	}
	if s.adapter != nil {
		s.adapter.Release()
		s.adapter = nil
	}
	if s.instance != nil {
		s.instance.Release()
		s.instance = nil
	}
}

// configure applies the current size, format and present mode to the surface. Callers hold s.mu
// or have exclusive access during construction.
func (s *presentationSurface) configure() {
	s.surface.Configure(s.adapter, s.dev.device, &wgpu.SurfaceConfiguration{
		Usage:       wgpu.TextureUsageRenderAttachment,
		Format:      s.textureFormat,
		Width:       uint32(s.width),
		Height:      uint32(s.height),
		PresentMode: toPresentMode(s.presentMode),
		AlphaMode:   s.alphaMode,
	})
}

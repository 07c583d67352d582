package backend

import "github.com/Carmen-Shannon/oxy-triangle/engine/renderer"

// SurfaceBuilderOption is a functional option used to configure a PresentationSurface during construction.
type SurfaceBuilderOption func(*presentationSurface)

// WithPresentMode sets the present mode for the surface.
// When not specified, the default is PresentModeImmediate: frames are shown as soon as they are
// committed, without waiting for vertical blank.
//
// Parameters:
//   - mode: the PresentMode to use (VSync or Immediate)
//
// Returns:
//   - SurfaceBuilderOption: a function that applies the present mode option to a surface
func WithPresentMode(mode renderer.PresentMode) SurfaceBuilderOption {
	return func(s *presentationSurface) {
		s.presentMode = mode
	}
}

// WithForceSoftwareRenderer forces WGPU to use a CPU/software fallback adapter instead of
// hardware GPU acceleration. This requires a software Vulkan ICD to be installed on the system
// (e.g. SwiftShader or lavapipe). Without it, a missing GPU is a fatal ErrNoDevice.
//
// Parameters:
//   - force: true to force the software fallback adapter, false to use hardware (default)
//
// Returns:
//   - SurfaceBuilderOption: a function that applies the force software renderer option to a surface
func WithForceSoftwareRenderer(force bool) SurfaceBuilderOption {
	return func(s *presentationSurface) {
		s.forceFallbackAdapter = force
	}
}

// WithDeviceLabel sets the label prefix of the GPU device.
//
// Parameters:
//   - label: the label prefix
//
// Returns:
//   - SurfaceBuilderOption: a function that applies the label option to a surface
func WithDeviceLabel(label string) SurfaceBuilderOption {
	return func(s *presentationSurface) {
		s.label = label
	}
}

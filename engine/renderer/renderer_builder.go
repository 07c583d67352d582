package renderer

import "github.com/Carmen-Shannon/oxy-triangle/common"

// RendererBuilderOption is a functional option used to configure a Renderer during construction.
type RendererBuilderOption func(*renderer)

// WithClearColor sets the color the drawable is cleared to at the start of every frame.
// When not specified, the default is opaque black.
//
// Parameters:
//   - c: the clear color
//
// Returns:
//   - RendererBuilderOption: a function that applies the clear color option to a renderer
func WithClearColor(c common.Color) RendererBuilderOption {
	return func(r *renderer) {
		r.clearColor = c
	}
}

// WithStateObserver registers a callback invoked on every frame state change, including the
// return to FrameStateIdle after a failed frame. It runs on the rendering thread while the
// renderer is locked, so it must not call back into the renderer.
//
// Parameters:
//   - observer: the callback receiving the previous and the new state
//
// Returns:
//   - RendererBuilderOption: a function that applies the observer option to a renderer
func WithStateObserver(observer func(from, to FrameState)) RendererBuilderOption {
	return func(r *renderer) {
		r.observer = observer
	}
}

// WithLabel sets the name used in log lines and errors. Defaults to the pipeline label.
//
// Parameters:
//   - label: the renderer label
//
// Returns:
//   - RendererBuilderOption: a function that applies the label option to a renderer
func WithLabel(label string) RendererBuilderOption {
	return func(r *renderer) {
		r.label = label
	}
}

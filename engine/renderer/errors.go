package renderer

import (
	"github.com/Carmen-Shannon/oxy-triangle/engine/renderer/pipeline"
	"github.com/cockroachdb/errors"
)

var (
	// ErrNoDevice is marked on failures to find a usable GPU adapter or device.
	ErrNoDevice = errors.New("renderer: no GPU device")

	// ErrDrawableUnavailable is marked on failures to acquire a drawable. It is the only recoverable frame error.
	ErrDrawableUnavailable = errors.New("renderer: drawable unavailable")

	// ErrPipelineCreation is marked on failures to build the render pipeline.
	ErrPipelineCreation = pipeline.ErrPipelineCreation

	// ErrFormatMismatch is returned when the pipeline's color format differs from the surface format.
	ErrFormatMismatch = errors.New("renderer: pipeline format does not match surface format")

	// ErrEncoding is marked on failures while recording the render pass.
	ErrEncoding = errors.New("renderer: encoding failed")

	// ErrSubmission is marked on failures to commit or present a frame.
	ErrSubmission = errors.New("renderer: submission failed")

	// ErrInvalidFrameState is returned when a frame is started while another is in flight or after Release.
	ErrInvalidFrameState = errors.New("renderer: invalid frame state")
)

// IsRecoverable reports whether a frame error can be handled by skipping the frame and drawing again later.
//
// Parameters:
//   - err: the error returned by RenderFrame
//
// Returns:
//   - bool: true only for drawable unavailability
func IsRecoverable(err error) bool {
	return err != nil && errors.Is(err, ErrDrawableUnavailable)
}

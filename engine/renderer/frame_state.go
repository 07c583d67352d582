package renderer

// FrameState is the position of the renderer within the per-frame sequence.
type FrameState int

const (
	// FrameStateIdle means no frame is in flight.
	FrameStateIdle FrameState = iota

	// FrameStateAcquiredDrawable means a drawable has been obtained from the surface.
	FrameStateAcquiredDrawable

	// FrameStatePassConfigured means the render pass targets the drawable and clears it.
	FrameStatePassConfigured

	// FrameStateEncoding means the render pass is open and commands are being recorded.
	FrameStateEncoding

	// FrameStateSubmitted means the command buffer was committed with the drawable scheduled for presentation.
	FrameStateSubmitted
)

func (s FrameState) String() string {
	switch s {
	case FrameStateIdle:
		return "Idle"
	case FrameStateAcquiredDrawable:
		return "AcquiredDrawable"
	case FrameStatePassConfigured:
		return "PassConfigured"
	case FrameStateEncoding:
		return "Encoding"
	case FrameStateSubmitted:
		return "Submitted"
	default:
		return "Unknown"
	}
}

// next returns the state a successful step moves to.
func (s FrameState) next() FrameState {
	if s == FrameStateSubmitted {
		return FrameStateIdle
	}
	return s + 1
}

// package common contains common types that are used throughout this engine. They are not interface-wrapped structs, just plain structs and enums
// that express commonly used data-types. None of them depend on a specific GPU API; the renderer backend maps them onto its own types.
package common

import "fmt"

// PixelFormat identifies the texel layout of a render target.
type PixelFormat int

const (
	// PixelFormatUndefined is the zero value and is never valid for a render target.
	PixelFormatUndefined PixelFormat = iota

	// PixelFormatBGRA8Unorm is 8-bit per channel BGRA, non-linear (no sRGB conversion). This is the presentation format.
	PixelFormatBGRA8Unorm

	// PixelFormatBGRA8UnormSrgb is 8-bit per channel BGRA with sRGB encoding.
	PixelFormatBGRA8UnormSrgb

	// PixelFormatRGBA8Unorm is 8-bit per channel RGBA, non-linear.
	PixelFormatRGBA8Unorm
)

func (f PixelFormat) String() string {
	switch f {
	case PixelFormatBGRA8Unorm:
		return "BGRA8Unorm"
	case PixelFormatBGRA8UnormSrgb:
		return "BGRA8UnormSrgb"
	case PixelFormatRGBA8Unorm:
		return "RGBA8Unorm"
	default:
		return fmt.Sprintf("PixelFormat(%d)", int(f))
	}
}

// VertexFormat identifies the component type and count of a single vertex attribute.
type VertexFormat int

const (
	// VertexFormatUndefined is the zero value.
	VertexFormatUndefined VertexFormat = iota
	VertexFormatFloat32
	VertexFormatFloat32x2
	VertexFormatFloat32x3
	VertexFormatFloat32x4
	VertexFormatUint32
	VertexFormatSint32
)

// Size returns the byte size of one attribute of this format.
//
// Returns:
//   - uint64: the size in bytes, or 0 for VertexFormatUndefined
func (f VertexFormat) Size() uint64 {
	switch f {
	case VertexFormatFloat32, VertexFormatUint32, VertexFormatSint32:
		return 4
	case VertexFormatFloat32x2:
		return 8
	case VertexFormatFloat32x3:
		return 12
	case VertexFormatFloat32x4:
		return 16
	default:
		return 0
	}
}

func (f VertexFormat) String() string {
	switch f {
	case VertexFormatFloat32:
		return "Float32"
	case VertexFormatFloat32x2:
		return "Float32x2"
	case VertexFormatFloat32x3:
		return "Float32x3"
	case VertexFormatFloat32x4:
		return "Float32x4"
	case VertexFormatUint32:
		return "Uint32"
	case VertexFormatSint32:
		return "Sint32"
	default:
		return fmt.Sprintf("VertexFormat(%d)", int(f))
	}
}

// VertexStepMode controls whether a vertex buffer advances per vertex or per instance.
type VertexStepMode int

const (
	// VertexStepModeVertex advances the buffer once per vertex.
	VertexStepModeVertex VertexStepMode = iota

	// VertexStepModeInstance advances the buffer once per instance.
	VertexStepModeInstance
)

// PrimitiveTopology describes how vertices are assembled into primitives.
type PrimitiveTopology int

const (
	// PrimitiveTopologyTriangleList assembles every three vertices into a triangle.
	PrimitiveTopologyTriangleList PrimitiveTopology = iota
	PrimitiveTopologyTriangleStrip
	PrimitiveTopologyLineList
	PrimitiveTopologyLineStrip
	PrimitiveTopologyPointList
)

func (t PrimitiveTopology) String() string {
	switch t {
	case PrimitiveTopologyTriangleList:
		return "TriangleList"
	case PrimitiveTopologyTriangleStrip:
		return "TriangleStrip"
	case PrimitiveTopologyLineList:
		return "LineList"
	case PrimitiveTopologyLineStrip:
		return "LineStrip"
	case PrimitiveTopologyPointList:
		return "PointList"
	default:
		return fmt.Sprintf("PrimitiveTopology(%d)", int(t))
	}
}

// CullMode selects which triangle faces are discarded during rasterization.
type CullMode int

const (
	CullModeNone CullMode = iota
	CullModeFront
	CullModeBack
)

// FrontFace selects the winding order that is considered front facing.
type FrontFace int

const (
	FrontFaceCCW FrontFace = iota
	FrontFaceCW
)

// LoadAction is the action applied to an attachment at the start of a render pass.
type LoadAction int

const (
	// LoadActionClear fills the attachment with the clear color.
	LoadActionClear LoadAction = iota

	// LoadActionLoad preserves the existing attachment contents.
	LoadActionLoad
)

// StoreAction is the action applied to an attachment at the end of a render pass.
type StoreAction int

const (
	// StoreActionStore writes the rendered contents back to the attachment.
	StoreActionStore StoreAction = iota

	// StoreActionDiscard drops the rendered contents.
	StoreActionDiscard
)

// Color is an RGBA color with double precision channels, used for clear values.
type Color struct {
	R, G, B, A float64
}

// ColorOpaqueBlack is the default clear color.
var ColorOpaqueBlack = Color{R: 0, G: 0, B: 0, A: 1}

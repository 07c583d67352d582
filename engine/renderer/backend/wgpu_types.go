package backend

import (
	"github.com/Carmen-Shannon/oxy-triangle/common"
	"github.com/Carmen-Shannon/oxy-triangle/engine/geometry"
	"github.com/Carmen-Shannon/oxy-triangle/engine/renderer"
	"github.com/cogentcore/webgpu/wgpu"
)

// textureFormatMap maps engine pixel formats to their wgpu texture formats
var textureFormatMap = map[common.PixelFormat]wgpu.TextureFormat{
	common.PixelFormatBGRA8Unorm:     wgpu.TextureFormatBGRA8Unorm,
	common.PixelFormatBGRA8UnormSrgb: wgpu.TextureFormatBGRA8UnormSrgb,
	common.PixelFormatRGBA8Unorm:     wgpu.TextureFormatRGBA8Unorm,
}

// vertexFormatMap maps engine vertex formats to their wgpu vertex formats
var vertexFormatMap = map[common.VertexFormat]wgpu.VertexFormat{
	common.VertexFormatFloat32:   wgpu.VertexFormatFloat32,
	common.VertexFormatFloat32x2: wgpu.VertexFormatFloat32x2,
	common.VertexFormatFloat32x3: wgpu.VertexFormatFloat32x3,
	common.VertexFormatFloat32x4: wgpu.VertexFormatFloat32x4,
	common.VertexFormatUint32:    wgpu.VertexFormatUint32,
	common.VertexFormatSint32:    wgpu.VertexFormatSint32,
}

// topologyMap maps engine primitive topologies to their wgpu primitive topologies
var topologyMap = map[common.PrimitiveTopology]wgpu.PrimitiveTopology{
	common.PrimitiveTopologyTriangleList:  wgpu.PrimitiveTopologyTriangleList,
	common.PrimitiveTopologyTriangleStrip: wgpu.PrimitiveTopologyTriangleStrip,
	common.PrimitiveTopologyLineList:      wgpu.PrimitiveTopologyLineList,
	common.PrimitiveTopologyLineStrip:     wgpu.PrimitiveTopologyLineStrip,
	common.PrimitiveTopologyPointList:     wgpu.PrimitiveTopologyPointList,
}

func toTextureFormat(f common.PixelFormat) (wgpu.TextureFormat, bool) {
	tf, ok := textureFormatMap[f]
	return tf, ok
}

func toVertexFormat(f common.VertexFormat) (wgpu.VertexFormat, bool) {
	vf, ok := vertexFormatMap[f]
	return vf, ok
}

func toTopology(t common.PrimitiveTopology) wgpu.PrimitiveTopology {
	if wt, ok := topologyMap[t]; ok {
		return wt
	}
	return wgpu.PrimitiveTopologyTriangleList
}

func toCullMode(m common.CullMode) wgpu.CullMode {
	switch m {
	case common.CullModeFront:
		return wgpu.CullModeFront
	case common.CullModeBack:
		return wgpu.CullModeBack
	default:
		return wgpu.CullModeNone
	}
}

func toFrontFace(f common.FrontFace) wgpu.FrontFace {
	if f == common.FrontFaceCW {
		return wgpu.FrontFaceCW
	}
	return wgpu.FrontFaceCCW
}

func toStepMode(m common.VertexStepMode) wgpu.VertexStepMode {
	if m == common.VertexStepModeInstance {
		return wgpu.VertexStepModeInstance
	}
	return wgpu.VertexStepModeVertex
}

func toLoadOp(a common.LoadAction) wgpu.LoadOp {
	if a == common.LoadActionLoad {
		return wgpu.LoadOpLoad
	}
	return wgpu.LoadOpClear
}

func toStoreOp(a common.StoreAction) wgpu.StoreOp {
	if a == common.StoreActionDiscard {
		return wgpu.StoreOpDiscard
	}
	return wgpu.StoreOpStore
}

func toColor(c common.Color) wgpu.Color {
	return wgpu.Color{R: c.R, G: c.G, B: c.B, A: c.A}
}

func toPresentMode(m renderer.PresentMode) wgpu.PresentMode {
	if m == renderer.PresentModeVSync {
		return wgpu.PresentModeFifo
	}
	return wgpu.PresentModeImmediate
}

// toVertexBufferLayout converts an engine vertex layout into a wgpu.VertexBufferLayout.
// Returns false if an attribute format has no wgpu equivalent.
//
// Parameters:
//   - layout: the engine layout
//
// Returns:
//   - wgpu.VertexBufferLayout: the wgpu layout
//   - bool: false if the layout cannot be expressed
func toVertexBufferLayout(layout geometry.VertexLayout) (wgpu.VertexBufferLayout, bool) {
	attrs := make([]wgpu.VertexAttribute, 0, len(layout.Attributes))
	for _, a := range layout.Attributes {
		vf, ok := toVertexFormat(a.Format)
		if !ok {
			return wgpu.VertexBufferLayout{}, false
		}
		attrs = append(attrs, wgpu.VertexAttribute{
			Format:         vf,
			Offset:         a.Offset,
			ShaderLocation: a.ShaderLocation,
		})
	}
	return wgpu.VertexBufferLayout{
		ArrayStride: layout.Stride,
		StepMode:    toStepMode(layout.StepMode),
		Attributes:  attrs,
	}, true
}

// alphaBlendState is source-over blending with premultiplied destination alpha.
var alphaBlendState = wgpu.BlendState{
	Color: wgpu.BlendComponent{
		SrcFactor: wgpu.BlendFactorSrcAlpha,
		DstFactor: wgpu.BlendFactorOneMinusSrcAlpha,
		Operation: wgpu.BlendOperationAdd,
	},
	Alpha: wgpu.BlendComponent{
		SrcFactor: wgpu.BlendFactorOne,
		DstFactor: wgpu.BlendFactorOneMinusSrcAlpha,
		Operation: wgpu.BlendOperationAdd,
	},
}

package backend

import (
	"testing"

	"github.com/Carmen-Shannon/oxy-triangle/common"
	"github.com/Carmen-Shannon/oxy-triangle/engine/geometry"
	"github.com/Carmen-Shannon/oxy-triangle/engine/renderer"
	"github.com/Carmen-Shannon/oxy-triangle/engine/renderer/pipeline"
	"github.com/cogentcore/webgpu/wgpu"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDefaultVertexBufferLayout(t *testing.T) {
	layout, ok := toVertexBufferLayout(geometry.DefaultVertexLayout())
	require.True(t, ok)

	assert.Equal(t, uint64(32), layout.ArrayStride)
	assert.Equal(t, wgpu.VertexStepModeVertex, layout.StepMode)
	assert.Equal(t, []wgpu.VertexAttribute{
		{Format: wgpu.VertexFormatFloat32x4, Offset: 0, ShaderLocation: 0},
		{Format: wgpu.VertexFormatFloat32x4, Offset: 16, ShaderLocation: 1},
	}, layout.Attributes)
}

func TestUnmappedVertexFormat(t *testing.T) {
	_, ok := toVertexBufferLayout(geometry.NewVertexLayout(common.VertexFormatUndefined))
	assert.False(t, ok)
}

func TestTextureFormat(t *testing.T) {
	tf, ok := toTextureFormat(common.PixelFormatBGRA8Unorm)
	require.True(t, ok)
	assert.Equal(t, wgpu.TextureFormatBGRA8Unorm, tf)

	_, ok = toTextureFormat(common.PixelFormatUndefined)
	assert.False(t, ok)
}

func TestPassAndModeMapping(t *testing.T) {
	assert.Equal(t, wgpu.LoadOpClear, toLoadOp(common.LoadActionClear))
	assert.Equal(t, wgpu.LoadOpLoad, toLoadOp(common.LoadActionLoad))
	assert.Equal(t, wgpu.StoreOpStore, toStoreOp(common.StoreActionStore))
	assert.Equal(t, wgpu.Color{R: 0, G: 0, B: 0, A: 1}, toColor(common.ColorOpaqueBlack))
	assert.Equal(t, wgpu.PresentModeImmediate, toPresentMode(renderer.PresentModeImmediate))
	assert.Equal(t, wgpu.PresentModeFifo, toPresentMode(renderer.PresentModeVSync))
	assert.Equal(t, wgpu.PrimitiveTopologyTriangleList, toTopology(common.PrimitiveTopologyTriangleList))
	assert.Equal(t, wgpu.CullModeNone, toCullMode(common.CullModeNone))
	assert.Equal(t, wgpu.FrontFaceCCW, toFrontFace(common.FrontFaceCCW))
}

func TestReleasedDrawableCannotPresent(t *testing.T) {
	d := &drawable{format: common.PixelFormatBGRA8Unorm}
	d.Release()
	assert.Error(t, d.Present())
	assert.Equal(t, common.PixelFormatBGRA8Unorm, d.Texture().Format())

	_, ok := (&commandBuffer{}).viewFor(d.Texture())
	assert.False(t, ok)
}

type foreignBuffer struct{}

func (foreignBuffer) Size() uint64 { return 0 }
func (foreignBuffer) Release() {}

func TestEncoderRecordsFirstRejectedCommand(t *testing.T) {
	e := &renderEncoder{}

	// neither call reaches the pass, so a nil pass is safe here
	e.SetRenderPipelineState(pipeline.NewPipeline("uncompiled"))
	e.SetVertexBuffer(0, foreignBuffer{}, 0)
	e.SetVertexBuffer(0, &gpuBuffer{}, 0)

	require.Error(t, e.err)
	assert.Contains(t, e.err.Error(), `pipeline "uncompiled" has no wgpu render pipeline`)

	assert.Error(t, e.EndEncoding())
}

package pipeline

import (
	"github.com/Carmen-Shannon/oxy-triangle/common"
	"github.com/Carmen-Shannon/oxy-triangle/engine/geometry"
	"github.com/Carmen-Shannon/oxy-triangle/engine/renderer/shader"
)

// pipeline is the implementation of the Pipeline interface.
// It holds the compiled GPU pipeline handle and the fixed-function state it was created with.
type pipeline struct {
	// pipelineKey is the unique identifier for this pipeline, used in errors and lookups
	pipelineKey string
	label       string

	shader        shader.Shader
	shaderOptions []shader.ShaderBuilderOption

	// renderPipeline is the backend's compiled pipeline object, nil until Compile succeeds
	renderPipeline any

	// The following properties configure the pipeline during creation and can be set with the builder options.

	vertexLayout geometry.VertexLayout
	colorFormat  common.PixelFormat
	topology     common.PrimitiveTopology
	cullMode     common.CullMode
	frontFace    common.FrontFace
	blendEnabled bool
}

// Pipeline is a render pipeline state: one vertex and one fragment stage, a vertex buffer layout,
// and a single color target format. It is read-only once compiled.
type Pipeline interface {
	// PipelineKey returns the unique key associated with this pipeline.
	//
	// Returns:
	//   - string: the unique key for this pipeline
	PipelineKey() string

	// Label returns the debug label given to GPU objects created for this pipeline.
	//
	// Returns:
	//   - string: the label, defaulting to the pipeline key
	Label() string

	// Shader retrieves the shader providing both stages, nil if not set.
	//
	// Returns:
	//   - shader.Shader: the shader
	Shader() shader.Shader

	// VertexLayout returns the vertex buffer layout bound at slot 0.
	//
	// Returns:
	//   - geometry.VertexLayout: the layout
	VertexLayout() geometry.VertexLayout

	// ColorFormat returns the pixel format of the single color attachment.
	//
	// Returns:
	//   - common.PixelFormat: the target format
	ColorFormat() common.PixelFormat

	// Topology returns the primitive topology configured for this pipeline.
	//
	// Returns:
	//   - common.PrimitiveTopology: the topology, triangle list by default
	Topology() common.PrimitiveTopology

	// CullMode returns the cull mode configured for this pipeline.
	//
	// Returns:
	//   - common.CullMode: the cull mode, none by default
	CullMode() common.CullMode

	// FrontFace returns the front face winding order configured for this pipeline.
	//
	// Returns:
	//   - common.FrontFace: the winding order, counter-clockwise by default
	FrontFace() common.FrontFace

	// BlendEnabled returns whether alpha blending is enabled for the color target.
	//
	// Returns:
	//   - bool: true if blending is enabled
	BlendEnabled() bool

	// RenderPipeline returns the backend pipeline object created by the Factory.
	// Note: The caller is responsible for type asserting the returned value to its backend type.
	//
	// Returns:
	//   - any: the compiled pipeline object, or nil before compilation
	RenderPipeline() any

	// Compiled reports whether a backend pipeline object exists.
	//
	// Returns:
	//   - bool: true once Compile has succeeded
	Compiled() bool
}

var _ Pipeline = &pipeline{}

// NewPipeline creates an uncompiled Pipeline description. Compile turns it into a GPU object.
//
// Parameters:
//   - pipelineKey: the unique key for this pipeline
//   - opts: a variadic list of PipelineBuilderOption functions to configure the pipeline
//
// Returns:
//   - Pipeline: a new Pipeline with the given configuration
func NewPipeline(pipelineKey string, opts ...PipelineBuilderOption) Pipeline {
	return newPipeline(pipelineKey, opts...)
}

func newPipeline(pipelineKey string, opts ...PipelineBuilderOption) *pipeline {
	p := &pipeline{
		pipelineKey:  pipelineKey,
		vertexLayout: geometry.DefaultVertexLayout(),
		colorFormat:  common.PixelFormatBGRA8Unorm,
		topology:     common.PrimitiveTopologyTriangleList,
		cullMode:     common.CullModeNone,
		frontFace:    common.FrontFaceCCW,
		blendEnabled: false,
	}
	for _, opt := range opts {
		opt(p)
	}
	p.label = common.Coalesce(p.label, pipelineKey)
	return p
}

func (p *pipeline) PipelineKey() string {
	return p.pipelineKey
}

func (p *pipeline) Label() string {
	return p.label
}

func (p *pipeline) Shader() shader.Shader {
	return p.shader
}

func (p *pipeline) VertexLayout() geometry.VertexLayout {
	return p.vertexLayout
}

func (p *pipeline) ColorFormat() common.PixelFormat {
	return p.colorFormat
}

func (p *pipeline) Topology() common.PrimitiveTopology {
	return p.topology
}

func (p *pipeline) CullMode() common.CullMode {
	return p.cullMode
}

func (p *pipeline) FrontFace() common.FrontFace {
	return p.frontFace
}

func (p *pipeline) BlendEnabled() bool {
	return p.blendEnabled
}

func (p *pipeline) RenderPipeline() any {
	return p.renderPipeline
}

func (p *pipeline) Compiled() bool {
	return p.renderPipeline != nil
}

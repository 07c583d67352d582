package pipeline

import (
	"github.com/Carmen-Shannon/oxy-triangle/common"
	"github.com/Carmen-Shannon/oxy-triangle/engine/renderer/shader"
	"github.com/cockroachdb/errors"
)

var (
	// ErrMissingStage is returned when the shader lacks a vertex or fragment entry point.
	ErrMissingStage = errors.New("pipeline: shader stage missing")

	// ErrVertexLayoutMismatch is returned when the shader's vertex input does not match the configured buffer layout.
	ErrVertexLayoutMismatch = errors.New("pipeline: vertex layout does not match shader input")

	// ErrPipelineCreation is marked on every failure of the backend to create the pipeline object.
	ErrPipelineCreation = errors.New("pipeline: creation failed")
)

// Factory creates backend pipeline objects. The renderer's Device satisfies it.
type Factory interface {
	// CreateRenderPipeline compiles the pipeline description into a GPU object.
	//
	// Parameters:
	//   - p: the pipeline description, with its shader set
	//
	// Returns:
	//   - any: the backend pipeline object
	//   - error: an error if the device rejects the pipeline
	CreateRenderPipeline(p Pipeline) (any, error)
}

// Compile checks a shader against the pipeline configuration and creates the GPU pipeline object.
// Nothing is created on the device unless every check passes.
//
// Parameters:
//   - factory: the device used to create the pipeline
//   - key: the unique key for the pipeline
//   - s: the compiled shader providing both stages
//   - opts: pipeline configuration options
//
// Returns:
//   - Pipeline: the compiled, read-only pipeline
//   - error: ErrMissingStage, ErrVertexLayoutMismatch, or an error marked ErrPipelineCreation
func Compile(factory Factory, key string, s shader.Shader, opts ...PipelineBuilderOption) (Pipeline, error) {
	p := newPipeline(key, opts...)
	p.shader = s
	if err := p.check(); err != nil {
		return nil, err
	}
	if factory == nil {
		return nil, errors.Mark(errors.Newf("pipeline %q: nil factory", key), ErrPipelineCreation)
	}

	handle, err := factory.CreateRenderPipeline(p)
	if err != nil {
		return nil, errors.Mark(errors.Wrapf(err, "pipeline %q", key), ErrPipelineCreation)
	}
	if handle == nil {
		return nil, errors.Mark(errors.Newf("pipeline %q: backend returned no pipeline", key), ErrPipelineCreation)
	}
	p.renderPipeline = handle
	return p, nil
}

// CompileSource compiles WGSL source into a shader and then into a pipeline. Shader options are
// taken from WithShaderOptions. A shader failure is returned before the factory is ever called.
//
// Parameters:
//   - factory: the device used to create the pipeline
//   - key: the unique key for both the shader and the pipeline
//   - source: the raw WGSL source
//   - opts: pipeline configuration options
//
// Returns:
//   - Pipeline: the compiled pipeline
//   - error: a *shader.ShaderCompileError or any error from Compile
func CompileSource(factory Factory, key, source string, opts ...PipelineBuilderOption) (Pipeline, error) {
	cfg := newPipeline(key, opts...)
	s, err := shader.Compile(key, source, cfg.shaderOptions...)
	if err != nil {
		return nil, errors.Wrapf(err, "pipeline %q", key)
	}
	return Compile(factory, key, s, opts...)
}

// check validates the description before any GPU object is created.
func (p *pipeline) check() error {
	if p.shader == nil {
		return errors.Wrapf(ErrMissingStage, "pipeline %q: no shader", p.pipelineKey)
	}
	for _, stage := range []shader.Stage{shader.StageVertex, shader.StageFragment} {
		if !p.shader.HasStage(stage) {
			return errors.Wrapf(ErrMissingStage, "pipeline %q: shader %q has no %s entry point", p.pipelineKey, p.shader.Key(), stage)
		}
	}

	// WGSL inputs carry no offsets; only location and format must agree with the buffer.
	for _, in := range p.shader.VertexInputs() {
		attr, ok := p.vertexLayout.AttributeAt(in.Location)
		if !ok {
			return errors.Wrapf(ErrVertexLayoutMismatch, "pipeline %q: shader %q reads @location(%d) %s but the buffer has no attribute there",
				p.pipelineKey, p.shader.Key(), in.Location, in.Name)
		}
		if attr.Format != in.Format {
			return errors.Wrapf(ErrVertexLayoutMismatch, "pipeline %q: shader %q reads @location(%d) %s as %s, buffer provides %s",
				p.pipelineKey, p.shader.Key(), in.Location, in.Name, in.TypeName, attr.Format)
		}
	}

	if p.colorFormat == common.PixelFormatUndefined {
		return errors.Mark(errors.Newf("pipeline %q: undefined color format", p.pipelineKey), ErrPipelineCreation)
	}
	return nil
}

package shader

import (
	_ "embed"
	"os"
	"slices"

	"github.com/Carmen-Shannon/oxy-triangle/common"
	"github.com/cockroachdb/errors"
)

// DefaultSource is the pass-through triangle shader: positions in clip space, interpolated vertex colors.
//
//go:embed assets/triangle.wgsl
var DefaultSource string

const (
	// DefaultVertexEntryPoint is the vertex function name required unless overridden.
	DefaultVertexEntryPoint = "vertex_main"

	// DefaultFragmentEntryPoint is the fragment function name required unless overridden.
	DefaultFragmentEntryPoint = "fragment_main"
)

// Stage identifies a programmable pipeline stage.
type Stage int

const (
	// StageVertex is the vertex processing stage.
	StageVertex Stage = iota

	// StageFragment is the fragment processing stage.
	StageFragment

	// StageCompute is a compute dispatch entry point. Render pipelines reject it.
	StageCompute
)

func (s Stage) String() string {
	switch s {
	case StageVertex:
		return "vertex"
	case StageFragment:
		return "fragment"
	case StageCompute:
		return "compute"
	default:
		return "unknown"
	}
}

// VertexInput is one @location input read by the vertex entry point.
type VertexInput struct {
	Location uint32
	Name     string
	TypeName string
	// Format is VertexFormatUndefined when TypeName has no vertex format equivalent.
	Format common.VertexFormat
}

// shader is the implementation of the Shader interface.
type shader struct {
	key       string
	rawSource string
	source    string

	vertexEntryPoint   string
	fragmentEntryPoint string
	entryPoints        []entryPoint

	vertexInputs []VertexInput

	validator Validator
	pp        PreProcessor
}

// Shader is a compiled, validated WGSL program holding one vertex and one fragment entry point.
// It is read-only once Compile returns.
type Shader interface {
	// Key retrieves the unique identifier for this shader.
	//
	// Returns:
	//   - string: the shader's unique key
	Key() string

	// Source retrieves the processed WGSL source, with annotations expanded, as handed to the GPU.
	//
	// Returns:
	//   - string: the processed WGSL source
	Source() string

	// RawSource retrieves the WGSL source as written, before pre-processing.
	//
	// Returns:
	//   - string: the raw WGSL source
	RawSource() string

	// EntryPoint returns the function name for a stage.
	//
	// Parameters:
	//   - stage: the stage to look up
	//
	// Returns:
	//   - string: the entry point name, or empty string if the shader has no entry point for the stage
	EntryPoint(stage Stage) string

	// HasStage reports whether the shader declares an entry point for a stage.
	//
	// Parameters:
	//   - stage: the stage to look up
	//
	// Returns:
	//   - bool: true if an entry point exists
	HasStage(stage Stage) bool

	// VertexInputs returns the @location inputs of the vertex entry point in ascending location order.
	// WGSL declares no byte offsets, so these only constrain the location and format of buffer attributes.
	//
	// Returns:
	//   - []VertexInput: the inputs, empty if the vertex stage reads no vertex buffer
	VertexInputs() []VertexInput
}

var _ Shader = &shader{}

// Compile pre-processes, checks and validates WGSL source. The source must declare exactly one @vertex
// and exactly one @fragment function whose names match the configured entry points.
//
// Parameters:
//   - key: a unique identifier for the shader, used in errors and as the GPU debug label
//   - source: the raw WGSL source
//   - options: functional options for entry point names, includes and the validator
//
// Returns:
//   - Shader: the compiled shader
//   - error: a *ShaderCompileError describing the first problem found
func Compile(key, source string, options ...ShaderBuilderOption) (Shader, error) {
	s := &shader{
		key:                key,
		rawSource:          source,
		vertexEntryPoint:   DefaultVertexEntryPoint,
		fragmentEntryPoint: DefaultFragmentEntryPoint,
		validator:          NagaValidator{},
		pp:                 NewPreProcessor(),
	}
	for _, opt := range options {
		opt(s)
	}
	if err := s.compile(); err != nil {
		return nil, err
	}
	return s, nil
}

// CompileFromPath reads WGSL source from a file and compiles it with Compile.
//
// Parameters:
//   - key: a unique identifier for the shader
//   - path: the file path to read WGSL source from
//   - options: functional options passed to Compile
//
// Returns:
//   - Shader: the compiled shader
//   - error: an error marked ErrSourceNotFound if the file cannot be read, or a *ShaderCompileError
func CompileFromPath(key, path string, options ...ShaderBuilderOption) (Shader, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, errors.Mark(errors.Wrapf(err, "shader %q: read %s", key, path), ErrSourceNotFound)
	}
	return Compile(key, string(data), options...)
}

func (s *shader) Key() string {
	return s.key
}

func (s *shader) Source() string {
	return s.source
}

func (s *shader) RawSource() string {
	return s.rawSource
}

func (s *shader) EntryPoint(stage Stage) string {
	for _, ep := range s.entryPoints {
		if ep.stage == stage {
			return ep.name
		}
	}
	return ""
}

func (s *shader) HasStage(stage Stage) bool {
	return s.EntryPoint(stage) != ""
}

func (s *shader) VertexInputs() []VertexInput {
	return slices.Clone(s.vertexInputs)
}

// compile runs the pre-processor, the entry point checks, vertex input parsing and the validator, in that order.
func (s *shader) compile() error {
	processed, err := s.pp.Process(s.rawSource)
	if err != nil {
		if ce, ok := IsCompileError(err); ok {
			ce.Key = s.key
			return ce
		}
		return errors.Wrapf(err, "shader %q", s.key)
	}
	s.source = processed

	s.entryPoints = parseEntryPoints(s.source)
	if err := s.checkEntryPoint(StageVertex, s.vertexEntryPoint); err != nil {
		return err
	}
	if err := s.checkEntryPoint(StageFragment, s.fragmentEntryPoint); err != nil {
		return err
	}

	s.vertexInputs = parseVertexInputs(s.source, s.vertexEntryPoint)

	if err := s.validator.Validate(s.source); err != nil {
		return fromValidatorError(s.key, err, s.pp.SourceLine)
	}
	return nil
}

// checkEntryPoint requires exactly one entry point for stage, named want.
func (s *shader) checkEntryPoint(stage Stage, want string) error {
	var found []entryPoint
	for _, ep := range s.entryPoints {
		if ep.stage == stage {
			found = append(found, ep)
		}
	}
	switch {
	case len(found) == 0:
		return newCompileError(s.key, 0, "missing @%s entry point %q", stage, want)
	case len(found) > 1:
		return newCompileError(s.key, s.pp.SourceLine(found[1].line), "more than one @%s entry point (%q and %q)", stage, found[0].name, found[1].name)
	case found[0].name != want:
		return newCompileError(s.key, s.pp.SourceLine(found[0].line), "@%s entry point is %q, want %q", stage, found[0].name, want)
	}
	return nil
}

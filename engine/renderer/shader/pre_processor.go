// pre_processor.go implements the Oxy WGSL shader pre-processor. It scans shader source
// for @oxy: annotations and replaces them with registered WGSL struct sources, so shaders
// share the exact vertex input declaration the geometry package packs data for.
//
// The pre-processor keeps a line map from the processed source back to the raw source,
// which lets validator positions be reported against what the author actually wrote.
package shader

import (
	"strings"

	"github.com/Carmen-Shannon/oxy-triangle/engine/geometry"
)

// registryEntry pairs a WGSL struct source string (embedded from a .wgsl asset file)
// with the WGSL type name it declares.
type registryEntry struct {
	// Source is the raw WGSL struct definition text injected by @oxy:include.
	Source string

	// Type is the WGSL type name declared by Source (e.g. "VertexInput").
	Type string
}

// preProcessor is the implementation of the PreProcessor interface.
type preProcessor struct {
	structRegistry map[AnnotationArg]registryEntry

	// lineMap[i] is the 1-based raw source line that produced processed line i+1.
	lineMap []int
}

// PreProcessor expands @oxy: annotations in raw WGSL shader source.
type PreProcessor interface {
	// Process replaces every @oxy:include annotation with the registered struct source.
	// The line map is reset at the start of each call.
	//
	// Parameters:
	//   - source: the raw WGSL shader source code
	//
	// Returns:
	//   - string: the processed WGSL shader source code
	//   - error: a *ShaderCompileError carrying the raw line of a malformed or unknown annotation
	Process(source string) (string, error)

	// SourceLine maps a 1-based line of the last processed output back to the raw source line it came from.
	// Lines produced by an include map to the annotation's line. Out of range lines are returned unchanged.
	//
	// Parameters:
	//   - processedLine: the 1-based line in the processed source
	//
	// Returns:
	//   - int: the 1-based line in the raw source
	SourceLine(processedLine int) int

	// Register adds or replaces an include target.
	//
	// Parameters:
	//   - name: the include argument that selects this source
	//   - typeName: the WGSL type the source declares
	//   - source: the WGSL text to inject
	Register(name, typeName, source string)
}

var _ PreProcessor = &preProcessor{}

// NewPreProcessor creates a new PreProcessor with the engine's GPU struct sources pre-registered.
//
// Returns:
//   - PreProcessor: a ready-to-use pre-processor instance
func NewPreProcessor() PreProcessor {
	return &preProcessor{
		structRegistry: map[AnnotationArg]registryEntry{
			AnnotationArgVertex: {Source: geometry.GPUVertexSource, Type: "VertexInput"},
		},
	}
}

func (p *preProcessor) Process(source string) (string, error) {
	p.lineMap = p.lineMap[:0]

	lines := strings.Split(source, "\n")
	out := make([]string, 0, len(lines))

	for i, line := range lines {
		a, err := parseAnnotation(line, i+1)
		if err != nil {
			return "", &ShaderCompileError{Message: err.Error(), Line: i + 1}
		}
		if a == nil {
			out = append(out, line)
			p.lineMap = append(p.lineMap, i+1)
			continue
		}

		switch a.Type {
		case AnnotationTypeInclude:
			entry, ok := p.structRegistry[a.Args[0]]
			if !ok {
				return "", newCompileError("", i+1, "unknown @oxy:include argument %q", a.Args[0])
			}
			for _, injected := range strings.Split(strings.TrimRight(entry.Source, "\n"), "\n") {
				out = append(out, injected)
				p.lineMap = append(p.lineMap, i+1)
			}
		}
	}
	return strings.Join(out, "\n"), nil
}

func (p *preProcessor) SourceLine(processedLine int) int {
	if processedLine < 1 || processedLine > len(p.lineMap) {
		return processedLine
	}
	return p.lineMap[processedLine-1]
}

func (p *preProcessor) Register(name, typeName, source string) {
	p.structRegistry[AnnotationArg(name)] = registryEntry{Source: source, Type: typeName}
}

// annotations.go defines the annotation syntax understood by the shader pre-processor.
// Annotations are single-line WGSL comments prefixed with @oxy: and are consumed before
// the source reaches validation, so the GPU never sees them.
//
// Syntax: //@oxy:include <name>
//
// Example: //@oxy:include vertex
package shader

import (
	"strings"

	"github.com/cockroachdb/errors"
)

// annotationPrefix is the marker that identifies an Oxy annotation within a WGSL comment line.
const annotationPrefix = "@oxy:"

// AnnotationType identifies the kind of annotation parsed from a WGSL comment line.
type AnnotationType string

const (
	// AnnotationTypeInclude injects the WGSL source of a registered struct definition
	// into the shader at the annotation site.
	AnnotationTypeInclude AnnotationType = "include"
)

// AnnotationArg is a typed string used as an annotation argument.
type AnnotationArg string

const (
	// AnnotationArgVertex identifies the VertexInput struct of the interleaved position+color vertex.
	// Source: engine/geometry/assets/vertex.wgsl
	AnnotationArgVertex AnnotationArg = "vertex"
)

// Annotation represents a single parsed @oxy: annotation from a WGSL source line.
type Annotation struct {
	// Type identifies which annotation was parsed.
	Type AnnotationType

	// Args holds the annotation's arguments. For include, [0] is the registered struct name.
	Args []AnnotationArg

	// Line is the 1-based line number in the raw source where the annotation was found.
	Line int
}

// parseAnnotation attempts to parse a single line of WGSL source as an @oxy: annotation.
// Returns nil with no error for lines that are not annotations. Whether an include name is
// registered is decided by the pre-processor, not here.
//
// Parameters:
//   - line: the raw WGSL source line to parse
//   - lineNum: the 1-based line number for error reporting
//
// Returns:
//   - *Annotation: the parsed annotation, or nil if the line is not an annotation
//   - error: a descriptive error if the annotation is malformed
func parseAnnotation(line string, lineNum int) (*Annotation, error) {
	trimmed := strings.TrimSpace(line)
	comment, ok := strings.CutPrefix(trimmed, "//")
	if !ok {
		return nil, nil
	}
	after, ok := strings.CutPrefix(strings.TrimSpace(comment), annotationPrefix)
	if !ok {
		return nil, nil
	}

	args := strings.Fields(after)
	if len(args) == 0 {
		return nil, errors.New("empty @oxy annotation")
	}

	switch args[0] {
	case string(AnnotationTypeInclude):
		if len(args) != 2 {
			return nil, errors.New("@oxy include annotation requires exactly one argument")
		}
		return &Annotation{
			Type: AnnotationTypeInclude,
			Args: []AnnotationArg{AnnotationArg(args[1])},
			Line: lineNum,
		}, nil
	default:
		return nil, errors.Newf("unknown @oxy annotation type %q", args[0])
	}
}

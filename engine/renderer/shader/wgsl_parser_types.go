package shader

import "github.com/Carmen-Shannon/oxy-triangle/common"

// parsedField represents a single field extracted from a WGSL struct during parsing
type parsedField struct {
	name      string
	typeName  string
	location  int
	isBuiltin bool
}

// parsedStruct represents a WGSL struct block extracted during parsing
type parsedStruct struct {
	name   string
	fields []parsedField
}

// entryPoint is a single @vertex, @fragment or @compute function found in the source
type entryPoint struct {
	stage Stage
	name  string
	// line is the 1-based line of the stage attribute
	line int
}

// wgslVertexFormatMap maps WGSL type names to their corresponding vertex format
var wgslVertexFormatMap = map[string]common.VertexFormat{
	"f32":       common.VertexFormatFloat32,
	"vec2f":     common.VertexFormatFloat32x2,
	"vec2<f32>": common.VertexFormatFloat32x2,
	"vec3f":     common.VertexFormatFloat32x3,
	"vec3<f32>": common.VertexFormatFloat32x3,
	"vec4f":     common.VertexFormatFloat32x4,
	"vec4<f32>": common.VertexFormatFloat32x4,
	"u32":       common.VertexFormatUint32,
	"i32":       common.VertexFormatSint32,
}

package geometry

// GeometryBuilderOption is a functional option for configuring a GeometryBuffer via NewGeometryBuffer.
type GeometryBuilderOption func(*geometryBuffer)

// WithLabel sets the debug label used when the GPU buffer is created.
//
// Parameters:
//   - label: the buffer label
//
// Returns:
//   - GeometryBuilderOption: a function that applies the label option to a geometry buffer
func WithLabel(label string) GeometryBuilderOption {
	return func(g *geometryBuffer) {
		g.label = label
	}
}

// WithVertices replaces the vertex data with the given vertices.
//
// Parameters:
//   - vertices: the vertices to pack
//
// Returns:
//   - GeometryBuilderOption: a function that applies the vertices option to a geometry buffer
func WithVertices(vertices []Vertex) GeometryBuilderOption {
	return func(g *geometryBuffer) {
		g.floats = flattenVertices(vertices)
	}
}

// WithRawData replaces the vertex data with an already interleaved float slice.
// The slice is copied. Its length is not checked here; see GeometryBuffer.Validate.
//
// Parameters:
//   - floats: interleaved position+color floats
//
// Returns:
//   - GeometryBuilderOption: a function that applies the raw data option to a geometry buffer
func WithRawData(floats []float32) GeometryBuilderOption {
	return func(g *geometryBuffer) {
		g.floats = make([]float32, len(floats))
		copy(g.floats, floats)
	}
}

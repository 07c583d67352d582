package geometry

import (
	_ "embed"
	"encoding/binary"
	"math"

	"github.com/go-gl/mathgl/mgl32"
)

// FloatsPerVertex is the number of packed 32-bit floats making up one Vertex (position xyzw + color rgba).
const FloatsPerVertex = 8

// VertexStride is the size of one Vertex in bytes.
const VertexStride = FloatsPerVertex * 4

// GPUVertexSource is the canonical WGSL definition of the VertexInput struct for the triangle pipeline.
// Matches Vertex layout exactly (32 bytes, two vec4<f32> attributes).
//
//go:embed assets/vertex.wgsl
var GPUVertexSource string

// Vertex is the GPU-aligned representation of a single interleaved vertex.
// Matches the WGSL VertexInput struct layout exactly (see GPUVertexSource).
// Size: 32 bytes, no padding.
type Vertex struct {
	Position mgl32.Vec4 // offset  0: clip-space position (16 bytes)
	Color    mgl32.Vec4 // offset 16: RGBA color (16 bytes)
}

// Floats flattens the vertex into its 8 packed float components in attribute order.
//
// Returns:
//   - [FloatsPerVertex]float32: position xyzw followed by color rgba
func (v Vertex) Floats() [FloatsPerVertex]float32 {
	return [FloatsPerVertex]float32{
		v.Position[0], v.Position[1], v.Position[2], v.Position[3],
		v.Color[0], v.Color[1], v.Color[2], v.Color[3],
	}
}

// TriangleVertices returns the fixed three-vertex triangle: a red top vertex, a green bottom-left
// vertex and a blue bottom-right vertex.
//
// Returns:
//   - []Vertex: a fresh slice of the three triangle vertices
func TriangleVertices() []Vertex {
	return []Vertex{
		{Position: mgl32.Vec4{0.0, 0.5, 0.0, 1.0}, Color: mgl32.Vec4{1.0, 0.0, 0.0, 1.0}},
		{Position: mgl32.Vec4{-0.5, -0.5, 0.0, 1.0}, Color: mgl32.Vec4{0.0, 1.0, 0.0, 1.0}},
		{Position: mgl32.Vec4{0.5, -0.5, 0.0, 1.0}, Color: mgl32.Vec4{0.0, 0.0, 1.0, 1.0}},
	}
}

// flattenVertices packs a vertex slice into an interleaved float slice.
func flattenVertices(vertices []Vertex) []float32 {
	out := make([]float32, 0, len(vertices)*FloatsPerVertex)
	for _, v := range vertices {
		f := v.Floats()
		out = append(out, f[:]...)
	}
	return out
}

// floatsToBytes encodes floats little-endian, four bytes each.
func floatsToBytes(floats []float32) []byte {
	buf := make([]byte, len(floats)*4)
	for i, f := range floats {
		binary.LittleEndian.PutUint32(buf[i*4:i*4+4], math.Float32bits(f))
	}
	return buf
}

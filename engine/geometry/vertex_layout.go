package geometry

import "github.com/Carmen-Shannon/oxy-triangle/common"

// VertexAttribute describes one attribute inside an interleaved vertex buffer.
type VertexAttribute struct {
	// Format is the component type and count of the attribute.
	Format common.VertexFormat
	// Offset is the byte offset of the attribute from the start of the vertex.
	Offset uint64
	// ShaderLocation is the @location index the attribute feeds in the vertex stage.
	ShaderLocation uint32
	// BufferIndex is the vertex buffer slot the attribute is read from.
	BufferIndex uint32
}

// VertexLayout describes how one vertex buffer is laid out and stepped.
type VertexLayout struct {
	// Stride is the distance in bytes between consecutive vertices.
	Stride uint64
	// StepMode selects per-vertex or per-instance stepping.
	StepMode common.VertexStepMode
	// StepRate is how many vertices (or instances) share one element; always 1 for per-vertex data.
	StepRate uint32
	// Attributes lists the attributes in location order.
	Attributes []VertexAttribute
}

// NewVertexLayout builds a per-vertex layout for a single buffer at slot 0 whose attributes are packed
// back to back in the given order. Attribute i is bound to shader location i, its offset is the sum of
// the sizes of the attributes before it, and the stride is the sum of all attribute sizes.
//
// Parameters:
//   - formats: the attribute formats in location order
//
// Returns:
//   - VertexLayout: the computed layout
func NewVertexLayout(formats ...common.VertexFormat) VertexLayout {
	attrs := make([]VertexAttribute, 0, len(formats))
	var offset uint64
	for i, f := range formats {
		attrs = append(attrs, VertexAttribute{
			Format:         f,
			Offset:         offset,
			ShaderLocation: uint32(i),
			BufferIndex:    0,
		})
		offset += f.Size()
	}
	return VertexLayout{
		Stride:     offset,
		StepMode:   common.VertexStepModeVertex,
		StepRate:   1,
		Attributes: attrs,
	}
}

// DefaultVertexLayout is the layout of Vertex: position and color, both Float32x4, stride 32.
//
// Returns:
//   - VertexLayout: the two-attribute interleaved layout
func DefaultVertexLayout() VertexLayout {
	return NewVertexLayout(common.VertexFormatFloat32x4, common.VertexFormatFloat32x4)
}

// Equal reports whether two layouts describe the same stride, stepping and attributes.
//
// Parameters:
//   - other: the layout to compare against
//
// Returns:
//   - bool: true if both layouts are identical
func (l VertexLayout) Equal(other VertexLayout) bool {
	if l.Stride != other.Stride || l.StepMode != other.StepMode || l.StepRate != other.StepRate {
		return false
	}
	if len(l.Attributes) != len(other.Attributes) {
		return false
	}
	for i := range l.Attributes {
		if l.Attributes[i] != other.Attributes[i] {
			return false
		}
	}
	return true
}

// AttributeAt returns the attribute bound to a shader location.
//
// Parameters:
//   - location: the @location index
//
// Returns:
//   - VertexAttribute: the attribute
//   - bool: false if no attribute feeds that location
func (l VertexLayout) AttributeAt(location uint32) (VertexAttribute, bool) {
	for _, a := range l.Attributes {
		if a.ShaderLocation == location {
			return a, true
		}
	}
	return VertexAttribute{}, false
}

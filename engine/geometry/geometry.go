package geometry

import (
	"sync"

	"github.com/cockroachdb/errors"
)

// ErrMalformedGeometry is reported by Validate when the raw vertex data does not hold a whole number of vertices.
var ErrMalformedGeometry = errors.New("geometry: vertex data is not a whole number of vertices")

// ErrNotUploaded is returned when a GPU buffer is requested before Upload succeeded.
var ErrNotUploaded = errors.New("geometry: buffer has not been uploaded")

// GPUBuffer is a device-resident buffer created by a BufferAllocator.
type GPUBuffer interface {
	// Size returns the size of the buffer in bytes as requested at creation.
	Size() uint64

	// Release frees the device memory backing the buffer.
	Release()
}

// BufferAllocator creates vertex buffers on a GPU device. The renderer's Device satisfies it.
type BufferAllocator interface {
	// NewBuffer creates a vertex buffer of exactly len(data) bytes and copies data into it.
	//
	// Parameters:
	//   - label: a debug label for the buffer
	//   - data: the bytes to upload
	//
	// Returns:
	//   - GPUBuffer: the created buffer
	//   - error: an error if the device could not allocate or fill the buffer
	NewBuffer(label string, data []byte) (GPUBuffer, error)
}

// geometryBuffer is the implementation of the GeometryBuffer interface.
type geometryBuffer struct {
	mu     *sync.Mutex
	label  string
	floats []float32
	data   []byte
	buffer GPUBuffer
}

// GeometryBuffer holds static interleaved position+color vertex data and exposes it as a GPU-resident buffer.
// The CPU-side data is fixed at construction and never changes for the lifetime of the GeometryBuffer.
type GeometryBuffer interface {
	// Label returns the debug label used for the GPU buffer.
	//
	// Returns:
	//   - string: the label
	Label() string

	// Floats returns a copy of the packed float data.
	//
	// Returns:
	//   - []float32: the interleaved vertex floats
	Floats() []float32

	// FloatCount returns the number of packed floats held by this buffer.
	//
	// Returns:
	//   - int: the float count
	FloatCount() int

	// VertexCount returns the number of whole vertices held by this buffer.
	// Trailing floats that do not form a whole vertex are not counted.
	//
	// Returns:
	//   - uint32: the vertex count
	VertexCount() uint32

	// Data returns the little-endian byte encoding of the vertex floats.
	//
	// Returns:
	//   - []byte: the bytes uploaded to the GPU
	Data() []byte

	// ByteSize returns the upload size in bytes, computed as FloatCount() * 4 from the actual data.
	//
	// Returns:
	//   - uint64: the byte size
	ByteSize() uint64

	// Layout returns the vertex layout describing this buffer.
	//
	// Returns:
	//   - VertexLayout: the interleaved position+color layout
	Layout() VertexLayout

	// Validate reports ErrMalformedGeometry if the data is not a whole number of vertices.
	//
	// Returns:
	//   - error: nil for well formed data
	Validate() error

	// Upload creates the GPU buffer through the allocator and copies the vertex data into it.
	// Uploading an already uploaded buffer is a no-op.
	//
	// Parameters:
	//   - allocator: the device used to create the buffer
	//
	// Returns:
	//   - error: an error if allocation fails
	Upload(allocator BufferAllocator) error

	// Uploaded reports whether Upload has succeeded.
	//
	// Returns:
	//   - bool: true once a GPU buffer exists
	Uploaded() bool

	// Buffer returns the GPU buffer created by Upload.
	//
	// Returns:
	//   - GPUBuffer: the buffer
	//   - error: ErrNotUploaded if Upload has not succeeded
	Buffer() (GPUBuffer, error)

	// Release frees the GPU buffer, if any. The CPU-side data is kept.
	Release()
}

var _ GeometryBuffer = &geometryBuffer{}

// NewGeometryBuffer creates a GeometryBuffer. Without options it holds the fixed triangle from TriangleVertices.
//
// Parameters:
//   - options: functional options to set the label and vertex data
//
// Returns:
//   - GeometryBuffer: the new buffer, not yet uploaded
func NewGeometryBuffer(options ...GeometryBuilderOption) GeometryBuffer {
	g := &geometryBuffer{
		mu:     &sync.Mutex{},
		label:  "Triangle",
		floats: flattenVertices(TriangleVertices()),
	}
	for _, opt := range options {
		opt(g)
	}
	g.data = floatsToBytes(g.floats)
	return g
}

func (g *geometryBuffer) Label() string {
	return g.label
}

func (g *geometryBuffer) Floats() []float32 {
	out := make([]float32, len(g.floats))
	copy(out, g.floats)
	return out
}

func (g *geometryBuffer) FloatCount() int {
	return len(g.floats)
}

func (g *geometryBuffer) VertexCount() uint32 {
	return uint32(len(g.floats) / FloatsPerVertex)
}

func (g *geometryBuffer) Data() []byte {
	return g.data
}

func (g *geometryBuffer) ByteSize() uint64 {
	return uint64(len(g.floats)) * 4
}

func (g *geometryBuffer) Layout() VertexLayout {
	return DefaultVertexLayout()
}

func (g *geometryBuffer) Validate() error {
	if len(g.floats) == 0 || len(g.floats)%FloatsPerVertex != 0 {
		return errors.Wrapf(ErrMalformedGeometry, "%d floats, want a non-zero multiple of %d", len(g.floats), FloatsPerVertex)
	}
	return nil
}

func (g *geometryBuffer) Upload(allocator BufferAllocator) error {
	g.mu.Lock()
	defer g.mu.Unlock()

	if g.buffer != nil {
		return nil
	}
	if allocator == nil {
		return errors.New("geometry: nil buffer allocator")
	}

	buf, err := allocator.NewBuffer(g.label+" Vertex Buffer", g.data)
	if err != nil {
		return errors.Wrapf(err, "geometry: upload %q (%d bytes)", g.label, g.ByteSize())
	}
	g.buffer = buf
	return nil
}

func (g *geometryBuffer) Uploaded() bool {
	g.mu.Lock()
	defer g.mu.Unlock()
	return g.buffer != nil
}

func (g *geometryBuffer) Buffer() (GPUBuffer, error) {
	g.mu.Lock()
	defer g.mu.Unlock()
	if g.buffer == nil {
		return nil, ErrNotUploaded
	}
	return g.buffer, nil
}

func (g *geometryBuffer) Release() {
	g.mu.Lock()
	defer g.mu.Unlock()
	if g.buffer != nil {
		g.buffer.Release()
		g.buffer = nil
	}
}

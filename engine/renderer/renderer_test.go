package renderer

import (
	"testing"

	"github.com/Carmen-Shannon/oxy-triangle/common"
	"github.com/Carmen-Shannon/oxy-triangle/engine/geometry"
	"github.com/Carmen-Shannon/oxy-triangle/engine/renderer/pipeline"
	"github.com/Carmen-Shannon/oxy-triangle/engine/renderer/shader"
	"github.com/cockroachdb/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// gpuLog records every call made through the fake GPU objects, in order.
type gpuLog struct {
	calls []string
}

func (l *gpuLog) add(call string) { l.calls = append(l.calls, call) }

type fakeBuffer struct{ size uint64 }

func (b *fakeBuffer) Size() uint64 { return b.size }
func (b *fakeBuffer) Release()     {}

type fakeDevice struct {
	log        *gpuLog
	queues     int
	queueErr   error
	queue      *fakeQueue
	bufferSize uint64
}

func (d *fakeDevice) NewBuffer(label string, data []byte) (geometry.GPUBuffer, error) {
	d.bufferSize = uint64(len(data))
	return &fakeBuffer{size: uint64(len(data))}, nil
}

func (d *fakeDevice) CreateRenderPipeline(p pipeline.Pipeline) (any, error) {
	return "rp", nil
}

func (d *fakeDevice) NewCommandQueue() (CommandQueue, error) {
	d.queues++
	if d.queueErr != nil {
		return nil, d.queueErr
	}
	d.queue = &fakeQueue{log: d.log}
	return d.queue, nil
}

type fakeQueue struct {
	log       *gpuLog
	cmdErr    error
	passErr   error
	endErr    error
	commitErr error
	released  bool
	last      *fakeCommandBuffer
}

func (q *fakeQueue) CommandBuffer() (CommandBuffer, error) {
	if q.cmdErr != nil {
		return nil, q.cmdErr
	}
	q.last = &fakeCommandBuffer{queue: q}
	return q.last, nil
}

func (q *fakeQueue) Release() { q.released = true }

type fakeCommandBuffer struct {
	queue    *fakeQueue
	pass     *RenderPassDescriptor
	encoder  *fakeEncoder
	present  Drawable
	released bool
}

func (c *fakeCommandBuffer) RenderCommandEncoder(desc *RenderPassDescriptor) (RenderCommandEncoder, error) {
	if c.queue.passErr != nil {
		return nil, c.queue.passErr
	}
	c.pass = desc
	c.encoder = &fakeEncoder{log: c.queue.log, endErr: c.queue.endErr}
	return c.encoder, nil
}

func (c *fakeCommandBuffer) PresentDrawable(d Drawable) {
	c.queue.log.add("present")
	c.present = d
}

func (c *fakeCommandBuffer) Commit() error {
	c.queue.log.add("commit")
	return c.queue.commitErr
}

func (c *fakeCommandBuffer) Release() { c.released = true }

type drawCall struct {
	topology     common.PrimitiveTopology
	start, count uint32
}

type fakeEncoder struct {
	log      *gpuLog
	endErr   error
	pipeline pipeline.Pipeline
	slot     uint32
	buffer   geometry.GPUBuffer
	draws    []drawCall
	ended    bool
}

func (e *fakeEncoder) SetRenderPipelineState(p pipeline.Pipeline) {
	e.log.add("pipeline")
	e.pipeline = p
}

func (e *fakeEncoder) SetVertexBuffer(index uint32, buf geometry.GPUBuffer, offset uint64) {
	e.log.add("vertex-buffer")
	e.slot = index
	e.buffer = buf
}

func (e *fakeEncoder) DrawPrimitives(topology common.PrimitiveTopology, start, count uint32) {
	e.log.add("draw")
	e.draws = append(e.draws, drawCall{topology, start, count})
}

func (e *fakeEncoder) EndEncoding() error {
	e.log.add("end")
	e.ended = true
	return e.endErr
}

type fakeTexture struct{ format common.PixelFormat }

func (t fakeTexture) Format() common.PixelFormat { return t.format }

type fakeDrawable struct {
	texture  fakeTexture
	released int
}

func (d *fakeDrawable) Texture() Texture { return d.texture }
func (d *fakeDrawable) Present() error   { return nil }
func (d *fakeDrawable) Release()         { d.released++ }

type fakeSurface struct {
	log       *gpuLog
	format    common.PixelFormat
	acquire   error
	drawables []*fakeDrawable
	resized   [2]int
	resizeErr error
}

func (s *fakeSurface) PixelFormat() common.PixelFormat { return s.format }

func (s *fakeSurface) AcquireDrawable() (Drawable, error) {
	s.log.add("acquire")
	if s.acquire != nil {
		return nil, s.acquire
	}
	d := &fakeDrawable{texture: fakeTexture{format: s.format}}
	s.drawables = append(s.drawables, d)
	return d, nil
}

func (s *fakeSurface) Resize(width, height int) error {
	s.resized = [2]int{width, height}
	return s.resizeErr
}

type acceptAll struct{}

func (acceptAll) Validate(string) error { return nil }

type fixture struct {
	log     *gpuLog
	device  *fakeDevice
	surface *fakeSurface
	geom    geometry.GeometryBuffer
	pipe    pipeline.Pipeline
}

func newFixture(t *testing.T, opts ...pipeline.PipelineBuilderOption) *fixture {
	t.Helper()
	l := &gpuLog{}
	f := &fixture{
		log:     l,
		device:  &fakeDevice{log: l},
		surface: &fakeSurface{log: l, format: common.PixelFormatBGRA8Unorm},
		geom:    geometry.NewGeometryBuffer(),
	}
	s, err := shader.Compile("triangle", shader.DefaultSource, shader.WithValidator(acceptAll{}))
	require.NoError(t, err)
	f.pipe, err = pipeline.Compile(f.device, "triangle", s, opts...)
	require.NoError(t, err)
	return f
}

func (f *fixture) renderer(t *testing.T, opts ...RendererBuilderOption) Renderer {
	t.Helper()
	r, err := NewRenderer(f.device, f.surface, f.pipe, f.geom, opts...)
	require.NoError(t, err)
	return r
}

func TestRenderFrameStateSequence(t *testing.T) {
	f := newFixture(t)
	var transitions [][2]FrameState
	r := f.renderer(t, WithStateObserver(func(from, to FrameState) {
		transitions = append(transitions, [2]FrameState{from, to})
	}))

	require.NoError(t, r.RenderFrame())

	assert.Equal(t, [][2]FrameState{
		{FrameStateIdle, FrameStateAcquiredDrawable},
		{FrameStateAcquiredDrawable, FrameStatePassConfigured},
		{FrameStatePassConfigured, FrameStateEncoding},
		{FrameStateEncoding, FrameStateSubmitted},
		{FrameStateSubmitted, FrameStateIdle},
	}, transitions)
	assert.Equal(t, FrameStateIdle, r.State())
	assert.Equal(t, uint64(1), r.FrameCount())
	assert.Equal(t, []string{"acquire", "pipeline", "vertex-buffer", "draw", "end", "present", "commit"}, f.log.calls)
}

func TestRenderFrameDrawsTriangle(t *testing.T) {
	f := newFixture(t)
	r := f.renderer(t)
	require.NoError(t, r.RenderFrame())

	cmd := f.device.queue.last
	require.NotNil(t, cmd)
	enc := cmd.encoder
	assert.Equal(t, []drawCall{{common.PrimitiveTopologyTriangleList, 0, 3}}, enc.draws)
	assert.Equal(t, uint32(0), enc.slot)
	assert.Equal(t, uint64(96), enc.buffer.Size())
	assert.Same(t, f.pipe, enc.pipeline)
	assert.True(t, enc.ended)
	assert.True(t, cmd.released)

	require.Len(t, f.surface.drawables, 1)
	assert.Same(t, f.surface.drawables[0], cmd.present)
	assert.Equal(t, 1, f.surface.drawables[0].released)
}

func TestRenderPassClearsToBlack(t *testing.T) {
	f := newFixture(t)
	r := f.renderer(t)
	require.NoError(t, r.RenderFrame())

	pass := f.device.queue.last.pass
	require.Len(t, pass.ColorAttachments, 1)
	att := pass.ColorAttachments[0]
	assert.Equal(t, common.LoadActionClear, att.LoadAction)
	assert.Equal(t, common.StoreActionStore, att.StoreAction)
	assert.Equal(t, common.Color{R: 0, G: 0, B: 0, A: 1}, att.ClearColor)
	assert.Equal(t, f.surface.drawables[0].texture, att.Texture)
}

func TestWithClearColor(t *testing.T) {
	f := newFixture(t)
	blue := common.Color{B: 1, A: 1}
	r := f.renderer(t, WithClearColor(blue))
	require.NoError(t, r.RenderFrame())
	assert.Equal(t, blue, f.device.queue.last.pass.ColorAttachments[0].ClearColor)
}

func TestCommandQueueCreatedOnce(t *testing.T) {
	f := newFixture(t)
	r := f.renderer(t)
	for range 5 {
		require.NoError(t, r.RenderFrame())
	}
	assert.Equal(t, 1, f.device.queues)
	assert.Equal(t, uint64(5), r.FrameCount())
	assert.Len(t, f.surface.drawables, 5)
	assert.Equal(t, uint64(96), f.device.bufferSize)
}

func TestDrawableUnavailable(t *testing.T) {
	f := newFixture(t)
	var transitions int
	r := f.renderer(t, WithStateObserver(func(from, to FrameState) { transitions++ }))

	f.surface.acquire = errors.New("surface timeout")
	err := r.RenderFrame()
	require.Error(t, err)
	assert.True(t, errors.Is(err, ErrDrawableUnavailable))
	assert.True(t, IsRecoverable(err))
	assert.Contains(t, err.Error(), "surface timeout")
	assert.Equal(t, FrameStateIdle, r.State())
	assert.Equal(t, 0, transitions)
	assert.Equal(t, uint64(0), r.FrameCount())
	assert.Nil(t, f.device.queue.last, "no command buffer may be created without a drawable")

	f.surface.acquire = nil
	require.NoError(t, r.RenderFrame())
	assert.Equal(t, uint64(1), r.FrameCount())
}

func TestFrameFailuresReturnToIdle(t *testing.T) {
	boom := errors.New("boom")
	tests := []struct {
		name   string
		setup  func(q *fakeQueue)
		marker error
	}{
		{"command buffer", func(q *fakeQueue) { q.cmdErr = boom }, ErrEncoding},
		{"begin pass", func(q *fakeQueue) { q.passErr = boom }, ErrEncoding},
		{"end encoding", func(q *fakeQueue) { q.endErr = boom }, ErrEncoding},
		{"commit", func(q *fakeQueue) { q.commitErr = boom }, ErrSubmission},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f := newFixture(t)
			var last FrameState
			r := f.renderer(t, WithStateObserver(func(from, to FrameState) { last = to }))
			tt.setup(f.device.queue)

			err := r.RenderFrame()
			require.Error(t, err)
			assert.True(t, errors.Is(err, tt.marker))
			assert.True(t, errors.Is(err, boom))
			assert.False(t, IsRecoverable(err))
			assert.Equal(t, FrameStateIdle, r.State())
			assert.Equal(t, FrameStateIdle, last)
			assert.Equal(t, uint64(0), r.FrameCount())
			require.Len(t, f.surface.drawables, 1)
			assert.Equal(t, 1, f.surface.drawables[0].released)
		})
	}
}

func TestNewRendererFormatMismatch(t *testing.T) {
	f := newFixture(t, pipeline.WithColorFormat(common.PixelFormatRGBA8Unorm))
	_, err := NewRenderer(f.device, f.surface, f.pipe, f.geom)
	require.Error(t, err)
	assert.True(t, errors.Is(err, ErrFormatMismatch))
	assert.Equal(t, 0, f.device.queues)
}

func TestNewRendererRejectsBadInputs(t *testing.T) {
	f := newFixture(t)

	_, err := NewRenderer(nil, f.surface, f.pipe, f.geom)
	assert.True(t, errors.Is(err, ErrNoDevice))

	_, err = NewRenderer(f.device, f.surface, pipeline.NewPipeline("raw"), f.geom)
	assert.True(t, errors.Is(err, ErrPipelineCreation))

	_, err = NewRenderer(f.device, nil, f.pipe, f.geom)
	assert.Error(t, err)

	_, err = NewRenderer(f.device, f.surface, f.pipe, nil)
	assert.Error(t, err)

	boom := errors.New("no queue")
	f.device.queueErr = boom
	_, err = NewRenderer(f.device, f.surface, f.pipe, f.geom)
	assert.True(t, errors.Is(err, boom))
	assert.False(t, f.geom.Uploaded())
}

func TestMalformedGeometryDrawsWholeVertices(t *testing.T) {
	f := newFixture(t)
	f.geom = geometry.NewGeometryBuffer(geometry.WithRawData(make([]float32, 20)))
	r := f.renderer(t)
	require.NoError(t, r.RenderFrame())

	assert.Equal(t, uint64(80), f.device.bufferSize)
	assert.Equal(t, []drawCall{{common.PrimitiveTopologyTriangleList, 0, 2}}, f.device.queue.last.encoder.draws)
}

func TestResize(t *testing.T) {
	f := newFixture(t)
	r := f.renderer(t)

	require.NoError(t, r.Resize(1024, 768))
	assert.Equal(t, [2]int{1024, 768}, f.surface.resized)

	require.NoError(t, r.Resize(0, 0))
	assert.Equal(t, [2]int{1024, 768}, f.surface.resized)

	f.surface.resizeErr = errors.New("lost")
	assert.Error(t, r.Resize(10, 10))
}

func TestRelease(t *testing.T) {
	f := newFixture(t)
	r := f.renderer(t)
	r.Release()
	r.Release()

	assert.True(t, f.device.queue.released)
	assert.False(t, f.geom.Uploaded())
	err := r.RenderFrame()
	assert.True(t, errors.Is(err, ErrInvalidFrameState))
}

func TestFrameStateString(t *testing.T) {
	assert.Equal(t, "AcquiredDrawable", FrameStateAcquiredDrawable.String())
	assert.Equal(t, "Idle", FrameStateSubmitted.next().String())
	assert.Equal(t, "Immediate", PresentModeImmediate.String())
}

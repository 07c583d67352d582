package backend

import (
	"github.com/Carmen-Shannon/oxy-triangle/engine/geometry"
	"github.com/Carmen-Shannon/oxy-triangle/engine/renderer"
	"github.com/Carmen-Shannon/oxy-triangle/engine/renderer/pipeline"
	"github.com/Carmen-Shannon/oxy-triangle/engine/renderer/shader"
	"github.com/cockroachdb/errors"
	"github.com/cogentcore/webgpu/wgpu"
)

// device wraps a wgpu device and its queue.
type device struct {
	device *wgpu.Device
	queue  *wgpu.Queue
}

var _ renderer.Device = &device{}

// gpuBuffer wraps a wgpu vertex buffer. The size is kept from creation time.
type gpuBuffer struct {
	buffer *wgpu.Buffer
	size   uint64
}

var _ geometry.GPUBuffer = &gpuBuffer{}

func (b *gpuBuffer) Size() uint64 {
	return b.size
}

func (b *gpuBuffer) Release() {
	if b.buffer != nil {
		b.buffer.Release()
		b.buffer = nil
	}
}

func (d *device) NewBuffer(label string, data []byte) (geometry.GPUBuffer, error) {
	buf, err := d.device.CreateBuffer(&wgpu.BufferDescriptor{
		Label:            label,
		Size:             uint64(len(data)),
		Usage:            wgpu.BufferUsageVertex | wgpu.BufferUsageCopyDst,
		MappedAtCreation: false,
	})
	if err != nil {
		return nil, errors.Wrapf(err, "backend: create buffer %q", label)
	}
	if len(data) > 0 {
		if err := d.queue.WriteBuffer(buf, 0, data); err != nil {
			buf.Release()
			return nil, errors.Wrapf(err, "backend: upload buffer %q", label)
		}
	}
	return &gpuBuffer{buffer: buf, size: uint64(len(data))}, nil
}

// CreateRenderPipeline compiles the shader module and builds a *wgpu.RenderPipeline with an empty
// pipeline layout, one vertex buffer and one color target.
func (d *device) CreateRenderPipeline(p pipeline.Pipeline) (any, error) {
	s := p.Shader()
	if s == nil {
		return nil, errors.Newf("backend: pipeline %q has no shader", p.PipelineKey())
	}

	colorFormat, ok := toTextureFormat(p.ColorFormat())
	if !ok {
		return nil, errors.Wrapf(ErrUnsupportedFormat, "pipeline %q: %s", p.PipelineKey(), p.ColorFormat())
	}
	vertexLayout, ok := toVertexBufferLayout(p.VertexLayout())
	if !ok {
		return nil, errors.Newf("backend: pipeline %q: vertex layout has no wgpu equivalent", p.PipelineKey())
	}

	module, err := d.device.CreateShaderModule(&wgpu.ShaderModuleDescriptor{
		Label: s.Key(),
		WGSLDescriptor: &wgpu.ShaderModuleWGSLDescriptor{
			Code: s.Source(),
		},
	})
	if err != nil {
		return nil, errors.Wrapf(err, "backend: shader module %q", s.Key())
	}
	defer module.Release()

	layout, err := d.device.CreatePipelineLayout(&wgpu.PipelineLayoutDescriptor{
		Label: p.Label(),
	})
	if err != nil {
		return nil, errors.Wrapf(err, "backend: pipeline layout %q", p.Label())
	}
	defer layout.Release()

	target := wgpu.ColorTargetState{
		Format:    colorFormat,
		WriteMask: wgpu.ColorWriteMaskAll,
	}
	if p.BlendEnabled() {
		blend := alphaBlendState
		target.Blend = &blend
	}

	created, err := d.device.CreateRenderPipeline(&wgpu.RenderPipelineDescriptor{
		Label:  p.Label() + " Render Pipeline",
		Layout: layout,
		Vertex: wgpu.VertexState{
			Module:     module,
			EntryPoint: s.EntryPoint(shader.StageVertex),
			Buffers:    []wgpu.VertexBufferLayout{vertexLayout},
		},
		Fragment: &wgpu.FragmentState{
			Module:     module,
			EntryPoint: s.EntryPoint(shader.StageFragment),
			Targets:    []wgpu.ColorTargetState{target},
		},
		Primitive: wgpu.PrimitiveState{
			Topology:  toTopology(p.Topology()),
			FrontFace: toFrontFace(p.FrontFace()),
			CullMode:  toCullMode(p.CullMode()),
		},
		Multisample: wgpu.MultisampleState{
			Count: 1,
			Mask:  0xFFFFFFFF,
		},
	})
	if err != nil {
		return nil, errors.Wrapf(err, "backend: render pipeline %q", p.Label())
	}
	return created, nil
}

func (d *device) NewCommandQueue() (renderer.CommandQueue, error) {
	if d.device == nil || d.queue == nil {
		return nil, errors.Wrap(renderer.ErrNoDevice, "backend: device released")
	}
	return &commandQueue{device: d.device, queue: d.queue}, nil
}

func (d *device) release() {
	if d.queue != nil {
		d.queue.Release()
		d.queue = nil
	}
	if d.device != nil {
		d.device.Release()
		d.device = nil
	}
}

package renderer

import (
	"fmt"
	"sync"

	"github.com/atelier3d/atelier/engine/math"
)

// BufferUsage hints how often vertex data will be rewritten.
type BufferUsage uint8

const (
	BufferUsageStatic BufferUsage = iota
	BufferUsageDynamic
)

// RenderData is an opaque backend-side handle to one uploaded primitive:
// its vertex buffer, optional index buffer and attribute layout.
type RenderData struct {
	ID          uint64
	VertexCount int32
	IndexCount  int32
	Stride      int32
}

// Backend is the boundary between scene objects and the graphics API. Scene
// code never touches GPU state directly; it uploads interleaved buffers here
// and draws through the returned RenderData.
type Backend interface {
	// CreateRenderData uploads an interleaved vertex buffer and optional
	// index buffer with the given attribute layout.
	CreateRenderData(vertices []float32, indices []uint32, stride int32, layouts []Layout, usage BufferUsage) (*RenderData, error)
	// UpdateVertices replaces the vertex buffer contents of dynamic render
	// data. The new buffer must match the original stride.
	UpdateVertices(data *RenderData, vertices []float32) error
	DestroyRenderData(data *RenderData)
	BeginFrame() error
	Draw(data *RenderData, model math.Mat4, view math.Mat4, projection math.Mat4)
	EndFrame() error
	Resized(width, height uint32)
	Shutdown()
}

// NullBackend implements Backend without a graphics device. It tracks every
// allocation so headless runs and tests can assert on upload behavior.
type NullBackend struct {
	mutex  sync.Mutex
	nextID uint64
	alive  map[uint64]*nullAllocation

	DrawCalls int
	Frames    int
}

type nullAllocation struct {
	data    *RenderData
	usage   BufferUsage
	updates int
}

func NewNullBackend() *NullBackend {
	return &NullBackend{alive: map[uint64]*nullAllocation{}}
}

func (b *NullBackend) CreateRenderData(vertices []float32, indices []uint32, stride int32, layouts []Layout, usage BufferUsage) (*RenderData, error) {
	if stride <= 0 {
		return nil, fmt.Errorf("invalid stride: %d", stride)
	}
	floatsPerVertex := stride / 4
	if int32(len(vertices))%floatsPerVertex != 0 {
		return nil, fmt.Errorf("vertex buffer length %d is not a multiple of stride %d", len(vertices), stride)
	}

	b.mutex.Lock()
	defer b.mutex.Unlock()

	b.nextID++
	data := &RenderData{
		ID:          b.nextID,
		VertexCount: int32(len(vertices)) / floatsPerVertex,
		IndexCount:  int32(len(indices)),
		Stride:      stride,
	}
	b.alive[data.ID] = &nullAllocation{data: data, usage: usage}
	return data, nil
}

func (b *NullBackend) UpdateVertices(data *RenderData, vertices []float32) error {
	b.mutex.Lock()
	defer b.mutex.Unlock()

	alloc, ok := b.alive[data.ID]
	if !ok {
		return fmt.Errorf("render data %d is not alive", data.ID)
	}
	if alloc.usage != BufferUsageDynamic {
		return fmt.Errorf("render data %d was not created with dynamic usage", data.ID)
	}
	floatsPerVertex := data.Stride / 4
	if int32(len(vertices))%floatsPerVertex != 0 {
		return fmt.Errorf("vertex buffer length %d is not a multiple of stride %d", len(vertices), data.Stride)
	}

	data.VertexCount = int32(len(vertices)) / floatsPerVertex
	alloc.updates++
	return nil
}

func (b *NullBackend) DestroyRenderData(data *RenderData) {
	if data == nil {
		return
	}
	b.mutex.Lock()
	defer b.mutex.Unlock()
	delete(b.alive, data.ID)
}

func (b *NullBackend) BeginFrame() error {
	return nil
}

func (b *NullBackend) Draw(data *RenderData, model math.Mat4, view math.Mat4, projection math.Mat4) {
	b.mutex.Lock()
	defer b.mutex.Unlock()
	b.DrawCalls++
}

func (b *NullBackend) EndFrame() error {
	b.mutex.Lock()
	defer b.mutex.Unlock()
	b.Frames++
	return nil
}

func (b *NullBackend) Resized(width, height uint32) {}

func (b *NullBackend) Shutdown() {
	b.mutex.Lock()
	defer b.mutex.Unlock()
	b.alive = map[uint64]*nullAllocation{}
}

// AliveAllocations reports how many render data objects have not been
// destroyed.
func (b *NullBackend) AliveAllocations() int {
	b.mutex.Lock()
	defer b.mutex.Unlock()
	return len(b.alive)
}

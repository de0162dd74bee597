package scene

import (
	"fmt"

	"github.com/google/uuid"

	"github.com/atelier3d/atelier/engine/math"
	"github.com/atelier3d/atelier/engine/renderer"
	"github.com/atelier3d/atelier/engine/resources"
)

// PrimitiveInstance pairs one primitive of a loaded mesh with its uploaded
// render data.
type PrimitiveInstance struct {
	PrimitiveIndex int
	RenderData     *renderer.RenderData
	Material       *resources.LoadedMaterial
}

/**
 * @brief An instance of a loaded mesh placed in a scene. The mesh payload
 * stays in the resource tables; the instance owns only its render data and
 * transform, so many instances can share one handle.
 */
type StaticMesh struct {
	Name      string
	Handle    resources.MeshHandle
	Transform *math.Transform

	primitives []PrimitiveInstance
}

// NewStaticMesh uploads every primitive of the mesh behind handle to the
// backend. The handle must already be integrated into the tables; a missing
// handle is a programming error and panics inside the lookup. An empty name
// gets a generated one.
func NewStaticMesh(backend renderer.Backend, name string, handle resources.MeshHandle, tables *resources.Tables) (*StaticMesh, error) {
	mesh := tables.Mesh(handle)

	if name == "" {
		name = fmt.Sprintf("%s-%s", mesh.Name, uuid.NewString()[:8])
	}

	primitives, err := uploadPrimitives(backend, mesh, renderer.BufferUsageStatic)
	if err != nil {
		return nil, fmt.Errorf("static mesh %q: %w", name, err)
	}

	return &StaticMesh{
		Name:       name,
		Handle:     handle,
		Transform:  math.TransformCreate(),
		primitives: primitives,
	}, nil
}

// ModelMatrix returns the instance's local-to-world matrix.
func (s *StaticMesh) ModelMatrix() math.Mat4 {
	return s.Transform.GetLocal()
}

func (s *StaticMesh) Primitives() []PrimitiveInstance {
	return s.primitives
}

// Render issues one draw per primitive.
func (s *StaticMesh) Render(backend renderer.Backend, view, projection math.Mat4) {
	model := s.ModelMatrix()
	for _, p := range s.primitives {
		backend.Draw(p.RenderData, model, view, projection)
	}
}

// Destroy releases the instance's render data. The mesh payload in the
// tables is untouched.
func (s *StaticMesh) Destroy(backend renderer.Backend) {
	for _, p := range s.primitives {
		backend.DestroyRenderData(p.RenderData)
	}
	s.primitives = nil
}

/**
 * @brief Like StaticMesh, but uploaded with dynamic usage so vertex streams
 * can be rewritten in place (procedural geometry, editor gizmos).
 */
type DynamicMesh struct {
	Name      string
	Handle    resources.MeshHandle
	Transform *math.Transform

	primitives []PrimitiveInstance
}

func NewDynamicMesh(backend renderer.Backend, name string, handle resources.MeshHandle, tables *resources.Tables) (*DynamicMesh, error) {
	mesh := tables.Mesh(handle)

	if name == "" {
		name = fmt.Sprintf("%s-%s", mesh.Name, uuid.NewString()[:8])
	}

	primitives, err := uploadPrimitives(backend, mesh, renderer.BufferUsageDynamic)
	if err != nil {
		return nil, fmt.Errorf("dynamic mesh %q: %w", name, err)
	}

	return &DynamicMesh{
		Name:       name,
		Handle:     handle,
		Transform:  math.TransformCreate(),
		primitives: primitives,
	}, nil
}

// UpdateVertices re-interleaves new vertex streams into the primitive's
// existing buffer. The streams must produce the same layout the primitive
// was created with.
func (d *DynamicMesh) UpdateVertices(backend renderer.Backend, primitiveIndex int, vd *resources.VertexData) error {
	if primitiveIndex < 0 || primitiveIndex >= len(d.primitives) {
		return fmt.Errorf("dynamic mesh %q: primitive index %d out of range", d.Name, primitiveIndex)
	}

	layouts := renderer.DetermineLayouts(vd)
	stride, err := renderer.CalculateStride(layouts)
	if err != nil {
		return fmt.Errorf("dynamic mesh %q: %w", d.Name, err)
	}

	prim := d.primitives[primitiveIndex]
	if stride != prim.RenderData.Stride {
		return fmt.Errorf("dynamic mesh %q: new stride %d does not match original %d", d.Name, stride, prim.RenderData.Stride)
	}

	vertices, err := renderer.InterleaveVertexData(vd)
	if err != nil {
		return fmt.Errorf("dynamic mesh %q: %w", d.Name, err)
	}

	return backend.UpdateVertices(prim.RenderData, vertices)
}

func (d *DynamicMesh) ModelMatrix() math.Mat4 {
	return d.Transform.GetLocal()
}

func (d *DynamicMesh) Primitives() []PrimitiveInstance {
	return d.primitives
}

func (d *DynamicMesh) Render(backend renderer.Backend, view, projection math.Mat4) {
	model := d.ModelMatrix()
	for _, p := range d.primitives {
		backend.Draw(p.RenderData, model, view, projection)
	}
}

func (d *DynamicMesh) Destroy(backend renderer.Backend) {
	for _, p := range d.primitives {
		backend.DestroyRenderData(p.RenderData)
	}
	d.primitives = nil
}

// uploadPrimitives derives the layout of every primitive, interleaves its
// streams and uploads the result. Any failure unwinds the uploads done so
// far, so a mesh is either fully resident or not at all.
func uploadPrimitives(backend renderer.Backend, mesh *resources.LoadedMesh, usage renderer.BufferUsage) ([]PrimitiveInstance, error) {
	instances := make([]PrimitiveInstance, 0, len(mesh.Primitives))

	for i := range mesh.Primitives {
		prim := &mesh.Primitives[i]

		layouts := renderer.DetermineLayouts(&prim.VertexData)
		stride, err := renderer.CalculateStride(layouts)
		if err != nil {
			destroyInstances(backend, instances)
			return nil, fmt.Errorf("primitive %d: %w", i, err)
		}

		vertices, err := renderer.InterleaveVertexData(&prim.VertexData)
		if err != nil {
			destroyInstances(backend, instances)
			return nil, fmt.Errorf("primitive %d: %w", i, err)
		}

		data, err := backend.CreateRenderData(vertices, prim.Indices, stride, layouts, usage)
		if err != nil {
			destroyInstances(backend, instances)
			return nil, fmt.Errorf("primitive %d: %w", i, err)
		}

		instances = append(instances, PrimitiveInstance{
			PrimitiveIndex: i,
			RenderData:     data,
			Material:       prim.Material,
		})
	}

	return instances, nil
}

func destroyInstances(backend renderer.Backend, instances []PrimitiveInstance) {
	for _, inst := range instances {
		backend.DestroyRenderData(inst.RenderData)
	}
}

package renderer

import (
	"errors"
	"fmt"

	"github.com/atelier3d/atelier/engine/resources"
)

// ComponentType identifies the scalar type of a vertex attribute.
type ComponentType uint8

const (
	ComponentTypeFloat ComponentType = iota
	ComponentTypeUnsignedShort
)

// Size returns the byte size of one component.
func (c ComponentType) Size() int32 {
	switch c {
	case ComponentTypeFloat:
		return 4
	case ComponentTypeUnsignedShort:
		return 2
	default:
		return 0
	}
}

func (c ComponentType) String() string {
	switch c {
	case ComponentTypeFloat:
		return "float"
	case ComponentTypeUnsignedShort:
		return "ushort"
	default:
		return "unknown"
	}
}

// Layout describes one vertex attribute inside an interleaved buffer.
type Layout struct {
	// Index is the attribute slot the shader binds to.
	Index uint32
	// Size is the number of components (e.g. 3 for a position).
	Size int32
	Type ComponentType
	// Normalized marks integer attributes that map to 0..1 floats.
	Normalized bool
	// Offset is the attribute's byte offset within one vertex.
	Offset int32
}

// DetermineLayouts derives the attribute layout for a set of vertex streams.
// Attribute slots are assigned in a fixed order so the same streams always
// produce the same layout: position, normal, tangent, texcoord sets, color
// sets, joints, weights. Absent streams are skipped without leaving gaps in
// the slot numbering.
func DetermineLayouts(vd *resources.VertexData) []Layout {
	var layouts []Layout
	var index uint32
	var offset int32

	add := func(size int32, componentType ComponentType, normalized bool) {
		layouts = append(layouts, Layout{
			Index:      index,
			Size:       size,
			Type:       componentType,
			Normalized: normalized,
			Offset:     offset,
		})
		index++
		offset += size * componentType.Size()
	}

	if len(vd.Positions) > 0 {
		add(3, ComponentTypeFloat, false)
	}
	if len(vd.Normals) > 0 {
		add(3, ComponentTypeFloat, false)
	}
	if len(vd.Tangents) > 0 {
		add(4, ComponentTypeFloat, false)
	}
	for range vd.Texcoords {
		add(2, ComponentTypeFloat, false)
	}
	for _, set := range vd.Colors {
		add(int32(set.Components), ComponentTypeFloat, false)
	}
	if len(vd.Joints) > 0 {
		add(4, ComponentTypeUnsignedShort, false)
	}
	if len(vd.Weights) > 0 {
		add(4, ComponentTypeFloat, false)
	}

	return layouts
}

// CalculateStride returns the byte size of one interleaved vertex.
func CalculateStride(layouts []Layout) (int32, error) {
	if len(layouts) == 0 {
		return 0, errors.New("cannot calculate stride of an empty layout")
	}

	var stride int32
	for _, l := range layouts {
		stride += l.Size * l.Type.Size()
	}
	return stride, nil
}

// InterleaveVertexData packs the separate attribute streams into a single
// interleaved float buffer matching the layout DetermineLayouts derives.
// Skinned vertex data cannot be expressed as pure floats; interleaving data
// with joints or weights returns an error instead of producing a buffer with
// mixed component types.
func InterleaveVertexData(vd *resources.VertexData) ([]float32, error) {
	if len(vd.Joints) > 0 || len(vd.Weights) > 0 {
		return nil, errors.New("interleaving skinned vertex data (joints/weights) is not implemented")
	}

	vertexCount := vd.VertexCount()
	if vertexCount == 0 {
		return nil, errors.New("vertex data has no positions")
	}

	var floatsPerVertex int
	floatsPerVertex += 3
	if len(vd.Normals) > 0 {
		floatsPerVertex += 3
	}
	if len(vd.Tangents) > 0 {
		floatsPerVertex += 4
	}
	floatsPerVertex += 2 * len(vd.Texcoords)
	for _, set := range vd.Colors {
		floatsPerVertex += set.Components
	}

	out := make([]float32, 0, vertexCount*floatsPerVertex)
	for i := 0; i < vertexCount; i++ {
		out = append(out, vd.Positions[i][:]...)
		if len(vd.Normals) > 0 {
			out = append(out, vd.Normals[i][:]...)
		}
		if len(vd.Tangents) > 0 {
			out = append(out, vd.Tangents[i][:]...)
		}
		for _, uvs := range vd.Texcoords {
			out = append(out, uvs[i][:]...)
		}
		for _, set := range vd.Colors {
			out = append(out, set.Value(i)...)
		}
	}

	if len(out) != vertexCount*floatsPerVertex {
		return nil, fmt.Errorf("interleave produced %d floats, expected %d", len(out), vertexCount*floatsPerVertex)
	}

	return out, nil
}

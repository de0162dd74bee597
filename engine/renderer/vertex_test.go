package renderer

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/atelier3d/atelier/engine/resources"
)

func fullVertexData() *resources.VertexData {
	return &resources.VertexData{
		Positions: [][3]float32{{0, 0, 0}, {1, 0, 0}},
		Normals:   [][3]float32{{0, 1, 0}, {0, 1, 0}},
		Tangents:  [][4]float32{{1, 0, 0, 1}, {1, 0, 0, 1}},
		Texcoords: [][][2]float32{
			{{0, 0}, {1, 0}},
			{{0.5, 0.5}, {0.25, 0.25}},
		},
		Colors: []resources.ColorSet{
			{Components: 4, Values: []float32{1, 0, 0, 1, 0, 1, 0, 1}},
		},
	}
}

func TestDetermineLayoutsFixedOrder(t *testing.T) {
	layouts := DetermineLayouts(fullVertexData())
	require.Len(t, layouts, 6)

	// position, normal, tangent, texcoord0, texcoord1, color0
	sizes := []int32{3, 3, 4, 2, 2, 4}
	offset := int32(0)
	for i, l := range layouts {
		assert.Equal(t, uint32(i), l.Index)
		assert.Equal(t, sizes[i], l.Size)
		assert.Equal(t, ComponentTypeFloat, l.Type)
		assert.Equal(t, offset, l.Offset)
		offset += l.Size * 4
	}
}

func TestDetermineLayoutsSkipsAbsentStreams(t *testing.T) {
	vd := &resources.VertexData{
		Positions: [][3]float32{{0, 0, 0}},
		Texcoords: [][][2]float32{{{0, 0}}},
	}
	layouts := DetermineLayouts(vd)
	require.Len(t, layouts, 2)

	assert.Equal(t, uint32(0), layouts[0].Index)
	assert.Equal(t, int32(3), layouts[0].Size)
	assert.Equal(t, uint32(1), layouts[1].Index)
	assert.Equal(t, int32(2), layouts[1].Size)
	assert.Equal(t, int32(12), layouts[1].Offset)
}

func TestDetermineLayoutsIsDeterministic(t *testing.T) {
	vd := fullVertexData()
	assert.Equal(t, DetermineLayouts(vd), DetermineLayouts(vd))
}

func TestDetermineLayoutsSkinnedTypes(t *testing.T) {
	vd := &resources.VertexData{
		Positions: [][3]float32{{0, 0, 0}},
		Joints:    [][4]uint16{{0, 1, 2, 3}},
		Weights:   [][4]float32{{0.25, 0.25, 0.25, 0.25}},
	}
	layouts := DetermineLayouts(vd)
	require.Len(t, layouts, 3)

	assert.Equal(t, ComponentTypeUnsignedShort, layouts[1].Type)
	assert.Equal(t, int32(4), layouts[1].Size)
	assert.Equal(t, ComponentTypeFloat, layouts[2].Type)
	// joints occupy 4*2 bytes between the position and the weights
	assert.Equal(t, int32(20), layouts[2].Offset)
}

func TestCalculateStride(t *testing.T) {
	// positions + texcoord + RGB color: 8 floats per vertex
	vd := &resources.VertexData{
		Positions: [][3]float32{{0, 0, 0}},
		Texcoords: [][][2]float32{{{0, 0}}},
		Colors: []resources.ColorSet{
			{Components: 3, Values: []float32{1, 1, 1}},
		},
	}
	stride, err := CalculateStride(DetermineLayouts(vd))
	require.NoError(t, err)
	assert.Equal(t, int32(8*4), stride)

	// positions only: 3 floats per vertex
	vd = &resources.VertexData{Positions: [][3]float32{{0, 0, 0}}}
	stride, err = CalculateStride(DetermineLayouts(vd))
	require.NoError(t, err)
	assert.Equal(t, int32(3*4), stride)
}

func TestCalculateStrideEmptyLayout(t *testing.T) {
	_, err := CalculateStride(nil)
	assert.Error(t, err)
}

func TestInterleaveVertexData(t *testing.T) {
	vd := fullVertexData()
	layouts := DetermineLayouts(vd)
	stride, err := CalculateStride(layouts)
	require.NoError(t, err)

	out, err := InterleaveVertexData(vd)
	require.NoError(t, err)

	floatsPerVertex := int(stride / 4)
	assert.Len(t, out, vd.VertexCount()*floatsPerVertex)

	// Vertex 1: position, normal, tangent, uv0, uv1, color.
	v1 := out[floatsPerVertex:]
	assert.Equal(t, []float32{1, 0, 0}, v1[0:3])
	assert.Equal(t, []float32{0, 1, 0}, v1[3:6])
	assert.Equal(t, []float32{1, 0, 0, 1}, v1[6:10])
	assert.Equal(t, []float32{1, 0}, v1[10:12])
	assert.Equal(t, []float32{0.25, 0.25}, v1[12:14])
	assert.Equal(t, []float32{0, 1, 0, 1}, v1[14:18])
}

func TestInterleaveVertexDataPositionsOnly(t *testing.T) {
	vd := &resources.VertexData{
		Positions: [][3]float32{{1, 2, 3}, {4, 5, 6}},
	}
	out, err := InterleaveVertexData(vd)
	require.NoError(t, err)
	assert.Equal(t, []float32{1, 2, 3, 4, 5, 6}, out)
}

func TestInterleaveVertexDataRefusesSkinning(t *testing.T) {
	vd := &resources.VertexData{
		Positions: [][3]float32{{0, 0, 0}},
		Joints:    [][4]uint16{{0, 0, 0, 0}},
	}
	_, err := InterleaveVertexData(vd)
	assert.Error(t, err)

	vd = &resources.VertexData{
		Positions: [][3]float32{{0, 0, 0}},
		Weights:   [][4]float32{{1, 0, 0, 0}},
	}
	_, err = InterleaveVertexData(vd)
	assert.Error(t, err)
}

func TestInterleaveVertexDataNoPositions(t *testing.T) {
	_, err := InterleaveVertexData(&resources.VertexData{})
	assert.Error(t, err)
}

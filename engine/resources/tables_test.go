package resources

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestTablesIntegrateAndLookup(t *testing.T) {
	registry := NewHandleRegistry()
	tables := NewTables()

	texHandle := registry.Next(AssetKindTexture)
	tex := &LoadedTexture{Name: "bricks", Width: 4, Height: 4, Pixels: make([]uint8, 64)}
	tables.Integrate(texHandle, NewTextureAsset(tex))

	meshHandle := registry.Next(AssetKindMesh)
	mesh := &LoadedMesh{Name: "cube"}
	tables.Integrate(meshHandle, NewMeshAsset(mesh))

	th, ok := texHandle.AsTexture()
	require.True(t, ok)
	assert.Same(t, tex, tables.Texture(th))
	assert.True(t, tables.HasTexture(th))

	mh, ok := meshHandle.AsMesh()
	require.True(t, ok)
	assert.Same(t, mesh, tables.Mesh(mh))
	assert.True(t, tables.HasMesh(mh))

	assert.Equal(t, []MeshHandle{mh}, tables.MeshHandles())
	assert.Equal(t, []TextureHandle{th}, tables.TextureHandles())
}

func TestTablesLookupMissingHandlePanics(t *testing.T) {
	tables := NewTables()

	assert.Panics(t, func() { tables.Texture(TextureHandle(99)) })
	assert.Panics(t, func() { tables.Mesh(MeshHandle(99)) })
	assert.Panics(t, func() { tables.Material(MaterialHandle(99)) })
	assert.Panics(t, func() { tables.Shader(ShaderHandle(99)) })
}

func TestTablesIntegrateKindMismatchDrops(t *testing.T) {
	registry := NewHandleRegistry()
	tables := NewTables()

	// A mesh handle carrying a texture payload must not land anywhere.
	handle := registry.Next(AssetKindMesh)
	tables.Integrate(handle, NewTextureAsset(&LoadedTexture{Name: "oops"}))

	mh, _ := handle.AsMesh()
	assert.False(t, tables.HasMesh(mh))
	assert.False(t, tables.HasTexture(TextureHandle(handle.ID)))
}

func TestTablesIntegrateOverwrites(t *testing.T) {
	registry := NewHandleRegistry()
	tables := NewTables()

	handle := registry.Next(AssetKindMesh)
	first := &LoadedMesh{Name: "v1"}
	second := &LoadedMesh{Name: "v2"}
	tables.Integrate(handle, NewMeshAsset(first))
	tables.Integrate(handle, NewMeshAsset(second))

	mh, _ := handle.AsMesh()
	assert.Same(t, second, tables.Mesh(mh))
}

func TestAssetUnion(t *testing.T) {
	mesh := &LoadedMesh{Name: "cube"}
	a := NewMeshAsset(mesh)

	assert.Equal(t, AssetKindMesh, a.Kind())
	assert.Equal(t, "cube", a.Name())

	got, ok := a.AsMesh()
	assert.True(t, ok)
	assert.Same(t, mesh, got)

	_, ok = a.AsTexture()
	assert.False(t, ok)
}

func TestColorSetValue(t *testing.T) {
	set := ColorSet{
		Components: 3,
		Values:     []float32{1, 0, 0, 0, 1, 0},
	}
	assert.Equal(t, []float32{1, 0, 0}, set.Value(0))
	assert.Equal(t, []float32{0, 1, 0}, set.Value(1))
}

func TestVertexDataVertexCount(t *testing.T) {
	vd := VertexData{Positions: [][3]float32{{0, 0, 0}, {1, 0, 0}, {0, 1, 0}}}
	assert.Equal(t, 3, vd.VertexCount())
	assert.Equal(t, 0, (&VertexData{}).VertexCount())
}

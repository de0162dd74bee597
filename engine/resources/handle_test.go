package resources

import (
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestHandleRegistryUniqueness(t *testing.T) {
	registry := NewHandleRegistry()

	const n = 200
	seen := map[uint64]bool{}
	for i := 0; i < n; i++ {
		kind := AssetKind(i % 4)
		h := registry.Next(kind)
		assert.Equal(t, kind, h.Kind)
		assert.False(t, seen[h.ID], "handle ID %d minted twice", h.ID)
		seen[h.ID] = true
	}
	assert.Equal(t, uint64(n), registry.Issued())
}

func TestHandleRegistryConcurrentMinting(t *testing.T) {
	registry := NewHandleRegistry()

	const workers = 8
	const perWorker = 25

	var wg sync.WaitGroup
	results := make(chan AssetHandle, workers*perWorker)
	for w := 0; w < workers; w++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for i := 0; i < perWorker; i++ {
				results <- registry.Next(AssetKindMesh)
			}
		}()
	}
	wg.Wait()
	close(results)

	seen := map[uint64]bool{}
	for h := range results {
		require.False(t, seen[h.ID], "handle ID %d minted twice", h.ID)
		seen[h.ID] = true
	}
	assert.Len(t, seen, workers*perWorker)
}

func TestAssetHandleKindConversions(t *testing.T) {
	registry := NewHandleRegistry()

	h := registry.Next(AssetKindTexture)
	tex, ok := h.AsTexture()
	assert.True(t, ok)
	assert.Equal(t, TextureHandle(h.ID), tex)

	_, ok = h.AsMesh()
	assert.False(t, ok)
	_, ok = h.AsMaterial()
	assert.False(t, ok)
	_, ok = h.AsShader()
	assert.False(t, ok)

	m := registry.Next(AssetKindMesh)
	mesh, ok := m.AsMesh()
	assert.True(t, ok)
	assert.Equal(t, MeshHandle(m.ID), mesh)
}

func TestAssetKindString(t *testing.T) {
	assert.Equal(t, "texture", AssetKindTexture.String())
	assert.Equal(t, "mesh", AssetKindMesh.String())
	assert.Equal(t, "material", AssetKindMaterial.String())
	assert.Equal(t, "shader", AssetKindShader.String())
	assert.Equal(t, "unknown", AssetKind(42).String())
}

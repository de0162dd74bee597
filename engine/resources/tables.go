package resources

import (
	"fmt"

	"github.com/atelier3d/atelier/engine/core"
)

// Tables owns every decoded asset payload, keyed by handle. It is populated
// by draining the asset loader's result queue and is only ever touched from
// the main goroutine, so it needs no locking. Scene instances borrow payloads
// by handle lookup and never hold direct references across frames.
type Tables struct {
	textures  map[TextureHandle]*LoadedTexture
	meshes    map[MeshHandle]*LoadedMesh
	materials map[MaterialHandle]*LoadedMaterial
	shaders   map[ShaderHandle]*CompiledShaderProgram
}

func NewTables() *Tables {
	return &Tables{
		textures:  make(map[TextureHandle]*LoadedTexture),
		meshes:    make(map[MeshHandle]*LoadedMesh),
		materials: make(map[MaterialHandle]*LoadedMaterial),
		shaders:   make(map[ShaderHandle]*CompiledShaderProgram),
	}
}

// Integrate inserts or overwrites the mapping for the handle's kind. A
// mismatch between the handle kind and the asset payload is a logic error in
// the loader and is dropped with an error log.
func (t *Tables) Integrate(handle AssetHandle, asset Asset) {
	switch handle.Kind {
	case AssetKindTexture:
		if tex, ok := asset.AsTexture(); ok {
			t.textures[TextureHandle(handle.ID)] = tex
			return
		}
	case AssetKindMesh:
		if mesh, ok := asset.AsMesh(); ok {
			t.meshes[MeshHandle(handle.ID)] = mesh
			return
		}
	case AssetKindMaterial:
		if mat, ok := asset.AsMaterial(); ok {
			t.materials[MaterialHandle(handle.ID)] = mat
			return
		}
	case AssetKindShader:
		if sh, ok := asset.AsShader(); ok {
			t.shaders[ShaderHandle(handle.ID)] = sh
			return
		}
	}
	core.LogError("resource tables: handle kind %s does not match asset kind %s, dropping", handle.Kind, asset.Kind())
}

// Texture returns the payload for a texture handle. Looking up a handle that
// was never integrated is a caller bug, not a runtime condition: handles are
// only minted by the registry and always resolve once their load completes.
func (t *Tables) Texture(handle TextureHandle) *LoadedTexture {
	tex, ok := t.textures[handle]
	if !ok {
		panic(fmt.Sprintf("resource tables: texture handle %d not found", handle))
	}
	return tex
}

// Mesh returns the payload for a mesh handle. Panics if the handle was never
// integrated.
func (t *Tables) Mesh(handle MeshHandle) *LoadedMesh {
	mesh, ok := t.meshes[handle]
	if !ok {
		panic(fmt.Sprintf("resource tables: mesh handle %d not found", handle))
	}
	return mesh
}

// Material returns the payload for a material handle. Panics if the handle
// was never integrated.
func (t *Tables) Material(handle MaterialHandle) *LoadedMaterial {
	mat, ok := t.materials[handle]
	if !ok {
		panic(fmt.Sprintf("resource tables: material handle %d not found", handle))
	}
	return mat
}

// Shader returns the payload for a shader handle. Panics if the handle was
// never integrated.
func (t *Tables) Shader(handle ShaderHandle) *CompiledShaderProgram {
	sh, ok := t.shaders[handle]
	if !ok {
		panic(fmt.Sprintf("resource tables: shader handle %d not found", handle))
	}
	return sh
}

// HasTexture reports whether a texture load has completed for the handle.
func (t *Tables) HasTexture(handle TextureHandle) bool {
	_, ok := t.textures[handle]
	return ok
}

// HasMesh reports whether a mesh load has completed for the handle.
func (t *Tables) HasMesh(handle MeshHandle) bool {
	_, ok := t.meshes[handle]
	return ok
}

// MeshHandles returns the handles of every integrated mesh, for the editor's
// selection lists.
func (t *Tables) MeshHandles() []MeshHandle {
	handles := make([]MeshHandle, 0, len(t.meshes))
	for h := range t.meshes {
		handles = append(handles, h)
	}
	return handles
}

// TextureHandles returns the handles of every integrated texture.
func (t *Tables) TextureHandles() []TextureHandle {
	handles := make([]TextureHandle, 0, len(t.textures))
	for h := range t.textures {
		handles = append(handles, h)
	}
	return handles
}

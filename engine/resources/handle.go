package resources

import "sync/atomic"

// AssetKind partitions handles and decoded payloads by asset class.
type AssetKind uint8

const (
	AssetKindTexture AssetKind = iota
	AssetKindMesh
	AssetKindMaterial
	AssetKindShader
)

func (k AssetKind) String() string {
	switch k {
	case AssetKindTexture:
		return "texture"
	case AssetKindMesh:
		return "mesh"
	case AssetKindMaterial:
		return "material"
	case AssetKindShader:
		return "shader"
	default:
		return "unknown"
	}
}

// Typed handles. A handle is an opaque lookup key into the resource tables;
// it carries no ownership. Equality is by value.
type (
	TextureHandle  uint64
	MeshHandle     uint64
	MaterialHandle uint64
	ShaderHandle   uint64
)

// AssetHandle is a kind-tagged handle, used where loads of different kinds
// flow through the same channel.
type AssetHandle struct {
	Kind AssetKind
	ID   uint64
}

func (h AssetHandle) AsTexture() (TextureHandle, bool) {
	if h.Kind != AssetKindTexture {
		return 0, false
	}
	return TextureHandle(h.ID), true
}

func (h AssetHandle) AsMesh() (MeshHandle, bool) {
	if h.Kind != AssetKindMesh {
		return 0, false
	}
	return MeshHandle(h.ID), true
}

func (h AssetHandle) AsMaterial() (MaterialHandle, bool) {
	if h.Kind != AssetKindMaterial {
		return 0, false
	}
	return MaterialHandle(h.ID), true
}

func (h AssetHandle) AsShader() (ShaderHandle, bool) {
	if h.Kind != AssetKindShader {
		return 0, false
	}
	return ShaderHandle(h.ID), true
}

// HandleRegistry mints process-unique handle IDs. A single counter is shared
// across all kinds, so IDs are unique across kinds as well as within one;
// per-kind uniqueness is the only guarantee callers may rely on. The counter
// is an atomic so any number of loader workers can mint concurrently.
type HandleRegistry struct {
	next atomic.Uint64
}

func NewHandleRegistry() *HandleRegistry {
	return &HandleRegistry{}
}

// Next returns a handle of the given kind that has never been returned before.
func (r *HandleRegistry) Next(kind AssetKind) AssetHandle {
	return AssetHandle{
		Kind: kind,
		ID:   r.next.Add(1) - 1,
	}
}

// Issued reports how many handles have been minted so far.
func (r *HandleRegistry) Issued() uint64 {
	return r.next.Load()
}

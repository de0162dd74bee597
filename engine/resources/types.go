package resources

// LoadRequest describes one pending load. It is created by the caller,
// consumed exactly once by the loader worker.
type LoadRequest struct {
	Kind AssetKind // AssetKindTexture or AssetKindMesh
	Path string
	Name string
}

/**
 * @brief A decoded texture: RGBA, 8 bits per channel, rows flipped so the
 * source image's top-left origin becomes bottom-left (graphics convention).
 */
type LoadedTexture struct {
	Name   string
	Path   string
	Width  uint32
	Height uint32
	Pixels []uint8
}

// ColorSet is one per-vertex color attribute set. Components is 3 (RGB) or
// 4 (RGBA); Values holds Components floats per vertex, normalized to 0..1
// regardless of the source bit depth.
type ColorSet struct {
	Components int
	Values     []float32
}

// Value returns the color components of vertex i.
func (c *ColorSet) Value(i int) []float32 {
	return c.Values[i*c.Components : (i+1)*c.Components]
}

// VertexData holds the attribute streams of one primitive. Positions are
// always present; every other stream is optional (nil when absent) and, when
// present, has exactly one entry per position.
type VertexData struct {
	Positions [][3]float32
	Normals   [][3]float32
	// Tangents carry handedness in the fourth component.
	Tangents  [][4]float32
	Texcoords [][][2]float32
	Colors    []ColorSet
	// Joints are 4 skinning joint indices per vertex.
	Joints [][4]uint16
	// Weights are 4 skinning weights per vertex, expected (not validated)
	// to sum to 1.
	Weights [][4]float32
}

// VertexCount returns the number of vertices (the length of Positions).
func (vd *VertexData) VertexCount() int {
	return len(vd.Positions)
}

// LoadedPrimitive is one drawable sub-part of a mesh with its own vertex
// streams, optional index buffer and optional material.
type LoadedPrimitive struct {
	VertexData VertexData
	Indices    []uint32
	Material   *LoadedMaterial
}

// LoadedMesh owns an ordered sequence of primitives (multi-material support).
type LoadedMesh struct {
	Name       string
	Path       string
	Primitives []LoadedPrimitive
}

// LoadedMaterial holds texture references as paths. Images embedded in model
// buffers are unsupported and resolve to an empty path.
type LoadedMaterial struct {
	Name                     string
	BaseColorTexture         string
	MetallicRoughnessTexture string
	NormalTexture            string
	OcclusionTexture         string
	EmissiveTexture          string

	BaseColorFactor [4]float32
	MetallicFactor  float32
	RoughnessFactor float32
	AlphaBlend      bool
	DoubleSided     bool
}

// CompiledShaderProgram is an opaque record of a program compiled by the
// graphics backend. Compilation itself happens outside the asset core.
type CompiledShaderProgram struct {
	Name         string
	VertexPath   string
	FragmentPath string
	ProgramID    uint32
}

// Asset is the tagged union of every decodable payload. Exactly one of the
// payload fields is set, matching Kind. Ownership moves from the loader
// worker through the result queue into the resource tables.
type Asset struct {
	kind     AssetKind
	texture  *LoadedTexture
	mesh     *LoadedMesh
	material *LoadedMaterial
	shader   *CompiledShaderProgram
}

func NewTextureAsset(t *LoadedTexture) Asset {
	return Asset{kind: AssetKindTexture, texture: t}
}

func NewMeshAsset(m *LoadedMesh) Asset {
	return Asset{kind: AssetKindMesh, mesh: m}
}

func NewMaterialAsset(m *LoadedMaterial) Asset {
	return Asset{kind: AssetKindMaterial, material: m}
}

func NewShaderAsset(s *CompiledShaderProgram) Asset {
	return Asset{kind: AssetKindShader, shader: s}
}

func (a Asset) Kind() AssetKind {
	return a.kind
}

func (a Asset) AsTexture() (*LoadedTexture, bool) {
	return a.texture, a.kind == AssetKindTexture && a.texture != nil
}

func (a Asset) AsMesh() (*LoadedMesh, bool) {
	return a.mesh, a.kind == AssetKindMesh && a.mesh != nil
}

func (a Asset) AsMaterial() (*LoadedMaterial, bool) {
	return a.material, a.kind == AssetKindMaterial && a.material != nil
}

func (a Asset) AsShader() (*CompiledShaderProgram, bool) {
	return a.shader, a.kind == AssetKindShader && a.shader != nil
}

// Name returns the display name of whichever payload is set.
func (a Asset) Name() string {
	switch a.kind {
	case AssetKindTexture:
		if a.texture != nil {
			return a.texture.Name
		}
	case AssetKindMesh:
		if a.mesh != nil {
			return a.mesh.Name
		}
	case AssetKindMaterial:
		if a.material != nil {
			return a.material.Name
		}
	case AssetKindShader:
		if a.shader != nil {
			return a.shader.Name
		}
	}
	return ""
}

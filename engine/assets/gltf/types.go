// Package gltf parses glTF 2.0 / GLB model containers into the editor's
// intermediate mesh representation. Only the subset of the format the editor
// consumes is modeled; encoding/json ignores the rest.
// Reference: https://registry.khronos.org/glTF/specs/2.0/glTF-2.0.html
package gltf

// document is the root of a glTF JSON document.
type document struct {
	Asset       asset        `json:"asset"`
	Meshes      []mesh       `json:"meshes,omitempty"`
	Accessors   []accessor   `json:"accessors,omitempty"`
	BufferViews []bufferView `json:"bufferViews,omitempty"`
	Buffers     []buffer     `json:"buffers,omitempty"`
	Materials   []material   `json:"materials,omitempty"`
	Textures    []texture    `json:"textures,omitempty"`
	Images      []imageDef   `json:"images,omitempty"`
}

type asset struct {
	Version    string `json:"version"`
	MinVersion string `json:"minVersion,omitempty"`
	Generator  string `json:"generator,omitempty"`
}

type mesh struct {
	Name       string      `json:"name,omitempty"`
	Primitives []primitive `json:"primitives"`
}

// primitive references its attribute streams by accessor index. Standard
// attribute keys: POSITION, NORMAL, TANGENT, TEXCOORD_n, COLOR_n, JOINTS_0,
// WEIGHTS_0.
type primitive struct {
	Attributes map[string]int `json:"attributes"`
	Indices    *int           `json:"indices,omitempty"`
	Material   *int           `json:"material,omitempty"`
	Mode       *int           `json:"mode,omitempty"`
}

const primitiveModeTriangles = 4

type accessor struct {
	BufferView    *int   `json:"bufferView,omitempty"`
	ByteOffset    int    `json:"byteOffset,omitempty"`
	ComponentType int    `json:"componentType"`
	Normalized    bool   `json:"normalized,omitempty"`
	Count         int    `json:"count"`
	Type          string `json:"type"`
	Sparse        *struct {
		Count int `json:"count"`
	} `json:"sparse,omitempty"`
}

// Component type constants from the glTF spec.
const (
	componentTypeByte          = 5120
	componentTypeUnsignedByte  = 5121
	componentTypeShort         = 5122
	componentTypeUnsignedShort = 5123
	componentTypeUnsignedInt   = 5125
	componentTypeFloat         = 5126
)

// Accessor element types.
const (
	accessorTypeScalar = "SCALAR"
	accessorTypeVec2   = "VEC2"
	accessorTypeVec3   = "VEC3"
	accessorTypeVec4   = "VEC4"
	accessorTypeMat2   = "MAT2"
	accessorTypeMat3   = "MAT3"
	accessorTypeMat4   = "MAT4"
)

type bufferView struct {
	Buffer     int  `json:"buffer"`
	ByteOffset int  `json:"byteOffset,omitempty"`
	ByteLength int  `json:"byteLength"`
	ByteStride *int `json:"byteStride,omitempty"`
}

type buffer struct {
	URI        string `json:"uri,omitempty"`
	ByteLength int    `json:"byteLength"`

	// Data holds the loaded bytes; populated during load, not part of JSON.
	Data []byte `json:"-"`
}

type material struct {
	Name                 string                `json:"name,omitempty"`
	PbrMetallicRoughness *pbrMetallicRoughness `json:"pbrMetallicRoughness,omitempty"`
	NormalTexture        *normalTextureInfo    `json:"normalTexture,omitempty"`
	OcclusionTexture     *occlusionTextureInfo `json:"occlusionTexture,omitempty"`
	EmissiveTexture      *textureInfo          `json:"emissiveTexture,omitempty"`
	AlphaMode            string                `json:"alphaMode,omitempty"`
	DoubleSided          bool                  `json:"doubleSided,omitempty"`
}

type pbrMetallicRoughness struct {
	BaseColorFactor          *[4]float32  `json:"baseColorFactor,omitempty"`
	BaseColorTexture         *textureInfo `json:"baseColorTexture,omitempty"`
	MetallicFactor           *float32     `json:"metallicFactor,omitempty"`
	RoughnessFactor          *float32     `json:"roughnessFactor,omitempty"`
	MetallicRoughnessTexture *textureInfo `json:"metallicRoughnessTexture,omitempty"`
}

type textureInfo struct {
	Index    int `json:"index"`
	TexCoord int `json:"texCoord,omitempty"`
}

type normalTextureInfo struct {
	textureInfo
	Scale *float32 `json:"scale,omitempty"`
}

type occlusionTextureInfo struct {
	textureInfo
	Strength *float32 `json:"strength,omitempty"`
}

type texture struct {
	Name    string `json:"name,omitempty"`
	Sampler *int   `json:"sampler,omitempty"`
	Source  *int   `json:"source,omitempty"`
}

// imageDef is a texture image source: either an external URI or a buffer
// view holding embedded bytes.
type imageDef struct {
	Name       string `json:"name,omitempty"`
	URI        string `json:"uri,omitempty"`
	MimeType   string `json:"mimeType,omitempty"`
	BufferView *int   `json:"bufferView,omitempty"`
}

// GLB container framing.
const (
	glbMagic     uint32 = 0x46546C67 // "glTF"
	glbVersion   uint32 = 2
	glbChunkJSON uint32 = 0x4E4F534A // "JSON"
	glbChunkBIN  uint32 = 0x004E4942 // "BIN\0"
)

type glbHeader struct {
	Magic   uint32
	Version uint32
	Length  uint32
}

type glbChunkHeader struct {
	ChunkLength uint32
	ChunkType   uint32
}

// componentTypeSize returns the byte size of a component type.
func componentTypeSize(componentType int) int {
	switch componentType {
	case componentTypeByte, componentTypeUnsignedByte:
		return 1
	case componentTypeShort, componentTypeUnsignedShort:
		return 2
	case componentTypeUnsignedInt, componentTypeFloat:
		return 4
	default:
		return 0
	}
}

// accessorTypeComponentCount returns the number of components per element.
func accessorTypeComponentCount(accessorType string) int {
	switch accessorType {
	case accessorTypeScalar:
		return 1
	case accessorTypeVec2:
		return 2
	case accessorTypeVec3:
		return 3
	case accessorTypeVec4:
		return 4
	case accessorTypeMat2:
		return 4
	case accessorTypeMat3:
		return 9
	case accessorTypeMat4:
		return 16
	default:
		return 0
	}
}

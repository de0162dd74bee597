package gltf

import (
	"bytes"
	"encoding/binary"
	"fmt"
	"path/filepath"

	"github.com/atelier3d/atelier/engine/core"
	"github.com/atelier3d/atelier/engine/resources"
)

// DecodeMesh parses a glTF/GLB file into a LoadedMesh: one LoadedPrimitive
// per primitive across every mesh in the container, in document order. Any
// buffer-read or parse failure fails the whole load; no partial mesh is
// returned.
func DecodeMesh(path string) (*resources.LoadedMesh, error) {
	p, err := parseFile(path)
	if err != nil {
		return nil, err
	}

	doc := p.document
	var primitives []resources.LoadedPrimitive

	for meshIdx := range doc.Meshes {
		m := &doc.Meshes[meshIdx]
		for primIdx := range m.Primitives {
			prim := &m.Primitives[primIdx]
			loaded, err := p.decodePrimitive(prim)
			if err != nil {
				return nil, fmt.Errorf("mesh %d primitive %d: %w", meshIdx, primIdx, err)
			}
			primitives = append(primitives, *loaded)
		}
	}

	return &resources.LoadedMesh{
		Name:       filepath.Base(path),
		Path:       path,
		Primitives: primitives,
	}, nil
}

func (p *parser) decodePrimitive(prim *primitive) (*resources.LoadedPrimitive, error) {
	if prim.Mode != nil && *prim.Mode != primitiveModeTriangles {
		return nil, fmt.Errorf("unsupported primitive mode: %d (only triangles supported)", *prim.Mode)
	}

	var vd resources.VertexData

	// Positions are mandatory; everything else is independently optional.
	posAccessor, ok := prim.Attributes["POSITION"]
	if !ok {
		return nil, fmt.Errorf("primitive has no POSITION attribute")
	}
	positions, err := p.readVec3Accessor(posAccessor)
	if err != nil {
		return nil, fmt.Errorf("read positions: %w", err)
	}
	if len(positions) == 0 {
		return nil, fmt.Errorf("primitive POSITION accessor is empty")
	}
	vd.Positions = positions
	vertexCount := len(positions)

	if accIdx, ok := prim.Attributes["NORMAL"]; ok {
		normals, err := p.readVec3Accessor(accIdx)
		if err != nil {
			return nil, fmt.Errorf("read normals: %w", err)
		}
		vd.Normals = normals
	}

	if accIdx, ok := prim.Attributes["TANGENT"]; ok {
		tangents, err := p.readVec4Accessor(accIdx)
		if err != nil {
			return nil, fmt.Errorf("read tangents: %w", err)
		}
		vd.Tangents = tangents
	}

	// Up to two texcoord sets, in index order.
	for set := 0; set < 2; set++ {
		accIdx, ok := prim.Attributes[fmt.Sprintf("TEXCOORD_%d", set)]
		if !ok {
			break
		}
		uvs, err := p.readVec2Accessor(accIdx)
		if err != nil {
			return nil, fmt.Errorf("read texcoord set %d: %w", set, err)
		}
		vd.Texcoords = append(vd.Texcoords, uvs)
	}

	if accIdx, ok := prim.Attributes["COLOR_0"]; ok {
		colors, err := p.readColorAccessor(accIdx)
		if err != nil {
			return nil, fmt.Errorf("read color set 0: %w", err)
		}
		if colors != nil {
			vd.Colors = append(vd.Colors, *colors)
		}
	}

	if accIdx, ok := prim.Attributes["JOINTS_0"]; ok {
		joints, err := p.readJointsAccessor(accIdx)
		if err != nil {
			return nil, fmt.Errorf("read joints: %w", err)
		}
		vd.Joints = joints
	}

	if accIdx, ok := prim.Attributes["WEIGHTS_0"]; ok {
		weights, err := p.readWeightsAccessor(accIdx)
		if err != nil {
			return nil, fmt.Errorf("read weights: %w", err)
		}
		vd.Weights = weights
	}

	if err := validateAttributeLengths(&vd, vertexCount); err != nil {
		return nil, err
	}

	var indices []uint32
	if prim.Indices != nil {
		indices, err = p.readIndicesAccessor(*prim.Indices)
		if err != nil {
			return nil, fmt.Errorf("read indices: %w", err)
		}
	}

	return &resources.LoadedPrimitive{
		VertexData: vd,
		Indices:    indices,
		Material:   p.extractMaterial(prim.Material),
	}, nil
}

// readColorAccessor reads a COLOR_n attribute: RGB or RGBA, stored as 8-bit
// normalized or float. Values come back normalized to 0..1 floats. 16-bit
// channels are not implemented; they are logged and skipped rather than
// silently dropped.
func (p *parser) readColorAccessor(accessorIndex int) (*resources.ColorSet, error) {
	acc, err := p.accessorAt(accessorIndex)
	if err != nil {
		return nil, err
	}

	var components int
	switch acc.Type {
	case accessorTypeVec3:
		components = 3
	case accessorTypeVec4:
		components = 4
	default:
		return nil, fmt.Errorf("color accessor is not VEC3/VEC4: type=%s", acc.Type)
	}

	if acc.ComponentType == componentTypeUnsignedShort {
		core.LogWarn("gltf: 16-bit vertex color channels are not implemented, skipping color set")
		return nil, nil
	}

	data, err := p.readAccessorBytes(accessorIndex)
	if err != nil {
		return nil, err
	}

	values := make([]float32, acc.Count*components)
	switch acc.ComponentType {
	case componentTypeUnsignedByte:
		for i := range values {
			values[i] = float32(data[i]) / 255.0
		}
	case componentTypeFloat:
		if err := readFloats(data, values); err != nil {
			return nil, err
		}
	default:
		return nil, fmt.Errorf("unsupported color component type: %d", acc.ComponentType)
	}

	return &resources.ColorSet{
		Components: components,
		Values:     values,
	}, nil
}

// extractMaterial resolves the primitive's material reference, or the glTF
// default material when it has none. Only file-path image sources are
// supported: buffer-embedded images resolve to no texture.
func (p *parser) extractMaterial(materialIndex *int) *resources.LoadedMaterial {
	loaded := &resources.LoadedMaterial{
		BaseColorFactor: [4]float32{1, 1, 1, 1},
		MetallicFactor:  1.0,
		RoughnessFactor: 1.0,
	}

	if materialIndex == nil || *materialIndex < 0 || *materialIndex >= len(p.document.Materials) {
		return loaded
	}
	mat := &p.document.Materials[*materialIndex]

	loaded.Name = mat.Name
	loaded.AlphaBlend = mat.AlphaMode == "BLEND"
	loaded.DoubleSided = mat.DoubleSided

	if pbr := mat.PbrMetallicRoughness; pbr != nil {
		if pbr.BaseColorFactor != nil {
			loaded.BaseColorFactor = *pbr.BaseColorFactor
		}
		if pbr.MetallicFactor != nil {
			loaded.MetallicFactor = *pbr.MetallicFactor
		}
		if pbr.RoughnessFactor != nil {
			loaded.RoughnessFactor = *pbr.RoughnessFactor
		}
		if pbr.BaseColorTexture != nil {
			loaded.BaseColorTexture = p.texturePath(pbr.BaseColorTexture.Index)
		}
		if pbr.MetallicRoughnessTexture != nil {
			loaded.MetallicRoughnessTexture = p.texturePath(pbr.MetallicRoughnessTexture.Index)
		}
	}

	if mat.NormalTexture != nil {
		loaded.NormalTexture = p.texturePath(mat.NormalTexture.Index)
	}
	if mat.OcclusionTexture != nil {
		loaded.OcclusionTexture = p.texturePath(mat.OcclusionTexture.Index)
	}
	if mat.EmissiveTexture != nil {
		loaded.EmissiveTexture = p.texturePath(mat.EmissiveTexture.Index)
	}

	return loaded
}

// texturePath resolves a texture index to its image's file path. Embedded
// (buffer view) images are unsupported and yield an empty path.
func (p *parser) texturePath(textureIndex int) string {
	if textureIndex < 0 || textureIndex >= len(p.document.Textures) {
		return ""
	}
	tex := &p.document.Textures[textureIndex]
	if tex.Source == nil || *tex.Source < 0 || *tex.Source >= len(p.document.Images) {
		return ""
	}
	img := &p.document.Images[*tex.Source]
	if img.URI == "" {
		// Image lives in a buffer view; not supported here.
		return ""
	}
	return img.URI
}

// validateAttributeLengths checks that every present optional stream has one
// entry per position.
func validateAttributeLengths(vd *resources.VertexData, vertexCount int) error {
	if vd.Normals != nil && len(vd.Normals) != vertexCount {
		return fmt.Errorf("normals count %d does not match position count %d", len(vd.Normals), vertexCount)
	}
	if vd.Tangents != nil && len(vd.Tangents) != vertexCount {
		return fmt.Errorf("tangents count %d does not match position count %d", len(vd.Tangents), vertexCount)
	}
	for i, uvs := range vd.Texcoords {
		if len(uvs) != vertexCount {
			return fmt.Errorf("texcoord set %d count %d does not match position count %d", i, len(uvs), vertexCount)
		}
	}
	for i, colors := range vd.Colors {
		if len(colors.Values) != vertexCount*colors.Components {
			return fmt.Errorf("color set %d count %d does not match position count %d", i, len(colors.Values)/colors.Components, vertexCount)
		}
	}
	if vd.Joints != nil && len(vd.Joints) != vertexCount {
		return fmt.Errorf("joints count %d does not match position count %d", len(vd.Joints), vertexCount)
	}
	if vd.Weights != nil && len(vd.Weights) != vertexCount {
		return fmt.Errorf("weights count %d does not match position count %d", len(vd.Weights), vertexCount)
	}
	return nil
}

// readFloats decodes little-endian float32 values out of raw accessor bytes.
func readFloats(data []byte, out []float32) error {
	if len(data) < len(out)*4 {
		return fmt.Errorf("float data too short: %d bytes for %d values", len(data), len(out))
	}
	return binary.Read(bytes.NewReader(data), binary.LittleEndian, out)
}

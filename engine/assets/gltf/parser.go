package gltf

import (
	"bytes"
	"encoding/base64"
	"encoding/binary"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
)

// Common errors returned by the parser.
var (
	errInvalidVersion     = errors.New("invalid glTF version: must be 2.0")
	errInvalidGLBMagic    = errors.New("invalid GLB magic number")
	errInvalidGLBVersion  = errors.New("invalid GLB version: must be 2")
	errMissingJSONChunk   = errors.New("GLB file missing JSON chunk")
	errInvalidBufferURI   = errors.New("invalid buffer URI")
	errBufferSizeMismatch = errors.New("buffer size mismatch")
)

// parser loads a glTF/GLB file and answers typed accessor reads against it.
// Buffer URIs are resolved relative to the model file's own directory, never
// the process working directory.
type parser struct {
	baseDir        string
	document       *document
	glbBinaryChunk []byte
}

// parseFile loads and parses a glTF or GLB file, detecting the format from
// the extension or the GLB magic number.
func parseFile(path string) (*parser, error) {
	p := &parser{baseDir: filepath.Dir(path)}

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read model file: %w", err)
	}

	ext := strings.ToLower(filepath.Ext(path))
	if ext == ".glb" || (len(data) >= 4 && binary.LittleEndian.Uint32(data[:4]) == glbMagic) {
		if err := p.parseGLB(data); err != nil {
			return nil, err
		}
		return p, nil
	}

	if err := p.parseGLTF(data); err != nil {
		return nil, err
	}
	return p, nil
}

// unmarshalDocument decodes the JSON document and validates the version.
func unmarshalDocument(data []byte, doc *document) error {
	if err := json.Unmarshal(data, doc); err != nil {
		return fmt.Errorf("parse glTF JSON: %w", err)
	}
	if !strings.HasPrefix(doc.Asset.Version, "2.") {
		return errInvalidVersion
	}
	return nil
}

// parseGLTF parses a glTF JSON document and resolves its buffers.
func (p *parser) parseGLTF(data []byte) error {
	var doc document
	if err := unmarshalDocument(data, &doc); err != nil {
		return err
	}

	if err := p.loadBuffers(&doc); err != nil {
		return fmt.Errorf("load buffers: %w", err)
	}

	p.document = &doc
	return nil
}

// parseGLB parses the binary container framing and then the embedded JSON.
func (p *parser) parseGLB(data []byte) error {
	if len(data) < 12 {
		return errors.New("GLB file too small")
	}

	r := bytes.NewReader(data)

	var header glbHeader
	if err := binary.Read(r, binary.LittleEndian, &header); err != nil {
		return fmt.Errorf("read GLB header: %w", err)
	}

	if header.Magic != glbMagic {
		return errInvalidGLBMagic
	}
	if header.Version != glbVersion {
		return errInvalidGLBVersion
	}

	var jsonData []byte
	var binData []byte

	for {
		var chunkHeader glbChunkHeader
		if err := binary.Read(r, binary.LittleEndian, &chunkHeader); err != nil {
			if err == io.EOF {
				break
			}
			return fmt.Errorf("read chunk header: %w", err)
		}

		// The declared length comes straight from the file; never allocate
		// more than the bytes actually left in the container.
		if int64(chunkHeader.ChunkLength) > int64(r.Len()) {
			return fmt.Errorf("chunk length %d exceeds remaining %d bytes", chunkHeader.ChunkLength, r.Len())
		}
		chunkData := make([]byte, chunkHeader.ChunkLength)
		if _, err := io.ReadFull(r, chunkData); err != nil {
			return fmt.Errorf("read chunk data: %w", err)
		}

		switch chunkHeader.ChunkType {
		case glbChunkJSON:
			jsonData = chunkData
		case glbChunkBIN:
			binData = chunkData
		}
	}

	if jsonData == nil {
		return errMissingJSONChunk
	}

	p.glbBinaryChunk = binData

	var doc document
	if err := unmarshalDocument(jsonData, &doc); err != nil {
		return err
	}

	if err := p.loadBuffers(&doc); err != nil {
		return fmt.Errorf("load buffers: %w", err)
	}

	p.document = &doc
	return nil
}

// loadBuffers resolves every buffer source: the inline GLB binary chunk,
// base64 data URIs, or sibling files relative to the model's directory.
func (p *parser) loadBuffers(doc *document) error {
	for i := range doc.Buffers {
		buf := &doc.Buffers[i]

		if buf.URI == "" {
			if i == 0 && p.glbBinaryChunk != nil {
				buf.Data = p.glbBinaryChunk
				if len(buf.Data) < buf.ByteLength {
					return fmt.Errorf("buffer %d: %w", i, errBufferSizeMismatch)
				}
				continue
			}
			return fmt.Errorf("buffer %d has no URI and no GLB binary chunk", i)
		}

		data, err := p.loadBufferURI(buf.URI)
		if err != nil {
			return fmt.Errorf("buffer %d: %w", i, err)
		}
		buf.Data = data

		if len(buf.Data) < buf.ByteLength {
			return fmt.Errorf("buffer %d: %w", i, errBufferSizeMismatch)
		}
	}

	return nil
}

func (p *parser) loadBufferURI(uri string) ([]byte, error) {
	if strings.HasPrefix(uri, "data:") {
		return loadDataURI(uri)
	}

	fullPath := filepath.Join(p.baseDir, uri)
	data, err := os.ReadFile(fullPath)
	if err != nil {
		return nil, fmt.Errorf("load buffer file %q: %w", uri, err)
	}

	return data, nil
}

// loadDataURI decodes a base64 data URI.
// Format: data:[<mediatype>][;base64],<data>
func loadDataURI(uri string) ([]byte, error) {
	commaIdx := strings.Index(uri, ",")
	if commaIdx < 0 {
		return nil, errInvalidBufferURI
	}

	header := uri[5:commaIdx]
	dataStr := uri[commaIdx+1:]

	if !strings.Contains(header, "base64") {
		return nil, fmt.Errorf("unsupported data URI encoding: %s", header)
	}

	data, err := base64.StdEncoding.DecodeString(dataStr)
	if err != nil {
		return nil, fmt.Errorf("decode base64: %w", err)
	}

	return data, nil
}

// --- Accessor reads ---

// accessorAt bounds-checks and returns the accessor at the given index.
func (p *parser) accessorAt(accessorIndex int) (*accessor, error) {
	if p.document == nil {
		return nil, errors.New("no document loaded")
	}
	if accessorIndex < 0 || accessorIndex >= len(p.document.Accessors) {
		return nil, fmt.Errorf("accessor index %d out of range", accessorIndex)
	}
	return &p.document.Accessors[accessorIndex], nil
}

// readAccessorBytes copies an accessor's elements, tightly packed, out of its
// (possibly interleaved) buffer view.
func (p *parser) readAccessorBytes(accessorIndex int) ([]byte, error) {
	acc, err := p.accessorAt(accessorIndex)
	if err != nil {
		return nil, err
	}

	if acc.Sparse != nil {
		return nil, errors.New("sparse accessors not supported")
	}
	if acc.BufferView == nil {
		return nil, errors.New("accessor has no bufferView")
	}

	bv := &p.document.BufferViews[*acc.BufferView]
	buf := &p.document.Buffers[bv.Buffer]

	componentSize := componentTypeSize(acc.ComponentType)
	componentCount := accessorTypeComponentCount(acc.Type)
	elementSize := componentSize * componentCount
	if elementSize == 0 {
		return nil, fmt.Errorf("unsupported accessor: type=%s componentType=%d", acc.Type, acc.ComponentType)
	}

	stride := elementSize
	if bv.ByteStride != nil && *bv.ByteStride > 0 {
		stride = *bv.ByteStride
	}

	bufferOffset := bv.ByteOffset + acc.ByteOffset
	if need := bufferOffset + (acc.Count-1)*stride + elementSize; acc.Count > 0 && need > len(buf.Data) {
		return nil, fmt.Errorf("accessor %d overruns buffer: need %d bytes, have %d", accessorIndex, need, len(buf.Data))
	}

	result := make([]byte, acc.Count*elementSize)
	for i := 0; i < acc.Count; i++ {
		srcOffset := bufferOffset + i*stride
		dstOffset := i * elementSize
		copy(result[dstOffset:dstOffset+elementSize], buf.Data[srcOffset:srcOffset+elementSize])
	}

	return result, nil
}

func (p *parser) readVec2Accessor(accessorIndex int) ([][2]float32, error) {
	acc, err := p.accessorAt(accessorIndex)
	if err != nil {
		return nil, err
	}
	if acc.Type != accessorTypeVec2 || acc.ComponentType != componentTypeFloat {
		return nil, fmt.Errorf("accessor is not VEC2 FLOAT: type=%s, componentType=%d", acc.Type, acc.ComponentType)
	}

	data, err := p.readAccessorBytes(accessorIndex)
	if err != nil {
		return nil, err
	}

	result := make([][2]float32, acc.Count)
	if err := binary.Read(bytes.NewReader(data), binary.LittleEndian, result); err != nil {
		return nil, err
	}
	return result, nil
}

func (p *parser) readVec3Accessor(accessorIndex int) ([][3]float32, error) {
	acc, err := p.accessorAt(accessorIndex)
	if err != nil {
		return nil, err
	}
	if acc.Type != accessorTypeVec3 || acc.ComponentType != componentTypeFloat {
		return nil, fmt.Errorf("accessor is not VEC3 FLOAT: type=%s, componentType=%d", acc.Type, acc.ComponentType)
	}

	data, err := p.readAccessorBytes(accessorIndex)
	if err != nil {
		return nil, err
	}

	result := make([][3]float32, acc.Count)
	if err := binary.Read(bytes.NewReader(data), binary.LittleEndian, result); err != nil {
		return nil, err
	}
	return result, nil
}

func (p *parser) readVec4Accessor(accessorIndex int) ([][4]float32, error) {
	acc, err := p.accessorAt(accessorIndex)
	if err != nil {
		return nil, err
	}
	if acc.Type != accessorTypeVec4 || acc.ComponentType != componentTypeFloat {
		return nil, fmt.Errorf("accessor is not VEC4 FLOAT: type=%s, componentType=%d", acc.Type, acc.ComponentType)
	}

	data, err := p.readAccessorBytes(accessorIndex)
	if err != nil {
		return nil, err
	}

	result := make([][4]float32, acc.Count)
	if err := binary.Read(bytes.NewReader(data), binary.LittleEndian, result); err != nil {
		return nil, err
	}
	return result, nil
}

// readIndicesAccessor reads index data, widening UNSIGNED_BYTE and
// UNSIGNED_SHORT to uint32.
func (p *parser) readIndicesAccessor(accessorIndex int) ([]uint32, error) {
	acc, err := p.accessorAt(accessorIndex)
	if err != nil {
		return nil, err
	}
	if acc.Type != accessorTypeScalar {
		return nil, fmt.Errorf("index accessor is not SCALAR: type=%s", acc.Type)
	}

	data, err := p.readAccessorBytes(accessorIndex)
	if err != nil {
		return nil, err
	}

	result := make([]uint32, acc.Count)
	r := bytes.NewReader(data)

	switch acc.ComponentType {
	case componentTypeUnsignedByte:
		for i := 0; i < acc.Count; i++ {
			var v uint8
			if err := binary.Read(r, binary.LittleEndian, &v); err != nil {
				return nil, err
			}
			result[i] = uint32(v)
		}
	case componentTypeUnsignedShort:
		for i := 0; i < acc.Count; i++ {
			var v uint16
			if err := binary.Read(r, binary.LittleEndian, &v); err != nil {
				return nil, err
			}
			result[i] = uint32(v)
		}
	case componentTypeUnsignedInt:
		if err := binary.Read(r, binary.LittleEndian, result); err != nil {
			return nil, err
		}
	default:
		return nil, fmt.Errorf("unsupported index component type: %d", acc.ComponentType)
	}

	return result, nil
}

// readJointsAccessor reads joint indices as 4 uint16 per vertex, widening
// UNSIGNED_BYTE sources.
func (p *parser) readJointsAccessor(accessorIndex int) ([][4]uint16, error) {
	acc, err := p.accessorAt(accessorIndex)
	if err != nil {
		return nil, err
	}
	if acc.Type != accessorTypeVec4 {
		return nil, fmt.Errorf("joints accessor is not VEC4: type=%s", acc.Type)
	}

	data, err := p.readAccessorBytes(accessorIndex)
	if err != nil {
		return nil, err
	}

	result := make([][4]uint16, acc.Count)
	r := bytes.NewReader(data)

	switch acc.ComponentType {
	case componentTypeUnsignedByte:
		for i := 0; i < acc.Count; i++ {
			var v [4]uint8
			if err := binary.Read(r, binary.LittleEndian, &v); err != nil {
				return nil, err
			}
			result[i] = [4]uint16{uint16(v[0]), uint16(v[1]), uint16(v[2]), uint16(v[3])}
		}
	case componentTypeUnsignedShort:
		if err := binary.Read(r, binary.LittleEndian, result); err != nil {
			return nil, err
		}
	default:
		return nil, fmt.Errorf("unsupported joints component type: %d", acc.ComponentType)
	}

	return result, nil
}

// readWeightsAccessor reads skinning weights as 4 floats per vertex,
// normalizing UNSIGNED_BYTE and UNSIGNED_SHORT sources to 0..1.
func (p *parser) readWeightsAccessor(accessorIndex int) ([][4]float32, error) {
	acc, err := p.accessorAt(accessorIndex)
	if err != nil {
		return nil, err
	}
	if acc.Type != accessorTypeVec4 {
		return nil, fmt.Errorf("weights accessor is not VEC4: type=%s", acc.Type)
	}

	data, err := p.readAccessorBytes(accessorIndex)
	if err != nil {
		return nil, err
	}

	result := make([][4]float32, acc.Count)
	r := bytes.NewReader(data)

	switch acc.ComponentType {
	case componentTypeFloat:
		if err := binary.Read(r, binary.LittleEndian, result); err != nil {
			return nil, err
		}
	case componentTypeUnsignedByte:
		for i := 0; i < acc.Count; i++ {
			var v [4]uint8
			if err := binary.Read(r, binary.LittleEndian, &v); err != nil {
				return nil, err
			}
			for j := 0; j < 4; j++ {
				result[i][j] = float32(v[j]) / 255.0
			}
		}
	case componentTypeUnsignedShort:
		for i := 0; i < acc.Count; i++ {
			var v [4]uint16
			if err := binary.Read(r, binary.LittleEndian, &v); err != nil {
				return nil, err
			}
			for j := 0; j < 4; j++ {
				result[i][j] = float32(v[j]) / 65535.0
			}
		}
	default:
		return nil, fmt.Errorf("unsupported weights component type: %d", acc.ComponentType)
	}

	return result, nil
}

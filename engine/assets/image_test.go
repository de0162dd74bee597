package assets

import (
	"image"
	"image/color"
	"image/png"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// writeTestPNG writes a 2x2 image with a red top-left pixel and a blue
// bottom-left pixel; the rest is opaque white.
func writeTestPNG(t *testing.T, path string) {
	t.Helper()

	img := image.NewNRGBA(image.Rect(0, 0, 2, 2))
	for y := 0; y < 2; y++ {
		for x := 0; x < 2; x++ {
			img.SetNRGBA(x, y, color.NRGBA{255, 255, 255, 255})
		}
	}
	img.SetNRGBA(0, 0, color.NRGBA{255, 0, 0, 255})
	img.SetNRGBA(0, 1, color.NRGBA{0, 0, 255, 255})

	f, err := os.Create(path)
	require.NoError(t, err)
	defer f.Close()
	require.NoError(t, png.Encode(f, img))
}

func TestDecodeTexture(t *testing.T) {
	path := filepath.Join(t.TempDir(), "test.png")
	writeTestPNG(t, path)

	tex, err := DecodeTexture(path, "checker")
	require.NoError(t, err)

	assert.Equal(t, "checker", tex.Name)
	assert.Equal(t, path, tex.Path)
	assert.Equal(t, uint32(2), tex.Width)
	assert.Equal(t, uint32(2), tex.Height)
	assert.Len(t, tex.Pixels, 2*2*4)

	// Rows are flipped: the source's bottom-left blue pixel is now row 0.
	assert.Equal(t, []uint8{0, 0, 255, 255}, tex.Pixels[0:4])
	// The source's top-left red pixel is now row 1.
	assert.Equal(t, []uint8{255, 0, 0, 255}, tex.Pixels[8:12])
}

// writeTestTGA writes the same 2x2 image as writeTestPNG as an uncompressed
// 24-bit true-color TGA with a top-left origin.
func writeTestTGA(t *testing.T, path string) {
	t.Helper()

	header := []byte{
		0, 0, 2, // no image ID, no color map, uncompressed true-color
		0, 0, 0, 0, 0, // color map spec, unused
		0, 0, 0, 0, // origin
		2, 0, 2, 0, // width 2, height 2
		24, 0x20, // 24 bpp, top-left origin
	}
	pixels := []byte{
		0, 0, 255, 255, 255, 255, // row 0: red, white (BGR)
		255, 0, 0, 255, 255, 255, // row 1: blue, white
	}
	require.NoError(t, os.WriteFile(path, append(header, pixels...), 0o644))
}

// TGA carries no magic bytes, so it cannot go through content sniffing; the
// decoder dispatches on extension and must handle it alongside the rest.
func TestDecodeTextureTGA(t *testing.T) {
	path := filepath.Join(t.TempDir(), "test.tga")
	writeTestTGA(t, path)

	tex, err := DecodeTexture(path, "checker")
	require.NoError(t, err)

	assert.Equal(t, uint32(2), tex.Width)
	assert.Equal(t, uint32(2), tex.Height)
	assert.Equal(t, []uint8{0, 0, 255, 255}, tex.Pixels[0:4])
	assert.Equal(t, []uint8{255, 0, 0, 255}, tex.Pixels[8:12])
}

func TestDecodeTextureUnsupportedExtension(t *testing.T) {
	path := filepath.Join(t.TempDir(), "model.xyz")
	require.NoError(t, os.WriteFile(path, []byte("whatever"), 0o644))

	_, err := DecodeTexture(path, "x")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "unsupported image format")
}

func TestDecodeTextureMissingFile(t *testing.T) {
	_, err := DecodeTexture(filepath.Join(t.TempDir(), "nope.png"), "x")
	assert.Error(t, err)
}

func TestDecodeTextureCorruptFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "bad.png")
	require.NoError(t, os.WriteFile(path, []byte("not an image"), 0o644))

	_, err := DecodeTexture(path, "x")
	assert.Error(t, err)
}

func TestWritePreviewRoundTrip(t *testing.T) {
	dir := t.TempDir()
	src := filepath.Join(dir, "src.png")
	writeTestPNG(t, src)

	tex, err := DecodeTexture(src, "preview")
	require.NoError(t, err)

	out := filepath.Join(dir, "preview.webp")
	require.NoError(t, WritePreview(tex, out))

	info, err := os.Stat(out)
	require.NoError(t, err)
	assert.Greater(t, info.Size(), int64(0))

	// The encoding is lossless, so decoding the preview reproduces the
	// source texture exactly.
	decoded, err := DecodeTexture(out, "roundtrip")
	require.NoError(t, err)
	assert.Equal(t, tex.Pixels, decoded.Pixels)
}

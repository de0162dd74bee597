package assets

import (
	"fmt"
	"image"
	"image/draw"
	"image/gif"
	"image/jpeg"
	"image/png"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/ftrvxmtrx/tga"
	"golang.org/x/image/bmp"
	"golang.org/x/image/tiff"
	"golang.org/x/image/webp"

	"github.com/atelier3d/atelier/engine/resources"
)

// DecodeTexture reads and decodes an image file into a LoadedTexture:
// 4-channel 8-bit pixels, rows flipped vertically so the source's top-left
// origin ends up bottom-left.
func DecodeTexture(path, name string) (*resources.LoadedTexture, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open image %s: %w", path, err)
	}
	defer f.Close()

	img, err := decodeImage(f, path)
	if err != nil {
		return nil, fmt.Errorf("decode image %s: %w", path, err)
	}

	nrgba := toNRGBA(img)
	flipVertical(nrgba)

	bounds := nrgba.Bounds()
	return &resources.LoadedTexture{
		Name:   name,
		Path:   path,
		Width:  uint32(bounds.Dx()),
		Height: uint32(bounds.Dy()),
		Pixels: nrgba.Pix,
	}, nil
}

// decodeImage dispatches on the file extension. TGA files carry no magic
// bytes, so the usual image.RegisterFormat sniffing cannot tell them apart
// from anything else; every supported format gets an explicit decoder
// instead.
func decodeImage(r io.Reader, path string) (image.Image, error) {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".png":
		return png.Decode(r)
	case ".jpg", ".jpeg":
		return jpeg.Decode(r)
	case ".gif":
		return gif.Decode(r)
	case ".tga":
		return tga.Decode(r)
	case ".bmp":
		return bmp.Decode(r)
	case ".tif", ".tiff":
		return tiff.Decode(r)
	case ".webp":
		return webp.Decode(r)
	default:
		return nil, fmt.Errorf("unsupported image format %q", filepath.Ext(path))
	}
}

// toNRGBA converts any decoded image to the fixed RGBA8 layout.
func toNRGBA(src image.Image) *image.NRGBA {
	if n, ok := src.(*image.NRGBA); ok && n.Bounds().Min == image.Pt(0, 0) {
		return n
	}
	b := src.Bounds()
	dst := image.NewNRGBA(image.Rect(0, 0, b.Dx(), b.Dy()))
	draw.Draw(dst, dst.Bounds(), src, b.Min, draw.Src)
	return dst
}

// flipVertical reverses the row order in place.
func flipVertical(img *image.NRGBA) {
	height := img.Bounds().Dy()
	rowLen := img.Stride
	tmp := make([]uint8, rowLen)
	for y := 0; y < height/2; y++ {
		top := img.Pix[y*rowLen : (y+1)*rowLen]
		bottom := img.Pix[(height-1-y)*rowLen : (height-y)*rowLen]
		copy(tmp, top)
		copy(top, bottom)
		copy(bottom, tmp)
	}
}

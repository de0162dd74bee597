package assets

import (
	"fmt"
	"image"
	"os"

	"github.com/HugoSmits86/nativewebp"

	"github.com/atelier3d/atelier/engine/resources"
)

// WritePreview encodes a decoded texture back to a lossless webp file, used
// by the editor's asset browser for thumbnails. The pixel rows are unflipped
// so the preview matches the source image orientation.
func WritePreview(tex *resources.LoadedTexture, path string) error {
	if tex.Width == 0 || tex.Height == 0 {
		return fmt.Errorf("preview: texture %q has no pixels", tex.Name)
	}

	img := image.NewNRGBA(image.Rect(0, 0, int(tex.Width), int(tex.Height)))
	rowLen := int(tex.Width) * 4
	for y := 0; y < int(tex.Height); y++ {
		src := tex.Pixels[y*rowLen : (y+1)*rowLen]
		dst := img.Pix[(int(tex.Height)-1-y)*img.Stride:]
		copy(dst[:rowLen], src)
	}

	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("preview: create %s: %w", path, err)
	}
	defer f.Close()

	if err := nativewebp.Encode(f, img, nil); err != nil {
		return fmt.Errorf("preview: encode %s: %w", path, err)
	}
	return nil
}

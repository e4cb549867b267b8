package canvasfx

import (
	"fmt"
	"image"
	_ "image/gif"
	_ "image/jpeg"
	_ "image/png"
	"io/fs"

	_ "golang.org/x/image/bmp"
	_ "golang.org/x/image/webp"
)

// LoadImage decodes the named image from fsys. PNG, JPEG, GIF, BMP and
// WebP are supported. Errors are returned to the host; nothing is mounted.
func LoadImage(fsys fs.FS, name string) (image.Image, error) {
	f, err := fsys.Open(name)
	if err != nil {
		return nil, fmt.Errorf("load image %s: %w", name, err)
	}
	defer f.Close()

	img, format, err := image.Decode(f)
	if err != nil {
		return nil, fmt.Errorf("decode image %s: %w", name, err)
	}
	b := img.Bounds()
	Logger().Debug("image loaded", "name", name, "format", format, "width", b.Dx(), "height", b.Dy())
	return img, nil
}

// DecodeConfig reads only the header of the named image, so callers can
// check a pixel budget before decoding the whole file.
func DecodeConfig(fsys fs.FS, name string) (image.Config, error) {
	f, err := fsys.Open(name)
	if err != nil {
		return image.Config{}, fmt.Errorf("load image %s: %w", name, err)
	}
	defer f.Close()

	cfg, _, err := image.DecodeConfig(f)
	if err != nil {
		return image.Config{}, fmt.Errorf("decode image config %s: %w", name, err)
	}
	return cfg, nil
}

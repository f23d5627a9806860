package imaging

import (
	"fmt"
	"image"
	"image/draw"
	_ "image/gif"
	_ "image/jpeg"
	_ "image/png"
	"io"
	"os"

	xdraw "golang.org/x/image/draw"
	_ "golang.org/x/image/webp"
)

// Decode reads any registered image format (PNG, JPEG, GIF, WebP).
func Decode(r io.Reader) (image.Image, string, error) {
	img, format, err := image.Decode(r)
	if err != nil {
		return nil, "", fmt.Errorf("error decoding image: %w", err)
	}
	return img, format, nil
}

// Load decodes the image at path and fits it to a size×size RGBA grid.
func Load(path string, size int) (*image.RGBA, error) {
	file, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("error opening image: %w", err)
	}
	defer file.Close()

	img, _, err := Decode(file)
	if err != nil {
		return nil, err
	}
	return Fit(img, size), nil
}

// Fit produces a size×size RGBA image from src. When the shorter side of src
// is at least size, the central size×size window is copied unscaled;
// otherwise the central square of src is scaled up to size×size.
func Fit(src image.Image, size int) *image.RGBA {
	dst := image.NewRGBA(image.Rect(0, 0, size, size))
	b := src.Bounds()
	w, h := b.Dx(), b.Dy()
	side := min(w, h)

	if side >= size {
		origin := image.Point{
			X: b.Min.X + (w-size)/2,
			Y: b.Min.Y + (h-size)/2,
		}
		draw.Draw(dst, dst.Bounds(), src, origin, draw.Src)
		return dst
	}

	crop := image.Rect(0, 0, side, side).Add(image.Point{
		X: b.Min.X + (w-side)/2,
		Y: b.Min.Y + (h-side)/2,
	})
	xdraw.CatmullRom.Scale(dst, dst.Bounds(), src, crop, xdraw.Src, nil)
	return dst
}

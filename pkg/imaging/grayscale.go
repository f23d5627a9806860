// Package imaging converts input pictures into the square luminance grids the
// transform engine consumes.
package imaging

import (
	"errors"
	"fmt"
	"image"
)

// ITU-R BT.601 luma weights
const (
	weightR = 0.299
	weightG = 0.587
	weightB = 0.114
)

// ErrBufferSize is returned when a pixel buffer does not hold exactly n×n RGBA pixels
var ErrBufferSize = errors.New("imaging: pixel buffer size mismatch")

// Luminance converts an n×n RGBA pixel buffer (4 bytes per pixel, row-major)
// to a single-channel luminance grid. Alpha is ignored.
func Luminance(rgba []byte, n int) ([]float64, error) {
	if n <= 0 || len(rgba) != n*n*4 {
		return nil, fmt.Errorf("%w: got %d bytes, expected %d for %dx%d", ErrBufferSize, len(rgba), n*n*4, n, n)
	}

	gray := make([]float64, n*n)
	for i := range gray {
		p := rgba[i*4 : i*4+3]
		gray[i] = weightR*float64(p[0]) + weightG*float64(p[1]) + weightB*float64(p[2])
	}
	return gray, nil
}

// LuminanceImage converts a square RGBA image, honouring its stride.
func LuminanceImage(img *image.RGBA) ([]float64, error) {
	b := img.Bounds()
	if b.Dx() != b.Dy() {
		return nil, fmt.Errorf("%w: image is %dx%d, expected a square", ErrBufferSize, b.Dx(), b.Dy())
	}

	n := b.Dx()
	packed := make([]byte, 0, n*n*4)
	for y := 0; y < n; y++ {
		off := img.PixOffset(b.Min.X, b.Min.Y+y)
		packed = append(packed, img.Pix[off:off+n*4]...)
	}
	return Luminance(packed, n)
}

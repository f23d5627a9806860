package visualization

import (
	"errors"
	"image"
	"math"
)

// ErrSizeMismatch is returned when the spectrum and mask grids disagree.
var ErrSizeMismatch = errors.New("visualization: spectrum and mask sizes differ")

// Display is an N×N grayscale display buffer stored as opaque RGBA.
type Display struct {
	// Size is the grid dimension
	Size int

	// Pixels holds 4 bytes per cell (R=G=B=value, A=255), row-major
	Pixels []byte

	// Min and Max are the value range that was stretched to 0..255
	Min, Max float64

	// Degenerate is set when the range was empty and the output zero-filled
	Degenerate bool
}

func newDisplay(size int) *Display {
	d := &Display{Size: size, Pixels: make([]byte, size*size*4)}
	for i := 3; i < len(d.Pixels); i += 4 {
		d.Pixels[i] = 255
	}
	return d
}

// Gray returns the display value at (x, y).
func (d *Display) Gray(x, y int) uint8 {
	return d.Pixels[(y*d.Size+x)*4]
}

// Image wraps the pixels as an *image.RGBA without copying.
func (d *Display) Image() *image.RGBA {
	return &image.RGBA{
		Pix:    d.Pixels,
		Stride: d.Size * 4,
		Rect:   image.Rect(0, 0, d.Size, d.Size),
	}
}

func (d *Display) set(i int, norm float64) {
	v := toByte(norm)
	p := d.Pixels[i*4 : i*4+3]
	p[0], p[1], p[2] = v, v, v
}

// toByte rounds and clamps like a browser's clamped pixel array.
func toByte(v float64) uint8 {
	if math.IsNaN(v) || v <= 0 {
		return 0
	}
	if v >= 255 {
		return 255
	}
	return uint8(math.RoundToEven(v))
}

// StretchMinMax maps each value to (v-min)/(max-min)*255. An empty or
// non-finite range yields an all-black display.
func StretchMinMax(values []float64, size int, minVal, maxVal float64) *Display {
	d := newDisplay(size)
	d.Min, d.Max = minVal, maxVal

	span := maxVal - minVal
	if !(span > 0) || math.IsInf(span, 0) {
		d.Degenerate = true
		return d
	}
	for i, v := range values {
		d.set(i, (v-minVal)/span*255)
	}
	return d
}

// StretchMax maps each value to v/max*255 without subtracting a minimum.
// A zero or non-finite max yields an all-black display.
func StretchMax(values []float64, size int, maxVal float64) *Display {
	d := newDisplay(size)
	d.Max = maxVal

	if !(maxVal > 0) || math.IsInf(maxVal, 0) {
		d.Degenerate = true
		return d
	}
	for i, v := range values {
		d.set(i, v/maxVal*255)
	}
	return d
}

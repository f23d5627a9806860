package fourier

import (
	"fmt"

	"github.com/cwbudde/algo-vecmath"
)

// Shift swaps the quadrants of a complex grid so that element (x, y) lands at
// ((x + w/2) mod w, (y + h/2) mod h). For even w and h the operation is its
// own inverse. The inputs are not modified.
func Shift(re, im []float64, w, h int) (outRe, outIm []float64, err error) {
	if w%2 != 0 || h%2 != 0 {
		return nil, nil, fmt.Errorf("%w: %dx%d", ErrOddDimension, w, h)
	}
	if err := validateLen("real", len(re), w*h); err != nil {
		return nil, nil, err
	}
	if err := validateLen("imag", len(im), w*h); err != nil {
		return nil, nil, err
	}

	outRe = make([]float64, w*h)
	outIm = make([]float64, w*h)
	halfW, halfH := w/2, h/2
	for y := 0; y < h; y++ {
		newY := (y + halfH) % h
		for x := 0; x < w; x++ {
			newX := (x + halfW) % w
			src := y*w + x
			dst := newY*w + newX
			outRe[dst] = re[src]
			outIm[dst] = im[src]
		}
	}
	return outRe, outIm, nil
}

// Unshift restores the transform's native quadrant layout. It is Shift,
// which is self-inverse for the even grids used here.
func Unshift(re, im []float64, w, h int) (outRe, outIm []float64, err error) {
	return Shift(re, im, w, h)
}

// Magnitude writes sqrt(re[i]^2 + im[i]^2) into dst. All slices must have the
// same length.
func Magnitude(dst, re, im []float64) {
	vecmath.Magnitude(dst, re, im)
}

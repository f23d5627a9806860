// Package visualization turns spectra, masks and reconstructions into
// displayable grayscale buffers and writes them to disk.
package visualization

import (
	"fmt"
	"math"

	"fourierlab/internal/models"
	"fourierlab/pkg/fourier"
	"fourierlab/pkg/mask"
)

// RenderSpectrum renders log(|X|+1)*mask for every cell and stretches the
// result between its minimum and maximum. Display.Max is the largest
// mask-weighted log magnitude.
func RenderSpectrum(s *models.Spectrum, m *mask.Mask) (*Display, error) {
	if s.Size != m.Size() {
		return nil, fmt.Errorf("%w: spectrum %d, mask %d", ErrSizeMismatch, s.Size, m.Size())
	}

	values := make([]float64, s.Size*s.Size)
	fourier.Magnitude(values, s.Real, s.Imag)

	weights := m.Values()
	minVal, maxVal := math.Inf(1), 0.0
	for i, mag := range values {
		v := math.Log(mag+1) * weights[i]
		values[i] = v
		if v > maxVal {
			maxVal = v
		}
		if v < minVal {
			minVal = v
		}
	}
	return StretchMinMax(values, s.Size, minVal, maxVal), nil
}

// Cache keeps the last spectrum display and reuses it while neither the
// spectrum nor the mask instance has changed, so cursor-only redraws do not
// recompute it.
type Cache struct {
	spectrum *models.Spectrum
	mask     *mask.Mask
	display  *Display
}

// Spectrum returns the cached display for (s, m), rendering it on a miss.
// The bool reports whether the cached value was reused.
func (c *Cache) Spectrum(s *models.Spectrum, m *mask.Mask) (*Display, bool, error) {
	if c.display != nil && c.spectrum == s && c.mask == m {
		return c.display, true, nil
	}
	d, err := RenderSpectrum(s, m)
	if err != nil {
		return nil, false, err
	}
	c.spectrum, c.mask, c.display = s, m, d
	return d, false, nil
}

// Invalidate drops the cached display.
func (c *Cache) Invalidate() {
	c.spectrum, c.mask, c.display = nil, nil, nil
}

// Package reconstruction turns a (spectrum, mask) pair back into an image.
//
// Pipeline is the pure numeric path: mask multiply, unshift, inverse
// transform, magnitude and a max-only stretch. Session keeps the interactive
// state (spectrum, current mask, stroke, selection) around a Pipeline, and
// Reconstructor runs the same path in batch over an image file.
package reconstruction

import (
	"errors"
	"fmt"
	"math"

	"fourierlab/internal/models"
	"fourierlab/pkg/fourier"
	"fourierlab/pkg/mask"
	"fourierlab/pkg/visualization"
)

var (
	// ErrNoImage is returned when an operation needs a spectrum before one was loaded.
	ErrNoImage = errors.New("reconstruction: no image loaded")

	// ErrSizeMismatch is returned when spectrum, mask and engine grids disagree.
	ErrSizeMismatch = errors.New("reconstruction: grid sizes differ")
)

// Pipeline reconstructs the spatial image seen through a mask.
type Pipeline struct {
	engine *fourier.Engine
}

// NewPipeline returns a pipeline driven by engine.
func NewPipeline(engine *fourier.Engine) *Pipeline {
	return &Pipeline{engine: engine}
}

// Engine returns the transform engine.
func (p *Pipeline) Engine() *fourier.Engine { return p.engine }

func (p *Pipeline) check(s *models.Spectrum, m *mask.Mask) error {
	if s == nil {
		return ErrNoImage
	}
	n := p.engine.Size()
	if m == nil {
		return fmt.Errorf("%w: no mask for a %d grid", ErrSizeMismatch, n)
	}
	if s.Size != n || m.Size() != n {
		return fmt.Errorf("%w: engine %d, spectrum %d, mask %d", ErrSizeMismatch, n, s.Size, m.Size())
	}
	return nil
}

// Reconstruct multiplies the spectrum by the mask, restores the native
// quadrant layout, inverse transforms and returns the stretched display
// together with the raw magnitudes. The spectrum is not modified.
func (p *Pipeline) Reconstruct(s *models.Spectrum, m *mask.Mask) (*visualization.Display, []float64, error) {
	if err := p.check(s, m); err != nil {
		return nil, nil, err
	}
	n := s.Size

	weights := m.Values()
	re := make([]float64, n*n)
	im := make([]float64, n*n)
	for i, w := range weights {
		re[i] = s.Real[i] * w
		im[i] = s.Imag[i] * w
	}

	re, im, err := fourier.Unshift(re, im, n, n)
	if err != nil {
		return nil, nil, err
	}
	re, im, err = p.engine.InverseComplex(re, im)
	if err != nil {
		return nil, nil, err
	}

	// re is reused as the magnitude buffer
	maxVal := 0.0
	for i := range re {
		v := math.Sqrt(re[i]*re[i] + im[i]*im[i])
		re[i] = v
		if v > maxVal {
			maxVal = v
		}
	}
	return visualization.StretchMax(re, n, maxVal), re, nil
}

// Stats returns the active percentage of m and the largest mask-weighted
// log magnitude of s.
func (p *Pipeline) Stats(s *models.Spectrum, m *mask.Mask) (models.Stats, error) {
	if err := p.check(s, m); err != nil {
		return models.Stats{}, err
	}

	mags := make([]float64, len(s.Real))
	fourier.Magnitude(mags, s.Real, s.Imag)

	weights := m.Values()
	maxVal := 0.0
	for i, mag := range mags {
		if v := math.Log(mag+1) * weights[i]; v > maxVal {
			maxVal = v
		}
	}
	return models.Stats{
		ActivePercentage: m.ActiveFraction(),
		MaxMagnitude:     maxVal,
	}, nil
}

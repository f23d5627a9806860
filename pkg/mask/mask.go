// Package mask holds the editable frequency mask and the operations that
// mutate it: brush stamps, interpolated strokes, the point inspector and the
// parametric preset filters.
//
// Every committed edit yields a new *Mask; callers compare pointers to decide
// whether derived views need recomputing.
package mask

import (
	"errors"
	"fmt"

	"gonum.org/v1/gonum/floats"
)

// ActiveThreshold is the value above which a mask cell counts as active.
const ActiveThreshold = 0.1

var (
	// ErrSizeMismatch is returned when values do not cover the size×size grid.
	ErrSizeMismatch = errors.New("mask: size mismatch")
	// ErrInvalidRadius is returned for brush or preset radii out of range.
	ErrInvalidRadius = errors.New("mask: invalid radius")
	// ErrInvalidStrength is returned for brush strengths out of range.
	ErrInvalidStrength = errors.New("mask: invalid strength")
)

// Mask is a per-cell weight over the transform grid. 1.0 passes a frequency
// through unchanged, 0.0 suppresses it.
type Mask struct {
	size   int
	values []float64
}

// New returns a size×size pass-through mask (all 1.0).
func New(size int) *Mask {
	m := &Mask{size: size, values: make([]float64, size*size)}
	m.Reset()
	return m
}

// FromValues wraps a copy of values as a mask.
func FromValues(size int, values []float64) (*Mask, error) {
	if size <= 0 || len(values) != size*size {
		return nil, fmt.Errorf("%w: %d values for a %dx%d grid", ErrSizeMismatch, len(values), size, size)
	}
	m := &Mask{size: size, values: make([]float64, len(values))}
	copy(m.values, values)
	return m, nil
}

// Size returns the grid dimension.
func (m *Mask) Size() int { return m.size }

// Values exposes the row-major weights. Callers must treat it as read-only.
func (m *Mask) Values() []float64 { return m.values }

// At returns the weight at (x, y).
func (m *Mask) At(x, y int) float64 { return m.values[y*m.size+x] }

// InBounds reports whether (x, y) lies inside the grid.
func (m *Mask) InBounds(x, y int) bool {
	return x >= 0 && x < m.size && y >= 0 && y < m.size
}

// Clone returns an independent copy.
func (m *Mask) Clone() *Mask {
	c := &Mask{size: m.size, values: make([]float64, len(m.values))}
	copy(c.values, m.values)
	return c
}

// Reset sets every cell back to 1.0 in place.
func (m *Mask) Reset() {
	for i := range m.values {
		m.values[i] = 1
	}
}

// ActiveFraction returns the percentage (0..100) of cells above ActiveThreshold.
func (m *Mask) ActiveFraction() float64 {
	if len(m.values) == 0 {
		return 0
	}
	active := floats.Count(func(v float64) bool { return v > ActiveThreshold }, m.values)
	return float64(active) / float64(len(m.values)) * 100
}

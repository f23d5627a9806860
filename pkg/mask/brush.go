package mask

import (
	"fmt"
	"math"
)

// Brush limits accepted from the tool configuration.
const (
	MinRadius   = 1
	MaxRadius   = 50
	MinStrength = 1.0
	MaxStrength = 5.0
)

// Brush describes the filled disk painted by the enhance and suppress tools.
type Brush struct {
	// Radius of the disk in grid cells
	Radius int
	// Strength is the weight written by the enhance tool
	Strength float64
}

// DefaultBrush returns the brush the tools start with.
func DefaultBrush() Brush {
	return Brush{Radius: 10, Strength: 2.0}
}

// Validate checks the brush against the configurable ranges.
func (b Brush) Validate() error {
	if b.Radius < MinRadius || b.Radius > MaxRadius {
		return fmt.Errorf("%w: brush radius %d not in [%d,%d]", ErrInvalidRadius, b.Radius, MinRadius, MaxRadius)
	}
	if math.IsNaN(b.Strength) || b.Strength < MinStrength || b.Strength > MaxStrength {
		return fmt.Errorf("%w: brush strength %g not in [%g,%g]", ErrInvalidStrength, b.Strength, MinStrength, MaxStrength)
	}
	return nil
}

// Stamp writes value into every in-bounds cell of the filled disk of the
// given radius around (floor(cx), floor(cy)). Cells already holding value are
// left alone; the return value reports whether any cell changed.
func (m *Mask) Stamp(cx, cy float64, radius int, value float64) bool {
	r2 := radius * radius
	modified := false
	for dy := -radius; dy <= radius; dy++ {
		for dx := -radius; dx <= radius; dx++ {
			if dx*dx+dy*dy > r2 {
				continue
			}
			nx := int(math.Floor(cx + float64(dx)))
			ny := int(math.Floor(cy + float64(dy)))
			if !m.InBounds(nx, ny) {
				continue
			}
			idx := ny*m.size + nx
			if m.values[idx] != value {
				m.values[idx] = value
				modified = true
			}
		}
	}
	return modified
}

// StampLine stamps along the segment from (x0, y0) to (x1, y1), one stamp per
// unit of length plus both endpoints, so consecutive stamps are never more
// than one cell apart.
func (m *Mask) StampLine(x0, y0, x1, y1 float64, radius int, value float64) bool {
	steps := int(math.Ceil(math.Hypot(x1-x0, y1-y0)))
	modified := false
	for i := 0; i <= steps; i++ {
		t := 0.0
		if steps > 0 {
			t = float64(i) / float64(steps)
		}
		if m.Stamp(x0+(x1-x0)*t, y0+(y1-y0)*t, radius, value) {
			modified = true
		}
	}
	return modified
}

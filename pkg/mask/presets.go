package mask

import (
	"fmt"
	"math"
	"strings"
)

// Falloff widths of the smooth preset edges, in grid cells.
const (
	passFalloff  = 20.0
	bandFalloff  = 15.0
	notchFeather = 10.0
	notchFalloff = 5.0
)

// Preset identifies one of the parametric mask generators.
type Preset int

const (
	PresetReset Preset = iota
	PresetLowPass
	PresetHighPass
	PresetBandPass
	PresetVerticalStripes
	PresetHorizontalStripes
)

var presetNames = map[Preset]string{
	PresetReset:             "reset",
	PresetLowPass:           "lowpass",
	PresetHighPass:          "highpass",
	PresetBandPass:          "bandpass",
	PresetVerticalStripes:   "vstripes",
	PresetHorizontalStripes: "hstripes",
}

func (p Preset) String() string {
	if name, ok := presetNames[p]; ok {
		return name
	}
	return fmt.Sprintf("preset(%d)", int(p))
}

// ParsePreset maps a preset name to its Preset.
func ParsePreset(name string) (Preset, error) {
	name = strings.ToLower(strings.TrimSpace(name))
	for p, n := range presetNames {
		if n == name {
			return p, nil
		}
	}
	return PresetReset, fmt.Errorf("unknown preset %q", name)
}

// PresetParams carries the numeric parameters of the presets, in grid units.
type PresetParams struct {
	LowPassRadius  float64
	HighPassRadius float64
	BandInner      float64
	BandOuter      float64
	StripeOffset   float64
	StripeRadius   float64
}

// DefaultPresetParams returns the parameters behind the preset buttons.
func DefaultPresetParams() PresetParams {
	return PresetParams{
		LowPassRadius:  100,
		HighPassRadius: 50,
		BandInner:      50,
		BandOuter:      150,
		StripeOffset:   30,
		StripeRadius:   20,
	}
}

// Apply runs preset p against the current mask m. Reset and the pass filters
// replace the mask; the stripe presets multiply into it.
func Apply(m *Mask, p Preset, params PresetParams) (*Mask, error) {
	switch p {
	case PresetReset:
		return New(m.Size()), nil
	case PresetLowPass:
		return LowPass(m.Size(), params.LowPassRadius)
	case PresetHighPass:
		return HighPass(m.Size(), params.HighPassRadius)
	case PresetBandPass:
		return BandPass(m.Size(), params.BandInner, params.BandOuter)
	case PresetVerticalStripes:
		return RemoveVerticalStripes(m, params.StripeOffset, params.StripeRadius)
	case PresetHorizontalStripes:
		return RemoveHorizontalStripes(m, params.StripeOffset, params.StripeRadius)
	}
	return nil, fmt.Errorf("mask: unsupported preset %v", p)
}

func checkRadius(name string, r float64) error {
	if math.IsNaN(r) || math.IsInf(r, 0) || r < 0 {
		return fmt.Errorf("%w: %s %g", ErrInvalidRadius, name, r)
	}
	return nil
}

// radial builds a mask whose value depends only on the distance to the grid
// center (size/2, size/2).
func radial(size int, f func(d float64) float64) *Mask {
	m := &Mask{size: size, values: make([]float64, size*size)}
	center := float64(size / 2)
	for y := 0; y < size; y++ {
		for x := 0; x < size; x++ {
			dx := float64(x) - center
			dy := float64(y) - center
			m.values[y*size+x] = f(math.Sqrt(dx*dx + dy*dy))
		}
	}
	return m
}

func falloff(diff, width float64) float64 {
	v := diff / width
	return math.Exp(-(v * v))
}

// LowPass keeps frequencies within radius of the center and rolls off
// smoothly outside it.
func LowPass(size int, radius float64) (*Mask, error) {
	if err := checkRadius("low-pass radius", radius); err != nil {
		return nil, err
	}
	return radial(size, func(d float64) float64 {
		if d <= radius {
			return 1
		}
		return falloff(d-radius, passFalloff)
	}), nil
}

// HighPass keeps frequencies at or beyond radius and rolls off towards DC.
func HighPass(size int, radius float64) (*Mask, error) {
	if err := checkRadius("high-pass radius", radius); err != nil {
		return nil, err
	}
	return radial(size, func(d float64) float64 {
		if d >= radius {
			return 1
		}
		return falloff(radius-d, passFalloff)
	}), nil
}

// BandPass keeps the ring inner <= d <= outer.
func BandPass(size int, inner, outer float64) (*Mask, error) {
	if err := checkRadius("band inner radius", inner); err != nil {
		return nil, err
	}
	if err := checkRadius("band outer radius", outer); err != nil {
		return nil, err
	}
	if inner > outer {
		return nil, fmt.Errorf("%w: band inner %g exceeds outer %g", ErrInvalidRadius, inner, outer)
	}
	return radial(size, func(d float64) float64 {
		switch {
		case d < inner:
			return falloff(inner-d, bandFalloff)
		case d > outer:
			return falloff(d-outer, bandFalloff)
		default:
			return 1
		}
	}), nil
}

// Notch returns a copy of m with the discs of radius around (x1, y1) and
// (x2, y2) zeroed and a feathered ring of notchFeather cells multiplied in
// around each disc. Cells outside both rings keep their value.
func (m *Mask) Notch(x1, y1, x2, y2, radius float64) (*Mask, error) {
	if err := checkRadius("notch radius", radius); err != nil {
		return nil, err
	}
	out := m.Clone()
	outer := radius + notchFeather
	for y := 0; y < m.size; y++ {
		for x := 0; x < m.size; x++ {
			fx, fy := float64(x), float64(y)
			d1 := math.Hypot(fx-x1, fy-y1)
			d2 := math.Hypot(fx-x2, fy-y2)
			idx := y*m.size + x

			switch {
			case d1 <= radius || d2 <= radius:
				out.values[idx] = 0
			case d1 <= outer:
				out.values[idx] *= falloff(outer-d1, notchFalloff)
			case d2 <= outer:
				out.values[idx] *= falloff(outer-d2, notchFalloff)
			}
		}
	}
	return out, nil
}

// RemoveVerticalStripes notches the pair of points offset vertically by
// ±offset from the center.
func RemoveVerticalStripes(m *Mask, offset, radius float64) (*Mask, error) {
	c := float64(m.size / 2)
	return m.Notch(c, c-offset, c, c+offset, radius)
}

// RemoveHorizontalStripes notches the pair of points offset horizontally by
// ±offset from the center.
func RemoveHorizontalStripes(m *Mask, offset, radius float64) (*Mask, error) {
	c := float64(m.size / 2)
	return m.Notch(c-offset, c, c+offset, c, radius)
}

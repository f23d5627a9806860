package models

import (
	"fmt"
	"strings"
)

// DefaultGridSize is the transform grid dimension used by the interactive tools.
const DefaultGridSize = 512

// Spectrum represents a shift-centered complex 2D spectrum (DC at Size/2, Size/2)
type Spectrum struct {
	// Real holds the real components in row-major order
	Real []float64

	// Imag holds the imaginary components in row-major order
	Imag []float64

	// Size is the width and height of the square grid
	Size int
}

// Index returns the row-major offset of grid cell (x, y)
func (s *Spectrum) Index(x, y int) int {
	return y*s.Size + x
}

// InBounds reports whether (x, y) lies inside the grid
func (s *Spectrum) InBounds(x, y int) bool {
	return x >= 0 && x < s.Size && y >= 0 && y < s.Size
}

// At returns the complex value stored at (x, y)
func (s *Spectrum) At(x, y int) (re, im float64) {
	idx := s.Index(x, y)
	return s.Real[idx], s.Imag[idx]
}

// SelectedPoint is the record emitted by the inspect tool
type SelectedPoint struct {
	X, Y      int
	Magnitude float64
	Phase     float64
}

// Stats holds the informational numbers derived on every recomputation
type Stats struct {
	// ActivePercentage is the share of mask cells above the activity threshold (0..100)
	ActivePercentage float64

	// MaxMagnitude is the largest mask-weighted log magnitude of the spectrum
	MaxMagnitude float64
}

// String formats the stats the way the viewers print them
func (s Stats) String() string {
	return fmt.Sprintf("active %.1f%% | max %.2f", s.ActivePercentage, s.MaxMagnitude)
}

// Tool selects how pointer events are interpreted by the mask editor
type Tool int

const (
	// ToolInspect reads the spectrum under the pointer (point tool)
	ToolInspect Tool = iota
	// ToolEnhance paints brushStrength into the mask (brush)
	ToolEnhance
	// ToolSuppress paints zeros into the mask (eraser)
	ToolSuppress
)

func (t Tool) String() string {
	switch t {
	case ToolInspect:
		return "inspect"
	case ToolEnhance:
		return "enhance"
	case ToolSuppress:
		return "suppress"
	default:
		return fmt.Sprintf("tool(%d)", int(t))
	}
}

// ParseTool maps a tool name (or its original alias point/brush/eraser) to a Tool
func ParseTool(name string) (Tool, error) {
	switch strings.ToLower(strings.TrimSpace(name)) {
	case "inspect", "point":
		return ToolInspect, nil
	case "enhance", "brush":
		return ToolEnhance, nil
	case "suppress", "eraser":
		return ToolSuppress, nil
	}
	return ToolInspect, fmt.Errorf("unknown tool %q", name)
}

// EventType is the kind of pointer gesture sample
type EventType int

const (
	EventPress EventType = iota
	EventMove
	EventRelease
	EventLeave
)

func (e EventType) String() string {
	switch e {
	case EventPress:
		return "press"
	case EventMove:
		return "move"
	case EventRelease:
		return "release"
	case EventLeave:
		return "leave"
	default:
		return fmt.Sprintf("event(%d)", int(e))
	}
}

// PointerEvent is a pointer sample already mapped to transform-grid coordinates
type PointerEvent struct {
	Type       EventType
	X, Y       int
	ButtonHeld bool
}

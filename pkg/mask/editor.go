package mask

import (
	"fmt"
	"math"

	"fourierlab/internal/models"
)

// Stroke is the transient state of one pointer gesture: the last painted
// position and the hover position for the cursor overlay. It is owned by the
// caller, passed into Editor.Handle and returned updated.
type Stroke struct {
	painting       bool
	lastX, lastY   int
	hovering       bool
	hoverX, hoverY int
}

// Painting reports whether a brush gesture is in progress.
func (s Stroke) Painting() bool { return s.painting }

// Last returns the last painted position of the current gesture.
func (s Stroke) Last() (x, y int, ok bool) { return s.lastX, s.lastY, s.painting }

// Hover returns the last in-bounds pointer position.
func (s Stroke) Hover() (x, y int, ok bool) { return s.hoverX, s.hoverY, s.hovering }

func (s *Stroke) end() {
	s.painting = false
}

// Result is the outcome of handling one pointer event.
type Result struct {
	// Mask is the current mask: a new instance when Changed, else the input
	Mask *Mask
	// Changed reports whether at least one cell was written
	Changed bool
	// Selected is set when the inspect tool picked a cell
	Selected *models.SelectedPoint
}

// Editor translates pointer events into mask mutations for the active tool.
type Editor struct {
	Tool  models.Tool
	Brush Brush
}

// NewEditor validates the brush and returns an editor.
func NewEditor(tool models.Tool, brush Brush) (*Editor, error) {
	if err := brush.Validate(); err != nil {
		return nil, err
	}
	switch tool {
	case models.ToolInspect, models.ToolEnhance, models.ToolSuppress:
	default:
		return nil, fmt.Errorf("mask: unsupported tool %v", tool)
	}
	return &Editor{Tool: tool, Brush: brush}, nil
}

// Handle applies one pointer event. Release and leave end the gesture;
// samples without the primary button held also end it. Events outside the
// grid never mutate the mask.
func (e *Editor) Handle(m *Mask, spectrum *models.Spectrum, ev models.PointerEvent, stroke Stroke) (Result, Stroke) {
	res := Result{Mask: m}

	if ev.Type == models.EventRelease || ev.Type == models.EventLeave {
		stroke.end()
		stroke.hovering = false
		return res, stroke
	}

	inside := m.InBounds(ev.X, ev.Y)
	if inside {
		stroke.hovering = true
		stroke.hoverX, stroke.hoverY = ev.X, ev.Y
	}

	if !ev.ButtonHeld || !inside {
		stroke.end()
		return res, stroke
	}

	switch e.Tool {
	case models.ToolInspect:
		if ev.Type == models.EventPress && spectrum != nil {
			if p, ok := Inspect(spectrum, ev.X, ev.Y); ok {
				res.Selected = &p
			}
		}
		return res, stroke

	case models.ToolEnhance, models.ToolSuppress:
		value := 0.0
		if e.Tool == models.ToolEnhance {
			value = e.Brush.Strength
		}

		next := m.Clone()
		var changed bool
		if stroke.painting {
			changed = next.StampLine(float64(stroke.lastX), float64(stroke.lastY),
				float64(ev.X), float64(ev.Y), e.Brush.Radius, value)
		} else {
			changed = next.Stamp(float64(ev.X), float64(ev.Y), e.Brush.Radius, value)
		}

		stroke.painting = true
		stroke.lastX, stroke.lastY = ev.X, ev.Y

		if changed {
			res.Mask = next
			res.Changed = true
		}
	}
	return res, stroke
}

// Inspect reads the unmasked spectrum at (x, y).
func Inspect(spectrum *models.Spectrum, x, y int) (models.SelectedPoint, bool) {
	if !spectrum.InBounds(x, y) {
		return models.SelectedPoint{}, false
	}
	re, im := spectrum.At(x, y)
	return models.SelectedPoint{
		X:         x,
		Y:         y,
		Magnitude: math.Hypot(re, im),
		Phase:     math.Atan2(im, re),
	}, true
}

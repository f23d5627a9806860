package main

import "fourierlab/internal/models"

// pointerSample is the mouse state read in one Update call, in grid
// coordinates of the spectrum panel.
type pointerSample struct {
	X, Y         int
	Inside       bool
	Held         bool
	JustPressed  bool
	JustReleased bool
}

// pointerState turns per-tick mouse samples into pointer events.
type pointerState struct {
	inside       bool
	lastX, lastY int
}

// events returns the pointer events implied by s. Leaving the panel emits
// a leave event; a release is reported wherever it happens.
func (p *pointerState) events(s pointerSample) []models.PointerEvent {
	var out []models.PointerEvent
	moved := s.X != p.lastX || s.Y != p.lastY

	switch {
	case s.Inside && s.JustPressed:
		out = append(out, models.PointerEvent{Type: models.EventPress, X: s.X, Y: s.Y, ButtonHeld: true})
	case s.Inside && (moved || !p.inside):
		out = append(out, models.PointerEvent{Type: models.EventMove, X: s.X, Y: s.Y, ButtonHeld: s.Held})
	case !s.Inside && p.inside:
		out = append(out, models.PointerEvent{Type: models.EventLeave, X: s.X, Y: s.Y})
	}
	if s.JustReleased {
		out = append(out, models.PointerEvent{Type: models.EventRelease, X: s.X, Y: s.Y})
	}

	p.inside = s.Inside
	p.lastX, p.lastY = s.X, s.Y
	return out
}

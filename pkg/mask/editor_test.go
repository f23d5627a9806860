package mask

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"fourierlab/internal/models"
)

func press(x, y int) models.PointerEvent {
	return models.PointerEvent{Type: models.EventPress, X: x, Y: y, ButtonHeld: true}
}

func move(x, y int) models.PointerEvent {
	return models.PointerEvent{Type: models.EventMove, X: x, Y: y, ButtonHeld: true}
}

func newEditor(t *testing.T, tool models.Tool, radius int) *Editor {
	t.Helper()
	e, err := NewEditor(tool, Brush{Radius: radius, Strength: 3})
	require.NoError(t, err)
	return e
}

func TestNewEditorValidates(t *testing.T) {
	_, err := NewEditor(models.ToolEnhance, Brush{Radius: 0, Strength: 2})
	require.ErrorIs(t, err, ErrInvalidRadius)

	_, err = NewEditor(models.Tool(9), DefaultBrush())
	require.Error(t, err)
}

// TestStrokeContinuity paints a 20-cell stroke with a 10-cell brush and checks
// the swept band has no gaps
func TestStrokeContinuity(t *testing.T) {
	e := newEditor(t, models.ToolSuppress, 10)
	m := New(64)

	var stroke Stroke
	res, stroke := e.Handle(m, nil, press(20, 32), stroke)
	require.True(t, res.Changed)
	res, stroke = e.Handle(res.Mask, nil, move(40, 32), stroke)
	require.True(t, res.Changed)

	out := res.Mask
	for x := 10; x <= 50; x++ {
		assert.Equal(t, 0.0, out.At(x, 32), "row 32 x=%d", x)
	}
	for x := 20; x <= 40; x++ {
		assert.Equal(t, 0.0, out.At(x, 22), "top edge x=%d", x)
		assert.Equal(t, 0.0, out.At(x, 42), "bottom edge x=%d", x)
	}
	assert.Equal(t, 1.0, out.At(30, 43))
	assert.Equal(t, 1.0, out.At(51, 32))

	x, y, ok := stroke.Last()
	assert.True(t, ok)
	assert.Equal(t, 40, x)
	assert.Equal(t, 32, y)
}

func TestReleaseEndsStroke(t *testing.T) {
	e := newEditor(t, models.ToolEnhance, 1)
	m := New(64)

	var stroke Stroke
	res, stroke := e.Handle(m, nil, press(10, 10), stroke)
	res, stroke = e.Handle(res.Mask, nil, models.PointerEvent{Type: models.EventRelease, X: 10, Y: 10}, stroke)
	assert.False(t, stroke.Painting())
	_, _, hovering := stroke.Hover()
	assert.False(t, hovering)

	res, stroke = e.Handle(res.Mask, nil, press(50, 50), stroke)
	assert.Equal(t, 1.0, res.Mask.At(30, 30), "no line may join separate gestures")
	assert.Equal(t, 3.0, res.Mask.At(50, 50))
	assert.Equal(t, 3.0, res.Mask.At(10, 10))

	_, stroke = e.Handle(res.Mask, nil, models.PointerEvent{Type: models.EventLeave}, stroke)
	assert.False(t, stroke.Painting())
}

func TestUnchangedMaskKeepsIdentity(t *testing.T) {
	e := newEditor(t, models.ToolEnhance, 2)
	m := New(16)

	var stroke Stroke
	first, stroke := e.Handle(m, nil, press(8, 8), stroke)
	require.True(t, first.Changed)
	assert.NotSame(t, m, first.Mask)
	assert.Equal(t, 1.0, m.At(8, 8), "input mask is never mutated")

	second, _ := e.Handle(first.Mask, nil, move(8, 8), stroke)
	assert.False(t, second.Changed)
	assert.Same(t, first.Mask, second.Mask)
}

func TestHoverWithoutButton(t *testing.T) {
	e := newEditor(t, models.ToolSuppress, 3)
	m := New(16)

	res, stroke := e.Handle(m, nil, models.PointerEvent{Type: models.EventMove, X: 4, Y: 5}, Stroke{})
	assert.False(t, res.Changed)
	assert.Same(t, m, res.Mask)
	x, y, ok := stroke.Hover()
	assert.True(t, ok)
	assert.Equal(t, [2]int{4, 5}, [2]int{x, y})
	assert.False(t, stroke.Painting())
}

func TestOutOfRangeIgnored(t *testing.T) {
	e := newEditor(t, models.ToolSuppress, 3)
	m := New(16)

	res, stroke := e.Handle(m, nil, press(-1, 4), Stroke{})
	assert.False(t, res.Changed)
	assert.Same(t, m, res.Mask)
	assert.False(t, stroke.Painting())

	res, _ = e.Handle(m, nil, press(16, 16), stroke)
	assert.False(t, res.Changed)
}

func TestInspectTool(t *testing.T) {
	spectrum := &models.Spectrum{
		Real: make([]float64, 16),
		Imag: make([]float64, 16),
		Size: 4,
	}
	idx := spectrum.Index(2, 1)
	spectrum.Real[idx] = 3
	spectrum.Imag[idx] = 4

	e := newEditor(t, models.ToolInspect, 5)
	m := New(4)
	res, _ := e.Handle(m, spectrum, press(2, 1), Stroke{})
	require.NotNil(t, res.Selected)
	assert.False(t, res.Changed)
	assert.Same(t, m, res.Mask)
	assert.Equal(t, 2, res.Selected.X)
	assert.Equal(t, 1, res.Selected.Y)
	assert.Equal(t, 5.0, res.Selected.Magnitude)
	assert.InDelta(t, 0.9273, res.Selected.Phase, 1e-4)
	assert.Equal(t, math.Atan2(4, 3), res.Selected.Phase)

	res, _ = e.Handle(m, spectrum, move(2, 1), Stroke{})
	assert.Nil(t, res.Selected, "only a press selects a point")

	_, ok := Inspect(spectrum, 4, 0)
	assert.False(t, ok)
}

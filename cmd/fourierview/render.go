package main

import (
	"fmt"
	"image/color"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/ebitenutil"
	"github.com/hajimehoshi/ebiten/v2/vector"

	"fourierlab/internal/models"
	"fourierlab/pkg/visualization"
)

var (
	enhanceColor  = color.RGBA{0, 255, 0, 255}
	suppressColor = color.RGBA{255, 0, 0, 255}
	selectColor   = color.RGBA{255, 220, 0, 255}
)

// Draw renders the cached spectrum and reconstruction, the brush cursor and
// the status bar. The cursor is drawn over the cached spectrum image, so
// moving the pointer never recomputes it.
func (g *Game) Draw(screen *ebiten.Image) {
	screen.DrawImage(g.spectrumImg, nil)

	op := &ebiten.DrawImageOptions{}
	op.GeoM.Translate(float64(g.size), 0)
	screen.DrawImage(g.imageImg, op)

	g.drawCursor(screen)

	if g.selected != nil {
		vector.StrokeCircle(screen, float32(g.selected.X)+0.5, float32(g.selected.Y)+0.5, 4, 1, selectColor, true)

		op := &ebiten.DrawImageOptions{}
		op.GeoM.Translate(float64(2*g.size-basisSize-4), float64(g.size+4))
		screen.DrawImage(g.basisImg, op)
	}

	ebitenutil.DebugPrintAt(screen, g.statusText(), 4, g.size+4)
}

func (g *Game) drawCursor(screen *ebiten.Image) {
	x, y, ok := g.session.Hover()
	if !ok {
		return
	}
	var clr color.Color
	switch g.session.Tool() {
	case models.ToolEnhance:
		clr = enhanceColor
	case models.ToolSuppress:
		clr = suppressColor
	default:
		return
	}
	r := float32(g.session.Brush().Radius)
	vector.StrokeCircle(screen, float32(x)+0.5, float32(y)+0.5, r, 1, clr, true)
}

func (g *Game) statusText() string {
	brush := g.session.Brush()
	text := fmt.Sprintf("tool %s | radius %d | strength %.1f", g.session.Tool(), brush.Radius, brush.Strength)
	if g.frame != nil {
		text += " | " + g.frame.Stats.String()
	}
	if g.selected != nil {
		text += fmt.Sprintf("\npoint (%d,%d) magnitude %.2f phase %.3f",
			g.selected.X, g.selected.Y, g.selected.Magnitude, g.selected.Phase)
	}
	if g.message != "" {
		text += "\n" + g.message
	}
	return text + "\n1-3 tools  L H B V Z presets  R reset  N notch  [ ] radius  - = strength"
}

// basisPixels renders the basis preview for p as RGBA bytes.
func basisPixels(p models.SelectedPoint, gridSize int) []byte {
	return visualization.BasisImage(p, gridSize, basisSize).Pix
}

package main

import (
	"fmt"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/inpututil"
	"github.com/sirupsen/logrus"

	"fourierlab/internal/models"
	"fourierlab/pkg/mask"
	"fourierlab/pkg/reconstruction"
)

const (
	statusHeight = 72
	basisSize    = 64
)

// Game drives a Session from ebiten input and draws its frames.
type Game struct {
	session *reconstruction.Session
	size    int

	spectrumImg *ebiten.Image
	imageImg    *ebiten.Image
	basisImg    *ebiten.Image

	// frame is the last frame uploaded to the GPU images
	frame    *reconstruction.Frame
	selected *models.SelectedPoint

	pointer pointerState
	message string
}

func newGame(session *reconstruction.Session) *Game {
	n := session.Size()
	return &Game{
		session:     session,
		size:        n,
		spectrumImg: ebiten.NewImage(n, n),
		imageImg:    ebiten.NewImage(n, n),
		basisImg:    ebiten.NewImage(basisSize, basisSize),
	}
}

var toolKeys = map[ebiten.Key]models.Tool{
	ebiten.Key1: models.ToolInspect,
	ebiten.Key2: models.ToolEnhance,
	ebiten.Key3: models.ToolSuppress,
}

var presetKeys = map[ebiten.Key]mask.Preset{
	ebiten.KeyL: mask.PresetLowPass,
	ebiten.KeyH: mask.PresetHighPass,
	ebiten.KeyB: mask.PresetBandPass,
	ebiten.KeyV: mask.PresetVerticalStripes,
	ebiten.KeyZ: mask.PresetHorizontalStripes,
	ebiten.KeyR: mask.PresetReset,
}

// Update feeds keyboard and pointer input to the session and refreshes the
// GPU images when the frame changed.
func (g *Game) Update() error {
	if inpututil.IsKeyJustPressed(ebiten.KeyEscape) {
		return ebiten.Termination
	}
	g.handleKeys()

	x, y := ebiten.CursorPosition()
	sample := pointerSample{
		X:            x,
		Y:            y,
		Inside:       x >= 0 && x < g.size && y >= 0 && y < g.size,
		Held:         ebiten.IsMouseButtonPressed(ebiten.MouseButtonLeft),
		JustPressed:  inpututil.IsMouseButtonJustPressed(ebiten.MouseButtonLeft),
		JustReleased: inpututil.IsMouseButtonJustReleased(ebiten.MouseButtonLeft),
	}
	for _, ev := range g.pointer.events(sample) {
		res := g.session.HandlePointer(ev)
		if res.Selected != nil {
			g.selectPoint(*res.Selected)
		}
	}

	frame, err := g.session.Render()
	if err != nil {
		return err
	}
	if frame != g.frame {
		g.spectrumImg.WritePixels(frame.Spectrum.Pixels)
		g.imageImg.WritePixels(frame.Image.Pixels)
		g.frame = frame
	}
	return nil
}

func (g *Game) handleKeys() {
	for key, tool := range toolKeys {
		if inpututil.IsKeyJustPressed(key) {
			if err := g.session.SetTool(tool); err != nil {
				g.fail(err)
				continue
			}
			g.message = "tool: " + tool.String()
		}
	}
	for key, preset := range presetKeys {
		if inpututil.IsKeyJustPressed(key) {
			if err := g.session.ApplyPreset(preset); err != nil {
				g.fail(err)
				continue
			}
			g.message = "preset: " + preset.String()
		}
	}
	if inpututil.IsKeyJustPressed(ebiten.KeyN) {
		if err := g.session.NotchSelected(); err != nil {
			g.fail(err)
		} else {
			g.message = "notch applied"
		}
	}
	if inpututil.IsKeyJustPressed(ebiten.KeyC) {
		g.session.ClearSelection()
		g.selected = nil
	}

	brush := g.session.Brush()
	switch {
	case inpututil.IsKeyJustPressed(ebiten.KeyBracketLeft):
		brush.Radius--
	case inpututil.IsKeyJustPressed(ebiten.KeyBracketRight):
		brush.Radius++
	case inpututil.IsKeyJustPressed(ebiten.KeyMinus):
		brush.Strength -= 0.5
	case inpututil.IsKeyJustPressed(ebiten.KeyEqual):
		brush.Strength += 0.5
	default:
		return
	}
	if err := g.session.SetBrush(brush); err != nil {
		g.fail(err)
		return
	}
	g.message = fmt.Sprintf("brush: radius %d, strength %.1f", brush.Radius, brush.Strength)
}

func (g *Game) selectPoint(p models.SelectedPoint) {
	g.selected = &p
	basis := basisPixels(p, g.size)
	g.basisImg.WritePixels(basis)
}

func (g *Game) fail(err error) {
	logrus.WithError(err).Warn("Viewer action failed")
	g.message = err.Error()
}

// Layout places the spectrum and the reconstruction side by side above a
// status bar.
func (g *Game) Layout(_, _ int) (int, int) {
	return 2 * g.size, g.size + statusHeight
}

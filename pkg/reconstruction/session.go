package reconstruction

import (
	"fmt"
	"image"
	"time"

	"github.com/sirupsen/logrus"

	"fourierlab/internal/models"
	"fourierlab/pkg/config"
	"fourierlab/pkg/fourier"
	"fourierlab/pkg/imaging"
	"fourierlab/pkg/mask"
	"fourierlab/pkg/visualization"
)

// Options configures a Session.
type Options struct {
	Tool        models.Tool
	Brush       mask.Brush
	Presets     mask.PresetParams
	NotchRadius float64

	// Logger receives session events; nil uses the logrus standard logger
	Logger *logrus.Logger
}

// DefaultOptions returns the inspect tool, the default brush and the
// default preset parameters.
func DefaultOptions() Options {
	return Options{
		Tool:        models.ToolInspect,
		Brush:       mask.DefaultBrush(),
		Presets:     mask.DefaultPresetParams(),
		NotchRadius: 15,
	}
}

// OptionsFromConfig builds session options from the brush and preset
// sections of cfg.
func OptionsFromConfig(cfg *config.Config) (Options, error) {
	tool, err := models.ParseTool(cfg.Brush.Tool)
	if err != nil {
		return Options{}, fmt.Errorf("%w: %v", config.ErrInvalid, err)
	}
	return Options{
		Tool: tool,
		Brush: mask.Brush{
			Radius:   cfg.Brush.Radius,
			Strength: cfg.Brush.Strength,
		},
		Presets: mask.PresetParams{
			LowPassRadius:  cfg.Presets.LowPassRadius,
			HighPassRadius: cfg.Presets.HighPassRadius,
			BandInner:      cfg.Presets.BandInner,
			BandOuter:      cfg.Presets.BandOuter,
			StripeOffset:   cfg.Presets.StripeOffset,
			StripeRadius:   cfg.Presets.StripeRadius,
		},
		NotchRadius: cfg.Presets.NotchRadius,
	}, nil
}

// EngineFromConfig builds the transform engine described by the grid and
// transform sections of cfg.
func EngineFromConfig(cfg *config.Config) (*fourier.Engine, error) {
	return fourier.NewEngine(cfg.Grid.Size,
		fourier.WithBackend(cfg.Transform.Backend),
		fourier.WithWorkers(cfg.Transform.Workers),
	)
}

// Frame is everything a viewer draws for one (spectrum, mask) state.
type Frame struct {
	// Spectrum is the masked log-magnitude display
	Spectrum *visualization.Display

	// Image is the reconstruction display
	Image *visualization.Display

	// Magnitude holds the raw reconstruction magnitudes
	Magnitude []float64

	Stats models.Stats
}

// Session holds the interactive state: the loaded spectrum, the current
// mask, the stroke in progress and the inspected point. It is not safe for
// concurrent use; callers drive it from a single loop.
type Session struct {
	pipeline    *Pipeline
	editor      *mask.Editor
	presets     mask.PresetParams
	notchRadius float64
	log         *logrus.Entry

	spectrum *models.Spectrum
	mask     *mask.Mask
	stroke   mask.Stroke
	selected *models.SelectedPoint

	cache         visualization.Cache
	frame         *Frame
	frameSpectrum *models.Spectrum
	frameMask     *mask.Mask
}

// NewSession creates a session around engine with an all-pass mask and no image.
func NewSession(engine *fourier.Engine, opts Options) (*Session, error) {
	editor, err := mask.NewEditor(opts.Tool, opts.Brush)
	if err != nil {
		return nil, err
	}
	logger := opts.Logger
	if logger == nil {
		logger = logrus.StandardLogger()
	}
	return &Session{
		pipeline:    NewPipeline(engine),
		editor:      editor,
		presets:     opts.Presets,
		notchRadius: opts.NotchRadius,
		log:         logger.WithField("component", "session"),
		mask:        mask.New(engine.Size()),
	}, nil
}

// Size returns the grid dimension.
func (s *Session) Size() int { return s.pipeline.Engine().Size() }

// Spectrum returns the loaded spectrum, or nil.
func (s *Session) Spectrum() *models.Spectrum { return s.spectrum }

// Mask returns the current mask instance.
func (s *Session) Mask() *mask.Mask { return s.mask }

// LoadFile decodes and fits the image at path, then loads it.
func (s *Session) LoadFile(path string) error {
	img, err := imaging.Load(path, s.Size())
	if err != nil {
		return err
	}
	if err := s.LoadImage(img); err != nil {
		return err
	}
	s.log.WithField("path", path).Info("Image loaded")
	return nil
}

// LoadImage loads an N×N RGBA image.
func (s *Session) LoadImage(img *image.RGBA) error {
	lum, err := imaging.LuminanceImage(img)
	if err != nil {
		return err
	}
	return s.LoadLuminance(lum)
}

// LoadLuminance transforms an N×N luminance grid, stores the shifted
// spectrum and resets the mask, stroke and selection.
func (s *Session) LoadLuminance(lum []float64) error {
	start := time.Now()
	n := s.Size()

	re, im, err := s.pipeline.Engine().Forward(lum)
	if err != nil {
		return fmt.Errorf("forward transform: %w", err)
	}
	re, im, err = fourier.Shift(re, im, n, n)
	if err != nil {
		return err
	}

	s.spectrum = &models.Spectrum{Real: re, Imag: im, Size: n}
	s.mask = mask.New(n)
	s.stroke = mask.Stroke{}
	s.selected = nil
	s.cache.Invalidate()
	s.frame = nil

	s.log.WithFields(logrus.Fields{
		"size":    n,
		"backend": s.pipeline.Engine().Backend(),
		"workers": s.pipeline.Engine().Workers(),
		"elapsed": time.Since(start),
	}).Debug("Spectrum computed")
	return nil
}

// HandlePointer feeds one pointer event to the editor. A changed mask
// replaces the current one; an inspected cell becomes the selection.
// Events are ignored until an image is loaded.
func (s *Session) HandlePointer(ev models.PointerEvent) mask.Result {
	if s.spectrum == nil {
		return mask.Result{Mask: s.mask}
	}
	res, stroke := s.editor.Handle(s.mask, s.spectrum, ev, s.stroke)
	s.stroke = stroke
	if res.Changed {
		s.mask = res.Mask
	}
	if res.Selected != nil {
		s.selected = res.Selected
		s.log.WithFields(logrus.Fields{
			"x":         res.Selected.X,
			"y":         res.Selected.Y,
			"magnitude": res.Selected.Magnitude,
			"phase":     res.Selected.Phase,
		}).Debug("Point inspected")
	}
	return res
}

// ApplyPreset replaces the mask with the result of preset p.
func (s *Session) ApplyPreset(p mask.Preset) error {
	if s.spectrum == nil {
		return ErrNoImage
	}
	next, err := mask.Apply(s.mask, p, s.presets)
	if err != nil {
		return err
	}
	s.mask = next
	s.log.WithField("preset", p.String()).Info("Preset applied")
	return nil
}

// ResetMask sets every mask cell back to 1.
func (s *Session) ResetMask() {
	s.mask = mask.New(s.Size())
	s.log.Debug("Mask reset")
}

// NotchSelected suppresses the inspected point and its conjugate mirror
// through the center.
func (s *Session) NotchSelected() error {
	if s.selected == nil {
		return fmt.Errorf("reconstruction: no point selected")
	}
	n := float64(s.Size())
	x, y := float64(s.selected.X), float64(s.selected.Y)
	next, err := s.mask.Notch(x, y, n-x, n-y, s.notchRadius)
	if err != nil {
		return err
	}
	s.mask = next
	s.log.WithFields(logrus.Fields{"x": s.selected.X, "y": s.selected.Y}).Info("Notch applied")
	return nil
}

// Tool returns the active tool.
func (s *Session) Tool() models.Tool { return s.editor.Tool }

// SetTool switches the active tool and ends any stroke in progress.
func (s *Session) SetTool(t models.Tool) error {
	editor, err := mask.NewEditor(t, s.editor.Brush)
	if err != nil {
		return err
	}
	s.editor = editor
	s.stroke = mask.Stroke{}
	return nil
}

// Brush returns the brush settings.
func (s *Session) Brush() mask.Brush { return s.editor.Brush }

// SetBrush validates and applies new brush settings.
func (s *Session) SetBrush(b mask.Brush) error {
	if err := b.Validate(); err != nil {
		return err
	}
	s.editor.Brush = b
	return nil
}

// Selected returns the last inspected point.
func (s *Session) Selected() (models.SelectedPoint, bool) {
	if s.selected == nil {
		return models.SelectedPoint{}, false
	}
	return *s.selected, true
}

// ClearSelection forgets the inspected point.
func (s *Session) ClearSelection() { s.selected = nil }

// Hover returns the last in-grid pointer position.
func (s *Session) Hover() (x, y int, ok bool) { return s.stroke.Hover() }

// Render returns the frame for the current spectrum and mask. Nothing is
// recomputed while neither instance has changed since the previous call.
func (s *Session) Render() (*Frame, error) {
	if s.spectrum == nil {
		return nil, ErrNoImage
	}
	if s.frame != nil && s.frameSpectrum == s.spectrum && s.frameMask == s.mask {
		return s.frame, nil
	}

	start := time.Now()
	specDisplay, _, err := s.cache.Spectrum(s.spectrum, s.mask)
	if err != nil {
		return nil, err
	}
	img, mags, err := s.pipeline.Reconstruct(s.spectrum, s.mask)
	if err != nil {
		return nil, err
	}
	stats, err := s.pipeline.Stats(s.spectrum, s.mask)
	if err != nil {
		return nil, err
	}

	s.frame = &Frame{
		Spectrum:  specDisplay,
		Image:     img,
		Magnitude: mags,
		Stats:     stats,
	}
	s.frameSpectrum, s.frameMask = s.spectrum, s.mask

	s.log.WithFields(logrus.Fields{
		"active":  s.frame.Stats.ActivePercentage,
		"elapsed": time.Since(start),
	}).Debug("Frame recomputed")
	return s.frame, nil
}

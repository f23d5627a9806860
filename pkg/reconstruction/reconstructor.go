package reconstruction

import (
	"fmt"
	"image"
	"math"
	"os"

	"github.com/sirupsen/logrus"
	"gonum.org/v1/gonum/floats"
	"gonum.org/v1/gonum/stat"

	"fourierlab/internal/models"
	"fourierlab/pkg/fourier"
	"fourierlab/pkg/imaging"
	"fourierlab/pkg/mask"
	"fourierlab/pkg/visualization"
)

// ValidationMetrics compares the reconstruction against the original
// luminance. Both grids are scaled by their own maximum to [0,1] first.
type ValidationMetrics struct {
	// RMSE is the root mean square error between the scaled grids.
	// 0 means the reconstruction matches the original up to scale.
	RMSE float64

	// PSNR is 20·log10(1/RMSE) in dB, +Inf for an exact match
	PSNR float64

	// Correlation is the Pearson correlation between the grids.
	// It is NaN when either grid is constant.
	Correlation float64

	// SSIM is the global structural similarity index, 1 for identical grids
	SSIM float64

	// ActivePercentage and MaxMagnitude are the stats of the final mask
	ActivePercentage float64
	MaxMagnitude     float64
}

// Params holds the batch reconstruction parameters.
type Params struct {
	// InputFile is the image to transform; it is fitted to GridSize×GridSize
	InputFile string

	// OutputDir receives original, spectrum, reconstruction and basis images
	OutputDir string

	// Format of written images: png or jpeg
	Format string

	// GridSize is the transform grid dimension, a power of two
	GridSize int

	// Backend names the 1D FFT implementation
	Backend string

	// NumCores is the number of workers sharing each transform pass
	NumCores int

	// Presets are applied in order to the initial all-pass mask
	Presets []string

	// SaveBasis writes the basis function of the inspected cell
	SaveBasis bool

	// Inspect is the cell used for the basis image. When nil the strongest
	// non-DC cell of the masked spectrum is used.
	Inspect *image.Point

	// Session carries the brush and preset parameters
	Session Options
}

// Reconstructor runs the spectrum editing pipeline over one image file:
// 1. Loading and fitting the input image
// 2. Computing the shifted spectrum
// 3. Applying the requested presets
// 4. Reconstructing and writing the display images
// 5. Calculating quality metrics
type Reconstructor struct {
	params  *Params
	session *Session
	writer  *visualization.Writer

	original []float64
	frame    *Frame
	metrics  ValidationMetrics
	outputs  []string
}

// NewReconstructor creates a new reconstructor instance with the provided parameters.
func NewReconstructor(params *Params) *Reconstructor {
	return &Reconstructor{params: params}
}

// Process runs the complete pipeline
func (r *Reconstructor) Process() error {
	engine, err := fourier.NewEngine(r.params.GridSize,
		fourier.WithBackend(r.params.Backend),
		fourier.WithWorkers(r.params.NumCores),
	)
	if err != nil {
		return fmt.Errorf("failed to create transform engine: %w", err)
	}
	r.session, err = NewSession(engine, r.params.Session)
	if err != nil {
		return fmt.Errorf("failed to create session: %w", err)
	}
	r.writer, err = visualization.NewWriter(r.params.OutputDir, r.params.Format)
	if err != nil {
		return err
	}
	if err := os.MkdirAll(r.params.OutputDir, 0755); err != nil {
		return fmt.Errorf("failed to create output directory: %w", err)
	}

	presets := make([]mask.Preset, 0, len(r.params.Presets))
	for _, name := range r.params.Presets {
		p, err := mask.ParsePreset(name)
		if err != nil {
			return err
		}
		presets = append(presets, p)
	}

	// Step 1: Load and fit the input image
	fmt.Println("Step 1: Loading input image...")
	img, err := imaging.Load(r.params.InputFile, engine.Size())
	if err != nil {
		return fmt.Errorf("failed to load image: %w", err)
	}
	r.original, err = imaging.LuminanceImage(img)
	if err != nil {
		return err
	}
	fmt.Printf("Loaded %s as a %dx%d grid\n", r.params.InputFile, engine.Size(), engine.Size())
	if err := r.save("original", visualization.StretchMax(r.original, engine.Size(), 255)); err != nil {
		return err
	}

	// Step 2: Forward transform and shift
	fmt.Printf("Step 2: Computing spectrum (%s backend, %d workers)...\n", engine.Backend(), engine.Workers())
	if err := r.session.LoadLuminance(r.original); err != nil {
		return fmt.Errorf("failed to compute spectrum: %w", err)
	}

	// Step 3: Presets
	fmt.Println("Step 3: Applying presets...")
	for _, p := range presets {
		if err := r.session.ApplyPreset(p); err != nil {
			return fmt.Errorf("failed to apply preset %s: %w", p, err)
		}
		fmt.Printf("- %s\n", p)
	}

	// Step 4: Reconstruct
	fmt.Println("Step 4: Reconstructing image...")
	r.frame, err = r.session.Render()
	if err != nil {
		return fmt.Errorf("failed to reconstruct: %w", err)
	}
	if err := r.save("spectrum", r.frame.Spectrum); err != nil {
		return err
	}
	if err := r.save("reconstruction", r.frame.Image); err != nil {
		return err
	}

	if r.params.SaveBasis {
		if err := r.saveBasis(); err != nil {
			logrus.WithError(err).Warn("Failed to save basis image")
		}
	}

	// Step 5: Metrics
	fmt.Println("Step 5: Calculating validation metrics...")
	r.calculateMetrics()

	return nil
}

func (r *Reconstructor) save(name string, d *visualization.Display) error {
	path, err := r.writer.SaveDisplay(name, d)
	if err != nil {
		return fmt.Errorf("failed to save %s: %w", name, err)
	}
	r.outputs = append(r.outputs, path)
	logrus.WithField("path", path).Debug("Image written")
	return nil
}

func (r *Reconstructor) saveBasis() error {
	cell := r.params.Inspect
	if cell == nil {
		x, y := strongestCell(r.session.Spectrum(), r.session.Mask())
		cell = &image.Point{X: x, Y: y}
	}
	p, ok := mask.Inspect(r.session.Spectrum(), cell.X, cell.Y)
	if !ok {
		return fmt.Errorf("inspect point (%d,%d) outside the grid", cell.X, cell.Y)
	}
	fmt.Printf("Basis function at (%d,%d): magnitude %.2f, phase %.3f\n", p.X, p.Y, p.Magnitude, p.Phase)

	path, err := r.writer.SaveImage("basis", visualization.BasisImage(p, r.session.Size(), r.session.Size()))
	if err != nil {
		return err
	}
	r.outputs = append(r.outputs, path)
	return nil
}

// strongestCell returns the cell with the largest masked magnitude, skipping DC.
func strongestCell(s *models.Spectrum, m *mask.Mask) (int, int) {
	c := s.Size / 2
	bestX, bestY, best := c, c, -1.0
	for y := 0; y < s.Size; y++ {
		for x := 0; x < s.Size; x++ {
			if x == c && y == c {
				continue
			}
			re, im := s.At(x, y)
			if v := math.Hypot(re, im) * m.At(x, y); v > best {
				bestX, bestY, best = x, y, v
			}
		}
	}
	return bestX, bestY
}

func (r *Reconstructor) calculateMetrics() {
	original := scaleToUnit(r.original)
	reconstructed := scaleToUnit(r.frame.Magnitude)

	r.metrics.RMSE = calculateRMSE(original, reconstructed)
	r.metrics.PSNR = math.Inf(1)
	if r.metrics.RMSE > 0 {
		r.metrics.PSNR = 20 * math.Log10(1/r.metrics.RMSE)
	}
	r.metrics.Correlation = stat.Correlation(original, reconstructed, nil)
	r.metrics.SSIM = calculateSSIM(original, reconstructed)
	r.metrics.ActivePercentage = r.frame.Stats.ActivePercentage
	r.metrics.MaxMagnitude = r.frame.Stats.MaxMagnitude
}

// scaleToUnit returns a copy of values divided by their maximum.
func scaleToUnit(values []float64) []float64 {
	out := make([]float64, len(values))
	copy(out, values)
	if len(out) == 0 {
		return out
	}
	if maxVal := floats.Max(out); maxVal > 0 {
		floats.Scale(1/maxVal, out)
	}
	return out
}

// calculateRMSE computes the root mean square error
func calculateRMSE(original, reconstructed []float64) float64 {
	n := len(original)
	if n != len(reconstructed) || n == 0 {
		return 0
	}
	return floats.Distance(original, reconstructed, 2) / math.Sqrt(float64(n))
}

// calculateSSIM computes a single-window Structural Similarity Index over
// values in [0,1]
func calculateSSIM(original, reconstructed []float64) float64 {
	const L = 1.0
	const k1 = 0.01
	const k2 = 0.03

	c1 := (k1 * L) * (k1 * L)
	c2 := (k2 * L) * (k2 * L)

	n := len(original)
	if n != len(reconstructed) || n == 0 {
		return 0
	}

	muX := stat.Mean(original, nil)
	muY := stat.Mean(reconstructed, nil)
	sigmaX := stat.Variance(original, nil)
	sigmaY := stat.Variance(reconstructed, nil)
	sigmaXY := stat.Covariance(original, reconstructed, nil)

	num := (2*muX*muY + c1) * (2*sigmaXY + c2)
	den := (muX*muX + muY*muY + c1) * (sigmaX + sigmaY + c2)
	if den > 0 {
		return num / den
	}
	return 0
}

// GetMetrics returns the current validation metrics
func (r *Reconstructor) GetMetrics() ValidationMetrics {
	return r.metrics
}

// GetFrame returns the final frame, or nil before Process succeeded.
func (r *Reconstructor) GetFrame() *Frame {
	return r.frame
}

// Outputs returns the paths of the images written by Process.
func (r *Reconstructor) Outputs() []string {
	return r.outputs
}

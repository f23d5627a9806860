package visualization

import (
	"bytes"
	"errors"
	"image/png"
	"math"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"fourierlab/internal/models"
	"fourierlab/pkg/mask"
)

func zeroSpectrum(size int) *models.Spectrum {
	return &models.Spectrum{
		Real: make([]float64, size*size),
		Imag: make([]float64, size*size),
		Size: size,
	}
}

// TestRenderSpectrumFlat covers the degenerate case of equal masked magnitudes
func TestRenderSpectrumFlat(t *testing.T) {
	const n = models.DefaultGridSize
	d, err := RenderSpectrum(zeroSpectrum(n), mask.New(n))
	require.NoError(t, err)

	assert.True(t, d.Degenerate)
	require.Len(t, d.Pixels, n*n*4)
	for i := 0; i < len(d.Pixels); i += 4 {
		if d.Pixels[i] != 0 || d.Pixels[i+1] != 0 || d.Pixels[i+2] != 0 {
			t.Fatalf("pixel %d not zero: %v", i/4, d.Pixels[i:i+4])
		}
	}
	assert.False(t, math.IsNaN(d.Max) || math.IsInf(d.Max, 0))
}

func TestRenderSpectrumStretch(t *testing.T) {
	s := zeroSpectrum(4)
	idx := s.Index(2, 2)
	s.Real[idx] = math.E - 1

	d, err := RenderSpectrum(s, mask.New(4))
	require.NoError(t, err)
	assert.False(t, d.Degenerate)
	assert.InDelta(t, 1.0, d.Max, 1e-12)
	assert.Equal(t, 0.0, d.Min)
	assert.Equal(t, uint8(255), d.Gray(2, 2))
	assert.Equal(t, uint8(0), d.Gray(0, 0))
	assert.Equal(t, uint8(255), d.Pixels[3], "alpha is opaque")
}

func TestRenderSpectrumMaskWeighting(t *testing.T) {
	s := zeroSpectrum(4)
	s.Real[s.Index(1, 1)] = math.E - 1
	s.Real[s.Index(3, 3)] = math.E*math.E - 1

	m, err := mask.FromValues(4, []float64{
		1, 1, 1, 1,
		1, 2, 1, 1,
		1, 1, 1, 1,
		1, 1, 1, 0.5,
	})
	require.NoError(t, err)

	d, err := RenderSpectrum(s, m)
	require.NoError(t, err)
	assert.InDelta(t, 2.0, d.Max, 1e-12)
	assert.Equal(t, uint8(255), d.Gray(1, 1))
	assert.Equal(t, uint8(128), d.Gray(3, 3), "log(e^2)*0.5 is half the maximum")

	_, err = RenderSpectrum(s, mask.New(8))
	require.ErrorIs(t, err, ErrSizeMismatch)
}

func TestStretchMax(t *testing.T) {
	d := StretchMax([]float64{0, 5, 10, 20}, 2, 20)
	assert.Equal(t, uint8(0), d.Gray(0, 0))
	assert.Equal(t, uint8(64), d.Gray(1, 0))
	assert.Equal(t, uint8(128), d.Gray(0, 1))
	assert.Equal(t, uint8(255), d.Gray(1, 1))

	zero := StretchMax([]float64{0, 0, 0, 0}, 2, 0)
	assert.True(t, zero.Degenerate)
	for i := 0; i < len(zero.Pixels); i += 4 {
		assert.Equal(t, uint8(0), zero.Pixels[i])
	}
}

func TestStretchMinMaxClamps(t *testing.T) {
	d := StretchMinMax([]float64{-1, 1, 3, 5}, 2, 1, 3)
	assert.Equal(t, uint8(0), d.Gray(0, 0))
	assert.Equal(t, uint8(0), d.Gray(1, 0))
	assert.Equal(t, uint8(255), d.Gray(0, 1))
	assert.Equal(t, uint8(255), d.Gray(1, 1))

	assert.True(t, StretchMinMax([]float64{1}, 1, math.Inf(1), 0).Degenerate)
}

func TestCacheReusesDisplay(t *testing.T) {
	s := zeroSpectrum(4)
	s.Real[0] = 10
	m := mask.New(4)

	var c Cache
	first, hit, err := c.Spectrum(s, m)
	require.NoError(t, err)
	assert.False(t, hit)

	again, hit, err := c.Spectrum(s, m)
	require.NoError(t, err)
	assert.True(t, hit)
	assert.Same(t, first, again)

	edited := m.Clone()
	fresh, hit, err := c.Spectrum(s, edited)
	require.NoError(t, err)
	assert.False(t, hit, "a new mask instance invalidates the cache")
	assert.NotSame(t, first, fresh)

	c.Invalidate()
	_, hit, err = c.Spectrum(s, edited)
	require.NoError(t, err)
	assert.False(t, hit)
}

func TestBasisImage(t *testing.T) {
	dc := BasisImage(models.SelectedPoint{X: 8, Y: 8}, 16, 4)
	for i := 0; i < len(dc.Pix); i += 4 {
		assert.Equal(t, uint8(255), dc.Pix[i])
		assert.Equal(t, uint8(255), dc.Pix[i+3])
	}

	inverted := BasisImage(models.SelectedPoint{X: 8, Y: 8, Phase: math.Pi}, 16, 4)
	assert.Equal(t, uint8(0), inverted.Pix[0])

	// Nyquist along x alternates between bright and dark columns
	nyq := BasisImage(models.SelectedPoint{X: 0, Y: 8}, 16, 4)
	assert.Equal(t, uint8(255), nyq.RGBAAt(0, 0).R)
	assert.Equal(t, uint8(0), nyq.RGBAAt(1, 0).R)
	assert.Equal(t, uint8(255), nyq.RGBAAt(2, 3).R)
}

func TestWriterSaveDisplay(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "out")
	d := StretchMax([]float64{0, 1, 2, 3}, 2, 3)

	w, err := NewWriter(dir, "")
	require.NoError(t, err)
	path, err := w.SaveDisplay("spectrum", d)
	require.NoError(t, err)
	assert.Equal(t, filepath.Join(dir, "spectrum.png"), path)

	f, err := os.Open(path)
	require.NoError(t, err)
	defer f.Close()
	img, err := png.Decode(f)
	require.NoError(t, err)
	r, _, _, _ := img.At(1, 1).RGBA()
	assert.Equal(t, uint32(0xffff), r)

	jw, err := NewWriter(dir, "JPG")
	require.NoError(t, err)
	path, err = jw.SaveDisplay("reconstruction", d)
	require.NoError(t, err)
	assert.Equal(t, ".jpg", filepath.Ext(path))

	_, err = NewWriter(dir, "bmp")
	assert.Error(t, err)
}

type failingCloser struct {
	bytes.Buffer
	closeErr error
}

func (f *failingCloser) Close() error { return f.closeErr }

func TestWriterReportsCloseError(t *testing.T) {
	w, err := NewWriter(t.TempDir(), "png")
	require.NoError(t, err)
	d := StretchMax([]float64{0, 1, 2, 3}, 2, 3)

	diskFull := errors.New("disk full")
	out := &failingCloser{closeErr: diskFull}
	err = w.encode(out, d.Image())
	require.ErrorIs(t, err, diskFull)
	assert.Greater(t, out.Len(), 0)

	ok := &failingCloser{}
	require.NoError(t, w.encode(ok, d.Image()))
}

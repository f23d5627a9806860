package fourier

import (
	"math"
	"math/rand"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// randomImage returns a deterministic size×size grid of 8-bit-like luminance values
func randomImage(size int, seed int64) []float64 {
	rng := rand.New(rand.NewSource(seed))
	img := make([]float64, size*size)
	for i := range img {
		img[i] = rng.Float64() * 255
	}
	return img
}

func TestIsPowerOfTwo(t *testing.T) {
	cases := []struct {
		n    int
		want bool
	}{
		{0, false},
		{1, true},
		{2, true},
		{3, false},
		{64, true},
		{96, false},
		{512, true},
		{-4, false},
	}
	for _, tc := range cases {
		assert.Equal(t, tc.want, IsPowerOfTwo(tc.n), "IsPowerOfTwo(%d)", tc.n)
	}
}

func TestNewEngineRejectsInvalidConfiguration(t *testing.T) {
	_, err := NewEngine(100)
	require.ErrorIs(t, err, ErrNotPowerOfTwo)

	_, err = NewEngine(64, WithBackend("fftw"))
	require.ErrorIs(t, err, ErrUnknownBackend)
}

func TestNewEngineWorkers(t *testing.T) {
	e, err := NewEngine(8, WithWorkers(64))
	require.NoError(t, err)
	assert.Equal(t, 8, e.Workers(), "workers are capped at the line count")

	e, err = NewEngine(8)
	require.NoError(t, err)
	assert.Equal(t, 1, e.Workers())
	assert.Equal(t, BackendGonum, e.Backend())
	assert.Equal(t, 8, e.Size())
}

func TestForwardSizeMismatch(t *testing.T) {
	e, err := NewEngine(8)
	require.NoError(t, err)

	_, _, err = e.Forward(make([]float64, 10))
	require.ErrorIs(t, err, ErrSizeMismatch)

	_, err = e.Inverse(make([]float64, 64), make([]float64, 63))
	require.ErrorIs(t, err, ErrSizeMismatch)
}

// TestForwardImpulse checks that an impulse at the origin has a flat spectrum
func TestForwardImpulse(t *testing.T) {
	for _, name := range Backends() {
		t.Run(name, func(t *testing.T) {
			e, err := NewEngine(4, WithBackend(name))
			require.NoError(t, err)

			img := make([]float64, 16)
			img[0] = 1
			re, im, err := e.Forward(img)
			require.NoError(t, err)

			for i := range re {
				assert.InDelta(t, 1.0, math.Hypot(re[i], im[i]), 1e-9, "bin %d", i)
			}
		})
	}
}

func TestForwardDCIsSum(t *testing.T) {
	e, err := NewEngine(16)
	require.NoError(t, err)

	img := randomImage(16, 3)
	sum := 0.0
	for _, v := range img {
		sum += v
	}
	re, im, err := e.Forward(img)
	require.NoError(t, err)
	assert.InDelta(t, sum, re[0], 1e-6)
	assert.InDelta(t, 0.0, im[0], 1e-6)
}

// TestRoundTrip runs forward, shift, unshift and inverse and expects the
// original luminance back on every backend
func TestRoundTrip(t *testing.T) {
	const size = 64
	img := randomImage(size, 42)

	for _, name := range Backends() {
		t.Run(name, func(t *testing.T) {
			e, err := NewEngine(size, WithBackend(name))
			require.NoError(t, err)

			re, im, err := e.Forward(img)
			require.NoError(t, err)
			re, im, err = Shift(re, im, size, size)
			require.NoError(t, err)
			re, im, err = Unshift(re, im, size, size)
			require.NoError(t, err)

			got, err := e.Inverse(re, im)
			require.NoError(t, err)
			require.Len(t, got, len(img))
			for i := range img {
				assert.InDelta(t, img[i], got[i], 1e-6, "pixel %d", i)
			}
		})
	}
}

func TestInverseComplexRoundTrip(t *testing.T) {
	const size = 16
	e, err := NewEngine(size)
	require.NoError(t, err)

	srcRe := randomImage(size, 7)
	srcIm := randomImage(size, 8)
	re, im, err := e.ForwardComplex(srcRe, srcIm)
	require.NoError(t, err)
	gotRe, gotIm, err := e.InverseComplex(re, im)
	require.NoError(t, err)

	for i := range srcRe {
		assert.InDelta(t, srcRe[i], gotRe[i], 1e-9)
		assert.InDelta(t, srcIm[i], gotIm[i], 1e-9)
	}
}

func TestBackendsAgree(t *testing.T) {
	const size = 32
	img := randomImage(size, 11)

	ref, err := NewEngine(size, WithBackend(BackendGonum))
	require.NoError(t, err)
	wantRe, wantIm, err := ref.Forward(img)
	require.NoError(t, err)

	for _, name := range []string{BackendAlgoFFT, BackendGoDSP} {
		t.Run(name, func(t *testing.T) {
			e, err := NewEngine(size, WithBackend(name))
			require.NoError(t, err)
			re, im, err := e.Forward(img)
			require.NoError(t, err)
			for i := range re {
				assert.InDelta(t, wantRe[i], re[i], 1e-6, "re %d", i)
				assert.InDelta(t, wantIm[i], im[i], 1e-6, "im %d", i)
			}
		})
	}
}

func TestParallelPassesMatchSequential(t *testing.T) {
	const size = 64
	img := randomImage(size, 5)

	seq, err := NewEngine(size, WithWorkers(1))
	require.NoError(t, err)
	par, err := NewEngine(size, WithWorkers(3))
	require.NoError(t, err)

	wantRe, wantIm, err := seq.Forward(img)
	require.NoError(t, err)
	gotRe, gotIm, err := par.Forward(img)
	require.NoError(t, err)
	assert.Equal(t, wantRe, gotRe)
	assert.Equal(t, wantIm, gotIm)

	wantMag, err := seq.Inverse(wantRe, wantIm)
	require.NoError(t, err)
	gotMag, err := par.Inverse(gotRe, gotIm)
	require.NoError(t, err)
	assert.Equal(t, wantMag, gotMag)
}

func TestBackendLineMismatch(t *testing.T) {
	for _, name := range Backends() {
		factory, err := LookupBackend(name)
		require.NoError(t, err)
		b, err := factory(8)
		require.NoError(t, err)
		assert.Equal(t, 8, b.Len())
		assert.ErrorIs(t, b.Forward(make([]complex128, 8), make([]complex128, 4)), ErrSizeMismatch, name)
		assert.ErrorIs(t, b.Inverse(make([]complex128, 2), make([]complex128, 8)), ErrSizeMismatch, name)

		_, err = factory(12)
		assert.ErrorIs(t, err, ErrNotPowerOfTwo, name)
	}
}

// Package fourier implements the separable 2D Fourier transform used to build
// and invert image spectra, together with the quadrant shift that centers the
// zero frequency.
//
// A 2D transform runs one 1D transform over every row of the grid followed by
// one over every column of the intermediate result. The 1D kernel is pluggable:
//
//   - "gonum":   gonum.org/v1/gonum/dsp/fourier CmplxFFT (default)
//   - "algofft": github.com/MeKo-Christian/algo-fft planned transforms
//   - "godsp":   github.com/mjibson/go-dsp/fft
//
// Every backend produces unnormalized forward coefficients and a 1/n scaled
// inverse, so Inverse(Forward(x)) reproduces x.
//
// # Usage
//
//	engine, err := fourier.NewEngine(512, fourier.WithBackend("gonum"))
//	re, im, err := engine.Forward(luminance)
//	re, im, err = fourier.Shift(re, im, 512, 512)
package fourier

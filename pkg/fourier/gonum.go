package fourier

import (
	"gonum.org/v1/gonum/dsp/fourier"
)

// gonumBackend wraps gonum's complex FFT. Sequence is unnormalized in gonum,
// so the inverse applies the 1/n scaling itself.
type gonumBackend struct {
	fft   *fourier.CmplxFFT
	n     int
	scale complex128
}

func newGonumBackend(n int) (Backend, error) {
	if err := validateSize(n); err != nil {
		return nil, err
	}
	return &gonumBackend{
		fft:   fourier.NewCmplxFFT(n),
		n:     n,
		scale: complex(1/float64(n), 0),
	}, nil
}

func (b *gonumBackend) Len() int { return b.n }

func (b *gonumBackend) Forward(dst, src []complex128) error {
	if err := checkLine(b, dst, src); err != nil {
		return err
	}
	b.fft.Coefficients(dst, src)
	return nil
}

func (b *gonumBackend) Inverse(dst, src []complex128) error {
	if err := checkLine(b, dst, src); err != nil {
		return err
	}
	b.fft.Sequence(dst, src)
	for i := range dst {
		dst[i] *= b.scale
	}
	return nil
}

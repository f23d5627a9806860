package fourier

import (
	"github.com/mjibson/go-dsp/fft"
)

// godspBackend delegates to go-dsp, which allocates its own output and
// normalizes IFFT by 1/n.
type godspBackend struct {
	n int
}

func newGoDSPBackend(n int) (Backend, error) {
	if err := validateSize(n); err != nil {
		return nil, err
	}
	return &godspBackend{n: n}, nil
}

func (b *godspBackend) Len() int { return b.n }

func (b *godspBackend) Forward(dst, src []complex128) error {
	if err := checkLine(b, dst, src); err != nil {
		return err
	}
	copy(dst, fft.FFT(src))
	return nil
}

func (b *godspBackend) Inverse(dst, src []complex128) error {
	if err := checkLine(b, dst, src); err != nil {
		return err
	}
	copy(dst, fft.IFFT(src))
	return nil
}

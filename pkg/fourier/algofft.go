package fourier

import (
	"fmt"

	algofft "github.com/MeKo-Christian/algo-fft"
)

type algoFFTBackend struct {
	plan *algofft.Plan[complex128]
	n    int
}

func newAlgoFFTBackend(n int) (Backend, error) {
	if err := validateSize(n); err != nil {
		return nil, err
	}
	plan, err := algofft.NewPlan64(n)
	if err != nil {
		return nil, fmt.Errorf("fourier: failed to create FFT plan: %w", err)
	}
	return &algoFFTBackend{plan: plan, n: n}, nil
}

func (b *algoFFTBackend) Len() int { return b.n }

func (b *algoFFTBackend) Forward(dst, src []complex128) error {
	if err := checkLine(b, dst, src); err != nil {
		return err
	}
	if err := b.plan.Forward(dst, src); err != nil {
		return fmt.Errorf("fourier: forward FFT failed: %w", err)
	}
	return nil
}

func (b *algoFFTBackend) Inverse(dst, src []complex128) error {
	if err := checkLine(b, dst, src); err != nil {
		return err
	}
	if err := b.plan.Inverse(dst, src); err != nil {
		return fmt.Errorf("fourier: inverse FFT failed: %w", err)
	}
	return nil
}

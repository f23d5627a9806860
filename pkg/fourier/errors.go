package fourier

import (
	"errors"
	"fmt"
)

var (
	// ErrNotPowerOfTwo is returned when a grid or line length is not a power of two.
	ErrNotPowerOfTwo = errors.New("fourier: size must be a power of two")
	// ErrSizeMismatch is returned when a buffer does not match the configured grid.
	ErrSizeMismatch = errors.New("fourier: buffer size mismatch")
	// ErrOddDimension is returned by Shift for odd widths or heights.
	ErrOddDimension = errors.New("fourier: shift requires even dimensions")
	// ErrUnknownBackend is returned for an unregistered backend name.
	ErrUnknownBackend = errors.New("fourier: unknown backend")
)

// IsPowerOfTwo reports whether n is a positive power of two.
func IsPowerOfTwo(n int) bool {
	return n > 0 && n&(n-1) == 0
}

func validateSize(n int) error {
	if !IsPowerOfTwo(n) {
		return fmt.Errorf("%w: %d", ErrNotPowerOfTwo, n)
	}
	return nil
}

func validateLen(name string, got, want int) error {
	if got != want {
		return fmt.Errorf("%w: %s has %d elements, expected %d", ErrSizeMismatch, name, got, want)
	}
	return nil
}

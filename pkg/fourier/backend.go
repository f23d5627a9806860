package fourier

import (
	"fmt"
	"sort"
)

// Backend names accepted by LookupBackend and WithBackend.
const (
	BackendGonum   = "gonum"
	BackendAlgoFFT = "algofft"
	BackendGoDSP   = "godsp"
)

// Backend computes 1D complex transforms of a fixed length.
// Forward is unnormalized, Inverse is scaled by 1/Len().
// A Backend may keep scratch state and is not safe for concurrent use.
type Backend interface {
	Len() int
	Forward(dst, src []complex128) error
	Inverse(dst, src []complex128) error
}

// BackendFactory builds a Backend for transforms of length n.
type BackendFactory func(n int) (Backend, error)

var backends = map[string]BackendFactory{
	BackendGonum:   newGonumBackend,
	BackendAlgoFFT: newAlgoFFTBackend,
	BackendGoDSP:   newGoDSPBackend,
}

// LookupBackend returns the factory registered under name.
func LookupBackend(name string) (BackendFactory, error) {
	factory, ok := backends[name]
	if !ok {
		return nil, fmt.Errorf("%w: %q (available: %v)", ErrUnknownBackend, name, Backends())
	}
	return factory, nil
}

// Backends lists the registered backend names in sorted order.
func Backends() []string {
	names := make([]string, 0, len(backends))
	for name := range backends {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

func checkLine(b Backend, dst, src []complex128) error {
	if err := validateLen("dst", len(dst), b.Len()); err != nil {
		return err
	}
	return validateLen("src", len(src), b.Len())
}

package fourier

import (
	"fmt"
	"runtime"

	"golang.org/x/sync/errgroup"
)

// Engine performs 2D transforms on square power-of-two grids by decomposing
// them into 1D row transforms followed by 1D column transforms.
//
// The line passes can be split across workers; each worker owns its Backend
// and scratch lines, so an Engine is not safe for concurrent use.
type Engine struct {
	size    int
	backend string
	workers []*lineWorker
}

// lineWorker transforms a contiguous range of lines.
type lineWorker struct {
	backend Backend
	in      []complex128
	out     []complex128
}

type engineOptions struct {
	backend string
	workers int
}

// Option configures an Engine.
type Option func(*engineOptions)

// WithBackend selects the 1D transform backend by name.
func WithBackend(name string) Option {
	return func(o *engineOptions) {
		o.backend = name
	}
}

// WithWorkers sets how many goroutines share a line pass. Values below 1
// select runtime.NumCPU(); 1 keeps every pass on the calling goroutine.
func WithWorkers(n int) Option {
	return func(o *engineOptions) {
		o.workers = n
	}
}

// NewEngine creates an engine for size×size grids.
func NewEngine(size int, opts ...Option) (*Engine, error) {
	o := engineOptions{backend: BackendGonum, workers: 1}
	for _, opt := range opts {
		opt(&o)
	}

	if err := validateSize(size); err != nil {
		return nil, err
	}
	factory, err := LookupBackend(o.backend)
	if err != nil {
		return nil, err
	}

	workers := o.workers
	if workers < 1 {
		workers = runtime.NumCPU()
	}
	if workers > size {
		workers = size
	}

	e := &Engine{
		size:    size,
		backend: o.backend,
		workers: make([]*lineWorker, workers),
	}
	for i := range e.workers {
		b, err := factory(size)
		if err != nil {
			return nil, fmt.Errorf("fourier: failed to create %s backend: %w", o.backend, err)
		}
		e.workers[i] = &lineWorker{
			backend: b,
			in:      make([]complex128, size),
			out:     make([]complex128, size),
		}
	}
	return e, nil
}

// Size returns the grid dimension.
func (e *Engine) Size() int { return e.size }

// Backend returns the name of the 1D backend in use.
func (e *Engine) Backend() string { return e.backend }

// Workers returns the number of line workers.
func (e *Engine) Workers() int { return len(e.workers) }

// Forward transforms a real-valued row-major grid into its (unshifted)
// complex spectrum.
func (e *Engine) Forward(src []float64) (re, im []float64, err error) {
	if err := validateLen("input", len(src), e.size*e.size); err != nil {
		return nil, nil, err
	}

	grid := make([]complex128, len(src))
	for i, v := range src {
		grid[i] = complex(v, 0)
	}
	if err := e.transform2D(grid, false); err != nil {
		return nil, nil, err
	}
	re, im = split(grid)
	return re, im, nil
}

// ForwardComplex transforms a complex grid given as separate planes.
func (e *Engine) ForwardComplex(re, im []float64) (outRe, outIm []float64, err error) {
	grid, err := e.join(re, im)
	if err != nil {
		return nil, nil, err
	}
	if err := e.transform2D(grid, false); err != nil {
		return nil, nil, err
	}
	outRe, outIm = split(grid)
	return outRe, outIm, nil
}

// InverseComplex applies the inverse 2D transform and keeps the complex result.
func (e *Engine) InverseComplex(re, im []float64) (outRe, outIm []float64, err error) {
	grid, err := e.join(re, im)
	if err != nil {
		return nil, nil, err
	}
	if err := e.transform2D(grid, true); err != nil {
		return nil, nil, err
	}
	outRe, outIm = split(grid)
	return outRe, outIm, nil
}

// Inverse applies the inverse 2D transform and collapses each cell to its
// magnitude. Residual imaginary energy counts as reconstruction error and the
// phase is discarded.
func (e *Engine) Inverse(re, im []float64) ([]float64, error) {
	outRe, outIm, err := e.InverseComplex(re, im)
	if err != nil {
		return nil, err
	}
	mag := make([]float64, len(outRe))
	Magnitude(mag, outRe, outIm)
	return mag, nil
}

func (e *Engine) join(re, im []float64) ([]complex128, error) {
	n := e.size * e.size
	if err := validateLen("real", len(re), n); err != nil {
		return nil, err
	}
	if err := validateLen("imag", len(im), n); err != nil {
		return nil, err
	}
	grid := make([]complex128, n)
	for i := range grid {
		grid[i] = complex(re[i], im[i])
	}
	return grid, nil
}

func split(grid []complex128) (re, im []float64) {
	re = make([]float64, len(grid))
	im = make([]float64, len(grid))
	for i, c := range grid {
		re[i] = real(c)
		im[i] = imag(c)
	}
	return re, im
}

// transform2D runs the row pass then the column pass in place. Forward and
// inverse use the same order.
func (e *Engine) transform2D(grid []complex128, inverse bool) error {
	if err := e.pass(grid, inverse, false); err != nil {
		return err
	}
	return e.pass(grid, inverse, true)
}

func (e *Engine) pass(grid []complex128, inverse, columns bool) error {
	if len(e.workers) == 1 {
		return e.workers[0].run(grid, e.size, 0, e.size, inverse, columns)
	}

	chunk := (e.size + len(e.workers) - 1) / len(e.workers)
	var g errgroup.Group
	for i, w := range e.workers {
		start := i * chunk
		end := min(start+chunk, e.size)
		if start >= end {
			break
		}
		g.Go(func() error {
			return w.run(grid, e.size, start, end, inverse, columns)
		})
	}
	return g.Wait()
}

// run transforms lines [start, end) of the grid. Rows and columns never
// overlap between workers within one pass, so no locking is required.
func (w *lineWorker) run(grid []complex128, n, start, end int, inverse, columns bool) error {
	for line := start; line < end; line++ {
		if columns {
			for i := 0; i < n; i++ {
				w.in[i] = grid[i*n+line]
			}
		} else {
			copy(w.in, grid[line*n:(line+1)*n])
		}

		var err error
		if inverse {
			err = w.backend.Inverse(w.out, w.in)
		} else {
			err = w.backend.Forward(w.out, w.in)
		}
		if err != nil {
			return fmt.Errorf("fourier: line %d: %w", line, err)
		}

		if columns {
			for i := 0; i < n; i++ {
				grid[i*n+line] = w.out[i]
			}
		} else {
			copy(grid[line*n:(line+1)*n], w.out)
		}
	}
	return nil
}

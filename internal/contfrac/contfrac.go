// Package contfrac evaluates generalized continued fractions
//
//	b_0 + a_1/(b_1 + a_2/(b_2 + ...))
//
// elementwise over batches of independent problems, using the modified
// Lentz algorithm in linear or log-domain arithmetic.
package contfrac

import (
	"slices"

	"github.com/samcharles93/contfrac/internal/elementwise"
	"github.com/samcharles93/contfrac/internal/tensor"
)

// Result reports the outcome of Evaluate, one entry per element of the
// broadcast shape. Shape is empty when every input was a scalar.
type Result[T tensor.Number] struct {
	Shape   []int
	Success []bool
	Status  []elementwise.Status
	// F is the convergent that satisfied a termination criterion, or the
	// last one computed. In log mode it is the logarithm of the convergent.
	F    []T
	Nit  []int
	Nfev []int
}

// Len returns the number of elements.
func (r Result[T]) Len() int { return len(r.F) }

// Element is one problem's outcome.
type Element[T tensor.Number] struct {
	Success bool
	Status  elementwise.Status
	F       T
	Nit     int
	Nfev    int
}

// At returns the outcome of element i in row-major order.
func (r Result[T]) At(i int) Element[T] {
	return Element[T]{
		Success: r.Success[i],
		Status:  r.Status[i],
		F:       r.F[i],
		Nit:     r.Nit[i],
		Nfev:    r.Nfev[i],
	}
}

// Evaluate computes the continued fraction whose numerators come from a and
// denominators from b, elementwise over the broadcast of args.
//
// The shape and dtype of the problem are fixed by a(0, args...) and
// b(0, args...). The value of a(0) is ignored; b(0) is the leading term.
// Iteration stops per element on convergence (status 0) or a non-finite
// convergent (status -3); elements still running after opts.MaxIter terms
// end with status -2. Only configuration problems and errors returned by a
// or b are reported through the error.
func Evaluate[T tensor.Number](a, b CoefficientFunc[T], opts Options, args ...tensor.Array[T]) (Result[T], error) {
	ad, err := newAdapter(a, b)
	if err != nil {
		return Result[T]{}, err
	}
	r, err := resolve[T](opts)
	if err != nil {
		return Result[T]{}, err
	}

	s, shape, err := initialize(ad, args, r)
	if err != nil {
		return Result[T]{}, err
	}
	size := tensor.ShapeSize(shape)
	r.logger.Debug("evaluating continued fraction",
		"elements", size, "dtype", tensor.DTypeOf[T]().String(),
		"log", r.log, "eps", r.eps, "tiny", r.tiny, "maxiter", r.maxiter)

	out, err := elementwise.Loop(s, size, r.maxiter)
	if err != nil {
		return Result[T]{}, err
	}

	res := Result[T]{
		Shape:   slices.Clone(shape),
		Success: make([]bool, size),
		Status:  out.Status,
		F:       s.f,
		Nit:     out.Nit,
		Nfev:    out.Nfev,
	}
	converged := 0
	for i, st := range out.Status {
		res.Success[i] = st.Success()
		if res.Success[i] {
			converged++
		}
	}
	r.logger.Debug("continued fraction done",
		"iterations", out.Iterations, "converged", converged, "elements", size)
	return res, nil
}

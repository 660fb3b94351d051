package series

import (
	"fmt"

	"github.com/samcharles93/contfrac/internal/contfrac"
	"github.com/samcharles93/contfrac/internal/tensor"
)

// Table returns coefficient functions backed by explicit lists. a holds
// a_1, a_2, ... and b holds b_0, b_1, ...; a list of length one is used
// for every term. Asking for a term past the end of a list fails with
// ErrTableExhausted.
func Table[T tensor.Number](a, b []float64) (an, bn contfrac.CoefficientFunc[T], err error) {
	if len(a) == 0 || len(b) == 0 {
		return nil, nil, fmt.Errorf("%w: table needs non-empty a and b", ErrArgs)
	}
	an = func(n int, _ ...tensor.Array[T]) (tensor.Array[T], error) {
		// a_0 only fixes the shape.
		i := max(n-1, 0)
		if len(a) == 1 {
			i = 0
		}
		if i >= len(a) {
			return tensor.Array[T]{}, fmt.Errorf("%w: a_%d requested, %d given", ErrTableExhausted, n, len(a))
		}
		return tensor.Scalar(tensor.FromFloat[T](a[i])), nil
	}
	bn = func(n int, _ ...tensor.Array[T]) (tensor.Array[T], error) {
		i := n
		if len(b) == 1 {
			i = 0
		}
		if i >= len(b) {
			return tensor.Array[T]{}, fmt.Errorf("%w: b_%d requested, %d given", ErrTableExhausted, n, len(b))
		}
		return tensor.Scalar(tensor.FromFloat[T](b[i])), nil
	}
	return an, bn, nil
}

// tableTerms returns how many terms after b_0 the lists can supply, or -1
// when both are constant.
func tableTerms(a, b []float64) int {
	terms := -1
	if len(a) > 1 {
		terms = len(a)
	}
	if len(b) > 1 && (terms < 0 || len(b)-1 < terms) {
		terms = len(b) - 1
	}
	return terms
}

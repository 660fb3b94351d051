package contfrac

import (
	"fmt"

	"github.com/samcharles93/contfrac/internal/tensor"
)

// CoefficientFunc returns a coefficient of the continued fraction for term n.
//
// args are the caller's extra arrays, already broadcast to a common shape and
// restricted to the elements still being iterated. The result must hold one
// value per element, or a single value that applies to all of them. The
// function must be elementwise (element i of the result depends only on
// element i of each argument) and must not modify args.
type CoefficientFunc[T tensor.Number] func(n int, args ...tensor.Array[T]) (tensor.Array[T], error)

// adapter invokes the numerator and denominator functions with the active
// arguments and stacks their results into pairs.
type adapter[T tensor.Number] struct {
	a, b CoefficientFunc[T]
	args []tensor.Array[T]
	// pairs has shape [m, 2]: pairs.Data[2i] = a_n, pairs.Data[2i+1] = b_n.
	pairs tensor.Array[T]
}

func newAdapter[T tensor.Number](a, b CoefficientFunc[T]) (*adapter[T], error) {
	switch {
	case a == nil && b == nil:
		return nil, fmt.Errorf("%w: a and b are nil", ErrNotCallable)
	case a == nil:
		return nil, fmt.Errorf("%w: a is nil", ErrNotCallable)
	case b == nil:
		return nil, fmt.Errorf("%w: b is nil", ErrNotCallable)
	}
	return &adapter[T]{a: a, b: b}, nil
}

// bind installs flattened arguments of m elements each.
func (ad *adapter[T]) bind(args []tensor.Array[T], m int) {
	ad.args = args
	ad.pairs = tensor.NewArray[T](m, 2)
}

// evaluate returns [a(n, args), b(n, args)] stacked along the last axis. The
// returned array is reused by the next call.
func (ad *adapter[T]) evaluate(n int) (tensor.Array[T], error) {
	m := ad.pairs.Shape[0]
	an, err := ad.call(ad.a, "a", n, m)
	if err != nil {
		return tensor.Array[T]{}, err
	}
	bn, err := ad.call(ad.b, "b", n, m)
	if err != nil {
		return tensor.Array[T]{}, err
	}
	for i := 0; i < m; i++ {
		ad.pairs.Data[2*i] = pick(an, i)
		ad.pairs.Data[2*i+1] = pick(bn, i)
	}
	return ad.pairs, nil
}

func (ad *adapter[T]) call(f CoefficientFunc[T], name string, n, m int) (tensor.Array[T], error) {
	out, err := f(n, ad.args...)
	if err != nil {
		return out, fmt.Errorf("%s(%d): %w", name, n, err)
	}
	if size := out.Size(); size != m && size != 1 {
		return out, fmt.Errorf("%w: %s(%d) returned %d values for %d elements", ErrShape, name, n, size, m)
	}
	return out, nil
}

// compact keeps the argument rows listed in keep.
func (ad *adapter[T]) compact(keep []int) {
	for i := range ad.args {
		ad.args[i].Data = tensor.Take(ad.args[i].Data, ad.args[i].Data, keep)
		ad.args[i].Shape = []int{len(keep)}
	}
	ad.pairs.Data = ad.pairs.Data[:2*len(keep)]
	ad.pairs.Shape = []int{len(keep), 2}
}

func pick[T tensor.Number](a tensor.Array[T], i int) T {
	if len(a.Data) == 1 {
		return a.Data[0]
	}
	return a.Data[i]
}

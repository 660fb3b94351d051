package series

import (
	"math"
	"math/cmplx"

	"github.com/samcharles93/contfrac/internal/contfrac"
	"github.com/samcharles93/contfrac/internal/tensor"
)

// Log wraps f so that it returns the natural logarithm of each coefficient,
// as log-mode evaluation expects. For complex T a negative coefficient v
// becomes log|v| + iπ; for real T it becomes NaN.
func Log[T tensor.Number](f contfrac.CoefficientFunc[T]) contfrac.CoefficientFunc[T] {
	isComplex := tensor.DTypeOf[T]().IsComplex()
	return func(n int, args ...tensor.Array[T]) (tensor.Array[T], error) {
		out, err := f(n, args...)
		if err != nil {
			return out, err
		}
		logged := out.Clone()
		for i, v := range logged.Data {
			if isComplex {
				logged.Data[i] = tensor.FromComplex[T](cmplx.Log(tensor.Complex(v)))
			} else {
				logged.Data[i] = tensor.FromFloat[T](math.Log(tensor.Real(v)))
			}
		}
		return logged, nil
	}
}

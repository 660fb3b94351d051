package contfrac

import (
	"math"

	"github.com/samcharles93/contfrac/internal/elementwise"
	"github.com/samcharles93/contfrac/internal/tensor"
)

// iPi is log(-1): adding it in the log domain negates the linear value.
var iPi = complex(0, math.Pi)

// Check applies the termination tests to every active element, first match
// wins:
//
//  1. converged when |C_n D_n - 1| < eps;
//  2. value error when the convergent is not finite (in log mode -Inf is a
//     legitimate zero and not an error).
func (s *state[T]) Check(status []elementwise.Status, stop []bool) {
	for i := range s.fn {
		switch {
		case s.residual(s.cndn[i]) < s.eps:
			status[i] = elementwise.StatusConverged
			stop[i] = true
		case !tensor.IsFinite(s.fn[i]) && !(s.log && tensor.IsNegInf(s.fn[i])):
			status[i] = elementwise.StatusValueError
			stop[i] = true
		}
	}
}

// residual measures how far the correction factor is from one. In log mode
// it is log|exp(cndn) - 1|, computed as Re(logaddexp(cndn, iπ)) so the same
// primitive serves both the recurrence and the test.
func (s *state[T]) residual(cndn T) float64 {
	if s.log {
		return real(tensor.LogAddExp(tensor.Complex(cndn), iPi))
	}
	return tensor.Abs(cndn - 1)
}

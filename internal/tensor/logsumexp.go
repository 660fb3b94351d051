package tensor

import (
	"math"
	"math/cmplx"
)

// LogAddExp returns log(exp(x) + exp(y)) without overflowing.
//
// Complex inputs are supported so that the sign of a log-domain quantity can
// travel in the imaginary part: log(-v) = log(v) + iπ. For real T the result
// is always real; a sum whose true value would be negative cannot be
// represented and callers needing signs must use a complex T.
func LogAddExp[T Number](x, y T) T {
	switch v := any(x).(type) {
	case float32:
		return any(float32(logAddExpReal(float64(v), float64(any(y).(float32))))).(T)
	case float64:
		return any(logAddExpReal(v, any(y).(float64))).(T)
	}
	return FromComplex[T](logAddExpComplex(Complex(x), Complex(y)))
}

func logAddExpReal(x, y float64) float64 {
	m := math.Max(x, y)
	if math.IsInf(m, 0) || math.IsNaN(m) {
		return m
	}
	return m + math.Log1p(math.Exp(-math.Abs(x-y)))
}

func logAddExpComplex(x, y complex128) complex128 {
	m := math.Max(real(x), real(y))
	switch {
	case math.IsNaN(m):
		return cmplx.NaN()
	case math.IsInf(m, 0):
		return complex(m, 0)
	}
	shift := complex(m, 0)
	return logOf(cmplx.Exp(x-shift)+cmplx.Exp(y-shift)) + shift
}

// logOf is cmplx.Log with an exact zero mapped to (-Inf + 0i).
func logOf(z complex128) complex128 {
	if z == 0 {
		return complex(math.Inf(-1), 0)
	}
	return cmplx.Log(z)
}

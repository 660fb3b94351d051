package tensor

import (
	"math"
	"math/cmplx"
)

// FromFloat converts a real value to T. Complex types get a zero imaginary
// part.
func FromFloat[T Number](x float64) T {
	var out T
	switch p := any(&out).(type) {
	case *float32:
		*p = float32(x)
	case *float64:
		*p = x
	case *complex64:
		*p = complex(float32(x), 0)
	case *complex128:
		*p = complex(x, 0)
	}
	return out
}

// FromComplex converts z to T, dropping the imaginary part for real types.
func FromComplex[T Number](z complex128) T {
	var out T
	switch p := any(&out).(type) {
	case *float32:
		*p = float32(real(z))
	case *float64:
		*p = real(z)
	case *complex64:
		*p = complex64(z)
	case *complex128:
		*p = z
	}
	return out
}

// Complex widens x to complex128.
func Complex[T Number](x T) complex128 {
	switch v := any(x).(type) {
	case float32:
		return complex(float64(v), 0)
	case float64:
		return complex(v, 0)
	case complex64:
		return complex128(v)
	case complex128:
		return v
	}
	return 0
}

// Real returns the real part of x as float64.
func Real[T Number](x T) float64 {
	return real(Complex(x))
}

// Abs returns |x| (the modulus for complex values).
func Abs[T Number](x T) float64 {
	switch v := any(x).(type) {
	case float32:
		return math.Abs(float64(v))
	case float64:
		return math.Abs(v)
	}
	return cmplx.Abs(Complex(x))
}

// IsFinite reports whether every component of x is neither NaN nor ±Inf.
func IsFinite[T Number](x T) bool {
	z := Complex(x)
	return finite(real(z)) && finite(imag(z))
}

// IsNegInf reports whether x is the log-domain zero, i.e. its real part is
// -Inf. The imaginary part only carries phase and is ignored.
func IsNegInf[T Number](x T) bool {
	return math.IsInf(Real(x), -1)
}

func finite(f float64) bool {
	return !math.IsNaN(f) && !math.IsInf(f, 0)
}

// Fill sets every element of dst to v.
func Fill[T Number](dst []T, v T) {
	for i := range dst {
		dst[i] = v
	}
}

// Take gathers src[idx[i]] into dst[i]. dst may alias src as long as idx is
// increasing, which is how batches are compacted in place.
func Take[T any](dst, src []T, idx []int) []T {
	dst = dst[:len(idx)]
	for i, j := range idx {
		dst[i] = src[j]
	}
	return dst
}

package tensor

import (
	"fmt"
	"math"
	"strings"
)

// Number is the set of element types a batch may hold. Integer inputs are
// promoted to Float64 before they reach an Array.
type Number interface {
	float32 | float64 | complex64 | complex128
}

// DType names an element encoding. Int exists only as an input type for
// promotion; arrays never hold it.
type DType uint8

const (
	Int DType = iota
	Float32
	Float64
	Complex64
	Complex128
)

func (d DType) String() string {
	switch d {
	case Int:
		return "int"
	case Float32:
		return "float32"
	case Float64:
		return "float64"
	case Complex64:
		return "complex64"
	case Complex128:
		return "complex128"
	default:
		return fmt.Sprintf("dtype(%d)", uint8(d))
	}
}

// ParseDType converts a dtype name. The empty string selects Float64.
func ParseDType(s string) (DType, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "", "float64", "f64", "double":
		return Float64, nil
	case "float32", "f32", "single":
		return Float32, nil
	case "complex64", "c64":
		return Complex64, nil
	case "complex128", "c128", "complex":
		return Complex128, nil
	case "int", "int64":
		return Int, nil
	default:
		return 0, fmt.Errorf("unknown dtype %q", s)
	}
}

// IsComplex reports whether d carries an imaginary part.
func (d DType) IsComplex() bool { return d == Complex64 || d == Complex128 }

// DTypeOf returns the DType of T.
func DTypeOf[T Number]() DType {
	var z T
	switch any(z).(type) {
	case float32:
		return Float32
	case complex64:
		return Complex64
	case complex128:
		return Complex128
	default:
		return Float64
	}
}

// ResultType promotes dtypes the way mixed arithmetic would: the widest
// precision wins and any complex operand makes the result complex. Int mixed
// with float32 widens to float64, and a result that would be Int falls back
// to Float64.
func ResultType(dtypes ...DType) DType {
	var (
		complexSeen bool
		wide        bool
		floatSeen   bool
	)
	for _, d := range dtypes {
		switch d {
		case Int:
			wide = true
		case Float32:
			floatSeen = true
		case Float64:
			floatSeen = true
			wide = true
		case Complex64:
			floatSeen = true
			complexSeen = true
		case Complex128:
			floatSeen = true
			complexSeen = true
			wide = true
		}
	}
	switch {
	case !floatSeen:
		return Float64
	case complexSeen && wide:
		return Complex128
	case complexSeen:
		return Complex64
	case wide:
		return Float64
	default:
		return Float32
	}
}

// Eps returns the machine epsilon of the real component of T.
func Eps[T Number]() float64 {
	switch DTypeOf[T]() {
	case Float32, Complex64:
		return float64(math.Nextafter32(1, 2) - 1)
	default:
		return math.Nextafter(1, 2) - 1
	}
}

// Package series provides ready-made continued fractions, the problem-file
// format used by the CLI and the HTTP service, and the glue that runs a
// decoded problem through contfrac.Evaluate.
package series

import (
	"fmt"
	"slices"
	"strings"

	"github.com/samcharles93/contfrac/internal/contfrac"
	"github.com/samcharles93/contfrac/internal/tensor"
)

// term computes one coefficient for a single element from that element's
// arguments.
type term func(n int, x []complex128) complex128

// Family is a named continued fraction whose coefficients are closed-form
// functions of the term index and the problem arguments.
type Family struct {
	Name        string   `json:"name" yaml:"name"`
	Description string   `json:"description" yaml:"description"`
	Args        []string `json:"args" yaml:"args"`
	// Table families take their coefficients from Problem.A and Problem.B.
	Table bool `json:"table,omitempty" yaml:"table,omitempty"`

	a, b term
}

const TableFamily = "table"

var families = []Family{
	{
		Name:        TableFamily,
		Description: "explicit coefficient lists: a starts at a_1, b starts at b_0; a one-element list is constant",
		Table:       true,
	},
	{
		Name:        "arctan",
		Description: "scale*arctan(1/u) = scale/(u + 1/(3u + 4/(5u + 9/(7u + ...))))",
		Args:        []string{"scale", "u"},
		a: func(n int, x []complex128) complex128 {
			if n <= 1 {
				return x[0]
			}
			k := complex(float64(n-1), 0)
			return k * k
		},
		b: func(n int, x []complex128) complex128 {
			if n == 0 {
				return 0
			}
			return complex(float64(2*n-1), 0) * x[1]
		},
	},
	{
		Name:        "tan",
		Description: "tan(x) = x/(1 - x^2/(3 - x^2/(5 - ...)))",
		Args:        []string{"x"},
		a: func(n int, x []complex128) complex128 {
			if n <= 1 {
				return x[0]
			}
			return -x[0] * x[0]
		},
		b: func(n int, x []complex128) complex128 {
			if n == 0 {
				return 0
			}
			return complex(float64(2*n-1), 0)
		},
	},
	{
		Name:        "sqrt",
		Description: "sqrt(1+x) = 1 + x/(2 + x/(2 + ...))",
		Args:        []string{"x"},
		a: func(n int, x []complex128) complex128 {
			return x[0]
		},
		b: func(n int, x []complex128) complex128 {
			if n == 0 {
				return 1
			}
			return 2
		},
	},
	{
		Name:        "golden",
		Description: "golden ratio 1 + 1/(1 + 1/(1 + ...))",
		a:           func(int, []complex128) complex128 { return 1 },
		b:           func(int, []complex128) complex128 { return 1 },
	},
	{
		Name:        "pi",
		Description: "pi = 3 + 1/(6 + 9/(6 + 25/(6 + ...))), converges slowly",
		a: func(n int, _ []complex128) complex128 {
			k := complex(float64(2*n-1), 0)
			return k * k
		},
		b: func(n int, _ []complex128) complex128 {
			if n == 0 {
				return 3
			}
			return 6
		},
	},
}

// Families returns the catalogue in display order.
func Families() []Family {
	return slices.Clone(families)
}

// Lookup finds a family by case-insensitive name.
func Lookup(name string) (Family, error) {
	key := strings.ToLower(strings.TrimSpace(name))
	for _, f := range families {
		if f.Name == key {
			return f, nil
		}
	}
	return Family{}, fmt.Errorf("%w: %q", ErrUnknownFamily, name)
}

// Coefficients returns the numerator and denominator functions of a
// closed-form family. Table families need Table instead.
func Coefficients[T tensor.Number](f Family) (a, b contfrac.CoefficientFunc[T], err error) {
	if f.Table {
		return nil, nil, fmt.Errorf("%w: family %q needs explicit coefficients", ErrArgs, f.Name)
	}
	return coefficient[T](f, f.a), coefficient[T](f, f.b), nil
}

// coefficient lifts a per-element term to whole arrays. The arguments are
// broadcast against each other first because the leading term is evaluated
// on the caller's arrays before the evaluator has aligned them.
func coefficient[T tensor.Number](f Family, t term) contfrac.CoefficientFunc[T] {
	return func(n int, args ...tensor.Array[T]) (tensor.Array[T], error) {
		if len(args) != len(f.Args) {
			return tensor.Array[T]{}, fmt.Errorf("%w: %s takes %d arguments (%s), got %d",
				ErrArgs, f.Name, len(f.Args), strings.Join(f.Args, ", "), len(args))
		}
		if len(args) == 0 {
			return tensor.Scalar(tensor.FromComplex[T](t(n, nil))), nil
		}

		shapes := make([][]int, len(args))
		for i, arg := range args {
			shapes[i] = arg.Shape
		}
		shape, err := tensor.BroadcastShapes(shapes...)
		if err != nil {
			return tensor.Array[T]{}, fmt.Errorf("%w: %w", ErrArgs, err)
		}
		full := make([]tensor.Array[T], len(args))
		for i, arg := range args {
			if slices.Equal(arg.Shape, shape) {
				full[i] = arg
				continue
			}
			if full[i], err = tensor.BroadcastTo(arg, shape); err != nil {
				return tensor.Array[T]{}, fmt.Errorf("%w: %w", ErrArgs, err)
			}
		}

		out := tensor.NewArray[T](shape...)
		x := make([]complex128, len(args))
		for i := range out.Data {
			for j := range full {
				x[j] = tensor.Complex(full[j].Data[i])
			}
			out.Data[i] = tensor.FromComplex[T](t(n, x))
		}
		return out, nil
	}
}

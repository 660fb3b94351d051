package series

import (
	"context"
	"fmt"
	"math"
	"math/cmplx"

	"github.com/samcharles93/contfrac/internal/contfrac"
	"github.com/samcharles93/contfrac/internal/logger"
	"github.com/samcharles93/contfrac/internal/tensor"
)

// Report is the outcome of one problem.
type Report struct {
	Name     string    `json:"name"`
	Family   string    `json:"family"`
	DType    string    `json:"dtype"`
	Log      bool      `json:"log"`
	Shape    []int     `json:"shape"`
	Elements []Element `json:"elements"`
}

// Element is the outcome of one element of a problem. F is what the
// evaluator returned (a logarithm in log mode) and Value is the convergent
// itself.
type Element struct {
	Success bool   `json:"success"`
	Status  int    `json:"status"`
	Message string `json:"message"`
	F       Value  `json:"f"`
	Value   Value  `json:"value"`
	Nit     int    `json:"nit"`
	Nfev    int    `json:"nfev"`
}

// DTypeFor returns the element type a problem runs in. Log mode always
// runs complex so that negative coefficients keep their sign as phase.
func DTypeFor(s Settings) (tensor.DType, error) {
	dt, err := tensor.ParseDType(s.DType)
	if err != nil {
		return 0, fmt.Errorf("%w: %w", ErrArgs, err)
	}
	dt = tensor.ResultType(dt)
	if s.LogMode() {
		dt = tensor.ResultType(dt, tensor.Complex128)
	}
	return dt, nil
}

// Run evaluates one problem. The logger in ctx receives the evaluator's
// debug output.
func Run(ctx context.Context, s Settings, p Problem, index int) (Report, error) {
	if err := p.Validate(); err != nil {
		return Report{}, err
	}
	dt, err := DTypeFor(s)
	if err != nil {
		return Report{}, err
	}
	opts, err := s.Options()
	if err != nil {
		return Report{}, err
	}
	log := logger.FromContext(ctx).With("problem", p.Label(index))
	opts.Logger = log
	if p.MaxIter != nil {
		opts.MaxIter = p.MaxIter
	}

	var rep Report
	switch dt {
	case tensor.Float32:
		rep, err = run[float32](p, opts)
	case tensor.Complex64:
		rep, err = run[complex64](p, opts)
	case tensor.Complex128:
		rep, err = run[complex128](p, opts)
	default:
		rep, err = run[float64](p, opts)
	}
	if err != nil {
		return Report{}, err
	}
	rep.Name = p.Label(index)
	log.Debug("problem evaluated", "elements", len(rep.Elements), "dtype", rep.DType)
	return rep, nil
}

// RunFile evaluates every problem of f in order, stopping at the first
// error.
func RunFile(ctx context.Context, f File) ([]Report, error) {
	problems := f.All()
	if len(problems) == 0 {
		return nil, ErrNoProblems
	}
	reports := make([]Report, 0, len(problems))
	for i, p := range problems {
		rep, err := Run(ctx, f.Settings, p, i)
		if err != nil {
			return nil, fmt.Errorf("problem %d (%s): %w", i, p.Label(i), err)
		}
		reports = append(reports, rep)
	}
	return reports, nil
}

func run[T tensor.Number](p Problem, opts contfrac.Options) (Report, error) {
	fam, err := p.family()
	if err != nil {
		return Report{}, err
	}

	var a, b contfrac.CoefficientFunc[T]
	if fam.Table {
		a, b, err = Table[T](p.A, p.B)
		// Stop where the lists end rather than failing on the next term.
		if terms := tableTerms(p.A, p.B); terms >= 0 {
			limit := contfrac.DefaultMaxIter
			if opts.MaxIter != nil {
				limit = *opts.MaxIter
			}
			opts.MaxIter = contfrac.Int(min(limit, terms))
		}
	} else {
		a, b, err = Coefficients[T](fam)
	}
	if err != nil {
		return Report{}, err
	}
	if opts.Log {
		a, b = Log(a), Log(b)
	}

	args := make([]tensor.Array[T], len(p.Args))
	for i, arg := range p.Args {
		data := make([]T, len(arg))
		for j, v := range arg {
			data[j] = tensor.FromFloat[T](v)
		}
		if len(data) == 1 {
			args[i] = tensor.Scalar(data[0])
		} else {
			args[i] = tensor.Vector(data)
		}
	}

	res, err := contfrac.Evaluate(a, b, opts, args...)
	if err != nil {
		return Report{}, err
	}

	rep := Report{
		Family:   fam.Name,
		DType:    tensor.DTypeOf[T]().String(),
		Log:      opts.Log,
		Shape:    res.Shape,
		Elements: make([]Element, res.Len()),
	}
	if rep.Shape == nil {
		rep.Shape = []int{}
	}
	for i := range rep.Elements {
		el := res.At(i)
		f := valueOf(el.F)
		v := f
		if opts.Log {
			v = f.exp()
		}
		rep.Elements[i] = Element{
			Success: el.Success,
			Status:  int(el.Status),
			Message: el.Status.String(),
			F:       f,
			Value:   v,
			Nit:     el.Nit,
			Nfev:    el.Nfev,
		}
	}
	return rep, nil
}

func valueOf[T tensor.Number](x T) Value {
	return Value{
		Re:      tensor.Real(x),
		Im:      imag(tensor.Complex(x)),
		Complex: tensor.DTypeOf[T]().IsComplex(),
	}
}

func (v Value) exp() Value {
	if !v.Complex {
		return Value{Re: math.Exp(v.Re)}
	}
	z := cmplx.Exp(complex(v.Re, v.Im))
	return Value{Re: real(z), Im: imag(z), Complex: true}
}

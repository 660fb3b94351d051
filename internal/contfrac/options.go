package contfrac

import (
	"fmt"
	"math"

	"github.com/samcharles93/contfrac/internal/logger"
	"github.com/samcharles93/contfrac/internal/tensor"
)

// DefaultMaxIter is the iteration cap used when Options.MaxIter is nil.
const DefaultMaxIter = 100

// Tolerances are the numerical thresholds of Lentz's algorithm. Nil fields
// take the defaults of the working dtype: Eps is its machine epsilon and Tiny
// is Eps squared. In log mode both hold logarithms.
type Tolerances struct {
	// Eps is the convergence threshold on |C_n D_n - 1|.
	Eps *float64 `yaml:"eps,omitempty" json:"eps,omitempty"`
	// Tiny replaces a denominator that vanishes exactly.
	Tiny *float64 `yaml:"tiny,omitempty" json:"tiny,omitempty"`
}

// Options configures Evaluate.
type Options struct {
	Tolerances Tolerances
	// MaxIter caps the number of terms evaluated after the leading one.
	MaxIter *int
	// Log switches every coefficient, tolerance and the reported convergent
	// to natural-log form.
	Log bool
	// Logger receives debug output. Nil discards it.
	Logger logger.Logger
}

// resolved holds validated options with defaults applied for dtype T.
type resolved struct {
	eps     float64
	tiny    float64
	maxiter int
	log     bool
	logger  logger.Logger
}

// Validate reports configuration errors without running anything.
func (o Options) Validate() error {
	for _, tol := range []struct {
		name string
		v    *float64
	}{{"eps", o.Tolerances.Eps}, {"tiny", o.Tolerances.Tiny}} {
		if tol.v == nil {
			continue
		}
		v := *tol.v
		if math.IsNaN(v) || math.IsInf(v, 0) {
			return fmt.Errorf("%w: %s=%g", ErrTolerance, tol.name, v)
		}
		if !o.Log && v <= 0 {
			return fmt.Errorf("%w: %s=%g", ErrTolerance, tol.name, v)
		}
	}
	if o.MaxIter != nil && *o.MaxIter < 0 {
		return fmt.Errorf("%w: got %d", ErrMaxIter, *o.MaxIter)
	}
	return nil
}

func resolve[T tensor.Number](o Options) (resolved, error) {
	if err := o.Validate(); err != nil {
		return resolved{}, err
	}
	r := resolved{
		maxiter: DefaultMaxIter,
		log:     o.Log,
		logger:  o.Logger,
	}
	if o.MaxIter != nil {
		r.maxiter = *o.MaxIter
	}
	if r.logger == nil {
		r.logger = logger.Nop()
	}

	eps := tensor.Eps[T]()
	if o.Tolerances.Eps != nil {
		r.eps = *o.Tolerances.Eps
	} else if o.Log {
		r.eps = math.Log(eps)
	} else {
		r.eps = eps
	}
	if o.Tolerances.Tiny != nil {
		r.tiny = *o.Tolerances.Tiny
	} else if o.Log {
		r.tiny = 2 * math.Log(eps)
	} else {
		r.tiny = eps * eps
	}
	return r, nil
}

// Float returns a pointer to v, for filling Tolerances.
func Float(v float64) *float64 { return &v }

// Int returns a pointer to v, for filling Options.MaxIter.
func Int(v int) *int { return &v }

package api

import "fmt"

// Evaluations run inside the request, so a request may ask for only this
// much work.
const (
	MaxRequestBytes    = 1 << 20
	MaxRequestProblems = 64
	MaxRequestIter     = 10_000
	// MaxRequestElements bounds every argument and coefficient list.
	MaxRequestElements = 4096
)

func checkLimits(req EvaluationRequest) error {
	problems := req.All()
	if len(problems) > MaxRequestProblems {
		return fmt.Errorf("too many problems: %d (max %d)", len(problems), MaxRequestProblems)
	}
	if err := checkMaxIter("maxiter", req.MaxIter); err != nil {
		return err
	}
	for i, p := range problems {
		label := p.Label(i)
		if err := checkMaxIter(label+": maxiter", p.MaxIter); err != nil {
			return err
		}
		if len(p.A) > MaxRequestElements || len(p.B) > MaxRequestElements {
			return fmt.Errorf("%s: coefficient lists are limited to %d values", label, MaxRequestElements)
		}
		for j, arg := range p.Args {
			if len(arg) > MaxRequestElements {
				return fmt.Errorf("%s: argument %d has %d elements (max %d)", label, j, len(arg), MaxRequestElements)
			}
		}
	}
	return nil
}

func checkMaxIter(what string, v *int) error {
	if v != nil && *v > MaxRequestIter {
		return fmt.Errorf("%s %d exceeds %d", what, *v, MaxRequestIter)
	}
	return nil
}

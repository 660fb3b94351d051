package elementwise

import "fmt"

// Status is the per-element exit code of an elementwise iteration.
type Status int32

const (
	// StatusConverged: the element met its convergence criterion.
	StatusConverged Status = 0
	// StatusMaxIterations: the iteration cap was reached first.
	StatusMaxIterations Status = -2
	// StatusValueError: a non-finite value was encountered.
	StatusValueError Status = -3
	// StatusInProgress: the element is still being iterated.
	StatusInProgress Status = 1
)

func (s Status) String() string {
	switch s {
	case StatusConverged:
		return "converged"
	case StatusMaxIterations:
		return "max_iterations"
	case StatusValueError:
		return "value_error"
	case StatusInProgress:
		return "in_progress"
	default:
		return fmt.Sprintf("status(%d)", int32(s))
	}
}

// Terminal reports whether s is a final status.
func (s Status) Terminal() bool { return s != StatusInProgress }

// Success reports whether s is the successful terminal status.
func (s Status) Success() bool { return s == StatusConverged }

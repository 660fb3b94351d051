package contfrac

import "errors"

// Configuration errors. They are returned before any iteration runs and are
// always wrapped with detail, so match them with errors.Is.
var (
	ErrNotCallable = errors.New("contfrac: a and b must be callable")
	ErrTolerance   = errors.New("contfrac: eps and tiny must be (or represent the logarithm of) finite, positive, real scalars")
	ErrMaxIter     = errors.New("contfrac: maxiter must be a non-negative integer")
	ErrShape       = errors.New("contfrac: coefficient shape mismatch")
)

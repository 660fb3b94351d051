package series

import "errors"

var (
	ErrUnknownFamily  = errors.New("series: unknown family")
	ErrTableExhausted = errors.New("series: coefficient table exhausted")
	ErrArgs           = errors.New("series: invalid arguments")
	ErrNoProblems     = errors.New("series: no problems defined")
)

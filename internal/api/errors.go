package api

import "errors"

var ErrInvalidRequest = errors.New("invalid_request")

type invalidRequestError struct {
	msg string
	err error
}

func (e invalidRequestError) Error() string {
	return e.msg
}

func (e invalidRequestError) Unwrap() []error {
	if e.err == nil {
		return []error{ErrInvalidRequest}
	}
	return []error{ErrInvalidRequest, e.err}
}

// invalidRequest marks err as the caller's fault while keeping it matchable.
func invalidRequest(err error) error {
	return invalidRequestError{msg: err.Error(), err: err}
}

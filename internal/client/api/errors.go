package api

import (
	"errors"
	"net/http"
)

var (
	ErrUnauthorized = errors.New("unauthorized")
	ErrNotFound     = errors.New("not found")
	ErrUnavailable  = errors.New("server unavailable")
	ErrInvalidInput = errors.New("invalid input")
)

// Kind classifies an *Error.
type Kind int

const (
	// KindValidation: rejected locally before a request was sent.
	KindValidation Kind = iota + 1
	// KindServer: the server answered with a non-2xx status.
	KindServer
	// KindTransport: no usable response (network, timeout, malformed body).
	KindTransport
)

func (k Kind) String() string {
	switch k {
	case KindValidation:
		return "validation"
	case KindServer:
		return "server"
	case KindTransport:
		return "transport"
	}
	return "unknown"
}

// Error is the only error type returned by Client operations. Error()
// yields Message unchanged so it can be shown to the user as is.
type Error struct {
	Op      string
	Kind    Kind
	Status  int
	Message string
	cause   error
}

func (e *Error) Error() string { return e.Message }

// Unwrap exposes the matching sentinel (ErrUnauthorized, ErrNotFound,
// ErrUnavailable, ErrInvalidInput) and the underlying cause, if any.
func (e *Error) Unwrap() []error {
	errs := make([]error, 0, 2)
	switch {
	case e.Kind == KindValidation:
		errs = append(errs, ErrInvalidInput)
	case e.Kind == KindTransport:
		errs = append(errs, ErrUnavailable)
	case e.Status == http.StatusUnauthorized || e.Status == http.StatusForbidden:
		errs = append(errs, ErrUnauthorized)
	case e.Status == http.StatusNotFound:
		errs = append(errs, ErrNotFound)
	}
	if e.cause != nil {
		errs = append(errs, e.cause)
	}
	return errs
}

// AsError returns err as *Error when it is one.
func AsError(err error) (*Error, bool) {
	var apiErr *Error
	ok := errors.As(err, &apiErr)
	return apiErr, ok
}

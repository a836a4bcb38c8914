package errors

import (
	"errors"
	"fmt"
	"net/http"
)

// Kind classifies failures of the admin endpoints
type Kind int

const (
	KindInternal Kind = iota
	KindUnauthorized
	KindBadRequest
	KindMisconfigured
	KindUpstream
)

func (k Kind) String() string {
	switch k {
	case KindUnauthorized:
		return "unauthorized"
	case KindBadRequest:
		return "bad_request"
	case KindMisconfigured:
		return "misconfigured"
	case KindUpstream:
		return "upstream"
	default:
		return "internal"
	}
}

// StatusCode returns the HTTP status for the kind
func (k Kind) StatusCode() int {
	switch k {
	case KindUnauthorized:
		return http.StatusUnauthorized
	case KindBadRequest:
		return http.StatusBadRequest
	case KindUpstream:
		return http.StatusBadGateway
	default:
		return http.StatusInternalServerError
	}
}

// Error carries the client-visible message and optional diagnostic detail
type Error struct {
	Kind    Kind
	Message string
	Detail  string
	Err     error
}

func (e *Error) Error() string {
	if e.Detail != "" {
		return fmt.Sprintf("%s: %s", e.Message, e.Detail)
	}
	if e.Err != nil {
		return fmt.Sprintf("%s: %v", e.Message, e.Err)
	}
	return e.Message
}

func (e *Error) Unwrap() error {
	return e.Err
}

// Is matches any *Error of the same kind, so the sentinels below work with errors.Is
func (e *Error) Is(target error) bool {
	var t *Error
	if !errors.As(target, &t) {
		return false
	}
	return t.Kind == e.Kind
}

var (
	ErrUnauthorized  = &Error{Kind: KindUnauthorized, Message: "Unauthorized"}
	ErrBadRequest    = &Error{Kind: KindBadRequest, Message: "Bad request"}
	ErrMisconfigured = &Error{Kind: KindMisconfigured, Message: "Server misconfigured"}
	ErrUpstream      = &Error{Kind: KindUpstream, Message: "Repository API error"}
	ErrInternal      = &Error{Kind: KindInternal, Message: "Internal error"}
)

// Unauthorized is returned for a missing or mismatching credential
func Unauthorized() *Error {
	return &Error{Kind: KindUnauthorized, Message: ErrUnauthorized.Message}
}

// BadRequest is returned for a missing or invalid payload or path
func BadRequest(message string, err error) *Error {
	e := &Error{Kind: KindBadRequest, Message: message, Err: err}
	if err != nil {
		e.Detail = err.Error()
	}
	return e
}

// Misconfigured is returned when server-side secrets are absent
func Misconfigured(detail string) *Error {
	return &Error{Kind: KindMisconfigured, Message: ErrMisconfigured.Message, Detail: detail}
}

// Upstream is returned when the backing repository rejected or failed a call
func Upstream(detail string, err error) *Error {
	return &Error{Kind: KindUpstream, Message: ErrUpstream.Message, Detail: detail, Err: err}
}

// Internal wraps an unexpected failure, keeping its message for diagnostics
func Internal(err error) *Error {
	e := &Error{Kind: KindInternal, Message: ErrInternal.Message, Err: err}
	if err != nil {
		e.Detail = err.Error()
	}
	return e
}

// From converts any error into an *Error, treating unknown errors as internal
func From(err error) *Error {
	if err == nil {
		return nil
	}
	var e *Error
	if errors.As(err, &e) {
		return e
	}
	return Internal(err)
}

// KindOf returns the kind of a non-nil err
func KindOf(err error) Kind {
	if err == nil {
		return KindInternal
	}
	return From(err).Kind
}

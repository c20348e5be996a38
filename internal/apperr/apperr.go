// Package apperr defines the application error taxonomy. Every refusal
// the engines produce carries a kind (for HTTP mapping), a machine
// reason code and a human message, optionally with a suggested remedy.
package apperr

import (
	"errors"
	"fmt"
	"net/http"
)

type Kind string

const (
	KindValidation    Kind = "validation"
	KindAuthorization Kind = "authorization"
	KindStateConflict Kind = "state_conflict"
	KindNotFound      Kind = "not_found"
	KindUpstream      Kind = "upstream"
)

type Error struct {
	Kind    Kind
	Code    string
	Message string
	Remedy  string
	Err     error
}

func (e *Error) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %s: %v", e.Code, e.Message, e.Err)
	}
	return fmt.Sprintf("%s: %s", e.Code, e.Message)
}

func (e *Error) Unwrap() error {
	return e.Err
}

// WithRemedy attaches a suggested remedy and returns the error.
func (e *Error) WithRemedy(remedy string) *Error {
	e.Remedy = remedy
	return e
}

func New(kind Kind, code, message string) *Error {
	return &Error{Kind: kind, Code: code, Message: message}
}

func Wrap(kind Kind, code, message string, err error) *Error {
	return &Error{Kind: kind, Code: code, Message: message, Err: err}
}

func Validation(code, message string) *Error {
	return New(KindValidation, code, message)
}

func Authorization(code, message string) *Error {
	return New(KindAuthorization, code, message)
}

func StateConflict(code, message string) *Error {
	return New(KindStateConflict, code, message)
}

func NotFound(code, message string) *Error {
	return New(KindNotFound, code, message)
}

func Upstream(code, message string, err error) *Error {
	return Wrap(KindUpstream, code, message, err)
}

// From extracts the *Error from err's chain, or nil.
func From(err error) *Error {
	var e *Error
	if errors.As(err, &e) {
		return e
	}
	return nil
}

// KindOf returns the kind of err, defaulting to KindUpstream for
// errors outside the taxonomy.
func KindOf(err error) Kind {
	if e := From(err); e != nil {
		return e.Kind
	}
	return KindUpstream
}

// CodeOf returns the machine reason code of err, or "internal".
func CodeOf(err error) string {
	if e := From(err); e != nil {
		return e.Code
	}
	return "internal"
}

// HTTPStatus maps an error to its HTTP status. State conflicts surface
// as 400 per the API contract; the code field carries the distinction.
func HTTPStatus(err error) int {
	switch KindOf(err) {
	case KindValidation, KindStateConflict:
		return http.StatusBadRequest
	case KindAuthorization:
		return http.StatusForbidden
	case KindNotFound:
		return http.StatusNotFound
	default:
		return http.StatusInternalServerError
	}
}

// Package apperr classifies failures so every handler maps them to a response the same way.
package apperr

import (
	"errors"
	"net/http"
)

type Kind int

const (
	Unhandled Kind = iota
	Validation
	Conflict
	Auth
	Storage
)

func (k Kind) String() string {
	switch k {
	case Validation:
		return "validation"
	case Conflict:
		return "conflict"
	case Auth:
		return "auth"
	case Storage:
		return "storage"
	default:
		return "unhandled"
	}
}

// Error carries a kind, a client-safe message and the underlying cause.
type Error struct {
	Kind Kind
	Msg  string
	Err  error
}

func (e *Error) Error() string {
	if e.Err == nil {
		return e.Msg
	}
	if e.Msg == "" {
		return e.Err.Error()
	}
	return e.Msg + ": " + e.Err.Error()
}

func (e *Error) Unwrap() error { return e.Err }

func New(kind Kind, msg string, cause error) error {
	return &Error{Kind: kind, Msg: msg, Err: cause}
}

func Invalid(msg string) error                { return New(Validation, msg, nil) }
func Duplicate(msg string, cause error) error { return New(Conflict, msg, cause) }
func Store(msg string, cause error) error     { return New(Storage, msg, cause) }

// KindOf reports the kind of the first *Error in err's chain, or Unhandled.
func KindOf(err error) Kind {
	var e *Error
	if errors.As(err, &e) {
		return e.Kind
	}
	return Unhandled
}

// Message returns the client-facing message of err.
func Message(err error) string {
	var e *Error
	if errors.As(err, &e) && e.Msg != "" {
		return e.Msg
	}
	if err == nil {
		return ""
	}
	return err.Error()
}

// Status maps a kind to the HTTP status code handlers respond with.
func Status(k Kind) int {
	switch k {
	case Validation:
		return http.StatusBadRequest
	case Conflict:
		return http.StatusConflict
	case Auth:
		return http.StatusUnauthorized
	default:
		return http.StatusInternalServerError
	}
}

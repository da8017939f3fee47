// Package apierr defines the error taxonomy shared by all HTTP handlers and
// maps each kind to a fixed status code.
package apierr

import (
	"errors"
	"fmt"
	"net/http"

	"github.com/gin-gonic/gin"
)

type Kind int

const (
	KindValidation Kind = iota // malformed input or rejected generated content
	KindAuth                   // missing/invalid/expired credential
	KindForbidden              // authenticated but not the owner
	KindNotFound
	KindDownstream // identity provider, model, store or processor failure
)

type Error struct {
	Kind    Kind
	Message string
	Details string
}

func (e *Error) Error() string {
	if e.Details != "" {
		return e.Message + ": " + e.Details
	}
	return e.Message
}

func Validationf(format string, args ...any) *Error {
	return &Error{Kind: KindValidation, Message: fmt.Sprintf(format, args...)}
}

func Authf(format string, args ...any) *Error {
	return &Error{Kind: KindAuth, Message: fmt.Sprintf(format, args...)}
}

func Forbidden() *Error {
	return &Error{Kind: KindForbidden, Message: "Unauthorized"}
}

func NotFoundf(format string, args ...any) *Error {
	return &Error{Kind: KindNotFound, Message: fmt.Sprintf(format, args...)}
}

func Downstreamf(format string, args ...any) *Error {
	return &Error{Kind: KindDownstream, Message: fmt.Sprintf(format, args...)}
}

// WithDetails attaches a best-effort detail string (provider rejection reason,
// upstream response body) that is passed through to the client.
func (e *Error) WithDetails(details string) *Error {
	e.Details = details
	return e
}

// Status maps an error to its HTTP status code. Unrecognized errors are
// treated as unexpected failures.
func Status(err error) int {
	var ae *Error
	if !errors.As(err, &ae) {
		return http.StatusInternalServerError
	}
	switch ae.Kind {
	case KindValidation:
		return http.StatusBadRequest
	case KindAuth:
		return http.StatusUnauthorized
	case KindForbidden:
		return http.StatusForbidden
	case KindNotFound:
		return http.StatusNotFound
	default:
		return http.StatusInternalServerError
	}
}

// Respond writes the error as a JSON body with its mapped status code.
func Respond(c *gin.Context, err error) {
	var ae *Error
	if !errors.As(err, &ae) {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	body := gin.H{"error": ae.Message}
	if ae.Details != "" {
		body["details"] = ae.Details
	}
	c.JSON(Status(ae), body)
}

package errors

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"net/http"
	"strings"

	"github.com/lib/pq"
)

// Kind classifies an application error for HTTP translation.
type Kind int

const (
	KindInternal Kind = iota
	KindValidation
	KindNotFound
	KindUnauthorized
	KindTimeout
	KindConflict
	KindReferential
)

// FieldError describes a single failing input field.
type FieldError struct {
	Field   string `json:"field"`
	Message string `json:"message"`
}

// AppError is the error type crossing service boundaries. Handlers are
// the only place it is translated to an HTTP status.
type AppError struct {
	Kind    Kind         `json:"-"`
	Message string       `json:"message"`
	Fields  []FieldError `json:"fields,omitempty"`
	Err     error        `json:"-"`
}

func (e *AppError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %v", e.Message, e.Err)
	}
	return e.Message
}

func (e *AppError) Unwrap() error {
	return e.Err
}

// StatusCode maps the error kind to an HTTP status.
func (e *AppError) StatusCode() int {
	switch e.Kind {
	case KindValidation, KindReferential:
		return http.StatusBadRequest
	case KindNotFound:
		return http.StatusNotFound
	case KindUnauthorized:
		return http.StatusUnauthorized
	case KindTimeout:
		return http.StatusGatewayTimeout
	case KindConflict:
		return http.StatusConflict
	default:
		return http.StatusInternalServerError
	}
}

// Code returns a stable machine-readable code for response envelopes.
func (e *AppError) Code() string {
	switch e.Kind {
	case KindValidation:
		return "VALIDATION"
	case KindNotFound:
		return "NOT_FOUND"
	case KindUnauthorized:
		return "UNAUTHORIZED"
	case KindTimeout:
		return "TIMEOUT"
	case KindConflict:
		return "CONFLICT"
	case KindReferential:
		return "REFERENTIAL"
	default:
		return "INTERNAL"
	}
}

func NotFound(resource string) *AppError {
	return &AppError{Kind: KindNotFound, Message: fmt.Sprintf("%s not found", resource)}
}

func Validation(fields []FieldError) *AppError {
	msgs := make([]string, len(fields))
	for i, f := range fields {
		msgs[i] = f.Field + ": " + f.Message
	}
	return &AppError{
		Kind:    KindValidation,
		Message: "validation failed: " + strings.Join(msgs, "; "),
		Fields:  fields,
	}
}

func Unauthorized(message string) *AppError {
	return &AppError{Kind: KindUnauthorized, Message: message}
}

func Conflict(message string, err error) *AppError {
	return &AppError{Kind: KindConflict, Message: message, Err: err}
}

func Timeout(err error) *AppError {
	return &AppError{Kind: KindTimeout, Message: "operation timed out", Err: err}
}

func Internal(err error) *AppError {
	return &AppError{Kind: KindInternal, Message: "internal server error", Err: err}
}

// Postgres error codes for constraint violations.
const (
	pgUniqueViolation     = "23505"
	pgForeignKeyViolation = "23503"
)

// FromPG translates database errors into AppErrors. resource names the
// entity being operated on so not-found messages stay specific.
func FromPG(err error, resource string) *AppError {
	if err == nil {
		return nil
	}

	var appErr *AppError
	if errors.As(err, &appErr) {
		return appErr
	}

	if errors.Is(err, sql.ErrNoRows) {
		return NotFound(resource)
	}
	if errors.Is(err, context.DeadlineExceeded) {
		return Timeout(err)
	}

	var pqErr *pq.Error
	if errors.As(err, &pqErr) {
		switch pqErr.Code {
		case pgUniqueViolation:
			return Conflict(fmt.Sprintf("%s already exists", resource), err)
		case pgForeignKeyViolation:
			return &AppError{
				Kind:    KindReferential,
				Message: fmt.Sprintf("%s references a missing record", resource),
				Err:     err,
			}
		}
	}

	return Internal(err)
}

package apperror

import (
	"errors"
	"fmt"
	"net/http"

	"github.com/jackc/pgx/v5/pgconn"
	"gorm.io/gorm"
)

type Kind int

const (
	KindInternal Kind = iota
	KindUnauthenticated
	KindForbidden
	KindNotFound
	KindValidation
	KindConstraint
	KindUnavailable
	KindRateLimited
)

const (
	CodeAuthRequired           = "AUTH_REQUIRED"
	CodeInvalidCredentials     = "INVALID_CREDENTIALS"
	CodeForbidden              = "FORBIDDEN"
	CodeValidation             = "VALIDATION_ERROR"
	CodeInvalidAction          = "INVALID_ACTION"
	CodeTestNotPublished       = "TEST_NOT_PUBLISHED"
	CodeCertificateUnavailable = "CERTIFICATE_UNAVAILABLE"
	CodeForeignKey             = "FOREIGN_KEY_CONSTRAINT"
	CodeUnique                 = "UNIQUE_CONSTRAINT"
	CodeNotFound               = "NOT_FOUND"
	CodeAIUnavailable          = "AI_UNAVAILABLE"
	CodeRateLimited            = "RATE_LIMITED"
	CodeInternal               = "INTERNAL_ERROR"
)

// Postgres SQLSTATE values the store layer classifies.
const (
	pgForeignKeyViolation = "23503"
	pgUniqueViolation     = "23505"
)

// Error is the classified error every service returns to controllers.
type Error struct {
	Kind    Kind
	Code    string
	Message string
	Details any
	Err     error
}

func (e *Error) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %s: %v", e.Code, e.Message, e.Err)
	}
	return e.Code + ": " + e.Message
}

func (e *Error) Unwrap() error { return e.Err }

// Status maps the error kind to an HTTP status code.
func (e *Error) Status() int {
	switch e.Kind {
	case KindUnauthenticated:
		return http.StatusUnauthorized
	case KindForbidden:
		return http.StatusForbidden
	case KindNotFound:
		return http.StatusNotFound
	case KindValidation, KindConstraint:
		return http.StatusBadRequest
	case KindUnavailable:
		return http.StatusServiceUnavailable
	case KindRateLimited:
		return http.StatusTooManyRequests
	default:
		return http.StatusInternalServerError
	}
}

func Unauthenticated() *Error {
	return &Error{Kind: KindUnauthenticated, Code: CodeAuthRequired, Message: "Authentication required"}
}

func InvalidCredentials() *Error {
	return &Error{Kind: KindUnauthenticated, Code: CodeInvalidCredentials, Message: "Invalid email or password"}
}

func Forbidden(code, message string) *Error {
	if code == "" {
		code = CodeForbidden
	}
	return &Error{Kind: KindForbidden, Code: code, Message: message}
}

func NotFound(entity string) *Error {
	return &Error{
		Kind:    KindNotFound,
		Code:    CodeNotFound,
		Message: entity + " not found",
		Details: map[string]string{"entity": entity},
	}
}

func Validation(fields ...FieldError) *Error {
	return &Error{Kind: KindValidation, Code: CodeValidation, Message: "Validation failed", Details: fields}
}

func InvalidAction(action string) *Error {
	return &Error{
		Kind:    KindValidation,
		Code:    CodeInvalidAction,
		Message: fmt.Sprintf("Unknown action %q", action),
		Details: []FieldError{{Field: "action", Error: "must be one of: start"}},
	}
}

func Constraint(code, message string, err error) *Error {
	return &Error{Kind: KindConstraint, Code: code, Message: message, Err: err}
}

func Unavailable(code, message string) *Error {
	return &Error{Kind: KindUnavailable, Code: code, Message: message}
}

func RateLimited() *Error {
	return &Error{Kind: KindRateLimited, Code: CodeRateLimited, Message: "Too many requests. Try again later."}
}

// Internal hides err from clients; the cause is kept for logging.
func Internal(err error) *Error {
	return &Error{Kind: KindInternal, Code: CodeInternal, Message: "Internal server error", Err: err}
}

// As extracts a classified error from err's chain. Anything unclassified is
// reported as Internal.
func As(err error) *Error {
	var appErr *Error
	if errors.As(err, &appErr) {
		return appErr
	}
	return Internal(err)
}

// FromStore classifies an error returned by the relational store.
func FromStore(err error, entity string) error {
	if err == nil {
		return nil
	}
	var appErr *Error
	if errors.As(err, &appErr) {
		return appErr
	}
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return NotFound(entity)
	}

	var pgErr *pgconn.PgError
	switch {
	case errors.Is(err, gorm.ErrForeignKeyViolated),
		errors.As(err, &pgErr) && pgErr.Code == pgForeignKeyViolation:
		return Constraint(CodeForeignKey, "Referenced record does not exist", err)
	case errors.Is(err, gorm.ErrDuplicatedKey),
		errors.As(err, &pgErr) && pgErr.Code == pgUniqueViolation:
		return Constraint(CodeUnique, entity+" already exists", err)
	}
	return Internal(err)
}

package errors

import (
	"errors"
	"fmt"
	"net/http"
)

// Kind classifies a failure returned across the repository and service boundaries.
type Kind int

const (
	KindInternal Kind = iota
	KindValidation
	KindConflict
	KindNotFound
	KindUnauthorized
	KindForbidden
)

func (k Kind) String() string {
	switch k {
	case KindValidation:
		return "validation"
	case KindConflict:
		return "conflict"
	case KindNotFound:
		return "not_found"
	case KindUnauthorized:
		return "unauthorized"
	case KindForbidden:
		return "forbidden"
	default:
		return "internal"
	}
}

// HTTPStatus maps a kind to the status code the API answers with.
// Uniqueness conflicts are reported as 400, matching validation failures.
func (k Kind) HTTPStatus() int {
	switch k {
	case KindValidation, KindConflict:
		return http.StatusBadRequest
	case KindNotFound:
		return http.StatusNotFound
	case KindUnauthorized:
		return http.StatusUnauthorized
	case KindForbidden:
		return http.StatusForbidden
	default:
		return http.StatusInternalServerError
	}
}

// GenericMessage is the only text an internal failure ever exposes to a client.
const GenericMessage = "An unknown error occurred"

var (
	ErrInvalidCredentials = NewAppError(KindUnauthorized, "INVALID_CREDENTIALS", "Invalid password", nil)
	ErrUnknownEmail       = NewAppError(KindValidation, "USER_NOT_FOUND", "User not found", nil)
	ErrUserInactive       = NewAppError(KindForbidden, "USER_INACTIVE", "User account is inactive", nil)
	ErrMissingCredentials = NewAppError(KindValidation, "VALIDATION_ERROR", "Email and password are required.", nil)

	ErrInvalidEmail = NewAppError(KindValidation, "VALIDATION_ERROR", "Invalid email format", nil)
	ErrInvalidISBN  = NewAppError(KindValidation, "VALIDATION_ERROR", "ISBN is invalid.", nil)
	ErrInvalidID    = NewAppError(KindValidation, "VALIDATION_ERROR", "Invalid or missing ID.", nil)
	ErrEmptyUpdate  = NewAppError(KindValidation, "VALIDATION_ERROR", "No fields provided for update.", nil)
	ErrEmptyCreate  = NewAppError(KindValidation, "VALIDATION_ERROR", "No fields provided for created.", nil)

	ErrTokenMissing = errors.New("authorization header missing or malformed")
	ErrTokenInvalid = errors.New("token is invalid")
	ErrTokenExpired = errors.New("token has expired")
)

// AppError is the failure half of the result contract: a kind, a stable code and
// a client-safe message. Err carries the underlying cause for logs only.
type AppError struct {
	Kind    Kind
	Code    string
	Message string
	Err     error
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

// Is matches another *AppError by kind and code so sentinels survive wrapping.
func (e *AppError) Is(target error) bool {
	t, ok := target.(*AppError)
	if !ok {
		return false
	}
	return e.Kind == t.Kind && e.Code == t.Code && e.Message == t.Message
}

// HTTPStatus is shorthand for e.Kind.HTTPStatus().
func (e *AppError) HTTPStatus() int {
	return e.Kind.HTTPStatus()
}

// PublicMessage hides internal causes behind GenericMessage.
func (e *AppError) PublicMessage() string {
	if e.Kind == KindInternal {
		return GenericMessage
	}
	return e.Message
}

func NewAppError(kind Kind, code, message string, err error) *AppError {
	return &AppError{
		Kind:    kind,
		Code:    code,
		Message: message,
		Err:     err,
	}
}

func Validation(message string) *AppError {
	return NewAppError(KindValidation, "VALIDATION_ERROR", message, nil)
}

func Conflict(message string) *AppError {
	return NewAppError(KindConflict, "CONFLICT", message, nil)
}

func NotFound(message string) *AppError {
	return NewAppError(KindNotFound, "NOT_FOUND", message, nil)
}

func Internal(message string, err error) *AppError {
	return NewAppError(KindInternal, "INTERNAL_ERROR", message, err)
}

// KindOf reports the kind of err, treating anything that is not an *AppError as internal.
func KindOf(err error) Kind {
	var appErr *AppError
	if errors.As(err, &appErr) {
		return appErr.Kind
	}
	return KindInternal
}

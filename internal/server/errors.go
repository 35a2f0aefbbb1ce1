package server

import (
	"errors"
	"fmt"
	"net/http"

	"github.com/google/uuid"

	"github.com/mbenali/jobboard/internal/db"
)

// ErrEmailAlreadyExists indicates the email is already registered.
type ErrEmailAlreadyExists struct {
	Email string
}

func (e *ErrEmailAlreadyExists) Error() string {
	return fmt.Sprintf("email already registered: %s", e.Email)
}

// ErrInvalidCredentials indicates invalid login credentials.
type ErrInvalidCredentials struct{}

func (e *ErrInvalidCredentials) Error() string {
	return "invalid email or password"
}

// ErrUserNotFound indicates the account was not found.
type ErrUserNotFound struct {
	UserID uuid.UUID
}

func (e *ErrUserNotFound) Error() string {
	return fmt.Sprintf("user not found: %s", e.UserID)
}

// ErrPasswordMismatch indicates the current password is incorrect.
type ErrPasswordMismatch struct{}

func (e *ErrPasswordMismatch) Error() string {
	return "current password is incorrect"
}

// userMessage returns the text shown to API consumers for err. Unknown
// errors fall through to empty so callers substitute their own wording.
func userMessage(err error) string {
	if errors.Is(err, db.ErrDuplicateApplication) {
		return "You have already applied to this job"
	}
	switch err.(type) {
	case *ErrEmailAlreadyExists:
		return "An account with this email already exists"
	case *ErrInvalidCredentials:
		return "Invalid email or password"
	case *ErrPasswordMismatch:
		return "Current password is incorrect"
	case *ErrUserNotFound:
		return "User not found"
	default:
		return ""
	}
}

// HTTPStatus returns the appropriate HTTP status code for an error.
func HTTPStatus(err error) int {
	if errors.Is(err, db.ErrDuplicateApplication) {
		return http.StatusConflict
	}
	switch err.(type) {
	case *ErrEmailAlreadyExists:
		return http.StatusConflict
	case *ErrInvalidCredentials, *ErrPasswordMismatch:
		return http.StatusUnauthorized
	case *ErrUserNotFound:
		return http.StatusNotFound
	default:
		return http.StatusInternalServerError
	}
}

package util

import (
	"errors"
	"net/http"
)

// AppError carries an HTTP status code alongside the message so handlers
// can branch on the failure kind instead of collapsing everything to 400.
type AppError struct {
	Code    int
	Message string
}

func (e *AppError) Error() string {
	return e.Message
}

func NewAppError(code int, message string) *AppError {
	return &AppError{Code: code, Message: message}
}

func NotFoundError(message string) *AppError {
	return &AppError{Code: http.StatusNotFound, Message: message}
}

func NotAuthorizedError(message string) *AppError {
	return &AppError{Code: http.StatusForbidden, Message: message}
}

func NotAuthenticatedError(message string) *AppError {
	return &AppError{Code: http.StatusUnauthorized, Message: message}
}

/*
* Translate an error into the HTTP status to respond with
* AppError keeps its own code, everything else becomes 400
 */
func StatusOf(err error) int {
	var appErr *AppError
	if errors.As(err, &appErr) {
		return appErr.Code
	}
	return http.StatusBadRequest
}

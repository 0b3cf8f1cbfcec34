package serverutils

import (
	"errors"
	"net/http"

	"xeriscape-be/pkg/upstream"

	"github.com/gofiber/fiber/v2"
)

// AppError carries the HTTP status a service failure should be answered with.
type AppError struct {
	Code    int
	Message string
	Err     error
}

func (e *AppError) Error() string {
	if e.Err != nil {
		return e.Message + ": " + e.Err.Error()
	}
	return e.Message
}

func (e *AppError) Unwrap() error { return e.Err }

func BadRequest(message string) *AppError {
	return &AppError{Code: http.StatusBadRequest, Message: message}
}

func Internal(message string, err error) *AppError {
	return &AppError{Code: http.StatusInternalServerError, Message: message, Err: err}
}

// StatusAndMessage maps any error raised while serving a request to the status and
// message sent back to the client.
func StatusAndMessage(err error) (int, string) {
	var appErr *AppError
	if errors.As(err, &appErr) {
		return appErr.Code, appErr.Message
	}

	var upErr *upstream.Error
	if errors.As(err, &upErr) {
		msg := upErr.Body
		if msg == "" {
			msg = http.StatusText(upErr.StatusCode)
		}
		return upErr.StatusCode, msg
	}

	var fiberErr *fiber.Error
	if errors.As(err, &fiberErr) {
		return fiberErr.Code, fiberErr.Message
	}

	return http.StatusInternalServerError, err.Error()
}

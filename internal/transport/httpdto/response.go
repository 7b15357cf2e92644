package httpdto

import (
	"errors"
	"net/http"

	studio_errors "studio-proof/pkg/errors"
)

const (
	CodeSuccess = 0
	CodeError   = 1
)

type Response[T any] struct {
	Code    int    `json:"code"`
	Message string `json:"message"`
	Data    T      `json:"data,omitempty"`
}

func NewSuccessResponse[T any](data T) Response[T] {
	return Response[T]{
		Code:    CodeSuccess,
		Message: "success",
		Data:    data,
	}
}

func NewErrorResponse(message string) Response[any] {
	return Response[any]{
		Code:    CodeError,
		Message: message,
	}
}

// StatusFromError maps service errors onto HTTP status codes.
func StatusFromError(err error) int {
	switch {
	case errors.Is(err, studio_errors.ErrNotFound):
		return http.StatusNotFound
	case errors.Is(err, studio_errors.ErrForbidden):
		return http.StatusForbidden
	case errors.Is(err, studio_errors.ErrInvalidInput), errors.Is(err, studio_errors.ErrInvalidState):
		return http.StatusBadRequest
	case errors.Is(err, studio_errors.ErrRateLimited):
		return http.StatusTooManyRequests
	default:
		return http.StatusInternalServerError
	}
}

// MessageFromError hides internal details from clients.
func MessageFromError(err error) string {
	if studio_errors.IsClientError(err) {
		return err.Error()
	}
	return "internal server error"
}

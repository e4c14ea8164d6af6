// Package errors renders failed requests as APIError JSON bodies.
package errors

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

const (
	ErrCodeUnauthorized       = "UNAUTHORIZED"
	ErrCodeInvalidCredentials = "INVALID_CREDENTIALS"
	ErrCodeForbidden          = "FORBIDDEN"
	ErrCodeInvalidInput       = "INVALID_INPUT"
	ErrCodeNotFound           = "NOT_FOUND"
	ErrCodeAlreadyExists      = "ALREADY_EXISTS"
	ErrCodeOperationFailed    = "OPERATION_FAILED"
	ErrCodeInternalError      = "INTERNAL_ERROR"
	ErrCodeServiceUnavailable = "SERVICE_UNAVAILABLE"
)

// APIError is the body of every error response.
type APIError struct {
	Code    string `json:"code"`
	Message string `json:"message"`
	Details any    `json:"details,omitempty"`
}

func (e *APIError) Error() string {
	return e.Message
}

// kind ties a code to its status and the message used when none is given.
type kind struct {
	status   int
	code     string
	fallback string
}

var (
	unauthorized       = kind{http.StatusUnauthorized, ErrCodeUnauthorized, "Authentication required"}
	invalidCredentials = kind{http.StatusUnauthorized, ErrCodeInvalidCredentials, "Invalid email or password"}
	forbidden          = kind{http.StatusForbidden, ErrCodeForbidden, "Access denied"}
	notFound           = kind{http.StatusNotFound, ErrCodeNotFound, "Resource not found"}
	badRequest         = kind{http.StatusBadRequest, ErrCodeInvalidInput, "Invalid request"}
	conflict           = kind{http.StatusConflict, ErrCodeAlreadyExists, "Resource already exists"}
	unprocessable      = kind{http.StatusUnprocessableEntity, ErrCodeOperationFailed, "Operation failed"}
	internal           = kind{http.StatusInternalServerError, ErrCodeInternalError, "Internal server error"}
	unavailable        = kind{http.StatusServiceUnavailable, ErrCodeServiceUnavailable, "Service temporarily unavailable"}
)

// abort writes the error body and stops the handler chain.
func abort(c *gin.Context, k kind, message string, details any) {
	if message == "" {
		message = k.fallback
	}
	c.AbortWithStatusJSON(k.status, &APIError{
		Code:    k.code,
		Message: message,
		Details: details,
	})
}

func Unauthorized(c *gin.Context, message string) { abort(c, unauthorized, message, nil) }

func InvalidCredentials(c *gin.Context, message string) { abort(c, invalidCredentials, message, nil) }

func Forbidden(c *gin.Context, message string) { abort(c, forbidden, message, nil) }

func NotFound(c *gin.Context, message string) { abort(c, notFound, message, nil) }

func BadRequest(c *gin.Context, message string) { abort(c, badRequest, message, nil) }

// BadRequestWithDetails carries per-field validation failures.
func BadRequestWithDetails(c *gin.Context, message string, details any) {
	abort(c, badRequest, message, details)
}

func Conflict(c *gin.Context, message string) { abort(c, conflict, message, nil) }

func UnprocessableEntity(c *gin.Context, message string) { abort(c, unprocessable, message, nil) }

// InternalError never echoes the underlying error; log it before calling.
func InternalError(c *gin.Context, message string) { abort(c, internal, message, nil) }

func ServiceUnavailable(c *gin.Context, message string) { abort(c, unavailable, message, nil) }

package httperr

import (
	"errors"
	"log/slog"
	"net/http"

	"github.com/gin-gonic/gin"
)

// RetryAfterSeconds is sent with 503 responses caused by store contention.
const RetryAfterSeconds = "2"

type HTTPError struct {
	Code    string `json:"error_code"`
	Message string `json:"message"`
}

func Write(c *gin.Context, status int, code, message string) {
	c.JSON(status, HTTPError{
		Code:    code,
		Message: message,
	})
}

func BadRequest(c *gin.Context, code, message string) {
	Write(c, http.StatusBadRequest, code, message)
}

func Internal(c *gin.Context, code, message string) {
	Write(c, http.StatusInternalServerError, code, message)
}

func Unauthorized(c *gin.Context, code, message string) {
	Write(c, http.StatusUnauthorized, code, message)
}

// StatusFor returns the HTTP status a business error kind maps to.
func StatusFor(kind Kind) int {
	switch kind {
	case KindValidation:
		return http.StatusBadRequest
	case KindConflict, KindInvalidTransition:
		return http.StatusConflict
	case KindNotFound:
		return http.StatusNotFound
	case KindUnavailable:
		return http.StatusServiceUnavailable
	default:
		return http.StatusInternalServerError
	}
}

// FromError writes err as a JSON error response. Anything that is not a
// BusinessError is logged and reported as 500.
func FromError(c *gin.Context, err error) {
	var be BusinessError
	if !errors.As(err, &be) {
		slog.ErrorContext(c.Request.Context(), "unhandled error",
			slog.String("path", c.FullPath()),
			slog.Any("err", err),
		)
		Internal(c, "internal_error", "Something went wrong.")
		return
	}

	if be.Kind == KindUnavailable {
		c.Header("Retry-After", RetryAfterSeconds)
	}

	msg := be.Message
	if msg == "" {
		msg = be.Code
	}
	Write(c, StatusFor(be.Kind), be.Code, msg)
}

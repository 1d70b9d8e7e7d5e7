package httperr

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"

	"wishwell/internal/logger"
)

// Error is the single error type handlers return. Status and Code drive the
// HTTP response; Message is safe to show to the caller.
type Error struct {
	Status  int    `json:"-"`
	Code    string `json:"error"`
	Message string `json:"message"`
}

func (e *Error) Error() string {
	return e.Message
}

func New(status int, code, message string) *Error {
	return &Error{Status: status, Code: code, Message: message}
}

// Validation rejects malformed input before it reaches the access model.
func Validation(message string) *Error {
	return New(http.StatusBadRequest, "validation_error", message)
}

// Unauthorized covers missing, invalid or expired credentials. It is distinct
// from access denial so clients can tell "sign in again" from "no such thing".
func Unauthorized(message string) *Error {
	return New(http.StatusUnauthorized, "authentication_error", message)
}

// NotFound is returned both for absent resources and for resources the caller
// may not see. Merging the two avoids leaking the existence of private
// wishlists.
func NotFound(message string) *Error {
	return New(http.StatusNotFound, "not_found", message)
}

func Forbidden(message string) *Error {
	return New(http.StatusForbidden, "forbidden", message)
}

func Conflict(message string) *Error {
	return New(http.StatusConflict, "conflict", message)
}

func Internal(message string) *Error {
	return New(http.StatusInternalServerError, "internal_error", message)
}

// Respond writes err as a JSON error response. Unknown error types are logged
// and surfaced as a generic 500 so internals never reach the caller.
func Respond(c *gin.Context, err error) {
	var apiErr *Error
	if errors.As(err, &apiErr) {
		c.JSON(apiErr.Status, apiErr)
		return
	}

	logger.Error("unhandled error", logrus.Fields{
		"path":   c.FullPath(),
		"method": c.Request.Method,
		"err":    err.Error(),
	})
	c.JSON(http.StatusInternalServerError, Internal("something went wrong"))
}

// Package response implements the JSON envelope shared by every API
// endpoint: { success, data?, error?, meta }. Error codes are stable
// strings so clients can branch without parsing messages.
package response

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
)

const (
	CodeValidation   = "VALIDATION_ERROR"
	CodeUnauthorized = "UNAUTHORIZED"
	CodeForbidden    = "FORBIDDEN"
	CodeNotFound     = "NOT_FOUND"
	CodeConflict     = "CONFLICT"
	CodeRateLimit    = "RATE_LIMIT_EXCEEDED"
	CodeDatabase     = "DATABASE_ERROR"
	CodeInternal     = "INTERNAL_ERROR"
)

type ErrorBody struct {
	Message string `json:"message"`
	Code    string `json:"code,omitempty"`
	Details any    `json:"details,omitempty"`
}

type Meta struct {
	Timestamp string `json:"timestamp"`
	RequestID string `json:"requestId,omitempty"`
}

type Envelope struct {
	Success bool       `json:"success"`
	Data    any        `json:"data,omitempty"`
	Error   *ErrorBody `json:"error,omitempty"`
	Meta    Meta       `json:"meta"`
}

func meta(c *gin.Context) Meta {
	return Meta{
		Timestamp: time.Now().UTC().Format(time.RFC3339),
		RequestID: c.GetString("requestID"),
	}
}

func Success(c *gin.Context, data any) {
	c.JSON(http.StatusOK, Envelope{
		Success: true,
		Data:    data,
		Meta:    meta(c),
	})
}

func Created(c *gin.Context, data any) {
	c.JSON(http.StatusCreated, Envelope{
		Success: true,
		Data:    data,
		Meta:    meta(c),
	})
}

func Deleted(c *gin.Context) {
	c.Status(http.StatusNoContent)
}

// Error writes the failure envelope and aborts the handler chain so
// middleware can use it too.
func Error(c *gin.Context, status int, code, message string, details ...any) {
	body := &ErrorBody{
		Message: message,
		Code:    code,
	}

	if len(details) > 0 {
		body.Details = details[0]
	}

	c.AbortWithStatusJSON(status, Envelope{
		Success: false,
		Error:   body,
		Meta:    meta(c),
	})
}

func Validation(c *gin.Context, errors []string) {
	Error(c, http.StatusBadRequest, CodeValidation, "Validation failed", gin.H{"errors": errors})
}

func Unauthorized(c *gin.Context, message string) {
	Error(c, http.StatusUnauthorized, CodeUnauthorized, message)
}

func Forbidden(c *gin.Context, message string) {
	Error(c, http.StatusForbidden, CodeForbidden, message)
}

func NotFound(c *gin.Context, message string) {
	Error(c, http.StatusNotFound, CodeNotFound, message)
}

func Conflict(c *gin.Context, message string) {
	Error(c, http.StatusConflict, CodeConflict, message)
}

func ServerError(c *gin.Context, message string) {
	Error(c, http.StatusInternalServerError, CodeInternal, message)
}

// Package response holds shared JSON response helpers for HTTP handlers.
package response

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

// ErrorBody is the uniform error payload. Fields is present only for
// validation failures and maps field names to messages.
type ErrorBody struct {
	Error  string            `json:"error"`
	Fields map[string]string `json:"fields,omitempty"`
}

// OK writes a 200 with the given payload.
func OK(c *gin.Context, data interface{}) {
	c.JSON(http.StatusOK, data)
}

// Error writes an error payload with the given status.
func Error(c *gin.Context, status int, message string) {
	c.JSON(status, ErrorBody{Error: message})
}

// FieldError writes a 400 validation failure for a single field.
func FieldError(c *gin.Context, field, message string) {
	c.JSON(http.StatusBadRequest, ErrorBody{
		Error:  "validation failed",
		Fields: map[string]string{field: message},
	})
}

// BadRequest writes a 400.
func BadRequest(c *gin.Context, message string) {
	Error(c, http.StatusBadRequest, message)
}

// Unauthorized writes a 401.
func Unauthorized(c *gin.Context, message string) {
	Error(c, http.StatusUnauthorized, message)
}

// Forbidden writes a 403.
func Forbidden(c *gin.Context, message string) {
	Error(c, http.StatusForbidden, message)
}

// NotFound writes a 404.
func NotFound(c *gin.Context, message string) {
	Error(c, http.StatusNotFound, message)
}

// Internal writes a 500 with a generic message so internals never leak.
func Internal(c *gin.Context) {
	Error(c, http.StatusInternalServerError, "internal error")
}

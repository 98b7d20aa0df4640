// Package response holds the wire envelope shared by the stub server's
// handlers: every reply carries a success flag, failures carry the reason
// in message so clients can surface it verbatim.
package response

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

// OK sends a successful response, merging any extra top-level fields
// (candidate lists, tokens, session state) into the envelope.
func OK(c *gin.Context, status int, message string, fields gin.H) {
	body := gin.H{"success": true}
	if message != "" {
		body["message"] = message
	}
	for k, v := range fields {
		body[k] = v
	}
	c.JSON(status, body)
}

// Fail sends a failure response with a user-facing reason.
func Fail(c *gin.Context, status int, message string) {
	c.JSON(status, gin.H{
		"success": false,
		"message": message,
	})
}

// BadRequestError sends a 400
func BadRequestError(c *gin.Context, message string) {
	Fail(c, http.StatusBadRequest, message)
}

// NotFoundError sends a 404
func NotFoundError(c *gin.Context, message string) {
	Fail(c, http.StatusNotFound, message)
}

// InternalServerError sends a 500
func InternalServerError(c *gin.Context, message string) {
	Fail(c, http.StatusInternalServerError, message)
}

// UnauthorizedError sends a 401
func UnauthorizedError(c *gin.Context, message string) {
	Fail(c, http.StatusUnauthorized, message)
}

// ConflictError sends a 409
func ConflictError(c *gin.Context, message string) {
	Fail(c, http.StatusConflict, message)
}

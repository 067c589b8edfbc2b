// Package response writes the JSON envelope used by every API endpoint.
package response

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/seafuel/service-voyage/internal/platform/apperr"
)

// Success writes a 200 response with data.
func Success(c *gin.Context, data interface{}) {
	c.JSON(http.StatusOK, gin.H{"success": true, "data": data})
}

// BadRequest writes a 400 response with the given message.
func BadRequest(c *gin.Context, message string) {
	c.JSON(http.StatusBadRequest, gin.H{"success": false, "error": message})
}

// Error maps an application error to its HTTP status.
func Error(c *gin.Context, err error) {
	status, message := StatusOf(err)
	c.JSON(status, gin.H{"success": false, "error": message})
}

// StatusOf returns the HTTP status and client-facing message for err.
// Errors that are not typed application errors are reported as 500 with a generic message.
func StatusOf(err error) (int, string) {
	var (
		validation   *apperr.ValidationError
		unauthorized *apperr.UnauthorizedError
		upstream     *apperr.UpstreamError
		timeout      *apperr.TimeoutError
	)
	switch {
	case errors.As(err, &validation):
		return http.StatusBadRequest, validation.Error()
	case errors.As(err, &unauthorized):
		return http.StatusUnauthorized, unauthorized.Error()
	case errors.As(err, &upstream):
		return http.StatusBadGateway, upstream.Error()
	case errors.As(err, &timeout):
		return http.StatusGatewayTimeout, timeout.Error()
	default:
		return http.StatusInternalServerError, "internal server error"
	}
}

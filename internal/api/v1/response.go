package v1

import (
	"errors"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/NandiniVerma123/Ecommerce-BE/internal/service"
)

// APIResponse is the envelope every endpoint returns.
type APIResponse struct {
	Success bool        `json:"success"`
	Message string      `json:"message"`
	Data    interface{} `json:"data"`
	Errors  interface{} `json:"errors"`
	Meta    MetaData    `json:"meta"`
}

// MetaData represents metadata for API responses
type MetaData struct {
	RequestID string `json:"request_id"`
	Timestamp string `json:"timestamp"`
}

func meta(c *gin.Context) MetaData {
	return MetaData{
		RequestID: c.GetHeader("X-Request-ID"),
		Timestamp: time.Now().UTC().Format(time.RFC3339),
	}
}

func respond(c *gin.Context, status int, message string, data interface{}) {
	c.JSON(status, APIResponse{
		Success: true,
		Message: message,
		Data:    data,
		Errors:  nil,
		Meta:    meta(c),
	})
}

func respondError(c *gin.Context, err error) {
	c.JSON(statusFor(err), APIResponse{
		Success: false,
		Message: err.Error(),
		Data:    nil,
		Errors:  gin.H{"error": err.Error()},
		Meta:    meta(c),
	})
}

func respondValidation(c *gin.Context, message string, details interface{}) {
	c.JSON(http.StatusBadRequest, APIResponse{
		Success: false,
		Message: message,
		Data:    nil,
		Errors:  details,
		Meta:    meta(c),
	})
}

// statusFor maps the service failure taxonomy onto HTTP statuses. Validation,
// conflict and invalid-state failures all read as 400 to callers.
func statusFor(err error) int {
	switch {
	case errors.Is(err, service.ErrValidation),
		errors.Is(err, service.ErrConflict),
		errors.Is(err, service.ErrInvalidState):
		return http.StatusBadRequest
	case errors.Is(err, service.ErrUnauthenticated):
		return http.StatusUnauthorized
	case errors.Is(err, service.ErrUnauthorized):
		return http.StatusForbidden
	case errors.Is(err, service.ErrNotFound):
		return http.StatusNotFound
	default:
		return http.StatusInternalServerError
	}
}

// CORSMiddleware adds CORS headers to allow all origins
func CORSMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Writer.Header().Set("Access-Control-Allow-Origin", "*")
		c.Writer.Header().Set("Access-Control-Allow-Credentials", "true")
		c.Writer.Header().Set("Access-Control-Allow-Headers", "Content-Type, Content-Length, Accept-Encoding, X-CSRF-Token, Authorization, X-Request-ID, accept, origin, Cache-Control, X-Requested-With")
		c.Writer.Header().Set("Access-Control-Allow-Methods", "POST, OPTIONS, GET, PUT, DELETE, PATCH")
		c.Writer.Header().Set("Access-Control-Expose-Headers", "Content-Length")
		c.Writer.Header().Set("Access-Control-Max-Age", "86400")

		if c.Request.Method == "OPTIONS" {
			c.AbortWithStatus(204)
			return
		}

		c.Next()
	}
}

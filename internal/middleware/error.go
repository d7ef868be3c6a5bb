package middleware

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog/log"
)

// ErrorResponse represents a standardized error response
type ErrorResponse struct {
	Code    int    `json:"code"`
	Message string `json:"message"`
	TraceID string `json:"trace_id,omitempty"`
}

// ErrorHandler turns errors handlers attached to the context into a
// response. Internal detail is logged, never sent to the caller.
func ErrorHandler() gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Next()

		if len(c.Errors) == 0 {
			return
		}

		requestID := c.GetString(ContextRequestID)
		for _, e := range c.Errors {
			log.Error().
				Err(e.Err).
				Str("request_id", requestID).
				Str("path", c.Request.URL.Path).
				Str("method", c.Request.Method).
				Msg("request error")
		}

		if c.Writer.Written() {
			return
		}

		// errors.As, not a direct assertion: services wrap repository
		// errors with %w and the status must survive the wrapping.
		status := http.StatusInternalServerError
		var coded interface{ StatusCode() int }
		if errors.As(c.Errors.Last().Err, &coded) {
			status = coded.StatusCode()
		}

		message := "internal server error"
		if status < http.StatusInternalServerError {
			message = c.Errors.Last().Error()
		}

		c.JSON(status, ErrorResponse{
			Code:    status,
			Message: message,
			TraceID: requestID,
		})
	}
}

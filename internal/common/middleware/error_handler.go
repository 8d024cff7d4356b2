package middleware

import (
	"net/http"
	"runtime/debug"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/rs/zerolog/log"

	"fishing-game-backend/internal/common/errors"
)

// RequestID attaches an X-Request-ID to every request, generating one when
// the client did not supply it.
func RequestID() gin.HandlerFunc {
	return func(c *gin.Context) {
		requestID := c.GetHeader("X-Request-ID")
		if requestID == "" {
			requestID = uuid.New().String()
		}

		c.Set("request_id", requestID)
		c.Header("X-Request-ID", requestID)
		c.Next()
	}
}

// Recovery converts panics into a JSON INTERNAL_ERROR response.
func Recovery() gin.HandlerFunc {
	return gin.CustomRecovery(func(c *gin.Context, recovered interface{}) {
		log.Error().
			Str("request_id", GetRequestID(c)).
			Str("method", c.Request.Method).
			Str("path", c.Request.URL.Path).
			Interface("panic", recovered).
			Str("stack", string(debug.Stack())).
			Msg("Panic recovered")

		RespondError(c, errors.New(errors.ErrCodeInternal, "Internal server error"))
	})
}

// ErrorResponse is the JSON envelope for every failed request.
type ErrorResponse struct {
	Error     errors.ErrorCode `json:"error"`
	Message   string           `json:"message,omitempty"`
	Timestamp time.Time        `json:"timestamp"`
	RequestID string           `json:"request_id,omitempty"`
}

// RespondError writes err as a JSON response, mapping AppError codes to HTTP
// statuses. Unknown errors become a 500 INTERNAL_ERROR without leaking the
// underlying message.
func RespondError(c *gin.Context, err error) {
	appErr, ok := errors.AsAppError(err)
	if !ok {
		appErr = errors.Wrap(err, errors.ErrCodeInternal, "Internal server error")
	}

	status := appErr.HTTPStatus()

	event := log.Info()
	if status >= http.StatusInternalServerError {
		event = log.Error()
	} else if status == http.StatusUnauthorized {
		event = log.Warn()
	}
	event.
		Str("request_id", GetRequestID(c)).
		Str("method", c.Request.Method).
		Str("path", c.Request.URL.Path).
		Str("code", string(appErr.Code)).
		Err(appErr.Cause).
		Msg(appErr.Message)

	c.AbortWithStatusJSON(status, ErrorResponse{
		Error:     appErr.Code,
		Message:   appErr.Message,
		Timestamp: time.Now().UTC(),
		RequestID: GetRequestID(c),
	})
}

// GetRequestID returns the request id set by RequestID.
func GetRequestID(c *gin.Context) string {
	if requestID, exists := c.Get("request_id"); exists {
		if id, ok := requestID.(string); ok {
			return id
		}
	}
	return ""
}

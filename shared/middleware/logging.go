package middleware

import (
	"net/http"
	"time"

	"github.com/eaglebank/banking-service/shared/logging"
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

const (
	RequestIDHeader = "X-Request-ID"
	requestIDKey    = "requestId"
)

// LoggingMiddleware tags each request with an id, echoed back in
// X-Request-ID, and logs one line once the request completes.
func LoggingMiddleware(logger logging.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()

		requestID := c.GetHeader(RequestIDHeader)
		if _, err := uuid.Parse(requestID); err != nil {
			requestID = uuid.NewString()
		}
		c.Set(requestIDKey, requestID)
		c.Header(RequestIDHeader, requestID)

		c.Next()

		status := c.Writer.Status()
		args := []any{
			"request_id", requestID,
			"method", c.Request.Method,
			"path", c.FullPath(),
			"status", status,
			"latency_ms", time.Since(start).Milliseconds(),
		}
		if userID, ok := GetUserID(c); ok {
			args = append(args, "user_id", userID)
		}

		ctx := c.Request.Context()
		switch {
		case status >= http.StatusInternalServerError:
			logger.Error(ctx, "request failed", args...)
		case status >= http.StatusBadRequest:
			logger.Warn(ctx, "request rejected", args...)
		default:
			logger.Info(ctx, "request handled", args...)
		}
	}
}

func GetRequestID(c *gin.Context) string {
	return c.GetString(requestIDKey)
}

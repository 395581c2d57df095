package middleware

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	logger "gitlab.com/maplesense1/wrk.registration_server/src/production/WRK.Logger"
)

const HeaderXRequestID = "X-Request-ID"

// RequestID keeps a caller-supplied UUID X-Request-ID or mints one, and echoes it back
func RequestID() gin.HandlerFunc {
	return func(c *gin.Context) {
		rid := ""
		if id, err := uuid.Parse(c.GetHeader(HeaderXRequestID)); err == nil {
			rid = id.String()
		} else {
			rid = uuid.NewString()
		}
		c.Set(string(RequestIDContextKey), rid)
		c.Header(HeaderXRequestID, rid)
		c.Next()
	}
}

// GetRequestID returns the request id set by RequestID, or ""
func GetRequestID(c *gin.Context) string {
	return c.GetString(string(RequestIDContextKey))
}

// AccessLog writes one structured line per request
func AccessLog(log *logger.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		path := c.Request.URL.Path

		c.Next()

		status := c.Writer.Status()
		event := log.Logger.Info()
		if status >= http.StatusInternalServerError {
			event = log.Logger.Error()
		} else if status >= http.StatusBadRequest {
			event = log.Logger.Warn()
		}

		event.
			Str("method", c.Request.Method).
			Str("path", path).
			Int("status", status).
			Dur("latency", time.Since(start)).
			Str("client_ip", c.ClientIP()).
			Str("request_id", GetRequestID(c)).
			Msg("request")
	}
}

// Recovery turns a panic into a generic 500 and logs it
func Recovery(log *logger.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		defer func() {
			if rec := recover(); rec != nil {
				log.WithRequestID(GetRequestID(c)).Logger.Error().
					Interface("panic", rec).
					Str("path", c.Request.URL.Path).
					Msg("Recovered from panic")
				c.AbortWithStatusJSON(http.StatusInternalServerError, gin.H{"msg": "Server Error"})
			}
		}()
		c.Next()
	}
}

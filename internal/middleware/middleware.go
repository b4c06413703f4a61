package middleware

import (
	"fmt"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"task-tracker-bot/pkg/log"
	"task-tracker-bot/pkg/response"
)

// HeaderRequestID carries the trace id in and out of the service.
const HeaderRequestID = "X-Request-ID"

// Trace stores a trace id in the request context, reusing X-Request-ID when sent.
func (m Middleware) Trace() gin.HandlerFunc {
	return func(c *gin.Context) {
		id := c.GetHeader(HeaderRequestID)
		if id == "" {
			id = uuid.NewString()
		}
		c.Request = c.Request.WithContext(log.WithTraceID(c.Request.Context(), id))
		c.Header(HeaderRequestID, id)
		c.Next()
	}
}

// Recovery turns a panic into a 500 and logs it with the request's trace id.
func (m Middleware) Recovery() gin.HandlerFunc {
	return func(c *gin.Context) {
		defer func() {
			if r := recover(); r != nil {
				m.l.Errorf(c.Request.Context(), "internal.middleware.Recovery: %s %s: panic: %v", c.Request.Method, c.Request.URL.Path, r)
				response.InternalError(c, fmt.Errorf("panic: %v", r))
				c.Abort()
			}
		}()
		c.Next()
	}
}

// Logging writes one debug line per request.
func (m Middleware) Logging() gin.HandlerFunc {
	return func(c *gin.Context) {
		started := time.Now()
		c.Next()

		status := c.Writer.Status()
		line := "internal.middleware.Logging: %s %s %d %s"
		if status >= http.StatusInternalServerError {
			m.l.Warnf(c.Request.Context(), line, c.Request.Method, c.Request.URL.Path, status, time.Since(started))
			return
		}
		m.l.Debugf(c.Request.Context(), line, c.Request.Method, c.Request.URL.Path, status, time.Since(started))
	}
}

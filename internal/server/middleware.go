package server

import (
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"github.com/example/studydash/internal/dashboard"
)

const requestIDHeader = "X-Request-ID"

// requestID tags every request with an id, reusing the client's if present
func requestID() gin.HandlerFunc {
	return func(c *gin.Context) {
		id := c.GetHeader(requestIDHeader)
		if id == "" {
			id = uuid.NewString()
		}
		c.Set("request_id", id)
		c.Header(requestIDHeader, id)
		c.Next()
	}
}

// accessLog writes one log line per request
func accessLog(lgr zerolog.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		c.Next()

		lgr.Info().
			Str("request_id", c.GetString("request_id")).
			Str("method", c.Request.Method).
			Str("path", c.Request.URL.Path).
			Int("status", c.Writer.Status()).
			Dur("latency", time.Since(start)).
			Msg("request")
	}
}

// serialize runs requests against the dashboard one at a time
func serialize(dash *dashboard.Dashboard) gin.HandlerFunc {
	return func(c *gin.Context) {
		dash.Lock()
		defer dash.Unlock()
		c.Next()
	}
}

// notFound answers unknown paths with an empty 404
func notFound(c *gin.Context) {
	c.Status(404)
	c.Writer.WriteHeaderNow()
}

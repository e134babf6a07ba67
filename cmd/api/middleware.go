package main

import (
	"log/slog"
	"time"

	"github.com/gin-gonic/gin"
)

// requestLogger logs end-to-end request duration and response size
func requestLogger(logger *slog.Logger) gin.HandlerFunc {
	logger = logger.With("component", "http")

	return func(c *gin.Context) {
		start := time.Now()

		c.Next()

		bytes := c.Writer.Size()
		if bytes < 0 {
			bytes = 0
		}

		logger.Info("request",
			"method", c.Request.Method,
			"path", c.Request.URL.RequestURI(),
			"status", c.Writer.Status(),
			"bytes", bytes,
			"duration_ms", time.Since(start).Milliseconds(),
		)
	}
}

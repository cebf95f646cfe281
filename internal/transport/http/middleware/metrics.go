package middleware

import (
	"time"

	"github.com/gin-gonic/gin"

	"dailydiet/internal/telemetry"
)

func Instrument() gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		c.Next()
		telemetry.ObserveHTTP(c.Request.Method, routePath(c), c.Writer.Status(), time.Since(start).Seconds())
	}
}

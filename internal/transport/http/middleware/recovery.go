package middleware

import (
	"fmt"
	"runtime/debug"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"

	"dailydiet/internal/transport/http/response"
)

func Recovery(logger logrus.FieldLogger) gin.HandlerFunc {
	return func(c *gin.Context) {
		defer func() {
			if rec := recover(); rec != nil {
				logger.WithFields(logrus.Fields{
					"panic": fmt.Sprint(rec),
					"path":  routePath(c),
					"stack": string(debug.Stack()),
				}).Error("panic recovered")
				response.InternalError(c)
			}
		}()
		c.Next()
	}
}

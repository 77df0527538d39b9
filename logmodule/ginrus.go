package logmodule

import (
	"time"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"
)

// Ginrus returns a gin middleware that logs requests through logrus
// with a fixed prefix field.
func Ginrus(prefix string) gin.HandlerFunc {
	logger := logrus.WithField("prefix", prefix)

	return func(c *gin.Context) {
		start := time.Now()
		path := c.Request.URL.Path

		c.Next()

		logger.WithFields(logrus.Fields{
			"status":    c.Writer.Status(),
			"method":    c.Request.Method,
			"path":      path,
			"ip":        c.ClientIP(),
			"latency":   time.Since(start),
			"useragent": c.Request.UserAgent(),
		}).Info()
	}
}

package middleware

import (
	"time"

	"github.com/gin-gonic/gin"
	"github.com/mssola/user_agent"
	"github.com/sirupsen/logrus"
)

// RequestLogger logs each request with latency, status and the client
// device family parsed from the User-Agent header
func RequestLogger(logger *logrus.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()

		c.Next()

		ua := user_agent.New(c.Request.UserAgent())
		browser, _ := ua.Browser()

		logger.WithFields(logrus.Fields{
			"method":   c.Request.Method,
			"path":     c.Request.URL.Path,
			"status":   c.Writer.Status(),
			"latency":  time.Since(start).String(),
			"ip":       c.ClientIP(),
			"os":       ua.OS(),
			"browser":  browser,
			"mobile":   ua.Mobile(),
		}).Info("Request handled")
	}
}

package handlers

import (
	"govconnect/utils"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// getLogger retrieves a request-scoped Zap logger from the Gin context or falls back
// to the global one.
func getLogger(c *gin.Context) *zap.Logger {
	if l, exists := c.Get("logger"); exists {
		if logger, ok := l.(*zap.Logger); ok {
			return logger
		}
	}
	return utils.GetLogger()
}

// RequestLogger attaches a logger carrying the method and path to each request and
// logs its outcome.
func RequestLogger() gin.HandlerFunc {
	return func(c *gin.Context) {
		logger := utils.GetLogger().With(
			zap.String("method", c.Request.Method),
			zap.String("path", c.Request.URL.Path),
		)
		c.Set("logger", logger)
		c.Next()
		logger.Debug("Request completed", zap.Int("status", c.Writer.Status()))
	}
}

// bindError reports a malformed request body as a validation error.
func bindError(c *gin.Context, err error) {
	getLogger(c).Debug("Invalid request payload", zap.Error(err))
	utils.JSONError(c, utils.KindValidation, "Invalid request payload: "+err.Error())
}

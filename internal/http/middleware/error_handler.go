package middleware

import (
	"errors"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"

	"github.com/transitdesk/lostfound-backend/internal/http/response"
	"github.com/transitdesk/lostfound-backend/internal/logger"
	"github.com/transitdesk/lostfound-backend/internal/pkg/apperror"
)

// ErrorHandler логирует ошибки, накопленные в c.Errors, и отвечает клиенту,
// если обработчик сам этого не сделал. Клиент получает общее сообщение.
func ErrorHandler() gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Next()

		if len(c.Errors) == 0 {
			return
		}

		err := c.Errors.Last()
		fields := logrus.Fields{
			"error":  err.Error(),
			"path":   c.Request.URL.Path,
			"method": c.Request.Method,
		}

		var appErr *apperror.AppError
		if errors.As(err.Err, &appErr) {
			fields["code"] = appErr.Code
		}
		logger.Log.WithFields(fields).Error("request error")

		if c.Writer.Written() {
			return
		}
		response.Error(c, err.Err)
	}
}

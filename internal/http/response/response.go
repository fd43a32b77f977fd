package response

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/transitdesk/lostfound-backend/internal/pkg/apperror"
)

// ErrorBody тело ответа об ошибке.
type ErrorBody struct {
	Error ErrorInfo `json:"error"`
}

type ErrorInfo struct {
	Code    string `json:"code"`
	Message string `json:"message"`
	Field   string `json:"field,omitempty"`
	Current string `json:"currentStatus,omitempty"`
	Target  string `json:"attemptedStatus,omitempty"`
}

func Success(c *gin.Context, data interface{}) {
	c.JSON(http.StatusOK, data)
}

func Created(c *gin.Context, data interface{}) {
	c.JSON(http.StatusCreated, data)
}

// Error отдаёт AppError клиенту. Ошибки хранилища и неизвестные ошибки
// получают общее сообщение; подробности пишет ErrorHandler.
func Error(c *gin.Context, err error) {
	var appErr *apperror.AppError
	if errors.As(err, &appErr) {
		if appErr.HTTPStatus >= http.StatusInternalServerError {
			_ = c.Error(err)
			c.JSON(appErr.HTTPStatus, ErrorBody{Error: ErrorInfo{
				Code:    string(appErr.Code),
				Message: "internal server error",
			}})
			return
		}
		c.JSON(appErr.HTTPStatus, ErrorBody{Error: ErrorInfo{
			Code:    string(appErr.Code),
			Message: appErr.Message,
			Field:   appErr.Field,
			Current: appErr.From,
			Target:  appErr.To,
		}})
		return
	}

	_ = c.Error(err)
	c.JSON(http.StatusInternalServerError, ErrorBody{Error: ErrorInfo{
		Code:    string(apperror.ErrCodeInternal),
		Message: "internal server error",
	}})
}

func BadRequest(c *gin.Context, message string) {
	abort(c, http.StatusBadRequest, apperror.ErrCodeBadRequest, message)
}

func Unauthorized(c *gin.Context, message string) {
	abort(c, http.StatusUnauthorized, apperror.ErrCodeUnauthorized, message)
}

func Forbidden(c *gin.Context, message string) {
	abort(c, http.StatusForbidden, apperror.ErrCodeForbidden, message)
}

func TooManyRequests(c *gin.Context, message string) {
	abort(c, http.StatusTooManyRequests, "RATE_LIMITED", message)
}

func abort(c *gin.Context, status int, code apperror.ErrorCode, message string) {
	c.AbortWithStatusJSON(status, ErrorBody{Error: ErrorInfo{Code: string(code), Message: message}})
}

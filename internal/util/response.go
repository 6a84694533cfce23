package util

import (
	"errors"
	"net/http"
	"tmua_guide_backend/pkg/logger"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// Response 统一响应结构
type Response struct {
	Code    int         `json:"code"`
	Message string      `json:"message"`
	Data    interface{} `json:"data,omitempty"`
}

func Success(c *gin.Context, data interface{}) {
	c.JSON(http.StatusOK, Response{
		Code:    http.StatusOK,
		Message: "success",
		Data:    data,
	})
}

func Created(c *gin.Context, data interface{}) {
	c.JSON(http.StatusCreated, Response{
		Code:    http.StatusCreated,
		Message: "created",
		Data:    data,
	})
}

func Error(c *gin.Context, code int, message string) {
	c.JSON(code, Response{
		Code:    code,
		Message: message,
	})
}

func Unauthorized(c *gin.Context) {
	Error(c, http.StatusUnauthorized, "Unauthorized")
}

func Forbidden(c *gin.Context) {
	Error(c, http.StatusForbidden, "Forbidden")
}

func BadRequest(c *gin.Context, message string) {
	Error(c, http.StatusBadRequest, message)
}

func NotFound(c *gin.Context) {
	Error(c, http.StatusNotFound, "Resource not found")
}

func InternalServerError(c *gin.Context) {
	Error(c, http.StatusInternalServerError, "Internal server error")
}

func LogInternalError(c *gin.Context, err error) {
	logger.Log.Error("Internal server error", zap.Error(err))
	InternalServerError(c)
}

// RespondError 错误到HTTP状态码的唯一翻译层，业务代码只返回带类别的error
func RespondError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, ErrInvalidArgument):
		BadRequest(c, err.Error())
	case errors.Is(err, ErrInvalidCredentials), errors.Is(err, ErrUnauthorized):
		Unauthorized(c)
	case errors.Is(err, ErrPermissionDenied):
		Forbidden(c)
	case errors.Is(err, ErrQuestionNotFound), errors.Is(err, ErrUserNotFound):
		NotFound(c)
	case errors.Is(err, ErrEmailRegistered):
		Error(c, http.StatusConflict, err.Error())
	case errors.Is(err, ErrStoreUnavailable):
		logger.Log.Error("Upstream store failure", zap.Error(err))
		Error(c, http.StatusServiceUnavailable, "Upstream store unavailable")
	default:
		LogInternalError(c, err)
	}
}

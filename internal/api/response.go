package api

import (
	"errors"
	"net/http"

	"fstore-be/internal/apperror"
	"fstore-be/internal/logger"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

type JSONResponse struct {
	Status  bool        `json:"status"`
	Message string      `json:"message"`
	Data    interface{} `json:"data,omitempty"`
}

func respondJSON(c *gin.Context, code int, message string, data interface{}) {
	c.JSON(code, JSONResponse{
		Status:  code >= 200 && code < 300,
		Message: message,
		Data:    data,
	})
}

// respondError surfaces app errors with their own status and message;
// anything else is logged and reported as a bare 500.
func respondError(c *gin.Context, err error) {
	code := apperror.StatusCode(err)
	message := http.StatusText(http.StatusInternalServerError)

	var appErr *apperror.Error
	if errors.As(err, &appErr) {
		message = appErr.Message
	}

	log := logger.FromCtx(c.Request.Context()).With(
		zap.String("layer", "api"),
		zap.String("route", c.FullPath()),
	)
	if code >= http.StatusInternalServerError {
		log.Error("request failed", zap.Error(err))
	} else {
		log.Debug("request rejected", zap.Int("status", code), zap.Error(err))
	}

	if apperror.IsKind(err, apperror.KindUnauthorized) {
		c.Header("WWW-Authenticate", `Bearer realm="api"`)
	}
	c.AbortWithStatusJSON(code, JSONResponse{Status: false, Message: message})
}

var (
	errInvalidBody = apperror.Invalid("invalid request body")
	errInvalidID   = apperror.Invalid("invalid id")
	errInvalidDate = apperror.Invalid("dates must be formatted as YYYY-MM-DD")
	errAdminOnly   = apperror.Forbidden("admin access required")
)

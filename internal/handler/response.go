// Package handler holds the HTTP surface. Responses share one envelope
// so clients can branch on success and code without inspecting status
// lines.
package handler

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog/log"

	apperrors "github.com/GanehsaConsulting/cms-admin-api/pkg/errors"
)

// Response is the envelope every endpoint returns.
type Response struct {
	Success bool        `json:"success"`
	Status  int         `json:"status"`
	Message string      `json:"message"`
	Code    string      `json:"code,omitempty"`
	Data    interface{} `json:"data,omitempty"`
}

func OK(c *gin.Context, message string, data interface{}) {
	c.JSON(http.StatusOK, Response{
		Success: true,
		Status:  http.StatusOK,
		Message: message,
		Data:    data,
	})
}

func Created(c *gin.Context, message string, data interface{}) {
	c.JSON(http.StatusCreated, Response{
		Success: true,
		Status:  http.StatusCreated,
		Message: message,
		Data:    data,
	})
}

// Error translates an AppError into its HTTP shape. Anything else is a
// masked 500; the cause goes to the log, not the client.
func Error(c *gin.Context, err error) {
	var appErr *apperrors.AppError
	if !errors.As(err, &appErr) {
		appErr = apperrors.Internal(err)
	}

	if appErr.Kind == apperrors.KindInternal {
		log.Error().Err(err).
			Str("method", c.Request.Method).
			Str("path", c.Request.URL.Path).
			Msg("request failed")
	}

	status := appErr.StatusCode()
	c.AbortWithStatusJSON(status, Response{
		Success: false,
		Status:  status,
		Message: appErr.Message,
		Code:    appErr.Code(),
		Data:    fieldsOrNil(appErr),
	})
}

// ErrorMessage is for middleware rejections that have no AppError.
func ErrorMessage(c *gin.Context, status int, code, message string) {
	c.AbortWithStatusJSON(status, Response{
		Success: false,
		Status:  status,
		Message: message,
		Code:    code,
	})
}

func fieldsOrNil(appErr *apperrors.AppError) interface{} {
	if len(appErr.Fields) == 0 {
		return nil
	}
	return gin.H{"fields": appErr.Fields}
}

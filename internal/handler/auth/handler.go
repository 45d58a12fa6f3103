package auth

import (
	"github.com/gin-gonic/gin"

	"github.com/GanehsaConsulting/cms-admin-api/internal/handler"
	"github.com/GanehsaConsulting/cms-admin-api/internal/model"
	"github.com/GanehsaConsulting/cms-admin-api/internal/service/auth"
	apperrors "github.com/GanehsaConsulting/cms-admin-api/pkg/errors"
)

type Handler struct {
	service auth.AuthServicer
}

func NewHandler(service auth.AuthServicer) *Handler {
	return &Handler{service: service}
}

func (h *Handler) Login(c *gin.Context) {
	var req model.LoginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		handler.Error(c, apperrors.Validation([]apperrors.FieldError{
			{Field: "body", Message: "email and password are required"},
		}))
		return
	}

	resp, err := h.service.Login(c.Request.Context(), &req)
	if err != nil {
		handler.Error(c, err)
		return
	}
	handler.OK(c, "login successful", resp)
}

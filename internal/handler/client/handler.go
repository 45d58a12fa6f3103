package client

import (
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/GanehsaConsulting/cms-admin-api/internal/handler"
	"github.com/GanehsaConsulting/cms-admin-api/internal/model"
	"github.com/GanehsaConsulting/cms-admin-api/internal/service/client"
	apperrors "github.com/GanehsaConsulting/cms-admin-api/pkg/errors"
)

type Handler struct {
	service client.ClientServicer
}

func NewHandler(service client.ClientServicer) *Handler {
	return &Handler{service: service}
}

type clientRequest struct {
	Name     string `json:"name" binding:"required"`
	Industry string `json:"industry"`
	LogoKey  string `json:"logoKey"`
	Website  string `json:"website"`
}

func (h *Handler) Create(c *gin.Context) {
	var req clientRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		handler.Error(c, apperrors.Validation([]apperrors.FieldError{
			{Field: "body", Message: "invalid JSON payload"},
		}))
		return
	}

	cl := &model.Client{Name: req.Name, Industry: req.Industry, LogoKey: req.LogoKey, Website: req.Website}
	if err := h.service.CreateClient(c.Request.Context(), cl); err != nil {
		handler.Error(c, err)
		return
	}
	handler.Created(c, "client created", cl)
}

func (h *Handler) Get(c *gin.Context) {
	id, err := parseID(c)
	if err != nil {
		handler.Error(c, err)
		return
	}

	cl, err := h.service.GetClient(c.Request.Context(), id)
	if err != nil {
		handler.Error(c, err)
		return
	}
	handler.OK(c, "client retrieved", cl)
}

func (h *Handler) List(c *gin.Context) {
	clients, err := h.service.ListClients(c.Request.Context())
	if err != nil {
		handler.Error(c, err)
		return
	}
	handler.OK(c, "clients retrieved", clients)
}

func (h *Handler) Update(c *gin.Context) {
	id, err := parseID(c)
	if err != nil {
		handler.Error(c, err)
		return
	}

	var req clientRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		handler.Error(c, apperrors.Validation([]apperrors.FieldError{
			{Field: "body", Message: "invalid JSON payload"},
		}))
		return
	}

	cl := &model.Client{
		Base:     model.Base{ID: id},
		Name:     req.Name,
		Industry: req.Industry,
		LogoKey:  req.LogoKey,
		Website:  req.Website,
	}
	if err := h.service.UpdateClient(c.Request.Context(), cl); err != nil {
		handler.Error(c, err)
		return
	}
	handler.OK(c, "client updated", cl)
}

func (h *Handler) Delete(c *gin.Context) {
	id, err := parseID(c)
	if err != nil {
		handler.Error(c, err)
		return
	}

	if err := h.service.DeleteClient(c.Request.Context(), id); err != nil {
		handler.Error(c, err)
		return
	}
	handler.OK(c, "client deleted", nil)
}

func parseID(c *gin.Context) (int64, error) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil || id <= 0 {
		return 0, apperrors.Validation([]apperrors.FieldError{
			{Field: "id", Message: "must be a positive integer"},
		})
	}
	return id, nil
}

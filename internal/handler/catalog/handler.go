package catalog

import (
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/GanehsaConsulting/cms-admin-api/internal/handler"
	"github.com/GanehsaConsulting/cms-admin-api/internal/model"
	"github.com/GanehsaConsulting/cms-admin-api/internal/service/catalog"
	apperrors "github.com/GanehsaConsulting/cms-admin-api/pkg/errors"
)

type Handler struct {
	service catalog.ServiceServicer
}

func NewHandler(service catalog.ServiceServicer) *Handler {
	return &Handler{service: service}
}

type serviceRequest struct {
	Name        string `json:"name" binding:"required"`
	Slug        string `json:"slug" binding:"omitempty,slug"`
	Description string `json:"description"`
}

func (h *Handler) Create(c *gin.Context) {
	var req serviceRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		handler.Error(c, apperrors.Validation([]apperrors.FieldError{
			{Field: "body", Message: "invalid JSON payload"},
		}))
		return
	}

	svc := &model.Service{Name: req.Name, Slug: req.Slug, Description: req.Description}
	if err := h.service.CreateService(c.Request.Context(), svc); err != nil {
		handler.Error(c, err)
		return
	}
	handler.Created(c, "service created", svc)
}

func (h *Handler) Get(c *gin.Context) {
	id, err := parseID(c)
	if err != nil {
		handler.Error(c, err)
		return
	}

	svc, err := h.service.GetService(c.Request.Context(), id)
	if err != nil {
		handler.Error(c, err)
		return
	}
	handler.OK(c, "service retrieved", svc)
}

func (h *Handler) List(c *gin.Context) {
	services, err := h.service.ListServices(c.Request.Context())
	if err != nil {
		handler.Error(c, err)
		return
	}
	handler.OK(c, "services retrieved", services)
}

func (h *Handler) Update(c *gin.Context) {
	id, err := parseID(c)
	if err != nil {
		handler.Error(c, err)
		return
	}

	var req serviceRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		handler.Error(c, apperrors.Validation([]apperrors.FieldError{
			{Field: "body", Message: "invalid JSON payload"},
		}))
		return
	}

	svc := &model.Service{
		Base:        model.Base{ID: id},
		Name:        req.Name,
		Slug:        req.Slug,
		Description: req.Description,
	}
	if err := h.service.UpdateService(c.Request.Context(), svc); err != nil {
		handler.Error(c, err)
		return
	}
	handler.OK(c, "service updated", svc)
}

func (h *Handler) Delete(c *gin.Context) {
	id, err := parseID(c)
	if err != nil {
		handler.Error(c, err)
		return
	}

	if err := h.service.DeleteService(c.Request.Context(), id); err != nil {
		handler.Error(c, err)
		return
	}
	handler.OK(c, "service deleted", nil)
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

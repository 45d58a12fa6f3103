package project

import (
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/GanehsaConsulting/cms-admin-api/internal/handler"
	"github.com/GanehsaConsulting/cms-admin-api/internal/model"
	"github.com/GanehsaConsulting/cms-admin-api/internal/service/project"
	apperrors "github.com/GanehsaConsulting/cms-admin-api/pkg/errors"
)

type Handler struct {
	service project.ProjectServicer
}

func NewHandler(service project.ProjectServicer) *Handler {
	return &Handler{service: service}
}

type projectRequest struct {
	ClientID    *int64 `json:"clientId"`
	ServiceID   *int64 `json:"serviceId"`
	Title       string `json:"title" binding:"required"`
	Description string `json:"description"`
	ImageKey    string `json:"imageKey"`
	Status      string `json:"status"`
}

func (h *Handler) Create(c *gin.Context) {
	var req projectRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		handler.Error(c, apperrors.Validation([]apperrors.FieldError{
			{Field: "body", Message: "invalid JSON payload"},
		}))
		return
	}

	p := &model.Project{
		ClientID:    req.ClientID,
		ServiceID:   req.ServiceID,
		Title:       req.Title,
		Description: req.Description,
		ImageKey:    req.ImageKey,
		Status:      req.Status,
	}
	if err := h.service.CreateProject(c.Request.Context(), p); err != nil {
		handler.Error(c, err)
		return
	}
	handler.Created(c, "project created", p)
}

func (h *Handler) Get(c *gin.Context) {
	id, err := parseID(c)
	if err != nil {
		handler.Error(c, err)
		return
	}

	p, err := h.service.GetProject(c.Request.Context(), id)
	if err != nil {
		handler.Error(c, err)
		return
	}
	handler.OK(c, "project retrieved", p)
}

func (h *Handler) List(c *gin.Context) {
	projects, err := h.service.ListProjects(c.Request.Context(), c.Query("status"))
	if err != nil {
		handler.Error(c, err)
		return
	}
	handler.OK(c, "projects retrieved", projects)
}

func (h *Handler) Update(c *gin.Context) {
	id, err := parseID(c)
	if err != nil {
		handler.Error(c, err)
		return
	}

	var req projectRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		handler.Error(c, apperrors.Validation([]apperrors.FieldError{
			{Field: "body", Message: "invalid JSON payload"},
		}))
		return
	}

	p := &model.Project{
		Base:        model.Base{ID: id},
		ClientID:    req.ClientID,
		ServiceID:   req.ServiceID,
		Title:       req.Title,
		Description: req.Description,
		ImageKey:    req.ImageKey,
		Status:      req.Status,
	}
	if err := h.service.UpdateProject(c.Request.Context(), p); err != nil {
		handler.Error(c, err)
		return
	}
	handler.OK(c, "project updated", p)
}

func (h *Handler) Delete(c *gin.Context) {
	id, err := parseID(c)
	if err != nil {
		handler.Error(c, err)
		return
	}

	if err := h.service.DeleteProject(c.Request.Context(), id); err != nil {
		handler.Error(c, err)
		return
	}
	handler.OK(c, "project deleted", nil)
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

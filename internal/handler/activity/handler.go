package activity

import (
	"strconv"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/GanehsaConsulting/cms-admin-api/internal/handler"
	"github.com/GanehsaConsulting/cms-admin-api/internal/model"
	"github.com/GanehsaConsulting/cms-admin-api/internal/service/activity"
	apperrors "github.com/GanehsaConsulting/cms-admin-api/pkg/errors"
)

type Handler struct {
	service activity.ActivityServicer
}

func NewHandler(service activity.ActivityServicer) *Handler {
	return &Handler{service: service}
}

type activityRequest struct {
	Title       string     `json:"title" binding:"required"`
	Description string     `json:"description"`
	ImageKey    string     `json:"imageKey"`
	HappenedAt  *time.Time `json:"happenedAt"`
}

func (h *Handler) Create(c *gin.Context) {
	var req activityRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		handler.Error(c, apperrors.Validation([]apperrors.FieldError{
			{Field: "body", Message: "invalid JSON payload"},
		}))
		return
	}

	a := &model.Activity{
		Title:       req.Title,
		Description: req.Description,
		ImageKey:    req.ImageKey,
		HappenedAt:  req.HappenedAt,
	}
	if err := h.service.CreateActivity(c.Request.Context(), a); err != nil {
		handler.Error(c, err)
		return
	}
	handler.Created(c, "activity created", a)
}

func (h *Handler) Get(c *gin.Context) {
	id, err := parseID(c)
	if err != nil {
		handler.Error(c, err)
		return
	}

	a, err := h.service.GetActivity(c.Request.Context(), id)
	if err != nil {
		handler.Error(c, err)
		return
	}
	handler.OK(c, "activity retrieved", a)
}

func (h *Handler) List(c *gin.Context) {
	activities, err := h.service.ListActivities(c.Request.Context())
	if err != nil {
		handler.Error(c, err)
		return
	}
	handler.OK(c, "activities retrieved", activities)
}

func (h *Handler) Update(c *gin.Context) {
	id, err := parseID(c)
	if err != nil {
		handler.Error(c, err)
		return
	}

	var req activityRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		handler.Error(c, apperrors.Validation([]apperrors.FieldError{
			{Field: "body", Message: "invalid JSON payload"},
		}))
		return
	}

	a := &model.Activity{
		Base:        model.Base{ID: id},
		Title:       req.Title,
		Description: req.Description,
		ImageKey:    req.ImageKey,
		HappenedAt:  req.HappenedAt,
	}
	if err := h.service.UpdateActivity(c.Request.Context(), a); err != nil {
		handler.Error(c, err)
		return
	}
	handler.OK(c, "activity updated", a)
}

func (h *Handler) Delete(c *gin.Context) {
	id, err := parseID(c)
	if err != nil {
		handler.Error(c, err)
		return
	}

	if err := h.service.DeleteActivity(c.Request.Context(), id); err != nil {
		handler.Error(c, err)
		return
	}
	handler.OK(c, "activity deleted", nil)
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

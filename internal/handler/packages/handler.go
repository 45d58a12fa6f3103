package packages

import (
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/GanehsaConsulting/cms-admin-api/internal/handler"
	"github.com/GanehsaConsulting/cms-admin-api/internal/model"
	"github.com/GanehsaConsulting/cms-admin-api/internal/service/packages"
	apperrors "github.com/GanehsaConsulting/cms-admin-api/pkg/errors"
)

type Handler struct {
	service packages.PackageServicer
}

func NewHandler(service packages.PackageServicer) *Handler {
	return &Handler{service: service}
}

func (h *Handler) Create(c *gin.Context) {
	var req model.PackageCreate
	if err := c.ShouldBindJSON(&req); err != nil {
		handler.Error(c, apperrors.Validation([]apperrors.FieldError{
			{Field: "body", Message: "invalid JSON payload"},
		}))
		return
	}

	pkg, err := h.service.CreatePackage(c.Request.Context(), &req)
	if err != nil {
		handler.Error(c, err)
		return
	}
	handler.Created(c, "package created", pkg)
}

func (h *Handler) Get(c *gin.Context) {
	id, err := parseID(c)
	if err != nil {
		handler.Error(c, err)
		return
	}

	pkg, err := h.service.GetPackage(c.Request.Context(), id)
	if err != nil {
		handler.Error(c, err)
		return
	}
	handler.OK(c, "package retrieved", pkg)
}

func (h *Handler) List(c *gin.Context) {
	raw := c.Query("serviceId")
	if raw == "" {
		raw = c.Query("service_id")
	}
	serviceID, err := strconv.ParseInt(raw, 10, 64)
	if err != nil || serviceID <= 0 {
		handler.Error(c, apperrors.Validation([]apperrors.FieldError{
			{Field: "serviceId", Message: "must be a positive integer"},
		}))
		return
	}

	pkgs, err := h.service.ListPackages(c.Request.Context(), serviceID)
	if err != nil {
		handler.Error(c, err)
		return
	}
	handler.OK(c, "packages retrieved", pkgs)
}

// Update applies a partial patch. Absent fields stay untouched; an
// explicit empty features or requirements array clears the set.
func (h *Handler) Update(c *gin.Context) {
	id, err := parseID(c)
	if err != nil {
		handler.Error(c, err)
		return
	}

	var req model.PackageUpdate
	if err := c.ShouldBindJSON(&req); err != nil {
		handler.Error(c, apperrors.Validation([]apperrors.FieldError{
			{Field: "body", Message: "invalid JSON payload"},
		}))
		return
	}

	pkg, err := h.service.UpdatePackage(c.Request.Context(), id, &req)
	if err != nil {
		handler.Error(c, err)
		return
	}
	handler.OK(c, "package updated", pkg)
}

func (h *Handler) Delete(c *gin.Context) {
	id, err := parseID(c)
	if err != nil {
		handler.Error(c, err)
		return
	}

	if err := h.service.DeletePackage(c.Request.Context(), id); err != nil {
		handler.Error(c, err)
		return
	}
	handler.OK(c, "package deleted", gin.H{"id": id})
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

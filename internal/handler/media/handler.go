package media

import (
	"io"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/GanehsaConsulting/cms-admin-api/internal/handler"
	"github.com/GanehsaConsulting/cms-admin-api/internal/middleware"
	"github.com/GanehsaConsulting/cms-admin-api/internal/service/media"
	apperrors "github.com/GanehsaConsulting/cms-admin-api/pkg/errors"
)

type Handler struct {
	service media.MediaServicer
}

func NewHandler(service media.MediaServicer) *Handler {
	return &Handler{service: service}
}

// Upload accepts a multipart form with a single "file" part.
func (h *Handler) Upload(c *gin.Context) {
	fileHeader, err := c.FormFile("file")
	if err != nil {
		handler.Error(c, apperrors.Validation([]apperrors.FieldError{
			{Field: "file", Message: "multipart file is required"},
		}))
		return
	}

	f, err := fileHeader.Open()
	if err != nil {
		handler.Error(c, err)
		return
	}
	defer f.Close()

	data, err := io.ReadAll(f)
	if err != nil {
		handler.Error(c, err)
		return
	}

	m, err := h.service.UploadMedia(c.Request.Context(), &media.UploadInput{
		Filename:    fileHeader.Filename,
		ContentType: fileHeader.Header.Get("Content-Type"),
		Data:        data,
		UploadedBy:  c.GetInt64(middleware.ContextUserID),
	})
	if err != nil {
		handler.Error(c, err)
		return
	}
	handler.Created(c, "media uploaded", m)
}

func (h *Handler) Get(c *gin.Context) {
	id, err := parseID(c)
	if err != nil {
		handler.Error(c, err)
		return
	}

	m, err := h.service.GetMedia(c.Request.Context(), id)
	if err != nil {
		handler.Error(c, err)
		return
	}
	handler.OK(c, "media retrieved", m)
}

func (h *Handler) List(c *gin.Context) {
	items, err := h.service.ListMedia(c.Request.Context())
	if err != nil {
		handler.Error(c, err)
		return
	}
	handler.OK(c, "media retrieved", items)
}

func (h *Handler) Delete(c *gin.Context) {
	id, err := parseID(c)
	if err != nil {
		handler.Error(c, err)
		return
	}

	if err := h.service.DeleteMedia(c.Request.Context(), id); err != nil {
		handler.Error(c, err)
		return
	}
	handler.OK(c, "media deleted", nil)
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

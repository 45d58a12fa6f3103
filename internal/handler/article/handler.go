package article

import (
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/GanehsaConsulting/cms-admin-api/internal/handler"
	"github.com/GanehsaConsulting/cms-admin-api/internal/middleware"
	"github.com/GanehsaConsulting/cms-admin-api/internal/model"
	"github.com/GanehsaConsulting/cms-admin-api/internal/service/article"
	apperrors "github.com/GanehsaConsulting/cms-admin-api/pkg/errors"
)

type Handler struct {
	service article.ArticleServicer
}

func NewHandler(service article.ArticleServicer) *Handler {
	return &Handler{service: service}
}

type articleRequest struct {
	Title    string `json:"title" binding:"required"`
	Slug     string `json:"slug" binding:"omitempty,slug"`
	Excerpt  string `json:"excerpt"`
	Content  string `json:"content"`
	CoverKey string `json:"coverKey"`
	Status   string `json:"status"`
}

func (h *Handler) Create(c *gin.Context) {
	var req articleRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		handler.Error(c, apperrors.Validation([]apperrors.FieldError{
			{Field: "body", Message: "invalid JSON payload"},
		}))
		return
	}

	a := &model.Article{
		AuthorID: c.GetInt64(middleware.ContextUserID),
		Title:    req.Title,
		Slug:     req.Slug,
		Excerpt:  req.Excerpt,
		Content:  req.Content,
		CoverKey: req.CoverKey,
		Status:   req.Status,
	}
	if err := h.service.CreateArticle(c.Request.Context(), a); err != nil {
		handler.Error(c, err)
		return
	}
	handler.Created(c, "article created", a)
}

func (h *Handler) Get(c *gin.Context) {
	id, err := parseID(c)
	if err != nil {
		handler.Error(c, err)
		return
	}

	a, err := h.service.GetArticle(c.Request.Context(), id)
	if err != nil {
		handler.Error(c, err)
		return
	}
	handler.OK(c, "article retrieved", a)
}

func (h *Handler) List(c *gin.Context) {
	articles, err := h.service.ListArticles(c.Request.Context(), c.Query("status"))
	if err != nil {
		handler.Error(c, err)
		return
	}
	handler.OK(c, "articles retrieved", articles)
}

func (h *Handler) Update(c *gin.Context) {
	id, err := parseID(c)
	if err != nil {
		handler.Error(c, err)
		return
	}

	existing, err := h.service.GetArticle(c.Request.Context(), id)
	if err != nil {
		handler.Error(c, err)
		return
	}

	var req articleRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		handler.Error(c, apperrors.Validation([]apperrors.FieldError{
			{Field: "body", Message: "invalid JSON payload"},
		}))
		return
	}

	existing.Title = req.Title
	existing.Slug = req.Slug
	existing.Excerpt = req.Excerpt
	existing.Content = req.Content
	existing.CoverKey = req.CoverKey
	existing.Status = req.Status

	if err := h.service.UpdateArticle(c.Request.Context(), existing); err != nil {
		handler.Error(c, err)
		return
	}
	handler.OK(c, "article updated", existing)
}

func (h *Handler) Delete(c *gin.Context) {
	id, err := parseID(c)
	if err != nil {
		handler.Error(c, err)
		return
	}

	if err := h.service.DeleteArticle(c.Request.Context(), id); err != nil {
		handler.Error(c, err)
		return
	}
	handler.OK(c, "article deleted", nil)
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

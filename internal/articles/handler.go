package articles

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/neuroeducatimo/landing/pkg/common"
	"github.com/neuroeducatimo/landing/pkg/locale"
	"github.com/neuroeducatimo/landing/pkg/middleware"
)

// Handler handles HTTP requests for articles
type Handler struct {
	service *Service
}

// NewHandler creates a new articles handler
func NewHandler(service *Service) *Handler {
	return &Handler{service: service}
}

// RegisterRoutes registers article routes. Writes go through adminOnly.
func (h *Handler) RegisterRoutes(rg *gin.RouterGroup, adminOnly gin.HandlerFunc) {
	a := rg.Group("/articles")
	{
		a.GET("", h.ListArticles)
		a.GET("/:slug", h.GetArticle)
	}

	admin := rg.Group("/articles", adminOnly)
	{
		admin.POST("", middleware.ValidateRequest[CreateArticleRequest](), h.CreateArticle)
		admin.PUT("/:id", middleware.ValidateRequest[UpdateArticleRequest](), h.UpdateArticle)
		admin.DELETE("/:id", h.DeleteArticle)
	}
}

// ListArticles lists articles, optionally filtered by ?language=
func (h *Handler) ListArticles(c *gin.Context) {
	var lang *locale.Code
	if raw := c.Query("language"); raw != "" {
		code, ok := locale.Normalize(raw)
		if !ok {
			common.ErrorResponse(c, http.StatusBadRequest, "unsupported language")
			return
		}
		lang = &code
	}

	items, err := h.service.ListByLanguage(c.Request.Context(), lang)
	if err != nil {
		common.AppErrorResponse(c, err)
		return
	}

	c.JSON(http.StatusOK, items)
}

// GetArticle returns one article by slug
func (h *Handler) GetArticle(c *gin.Context) {
	a, err := h.service.GetBySlug(c.Request.Context(), c.Param("slug"))
	if err != nil {
		common.AppErrorResponse(c, err)
		return
	}

	c.JSON(http.StatusOK, a)
}

// CreateArticle creates an article. The body is bound by ValidateRequest.
func (h *Handler) CreateArticle(c *gin.Context) {
	req, ok := middleware.ValidatedRequest[CreateArticleRequest](c)
	if !ok {
		req = new(CreateArticleRequest)
		if !middleware.ValidateAndBind(c, req) {
			return
		}
	}

	a, err := h.service.Create(c.Request.Context(), req)
	if err != nil {
		common.AppErrorResponse(c, err)
		return
	}

	c.JSON(http.StatusCreated, a)
}

// UpdateArticle updates an article
func (h *Handler) UpdateArticle(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		common.ErrorResponse(c, http.StatusBadRequest, "invalid article ID")
		return
	}

	req, ok := middleware.ValidatedRequest[UpdateArticleRequest](c)
	if !ok {
		req = new(UpdateArticleRequest)
		if !middleware.ValidateAndBind(c, req) {
			return
		}
	}

	a, err := h.service.Update(c.Request.Context(), id, req)
	if err != nil {
		common.AppErrorResponse(c, err)
		return
	}

	c.JSON(http.StatusOK, a)
}

// DeleteArticle deletes an article
func (h *Handler) DeleteArticle(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		common.ErrorResponse(c, http.StatusBadRequest, "invalid article ID")
		return
	}

	if err := h.service.Delete(c.Request.Context(), id); err != nil {
		common.AppErrorResponse(c, err)
		return
	}

	common.SuccessResponseWithStatus(c, http.StatusOK, nil, "Article deleted successfully")
}

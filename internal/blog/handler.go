package blog

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/neuroeducatimo/landing/pkg/common"
)

// Handler serves the blog data and the crawler files
type Handler struct {
	service *Service
}

// NewHandler creates a new blog handler
func NewHandler(service *Service) *Handler {
	return &Handler{service: service}
}

// RegisterRoutes registers the blog routes on the root router
func (h *Handler) RegisterRoutes(r gin.IRouter) {
	r.GET("/blog", h.List)
	r.GET("/blog/:slug", h.Article)
	r.GET("/sitemap.xml", h.Sitemap)
	r.GET("/robots.txt", h.Robots)
}

// List returns the blog index for ?language=
func (h *Handler) List(c *gin.Context) {
	view, err := h.service.RenderList(c.Request.Context(), c.Query("language"))
	if err != nil {
		common.AppErrorResponse(c, err)
		return
	}
	c.JSON(http.StatusOK, view)
}

// Article returns one article page
func (h *Handler) Article(c *gin.Context) {
	view, err := h.service.RenderArticle(c.Request.Context(), c.Param("slug"))
	if err != nil {
		common.AppErrorResponse(c, err)
		return
	}
	c.JSON(http.StatusOK, view)
}

// Sitemap serves sitemap.xml
func (h *Handler) Sitemap(c *gin.Context) {
	data, err := h.service.Sitemap(c.Request.Context())
	if err != nil {
		common.AppErrorResponse(c, err)
		return
	}
	c.Data(http.StatusOK, "application/xml; charset=utf-8", data)
}

// Robots serves robots.txt
func (h *Handler) Robots(c *gin.Context) {
	c.String(http.StatusOK, h.service.Robots())
}

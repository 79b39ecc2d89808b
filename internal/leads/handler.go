package leads

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/gin-gonic/gin/binding"

	"github.com/neuroeducatimo/landing/pkg/common"
	"github.com/neuroeducatimo/landing/pkg/pagination"
)

// Handler handles HTTP requests for lead intake
type Handler struct {
	service *Service
}

// NewHandler creates a new leads handler
func NewHandler(service *Service) *Handler {
	return &Handler{service: service}
}

// RegisterRoutes registers lead routes. Listing goes through adminOnly.
func (h *Handler) RegisterRoutes(rg *gin.RouterGroup, adminOnly gin.HandlerFunc) {
	rg.POST("/register", h.Register)
	rg.GET("/leads", adminOnly, h.ListLeads)
}

// Register accepts a landing form or quiz submission as JSON or form data
func (h *Handler) Register(c *gin.Context) {
	var sub Submission
	if c.ContentType() == binding.MIMEJSON {
		if err := c.ShouldBindJSON(&sub); err != nil {
			common.ErrorResponse(c, http.StatusBadRequest, "invalid request body")
			return
		}
	} else {
		if err := c.ShouldBindWith(&sub, binding.Form); err != nil {
			common.ErrorResponse(c, http.StatusBadRequest, "invalid form data")
			return
		}
		sub.QuizAnswersText = c.PostForm("quiz_answers")
	}

	result, err := h.service.Register(c.Request.Context(), sub)
	if err != nil {
		common.AppErrorResponse(c, err)
		return
	}

	c.JSON(http.StatusCreated, result)
}

// ListLeads returns stored leads newest first
func (h *Handler) ListLeads(c *gin.Context) {
	params := pagination.ParseParams(c)

	items, total, err := h.service.ListLeads(c.Request.Context(), params.Limit, params.Offset)
	if err != nil {
		common.AppErrorResponse(c, err)
		return
	}

	meta := pagination.BuildMeta(params.Limit, params.Offset, total)
	common.SuccessResponseWithMeta(c, items, meta)
}

package uploads

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/neuroeducatimo/landing/pkg/common"
)

// multipartOverhead leaves room for boundaries and headers around the file
const multipartOverhead int64 = 1 << 20

// Handler handles HTTP requests for uploads
type Handler struct {
	service *Service
}

// NewHandler creates a new uploads handler
func NewHandler(service *Service) *Handler {
	return &Handler{service: service}
}

// RegisterRoutes registers upload routes
func (h *Handler) RegisterRoutes(rg *gin.RouterGroup, adminOnly gin.HandlerFunc) {
	rg.POST("/upload", adminOnly, h.Upload)
}

// Upload accepts a multipart "file" field and returns its public URL
func (h *Handler) Upload(c *gin.Context) {
	c.Request.Body = http.MaxBytesReader(c.Writer, c.Request.Body, h.service.MaxBytes()+multipartOverhead)

	header, err := c.FormFile("file")
	if err != nil {
		var maxErr *http.MaxBytesError
		if errors.As(err, &maxErr) {
			common.ErrorResponse(c, http.StatusRequestEntityTooLarge, "file is too large")
			return
		}
		common.ErrorResponse(c, http.StatusBadRequest, "file is required")
		return
	}

	file, err := header.Open()
	if err != nil {
		common.ErrorResponse(c, http.StatusBadRequest, "failed to read file")
		return
	}
	defer file.Close()

	result, err := h.service.Upload(c.Request.Context(), header.Filename, file, header.Size)
	if err != nil {
		common.AppErrorResponse(c, err)
		return
	}

	c.JSON(http.StatusOK, result)
}

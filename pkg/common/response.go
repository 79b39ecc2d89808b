package common

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
)

// Response is the standard JSON envelope
type Response struct {
	Success bool        `json:"success"`
	Message string      `json:"message,omitempty"`
	Data    interface{} `json:"data,omitempty"`
	Error   *ErrorInfo  `json:"error,omitempty"`
	Meta    interface{} `json:"meta,omitempty"`
}

// ErrorInfo describes a failed request
type ErrorInfo struct {
	Code    int               `json:"code"`
	Message string            `json:"message"`
	Fields  map[string]string `json:"fields,omitempty"`
}

// SuccessResponse writes a 200 envelope
func SuccessResponse(c *gin.Context, data interface{}) {
	c.JSON(http.StatusOK, Response{Success: true, Data: data})
}

// SuccessResponseWithStatus writes an envelope with a custom status and message
func SuccessResponseWithStatus(c *gin.Context, status int, data interface{}, message string) {
	c.JSON(status, Response{Success: true, Data: data, Message: message})
}

// SuccessResponseWithMeta writes a 200 envelope with metadata
func SuccessResponseWithMeta(c *gin.Context, data, meta interface{}) {
	c.JSON(http.StatusOK, Response{Success: true, Data: data, Meta: meta})
}

// ErrorResponse writes an error envelope
func ErrorResponse(c *gin.Context, status int, message string) {
	c.JSON(status, Response{
		Success: false,
		Error:   &ErrorInfo{Code: status, Message: message},
	})
}

// ValidationErrorResponse writes a 400 envelope listing invalid fields
func ValidationErrorResponse(c *gin.Context, message string, fields map[string]string) {
	c.JSON(http.StatusBadRequest, Response{
		Success: false,
		Error:   &ErrorInfo{Code: http.StatusBadRequest, Message: message, Fields: fields},
	})
}

// AppErrorResponse writes the envelope for err. Errors that are not an
// AppError are reported as a generic 500.
func AppErrorResponse(c *gin.Context, err error) {
	var appErr *AppError
	if errors.As(err, &appErr) {
		ErrorResponse(c, appErr.Code, appErr.Message)
		return
	}
	ErrorResponse(c, http.StatusInternalServerError, "internal server error")
}

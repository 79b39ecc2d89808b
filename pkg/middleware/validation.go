package middleware

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/neuroeducatimo/landing/pkg/common"
	"github.com/neuroeducatimo/landing/pkg/validation"
)

const validatedRequestKey = "validatedRequest"

// ValidateRequest binds the JSON body into a fresh T and validates it before
// the handler runs. Handlers read the result with ValidatedRequest.
// Usage: router.POST("/articles", middleware.ValidateRequest[CreateArticleRequest](), handler)
func ValidateRequest[T any]() gin.HandlerFunc {
	return func(c *gin.Context) {
		req := new(T)
		if !ValidateAndBind(c, req) {
			c.Abort()
			return
		}

		c.Set(validatedRequestKey, req)
		c.Next()
	}
}

// ValidatedRequest returns the body stored by ValidateRequest[T]
func ValidatedRequest[T any](c *gin.Context) (*T, bool) {
	v, exists := c.Get(validatedRequestKey)
	if !exists {
		return nil, false
	}
	req, ok := v.(*T)
	return req, ok
}

// ValidateJSON binds the JSON body into req and validates it
func ValidateJSON(c *gin.Context, req interface{}) error {
	if err := c.ShouldBindJSON(req); err != nil {
		return err
	}
	return validation.ValidateStruct(req)
}

// RespondWithValidationError writes the 400 envelope for err. Field errors
// are listed under error.fields.
func RespondWithValidationError(c *gin.Context, err error) {
	var valErr *validation.ValidationError
	if errors.As(err, &valErr) {
		common.ValidationErrorResponse(c, "validation failed", valErr.Errors)
		return
	}
	common.ErrorResponse(c, http.StatusBadRequest, "invalid request body")
}

// ValidateAndBind validates and binds the JSON body into req. It returns false
// after writing the error response.
func ValidateAndBind(c *gin.Context, req interface{}) bool {
	if err := ValidateJSON(c, req); err != nil {
		RespondWithValidationError(c, err)
		return false
	}
	return true
}

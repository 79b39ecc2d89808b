package middleware

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type noteRequest struct {
	Title    string `json:"title" validate:"required,max=10"`
	Language string `json:"language" validate:"required,lang"`
}

func setupValidationRouter(calls *int) *gin.Engine {
	r := gin.New()
	r.POST("/notes", ValidateRequest[noteRequest](), func(c *gin.Context) {
		*calls++
		req, ok := ValidatedRequest[noteRequest](c)
		if !ok {
			c.Status(http.StatusInternalServerError)
			return
		}
		c.JSON(http.StatusCreated, gin.H{"title": req.Title, "language": req.Language})
	})
	return r
}

func TestValidateRequest(t *testing.T) {
	tests := []struct {
		name       string
		body       string
		wantStatus int
		wantFields map[string]string
		wantMsg    string
	}{
		{
			name:       "valid body reaches handler",
			body:       `{"title":"Focus","language":"ua"}`,
			wantStatus: http.StatusCreated,
		},
		{
			name:       "malformed json",
			body:       `{`,
			wantStatus: http.StatusBadRequest,
			wantMsg:    "invalid request body",
		},
		{
			name:       "field errors are listed",
			body:       `{"title":"far too long a title","language":"de"}`,
			wantStatus: http.StatusBadRequest,
			wantMsg:    "validation failed",
			wantFields: map[string]string{
				"title":    "title must be at most 10 characters long",
				"language": "language must be a supported language (ru, uk, en, pl, cs)",
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			calls := 0
			r := setupValidationRouter(&calls)

			w := httptest.NewRecorder()
			req := httptest.NewRequest(http.MethodPost, "/notes", strings.NewReader(tt.body))
			req.Header.Set("Content-Type", "application/json")
			r.ServeHTTP(w, req)

			assert.Equal(t, tt.wantStatus, w.Code)
			if tt.wantStatus == http.StatusCreated {
				assert.Equal(t, 1, calls)
				assert.JSONEq(t, `{"title":"Focus","language":"ua"}`, w.Body.String())
				return
			}

			assert.Zero(t, calls)
			var body struct {
				Success bool `json:"success"`
				Error   struct {
					Code    int               `json:"code"`
					Message string            `json:"message"`
					Fields  map[string]string `json:"fields"`
				} `json:"error"`
			}
			require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
			assert.False(t, body.Success)
			assert.Equal(t, http.StatusBadRequest, body.Error.Code)
			assert.Equal(t, tt.wantMsg, body.Error.Message)
			assert.Equal(t, tt.wantFields, body.Error.Fields)
		})
	}
}

func TestValidatedRequest_Missing(t *testing.T) {
	c, _ := gin.CreateTestContext(httptest.NewRecorder())
	req, ok := ValidatedRequest[noteRequest](c)
	assert.False(t, ok)
	assert.Nil(t, req)
}

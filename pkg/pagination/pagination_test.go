package pagination

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func init() {
	gin.SetMode(gin.TestMode)
}

func TestParseParams(t *testing.T) {
	tests := []struct {
		name       string
		query      string
		wantLimit  int
		wantOffset int
	}{
		{"defaults", "", DefaultLimit, DefaultOffset},
		{"valid values", "limit=10&offset=20", 10, 20},
		{"zero limit", "limit=0", DefaultLimit, DefaultOffset},
		{"negative limit", "limit=-10", DefaultLimit, DefaultOffset},
		{"limit capped", "limit=200", MaxLimit, DefaultOffset},
		{"negative offset", "offset=-10", DefaultLimit, DefaultOffset},
		{"non-numeric", "limit=abc&offset=xyz", DefaultLimit, DefaultOffset},
		{"float", "limit=10.5&offset=1.5", DefaultLimit, DefaultOffset},
		{"other params ignored", "language=pl&limit=15&offset=30", 15, 30},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			w := httptest.NewRecorder()
			c, _ := gin.CreateTestContext(w)
			c.Request, _ = http.NewRequest(http.MethodGet, "/api/leads?"+tt.query, nil)

			params := ParseParams(c)

			assert.Equal(t, tt.wantLimit, params.Limit)
			assert.Equal(t, tt.wantOffset, params.Offset)
		})
	}
}

func TestBuildMeta(t *testing.T) {
	tests := []struct {
		name        string
		limit       int
		offset      int
		total       int64
		wantPages   int
		wantPage    int
		wantHasMore bool
	}{
		{"first page", 10, 0, 100, 10, 1, true},
		{"partial last page", 10, 20, 25, 3, 3, false},
		{"no items", 10, 0, 0, 0, 1, false},
		{"zero limit", 0, 0, 100, 0, 1, true},
		{"limit over total", 50, 0, 10, 1, 1, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			meta := BuildMeta(tt.limit, tt.offset, tt.total)

			require.NotNil(t, meta)
			assert.Equal(t, tt.limit, meta.Limit)
			assert.Equal(t, tt.offset, meta.Offset)
			assert.Equal(t, tt.total, meta.Total)
			assert.Equal(t, tt.wantPages, meta.TotalPages)
			assert.Equal(t, tt.wantPage, meta.Page)
			assert.Equal(t, tt.wantHasMore, meta.HasMore)
		})
	}
}

func TestGetCurrentPage(t *testing.T) {
	assert.Equal(t, 1, GetCurrentPage(0, 10))
	assert.Equal(t, 2, GetCurrentPage(15, 10))
	assert.Equal(t, 3, GetCurrentPage(50, 25))
	assert.Equal(t, 1, GetCurrentPage(10, 0))
	assert.Equal(t, 1, GetCurrentPage(10, -5))
}

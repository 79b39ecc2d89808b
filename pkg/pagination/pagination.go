// Package pagination parses limit/offset query parameters for admin listings
package pagination

import (
	"strconv"

	"github.com/gin-gonic/gin"
)

const (
	DefaultLimit  = 20
	MaxLimit      = 100
	DefaultOffset = 0
)

// Params holds pagination parameters
type Params struct {
	Limit  int
	Offset int
}

// Meta describes a page of results
type Meta struct {
	Limit      int   `json:"limit"`
	Offset     int   `json:"offset"`
	Total      int64 `json:"total"`
	TotalPages int   `json:"total_pages"`
	Page       int   `json:"page"`
	HasMore    bool  `json:"has_more"`
}

// ParseParams reads limit and offset from the query string. Invalid values
// fall back to the defaults and limit is capped at MaxLimit.
func ParseParams(c *gin.Context) Params {
	p := Params{Limit: DefaultLimit, Offset: DefaultOffset}

	if v, err := strconv.Atoi(c.Query("limit")); err == nil && v > 0 {
		p.Limit = v
		if p.Limit > MaxLimit {
			p.Limit = MaxLimit
		}
	}
	if v, err := strconv.Atoi(c.Query("offset")); err == nil && v >= 0 {
		p.Offset = v
	}
	return p
}

// BuildMeta builds the response metadata for a page
func BuildMeta(limit, offset int, total int64) *Meta {
	totalPages := 0
	if limit > 0 && total > 0 {
		totalPages = int((total + int64(limit) - 1) / int64(limit))
	}
	return &Meta{
		Limit:      limit,
		Offset:     offset,
		Total:      total,
		TotalPages: totalPages,
		Page:       GetCurrentPage(offset, limit),
		HasMore:    HasMore(offset, limit, total),
	}
}

// HasMore reports whether results exist past this page
func HasMore(offset, limit int, total int64) bool {
	return int64(offset+limit) < total
}

// GetCurrentPage returns the 1-based page number for offset
func GetCurrentPage(offset, limit int) int {
	if limit <= 0 {
		return 1
	}
	return offset/limit + 1
}

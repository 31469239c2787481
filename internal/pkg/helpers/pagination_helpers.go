package helpers

import (
	"strconv"

	"github.com/gin-gonic/gin"
)

const (
	DefaultPerPage = 10
	MaxPerPage     = 100
	DefaultPage    = 1
)

// Pagination describes the standard list-response pagination block.
type Pagination struct {
	Total   int64 `json:"total"`
	Page    int   `json:"page"`
	PerPage int   `json:"per_page"`
	Pages   int   `json:"pages"`
}

// ParsePaginationParams extracts page and per_page from the request,
// falling back to defaults for missing or invalid values.
func ParsePaginationParams(c *gin.Context) (page, perPage int) {
	page, err := strconv.Atoi(c.DefaultQuery("page", "1"))
	if err != nil || page < 1 {
		page = DefaultPage
	}

	perPage, err = strconv.Atoi(c.DefaultQuery("per_page", strconv.Itoa(DefaultPerPage)))
	if err != nil || perPage <= 0 || perPage > MaxPerPage {
		perPage = DefaultPerPage
	}

	return page, perPage
}

// Skip converts a 1-based page number to a document offset.
func Skip(page, perPage int) int64 {
	if page < 1 {
		page = DefaultPage
	}
	return int64((page - 1) * perPage)
}

// NewPagination builds the pagination block; Pages is the ceiling of
// total/perPage.
func NewPagination(total int64, page, perPage int) Pagination {
	if perPage <= 0 {
		perPage = DefaultPerPage
	}
	if page < 1 {
		page = DefaultPage
	}

	pages := int((total + int64(perPage) - 1) / int64(perPage))

	return Pagination{
		Total:   total,
		Page:    page,
		PerPage: perPage,
		Pages:   pages,
	}
}

package helpers

import (
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
)

func paginationContext(t *testing.T, rawQuery string) *gin.Context {
	t.Helper()
	gin.SetMode(gin.TestMode)
	c, _ := gin.CreateTestContext(httptest.NewRecorder())
	c.Request = httptest.NewRequest("GET", "/?"+rawQuery, nil)
	return c
}

func TestParsePaginationParams(t *testing.T) {
	tests := []struct {
		rawQuery    string
		wantPage    int
		wantPerPage int
	}{
		{"", DefaultPage, DefaultPerPage},
		{"page=3&per_page=25", 3, 25},
		{"page=0&per_page=0", DefaultPage, DefaultPerPage},
		{"page=-2&per_page=-5", DefaultPage, DefaultPerPage},
		{"page=abc&per_page=xyz", DefaultPage, DefaultPerPage},
		{"per_page=101", DefaultPage, DefaultPerPage},
		{"per_page=100", DefaultPage, MaxPerPage},
	}

	for _, tt := range tests {
		page, perPage := ParsePaginationParams(paginationContext(t, tt.rawQuery))
		if page != tt.wantPage || perPage != tt.wantPerPage {
			t.Errorf("ParsePaginationParams(%q) = (%d, %d), want (%d, %d)",
				tt.rawQuery, page, perPage, tt.wantPage, tt.wantPerPage)
		}
	}
}

func TestSkip(t *testing.T) {
	tests := []struct {
		page, perPage int
		want          int64
	}{
		{1, 10, 0},
		{2, 10, 10},
		{5, 25, 100},
		{0, 10, 0},
		{-3, 10, 0},
	}

	for _, tt := range tests {
		if got := Skip(tt.page, tt.perPage); got != tt.want {
			t.Errorf("Skip(%d, %d) = %d, want %d", tt.page, tt.perPage, got, tt.want)
		}
	}
}

func TestNewPagination(t *testing.T) {
	tests := []struct {
		total         int64
		page, perPage int
		wantPages     int
	}{
		{0, 1, 10, 0},
		{1, 1, 10, 1},
		{10, 1, 10, 1},
		{11, 1, 10, 2},
		{95, 2, 10, 10},
	}

	for _, tt := range tests {
		p := NewPagination(tt.total, tt.page, tt.perPage)
		if p.Pages != tt.wantPages {
			t.Errorf("NewPagination(%d, %d, %d).Pages = %d, want %d",
				tt.total, tt.page, tt.perPage, p.Pages, tt.wantPages)
		}
		if p.Total != tt.total || p.Page != tt.page || p.PerPage != tt.perPage {
			t.Errorf("NewPagination(%d, %d, %d) = %+v, echoed fields mismatch",
				tt.total, tt.page, tt.perPage, p)
		}
	}

	defaulted := NewPagination(20, 0, 0)
	if defaulted.Page != DefaultPage || defaulted.PerPage != DefaultPerPage {
		t.Errorf("NewPagination with invalid page/perPage = %+v, want defaults applied", defaulted)
	}
}

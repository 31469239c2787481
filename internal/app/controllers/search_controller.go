package controllers

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"

	"github.com/savi/placement-portal/internal/app/services"
	"github.com/savi/placement-portal/internal/middleware"
	"github.com/savi/placement-portal/internal/pkg/helpers"
)

// SearchController handles search and recommendation endpoints
type SearchController struct {
	searchService         *services.SearchService
	recommendationService *services.RecommendationService
	logger                zerolog.Logger
}

// NewSearchController creates a new SearchController
func NewSearchController(searchService *services.SearchService, recommendationService *services.RecommendationService, logger zerolog.Logger) *SearchController {
	return &SearchController{
		searchService:         searchService,
		recommendationService: recommendationService,
		logger:                logger,
	}
}

// Search matches the q query parameter against the requested scope
// (type=companies|students|announcements|global). Student search is only
// available to admins.
func (c *SearchController) Search(ctx *gin.Context) {
	c.search(ctx, ctx.Query("type"))
}

// SearchScope returns a handler bound to one fixed scope, backing the
// path-scoped variants of the search endpoint.
func (c *SearchController) SearchScope(scope string) gin.HandlerFunc {
	return func(ctx *gin.Context) {
		c.search(ctx, scope)
	}
}

func (c *SearchController) search(ctx *gin.Context, scope string) {
	filters := services.CompanySearchFilters{
		JobType:   ctx.Query("job_type"),
		WorkPlace: ctx.Query("work_place"),
	}
	results, err := c.searchService.Search(ctx.Request.Context(),
		ctx.Query("q"), scope, middleware.Role(ctx), filters)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}
	ctx.JSON(http.StatusOK, results)
}

// Recommendations returns active postings ranked against the caller's
// profile.
func (c *SearchController) Recommendations(ctx *gin.Context) {
	page, perPage := helpers.ParsePaginationParams(ctx)
	result, err := c.recommendationService.Recommend(ctx.Request.Context(), middleware.Identity(ctx), page, perPage)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}
	ctx.JSON(http.StatusOK, result)
}

// SimilarCompanies returns postings resembling the given one.
func (c *SearchController) SimilarCompanies(ctx *gin.Context) {
	limit, _ := strconv.Atoi(ctx.DefaultQuery("limit", "5"))
	companies, err := c.recommendationService.SimilarCompanies(ctx.Request.Context(), ctx.Param("id"), limit)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}
	ctx.JSON(http.StatusOK, gin.H{"companies": companies})
}

// Trending returns the most applied-to companies of the last month.
func (c *SearchController) Trending(ctx *gin.Context) {
	limit, _ := strconv.Atoi(ctx.DefaultQuery("limit", "10"))
	companies, err := c.recommendationService.Trending(ctx.Request.Context(), limit)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}
	ctx.JSON(http.StatusOK, gin.H{"companies": companies})
}

package handlers

import (
	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"

	"github.com/sasha-the-architect/nuxtjs-boilerplate-sub002/internal/services"
	"github.com/sasha-the-architect/nuxtjs-boilerplate-sub002/pkg/models"
)

const defaultPopularLimit = 10

type SearchHandler struct {
	search services.SearchServiceInterface
	logger *logrus.Logger
}

func NewSearchHandler(search services.SearchServiceInterface, logger *logrus.Logger) *SearchHandler {
	return &SearchHandler{
		search: search,
		logger: logger,
	}
}

type searchRequest struct {
	Query   string `form:"q"`
	Limit   int    `form:"limit" binding:"omitempty,min=0"`
	Offset  int    `form:"offset" binding:"omitempty,min=0"`
	Sort    string `form:"sort"`
	Filters models.SearchFilters
}

func (h *SearchHandler) Search(c *gin.Context) {
	req := searchRequest{Limit: h.search.DefaultLimit()}
	if err := c.ShouldBindQuery(&req); err != nil {
		respondBadRequest(c, "Invalid search parameters", err)
		return
	}

	results, err := h.search.Search(c.Request.Context(), req.Query, models.SearchOptions{
		Filters: normalizeFilters(req.Filters),
		Sort:    req.Sort,
		Limit:   req.Limit,
		Offset:  req.Offset,
	})
	if err != nil {
		respondError(c, h.logger, "Search failed", err)
		return
	}

	respondQuery(c, results, req.Query, req.Limit)
}

type suggestionRequest struct {
	Query string `form:"q"`
	Limit int    `form:"limit" binding:"omitempty,min=0,max=50"`
}

func (h *SearchHandler) Suggestions(c *gin.Context) {
	req := suggestionRequest{Limit: h.search.DefaultSuggestionLimit()}
	if err := c.ShouldBindQuery(&req); err != nil {
		respondBadRequest(c, "Invalid suggestion parameters", err)
		return
	}

	suggestions, err := h.search.Suggest(req.Query, req.Limit)
	if err != nil {
		respondError(c, h.logger, "Failed to get suggestions", err)
		return
	}

	respondQuery(c, suggestions, req.Query, req.Limit)
}

type facetRequest struct {
	Query     string `form:"q"`
	Dimension string `form:"dimension" binding:"required"`
}

func (h *SearchHandler) Facets(c *gin.Context) {
	var req facetRequest
	if err := c.ShouldBindQuery(&req); err != nil {
		respondBadRequest(c, "A facet dimension is required", err)
		return
	}

	counts, err := h.search.Facets(req.Query, req.Dimension)
	if err != nil {
		respondError(c, h.logger, "Failed to count facets", err)
		return
	}

	respondQuery(c, counts, req.Query, 0)
}

func (h *SearchHandler) GetHistory(c *gin.Context) {
	respondOK(c, h.search.History())
}

type historyRequest struct {
	Query string `json:"query" binding:"required"`
}

func (h *SearchHandler) AddHistory(c *gin.Context) {
	var req historyRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondBadRequest(c, "Invalid request body", err)
		return
	}

	items, err := h.search.AddHistory(c.Request.Context(), req.Query)
	if err != nil {
		respondError(c, h.logger, "Failed to add search to history", err)
		return
	}

	respondOK(c, items)
}

func (h *SearchHandler) RemoveHistory(c *gin.Context) {
	respondOK(c, h.search.RemoveHistory(c.Request.Context(), c.Param("query")))
}

func (h *SearchHandler) ClearHistory(c *gin.Context) {
	h.search.ClearHistory(c.Request.Context())
	respondOK(c, []models.SearchHistoryItem{})
}

func (h *SearchHandler) Recent(c *gin.Context) {
	respondOK(c, h.search.RecentSearches())
}

func (h *SearchHandler) Popular(c *gin.Context) {
	req := limitRequest{Limit: defaultPopularLimit}
	if err := c.ShouldBindQuery(&req); err != nil {
		respondBadRequest(c, "Invalid limit", err)
		return
	}

	respondQuery(c, h.search.PopularSearches(req.Limit), "", req.Limit)
}

func (h *SearchHandler) ClearPopular(c *gin.Context) {
	h.search.ClearPopularSearches(c.Request.Context())
	respondOK(c, []models.PopularSearch{})
}

package handlers

import (
	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"

	"github.com/sasha-the-architect/nuxtjs-boilerplate-sub002/internal/services"
	"github.com/sasha-the-architect/nuxtjs-boilerplate-sub002/pkg/models"
)

type ResourceHandler struct {
	catalog         services.CatalogServiceInterface
	recommendations services.RecommendationServiceInterface
	logger          *logrus.Logger
}

func NewResourceHandler(
	catalog services.CatalogServiceInterface,
	recommendations services.RecommendationServiceInterface,
	logger *logrus.Logger,
) *ResourceHandler {
	return &ResourceHandler{
		catalog:         catalog,
		recommendations: recommendations,
		logger:          logger,
	}
}

type listRequest struct {
	Limit   int    `form:"limit" binding:"omitempty,min=0,max=100"`
	Offset  int    `form:"offset" binding:"omitempty,min=0"`
	Sort    string `form:"sort"`
	Filters models.SearchFilters
}

// List browses the catalog without a query.
func (h *ResourceHandler) List(c *gin.Context) {
	req := listRequest{Limit: 20}
	if err := c.ShouldBindQuery(&req); err != nil {
		respondBadRequest(c, "Invalid list parameters", err)
		return
	}

	list, err := h.catalog.List(models.SearchOptions{
		Filters: normalizeFilters(req.Filters),
		Sort:    req.Sort,
		Limit:   req.Limit,
		Offset:  req.Offset,
	})
	if err != nil {
		respondError(c, h.logger, "Failed to list resources", err)
		return
	}

	respondOK(c, list)
}

func (h *ResourceHandler) Get(c *gin.Context) {
	res, err := h.catalog.Get(c.Param("id"))
	if err != nil {
		respondError(c, h.logger, "Failed to get resource", err)
		return
	}

	respondOK(c, res)
}

type limitRequest struct {
	Limit int `form:"limit" binding:"omitempty,min=0,max=100"`
}

func (h *ResourceHandler) Alternatives(c *gin.Context) {
	var req limitRequest
	if err := c.ShouldBindQuery(&req); err != nil {
		respondBadRequest(c, "Invalid limit", err)
		return
	}

	recs, err := h.recommendations.Alternatives(c.Request.Context(), c.Param("id"), req.Limit)
	if err != nil {
		respondError(c, h.logger, "Failed to find alternatives", err)
		return
	}

	respondQuery(c, recs, "", req.Limit)
}

// Reload re-reads the catalog from its source and swaps the search snapshot.
func (h *ResourceHandler) Reload(c *gin.Context) {
	count, err := h.catalog.Reload(c.Request.Context())
	if err != nil {
		respondError(c, h.logger, "Failed to reload catalog", err)
		return
	}

	h.logger.WithField("resources", count).Info("Catalog reloaded via admin API")
	respondOK(c, gin.H{"resources": count})
}

package handlers

import (
	"errors"
	"net/http"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"

	"github.com/sasha-the-architect/nuxtjs-boilerplate-sub002/internal/recommend"
	"github.com/sasha-the-architect/nuxtjs-boilerplate-sub002/internal/repository"
	"github.com/sasha-the-architect/nuxtjs-boilerplate-sub002/internal/search"
	"github.com/sasha-the-architect/nuxtjs-boilerplate-sub002/internal/services"
	"github.com/sasha-the-architect/nuxtjs-boilerplate-sub002/pkg/models"
)

type Handlers struct {
	Health         *HealthHandler
	Resource       *ResourceHandler
	Search         *SearchHandler
	Recommendation *RecommendationHandler
}

func New(logger *logrus.Logger, services *services.Services) *Handlers {
	return &Handlers{
		Health:         NewHealthHandler(logger, services.Health),
		Resource:       NewResourceHandler(services.Catalog, services.Recommendation, logger),
		Search:         NewSearchHandler(services.Search, logger),
		Recommendation: NewRecommendationHandler(services.Recommendation, services.Schemas, logger),
	}
}

func respondOK(c *gin.Context, data interface{}) {
	c.JSON(http.StatusOK, models.APIResponse{
		Success:   true,
		Data:      data,
		Timestamp: time.Now().UTC(),
	})
}

func respondQuery(c *gin.Context, data interface{}, query string, limit int) {
	c.JSON(http.StatusOK, models.APIResponse{
		Success:   true,
		Data:      data,
		Query:     query,
		Limit:     limit,
		Timestamp: time.Now().UTC(),
	})
}

func respondBadRequest(c *gin.Context, message string, err error) {
	body := models.APIError{Success: false, Message: message}
	if err != nil {
		body.Error = err.Error()
	}
	c.JSON(http.StatusBadRequest, body)
}

// respondError maps domain errors onto the failure envelope: bad arguments
// are 400, unknown resources 404, an unloaded catalog 503, the rest 500.
func respondError(c *gin.Context, logger *logrus.Logger, message string, err error) {
	status := http.StatusInternalServerError
	switch {
	case errors.Is(err, search.ErrInvalidArgument), errors.Is(err, recommend.ErrInvalidConfig):
		status = http.StatusBadRequest
	case errors.Is(err, repository.ErrNotFound):
		status = http.StatusNotFound
	case errors.Is(err, search.ErrIndexNotBuilt):
		status = http.StatusServiceUnavailable
	}

	body := models.APIError{Success: false, Message: message}
	if status == http.StatusInternalServerError {
		logger.WithError(err).WithField("path", c.Request.URL.Path).Error(message)
	} else {
		body.Error = err.Error()
	}
	c.JSON(status, body)
}

// queryList reads a repeated query parameter and also splits comma-separated
// values, so ?tags=a,b and ?tags=a&tags=b are equivalent.
func queryList(values []string) []string {
	var out []string
	for _, v := range values {
		for _, part := range strings.Split(v, ",") {
			if part = strings.TrimSpace(part); part != "" {
				out = append(out, part)
			}
		}
	}
	return out
}

func normalizeFilters(f models.SearchFilters) models.SearchFilters {
	return models.SearchFilters{
		Categories:       queryList(f.Categories),
		PricingModels:    queryList(f.PricingModels),
		DifficultyLevels: queryList(f.DifficultyLevels),
		Technologies:     queryList(f.Technologies),
		Tags:             queryList(f.Tags),
		Benefits:         queryList(f.Benefits),
	}
}

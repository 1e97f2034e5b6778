package services

import (
	"context"

	"github.com/sasha-the-architect/nuxtjs-boilerplate-sub002/pkg/models"
)

// CatalogServiceInterface defines the interface for resource catalog operations
type CatalogServiceInterface interface {
	Get(id string) (models.Resource, error)
	List(opts models.SearchOptions) (models.ResourceListResponse, error)
	Reload(ctx context.Context) (int, error)
}

// SearchServiceInterface defines the interface for search, suggestion and history operations
type SearchServiceInterface interface {
	DefaultLimit() int
	DefaultSuggestionLimit() int
	Search(ctx context.Context, raw string, opts models.SearchOptions) (models.SearchResults, error)
	Suggest(queryText string, limit int) ([]models.SuggestionResult, error)
	Facets(query, dimension string) (map[string]int, error)
	History() []models.SearchHistoryItem
	AddHistory(ctx context.Context, query string) ([]models.SearchHistoryItem, error)
	RemoveHistory(ctx context.Context, query string) []models.SearchHistoryItem
	ClearHistory(ctx context.Context)
	RecentSearches() []models.SearchHistoryItem
	PopularSearches(limit int) []models.PopularSearch
	ClearPopularSearches(ctx context.Context)
}

// RecommendationServiceInterface defines the interface for recommendation operations
type RecommendationServiceInterface interface {
	Recommend(ctx context.Context, req models.RecommendationRequest) ([]models.RecommendationResult, error)
	Alternatives(ctx context.Context, id string, limit int) ([]models.RecommendationResult, error)
	Config() models.RecommendationConfig
	UpdateConfig(update models.RecommendationConfigUpdate) (models.RecommendationConfig, error)
	ResetConfig() models.RecommendationConfig
}

var (
	_ CatalogServiceInterface        = (*CatalogService)(nil)
	_ SearchServiceInterface         = (*SearchService)(nil)
	_ RecommendationServiceInterface = (*RecommendationService)(nil)
)

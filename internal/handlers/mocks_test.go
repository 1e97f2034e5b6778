package handlers

import (
	"context"

	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/mock"

	"github.com/sasha-the-architect/nuxtjs-boilerplate-sub002/internal/services"
	"github.com/sasha-the-architect/nuxtjs-boilerplate-sub002/pkg/models"
)

type MockCatalogService struct {
	mock.Mock
}

func (m *MockCatalogService) Get(id string) (models.Resource, error) {
	args := m.Called(id)
	return args.Get(0).(models.Resource), args.Error(1)
}

func (m *MockCatalogService) List(opts models.SearchOptions) (models.ResourceListResponse, error) {
	args := m.Called(opts)
	return args.Get(0).(models.ResourceListResponse), args.Error(1)
}

func (m *MockCatalogService) Reload(ctx context.Context) (int, error) {
	args := m.Called(ctx)
	return args.Int(0), args.Error(1)
}

type MockSearchService struct {
	mock.Mock
}

func (m *MockSearchService) DefaultLimit() int {
	return 20
}

func (m *MockSearchService) DefaultSuggestionLimit() int {
	return 8
}

func (m *MockSearchService) Search(ctx context.Context, raw string, opts models.SearchOptions) (models.SearchResults, error) {
	args := m.Called(ctx, raw, opts)
	return args.Get(0).(models.SearchResults), args.Error(1)
}

func (m *MockSearchService) Suggest(queryText string, limit int) ([]models.SuggestionResult, error) {
	args := m.Called(queryText, limit)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]models.SuggestionResult), args.Error(1)
}

func (m *MockSearchService) Facets(query, dimension string) (map[string]int, error) {
	args := m.Called(query, dimension)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(map[string]int), args.Error(1)
}

func (m *MockSearchService) History() []models.SearchHistoryItem {
	args := m.Called()
	return args.Get(0).([]models.SearchHistoryItem)
}

func (m *MockSearchService) AddHistory(ctx context.Context, query string) ([]models.SearchHistoryItem, error) {
	args := m.Called(ctx, query)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]models.SearchHistoryItem), args.Error(1)
}

func (m *MockSearchService) RemoveHistory(ctx context.Context, query string) []models.SearchHistoryItem {
	args := m.Called(ctx, query)
	return args.Get(0).([]models.SearchHistoryItem)
}

func (m *MockSearchService) ClearHistory(ctx context.Context) {
	m.Called(ctx)
}

func (m *MockSearchService) RecentSearches() []models.SearchHistoryItem {
	args := m.Called()
	return args.Get(0).([]models.SearchHistoryItem)
}

func (m *MockSearchService) PopularSearches(limit int) []models.PopularSearch {
	args := m.Called(limit)
	return args.Get(0).([]models.PopularSearch)
}

func (m *MockSearchService) ClearPopularSearches(ctx context.Context) {
	m.Called(ctx)
}

type MockRecommendationService struct {
	mock.Mock
}

func (m *MockRecommendationService) Recommend(ctx context.Context, req models.RecommendationRequest) ([]models.RecommendationResult, error) {
	args := m.Called(ctx, req)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]models.RecommendationResult), args.Error(1)
}

func (m *MockRecommendationService) Alternatives(ctx context.Context, id string, limit int) ([]models.RecommendationResult, error) {
	args := m.Called(ctx, id, limit)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]models.RecommendationResult), args.Error(1)
}

func (m *MockRecommendationService) Config() models.RecommendationConfig {
	args := m.Called()
	return args.Get(0).(models.RecommendationConfig)
}

func (m *MockRecommendationService) UpdateConfig(update models.RecommendationConfigUpdate) (models.RecommendationConfig, error) {
	args := m.Called(update)
	return args.Get(0).(models.RecommendationConfig), args.Error(1)
}

func (m *MockRecommendationService) ResetConfig() models.RecommendationConfig {
	args := m.Called()
	return args.Get(0).(models.RecommendationConfig)
}

type MockHealthChecker struct {
	mock.Mock
}

func (m *MockHealthChecker) CheckHealth() *services.HealthStatus {
	args := m.Called()
	return args.Get(0).(*services.HealthStatus)
}

func testLogger() *logrus.Logger {
	logger := logrus.New()
	logger.SetLevel(logrus.ErrorLevel) // Reduce noise in tests
	return logger
}

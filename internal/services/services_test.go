package services

import (
	"context"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/sasha-the-architect/nuxtjs-boilerplate-sub002/internal/config"
	"github.com/sasha-the-architect/nuxtjs-boilerplate-sub002/internal/recommend"
	"github.com/sasha-the-architect/nuxtjs-boilerplate-sub002/internal/repository"
	"github.com/sasha-the-architect/nuxtjs-boilerplate-sub002/internal/search"
	"github.com/sasha-the-architect/nuxtjs-boilerplate-sub002/pkg/models"
)

type MockResourceRepository struct {
	mock.Mock
}

func (m *MockResourceRepository) LoadAll(ctx context.Context) ([]models.Resource, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]models.Resource), args.Error(1)
}

type MockAlternativesGraph struct {
	mock.Mock
}

func (m *MockAlternativesGraph) AlternativeIDs(ctx context.Context, resourceID string, limit int) ([]string, error) {
	args := m.Called(ctx, resourceID, limit)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]string), args.Error(1)
}

type MockSearchEventPublisher struct {
	mock.Mock
}

func (m *MockSearchEventPublisher) PublishSearch(ctx context.Context, event models.SearchEvent) error {
	args := m.Called(ctx, event)
	return args.Error(0)
}

func (m *MockSearchEventPublisher) Close() error {
	args := m.Called()
	return args.Error(0)
}

func testLogger() *logrus.Logger {
	logger := logrus.New()
	logger.SetLevel(logrus.ErrorLevel)
	return logger
}

func testMetrics() *Metrics {
	return NewMetrics(prometheus.NewRegistry())
}

func testSearchConfig() config.SearchConfig {
	return config.SearchConfig{
		HistoryMaxItems:           search.DefaultHistoryMaxItems,
		SuggestionHistoryMaxItems: search.DefaultSuggestionHistoryMaxItems,
		PopularMaxTracked:         search.DefaultPopularMaxTracked,
		DefaultLimit:              20,
		MaxLimit:                  100,
		SuggestionLimit:           8,
		MatchThreshold:            search.DefaultMatchThreshold,
	}
}

func day(d int) time.Time {
	return time.Date(2024, time.January, d, 0, 0, 0, 0, time.UTC)
}

func sampleResources() []models.Resource {
	return []models.Resource{
		{
			ID: "1", Title: "React Query", Description: "Server state management for web apps",
			Category: "Frontend", Tags: []string{"react", "data-fetching"}, Technology: []string{"react", "typescript"},
			PricingModel: models.PricingFree, Difficulty: models.DifficultyIntermediate,
			Popularity: 9, DateAdded: day(3), Alternatives: []string{"2"},
		},
		{
			ID: "2", Title: "SWR", Description: "Stale-while-revalidate data hooks",
			Category: "Frontend", Tags: []string{"react", "data-fetching"}, Technology: []string{"react"},
			PricingModel: models.PricingOpenSource, Difficulty: models.DifficultyBeginner,
			Popularity: 7, DateAdded: day(1),
		},
		{
			ID: "3", Title: "Cloudflare Pages", Description: "Static site hosting on a global edge network",
			Category: "Hosting", Tags: []string{"cdn", "static"}, Technology: []string{"javascript"},
			PricingModel: models.PricingFreemium, Difficulty: models.DifficultyBeginner,
			Popularity: 8, DateAdded: day(4),
		},
		{
			ID: "4", Title: "Netlify", Description: "Deploy static sites with previews",
			Category: "Hosting", Tags: []string{"cdn", "static"}, Technology: []string{"javascript"},
			PricingModel: models.PricingFreemium, Difficulty: models.DifficultyBeginner,
			Popularity: 6, DateAdded: day(2),
		},
	}
}

// loadedCatalog returns a catalog that already holds sampleResources.
func loadedCatalog(t *testing.T, metrics *Metrics) *CatalogService {
	t.Helper()

	repo := new(MockResourceRepository)
	repo.On("LoadAll", mock.Anything).Return(sampleResources(), nil)

	catalog := NewCatalogService(repo, search.NewEngine(search.DefaultMatchThreshold), metrics, testLogger())
	_, err := catalog.Reload(context.Background())
	require.NoError(t, err)
	return catalog
}

// newTestRecommendationService wires a service over sampleResources. graph
// may be nil.
func newTestRecommendationService(t *testing.T, cfg models.RecommendationConfig, graph repository.AlternativesGraph) *RecommendationService {
	t.Helper()

	store, err := recommend.NewConfigStore(cfg)
	require.NoError(t, err)

	metrics := testMetrics()
	engine := recommend.NewEngine(store, recommend.NewDiversifier(1))
	return NewRecommendationService(loadedCatalog(t, metrics), engine, graph, metrics, testLogger())
}

func resultIDs(recs []models.RecommendationResult) []string {
	ids := make([]string, len(recs))
	for i, r := range recs {
		ids[i] = r.Resource.ID
	}
	return ids
}

func hitIDs(hits []models.SearchHit) []string {
	ids := make([]string, len(hits))
	for i, h := range hits {
		ids[i] = h.Resource.ID
	}
	return ids
}

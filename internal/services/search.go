package services

import (
	"context"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"

	"github.com/sasha-the-architect/nuxtjs-boilerplate-sub002/internal/config"
	"github.com/sasha-the-architect/nuxtjs-boilerplate-sub002/internal/messaging"
	"github.com/sasha-the-architect/nuxtjs-boilerplate-sub002/internal/search"
	"github.com/sasha-the-architect/nuxtjs-boilerplate-sub002/pkg/models"
)

// Store keys of the persisted search state.
const (
	historyKey         = "search-history"
	recentSearchesKey  = "recent-searches"
	popularSearchesKey = "popular-searches"
)

const eventSourceAPI = "api"

// SearchService fronts the search core for the HTTP layer: it resolves the
// current snapshot, applies the configured limits and records searches into
// the recent list, the popular tally and the event stream.
type SearchService struct {
	catalog   *CatalogService
	history   *search.History
	recent    *search.History
	popular   *search.PopularSearches
	publisher messaging.SearchEventPublisher
	metrics   *Metrics
	config    config.SearchConfig
	logger    *logrus.Logger
}

func NewSearchService(
	ctx context.Context,
	catalog *CatalogService,
	store search.Store,
	publisher messaging.SearchEventPublisher,
	metrics *Metrics,
	cfg config.SearchConfig,
	logger *logrus.Logger,
) *SearchService {
	return &SearchService{
		catalog:   catalog,
		history:   search.NewHistory(ctx, store, historyKey, cfg.HistoryMaxItems, logger),
		recent:    search.NewHistory(ctx, store, recentSearchesKey, cfg.SuggestionHistoryMaxItems, logger),
		popular:   search.NewPopularSearches(ctx, store, popularSearchesKey, cfg.PopularMaxTracked, logger),
		publisher: publisher,
		metrics:   metrics,
		config:    cfg,
		logger:    logger,
	}
}

// DefaultLimit is used when a request does not name a limit.
func (s *SearchService) DefaultLimit() int {
	return s.config.DefaultLimit
}

// DefaultSuggestionLimit is used when a suggestion request does not name a limit.
func (s *SearchService) DefaultSuggestionLimit() int {
	return s.config.SuggestionLimit
}

func (s *SearchService) clampLimit(limit int) int {
	if s.config.MaxLimit > 0 && limit > s.config.MaxLimit {
		return s.config.MaxLimit
	}
	return limit
}

// Search runs an advanced search. A non-empty, well-formed query is recorded
// as a search once it has been answered.
func (s *SearchService) Search(ctx context.Context, raw string, opts models.SearchOptions) (models.SearchResults, error) {
	start := time.Now()

	snap, err := s.catalog.Snapshot()
	if err != nil {
		return models.SearchResults{}, err
	}

	opts.Limit = s.clampLimit(opts.Limit)
	results, err := snap.Search(raw, opts)
	if err != nil {
		return models.SearchResults{}, err
	}
	s.metrics.observeSearch("search", start, len(results.Hits))

	if strings.TrimSpace(raw) != "" && search.IsValidQuery(raw) {
		s.RecordSearch(ctx, raw, results.Total)
	}

	s.logger.WithFields(logrus.Fields{
		"query":    raw,
		"total":    results.Total,
		"returned": len(results.Hits),
		"duration": time.Since(start),
	}).Debug("Search completed")

	return results, nil
}

// RecordSearch tallies query as popular, pushes it onto the recent searches
// and publishes a search event. Failures are logged and never returned.
func (s *SearchService) RecordSearch(ctx context.Context, query string, results int) {
	if err := s.popular.Record(ctx, query); err != nil {
		s.logger.WithError(err).WithField("query", query).Debug("Search not recorded as popular")
		return
	}
	if _, err := s.recent.Add(ctx, query); err != nil {
		s.logger.WithError(err).WithField("query", query).Debug("Search not added to recent searches")
	}

	event := models.SearchEvent{
		ID:        uuid.New().String(),
		Query:     strings.TrimSpace(query),
		Results:   results,
		Source:    eventSourceAPI,
		Timestamp: time.Now().UTC(),
	}
	if err := s.publisher.PublishSearch(ctx, event); err != nil {
		s.logger.WithError(err).WithField("event_id", event.ID).Warn("Failed to publish search event")
	}
}

func (s *SearchService) Suggest(queryText string, limit int) ([]models.SuggestionResult, error) {
	start := time.Now()

	snap, err := s.catalog.Snapshot()
	if err != nil {
		return nil, err
	}

	suggestions, err := snap.Suggest(queryText, s.clampLimit(limit), s.popular.Top(0))
	if err != nil {
		return nil, err
	}
	s.metrics.observeSearch("suggest", start, len(suggestions))

	return suggestions, nil
}

func (s *SearchService) Facets(query, dimension string) (map[string]int, error) {
	start := time.Now()

	dim, err := search.ParseFacetDimension(dimension)
	if err != nil {
		return nil, err
	}

	snap, err := s.catalog.Snapshot()
	if err != nil {
		return nil, err
	}

	counts, err := snap.CountFacet(query, dim)
	if err != nil {
		return nil, err
	}
	s.metrics.observeSearch("facets", start, len(counts))

	return counts, nil
}

func (s *SearchService) History() []models.SearchHistoryItem {
	return s.history.Items()
}

func (s *SearchService) AddHistory(ctx context.Context, query string) ([]models.SearchHistoryItem, error) {
	return s.history.Add(ctx, query)
}

func (s *SearchService) RemoveHistory(ctx context.Context, query string) []models.SearchHistoryItem {
	return s.history.Remove(ctx, query)
}

func (s *SearchService) ClearHistory(ctx context.Context) {
	s.history.Clear(ctx)
}

// RecentSearches lists the searches recorded by Search, newest first.
func (s *SearchService) RecentSearches() []models.SearchHistoryItem {
	return s.recent.Items()
}

func (s *SearchService) PopularSearches(limit int) []models.PopularSearch {
	return s.popular.Top(limit)
}

func (s *SearchService) ClearPopularSearches(ctx context.Context) {
	s.popular.Clear(ctx)
}

package services

import (
	"context"
	"fmt"

	"github.com/sirupsen/logrus"

	"github.com/sasha-the-architect/nuxtjs-boilerplate-sub002/internal/recommend"
	"github.com/sasha-the-architect/nuxtjs-boilerplate-sub002/internal/repository"
	"github.com/sasha-the-architect/nuxtjs-boilerplate-sub002/internal/search"
	"github.com/sasha-the-architect/nuxtjs-boilerplate-sub002/pkg/models"
)

// RecommendationService dispatches recommendation requests to the strategy
// they name, over the current catalog snapshot.
type RecommendationService struct {
	catalog *CatalogService
	engine  *recommend.Engine
	graph   repository.AlternativesGraph
	metrics *Metrics
	logger  *logrus.Logger
}

// NewRecommendationService wires the blender. graph may be nil when no
// alternatives graph is configured.
func NewRecommendationService(
	catalog *CatalogService,
	engine *recommend.Engine,
	graph repository.AlternativesGraph,
	metrics *Metrics,
	logger *logrus.Logger,
) *RecommendationService {
	return &RecommendationService{
		catalog: catalog,
		engine:  engine,
		graph:   graph,
		metrics: metrics,
		logger:  logger,
	}
}

// Recommend runs the strategy named by req; an empty strategy is diverse.
// req.Limit, when set, can only shorten the configured cap.
func (s *RecommendationService) Recommend(ctx context.Context, req models.RecommendationRequest) ([]models.RecommendationResult, error) {
	snap, err := s.catalog.Snapshot()
	if err != nil {
		return nil, err
	}
	resources := snap.Resources()

	var current *models.Resource
	if req.CurrentResourceID != "" {
		res, err := lookup(snap, req.CurrentResourceID)
		if err != nil {
			return nil, err
		}
		current = &res
	}

	strategy := req.Strategy
	if strategy == "" {
		strategy = models.StrategyDiverse
	}

	var recs []models.RecommendationResult
	switch strategy {
	case models.StrategyContentBased:
		if current == nil {
			return nil, fmt.Errorf("%w: %s recommendations need a resourceId", search.ErrInvalidArgument, strategy)
		}
		recs = s.engine.ContentBased(resources, *current)
	case models.StrategyCategory:
		category := req.CurrentCategory
		if category == "" && current != nil {
			category = current.Category
		}
		if category == "" {
			return nil, fmt.Errorf("%w: %s recommendations need a category or resourceId", search.ErrInvalidArgument, strategy)
		}
		recs = s.engine.ByCategory(resources, category, req.CurrentResourceID)
	case models.StrategyTrending:
		recs = s.engine.Trending(resources, req.CurrentResourceID)
	case models.StrategyPopular:
		recs = s.engine.Popular(resources, req.CurrentResourceID)
	case models.StrategyPersonalized:
		recs = s.engine.Personalized(resources, req.Preferences, current)
	case models.StrategyDiverse:
		recs = s.engine.Diverse(resources, current, req.CurrentCategory)
	default:
		return nil, fmt.Errorf("%w: unknown strategy %q", search.ErrInvalidArgument, req.Strategy)
	}

	s.metrics.observeRecommendation(strategy)
	if req.Limit > 0 && len(recs) > req.Limit {
		recs = recs[:req.Limit]
	}

	s.logger.WithFields(logrus.Fields{
		"strategy": strategy,
		"resource": req.CurrentResourceID,
		"count":    len(recs),
	}).Debug("Recommendations generated")

	return recs, nil
}

// Alternatives lists replacements for the resource with the given id. Graph
// lookups are best effort: a failing graph only loses its suggestions.
func (s *RecommendationService) Alternatives(ctx context.Context, id string, limit int) ([]models.RecommendationResult, error) {
	if limit < 0 {
		return nil, fmt.Errorf("%w: limit must not be negative, got %d", search.ErrInvalidArgument, limit)
	}

	// The graph lookup can be slow; the result is assembled from the
	// snapshot taken here even if the catalog reloads meanwhile.
	snap, err := s.catalog.Snapshot()
	if err != nil {
		return nil, err
	}
	target, err := lookup(snap, id)
	if err != nil {
		return nil, err
	}

	var graphIDs []string
	if s.graph != nil {
		graphLimit := limit
		if graphLimit == 0 {
			graphLimit = s.engine.Config().Get().MaxRecommendations
		}
		graphIDs, err = s.graph.AlternativeIDs(ctx, id, graphLimit)
		if err != nil {
			s.logger.WithError(err).WithField("resource", id).Warn("Alternatives graph lookup failed")
			graphIDs = nil
		}
	}

	s.metrics.observeRecommendation("alternatives")
	return s.engine.Alternatives(snap.Resources(), target, limit, graphIDs), nil
}

func (s *RecommendationService) Config() models.RecommendationConfig {
	return s.engine.Config().Get()
}

// UpdateConfig merges a partial update; an invalid update changes nothing
// and returns an error wrapping recommend.ErrInvalidConfig.
func (s *RecommendationService) UpdateConfig(update models.RecommendationConfigUpdate) (models.RecommendationConfig, error) {
	cfg, err := s.engine.Config().Update(update)
	if err != nil {
		return models.RecommendationConfig{}, err
	}

	s.logger.WithFields(logrus.Fields{
		"collaborative_weight":   cfg.CollaborativeWeight,
		"content_based_weight":   cfg.ContentBasedWeight,
		"popularity_weight":      cfg.PopularityWeight,
		"personalization_weight": cfg.PersonalizationWeight,
		"max_recommendations":    cfg.MaxRecommendations,
		"min_similarity_score":   cfg.MinSimilarityScore,
		"diversity_factor":       cfg.DiversityFactor,
	}).Info("Recommendation config updated")

	return cfg, nil
}

func (s *RecommendationService) ResetConfig() models.RecommendationConfig {
	cfg := s.engine.Config().Reset()
	s.logger.Info("Recommendation config reset")
	return cfg
}

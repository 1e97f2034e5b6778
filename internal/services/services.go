package services

import (
	"context"
	"fmt"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/sirupsen/logrus"

	"github.com/sasha-the-architect/nuxtjs-boilerplate-sub002/internal/config"
	"github.com/sasha-the-architect/nuxtjs-boilerplate-sub002/internal/database"
	"github.com/sasha-the-architect/nuxtjs-boilerplate-sub002/internal/messaging"
	"github.com/sasha-the-architect/nuxtjs-boilerplate-sub002/internal/recommend"
	"github.com/sasha-the-architect/nuxtjs-boilerplate-sub002/internal/repository"
	"github.com/sasha-the-architect/nuxtjs-boilerplate-sub002/internal/search"
	"github.com/sasha-the-architect/nuxtjs-boilerplate-sub002/internal/storage"
	"github.com/sasha-the-architect/nuxtjs-boilerplate-sub002/internal/validation"
)

type Services struct {
	Metrics        *Metrics
	Catalog        *CatalogService
	Search         *SearchService
	Recommendation *RecommendationService
	Health         *HealthService
	Schemas        *validation.SchemaValidator
	publisher      messaging.SearchEventPublisher
}

// New wires every service and loads the catalog once. A failed initial load
// is logged and leaves the service unhealthy until a reload succeeds.
func New(ctx context.Context, cfg *config.Config, logger *logrus.Logger, db *database.Database, reg prometheus.Registerer) (*Services, error) {
	metrics := NewMetrics(reg)

	schemas, err := validation.NewSchemaValidator()
	if err != nil {
		return nil, fmt.Errorf("failed to initialize schema validator: %w", err)
	}

	repo, err := newResourceRepository(cfg, schemas, logger, db)
	if err != nil {
		return nil, err
	}

	store, err := newSearchStore(cfg, db)
	if err != nil {
		return nil, err
	}

	configStore, err := recommend.NewConfigStore(cfg.Recommendation.RecommendationConfig)
	if err != nil {
		return nil, fmt.Errorf("failed to initialize recommendation config: %w", err)
	}
	recommender := recommend.NewEngine(configStore, recommend.NewDiversifier(cfg.Recommendation.DiversitySeed))

	var graph repository.AlternativesGraph
	if db.Neo4j != nil {
		graph = repository.NewNeo4jAlternativesGraph(db.Neo4j)
	}

	publisher := messaging.NewSearchEventPublisher(cfg.Kafka, logger)

	catalog := NewCatalogService(repo, search.NewEngine(cfg.Search.MatchThreshold), metrics, logger)
	if _, err := catalog.Reload(ctx); err != nil {
		logger.WithError(err).Error("Initial catalog load failed, serving without resources")
	}

	return &Services{
		Metrics:        metrics,
		Catalog:        catalog,
		Search:         NewSearchService(ctx, catalog, store, publisher, metrics, cfg.Search, logger),
		Recommendation: NewRecommendationService(catalog, recommender, graph, metrics, logger),
		Health:         NewHealthService(cfg, logger, db, catalog, metrics),
		Schemas:        schemas,
		publisher:      publisher,
	}, nil
}

// Close flushes pending search events.
func (s *Services) Close() error {
	return s.publisher.Close()
}

func newResourceRepository(cfg *config.Config, schemas *validation.SchemaValidator, logger *logrus.Logger, db *database.Database) (repository.ResourceRepository, error) {
	switch cfg.Data.Source {
	case config.SourceFile, "":
		return repository.NewFileRepository(cfg.Data.File, schemas, logger), nil
	case config.SourcePostgres:
		if db.PG == nil {
			return nil, fmt.Errorf("data source %q needs a database connection", cfg.Data.Source)
		}
		return repository.NewPostgresRepository(db.PG, logger), nil
	default:
		return nil, fmt.Errorf("unknown data source %q", cfg.Data.Source)
	}
}

func newSearchStore(cfg *config.Config, db *database.Database) (search.Store, error) {
	switch cfg.Storage.Backend {
	case config.StorageMemory, "":
		return search.NewMemoryStore(), nil
	case config.StorageBadger:
		if db.Badger == nil {
			return nil, fmt.Errorf("storage backend %q is not open", cfg.Storage.Backend)
		}
		return storage.NewBadgerStore(db.Badger), nil
	case config.StorageRedis:
		if db.Redis == nil {
			return nil, fmt.Errorf("storage backend %q needs a Redis connection", cfg.Storage.Backend)
		}
		return storage.NewRedisStore(db.Redis, cfg.Redis.KeyPrefix, cfg.Redis.TTL), nil
	default:
		return nil, fmt.Errorf("unknown storage backend %q", cfg.Storage.Backend)
	}
}

package services

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/sirupsen/logrus"

	"github.com/sasha-the-architect/nuxtjs-boilerplate-sub002/internal/repository"
	"github.com/sasha-the-architect/nuxtjs-boilerplate-sub002/internal/search"
	"github.com/sasha-the-architect/nuxtjs-boilerplate-sub002/pkg/models"
)

// CatalogService owns the resource collection. Every reload builds a new
// search snapshot and swaps it in; callers that already hold a snapshot keep
// reading the old one.
type CatalogService struct {
	repo     repository.ResourceRepository
	engine   *search.Engine
	metrics  *Metrics
	logger   *logrus.Logger
	reloadMu sync.Mutex
}

func NewCatalogService(repo repository.ResourceRepository, engine *search.Engine, metrics *Metrics, logger *logrus.Logger) *CatalogService {
	return &CatalogService{
		repo:    repo,
		engine:  engine,
		metrics: metrics,
		logger:  logger,
	}
}

// Reload reads the whole collection from the repository and makes it current.
// A failed reload leaves the previous snapshot in place.
func (s *CatalogService) Reload(ctx context.Context) (int, error) {
	s.reloadMu.Lock()
	defer s.reloadMu.Unlock()

	start := time.Now()
	resources, err := s.repo.LoadAll(ctx)
	if err != nil {
		s.metrics.observeReload(false, 0)
		s.logger.WithError(err).Error("Failed to reload resource catalog")
		return 0, fmt.Errorf("failed to reload catalog: %w", err)
	}

	snap := s.engine.Load(resources)
	s.metrics.observeReload(true, snap.Len())
	s.logger.WithFields(logrus.Fields{
		"resources": snap.Len(),
		"duration":  time.Since(start),
	}).Info("Resource catalog loaded")

	return snap.Len(), nil
}

// StartAutoReload reloads the catalog every interval until ctx is done.
// A non-positive interval disables it.
func (s *CatalogService) StartAutoReload(ctx context.Context, interval time.Duration) {
	if interval <= 0 {
		return
	}

	go func() {
		ticker := time.NewTicker(interval)
		defer ticker.Stop()

		for {
			select {
			case <-ctx.Done():
				return
			case <-ticker.C:
				// Errors are logged by Reload
				_, _ = s.Reload(ctx)
			}
		}
	}()
}

// Snapshot returns the active snapshot or search.ErrIndexNotBuilt.
func (s *CatalogService) Snapshot() (*search.Snapshot, error) {
	return s.engine.Snapshot()
}

func (s *CatalogService) Loaded() bool {
	_, err := s.engine.Snapshot()
	return err == nil
}

func (s *CatalogService) Get(id string) (models.Resource, error) {
	snap, err := s.engine.Snapshot()
	if err != nil {
		return models.Resource{}, err
	}
	return lookup(snap, id)
}

// lookup finds id in snap, wrapping repository.ErrNotFound when it is absent.
func lookup(snap *search.Snapshot, id string) (models.Resource, error) {
	res, ok := snap.Get(id)
	if !ok {
		return models.Resource{}, fmt.Errorf("resource %q: %w", id, repository.ErrNotFound)
	}
	return res, nil
}

// List browses the catalog with filters, sort and pagination but no query.
func (s *CatalogService) List(opts models.SearchOptions) (models.ResourceListResponse, error) {
	snap, err := s.engine.Snapshot()
	if err != nil {
		return models.ResourceListResponse{}, err
	}

	results, err := snap.Search("", opts)
	if err != nil {
		return models.ResourceListResponse{}, err
	}

	resources := make([]models.Resource, len(results.Hits))
	for i, hit := range results.Hits {
		resources[i] = hit.Resource
	}

	return models.ResourceListResponse{
		Resources: resources,
		Total:     results.Total,
		Limit:     opts.Limit,
		Offset:    opts.Offset,
	}, nil
}

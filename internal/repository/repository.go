package repository

import (
	"context"
	"errors"
	"fmt"

	"github.com/sirupsen/logrus"

	"github.com/sasha-the-architect/nuxtjs-boilerplate-sub002/pkg/models"
)

// ErrNotFound is returned when a resource id is unknown.
var ErrNotFound = errors.New("resource not found")

// ResourceRepository loads the whole resource collection. Implementations
// return a fresh slice on every call.
type ResourceRepository interface {
	LoadAll(ctx context.Context) ([]models.Resource, error)
}

// normalize enforces the collection invariants: ids are unique and a resource
// never lists itself as an alternative. Duplicate ids fail the load;
// self-references are dropped with a warning.
func normalize(resources []models.Resource, logger *logrus.Logger) ([]models.Resource, error) {
	seen := make(map[string]struct{}, len(resources))
	for i := range resources {
		r := &resources[i]
		if r.ID == "" {
			return nil, fmt.Errorf("resource at position %d has no id", i)
		}
		if _, dup := seen[r.ID]; dup {
			return nil, fmt.Errorf("duplicate resource id %q", r.ID)
		}
		seen[r.ID] = struct{}{}

		if len(r.Alternatives) == 0 {
			continue
		}
		kept := r.Alternatives[:0:0]
		for _, alt := range r.Alternatives {
			if alt == r.ID {
				logger.WithField("resource_id", r.ID).Warn("Dropping self-reference from alternatives")
				continue
			}
			kept = append(kept, alt)
		}
		r.Alternatives = kept
	}
	return resources, nil
}

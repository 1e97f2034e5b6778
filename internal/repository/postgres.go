package repository

import (
	"context"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/sirupsen/logrus"

	"github.com/sasha-the-architect/nuxtjs-boilerplate-sub002/pkg/models"
)

// DatabaseQuerier is the subset of pgxpool.Pool the repository needs.
type DatabaseQuerier interface {
	Query(ctx context.Context, sql string, args ...interface{}) (pgx.Rows, error)
}

const selectResources = `
	SELECT id, title, description, url, category, tags, technology,
	       pricing_model, difficulty, benefits, popularity,
	       date_added, last_updated, alternatives
	FROM resources
	ORDER BY date_added, id`

// PostgresRepository reads the collection from the resources table.
type PostgresRepository struct {
	db     DatabaseQuerier
	logger *logrus.Logger
}

func NewPostgresRepository(db DatabaseQuerier, logger *logrus.Logger) *PostgresRepository {
	return &PostgresRepository{db: db, logger: logger}
}

func (r *PostgresRepository) LoadAll(ctx context.Context) ([]models.Resource, error) {
	rows, err := r.db.Query(ctx, selectResources)
	if err != nil {
		return nil, fmt.Errorf("failed to query resources: %w", err)
	}
	defer rows.Close()

	resources := []models.Resource{}
	for rows.Next() {
		var (
			res         models.Resource
			description *string
			url         *string
			lastUpdated *time.Time
		)
		if err := rows.Scan(
			&res.ID, &res.Title, &description, &url, &res.Category, &res.Tags, &res.Technology,
			&res.PricingModel, &res.Difficulty, &res.Benefits, &res.Popularity,
			&res.DateAdded, &lastUpdated, &res.Alternatives,
		); err != nil {
			return nil, fmt.Errorf("failed to scan resource: %w", err)
		}
		if description != nil {
			res.Description = *description
		}
		if url != nil {
			res.URL = *url
		}
		if lastUpdated != nil {
			res.LastUpdated = *lastUpdated
		}
		resources = append(resources, res)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to read resources: %w", err)
	}

	resources, err = normalize(resources, r.logger)
	if err != nil {
		return nil, err
	}

	r.logger.WithField("resources", len(resources)).Debug("Loaded resources from PostgreSQL")
	return resources, nil
}

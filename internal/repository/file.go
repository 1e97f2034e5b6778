package repository

import (
	"context"
	"fmt"
	"os"

	"github.com/goccy/go-json"
	"github.com/sirupsen/logrus"

	"github.com/sasha-the-architect/nuxtjs-boilerplate-sub002/internal/validation"
	"github.com/sasha-the-architect/nuxtjs-boilerplate-sub002/pkg/models"
)

// FileRepository reads the collection from a JSON file holding an array of
// resources. The document is schema-checked before it is decoded.
type FileRepository struct {
	path      string
	validator *validation.SchemaValidator
	logger    *logrus.Logger
}

func NewFileRepository(path string, validator *validation.SchemaValidator, logger *logrus.Logger) *FileRepository {
	return &FileRepository{path: path, validator: validator, logger: logger}
}

func (r *FileRepository) LoadAll(ctx context.Context) ([]models.Resource, error) {
	data, err := os.ReadFile(r.path)
	if err != nil {
		return nil, fmt.Errorf("failed to read resources file: %w", err)
	}

	if r.validator != nil {
		if err := r.validator.ValidateResources(data).Err(); err != nil {
			return nil, fmt.Errorf("resources file %s failed validation: %w", r.path, err)
		}
	}

	var resources []models.Resource
	if err := json.Unmarshal(data, &resources); err != nil {
		return nil, fmt.Errorf("failed to decode resources file: %w", err)
	}

	resources, err = normalize(resources, r.logger)
	if err != nil {
		return nil, err
	}

	r.logger.WithFields(logrus.Fields{
		"path":      r.path,
		"resources": len(resources),
	}).Debug("Loaded resources from file")
	return resources, nil
}

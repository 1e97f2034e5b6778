package recommend

import (
	"errors"
	"fmt"
	"sync"

	"github.com/go-playground/validator/v10"

	"github.com/sasha-the-architect/nuxtjs-boilerplate-sub002/pkg/models"
)

// ErrInvalidConfig is returned when a configuration or an update to it fails
// validation. The stored configuration is left unchanged in that case.
var ErrInvalidConfig = errors.New("invalid recommendation config")

// DefaultConfig returns the built-in blending configuration.
func DefaultConfig() models.RecommendationConfig {
	return models.RecommendationConfig{
		CollaborativeWeight:   0.3,
		ContentBasedWeight:    0.4,
		PopularityWeight:      0.2,
		PersonalizationWeight: 0.1,
		MaxRecommendations:    10,
		MinSimilarityScore:    0.1,
		DiversityFactor:       0.3,
	}
}

// ConfigStore holds the runtime-mutable recommendation configuration.
type ConfigStore struct {
	mu       sync.RWMutex
	current  models.RecommendationConfig
	initial  models.RecommendationConfig
	validate *validator.Validate
}

// NewConfigStore validates initial and uses it as both the current value and
// the value Reset returns to.
func NewConfigStore(initial models.RecommendationConfig) (*ConfigStore, error) {
	s := &ConfigStore{validate: validator.New()}
	if err := s.check(initial); err != nil {
		return nil, err
	}
	s.current = initial
	s.initial = initial
	return s, nil
}

func (s *ConfigStore) Get() models.RecommendationConfig {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.current
}

// Update merges the non-nil fields of u into the current configuration.
func (s *ConfigStore) Update(u models.RecommendationConfigUpdate) (models.RecommendationConfig, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	next := s.current
	if u.CollaborativeWeight != nil {
		next.CollaborativeWeight = *u.CollaborativeWeight
	}
	if u.ContentBasedWeight != nil {
		next.ContentBasedWeight = *u.ContentBasedWeight
	}
	if u.PopularityWeight != nil {
		next.PopularityWeight = *u.PopularityWeight
	}
	if u.PersonalizationWeight != nil {
		next.PersonalizationWeight = *u.PersonalizationWeight
	}
	if u.MaxRecommendations != nil {
		next.MaxRecommendations = *u.MaxRecommendations
	}
	if u.MinSimilarityScore != nil {
		next.MinSimilarityScore = *u.MinSimilarityScore
	}
	if u.DiversityFactor != nil {
		next.DiversityFactor = *u.DiversityFactor
	}

	if err := s.check(next); err != nil {
		return s.current, err
	}
	s.current = next
	return next, nil
}

// Reset restores the configuration the store was created with.
func (s *ConfigStore) Reset() models.RecommendationConfig {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.current = s.initial
	return s.current
}

func (s *ConfigStore) check(cfg models.RecommendationConfig) error {
	if err := s.validate.Struct(&cfg); err != nil {
		return fmt.Errorf("%w: %v", ErrInvalidConfig, err)
	}
	return nil
}

package search

import (
	"time"

	"github.com/sasha-the-architect/nuxtjs-boilerplate-sub002/pkg/models"
)

func sampleResources() []models.Resource {
	day := func(d int) time.Time { return time.Date(2024, time.January, d, 0, 0, 0, 0, time.UTC) }

	return []models.Resource{
		{
			ID:           "1",
			Title:        "React Query",
			Description:  "Data fetching library for React applications",
			Category:     "Frontend",
			Tags:         []string{"react", "data-fetching"},
			Technology:   []string{"react", "typescript"},
			PricingModel: models.PricingFree,
			Difficulty:   models.DifficultyIntermediate,
			Benefits:     []string{"Caching", "Background updates"},
			Popularity:   9,
			DateAdded:    day(3),
		},
		{
			ID:           "2",
			Title:        "Vue Router",
			Description:  "Official router for Vue.js",
			Category:     "Frontend",
			Tags:         []string{"vue", "routing"},
			Technology:   []string{"vue"},
			PricingModel: models.PricingOpenSource,
			Difficulty:   models.DifficultyBeginner,
			Popularity:   7,
			DateAdded:    day(1),
		},
		{
			ID:           "3",
			Title:        "Cloudflare Pages",
			Description:  "Static site hosting with a global CDN",
			Category:     "Hosting",
			Tags:         []string{"cdn", "hosting"},
			Technology:   []string{"javascript"},
			PricingModel: models.PricingFreemium,
			Difficulty:   models.DifficultyBeginner,
			Benefits:     []string{"Free tier"},
			Popularity:   8,
			DateAdded:    day(4),
		},
		{
			ID:           "4",
			Title:        "TensorFlow",
			Description:  "Machine learning framework",
			Category:     "AI Tools",
			Tags:         []string{"ai", "ml"},
			Technology:   []string{"python"},
			PricingModel: models.PricingOpenSource,
			Difficulty:   models.DifficultyAdvanced,
			Popularity:   9,
			DateAdded:    day(2),
		},
	}
}

func hitIDs(hits []models.SearchHit) []string {
	ids := make([]string, len(hits))
	for i, h := range hits {
		ids[i] = h.Resource.ID
	}
	return ids
}

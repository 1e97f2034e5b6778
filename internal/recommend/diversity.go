package recommend

import (
	"math/rand"
	"sync"
	"time"

	"github.com/sasha-the-architect/nuxtjs-boilerplate-sub002/pkg/models"
)

// alwaysAdmitted items at the head of a ranked list skip the diversity check.
const alwaysAdmitted = 3

// Diversifier re-ranks recommendation lists to avoid category and
// technology monoculture. Its random source is seedable so that runs can be
// reproduced; it is safe for concurrent use.
type Diversifier struct {
	mu  sync.Mutex
	rng *rand.Rand
}

// NewDiversifier creates a re-ranker. seed 0 seeds from the clock.
func NewDiversifier(seed int64) *Diversifier {
	if seed == 0 {
		seed = time.Now().UnixNano()
	}
	return &Diversifier{
		rng: rand.New(rand.NewSource(seed)), //nolint:gosec // not security sensitive
	}
}

// Diversify walks ranked in order and admits an item when it is among the
// first three, brings a category or technology not seen yet, or wins a coin
// flip with probability diversityFactor. It stops after maxResults items.
// With diversityFactor 0 the output depends on the input only.
func (d *Diversifier) Diversify(ranked []models.RecommendationResult, diversityFactor float64, maxResults int) []models.RecommendationResult {
	out := make([]models.RecommendationResult, 0, min(len(ranked), max(maxResults, 0)))
	if maxResults <= 0 {
		return out
	}

	categories := make(map[string]struct{})
	technologies := make(map[string]struct{})

	for i, rec := range ranked {
		if len(out) >= maxResults {
			break
		}

		admit := i < alwaysAdmitted
		if !admit {
			_, seen := categories[rec.Resource.Category]
			admit = !seen || bringsNewTechnology(rec.Resource.Technology, technologies)
		}
		if !admit && diversityFactor > 0 {
			admit = d.float64() < diversityFactor
		}
		if !admit {
			continue
		}

		out = append(out, rec)
		categories[rec.Resource.Category] = struct{}{}
		for _, tech := range rec.Resource.Technology {
			technologies[tech] = struct{}{}
		}
	}

	return out
}

func (d *Diversifier) float64() float64 {
	d.mu.Lock()
	defer d.mu.Unlock()
	return d.rng.Float64()
}

func bringsNewTechnology(techs []string, seen map[string]struct{}) bool {
	for _, t := range techs {
		if _, ok := seen[t]; !ok {
			return true
		}
	}
	return false
}

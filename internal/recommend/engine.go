package recommend

import (
	"fmt"
	"sort"
	"strings"

	"gonum.org/v1/gonum/floats"

	"github.com/sasha-the-architect/nuxtjs-boilerplate-sub002/internal/search"
	"github.com/sasha-the-architect/nuxtjs-boilerplate-sub002/pkg/models"
)

const (
	// skillMatchWeight is the fixed weight of the skill-level signal in the
	// personalized blend.
	skillMatchWeight = 0.1

	// Internal weights of the interest-match signal.
	interestCategoryWeight   = 0.4
	interestTagWeight        = 0.3
	interestTechnologyWeight = 0.3

	// Scores of alternatives that are declared rather than computed.
	explicitAlternativeScore = 1.0
	graphAlternativeScore    = 0.9
)

var difficultyRank = map[string]int{
	models.DifficultyBeginner:     0,
	models.DifficultyIntermediate: 1,
	models.DifficultyAdvanced:     2,
}

// Engine blends recommendation strategies over a resource collection. Every
// method reads the configuration once, so a concurrent Update never mixes
// two configurations within one call.
type Engine struct {
	config      *ConfigStore
	diversifier *Diversifier
}

func NewEngine(config *ConfigStore, diversifier *Diversifier) *Engine {
	return &Engine{config: config, diversifier: diversifier}
}

func (e *Engine) Config() *ConfigStore {
	return e.config
}

// ContentBased ranks every other resource by similarity to current and keeps
// those scoring above the minimum similarity.
func (e *Engine) ContentBased(resources []models.Resource, current models.Resource) []models.RecommendationResult {
	cfg := e.config.Get()
	return contentBased(resources, current, cfg)
}

func contentBased(resources []models.Resource, current models.Resource, cfg models.RecommendationConfig) []models.RecommendationResult {
	out := []models.RecommendationResult{}
	for _, r := range resources {
		if r.ID == current.ID {
			continue
		}
		score := Similarity(current, r)
		if score <= cfg.MinSimilarityScore {
			continue
		}
		out = append(out, models.RecommendationResult{
			Resource:    r,
			Score:       score,
			Reason:      models.ReasonContentBased,
			Explanation: fmt.Sprintf("Similar to %s", current.Title),
		})
	}
	sortByScore(out)
	return capAt(out, cfg.MaxRecommendations)
}

// ByCategory returns resources of exactly category in collection order.
// excludeID, when set, is left out.
func (e *Engine) ByCategory(resources []models.Resource, category, excludeID string) []models.RecommendationResult {
	cfg := e.config.Get()
	return byCategory(resources, category, excludeID, cfg)
}

func byCategory(resources []models.Resource, category, excludeID string, cfg models.RecommendationConfig) []models.RecommendationResult {
	out := []models.RecommendationResult{}
	for _, r := range resources {
		if r.Category != category || (excludeID != "" && r.ID == excludeID) {
			continue
		}
		out = append(out, models.RecommendationResult{
			Resource:    r,
			Score:       popularityScore(r),
			Reason:      models.ReasonContentBased,
			Explanation: fmt.Sprintf("More in %s", category),
		})
	}
	return capAt(out, cfg.MaxRecommendations)
}

// Trending orders resources by popularity. There is no recency signal yet, so
// it ranks exactly like Popular and differs only in the reason it reports.
func (e *Engine) Trending(resources []models.Resource, excludeID string) []models.RecommendationResult {
	return byPopularity(resources, excludeID, models.ReasonTrending, e.config.Get())
}

// Popular orders resources by popularity, ties in collection order.
func (e *Engine) Popular(resources []models.Resource, excludeID string) []models.RecommendationResult {
	return byPopularity(resources, excludeID, models.ReasonPopular, e.config.Get())
}

func byPopularity(resources []models.Resource, excludeID string, reason models.RecommendationReason, cfg models.RecommendationConfig) []models.RecommendationResult {
	out := make([]models.RecommendationResult, 0, len(resources))
	for _, r := range resources {
		if excludeID != "" && r.ID == excludeID {
			continue
		}
		out = append(out, models.RecommendationResult{
			Resource:    r,
			Score:       popularityScore(r),
			Reason:      reason,
			Explanation: explainPopularity(reason, r),
		})
	}
	sort.SliceStable(out, func(i, j int) bool {
		return out[i].Resource.Popularity > out[j].Resource.Popularity
	})
	return capAt(out, cfg.MaxRecommendations)
}

func explainPopularity(reason models.RecommendationReason, r models.Resource) string {
	if reason == models.ReasonTrending {
		return "Trending in the directory"
	}
	if r.Category == "" {
		return "Popular with other users"
	}
	return fmt.Sprintf("Popular in %s", r.Category)
}

// Personalized scores each resource by a weighted sum of content similarity
// to current (if any), interest match, a viewed-or-bookmarked signal,
// popularity and skill match. The largest weighted term names the reason.
func (e *Engine) Personalized(resources []models.Resource, prefs models.UserPreferences, current *models.Resource) []models.RecommendationResult {
	cfg := e.config.Get()

	interests := make(map[string]struct{}, len(prefs.Interests))
	for _, i := range prefs.Interests {
		interests[search.Fold(strings.TrimSpace(i))] = struct{}{}
	}
	interacted := make(map[string]struct{}, len(prefs.ViewedResources)+len(prefs.BookmarkedResources))
	for _, id := range prefs.ViewedResources {
		interacted[id] = struct{}{}
	}
	for _, id := range prefs.BookmarkedResources {
		interacted[id] = struct{}{}
	}

	weights := []float64{
		cfg.PersonalizationWeight,
		cfg.ContentBasedWeight,
		cfg.CollaborativeWeight,
		cfg.PopularityWeight,
		skillMatchWeight,
	}

	out := []models.RecommendationResult{}
	terms := make([]float64, len(weights))
	for _, r := range resources {
		if current != nil && r.ID == current.ID {
			continue
		}

		terms[0] = interestMatch(r, interests)
		terms[1] = 0
		if current != nil {
			terms[1] = Similarity(*current, r)
		}
		terms[2] = 0
		if _, ok := interacted[r.ID]; ok {
			terms[2] = 1
		}
		terms[3] = popularityScore(r)
		terms[4] = skillMatch(r.Difficulty, prefs.SkillLevel)

		score := floats.Dot(terms, weights)
		if score < cfg.MinSimilarityScore {
			continue
		}

		reason := dominantReason(terms, weights)
		out = append(out, models.RecommendationResult{
			Resource:    r,
			Score:       score,
			Reason:      reason,
			Explanation: explainPersonalized(reason, r, current),
		})
	}

	sortByScore(out)
	return capAt(out, cfg.MaxRecommendations)
}

// personalizedReasons follows the order of the weighted terms in Personalized.
// It doubles as the tie-break order.
var personalizedReasons = []models.RecommendationReason{
	models.ReasonPersonalized,
	models.ReasonContentBased,
	models.ReasonCollaborative,
	models.ReasonPopular,
}

func dominantReason(terms, weights []float64) models.RecommendationReason {
	best := 0
	bestValue := terms[0] * weights[0]
	for i := 1; i < len(personalizedReasons); i++ {
		if v := terms[i] * weights[i]; v > bestValue {
			best, bestValue = i, v
		}
	}
	return personalizedReasons[best]
}

func explainPersonalized(reason models.RecommendationReason, r models.Resource, current *models.Resource) string {
	switch reason {
	case models.ReasonContentBased:
		return fmt.Sprintf("Similar to %s", current.Title)
	case models.ReasonCollaborative:
		return "Based on resources you viewed or bookmarked"
	case models.ReasonPopular:
		return explainPopularity(models.ReasonPopular, r)
	}
	return "Matches your interests"
}

// interestMatch weighs category, tag and technology overlap with the user's
// interests.
func interestMatch(r models.Resource, interests map[string]struct{}) float64 {
	if len(interests) == 0 {
		return 0
	}

	var score float64
	if _, ok := interests[search.Fold(r.Category)]; ok {
		score += interestCategoryWeight
	}
	score += interestTagWeight * fractionIn(r.Tags, interests)
	score += interestTechnologyWeight * fractionIn(r.Technology, interests)
	return score
}

func fractionIn(values []string, set map[string]struct{}) float64 {
	if len(values) == 0 {
		return 0
	}
	n := 0
	for _, v := range values {
		if _, ok := set[search.Fold(v)]; ok {
			n++
		}
	}
	return float64(n) / float64(len(values))
}

// skillMatch is 1 for the user's own level, 0.5 one level away and 0
// otherwise or when either side is unknown.
func skillMatch(difficulty, skill string) float64 {
	d, ok := difficultyRank[difficulty]
	if !ok {
		return 0
	}
	s, ok := difficultyRank[skill]
	if !ok {
		return 0
	}
	switch d - s {
	case 0:
		return 1
	case 1, -1:
		return 0.5
	}
	return 0
}

// Diverse merges content-based (with current), category (with category),
// trending and popular results, drops duplicates, ranks by score and then
// re-ranks for diversity.
func (e *Engine) Diverse(resources []models.Resource, current *models.Resource, category string) []models.RecommendationResult {
	cfg := e.config.Get()

	excludeID := ""
	var lists [][]models.RecommendationResult
	if current != nil {
		excludeID = current.ID
		lists = append(lists, contentBased(resources, *current, cfg))
	}
	if category != "" {
		lists = append(lists, byCategory(resources, category, excludeID, cfg))
	}
	lists = append(lists,
		byPopularity(resources, excludeID, models.ReasonTrending, cfg),
		byPopularity(resources, excludeID, models.ReasonPopular, cfg),
	)

	seen := make(map[string]struct{})
	merged := []models.RecommendationResult{}
	for _, list := range lists {
		for _, rec := range list {
			if _, dup := seen[rec.Resource.ID]; dup {
				continue
			}
			seen[rec.Resource.ID] = struct{}{}
			merged = append(merged, rec)
		}
	}

	sortByScore(merged)
	return e.diversifier.Diversify(merged, cfg.DiversityFactor, cfg.MaxRecommendations)
}

// Alternatives lists resources that can replace target: its declared
// alternatives first, then graphIDs, then similar resources of the same
// category. limit <= 0 uses the configured maximum.
func (e *Engine) Alternatives(resources []models.Resource, target models.Resource, limit int, graphIDs []string) []models.RecommendationResult {
	cfg := e.config.Get()
	if limit <= 0 {
		limit = cfg.MaxRecommendations
	}

	byID := make(map[string]models.Resource, len(resources))
	for _, r := range resources {
		byID[r.ID] = r
	}

	seen := map[string]struct{}{target.ID: {}}
	out := []models.RecommendationResult{}
	add := func(r models.Resource, score float64, explanation string) {
		if _, dup := seen[r.ID]; dup || len(out) >= limit {
			return
		}
		seen[r.ID] = struct{}{}
		out = append(out, models.RecommendationResult{
			Resource:    r,
			Score:       score,
			Reason:      models.ReasonContentBased,
			Explanation: explanation,
		})
	}

	for _, id := range target.Alternatives {
		if r, ok := byID[id]; ok {
			add(r, explicitAlternativeScore, fmt.Sprintf("Listed as an alternative to %s", target.Title))
		}
	}
	for _, id := range graphIDs {
		if r, ok := byID[id]; ok {
			add(r, graphAlternativeScore, fmt.Sprintf("Often used instead of %s", target.Title))
		}
	}

	similar := []models.RecommendationResult{}
	for _, r := range resources {
		if r.Category != target.Category || r.ID == target.ID {
			continue
		}
		similar = append(similar, models.RecommendationResult{Resource: r, Score: Similarity(target, r)})
	}
	sortByScore(similar)
	for _, rec := range similar {
		add(rec.Resource, rec.Score, fmt.Sprintf("Similar to %s", target.Title))
	}

	return out
}

func popularityScore(r models.Resource) float64 {
	return r.Popularity / 10
}

func sortByScore(recs []models.RecommendationResult) {
	sort.SliceStable(recs, func(i, j int) bool {
		return recs[i].Score > recs[j].Score
	})
}

func capAt(recs []models.RecommendationResult, n int) []models.RecommendationResult {
	if n >= 0 && len(recs) > n {
		return recs[:n]
	}
	return recs
}

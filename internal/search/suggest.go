package search

import (
	"fmt"
	"sort"
	"strings"

	"github.com/sasha-the-architect/nuxtjs-boilerplate-sub002/pkg/models"
)

// Score bands per suggestion source.
const (
	resourceBandBase  = 0.5
	resourceBandRange = 0.5
	tagBand           = 0.7
	categoryBand      = 0.6
	popularBandStart  = 0.9
	popularBandStep   = 0.05

	// shortQueryRunes is the length below which a query is too short to be
	// discriminating and popular searches are mixed in.
	shortQueryRunes = 3
)

type labelCount struct {
	value  string
	folded string
	count  int
}

// SuggestionEngine produces autocomplete suggestions for one collection
// snapshot. Tag and category counts are computed once at build time.
type SuggestionEngine struct {
	index      *FuzzyIndex
	tags       []labelCount
	categories []labelCount
}

// NewSuggestionEngine precomputes the tag and category tallies of the
// resources behind index.
func NewSuggestionEngine(index *FuzzyIndex) *SuggestionEngine {
	e := &SuggestionEngine{index: index}
	if index == nil {
		return e
	}
	e.tags = countLabels(index.resources, func(r *models.Resource) []string { return r.Tags })
	e.categories = countLabels(index.resources, func(r *models.Resource) []string {
		if r.Category == "" {
			return nil
		}
		return []string{r.Category}
	})
	return e
}

// countLabels returns each distinct label in first-seen order with the number
// of resources carrying it.
func countLabels(resources []models.Resource, labels func(*models.Resource) []string) []labelCount {
	out := []labelCount{}
	pos := map[string]int{}
	for i := range resources {
		seen := map[string]struct{}{}
		for _, l := range labels(&resources[i]) {
			if l == "" {
				continue
			}
			if _, dup := seen[l]; dup {
				continue
			}
			seen[l] = struct{}{}
			if j, ok := pos[l]; ok {
				out[j].count++
				continue
			}
			pos[l] = len(out)
			out = append(out, labelCount{value: l, folded: Fold(l), count: 1})
		}
	}
	return out
}

// Suggest merges resource, tag, category and (for short queries) popular
// search suggestions, ranked by score and truncated to limit. popular is
// expected to be ordered most popular first.
func (e *SuggestionEngine) Suggest(queryText string, limit int, popular []models.PopularSearch) ([]models.SuggestionResult, error) {
	if e == nil || e.index == nil {
		return nil, ErrIndexNotBuilt
	}
	if limit < 0 {
		return nil, fmt.Errorf("%w: limit must not be negative, got %d", ErrInvalidArgument, limit)
	}
	if limit == 0 {
		return []models.SuggestionResult{}, nil
	}

	q := strings.TrimSpace(queryText)
	needle := Fold(q)
	out := []models.SuggestionResult{}

	if needle != "" {
		hits := e.index.searchAll(q)
		if len(hits) > limit {
			hits = hits[:limit]
		}
		for _, h := range hits {
			out = append(out, models.SuggestionResult{
				Text:       h.Resource.Title,
				Type:       models.SuggestionResource,
				Score:      resourceBandBase + resourceBandRange*h.Score,
				ResourceID: h.Resource.ID,
				Metadata: map[string]interface{}{
					"category":   h.Resource.Category,
					"matchScore": h.Score,
				},
			})
		}

		out = appendLabels(out, e.tags, needle, models.SuggestionTag, tagBand)
		out = appendLabels(out, e.categories, needle, models.SuggestionCategory, categoryBand)
	}

	if len([]rune(q)) < shortQueryRunes {
		rank := 0
		for _, p := range popular {
			if needle != "" && !containsFolded(p.Query, needle) {
				continue
			}
			score := popularBandStart - popularBandStep*float64(rank)
			if score < 0 {
				score = 0
			}
			out = append(out, models.SuggestionResult{
				Text:  p.Query,
				Type:  models.SuggestionPopular,
				Score: score,
				Metadata: map[string]interface{}{
					"count":        p.Count,
					"lastSearched": p.LastSearched,
				},
			})
			rank++
		}
	}

	sort.SliceStable(out, func(i, j int) bool {
		return out[i].Score > out[j].Score
	})
	if len(out) > limit {
		out = out[:limit]
	}
	return out, nil
}

func appendLabels(out []models.SuggestionResult, labels []labelCount, needle string, typ models.SuggestionType, score float64) []models.SuggestionResult {
	for _, l := range labels {
		if !strings.Contains(l.folded, needle) {
			continue
		}
		out = append(out, models.SuggestionResult{
			Text:     l.value,
			Type:     typ,
			Score:    score,
			Metadata: map[string]interface{}{"count": l.count},
		})
	}
	return out
}

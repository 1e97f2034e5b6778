package search

import (
	"fmt"
	"strings"

	"github.com/sasha-the-architect/nuxtjs-boilerplate-sub002/pkg/models"
)

// ParseFacetDimension validates a dimension name coming from the outside.
func ParseFacetDimension(s string) (models.FacetDimension, error) {
	switch d := models.FacetDimension(s); d {
	case models.FacetCategory, models.FacetPricing, models.FacetDifficulty,
		models.FacetTechnology, models.FacetTag, models.FacetBenefit:
		return d, nil
	}
	return "", fmt.Errorf("%w: unknown facet dimension %q", ErrInvalidArgument, s)
}

// CountFacet narrows resources to those whose title, description or tags
// contain query (case-insensitive, exact substring) and tallies the values
// of dimension over them in a single pass. Multi-valued dimensions count
// every distinct value a resource carries once.
func CountFacet(resources []models.Resource, query string, dimension models.FacetDimension) (map[string]int, error) {
	if _, err := ParseFacetDimension(string(dimension)); err != nil {
		return nil, err
	}

	counts := make(map[string]int)
	needle := strings.TrimSpace(Fold(query))
	for i := range resources {
		r := &resources[i]
		if needle != "" && !matchesSubstring(r, needle) {
			continue
		}
		tally(counts, r, dimension)
	}
	return counts, nil
}

// CountFacets runs CountFacet for several dimensions over one narrowing pass.
func CountFacets(resources []models.Resource, dimensions ...models.FacetDimension) map[models.FacetDimension]map[string]int {
	out := make(map[models.FacetDimension]map[string]int, len(dimensions))
	for _, d := range dimensions {
		out[d] = make(map[string]int)
	}
	for i := range resources {
		for _, d := range dimensions {
			tally(out[d], &resources[i], d)
		}
	}
	return out
}

func matchesSubstring(r *models.Resource, needle string) bool {
	if containsFolded(r.Title, needle) || containsFolded(r.Description, needle) {
		return true
	}
	for _, tag := range r.Tags {
		if containsFolded(tag, needle) {
			return true
		}
	}
	return false
}

func tally(counts map[string]int, r *models.Resource, dimension models.FacetDimension) {
	switch dimension {
	case models.FacetCategory:
		counts[r.Category]++
	case models.FacetPricing:
		counts[r.PricingModel]++
	case models.FacetDifficulty:
		counts[r.Difficulty]++
	case models.FacetTechnology:
		tallyDistinct(counts, r.Technology)
	case models.FacetTag:
		tallyDistinct(counts, r.Tags)
	case models.FacetBenefit:
		tallyDistinct(counts, r.Benefits)
	}
}

func tallyDistinct(counts map[string]int, values []string) {
	switch len(values) {
	case 0:
		return
	case 1:
		counts[values[0]]++
		return
	}
	seen := make(map[string]struct{}, len(values))
	for _, v := range values {
		if _, ok := seen[v]; ok {
			continue
		}
		seen[v] = struct{}{}
		counts[v]++
	}
}

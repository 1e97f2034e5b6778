package search

import (
	"fmt"
	"sort"
	"strings"

	"github.com/hbollon/go-edlib"

	"github.com/sasha-the-architect/nuxtjs-boilerplate-sub002/pkg/models"
)

// Field weights; title counts four times as much as tags.
const (
	titleWeight       = 0.4
	descriptionWeight = 0.3
	benefitsWeight    = 0.2
	tagsWeight        = 0.1
)

const (
	// DefaultMatchThreshold is the minimum field score (1 - distance) a
	// resource needs on at least one field to be returned.
	DefaultMatchThreshold = 0.6
	// tokenThreshold discards token pairs that are too far apart to count.
	tokenThreshold = 0.5
)

type field struct {
	weight float64
	text   string   // folded full text, used for exact containment
	tokens []string // folded tokens
}

type indexEntry struct {
	fields [4]field
}

// FuzzyIndex is a typo-tolerant, field-weighted index over one resource
// collection snapshot. It is immutable once built; callers rebuild it when
// the collection changes.
type FuzzyIndex struct {
	resources []models.Resource
	entries   []indexEntry
	threshold float64
}

// BuildFuzzyIndex indexes title, description, benefits and tags of every
// resource.
func BuildFuzzyIndex(resources []models.Resource) *FuzzyIndex {
	idx := &FuzzyIndex{
		resources: resources,
		entries:   make([]indexEntry, len(resources)),
		threshold: DefaultMatchThreshold,
	}

	for i, r := range resources {
		benefits := strings.Join(r.Benefits, " ")
		tags := strings.Join(r.Tags, " ")
		idx.entries[i] = indexEntry{fields: [4]field{
			{weight: titleWeight, text: Fold(r.Title), tokens: tokenize(r.Title)},
			{weight: descriptionWeight, text: Fold(r.Description), tokens: tokenize(r.Description)},
			{weight: benefitsWeight, text: Fold(benefits), tokens: tokenize(benefits)},
			{weight: tagsWeight, text: Fold(tags), tokens: tokenize(tags)},
		}}
	}

	return idx
}

// WithThreshold returns a copy of the index that uses a different minimum
// field score.
func (idx *FuzzyIndex) WithThreshold(threshold float64) *FuzzyIndex {
	if idx == nil {
		return nil
	}
	clone := *idx
	clone.threshold = threshold
	return &clone
}

// Len returns the number of indexed resources.
func (idx *FuzzyIndex) Len() int {
	if idx == nil {
		return 0
	}
	return len(idx.resources)
}

// Search returns up to limit resources ordered by descending relevance
// (1.0 is best). Ties keep collection order.
func (idx *FuzzyIndex) Search(queryText string, limit int) ([]models.SearchHit, error) {
	if idx == nil {
		return nil, ErrIndexNotBuilt
	}
	if limit < 0 {
		return nil, fmt.Errorf("%w: limit must not be negative, got %d", ErrInvalidArgument, limit)
	}
	if limit == 0 {
		return []models.SearchHit{}, nil
	}

	hits := idx.searchAll(queryText)
	if len(hits) > limit {
		hits = hits[:limit]
	}
	return hits, nil
}

type match struct {
	pos   int
	score float64
}

// matches returns every resource that matches queryText, in collection order.
func (idx *FuzzyIndex) matches(queryText string) []match {
	queryFolded := strings.TrimSpace(Fold(queryText))
	queryTokens := tokenize(queryText)
	if queryFolded == "" || len(queryTokens) == 0 {
		return nil
	}

	var out []match
	for i := range idx.entries {
		if score, ok := idx.score(&idx.entries[i], queryFolded, queryTokens); ok {
			out = append(out, match{pos: i, score: score})
		}
	}
	return out
}

// searchAll returns every matching resource, ranked.
func (idx *FuzzyIndex) searchAll(queryText string) []models.SearchHit {
	found := idx.matches(queryText)
	hits := make([]models.SearchHit, 0, len(found))
	for _, m := range found {
		hits = append(hits, models.SearchHit{Resource: idx.resources[m.pos], Score: m.score})
	}

	sort.SliceStable(hits, func(i, j int) bool {
		return hits[i].Score > hits[j].Score
	})
	return hits
}

// score combines per-field scores: the best weighted field dominates and the
// weighted mean of all fields adds a smaller bonus, so a perfect title match
// outranks a perfect tag match and matching several fields ranks highest.
func (idx *FuzzyIndex) score(entry *indexEntry, queryFolded string, queryTokens []string) (float64, bool) {
	var best, weighted, totalWeight float64
	matched := false

	for _, f := range entry.fields {
		totalWeight += f.weight
		s := fieldScore(f, queryFolded, queryTokens)
		if s < idx.threshold {
			continue
		}
		matched = true
		weighted += f.weight * s
		if ws := s * f.weight / titleWeight; ws > best {
			best = ws
		}
	}

	if !matched {
		return 0, false
	}
	return 0.8*best + 0.2*(weighted/totalWeight), true
}

// fieldScore is 1 for a verbatim occurrence of the whole query, otherwise the
// mean over query tokens of their best token similarity in the field.
func fieldScore(f field, queryFolded string, queryTokens []string) float64 {
	if f.text == "" {
		return 0
	}
	if strings.Contains(f.text, queryFolded) {
		return 1
	}

	var sum float64
	for _, qt := range queryTokens {
		sum += bestTokenSimilarity(qt, f.tokens)
	}
	return sum / float64(len(queryTokens))
}

func bestTokenSimilarity(queryToken string, tokens []string) float64 {
	var best float64
	for _, t := range tokens {
		if t == queryToken || (len([]rune(queryToken)) >= 3 && strings.HasPrefix(t, queryToken)) {
			return 1
		}
		sim, err := edlib.StringsSimilarity(queryToken, t, edlib.Levenshtein)
		if err != nil {
			continue
		}
		if s := float64(sim); s > best {
			best = s
		}
	}
	if best < tokenThreshold {
		return 0
	}
	return best
}

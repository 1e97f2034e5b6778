package search

import (
	"fmt"
	"sort"
	"strings"
	"sync/atomic"

	"github.com/sasha-the-architect/nuxtjs-boilerplate-sub002/internal/sanitize"
	"github.com/sasha-the-architect/nuxtjs-boilerplate-sub002/pkg/models"
)

// resultFacets are counted for every advanced search.
var resultFacets = []models.FacetDimension{models.FacetCategory, models.FacetPricing, models.FacetDifficulty}

// Snapshot is one immutable resource collection together with the
// structures derived from it. Callers must not modify the slice returned by
// Resources.
type Snapshot struct {
	resources []models.Resource
	byID      map[string]int
	index     *FuzzyIndex
	suggester *SuggestionEngine
}

// NewSnapshot indexes resources. A threshold <= 0 uses DefaultMatchThreshold.
func NewSnapshot(resources []models.Resource, threshold float64) *Snapshot {
	if resources == nil {
		resources = []models.Resource{}
	}
	index := BuildFuzzyIndex(resources)
	if threshold > 0 {
		index = index.WithThreshold(threshold)
	}

	byID := make(map[string]int, len(resources))
	for i, r := range resources {
		byID[r.ID] = i
	}

	return &Snapshot{
		resources: resources,
		byID:      byID,
		index:     index,
		suggester: NewSuggestionEngine(index),
	}
}

func (s *Snapshot) Resources() []models.Resource {
	return s.resources
}

func (s *Snapshot) Len() int {
	return len(s.resources)
}

func (s *Snapshot) Get(id string) (models.Resource, bool) {
	i, ok := s.byID[id]
	if !ok {
		return models.Resource{}, false
	}
	return s.resources[i], true
}

func (s *Snapshot) Index() *FuzzyIndex {
	return s.index
}

// Suggest runs the suggestion engine of this snapshot.
func (s *Snapshot) Suggest(queryText string, limit int, popular []models.PopularSearch) ([]models.SuggestionResult, error) {
	return s.suggester.Suggest(queryText, limit, popular)
}

// CountFacet counts dimension over the resources matching query.
func (s *Snapshot) CountFacet(query string, dimension models.FacetDimension) (map[string]int, error) {
	return CountFacet(s.resources, query, dimension)
}

// Search evaluates raw as a boolean query over the fuzzy index, then filters,
// sorts and paginates. An implicit gap or AND intersects the running result
// with the next term, OR unions and NOT subtracts. A query without terms
// browses the whole collection.
func (s *Snapshot) Search(raw string, opts models.SearchOptions) (models.SearchResults, error) {
	if opts.Limit < 0 {
		return models.SearchResults{}, fmt.Errorf("%w: limit must not be negative, got %d", ErrInvalidArgument, opts.Limit)
	}
	if opts.Offset < 0 {
		return models.SearchResults{}, fmt.Errorf("%w: offset must not be negative, got %d", ErrInvalidArgument, opts.Offset)
	}
	less, err := s.sortFunc(opts.Sort)
	if err != nil {
		return models.SearchResults{}, err
	}

	terms, gaps := scanQuery(raw)
	query := ParseQuery(raw)

	scores := s.evaluate(terms, gaps)

	hits := make([]models.SearchHit, 0, len(scores))
	for i := range s.resources {
		score, ok := scores[i]
		if !ok {
			continue
		}
		if !matchesFilters(&s.resources[i], opts.Filters) {
			continue
		}
		hits = append(hits, models.SearchHit{Resource: s.resources[i], Score: score})
	}
	sort.SliceStable(hits, func(i, j int) bool { return less(&hits[i], &hits[j]) })

	filtered := make([]models.Resource, len(hits))
	for i := range hits {
		filtered[i] = hits[i].Resource
	}

	results := models.SearchResults{
		Query:  query,
		Total:  len(hits),
		Facets: CountFacets(filtered, resultFacets...),
	}

	start := opts.Offset
	if start > len(hits) {
		start = len(hits)
	}
	end := start + opts.Limit
	if end > len(hits) {
		end = len(hits)
	}
	page := hits[start:end]

	highlight := positiveTerms(terms, gaps)
	for i := range page {
		page[i].HighlightedTitle = sanitize.HighlightTerms(page[i].Resource.Title, highlight)
		page[i].HighlightedDescription = sanitize.HighlightTerms(page[i].Resource.Description, highlight)
	}
	results.Hits = page
	return results, nil
}

// evaluate returns the matching collection positions with their score.
func (s *Snapshot) evaluate(terms []string, gaps []models.Operator) map[int]float64 {
	if len(terms) == 0 {
		all := make(map[int]float64, len(s.resources))
		for i := range s.resources {
			all[i] = 0
		}
		return all
	}

	current := s.termScores(terms[0])
	for i, op := range gaps {
		next := s.termScores(terms[i+1])
		switch op {
		case models.OperatorOr:
			for pos, score := range next {
				if prev, ok := current[pos]; !ok || score > prev {
					current[pos] = score
				}
			}
		case models.OperatorNot:
			for pos := range next {
				delete(current, pos)
			}
		default:
			for pos, prev := range current {
				score, ok := next[pos]
				if !ok {
					delete(current, pos)
					continue
				}
				if score > prev {
					current[pos] = score
				}
			}
		}
	}
	return current
}

func (s *Snapshot) termScores(term string) map[int]float64 {
	found := s.index.matches(term)
	out := make(map[int]float64, len(found))
	for _, m := range found {
		out[m.pos] = m.score
	}
	return out
}

// positiveTerms drops terms that follow a NOT.
func positiveTerms(terms []string, gaps []models.Operator) []string {
	out := make([]string, 0, len(terms))
	for i, t := range terms {
		if i > 0 && gaps[i-1] == models.OperatorNot {
			continue
		}
		out = append(out, t)
	}
	return out
}

func (s *Snapshot) sortFunc(order string) (func(a, b *models.SearchHit) bool, error) {
	switch order {
	case "", models.SortRelevance:
		return func(a, b *models.SearchHit) bool { return a.Score > b.Score }, nil
	case models.SortPopularity:
		return func(a, b *models.SearchHit) bool { return a.Resource.Popularity > b.Resource.Popularity }, nil
	case models.SortDateAdded:
		return func(a, b *models.SearchHit) bool { return a.Resource.DateAdded.After(b.Resource.DateAdded) }, nil
	case models.SortAlphabetical:
		return func(a, b *models.SearchHit) bool { return Fold(a.Resource.Title) < Fold(b.Resource.Title) }, nil
	}
	return nil, fmt.Errorf("%w: unknown sort %q", ErrInvalidArgument, order)
}

func matchesFilters(r *models.Resource, f models.SearchFilters) bool {
	if f.IsEmpty() {
		return true
	}
	return anyOf(f.Categories, r.Category) &&
		anyOf(f.PricingModels, r.PricingModel) &&
		anyOf(f.DifficultyLevels, r.Difficulty) &&
		anyOf(f.Technologies, r.Technology...) &&
		anyOf(f.Tags, r.Tags...) &&
		anyOf(f.Benefits, r.Benefits...)
}

// anyOf reports whether one of values equals one of wanted, ignoring case.
// An empty wanted list accepts everything.
func anyOf(wanted []string, values ...string) bool {
	if len(wanted) == 0 {
		return true
	}
	for _, w := range wanted {
		fw := Fold(strings.TrimSpace(w))
		for _, v := range values {
			if Fold(v) == fw {
				return true
			}
		}
	}
	return false
}

// Engine holds the current snapshot. Load swaps it atomically so a call
// that already fetched a snapshot keeps using it.
type Engine struct {
	current   atomic.Pointer[Snapshot]
	threshold float64
}

func NewEngine(threshold float64) *Engine {
	return &Engine{threshold: threshold}
}

// Load builds a snapshot from resources and makes it current.
func (e *Engine) Load(resources []models.Resource) *Snapshot {
	snap := NewSnapshot(resources, e.threshold)
	e.current.Store(snap)
	return snap
}

// Snapshot returns the current snapshot or ErrIndexNotBuilt.
func (e *Engine) Snapshot() (*Snapshot, error) {
	snap := e.current.Load()
	if snap == nil {
		return nil, ErrIndexNotBuilt
	}
	return snap, nil
}

func (e *Engine) Search(raw string, opts models.SearchOptions) (models.SearchResults, error) {
	snap, err := e.Snapshot()
	if err != nil {
		return models.SearchResults{}, err
	}
	return snap.Search(raw, opts)
}

func (e *Engine) Suggest(queryText string, limit int, popular []models.PopularSearch) ([]models.SuggestionResult, error) {
	snap, err := e.Snapshot()
	if err != nil {
		return nil, err
	}
	return snap.Suggest(queryText, limit, popular)
}

func (e *Engine) CountFacet(query string, dimension models.FacetDimension) (map[string]int, error) {
	snap, err := e.Snapshot()
	if err != nil {
		return nil, err
	}
	return snap.CountFacet(query, dimension)
}

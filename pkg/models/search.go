package models

import "time"

// Operator joins two terms of a parsed search query.
type Operator string

const (
	OperatorAnd Operator = "AND"
	OperatorOr  Operator = "OR"
	OperatorNot Operator = "NOT"
)

// SearchQuery is the parsed form of a raw search string. Operators holds
// the explicitly written operators in order; gaps without one are AND.
type SearchQuery struct {
	Terms     []string          `json:"terms"`
	Operators []Operator        `json:"operators"`
	Filters   map[string]string `json:"filters,omitempty"`
}

// FacetDimension names an attribute that results can be counted by.
type FacetDimension string

const (
	FacetCategory   FacetDimension = "category"
	FacetPricing    FacetDimension = "pricing"
	FacetDifficulty FacetDimension = "difficulty"
	FacetTechnology FacetDimension = "technology"
	FacetTag        FacetDimension = "tag"
	FacetBenefit    FacetDimension = "benefit"
)

// SuggestionType identifies which source produced a suggestion.
type SuggestionType string

const (
	SuggestionResource SuggestionType = "resource"
	SuggestionTag      SuggestionType = "tag"
	SuggestionCategory SuggestionType = "category"
	SuggestionPopular  SuggestionType = "popular"
)

type SuggestionResult struct {
	Text       string                 `json:"text"`
	Type       SuggestionType         `json:"type"`
	Score      float64                `json:"score"`
	ResourceID string                 `json:"resourceId,omitempty"`
	Metadata   map[string]interface{} `json:"metadata"`
}

type SearchHistoryItem struct {
	Query     string    `json:"query"`
	Timestamp time.Time `json:"timestamp"`
	Count     int       `json:"count"`
}

// PopularSearch is one entry of the popular-searches tally.
type PopularSearch struct {
	Query        string    `json:"query"`
	Count        int       `json:"count"`
	LastSearched time.Time `json:"lastSearched"`
}

// SearchHit pairs a resource with its relevance (1.0 is best).
type SearchHit struct {
	Resource               Resource `json:"resource"`
	Score                  float64  `json:"score"`
	HighlightedTitle       string   `json:"highlightedTitle,omitempty"`
	HighlightedDescription string   `json:"highlightedDescription,omitempty"`
}

// Sort orders accepted by the advanced search.
const (
	SortRelevance    = "relevance"
	SortPopularity   = "popularity"
	SortDateAdded    = "date-added"
	SortAlphabetical = "alphabetical"
)

// SearchFilters narrows search results. Values inside one dimension are
// alternatives; dimensions are combined with AND.
type SearchFilters struct {
	Categories       []string `json:"categories,omitempty" form:"categories"`
	PricingModels    []string `json:"pricingModels,omitempty" form:"pricingModels"`
	DifficultyLevels []string `json:"difficultyLevels,omitempty" form:"difficultyLevels"`
	Technologies     []string `json:"technologies,omitempty" form:"technologies"`
	Tags             []string `json:"tags,omitempty" form:"tags"`
	Benefits         []string `json:"benefits,omitempty" form:"benefits"`
}

// IsEmpty reports whether no filter is set.
func (f SearchFilters) IsEmpty() bool {
	return len(f.Categories) == 0 && len(f.PricingModels) == 0 && len(f.DifficultyLevels) == 0 &&
		len(f.Technologies) == 0 && len(f.Tags) == 0 && len(f.Benefits) == 0
}

type SearchOptions struct {
	Filters SearchFilters
	Sort    string
	Limit   int
	Offset  int
}

type SearchResults struct {
	Query  SearchQuery                       `json:"query"`
	Hits   []SearchHit                       `json:"hits"`
	Total  int                               `json:"total"`
	Facets map[FacetDimension]map[string]int `json:"facets"`
}

// SearchEvent is published whenever a search is recorded.
type SearchEvent struct {
	ID        string    `json:"id"`
	Query     string    `json:"query"`
	Results   int       `json:"results"`
	Source    string    `json:"source"`
	Timestamp time.Time `json:"timestamp"`
}

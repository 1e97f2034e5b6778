package search

import (
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/sasha-the-architect/nuxtjs-boilerplate-sub002/pkg/models"
)

func loadedEngine(t *testing.T) *Engine {
	t.Helper()
	e := NewEngine(0)
	e.Load(sampleResources())
	return e
}

func TestEngine_NotLoaded(t *testing.T) {
	e := NewEngine(0)

	_, err := e.Search("react", models.SearchOptions{Limit: 10})
	assert.ErrorIs(t, err, ErrIndexNotBuilt)
	_, err = e.Suggest("react", 10, nil)
	assert.ErrorIs(t, err, ErrIndexNotBuilt)
	_, err = e.CountFacet("", models.FacetCategory)
	assert.ErrorIs(t, err, ErrIndexNotBuilt)
}

func TestEngine_BooleanSearch(t *testing.T) {
	e := loadedEngine(t)

	tests := []struct {
		name     string
		raw      string
		expected []string
	}{
		{"single term", "react", []string{"1"}},
		{"or unions", "react OR vue", []string{"1", "2"}},
		{"implicit and intersects", "react data", []string{"1"}},
		{"explicit and intersects", "react AND tensorflow", []string{}},
		{"not subtracts", "react NOT data", []string{}},
		{"or then not", "react OR vue NOT router", []string{"1"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			results, err := e.Search(tt.raw, models.SearchOptions{Limit: 10, Sort: models.SortAlphabetical})
			require.NoError(t, err)
			assert.ElementsMatch(t, tt.expected, hitIDs(results.Hits))
			assert.Equal(t, len(tt.expected), results.Total)
		})
	}
}

func TestEngine_SearchCarriesParsedQuery(t *testing.T) {
	e := loadedEngine(t)

	results, err := e.Search("react OR vue", models.SearchOptions{Limit: 10})
	require.NoError(t, err)
	assert.Equal(t, []string{"react", "vue"}, results.Query.Terms)
	assert.Equal(t, []models.Operator{models.OperatorOr}, results.Query.Operators)
}

func TestEngine_BrowseSortsAndPaginates(t *testing.T) {
	e := loadedEngine(t)

	tests := []struct {
		name     string
		sort     string
		expected []string
	}{
		{"relevance keeps collection order", "", []string{"1", "2", "3", "4"}},
		{"popularity stable on ties", models.SortPopularity, []string{"1", "4", "3", "2"}},
		{"date added newest first", models.SortDateAdded, []string{"3", "1", "4", "2"}},
		{"alphabetical", models.SortAlphabetical, []string{"3", "1", "4", "2"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			results, err := e.Search("", models.SearchOptions{Sort: tt.sort, Limit: 10})
			require.NoError(t, err)
			assert.Equal(t, tt.expected, hitIDs(results.Hits))
		})
	}

	t.Run("offset and limit", func(t *testing.T) {
		results, err := e.Search("", models.SearchOptions{Sort: models.SortPopularity, Limit: 2, Offset: 1})
		require.NoError(t, err)
		assert.Equal(t, 4, results.Total)
		assert.Equal(t, []string{"4", "3"}, hitIDs(results.Hits))
	})

	t.Run("offset past the end", func(t *testing.T) {
		results, err := e.Search("", models.SearchOptions{Limit: 2, Offset: 10})
		require.NoError(t, err)
		assert.Equal(t, 4, results.Total)
		assert.Empty(t, results.Hits)
	})

	t.Run("zero limit", func(t *testing.T) {
		results, err := e.Search("", models.SearchOptions{})
		require.NoError(t, err)
		assert.Empty(t, results.Hits)
		assert.Equal(t, 4, results.Total)
	})
}

func TestEngine_SearchRejectsBadOptions(t *testing.T) {
	e := loadedEngine(t)

	_, err := e.Search("react", models.SearchOptions{Limit: -1})
	assert.ErrorIs(t, err, ErrInvalidArgument)
	_, err = e.Search("react", models.SearchOptions{Limit: 1, Offset: -1})
	assert.ErrorIs(t, err, ErrInvalidArgument)
	_, err = e.Search("react", models.SearchOptions{Limit: 1, Sort: "random"})
	assert.ErrorIs(t, err, ErrInvalidArgument)
}

func TestEngine_Filters(t *testing.T) {
	e := loadedEngine(t)

	tests := []struct {
		name     string
		filters  models.SearchFilters
		expected []string
	}{
		{"category case insensitive", models.SearchFilters{Categories: []string{"frontend"}}, []string{"1", "2"}},
		{"any of within a dimension", models.SearchFilters{PricingModels: []string{models.PricingFree, models.PricingFreemium}}, []string{"1", "3"}},
		{"all of across dimensions", models.SearchFilters{Categories: []string{"Frontend"}, DifficultyLevels: []string{models.DifficultyBeginner}}, []string{"2"}},
		{"technology", models.SearchFilters{Technologies: []string{"python"}}, []string{"4"}},
		{"tag", models.SearchFilters{Tags: []string{"cdn"}}, []string{"3"}},
		{"benefit", models.SearchFilters{Benefits: []string{"caching"}}, []string{"1"}},
		{"nothing matches", models.SearchFilters{Categories: []string{"Databases"}}, []string{}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			results, err := e.Search("", models.SearchOptions{Filters: tt.filters, Limit: 10})
			require.NoError(t, err)
			assert.Equal(t, tt.expected, hitIDs(results.Hits))
		})
	}
}

func TestEngine_SearchFacetsCoverFilteredSet(t *testing.T) {
	e := loadedEngine(t)

	results, err := e.Search("", models.SearchOptions{Limit: 1})
	require.NoError(t, err)

	assert.Equal(t, map[string]int{"Frontend": 2, "Hosting": 1, "AI Tools": 1}, results.Facets[models.FacetCategory])
	sum := 0
	for _, c := range results.Facets[models.FacetDifficulty] {
		sum += c
	}
	assert.Equal(t, results.Total, sum)
}

func TestEngine_Highlights(t *testing.T) {
	e := loadedEngine(t)

	results, err := e.Search("react NOT vue", models.SearchOptions{Limit: 10})
	require.NoError(t, err)
	require.NotEmpty(t, results.Hits)

	hit := results.Hits[0]
	assert.Equal(t, `<mark class="search-highlight">React</mark> Query`, hit.HighlightedTitle)
	assert.Contains(t, hit.HighlightedDescription, `<mark class="search-highlight">React</mark> applications`)
	assert.Equal(t, "React Query", hit.Resource.Title)
}

func TestEngine_ReloadSwapsSnapshot(t *testing.T) {
	e := loadedEngine(t)

	before, err := e.Snapshot()
	require.NoError(t, err)

	e.Load([]models.Resource{{ID: "9", Title: "Svelte Kit", Category: "Frontend"}})

	after, err := e.Snapshot()
	require.NoError(t, err)
	assert.Equal(t, 4, before.Len())
	assert.Equal(t, 1, after.Len())

	_, ok := before.Get("1")
	assert.True(t, ok)
	_, ok = after.Get("1")
	assert.False(t, ok)
}

func TestEngine_ConcurrentSearchAndReload(t *testing.T) {
	e := loadedEngine(t)

	var wg sync.WaitGroup
	for i := 0; i < 20; i++ {
		wg.Add(2)
		go func() {
			defer wg.Done()
			_, err := e.Search("react", models.SearchOptions{Limit: 5})
			assert.NoError(t, err)
		}()
		go func() {
			defer wg.Done()
			e.Load(sampleResources())
		}()
	}
	wg.Wait()
}

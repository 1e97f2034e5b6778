package search

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/sasha-the-architect/nuxtjs-boilerplate-sub002/pkg/models"
)

func TestFuzzyIndex_Search(t *testing.T) {
	idx := BuildFuzzyIndex(sampleResources())
	require.Equal(t, 4, idx.Len())

	t.Run("exact title match ranks first", func(t *testing.T) {
		hits, err := idx.Search("react", 10)
		require.NoError(t, err)
		require.NotEmpty(t, hits)
		assert.Equal(t, "1", hits[0].Resource.ID)
		assert.LessOrEqual(t, hits[0].Score, 1.0)
		assert.Greater(t, hits[0].Score, 0.0)
	})

	t.Run("tolerates a typo", func(t *testing.T) {
		hits, err := idx.Search("reakt", 10)
		require.NoError(t, err)
		require.NotEmpty(t, hits)
		assert.Equal(t, "1", hits[0].Resource.ID)
	})

	t.Run("case insensitive", func(t *testing.T) {
		hits, err := idx.Search("TENSORFLOW", 10)
		require.NoError(t, err)
		require.NotEmpty(t, hits)
		assert.Equal(t, "4", hits[0].Resource.ID)
	})

	t.Run("no match", func(t *testing.T) {
		hits, err := idx.Search("xyzzyq", 10)
		require.NoError(t, err)
		assert.Empty(t, hits)
	})

	t.Run("empty query", func(t *testing.T) {
		hits, err := idx.Search("   ", 10)
		require.NoError(t, err)
		assert.Empty(t, hits)
	})

	t.Run("limit truncates", func(t *testing.T) {
		hits, err := idx.Search("hosting OR react", 1)
		require.NoError(t, err)
		assert.LessOrEqual(t, len(hits), 1)
	})

	t.Run("zero limit", func(t *testing.T) {
		hits, err := idx.Search("react", 0)
		require.NoError(t, err)
		assert.Empty(t, hits)
	})

	t.Run("negative limit", func(t *testing.T) {
		_, err := idx.Search("react", -1)
		assert.True(t, errors.Is(err, ErrInvalidArgument))
	})
}

func TestFuzzyIndex_TitleOutweighsTags(t *testing.T) {
	idx := BuildFuzzyIndex([]models.Resource{
		{ID: "tagged", Title: "Alpha", Tags: []string{"kubernetes"}},
		{ID: "titled", Title: "Kubernetes"},
	})

	hits, err := idx.Search("kubernetes", 10)
	require.NoError(t, err)
	assert.Equal(t, []string{"titled", "tagged"}, hitIDs(hits))
	assert.Greater(t, hits[0].Score, hits[1].Score)
}

func TestFuzzyIndex_RankedDescending(t *testing.T) {
	idx := BuildFuzzyIndex(sampleResources())

	hits, err := idx.Search("framework hosting", 10)
	require.NoError(t, err)
	for i := 1; i < len(hits); i++ {
		assert.GreaterOrEqual(t, hits[i-1].Score, hits[i].Score)
	}
}

func TestFuzzyIndex_Empty(t *testing.T) {
	idx := BuildFuzzyIndex(nil)

	hits, err := idx.Search("react", 5)
	require.NoError(t, err)
	assert.Empty(t, hits)
}

func TestFuzzyIndex_NotBuilt(t *testing.T) {
	var idx *FuzzyIndex

	_, err := idx.Search("react", 5)
	assert.ErrorIs(t, err, ErrIndexNotBuilt)
}

func TestFuzzyIndex_WithThreshold(t *testing.T) {
	idx := BuildFuzzyIndex(sampleResources())

	strict := idx.WithThreshold(1.0)
	hits, err := strict.Search("reakt", 10)
	require.NoError(t, err)
	assert.Empty(t, hits)

	hits, err = idx.Search("reakt", 10)
	require.NoError(t, err)
	assert.NotEmpty(t, hits)
}

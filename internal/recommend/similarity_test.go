package recommend

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/sasha-the-architect/nuxtjs-boilerplate-sub002/pkg/models"
)

func TestSimilarity(t *testing.T) {
	tests := []struct {
		name     string
		a, b     models.Resource
		expected float64
	}{
		{
			name:     "same category only",
			a:        models.Resource{ID: "a", Category: "Hosting"},
			b:        models.Resource{ID: "b", Category: "Hosting"},
			expected: 0.5,
		},
		{
			name:     "half of the tags shared",
			a:        models.Resource{ID: "a", Tags: []string{"ai", "ml"}},
			b:        models.Resource{ID: "b", Tags: []string{"ai", "nlp"}},
			expected: 0.15,
		},
		{
			name:     "divisor is the larger tag set",
			a:        models.Resource{ID: "a", Technology: []string{"go"}},
			b:        models.Resource{ID: "b", Technology: []string{"go", "rust", "zig", "c"}},
			expected: 0.05,
		},
		{
			name:     "everything shared",
			a:        models.Resource{ID: "a", Category: "AI Tools", Tags: []string{"ai"}, Technology: []string{"python"}},
			b:        models.Resource{ID: "b", Category: "AI Tools", Tags: []string{"ai"}, Technology: []string{"python"}},
			expected: 1.0,
		},
		{
			name:     "nothing shared",
			a:        models.Resource{ID: "a", Category: "AI Tools"},
			b:        models.Resource{ID: "b", Category: "Hosting"},
			expected: 0,
		},
		{
			name:     "empty categories do not match",
			a:        models.Resource{ID: "a"},
			b:        models.Resource{ID: "b"},
			expected: 0,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.InDelta(t, tt.expected, Similarity(tt.a, tt.b), 1e-9)
			assert.InDelta(t, tt.expected, Similarity(tt.b, tt.a), 1e-9)
		})
	}
}

func TestSimilarity_Identity(t *testing.T) {
	for _, r := range sampleResources() {
		assert.Equal(t, 1.0, Similarity(r, r), r.ID)
	}
	bare := models.Resource{ID: "bare"}
	assert.Equal(t, 1.0, Similarity(bare, bare))
}

func TestSimilarity_Symmetric(t *testing.T) {
	resources := sampleResources()
	for _, a := range resources {
		for _, b := range resources {
			sab := Similarity(a, b)
			assert.Equal(t, sab, Similarity(b, a), "%s/%s", a.ID, b.ID)
			assert.GreaterOrEqual(t, sab, 0.0)
			assert.LessOrEqual(t, sab, 1.0)
		}
	}
}

func TestSimilarity_EndToEnd(t *testing.T) {
	r1 := models.Resource{ID: "1", Category: "AI Tools", Tags: []string{"ai", "ml"}}
	r2 := models.Resource{ID: "2", Category: "AI Tools", Tags: []string{"ai", "nlp"}}
	r3 := models.Resource{ID: "3", Category: "Hosting", Tags: []string{"cdn"}}

	assert.Greater(t, Similarity(r1, r2), Similarity(r1, r3))
}

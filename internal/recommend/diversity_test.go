package recommend

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/sasha-the-architect/nuxtjs-boilerplate-sub002/pkg/models"
)

func ranked(specs ...[2]string) []models.RecommendationResult {
	out := make([]models.RecommendationResult, len(specs))
	for i, s := range specs {
		out[i] = models.RecommendationResult{
			Resource: models.Resource{ID: string(rune('a' + i)), Category: s[0], Technology: []string{s[1]}},
			Score:    1 - float64(i)*0.1,
		}
	}
	return out
}

func TestDiversifier_Diversify(t *testing.T) {
	input := ranked(
		[2]string{"AI", "python"},
		[2]string{"AI", "python"},
		[2]string{"AI", "python"},
		[2]string{"AI", "python"},  // nothing new
		[2]string{"AI", "go"},      // new technology
		[2]string{"Hosting", "go"}, // new category
		[2]string{"Hosting", "go"}, // nothing new
	)

	tests := []struct {
		name       string
		factor     float64
		maxResults int
		expected   []string
	}{
		{"first three always admitted", 0, 3, []string{"a", "b", "c"}},
		{"skips repeats without relaxation", 0, 10, []string{"a", "b", "c", "e", "f"}},
		{"stops at max", 0, 4, []string{"a", "b", "c", "e"}},
		{"full relaxation admits everything", 1, 10, []string{"a", "b", "c", "d", "e", "f", "g"}},
		{"zero max", 0, 0, []string{}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			out := NewDiversifier(1).Diversify(input, tt.factor, tt.maxResults)
			assert.Equal(t, tt.expected, resultIDs(out))
		})
	}
}

func TestDiversifier_DeterministicWithoutRelaxation(t *testing.T) {
	input := ranked(
		[2]string{"AI", "python"},
		[2]string{"AI", "python"},
		[2]string{"AI", "python"},
		[2]string{"AI", "python"},
		[2]string{"Hosting", "go"},
	)
	d := NewDiversifier(0)

	first := d.Diversify(input, 0, 10)
	for i := 0; i < 20; i++ {
		assert.Equal(t, first, d.Diversify(input, 0, 10))
	}
}

func TestDiversifier_SeedReproducible(t *testing.T) {
	input := ranked(
		[2]string{"AI", "python"},
		[2]string{"AI", "python"},
		[2]string{"AI", "python"},
		[2]string{"AI", "python"},
		[2]string{"AI", "python"},
		[2]string{"AI", "python"},
		[2]string{"AI", "python"},
		[2]string{"AI", "python"},
	)

	a := NewDiversifier(7).Diversify(input, 0.5, 10)
	b := NewDiversifier(7).Diversify(input, 0.5, 10)

	assert.Equal(t, resultIDs(a), resultIDs(b))
	assert.GreaterOrEqual(t, len(a), 3)
}

func TestDiversifier_KeepsInputOrder(t *testing.T) {
	input := ranked(
		[2]string{"A", "x"},
		[2]string{"B", "y"},
		[2]string{"C", "z"},
		[2]string{"D", "w"},
	)

	out := NewDiversifier(3).Diversify(input, 0.2, 10)
	assert.Equal(t, []string{"a", "b", "c", "d"}, resultIDs(out))
}

package recommend

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/sasha-the-architect/nuxtjs-boilerplate-sub002/pkg/models"
)

func sampleResources() []models.Resource {
	return []models.Resource{
		{ID: "1", Title: "TensorFlow", Category: "AI Tools", Tags: []string{"ai", "ml"}, Technology: []string{"python"}, Difficulty: models.DifficultyAdvanced, Popularity: 9},
		{ID: "2", Title: "Hugging Face", Category: "AI Tools", Tags: []string{"ai", "nlp"}, Technology: []string{"python"}, Difficulty: models.DifficultyIntermediate, Popularity: 8},
		{ID: "3", Title: "Cloudflare Pages", Category: "Hosting", Tags: []string{"cdn"}, Technology: []string{"javascript"}, Difficulty: models.DifficultyBeginner, Popularity: 9},
		{ID: "4", Title: "PyTorch", Category: "AI Tools", Tags: []string{"ml"}, Technology: []string{"python"}, Difficulty: models.DifficultyAdvanced, Popularity: 7},
		{ID: "5", Title: "Netlify", Category: "Hosting", Tags: []string{"cdn", "jamstack"}, Technology: []string{"javascript"}, Difficulty: models.DifficultyBeginner, Popularity: 6, Alternatives: []string{"3", "missing"}},
		{ID: "6", Title: "Ollama", Category: "AI Tools", Tags: []string{"ai", "llm"}, Technology: []string{"go"}, Difficulty: models.DifficultyIntermediate, Popularity: 5},
	}
}

func newTestEngine(t *testing.T, cfg models.RecommendationConfig) *Engine {
	t.Helper()
	store, err := NewConfigStore(cfg)
	require.NoError(t, err)
	return NewEngine(store, NewDiversifier(42))
}

func resultIDs(recs []models.RecommendationResult) []string {
	ids := make([]string, len(recs))
	for i, r := range recs {
		ids[i] = r.Resource.ID
	}
	return ids
}

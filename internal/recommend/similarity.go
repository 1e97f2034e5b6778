package recommend

import "github.com/sasha-the-architect/nuxtjs-boilerplate-sub002/pkg/models"

// Contribution of each shared attribute to the similarity of two resources.
const (
	categoryWeight   = 0.5
	tagWeight        = 0.3
	technologyWeight = 0.2
)

// Similarity scores how alike two resources are, in [0,1]. A resource is
// always fully similar to itself. The score is symmetric.
func Similarity(a, b models.Resource) float64 {
	if a.ID != "" && a.ID == b.ID {
		return 1
	}

	var score float64
	if a.Category != "" && a.Category == b.Category {
		score += categoryWeight
	}
	score += tagWeight * overlap(a.Tags, b.Tags)
	score += technologyWeight * overlap(a.Technology, b.Technology)

	if score > 1 {
		return 1
	}
	return score
}

// overlap is |a ∩ b| / max(|a|, |b|) over the distinct values of each list.
// Two empty lists share nothing.
func overlap(a, b []string) float64 {
	setA := distinct(a)
	setB := distinct(b)
	denom := len(setA)
	if len(setB) > denom {
		denom = len(setB)
	}
	if denom == 0 {
		return 0
	}

	shared := 0
	for v := range setA {
		if _, ok := setB[v]; ok {
			shared++
		}
	}
	return float64(shared) / float64(denom)
}

func distinct(values []string) map[string]struct{} {
	set := make(map[string]struct{}, len(values))
	for _, v := range values {
		set[v] = struct{}{}
	}
	return set
}

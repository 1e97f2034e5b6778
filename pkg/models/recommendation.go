package models

// RecommendationReason explains which signal produced a recommendation.
type RecommendationReason string

const (
	ReasonCollaborative RecommendationReason = "collaborative"
	ReasonContentBased  RecommendationReason = "content-based"
	ReasonTrending      RecommendationReason = "trending"
	ReasonPopular       RecommendationReason = "popular"
	ReasonPersonalized  RecommendationReason = "personalized"
	ReasonSerendipity   RecommendationReason = "serendipity"
)

// RecommendationResult scores are only comparable within one call.
type RecommendationResult struct {
	Resource    Resource             `json:"resource"`
	Score       float64              `json:"score"`
	Reason      RecommendationReason `json:"reason"`
	Explanation string               `json:"explanation,omitempty"`
}

type RecommendationConfig struct {
	CollaborativeWeight   float64 `json:"collaborativeWeight" mapstructure:"collaborative_weight" validate:"min=0,max=1"`
	ContentBasedWeight    float64 `json:"contentBasedWeight" mapstructure:"content_based_weight" validate:"min=0,max=1"`
	PopularityWeight      float64 `json:"popularityWeight" mapstructure:"popularity_weight" validate:"min=0,max=1"`
	PersonalizationWeight float64 `json:"personalizationWeight" mapstructure:"personalization_weight" validate:"min=0,max=1"`
	MaxRecommendations    int     `json:"maxRecommendations" mapstructure:"max_recommendations" validate:"min=1,max=100"`
	MinSimilarityScore    float64 `json:"minSimilarityScore" mapstructure:"min_similarity_score" validate:"min=0,max=1"`
	DiversityFactor       float64 `json:"diversityFactor" mapstructure:"diversity_factor" validate:"min=0,max=1"`
}

// RecommendationConfigUpdate is a partial update: nil fields are left untouched.
type RecommendationConfigUpdate struct {
	CollaborativeWeight   *float64 `json:"collaborativeWeight,omitempty"`
	ContentBasedWeight    *float64 `json:"contentBasedWeight,omitempty"`
	PopularityWeight      *float64 `json:"popularityWeight,omitempty"`
	PersonalizationWeight *float64 `json:"personalizationWeight,omitempty"`
	MaxRecommendations    *int     `json:"maxRecommendations,omitempty"`
	MinSimilarityScore    *float64 `json:"minSimilarityScore,omitempty"`
	DiversityFactor       *float64 `json:"diversityFactor,omitempty"`
}

// UserPreferences carries what the personalized strategy knows about a user.
type UserPreferences struct {
	Interests           []string `json:"interests"`
	SkillLevel          string   `json:"skillLevel,omitempty" validate:"omitempty,oneof=beginner intermediate advanced"`
	ViewedResources     []string `json:"viewedResources,omitempty"`
	BookmarkedResources []string `json:"bookmarkedResources,omitempty"`
}

// Recommendation strategies exposed over the API.
const (
	StrategyContentBased = "content-based"
	StrategyCategory     = "category"
	StrategyTrending     = "trending"
	StrategyPopular      = "popular"
	StrategyPersonalized = "personalized"
	StrategyDiverse      = "diverse"
)

type RecommendationRequest struct {
	Strategy          string          `json:"strategy" form:"strategy" binding:"omitempty,oneof=content-based category trending popular personalized diverse"`
	CurrentResourceID string          `json:"currentResourceId,omitempty" form:"resourceId"`
	CurrentCategory   string          `json:"currentCategory,omitempty" form:"category"`
	Limit             int             `json:"limit,omitempty" form:"limit" binding:"omitempty,min=1,max=100"`
	Preferences       UserPreferences `json:"preferences"`
}

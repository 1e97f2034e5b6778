package models

import "time"

// Pricing models a resource can declare.
const (
	PricingFree       = "free"
	PricingFreemium   = "freemium"
	PricingPaid       = "paid"
	PricingOpenSource = "open-source"
)

// Difficulty levels, ordered from easiest to hardest.
const (
	DifficultyBeginner     = "beginner"
	DifficultyIntermediate = "intermediate"
	DifficultyAdvanced     = "advanced"
)

// Resource is a single entry of the curated directory.
type Resource struct {
	ID           string    `json:"id" db:"id" validate:"required"`
	Title        string    `json:"title" db:"title" validate:"required,min=1,max=255"`
	Description  string    `json:"description" db:"description"`
	URL          string    `json:"url" db:"url" validate:"omitempty,url"`
	Category     string    `json:"category" db:"category" validate:"required"`
	Tags         []string  `json:"tags" db:"tags"`
	Technology   []string  `json:"technology" db:"technology"`
	PricingModel string    `json:"pricingModel" db:"pricing_model"`
	Difficulty   string    `json:"difficulty" db:"difficulty"`
	Benefits     []string  `json:"benefits" db:"benefits"`
	Popularity   float64   `json:"popularity" db:"popularity"`
	DateAdded    time.Time `json:"dateAdded" db:"date_added"`
	LastUpdated  time.Time `json:"lastUpdated,omitempty" db:"last_updated"`
	Alternatives []string  `json:"alternatives,omitempty" db:"alternatives"`
}

// ResourceListResponse is returned by the resource listing endpoint
type ResourceListResponse struct {
	Resources []Resource `json:"resources"`
	Total     int        `json:"total"`
	Limit     int        `json:"limit"`
	Offset    int        `json:"offset"`
}

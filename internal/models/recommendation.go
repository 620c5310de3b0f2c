package models

import "time"

// HairAnalysis is the snapshot captured when a client is scanned.
type HairAnalysis struct {
	HairType  string `json:"hairType"`
	Condition string `json:"condition"`
	Porosity  string `json:"porosity,omitempty"`
}

// RecommendationItem scores one product for the analyzed client. Sold marks
// whether the recommendation converted into a sale.
type RecommendationItem struct {
	ProductID string  `json:"productId"`
	Score     float64 `json:"score"`
	Sold      bool    `json:"sold"`
}

// Recommendation is an append-only log entry nested under a stylist, read
// back for conversion-rate analytics.
type Recommendation struct {
	ID        string               `json:"id,omitempty"`
	ClientID  string               `json:"clientId"`
	Analysis  HairAnalysis         `json:"analysis"`
	Items     []RecommendationItem `json:"items"`
	CreatedAt time.Time            `json:"createdAt,omitempty"`
	UpdatedAt time.Time            `json:"updatedAt,omitempty"`
}

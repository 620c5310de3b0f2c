package models

import "time"

// Product is nested under a salon. TotalRevenue/UnitsSold carry the same
// cached-rollup caveat as the stylist aggregates; Inventory is initial stock
// minus units sold at generation time.
type Product struct {
	ID        string   `json:"id,omitempty"`
	Name      string   `json:"name"`
	Price     float64  `json:"price"`
	Inventory int      `json:"inventory"`
	Active    bool     `json:"active"`
	Tags      []string `json:"tags,omitempty"`
	ImageURL  string   `json:"imageUrl,omitempty"`

	TotalRevenue float64 `json:"totalRevenue"`
	UnitsSold    int     `json:"unitsSold"`

	CreatedAt time.Time `json:"createdAt,omitempty"`
	UpdatedAt time.Time `json:"updatedAt,omitempty"`
}

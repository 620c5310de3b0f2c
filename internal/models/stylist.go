package models

import "time"

// StylistStatus enumerates the stylist lifecycle states.
type StylistStatus string

const (
	StylistActive   StylistStatus = "Active"
	StylistInactive StylistStatus = "Inactive"
)

// Stylist is nested under a salon. The aggregate fields (TotalSales,
// UnitsSold, ClientsCount, ScansCount) are cached rollups written at seed
// time or by the console — they are advisory data, not recomputed
// transactionally.
type Stylist struct {
	ID       string        `json:"id,omitempty"`
	Name     string        `json:"name"`
	Bio      string        `json:"bio,omitempty"`
	Skills   []string      `json:"skills,omitempty"`
	PhotoURL string        `json:"photoUrl,omitempty"`
	Status   StylistStatus `json:"status"`

	TotalSales   float64 `json:"totalSales"`
	UnitsSold    int     `json:"unitsSold"`
	ClientsCount int     `json:"clientsCount"`
	ScansCount   int     `json:"scansCount"`

	CreatedAt time.Time `json:"createdAt,omitempty"`
	UpdatedAt time.Time `json:"updatedAt,omitempty"`
}

package models

import "time"

// Salon is a tenant. Every salon owns a tree of nested collections
// (products, sales, stylists and their clients/recommendations) and has
// exactly one manager.
type Salon struct {
	ID        string    `json:"id,omitempty"`
	Name      string    `json:"name"`
	ManagerID string    `json:"managerId"`
	Phone     string    `json:"phone,omitempty"`
	Address   string    `json:"address,omitempty"`
	LogoURL   string    `json:"logoUrl,omitempty"`
	CreatedAt time.Time `json:"createdAt,omitempty"`
	UpdatedAt time.Time `json:"updatedAt,omitempty"`
}

// SalonProfile is the tenant's settings/profile document: contact, legal and
// banner configuration surfaced in the manager console.
type SalonProfile struct {
	ID           string       `json:"id,omitempty"`
	ContactEmail string       `json:"contactEmail,omitempty"`
	ContactPhone string       `json:"contactPhone,omitempty"`
	Banner       BannerConfig `json:"banner"`
	LegalText    string       `json:"legalText,omitempty"`
	UpdatedAt    time.Time    `json:"updatedAt,omitempty"`
}

// BannerConfig is the storefront banner shown in the client app.
type BannerConfig struct {
	ImageURL string `json:"imageUrl,omitempty"`
	Headline string `json:"headline,omitempty"`
	LinkURL  string `json:"linkUrl,omitempty"`
	Enabled  bool   `json:"enabled"`
}

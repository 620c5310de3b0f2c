package models

import "time"

// SaleItem is one line item of a sale.
type SaleItem struct {
	ProductID string  `json:"productId"`
	Name      string  `json:"name"`
	Price     float64 `json:"price"`
	Quantity  int     `json:"quantity"`
}

// Sale is nested under a salon and logically tied to a stylist and client.
// Sales are immutable once created; the repository exposes no update.
type Sale struct {
	ID        string     `json:"id,omitempty"`
	StylistID string     `json:"stylistId"`
	ClientID  string     `json:"clientId"`
	Items     []SaleItem `json:"items"`
	Total     float64    `json:"total"`
	Date      time.Time  `json:"date"`
	CreatedAt time.Time  `json:"createdAt,omitempty"`
	UpdatedAt time.Time  `json:"updatedAt,omitempty"`
}

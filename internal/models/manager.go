package models

import "time"

// Manager is a salon manager account. Managers live in a global directory
// collection (not nested under the salon) because authentication happens
// before any tenant scope exists.
type Manager struct {
	ID           string    `json:"id,omitempty"`
	Name         string    `json:"name"`
	Email        string    `json:"email"`
	PasswordHash string    `json:"passwordHash,omitempty"`
	Phone        string    `json:"phone,omitempty"`
	SalonID      string    `json:"salonId"`
	IsActive     bool      `json:"isActive"`
	CreatedAt    time.Time `json:"createdAt,omitempty"`
	UpdatedAt    time.Time `json:"updatedAt,omitempty"`
}

// SuperAdmin is the singleton platform administrator. Same shape as a manager
// but with platform-wide visibility and no tenant reference.
type SuperAdmin struct {
	ID           string    `json:"id,omitempty"`
	Name         string    `json:"name"`
	Email        string    `json:"email"`
	PasswordHash string    `json:"passwordHash,omitempty"`
	UpdatedAt    time.Time `json:"updatedAt,omitempty"`
}

package models

import "time"

// AppConfig is the per-tenant (and platform-default) application
// configuration. Each section replaces wholesale on save; there is no
// field-level merge inside a section.
type AppConfig struct {
	ID            string              `json:"id,omitempty"`
	HairTypes     []string            `json:"hairTypes,omitempty"`
	Questionnaire []QuestionnaireItem `json:"questionnaire,omitempty"`
	Banner        BannerConfig        `json:"banner"`
	LegalText     string              `json:"legalText,omitempty"`
	UpdatedAt     time.Time           `json:"updatedAt,omitempty"`
}

// QuestionnaireItem is one entry of the client intake questionnaire schema.
type QuestionnaireItem struct {
	Key      string   `json:"key"`
	Question string   `json:"question"`
	Options  []string `json:"options,omitempty"`
	Required bool     `json:"required"`
}

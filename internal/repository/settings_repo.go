package repository

import (
	"context"

	"github.com/strandshq/strands-api/internal/docstore"
	"github.com/strandshq/strands-api/internal/models"
)

// SettingsRepository handles the platform-wide and per-salon configuration
// documents. Config documents are replaced wholesale on save.
type SettingsRepository struct {
	store docstore.Backend
}

// NewSettingsRepository creates a new SettingsRepository.
func NewSettingsRepository(store docstore.Backend) *SettingsRepository {
	return &SettingsRepository{store: store}
}

// GetPlatformConfig returns the platform default app configuration, or
// (nil, nil) before first seeding.
func (r *SettingsRepository) GetPlatformConfig(ctx context.Context) (*models.AppConfig, error) {
	doc, err := r.store.Get(ctx, PlatformSettingsCol(), DocPlatformConfig)
	if err != nil {
		return nil, err
	}
	return decodeOne[models.AppConfig](doc)
}

// PutPlatformConfig replaces the platform default app configuration.
func (r *SettingsRepository) PutPlatformConfig(ctx context.Context, cfg *models.AppConfig) error {
	fields, err := docstore.FieldsOf(cfg)
	if err != nil {
		return err
	}
	return r.store.Put(ctx, PlatformSettingsCol(), DocPlatformConfig, fields)
}

// GetAppConfig returns a salon's app configuration, or (nil, nil).
func (r *SettingsRepository) GetAppConfig(ctx context.Context, salonID string) (*models.AppConfig, error) {
	doc, err := r.store.Get(ctx, SalonSettingsCol(salonID), DocAppConfig)
	if err != nil {
		return nil, err
	}
	return decodeOne[models.AppConfig](doc)
}

// PutAppConfig replaces a salon's app configuration.
func (r *SettingsRepository) PutAppConfig(ctx context.Context, salonID string, cfg *models.AppConfig) error {
	fields, err := docstore.FieldsOf(cfg)
	if err != nil {
		return err
	}
	return r.store.Put(ctx, SalonSettingsCol(salonID), DocAppConfig, fields)
}

// GetProfile returns a salon's profile document, or (nil, nil).
func (r *SettingsRepository) GetProfile(ctx context.Context, salonID string) (*models.SalonProfile, error) {
	doc, err := r.store.Get(ctx, SalonSettingsCol(salonID), DocProfile)
	if err != nil {
		return nil, err
	}
	return decodeOne[models.SalonProfile](doc)
}

// PutProfile replaces a salon's profile document.
func (r *SettingsRepository) PutProfile(ctx context.Context, salonID string, p *models.SalonProfile) error {
	fields, err := docstore.FieldsOf(p)
	if err != nil {
		return err
	}
	return r.store.Put(ctx, SalonSettingsCol(salonID), DocProfile, fields)
}

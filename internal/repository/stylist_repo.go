package repository

import (
	"context"

	"github.com/strandshq/strands-api/internal/docstore"
	"github.com/strandshq/strands-api/internal/models"
)

// StylistRepository handles stylists nested under a salon. The salon id is an
// explicit argument on every scoped method — the repository never trusts an
// ambient tenant.
type StylistRepository struct {
	store docstore.Backend
}

// NewStylistRepository creates a new StylistRepository.
func NewStylistRepository(store docstore.Backend) *StylistRepository {
	return &StylistRepository{store: store}
}

// Create inserts a stylist under the salon and returns its generated id.
func (r *StylistRepository) Create(ctx context.Context, salonID string, s *models.Stylist) (string, error) {
	fields, err := docstore.FieldsOf(s)
	if err != nil {
		return "", err
	}
	return r.store.Create(ctx, StylistsCol(salonID), fields)
}

// Get returns one stylist, or (nil, nil) when it does not exist.
func (r *StylistRepository) Get(ctx context.Context, salonID, id string) (*models.Stylist, error) {
	doc, err := r.store.Get(ctx, StylistsCol(salonID), id)
	if err != nil {
		return nil, err
	}
	return decodeOne[models.Stylist](doc)
}

// List returns the salon's stylists sorted by name. An optional status filter
// narrows the result server-side.
func (r *StylistRepository) List(ctx context.Context, salonID string, status models.StylistStatus) ([]models.Stylist, error) {
	var filters []docstore.Filter
	if status != "" {
		filters = append(filters, docstore.Eq("status", string(status)))
	}
	docs, err := r.store.Query(ctx, StylistsCol(salonID), filters, &docstore.Sort{Field: "name"})
	if err != nil {
		return nil, err
	}
	return decodeAll[models.Stylist](docs)
}

// ListAll scans the stylists collection group across every salon. Aggregate
// dashboards only.
func (r *StylistRepository) ListAll(ctx context.Context) ([]models.Stylist, error) {
	docs, err := r.store.QueryGroup(ctx, docstore.Group(ColStylists), nil, &docstore.Sort{Field: "name"})
	if err != nil {
		return nil, err
	}
	return decodeAll[models.Stylist](docs)
}

// Update merges partial fields into a stylist document.
func (r *StylistRepository) Update(ctx context.Context, salonID, id string, patch map[string]interface{}) error {
	return r.store.Update(ctx, StylistsCol(salonID), id, patch)
}

// Delete removes the stylist document. Nested clients and recommendations
// stay in place (no cascade).
func (r *StylistRepository) Delete(ctx context.Context, salonID, id string) error {
	return r.store.Delete(ctx, StylistsCol(salonID), id)
}

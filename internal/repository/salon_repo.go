package repository

import (
	"context"

	"github.com/strandshq/strands-api/internal/docstore"
	"github.com/strandshq/strands-api/internal/models"
)

// SalonRepository handles the root tenant directory.
type SalonRepository struct {
	store docstore.Backend
}

// NewSalonRepository creates a new SalonRepository.
func NewSalonRepository(store docstore.Backend) *SalonRepository {
	return &SalonRepository{store: store}
}

// Create inserts a salon and returns its generated id.
func (r *SalonRepository) Create(ctx context.Context, s *models.Salon) (string, error) {
	fields, err := docstore.FieldsOf(s)
	if err != nil {
		return "", err
	}
	return r.store.Create(ctx, SalonsCol(), fields)
}

// Get returns one salon, or (nil, nil) when it does not exist.
func (r *SalonRepository) Get(ctx context.Context, id string) (*models.Salon, error) {
	doc, err := r.store.Get(ctx, SalonsCol(), id)
	if err != nil {
		return nil, err
	}
	return decodeOne[models.Salon](doc)
}

// List returns every salon, sorted by name.
func (r *SalonRepository) List(ctx context.Context) ([]models.Salon, error) {
	docs, err := r.store.Query(ctx, SalonsCol(), nil, &docstore.Sort{Field: "name"})
	if err != nil {
		return nil, err
	}
	return decodeAll[models.Salon](docs)
}

// Update merges partial fields into a salon document.
func (r *SalonRepository) Update(ctx context.Context, id string, patch map[string]interface{}) error {
	return r.store.Update(ctx, SalonsCol(), id, patch)
}

// Delete removes the salon document only. Nested collections are not
// cascaded; only the purge engine removes whole trees.
func (r *SalonRepository) Delete(ctx context.Context, id string) error {
	return r.store.Delete(ctx, SalonsCol(), id)
}

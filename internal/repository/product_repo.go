package repository

import (
	"context"

	"github.com/strandshq/strands-api/internal/docstore"
	"github.com/strandshq/strands-api/internal/models"
)

// ProductRepository handles a salon's product catalog.
type ProductRepository struct {
	store docstore.Backend
}

// NewProductRepository creates a new ProductRepository.
func NewProductRepository(store docstore.Backend) *ProductRepository {
	return &ProductRepository{store: store}
}

// Create inserts a product under the salon and returns its generated id.
func (r *ProductRepository) Create(ctx context.Context, salonID string, p *models.Product) (string, error) {
	fields, err := docstore.FieldsOf(p)
	if err != nil {
		return "", err
	}
	return r.store.Create(ctx, ProductsCol(salonID), fields)
}

// Get returns one product, or (nil, nil) when it does not exist.
func (r *ProductRepository) Get(ctx context.Context, salonID, id string) (*models.Product, error) {
	doc, err := r.store.Get(ctx, ProductsCol(salonID), id)
	if err != nil {
		return nil, err
	}
	return decodeOne[models.Product](doc)
}

// List returns the salon's products sorted by name. activeOnly narrows to
// products currently offered.
func (r *ProductRepository) List(ctx context.Context, salonID string, activeOnly bool) ([]models.Product, error) {
	var filters []docstore.Filter
	if activeOnly {
		filters = append(filters, docstore.Eq("active", true))
	}
	docs, err := r.store.Query(ctx, ProductsCol(salonID), filters, &docstore.Sort{Field: "name"})
	if err != nil {
		return nil, err
	}
	return decodeAll[models.Product](docs)
}

// ListAll scans the products collection group across every salon.
func (r *ProductRepository) ListAll(ctx context.Context) ([]models.Product, error) {
	docs, err := r.store.QueryGroup(ctx, docstore.Group(ColProducts), nil, &docstore.Sort{Field: "name"})
	if err != nil {
		return nil, err
	}
	return decodeAll[models.Product](docs)
}

// Update merges partial fields into a product document.
func (r *ProductRepository) Update(ctx context.Context, salonID, id string, patch map[string]interface{}) error {
	return r.store.Update(ctx, ProductsCol(salonID), id, patch)
}

// Delete removes the product document.
func (r *ProductRepository) Delete(ctx context.Context, salonID, id string) error {
	return r.store.Delete(ctx, ProductsCol(salonID), id)
}

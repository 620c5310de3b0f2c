package repository

import (
	"context"

	"github.com/strandshq/strands-api/internal/docstore"
	"github.com/strandshq/strands-api/internal/models"
)

// SaleRepository handles a salon's sales ledger. Sales are immutable once
// created: the repository deliberately exposes no update method.
type SaleRepository struct {
	store docstore.Backend
}

// NewSaleRepository creates a new SaleRepository.
func NewSaleRepository(store docstore.Backend) *SaleRepository {
	return &SaleRepository{store: store}
}

// Create inserts a sale under the salon and returns its generated id.
func (r *SaleRepository) Create(ctx context.Context, salonID string, s *models.Sale) (string, error) {
	fields, err := docstore.FieldsOf(s)
	if err != nil {
		return "", err
	}
	return r.store.Create(ctx, SalesCol(salonID), fields)
}

// Get returns one sale, or (nil, nil) when it does not exist.
func (r *SaleRepository) Get(ctx context.Context, salonID, id string) (*models.Sale, error) {
	doc, err := r.store.Get(ctx, SalesCol(salonID), id)
	if err != nil {
		return nil, err
	}
	return decodeOne[models.Sale](doc)
}

// List returns the salon's sales, newest first. An optional stylist filter
// narrows to one stylist's sales.
func (r *SaleRepository) List(ctx context.Context, salonID, stylistID string) ([]models.Sale, error) {
	var filters []docstore.Filter
	if stylistID != "" {
		filters = append(filters, docstore.Eq("stylistId", stylistID))
	}
	docs, err := r.store.Query(ctx, SalesCol(salonID), filters, &docstore.Sort{Field: "date", Desc: true})
	if err != nil {
		return nil, err
	}
	return decodeAll[models.Sale](docs)
}

// ListAll scans the sales collection group across every salon, newest first.
// Feeds the super-admin activity feed and revenue rollups.
func (r *SaleRepository) ListAll(ctx context.Context) ([]models.Sale, error) {
	docs, err := r.store.QueryGroup(ctx, docstore.Group(ColSales), nil, &docstore.Sort{Field: "date", Desc: true})
	if err != nil {
		return nil, err
	}
	return decodeAll[models.Sale](docs)
}

// Delete removes a sale. Developer/cleanup affordance only; the console never
// edits a recorded sale.
func (r *SaleRepository) Delete(ctx context.Context, salonID, id string) error {
	return r.store.Delete(ctx, SalesCol(salonID), id)
}

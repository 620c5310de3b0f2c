package repository

import (
	"context"

	"github.com/strandshq/strands-api/internal/docstore"
	"github.com/strandshq/strands-api/internal/models"
)

// ClientRepository handles clients nested under a stylist.
type ClientRepository struct {
	store docstore.Backend
}

// NewClientRepository creates a new ClientRepository.
func NewClientRepository(store docstore.Backend) *ClientRepository {
	return &ClientRepository{store: store}
}

// Create inserts a client under the stylist and returns its generated id.
func (r *ClientRepository) Create(ctx context.Context, salonID, stylistID string, c *models.Client) (string, error) {
	fields, err := docstore.FieldsOf(c)
	if err != nil {
		return "", err
	}
	return r.store.Create(ctx, ClientsCol(salonID, stylistID), fields)
}

// Get returns one client, or (nil, nil) when it does not exist.
func (r *ClientRepository) Get(ctx context.Context, salonID, stylistID, id string) (*models.Client, error) {
	doc, err := r.store.Get(ctx, ClientsCol(salonID, stylistID), id)
	if err != nil {
		return nil, err
	}
	return decodeOne[models.Client](doc)
}

// List returns the stylist's clients sorted by name.
func (r *ClientRepository) List(ctx context.Context, salonID, stylistID string) ([]models.Client, error) {
	docs, err := r.store.Query(ctx, ClientsCol(salonID, stylistID), nil, &docstore.Sort{Field: "name"})
	if err != nil {
		return nil, err
	}
	return decodeAll[models.Client](docs)
}

// ListAll scans the clients collection group across every stylist and salon.
func (r *ClientRepository) ListAll(ctx context.Context) ([]models.Client, error) {
	docs, err := r.store.QueryGroup(ctx, docstore.Group(ColClients), nil, &docstore.Sort{Field: "name"})
	if err != nil {
		return nil, err
	}
	return decodeAll[models.Client](docs)
}

// Update merges partial fields into a client document.
func (r *ClientRepository) Update(ctx context.Context, salonID, stylistID, id string, patch map[string]interface{}) error {
	return r.store.Update(ctx, ClientsCol(salonID, stylistID), id, patch)
}

// Delete removes the client document.
func (r *ClientRepository) Delete(ctx context.Context, salonID, stylistID, id string) error {
	return r.store.Delete(ctx, ClientsCol(salonID, stylistID), id)
}

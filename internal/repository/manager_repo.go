package repository

import (
	"context"

	"github.com/strandshq/strands-api/internal/docstore"
	"github.com/strandshq/strands-api/internal/models"
)

// ManagerRepository handles the global manager directory and the super-admin
// singleton.
type ManagerRepository struct {
	store docstore.Backend
}

// NewManagerRepository creates a new ManagerRepository.
func NewManagerRepository(store docstore.Backend) *ManagerRepository {
	return &ManagerRepository{store: store}
}

// Create inserts a manager and returns its generated id.
func (r *ManagerRepository) Create(ctx context.Context, m *models.Manager) (string, error) {
	fields, err := docstore.FieldsOf(m)
	if err != nil {
		return "", err
	}
	return r.store.Create(ctx, ManagersCol(), fields)
}

// Get returns one manager, or (nil, nil) when it does not exist.
func (r *ManagerRepository) Get(ctx context.Context, id string) (*models.Manager, error) {
	doc, err := r.store.Get(ctx, ManagersCol(), id)
	if err != nil {
		return nil, err
	}
	return decodeOne[models.Manager](doc)
}

// GetByEmail returns the manager with the given login email, or (nil, nil).
func (r *ManagerRepository) GetByEmail(ctx context.Context, email string) (*models.Manager, error) {
	docs, err := r.store.Query(ctx, ManagersCol(), []docstore.Filter{docstore.Eq("email", email)}, nil)
	if err != nil {
		return nil, err
	}
	if len(docs) == 0 {
		return nil, nil
	}
	return decodeOne[models.Manager](&docs[0])
}

// List returns the manager directory sorted by name.
func (r *ManagerRepository) List(ctx context.Context) ([]models.Manager, error) {
	docs, err := r.store.Query(ctx, ManagersCol(), nil, &docstore.Sort{Field: "name"})
	if err != nil {
		return nil, err
	}
	return decodeAll[models.Manager](docs)
}

// Update merges partial fields into a manager document.
func (r *ManagerRepository) Update(ctx context.Context, id string, patch map[string]interface{}) error {
	return r.store.Update(ctx, ManagersCol(), id, patch)
}

// Delete removes the manager document. The manager's salon is a separate
// explicit delete; nothing cascades.
func (r *ManagerRepository) Delete(ctx context.Context, id string) error {
	return r.store.Delete(ctx, ManagersCol(), id)
}

// GetSuperAdmin returns the platform super-admin singleton, or (nil, nil)
// before first provisioning.
func (r *ManagerRepository) GetSuperAdmin(ctx context.Context) (*models.SuperAdmin, error) {
	doc, err := r.store.Get(ctx, SuperAdminCol(), DocSuperAdmin)
	if err != nil {
		return nil, err
	}
	return decodeOne[models.SuperAdmin](doc)
}

// PutSuperAdmin writes the super-admin singleton under its fixed id.
func (r *ManagerRepository) PutSuperAdmin(ctx context.Context, sa *models.SuperAdmin) error {
	fields, err := docstore.FieldsOf(sa)
	if err != nil {
		return err
	}
	return r.store.Put(ctx, SuperAdminCol(), DocSuperAdmin, fields)
}

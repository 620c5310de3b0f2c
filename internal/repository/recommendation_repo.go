package repository

import (
	"context"

	"github.com/strandshq/strands-api/internal/docstore"
	"github.com/strandshq/strands-api/internal/models"
)

// RecommendationRepository handles the append-only AI recommendation log
// nested under a stylist. Entries are never updated; conversion analytics
// read them back whole.
type RecommendationRepository struct {
	store docstore.Backend
}

// NewRecommendationRepository creates a new RecommendationRepository.
func NewRecommendationRepository(store docstore.Backend) *RecommendationRepository {
	return &RecommendationRepository{store: store}
}

// Create appends a recommendation and returns its generated id.
func (r *RecommendationRepository) Create(ctx context.Context, salonID, stylistID string, rec *models.Recommendation) (string, error) {
	fields, err := docstore.FieldsOf(rec)
	if err != nil {
		return "", err
	}
	return r.store.Create(ctx, RecommendationsCol(salonID, stylistID), fields)
}

// List returns the stylist's recommendation log in insertion order.
func (r *RecommendationRepository) List(ctx context.Context, salonID, stylistID string) ([]models.Recommendation, error) {
	docs, err := r.store.Query(ctx, RecommendationsCol(salonID, stylistID), nil, nil)
	if err != nil {
		return nil, err
	}
	return decodeAll[models.Recommendation](docs)
}

// ListAll scans the recommendations collection group across every stylist
// and salon. Feeds the platform conversion-rate rollup.
func (r *RecommendationRepository) ListAll(ctx context.Context) ([]models.Recommendation, error) {
	docs, err := r.store.QueryGroup(ctx, docstore.Group(ColRecommendations), nil, nil)
	if err != nil {
		return nil, err
	}
	return decodeAll[models.Recommendation](docs)
}

// Delete removes a log entry. Developer/cleanup affordance only.
func (r *RecommendationRepository) Delete(ctx context.Context, salonID, stylistID, id string) error {
	return r.store.Delete(ctx, RecommendationsCol(salonID, stylistID), id)
}

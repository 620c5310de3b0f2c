package service

import (
	"context"

	"github.com/rs/zerolog/log"

	"github.com/strandshq/strands-api/internal/docstore"
	"github.com/strandshq/strands-api/internal/repository"
	"github.com/strandshq/strands-api/internal/utils"
)

// PurgeConfirmPhrase must be typed verbatim before any delete is issued.
const PurgeConfirmPhrase = "DELETE ALL SALON DATA"

// purgeBatchSize bounds each delete statement. Batches are atomic; the whole
// purge is not.
const purgeBatchSize = 200

// purgeOrder lists the collection groups in deletion order, nested
// collections before the roots that own them. The super-admin singleton is
// not purged so the platform stays administrable afterwards.
var purgeOrder = []string{
	repository.ColRecommendations,
	repository.ColClients,
	repository.ColSales,
	repository.ColStylists,
	repository.ColSettings,
	repository.ColProducts,
	repository.ColSalons,
	repository.ColManagers,
}

// PurgeResult reports what each group purge removed. On partial failure the
// counts cover everything deleted before the failing group.
type PurgeResult struct {
	Deleted map[string]int `json:"deleted"`
	Total   int            `json:"total"`
	Failed  string         `json:"failed,omitempty"`
}

// PurgeService performs the confirmed, irreversible cross-tenant wipe.
type PurgeService struct {
	store docstore.Backend
}

// NewPurgeService creates a new PurgeService.
func NewPurgeService(store docstore.Backend) *PurgeService {
	return &PurgeService{store: store}
}

// Purge deletes every tenant's data group by group. The confirmation phrase
// is checked before the first delete; a mismatch refuses the whole operation.
// A mid-purge failure stops at the failing group and leaves the store in a
// mixed state.
func (s *PurgeService) Purge(ctx context.Context, confirmation string) (*PurgeResult, error) {
	if confirmation != PurgeConfirmPhrase {
		return nil, utils.ErrConfirmMismatch
	}

	result := &PurgeResult{Deleted: make(map[string]int, len(purgeOrder))}
	for _, group := range purgeOrder {
		n, err := s.store.DeleteGroup(ctx, docstore.Group(group), purgeBatchSize)
		result.Deleted[group] = n
		result.Total += n
		if err != nil {
			result.Failed = group
			log.Error().Err(err).Str("group", group).Int("deleted", result.Total).Msg("purge aborted mid-operation")
			return result, err
		}
		log.Info().Str("group", group).Int("count", n).Msg("purged collection group")
	}
	log.Warn().Int("total", result.Total).Msg("all salon data purged")
	return result, nil
}

package service

import (
	"context"

	"github.com/farmassist/farm-sync/internal/logger"
	"github.com/farmassist/farm-sync/internal/validators"
	"github.com/farmassist/farm-sync/models"
)

// ingestService validates submitted change batches record by record. It
// deliberately never fails a whole batch: a malformed record is reported
// individually so the rest of the batch still synchronizes.
type ingestService struct {
	validator validators.Validator

	logger *logger.Logger
}

// NewIngestService constructs an [IngestService] using the given validator.
func NewIngestService(validator validators.Validator, logger *logger.Logger) IngestService {
	return &ingestService{
		validator: validator,
		logger:    logger,
	}
}

// Ingest implements [IngestService]. Valid records keep their submission
// order; each invalid record is reported with kind MALFORMED_CHANGE and the
// concrete validation failure as the reason.
func (s *ingestService) Ingest(ctx context.Context, userID int64, changes []models.ChangeRecord) (models.IngestResult, error) {
	log := logger.FromContext(ctx)

	if userID <= 0 {
		return models.IngestResult{}, ErrNoUserID
	}

	result := models.IngestResult{
		Valid: make([]models.ChangeRecord, 0, len(changes)),
	}

	for _, change := range changes {
		if err := s.validator.Validate(ctx, change); err != nil {
			log.Warn().
				Str("func", "ingestService.Ingest").
				Int64("user_id", userID).
				Str("entity_type", change.EntityType).
				Str("entity_id", change.EntityID).
				Err(err).
				Msg("rejecting malformed change record")

			result.Rejected = append(result.Rejected, models.RecordFailure{
				EntityType: change.EntityType,
				EntityID:   change.EntityID,
				Kind:       models.MalformedChange,
				Reason:     err.Error(),
			})
			continue
		}

		result.Valid = append(result.Valid, change)
	}

	log.Debug().
		Str("func", "ingestService.Ingest").
		Int64("user_id", userID).
		Int("submitted", len(changes)).
		Int("valid", len(result.Valid)).
		Int("rejected", len(result.Rejected)).
		Msg("ingested change batch")

	return result, nil
}

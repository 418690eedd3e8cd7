package service

import (
	"context"
	"fmt"

	"github.com/farmassist/farm-sync/internal/logger"
	"github.com/farmassist/farm-sync/internal/store"
	"github.com/farmassist/farm-sync/internal/validators"
	"github.com/farmassist/farm-sync/models"
)

// queueService manages the per-user FIFO queue of mutations recorded while
// a device was offline. Items wait here until the next sync session drains
// them through the same classify-and-apply pipeline as live changes.
type queueService struct {
	queue     store.QueueRepository
	validator validators.Validator

	logger *logger.Logger
}

// NewQueueService constructs a [QueueService].
func NewQueueService(queue store.QueueRepository, validator validators.Validator, logger *logger.Logger) QueueService {
	return &queueService{
		queue:     queue,
		validator: validator,
		logger:    logger,
	}
}

// Enqueue implements [QueueService].
func (s *queueService) Enqueue(ctx context.Context, userID int64, request models.QueueRequest) (models.QueueItem, error) {
	log := logger.FromContext(ctx)

	if userID <= 0 {
		return models.QueueItem{}, ErrNoUserID
	}

	if err := s.validator.Validate(ctx, request); err != nil {
		return models.QueueItem{}, fmt.Errorf("%w: %w", ErrMalformedChange, err)
	}

	item, err := s.queue.Enqueue(ctx, models.QueueItem{
		UserID:          userID,
		EntityType:      request.EntityType,
		EntityID:        request.EntityID,
		Operation:       request.Operation,
		LocalVersion:    request.LocalVersion,
		Payload:         request.Payload,
		DeviceID:        request.DeviceID,
		ClientTimestamp: request.ClientTimestamp,
	})
	if err != nil {
		return models.QueueItem{}, err
	}

	log.Info().
		Str("func", "queueService.Enqueue").
		Int64("user_id", userID).
		Int64("item_id", item.ID).
		Str("entity_type", item.EntityType).
		Str("operation", string(item.Operation)).
		Msg("offline mutation queued")

	return item, nil
}

// List implements [QueueService].
func (s *queueService) List(ctx context.Context, filter models.QueueFilter) ([]models.QueueItem, error) {
	if filter.UserID <= 0 {
		return nil, ErrNoUserID
	}
	return s.queue.List(ctx, filter)
}

// Delete implements [QueueService].
func (s *queueService) Delete(ctx context.Context, userID, itemID int64) error {
	if userID <= 0 {
		return ErrNoUserID
	}
	return s.queue.Delete(ctx, userID, itemID)
}

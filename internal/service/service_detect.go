package service

import (
	"context"
	"fmt"

	"github.com/farmassist/farm-sync/internal/adapter"
	"github.com/farmassist/farm-sync/internal/logger"
	"github.com/farmassist/farm-sync/internal/store"
	"github.com/farmassist/farm-sync/internal/utils"
	"github.com/farmassist/farm-sync/models"
)

// detectService classifies change records against the authoritative entity
// versions held by the domain-data collaborator and persists divergences as
// pending conflicts.
type detectService struct {
	domain    adapter.DomainDataService
	conflicts store.ConflictRepository
	notifier  adapter.Notifier
	uuid      *utils.UUIDGenerator

	logger *logger.Logger
}

// NewDetectService constructs a [DetectService].
func NewDetectService(domain adapter.DomainDataService, conflicts store.ConflictRepository, notifier adapter.Notifier, logger *logger.Logger) DetectService {
	return &detectService{
		domain:    domain,
		conflicts: conflicts,
		notifier:  notifier,
		uuid:      utils.NewUUIDGenerator(),
		logger:    logger,
	}
}

// Classify implements [DetectService]. A record is CLEAN exactly when its
// base version equals the authoritative version. A client version ahead of
// the server should not happen with well-behaved clients; it is treated as
// CONFLICT rather than trusted.
func (s *detectService) Classify(ctx context.Context, userID int64, change models.ChangeRecord) (models.Classification, int64, error) {
	log := logger.FromContext(ctx)

	currentVersion, err := s.domain.CurrentVersion(ctx, userID, change.EntityType, change.EntityID)
	if err != nil {
		log.Err(err).
			Str("func", "detectService.Classify").
			Int64("user_id", userID).
			Str("entity_type", change.EntityType).
			Str("entity_id", change.EntityID).
			Msg("failed to fetch authoritative entity version")
		return "", 0, fmt.Errorf("fetching current version: %w", err)
	}

	if change.LocalVersion == currentVersion {
		return models.Clean, currentVersion, nil
	}

	if change.LocalVersion > currentVersion {
		log.Warn().
			Str("func", "detectService.Classify").
			Int64("user_id", userID).
			Str("entity_type", change.EntityType).
			Str("entity_id", change.EntityID).
			Int64("local_version", change.LocalVersion).
			Int64("server_version", currentVersion).
			Msg("client version ahead of server, treating as conflict")
	}

	return models.Conflict, currentVersion, nil
}

// RecordConflict implements [DetectService]. The upsert keeps at most one
// PENDING conflict per entity instance; a repeat divergence refreshes the
// open row. Notification failures are logged and swallowed: a lost event
// never fails the session.
func (s *detectService) RecordConflict(ctx context.Context, userID int64, change models.ChangeRecord, serverVersion int64) (models.SyncConflict, error) {
	log := logger.FromContext(ctx)

	conflict := models.SyncConflict{
		ID:             s.uuid.Generate(),
		UserID:         userID,
		EntityType:     change.EntityType,
		EntityID:       change.EntityID,
		LocalPayload:   change.Payload,
		LocalVersion:   change.LocalVersion,
		ServerVersion:  serverVersion,
		LocalTimestamp: change.LocalTimestamp,
		DeviceID:       change.DeviceID,
		Status:         models.ConflictPending,
	}

	saved, err := s.conflicts.UpsertPending(ctx, conflict)
	if err != nil {
		log.Err(err).
			Str("func", "detectService.RecordConflict").
			Int64("user_id", userID).
			Str("entity_type", change.EntityType).
			Str("entity_id", change.EntityID).
			Msg("failed to persist pending conflict")
		return models.SyncConflict{}, err
	}

	if notifyErr := s.notifier.NotifyConflictDetected(ctx, saved); notifyErr != nil {
		log.Warn().
			Str("func", "detectService.RecordConflict").
			Int64("user_id", userID).
			Str("conflict_id", saved.ID).
			Err(notifyErr).
			Msg("conflict notification failed, continuing")
	}

	return saved, nil
}

package service

import (
	"context"
	"errors"
	"fmt"

	"github.com/farmassist/farm-sync/internal/adapter"
	"github.com/farmassist/farm-sync/internal/config"
	"github.com/farmassist/farm-sync/internal/logger"
	"github.com/farmassist/farm-sync/internal/store"
	"github.com/farmassist/farm-sync/internal/validators"
	"github.com/farmassist/farm-sync/models"
	"github.com/sethvargo/go-retry"
)

// orchestratorService runs complete sync sessions. One session walks every
// submitted change plus a batch drained from the offline queue through the
// classify-apply-or-park pipeline, keeping the user's status row in step.
//
// Per-record failures (malformed, conflicted, apply-exhausted) never abort a
// session; only infrastructure failures (storage, classification transport)
// do, in which case the session ends in ERROR and claimed queue items are
// released back to PENDING.
type orchestratorService struct {
	ingest    IngestService
	detect    DetectService
	statuses  StatusService
	queue     store.QueueRepository
	conflicts store.ConflictRepository
	domain    adapter.DomainDataService
	notifier  adapter.Notifier
	locks     *SessionLockArena
	validator validators.Validator
	cfg       config.Sync

	logger *logger.Logger
}

// NewOrchestratorService constructs an [OrchestratorService].
func NewOrchestratorService(
	ingest IngestService,
	detect DetectService,
	statuses StatusService,
	queue store.QueueRepository,
	conflicts store.ConflictRepository,
	domain adapter.DomainDataService,
	notifier adapter.Notifier,
	locks *SessionLockArena,
	validator validators.Validator,
	cfg config.Sync,
	logger *logger.Logger,
) OrchestratorService {
	return &orchestratorService{
		ingest:    ingest,
		detect:    detect,
		statuses:  statuses,
		queue:     queue,
		conflicts: conflicts,
		domain:    domain,
		notifier:  notifier,
		locks:     locks,
		validator: validator,
		cfg:       cfg,
		logger:    logger,
	}
}

// changeOutcome is the per-record verdict of the pipeline.
type changeOutcome struct {
	applied  bool
	conflict *models.SyncConflict
	failure  *models.RecordFailure
}

// RunSession implements [OrchestratorService].
func (s *orchestratorService) RunSession(ctx context.Context, userID int64, request models.SessionRequest) (models.SessionResult, error) {
	log := logger.FromContext(ctx)

	if userID <= 0 {
		return models.SessionResult{}, ErrNoUserID
	}

	if err := s.validator.Validate(ctx, request); err != nil {
		return models.SessionResult{}, fmt.Errorf("%w: %w", ErrMalformedChange, err)
	}

	if !s.locks.Acquire(userID) {
		log.Warn().
			Str("func", "orchestratorService.RunSession").
			Int64("user_id", userID).
			Msg("rejecting concurrent sync session")
		return models.SessionResult{}, ErrSessionInProgress
	}
	defer s.locks.Release(userID)

	ingested, err := s.ingest.Ingest(ctx, userID, request.Changes)
	if err != nil {
		return models.SessionResult{}, err
	}

	claimed, err := s.queue.ClaimBatch(ctx, userID, s.cfg.QueueBatchSize)
	if err != nil {
		return s.abortSession(ctx, userID, fmt.Errorf("claiming queued mutations: %w", err))
	}

	total := len(ingested.Valid) + len(claimed)
	if _, err = s.statuses.BeginSession(ctx, userID, request.DeviceID, request.AppVersion, total); err != nil {
		return s.abortSession(ctx, userID, fmt.Errorf("entering syncing state: %w", err))
	}

	log.Info().
		Str("func", "orchestratorService.RunSession").
		Int64("user_id", userID).
		Int("submitted", len(request.Changes)).
		Int("valid", len(ingested.Valid)).
		Int("queued", len(claimed)).
		Msg("sync session started")

	result := models.SessionResult{Failed: ingested.Rejected}
	processed := 0

	// Submitted changes first, strictly in submission order.
	for _, change := range ingested.Valid {
		outcome, processErr := s.processChange(ctx, userID, change)
		if processErr != nil {
			return s.abortSession(ctx, userID, processErr)
		}

		s.tally(&result, outcome)
		processed++
		s.advance(ctx, userID, processed)
	}

	// Then the offline queue, oldest first.
	for _, item := range claimed {
		outcome, processErr := s.processChange(ctx, userID, queueItemChange(item))
		if processErr != nil {
			return s.abortSession(ctx, userID, processErr)
		}

		if markErr := s.settleQueueItem(ctx, item, outcome); markErr != nil {
			return s.abortSession(ctx, userID, markErr)
		}

		s.tally(&result, outcome)
		processed++
		s.advance(ctx, userID, processed)
	}

	pendingQueued, err := s.queue.CountPending(ctx, userID)
	if err != nil {
		return s.abortSession(ctx, userID, fmt.Errorf("counting queued mutations: %w", err))
	}

	pendingConflicts, err := s.conflicts.CountPending(ctx, userID)
	if err != nil {
		return s.abortSession(ctx, userID, fmt.Errorf("counting pending conflicts: %w", err))
	}
	result.RemainingPending = pendingConflicts

	status, err := s.statuses.CompleteSession(ctx, userID, pendingQueued)
	if err != nil {
		return s.abortSession(ctx, userID, fmt.Errorf("completing session: %w", err))
	}
	result.Status = status

	if notifyErr := s.notifier.NotifySyncCompleted(ctx, userID, result); notifyErr != nil {
		log.Warn().
			Str("func", "orchestratorService.RunSession").
			Int64("user_id", userID).
			Err(notifyErr).
			Msg("sync completion notification failed, continuing")
	}

	log.Info().
		Str("func", "orchestratorService.RunSession").
		Int64("user_id", userID).
		Int("applied", result.Applied).
		Int("conflicts", result.Conflicts).
		Int("failed", len(result.Failed)).
		Int("remaining_pending", result.RemainingPending).
		Msg("sync session completed")

	return result, nil
}

// processChange classifies one record and applies it when clean. A returned
// error is an infrastructure failure that aborts the whole session;
// per-record failures come back inside the outcome.
func (s *orchestratorService) processChange(ctx context.Context, userID int64, change models.ChangeRecord) (changeOutcome, error) {
	if err := ctx.Err(); err != nil {
		return changeOutcome{}, fmt.Errorf("session canceled: %w", err)
	}

	classification, serverVersion, err := s.detect.Classify(ctx, userID, change)
	if err != nil {
		return changeOutcome{}, fmt.Errorf("classifying %s/%s: %w", change.EntityType, change.EntityID, err)
	}

	if classification == models.Conflict {
		conflict, recordErr := s.detect.RecordConflict(ctx, userID, change, serverVersion)
		if recordErr != nil {
			return changeOutcome{}, fmt.Errorf("recording conflict for %s/%s: %w", change.EntityType, change.EntityID, recordErr)
		}
		return changeOutcome{conflict: &conflict}, nil
	}

	return s.applyClean(ctx, userID, change)
}

// applyClean pushes one clean record to the domain service with bounded
// exponential backoff. A version conflict raised by the apply itself means a
// concurrent writer moved the entity between classification and apply; the
// record is reclassified as a conflict rather than a failure.
func (s *orchestratorService) applyClean(ctx context.Context, userID int64, change models.ChangeRecord) (changeOutcome, error) {
	log := logger.FromContext(ctx)

	var attempts uint64
	if s.cfg.ApplyRetryAttempts > 1 {
		attempts = uint64(s.cfg.ApplyRetryAttempts - 1)
	}

	backoff := retry.WithMaxRetries(attempts, retry.NewExponential(s.cfg.ApplyRetryBaseDelay))
	applyErr := retry.Do(ctx, backoff, func(ctx context.Context) error {
		_, err := s.domain.ApplyChange(ctx, userID, change)
		if err == nil {
			return nil
		}
		if isTransientApplyError(err) {
			log.Debug().
				Str("func", "orchestratorService.applyClean").
				Int64("user_id", userID).
				Str("entity_type", change.EntityType).
				Str("entity_id", change.EntityID).
				Err(err).
				Msg("transient apply failure, retrying")
			return retry.RetryableError(err)
		}
		return err
	})

	if applyErr == nil {
		return changeOutcome{applied: true}, nil
	}

	if ctx.Err() != nil {
		return changeOutcome{}, fmt.Errorf("session canceled: %w", ctx.Err())
	}

	if errors.Is(applyErr, adapter.ErrVersionConflict) {
		serverVersion, versionErr := s.domain.CurrentVersion(ctx, userID, change.EntityType, change.EntityID)
		if versionErr != nil {
			return changeOutcome{}, fmt.Errorf("refreshing version after apply race on %s/%s: %w", change.EntityType, change.EntityID, versionErr)
		}

		conflict, recordErr := s.detect.RecordConflict(ctx, userID, change, serverVersion)
		if recordErr != nil {
			return changeOutcome{}, fmt.Errorf("recording conflict for %s/%s: %w", change.EntityType, change.EntityID, recordErr)
		}
		return changeOutcome{conflict: &conflict}, nil
	}

	log.Error().
		Str("func", "orchestratorService.applyClean").
		Int64("user_id", userID).
		Str("entity_type", change.EntityType).
		Str("entity_id", change.EntityID).
		Err(applyErr).
		Msg("apply retries exhausted")

	return changeOutcome{failure: &models.RecordFailure{
		EntityType: change.EntityType,
		EntityID:   change.EntityID,
		Kind:       models.ApplyFailed,
		Reason:     applyErr.Error(),
	}}, nil
}

// isTransientApplyError reports whether an apply failure is worth retrying.
// Client-caused rejections are permanent; upstream hiccups and transport
// failures are not.
func isTransientApplyError(err error) bool {
	switch {
	case errors.Is(err, adapter.ErrVersionConflict),
		errors.Is(err, adapter.ErrBadRequest),
		errors.Is(err, adapter.ErrUnauthorized),
		errors.Is(err, adapter.ErrForbidden),
		errors.Is(err, adapter.ErrNotFound):
		return false
	default:
		return true
	}
}

// settleQueueItem records the pipeline verdict on the claimed queue row.
func (s *orchestratorService) settleQueueItem(ctx context.Context, item models.QueueItem, outcome changeOutcome) error {
	switch {
	case outcome.applied:
		return s.queue.MarkCompleted(ctx, item.UserID, item.ID)
	case outcome.conflict != nil:
		cause := fmt.Sprintf("version conflict against server version %d", outcome.conflict.ServerVersion)
		return s.queue.MarkConflict(ctx, item.UserID, item.ID, cause)
	case outcome.failure != nil:
		_, _, err := s.queue.MarkFailed(ctx, item.UserID, item.ID, outcome.failure.Reason, s.cfg.ApplyRetryAttempts)
		return err
	default:
		return nil
	}
}

// tally folds one outcome into the session result.
func (s *orchestratorService) tally(result *models.SessionResult, outcome changeOutcome) {
	switch {
	case outcome.applied:
		result.Applied++
	case outcome.conflict != nil:
		result.Conflicts++
	case outcome.failure != nil:
		result.Failed = append(result.Failed, *outcome.failure)
	}
}

// advance reports classification progress; a failed progress write is not
// worth aborting a session over.
func (s *orchestratorService) advance(ctx context.Context, userID int64, processed int) {
	if err := s.statuses.UpdateProgress(ctx, userID, processed); err != nil {
		logger.FromContext(ctx).Warn().
			Str("func", "orchestratorService.advance").
			Int64("user_id", userID).
			Int("processed", processed).
			Err(err).
			Msg("failed to record sync progress, continuing")
	}
}

// abortSession releases claimed queue items, parks the user in ERROR and
// surfaces the infrastructure failure to the caller. Cleanup runs on a
// detached context so a client disconnect still leaves the status row in
// ERROR, with the plain "aborted" message rather than the transport error.
func (s *orchestratorService) abortSession(ctx context.Context, userID int64, cause error) (models.SessionResult, error) {
	log := logger.FromContext(ctx)
	cleanupCtx := context.WithoutCancel(ctx)

	message := cause.Error()
	if errors.Is(cause, context.Canceled) || errors.Is(cause, context.DeadlineExceeded) {
		message = "aborted"
	}

	if releaseErr := s.queue.Release(cleanupCtx, userID); releaseErr != nil {
		log.Err(releaseErr).
			Str("func", "orchestratorService.abortSession").
			Int64("user_id", userID).
			Msg("failed to release claimed queue items")
	}

	if _, failErr := s.statuses.FailSession(cleanupCtx, userID, message); failErr != nil {
		log.Err(failErr).
			Str("func", "orchestratorService.abortSession").
			Int64("user_id", userID).
			Msg("failed to record session failure")
	}

	log.Error().
		Str("func", "orchestratorService.abortSession").
		Int64("user_id", userID).
		Err(cause).
		Msg("sync session aborted")

	return models.SessionResult{}, cause
}

// queueItemChange converts a claimed offline mutation into the change form
// consumed by the pipeline.
func queueItemChange(item models.QueueItem) models.ChangeRecord {
	return models.ChangeRecord{
		EntityType:     item.EntityType,
		EntityID:       item.EntityID,
		LocalVersion:   item.LocalVersion,
		Payload:        item.Payload,
		LocalTimestamp: item.ClientTimestamp,
		DeviceID:       item.DeviceID,
	}
}

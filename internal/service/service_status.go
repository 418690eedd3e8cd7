package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/farmassist/farm-sync/internal/logger"
	"github.com/farmassist/farm-sync/internal/store"
	"github.com/farmassist/farm-sync/models"
	"github.com/sethvargo/go-retry"
)

// statusMutationRetries bounds how many times a read-modify-write cycle is
// repeated when a concurrent writer wins the optimistic version race.
const statusMutationRetries = 3

// statusService owns the per-user sync status aggregate. Every mutation is a
// read-modify-write cycle: load the row, apply a transition, save under the
// aggregate's optimistic version, and retry the whole cycle on a lost race.
type statusService struct {
	statuses store.SyncStatusRepository
	queue    store.QueueRepository

	logger *logger.Logger
}

// NewStatusService constructs a [StatusService].
func NewStatusService(statuses store.SyncStatusRepository, queue store.QueueRepository, logger *logger.Logger) StatusService {
	return &statusService{
		statuses: statuses,
		queue:    queue,
		logger:   logger,
	}
}

// mutate runs one optimistic read-modify-write cycle against the user's
// status row. The transition func receives the freshly loaded aggregate and
// edits it in place; a version race reloads and reapplies the transition.
func (s *statusService) mutate(ctx context.Context, userID int64, transition func(*models.SyncStatus)) (models.SyncStatus, error) {
	log := logger.FromContext(ctx)

	if userID <= 0 {
		return models.SyncStatus{}, ErrNoUserID
	}

	var saved models.SyncStatus

	backoff := retry.WithMaxRetries(statusMutationRetries, retry.NewConstant(10*time.Millisecond))
	err := retry.Do(ctx, backoff, func(ctx context.Context) error {
		status, getErr := s.statuses.GetOrCreate(ctx, userID, "", "")
		if getErr != nil {
			return getErr
		}

		transition(&status)
		status.RecomputeProgress()

		var saveErr error
		saved, saveErr = s.statuses.Save(ctx, status)
		if errors.Is(saveErr, store.ErrVersionConflict) {
			log.Debug().
				Str("func", "statusService.mutate").
				Int64("user_id", userID).
				Msg("lost status version race, retrying transition")
			return retry.RetryableError(saveErr)
		}

		return saveErr
	})
	if err != nil {
		return models.SyncStatus{}, fmt.Errorf("updating sync status: %w", err)
	}

	return saved, nil
}

// GetStatus implements [StatusService]. The pending count is refreshed from
// the offline queue so the response reflects enqueued-but-unsynced work even
// when no session has run since the last enqueue.
func (s *statusService) GetStatus(ctx context.Context, userID int64) (models.SyncStatusResponse, error) {
	log := logger.FromContext(ctx)

	if userID <= 0 {
		return models.SyncStatusResponse{}, ErrNoUserID
	}

	status, err := s.statuses.GetOrCreate(ctx, userID, "", "")
	if err != nil {
		return models.SyncStatusResponse{}, err
	}

	pending, err := s.queue.CountPending(ctx, userID)
	if err != nil {
		log.Warn().
			Str("func", "statusService.GetStatus").
			Int64("user_id", userID).
			Err(err).
			Msg("failed to refresh pending count, using stored value")
	} else {
		status.PendingChanges = pending
	}

	response := models.SyncStatusResponse{
		SyncStatus:    status,
		StatusMessage: statusMessage(status),
	}

	if status.IsOffline && status.OfflineSince != nil {
		seconds := int64(time.Since(*status.OfflineSince).Seconds())
		response.OfflineDurationSeconds = &seconds
	}

	return response, nil
}

// statusMessage derives the one-line human summary shown in client UIs.
func statusMessage(status models.SyncStatus) string {
	switch {
	case status.SyncState == models.StateSyncing:
		return fmt.Sprintf("Synchronizing: %d%% (%d of %d)", status.ProgressPercent, status.SyncingCount, status.TotalToSync)
	case status.IsOffline:
		if status.PendingChanges > 0 {
			return fmt.Sprintf("Working offline, %d changes waiting to sync", status.PendingChanges)
		}
		return "Working offline"
	case status.SyncState == models.StateError:
		if status.LastError != "" {
			return fmt.Sprintf("Last sync failed: %s", status.LastError)
		}
		return "Last sync failed"
	case status.LastSyncAt != nil:
		return fmt.Sprintf("Up to date, last synced at %s", status.LastSyncAt.UTC().Format(time.RFC3339))
	default:
		return "Not synced yet"
	}
}

// EnterOffline implements [StatusService]. Repeat calls keep the original
// offline timestamp so the reported offline duration stays truthful.
func (s *statusService) EnterOffline(ctx context.Context, userID int64) (models.SyncStatus, error) {
	return s.mutate(ctx, userID, func(status *models.SyncStatus) {
		if !status.IsOffline {
			now := time.Now()
			status.OfflineSince = &now
		}
		status.IsOffline = true
		if status.SyncState != models.StateSyncing {
			status.SyncState = models.StateOffline
		}
	})
}

// ExitOffline implements [StatusService].
func (s *statusService) ExitOffline(ctx context.Context, userID int64) (models.SyncStatus, error) {
	return s.mutate(ctx, userID, func(status *models.SyncStatus) {
		status.IsOffline = false
		status.OfflineSince = nil
		if status.SyncState == models.StateOffline {
			status.SyncState = models.StateIdle
		}
	})
}

// BeginSession implements [StatusService]. Entering SYNCING clears the last
// error: an ERROR state is not terminal, the next session gets a fresh start.
func (s *statusService) BeginSession(ctx context.Context, userID int64, deviceID, appVersion string, total int) (models.SyncStatus, error) {
	if _, err := s.statuses.GetOrCreate(ctx, userID, deviceID, appVersion); err != nil {
		return models.SyncStatus{}, err
	}

	return s.mutate(ctx, userID, func(status *models.SyncStatus) {
		status.SyncState = models.StateSyncing
		status.LastError = ""
		status.SyncingCount = 0
		status.TotalToSync = total
		if deviceID != "" {
			status.DeviceID = deviceID
		}
		if appVersion != "" {
			status.AppVersion = appVersion
		}
	})
}

// UpdateProgress implements [StatusService].
func (s *statusService) UpdateProgress(ctx context.Context, userID int64, processed int) error {
	_, err := s.mutate(ctx, userID, func(status *models.SyncStatus) {
		status.SyncingCount = processed
	})
	return err
}

// CompleteSession implements [StatusService]. The state returns to IDLE even
// when the user is still offline: IsOffline is an independent flag that only
// exitOffline clears, and the next EnterOffline/GetStatus still reports it.
func (s *statusService) CompleteSession(ctx context.Context, userID int64, pendingChanges int) (models.SyncStatus, error) {
	return s.mutate(ctx, userID, func(status *models.SyncStatus) {
		now := time.Now()
		status.SyncState = models.StateIdle
		status.LastSyncAt = &now
		status.LastError = ""
		status.SyncingCount = 0
		status.TotalToSync = 0
		status.PendingChanges = pendingChanges
	})
}

// FailSession implements [StatusService]. The progress counters are left in
// place so a failed session still shows how far it got; only the derived
// percentage resets to 0 with the state change.
func (s *statusService) FailSession(ctx context.Context, userID int64, cause string) (models.SyncStatus, error) {
	return s.mutate(ctx, userID, func(status *models.SyncStatus) {
		status.SyncState = models.StateError
		status.LastError = cause
	})
}

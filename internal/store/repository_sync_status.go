package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/farmassist/farm-sync/internal/logger"
	"github.com/farmassist/farm-sync/models"
)

// syncStatusRepository is the PostgreSQL-backed implementation of
// [SyncStatusRepository]. It owns the "sync_status" table: one row per user,
// created lazily on first contact and updated as a whole aggregate under the
// status_version optimistic lock.
//
// All methods obtain a context-scoped logger via [logger.FromContext] for
// structured, request-level tracing of database interactions.
type syncStatusRepository struct {
	*DB
	logger *logger.Logger
}

// NewSyncStatusRepository constructs a [SyncStatusRepository] backed by the
// provided database connection and logger.
func NewSyncStatusRepository(db *DB, logger *logger.Logger) SyncStatusRepository {
	logger.Debug().Msg("creating sync status repository")
	return &syncStatusRepository{
		DB:     db,
		logger: logger,
	}
}

// GetOrCreate returns the user's status record, inserting the default IDLE
// row if the user has never synchronized before. Insert races between two
// first-contact sessions are harmless: ON CONFLICT DO NOTHING lets the
// loser fall through to reading the winner's row.
func (r *syncStatusRepository) GetOrCreate(ctx context.Context, userID int64, deviceID, appVersion string) (models.SyncStatus, error) {
	log := logger.FromContext(ctx)

	status, err := r.Get(ctx, userID)
	if err == nil {
		return status, nil
	}
	if !errors.Is(err, ErrSyncStatusNotFound) {
		return models.SyncStatus{}, err
	}

	if _, execErr := r.DB.ExecContext(ctx, createSyncStatus, userID, models.StateIdle, deviceID, appVersion); execErr != nil {
		log.Err(execErr).
			Str("func", "syncStatusRepository.GetOrCreate").
			Int64("user_id", userID).
			Msg("failed to insert default sync status row")
		return models.SyncStatus{}, fmt.Errorf("%w: %w", ErrExecutingStatement, execErr)
	}

	log.Info().
		Str("func", "syncStatusRepository.GetOrCreate").
		Int64("user_id", userID).
		Msg("created default sync status row")

	return r.Get(ctx, userID)
}

// Get returns the user's status record or [ErrSyncStatusNotFound].
func (r *syncStatusRepository) Get(ctx context.Context, userID int64) (models.SyncStatus, error) {
	log := logger.FromContext(ctx)

	var status models.SyncStatus
	row := r.DB.QueryRowContext(ctx, getSyncStatus, userID)

	err := row.Scan(
		&status.UserID,
		&status.SyncState,
		&status.LastSyncAt,
		&status.PendingChanges,
		&status.SyncingCount,
		&status.TotalToSync,
		&status.ProgressPercent,
		&status.IsOffline,
		&status.OfflineSince,
		&status.LastError,
		&status.DeviceID,
		&status.AppVersion,
		&status.StatusVersion,
	)
	if errors.Is(err, sql.ErrNoRows) {
		return models.SyncStatus{}, ErrSyncStatusNotFound
	}
	if err != nil {
		log.Err(err).
			Str("func", "syncStatusRepository.Get").
			Int64("user_id", userID).
			Msg("failed to scan sync status row")
		return models.SyncStatus{}, fmt.Errorf("%w: %w", ErrScanningRow, err)
	}

	return status, nil
}

// Save writes the whole aggregate back under the status_version optimistic
// lock. The CTE query reports two nullable columns: a NULL current_db_version
// means the row does not exist, a NULL updated_id with a non-NULL version
// means a concurrent writer incremented the version first.
func (r *syncStatusRepository) Save(ctx context.Context, status models.SyncStatus) (models.SyncStatus, error) {
	log := logger.FromContext(ctx)

	var updatedID *int64
	var currentDBVersion *int64

	err := r.DB.QueryRowContext(ctx, saveSyncStatus,
		status.UserID,
		status.SyncState,
		status.LastSyncAt,
		status.PendingChanges,
		status.SyncingCount,
		status.TotalToSync,
		status.ProgressPercent,
		status.IsOffline,
		status.OfflineSince,
		status.LastError,
		status.DeviceID,
		status.AppVersion,
		status.StatusVersion,
	).Scan(&updatedID, &currentDBVersion)
	if err != nil {
		log.Err(err).
			Str("func", "syncStatusRepository.Save").
			Int64("user_id", status.UserID).
			Msg("failed to execute sync status update query")
		return models.SyncStatus{}, fmt.Errorf("%w: %w", ErrExecutingQuery, err)
	}

	// not found: target_record empty -> both NULL
	if currentDBVersion == nil {
		log.Warn().
			Str("func", "syncStatusRepository.Save").
			Int64("user_id", status.UserID).
			Msg("sync status row not found")
		return models.SyncStatus{}, ErrSyncStatusNotFound
	}

	// found but not updated -> version mismatch
	if updatedID == nil {
		log.Error().
			Str("func", "syncStatusRepository.Save").
			Int64("user_id", status.UserID).
			Int64("db_version", *currentDBVersion).
			Int64("provided_version", status.StatusVersion).
			Msg("optimistic lock failed: status version mismatch")
		return models.SyncStatus{}, ErrVersionConflict
	}

	status.StatusVersion++

	return status, nil
}

package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	sq "github.com/Masterminds/squirrel"
	"github.com/farmassist/farm-sync/internal/logger"
	"github.com/farmassist/farm-sync/models"
)

// conflictRepository is the PostgreSQL-backed implementation of
// [ConflictRepository]. It owns the "sync_conflicts" table. The partial
// unique index on (user_id, entity_type, entity_id) WHERE status = 'PENDING'
// is what enforces the one-open-conflict-per-key invariant; the repository
// only has to route every divergence through [upsertPendingConflict].
type conflictRepository struct {
	*DB
	logger *logger.Logger
}

// NewConflictRepository constructs a [ConflictRepository] backed by the
// provided database connection and logger.
func NewConflictRepository(db *DB, logger *logger.Logger) ConflictRepository {
	logger.Debug().Msg("creating conflict repository")
	return &conflictRepository{
		DB:     db,
		logger: logger,
	}
}

// UpsertPending records a divergence. When a PENDING conflict already exists
// for the same (user, entity type, entity id), the row is refreshed in place
// with the latest losing payload and versions; its identifier is kept.
func (r *conflictRepository) UpsertPending(ctx context.Context, conflict models.SyncConflict) (models.SyncConflict, error) {
	log := logger.FromContext(ctx)

	row := r.DB.QueryRowContext(ctx, upsertPendingConflict,
		conflict.ID,
		conflict.UserID,
		conflict.EntityType,
		conflict.EntityID,
		conflict.LocalPayload,
		conflict.LocalVersion,
		conflict.ServerVersion,
		conflict.LocalTimestamp,
		conflict.DeviceID,
	)

	if err := row.Scan(&conflict.ID, &conflict.DetectedAt); err != nil {
		log.Err(err).
			Str("func", "conflictRepository.UpsertPending").
			Int64("user_id", conflict.UserID).
			Str("entity_type", conflict.EntityType).
			Str("entity_id", conflict.EntityID).
			Msg("failed to upsert pending conflict")
		return models.SyncConflict{}, fmt.Errorf("%w: %w", ErrExecutingStatement, err)
	}

	conflict.Status = models.ConflictPending
	conflict.ResolutionStrategy = ""
	conflict.ResolvedData = nil
	conflict.ResolvedBy = ""
	conflict.ResolvedAt = nil

	log.Info().
		Str("func", "conflictRepository.UpsertPending").
		Int64("user_id", conflict.UserID).
		Str("conflict_id", conflict.ID).
		Str("entity_type", conflict.EntityType).
		Str("entity_id", conflict.EntityID).
		Int64("local_version", conflict.LocalVersion).
		Int64("server_version", conflict.ServerVersion).
		Msg("recorded pending conflict")

	return conflict, nil
}

// Get returns one conflict by id or [ErrConflictNotFound].
func (r *conflictRepository) Get(ctx context.Context, userID int64, conflictID string) (models.SyncConflict, error) {
	log := logger.FromContext(ctx)

	row := r.DB.QueryRowContext(ctx, getConflict, conflictID, userID)

	conflict, err := scanConflict(row.Scan)
	if errors.Is(err, sql.ErrNoRows) {
		return models.SyncConflict{}, ErrConflictNotFound
	}
	if err != nil {
		log.Err(err).
			Str("func", "conflictRepository.Get").
			Int64("user_id", userID).
			Str("conflict_id", conflictID).
			Msg("failed to scan conflict row")
		return models.SyncConflict{}, fmt.Errorf("%w: %w", ErrScanningRow, err)
	}

	return conflict, nil
}

// List returns the user's conflicts matching the filter, most recently
// detected first. The query is assembled with squirrel because every filter
// field is optional.
func (r *conflictRepository) List(ctx context.Context, filter models.ConflictFilter) ([]models.SyncConflict, error) {
	log := logger.FromContext(ctx)

	builder := sq.Select(conflictColumns).
		From("sync_conflicts").
		Where(sq.Eq{"user_id": filter.UserID}).
		OrderBy("detected_at DESC", "id").
		PlaceholderFormat(sq.Dollar)

	if filter.Status != "" {
		builder = builder.Where(sq.Eq{"status": filter.Status})
	}
	if filter.EntityType != "" {
		builder = builder.Where(sq.Eq{"entity_type": filter.EntityType})
	}
	if filter.Limit > 0 {
		builder = builder.Limit(filter.Limit)
	}

	query, args, err := builder.ToSql()
	if err != nil {
		log.Err(err).
			Str("func", "conflictRepository.List").
			Int64("user_id", filter.UserID).
			Msg("failed to build conflict list query")
		return nil, fmt.Errorf("%w: %w", ErrBuildingSQLQuery, err)
	}

	rows, err := r.DB.QueryContext(ctx, query, args...)
	if err != nil {
		log.Err(err).
			Str("func", "conflictRepository.List").
			Int64("user_id", filter.UserID).
			Msg("failed to execute conflict list query")
		return nil, fmt.Errorf("%w: %w", ErrExecutingQuery, err)
	}
	defer rows.Close()

	conflicts := make([]models.SyncConflict, 0, 20)

	for rows.Next() {
		conflict, scanErr := scanConflict(rows.Scan)
		if scanErr != nil {
			log.Err(scanErr).
				Str("func", "conflictRepository.List").
				Int64("user_id", filter.UserID).
				Msg("failed to scan conflict row")
			return nil, fmt.Errorf("%w: %w", ErrScanningRow, scanErr)
		}
		conflicts = append(conflicts, conflict)
	}

	if rowsErr := rows.Err(); rowsErr != nil {
		log.Err(rowsErr).
			Str("func", "conflictRepository.List").
			Int64("user_id", filter.UserID).
			Msg("error occurred during rows iteration")
		return nil, fmt.Errorf("%w: %w", ErrScanningRows, rowsErr)
	}

	return conflicts, nil
}

// CountPending returns the number of open conflicts for the user.
func (r *conflictRepository) CountPending(ctx context.Context, userID int64) (int, error) {
	log := logger.FromContext(ctx)

	query, args, err := sq.Select("COUNT(*)").
		From("sync_conflicts").
		Where(sq.Eq{"user_id": userID, "status": models.ConflictPending}).
		PlaceholderFormat(sq.Dollar).
		ToSql()
	if err != nil {
		log.Err(err).
			Str("func", "conflictRepository.CountPending").
			Int64("user_id", userID).
			Msg("failed to build pending conflict count query")
		return 0, fmt.Errorf("%w: %w", ErrBuildingSQLQuery, err)
	}

	var count int
	if err = r.DB.QueryRowContext(ctx, query, args...).Scan(&count); err != nil {
		log.Err(err).
			Str("func", "conflictRepository.CountPending").
			Int64("user_id", userID).
			Msg("failed to count pending conflicts")
		return 0, fmt.Errorf("%w: %w", ErrExecutingQuery, err)
	}

	return count, nil
}

// Resolve closes a PENDING conflict with the given terminal status, strategy
// and winning payload. The CTE query reports two nullable columns: a NULL
// current_status means no such conflict exists, a NULL updated_id with a
// non-NULL status means the conflict was already closed.
func (r *conflictRepository) Resolve(ctx context.Context, userID int64, conflictID string, status models.ConflictStatus, strategy models.ResolutionStrategy, resolvedData []byte, resolvedBy string) (models.SyncConflict, error) {
	log := logger.FromContext(ctx)

	var updatedID *string
	var currentStatus *string
	var resolvedAt *time.Time

	err := r.DB.QueryRowContext(ctx, resolveConflict,
		conflictID,
		userID,
		status,
		strategy,
		resolvedData,
		resolvedBy,
	).Scan(&updatedID, &currentStatus, &resolvedAt)
	if err != nil {
		log.Err(err).
			Str("func", "conflictRepository.Resolve").
			Int64("user_id", userID).
			Str("conflict_id", conflictID).
			Msg("failed to execute conflict resolution query")
		return models.SyncConflict{}, fmt.Errorf("%w: %w", ErrExecutingQuery, err)
	}

	// not found: target_record empty -> all NULL
	if currentStatus == nil {
		log.Warn().
			Str("func", "conflictRepository.Resolve").
			Int64("user_id", userID).
			Str("conflict_id", conflictID).
			Msg("conflict not found")
		return models.SyncConflict{}, ErrConflictNotFound
	}

	// found but not updated -> no longer PENDING
	if updatedID == nil {
		log.Warn().
			Str("func", "conflictRepository.Resolve").
			Int64("user_id", userID).
			Str("conflict_id", conflictID).
			Str("current_status", *currentStatus).
			Msg("conflict is already closed")
		return models.SyncConflict{}, ErrConflictAlreadyResolved
	}

	log.Info().
		Str("func", "conflictRepository.Resolve").
		Int64("user_id", userID).
		Str("conflict_id", conflictID).
		Str("status", string(status)).
		Str("strategy", string(strategy)).
		Msg("resolved conflict")

	return r.Get(ctx, userID, conflictID)
}

// PurgeResolvedBefore deletes closed conflicts resolved before the cutoff.
func (r *conflictRepository) PurgeResolvedBefore(ctx context.Context, cutoff time.Time) (int64, error) {
	log := logger.FromContext(ctx)

	result, err := r.DB.ExecContext(ctx, purgeResolvedConflicts, cutoff)
	if err != nil {
		log.Err(err).
			Str("func", "conflictRepository.PurgeResolvedBefore").
			Time("cutoff", cutoff).
			Msg("failed to purge resolved conflicts")
		return 0, fmt.Errorf("%w: %w", ErrExecutingStatement, err)
	}

	purged, _ := result.RowsAffected()

	return purged, nil
}

// scanConflict reads one full sync_conflicts row through the provided scan
// function, converting nullable columns into their model representations.
func scanConflict(scan func(dest ...any) error) (models.SyncConflict, error) {
	var conflict models.SyncConflict
	var strategy sql.NullString
	var resolvedBy sql.NullString

	err := scan(
		&conflict.ID,
		&conflict.UserID,
		&conflict.EntityType,
		&conflict.EntityID,
		&conflict.LocalPayload,
		&conflict.LocalVersion,
		&conflict.ServerVersion,
		&conflict.LocalTimestamp,
		&conflict.DeviceID,
		&conflict.Status,
		&strategy,
		&conflict.ResolvedData,
		&resolvedBy,
		&conflict.DetectedAt,
		&conflict.ResolvedAt,
	)
	if err != nil {
		return models.SyncConflict{}, err
	}

	if strategy.Valid {
		conflict.ResolutionStrategy = models.ResolutionStrategy(strategy.String)
	}
	if resolvedBy.Valid {
		conflict.ResolvedBy = resolvedBy.String
	}

	return conflict, nil
}

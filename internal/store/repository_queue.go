package store

import (
	"context"
	"fmt"

	sq "github.com/Masterminds/squirrel"
	"github.com/farmassist/farm-sync/internal/logger"
	"github.com/farmassist/farm-sync/models"
)

// queueRepository is the PostgreSQL-backed implementation of
// [QueueRepository]. It owns the "sync_queue" table holding offline
// mutations drained in FIFO order (created_at, then id) by sync sessions.
type queueRepository struct {
	*DB
	logger *logger.Logger
}

// NewQueueRepository constructs a [QueueRepository] backed by the provided
// database connection and logger.
func NewQueueRepository(db *DB, logger *logger.Logger) QueueRepository {
	logger.Debug().Msg("creating queue repository")
	return &queueRepository{
		DB:     db,
		logger: logger,
	}
}

// Enqueue appends one offline mutation in PENDING state.
func (r *queueRepository) Enqueue(ctx context.Context, item models.QueueItem) (models.QueueItem, error) {
	log := logger.FromContext(ctx)

	row := r.DB.QueryRowContext(ctx, enqueueItem,
		item.UserID,
		item.EntityType,
		item.EntityID,
		item.Operation,
		item.LocalVersion,
		item.Payload,
		item.DeviceID,
		item.ClientTimestamp,
	)

	if err := row.Scan(&item.ID, &item.CreatedAt); err != nil {
		log.Err(err).
			Str("func", "queueRepository.Enqueue").
			Int64("user_id", item.UserID).
			Str("entity_type", item.EntityType).
			Str("entity_id", item.EntityID).
			Msg("failed to enqueue offline mutation")
		return models.QueueItem{}, fmt.Errorf("%w: %w", ErrExecutingStatement, err)
	}

	item.Status = models.QueuePending
	item.RetryCount = 0

	log.Info().
		Str("func", "queueRepository.Enqueue").
		Int64("user_id", item.UserID).
		Int64("item_id", item.ID).
		Str("operation", string(item.Operation)).
		Msg("enqueued offline mutation")

	return item, nil
}

// List returns the user's queue items matching the filter, oldest first.
func (r *queueRepository) List(ctx context.Context, filter models.QueueFilter) ([]models.QueueItem, error) {
	log := logger.FromContext(ctx)

	builder := sq.Select(queueColumns).
		From("sync_queue").
		Where(sq.Eq{"user_id": filter.UserID}).
		OrderBy("created_at", "id").
		PlaceholderFormat(sq.Dollar)

	if filter.Status != "" {
		builder = builder.Where(sq.Eq{"status": filter.Status})
	}
	if filter.Limit > 0 {
		builder = builder.Limit(filter.Limit)
	}

	query, args, err := builder.ToSql()
	if err != nil {
		log.Err(err).
			Str("func", "queueRepository.List").
			Int64("user_id", filter.UserID).
			Msg("failed to build queue list query")
		return nil, fmt.Errorf("%w: %w", ErrBuildingSQLQuery, err)
	}

	rows, err := r.DB.QueryContext(ctx, query, args...)
	if err != nil {
		log.Err(err).
			Str("func", "queueRepository.List").
			Int64("user_id", filter.UserID).
			Msg("failed to execute queue list query")
		return nil, fmt.Errorf("%w: %w", ErrExecutingQuery, err)
	}
	defer rows.Close()

	items := make([]models.QueueItem, 0, 20)

	for rows.Next() {
		var item models.QueueItem

		scanErr := rows.Scan(
			&item.ID,
			&item.UserID,
			&item.EntityType,
			&item.EntityID,
			&item.Operation,
			&item.LocalVersion,
			&item.Payload,
			&item.Status,
			&item.RetryCount,
			&item.LastError,
			&item.DeviceID,
			&item.ClientTimestamp,
			&item.CreatedAt,
			&item.ProcessedAt,
		)
		if scanErr != nil {
			log.Err(scanErr).
				Str("func", "queueRepository.List").
				Int64("user_id", filter.UserID).
				Msg("failed to scan queue row")
			return nil, fmt.Errorf("%w: %w", ErrScanningRow, scanErr)
		}

		items = append(items, item)
	}

	if rowsErr := rows.Err(); rowsErr != nil {
		log.Err(rowsErr).
			Str("func", "queueRepository.List").
			Int64("user_id", filter.UserID).
			Msg("error occurred during rows iteration")
		return nil, fmt.Errorf("%w: %w", ErrScanningRows, rowsErr)
	}

	return items, nil
}

// ClaimBatch atomically moves up to limit of the oldest PENDING items to
// IN_PROGRESS and returns them in FIFO order. SKIP LOCKED keeps concurrent
// claimers from blocking on each other.
func (r *queueRepository) ClaimBatch(ctx context.Context, userID int64, limit int) ([]models.QueueItem, error) {
	log := logger.FromContext(ctx)

	rows, err := r.DB.QueryContext(ctx, claimQueueBatch, userID, limit)
	if err != nil {
		log.Err(err).
			Str("func", "queueRepository.ClaimBatch").
			Int64("user_id", userID).
			Int("limit", limit).
			Msg("failed to claim queue batch")
		return nil, fmt.Errorf("%w: %w", ErrExecutingQuery, err)
	}
	defer rows.Close()

	items := make([]models.QueueItem, 0, limit)

	for rows.Next() {
		var item models.QueueItem

		scanErr := rows.Scan(
			&item.ID,
			&item.UserID,
			&item.EntityType,
			&item.EntityID,
			&item.Operation,
			&item.LocalVersion,
			&item.Payload,
			&item.Status,
			&item.RetryCount,
			&item.LastError,
			&item.DeviceID,
			&item.ClientTimestamp,
			&item.CreatedAt,
			&item.ProcessedAt,
		)
		if scanErr != nil {
			log.Err(scanErr).
				Str("func", "queueRepository.ClaimBatch").
				Int64("user_id", userID).
				Msg("failed to scan claimed queue row")
			return nil, fmt.Errorf("%w: %w", ErrScanningRow, scanErr)
		}

		items = append(items, item)
	}

	if rowsErr := rows.Err(); rowsErr != nil {
		log.Err(rowsErr).
			Str("func", "queueRepository.ClaimBatch").
			Int64("user_id", userID).
			Msg("error occurred during rows iteration")
		return nil, fmt.Errorf("%w: %w", ErrScanningRows, rowsErr)
	}

	// UPDATE ... RETURNING does not guarantee row order, re-sort by FIFO key.
	for i := 1; i < len(items); i++ {
		for j := i; j > 0 && fifoBefore(items[j], items[j-1]); j-- {
			items[j], items[j-1] = items[j-1], items[j]
		}
	}

	log.Debug().
		Str("func", "queueRepository.ClaimBatch").
		Int64("user_id", userID).
		Int("claimed", len(items)).
		Msg("claimed queue batch")

	return items, nil
}

func fifoBefore(a, b models.QueueItem) bool {
	if a.CreatedAt.Equal(b.CreatedAt) {
		return a.ID < b.ID
	}
	return a.CreatedAt.Before(b.CreatedAt)
}

// MarkCompleted finalises a successfully applied item.
func (r *queueRepository) MarkCompleted(ctx context.Context, userID, itemID int64) error {
	return r.execOnItem(ctx, markQueueItemCompleted, "queueRepository.MarkCompleted", userID, itemID)
}

// MarkFailed bumps the retry counter. Until maxAttempts is reached the item
// goes back to PENDING for the next session; after that it parks as FAILED.
func (r *queueRepository) MarkFailed(ctx context.Context, userID, itemID int64, cause string, maxAttempts int) (models.QueueStatus, int, error) {
	log := logger.FromContext(ctx)

	var status models.QueueStatus
	var retryCount int

	err := r.DB.QueryRowContext(ctx, markQueueItemFailed, itemID, userID, cause, maxAttempts).Scan(&status, &retryCount)
	if err != nil {
		log.Err(err).
			Str("func", "queueRepository.MarkFailed").
			Int64("user_id", userID).
			Int64("item_id", itemID).
			Msg("failed to record queue item failure")
		return "", 0, fmt.Errorf("%w: %w", ErrExecutingQuery, err)
	}

	log.Warn().
		Str("func", "queueRepository.MarkFailed").
		Int64("user_id", userID).
		Int64("item_id", itemID).
		Str("status", string(status)).
		Int("retry_count", retryCount).
		Str("cause", cause).
		Msg("queue item apply failed")

	return status, retryCount, nil
}

// MarkConflict parks an item whose divergence produced a conflict row.
func (r *queueRepository) MarkConflict(ctx context.Context, userID, itemID int64, cause string) error {
	log := logger.FromContext(ctx)

	result, err := r.DB.ExecContext(ctx, markQueueItemConflict, itemID, userID, cause)
	if err != nil {
		log.Err(err).
			Str("func", "queueRepository.MarkConflict").
			Int64("user_id", userID).
			Int64("item_id", itemID).
			Msg("failed to park queue item as conflicted")
		return fmt.Errorf("%w: %w", ErrExecutingStatement, err)
	}

	if affected, _ := result.RowsAffected(); affected == 0 {
		return ErrQueueItemNotFound
	}

	return nil
}

// Release returns all of the user's IN_PROGRESS items to PENDING. Called
// when a session aborts so that claimed items are not stranded.
func (r *queueRepository) Release(ctx context.Context, userID int64) error {
	log := logger.FromContext(ctx)

	if _, err := r.DB.ExecContext(ctx, releaseQueueItems, userID); err != nil {
		log.Err(err).
			Str("func", "queueRepository.Release").
			Int64("user_id", userID).
			Msg("failed to release claimed queue items")
		return fmt.Errorf("%w: %w", ErrExecutingStatement, err)
	}

	return nil
}

// Delete removes one item or returns [ErrQueueItemNotFound].
func (r *queueRepository) Delete(ctx context.Context, userID, itemID int64) error {
	return r.execOnItem(ctx, deleteQueueItem, "queueRepository.Delete", userID, itemID)
}

// CountPending returns the number of PENDING items for the user.
func (r *queueRepository) CountPending(ctx context.Context, userID int64) (int, error) {
	log := logger.FromContext(ctx)

	var count int
	if err := r.DB.QueryRowContext(ctx, countPendingQueueItems, userID).Scan(&count); err != nil {
		log.Err(err).
			Str("func", "queueRepository.CountPending").
			Int64("user_id", userID).
			Msg("failed to count pending queue items")
		return 0, fmt.Errorf("%w: %w", ErrExecutingQuery, err)
	}

	return count, nil
}

// execOnItem runs a single-item DML statement and converts a zero-row
// result into [ErrQueueItemNotFound].
func (r *queueRepository) execOnItem(ctx context.Context, query, funcName string, userID, itemID int64) error {
	log := logger.FromContext(ctx)

	result, err := r.DB.ExecContext(ctx, query, itemID, userID)
	if err != nil {
		log.Err(err).
			Str("func", funcName).
			Int64("user_id", userID).
			Int64("item_id", itemID).
			Msg("failed to execute queue item statement")
		return fmt.Errorf("%w: %w", ErrExecutingStatement, err)
	}

	if affected, _ := result.RowsAffected(); affected == 0 {
		log.Warn().
			Str("func", funcName).
			Int64("user_id", userID).
			Int64("item_id", itemID).
			Msg("queue item not found")
		return ErrQueueItemNotFound
	}

	return nil
}

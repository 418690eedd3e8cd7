package store

import (
	"context"
	"time"

	"github.com/farmassist/farm-sync/models"
)

// SyncStatusRepository persists the single per-user sync status aggregate.
type SyncStatusRepository interface {
	// GetOrCreate returns the user's status row, lazily inserting the
	// default IDLE row on first contact.
	GetOrCreate(ctx context.Context, userID int64, deviceID, appVersion string) (models.SyncStatus, error)

	// Get returns the user's status row or [ErrSyncStatusNotFound].
	Get(ctx context.Context, userID int64) (models.SyncStatus, error)

	// Save writes the whole aggregate back, guarded by StatusVersion.
	// On success the returned status carries the incremented version.
	// Returns [ErrVersionConflict] when a concurrent writer won the race
	// and [ErrSyncStatusNotFound] when the row vanished.
	Save(ctx context.Context, status models.SyncStatus) (models.SyncStatus, error)
}

// ConflictRepository persists detected divergences and their resolutions.
type ConflictRepository interface {
	// UpsertPending records a divergence, refreshing the existing PENDING
	// row for the same (user, entity type, entity id) when one exists.
	UpsertPending(ctx context.Context, conflict models.SyncConflict) (models.SyncConflict, error)

	// Get returns one conflict by id or [ErrConflictNotFound].
	Get(ctx context.Context, userID int64, conflictID string) (models.SyncConflict, error)

	// List returns the user's conflicts matching the filter, newest first.
	List(ctx context.Context, filter models.ConflictFilter) ([]models.SyncConflict, error)

	// CountPending returns the number of open conflicts for the user.
	CountPending(ctx context.Context, userID int64) (int, error)

	// Resolve closes a PENDING conflict with the given terminal status and
	// strategy. Returns [ErrConflictNotFound] or [ErrConflictAlreadyResolved].
	Resolve(ctx context.Context, userID int64, conflictID string, status models.ConflictStatus, strategy models.ResolutionStrategy, resolvedData []byte, resolvedBy string) (models.SyncConflict, error)

	// PurgeResolvedBefore deletes closed conflicts older than the cutoff
	// and returns the number of rows removed.
	PurgeResolvedBefore(ctx context.Context, cutoff time.Time) (int64, error)
}

// QueueRepository persists the per-user FIFO queue of offline mutations.
type QueueRepository interface {
	// Enqueue appends one offline mutation and returns it with the
	// server-assigned ID and timestamp.
	Enqueue(ctx context.Context, item models.QueueItem) (models.QueueItem, error)

	// List returns the user's queue items matching the filter, oldest first.
	List(ctx context.Context, filter models.QueueFilter) ([]models.QueueItem, error)

	// ClaimBatch atomically marks up to limit oldest PENDING items as
	// IN_PROGRESS and returns them in FIFO order.
	ClaimBatch(ctx context.Context, userID int64, limit int) ([]models.QueueItem, error)

	// MarkCompleted finalises a successfully applied item.
	MarkCompleted(ctx context.Context, userID, itemID int64) error

	// MarkFailed bumps the retry counter; the item returns to PENDING until
	// maxAttempts is reached, then parks as FAILED. Reports the resulting
	// status and attempt count.
	MarkFailed(ctx context.Context, userID, itemID int64, cause string, maxAttempts int) (models.QueueStatus, int, error)

	// MarkConflict parks an item whose divergence produced a conflict row.
	MarkConflict(ctx context.Context, userID, itemID int64, cause string) error

	// Release returns all of the user's IN_PROGRESS items to PENDING,
	// used when a session aborts mid-drain.
	Release(ctx context.Context, userID int64) error

	// Delete removes one item or returns [ErrQueueItemNotFound].
	Delete(ctx context.Context, userID, itemID int64) error

	// CountPending returns the number of PENDING items for the user.
	CountPending(ctx context.Context, userID int64) (int, error)
}

// ErrorClassificator decides whether a failed database operation is worth
// retrying.
type ErrorClassificator interface {
	Classify(err error) ErrorClassification
}

package store

import "errors"

// Sentinel errors returned by repository methods to signal well-known failure
// conditions. Callers should use [errors.Is] to match against these values.
var (
	// ErrSyncStatusNotFound is returned when a query targets a sync status
	// record for a user that has never synchronized.
	ErrSyncStatusNotFound = errors.New("sync status was not found")

	// ErrStatusNotSaved is returned when an INSERT or UPDATE of a sync status
	// record completes without error but affects zero rows, meaning nothing
	// was actually persisted.
	ErrStatusNotSaved = errors.New("sync status was not saved")

	// ErrConflictNotFound is returned when a query or update targets a
	// conflict (identified by id and user_id) that does not exist.
	ErrConflictNotFound = errors.New("sync conflict was not found")

	// ErrConflictAlreadyResolved is returned when a resolution attempt
	// targets a conflict whose status is no longer PENDING.
	ErrConflictAlreadyResolved = errors.New("sync conflict is already resolved")

	// ErrQueueItemNotFound is returned when a queue operation targets an
	// offline queue item that does not exist for the given user.
	ErrQueueItemNotFound = errors.New("queue item was not found")

	// ErrVersionConflict is returned when an optimistic-locking check fails:
	// the status version read by the caller no longer matches the version
	// stored in the database, meaning a concurrent writer got there first.
	ErrVersionConflict = errors.New("sync status version conflict occurred")
)

// Low-level database operation errors. These are returned (or wrapped) by
// repository methods when a SQL-level operation fails before any domain logic
// can be applied.
var (
	// ErrBuildingSQLQuery is returned when constructing a parameterised SQL
	// query fails (e.g. invalid argument count or unsupported type).
	ErrBuildingSQLQuery = errors.New("error building sql query")

	// ErrExecutingQuery is returned when executing a SELECT or similar
	// read-only query against the database fails.
	ErrExecutingQuery = errors.New("error executing sql query")

	// ErrBeginningTransaction is returned when the database driver cannot
	// start a new transaction.
	ErrBeginningTransaction = errors.New("failed to begin transaction")

	// ErrCommitingTransaction is returned when committing an open transaction
	// fails. The transaction is considered rolled back at this point.
	ErrCommitingTransaction = errors.New("failed to commit transaction")

	// ErrExecutingStatement is returned when executing a DML statement
	// (INSERT, UPDATE, DELETE) fails.
	ErrExecutingStatement = errors.New("failed to executing statement")

	// ErrScanningRow is returned when scanning column values from a single
	// result row into a destination struct fails.
	ErrScanningRow = errors.New("failed to scan row")

	// ErrScanningRows is returned when scanning column values during
	// multi-row iteration fails, typically mid-result-set.
	ErrScanningRows = errors.New("failed to scan rows")
)

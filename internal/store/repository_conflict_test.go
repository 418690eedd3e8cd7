package store

import (
	"database/sql"
	"database/sql/driver"
	"encoding/json"
	"errors"
	"fmt"
	"regexp"
	"testing"
	"time"

	sqlmock "github.com/DATA-DOG/go-sqlmock"
	"github.com/farmassist/farm-sync/internal/logger"
	"github.com/farmassist/farm-sync/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var conflictTestColumns = []string{
	"id", "user_id", "entity_type", "entity_id", "local_payload",
	"local_version", "server_version", "local_timestamp", "device_id",
	"status", "resolution_strategy", "resolved_data", "resolved_by",
	"detected_at", "resolved_at",
}

func pendingConflictFixture() models.SyncConflict {
	return models.SyncConflict{
		ID:             "5d3f7e66-4f3e-4ca3-9d47-0a4a3c1f6b21",
		UserID:         42,
		EntityType:     "crop",
		EntityID:       "crop-101",
		LocalPayload:   json.RawMessage(`{"name":"wheat"}`),
		LocalVersion:   3,
		ServerVersion:  4,
		LocalTimestamp: time.Now().Add(-time.Minute).Truncate(time.Millisecond),
		DeviceID:       "device-7",
		Status:         models.ConflictPending,
		DetectedAt:     time.Now().Truncate(time.Millisecond),
	}
}

func conflictRowArgs(c models.SyncConflict) []driver.Value {
	var strategy, resolvedBy driver.Value
	if c.ResolutionStrategy != "" {
		strategy = string(c.ResolutionStrategy)
	}
	if c.ResolvedBy != "" {
		resolvedBy = c.ResolvedBy
	}
	return []driver.Value{
		c.ID, c.UserID, c.EntityType, c.EntityID, []byte(c.LocalPayload),
		c.LocalVersion, c.ServerVersion, c.LocalTimestamp, c.DeviceID,
		c.Status, strategy, []byte(c.ResolvedData), resolvedBy,
		c.DetectedAt, c.ResolvedAt,
	}
}

func TestConflictUpsertPending(t *testing.T) {
	conflict := pendingConflictFixture()

	t.Run("success: fresh divergence gets its row back", func(t *testing.T) {
		db, mock := newTestDB(t)
		repo := NewConflictRepository(newDBFromSQL(db), logger.Nop())

		mock.ExpectQuery(regexp.QuoteMeta(upsertPendingConflict)).
			WithArgs(conflict.ID, conflict.UserID, conflict.EntityType, conflict.EntityID,
				[]byte(conflict.LocalPayload), conflict.LocalVersion, conflict.ServerVersion,
				conflict.LocalTimestamp, conflict.DeviceID).
			WillReturnRows(sqlmock.NewRows([]string{"id", "detected_at"}).AddRow(conflict.ID, conflict.DetectedAt))

		got, err := repo.UpsertPending(testContext(), conflict)
		require.NoError(t, err)
		assert.Equal(t, conflict.ID, got.ID)
		assert.Equal(t, models.ConflictPending, got.Status)
		assert.Nil(t, got.ResolvedAt)
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("success: repeat divergence keeps the existing row id", func(t *testing.T) {
		db, mock := newTestDB(t)
		repo := NewConflictRepository(newDBFromSQL(db), logger.Nop())

		const existingID = "11111111-2222-3333-4444-555555555555"
		refreshedAt := conflict.DetectedAt.Add(time.Minute)

		mock.ExpectQuery(regexp.QuoteMeta(upsertPendingConflict)).
			WithArgs(conflict.ID, conflict.UserID, conflict.EntityType, conflict.EntityID,
				[]byte(conflict.LocalPayload), conflict.LocalVersion, conflict.ServerVersion,
				conflict.LocalTimestamp, conflict.DeviceID).
			WillReturnRows(sqlmock.NewRows([]string{"id", "detected_at"}).AddRow(existingID, refreshedAt))

		got, err := repo.UpsertPending(testContext(), conflict)
		require.NoError(t, err)
		assert.Equal(t, existingID, got.ID)
		assert.Equal(t, refreshedAt, got.DetectedAt)
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("error: statement failure is wrapped", func(t *testing.T) {
		db, mock := newTestDB(t)
		repo := NewConflictRepository(newDBFromSQL(db), logger.Nop())

		mock.ExpectQuery(regexp.QuoteMeta(upsertPendingConflict)).
			WillReturnError(errors.New("connection reset"))

		_, err := repo.UpsertPending(testContext(), conflict)
		assert.ErrorIs(t, err, ErrExecutingStatement)
		assert.NoError(t, mock.ExpectationsWereMet())
	})
}

func TestConflictGet(t *testing.T) {
	conflict := pendingConflictFixture()

	t.Run("success: row is scanned with nullable columns", func(t *testing.T) {
		db, mock := newTestDB(t)
		repo := NewConflictRepository(newDBFromSQL(db), logger.Nop())

		mock.ExpectQuery(regexp.QuoteMeta(getConflict)).
			WithArgs(conflict.ID, conflict.UserID).
			WillReturnRows(sqlmock.NewRows(conflictTestColumns).AddRow(conflictRowArgs(conflict)...))

		got, err := repo.Get(testContext(), conflict.UserID, conflict.ID)
		require.NoError(t, err)
		assert.Equal(t, conflict.EntityType, got.EntityType)
		assert.Empty(t, got.ResolutionStrategy)
		assert.Empty(t, got.ResolvedBy)
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("error: missing row maps to ErrConflictNotFound", func(t *testing.T) {
		db, mock := newTestDB(t)
		repo := NewConflictRepository(newDBFromSQL(db), logger.Nop())

		mock.ExpectQuery(regexp.QuoteMeta(getConflict)).
			WithArgs("no-such-id", conflict.UserID).
			WillReturnError(sql.ErrNoRows)

		_, err := repo.Get(testContext(), conflict.UserID, "no-such-id")
		assert.ErrorIs(t, err, ErrConflictNotFound)
		assert.NoError(t, mock.ExpectationsWereMet())
	})
}

func TestConflictList(t *testing.T) {
	conflict := pendingConflictFixture()

	t.Run("success: status filter and limit narrow the query", func(t *testing.T) {
		db, mock := newTestDB(t)
		repo := NewConflictRepository(newDBFromSQL(db), logger.Nop())

		wantSQL := fmt.Sprintf(
			"SELECT %s FROM sync_conflicts WHERE user_id = $1 AND status = $2 ORDER BY detected_at DESC, id LIMIT 5",
			conflictColumns,
		)
		mock.ExpectQuery(regexp.QuoteMeta(wantSQL)).
			WithArgs(conflict.UserID, string(models.ConflictPending)).
			WillReturnRows(sqlmock.NewRows(conflictTestColumns).AddRow(conflictRowArgs(conflict)...))

		got, err := repo.List(testContext(), models.ConflictFilter{
			UserID: conflict.UserID,
			Status: models.ConflictPending,
			Limit:  5,
		})
		require.NoError(t, err)
		require.Len(t, got, 1)
		assert.Equal(t, conflict.ID, got[0].ID)
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("success: empty result set yields empty slice", func(t *testing.T) {
		db, mock := newTestDB(t)
		repo := NewConflictRepository(newDBFromSQL(db), logger.Nop())

		wantSQL := fmt.Sprintf("SELECT %s FROM sync_conflicts WHERE user_id = $1 ORDER BY detected_at DESC, id", conflictColumns)
		mock.ExpectQuery(regexp.QuoteMeta(wantSQL)).
			WithArgs(conflict.UserID).
			WillReturnRows(sqlmock.NewRows(conflictTestColumns))

		got, err := repo.List(testContext(), models.ConflictFilter{UserID: conflict.UserID})
		require.NoError(t, err)
		assert.Empty(t, got)
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("error: query failure is wrapped", func(t *testing.T) {
		db, mock := newTestDB(t)
		repo := NewConflictRepository(newDBFromSQL(db), logger.Nop())

		mock.ExpectQuery("SELECT .* FROM sync_conflicts").
			WillReturnError(errors.New("connection reset"))

		_, err := repo.List(testContext(), models.ConflictFilter{UserID: conflict.UserID})
		assert.ErrorIs(t, err, ErrExecutingQuery)
		assert.NoError(t, mock.ExpectationsWereMet())
	})
}

func TestConflictCountPending(t *testing.T) {
	db, mock := newTestDB(t)
	repo := NewConflictRepository(newDBFromSQL(db), logger.Nop())

	wantSQL := "SELECT COUNT(*) FROM sync_conflicts WHERE status = $1 AND user_id = $2"
	mock.ExpectQuery(regexp.QuoteMeta(wantSQL)).
		WithArgs(string(models.ConflictPending), int64(42)).
		WillReturnRows(sqlmock.NewRows([]string{"count"}).AddRow(3))

	count, err := repo.CountPending(testContext(), 42)
	require.NoError(t, err)
	assert.Equal(t, 3, count)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestConflictResolve(t *testing.T) {
	conflict := pendingConflictFixture()
	resolvedAt := time.Now().Truncate(time.Millisecond)
	cteColumns := []string{"updated_id", "current_status", "resolved_at"}

	t.Run("success: pending conflict closes and the final row is returned", func(t *testing.T) {
		db, mock := newTestDB(t)
		repo := NewConflictRepository(newDBFromSQL(db), logger.Nop())

		mock.ExpectQuery(regexp.QuoteMeta(resolveConflict)).
			WithArgs(conflict.ID, conflict.UserID, string(models.ConflictResolved),
				string(models.LocalWins), []byte(nil), "farmer-42").
			WillReturnRows(sqlmock.NewRows(cteColumns).AddRow(conflict.ID, string(models.ConflictPending), resolvedAt))

		closed := conflict
		closed.Status = models.ConflictResolved
		closed.ResolutionStrategy = models.LocalWins
		closed.ResolvedBy = "farmer-42"
		closed.ResolvedAt = &resolvedAt
		mock.ExpectQuery(regexp.QuoteMeta(getConflict)).
			WithArgs(conflict.ID, conflict.UserID).
			WillReturnRows(sqlmock.NewRows(conflictTestColumns).AddRow(conflictRowArgs(closed)...))

		got, err := repo.Resolve(testContext(), conflict.UserID, conflict.ID,
			models.ConflictResolved, models.LocalWins, nil, "farmer-42")
		require.NoError(t, err)
		assert.Equal(t, models.ConflictResolved, got.Status)
		assert.Equal(t, models.LocalWins, got.ResolutionStrategy)
		require.NotNil(t, got.ResolvedAt)
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("error: unknown conflict id maps to ErrConflictNotFound", func(t *testing.T) {
		db, mock := newTestDB(t)
		repo := NewConflictRepository(newDBFromSQL(db), logger.Nop())

		mock.ExpectQuery(regexp.QuoteMeta(resolveConflict)).
			WithArgs("no-such-id", conflict.UserID, string(models.ConflictResolved),
				string(models.RemoteWins), []byte(nil), "farmer-42").
			WillReturnRows(sqlmock.NewRows(cteColumns).AddRow(nil, nil, nil))

		_, err := repo.Resolve(testContext(), conflict.UserID, "no-such-id",
			models.ConflictResolved, models.RemoteWins, nil, "farmer-42")
		assert.ErrorIs(t, err, ErrConflictNotFound)
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("error: closed conflict maps to ErrConflictAlreadyResolved", func(t *testing.T) {
		db, mock := newTestDB(t)
		repo := NewConflictRepository(newDBFromSQL(db), logger.Nop())

		mock.ExpectQuery(regexp.QuoteMeta(resolveConflict)).
			WithArgs(conflict.ID, conflict.UserID, string(models.ConflictResolved),
				string(models.RemoteWins), []byte(nil), "farmer-42").
			WillReturnRows(sqlmock.NewRows(cteColumns).AddRow(nil, string(models.ConflictResolved), nil))

		_, err := repo.Resolve(testContext(), conflict.UserID, conflict.ID,
			models.ConflictResolved, models.RemoteWins, nil, "farmer-42")
		assert.ErrorIs(t, err, ErrConflictAlreadyResolved)
		assert.NoError(t, mock.ExpectationsWereMet())
	})
}

func TestConflictPurgeResolvedBefore(t *testing.T) {
	db, mock := newTestDB(t)
	repo := NewConflictRepository(newDBFromSQL(db), logger.Nop())

	cutoff := time.Now().Add(-30 * 24 * time.Hour)
	mock.ExpectExec(regexp.QuoteMeta(purgeResolvedConflicts)).
		WithArgs(cutoff).
		WillReturnResult(sqlmock.NewResult(0, 17))

	purged, err := repo.PurgeResolvedBefore(testContext(), cutoff)
	require.NoError(t, err)
	assert.Equal(t, int64(17), purged)
	assert.NoError(t, mock.ExpectationsWereMet())
}

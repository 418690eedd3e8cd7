// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Farmassist

package service

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/farmassist/farm-sync/internal/adapter"
	"github.com/farmassist/farm-sync/internal/config"
	"github.com/farmassist/farm-sync/internal/logger"
	"github.com/farmassist/farm-sync/internal/mock"
	"github.com/farmassist/farm-sync/internal/validators"
	"github.com/farmassist/farm-sync/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"
)

type orchestratorMocks struct {
	ingest    *mock.MockIngestService
	detect    *mock.MockDetectService
	statuses  *mock.MockStatusService
	queue     *mock.MockQueueRepository
	conflicts *mock.MockConflictRepository
	domain    *mock.MockDomainDataService
	notifier  *mock.MockNotifier
	locks     *SessionLockArena
}

func newTestOrchestrator(t *testing.T, ctrl *gomock.Controller) (OrchestratorService, *orchestratorMocks) {
	t.Helper()

	m := &orchestratorMocks{
		ingest:    mock.NewMockIngestService(ctrl),
		detect:    mock.NewMockDetectService(ctrl),
		statuses:  mock.NewMockStatusService(ctrl),
		queue:     mock.NewMockQueueRepository(ctrl),
		conflicts: mock.NewMockConflictRepository(ctrl),
		domain:    mock.NewMockDomainDataService(ctrl),
		notifier:  mock.NewMockNotifier(ctrl),
		locks:     NewSessionLockArena(time.Minute),
	}

	cfg := config.Sync{
		ApplyRetryAttempts:  3,
		ApplyRetryBaseDelay: time.Millisecond,
		SessionLease:        time.Minute,
		QueueBatchSize:      50,
	}

	svc := NewOrchestratorService(
		m.ingest, m.detect, m.statuses,
		m.queue, m.conflicts, m.domain, m.notifier,
		m.locks, validators.NewSyncValidator(), cfg, logger.Nop(),
	)

	return svc, m
}

// expectStatusTransitions wires the happy-path status expectations around a
// session of the given batch size.
func expectStatusTransitions(m *orchestratorMocks, total int) {
	m.statuses.EXPECT().
		BeginSession(gomock.Any(), int64(1), "device-1", "2.4.0", total).
		Return(models.SyncStatus{UserID: 1, SyncState: models.StateSyncing, TotalToSync: total}, nil)
	m.statuses.EXPECT().
		UpdateProgress(gomock.Any(), int64(1), gomock.Any()).
		Return(nil).
		Times(total)
}

func sessionRequest(changes ...models.ChangeRecord) models.SessionRequest {
	return models.SessionRequest{
		DeviceID:   "device-1",
		AppVersion: "2.4.0",
		Changes:    changes,
	}
}

func TestOrchestrator_RunSession_CleanAndConflicting(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	svc, m := newTestOrchestrator(t, ctrl)

	clean := validChange("field-1", 3)
	stale := validChange("field-2", 3)
	request := sessionRequest(clean, stale)

	m.ingest.EXPECT().
		Ingest(gomock.Any(), int64(1), request.Changes).
		Return(models.IngestResult{Valid: []models.ChangeRecord{clean, stale}}, nil)
	m.queue.EXPECT().
		ClaimBatch(gomock.Any(), int64(1), 50).
		Return(nil, nil)

	expectStatusTransitions(m, 2)

	m.detect.EXPECT().
		Classify(gomock.Any(), int64(1), clean).
		Return(models.Clean, int64(3), nil)
	m.domain.EXPECT().
		ApplyChange(gomock.Any(), int64(1), clean).
		Return(int64(4), nil)

	m.detect.EXPECT().
		Classify(gomock.Any(), int64(1), stale).
		Return(models.Conflict, int64(4), nil)
	m.detect.EXPECT().
		RecordConflict(gomock.Any(), int64(1), stale, int64(4)).
		Return(models.SyncConflict{ID: "c-1", Status: models.ConflictPending}, nil)

	m.queue.EXPECT().CountPending(gomock.Any(), int64(1)).Return(0, nil)
	m.conflicts.EXPECT().CountPending(gomock.Any(), int64(1)).Return(1, nil)
	m.statuses.EXPECT().
		CompleteSession(gomock.Any(), int64(1), 0).
		Return(models.SyncStatus{UserID: 1, SyncState: models.StateIdle}, nil)
	m.notifier.EXPECT().
		NotifySyncCompleted(gomock.Any(), int64(1), gomock.Any()).
		Return(nil)

	result, err := svc.RunSession(context.Background(), 1, request)
	require.NoError(t, err)

	assert.Equal(t, 1, result.Applied)
	assert.Equal(t, 1, result.Conflicts)
	assert.Empty(t, result.Failed)
	assert.Equal(t, 1, result.RemainingPending)
	assert.Equal(t, models.StateIdle, result.Status.SyncState)
}

func TestOrchestrator_RunSession_SecondCallerRejected(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	svc, m := newTestOrchestrator(t, ctrl)

	require.True(t, m.locks.Acquire(1), "test setup: take the user's session lock")

	_, err := svc.RunSession(context.Background(), 1, sessionRequest(validChange("field-1", 3)))
	assert.ErrorIs(t, err, ErrSessionInProgress)
}

func TestOrchestrator_RunSession_LockReleasedAfterCompletion(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	svc, m := newTestOrchestrator(t, ctrl)

	for range 2 {
		m.ingest.EXPECT().
			Ingest(gomock.Any(), int64(1), gomock.Any()).
			Return(models.IngestResult{}, nil)
		m.queue.EXPECT().ClaimBatch(gomock.Any(), int64(1), 50).Return(nil, nil)
		m.statuses.EXPECT().
			BeginSession(gomock.Any(), int64(1), "device-1", "2.4.0", 0).
			Return(models.SyncStatus{UserID: 1, SyncState: models.StateSyncing}, nil)
		m.queue.EXPECT().CountPending(gomock.Any(), int64(1)).Return(0, nil)
		m.conflicts.EXPECT().CountPending(gomock.Any(), int64(1)).Return(0, nil)
		m.statuses.EXPECT().
			CompleteSession(gomock.Any(), int64(1), 0).
			Return(models.SyncStatus{UserID: 1, SyncState: models.StateIdle}, nil)
		m.notifier.EXPECT().NotifySyncCompleted(gomock.Any(), int64(1), gomock.Any()).Return(nil)
	}

	_, err := svc.RunSession(context.Background(), 1, sessionRequest())
	require.NoError(t, err)

	_, err = svc.RunSession(context.Background(), 1, sessionRequest())
	assert.NoError(t, err, "the lock must be free again after a completed session")
}

func TestOrchestrator_RunSession_ApplyRaceBecomesConflict(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	svc, m := newTestOrchestrator(t, ctrl)

	change := validChange("field-1", 3)
	request := sessionRequest(change)

	m.ingest.EXPECT().
		Ingest(gomock.Any(), int64(1), request.Changes).
		Return(models.IngestResult{Valid: []models.ChangeRecord{change}}, nil)
	m.queue.EXPECT().ClaimBatch(gomock.Any(), int64(1), 50).Return(nil, nil)
	expectStatusTransitions(m, 1)

	// Classified clean, then a concurrent writer bumps the version before
	// the apply lands.
	m.detect.EXPECT().
		Classify(gomock.Any(), int64(1), change).
		Return(models.Clean, int64(3), nil)
	m.domain.EXPECT().
		ApplyChange(gomock.Any(), int64(1), change).
		Return(int64(0), adapter.ErrVersionConflict)
	m.domain.EXPECT().
		CurrentVersion(gomock.Any(), int64(1), change.EntityType, change.EntityID).
		Return(int64(4), nil)
	m.detect.EXPECT().
		RecordConflict(gomock.Any(), int64(1), change, int64(4)).
		Return(models.SyncConflict{ID: "c-1", Status: models.ConflictPending}, nil)

	m.queue.EXPECT().CountPending(gomock.Any(), int64(1)).Return(0, nil)
	m.conflicts.EXPECT().CountPending(gomock.Any(), int64(1)).Return(1, nil)
	m.statuses.EXPECT().
		CompleteSession(gomock.Any(), int64(1), 0).
		Return(models.SyncStatus{UserID: 1, SyncState: models.StateIdle}, nil)
	m.notifier.EXPECT().NotifySyncCompleted(gomock.Any(), int64(1), gomock.Any()).Return(nil)

	result, err := svc.RunSession(context.Background(), 1, request)
	require.NoError(t, err)

	assert.Equal(t, 0, result.Applied)
	assert.Equal(t, 1, result.Conflicts, "a mid-apply version race counts as conflict, not failure")
	assert.Empty(t, result.Failed)
}

func TestOrchestrator_RunSession_ApplyRetriesThenFails(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	svc, m := newTestOrchestrator(t, ctrl)

	change := validChange("field-1", 3)
	request := sessionRequest(change)

	m.ingest.EXPECT().
		Ingest(gomock.Any(), int64(1), request.Changes).
		Return(models.IngestResult{Valid: []models.ChangeRecord{change}}, nil)
	m.queue.EXPECT().ClaimBatch(gomock.Any(), int64(1), 50).Return(nil, nil)
	expectStatusTransitions(m, 1)

	m.detect.EXPECT().
		Classify(gomock.Any(), int64(1), change).
		Return(models.Clean, int64(3), nil)

	// ApplyRetryAttempts = 3: the transient failure is tried three times in
	// total before the record is reported as APPLY_FAILED.
	m.domain.EXPECT().
		ApplyChange(gomock.Any(), int64(1), change).
		Return(int64(0), adapter.ErrBadGateway).
		Times(3)

	m.queue.EXPECT().CountPending(gomock.Any(), int64(1)).Return(0, nil)
	m.conflicts.EXPECT().CountPending(gomock.Any(), int64(1)).Return(0, nil)
	m.statuses.EXPECT().
		CompleteSession(gomock.Any(), int64(1), 0).
		Return(models.SyncStatus{UserID: 1, SyncState: models.StateIdle}, nil)
	m.notifier.EXPECT().NotifySyncCompleted(gomock.Any(), int64(1), gomock.Any()).Return(nil)

	result, err := svc.RunSession(context.Background(), 1, request)
	require.NoError(t, err, "a per-record apply failure never fails the session")

	assert.Equal(t, 0, result.Applied)
	require.Len(t, result.Failed, 1)
	assert.Equal(t, models.ApplyFailed, result.Failed[0].Kind)
	assert.Equal(t, "field-1", result.Failed[0].EntityID)
}

func TestOrchestrator_RunSession_PermanentRejectionIsNotRetried(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	svc, m := newTestOrchestrator(t, ctrl)

	change := validChange("field-1", 3)
	request := sessionRequest(change)

	m.ingest.EXPECT().
		Ingest(gomock.Any(), int64(1), request.Changes).
		Return(models.IngestResult{Valid: []models.ChangeRecord{change}}, nil)
	m.queue.EXPECT().ClaimBatch(gomock.Any(), int64(1), 50).Return(nil, nil)
	expectStatusTransitions(m, 1)

	m.detect.EXPECT().
		Classify(gomock.Any(), int64(1), change).
		Return(models.Clean, int64(3), nil)
	m.domain.EXPECT().
		ApplyChange(gomock.Any(), int64(1), change).
		Return(int64(0), adapter.ErrBadRequest).
		Times(1)

	m.queue.EXPECT().CountPending(gomock.Any(), int64(1)).Return(0, nil)
	m.conflicts.EXPECT().CountPending(gomock.Any(), int64(1)).Return(0, nil)
	m.statuses.EXPECT().
		CompleteSession(gomock.Any(), int64(1), 0).
		Return(models.SyncStatus{UserID: 1, SyncState: models.StateIdle}, nil)
	m.notifier.EXPECT().NotifySyncCompleted(gomock.Any(), int64(1), gomock.Any()).Return(nil)

	result, err := svc.RunSession(context.Background(), 1, request)
	require.NoError(t, err)
	require.Len(t, result.Failed, 1)
	assert.Equal(t, models.ApplyFailed, result.Failed[0].Kind)
}

func TestOrchestrator_RunSession_DrainsOfflineQueue(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	svc, m := newTestOrchestrator(t, ctrl)

	request := sessionRequest()

	applied := models.QueueItem{
		ID: 11, UserID: 1, EntityType: "crop", EntityID: "field-1",
		Operation: models.OperationUpdate, LocalVersion: 3, DeviceID: "device-1",
	}
	conflicting := models.QueueItem{
		ID: 12, UserID: 1, EntityType: "crop", EntityID: "field-2",
		Operation: models.OperationUpdate, LocalVersion: 3, DeviceID: "device-1",
	}

	m.ingest.EXPECT().
		Ingest(gomock.Any(), int64(1), gomock.Any()).
		Return(models.IngestResult{}, nil)
	m.queue.EXPECT().
		ClaimBatch(gomock.Any(), int64(1), 50).
		Return([]models.QueueItem{applied, conflicting}, nil)
	expectStatusTransitions(m, 2)

	m.detect.EXPECT().
		Classify(gomock.Any(), int64(1), queueItemChange(applied)).
		Return(models.Clean, int64(3), nil)
	m.domain.EXPECT().
		ApplyChange(gomock.Any(), int64(1), queueItemChange(applied)).
		Return(int64(4), nil)
	m.queue.EXPECT().
		MarkCompleted(gomock.Any(), int64(1), int64(11)).
		Return(nil)

	m.detect.EXPECT().
		Classify(gomock.Any(), int64(1), queueItemChange(conflicting)).
		Return(models.Conflict, int64(5), nil)
	m.detect.EXPECT().
		RecordConflict(gomock.Any(), int64(1), queueItemChange(conflicting), int64(5)).
		Return(models.SyncConflict{ID: "c-1", ServerVersion: 5, Status: models.ConflictPending}, nil)
	m.queue.EXPECT().
		MarkConflict(gomock.Any(), int64(1), int64(12), gomock.Any()).
		Return(nil)

	m.queue.EXPECT().CountPending(gomock.Any(), int64(1)).Return(0, nil)
	m.conflicts.EXPECT().CountPending(gomock.Any(), int64(1)).Return(1, nil)
	m.statuses.EXPECT().
		CompleteSession(gomock.Any(), int64(1), 0).
		Return(models.SyncStatus{UserID: 1, SyncState: models.StateIdle}, nil)
	m.notifier.EXPECT().NotifySyncCompleted(gomock.Any(), int64(1), gomock.Any()).Return(nil)

	result, err := svc.RunSession(context.Background(), 1, request)
	require.NoError(t, err)

	assert.Equal(t, 1, result.Applied)
	assert.Equal(t, 1, result.Conflicts)
}

func TestOrchestrator_RunSession_InfrastructureFailureAborts(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	svc, m := newTestOrchestrator(t, ctrl)

	change := validChange("field-1", 3)
	request := sessionRequest(change)

	m.ingest.EXPECT().
		Ingest(gomock.Any(), int64(1), request.Changes).
		Return(models.IngestResult{Valid: []models.ChangeRecord{change}}, nil)
	m.queue.EXPECT().ClaimBatch(gomock.Any(), int64(1), 50).Return(nil, nil)
	m.statuses.EXPECT().
		BeginSession(gomock.Any(), int64(1), "device-1", "2.4.0", 1).
		Return(models.SyncStatus{UserID: 1, SyncState: models.StateSyncing}, nil)

	wantErr := errors.New("version lookup transport broken")
	m.detect.EXPECT().
		Classify(gomock.Any(), int64(1), change).
		Return(models.Classification(""), int64(0), wantErr)

	m.queue.EXPECT().Release(gomock.Any(), int64(1)).Return(nil)
	m.statuses.EXPECT().
		FailSession(gomock.Any(), int64(1), gomock.Any()).
		Return(models.SyncStatus{UserID: 1, SyncState: models.StateError}, nil)

	_, err := svc.RunSession(context.Background(), 1, request)
	assert.ErrorIs(t, err, wantErr)

	assert.True(t, m.locks.Acquire(1), "the session lock must be released after an abort")
}

func TestOrchestrator_RunSession_ClientDisconnectRecordsAborted(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	svc, m := newTestOrchestrator(t, ctrl)

	change := validChange("field-1", 3)
	request := sessionRequest(change)

	ctx, cancel := context.WithCancel(context.Background())

	m.ingest.EXPECT().
		Ingest(gomock.Any(), int64(1), request.Changes).
		Return(models.IngestResult{Valid: []models.ChangeRecord{change}}, nil)
	m.queue.EXPECT().ClaimBatch(gomock.Any(), int64(1), 50).Return(nil, nil)

	// The client drops mid-session, right after SYNCING is entered.
	m.statuses.EXPECT().
		BeginSession(gomock.Any(), int64(1), "device-1", "2.4.0", 1).
		DoAndReturn(func(context.Context, int64, string, string, int) (models.SyncStatus, error) {
			cancel()
			return models.SyncStatus{UserID: 1, SyncState: models.StateSyncing}, nil
		})

	m.queue.EXPECT().Release(gomock.Any(), int64(1)).Return(nil)
	m.statuses.EXPECT().
		FailSession(gomock.Any(), int64(1), "aborted").
		Return(models.SyncStatus{UserID: 1, SyncState: models.StateError, LastError: "aborted"}, nil)

	_, err := svc.RunSession(ctx, 1, request)
	assert.ErrorIs(t, err, context.Canceled)
}

func TestOrchestrator_RunSession_NoUserID(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	svc, _ := newTestOrchestrator(t, ctrl)

	_, err := svc.RunSession(context.Background(), 0, sessionRequest())
	assert.ErrorIs(t, err, ErrNoUserID)
}

func TestOrchestrator_RunSession_MissingDeviceIDRejected(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	svc, m := newTestOrchestrator(t, ctrl)

	request := models.SessionRequest{AppVersion: "2.4.0", Changes: []models.ChangeRecord{validChange("field-1", 3)}}

	_, err := svc.RunSession(context.Background(), 1, request)
	assert.ErrorIs(t, err, ErrMalformedChange)
	assert.ErrorIs(t, err, validators.ErrEmptyDeviceID)

	assert.True(t, m.locks.Acquire(1), "an envelope rejection must not leave the user locked")
}

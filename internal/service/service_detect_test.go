// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Farmassist

package service

import (
	"context"
	"errors"
	"testing"

	"github.com/farmassist/farm-sync/internal/logger"
	"github.com/farmassist/farm-sync/internal/mock"
	"github.com/farmassist/farm-sync/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"
)

func newTestDetectSvc(
	t *testing.T,
	ctrl *gomock.Controller,
) (DetectService, *mock.MockDomainDataService, *mock.MockConflictRepository, *mock.MockNotifier) {
	t.Helper()

	domain := mock.NewMockDomainDataService(ctrl)
	conflicts := mock.NewMockConflictRepository(ctrl)
	notifier := mock.NewMockNotifier(ctrl)

	svc := NewDetectService(domain, conflicts, notifier, logger.Nop())

	return svc, domain, conflicts, notifier
}

func TestDetectService_Classify(t *testing.T) {
	tests := []struct {
		name          string
		localVersion  int64
		serverVersion int64
		want          models.Classification
	}{
		{name: "matching versions are clean", localVersion: 3, serverVersion: 3, want: models.Clean},
		{name: "new entity with zero versions is clean", localVersion: 0, serverVersion: 0, want: models.Clean},
		{name: "stale client version conflicts", localVersion: 3, serverVersion: 4, want: models.Conflict},
		{name: "client ahead of server conflicts", localVersion: 5, serverVersion: 4, want: models.Conflict},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ctrl := gomock.NewController(t)
			defer ctrl.Finish()

			svc, domain, _, _ := newTestDetectSvc(t, ctrl)

			change := validChange("field-1", tt.localVersion)
			domain.EXPECT().
				CurrentVersion(gomock.Any(), int64(1), change.EntityType, change.EntityID).
				Return(tt.serverVersion, nil)

			got, serverVersion, err := svc.Classify(context.Background(), 1, change)
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
			assert.Equal(t, tt.serverVersion, serverVersion)
		})
	}
}

func TestDetectService_Classify_DomainUnavailable(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	svc, domain, _, _ := newTestDetectSvc(t, ctrl)

	wantErr := errors.New("connection refused")
	domain.EXPECT().
		CurrentVersion(gomock.Any(), gomock.Any(), gomock.Any(), gomock.Any()).
		Return(int64(0), wantErr)

	_, _, err := svc.Classify(context.Background(), 1, validChange("field-1", 3))
	assert.ErrorIs(t, err, wantErr)
}

func TestDetectService_RecordConflict(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	svc, _, conflicts, notifier := newTestDetectSvc(t, ctrl)

	change := validChange("field-1", 3)

	var upserted models.SyncConflict
	conflicts.EXPECT().
		UpsertPending(gomock.Any(), gomock.Any()).
		DoAndReturn(func(_ context.Context, conflict models.SyncConflict) (models.SyncConflict, error) {
			upserted = conflict
			return conflict, nil
		})
	notifier.EXPECT().
		NotifyConflictDetected(gomock.Any(), gomock.Any()).
		Return(nil)

	got, err := svc.RecordConflict(context.Background(), 1, change, 4)
	require.NoError(t, err)

	assert.NotEmpty(t, upserted.ID)
	assert.Equal(t, int64(1), got.UserID)
	assert.Equal(t, "field-1", got.EntityID)
	assert.Equal(t, int64(3), got.LocalVersion)
	assert.Equal(t, int64(4), got.ServerVersion)
	assert.Equal(t, models.ConflictPending, got.Status)
	assert.Equal(t, change.Payload, got.LocalPayload)
}

func TestDetectService_RecordConflict_NotificationFailureIsSwallowed(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	svc, _, conflicts, notifier := newTestDetectSvc(t, ctrl)

	conflicts.EXPECT().
		UpsertPending(gomock.Any(), gomock.Any()).
		DoAndReturn(func(_ context.Context, conflict models.SyncConflict) (models.SyncConflict, error) {
			return conflict, nil
		})
	notifier.EXPECT().
		NotifyConflictDetected(gomock.Any(), gomock.Any()).
		Return(errors.New("notification service down"))

	_, err := svc.RecordConflict(context.Background(), 1, validChange("field-1", 3), 4)
	assert.NoError(t, err)
}

func TestDetectService_RecordConflict_PersistenceFailure(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	svc, _, conflicts, _ := newTestDetectSvc(t, ctrl)

	wantErr := errors.New("insert failed")
	conflicts.EXPECT().
		UpsertPending(gomock.Any(), gomock.Any()).
		Return(models.SyncConflict{}, wantErr)

	_, err := svc.RecordConflict(context.Background(), 1, validChange("field-1", 3), 4)
	assert.ErrorIs(t, err, wantErr)
}

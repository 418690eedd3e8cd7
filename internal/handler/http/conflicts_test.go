// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Farmassist

package http

import (
	"encoding/json"
	"net/http"
	"testing"

	"github.com/farmassist/farm-sync/internal/service"
	"github.com/farmassist/farm-sync/internal/store"
	"github.com/farmassist/farm-sync/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"
)

func TestHandler_ListConflicts(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	srv, m := newTestServer(t, ctrl)

	m.resolver.EXPECT().
		List(gomock.Any(), models.ConflictFilter{
			UserID:     1,
			Status:     models.ConflictPending,
			EntityType: "crop",
			Limit:      10,
		}).
		Return([]models.SyncConflict{
			{ID: "c-1", UserID: 1, EntityType: "crop", EntityID: "field-1", Status: models.ConflictPending},
		}, nil)

	resp := doRequest(t, srv, http.MethodGet, "/api/v1/sync/conflicts?status=PENDING&entity_type=crop&limit=10", nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)

	list := decodeBody[models.ConflictListResponse](t, resp)
	assert.Equal(t, 1, list.Length)
	require.Len(t, list.Conflicts, 1)
	assert.Equal(t, "c-1", list.Conflicts[0].ID)
}

func TestHandler_ListConflicts_InvalidLimit(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	srv, _ := newTestServer(t, ctrl)

	resp := doRequest(t, srv, http.MethodGet, "/api/v1/sync/conflicts?limit=ten", nil)
	defer resp.Body.Close()

	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
}

func TestHandler_GetConflict_NotFound(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	srv, m := newTestServer(t, ctrl)

	m.resolver.EXPECT().
		Get(gomock.Any(), int64(1), "missing").
		Return(models.SyncConflict{}, store.ErrConflictNotFound)

	resp := doRequest(t, srv, http.MethodGet, "/api/v1/sync/conflicts/missing", nil)
	defer resp.Body.Close()

	assert.Equal(t, http.StatusNotFound, resp.StatusCode)
}

func TestHandler_ResolveConflict(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	srv, m := newTestServer(t, ctrl)

	request := models.ResolveRequest{
		Strategy:   models.LocalWins,
		ResolvedBy: "farmer-42",
	}

	m.resolver.EXPECT().
		Resolve(gomock.Any(), int64(1), "c-1", gomock.Any()).
		Return(models.ResolveResult{
			Conflict:   models.SyncConflict{ID: "c-1", Status: models.ConflictResolved},
			NewVersion: 5,
		}, nil)

	resp := doRequest(t, srv, http.MethodPost, "/api/v1/sync/conflicts/c-1/resolve", request)
	require.Equal(t, http.StatusOK, resp.StatusCode)

	result := decodeBody[models.ResolveResult](t, resp)
	assert.Equal(t, int64(5), result.NewVersion)
	assert.Equal(t, models.ConflictResolved, result.Conflict.Status)
}

func TestHandler_ResolveConflict_AlreadyResolved(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	srv, m := newTestServer(t, ctrl)

	m.resolver.EXPECT().
		Resolve(gomock.Any(), int64(1), "c-1", gomock.Any()).
		Return(models.ResolveResult{}, service.ErrAlreadyResolved)

	resp := doRequest(t, srv, http.MethodPost, "/api/v1/sync/conflicts/c-1/resolve", models.ResolveRequest{
		Strategy:   models.LocalWins,
		ResolvedBy: "farmer-42",
	})
	defer resp.Body.Close()

	assert.Equal(t, http.StatusConflict, resp.StatusCode)
}

func TestHandler_ResolveConflict_UnknownStrategy(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	srv, m := newTestServer(t, ctrl)

	m.resolver.EXPECT().
		Resolve(gomock.Any(), int64(1), "c-1", gomock.Any()).
		Return(models.ResolveResult{}, service.ErrUnknownStrategy)

	resp := doRequest(t, srv, http.MethodPost, "/api/v1/sync/conflicts/c-1/resolve", models.ResolveRequest{
		Strategy:   "COIN_FLIP",
		ResolvedBy: "farmer-42",
	})
	defer resp.Body.Close()

	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
}

func TestHandler_ResolveAllConflicts(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	srv, m := newTestServer(t, ctrl)

	m.resolver.EXPECT().
		ResolveAllAuto(gomock.Any(), int64(1), models.RemoteWins, "system").
		Return([]models.ResolveResult{
			{Conflict: models.SyncConflict{ID: "c-1", Status: models.ConflictResolved}, RefreshRequired: true},
			{Conflict: models.SyncConflict{ID: "c-2", Status: models.ConflictResolved}, RefreshRequired: true},
		}, nil)

	body := map[string]string{"strategy": "REMOTE_WINS"}
	resp := doRequest(t, srv, http.MethodPost, "/api/v1/sync/conflicts/resolve-all", body)
	require.Equal(t, http.StatusOK, resp.StatusCode)

	var results []models.ResolveResult
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&results))
	resp.Body.Close()
	assert.Len(t, results, 2)
}

func TestHandler_IgnoreConflict(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	srv, m := newTestServer(t, ctrl)

	m.resolver.EXPECT().
		Ignore(gomock.Any(), int64(1), "c-1", "farmer-42").
		Return(models.ResolveResult{
			Conflict: models.SyncConflict{ID: "c-1", Status: models.ConflictIgnored},
		}, nil)

	resp := doRequest(t, srv, http.MethodPost, "/api/v1/sync/conflicts/c-1/ignore", map[string]string{"resolved_by": "farmer-42"})
	require.Equal(t, http.StatusOK, resp.StatusCode)

	result := decodeBody[models.ResolveResult](t, resp)
	assert.Equal(t, models.ConflictIgnored, result.Conflict.Status)
}

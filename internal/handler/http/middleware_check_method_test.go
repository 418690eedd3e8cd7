// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Farmassist

package http

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/go-chi/chi/v5"
	"github.com/stretchr/testify/assert"
)

// newSyncRouter mirrors the engine's route surface with stub handlers so the
// 405-masking behaviour can be exercised without the full middleware chain.
func newSyncRouter() *chi.Mux {
	ok := func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
	}

	router := chi.NewRouter()
	router.Post("/api/v1/sync/session", ok)
	router.Get("/api/v1/sync/status", ok)
	router.Get("/api/v1/sync/conflicts", ok)
	router.Post("/api/v1/sync/queue", ok)
	router.MethodNotAllowed(CheckHTTPMethod(router))
	return router
}

func TestCheckHTTPMethod(t *testing.T) {
	tests := []struct {
		name       string
		method     string
		path       string
		wantStatus int
	}{
		{
			name:       "POST session is registered",
			method:     http.MethodPost,
			path:       "/api/v1/sync/session",
			wantStatus: http.StatusOK,
		},
		{
			name:       "GET status is registered",
			method:     http.MethodGet,
			path:       "/api/v1/sync/status",
			wantStatus: http.StatusOK,
		},
		{
			name:       "GET session is masked as 404, not 405",
			method:     http.MethodGet,
			path:       "/api/v1/sync/session",
			wantStatus: http.StatusNotFound,
		},
		{
			name:       "DELETE status is masked as 404",
			method:     http.MethodDelete,
			path:       "/api/v1/sync/status",
			wantStatus: http.StatusNotFound,
		},
		{
			name:       "PATCH conflicts is masked as 404",
			method:     http.MethodPatch,
			path:       "/api/v1/sync/conflicts",
			wantStatus: http.StatusNotFound,
		},
		{
			name:       "PUT queue is masked as 404",
			method:     http.MethodPut,
			path:       "/api/v1/sync/queue",
			wantStatus: http.StatusNotFound,
		},
		{
			name:       "unknown path stays 404",
			method:     http.MethodGet,
			path:       "/api/v1/sync/nonexistent",
			wantStatus: http.StatusNotFound,
		},
	}

	router := newSyncRouter()

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := httptest.NewRequest(tt.method, tt.path, nil)
			rr := httptest.NewRecorder()

			router.ServeHTTP(rr, req)

			assert.Equal(t, tt.wantStatus, rr.Code)
		})
	}
}

func TestCheckHTTPMethod_RegisteredMethodDelegates(t *testing.T) {
	// A handler reached through the MethodNotAllowed path must still run when
	// the method turns out to be registered for the matched pattern.
	called := false

	router := chi.NewRouter()
	router.Get("/api/v1/sync/status", func(w http.ResponseWriter, r *http.Request) {
		called = true
		w.WriteHeader(http.StatusOK)
	})

	handler := CheckHTTPMethod(router)

	req := httptest.NewRequest(http.MethodGet, "/api/v1/sync/status", nil)
	rr := httptest.NewRecorder()
	handler(rr, req)

	assert.True(t, called, "registered handler should execute")
	assert.Equal(t, http.StatusOK, rr.Code)
}

func TestCheckHTTPMethod_UnregisteredMethodHides(t *testing.T) {
	router := chi.NewRouter()
	router.Get("/api/v1/sync/status", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
	})

	handler := CheckHTTPMethod(router)

	req := httptest.NewRequest(http.MethodPost, "/api/v1/sync/status", nil)
	rr := httptest.NewRecorder()
	handler(rr, req)

	assert.Equal(t, http.StatusNotFound, rr.Code, "405 should be masked as 404")
}

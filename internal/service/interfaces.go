// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Farmassist

// Package service implements the business logic of the offline-first sync
// engine: ingest validation, conflict detection and resolution, sync status
// tracking, offline queue management, and the session orchestrator that ties
// them together.
package service

import (
	"context"

	"github.com/farmassist/farm-sync/models"
)

//go:generate mockgen -source=interfaces.go -destination=../mock/service_mock.go -package=mock

// IngestService validates a submitted change batch and splits it into
// records that proceed to classification and records rejected individually.
type IngestService interface {
	// Ingest never fails the whole batch: invalid records are reported in
	// the result with kind MALFORMED_CHANGE while valid ones pass through
	// in submission order.
	Ingest(ctx context.Context, userID int64, changes []models.ChangeRecord) (models.IngestResult, error)
}

// DetectService classifies changes against authoritative domain versions and
// records divergences as pending conflicts.
type DetectService interface {
	// Classify compares the record's base version with the authoritative
	// version and returns the verdict together with the version observed.
	Classify(ctx context.Context, userID int64, change models.ChangeRecord) (models.Classification, int64, error)

	// RecordConflict persists a divergence as a PENDING conflict, refreshing
	// the existing open conflict for the same entity when one exists, and
	// notifies interested clients.
	RecordConflict(ctx context.Context, userID int64, change models.ChangeRecord, serverVersion int64) (models.SyncConflict, error)
}

// ResolveService closes pending conflicts with a chosen strategy.
type ResolveService interface {
	// Resolve closes one pending conflict. The winning payload is applied to
	// domain state for LOCAL_WINS, MERGE and MANUAL; REMOTE_WINS keeps
	// server state and flags the client to refresh.
	Resolve(ctx context.Context, userID int64, conflictID string, request models.ResolveRequest) (models.ResolveResult, error)

	// ResolveAllAuto closes every pending conflict of the user with one
	// automatic strategy (LOCAL_WINS, REMOTE_WINS or MERGE). Individual
	// failures are skipped and reported in the error-free results slice.
	ResolveAllAuto(ctx context.Context, userID int64, strategy models.ResolutionStrategy, resolvedBy string) ([]models.ResolveResult, error)

	// Ignore dismisses a pending conflict without changing domain state.
	Ignore(ctx context.Context, userID int64, conflictID, resolvedBy string) (models.ResolveResult, error)

	// Get returns one conflict of the user.
	Get(ctx context.Context, userID int64, conflictID string) (models.SyncConflict, error)

	// List returns the user's conflicts matching the filter.
	List(ctx context.Context, filter models.ConflictFilter) ([]models.SyncConflict, error)
}

// StatusService owns the per-user sync status aggregate and its lifecycle
// transitions. All mutations are read-modify-write cycles guarded by the
// aggregate's optimistic version.
type StatusService interface {
	// GetStatus returns the client-facing status view with derived fields
	// (human-readable message, offline duration, live pending count).
	GetStatus(ctx context.Context, userID int64) (models.SyncStatusResponse, error)

	// EnterOffline marks the device/server link unavailable. Idempotent;
	// the original offline timestamp is kept on repeat calls.
	EnterOffline(ctx context.Context, userID int64) (models.SyncStatus, error)

	// ExitOffline clears offline mode.
	ExitOffline(ctx context.Context, userID int64) (models.SyncStatus, error)

	// BeginSession transitions the user to SYNCING with the given batch
	// size, clearing any previous error.
	BeginSession(ctx context.Context, userID int64, deviceID, appVersion string, total int) (models.SyncStatus, error)

	// UpdateProgress records that processed records of the current batch
	// have been classified.
	UpdateProgress(ctx context.Context, userID int64, processed int) error

	// CompleteSession transitions SYNCING -> IDLE, stamps the completion
	// time and stores the remaining pending count.
	CompleteSession(ctx context.Context, userID int64, pendingChanges int) (models.SyncStatus, error)

	// FailSession transitions the user to ERROR with the failure cause.
	FailSession(ctx context.Context, userID int64, cause string) (models.SyncStatus, error)
}

// QueueService manages the per-user FIFO queue of offline mutations.
type QueueService interface {
	// Enqueue validates and stores one offline mutation.
	Enqueue(ctx context.Context, userID int64, request models.QueueRequest) (models.QueueItem, error)

	// List returns the user's queue items matching the filter.
	List(ctx context.Context, filter models.QueueFilter) ([]models.QueueItem, error)

	// Delete removes one queued mutation.
	Delete(ctx context.Context, userID, itemID int64) error
}

// OrchestratorService runs complete sync sessions: ingest, classify, apply,
// park conflicts, drain the offline queue and track status transitions.
type OrchestratorService interface {
	// RunSession executes one sync session for the user. At most one session
	// runs per user at a time; a second caller gets ErrSessionInProgress.
	RunSession(ctx context.Context, userID int64, request models.SessionRequest) (models.SessionResult, error)
}

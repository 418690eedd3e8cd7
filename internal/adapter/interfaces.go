// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Farmassist

// Package adapter provides transport-layer abstractions for communicating
// with the sync engine's external collaborators: the domain-data service
// that owns authoritative entity state, and the notification service that
// informs clients about pending conflicts and refresh-required outcomes.
//
// Both collaborators ship HTTP/REST implementations built on resty. Error
// values defined in errors.go are mapped from HTTP status codes by
// mapHTTPError so that callers can use [errors.Is] for transport-agnostic
// error handling (e.g. [ErrVersionConflict] for 409).
package adapter

import (
	"context"
	"encoding/json"

	"github.com/farmassist/farm-sync/models"
)

//go:generate mockgen -source=interfaces.go -destination=../mock/adapter_mock.go -package=mock

// DomainDataService is the authoritative owner of per-entity state and
// versions. The sync engine never mutates domain records itself; every write
// goes through this collaborator.
type DomainDataService interface {
	// CurrentVersion returns the authoritative version of one entity
	// instance. A record the domain service has never seen reports
	// version zero.
	CurrentVersion(ctx context.Context, userID int64, entityType, entityID string) (int64, error)

	// ApplyChange applies one clean change using compare-and-increment
	// semantics on baseVersion. Returns the new authoritative version.
	// A concurrent write between classification and apply surfaces as
	// [ErrVersionConflict].
	ApplyChange(ctx context.Context, userID int64, change models.ChangeRecord) (int64, error)

	// ApplyResolution overwrites the entity with the winning payload of a
	// resolved conflict, bypassing the version check. Returns the new
	// authoritative version.
	ApplyResolution(ctx context.Context, userID int64, entityType, entityID string, payload json.RawMessage) (int64, error)

	// Merge asks the domain service to combine the local and server payloads
	// of a conflict into one merged document.
	Merge(ctx context.Context, userID int64, conflict models.SyncConflict) (json.RawMessage, error)
}

// Notifier pushes sync lifecycle events to interested clients. Notification
// failures are logged and swallowed; they never fail the triggering
// operation.
type Notifier interface {
	// NotifyConflictDetected announces a newly pending (or refreshed)
	// conflict for the user.
	NotifyConflictDetected(ctx context.Context, conflict models.SyncConflict) error

	// NotifyConflictResolved announces a closed conflict. refreshRequired
	// tells the client to re-fetch its local copy of the entity.
	NotifyConflictResolved(ctx context.Context, conflict models.SyncConflict, refreshRequired bool) error

	// NotifySyncCompleted announces the outcome of a finished sync session.
	NotifySyncCompleted(ctx context.Context, userID int64, result models.SessionResult) error
}

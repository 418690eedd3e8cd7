// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Farmassist

package models

import (
	"encoding/json"
	"time"
)

// ConflictStatus is the closed set of lifecycle states of a [SyncConflict].
type ConflictStatus string

const (
	// ConflictPending means the conflict is awaiting resolution.
	ConflictPending ConflictStatus = "PENDING"

	// ConflictResolved means a resolution strategy has been applied.
	ConflictResolved ConflictStatus = "RESOLVED"

	// ConflictIgnored means the conflict was dismissed without picking
	// a winning payload; server state is kept as-is.
	ConflictIgnored ConflictStatus = "IGNORED"
)

// ResolutionStrategy is the closed set of policies used to pick a winning
// payload when a conflict is closed.
type ResolutionStrategy string

const (
	// LocalWins overwrites server state with the client's submitted payload.
	LocalWins ResolutionStrategy = "LOCAL_WINS"

	// RemoteWins keeps the server's current payload and tells the client
	// to refresh its local copy.
	RemoteWins ResolutionStrategy = "REMOTE_WINS"

	// Merge applies a caller-supplied merged payload produced by the owning
	// domain service.
	Merge ResolutionStrategy = "MERGE"

	// Manual applies a human-supplied payload. Conflicts stay PENDING until
	// an explicit resolution call arrives; they are never auto-resolved.
	Manual ResolutionStrategy = "MANUAL"
)

// SyncConflict records one disputed entity instance for a user. At most one
// PENDING conflict exists per (UserID, EntityType, EntityID) at a time; a new
// divergence for an already-pending key updates the existing row. Resolved
// conflicts are retained as history.
type SyncConflict struct {
	// ID is the server-assigned conflict identifier (UUID).
	ID string `json:"id"`

	// UserID is the owner of the disputed entity.
	UserID int64 `json:"user_id"`

	// EntityType names the domain record kind in dispute (e.g. "crop").
	EntityType string `json:"entity_type"`

	// EntityID identifies the disputed record within its type.
	EntityID string `json:"entity_id"`

	// LocalPayload is the client-side record state that lost the version race.
	LocalPayload json.RawMessage `json:"local_payload,omitempty"`

	// LocalVersion is the server version the client's edit was based on.
	LocalVersion int64 `json:"local_version"`

	// ServerVersion is the authoritative version at detection time.
	ServerVersion int64 `json:"server_version"`

	// LocalTimestamp is the client-reported wall clock of the local edit.
	LocalTimestamp time.Time `json:"local_timestamp"`

	// DeviceID is the client device that submitted the losing change.
	DeviceID string `json:"device_id"`

	// Status is the conflict lifecycle state.
	Status ConflictStatus `json:"status"`

	// ResolutionStrategy is the policy applied on resolution. Empty while PENDING.
	ResolutionStrategy ResolutionStrategy `json:"resolution_strategy,omitempty"`

	// ResolvedData is the final agreed payload, populated only on resolution
	// via MERGE or MANUAL.
	ResolvedData json.RawMessage `json:"resolved_data,omitempty"`

	// ResolvedBy is the identity (user or "system") that performed resolution.
	ResolvedBy string `json:"resolved_by,omitempty"`

	// DetectedAt is when the divergence was first (or most recently) observed.
	DetectedAt time.Time `json:"detected_at"`

	// ResolvedAt is when the conflict was closed. Nil while PENDING.
	ResolvedAt *time.Time `json:"resolved_at,omitempty"`
}

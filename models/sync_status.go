// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Farmassist

package models

import "time"

// SyncState is the closed set of states a user's synchronization lifecycle
// can be in. The zero value is not valid; new statuses start in [StateIdle].
type SyncState string

const (
	// StateIdle means no sync activity is in progress and no session failed.
	StateIdle SyncState = "IDLE"

	// StateSyncing means a sync session is currently running for the user.
	StateSyncing SyncState = "SYNCING"

	// StateOffline means the client explicitly marked the device/server link
	// as unavailable. Reachable from any state, exits only to IDLE.
	StateOffline SyncState = "OFFLINE"

	// StateError means the last sync session failed. Not terminal: the next
	// ingest call transitions back to SYNCING.
	StateError SyncState = "ERROR"
)

// SyncStatus is the single per-user record that aggregates sync progress
// counters and state transitions. Exactly one row exists per user; it is
// created lazily on the first sync attempt and never deleted while the
// user account exists.
type SyncStatus struct {
	// UserID is the owner of this status record. Unique key.
	UserID int64 `json:"user_id"`

	// SyncState is the current lifecycle state.
	SyncState SyncState `json:"sync_state"`

	// LastSyncAt is the timestamp of the last successful completion.
	// Nil until the first sync completes.
	LastSyncAt *time.Time `json:"last_sync_at,omitempty"`

	// PendingChanges is the count of unsynced local mutations known to
	// the server (queued offline changes).
	PendingChanges int `json:"pending_changes"`

	// SyncingCount is the number of records classified so far in the
	// current session. After a failed session it keeps the count reached
	// before the abort, so partial progress stays visible for diagnostics.
	SyncingCount int `json:"syncing_count"`

	// TotalToSync is the total number of valid records in the current
	// session batch. Kept alongside SyncingCount after a failure.
	TotalToSync int `json:"total_to_sync"`

	// ProgressPercent is floor(100*SyncingCount/TotalToSync) while
	// SyncState == SYNCING and TotalToSync > 0, otherwise 0.
	ProgressPercent int `json:"progress_percent"`

	// IsOffline is set when the device/server link is explicitly marked
	// unavailable. Does not block sync sessions by itself.
	IsOffline bool `json:"is_offline"`

	// OfflineSince records when offline mode was entered. Nil when online.
	OfflineSince *time.Time `json:"offline_since,omitempty"`

	// LastError is the last failure description. Cleared on the next
	// successful transition into SYNCING.
	LastError string `json:"last_error,omitempty"`

	// DeviceID identifies the most recent originating client device.
	DeviceID string `json:"device_id"`

	// AppVersion is the client application version of the most recent
	// originating device.
	AppVersion string `json:"app_version"`

	// StatusVersion is the optimistic-locking counter for whole-aggregate
	// read-modify-write updates of this row. Internal, never sent to clients.
	StatusVersion int64 `json:"-"`
}

// RecomputeProgress re-derives ProgressPercent from the current state and
// counters. The percentage is only meaningful during an active session;
// outside SYNCING it is pinned to 0 even when the counters survive (as they
// do after a failed session).
func (s *SyncStatus) RecomputeProgress() {
	if s.SyncState == StateSyncing && s.TotalToSync > 0 {
		s.ProgressPercent = s.SyncingCount * 100 / s.TotalToSync
		return
	}
	s.ProgressPercent = 0
}

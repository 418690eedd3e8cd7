// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Farmassist

package models

// ConflictFilter narrows conflict list queries. The zero value of an
// optional field means "no constraint".
type ConflictFilter struct {
	// UserID is required; listings never cross user boundaries.
	UserID int64

	// Status restricts to one lifecycle state (e.g. PENDING only).
	Status ConflictStatus

	// EntityType restricts to one domain record kind.
	EntityType string

	// Limit caps the number of returned rows. Zero means no cap.
	Limit uint64
}

// QueueFilter narrows offline queue listings. The zero value of an optional
// field means "no constraint".
type QueueFilter struct {
	// UserID is required; listings never cross user boundaries.
	UserID int64

	// Status restricts to one queue lifecycle state.
	Status QueueStatus

	// Limit caps the number of returned rows. Zero means no cap.
	Limit uint64
}

// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Farmassist

package models

import (
	"encoding/json"
	"time"
)

// SessionRequest is sent by a client device to start one sync session.
// Changes are processed strictly in the order supplied.
type SessionRequest struct {
	// DeviceID identifies the calling client device.
	DeviceID string `json:"device_id"`

	// AppVersion is the client application version, recorded on the user's
	// sync status for compatibility diagnostics.
	AppVersion string `json:"app_version"`

	// Changes is the ordered batch of local mutations to reconcile.
	Changes []ChangeRecord `json:"changes"`
}

// ResolveRequest closes one pending conflict.
type ResolveRequest struct {
	// Strategy selects the resolution policy.
	Strategy ResolutionStrategy `json:"strategy"`

	// ResolvedData is the winning payload. Required for MANUAL; optional for
	// MERGE, where an empty payload delegates the merge to the domain service.
	// Ignored for LOCAL_WINS and REMOTE_WINS.
	ResolvedData json.RawMessage `json:"resolved_data,omitempty"`

	// ResolvedBy is the identity performing the resolution. Automatic
	// strategies may pass "system".
	ResolvedBy string `json:"resolved_by"`
}

// QueueRequest enqueues one offline mutation for later synchronization.
type QueueRequest struct {
	EntityType      string          `json:"entity_type"`
	EntityID        string          `json:"entity_id"`
	Operation       QueueOperation  `json:"operation"`
	LocalVersion    int64           `json:"local_version"`
	Payload         json.RawMessage `json:"payload,omitempty"`
	DeviceID        string          `json:"device_id"`
	ClientTimestamp time.Time       `json:"client_timestamp"`
}

package models

import (
	"encoding/json"
	"time"
)

// ChangeRecord is one client-side mutation submitted in a sync session.
// Records are ephemeral: produced by the ingestor, consumed by the detector,
// and discarded once classified.
type ChangeRecord struct {
	// EntityType names the domain record kind being mutated.
	EntityType string `json:"entity_type"`

	// EntityID identifies the mutated record within its type.
	EntityID string `json:"entity_id"`

	// LocalVersion is the client's view of the last-synced server version.
	LocalVersion int64 `json:"local_version"`

	// Payload is the full record state as edited on the client.
	Payload json.RawMessage `json:"payload"`

	// LocalTimestamp is the client wall clock of the edit.
	LocalTimestamp time.Time `json:"local_timestamp"`

	// DeviceID identifies the originating client device.
	DeviceID string `json:"device_id"`
}

// Classification is the detector's verdict for a single change record.
type Classification string

const (
	// Clean means the change is based on the latest server version and can
	// be applied directly.
	Clean Classification = "CLEAN"

	// Conflict means the server holds a version the client never saw.
	Conflict Classification = "CONFLICT"
)

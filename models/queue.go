package models

import (
	"encoding/json"
	"time"
)

// QueueOperation is the kind of mutation held in the offline queue.
type QueueOperation string

const (
	OperationCreate QueueOperation = "CREATE"
	OperationUpdate QueueOperation = "UPDATE"
	OperationDelete QueueOperation = "DELETE"
)

// QueueStatus is the lifecycle state of a queued offline mutation.
type QueueStatus string

const (
	// QueuePending — waiting to be processed, in FIFO order.
	QueuePending QueueStatus = "PENDING"

	// QueueInProgress — claimed by a running sync session.
	QueueInProgress QueueStatus = "IN_PROGRESS"

	// QueueCompleted — applied to the authoritative state.
	QueueCompleted QueueStatus = "COMPLETED"

	// QueueFailed — apply failed after all retries.
	QueueFailed QueueStatus = "FAILED"

	// QueueConflict — a divergence was detected; a SyncConflict row holds
	// the details and the item waits for resolution.
	QueueConflict QueueStatus = "CONFLICT"
)

// QueueItem is one client mutation recorded while the device was offline.
// Items are drained in FIFO order (by CreatedAt) when a sync session runs.
type QueueItem struct {
	ID              int64           `json:"id"`
	UserID          int64           `json:"user_id"`
	EntityType      string          `json:"entity_type"`
	EntityID        string          `json:"entity_id"`
	Operation       QueueOperation  `json:"operation"`
	LocalVersion    int64           `json:"local_version"`
	Payload         json.RawMessage `json:"payload,omitempty"`
	Status          QueueStatus     `json:"status"`
	RetryCount      int             `json:"retry_count"`
	LastError       string          `json:"last_error,omitempty"`
	DeviceID        string          `json:"device_id"`
	ClientTimestamp time.Time       `json:"client_timestamp"`
	CreatedAt       time.Time       `json:"created_at"`
	ProcessedAt     *time.Time      `json:"processed_at,omitempty"`
}

package models

// FailureKind classifies why a single record could not be applied.
type FailureKind string

const (
	// MalformedChange — the record failed ingest validation.
	MalformedChange FailureKind = "MALFORMED_CHANGE"

	// ApplyFailed — the domain collaborator failed after bounded retries.
	ApplyFailed FailureKind = "APPLY_FAILED"

	// VersionConflictKind — the detector's defensive catch of a client
	// version ahead of the server.
	VersionConflictKind FailureKind = "VERSION_CONFLICT"
)

// RecordFailure describes one record that did not apply, so the client can
// re-queue it locally.
type RecordFailure struct {
	EntityType string      `json:"entity_type"`
	EntityID   string      `json:"entity_id"`
	Kind       FailureKind `json:"kind"`
	Reason     string      `json:"reason,omitempty"`
}

// IngestResult is the ingestor's split of a submitted batch into records
// that proceed to classification and records rejected individually.
type IngestResult struct {
	// Valid holds the records that passed validation, in submission order.
	Valid []ChangeRecord `json:"-"`

	// Rejected reports each invalid record with kind MALFORMED_CHANGE.
	Rejected []RecordFailure `json:"rejected,omitempty"`
}

// SessionResult summarizes one completed sync session. The client
// distinguishes "applied", "needs resolution", and "failed" records from it.
type SessionResult struct {
	// Applied is the number of CLEAN records applied to server state.
	Applied int `json:"applied"`

	// Conflicts is the number of records routed to conflict resolution.
	Conflicts int `json:"conflicts"`

	// Failed lists records rejected at ingest or exhausted on apply retries.
	Failed []RecordFailure `json:"failed,omitempty"`

	// RemainingPending is the count of PENDING conflicts for the user after
	// the session, including ones carried over from earlier sessions.
	RemainingPending int `json:"remaining_pending"`

	// Status is the user's sync status snapshot taken after the session.
	Status SyncStatus `json:"status"`
}

// ResolveResult reports the outcome of a conflict resolution call.
type ResolveResult struct {
	// Conflict is the closed conflict row, including resolution metadata.
	Conflict SyncConflict `json:"conflict"`

	// NewVersion is the server version after the winning payload was applied.
	// Zero when the resolution kept server state (REMOTE_WINS, IGNORED).
	NewVersion int64 `json:"new_version,omitempty"`

	// RefreshRequired tells the client to refresh its local copy because the
	// server payload won.
	RefreshRequired bool `json:"refresh_required,omitempty"`
}

// SyncStatusResponse is the client-facing view of a SyncStatus with derived
// presentation fields.
type SyncStatusResponse struct {
	SyncStatus

	// StatusMessage is a human-readable one-line summary of the sync state.
	StatusMessage string `json:"status_message"`

	// OfflineDurationSeconds is how long the user has been offline.
	// Nil when online.
	OfflineDurationSeconds *int64 `json:"offline_duration_seconds,omitempty"`
}

// ConflictListResponse wraps the pending conflicts of a user.
type ConflictListResponse struct {
	Conflicts []SyncConflict `json:"conflicts"`
	Length    int            `json:"length"`
}

// QueueListResponse wraps the queued offline mutations of a user.
type QueueListResponse struct {
	Items  []QueueItem `json:"items"`
	Length int         `json:"length"`
}

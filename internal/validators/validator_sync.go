package validators

import (
	"context"

	"github.com/farmassist/farm-sync/models"
)

// Field name constants used to specify which fields should be validated.
// These constants are passed to Validate to restrict validation to a subset
// of fields (field-level scoping).
const (
	// FieldEntityType targets the domain record kind of a change or queue item.
	FieldEntityType = "entity_type"

	// FieldEntityID targets the record identifier within its entity type.
	FieldEntityID = "entity_id"

	// FieldLocalVersion targets the client-reported base version of a change.
	FieldLocalVersion = "local_version"

	// FieldDeviceID targets the originating client device identifier.
	FieldDeviceID = "device_id"

	// FieldStrategy targets the resolution strategy of a resolve request.
	FieldStrategy = "strategy"

	// FieldResolvedData enforces that MANUAL resolutions carry a winning
	// payload; MERGE may omit it and delegate merging to the domain service.
	FieldResolvedData = "resolved_data"

	// FieldResolvedBy targets the identity performing a resolution.
	FieldResolvedBy = "resolved_by"

	// FieldOperation targets the mutation kind of a queue request.
	FieldOperation = "operation"
)

// allowedStrategies is the exhaustive set of ResolutionStrategy values
// accepted by the validator. Any strategy not present here is invalid.
var allowedStrategies = []models.ResolutionStrategy{
	models.LocalWins,
	models.RemoteWins,
	models.Merge,
	models.Manual,
}

// allowedOperations is the exhaustive set of QueueOperation values accepted
// by the validator.
var allowedOperations = []models.QueueOperation{
	models.OperationCreate,
	models.OperationUpdate,
	models.OperationDelete,
}

// SyncValidator validates the inbound payloads of the sync engine: change
// records, session batches, resolution requests and offline queue requests.
type SyncValidator struct {
}

// NewSyncValidator constructs a [SyncValidator].
func NewSyncValidator() Validator {
	return &SyncValidator{}
}

// Validate dispatches validation to the appropriate type-specific method
// based on the dynamic type of obj. Both value and pointer forms of each
// supported model are accepted.
//
// Supported types:
//   - models.ChangeRecord / *models.ChangeRecord
//   - models.SessionRequest / *models.SessionRequest
//   - models.ResolveRequest / *models.ResolveRequest
//   - models.QueueRequest / *models.QueueRequest
//
// Returns ErrUnsupportedType if obj does not match any known model.
// Optional fields restrict validation to the named subset; when omitted,
// a sensible default set of fields is validated.
func (v *SyncValidator) Validate(ctx context.Context, obj any, fields ...string) error {
	switch value := obj.(type) {
	case models.ChangeRecord:
		return v.validateChangeRecord(ctx, value, fields...)
	case *models.ChangeRecord:
		return v.validateChangeRecord(ctx, *value, fields...)

	case models.SessionRequest:
		return v.validateSessionRequest(ctx, value, fields...)
	case *models.SessionRequest:
		return v.validateSessionRequest(ctx, *value, fields...)

	case models.ResolveRequest:
		return v.validateResolveRequest(ctx, value, fields...)
	case *models.ResolveRequest:
		return v.validateResolveRequest(ctx, *value, fields...)

	case models.QueueRequest:
		return v.validateQueueRequest(ctx, value, fields...)
	case *models.QueueRequest:
		return v.validateQueueRequest(ctx, *value, fields...)

	default:
		return ErrUnsupportedType
	}
}

// isValidStrategy reports whether s is one of the recognized
// ResolutionStrategy values defined in allowedStrategies.
func isValidStrategy(s models.ResolutionStrategy) bool {
	for _, allowed := range allowedStrategies {
		if s == allowed {
			return true
		}
	}
	return false
}

// isValidOperation reports whether op is one of the recognized
// QueueOperation values defined in allowedOperations.
func isValidOperation(op models.QueueOperation) bool {
	for _, allowed := range allowedOperations {
		if op == allowed {
			return true
		}
	}
	return false
}

// validateChangeRecord validates a single ChangeRecord.
//
// Default validated fields (when none specified):
// EntityType, EntityID, LocalVersion.
//
// Returns the first encountered validation error or nil. A failing record
// is what the ingestor reports as a malformed change.
func (v *SyncValidator) validateChangeRecord(_ context.Context, change models.ChangeRecord, fields ...string) error {
	if len(fields) == 0 {
		fields = []string{FieldEntityType, FieldEntityID, FieldLocalVersion}
	}

	for _, f := range fields {
		switch f {
		case FieldEntityType:
			if change.EntityType == "" {
				return ErrEmptyEntityType
			}
		case FieldEntityID:
			if change.EntityID == "" {
				return ErrEmptyEntityID
			}
		case FieldLocalVersion:
			if change.LocalVersion < 0 {
				return ErrInvalidLocalVersion
			}
		case FieldDeviceID:
			if change.DeviceID == "" {
				return ErrEmptyDeviceID
			}
		default:
			return ErrUnknownField
		}
	}

	return nil
}

// validateSessionRequest validates the envelope of a sync session request.
// An empty change batch is legal: such a session only drains the offline
// queue. Per-record validation stays with validateChangeRecord so the
// ingestor can reject records individually instead of failing the whole
// batch.
func (v *SyncValidator) validateSessionRequest(_ context.Context, request models.SessionRequest, fields ...string) error {
	if len(fields) == 0 {
		fields = []string{FieldDeviceID}
	}

	for _, f := range fields {
		switch f {
		case FieldDeviceID:
			if request.DeviceID == "" {
				return ErrEmptyDeviceID
			}
		default:
			return ErrUnknownField
		}
	}

	return nil
}

// validateResolveRequest validates a conflict resolution request.
//
// Default validated fields: Strategy, ResolvedData, ResolvedBy. The
// ResolvedData rule is strategy-dependent: MANUAL must carry a winning
// payload; MERGE may omit it and delegate merging to the domain service.
func (v *SyncValidator) validateResolveRequest(_ context.Context, request models.ResolveRequest, fields ...string) error {
	if len(fields) == 0 {
		fields = []string{FieldStrategy, FieldResolvedData, FieldResolvedBy}
	}

	for _, f := range fields {
		switch f {
		case FieldStrategy:
			if !isValidStrategy(request.Strategy) {
				return ErrInvalidStrategy
			}
		case FieldResolvedData:
			if request.Strategy == models.Manual && len(request.ResolvedData) == 0 {
				return ErrMissingResolvedData
			}
		case FieldResolvedBy:
			if request.ResolvedBy == "" {
				return ErrEmptyResolvedBy
			}
		default:
			return ErrUnknownField
		}
	}

	return nil
}

// validateQueueRequest validates one offline mutation before it is enqueued.
func (v *SyncValidator) validateQueueRequest(_ context.Context, request models.QueueRequest, fields ...string) error {
	if len(fields) == 0 {
		fields = []string{FieldEntityType, FieldEntityID, FieldOperation, FieldLocalVersion, FieldDeviceID}
	}

	for _, f := range fields {
		switch f {
		case FieldEntityType:
			if request.EntityType == "" {
				return ErrEmptyEntityType
			}
		case FieldEntityID:
			if request.EntityID == "" {
				return ErrEmptyEntityID
			}
		case FieldOperation:
			if !isValidOperation(request.Operation) {
				return ErrInvalidOperation
			}
		case FieldLocalVersion:
			if request.LocalVersion < 0 {
				return ErrInvalidLocalVersion
			}
		case FieldDeviceID:
			if request.DeviceID == "" {
				return ErrEmptyDeviceID
			}
		default:
			return ErrUnknownField
		}
	}

	return nil
}

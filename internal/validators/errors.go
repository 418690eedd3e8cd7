package validators

import "errors"

var (
	ErrUnsupportedType = errors.New("unsupported type for validation")
	ErrUnknownField    = errors.New("unknown field for validation")

	ErrInvalidUserID       = errors.New("invalid user ID")
	ErrEmptyEntityType     = errors.New("entity type is required")
	ErrEmptyEntityID       = errors.New("entity id is required")
	ErrInvalidLocalVersion = errors.New("invalid local version")
	ErrEmptyDeviceID       = errors.New("device id is required")
	ErrInvalidStrategy     = errors.New("invalid resolution strategy")
	ErrMissingResolvedData = errors.New("resolved data is required for this strategy")
	ErrEmptyResolvedBy     = errors.New("resolved by is required")
	ErrInvalidOperation    = errors.New("invalid queue operation")
)

package service

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/farmassist/farm-sync/internal/adapter"
	"github.com/farmassist/farm-sync/internal/logger"
	"github.com/farmassist/farm-sync/internal/store"
	"github.com/farmassist/farm-sync/internal/validators"
	"github.com/farmassist/farm-sync/models"
)

// resolveService closes pending conflicts. Applying the winning payload to
// domain state happens before the conflict row is marked resolved, so a
// failed apply leaves the conflict pending and retryable.
type resolveService struct {
	conflicts store.ConflictRepository
	domain    adapter.DomainDataService
	notifier  adapter.Notifier
	validator validators.Validator

	logger *logger.Logger
}

// NewResolveService constructs a [ResolveService].
func NewResolveService(conflicts store.ConflictRepository, domain adapter.DomainDataService, notifier adapter.Notifier, validator validators.Validator, logger *logger.Logger) ResolveService {
	return &resolveService{
		conflicts: conflicts,
		domain:    domain,
		notifier:  notifier,
		validator: validator,
		logger:    logger,
	}
}

// Resolve implements [ResolveService].
func (s *resolveService) Resolve(ctx context.Context, userID int64, conflictID string, request models.ResolveRequest) (models.ResolveResult, error) {
	log := logger.FromContext(ctx)

	if userID <= 0 {
		return models.ResolveResult{}, ErrNoUserID
	}

	if err := s.validator.Validate(ctx, request); err != nil {
		if errors.Is(err, validators.ErrMissingResolvedData) {
			return models.ResolveResult{}, fmt.Errorf("%w: %w", ErrResolutionIncomplete, err)
		}
		if errors.Is(err, validators.ErrInvalidStrategy) {
			return models.ResolveResult{}, fmt.Errorf("%w: %q", ErrUnknownStrategy, request.Strategy)
		}
		return models.ResolveResult{}, err
	}

	conflict, err := s.conflicts.Get(ctx, userID, conflictID)
	if err != nil {
		return models.ResolveResult{}, err
	}
	if conflict.Status != models.ConflictPending {
		return models.ResolveResult{}, ErrAlreadyResolved
	}

	winning, newVersion, refreshRequired, err := s.applyStrategy(ctx, userID, conflict, request)
	if err != nil {
		log.Err(err).
			Str("func", "resolveService.Resolve").
			Int64("user_id", userID).
			Str("conflict_id", conflictID).
			Str("strategy", string(request.Strategy)).
			Msg("failed to apply winning payload, conflict stays pending")
		return models.ResolveResult{}, err
	}

	closed, err := s.conflicts.Resolve(ctx, userID, conflictID, models.ConflictResolved, request.Strategy, winning, request.ResolvedBy)
	if err != nil {
		if errors.Is(err, store.ErrConflictAlreadyResolved) {
			return models.ResolveResult{}, ErrAlreadyResolved
		}
		return models.ResolveResult{}, err
	}

	if notifyErr := s.notifier.NotifyConflictResolved(ctx, closed, refreshRequired); notifyErr != nil {
		log.Warn().
			Str("func", "resolveService.Resolve").
			Int64("user_id", userID).
			Str("conflict_id", conflictID).
			Err(notifyErr).
			Msg("resolution notification failed, continuing")
	}

	log.Info().
		Str("func", "resolveService.Resolve").
		Int64("user_id", userID).
		Str("conflict_id", conflictID).
		Str("strategy", string(request.Strategy)).
		Int64("new_version", newVersion).
		Msg("conflict resolved")

	return models.ResolveResult{
		Conflict:        closed,
		NewVersion:      newVersion,
		RefreshRequired: refreshRequired,
	}, nil
}

// applyStrategy pushes the winning payload to domain state and reports the
// stored resolution payload, the resulting version and whether the client
// must refresh its local copy.
func (s *resolveService) applyStrategy(ctx context.Context, userID int64, conflict models.SyncConflict, request models.ResolveRequest) (json.RawMessage, int64, bool, error) {
	switch request.Strategy {
	case models.LocalWins:
		newVersion, err := s.domain.ApplyResolution(ctx, userID, conflict.EntityType, conflict.EntityID, conflict.LocalPayload)
		if err != nil {
			return nil, 0, false, fmt.Errorf("applying local payload: %w", err)
		}
		return conflict.LocalPayload, newVersion, false, nil

	case models.RemoteWins:
		// Server state already holds the winner; nothing to apply.
		return nil, 0, true, nil

	case models.Merge:
		merged := request.ResolvedData
		if len(merged) == 0 {
			var err error
			merged, err = s.domain.Merge(ctx, userID, conflict)
			if err != nil {
				return nil, 0, false, fmt.Errorf("merging payloads: %w", err)
			}
		}
		newVersion, err := s.domain.ApplyResolution(ctx, userID, conflict.EntityType, conflict.EntityID, merged)
		if err != nil {
			return nil, 0, false, fmt.Errorf("applying merged payload: %w", err)
		}
		return merged, newVersion, true, nil

	case models.Manual:
		if len(request.ResolvedData) == 0 {
			return nil, 0, false, ErrResolutionIncomplete
		}
		newVersion, err := s.domain.ApplyResolution(ctx, userID, conflict.EntityType, conflict.EntityID, request.ResolvedData)
		if err != nil {
			return nil, 0, false, fmt.Errorf("applying manual payload: %w", err)
		}
		return request.ResolvedData, newVersion, true, nil

	default:
		return nil, 0, false, fmt.Errorf("%w: %q", ErrUnknownStrategy, request.Strategy)
	}
}

// ResolveAllAuto implements [ResolveService]. MANUAL is not an automatic
// strategy: batch resolution must never invent a human decision.
func (s *resolveService) ResolveAllAuto(ctx context.Context, userID int64, strategy models.ResolutionStrategy, resolvedBy string) ([]models.ResolveResult, error) {
	log := logger.FromContext(ctx)

	if userID <= 0 {
		return nil, ErrNoUserID
	}
	if strategy == models.Manual {
		return nil, fmt.Errorf("%w: MANUAL cannot be applied automatically", ErrUnknownStrategy)
	}

	pending, err := s.conflicts.List(ctx, models.ConflictFilter{
		UserID: userID,
		Status: models.ConflictPending,
	})
	if err != nil {
		return nil, err
	}

	results := make([]models.ResolveResult, 0, len(pending))

	for _, conflict := range pending {
		result, resolveErr := s.Resolve(ctx, userID, conflict.ID, models.ResolveRequest{
			Strategy:   strategy,
			ResolvedBy: resolvedBy,
		})
		if resolveErr != nil {
			// Another resolver may have closed the conflict concurrently.
			log.Warn().
				Str("func", "resolveService.ResolveAllAuto").
				Int64("user_id", userID).
				Str("conflict_id", conflict.ID).
				Err(resolveErr).
				Msg("skipping conflict that failed automatic resolution")
			continue
		}
		results = append(results, result)
	}

	log.Info().
		Str("func", "resolveService.ResolveAllAuto").
		Int64("user_id", userID).
		Str("strategy", string(strategy)).
		Int("pending", len(pending)).
		Int("resolved", len(results)).
		Msg("automatic batch resolution finished")

	return results, nil
}

// Ignore implements [ResolveService]. Domain state is untouched; the
// conflict is closed as IGNORED and kept as history.
func (s *resolveService) Ignore(ctx context.Context, userID int64, conflictID, resolvedBy string) (models.ResolveResult, error) {
	log := logger.FromContext(ctx)

	if userID <= 0 {
		return models.ResolveResult{}, ErrNoUserID
	}

	closed, err := s.conflicts.Resolve(ctx, userID, conflictID, models.ConflictIgnored, models.RemoteWins, nil, resolvedBy)
	if err != nil {
		if errors.Is(err, store.ErrConflictAlreadyResolved) {
			return models.ResolveResult{}, ErrAlreadyResolved
		}
		return models.ResolveResult{}, err
	}

	if notifyErr := s.notifier.NotifyConflictResolved(ctx, closed, false); notifyErr != nil {
		log.Warn().
			Str("func", "resolveService.Ignore").
			Int64("user_id", userID).
			Str("conflict_id", conflictID).
			Err(notifyErr).
			Msg("resolution notification failed, continuing")
	}

	return models.ResolveResult{Conflict: closed}, nil
}

// Get implements [ResolveService].
func (s *resolveService) Get(ctx context.Context, userID int64, conflictID string) (models.SyncConflict, error) {
	if userID <= 0 {
		return models.SyncConflict{}, ErrNoUserID
	}
	return s.conflicts.Get(ctx, userID, conflictID)
}

// List implements [ResolveService].
func (s *resolveService) List(ctx context.Context, filter models.ConflictFilter) ([]models.SyncConflict, error) {
	if filter.UserID <= 0 {
		return nil, ErrNoUserID
	}
	return s.conflicts.List(ctx, filter)
}

package http

import (
	"encoding/json"
	"net/http"
	"strconv"

	"github.com/farmassist/farm-sync/internal/logger"
	"github.com/farmassist/farm-sync/internal/utils"
	"github.com/farmassist/farm-sync/models"
	"github.com/go-chi/chi/v5"
)

func (h *Handler) listConflicts(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	log := logger.FromRequest(r)

	userID, found := utils.GetUserIDFromContext(ctx)
	if !found {
		log.Error().Str("func", "*Handler.listConflicts").Msg("no user ID was given")
		http.Error(w, "no user ID was given", http.StatusBadRequest)
		return
	}

	filter := models.ConflictFilter{
		UserID:     userID,
		Status:     models.ConflictStatus(r.URL.Query().Get("status")),
		EntityType: r.URL.Query().Get("entity_type"),
	}
	if rawLimit := r.URL.Query().Get("limit"); rawLimit != "" {
		limit, err := strconv.ParseUint(rawLimit, 10, 64)
		if err != nil {
			http.Error(w, "invalid limit", http.StatusBadRequest)
			return
		}
		filter.Limit = limit
	}

	conflicts, err := h.services.Resolver.List(ctx, filter)
	if err != nil {
		log.Err(err).Str("func", "*Handler.listConflicts").Msg("error listing conflicts")
		http.Error(w, "error listing conflicts", statusFromError(err))
		return
	}

	response := models.ConflictListResponse{
		Conflicts: conflicts,
		Length:    len(conflicts),
	}

	utils.WriteJSON(w, response, http.StatusOK)
}

func (h *Handler) getConflict(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	log := logger.FromRequest(r)

	userID, found := utils.GetUserIDFromContext(ctx)
	if !found {
		log.Error().Str("func", "*Handler.getConflict").Msg("no user ID was given")
		http.Error(w, "no user ID was given", http.StatusBadRequest)
		return
	}

	conflictID := chi.URLParam(r, "conflictID")

	conflict, err := h.services.Resolver.Get(ctx, userID, conflictID)
	if err != nil {
		log.Err(err).Str("func", "*Handler.getConflict").Str("conflict_id", conflictID).Msg("error getting conflict")
		http.Error(w, "error getting conflict", statusFromError(err))
		return
	}

	utils.WriteJSON(w, conflict, http.StatusOK)
}

func (h *Handler) resolveConflict(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	log := logger.FromRequest(r)

	userID, found := utils.GetUserIDFromContext(ctx)
	if !found {
		log.Error().Str("func", "*Handler.resolveConflict").Msg("no user ID was given")
		http.Error(w, "no user ID was given", http.StatusBadRequest)
		return
	}

	conflictID := chi.URLParam(r, "conflictID")

	var request models.ResolveRequest
	if err := json.NewDecoder(r.Body).Decode(&request); err != nil {
		log.Err(err).Str("func", "*Handler.resolveConflict").Msg("Invalid JSON was passed")
		http.Error(w, "Invalid JSON was passed", http.StatusBadRequest)
		return
	}

	result, err := h.services.Resolver.Resolve(ctx, userID, conflictID, request)
	if err != nil {
		log.Err(err).Str("func", "*Handler.resolveConflict").Str("conflict_id", conflictID).Msg("error resolving conflict")
		http.Error(w, err.Error(), statusFromError(err))
		return
	}

	utils.WriteJSON(w, result, http.StatusOK)
}

// resolveAllRequest is the body of the batch resolution endpoint.
type resolveAllRequest struct {
	Strategy   models.ResolutionStrategy `json:"strategy"`
	ResolvedBy string                    `json:"resolved_by"`
}

func (h *Handler) resolveAllConflicts(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	log := logger.FromRequest(r)

	userID, found := utils.GetUserIDFromContext(ctx)
	if !found {
		log.Error().Str("func", "*Handler.resolveAllConflicts").Msg("no user ID was given")
		http.Error(w, "no user ID was given", http.StatusBadRequest)
		return
	}

	var request resolveAllRequest
	if err := json.NewDecoder(r.Body).Decode(&request); err != nil {
		log.Err(err).Str("func", "*Handler.resolveAllConflicts").Msg("Invalid JSON was passed")
		http.Error(w, "Invalid JSON was passed", http.StatusBadRequest)
		return
	}
	if request.ResolvedBy == "" {
		request.ResolvedBy = "system"
	}

	results, err := h.services.Resolver.ResolveAllAuto(ctx, userID, request.Strategy, request.ResolvedBy)
	if err != nil {
		log.Err(err).Str("func", "*Handler.resolveAllConflicts").Msg("error resolving conflicts")
		http.Error(w, err.Error(), statusFromError(err))
		return
	}

	utils.WriteJSON(w, results, http.StatusOK)
}

// ignoreRequest is the body of the conflict dismissal endpoint.
type ignoreRequest struct {
	ResolvedBy string `json:"resolved_by"`
}

func (h *Handler) ignoreConflict(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	log := logger.FromRequest(r)

	userID, found := utils.GetUserIDFromContext(ctx)
	if !found {
		log.Error().Str("func", "*Handler.ignoreConflict").Msg("no user ID was given")
		http.Error(w, "no user ID was given", http.StatusBadRequest)
		return
	}

	conflictID := chi.URLParam(r, "conflictID")

	var request ignoreRequest
	if r.Body != nil && r.ContentLength != 0 {
		if err := json.NewDecoder(r.Body).Decode(&request); err != nil {
			log.Err(err).Str("func", "*Handler.ignoreConflict").Msg("Invalid JSON was passed")
			http.Error(w, "Invalid JSON was passed", http.StatusBadRequest)
			return
		}
	}

	result, err := h.services.Resolver.Ignore(ctx, userID, conflictID, request.ResolvedBy)
	if err != nil {
		log.Err(err).Str("func", "*Handler.ignoreConflict").Str("conflict_id", conflictID).Msg("error ignoring conflict")
		http.Error(w, err.Error(), statusFromError(err))
		return
	}

	utils.WriteJSON(w, result, http.StatusOK)
}

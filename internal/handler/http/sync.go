package http

import (
	"encoding/json"
	"net/http"

	"github.com/farmassist/farm-sync/internal/logger"
	"github.com/farmassist/farm-sync/internal/utils"
	"github.com/farmassist/farm-sync/models"
)

func (h *Handler) runSyncSession(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	log := logger.FromRequest(r)

	userID, found := utils.GetUserIDFromContext(ctx)
	if !found {
		log.Error().Str("func", "*Handler.runSyncSession").Msg("no user ID was given")
		http.Error(w, "no user ID was given", http.StatusBadRequest)
		return
	}

	var request models.SessionRequest
	if err := json.NewDecoder(r.Body).Decode(&request); err != nil {
		log.Err(err).Str("func", "*Handler.runSyncSession").Msg("Invalid JSON was passed")
		http.Error(w, "Invalid JSON was passed", http.StatusBadRequest)
		return
	}

	result, err := h.services.Orchestrator.RunSession(ctx, userID, request)
	if err != nil {
		log.Err(err).Str("func", "*Handler.runSyncSession").Msg("sync session failed")
		http.Error(w, err.Error(), statusFromError(err))
		return
	}

	utils.WriteJSON(w, result, http.StatusOK)
}

func (h *Handler) getSyncStatus(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	log := logger.FromRequest(r)

	userID, found := utils.GetUserIDFromContext(ctx)
	if !found {
		log.Error().Str("func", "*Handler.getSyncStatus").Msg("no user ID was given")
		http.Error(w, "no user ID was given", http.StatusBadRequest)
		return
	}

	status, err := h.services.Status.GetStatus(ctx, userID)
	if err != nil {
		log.Err(err).Str("func", "*Handler.getSyncStatus").Msg("error getting sync status")
		http.Error(w, "error getting sync status", statusFromError(err))
		return
	}

	utils.WriteJSON(w, status, http.StatusOK)
}

func (h *Handler) enterOffline(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	log := logger.FromRequest(r)

	userID, found := utils.GetUserIDFromContext(ctx)
	if !found {
		log.Error().Str("func", "*Handler.enterOffline").Msg("no user ID was given")
		http.Error(w, "no user ID was given", http.StatusBadRequest)
		return
	}

	status, err := h.services.Status.EnterOffline(ctx, userID)
	if err != nil {
		log.Err(err).Str("func", "*Handler.enterOffline").Msg("error entering offline mode")
		http.Error(w, "error entering offline mode", statusFromError(err))
		return
	}

	utils.WriteJSON(w, status, http.StatusOK)
}

func (h *Handler) exitOffline(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	log := logger.FromRequest(r)

	userID, found := utils.GetUserIDFromContext(ctx)
	if !found {
		log.Error().Str("func", "*Handler.exitOffline").Msg("no user ID was given")
		http.Error(w, "no user ID was given", http.StatusBadRequest)
		return
	}

	status, err := h.services.Status.ExitOffline(ctx, userID)
	if err != nil {
		log.Err(err).Str("func", "*Handler.exitOffline").Msg("error exiting offline mode")
		http.Error(w, "error exiting offline mode", statusFromError(err))
		return
	}

	utils.WriteJSON(w, status, http.StatusOK)
}

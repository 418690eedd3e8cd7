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

func (h *Handler) enqueueOfflineChange(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	log := logger.FromRequest(r)

	userID, found := utils.GetUserIDFromContext(ctx)
	if !found {
		log.Error().Str("func", "*Handler.enqueueOfflineChange").Msg("no user ID was given")
		http.Error(w, "no user ID was given", http.StatusBadRequest)
		return
	}

	var request models.QueueRequest
	if err := json.NewDecoder(r.Body).Decode(&request); err != nil {
		log.Err(err).Str("func", "*Handler.enqueueOfflineChange").Msg("Invalid JSON was passed")
		http.Error(w, "Invalid JSON was passed", http.StatusBadRequest)
		return
	}

	item, err := h.services.Queue.Enqueue(ctx, userID, request)
	if err != nil {
		log.Err(err).Str("func", "*Handler.enqueueOfflineChange").Msg("error enqueueing offline change")
		http.Error(w, err.Error(), statusFromError(err))
		return
	}

	utils.WriteJSON(w, item, http.StatusCreated)
}

func (h *Handler) listQueueItems(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	log := logger.FromRequest(r)

	userID, found := utils.GetUserIDFromContext(ctx)
	if !found {
		log.Error().Str("func", "*Handler.listQueueItems").Msg("no user ID was given")
		http.Error(w, "no user ID was given", http.StatusBadRequest)
		return
	}

	filter := models.QueueFilter{
		UserID: userID,
		Status: models.QueueStatus(r.URL.Query().Get("status")),
	}
	if rawLimit := r.URL.Query().Get("limit"); rawLimit != "" {
		limit, err := strconv.ParseUint(rawLimit, 10, 64)
		if err != nil {
			http.Error(w, "invalid limit", http.StatusBadRequest)
			return
		}
		filter.Limit = limit
	}

	items, err := h.services.Queue.List(ctx, filter)
	if err != nil {
		log.Err(err).Str("func", "*Handler.listQueueItems").Msg("error listing queue items")
		http.Error(w, "error listing queue items", statusFromError(err))
		return
	}

	response := models.QueueListResponse{
		Items:  items,
		Length: len(items),
	}

	utils.WriteJSON(w, response, http.StatusOK)
}

func (h *Handler) deleteQueueItem(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	log := logger.FromRequest(r)

	userID, found := utils.GetUserIDFromContext(ctx)
	if !found {
		log.Error().Str("func", "*Handler.deleteQueueItem").Msg("no user ID was given")
		http.Error(w, "no user ID was given", http.StatusBadRequest)
		return
	}

	itemID, err := strconv.ParseInt(chi.URLParam(r, "itemID"), 10, 64)
	if err != nil {
		http.Error(w, "invalid queue item ID", http.StatusBadRequest)
		return
	}

	if err := h.services.Queue.Delete(ctx, userID, itemID); err != nil {
		log.Err(err).Str("func", "*Handler.deleteQueueItem").Int64("item_id", itemID).Msg("error deleting queue item")
		http.Error(w, "error deleting queue item", statusFromError(err))
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

package http

import (
	"errors"
	"net/http"

	"github.com/farmassist/farm-sync/internal/adapter"
	"github.com/farmassist/farm-sync/internal/service"
	"github.com/farmassist/farm-sync/internal/store"
)

var errorStatusMap = map[error]int{
	service.ErrMalformedChange:      http.StatusBadRequest,
	service.ErrSessionInProgress:    http.StatusConflict,
	service.ErrApplyFailed:          http.StatusBadGateway,
	service.ErrResolutionIncomplete: http.StatusBadRequest,
	service.ErrAlreadyResolved:      http.StatusConflict,
	service.ErrUnknownStrategy:      http.StatusBadRequest,
	service.ErrNoUserID:             http.StatusBadRequest,

	store.ErrSyncStatusNotFound:      http.StatusNotFound,
	store.ErrConflictNotFound:        http.StatusNotFound,
	store.ErrConflictAlreadyResolved: http.StatusConflict,
	store.ErrQueueItemNotFound:       http.StatusNotFound,
	store.ErrVersionConflict:         http.StatusConflict,
	store.ErrStatusNotSaved:          http.StatusInternalServerError,

	store.ErrBuildingSQLQuery:     http.StatusInternalServerError,
	store.ErrExecutingQuery:       http.StatusInternalServerError,
	store.ErrBeginningTransaction: http.StatusInternalServerError,
	store.ErrCommitingTransaction: http.StatusInternalServerError,
	store.ErrExecutingStatement:   http.StatusInternalServerError,
	store.ErrScanningRow:          http.StatusInternalServerError,
	store.ErrScanningRows:         http.StatusInternalServerError,

	adapter.ErrVersionConflict:     http.StatusConflict,
	adapter.ErrBadGateway:          http.StatusBadGateway,
	adapter.ErrInternalServerError: http.StatusBadGateway,
}

func statusFromError(err error) int {
	for target, status := range errorStatusMap {
		if errors.Is(err, target) {
			return status
		}
	}
	return http.StatusInternalServerError
}

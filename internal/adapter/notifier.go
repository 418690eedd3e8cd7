package adapter

import (
	"context"
	"fmt"

	"github.com/farmassist/farm-sync/internal/config"
	"github.com/farmassist/farm-sync/internal/logger"
	"github.com/farmassist/farm-sync/internal/utils"
	"github.com/farmassist/farm-sync/models"
)

// httpNotifier is the HTTP/REST implementation of [Notifier]. All events go
// to a single collection endpoint distinguished by an event kind field.
type httpNotifier struct {
	client *utils.HTTPClient
	logger *logger.Logger
}

// NewHTTPNotifier constructs an HTTP/REST implementation of [Notifier].
//
// Returns an error if adapterCfg.NotifierURL is empty or cannot be parsed as
// a valid URL.
func NewHTTPNotifier(adapterCfg config.Adapter, logger *logger.Logger) (Notifier, error) {
	baseURL, err := normalizeBaseURL(adapterCfg.NotifierURL)
	if err != nil {
		return nil, fmt.Errorf("invalid notifier url: %w", err)
	}

	client := utils.NewHTTPClient()
	client.
		SetBaseURL(baseURL).
		SetTimeout(adapterCfg.RequestTimeout)

	return &httpNotifier{client: client, logger: logger}, nil
}

// notificationEvent is the wire form of one sync lifecycle event.
type notificationEvent struct {
	Kind            string                `json:"kind"`
	UserID          int64                 `json:"user_id"`
	Conflict        *models.SyncConflict  `json:"conflict,omitempty"`
	RefreshRequired bool                  `json:"refresh_required,omitempty"`
	Session         *models.SessionResult `json:"session,omitempty"`
}

func (n *httpNotifier) send(ctx context.Context, event notificationEvent) error {
	resp, err := n.client.R().
		SetContext(ctx).
		SetHeader("Content-Type", "application/json").
		SetBody(event).
		Post("/api/notifications")
	if err != nil {
		return fmt.Errorf("notification request: %w", err)
	}

	return mapHTTPError(resp)
}

// NotifyConflictDetected implements [Notifier].
func (n *httpNotifier) NotifyConflictDetected(ctx context.Context, conflict models.SyncConflict) error {
	return n.send(ctx, notificationEvent{
		Kind:     "conflict_detected",
		UserID:   conflict.UserID,
		Conflict: &conflict,
	})
}

// NotifyConflictResolved implements [Notifier].
func (n *httpNotifier) NotifyConflictResolved(ctx context.Context, conflict models.SyncConflict, refreshRequired bool) error {
	return n.send(ctx, notificationEvent{
		Kind:            "conflict_resolved",
		UserID:          conflict.UserID,
		Conflict:        &conflict,
		RefreshRequired: refreshRequired,
	})
}

// NotifySyncCompleted implements [Notifier].
func (n *httpNotifier) NotifySyncCompleted(ctx context.Context, userID int64, result models.SessionResult) error {
	return n.send(ctx, notificationEvent{
		Kind:    "sync_completed",
		UserID:  userID,
		Session: &result,
	})
}

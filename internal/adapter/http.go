package adapter

import (
	"context"
	"encoding/json"
	"fmt"
	"net/url"
	"strings"

	"github.com/farmassist/farm-sync/internal/config"
	"github.com/farmassist/farm-sync/internal/logger"
	"github.com/farmassist/farm-sync/internal/utils"
	"github.com/farmassist/farm-sync/models"
)

// httpDomainDataAdapter is the HTTP/REST implementation of
// [DomainDataService].
type httpDomainDataAdapter struct {
	client *utils.HTTPClient
	logger *logger.Logger
}

// NewHTTPDomainDataAdapter constructs an HTTP/REST implementation of
// [DomainDataService]. It normalises and validates the base URL from
// adapterCfg.DomainServiceURL and configures the underlying HTTP client with
// the resolved base URL and request timeout.
//
// Returns an error if adapterCfg.DomainServiceURL is empty or cannot be
// parsed as a valid URL.
func NewHTTPDomainDataAdapter(adapterCfg config.Adapter, logger *logger.Logger) (DomainDataService, error) {
	baseURL, err := normalizeBaseURL(adapterCfg.DomainServiceURL)
	if err != nil {
		return nil, fmt.Errorf("invalid domain service url: %w", err)
	}

	client := utils.NewHTTPClient()
	client.
		SetBaseURL(baseURL).
		SetTimeout(adapterCfg.RequestTimeout)

	return &httpDomainDataAdapter{client: client, logger: logger}, nil
}

func normalizeBaseURL(raw string) (string, error) {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return "", fmt.Errorf("empty address")
	}

	if !strings.Contains(raw, "://") {
		raw = "http://" + raw
	}

	u, err := url.Parse(raw)
	if err != nil {
		return "", err
	}
	if u.Scheme == "" || u.Host == "" {
		return "", fmt.Errorf("address must include host and scheme")
	}

	return strings.TrimRight(u.String(), "/"), nil
}

// versionResponse is the domain service's reply to version queries and
// write operations.
type versionResponse struct {
	Version int64 `json:"version"`
}

// applyChangeRequest is the wire form of one compare-and-increment apply.
type applyChangeRequest struct {
	UserID          int64           `json:"user_id"`
	EntityType      string          `json:"entity_type"`
	EntityID        string          `json:"entity_id"`
	BaseVersion     int64           `json:"base_version"`
	Payload         json.RawMessage `json:"payload,omitempty"`
	DeviceID        string          `json:"device_id,omitempty"`
	ClientTimestamp string          `json:"client_timestamp,omitempty"`
}

// applyResolutionRequest is the wire form of a resolution overwrite.
type applyResolutionRequest struct {
	UserID  int64           `json:"user_id"`
	Payload json.RawMessage `json:"payload"`
}

// mergeRequest carries both sides of a conflict to the domain merge endpoint.
type mergeRequest struct {
	UserID        int64           `json:"user_id"`
	EntityType    string          `json:"entity_type"`
	EntityID      string          `json:"entity_id"`
	LocalPayload  json.RawMessage `json:"local_payload,omitempty"`
	LocalVersion  int64           `json:"local_version"`
	ServerVersion int64           `json:"server_version"`
}

// mergeResponse is the domain service's merged document.
type mergeResponse struct {
	Merged json.RawMessage `json:"merged"`
}

// CurrentVersion implements [DomainDataService]. It queries
// GET /api/domain/versions/{entityType}/{entityID} for the authoritative
// version of one entity instance.
func (h *httpDomainDataAdapter) CurrentVersion(ctx context.Context, userID int64, entityType, entityID string) (int64, error) {
	var result versionResponse

	resp, err := h.client.R().
		SetContext(ctx).
		SetQueryParam("user_id", fmt.Sprintf("%d", userID)).
		SetResult(&result).
		Get(fmt.Sprintf("/api/domain/versions/%s/%s", url.PathEscape(entityType), url.PathEscape(entityID)))
	if err != nil {
		return 0, fmt.Errorf("current version request: %w", err)
	}
	if err = mapHTTPError(resp); err != nil {
		return 0, err
	}

	return result.Version, nil
}

// ApplyChange implements [DomainDataService]. It POSTs a compare-and-increment
// apply to POST /api/domain/changes. A 409 response maps to
// [ErrVersionConflict]: the authoritative version moved between
// classification and apply.
func (h *httpDomainDataAdapter) ApplyChange(ctx context.Context, userID int64, change models.ChangeRecord) (int64, error) {
	var result versionResponse

	body := applyChangeRequest{
		UserID:      userID,
		EntityType:  change.EntityType,
		EntityID:    change.EntityID,
		BaseVersion: change.LocalVersion,
		Payload:     change.Payload,
		DeviceID:    change.DeviceID,
	}
	if !change.LocalTimestamp.IsZero() {
		body.ClientTimestamp = change.LocalTimestamp.UTC().Format("2006-01-02T15:04:05.000Z07:00")
	}

	resp, err := h.client.R().
		SetContext(ctx).
		SetHeader("Content-Type", "application/json").
		SetBody(body).
		SetResult(&result).
		Post("/api/domain/changes")
	if err != nil {
		return 0, fmt.Errorf("apply change request: %w", err)
	}
	if err = mapHTTPError(resp); err != nil {
		return 0, err
	}

	return result.Version, nil
}

// ApplyResolution implements [DomainDataService]. It PUTs the winning payload
// to PUT /api/domain/entities/{entityType}/{entityID}, overwriting the
// authoritative state regardless of versions.
func (h *httpDomainDataAdapter) ApplyResolution(ctx context.Context, userID int64, entityType, entityID string, payload json.RawMessage) (int64, error) {
	var result versionResponse

	resp, err := h.client.R().
		SetContext(ctx).
		SetHeader("Content-Type", "application/json").
		SetBody(applyResolutionRequest{UserID: userID, Payload: payload}).
		SetResult(&result).
		Put(fmt.Sprintf("/api/domain/entities/%s/%s", url.PathEscape(entityType), url.PathEscape(entityID)))
	if err != nil {
		return 0, fmt.Errorf("apply resolution request: %w", err)
	}
	if err = mapHTTPError(resp); err != nil {
		return 0, err
	}

	return result.Version, nil
}

// Merge implements [DomainDataService]. It POSTs both sides of the conflict
// to POST /api/domain/merge and returns the merged document produced by the
// owning domain service.
func (h *httpDomainDataAdapter) Merge(ctx context.Context, userID int64, conflict models.SyncConflict) (json.RawMessage, error) {
	var result mergeResponse

	resp, err := h.client.R().
		SetContext(ctx).
		SetHeader("Content-Type", "application/json").
		SetBody(mergeRequest{
			UserID:        userID,
			EntityType:    conflict.EntityType,
			EntityID:      conflict.EntityID,
			LocalPayload:  conflict.LocalPayload,
			LocalVersion:  conflict.LocalVersion,
			ServerVersion: conflict.ServerVersion,
		}).
		SetResult(&result).
		Post("/api/domain/merge")
	if err != nil {
		return nil, fmt.Errorf("merge request: %w", err)
	}
	if err = mapHTTPError(resp); err != nil {
		return nil, err
	}

	return result.Merged, nil
}

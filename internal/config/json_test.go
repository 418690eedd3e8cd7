package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeJSONFile(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "config.json")
	require.NoError(t, os.WriteFile(path, []byte(content), 0o600))
	return path
}

func TestParseJSON_Success(t *testing.T) {
	path := writeJSONFile(t, `{
		"app": {
			"token_sign_key": "secret",
			"token_issuer": "farm-sync",
			"version": "1.0.0"
		},
		"storage": {
			"db": {"dsn": "postgres://localhost/sync"}
		},
		"server": {
			"http_address": "0.0.0.0:8080",
			"request_timeout": "30s"
		},
		"adapter": {
			"domain_service_url": "http://domain:9000",
			"notifier_url": "http://notifier:9001",
			"request_timeout": "5s"
		},
		"sync": {
			"apply_retry_attempts": 3,
			"apply_retry_base_delay": "1s",
			"session_lease": "5m",
			"queue_batch_size": 100
		},
		"workers": {
			"conflict_retention": "720h",
			"sweep_interval": "1m"
		}
	}`)

	cfg, err := parseJSON(path)
	require.NoError(t, err)

	assert.Equal(t, "secret", cfg.App.TokenSignKey)
	assert.Equal(t, "farm-sync", cfg.App.TokenIssuer)
	assert.Equal(t, "postgres://localhost/sync", cfg.Storage.DB.DSN)
	assert.Equal(t, "0.0.0.0:8080", cfg.Server.HTTPAddress)
	assert.Equal(t, 30*time.Second, cfg.Server.RequestTimeout)
	assert.Equal(t, "http://domain:9000", cfg.Adapter.DomainServiceURL)
	assert.Equal(t, 3, cfg.Sync.ApplyRetryAttempts)
	assert.Equal(t, 5*time.Minute, cfg.Sync.SessionLease)
	assert.Equal(t, 720*time.Hour, cfg.Workers.ConflictRetention)
	assert.Empty(t, cfg.JSONFilePath)
}

func TestParseJSON_FileNotFound(t *testing.T) {
	cfg, err := parseJSON("/nonexistent/config.json")
	require.Error(t, err)
	assert.Nil(t, cfg)
}

func TestParseJSON_InvalidJSON(t *testing.T) {
	path := writeJSONFile(t, `{not json`)

	cfg, err := parseJSON(path)
	require.Error(t, err)
	assert.Nil(t, cfg)
}

func TestParseJSON_InvalidDuration(t *testing.T) {
	path := writeJSONFile(t, `{"server": {"request_timeout": "lots"}}`)

	cfg, err := parseJSON(path)
	require.Error(t, err)
	assert.Nil(t, cfg)
}

func TestParseJSON_EmptyObject(t *testing.T) {
	path := writeJSONFile(t, `{}`)

	cfg, err := parseJSON(path)
	require.NoError(t, err)
	assert.Equal(t, StructuredConfig{}, *cfg)
}

func TestParseJSON_PartialObject(t *testing.T) {
	path := writeJSONFile(t, `{"sync": {"queue_batch_size": 25}}`)

	cfg, err := parseJSON(path)
	require.NoError(t, err)
	assert.Equal(t, 25, cfg.Sync.QueueBatchSize)
	assert.Empty(t, cfg.Storage.DB.DSN)
}

func TestDuration_UnmarshalNumber(t *testing.T) {
	path := writeJSONFile(t, `{"server": {"request_timeout": 1000000000}}`)

	cfg, err := parseJSON(path)
	require.NoError(t, err)
	assert.Equal(t, time.Second, cfg.Server.RequestTimeout)
}

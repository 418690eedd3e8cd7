package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// ── newConfigBuilder ──────────────────────────────────────────────────────────

// TestNewConfigBuilder_InitialState verifies that a freshly created builder
// has no error and an empty configs slice.
func TestNewConfigBuilder_InitialState(t *testing.T) {
	b := newConfigBuilder()
	require.NotNil(t, b)
	assert.NoError(t, b.err)
	assert.Empty(t, b.configs)
}

// ── build ─────────────────────────────────────────────────────────────────────

// TestBuild_PropagatesBuilderError verifies that a pre-set b.err is wrapped
// and returned, with nil config.
func TestBuild_PropagatesBuilderError(t *testing.T) {
	b := newConfigBuilder()
	b.err = assert.AnError

	cfg, err := b.build()
	assert.Nil(t, cfg)
	require.Error(t, err)
	assert.ErrorIs(t, err, assert.AnError)
}

// TestBuild_MergesMultipleConfigs verifies that the first non-zero value wins
// when several sources provide the same field.
func TestBuild_MergesMultipleConfigs(t *testing.T) {
	b := newConfigBuilder()
	b.configs = append(b.configs,
		&StructuredConfig{
			Storage: Storage{DB: DB{DSN: "postgres://primary/sync"}},
			Server:  Server{HTTPAddress: "localhost:8080"},
		},
		&StructuredConfig{
			Storage: Storage{DB: DB{DSN: "postgres://secondary/sync"}}, // loses: already set
			App:     App{TokenIssuer: "farm-sync"},
		},
	)
	b.withDefaults()

	cfg, err := b.build()
	require.NoError(t, err)

	assert.Equal(t, "postgres://primary/sync", cfg.Storage.DB.DSN)
	assert.Equal(t, "localhost:8080", cfg.Server.HTTPAddress)
	assert.Equal(t, "farm-sync", cfg.App.TokenIssuer)
}

// TestBuild_ValidationFailure verifies that the built config is validated:
// a config with no DSN is rejected even when defaults are applied.
func TestBuild_ValidationFailure(t *testing.T) {
	b := newConfigBuilder().withDefaults()

	_, err := b.build()
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrInvalidStorageConfigs)
}

// ── withDefaults ──────────────────────────────────────────────────────────────

func TestWithDefaults_FillsZeroFieldsOnly(t *testing.T) {
	b := newConfigBuilder()
	b.configs = append(b.configs, &StructuredConfig{
		Storage: Storage{DB: DB{DSN: "postgres://localhost/sync"}},
		Server:  Server{HTTPAddress: "localhost:8080"},
		Sync:    Sync{ApplyRetryAttempts: 7},
	})
	b.withDefaults()

	cfg, err := b.build()
	require.NoError(t, err)

	// explicit value survives
	assert.Equal(t, 7, cfg.Sync.ApplyRetryAttempts)

	// zero fields are filled from defaults
	assert.Equal(t, time.Second, cfg.Sync.ApplyRetryBaseDelay)
	assert.Equal(t, 5*time.Minute, cfg.Sync.SessionLease)
	assert.Equal(t, 100, cfg.Sync.QueueBatchSize)
	assert.Equal(t, 30*24*time.Hour, cfg.Workers.ConflictRetention)
	assert.Equal(t, time.Minute, cfg.Workers.SweepInterval)
	assert.Equal(t, 30*time.Second, cfg.Server.RequestTimeout)
}

// ── validate ──────────────────────────────────────────────────────────────────

func TestValidate(t *testing.T) {
	valid := StructuredConfig{
		Storage: Storage{DB: DB{DSN: "postgres://localhost/sync"}},
		Server:  Server{HTTPAddress: "localhost:8080"},
		Sync: Sync{
			ApplyRetryAttempts: 3,
			SessionLease:       5 * time.Minute,
			QueueBatchSize:     100,
		},
		Workers: Workers{
			ConflictRetention: 720 * time.Hour,
			SweepInterval:     time.Minute,
		},
	}

	tests := []struct {
		name    string
		mutate  func(cfg *StructuredConfig)
		wantErr error
	}{
		{
			name:   "valid config",
			mutate: func(cfg *StructuredConfig) {},
		},
		{
			name:    "missing DSN",
			mutate:  func(cfg *StructuredConfig) { cfg.Storage.DB.DSN = "" },
			wantErr: ErrInvalidStorageConfigs,
		},
		{
			name:    "missing HTTP address",
			mutate:  func(cfg *StructuredConfig) { cfg.Server.HTTPAddress = "" },
			wantErr: ErrInvalidServerConfigs,
		},
		{
			name:    "zero retry attempts",
			mutate:  func(cfg *StructuredConfig) { cfg.Sync.ApplyRetryAttempts = 0 },
			wantErr: ErrInvalidSyncConfigs,
		},
		{
			name:    "zero session lease",
			mutate:  func(cfg *StructuredConfig) { cfg.Sync.SessionLease = 0 },
			wantErr: ErrInvalidSyncConfigs,
		},
		{
			name:    "zero sweep interval",
			mutate:  func(cfg *StructuredConfig) { cfg.Workers.SweepInterval = 0 },
			wantErr: ErrInvalidWorkerConfigs,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := valid
			tt.mutate(&cfg)

			err := cfg.validate()
			if tt.wantErr == nil {
				assert.NoError(t, err)
				return
			}
			assert.ErrorIs(t, err, tt.wantErr)
		})
	}
}

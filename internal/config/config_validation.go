// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Farmassist

package config

// validate checks that the final merged [StructuredConfig] satisfies all
// application invariants before it is used at startup.
//
// Returns nil if the configuration is valid, or a sentinel error otherwise.
func (cfg *StructuredConfig) validate() error {
	if cfg.Storage.DB.DSN == "" {
		return ErrInvalidStorageConfigs
	}

	if cfg.Server.HTTPAddress == "" {
		return ErrInvalidServerConfigs
	}

	if cfg.Sync.ApplyRetryAttempts < 1 || cfg.Sync.SessionLease <= 0 || cfg.Sync.QueueBatchSize < 1 {
		return ErrInvalidSyncConfigs
	}

	if cfg.Workers.ConflictRetention <= 0 || cfg.Workers.SweepInterval <= 0 {
		return ErrInvalidWorkerConfigs
	}

	return nil
}

// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Farmassist

package service

import (
	"github.com/farmassist/farm-sync/internal/adapter"
	"github.com/farmassist/farm-sync/internal/config"
	"github.com/farmassist/farm-sync/internal/logger"
	"github.com/farmassist/farm-sync/internal/store"
	"github.com/farmassist/farm-sync/internal/validators"
)

// Services bundles every business-logic service behind one constructor for
// server wiring.
type Services struct {
	Ingest       IngestService
	Detector     DetectService
	Resolver     ResolveService
	Status       StatusService
	Queue        QueueService
	Orchestrator OrchestratorService

	// Locks is the per-user session serialization arena. Exposed so the
	// background sweepers can reap leases abandoned by crashed callers.
	Locks *SessionLockArena
}

// NewServices wires the service layer on top of storage and the external
// collaborators.
func NewServices(
	storages *store.Storages,
	domain adapter.DomainDataService,
	notifier adapter.Notifier,
	cfg config.Sync,
	log *logger.Logger,
) *Services {
	validator := validators.NewSyncValidator()
	locks := NewSessionLockArena(cfg.SessionLease)

	ingest := NewIngestService(validator, log)
	detect := NewDetectService(domain, storages.ConflictRepository, notifier, log)
	status := NewStatusService(storages.SyncStatusRepository, storages.QueueRepository, log)
	resolve := NewResolveService(storages.ConflictRepository, domain, notifier, validator, log)
	queue := NewQueueService(storages.QueueRepository, validator, log)
	orchestrator := NewOrchestratorService(
		ingest,
		detect,
		status,
		storages.QueueRepository,
		storages.ConflictRepository,
		domain,
		notifier,
		locks,
		validator,
		cfg,
		log,
	)

	return &Services{
		Ingest:       ingest,
		Detector:     detect,
		Resolver:     resolve,
		Status:       status,
		Queue:        queue,
		Orchestrator: orchestrator,
		Locks:        locks,
	}
}

package workers

import (
	"context"
	"time"

	"github.com/farmassist/farm-sync/internal/config"
	"github.com/farmassist/farm-sync/internal/logger"
	"github.com/farmassist/farm-sync/internal/service"
	"github.com/farmassist/farm-sync/internal/store"
)

type Workers struct {
	workers []Worker
}

// NewWorkers assembles the background workers: the conflict retention purge
// and the session lock lease reaper.
func NewWorkers(conflicts store.ConflictRepository, locks *service.SessionLockArena, cfg config.Workers, logger *logger.Logger) *Workers {
	return &Workers{
		workers: []Worker{
			newRetentionWorker(conflicts, cfg, logger),
			newLeaseReaper(locks, cfg, logger),
		},
	}
}

func (w *Workers) Run() {
	for _, worker := range w.workers {
		worker.Run()
	}
}

// retentionWorker periodically deletes RESOLVED and IGNORED conflicts older
// than the configured retention window.
type retentionWorker struct {
	conflicts store.ConflictRepository
	retention time.Duration
	interval  time.Duration
	logger    *logger.Logger
}

func newRetentionWorker(conflicts store.ConflictRepository, cfg config.Workers, logger *logger.Logger) *retentionWorker {
	return &retentionWorker{
		conflicts: conflicts,
		retention: cfg.ConflictRetention,
		interval:  cfg.SweepInterval,
		logger:    logger,
	}
}

func (w *retentionWorker) Run() {
	if w.retention <= 0 || w.interval <= 0 {
		w.logger.Info().Str("func", "*retentionWorker.Run").Msg("conflict retention disabled")
		return
	}

	go func() {
		ticker := time.NewTicker(w.interval)
		defer ticker.Stop()

		for range ticker.C {
			w.sweep()
		}
	}()
}

func (w *retentionWorker) sweep() {
	cutoff := time.Now().Add(-w.retention)

	purged, err := w.conflicts.PurgeResolvedBefore(context.Background(), cutoff)
	if err != nil {
		w.logger.Err(err).Str("func", "*retentionWorker.sweep").Msg("error purging resolved conflicts")
		return
	}
	if purged > 0 {
		w.logger.Info().Str("func", "*retentionWorker.sweep").Int64("purged", purged).Msg("purged resolved conflicts")
	}
}

// leaseReaper periodically frees session locks whose lease expired, so a
// crashed session cannot block a user forever.
type leaseReaper struct {
	locks    *service.SessionLockArena
	interval time.Duration
	logger   *logger.Logger
}

func newLeaseReaper(locks *service.SessionLockArena, cfg config.Workers, logger *logger.Logger) *leaseReaper {
	return &leaseReaper{
		locks:    locks,
		interval: cfg.SweepInterval,
		logger:   logger,
	}
}

func (w *leaseReaper) Run() {
	if w.interval <= 0 {
		w.logger.Info().Str("func", "*leaseReaper.Run").Msg("session lease reaper disabled")
		return
	}

	go func() {
		ticker := time.NewTicker(w.interval)
		defer ticker.Stop()

		for range ticker.C {
			if reaped := w.locks.ReapExpired(); reaped > 0 {
				w.logger.Info().Str("func", "*leaseReaper.Run").Int("reaped", reaped).Msg("released expired session locks")
			}
		}
	}()
}

package store

import "github.com/farmassist/farm-sync/internal/logger"

// Storages aggregates all repository implementations behind their interfaces
// so the service layer takes a single dependency.
type Storages struct {
	SyncStatusRepository SyncStatusRepository
	ConflictRepository   ConflictRepository
	QueueRepository      QueueRepository
}

// NewStorages wires every repository to the shared database connection.
func NewStorages(db *DB, log *logger.Logger) *Storages {
	return &Storages{
		SyncStatusRepository: NewSyncStatusRepository(db, log),
		ConflictRepository:   NewConflictRepository(db, log),
		QueueRepository:      NewQueueRepository(db, log),
	}
}

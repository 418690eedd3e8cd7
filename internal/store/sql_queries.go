package store

const (
	syncStatusColumns = `user_id, sync_state, last_sync_at, pending_changes, syncing_count, total_to_sync, progress_percent, is_offline, offline_since, last_error, device_id, app_version, status_version`

	getSyncStatus = `SELECT user_id, sync_state, last_sync_at, pending_changes, syncing_count, total_to_sync, progress_percent, is_offline, offline_since, last_error, device_id, app_version, status_version
		FROM sync_status
		WHERE user_id = $1;`

	// createSyncStatus inserts the lazily-created default row for a user.
	// ON CONFLICT DO NOTHING makes concurrent first-sync races harmless:
	// the loser simply re-reads the winner's row.
	createSyncStatus = `INSERT INTO sync_status (user_id, sync_state, device_id, app_version)
		VALUES ($1, $2, $3, $4)
		ON CONFLICT (user_id) DO NOTHING;`

	// saveSyncStatus performs a whole-aggregate update guarded by the
	// status_version optimistic lock. The CTE separates "row not found"
	// (target_record empty, both outputs NULL) from "version mismatch"
	// (updated_id NULL, current_db_version set).
	saveSyncStatus = `
		WITH target_record AS (
			SELECT user_id, status_version
			FROM sync_status
			WHERE user_id = $1
		),
		updated_record AS (
			UPDATE sync_status
			SET sync_state = $2,
				last_sync_at = $3,
				pending_changes = $4,
				syncing_count = $5,
				total_to_sync = $6,
				progress_percent = $7,
				is_offline = $8,
				offline_since = $9,
				last_error = $10,
				device_id = $11,
				app_version = $12,
				status_version = status_version + 1,
				updated_at = NOW()
			WHERE user_id = $1 AND status_version = $13
			RETURNING user_id
		)
		SELECT
			(SELECT user_id FROM updated_record)       AS updated_id,
			(SELECT status_version FROM target_record) AS current_db_version;`

	conflictColumns = `id, user_id, entity_type, entity_id, local_payload, local_version, server_version, local_timestamp, device_id, status, resolution_strategy, resolved_data, resolved_by, detected_at, resolved_at`

	// upsertPendingConflict records a divergence. The partial unique index
	// on (user_id, entity_type, entity_id) WHERE status = 'PENDING' keeps at
	// most one open conflict per key; a repeat divergence refreshes the
	// existing row in place instead of stacking a duplicate.
	upsertPendingConflict = `INSERT INTO sync_conflicts (id, user_id, entity_type, entity_id, local_payload, local_version, server_version, local_timestamp, device_id, status, detected_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, 'PENDING', NOW())
		ON CONFLICT (user_id, entity_type, entity_id) WHERE status = 'PENDING'
		DO UPDATE SET
			local_payload = EXCLUDED.local_payload,
			local_version = EXCLUDED.local_version,
			server_version = EXCLUDED.server_version,
			local_timestamp = EXCLUDED.local_timestamp,
			device_id = EXCLUDED.device_id,
			detected_at = NOW()
		RETURNING id, detected_at;`

	getConflict = `SELECT id, user_id, entity_type, entity_id, local_payload, local_version, server_version, local_timestamp, device_id, status, resolution_strategy, resolved_data, resolved_by, detected_at, resolved_at
		FROM sync_conflicts
		WHERE id = $1 AND user_id = $2;`

	// resolveConflict closes a PENDING conflict. The CTE distinguishes
	// "not found" (current_status NULL) from "already closed" (updated_id
	// NULL, current_status set to the terminal status).
	resolveConflict = `
		WITH target_record AS (
			SELECT id, status
			FROM sync_conflicts
			WHERE id = $1 AND user_id = $2
		),
		updated_record AS (
			UPDATE sync_conflicts
			SET status = $3,
				resolution_strategy = $4,
				resolved_data = $5,
				resolved_by = $6,
				resolved_at = NOW()
			WHERE id = $1 AND user_id = $2 AND status = 'PENDING'
			RETURNING id, resolved_at
		)
		SELECT
			(SELECT id FROM updated_record)          AS updated_id,
			(SELECT status FROM target_record)       AS current_status,
			(SELECT resolved_at FROM updated_record) AS resolved_at;`

	purgeResolvedConflicts = `DELETE FROM sync_conflicts
		WHERE status <> 'PENDING' AND resolved_at < $1;`

	queueColumns = `id, user_id, entity_type, entity_id, operation, local_version, payload, status, retry_count, last_error, device_id, client_timestamp, created_at, processed_at`

	enqueueItem = `INSERT INTO sync_queue (user_id, entity_type, entity_id, operation, local_version, payload, status, device_id, client_timestamp)
		VALUES ($1, $2, $3, $4, $5, $6, 'PENDING', $7, $8)
		RETURNING id, created_at;`

	// claimQueueBatch atomically moves the oldest PENDING items to
	// IN_PROGRESS. SKIP LOCKED keeps two concurrent claimers from blocking
	// on each other's rows.
	claimQueueBatch = `UPDATE sync_queue
		SET status = 'IN_PROGRESS'
		WHERE id IN (
			SELECT id FROM sync_queue
			WHERE user_id = $1 AND status = 'PENDING'
			ORDER BY created_at, id
			LIMIT $2
			FOR UPDATE SKIP LOCKED
		)
		RETURNING id, user_id, entity_type, entity_id, operation, local_version, payload, status, retry_count, last_error, device_id, client_timestamp, created_at, processed_at;`

	markQueueItemCompleted = `UPDATE sync_queue
		SET status = 'COMPLETED', last_error = '', processed_at = NOW()
		WHERE id = $1 AND user_id = $2;`

	// markQueueItemFailed bumps the retry counter and either requeues the
	// item or parks it as FAILED once its retry attempts are exhausted.
	markQueueItemFailed = `UPDATE sync_queue
		SET retry_count = retry_count + 1,
			last_error = $3,
			status = CASE WHEN retry_count + 1 >= $4 THEN 'FAILED' ELSE 'PENDING' END,
			processed_at = CASE WHEN retry_count + 1 >= $4 THEN NOW() ELSE processed_at END
		WHERE id = $1 AND user_id = $2
		RETURNING status, retry_count;`

	markQueueItemConflict = `UPDATE sync_queue
		SET status = 'CONFLICT', last_error = $3, processed_at = NOW()
		WHERE id = $1 AND user_id = $2;`

	releaseQueueItems = `UPDATE sync_queue
		SET status = 'PENDING'
		WHERE user_id = $1 AND status = 'IN_PROGRESS';`

	deleteQueueItem = `DELETE FROM sync_queue
		WHERE id = $1 AND user_id = $2;`

	countPendingQueueItems = `SELECT COUNT(*) FROM sync_queue
		WHERE user_id = $1 AND status = 'PENDING';`
)

package jobs

import (
	"fmt"
)

// JobManager coordinates all scheduled jobs in the application.
type JobManager struct {
	flushJob *PersistenceFlushJob
	auditJob *InventoryAuditJob
}

func NewJobManager(flushJob *PersistenceFlushJob, auditJob *InventoryAuditJob) *JobManager {
	return &JobManager{
		flushJob: flushJob,
		auditJob: auditJob,
	}
}

// StartAll starts all scheduled jobs.
// Returns an error if any job fails to start.
func (jm *JobManager) StartAll() error {
	if err := jm.flushJob.Start(); err != nil {
		return fmt.Errorf("failed to start persistence flush job: %w", err)
	}

	if err := jm.auditJob.Start(); err != nil {
		// Stop already started jobs if this one fails
		jm.flushJob.Stop()
		return fmt.Errorf("failed to start inventory audit job: %w", err)
	}

	return nil
}

// StopAll stops the audit first so the final flush sees a quiet pool.
func (jm *JobManager) StopAll() {
	jm.auditJob.Stop()
	jm.flushJob.Stop()
}

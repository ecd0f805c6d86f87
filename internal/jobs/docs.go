// Package jobs provides the background tasks of the fleet kernel.
//
// Jobs are scheduled with github.com/robfig/cron/v3 using the six field syntax
// with seconds.
//
// # Available Jobs
//
//  1. PersistenceFlushJob - writes the object pool to PostgreSQL after every
//     committed mutation and on its own schedule; also the ports.PersistenceFlusher
//     handed to the command handlers
//  2. InventoryAuditJob - periodically cross-checks bin owner tags against vehicle
//     slots and location stacks and logs discrepancies
//
// # Usage
//
//	flushJob := jobs.NewPersistenceFlushJob(pool, store, metrics, "*/30 * * * * *", logger)
//	auditJob := jobs.NewInventoryAuditJob(auditHandler, "0 */5 * * * *", logger)
//	jobManager := jobs.NewJobManager(flushJob, auditJob)
//	if err := jobManager.StartAll(); err != nil {
//		log.Fatal("Failed to start jobs:", err)
//	}
//	defer jobManager.StopAll()
//
// # Error Handling
//
// Flush and audit failures are logged and never stop a job. Stopping the flush job
// performs one last synchronous flush.
package jobs

package jobs

import (
	"context"
	"log/slog"

	"fleetkernel/internal/core/application/usecases/queries"

	"github.com/robfig/cron/v3"
)

// InventoryAuditJob periodically audits bin ownership and logs every discrepancy.
// It never repairs anything.
type InventoryAuditJob struct {
	handler  queries.AuditInventoryQueryHandler
	schedule string
	cron     *cron.Cron
	logger   *slog.Logger
}

func NewInventoryAuditJob(handler queries.AuditInventoryQueryHandler, schedule string, logger *slog.Logger) *InventoryAuditJob {
	return &InventoryAuditJob{
		handler:  handler,
		schedule: schedule,
		cron:     cron.New(cron.WithSeconds()),
		logger:   logger.With("component", "inventory_audit_job"),
	}
}

// Start schedules the audit. An empty schedule leaves the job idle; Run still works.
func (j *InventoryAuditJob) Start() error {
	if j.schedule != "" {
		if _, err := j.cron.AddFunc(j.schedule, func() { j.Run(context.Background()) }); err != nil {
			return err
		}
	}

	j.cron.Start()
	j.logger.InfoContext(context.Background(), "Inventory audit job started", "schedule", j.schedule)
	return nil
}

// Run performs one audit and returns the number of discrepancies found.
func (j *InventoryAuditJob) Run(ctx context.Context) int {
	found, err := j.handler.Handle(ctx, queries.NewAuditInventoryQuery())
	if err != nil {
		j.logger.ErrorContext(ctx, "Inventory audit failed", "error", err)
		return 0
	}

	for _, d := range found {
		j.logger.WarnContext(ctx, "Inventory discrepancy", "object", d.Ref.String(), "reason", d.Reason)
	}
	return len(found)
}

func (j *InventoryAuditJob) Stop() {
	<-j.cron.Stop().Done()
	j.logger.InfoContext(context.Background(), "Inventory audit job stopped")
}

package queries

import (
	"context"
	"errors"

	"fleetkernel/internal/core/domain/services"
	"fleetkernel/internal/core/ports"
	"fleetkernel/internal/pkg/guard"
)

var ErrAuditInventoryQueryIsNotConstructed = errors.New(
	"AuditInventoryQuery must be created via NewAuditInventoryQuery constructor",
)

// AuditInventoryQuery checks that every bin's owner tag agrees with the vehicle
// slots and location stacks holding it.
type AuditInventoryQuery struct {
	guard guard.ConstructorGuard
}

func NewAuditInventoryQuery() AuditInventoryQuery {
	return AuditInventoryQuery{guard: guard.NewConstructorGuard()}
}

func (q AuditInventoryQuery) Validate() error {
	return q.guard.Validate(ErrAuditInventoryQueryIsNotConstructed)
}

// AuditInventoryQueryHandler audits a consistent pool export.
type AuditInventoryQueryHandler struct {
	exporter ports.PoolExporter
	auditor  services.InventoryAuditor
}

func NewAuditInventoryQueryHandler(exporter ports.PoolExporter) AuditInventoryQueryHandler {
	return AuditInventoryQueryHandler{
		exporter: exporter,
		auditor:  services.NewInventoryAuditor(),
	}
}

// Handle returns the discrepancies found; an empty slice means the inventory is consistent.
func (h AuditInventoryQueryHandler) Handle(ctx context.Context, query AuditInventoryQuery) ([]services.Discrepancy, error) {
	if err := query.Validate(); err != nil {
		return nil, err
	}

	snapshot, err := h.exporter.Export(ctx)
	if err != nil {
		return nil, err
	}

	found := h.auditor.Audit(snapshot.Vehicles, snapshot.Locations, snapshot.Bins)
	if found == nil {
		return []services.Discrepancy{}, nil
	}
	return found, nil
}

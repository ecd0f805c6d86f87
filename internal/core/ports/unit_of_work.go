package ports

import (
	"context"
)

// UnitOfWorkFactory creates new UnitOfWork instances for each request/command.
type UnitOfWorkFactory interface {
	Create() UnitOfWork
}

// UnitOfWork is the transaction boundary of a mutation.
// Client code must explicitly manage the transaction lifecycle.
type UnitOfWork interface {
	// Begin starts the transaction.
	Begin(ctx context.Context) error

	// Commit installs every change and publishes the recorded events in order.
	// Returns error if no transaction is active.
	Commit(ctx context.Context) error

	// Rollback discards changes and recorded events.
	// Returns error if no transaction is active.
	Rollback(ctx context.Context) error

	VehicleRepository() VehicleRepository
	LocationRepository() LocationRepository
	BinRepository() BinRepository
	TransportOrderRepository() TransportOrderRepository

	// RecordEvent queues an event for publication on Commit.
	RecordEvent(event ObjectEvent)
}

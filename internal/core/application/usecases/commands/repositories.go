// Package commands contains the operations that modify the object pool.
// Every command follows the same pattern: a constructor-validated command value and a
// handler that opens a unit of work, computes new snapshots, records the change
// events and commits.
package commands

import (
	"context"
	"log/slog"

	"fleetkernel/internal/core/ports"
)

// Unit of Work interfaces give command handlers access to the pool.
type (
	// TxManager handles the transaction lifecycle.
	TxManager interface {
		Begin(ctx context.Context) error
		Commit(ctx context.Context) error
		Rollback(ctx context.Context) error
	}

	// EventRecorder queues change events for publication on commit.
	EventRecorder interface {
		RecordEvent(event ports.ObjectEvent)
	}

	// VehicleRepoFactory provides access to the vehicle repository within a transaction.
	VehicleRepoFactory interface {
		VehicleRepository() ports.VehicleRepository
	}

	// LocationRepoFactory provides access to the location repository within a transaction.
	LocationRepoFactory interface {
		LocationRepository() ports.LocationRepository
	}

	// BinRepoFactory provides access to the bin repository within a transaction.
	BinRepoFactory interface {
		BinRepository() ports.BinRepository
	}

	// TransportOrderRepoFactory provides access to transport orders within a transaction.
	TransportOrderRepoFactory interface {
		TransportOrderRepository() ports.TransportOrderRepository
	}

	// VehicleUoW manages transactions for vehicle field updates.
	VehicleUoW interface {
		TxManager
		EventRecorder
		VehicleRepoFactory
		TransportOrderRepoFactory
	}

	// VehicleUoWFactory creates new vehicle unit of work instances.
	VehicleUoWFactory interface {
		Create() VehicleUoW
	}

	// TransferUoW manages transactions that move a bin between a vehicle and a location.
	//
	// Example:
	//   uow := factory.Create()
	//   err := uow.Begin(ctx)
	//   defer uow.Rollback(ctx)
	//
	//   v, err := uow.VehicleRepository().Get(ctx, vehicleID)
	//   // ... compute and replace snapshots, record events
	//
	//   err = uow.Commit(ctx)
	TransferUoW interface {
		TxManager
		EventRecorder
		VehicleRepoFactory
		LocationRepoFactory
		BinRepoFactory
		TransportOrderRepoFactory
	}

	// TransferUoWFactory creates new transfer unit of work instances.
	TransferUoWFactory interface {
		Create() TransferUoW
	}
)

// TransferOutcome labels the result of a bin transfer for metrics.
type TransferOutcome string

const (
	OutcomeTransferred TransferOutcome = "transferred"
	OutcomeSourceEmpty TransferOutcome = "source_empty"
	OutcomeStackFull   TransferOutcome = "stack_full"
	OutcomeRejected    TransferOutcome = "rejected"
)

// Transfer operation labels.
const (
	OperationPopBin  = "pop"
	OperationPushBin = "push"
)

// TransferRecorder observes finished transfers.
type TransferRecorder interface {
	RecordTransfer(operation string, outcome TransferOutcome)
}

type noopTransferRecorder struct{}

func (noopTransferRecorder) RecordTransfer(string, TransferOutcome) {}

func orNoopRecorder(r TransferRecorder) TransferRecorder {
	if r == nil {
		return noopTransferRecorder{}
	}
	return r
}

func orDiscardLogger(logger *slog.Logger) *slog.Logger {
	if logger == nil {
		return slog.New(slog.DiscardHandler)
	}
	return logger
}

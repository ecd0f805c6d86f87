package objectpool

import (
	"context"
	"errors"

	"fleetkernel/internal/core/domain/model/bin"
	"fleetkernel/internal/core/domain/model/kernel"
	"fleetkernel/internal/core/domain/model/location"
	"fleetkernel/internal/core/domain/model/transportorder"
	"fleetkernel/internal/core/domain/model/vehicle"
	"fleetkernel/internal/core/ports"
)

var (
	// ErrNoActiveTransaction is returned by repository calls, Commit and Rollback
	// outside of Begin.
	ErrNoActiveTransaction = errors.New("no active transaction")
	// ErrTransactionAlreadyActive is returned by a second Begin on the same unit of work.
	ErrTransactionAlreadyActive = errors.New("transaction already active")
)

// UnitOfWork stages replacements and events until Commit.
// A UnitOfWork is used by a single goroutine.
type UnitOfWork struct {
	pool   *Pool
	active bool

	vehicles  *stagedTable[vehicle.Vehicle]
	locations *stagedTable[location.Location]
	bins      *stagedTable[bin.Bin]
	orders    *stagedTable[transportorder.TransportOrder]
	orderBins *stagedTable[transportorder.OrderBin]

	events []ports.ObjectEvent
}

// Begin takes the pool's write lock. It waits for running mutations to finish.
func (u *UnitOfWork) Begin(ctx context.Context) error {
	if u.active {
		return ErrTransactionAlreadyActive
	}
	if err := ctx.Err(); err != nil {
		return err
	}

	u.pool.mu.Lock()
	u.active = true
	u.vehicles = newStagedTable("vehicle", u.pool.vehicles)
	u.locations = newStagedTable("location", u.pool.locations)
	u.bins = newStagedTable("bin", u.pool.bins)
	u.orders = newStagedTable("transportOrder", u.pool.orders)
	u.orderBins = newStagedTable("transportOrderBin", u.pool.orderBins)
	u.events = nil
	return nil
}

// Commit installs every staged snapshot, publishes the recorded events in order
// under a fresh commit id and releases the lock.
func (u *UnitOfWork) Commit(ctx context.Context) error {
	if !u.active {
		return ErrNoActiveTransaction
	}
	defer u.release()

	u.vehicles.install()
	u.locations.install()
	u.bins.install()
	u.orders.install()
	u.orderBins.install()

	commitID := kernel.NewUUID()
	for i := range u.events {
		u.events[i].CommitID = commitID
		u.events[i].Sequence = i
	}
	u.pool.publish(ctx, u.events)
	return nil
}

// Rollback discards staged snapshots and events and releases the lock.
// After Commit it does nothing and returns ErrNoActiveTransaction.
func (u *UnitOfWork) Rollback(_ context.Context) error {
	if !u.active {
		return ErrNoActiveTransaction
	}
	defer u.release()

	u.vehicles.discard()
	u.locations.discard()
	u.bins.discard()
	u.orders.discard()
	u.orderBins.discard()
	return nil
}

// RecordEvent queues event for publication on Commit. Outside a transaction the
// event is dropped.
func (u *UnitOfWork) RecordEvent(event ports.ObjectEvent) {
	if !u.active {
		return
	}
	u.events = append(u.events, event)
}

func (u *UnitOfWork) VehicleRepository() ports.VehicleRepository {
	return &vehicleRepository{uow: u}
}

func (u *UnitOfWork) LocationRepository() ports.LocationRepository {
	return &locationRepository{uow: u}
}

func (u *UnitOfWork) BinRepository() ports.BinRepository {
	return &binRepository{uow: u}
}

func (u *UnitOfWork) TransportOrderRepository() ports.TransportOrderRepository {
	return &transportOrderRepository{uow: u}
}

func (u *UnitOfWork) release() {
	u.active = false
	u.events = nil
	u.pool.mu.Unlock()
}

func (u *UnitOfWork) check(ctx context.Context) error {
	if !u.active {
		return ErrNoActiveTransaction
	}
	return ctx.Err()
}

package ports

import (
	"context"

	"fleetkernel/internal/core/domain/model/bin"
	"fleetkernel/internal/core/domain/model/kernel"
	"fleetkernel/internal/core/domain/model/location"
	"fleetkernel/internal/core/domain/model/transportorder"
	"fleetkernel/internal/core/domain/model/vehicle"
)

// PoolSnapshot is a consistent copy of every object in the pool.
type PoolSnapshot struct {
	Vehicles        []vehicle.Vehicle
	Locations       []location.Location
	Bins            []bin.Bin
	TransportOrders []transportorder.TransportOrder
	OrderBins       []transportorder.OrderBin
}

// IsEmpty reports whether the snapshot holds no object at all.
func (s PoolSnapshot) IsEmpty() bool {
	return len(s.Vehicles) == 0 &&
		len(s.Locations) == 0 &&
		len(s.Bins) == 0 &&
		len(s.TransportOrders) == 0 &&
		len(s.OrderBins) == 0
}

// PersistenceFlusher asks for the in-memory state to be written out.
// TriggerFlush never blocks; repeated triggers before a flush runs coalesce.
type PersistenceFlusher interface {
	TriggerFlush()
}

// SnapshotStore persists pool snapshots.
type SnapshotStore interface {
	Save(ctx context.Context, snapshot PoolSnapshot) error
	Load(ctx context.Context) (PoolSnapshot, error)
}

// PoolExporter takes consistent snapshots of the pool without blocking readers.
type PoolExporter interface {
	Export(ctx context.Context) (PoolSnapshot, error)
}

// ObjectResolver looks objects up by typed reference.
type ObjectResolver interface {
	// Resolve returns the objects in the order of refs; unknown references yield nil.
	Resolve(ctx context.Context, refs []kernel.ObjectRef) ([]kernel.Object, error)
}

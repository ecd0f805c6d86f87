// Package ports defines the contracts between the transfer core and its adapters.
// Repositories hand out immutable snapshots; Update replaces the stored snapshot
// under the same identity and fails with errs.ErrObjectNotFound for unknown ones.
package ports

import (
	"context"

	"fleetkernel/internal/core/domain/model/bin"
	"fleetkernel/internal/core/domain/model/kernel"
	"fleetkernel/internal/core/domain/model/location"
	"fleetkernel/internal/core/domain/model/transportorder"
	"fleetkernel/internal/core/domain/model/vehicle"
)

// VehicleRepository stores vehicle snapshots.
type VehicleRepository interface {
	// Add registers a new vehicle.
	Add(ctx context.Context, v vehicle.Vehicle) error

	// Update replaces the stored snapshot with v.
	Update(ctx context.Context, v vehicle.Vehicle) error

	// Get returns the current snapshot or an errs.ObjectNotFoundError.
	Get(ctx context.Context, id kernel.UUID) (vehicle.Vehicle, error)

	// GetAll returns every stored vehicle.
	GetAll(ctx context.Context) ([]vehicle.Vehicle, error)
}

// LocationRepository stores locations together with their bin stacks.
type LocationRepository interface {
	Add(ctx context.Context, l location.Location) error
	Update(ctx context.Context, l location.Location) error
	Get(ctx context.Context, id kernel.UUID) (location.Location, error)
	GetAll(ctx context.Context) ([]location.Location, error)
}

// BinRepository stores bin snapshots.
type BinRepository interface {
	Add(ctx context.Context, b bin.Bin) error
	Update(ctx context.Context, b bin.Bin) error
	Get(ctx context.Context, id kernel.UUID) (bin.Bin, error)
	GetAll(ctx context.Context) ([]bin.Bin, error)
}

// TransportOrderRepository gives access to transport orders and their requirement
// manifests. The transfer core only reads them.
type TransportOrderRepository interface {
	Add(ctx context.Context, o transportorder.TransportOrder) error
	Get(ctx context.Context, id kernel.UUID) (transportorder.TransportOrder, error)
	GetAll(ctx context.Context) ([]transportorder.TransportOrder, error)

	// AddOrderBin registers a requirement manifest.
	AddOrderBin(ctx context.Context, ob transportorder.OrderBin) error
	// GetOrderBin returns a requirement manifest or an errs.ObjectNotFoundError.
	GetOrderBin(ctx context.Context, id kernel.UUID) (transportorder.OrderBin, error)
	GetAllOrderBins(ctx context.Context) ([]transportorder.OrderBin, error)
}

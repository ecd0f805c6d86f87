package queries

import (
	"context"
	"errors"

	"fleetkernel/internal/core/domain/model/vehicle"
	"fleetkernel/internal/core/ports"
	"fleetkernel/internal/pkg/guard"
)

var ErrGetAllVehiclesQueryIsNotConstructed = errors.New(
	"GetAllVehiclesQuery must be created via NewGetAllVehiclesQuery constructor",
)

// GetAllVehiclesQuery lists every vehicle ordered by name.
type GetAllVehiclesQuery struct {
	guard guard.ConstructorGuard
}

func NewGetAllVehiclesQuery() GetAllVehiclesQuery {
	return GetAllVehiclesQuery{guard: guard.NewConstructorGuard()}
}

func (q GetAllVehiclesQuery) Validate() error {
	return q.guard.Validate(ErrGetAllVehiclesQueryIsNotConstructed)
}

// GetAllVehiclesQueryHandler reads vehicles from a pool export.
type GetAllVehiclesQueryHandler struct {
	exporter ports.PoolExporter
}

func NewGetAllVehiclesQueryHandler(exporter ports.PoolExporter) GetAllVehiclesQueryHandler {
	return GetAllVehiclesQueryHandler{exporter: exporter}
}

func (h GetAllVehiclesQueryHandler) Handle(ctx context.Context, query GetAllVehiclesQuery) ([]vehicle.Vehicle, error) {
	if err := query.Validate(); err != nil {
		return nil, err
	}

	snapshot, err := h.exporter.Export(ctx)
	if err != nil {
		return nil, err
	}
	if snapshot.Vehicles == nil {
		return []vehicle.Vehicle{}, nil
	}
	return snapshot.Vehicles, nil
}

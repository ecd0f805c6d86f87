package commands

import (
	"context"
	"log/slog"

	"fleetkernel/internal/core/domain/model/kernel"
	"fleetkernel/internal/core/domain/model/vehicle"
	"fleetkernel/internal/core/ports"
)

// vehicleUpdater runs a single-vehicle replacement in its own unit of work and
// publishes one OBJECT_MODIFIED event for it.
type vehicleUpdater struct {
	uowFactory VehicleUoWFactory
	flusher    ports.PersistenceFlusher
	logger     *slog.Logger
}

func (u vehicleUpdater) update(
	ctx context.Context,
	cmd interface{ VehicleID() kernel.UUID },
	change func(ctx context.Context, uow VehicleUoW, v vehicle.Vehicle) (vehicle.Vehicle, error),
) error {
	uow := u.uowFactory.Create()
	if err := uow.Begin(ctx); err != nil {
		return err
	}

	defer func() {
		_ = uow.Rollback(ctx)
	}()

	v, err := uow.VehicleRepository().Get(ctx, cmd.VehicleID())
	if err != nil {
		return err
	}

	next, err := change(ctx, uow, v)
	if err != nil {
		return err
	}

	if err = uow.VehicleRepository().Update(ctx, next); err != nil {
		return err
	}
	uow.RecordEvent(ports.NewObjectModifiedEvent(next, v))

	if err = uow.Commit(ctx); err != nil {
		return err
	}

	u.flusher.TriggerFlush()
	u.logger.InfoContext(ctx, "vehicle updated", "vehicle", next.String())
	return nil
}

// UpdateVehicleTransportOrderCommandHandler assigns or clears a vehicle's transport order.
// An assigned order must be registered in the pool.
type UpdateVehicleTransportOrderCommandHandler struct {
	updater vehicleUpdater
}

func NewUpdateVehicleTransportOrderCommandHandler(
	uowFactory VehicleUoWFactory,
	flusher ports.PersistenceFlusher,
	logger *slog.Logger,
) UpdateVehicleTransportOrderCommandHandler {
	return UpdateVehicleTransportOrderCommandHandler{updater: vehicleUpdater{
		uowFactory: uowFactory,
		flusher:    flusher,
		logger:     orDiscardLogger(logger).With("component", "UpdateVehicleTransportOrder"),
	}}
}

func (h UpdateVehicleTransportOrderCommandHandler) Handle(ctx context.Context, cmd UpdateVehicleTransportOrderCommand) error {
	if err := cmd.Validate(); err != nil {
		return err
	}

	return h.updater.update(ctx, cmd, func(ctx context.Context, uow VehicleUoW, v vehicle.Vehicle) (vehicle.Vehicle, error) {
		orderID, ok := cmd.OrderID()
		if !ok {
			return v.WithTransportOrder(nil)
		}
		order, err := uow.TransportOrderRepository().Get(ctx, orderID)
		if err != nil {
			return vehicle.Vehicle{}, err
		}
		id := order.ID()
		return v.WithTransportOrder(&id)
	})
}

// UpdateVehicleEnergyLevelCommandHandler sets a vehicle's battery charge.
type UpdateVehicleEnergyLevelCommandHandler struct {
	updater vehicleUpdater
}

func NewUpdateVehicleEnergyLevelCommandHandler(
	uowFactory VehicleUoWFactory,
	flusher ports.PersistenceFlusher,
	logger *slog.Logger,
) UpdateVehicleEnergyLevelCommandHandler {
	return UpdateVehicleEnergyLevelCommandHandler{updater: vehicleUpdater{
		uowFactory: uowFactory,
		flusher:    flusher,
		logger:     orDiscardLogger(logger).With("component", "UpdateVehicleEnergyLevel"),
	}}
}

func (h UpdateVehicleEnergyLevelCommandHandler) Handle(ctx context.Context, cmd UpdateVehicleEnergyLevelCommand) error {
	if err := cmd.Validate(); err != nil {
		return err
	}

	return h.updater.update(ctx, cmd, func(_ context.Context, _ VehicleUoW, v vehicle.Vehicle) (vehicle.Vehicle, error) {
		return v.WithEnergyLevel(cmd.EnergyLevel())
	})
}

// UpdateVehicleIntegrationLevelCommandHandler changes a vehicle's integration level.
// A vehicle processing a transport order cannot be ignored or merely noticed.
type UpdateVehicleIntegrationLevelCommandHandler struct {
	updater vehicleUpdater
}

func NewUpdateVehicleIntegrationLevelCommandHandler(
	uowFactory VehicleUoWFactory,
	flusher ports.PersistenceFlusher,
	logger *slog.Logger,
) UpdateVehicleIntegrationLevelCommandHandler {
	return UpdateVehicleIntegrationLevelCommandHandler{updater: vehicleUpdater{
		uowFactory: uowFactory,
		flusher:    flusher,
		logger:     orDiscardLogger(logger).With("component", "UpdateVehicleIntegrationLevel"),
	}}
}

func (h UpdateVehicleIntegrationLevelCommandHandler) Handle(
	ctx context.Context,
	cmd UpdateVehicleIntegrationLevelCommand,
) error {
	if err := cmd.Validate(); err != nil {
		return err
	}

	return h.updater.update(ctx, cmd, func(_ context.Context, _ VehicleUoW, v vehicle.Vehicle) (vehicle.Vehicle, error) {
		return v.WithIntegrationLevel(cmd.Level())
	})
}

package commands

import (
	"errors"

	"fleetkernel/internal/core/domain/model/kernel"
	"fleetkernel/internal/core/domain/model/vehicle"
	"fleetkernel/internal/pkg/guard"
)

var (
	ErrUpdateVehicleTransportOrderCommandIsNotConstructed = errors.New(
		"UpdateVehicleTransportOrderCommand must be created via NewUpdateVehicleTransportOrderCommand constructor",
	)
	ErrUpdateVehicleEnergyLevelCommandIsNotConstructed = errors.New(
		"UpdateVehicleEnergyLevelCommand must be created via NewUpdateVehicleEnergyLevelCommand constructor",
	)
	ErrUpdateVehicleIntegrationLevelCommandIsNotConstructed = errors.New(
		"UpdateVehicleIntegrationLevelCommand must be created via NewUpdateVehicleIntegrationLevelCommand constructor",
	)
)

// UpdateVehicleTransportOrderCommand assigns a transport order to a vehicle, or
// clears it when the order is nil.
type UpdateVehicleTransportOrderCommand struct {
	vehicleID kernel.UUID
	orderID   *kernel.UUID

	guard guard.ConstructorGuard
}

func NewUpdateVehicleTransportOrderCommand(
	vehicleID kernel.UUID,
	orderID *kernel.UUID,
) (UpdateVehicleTransportOrderCommand, error) {
	var orderErr error
	if orderID != nil {
		orderErr = orderID.Validate()
	}
	if err := errors.Join(vehicleID.Validate(), orderErr); err != nil {
		return UpdateVehicleTransportOrderCommand{}, err
	}

	cmd := UpdateVehicleTransportOrderCommand{
		vehicleID: vehicleID,
		guard:     guard.NewConstructorGuard(),
	}
	if orderID != nil {
		id := *orderID
		cmd.orderID = &id
	}
	return cmd, nil
}

func (c UpdateVehicleTransportOrderCommand) Validate() error {
	return c.guard.Validate(ErrUpdateVehicleTransportOrderCommandIsNotConstructed)
}

func (c UpdateVehicleTransportOrderCommand) VehicleID() kernel.UUID {
	return c.vehicleID
}

// OrderID returns the order to assign; false means the order is cleared.
func (c UpdateVehicleTransportOrderCommand) OrderID() (kernel.UUID, bool) {
	if c.orderID == nil {
		return kernel.UUID{}, false
	}
	return *c.orderID, true
}

// UpdateVehicleEnergyLevelCommand sets the battery charge of a vehicle in percent.
type UpdateVehicleEnergyLevelCommand struct {
	vehicleID   kernel.UUID
	energyLevel int

	guard guard.ConstructorGuard
}

func NewUpdateVehicleEnergyLevelCommand(vehicleID kernel.UUID, energyLevel int) (UpdateVehicleEnergyLevelCommand, error) {
	if err := vehicleID.Validate(); err != nil {
		return UpdateVehicleEnergyLevelCommand{}, err
	}
	// range checks stay with the vehicle
	return UpdateVehicleEnergyLevelCommand{
		vehicleID:   vehicleID,
		energyLevel: energyLevel,
		guard:       guard.NewConstructorGuard(),
	}, nil
}

func (c UpdateVehicleEnergyLevelCommand) Validate() error {
	return c.guard.Validate(ErrUpdateVehicleEnergyLevelCommandIsNotConstructed)
}

func (c UpdateVehicleEnergyLevelCommand) VehicleID() kernel.UUID {
	return c.vehicleID
}

func (c UpdateVehicleEnergyLevelCommand) EnergyLevel() int {
	return c.energyLevel
}

// UpdateVehicleIntegrationLevelCommand changes how far a vehicle is integrated.
type UpdateVehicleIntegrationLevelCommand struct {
	vehicleID kernel.UUID
	level     vehicle.IntegrationLevel

	guard guard.ConstructorGuard
}

func NewUpdateVehicleIntegrationLevelCommand(
	vehicleID kernel.UUID,
	level vehicle.IntegrationLevel,
) (UpdateVehicleIntegrationLevelCommand, error) {
	if err := errors.Join(vehicleID.Validate(), level.Validate()); err != nil {
		return UpdateVehicleIntegrationLevelCommand{}, err
	}
	return UpdateVehicleIntegrationLevelCommand{
		vehicleID: vehicleID,
		level:     level,
		guard:     guard.NewConstructorGuard(),
	}, nil
}

func (c UpdateVehicleIntegrationLevelCommand) Validate() error {
	return c.guard.Validate(ErrUpdateVehicleIntegrationLevelCommandIsNotConstructed)
}

func (c UpdateVehicleIntegrationLevelCommand) VehicleID() kernel.UUID {
	return c.vehicleID
}

func (c UpdateVehicleIntegrationLevelCommand) Level() vehicle.IntegrationLevel {
	return c.level
}

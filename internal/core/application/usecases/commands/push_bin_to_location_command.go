package commands

import (
	"errors"

	"fleetkernel/internal/core/domain/model/kernel"
	"fleetkernel/internal/pkg/guard"
)

var ErrPushBinToLocationCommandIsNotConstructed = errors.New(
	"PushBinToLocationCommand must be created via NewPushBinToLocationCommand constructor",
)

// PushBinToLocationCommand asks a vehicle to drop its bin on top of a location's stack.
type PushBinToLocationCommand struct { //nolint:recvcheck //using for validation
	vehicleID  kernel.UUID
	locationID kernel.UUID

	guard guard.ConstructorGuard
}

// NewPushBinToLocationCommand validates both identities.
func NewPushBinToLocationCommand(vehicleID, locationID kernel.UUID) (PushBinToLocationCommand, error) {
	cmd := PushBinToLocationCommand{
		guard: guard.NewConstructorGuard(),
	}

	if err := errors.Join(
		cmd.setVehicleID(vehicleID),
		cmd.setLocationID(locationID),
	); err != nil {
		return PushBinToLocationCommand{}, err
	}

	return cmd, nil
}

// Validate ensures the command was created through the constructor.
func (c PushBinToLocationCommand) Validate() error {
	return c.guard.Validate(ErrPushBinToLocationCommandIsNotConstructed)
}

func (c PushBinToLocationCommand) VehicleID() kernel.UUID {
	return c.vehicleID
}

func (c PushBinToLocationCommand) LocationID() kernel.UUID {
	return c.locationID
}

func (c *PushBinToLocationCommand) setVehicleID(id kernel.UUID) error {
	if err := id.Validate(); err != nil {
		return err
	}
	c.vehicleID = id
	return nil
}

func (c *PushBinToLocationCommand) setLocationID(id kernel.UUID) error {
	if err := id.Validate(); err != nil {
		return err
	}
	c.locationID = id
	return nil
}

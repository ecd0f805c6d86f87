package commands

import (
	"errors"

	"fleetkernel/internal/core/domain/model/kernel"
	"fleetkernel/internal/pkg/guard"
)

var ErrPopBinFromLocationCommandIsNotConstructed = errors.New(
	"PopBinFromLocationCommand must be created via NewPopBinFromLocationCommand constructor",
)

// PopBinFromLocationCommand asks a vehicle to take the top bin of a location.
// With afterPick set, the quantities named by the vehicle's current transport order
// are taken out of the bin on the way.
//
// Example:
//
//	cmd, err := NewPopBinFromLocationCommand(vehicleID, locationID, true)
//	if err != nil {
//	    return err
//	}
//	err = handler.Handle(ctx, cmd)
type PopBinFromLocationCommand struct { //nolint:recvcheck //using for validation
	vehicleID  kernel.UUID
	locationID kernel.UUID
	afterPick  bool

	guard guard.ConstructorGuard
}

// NewPopBinFromLocationCommand validates both identities.
func NewPopBinFromLocationCommand(vehicleID, locationID kernel.UUID, afterPick bool) (PopBinFromLocationCommand, error) {
	cmd := PopBinFromLocationCommand{
		afterPick: afterPick,
		guard:     guard.NewConstructorGuard(),
	}

	if err := errors.Join(
		cmd.setVehicleID(vehicleID),
		cmd.setLocationID(locationID),
	); err != nil {
		return PopBinFromLocationCommand{}, err
	}

	return cmd, nil
}

// Validate ensures the command was created through the constructor.
func (c PopBinFromLocationCommand) Validate() error {
	return c.guard.Validate(ErrPopBinFromLocationCommandIsNotConstructed)
}

func (c PopBinFromLocationCommand) VehicleID() kernel.UUID {
	return c.vehicleID
}

func (c PopBinFromLocationCommand) LocationID() kernel.UUID {
	return c.locationID
}

// AfterPick reports whether the bin's SKUs are reconciled against the vehicle's
// transport order.
func (c PopBinFromLocationCommand) AfterPick() bool {
	return c.afterPick
}

func (c *PopBinFromLocationCommand) setVehicleID(id kernel.UUID) error {
	if err := id.Validate(); err != nil {
		return err
	}
	c.vehicleID = id
	return nil
}

func (c *PopBinFromLocationCommand) setLocationID(id kernel.UUID) error {
	if err := id.Validate(); err != nil {
		return err
	}
	c.locationID = id
	return nil
}

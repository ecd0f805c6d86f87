package vehicle

import (
	"errors"
	"fmt"

	"fleetkernel/internal/core/domain/model/kernel"
	"fleetkernel/internal/pkg/errs"
	"fleetkernel/internal/pkg/guard"
)

const (
	// MinEnergyLevel is the lowest accepted energy level in percent.
	MinEnergyLevel = 0
	// MaxEnergyLevel is the highest accepted energy level in percent.
	MaxEnergyLevel = 100
)

// Domain errors for vehicle operations.
var (
	// ErrVehicleIsNotConstructed is returned when using a zero-value Vehicle.
	ErrVehicleIsNotConstructed = errors.New("Vehicle must be created via NewVehicle constructor")
	// ErrVehicleAlreadyLoaded is returned when a bin is loaded onto an occupied slot.
	ErrVehicleAlreadyLoaded = errors.New("vehicle already carries a bin")
	// ErrVehicleCarriesNoBin is returned when a bin is expected on an empty slot.
	ErrVehicleCarriesNoBin = errors.New("vehicle carries no bin")
	// ErrProcessingOrder is returned when the integration level and the transport
	// order conflict: a busy vehicle cannot drop below ToBeRespected, and a vehicle
	// below ToBeRespected cannot take an order.
	ErrProcessingOrder = errors.New("vehicle is processing a transport order")
)

// Vehicle is a snapshot of an automated guided vehicle as the kernel sees it.
//
// The vehicle has a single bin slot: it is either empty or holds exactly one bin
// identity. Loading and unloading are pure value transformations, the caller
// installs the result in the object pool.
//
// Business rules:
//   - identity must be a valid UUID and the name must not be empty
//   - the energy level stays within [MinEnergyLevel, MaxEnergyLevel]
//   - while a transport order is assigned the integration level stays at
//     ToBeRespected or above
//
// Example:
//
//	v, err := vehicle.NewVehicle(kernel.NewUUID(), "AGV-01")
//	if err != nil {
//	    return err
//	}
//	loaded := v.WithBin(binID)
type Vehicle struct {
	// id uniquely identifies the vehicle
	id kernel.UUID
	// name is the name of the vehicle in the plant model
	name string
	// binID is the carried bin, nil when the slot is empty
	binID *kernel.UUID
	// transportOrderID is the order being processed, nil when idle
	transportOrderID *kernel.UUID
	// energyLevel is the battery charge in percent
	energyLevel int
	// state is the operational state reported by the driver
	state State
	// integrationLevel controls dispatching of the vehicle
	integrationLevel IntegrationLevel
	// guard ensures the vehicle was properly constructed
	guard guard.ConstructorGuard
}

// NewVehicle creates an unloaded vehicle with a full battery that is noticed by the
// kernel but not yet dispatched.
func NewVehicle(id kernel.UUID, name string) (Vehicle, error) {
	return RestoreVehicle(id, name, nil, nil, MaxEnergyLevel, StateUnknown, ToBeRespected)
}

// RestoreVehicle reconstructs a Vehicle from persisted or seeded state.
//
// Parameters:
//   - binID: carried bin, nil for an empty slot
//   - transportOrderID: current transport order, nil when idle
//
// Returns a validation error aggregating every invalid parameter.
func RestoreVehicle(
	id kernel.UUID,
	name string,
	binID *kernel.UUID,
	transportOrderID *kernel.UUID,
	energyLevel int,
	state State,
	integrationLevel IntegrationLevel,
) (Vehicle, error) {
	v := Vehicle{
		guard: guard.NewConstructorGuard(),
	}

	if err := errors.Join(
		v.setID(id),
		v.setName(name),
		v.setBin(binID),
		v.setTransportOrder(transportOrderID),
		v.setEnergyLevel(energyLevel),
		v.setState(state),
		v.setIntegrationLevel(integrationLevel),
	); err != nil {
		return Vehicle{}, err
	}

	return v, nil
}

// Ref returns the typed pool reference of the vehicle.
func (v Vehicle) Ref() kernel.ObjectRef {
	return kernel.RefOf(kernel.KindVehicle, v.id)
}

func (v Vehicle) ID() kernel.UUID {
	return v.id
}

func (v Vehicle) Name() string {
	return v.name
}

// Bin returns the carried bin identity. The second value is false for an empty slot.
func (v Vehicle) Bin() (kernel.UUID, bool) {
	if v.binID == nil {
		return kernel.UUID{}, false
	}
	return *v.binID, true
}

// HasBin reports whether the slot is occupied.
func (v Vehicle) HasBin() bool {
	return v.binID != nil
}

// TransportOrder returns the transport order being processed, if any.
func (v Vehicle) TransportOrder() (kernel.UUID, bool) {
	if v.transportOrderID == nil {
		return kernel.UUID{}, false
	}
	return *v.transportOrderID, true
}

func (v Vehicle) EnergyLevel() int {
	return v.energyLevel
}

func (v Vehicle) State() State {
	return v.state
}

func (v Vehicle) IntegrationLevel() IntegrationLevel {
	return v.integrationLevel
}

// WithBin returns the vehicle holding binID. Whatever the slot held before is
// replaced; callers check HasBin when they must not drop a bin.
func (v Vehicle) WithBin(binID kernel.UUID) Vehicle {
	v.binID = &binID
	return v
}

// WithoutBin returns the vehicle with an empty slot.
func (v Vehicle) WithoutBin() Vehicle {
	v.binID = nil
	return v
}

// WithTransportOrder returns the vehicle processing orderID; nil clears the order.
// Assigning an order to a vehicle at ToBeIgnored or ToBeNoticed fails with
// ErrProcessingOrder.
func (v Vehicle) WithTransportOrder(orderID *kernel.UUID) (Vehicle, error) {
	if orderID != nil && !v.integrationLevel.AllowsProcessingOrders() {
		return Vehicle{}, fmt.Errorf("%w: %s is %s", ErrProcessingOrder, v.name, v.integrationLevel)
	}
	if err := v.setTransportOrder(orderID); err != nil {
		return Vehicle{}, err
	}
	return v, nil
}

// WithEnergyLevel returns the vehicle with a new battery charge.
func (v Vehicle) WithEnergyLevel(level int) (Vehicle, error) {
	if err := v.setEnergyLevel(level); err != nil {
		return Vehicle{}, err
	}
	return v, nil
}

// WithIntegrationLevel returns the vehicle at level. Lowering a vehicle that
// processes a transport order to ToBeIgnored or ToBeNoticed fails with
// ErrProcessingOrder.
func (v Vehicle) WithIntegrationLevel(level IntegrationLevel) (Vehicle, error) {
	if err := level.Validate(); err != nil {
		return Vehicle{}, err
	}
	if v.transportOrderID != nil && !level.AllowsProcessingOrders() {
		return Vehicle{}, fmt.Errorf("%w: %s cannot be set to %s", ErrProcessingOrder, v.name, level)
	}
	v.integrationLevel = level
	return v, nil
}

func (v Vehicle) IsEqual(other Vehicle) bool {
	return v.id.IsEqual(other.id)
}

func (v Vehicle) Validate() error {
	return v.guard.Validate(ErrVehicleIsNotConstructed)
}

func (v Vehicle) String() string {
	slot := "empty"
	if v.binID != nil {
		slot = v.binID.String()
	}
	return fmt.Sprintf("Vehicle(%s, bin=%s, energy=%d, %s)", v.name, slot, v.energyLevel, v.integrationLevel)
}

func (v *Vehicle) setID(id kernel.UUID) error {
	if err := id.Validate(); err != nil {
		return err
	}
	v.id = id
	return nil
}

func (v *Vehicle) setName(name string) error {
	if name == "" {
		return errs.NewValueIsRequiredError("name is required")
	}
	v.name = name
	return nil
}

func (v *Vehicle) setBin(binID *kernel.UUID) error {
	if binID == nil {
		v.binID = nil
		return nil
	}
	if err := binID.Validate(); err != nil {
		return err
	}
	id := *binID
	v.binID = &id
	return nil
}

func (v *Vehicle) setTransportOrder(orderID *kernel.UUID) error {
	if orderID == nil {
		v.transportOrderID = nil
		return nil
	}
	if err := orderID.Validate(); err != nil {
		return err
	}
	id := *orderID
	v.transportOrderID = &id
	return nil
}

func (v *Vehicle) setEnergyLevel(level int) error {
	if level < MinEnergyLevel || level > MaxEnergyLevel {
		return errs.NewValueIsOutOfRangeError("energyLevel", level, MinEnergyLevel, MaxEnergyLevel)
	}
	v.energyLevel = level
	return nil
}

func (v *Vehicle) setState(state State) error {
	if err := state.Validate(); err != nil {
		return err
	}
	v.state = state
	return nil
}

func (v *Vehicle) setIntegrationLevel(level IntegrationLevel) error {
	if err := level.Validate(); err != nil {
		return err
	}
	if v.transportOrderID != nil && !level.AllowsProcessingOrders() {
		return fmt.Errorf("%w: cannot restore %s", ErrProcessingOrder, level)
	}
	v.integrationLevel = level
	return nil
}

package bin

import (
	"errors"
	"fmt"

	"fleetkernel/internal/core/domain/model/kernel"
	"fleetkernel/internal/pkg/errs"
)

// OwnerKind says who currently holds a bin.
type OwnerKind int

const (
	// OwnerNone marks a bin that is neither carried nor stacked.
	OwnerNone OwnerKind = iota
	// OwnerVehicle marks a bin carried by a vehicle.
	OwnerVehicle
	// OwnerLocation marks a bin stacked in a location.
	OwnerLocation
)

func (k OwnerKind) String() string {
	switch k {
	case OwnerNone:
		return "None"
	case OwnerVehicle:
		return "Vehicle"
	case OwnerLocation:
		return "Location"
	default:
		return "Unknown"
	}
}

// Placement is where a stacked bin sits: the location, its two tracks and the
// zero-based position in the stack counted from the bottom.
type Placement struct {
	locationID kernel.UUID
	psbTrack   string
	pstTrack   string
	position   int
}

// NewPlacement validates the location identity and the stack position.
func NewPlacement(locationID kernel.UUID, psbTrack, pstTrack string, position int) (Placement, error) {
	var positionErr error
	if position < 0 {
		positionErr = errs.NewValueIsInvalidErrorWithCause("position", fmt.Errorf("%d is negative", position))
	}
	if err := errors.Join(locationID.Validate(), positionErr); err != nil {
		return Placement{}, err
	}

	return Placement{
		locationID: locationID,
		psbTrack:   psbTrack,
		pstTrack:   pstTrack,
		position:   position,
	}, nil
}

func (p Placement) LocationID() kernel.UUID { return p.locationID }
func (p Placement) PsbTrack() string        { return p.psbTrack }
func (p Placement) PstTrack() string        { return p.pstTrack }
func (p Placement) Position() int           { return p.position }

// Owner is the single owner tag of a bin. Only the fields of its kind are set,
// which is what keeps a bin from being on a vehicle and in a stack at once.
type Owner struct {
	kind      OwnerKind
	vehicleID kernel.UUID
	placement Placement
}

// NoOwner is the tag of an unattached bin.
func NoOwner() Owner {
	return Owner{kind: OwnerNone}
}

// VehicleOwner tags a bin as carried by vehicleID.
func VehicleOwner(vehicleID kernel.UUID) Owner {
	return Owner{kind: OwnerVehicle, vehicleID: vehicleID}
}

// LocationOwner tags a bin as stacked at placement.
func LocationOwner(placement Placement) Owner {
	return Owner{kind: OwnerLocation, placement: placement}
}

func (o Owner) Kind() OwnerKind {
	return o.kind
}

// Vehicle returns the carrying vehicle, if any.
func (o Owner) Vehicle() (kernel.UUID, bool) {
	return o.vehicleID, o.kind == OwnerVehicle
}

// Placement returns the stack placement, if any.
func (o Owner) Placement() (Placement, bool) {
	return o.placement, o.kind == OwnerLocation
}

func (o Owner) Validate() error {
	switch o.kind {
	case OwnerNone:
		return nil
	case OwnerVehicle:
		return o.vehicleID.Validate()
	case OwnerLocation:
		return o.placement.locationID.Validate()
	default:
		return errs.NewValueIsInvalidErrorWithCause("owner", fmt.Errorf("%d is not a valid owner kind", o.kind))
	}
}

func (o Owner) String() string {
	switch o.kind {
	case OwnerVehicle:
		return fmt.Sprintf("Vehicle(%s)", o.vehicleID)
	case OwnerLocation:
		return fmt.Sprintf("Location(%s, psb=%s, pst=%s, pos=%d)",
			o.placement.locationID, o.placement.psbTrack, o.placement.pstTrack, o.placement.position)
	default:
		return "None"
	}
}

package bin

import (
	"errors"
	"fmt"
	"slices"
	"strings"

	"fleetkernel/internal/core/domain/model/kernel"
	"fleetkernel/internal/pkg/errs"
	"fleetkernel/internal/pkg/guard"
)

var (
	// ErrBinIsNotConstructed is returned when using a zero-value Bin.
	ErrBinIsNotConstructed = errors.New("Bin must be created via NewBin constructor")
	// ErrDuplicateSKU is returned when a SKU set names the same skuID twice.
	ErrDuplicateSKU = errors.New("duplicate skuID in bin")
)

// Bin is a mobile inventory container exchanged between vehicles and locations.
//
// A Bin is an immutable snapshot. Every transformation (attaching it to a vehicle,
// stamping a stack placement, replacing its SKU set, unlocking it) returns a new
// Bin and leaves the receiver untouched, so a snapshot handed to event subscribers
// can never change underneath them.
//
// Business rules:
//   - identity must be a valid UUID and the name must not be empty
//   - skuIDs are unique within a bin, quantities are non-negative
//   - the owner tag names at most one holder: nobody, a vehicle or a location placement
//
// Example:
//
//	sku, _ := bin.NewSKU("A", 10)
//	b, err := bin.NewBin(kernel.NewUUID(), "BIN-0001", []bin.SKU{sku})
//	if err != nil {
//	    return err
//	}
//	carried := b.AttachToVehicle(vehicleID)
type Bin struct {
	// id is the stable identity of the bin
	id kernel.UUID
	// name is the human-readable label printed on the bin
	name string
	// skus is kept sorted by skuID
	skus []SKU
	// owner is the current holder of the bin
	owner Owner
	// locked bins are reserved by a running pick
	locked bool
	// guard ensures the bin was constructed properly
	guard guard.ConstructorGuard
}

// NewBin creates an unowned, unlocked bin holding skus.
func NewBin(id kernel.UUID, name string, skus []SKU) (Bin, error) {
	return RestoreBin(id, name, skus, NoOwner(), false)
}

// RestoreBin rebuilds a bin from persisted or seeded state, including its owner tag
// and lock flag.
func RestoreBin(id kernel.UUID, name string, skus []SKU, owner Owner, locked bool) (Bin, error) {
	b := Bin{
		locked: locked,
		guard:  guard.NewConstructorGuard(),
	}

	if err := errors.Join(
		b.setID(id),
		b.setName(name),
		b.setSKUs(skus),
		b.setOwner(owner),
	); err != nil {
		return Bin{}, err
	}

	return b, nil
}

// Ref returns the typed pool reference of the bin.
func (b Bin) Ref() kernel.ObjectRef {
	return kernel.RefOf(kernel.KindBin, b.id)
}

func (b Bin) ID() kernel.UUID {
	return b.id
}

func (b Bin) Name() string {
	return b.name
}

// SKUs returns a copy of the SKU set ordered by skuID.
func (b Bin) SKUs() []SKU {
	return slices.Clone(b.skus)
}

func (b Bin) Owner() Owner {
	return b.owner
}

func (b Bin) IsLocked() bool {
	return b.locked
}

// WithSKUs returns a copy of the bin holding skus instead of its current set.
func (b Bin) WithSKUs(skus []SKU) (Bin, error) {
	if err := b.setSKUs(skus); err != nil {
		return Bin{}, err
	}
	return b, nil
}

// Unlock returns an unlocked copy of the bin.
func (b Bin) Unlock() Bin {
	b.locked = false
	return b
}

// AttachToVehicle returns a copy owned by vehicleID with every location field cleared.
func (b Bin) AttachToVehicle(vehicleID kernel.UUID) Bin {
	b.owner = VehicleOwner(vehicleID)
	return b
}

// AttachToLocation returns a copy stamped with placement.
func (b Bin) AttachToLocation(placement Placement) Bin {
	b.owner = LocationOwner(placement)
	return b
}

// HasSameContents reports whether both bins carry identical SKU entries and lock
// state. Owner and placement are ignored.
func (b Bin) HasSameContents(other Bin) bool {
	if b.locked != other.locked || len(b.skus) != len(other.skus) {
		return false
	}
	for i := range b.skus {
		if b.skus[i].id != other.skus[i].id || b.skus[i].quantity != other.skus[i].quantity {
			return false
		}
	}
	return true
}

func (b Bin) IsEqual(other Bin) bool {
	return b.id.IsEqual(other.id)
}

func (b Bin) Validate() error {
	return b.guard.Validate(ErrBinIsNotConstructed)
}

func (b Bin) String() string {
	return fmt.Sprintf("Bin(%s, %s, owner=%s, locked=%t)", b.name, b.skus, b.owner, b.locked)
}

func (b *Bin) setID(id kernel.UUID) error {
	if err := id.Validate(); err != nil {
		return err
	}
	b.id = id
	return nil
}

func (b *Bin) setName(name string) error {
	if name == "" {
		return errs.NewValueIsRequiredError("name is required")
	}
	b.name = name
	return nil
}

func (b *Bin) setSKUs(skus []SKU) error {
	sorted := make([]SKU, 0, len(skus))
	for _, sku := range skus {
		if err := sku.Validate(); err != nil {
			return err
		}
		sorted = append(sorted, sku)
	}

	slices.SortFunc(sorted, func(a, c SKU) int {
		return strings.Compare(a.id, c.id)
	})
	for i := 1; i < len(sorted); i++ {
		if sorted[i].id == sorted[i-1].id {
			return fmt.Errorf("%w: %s", ErrDuplicateSKU, sorted[i].id)
		}
	}

	b.skus = sorted
	return nil
}

func (b *Bin) setOwner(owner Owner) error {
	if err := owner.Validate(); err != nil {
		return err
	}
	b.owner = owner
	return nil
}

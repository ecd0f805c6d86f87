package transportorder

import (
	"errors"
	"fmt"
	"maps"
	"slices"

	"fleetkernel/internal/core/domain/model/kernel"
	"fleetkernel/internal/pkg/errs"
	"fleetkernel/internal/pkg/guard"
)

// ErrOrderBinIsNotConstructed is returned when using a zero-value OrderBin.
var ErrOrderBinIsNotConstructed = errors.New("OrderBin must be created via NewOrderBin constructor")

// OrderBin is the requirement manifest attached to a transport order: for every
// skuID the quantity a pick removes from the bin. It is read-only.
type OrderBin struct {
	id       kernel.UUID
	name     string
	required map[string]int
	guard    guard.ConstructorGuard
}

// NewOrderBin validates and copies the manifest.
func NewOrderBin(id kernel.UUID, name string, required map[string]int) (OrderBin, error) {
	ob := OrderBin{guard: guard.NewConstructorGuard()}

	if err := errors.Join(
		ob.setID(id),
		ob.setName(name),
		ob.setRequired(required),
	); err != nil {
		return OrderBin{}, err
	}

	return ob, nil
}

// Ref returns the typed pool reference of the manifest.
func (ob OrderBin) Ref() kernel.ObjectRef {
	return kernel.RefOf(kernel.KindTransportOrderBin, ob.id)
}

func (ob OrderBin) ID() kernel.UUID {
	return ob.id
}

func (ob OrderBin) Name() string {
	return ob.name
}

// Required returns the quantity required for skuID and whether the manifest names it.
func (ob OrderBin) Required(skuID string) (int, bool) {
	qty, ok := ob.required[skuID]
	return qty, ok
}

// Requirements returns a copy of the whole manifest.
func (ob OrderBin) Requirements() map[string]int {
	return maps.Clone(ob.required)
}

// SKUIDs returns the named skuIDs in lexical order.
func (ob OrderBin) SKUIDs() []string {
	return slices.Sorted(maps.Keys(ob.required))
}

func (ob OrderBin) Validate() error {
	return ob.guard.Validate(ErrOrderBinIsNotConstructed)
}

func (ob OrderBin) String() string {
	return fmt.Sprintf("OrderBin(%s, %v)", ob.name, ob.required)
}

func (ob *OrderBin) setID(id kernel.UUID) error {
	if err := id.Validate(); err != nil {
		return err
	}
	ob.id = id
	return nil
}

func (ob *OrderBin) setName(name string) error {
	if name == "" {
		return errs.NewValueIsRequiredError("name is required")
	}
	ob.name = name
	return nil
}

func (ob *OrderBin) setRequired(required map[string]int) error {
	for skuID, qty := range required {
		if skuID == "" {
			return errs.NewValueIsRequiredError("skuID")
		}
		if qty < 0 {
			return errs.NewValueIsInvalidErrorWithCause(
				"required quantity is invalid",
				fmt.Errorf("%s requires %d", skuID, qty),
			)
		}
	}
	ob.required = maps.Clone(required)
	if ob.required == nil {
		ob.required = map[string]int{}
	}
	return nil
}

package bin

import (
	"errors"
	"fmt"

	"fleetkernel/internal/pkg/errs"
	"fleetkernel/internal/pkg/guard"
)

// ErrSKUIsNotConstructed is returned when a zero-value SKU is used.
var ErrSKUIsNotConstructed = errors.New("SKU must be created via NewSKU constructor")

// SKU is a stock-keeping unit entry of a bin: an id unique within the bin and a
// non-negative quantity.
type SKU struct {
	id       string
	quantity int
	guard    guard.ConstructorGuard
}

// NewSKU validates and creates a SKU entry.
func NewSKU(id string, quantity int) (SKU, error) {
	sku := SKU{guard: guard.NewConstructorGuard()}

	if err := errors.Join(sku.setID(id), sku.setQuantity(quantity)); err != nil {
		return SKU{}, err
	}

	return sku, nil
}

func (s SKU) ID() string {
	return s.id
}

func (s SKU) Quantity() int {
	return s.quantity
}

// Take removes required units from the entry. It returns the remaining entry and
// whether anything is left; an entry that reaches zero or below is exhausted.
func (s SKU) Take(required int) (SKU, bool) {
	rest := s.quantity - required
	if rest <= 0 {
		return SKU{}, false
	}
	s.quantity = rest
	return s, true
}

func (s SKU) Validate() error {
	return s.guard.Validate(ErrSKUIsNotConstructed)
}

func (s SKU) String() string {
	return fmt.Sprintf("%s:%d", s.id, s.quantity)
}

func (s *SKU) setID(id string) error {
	if id == "" {
		return errs.NewValueIsRequiredError("skuID")
	}
	s.id = id
	return nil
}

func (s *SKU) setQuantity(quantity int) error {
	if quantity < 0 {
		return errs.NewValueIsInvalidErrorWithCause(
			"quantity is invalid",
			fmt.Errorf("%d is negative", quantity),
		)
	}
	s.quantity = quantity
	return nil
}

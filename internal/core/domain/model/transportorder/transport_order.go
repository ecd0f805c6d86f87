package transportorder

import (
	"errors"
	"fmt"

	"fleetkernel/internal/core/domain/model/kernel"
	"fleetkernel/internal/pkg/errs"
	"fleetkernel/internal/pkg/guard"
)

var (
	// ErrTransportOrderIsNotConstructed is returned when using a zero-value TransportOrder.
	ErrTransportOrderIsNotConstructed = errors.New("TransportOrder must be created via NewTransportOrder constructor")
	// ErrNoOrderBin is returned when a pick needs a manifest the order does not have.
	ErrNoOrderBin = errors.New("transport order has no order bin")
)

// TransportOrder is the part of a transport order the bin transfer needs: its
// identity and the manifest of SKUs to pick. The order lifecycle itself lives
// elsewhere.
type TransportOrder struct {
	id         kernel.UUID
	name       string
	orderBinID *kernel.UUID
	guard      guard.ConstructorGuard
}

// NewTransportOrder creates an order. orderBinID may be nil for orders that do not
// pick from bins.
func NewTransportOrder(id kernel.UUID, name string, orderBinID *kernel.UUID) (TransportOrder, error) {
	o := TransportOrder{guard: guard.NewConstructorGuard()}

	var binErr error
	if orderBinID != nil {
		if binErr = orderBinID.Validate(); binErr == nil {
			binID := *orderBinID
			o.orderBinID = &binID
		}
	}

	if err := errors.Join(o.setID(id), o.setName(name), binErr); err != nil {
		return TransportOrder{}, err
	}

	return o, nil
}

// Ref returns the typed pool reference of the order.
func (o TransportOrder) Ref() kernel.ObjectRef {
	return kernel.RefOf(kernel.KindTransportOrder, o.id)
}

func (o TransportOrder) ID() kernel.UUID {
	return o.id
}

func (o TransportOrder) Name() string {
	return o.name
}

// OrderBin returns the identity of the attached manifest.
func (o TransportOrder) OrderBin() (kernel.UUID, bool) {
	if o.orderBinID == nil {
		return kernel.UUID{}, false
	}
	return *o.orderBinID, true
}

func (o TransportOrder) Validate() error {
	return o.guard.Validate(ErrTransportOrderIsNotConstructed)
}

func (o TransportOrder) String() string {
	return fmt.Sprintf("TransportOrder(%s)", o.name)
}

func (o *TransportOrder) setID(id kernel.UUID) error {
	if err := id.Validate(); err != nil {
		return err
	}
	o.id = id
	return nil
}

func (o *TransportOrder) setName(name string) error {
	if name == "" {
		return errs.NewValueIsRequiredError("name is required")
	}
	o.name = name
	return nil
}

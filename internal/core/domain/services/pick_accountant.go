package services

import (
	"errors"
	"fmt"

	"fleetkernel/internal/core/domain/model/bin"
	"fleetkernel/internal/core/domain/model/transportorder"
)

// ErrInvalidPickInput is returned when the bin or the manifest handed to the
// accountant was not properly constructed.
var ErrInvalidPickInput = errors.New("invalid pick input")

// PickAccountant is a domain service that reconciles a bin's SKU set after a pick.
//
// Key responsibilities:
//   - Subtracting the quantities named by a transport order's manifest
//   - Dropping SKU entries a pick has exhausted
//   - Releasing the bin's pick lock
//
// Business rules:
//   - SKUs named by the manifest keep their entry only while the remainder is > 0
//   - SKUs the manifest does not name pass through unchanged, whatever their quantity
//   - the reconciled bin is always unlocked
//   - neither the bin nor the manifest is mutated, a new bin value is returned
//
// Example usage:
//
//	accountant := services.NewPickAccountant()
//	picked, err := accountant.Reconcile(carried, manifest)
//	if err != nil {
//	    return err
//	}
//	// {A:10, B:5} minus {A:4} leaves {A:6, B:5}
type PickAccountant struct{}

// NewPickAccountant creates a new PickAccountant instance.
func NewPickAccountant() PickAccountant {
	return PickAccountant{}
}

// Reconcile returns b with the manifest's quantities taken out and the lock released.
//
// Returns:
//   - bin.Bin: the reconciled bin, same identity, name and owner as b
//   - error: ErrInvalidPickInput if either argument is a zero value
func (PickAccountant) Reconcile(b bin.Bin, manifest transportorder.OrderBin) (bin.Bin, error) {
	if err := errors.Join(b.Validate(), manifest.Validate()); err != nil {
		return bin.Bin{}, fmt.Errorf("%w: %w", ErrInvalidPickInput, err)
	}

	skus := b.SKUs()
	remaining := make([]bin.SKU, 0, len(skus))
	for _, sku := range skus {
		required, named := manifest.Required(sku.ID())
		if !named {
			remaining = append(remaining, sku)
			continue
		}
		if rest, left := sku.Take(required); left {
			remaining = append(remaining, rest)
		}
	}

	picked, err := b.WithSKUs(remaining)
	if err != nil {
		return bin.Bin{}, err
	}
	return picked.Unlock(), nil
}

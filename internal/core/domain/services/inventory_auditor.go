package services

import (
	"cmp"
	"fmt"
	"maps"
	"slices"
	"strings"

	"fleetkernel/internal/core/domain/model/bin"
	"fleetkernel/internal/core/domain/model/kernel"
	"fleetkernel/internal/core/domain/model/location"
	"fleetkernel/internal/core/domain/model/vehicle"
)

// Discrepancy describes one object whose ownership disagrees with its holders.
type Discrepancy struct {
	Ref    kernel.ObjectRef
	Reason string
}

func (d Discrepancy) String() string {
	return fmt.Sprintf("%s: %s", d.Ref, d.Reason)
}

// InventoryAuditor cross-checks bin owner tags against vehicle slots and location
// stacks.
//
// Business rules:
//   - a bin is held by at most one vehicle slot or stack entry
//   - a carried bin names the carrying vehicle as its owner
//   - a stacked bin names the location and its position in the stack
//   - a bin owned by a holder is actually held by it
//   - vehicles and stacks only reference registered bins
//
// Example usage:
//
//	auditor := services.NewInventoryAuditor()
//	for _, d := range auditor.Audit(vehicles, locations, bins) {
//	    logger.Warn("inventory discrepancy", "object", d.Ref, "reason", d.Reason)
//	}
type InventoryAuditor struct{}

func NewInventoryAuditor() InventoryAuditor {
	return InventoryAuditor{}
}

type holder struct {
	ref      kernel.ObjectRef
	position int
}

// Audit returns every discrepancy found, ordered by bin name. A consistent
// inventory yields nil.
func (InventoryAuditor) Audit(
	vehicles []vehicle.Vehicle,
	locations []location.Location,
	bins []bin.Bin,
) []Discrepancy {
	byID := make(map[kernel.UUID]bin.Bin, len(bins))
	for _, b := range bins {
		byID[b.ID()] = b
	}

	holders := make(map[kernel.UUID][]holder)
	var found []Discrepancy

	for _, v := range vehicles {
		binID, ok := v.Bin()
		if !ok {
			continue
		}
		if _, known := byID[binID]; !known {
			found = append(found, Discrepancy{Ref: v.Ref(), Reason: fmt.Sprintf("carries unknown bin %s", binID)})
			continue
		}
		holders[binID] = append(holders[binID], holder{ref: v.Ref()})
	}

	for _, l := range locations {
		for position, binID := range l.Stack().Bins() {
			if _, known := byID[binID]; !known {
				found = append(found, Discrepancy{Ref: l.Ref(), Reason: fmt.Sprintf("stacks unknown bin %s", binID)})
				continue
			}
			holders[binID] = append(holders[binID], holder{ref: l.Ref(), position: position})
		}
	}

	ordered := slices.SortedFunc(maps.Values(byID), func(a, b bin.Bin) int {
		return cmp.Or(
			strings.Compare(a.Name(), b.Name()),
			strings.Compare(a.ID().String(), b.ID().String()),
		)
	})

	for _, b := range ordered {
		found = append(found, auditBin(b, holders[b.ID()])...)
	}
	return found
}

func auditBin(b bin.Bin, held []holder) []Discrepancy {
	if len(held) > 1 {
		refs := make([]string, 0, len(held))
		for _, h := range held {
			refs = append(refs, h.ref.String())
		}
		return []Discrepancy{{Ref: b.Ref(), Reason: fmt.Sprintf("held by %d holders %v", len(held), refs)}}
	}

	owner := b.Owner()
	if len(held) == 0 {
		if owner.Kind() != bin.OwnerNone {
			return []Discrepancy{{Ref: b.Ref(), Reason: fmt.Sprintf("owner %s does not hold it", owner)}}
		}
		return nil
	}

	h := held[0]
	switch h.ref.Kind() {
	case kernel.KindVehicle:
		if vehicleID, ok := owner.Vehicle(); !ok || !vehicleID.IsEqual(h.ref.ID()) {
			return []Discrepancy{{Ref: b.Ref(), Reason: fmt.Sprintf("carried by %s but owner is %s", h.ref, owner)}}
		}
	case kernel.KindLocation:
		placement, ok := owner.Placement()
		if !ok || !placement.LocationID().IsEqual(h.ref.ID()) {
			return []Discrepancy{{Ref: b.Ref(), Reason: fmt.Sprintf("stacked in %s but owner is %s", h.ref, owner)}}
		}
		if placement.Position() != h.position {
			return []Discrepancy{{Ref: b.Ref(), Reason: fmt.Sprintf(
				"stacked at position %d but placement says %d", h.position, placement.Position())}}
		}
	}
	return nil
}

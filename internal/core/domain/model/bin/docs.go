// Package bin models the mobile inventory container moved between vehicles and
// storage locations.
//
// The package includes:
//   - Bin: an immutable container snapshot with its SKU set, owner tag and lock flag
//   - SKU: a stock-keeping unit entry with a non-negative quantity
//   - Owner and Placement: the single holder of a bin, either a vehicle or a
//     location stack slot
//
// A bin is owned by at most one holder at any time. Owner is a tagged value, so
// attaching a bin to a vehicle drops every location field and stamping a placement
// drops the vehicle.
package bin

// Package vehicle models automated guided vehicles and their single bin slot.
//
// The package includes:
//   - Vehicle: an immutable snapshot with bin slot, transport order, energy level,
//     state and integration level
//   - IntegrationLevel and State: enumerations with their wire forms
//
// Key business rules:
//   - a vehicle carries at most one bin
//   - the energy level is a percentage
//   - a vehicle processing a transport order is never ignored or merely noticed
package vehicle

// Package services provides domain services of the fleet kernel that work across
// more than one entity.
//
// The package includes:
//   - PickAccountant: reconciles a bin's SKU quantities against a transport
//     order's requirement manifest after a pick
//   - InventoryAuditor: cross-checks bin owner tags against vehicle slots and
//     location stacks
package services

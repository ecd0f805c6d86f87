// Package errs provides the standardized error types of the fleet kernel.
//
// Every error type follows the same pattern:
//   - a sentinel error variable (e.g. ErrObjectNotFound)
//   - a struct type carrying the details
//   - constructors with and without a cause
//   - Error() for formatting and Unwrap() returning the sentinel
//
// ErrObjectNotFound is what the transfer core reports when a referenced vehicle,
// location, bin or transport order is not registered in the object pool. It is the
// only failure that aborts a transfer before anything is mutated.
package errs

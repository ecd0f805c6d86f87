// Package guard detects domain values that were not built through their constructors.
package guard

import "errors"

// ErrDefaultConstructorGuard is returned by Validate when no specific error is supplied.
var ErrDefaultConstructorGuard = errors.New("object must be created via its constructor")

// ConstructorGuard is embedded in entities and value objects. Its zero value is
// "not constructed", so a zero-value entity fails validation while every value
// produced by a constructor (or derived from one) passes.
//
// Example:
//
//	type Bin struct {
//	    id    kernel.UUID
//	    guard guard.ConstructorGuard
//	}
//
//	func (b Bin) Validate() error {
//	    return b.guard.Validate(ErrBinIsNotConstructed)
//	}
type ConstructorGuard struct {
	isConstructed bool
}

// NewConstructorGuard returns a guard marked as constructed.
func NewConstructorGuard() ConstructorGuard {
	return ConstructorGuard{isConstructed: true}
}

// Validate returns validationError (or ErrDefaultConstructorGuard when it is nil)
// if the guard is a zero value, and nil otherwise.
func (g ConstructorGuard) Validate(validationError error) error {
	if validationError == nil {
		validationError = ErrDefaultConstructorGuard
	}
	if !g.isConstructed {
		return validationError
	}
	return nil
}

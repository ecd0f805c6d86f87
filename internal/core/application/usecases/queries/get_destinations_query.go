// Package queries contains read operations on the object pool.
// Queries never take the pool's write lock and return committed snapshots.
package queries

import (
	"errors"
	"slices"

	"fleetkernel/internal/core/domain/model/kernel"
	"fleetkernel/internal/pkg/guard"
)

var ErrGetDestinationsQueryIsNotConstructed = errors.New(
	"GetDestinationsQuery must be created via NewGetDestinationsQuery constructor",
)

// GetDestinationsQuery resolves a list of typed references into the objects they
// name, keeping the order of the list.
//
// Example:
//
//	query, err := NewGetDestinationsQuery([]kernel.ObjectRef{rackRef, dockRef})
//	if err != nil {
//	    return err
//	}
//	objects, err := handler.Handle(ctx, query)
//	// objects[i] is nil when refs[i] is not registered
type GetDestinationsQuery struct {
	refs  []kernel.ObjectRef
	guard guard.ConstructorGuard
}

// NewGetDestinationsQuery validates every reference. An empty list is allowed.
func NewGetDestinationsQuery(refs []kernel.ObjectRef) (GetDestinationsQuery, error) {
	errList := make([]error, 0, len(refs))
	for _, ref := range refs {
		errList = append(errList, ref.Validate())
	}
	if err := errors.Join(errList...); err != nil {
		return GetDestinationsQuery{}, err
	}

	return GetDestinationsQuery{
		refs:  slices.Clone(refs),
		guard: guard.NewConstructorGuard(),
	}, nil
}

// Validate ensures the query was created through the constructor.
func (q GetDestinationsQuery) Validate() error {
	return q.guard.Validate(ErrGetDestinationsQueryIsNotConstructed)
}

func (q GetDestinationsQuery) Refs() []kernel.ObjectRef {
	return slices.Clone(q.refs)
}

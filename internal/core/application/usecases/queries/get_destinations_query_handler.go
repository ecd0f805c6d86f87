package queries

import (
	"context"

	"fleetkernel/internal/core/domain/model/kernel"
	"fleetkernel/internal/core/ports"
)

// GetDestinationsQueryHandler resolves destination references against the pool.
// Unknown references never fail the query; their slot in the result is nil.
type GetDestinationsQueryHandler struct {
	resolver ports.ObjectResolver
}

func NewGetDestinationsQueryHandler(resolver ports.ObjectResolver) GetDestinationsQueryHandler {
	return GetDestinationsQueryHandler{resolver: resolver}
}

// Handle returns one entry per reference, in order.
func (h GetDestinationsQueryHandler) Handle(ctx context.Context, query GetDestinationsQuery) ([]kernel.Object, error) {
	if err := query.Validate(); err != nil {
		return nil, err
	}

	refs := query.Refs()
	if len(refs) == 0 {
		return []kernel.Object{}, nil
	}

	return h.resolver.Resolve(ctx, refs)
}

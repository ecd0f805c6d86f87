// Package kernel provides the primitives shared by every object of the fleet model:
// UUID identities, object kinds and typed object references.
//
// Everything stored in the object pool implements Object, which lets the pool,
// the change-event pipeline and destination lookups treat vehicles, locations,
// bins and transport orders uniformly while each keeps its own strongly-typed store.
package kernel

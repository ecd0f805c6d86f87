package ports

import (
	"context"

	"fleetkernel/internal/core/domain/model/kernel"
)

// EventType classifies an object change.
type EventType string

const (
	// ObjectModified is published whenever a stored snapshot is replaced.
	ObjectModified EventType = "OBJECT_MODIFIED"
)

// ObjectEvent carries the snapshot after and before a change.
//
// CommitID groups the events of one committed unit of work and Sequence is the
// event's position within it. Both stay zero until the pool publishes the event.
type ObjectEvent struct {
	Type     EventType
	Current  kernel.Object
	Previous kernel.Object
	CommitID kernel.UUID
	Sequence int
}

// NewObjectModifiedEvent builds an OBJECT_MODIFIED event for a replaced snapshot.
func NewObjectModifiedEvent(current, previous kernel.Object) ObjectEvent {
	return ObjectEvent{
		Type:     ObjectModified,
		Current:  current,
		Previous: previous,
	}
}

// Ref returns the reference of the changed object.
func (e ObjectEvent) Ref() kernel.ObjectRef {
	return e.Current.Ref()
}

// ObjectEventSubscriber receives committed object events synchronously, in the
// order they were recorded. Implementations must return quickly and must not start
// a unit of work of their own. Returned errors are logged and otherwise ignored.
type ObjectEventSubscriber interface {
	OnObjectEvent(ctx context.Context, event ObjectEvent) error
}

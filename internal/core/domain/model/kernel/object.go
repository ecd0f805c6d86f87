package kernel

import (
	"errors"
	"fmt"

	"fleetkernel/internal/pkg/errs"
)

// ObjectKind tags the type of an object held by the object pool.
type ObjectKind int

const (
	// UnknownKind is the zero value and never a valid kind.
	UnknownKind ObjectKind = iota
	// KindVehicle identifies vehicle snapshots.
	KindVehicle
	// KindLocation identifies storage locations with a bin stack.
	KindLocation
	// KindBin identifies mobile inventory containers.
	KindBin
	// KindTransportOrder identifies transport orders.
	KindTransportOrder
	// KindTransportOrderBin identifies requirement manifests attached to transport orders.
	KindTransportOrderBin
)

func getObjectKindStrings() map[ObjectKind]string {
	return map[ObjectKind]string{
		KindVehicle:           "Vehicle",
		KindLocation:          "Location",
		KindBin:               "Bin",
		KindTransportOrder:    "TransportOrder",
		KindTransportOrderBin: "TransportOrderBin",
	}
}

// ParseObjectKind converts the textual form produced by String back into a kind.
func ParseObjectKind(s string) (ObjectKind, error) {
	for kind, str := range getObjectKindStrings() {
		if str == s {
			return kind, nil
		}
	}
	return UnknownKind, errs.NewValueIsInvalidErrorWithCause("kind", fmt.Errorf("%q is not a known object kind", s))
}

func (k ObjectKind) Validate() error {
	if _, ok := getObjectKindStrings()[k]; !ok {
		return errs.NewValueIsInvalidErrorWithCause("kind", fmt.Errorf("%d is not a valid object kind", k))
	}
	return nil
}

func (k ObjectKind) String() string {
	if str, ok := getObjectKindStrings()[k]; ok {
		return str
	}
	return "Unknown"
}

// ObjectRef is a typed reference to a pooled object.
type ObjectRef struct {
	kind ObjectKind
	id   UUID
}

// NewObjectRef builds a reference, rejecting unknown kinds and zero identities.
func NewObjectRef(kind ObjectKind, id UUID) (ObjectRef, error) {
	if err := errors.Join(kind.Validate(), id.Validate()); err != nil {
		return ObjectRef{}, err
	}
	return ObjectRef{kind: kind, id: id}, nil
}

// RefOf builds a reference without validation. Entities use it to report their own
// reference; the result of a zero-value entity fails Validate.
func RefOf(kind ObjectKind, id UUID) ObjectRef {
	return ObjectRef{kind: kind, id: id}
}

func (r ObjectRef) Kind() ObjectKind {
	return r.kind
}

func (r ObjectRef) ID() UUID {
	return r.id
}

func (r ObjectRef) IsEqual(other ObjectRef) bool {
	return r.kind == other.kind && r.id.IsEqual(other.id)
}

func (r ObjectRef) Validate() error {
	return errors.Join(r.kind.Validate(), r.id.Validate())
}

func (r ObjectRef) String() string {
	return fmt.Sprintf("%s:%s", r.kind, r.id)
}

// Object is implemented by every snapshot stored in the object pool.
type Object interface {
	Ref() ObjectRef
	Name() string
	// Validate reports whether the snapshot was built through its constructor.
	Validate() error
}

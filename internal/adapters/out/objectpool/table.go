package objectpool

import (
	"errors"
	"fmt"
	"maps"
	"slices"
	"strings"

	"fleetkernel/internal/core/domain/model/kernel"
	"fleetkernel/internal/pkg/errs"
)

// ErrObjectAlreadyExists is returned when Add names an identity that is already registered.
var ErrObjectAlreadyExists = errors.New("object already exists")

// table holds the committed snapshots of one object kind.
type table[T kernel.Object] map[kernel.UUID]T

// all returns the snapshots ordered by name, then identity.
func (t table[T]) all() []T {
	return sortedObjects(slices.Collect(maps.Values(t)))
}

// stagedTable overlays uncommitted replacements over a committed table.
// The committed table is only read until install.
type stagedTable[T kernel.Object] struct {
	param   string
	base    table[T]
	overlay table[T]
}

func newStagedTable[T kernel.Object](param string, base table[T]) *stagedTable[T] {
	return &stagedTable[T]{
		param:   param,
		base:    base,
		overlay: make(table[T]),
	}
}

func (t *stagedTable[T]) lookup(id kernel.UUID) (T, bool) {
	if obj, ok := t.overlay[id]; ok {
		return obj, true
	}
	obj, ok := t.base[id]
	return obj, ok
}

func (t *stagedTable[T]) get(id kernel.UUID) (T, error) {
	obj, ok := t.lookup(id)
	if !ok {
		var zero T
		return zero, errs.NewObjectNotFoundError(t.param, id)
	}
	return obj, nil
}

func (t *stagedTable[T]) add(obj T) error {
	if err := obj.Validate(); err != nil {
		return err
	}
	id := obj.Ref().ID()
	if _, ok := t.lookup(id); ok {
		return fmt.Errorf("%w: %s %s", ErrObjectAlreadyExists, t.param, id)
	}
	t.overlay[id] = obj
	return nil
}

func (t *stagedTable[T]) update(obj T) error {
	if err := obj.Validate(); err != nil {
		return err
	}
	id := obj.Ref().ID()
	if _, ok := t.lookup(id); !ok {
		return errs.NewObjectNotFoundError(t.param, id)
	}
	t.overlay[id] = obj
	return nil
}

func (t *stagedTable[T]) all() []T {
	merged := maps.Clone(t.base)
	if merged == nil {
		merged = make(table[T])
	}
	maps.Copy(merged, t.overlay)
	return merged.all()
}

func (t *stagedTable[T]) install() {
	maps.Copy(t.base, t.overlay)
	clear(t.overlay)
}

func (t *stagedTable[T]) discard() {
	clear(t.overlay)
}

func sortedObjects[T kernel.Object](objects []T) []T {
	slices.SortFunc(objects, func(a, b T) int {
		if c := strings.Compare(a.Name(), b.Name()); c != 0 {
			return c
		}
		return strings.Compare(a.Ref().ID().String(), b.Ref().ID().String())
	})
	return objects
}

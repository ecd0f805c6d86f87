package location

import (
	"errors"
	"fmt"

	"fleetkernel/internal/core/domain/model/kernel"
	"fleetkernel/internal/pkg/errs"
	"fleetkernel/internal/pkg/guard"
)

var (
	// ErrLocationIsNotConstructed is returned when using a zero-value Location.
	ErrLocationIsNotConstructed = errors.New("Location must be created via NewLocation constructor")
	// ErrStackCapacityExceeded is returned when a bin is pushed onto a full stack.
	ErrStackCapacityExceeded = errors.New("location stack capacity exceeded")
)

// Location is a storage place in the plant model that keeps bins in a bounded stack.
//
// Business rules:
//   - identity must be a valid UUID and the name must not be empty
//   - the stack never grows beyond its capacity
//   - only the top bin can leave the location
//
// Bins pushed here are stamped with both track identifiers, so they are part of the
// location value as well.
type Location struct {
	id       kernel.UUID
	name     string
	psbTrack string
	pstTrack string
	stack    Stack
	guard    guard.ConstructorGuard
}

// NewLocation creates a location with an empty stack of the given capacity.
func NewLocation(id kernel.UUID, name, psbTrack, pstTrack string, capacity int) (Location, error) {
	stack, err := NewStack(capacity)
	if err != nil {
		return Location{}, err
	}
	return RestoreLocation(id, name, psbTrack, pstTrack, stack)
}

// RestoreLocation rebuilds a location around an existing stack.
func RestoreLocation(id kernel.UUID, name, psbTrack, pstTrack string, stack Stack) (Location, error) {
	l := Location{
		psbTrack: psbTrack,
		pstTrack: pstTrack,
		guard:    guard.NewConstructorGuard(),
	}

	if err := errors.Join(
		l.setID(id),
		l.setName(name),
		l.setStack(stack),
	); err != nil {
		return Location{}, err
	}

	return l, nil
}

// Ref returns the typed pool reference of the location.
func (l Location) Ref() kernel.ObjectRef {
	return kernel.RefOf(kernel.KindLocation, l.id)
}

func (l Location) ID() kernel.UUID {
	return l.id
}

func (l Location) Name() string {
	return l.name
}

func (l Location) PsbTrack() string {
	return l.psbTrack
}

func (l Location) PstTrack() string {
	return l.pstTrack
}

func (l Location) Stack() Stack {
	return l.stack
}

// StackSize is the current depth, which is also the position the next pushed bin gets.
func (l Location) StackSize() int {
	return l.stack.Size()
}

// PushBin returns the location with binID on top of its stack.
func (l Location) PushBin(binID kernel.UUID) (Location, error) {
	if err := binID.Validate(); err != nil {
		return Location{}, err
	}
	next, ok := l.stack.Push(binID)
	if !ok {
		return Location{}, fmt.Errorf("%w: %s holds %d of %d bins",
			ErrStackCapacityExceeded, l.name, l.stack.Size(), l.stack.Capacity())
	}
	l.stack = next
	return l, nil
}

// PopBin returns the location without its top bin. An empty stack reports false.
func (l Location) PopBin() (Location, kernel.UUID, bool) {
	next, binID, ok := l.stack.Pop()
	if !ok {
		return l, kernel.UUID{}, false
	}
	l.stack = next
	return l, binID, true
}

func (l Location) IsEqual(other Location) bool {
	return l.id.IsEqual(other.id)
}

func (l Location) Validate() error {
	return l.guard.Validate(ErrLocationIsNotConstructed)
}

func (l Location) String() string {
	return fmt.Sprintf("Location(%s, psb=%s, pst=%s, bins=%d/%d)",
		l.name, l.psbTrack, l.pstTrack, l.stack.Size(), l.stack.Capacity())
}

func (l *Location) setID(id kernel.UUID) error {
	if err := id.Validate(); err != nil {
		return err
	}
	l.id = id
	return nil
}

func (l *Location) setName(name string) error {
	if name == "" {
		return errs.NewValueIsRequiredError("name is required")
	}
	l.name = name
	return nil
}

func (l *Location) setStack(stack Stack) error {
	if stack.capacity < 1 {
		return errs.NewValueIsRequiredError("stack is required")
	}
	l.stack = stack
	return nil
}

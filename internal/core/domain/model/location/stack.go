package location

import (
	"fmt"
	"slices"

	"fleetkernel/internal/core/domain/model/kernel"
	"fleetkernel/internal/pkg/errs"
)

// Stack is a bounded LIFO of bin identities ordered bottom to top.
// A Stack is a value: Push and Pop return the next stack and leave the receiver as is.
type Stack struct {
	capacity int
	bins     []kernel.UUID
}

// NewStack creates an empty stack that holds at most capacity bins.
func NewStack(capacity int) (Stack, error) {
	return RestoreStack(capacity, nil)
}

// RestoreStack rebuilds a stack from its bottom-to-top content.
func RestoreStack(capacity int, bins []kernel.UUID) (Stack, error) {
	if capacity < 1 {
		return Stack{}, errs.NewValueIsInvalidErrorWithCause("capacity", fmt.Errorf("%d is less than 1", capacity))
	}
	if len(bins) > capacity {
		return Stack{}, errs.NewValueIsOutOfRangeError("stack size", len(bins), 0, capacity)
	}
	for _, id := range bins {
		if err := id.Validate(); err != nil {
			return Stack{}, err
		}
	}
	return Stack{capacity: capacity, bins: slices.Clone(bins)}, nil
}

// Push places binID on top. It reports false, and returns the receiver, when full.
func (s Stack) Push(binID kernel.UUID) (Stack, bool) {
	if s.IsFull() {
		return s, false
	}
	next := make([]kernel.UUID, len(s.bins), len(s.bins)+1)
	copy(next, s.bins)
	s.bins = append(next, binID)
	return s, true
}

// Pop removes the most recently pushed bin. An empty stack reports false.
func (s Stack) Pop() (Stack, kernel.UUID, bool) {
	if len(s.bins) == 0 {
		return s, kernel.UUID{}, false
	}
	top := s.bins[len(s.bins)-1]
	s.bins = slices.Clone(s.bins[:len(s.bins)-1])
	return s, top, true
}

func (s Stack) Size() int {
	return len(s.bins)
}

func (s Stack) Capacity() int {
	return s.capacity
}

func (s Stack) IsFull() bool {
	return len(s.bins) >= s.capacity
}

// Bins returns the content bottom to top.
func (s Stack) Bins() []kernel.UUID {
	return slices.Clone(s.bins)
}

package location_test

import (
	"testing"

	"fleetkernel/internal/core/domain/model/kernel"
	"fleetkernel/internal/core/domain/model/location"
	"fleetkernel/internal/pkg/errs"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func createValidLocation(t *testing.T, capacity int) location.Location {
	t.Helper()
	l, err := location.NewLocation(kernel.NewUUID(), "RACK-01", "PSB-1", "PST-1", capacity)
	require.NoError(t, err)
	return l
}

func TestNewLocation(t *testing.T) {
	t.Run("should create location with empty stack", func(t *testing.T) {
		id := kernel.NewUUID()

		l, err := location.NewLocation(id, "RACK-01", "PSB-1", "PST-1", 4)

		require.NoError(t, err)
		require.NoError(t, l.Validate())
		assert.True(t, l.ID().IsEqual(id))
		assert.Equal(t, "RACK-01", l.Name())
		assert.Equal(t, "PSB-1", l.PsbTrack())
		assert.Equal(t, "PST-1", l.PstTrack())
		assert.Equal(t, 0, l.StackSize())
		assert.Equal(t, 4, l.Stack().Capacity())
		assert.Equal(t, kernel.KindLocation, l.Ref().Kind())
	})

	t.Run("should reject invalid parameters together", func(t *testing.T) {
		s, err := location.NewStack(1)
		require.NoError(t, err)

		_, err = location.RestoreLocation(kernel.UUID{}, "", "", "", s)

		require.ErrorIs(t, err, kernel.ErrUUIDIsNotConstructed)
		require.ErrorIs(t, err, errs.ErrValueIsRequired)
	})

	t.Run("should reject zero value stack", func(t *testing.T) {
		_, err := location.RestoreLocation(kernel.NewUUID(), "RACK", "", "", location.Stack{})

		require.ErrorIs(t, err, errs.ErrValueIsRequired)
	})

	t.Run("zero value is not constructed", func(t *testing.T) {
		var l location.Location

		require.ErrorIs(t, l.Validate(), location.ErrLocationIsNotConstructed)
	})
}

func TestLocation_PushBin(t *testing.T) {
	t.Run("should push until full", func(t *testing.T) {
		l := createValidLocation(t, 1)

		next, err := l.PushBin(kernel.NewUUID())

		require.NoError(t, err)
		assert.Equal(t, 1, next.StackSize())
		assert.Equal(t, 0, l.StackSize())
	})

	t.Run("should fail with capacity exceeded", func(t *testing.T) {
		// Given
		l, err := createValidLocation(t, 1).PushBin(kernel.NewUUID())
		require.NoError(t, err)

		// When
		_, err = l.PushBin(kernel.NewUUID())

		// Then
		require.ErrorIs(t, err, location.ErrStackCapacityExceeded)
		assert.Contains(t, err.Error(), "RACK-01")
		assert.Equal(t, 1, l.StackSize())
	})

	t.Run("should reject zero bin identity", func(t *testing.T) {
		_, err := createValidLocation(t, 1).PushBin(kernel.UUID{})

		require.ErrorIs(t, err, kernel.ErrUUIDIsNotConstructed)
	})
}

func TestLocation_PopBin(t *testing.T) {
	t.Run("should pop most recent bin", func(t *testing.T) {
		first, second := kernel.NewUUID(), kernel.NewUUID()
		l := createValidLocation(t, 2)
		l, err := l.PushBin(first)
		require.NoError(t, err)
		l, err = l.PushBin(second)
		require.NoError(t, err)

		next, popped, ok := l.PopBin()

		require.True(t, ok)
		assert.True(t, popped.IsEqual(second))
		assert.Equal(t, 1, next.StackSize())
		assert.Equal(t, 2, l.StackSize())
	})

	t.Run("empty location reports false", func(t *testing.T) {
		l := createValidLocation(t, 2)

		next, _, ok := l.PopBin()

		assert.False(t, ok)
		assert.True(t, next.IsEqual(l))
	})
}

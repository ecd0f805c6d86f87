package services_test

import (
	"testing"

	"fleetkernel/internal/core/domain/model/bin"
	"fleetkernel/internal/core/domain/model/kernel"
	"fleetkernel/internal/core/domain/model/location"
	"fleetkernel/internal/core/domain/model/vehicle"
	"fleetkernel/internal/core/domain/services"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type inventory struct {
	vehicle  vehicle.Vehicle
	location location.Location
	stacked  bin.Bin
	carried  bin.Bin
}

// consistentInventory builds one location stacking one bin and one vehicle carrying another.
func consistentInventory(t *testing.T) inventory {
	t.Helper()
	l, err := location.NewLocation(kernel.NewUUID(), "RACK-01", "PSB", "PST", 2)
	require.NoError(t, err)
	v, err := vehicle.NewVehicle(kernel.NewUUID(), "AGV-01")
	require.NoError(t, err)

	stacked, err := bin.NewBin(kernel.NewUUID(), "BIN-01", nil)
	require.NoError(t, err)
	placement, err := bin.NewPlacement(l.ID(), "PSB", "PST", 0)
	require.NoError(t, err)
	stacked = stacked.AttachToLocation(placement)
	l, err = l.PushBin(stacked.ID())
	require.NoError(t, err)

	carried, err := bin.NewBin(kernel.NewUUID(), "BIN-02", nil)
	require.NoError(t, err)
	carried = carried.AttachToVehicle(v.ID())
	v = v.WithBin(carried.ID())

	return inventory{vehicle: v, location: l, stacked: stacked, carried: carried}
}

func TestInventoryAuditor_Audit(t *testing.T) {
	auditor := services.NewInventoryAuditor()

	t.Run("consistent inventory", func(t *testing.T) {
		inv := consistentInventory(t)

		found := auditor.Audit(
			[]vehicle.Vehicle{inv.vehicle},
			[]location.Location{inv.location},
			[]bin.Bin{inv.stacked, inv.carried},
		)

		assert.Empty(t, found)
	})

	t.Run("bin held twice", func(t *testing.T) {
		// Given the carried bin is also pushed onto the stack
		inv := consistentInventory(t)
		l, err := inv.location.PushBin(inv.carried.ID())
		require.NoError(t, err)

		// When
		found := auditor.Audit(
			[]vehicle.Vehicle{inv.vehicle},
			[]location.Location{l},
			[]bin.Bin{inv.stacked, inv.carried},
		)

		// Then
		require.Len(t, found, 1)
		assert.Equal(t, inv.carried.Ref(), found[0].Ref)
		assert.Contains(t, found[0].Reason, "held by 2 holders")
	})

	t.Run("owner tag disagrees with carrier", func(t *testing.T) {
		inv := consistentInventory(t)
		untagged, err := bin.RestoreBin(inv.carried.ID(), inv.carried.Name(), inv.carried.SKUs(), bin.NoOwner(), false)
		require.NoError(t, err)

		found := auditor.Audit(
			[]vehicle.Vehicle{inv.vehicle},
			[]location.Location{inv.location},
			[]bin.Bin{inv.stacked, untagged},
		)

		require.Len(t, found, 1)
		assert.Contains(t, found[0].Reason, "carried by")
	})

	t.Run("orphaned owner tag", func(t *testing.T) {
		inv := consistentInventory(t)

		found := auditor.Audit(
			[]vehicle.Vehicle{inv.vehicle.WithoutBin()},
			[]location.Location{inv.location},
			[]bin.Bin{inv.stacked, inv.carried},
		)

		require.Len(t, found, 1)
		assert.Equal(t, inv.carried.Ref(), found[0].Ref)
		assert.Contains(t, found[0].Reason, "does not hold it")
	})

	t.Run("wrong stack position", func(t *testing.T) {
		inv := consistentInventory(t)
		placement, err := bin.NewPlacement(inv.location.ID(), "PSB", "PST", 1)
		require.NoError(t, err)

		found := auditor.Audit(
			[]vehicle.Vehicle{inv.vehicle},
			[]location.Location{inv.location},
			[]bin.Bin{inv.stacked.AttachToLocation(placement), inv.carried},
		)

		require.Len(t, found, 1)
		assert.Contains(t, found[0].Reason, "position 0")
	})

	t.Run("unknown bin references", func(t *testing.T) {
		inv := consistentInventory(t)

		found := auditor.Audit(
			[]vehicle.Vehicle{inv.vehicle},
			[]location.Location{inv.location},
			nil,
		)

		require.Len(t, found, 2)
		assert.Equal(t, inv.vehicle.Ref(), found[0].Ref)
		assert.Equal(t, inv.location.Ref(), found[1].Ref)
	})
}

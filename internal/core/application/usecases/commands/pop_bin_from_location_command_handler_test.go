package commands_test

import (
	"context"
	"errors"
	"testing"

	"fleetkernel/internal/core/application/usecases/commands"
	"fleetkernel/internal/core/domain/model/bin"
	"fleetkernel/internal/core/domain/model/kernel"
	"fleetkernel/internal/core/domain/model/location"
	"fleetkernel/internal/core/domain/model/transportorder"
	"fleetkernel/internal/core/domain/model/vehicle"
	"fleetkernel/internal/core/ports"
	"fleetkernel/internal/pkg/errs"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

func popCommand(t *testing.T, v vehicle.Vehicle, locationID kernel.UUID, afterPick bool) commands.PopBinFromLocationCommand {
	t.Helper()
	cmd, err := commands.NewPopBinFromLocationCommand(v.ID(), locationID, afterPick)
	require.NoError(t, err)
	return cmd
}

func TestPopBinFromLocationCommandHandler_Handle_Success(t *testing.T) {
	ctx := t.Context()

	// Given
	p := newPlant(t)
	bottom := p.addBin("BIN-BOTTOM", map[string]int{"A": 1}, false)
	top := p.addBin("BIN-TOP", map[string]int{"A": 10, "B": 5}, true)
	l := p.addLocation("RACK-01", 3, bottom, top)
	v := p.addVehicle("AGV-01")
	p.flusher.On("TriggerFlush").Return().Once()

	// When
	err := p.popHandler().Handle(ctx, popCommand(t, v, l.ID(), false))

	// Then
	require.NoError(t, err)
	p.flusher.AssertExpectations(t)

	carried, ok := p.vehicle(v.ID()).Bin()
	require.True(t, ok)
	assert.True(t, carried.IsEqual(top.ID()))

	stack := p.location(l.ID()).Stack()
	assert.Equal(t, []kernel.UUID{bottom.ID()}, stack.Bins())

	popped := p.bin(top.ID())
	owner, ok := popped.Owner().Vehicle()
	require.True(t, ok)
	assert.True(t, owner.IsEqual(v.ID()))
	_, stacked := popped.Owner().Placement()
	assert.False(t, stacked, "location fields must be cleared")
	assert.True(t, popped.IsLocked(), "lock is only released by a pick")
	assert.Equal(t, 1, p.ownersOf(top.ID()))
}

func TestPopBinFromLocationCommandHandler_Handle_Events(t *testing.T) {
	ctx := t.Context()

	// Given
	p := newPlant(t)
	b := p.addBin("BIN-1", map[string]int{"A": 1}, false)
	l := p.addLocation("RACK-01", 2, b)
	v := p.addVehicle("AGV-01")
	stacked := p.bin(b.ID())
	p.flusher.On("TriggerFlush").Return()

	// When
	require.NoError(t, p.popHandler().Handle(ctx, popCommand(t, v, l.ID(), false)))

	// Then
	events := p.events.all()
	require.Len(t, events, 3)
	wantKinds := []kernel.ObjectKind{kernel.KindLocation, kernel.KindVehicle, kernel.KindBin}
	for i, event := range events {
		assert.Equal(t, ports.ObjectModified, event.Type)
		assert.Equal(t, wantKinds[i], event.Ref().Kind())
		assert.True(t, event.Ref().IsEqual(event.Previous.Ref()))
	}

	assert.Equal(t, 1, events[0].Previous.(location.Location).StackSize())
	assert.Equal(t, 0, events[0].Current.(location.Location).StackSize())
	assert.False(t, events[1].Previous.(vehicle.Vehicle).HasBin())
	assert.True(t, events[1].Current.(vehicle.Vehicle).HasBin())
	assert.Equal(t, bin.OwnerLocation, events[2].Previous.(bin.Bin).Owner().Kind())
	assert.Equal(t, bin.OwnerVehicle, events[2].Current.(bin.Bin).Owner().Kind())
	assert.Equal(t, stacked.Owner(), events[2].Previous.(bin.Bin).Owner())
}

func TestPopBinFromLocationCommandHandler_Handle_AfterPick(t *testing.T) {
	tests := []struct {
		name     string
		contents map[string]int
		required map[string]int
		want     map[string]int
	}{
		{
			name:     "partial pick",
			contents: map[string]int{"A": 10, "B": 5},
			required: map[string]int{"A": 4},
			want:     map[string]int{"A": 6, "B": 5},
		},
		{
			name:     "exact pick empties the bin",
			contents: map[string]int{"A": 4},
			required: map[string]int{"A": 4},
			want:     map[string]int{},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			// Given
			p := newPlant(t)
			b := p.addBin("BIN-1", tt.contents, true)
			l := p.addLocation("RACK-01", 1, b)
			v := p.assignOrder(p.addVehicle("AGV-01"), tt.required)
			p.flusher.On("TriggerFlush").Return()

			// When
			err := p.popHandler().Handle(t.Context(), popCommand(t, v, l.ID(), true))

			// Then
			require.NoError(t, err)
			picked := p.bin(b.ID())
			if diff := cmp.Diff(tt.want, contentsOf(picked)); diff != "" {
				t.Errorf("bin contents mismatch (-want +got):\n%s", diff)
			}
			assert.False(t, picked.IsLocked())

			events := p.events.all()
			require.Len(t, events, 3)
			assert.Equal(t, tt.contents, contentsOf(events[2].Previous.(bin.Bin)))
		})
	}
}

func TestPopBinFromLocationCommandHandler_Handle_NoMutation(t *testing.T) {
	t.Run("empty location is a logged no-op", func(t *testing.T) {
		// Given
		p := newPlant(t)
		l := p.addLocation("RACK-01", 2)
		v := p.addVehicle("AGV-01")
		recorder := &MockTransferRecorder{}
		recorder.On("RecordTransfer", commands.OperationPopBin, commands.OutcomeSourceEmpty).Return().Once()
		handler := commands.NewPopBinFromLocationCommandHandler(transferFactory{p.pool}, p.flusher, recorder, p.logger)

		// When
		err := handler.Handle(t.Context(), popCommand(t, v, l.ID(), false))

		// Then
		require.NoError(t, err)
		assert.Empty(t, p.events.all())
		assert.False(t, p.vehicle(v.ID()).HasBin())
		p.flusher.AssertNotCalled(t, "TriggerFlush")
		recorder.AssertExpectations(t)
	})

	t.Run("unknown vehicle", func(t *testing.T) {
		p := newPlant(t)
		b := p.addBin("BIN-1", nil, false)
		l := p.addLocation("RACK-01", 2, b)
		ghost, err := vehicle.NewVehicle(kernel.NewUUID(), "GHOST")
		require.NoError(t, err)

		err = p.popHandler().Handle(t.Context(), popCommand(t, ghost, l.ID(), false))

		require.ErrorIs(t, err, errs.ErrObjectNotFound)
		assert.Equal(t, 1, p.location(l.ID()).StackSize())
		assert.Empty(t, p.events.all())
	})

	t.Run("unknown location", func(t *testing.T) {
		p := newPlant(t)
		v := p.addVehicle("AGV-01")

		err := p.popHandler().Handle(t.Context(), popCommand(t, v, kernel.NewUUID(), false))

		require.ErrorIs(t, err, errs.ErrObjectNotFound)
		assert.Empty(t, p.events.all())
	})

	t.Run("loaded vehicle keeps its bin", func(t *testing.T) {
		// Given
		p := newPlant(t)
		carried := p.addBin("BIN-CARRIED", nil, false)
		stacked := p.addBin("BIN-STACKED", nil, false)
		l := p.addLocation("RACK-01", 2, stacked)
		v := p.addVehicle("AGV-01")
		home := p.addLocation("HOME", 1, carried)
		p.flusher.On("TriggerFlush").Return()
		require.NoError(t, p.popHandler().Handle(t.Context(), popCommand(t, v, home.ID(), false)))

		// When
		err := p.popHandler().Handle(t.Context(), popCommand(t, v, l.ID(), false))

		// Then
		require.ErrorIs(t, err, vehicle.ErrVehicleAlreadyLoaded)
		assert.Equal(t, 1, p.location(l.ID()).StackSize())
		got, _ := p.vehicle(v.ID()).Bin()
		assert.True(t, got.IsEqual(carried.ID()))
		assert.Len(t, p.events.all(), 3, "only the first pop published events")
	})

	t.Run("pick without transport order", func(t *testing.T) {
		p := newPlant(t)
		b := p.addBin("BIN-1", map[string]int{"A": 1}, true)
		l := p.addLocation("RACK-01", 1, b)
		v := p.addVehicle("AGV-01")

		err := p.popHandler().Handle(t.Context(), popCommand(t, v, l.ID(), true))

		require.ErrorIs(t, err, commands.ErrNoTransportOrder)
		assert.Equal(t, 1, p.location(l.ID()).StackSize())
		assert.True(t, p.bin(b.ID()).IsLocked())
		assert.Empty(t, p.events.all())
	})

	t.Run("pick for order without manifest", func(t *testing.T) {
		ctx := context.Background()
		p := newPlant(t)
		b := p.addBin("BIN-1", map[string]int{"A": 1}, true)
		l := p.addLocation("RACK-01", 1, b)
		v := p.addVehicle("AGV-01")
		order, err := transportorder.NewTransportOrder(kernel.NewUUID(), "TOrder-plain", nil)
		require.NoError(t, err)
		p.importObjects(ports.PoolSnapshot{TransportOrders: []transportorder.TransportOrder{order}})
		orderID := order.ID()
		setOrder, err := commands.NewUpdateVehicleTransportOrderCommand(v.ID(), &orderID)
		require.NoError(t, err)
		p.flusher.On("TriggerFlush").Return()
		require.NoError(t, commands.NewUpdateVehicleTransportOrderCommandHandler(
			vehicleFactory{p.pool}, p.flusher, p.logger).Handle(ctx, setOrder))

		err = p.popHandler().Handle(ctx, popCommand(t, v, l.ID(), true))

		require.ErrorIs(t, err, transportorder.ErrNoOrderBin)
		assert.Equal(t, 1, p.location(l.ID()).StackSize())
	})
}

type MockTransferUoWFactory struct{ mock.Mock }

func (m *MockTransferUoWFactory) Create() commands.TransferUoW {
	args := m.Called()
	return args.Get(0).(commands.TransferUoW)
}

type MockTransferUoW struct {
	mock.Mock
	commands.TransferUoW
}

func (m *MockTransferUoW) Begin(ctx context.Context) error {
	args := m.Called(ctx)
	return args.Error(0)
}

func TestPopBinFromLocationCommandHandler_Handle_BeginFails(t *testing.T) {
	// Arrange
	ctx := t.Context()
	uow := &MockTransferUoW{}
	uow.On("Begin", ctx).Return(errors.New("pool closed"))
	factory := &MockTransferUoWFactory{}
	factory.On("Create").Return(uow)
	flusher := &MockFlusher{}
	handler := commands.NewPopBinFromLocationCommandHandler(factory, flusher, nil, nil)

	// Act
	err := handler.Handle(ctx, popCommand(t, mustVehicle(t), kernel.NewUUID(), false))

	// Assert
	require.EqualError(t, err, "pool closed")
	flusher.AssertNotCalled(t, "TriggerFlush")
}

func TestPopBinFromLocationCommandHandler_Handle_NotConstructedCommand(t *testing.T) {
	handler := commands.NewPopBinFromLocationCommandHandler(&MockTransferUoWFactory{}, &MockFlusher{}, nil, nil)

	err := handler.Handle(t.Context(), commands.PopBinFromLocationCommand{})

	require.ErrorIs(t, err, commands.ErrPopBinFromLocationCommandIsNotConstructed)
}

func mustVehicle(t *testing.T) vehicle.Vehicle {
	t.Helper()
	v, err := vehicle.NewVehicle(kernel.NewUUID(), "AGV-X")
	require.NoError(t, err)
	return v
}

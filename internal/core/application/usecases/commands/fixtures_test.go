package commands_test

import (
	"context"
	"io"
	"log/slog"
	"slices"
	"sync"
	"testing"

	"fleetkernel/internal/adapters/out/objectpool"
	"fleetkernel/internal/core/application/usecases/commands"
	"fleetkernel/internal/core/domain/model/bin"
	"fleetkernel/internal/core/domain/model/kernel"
	"fleetkernel/internal/core/domain/model/location"
	"fleetkernel/internal/core/domain/model/transportorder"
	"fleetkernel/internal/core/domain/model/vehicle"
	"fleetkernel/internal/core/ports"

	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

type MockFlusher struct{ mock.Mock }

func (m *MockFlusher) TriggerFlush() {
	m.Called()
}

type MockTransferRecorder struct{ mock.Mock }

func (m *MockTransferRecorder) RecordTransfer(operation string, outcome commands.TransferOutcome) {
	m.Called(operation, outcome)
}

type eventLog struct {
	mu     sync.Mutex
	events []ports.ObjectEvent
}

func (l *eventLog) OnObjectEvent(_ context.Context, event ports.ObjectEvent) error {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.events = append(l.events, event)
	return nil
}

func (l *eventLog) all() []ports.ObjectEvent {
	l.mu.Lock()
	defer l.mu.Unlock()
	return append([]ports.ObjectEvent(nil), l.events...)
}

type transferFactory struct{ pool *objectpool.Pool }

func (f transferFactory) Create() commands.TransferUoW { return f.pool.Create() }

type vehicleFactory struct{ pool *objectpool.Pool }

func (f vehicleFactory) Create() commands.VehicleUoW { return f.pool.Create() }

// plant is a small in-memory plant: one vehicle, two locations and whatever bins a
// test stacks on them.
type plant struct {
	t       *testing.T
	pool    *objectpool.Pool
	events  *eventLog
	flusher *MockFlusher
	logger  *slog.Logger
}

func newPlant(t *testing.T) *plant {
	t.Helper()
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	p := &plant{
		t:       t,
		pool:    objectpool.NewPool(logger),
		events:  &eventLog{},
		flusher: &MockFlusher{},
		logger:  logger,
	}
	p.pool.Subscribe(p.events)
	return p
}

func (p *plant) importObjects(snapshot ports.PoolSnapshot) {
	p.t.Helper()
	require.NoError(p.t, p.pool.Import(context.Background(), snapshot))
}

func (p *plant) addVehicle(name string) vehicle.Vehicle {
	p.t.Helper()
	v, err := vehicle.NewVehicle(kernel.NewUUID(), name)
	require.NoError(p.t, err)
	p.importObjects(ports.PoolSnapshot{Vehicles: []vehicle.Vehicle{v}})
	return v
}

func (p *plant) addBin(name string, contents map[string]int, locked bool) bin.Bin {
	p.t.Helper()
	skus := make([]bin.SKU, 0, len(contents))
	for id, qty := range contents {
		sku, err := bin.NewSKU(id, qty)
		require.NoError(p.t, err)
		skus = append(skus, sku)
	}
	b, err := bin.RestoreBin(kernel.NewUUID(), name, skus, bin.NoOwner(), locked)
	require.NoError(p.t, err)
	p.importObjects(ports.PoolSnapshot{Bins: []bin.Bin{b}})
	return b
}

// addLocation registers a location with the given bins stacked bottom to top and
// stamps every bin with its placement.
func (p *plant) addLocation(name string, capacity int, stacked ...bin.Bin) location.Location {
	p.t.Helper()
	ctx := context.Background()
	l, err := location.NewLocation(kernel.NewUUID(), name, name+"-PSB", name+"-PST", capacity)
	require.NoError(p.t, err)

	uow := p.pool.Create()
	require.NoError(p.t, uow.Begin(ctx))
	for _, b := range stacked {
		placement, err := bin.NewPlacement(l.ID(), l.PsbTrack(), l.PstTrack(), l.StackSize())
		require.NoError(p.t, err)
		l, err = l.PushBin(b.ID())
		require.NoError(p.t, err)
		require.NoError(p.t, uow.BinRepository().Update(ctx, b.AttachToLocation(placement)))
	}
	require.NoError(p.t, uow.LocationRepository().Add(ctx, l))
	require.NoError(p.t, uow.Commit(ctx))
	return l
}

// assignOrder gives the vehicle a transport order with the given requirement manifest.
func (p *plant) assignOrder(v vehicle.Vehicle, required map[string]int) vehicle.Vehicle {
	p.t.Helper()
	ctx := context.Background()
	manifest, err := transportorder.NewOrderBin(kernel.NewUUID(), "PICK-"+v.Name(), required)
	require.NoError(p.t, err)
	manifestID := manifest.ID()
	order, err := transportorder.NewTransportOrder(kernel.NewUUID(), "TOrder-"+v.Name(), &manifestID)
	require.NoError(p.t, err)
	orderID := order.ID()

	uow := p.pool.Create()
	require.NoError(p.t, uow.Begin(ctx))
	require.NoError(p.t, uow.TransportOrderRepository().AddOrderBin(ctx, manifest))
	require.NoError(p.t, uow.TransportOrderRepository().Add(ctx, order))
	current, err := uow.VehicleRepository().Get(ctx, v.ID())
	require.NoError(p.t, err)
	busy, err := current.WithTransportOrder(&orderID)
	require.NoError(p.t, err)
	require.NoError(p.t, uow.VehicleRepository().Update(ctx, busy))
	require.NoError(p.t, uow.Commit(ctx))
	return busy
}

func (p *plant) vehicle(id kernel.UUID) vehicle.Vehicle {
	p.t.Helper()
	objects, err := p.pool.Resolve(context.Background(), []kernel.ObjectRef{kernel.RefOf(kernel.KindVehicle, id)})
	require.NoError(p.t, err)
	require.NotNil(p.t, objects[0])
	return objects[0].(vehicle.Vehicle)
}

func (p *plant) location(id kernel.UUID) location.Location {
	p.t.Helper()
	objects, err := p.pool.Resolve(context.Background(), []kernel.ObjectRef{kernel.RefOf(kernel.KindLocation, id)})
	require.NoError(p.t, err)
	require.NotNil(p.t, objects[0])
	return objects[0].(location.Location)
}

func (p *plant) bin(id kernel.UUID) bin.Bin {
	p.t.Helper()
	objects, err := p.pool.Resolve(context.Background(), []kernel.ObjectRef{kernel.RefOf(kernel.KindBin, id)})
	require.NoError(p.t, err)
	require.NotNil(p.t, objects[0])
	return objects[0].(bin.Bin)
}

// ownersOf counts how many holders claim binID, looking at vehicles and stacks.
func (p *plant) ownersOf(binID kernel.UUID) int {
	p.t.Helper()
	snapshot, err := p.pool.Export(context.Background())
	require.NoError(p.t, err)

	owners := 0
	for _, v := range snapshot.Vehicles {
		if carried, ok := v.Bin(); ok && carried.IsEqual(binID) {
			owners++
		}
	}
	for _, l := range snapshot.Locations {
		if slices.ContainsFunc(l.Stack().Bins(), binID.IsEqual) {
			owners++
		}
	}
	return owners
}

func (p *plant) popHandler() commands.PopBinFromLocationCommandHandler {
	return commands.NewPopBinFromLocationCommandHandler(transferFactory{p.pool}, p.flusher, nil, p.logger)
}

func (p *plant) pushHandler() commands.PushBinToLocationCommandHandler {
	return commands.NewPushBinToLocationCommandHandler(transferFactory{p.pool}, p.flusher, nil, p.logger)
}

func contentsOf(b bin.Bin) map[string]int {
	contents := map[string]int{}
	for _, sku := range b.SKUs() {
		contents[sku.ID()] = sku.Quantity()
	}
	return contents
}

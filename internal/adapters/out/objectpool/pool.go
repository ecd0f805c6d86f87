// Package objectpool is the in-memory object pool of the fleet kernel.
//
// The pool keeps the current snapshot of every vehicle, location, bin, transport
// order and requirement manifest. Mutations go through a UnitOfWork:
//
//	uow := pool.Create()
//	if err := uow.Begin(ctx); err != nil {
//	    return err
//	}
//	defer func() { _ = uow.Rollback(ctx) }()
//
//	v, err := uow.VehicleRepository().Get(ctx, id)
//	...
//	uow.RecordEvent(ports.NewObjectModifiedEvent(next, v))
//	return uow.Commit(ctx)
//
// Begin takes the pool's global write lock and Commit or Rollback releases it, so
// every mutation runs alone. Commit installs all staged snapshots at once and then
// hands the recorded events to the subscribers in order, still under the lock.
// Readers (Export, Resolve) take the read lock and always see committed state.
package objectpool

import (
	"context"
	"log/slog"
	"sync"

	"fleetkernel/internal/core/domain/model/bin"
	"fleetkernel/internal/core/domain/model/kernel"
	"fleetkernel/internal/core/domain/model/location"
	"fleetkernel/internal/core/domain/model/transportorder"
	"fleetkernel/internal/core/domain/model/vehicle"
	"fleetkernel/internal/core/ports"
)

var (
	_ ports.UnitOfWorkFactory = (*Pool)(nil)
	_ ports.PoolExporter      = (*Pool)(nil)
	_ ports.ObjectResolver    = (*Pool)(nil)
)

// Pool is the global object pool. The zero value is not usable; call NewPool.
type Pool struct {
	mu sync.RWMutex

	vehicles  table[vehicle.Vehicle]
	locations table[location.Location]
	bins      table[bin.Bin]
	orders    table[transportorder.TransportOrder]
	orderBins table[transportorder.OrderBin]

	subscribers []ports.ObjectEventSubscriber
	logger      *slog.Logger
}

// NewPool creates an empty pool.
func NewPool(logger *slog.Logger) *Pool {
	return &Pool{
		vehicles:  make(table[vehicle.Vehicle]),
		locations: make(table[location.Location]),
		bins:      make(table[bin.Bin]),
		orders:    make(table[transportorder.TransportOrder]),
		orderBins: make(table[transportorder.OrderBin]),
		logger:    logger.With("component", "ObjectPool"),
	}
}

// Create returns a new unit of work bound to the pool.
func (p *Pool) Create() ports.UnitOfWork {
	return &UnitOfWork{pool: p}
}

// Subscribe registers a subscriber for committed object events.
// Subscribers are called in registration order.
func (p *Pool) Subscribe(subscriber ports.ObjectEventSubscriber) {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.subscribers = append(p.subscribers, subscriber)
}

// Export returns a consistent copy of the committed state.
func (p *Pool) Export(ctx context.Context) (ports.PoolSnapshot, error) {
	if err := ctx.Err(); err != nil {
		return ports.PoolSnapshot{}, err
	}

	p.mu.RLock()
	defer p.mu.RUnlock()

	return ports.PoolSnapshot{
		Vehicles:        p.vehicles.all(),
		Locations:       p.locations.all(),
		Bins:            p.bins.all(),
		TransportOrders: p.orders.all(),
		OrderBins:       p.orderBins.all(),
	}, nil
}

// Import registers every object of snapshot in one unit of work. No events are
// published; Import is meant for startup restore and seeding.
func (p *Pool) Import(ctx context.Context, snapshot ports.PoolSnapshot) error {
	uow := p.Create()
	if err := uow.Begin(ctx); err != nil {
		return err
	}
	defer func() { _ = uow.Rollback(ctx) }()

	for _, ob := range snapshot.OrderBins {
		if err := uow.TransportOrderRepository().AddOrderBin(ctx, ob); err != nil {
			return err
		}
	}
	for _, o := range snapshot.TransportOrders {
		if err := uow.TransportOrderRepository().Add(ctx, o); err != nil {
			return err
		}
	}
	for _, b := range snapshot.Bins {
		if err := uow.BinRepository().Add(ctx, b); err != nil {
			return err
		}
	}
	for _, l := range snapshot.Locations {
		if err := uow.LocationRepository().Add(ctx, l); err != nil {
			return err
		}
	}
	for _, v := range snapshot.Vehicles {
		if err := uow.VehicleRepository().Add(ctx, v); err != nil {
			return err
		}
	}

	if err := uow.Commit(ctx); err != nil {
		return err
	}

	p.logger.InfoContext(ctx, "pool imported",
		"vehicles", len(snapshot.Vehicles),
		"locations", len(snapshot.Locations),
		"bins", len(snapshot.Bins),
		"transportOrders", len(snapshot.TransportOrders))
	return nil
}

// Resolve looks up refs in order. Unknown references and references of unknown
// kinds yield a nil entry.
func (p *Pool) Resolve(ctx context.Context, refs []kernel.ObjectRef) ([]kernel.Object, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	p.mu.RLock()
	defer p.mu.RUnlock()

	objects := make([]kernel.Object, len(refs))
	for i, ref := range refs {
		objects[i] = p.lookup(ref)
	}
	return objects, nil
}

func (p *Pool) lookup(ref kernel.ObjectRef) kernel.Object {
	var (
		obj kernel.Object
		ok  bool
	)
	switch ref.Kind() {
	case kernel.KindVehicle:
		obj, ok = lookupIn(p.vehicles, ref.ID())
	case kernel.KindLocation:
		obj, ok = lookupIn(p.locations, ref.ID())
	case kernel.KindBin:
		obj, ok = lookupIn(p.bins, ref.ID())
	case kernel.KindTransportOrder:
		obj, ok = lookupIn(p.orders, ref.ID())
	case kernel.KindTransportOrderBin:
		obj, ok = lookupIn(p.orderBins, ref.ID())
	case kernel.UnknownKind:
	}
	if !ok {
		return nil
	}
	return obj
}

func lookupIn[T kernel.Object](t table[T], id kernel.UUID) (kernel.Object, bool) {
	obj, ok := t[id]
	if !ok {
		return nil, false
	}
	return obj, true
}

// publish hands events to every subscriber. Failures are logged and never stop
// the remaining deliveries. Must be called with p.mu held.
func (p *Pool) publish(ctx context.Context, events []ports.ObjectEvent) {
	for _, event := range events {
		for _, subscriber := range p.subscribers {
			p.deliver(ctx, subscriber, event)
		}
	}
}

func (p *Pool) deliver(ctx context.Context, subscriber ports.ObjectEventSubscriber, event ports.ObjectEvent) {
	defer func() {
		if r := recover(); r != nil {
			p.logger.ErrorContext(ctx, "object event subscriber panicked",
				"object", event.Ref().String(), "panic", r)
		}
	}()

	if err := subscriber.OnObjectEvent(ctx, event); err != nil {
		p.logger.ErrorContext(ctx, "object event subscriber failed",
			"object", event.Ref().String(), "error", err)
	}
}

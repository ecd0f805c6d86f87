package objectpool

import (
	"context"

	"fleetkernel/internal/core/domain/model/bin"
	"fleetkernel/internal/core/domain/model/kernel"
	"fleetkernel/internal/core/domain/model/location"
	"fleetkernel/internal/core/domain/model/transportorder"
	"fleetkernel/internal/core/domain/model/vehicle"
)

type vehicleRepository struct {
	uow *UnitOfWork
}

func (r *vehicleRepository) Add(ctx context.Context, v vehicle.Vehicle) error {
	if err := r.uow.check(ctx); err != nil {
		return err
	}
	return r.uow.vehicles.add(v)
}

func (r *vehicleRepository) Update(ctx context.Context, v vehicle.Vehicle) error {
	if err := r.uow.check(ctx); err != nil {
		return err
	}
	return r.uow.vehicles.update(v)
}

func (r *vehicleRepository) Get(ctx context.Context, id kernel.UUID) (vehicle.Vehicle, error) {
	if err := r.uow.check(ctx); err != nil {
		return vehicle.Vehicle{}, err
	}
	return r.uow.vehicles.get(id)
}

func (r *vehicleRepository) GetAll(ctx context.Context) ([]vehicle.Vehicle, error) {
	if err := r.uow.check(ctx); err != nil {
		return nil, err
	}
	return r.uow.vehicles.all(), nil
}

type locationRepository struct {
	uow *UnitOfWork
}

func (r *locationRepository) Add(ctx context.Context, l location.Location) error {
	if err := r.uow.check(ctx); err != nil {
		return err
	}
	return r.uow.locations.add(l)
}

func (r *locationRepository) Update(ctx context.Context, l location.Location) error {
	if err := r.uow.check(ctx); err != nil {
		return err
	}
	return r.uow.locations.update(l)
}

func (r *locationRepository) Get(ctx context.Context, id kernel.UUID) (location.Location, error) {
	if err := r.uow.check(ctx); err != nil {
		return location.Location{}, err
	}
	return r.uow.locations.get(id)
}

func (r *locationRepository) GetAll(ctx context.Context) ([]location.Location, error) {
	if err := r.uow.check(ctx); err != nil {
		return nil, err
	}
	return r.uow.locations.all(), nil
}

type binRepository struct {
	uow *UnitOfWork
}

func (r *binRepository) Add(ctx context.Context, b bin.Bin) error {
	if err := r.uow.check(ctx); err != nil {
		return err
	}
	return r.uow.bins.add(b)
}

func (r *binRepository) Update(ctx context.Context, b bin.Bin) error {
	if err := r.uow.check(ctx); err != nil {
		return err
	}
	return r.uow.bins.update(b)
}

func (r *binRepository) Get(ctx context.Context, id kernel.UUID) (bin.Bin, error) {
	if err := r.uow.check(ctx); err != nil {
		return bin.Bin{}, err
	}
	return r.uow.bins.get(id)
}

func (r *binRepository) GetAll(ctx context.Context) ([]bin.Bin, error) {
	if err := r.uow.check(ctx); err != nil {
		return nil, err
	}
	return r.uow.bins.all(), nil
}

type transportOrderRepository struct {
	uow *UnitOfWork
}

func (r *transportOrderRepository) Add(ctx context.Context, o transportorder.TransportOrder) error {
	if err := r.uow.check(ctx); err != nil {
		return err
	}
	return r.uow.orders.add(o)
}

func (r *transportOrderRepository) Get(ctx context.Context, id kernel.UUID) (transportorder.TransportOrder, error) {
	if err := r.uow.check(ctx); err != nil {
		return transportorder.TransportOrder{}, err
	}
	return r.uow.orders.get(id)
}

func (r *transportOrderRepository) GetAll(ctx context.Context) ([]transportorder.TransportOrder, error) {
	if err := r.uow.check(ctx); err != nil {
		return nil, err
	}
	return r.uow.orders.all(), nil
}

func (r *transportOrderRepository) AddOrderBin(ctx context.Context, ob transportorder.OrderBin) error {
	if err := r.uow.check(ctx); err != nil {
		return err
	}
	return r.uow.orderBins.add(ob)
}

func (r *transportOrderRepository) GetOrderBin(ctx context.Context, id kernel.UUID) (transportorder.OrderBin, error) {
	if err := r.uow.check(ctx); err != nil {
		return transportorder.OrderBin{}, err
	}
	return r.uow.orderBins.get(id)
}

func (r *transportOrderRepository) GetAllOrderBins(ctx context.Context) ([]transportorder.OrderBin, error) {
	if err := r.uow.check(ctx); err != nil {
		return nil, err
	}
	return r.uow.orderBins.all(), nil
}

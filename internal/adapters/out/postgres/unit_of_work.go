// Package postgres keeps a durable copy of the object pool in PostgreSQL.
//
// The pool stays the source of truth while the service runs. The snapshot store
// writes consistent pool exports in one database transaction and reads them back
// on startup. The GORM unit of work below is that transaction boundary; its
// repositories only bulk upsert and bulk read.
package postgres

import (
	"context"

	"fleetkernel/internal/adapters/out/postgres/binrepo"
	"fleetkernel/internal/adapters/out/postgres/locationrepo"
	"fleetkernel/internal/adapters/out/postgres/transportorderrepo"
	"fleetkernel/internal/adapters/out/postgres/vehiclerepo"
	"fleetkernel/internal/core/domain/model/kernel"

	"gorm.io/gorm"
)

// Models lists the DTOs to migrate.
func Models() []any {
	return []any{
		&vehiclerepo.VehicleDTO{},
		&locationrepo.LocationDTO{},
		&binrepo.BinDTO{},
		&transportorderrepo.TransportOrderDTO{},
		&transportorderrepo.OrderBinDTO{},
	}
}

// GormUnitOfWorkFactory creates units of work sharing one connection pool.
type GormUnitOfWorkFactory struct {
	db *gorm.DB
}

func NewGormUnitOfWorkFactory(db *gorm.DB) *GormUnitOfWorkFactory {
	return &GormUnitOfWorkFactory{db: db}
}

func (f *GormUnitOfWorkFactory) Create() *GormUnitOfWork {
	return &GormUnitOfWork{
		db:             f.db,
		trackedObjects: make([]kernel.ObjectRef, 0),
	}
}

// GormUnitOfWork wraps a GORM transaction. Repositories handed out while a
// transaction is active run inside it; otherwise they use the plain connection.
// Every object written through a repository is tracked.
type GormUnitOfWork struct {
	db             *gorm.DB
	tx             *gorm.DB
	trackedObjects []kernel.ObjectRef
}

// Begin starts a transaction. Calling it again while one is active is a no-op.
func (uow *GormUnitOfWork) Begin(ctx context.Context) error {
	if uow.tx != nil {
		return nil
	}

	uow.tx = uow.db.WithContext(ctx).Begin()
	if uow.tx.Error != nil {
		err := uow.tx.Error
		uow.tx = nil
		return err
	}

	return nil
}

// Commit returns gorm.ErrInvalidTransaction when no transaction is active.
func (uow *GormUnitOfWork) Commit(_ context.Context) error {
	if uow.tx == nil {
		return gorm.ErrInvalidTransaction
	}

	err := uow.tx.Commit().Error
	uow.tx = nil
	return err
}

// Rollback discards the transaction together with the tracked objects.
func (uow *GormUnitOfWork) Rollback(_ context.Context) error {
	if uow.tx == nil {
		return gorm.ErrInvalidTransaction
	}

	err := uow.tx.Rollback().Error
	uow.tx = nil
	uow.trackedObjects = uow.trackedObjects[:0]
	return err
}

// TrackObject registers an object written by a repository.
func (uow *GormUnitOfWork) TrackObject(obj kernel.Object) {
	uow.trackedObjects = append(uow.trackedObjects, obj.Ref())
}

// TrackedObjects returns the references of every object written so far.
func (uow *GormUnitOfWork) TrackedObjects() []kernel.ObjectRef {
	return append([]kernel.ObjectRef(nil), uow.trackedObjects...)
}

func (uow *GormUnitOfWork) conn() *gorm.DB {
	if uow.tx != nil {
		return uow.tx
	}
	return uow.db
}

func (uow *GormUnitOfWork) vehicles() *vehiclerepo.GormVehicleRepository {
	return vehiclerepo.NewGormVehicleRepository(uow.conn(), uow)
}

func (uow *GormUnitOfWork) locations() *locationrepo.GormLocationRepository {
	return locationrepo.NewGormLocationRepository(uow.conn(), uow)
}

func (uow *GormUnitOfWork) bins() *binrepo.GormBinRepository {
	return binrepo.NewGormBinRepository(uow.conn(), uow)
}

func (uow *GormUnitOfWork) transportOrders() *transportorderrepo.GormTransportOrderRepository {
	return transportorderrepo.NewGormTransportOrderRepository(uow.conn(), uow)
}

package postgres

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"fleetkernel/internal/core/ports"

	"gorm.io/gorm"
)

var _ ports.SnapshotStore = (*GormSnapshotStore)(nil)

// GormSnapshotStore writes pool snapshots to PostgreSQL and reads them back.
//
// Objects are never removed from the pool, so Save only upserts: rows already in
// the database but missing from the snapshot are left alone.
type GormSnapshotStore struct {
	factory *GormUnitOfWorkFactory
	logger  *slog.Logger
}

func NewGormSnapshotStore(db *gorm.DB, logger *slog.Logger) *GormSnapshotStore {
	return &GormSnapshotStore{
		factory: NewGormUnitOfWorkFactory(db),
		logger:  logger.With("component", "SnapshotStore"),
	}
}

// Save upserts every object of snapshot in a single transaction.
func (s *GormSnapshotStore) Save(ctx context.Context, snapshot ports.PoolSnapshot) error {
	started := time.Now()

	uow := s.factory.Create()
	if err := uow.Begin(ctx); err != nil {
		return fmt.Errorf("begin snapshot transaction: %w", err)
	}
	defer func() {
		_ = uow.Rollback(ctx)
	}()

	if err := uow.vehicles().SaveAll(ctx, snapshot.Vehicles); err != nil {
		return fmt.Errorf("save vehicles: %w", err)
	}
	if err := uow.locations().SaveAll(ctx, snapshot.Locations); err != nil {
		return fmt.Errorf("save locations: %w", err)
	}
	if err := uow.bins().SaveAll(ctx, snapshot.Bins); err != nil {
		return fmt.Errorf("save bins: %w", err)
	}
	if err := uow.transportOrders().SaveAll(ctx, snapshot.TransportOrders, snapshot.OrderBins); err != nil {
		return fmt.Errorf("save transport orders: %w", err)
	}

	if err := uow.Commit(ctx); err != nil {
		return fmt.Errorf("commit snapshot: %w", err)
	}

	s.logger.DebugContext(ctx, "snapshot saved",
		"objects", len(uow.TrackedObjects()),
		"duration", time.Since(started))
	return nil
}

// Load reads the last saved snapshot. An empty database yields an empty snapshot.
func (s *GormSnapshotStore) Load(ctx context.Context) (ports.PoolSnapshot, error) {
	uow := s.factory.Create()

	vehicles, err := uow.vehicles().GetAll(ctx)
	if err != nil {
		return ports.PoolSnapshot{}, fmt.Errorf("load vehicles: %w", err)
	}
	locations, err := uow.locations().GetAll(ctx)
	if err != nil {
		return ports.PoolSnapshot{}, fmt.Errorf("load locations: %w", err)
	}
	bins, err := uow.bins().GetAll(ctx)
	if err != nil {
		return ports.PoolSnapshot{}, fmt.Errorf("load bins: %w", err)
	}
	orders, err := uow.transportOrders().GetAll(ctx)
	if err != nil {
		return ports.PoolSnapshot{}, fmt.Errorf("load transport orders: %w", err)
	}
	orderBins, err := uow.transportOrders().GetAllOrderBins(ctx)
	if err != nil {
		return ports.PoolSnapshot{}, fmt.Errorf("load order bins: %w", err)
	}

	return ports.PoolSnapshot{
		Vehicles:        vehicles,
		Locations:       locations,
		Bins:            bins,
		TransportOrders: orders,
		OrderBins:       orderBins,
	}, nil
}

package transportorderrepo

import (
	"context"

	"fleetkernel/internal/core/domain/model/kernel"
	"fleetkernel/internal/core/domain/model/transportorder"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// GormTransportOrderRepository bulk writes and reads transport orders and their
// requirement manifests with GORM.
type GormTransportOrderRepository struct {
	db      *gorm.DB
	tracker objectTracker
}

type objectTracker interface {
	TrackObject(obj kernel.Object)
}

func NewGormTransportOrderRepository(db *gorm.DB, tracker objectTracker) *GormTransportOrderRepository {
	return &GormTransportOrderRepository{
		db:      db,
		tracker: tracker,
	}
}

func (r *GormTransportOrderRepository) GetAll(ctx context.Context) ([]transportorder.TransportOrder, error) {
	var dtos []TransportOrderDTO
	if err := r.db.WithContext(ctx).Order("name, id").Find(&dtos).Error; err != nil {
		return nil, err
	}

	orders := make([]transportorder.TransportOrder, 0, len(dtos))
	for _, dto := range dtos {
		o, err := orderToDomain(dto)
		if err != nil {
			return nil, err
		}
		orders = append(orders, o)
	}
	return orders, nil
}

func (r *GormTransportOrderRepository) GetAllOrderBins(ctx context.Context) ([]transportorder.OrderBin, error) {
	var dtos []OrderBinDTO
	if err := r.db.WithContext(ctx).Order("name, id").Find(&dtos).Error; err != nil {
		return nil, err
	}

	orderBins := make([]transportorder.OrderBin, 0, len(dtos))
	for _, dto := range dtos {
		ob, err := orderBinToDomain(dto)
		if err != nil {
			return nil, err
		}
		orderBins = append(orderBins, ob)
	}
	return orderBins, nil
}

// SaveAll upserts orders and manifests by primary key.
func (r *GormTransportOrderRepository) SaveAll(
	ctx context.Context,
	orders []transportorder.TransportOrder,
	orderBins []transportorder.OrderBin,
) error {
	upsert := func() *gorm.DB {
		return r.db.WithContext(ctx).Clauses(clause.OnConflict{UpdateAll: true})
	}

	if len(orderBins) > 0 {
		dtos := make([]OrderBinDTO, 0, len(orderBins))
		for _, ob := range orderBins {
			if err := ob.Validate(); err != nil {
				return err
			}
			dtos = append(dtos, orderBinFromDomain(ob))
		}
		if err := upsert().Create(&dtos).Error; err != nil {
			return err
		}
	}

	if len(orders) > 0 {
		dtos := make([]TransportOrderDTO, 0, len(orders))
		for _, o := range orders {
			if err := o.Validate(); err != nil {
				return err
			}
			dtos = append(dtos, orderFromDomain(o))
		}
		if err := upsert().Create(&dtos).Error; err != nil {
			return err
		}
	}

	for _, ob := range orderBins {
		r.tracker.TrackObject(ob)
	}
	for _, o := range orders {
		r.tracker.TrackObject(o)
	}
	return nil
}

package vehiclerepo

import (
	"context"

	"fleetkernel/internal/core/domain/model/kernel"
	"fleetkernel/internal/core/domain/model/vehicle"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// GormVehicleRepository bulk writes and reads vehicle snapshots with GORM.
type GormVehicleRepository struct {
	db      *gorm.DB
	tracker objectTracker
}

type objectTracker interface {
	TrackObject(obj kernel.Object)
}

func NewGormVehicleRepository(db *gorm.DB, tracker objectTracker) *GormVehicleRepository {
	return &GormVehicleRepository{
		db:      db,
		tracker: tracker,
	}
}

// SaveAll upserts vehicles by primary key.
func (r *GormVehicleRepository) SaveAll(ctx context.Context, vehicles []vehicle.Vehicle) error {
	if len(vehicles) == 0 {
		return nil
	}

	dtos := make([]VehicleDTO, 0, len(vehicles))
	for _, v := range vehicles {
		if err := v.Validate(); err != nil {
			return err
		}
		dtos = append(dtos, fromDomain(v))
	}

	if err := r.db.WithContext(ctx).Clauses(clause.OnConflict{UpdateAll: true}).Create(&dtos).Error; err != nil {
		return err
	}

	for _, v := range vehicles {
		r.tracker.TrackObject(v)
	}
	return nil
}

func (r *GormVehicleRepository) GetAll(ctx context.Context) ([]vehicle.Vehicle, error) {
	var dtos []VehicleDTO
	if err := r.db.WithContext(ctx).Order("name, id").Find(&dtos).Error; err != nil {
		return nil, err
	}

	vehicles := make([]vehicle.Vehicle, 0, len(dtos))
	for _, dto := range dtos {
		v, err := toDomain(dto)
		if err != nil {
			return nil, err
		}
		vehicles = append(vehicles, v)
	}
	return vehicles, nil
}

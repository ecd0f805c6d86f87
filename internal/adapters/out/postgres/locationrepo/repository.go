package locationrepo

import (
	"context"

	"fleetkernel/internal/core/domain/model/kernel"
	"fleetkernel/internal/core/domain/model/location"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// GormLocationRepository bulk writes and reads location snapshots with GORM.
type GormLocationRepository struct {
	db      *gorm.DB
	tracker objectTracker
}

type objectTracker interface {
	TrackObject(obj kernel.Object)
}

func NewGormLocationRepository(db *gorm.DB, tracker objectTracker) *GormLocationRepository {
	return &GormLocationRepository{
		db:      db,
		tracker: tracker,
	}
}

// SaveAll upserts locations by primary key.
func (r *GormLocationRepository) SaveAll(ctx context.Context, locations []location.Location) error {
	if len(locations) == 0 {
		return nil
	}

	dtos := make([]LocationDTO, 0, len(locations))
	for _, l := range locations {
		if err := l.Validate(); err != nil {
			return err
		}
		dtos = append(dtos, fromDomain(l))
	}

	if err := r.db.WithContext(ctx).Clauses(clause.OnConflict{UpdateAll: true}).Create(&dtos).Error; err != nil {
		return err
	}

	for _, l := range locations {
		r.tracker.TrackObject(l)
	}
	return nil
}

func (r *GormLocationRepository) GetAll(ctx context.Context) ([]location.Location, error) {
	var dtos []LocationDTO
	if err := r.db.WithContext(ctx).Order("name, id").Find(&dtos).Error; err != nil {
		return nil, err
	}

	locations := make([]location.Location, 0, len(dtos))
	for _, dto := range dtos {
		l, err := toDomain(dto)
		if err != nil {
			return nil, err
		}
		locations = append(locations, l)
	}
	return locations, nil
}

package binrepo

import (
	"context"

	"fleetkernel/internal/core/domain/model/bin"
	"fleetkernel/internal/core/domain/model/kernel"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// GormBinRepository bulk writes and reads bin snapshots with GORM.
type GormBinRepository struct {
	db      *gorm.DB
	tracker objectTracker
}

type objectTracker interface {
	TrackObject(obj kernel.Object)
}

func NewGormBinRepository(db *gorm.DB, tracker objectTracker) *GormBinRepository {
	return &GormBinRepository{
		db:      db,
		tracker: tracker,
	}
}

// SaveAll upserts bins by primary key.
func (r *GormBinRepository) SaveAll(ctx context.Context, bins []bin.Bin) error {
	if len(bins) == 0 {
		return nil
	}

	dtos := make([]BinDTO, 0, len(bins))
	for _, b := range bins {
		if err := b.Validate(); err != nil {
			return err
		}
		dtos = append(dtos, fromDomain(b))
	}

	if err := r.db.WithContext(ctx).Clauses(clause.OnConflict{UpdateAll: true}).Create(&dtos).Error; err != nil {
		return err
	}

	for _, b := range bins {
		r.tracker.TrackObject(b)
	}
	return nil
}

func (r *GormBinRepository) GetAll(ctx context.Context) ([]bin.Bin, error) {
	var dtos []BinDTO
	if err := r.db.WithContext(ctx).Order("name, id").Find(&dtos).Error; err != nil {
		return nil, err
	}

	bins := make([]bin.Bin, 0, len(dtos))
	for _, dto := range dtos {
		b, err := toDomain(dto)
		if err != nil {
			return nil, err
		}
		bins = append(bins, b)
	}
	return bins, nil
}

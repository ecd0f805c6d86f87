// Package locationrepo persists locations together with their bin stacks.
// The stack is stored bottom to top in a text[] column.
package locationrepo

import (
	"fleetkernel/internal/core/domain/model/kernel"
	"fleetkernel/internal/core/domain/model/location"

	"github.com/google/uuid"
	"github.com/lib/pq"
)

// LocationDTO is the row of the locations table.
type LocationDTO struct {
	ID       uuid.UUID      `gorm:"type:uuid;primaryKey"`
	Name     string         `gorm:"type:varchar(255);not null"`
	PsbTrack string         `gorm:"type:varchar(255)"`
	PstTrack string         `gorm:"type:varchar(255)"`
	Capacity int            `gorm:"type:int;not null"`
	Bins     pq.StringArray `gorm:"type:text[]"`
}

func (LocationDTO) TableName() string {
	return "locations"
}

func fromDomain(l location.Location) LocationDTO {
	stack := l.Stack()
	bins := make(pq.StringArray, 0, stack.Size())
	for _, id := range stack.Bins() {
		bins = append(bins, id.String())
	}

	return LocationDTO{
		ID:       l.ID().Bytes(),
		Name:     l.Name(),
		PsbTrack: l.PsbTrack(),
		PstTrack: l.PstTrack(),
		Capacity: stack.Capacity(),
		Bins:     bins,
	}
}

func toDomain(dto LocationDTO) (location.Location, error) {
	id, err := kernel.UUIDFromBytes(dto.ID[:])
	if err != nil {
		return location.Location{}, err
	}

	bins := make([]kernel.UUID, 0, len(dto.Bins))
	for _, raw := range dto.Bins {
		binID, parseErr := kernel.UUIDFromString(raw)
		if parseErr != nil {
			return location.Location{}, parseErr
		}
		bins = append(bins, binID)
	}

	stack, err := location.RestoreStack(dto.Capacity, bins)
	if err != nil {
		return location.Location{}, err
	}

	return location.RestoreLocation(id, dto.Name, dto.PsbTrack, dto.PstTrack, stack)
}

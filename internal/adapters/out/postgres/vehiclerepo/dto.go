// Package vehiclerepo persists vehicle snapshots.
package vehiclerepo

import (
	"fleetkernel/internal/core/domain/model/kernel"
	"fleetkernel/internal/core/domain/model/vehicle"

	"github.com/google/uuid"
)

// VehicleDTO is the row of the vehicles table.
type VehicleDTO struct {
	ID               uuid.UUID  `gorm:"type:uuid;primaryKey"`
	Name             string     `gorm:"type:varchar(255);not null"`
	BinID            *uuid.UUID `gorm:"type:uuid;index"`
	TransportOrderID *uuid.UUID `gorm:"type:uuid;index"`
	EnergyLevel      int        `gorm:"type:smallint;not null"`
	State            string     `gorm:"type:varchar(32);not null"`
	IntegrationLevel string     `gorm:"type:varchar(32);not null"`
}

func (VehicleDTO) TableName() string {
	return "vehicles"
}

func fromDomain(v vehicle.Vehicle) VehicleDTO {
	dto := VehicleDTO{
		ID:               v.ID().Bytes(),
		Name:             v.Name(),
		EnergyLevel:      v.EnergyLevel(),
		State:            v.State().String(),
		IntegrationLevel: v.IntegrationLevel().String(),
	}
	if binID, ok := v.Bin(); ok {
		raw := binID.Bytes()
		dto.BinID = &raw
	}
	if orderID, ok := v.TransportOrder(); ok {
		raw := orderID.Bytes()
		dto.TransportOrderID = &raw
	}
	return dto
}

func toDomain(dto VehicleDTO) (vehicle.Vehicle, error) {
	id, err := kernel.UUIDFromBytes(dto.ID[:])
	if err != nil {
		return vehicle.Vehicle{}, err
	}

	binID, err := optionalID(dto.BinID)
	if err != nil {
		return vehicle.Vehicle{}, err
	}
	orderID, err := optionalID(dto.TransportOrderID)
	if err != nil {
		return vehicle.Vehicle{}, err
	}

	state, err := vehicle.ParseState(dto.State)
	if err != nil {
		return vehicle.Vehicle{}, err
	}
	level, err := vehicle.ParseIntegrationLevel(dto.IntegrationLevel)
	if err != nil {
		return vehicle.Vehicle{}, err
	}

	return vehicle.RestoreVehicle(id, dto.Name, binID, orderID, dto.EnergyLevel, state, level)
}

func optionalID(raw *uuid.UUID) (*kernel.UUID, error) {
	if raw == nil {
		return nil, nil
	}
	id, err := kernel.UUIDFromBytes((*raw)[:])
	if err != nil {
		return nil, err
	}
	return &id, nil
}

// Package binrepo persists bins with their SKU sets and owner tags.
package binrepo

import (
	"fmt"

	"fleetkernel/internal/core/domain/model/bin"
	"fleetkernel/internal/core/domain/model/kernel"
	"fleetkernel/internal/pkg/errs"

	"github.com/google/uuid"
)

// BinDTO is the row of the bins table. Exactly one of OwnerVehicleID and
// OwnerLocationID is set, matching OwnerKind.
type BinDTO struct {
	ID              uuid.UUID     `gorm:"type:uuid;primaryKey"`
	Name            string        `gorm:"type:varchar(255);not null"`
	SKUs            []SKUDTO      `gorm:"type:jsonb;serializer:json"`
	OwnerKind       bin.OwnerKind `gorm:"type:smallint;not null"`
	OwnerVehicleID  *uuid.UUID    `gorm:"type:uuid;index"`
	OwnerLocationID *uuid.UUID    `gorm:"type:uuid;index"`
	PsbTrack        string        `gorm:"type:varchar(255)"`
	PstTrack        string        `gorm:"type:varchar(255)"`
	Position        int           `gorm:"type:int"`
	Locked          bool          `gorm:"not null"`
}

// SKUDTO is one entry of the SKU set column.
type SKUDTO struct {
	ID       string `json:"id"`
	Quantity int    `json:"quantity"`
}

func (BinDTO) TableName() string {
	return "bins"
}

func fromDomain(b bin.Bin) BinDTO {
	skus := make([]SKUDTO, 0, len(b.SKUs()))
	for _, sku := range b.SKUs() {
		skus = append(skus, SKUDTO{ID: sku.ID(), Quantity: sku.Quantity()})
	}

	dto := BinDTO{
		ID:        b.ID().Bytes(),
		Name:      b.Name(),
		SKUs:      skus,
		OwnerKind: b.Owner().Kind(),
		Locked:    b.IsLocked(),
	}

	if vehicleID, ok := b.Owner().Vehicle(); ok {
		raw := vehicleID.Bytes()
		dto.OwnerVehicleID = &raw
	}
	if placement, ok := b.Owner().Placement(); ok {
		raw := placement.LocationID().Bytes()
		dto.OwnerLocationID = &raw
		dto.PsbTrack = placement.PsbTrack()
		dto.PstTrack = placement.PstTrack()
		dto.Position = placement.Position()
	}
	return dto
}

func toDomain(dto BinDTO) (bin.Bin, error) {
	id, err := kernel.UUIDFromBytes(dto.ID[:])
	if err != nil {
		return bin.Bin{}, err
	}

	skus := make([]bin.SKU, 0, len(dto.SKUs))
	for _, raw := range dto.SKUs {
		sku, skuErr := bin.NewSKU(raw.ID, raw.Quantity)
		if skuErr != nil {
			return bin.Bin{}, skuErr
		}
		skus = append(skus, sku)
	}

	owner, err := ownerToDomain(dto)
	if err != nil {
		return bin.Bin{}, err
	}

	return bin.RestoreBin(id, dto.Name, skus, owner, dto.Locked)
}

func ownerToDomain(dto BinDTO) (bin.Owner, error) {
	switch dto.OwnerKind {
	case bin.OwnerNone:
		return bin.NoOwner(), nil
	case bin.OwnerVehicle:
		if dto.OwnerVehicleID == nil {
			return bin.Owner{}, errs.NewValueIsRequiredError("owner_vehicle_id")
		}
		vehicleID, err := kernel.UUIDFromBytes(dto.OwnerVehicleID[:])
		if err != nil {
			return bin.Owner{}, err
		}
		return bin.VehicleOwner(vehicleID), nil
	case bin.OwnerLocation:
		if dto.OwnerLocationID == nil {
			return bin.Owner{}, errs.NewValueIsRequiredError("owner_location_id")
		}
		locationID, err := kernel.UUIDFromBytes(dto.OwnerLocationID[:])
		if err != nil {
			return bin.Owner{}, err
		}
		placement, err := bin.NewPlacement(locationID, dto.PsbTrack, dto.PstTrack, dto.Position)
		if err != nil {
			return bin.Owner{}, err
		}
		return bin.LocationOwner(placement), nil
	default:
		return bin.Owner{}, errs.NewValueIsInvalidErrorWithCause("owner_kind",
			fmt.Errorf("%d is not a valid owner kind", dto.OwnerKind))
	}
}

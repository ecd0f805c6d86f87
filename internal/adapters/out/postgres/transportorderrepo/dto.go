// Package transportorderrepo persists transport orders and their requirement manifests.
package transportorderrepo

import (
	"fleetkernel/internal/core/domain/model/kernel"
	"fleetkernel/internal/core/domain/model/transportorder"

	"github.com/google/uuid"
)

// TransportOrderDTO is the row of the transport_orders table.
type TransportOrderDTO struct {
	ID         uuid.UUID  `gorm:"type:uuid;primaryKey"`
	Name       string     `gorm:"type:varchar(255);not null"`
	OrderBinID *uuid.UUID `gorm:"type:uuid;index"`
}

func (TransportOrderDTO) TableName() string {
	return "transport_orders"
}

// OrderBinDTO is the row of the transport_order_bins table.
type OrderBinDTO struct {
	ID           uuid.UUID      `gorm:"type:uuid;primaryKey"`
	Name         string         `gorm:"type:varchar(255);not null"`
	Requirements map[string]int `gorm:"type:jsonb;serializer:json"`
}

func (OrderBinDTO) TableName() string {
	return "transport_order_bins"
}

func orderFromDomain(o transportorder.TransportOrder) TransportOrderDTO {
	dto := TransportOrderDTO{
		ID:   o.ID().Bytes(),
		Name: o.Name(),
	}
	if orderBinID, ok := o.OrderBin(); ok {
		raw := orderBinID.Bytes()
		dto.OrderBinID = &raw
	}
	return dto
}

func orderToDomain(dto TransportOrderDTO) (transportorder.TransportOrder, error) {
	id, err := kernel.UUIDFromBytes(dto.ID[:])
	if err != nil {
		return transportorder.TransportOrder{}, err
	}

	var orderBinID *kernel.UUID
	if dto.OrderBinID != nil {
		obID, obErr := kernel.UUIDFromBytes(dto.OrderBinID[:])
		if obErr != nil {
			return transportorder.TransportOrder{}, obErr
		}
		orderBinID = &obID
	}

	return transportorder.NewTransportOrder(id, dto.Name, orderBinID)
}

func orderBinFromDomain(ob transportorder.OrderBin) OrderBinDTO {
	return OrderBinDTO{
		ID:           ob.ID().Bytes(),
		Name:         ob.Name(),
		Requirements: ob.Requirements(),
	}
}

func orderBinToDomain(dto OrderBinDTO) (transportorder.OrderBin, error) {
	id, err := kernel.UUIDFromBytes(dto.ID[:])
	if err != nil {
		return transportorder.OrderBin{}, err
	}
	return transportorder.NewOrderBin(id, dto.Name, dto.Requirements)
}

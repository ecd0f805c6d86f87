// Package views renders pool objects as JSON documents for the HTTP API and the
// event relay.
package views

import (
	"fleetkernel/internal/core/domain/model/bin"
	"fleetkernel/internal/core/domain/model/kernel"
	"fleetkernel/internal/core/domain/model/location"
	"fleetkernel/internal/core/domain/model/transportorder"
	"fleetkernel/internal/core/domain/model/vehicle"
)

type VehicleView struct {
	Kind             string  `json:"kind"`
	ID               string  `json:"id"`
	Name             string  `json:"name"`
	BinID            *string `json:"binId"`
	TransportOrderID *string `json:"transportOrderId"`
	EnergyLevel      int     `json:"energyLevel"`
	State            string  `json:"state"`
	IntegrationLevel string  `json:"integrationLevel"`
}

type LocationView struct {
	Kind     string   `json:"kind"`
	ID       string   `json:"id"`
	Name     string   `json:"name"`
	PsbTrack string   `json:"psbTrack"`
	PstTrack string   `json:"pstTrack"`
	Capacity int      `json:"capacity"`
	Bins     []string `json:"bins"`
}

type SKUView struct {
	ID       string `json:"skuId"`
	Quantity int    `json:"quantity"`
}

// OwnerView names the current holder. Placement fields are only set for stacked bins.
type OwnerView struct {
	Kind       string  `json:"kind"`
	VehicleID  *string `json:"vehicleId,omitempty"`
	LocationID *string `json:"locationId,omitempty"`
	PsbTrack   *string `json:"psbTrack,omitempty"`
	PstTrack   *string `json:"pstTrack,omitempty"`
	Position   *int    `json:"position,omitempty"`
}

type BinView struct {
	Kind   string    `json:"kind"`
	ID     string    `json:"id"`
	Name   string    `json:"name"`
	SKUs   []SKUView `json:"skus"`
	Owner  OwnerView `json:"owner"`
	Locked bool      `json:"locked"`
}

type TransportOrderView struct {
	Kind       string  `json:"kind"`
	ID         string  `json:"id"`
	Name       string  `json:"name"`
	OrderBinID *string `json:"orderBinId"`
}

type OrderBinView struct {
	Kind         string         `json:"kind"`
	ID           string         `json:"id"`
	Name         string         `json:"name"`
	Requirements map[string]int `json:"requirements"`
}

// FromObject returns the view of obj, or nil for a nil object.
func FromObject(obj kernel.Object) any {
	switch o := obj.(type) {
	case vehicle.Vehicle:
		return FromVehicle(o)
	case location.Location:
		return FromLocation(o)
	case bin.Bin:
		return FromBin(o)
	case transportorder.TransportOrder:
		return FromTransportOrder(o)
	case transportorder.OrderBin:
		return FromOrderBin(o)
	default:
		return nil
	}
}

func FromVehicle(v vehicle.Vehicle) VehicleView {
	view := VehicleView{
		Kind:             v.Ref().Kind().String(),
		ID:               v.ID().String(),
		Name:             v.Name(),
		EnergyLevel:      v.EnergyLevel(),
		State:            v.State().String(),
		IntegrationLevel: v.IntegrationLevel().String(),
	}
	if binID, ok := v.Bin(); ok {
		view.BinID = idOf(binID)
	}
	if orderID, ok := v.TransportOrder(); ok {
		view.TransportOrderID = idOf(orderID)
	}
	return view
}

func FromLocation(l location.Location) LocationView {
	bins := make([]string, 0, l.StackSize())
	for _, id := range l.Stack().Bins() {
		bins = append(bins, id.String())
	}
	return LocationView{
		Kind:     l.Ref().Kind().String(),
		ID:       l.ID().String(),
		Name:     l.Name(),
		PsbTrack: l.PsbTrack(),
		PstTrack: l.PstTrack(),
		Capacity: l.Stack().Capacity(),
		Bins:     bins,
	}
}

func FromBin(b bin.Bin) BinView {
	skus := make([]SKUView, 0, len(b.SKUs()))
	for _, sku := range b.SKUs() {
		skus = append(skus, SKUView{ID: sku.ID(), Quantity: sku.Quantity()})
	}

	owner := OwnerView{Kind: b.Owner().Kind().String()}
	if vehicleID, ok := b.Owner().Vehicle(); ok {
		owner.VehicleID = idOf(vehicleID)
	}
	if p, ok := b.Owner().Placement(); ok {
		psb, pst, position := p.PsbTrack(), p.PstTrack(), p.Position()
		owner.LocationID = idOf(p.LocationID())
		owner.PsbTrack = &psb
		owner.PstTrack = &pst
		owner.Position = &position
	}

	return BinView{
		Kind:   b.Ref().Kind().String(),
		ID:     b.ID().String(),
		Name:   b.Name(),
		SKUs:   skus,
		Owner:  owner,
		Locked: b.IsLocked(),
	}
}

func FromTransportOrder(o transportorder.TransportOrder) TransportOrderView {
	view := TransportOrderView{
		Kind: o.Ref().Kind().String(),
		ID:   o.ID().String(),
		Name: o.Name(),
	}
	if orderBinID, ok := o.OrderBin(); ok {
		view.OrderBinID = idOf(orderBinID)
	}
	return view
}

func FromOrderBin(ob transportorder.OrderBin) OrderBinView {
	return OrderBinView{
		Kind:         ob.Ref().Kind().String(),
		ID:           ob.ID().String(),
		Name:         ob.Name(),
		Requirements: ob.Requirements(),
	}
}

func idOf(id kernel.UUID) *string {
	s := id.String()
	return &s
}

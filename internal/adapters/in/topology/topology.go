// Package topology reads the plant layout used to seed an empty object pool.
//
// The file names every object; references between objects use those names:
//
//	locations:
//	  - name: RACK-01
//	    psbTrack: PSB-1
//	    pstTrack: PST-1
//	    capacity: 4
//	    bins: [BIN-01, BIN-02]   # bottom to top
//	bins:
//	  - name: BIN-01
//	    skus: {A: 10, B: 5}
//	vehicles:
//	  - name: AGV-01
//	    energyLevel: 80
//	    integrationLevel: TO_BE_UTILIZED
//	    bin: BIN-03
//	    transportOrder: TOrder-01
//	transportOrders:
//	  - name: TOrder-01
//	    requirements: {A: 4}
//
// Identities may be pinned with an id field; otherwise they are generated.
package topology

import (
	"errors"
	"fmt"
	"io"
	"os"

	"fleetkernel/internal/core/domain/model/bin"
	"fleetkernel/internal/core/domain/model/kernel"
	"fleetkernel/internal/core/domain/model/location"
	"fleetkernel/internal/core/domain/model/transportorder"
	"fleetkernel/internal/core/domain/model/vehicle"
	"fleetkernel/internal/core/ports"

	"gopkg.in/yaml.v3"
)

var (
	// ErrUnknownReference is returned when a name does not match any declared object.
	ErrUnknownReference = errors.New("unknown reference")
	// ErrDuplicateName is returned when two objects of one kind share a name.
	ErrDuplicateName = errors.New("duplicate name")
	// ErrBinHeldTwice is returned when a bin is placed on more than one holder.
	ErrBinHeldTwice = errors.New("bin is held more than once")
)

// File is the document layout.
type File struct {
	Locations       []LocationSpec       `yaml:"locations"`
	Bins            []BinSpec            `yaml:"bins"`
	Vehicles        []VehicleSpec        `yaml:"vehicles"`
	TransportOrders []TransportOrderSpec `yaml:"transportOrders"`
}

type LocationSpec struct {
	ID       string   `yaml:"id"`
	Name     string   `yaml:"name"`
	PsbTrack string   `yaml:"psbTrack"`
	PstTrack string   `yaml:"pstTrack"`
	Capacity int      `yaml:"capacity"`
	Bins     []string `yaml:"bins"`
}

type BinSpec struct {
	ID     string         `yaml:"id"`
	Name   string         `yaml:"name"`
	SKUs   map[string]int `yaml:"skus"`
	Locked bool           `yaml:"locked"`
}

type VehicleSpec struct {
	ID               string `yaml:"id"`
	Name             string `yaml:"name"`
	EnergyLevel      *int   `yaml:"energyLevel"`
	State            string `yaml:"state"`
	IntegrationLevel string `yaml:"integrationLevel"`
	Bin              string `yaml:"bin"`
	TransportOrder   string `yaml:"transportOrder"`
}

// TransportOrderSpec declares an order; a non-empty requirements map also
// declares its manifest, named after the order with a "-bin" suffix.
type TransportOrderSpec struct {
	ID           string         `yaml:"id"`
	Name         string         `yaml:"name"`
	Requirements map[string]int `yaml:"requirements"`
}

// LoadFile reads and resolves the topology at path.
func LoadFile(path string) (ports.PoolSnapshot, error) {
	f, err := os.Open(path)
	if err != nil {
		return ports.PoolSnapshot{}, err
	}
	defer f.Close()

	return Load(f)
}

// Load decodes a topology document and turns it into a pool snapshot in which
// every owner tag agrees with its holder.
func Load(r io.Reader) (ports.PoolSnapshot, error) {
	var file File
	decoder := yaml.NewDecoder(r)
	decoder.KnownFields(true)
	if err := decoder.Decode(&file); err != nil {
		if errors.Is(err, io.EOF) {
			return ports.PoolSnapshot{}, nil
		}
		return ports.PoolSnapshot{}, fmt.Errorf("failed to decode topology: %w", err)
	}

	return newResolver().resolve(file)
}

type resolver struct {
	binIDs   map[string]kernel.UUID
	binSpecs map[string]BinSpec
	owners   map[string]bin.Owner
	orderIDs map[string]kernel.UUID
}

func newResolver() *resolver {
	return &resolver{
		binIDs:   map[string]kernel.UUID{},
		binSpecs: map[string]BinSpec{},
		owners:   map[string]bin.Owner{},
		orderIDs: map[string]kernel.UUID{},
	}
}

func (r *resolver) resolve(file File) (ports.PoolSnapshot, error) {
	var snapshot ports.PoolSnapshot

	for _, spec := range file.Bins {
		if _, dup := r.binSpecs[spec.Name]; dup {
			return ports.PoolSnapshot{}, fmt.Errorf("%w: bin %q", ErrDuplicateName, spec.Name)
		}
		id, err := identity(spec.ID)
		if err != nil {
			return ports.PoolSnapshot{}, fmt.Errorf("bin %q: %w", spec.Name, err)
		}
		r.binIDs[spec.Name] = id
		r.binSpecs[spec.Name] = spec
	}

	for _, spec := range file.TransportOrders {
		order, orderBin, err := r.transportOrder(spec)
		if err != nil {
			return ports.PoolSnapshot{}, fmt.Errorf("transport order %q: %w", spec.Name, err)
		}
		snapshot.TransportOrders = append(snapshot.TransportOrders, order)
		if orderBin != nil {
			snapshot.OrderBins = append(snapshot.OrderBins, *orderBin)
		}
	}

	for _, spec := range file.Locations {
		l, err := r.location(spec)
		if err != nil {
			return ports.PoolSnapshot{}, fmt.Errorf("location %q: %w", spec.Name, err)
		}
		snapshot.Locations = append(snapshot.Locations, l)
	}

	for _, spec := range file.Vehicles {
		v, err := r.vehicle(spec)
		if err != nil {
			return ports.PoolSnapshot{}, fmt.Errorf("vehicle %q: %w", spec.Name, err)
		}
		snapshot.Vehicles = append(snapshot.Vehicles, v)
	}

	for _, spec := range file.Bins {
		b, err := r.bin(spec)
		if err != nil {
			return ports.PoolSnapshot{}, fmt.Errorf("bin %q: %w", spec.Name, err)
		}
		snapshot.Bins = append(snapshot.Bins, b)
	}

	return snapshot, nil
}

func (r *resolver) transportOrder(spec TransportOrderSpec) (transportorder.TransportOrder, *transportorder.OrderBin, error) {
	if _, dup := r.orderIDs[spec.Name]; dup {
		return transportorder.TransportOrder{}, nil, ErrDuplicateName
	}
	id, err := identity(spec.ID)
	if err != nil {
		return transportorder.TransportOrder{}, nil, err
	}
	r.orderIDs[spec.Name] = id

	if len(spec.Requirements) == 0 {
		order, orderErr := transportorder.NewTransportOrder(id, spec.Name, nil)
		return order, nil, orderErr
	}

	orderBin, err := transportorder.NewOrderBin(kernel.NewUUID(), spec.Name+"-bin", spec.Requirements)
	if err != nil {
		return transportorder.TransportOrder{}, nil, err
	}
	orderBinID := orderBin.ID()
	order, err := transportorder.NewTransportOrder(id, spec.Name, &orderBinID)
	if err != nil {
		return transportorder.TransportOrder{}, nil, err
	}
	return order, &orderBin, nil
}

func (r *resolver) location(spec LocationSpec) (location.Location, error) {
	id, err := identity(spec.ID)
	if err != nil {
		return location.Location{}, err
	}
	l, err := location.NewLocation(id, spec.Name, spec.PsbTrack, spec.PstTrack, spec.Capacity)
	if err != nil {
		return location.Location{}, err
	}

	for position, name := range spec.Bins {
		binID, err := r.claim(name)
		if err != nil {
			return location.Location{}, err
		}
		placement, err := bin.NewPlacement(id, spec.PsbTrack, spec.PstTrack, position)
		if err != nil {
			return location.Location{}, err
		}
		if l, err = l.PushBin(binID); err != nil {
			return location.Location{}, err
		}
		r.owners[name] = bin.LocationOwner(placement)
	}
	return l, nil
}

func (r *resolver) vehicle(spec VehicleSpec) (vehicle.Vehicle, error) {
	id, err := identity(spec.ID)
	if err != nil {
		return vehicle.Vehicle{}, err
	}

	energy := vehicle.MaxEnergyLevel
	if spec.EnergyLevel != nil {
		energy = *spec.EnergyLevel
	}
	state := vehicle.StateUnknown
	if spec.State != "" {
		if state, err = vehicle.ParseState(spec.State); err != nil {
			return vehicle.Vehicle{}, err
		}
	}
	level := vehicle.ToBeRespected
	if spec.IntegrationLevel != "" {
		if level, err = vehicle.ParseIntegrationLevel(spec.IntegrationLevel); err != nil {
			return vehicle.Vehicle{}, err
		}
	}

	var binID *kernel.UUID
	if spec.Bin != "" {
		claimed, claimErr := r.claim(spec.Bin)
		if claimErr != nil {
			return vehicle.Vehicle{}, claimErr
		}
		binID = &claimed
		r.owners[spec.Bin] = bin.VehicleOwner(id)
	}

	var orderID *kernel.UUID
	if spec.TransportOrder != "" {
		known, ok := r.orderIDs[spec.TransportOrder]
		if !ok {
			return vehicle.Vehicle{}, fmt.Errorf("%w: transport order %q", ErrUnknownReference, spec.TransportOrder)
		}
		orderID = &known
	}

	return vehicle.RestoreVehicle(id, spec.Name, binID, orderID, energy, state, level)
}

func (r *resolver) bin(spec BinSpec) (bin.Bin, error) {
	skus := make([]bin.SKU, 0, len(spec.SKUs))
	for skuID, qty := range spec.SKUs {
		sku, err := bin.NewSKU(skuID, qty)
		if err != nil {
			return bin.Bin{}, err
		}
		skus = append(skus, sku)
	}

	owner, held := r.owners[spec.Name]
	if !held {
		owner = bin.NoOwner()
	}
	return bin.RestoreBin(r.binIDs[spec.Name], spec.Name, skus, owner, spec.Locked)
}

// claim resolves a bin name and marks it as held.
func (r *resolver) claim(name string) (kernel.UUID, error) {
	id, ok := r.binIDs[name]
	if !ok {
		return kernel.UUID{}, fmt.Errorf("%w: bin %q", ErrUnknownReference, name)
	}
	if _, held := r.owners[name]; held {
		return kernel.UUID{}, fmt.Errorf("%w: %q", ErrBinHeldTwice, name)
	}
	return id, nil
}

func identity(raw string) (kernel.UUID, error) {
	if raw == "" {
		return kernel.NewUUID(), nil
	}
	return kernel.UUIDFromString(raw)
}

package commands

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"fleetkernel/internal/core/domain/model/transportorder"
	"fleetkernel/internal/core/domain/model/vehicle"
	"fleetkernel/internal/core/domain/services"
	"fleetkernel/internal/core/ports"
)

// ErrNoTransportOrder is returned when a pick is requested for a vehicle without a
// current transport order.
var ErrNoTransportOrder = errors.New("vehicle has no transport order")

// PopBinFromLocationCommandHandler moves the top bin of a location onto a vehicle.
//
// The handler reads the vehicle and the location, pops the top bin, optionally
// reconciles its SKUs against the vehicle's transport order, tags the bin as carried
// by the vehicle and replaces bin, vehicle and location in one unit of work. On
// commit the pool publishes OBJECT_MODIFIED for the location, the vehicle and the
// bin, in that order, and a persistence flush is triggered.
//
// Example:
//
//	handler := NewPopBinFromLocationCommandHandler(uowFactory, flusher, recorder, logger)
//	err := handler.Handle(ctx, cmd)
//	switch {
//	case errors.Is(err, errs.ErrObjectNotFound):
//	    // unknown vehicle or location, nothing changed
//	case errors.Is(err, vehicle.ErrVehicleAlreadyLoaded):
//	    // the vehicle must drop its bin first
//	}
type PopBinFromLocationCommandHandler struct {
	uowFactory TransferUoWFactory
	flusher    ports.PersistenceFlusher
	accountant services.PickAccountant
	recorder   TransferRecorder
	logger     *slog.Logger
}

// NewPopBinFromLocationCommandHandler creates the handler. recorder and logger may be nil.
func NewPopBinFromLocationCommandHandler(
	uowFactory TransferUoWFactory,
	flusher ports.PersistenceFlusher,
	recorder TransferRecorder,
	logger *slog.Logger,
) PopBinFromLocationCommandHandler {
	return PopBinFromLocationCommandHandler{
		uowFactory: uowFactory,
		flusher:    flusher,
		accountant: services.NewPickAccountant(),
		recorder:   orNoopRecorder(recorder),
		logger:     orDiscardLogger(logger).With("component", "PopBinFromLocation"),
	}
}

// Handle processes the command. An empty location is not an error: it is logged
// and nothing changes.
func (h PopBinFromLocationCommandHandler) Handle(ctx context.Context, cmd PopBinFromLocationCommand) error {
	if err := cmd.Validate(); err != nil {
		return err
	}

	uow := h.uowFactory.Create()
	if err := uow.Begin(ctx); err != nil {
		return err
	}

	defer func() {
		_ = uow.Rollback(ctx)
	}()

	v, err := uow.VehicleRepository().Get(ctx, cmd.VehicleID())
	if err != nil {
		return err
	}
	l, err := uow.LocationRepository().Get(ctx, cmd.LocationID())
	if err != nil {
		return err
	}

	nextLocation, binID, ok := l.PopBin()
	if !ok {
		h.logger.WarnContext(ctx, "location has no bin to pop",
			"vehicle", v.Name(), "location", l.Name())
		h.recorder.RecordTransfer(OperationPopBin, OutcomeSourceEmpty)
		return nil
	}

	if v.HasBin() {
		h.recorder.RecordTransfer(OperationPopBin, OutcomeRejected)
		return fmt.Errorf("%w: %s", vehicle.ErrVehicleAlreadyLoaded, v.Name())
	}

	b, err := uow.BinRepository().Get(ctx, binID)
	if err != nil {
		return err
	}

	picked := b
	if cmd.AfterPick() {
		manifest, err := h.manifestOf(ctx, uow, v)
		if err != nil {
			h.recorder.RecordTransfer(OperationPopBin, OutcomeRejected)
			return err
		}
		if picked, err = h.accountant.Reconcile(b, manifest); err != nil {
			return err
		}
	}

	nextBin := picked.AttachToVehicle(v.ID())
	nextVehicle := v.WithBin(nextBin.ID())

	if err = uow.BinRepository().Update(ctx, nextBin); err != nil {
		return err
	}
	if err = uow.VehicleRepository().Update(ctx, nextVehicle); err != nil {
		return err
	}
	if err = uow.LocationRepository().Update(ctx, nextLocation); err != nil {
		return err
	}

	uow.RecordEvent(ports.NewObjectModifiedEvent(nextLocation, l))
	uow.RecordEvent(ports.NewObjectModifiedEvent(nextVehicle, v))
	uow.RecordEvent(ports.NewObjectModifiedEvent(nextBin, b))

	if err = uow.Commit(ctx); err != nil {
		return err
	}

	h.flusher.TriggerFlush()
	h.recorder.RecordTransfer(OperationPopBin, OutcomeTransferred)
	h.logger.InfoContext(ctx, "bin popped from location",
		"vehicle", v.Name(), "location", l.Name(), "bin", nextBin.Name(), "afterPick", cmd.AfterPick())

	return nil
}

func (h PopBinFromLocationCommandHandler) manifestOf(
	ctx context.Context,
	uow TransferUoW,
	v vehicle.Vehicle,
) (transportorder.OrderBin, error) {
	orderID, ok := v.TransportOrder()
	if !ok {
		return transportorder.OrderBin{}, fmt.Errorf("%w: %s", ErrNoTransportOrder, v.Name())
	}

	order, err := uow.TransportOrderRepository().Get(ctx, orderID)
	if err != nil {
		return transportorder.OrderBin{}, err
	}

	orderBinID, ok := order.OrderBin()
	if !ok {
		return transportorder.OrderBin{}, fmt.Errorf("%w: %s", transportorder.ErrNoOrderBin, order.Name())
	}

	return uow.TransportOrderRepository().GetOrderBin(ctx, orderBinID)
}

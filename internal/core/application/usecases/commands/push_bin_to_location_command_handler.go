package commands

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"fleetkernel/internal/core/domain/model/bin"
	"fleetkernel/internal/core/domain/model/location"
	"fleetkernel/internal/core/domain/model/vehicle"
	"fleetkernel/internal/core/ports"
)

// PushBinToLocationCommandHandler moves the bin carried by a vehicle onto the top of
// a location's stack.
//
// The bin is stamped with the location, both of its tracks and its position in the
// stack (the depth before the push). When the stack is full the command fails with
// location.ErrStackCapacityExceeded and nothing changes: the bin stays on the
// vehicle and no event is published.
//
// Example:
//
//	err := handler.Handle(ctx, cmd)
//	if errors.Is(err, location.ErrStackCapacityExceeded) {
//	    // pick another location
//	}
type PushBinToLocationCommandHandler struct {
	uowFactory TransferUoWFactory
	flusher    ports.PersistenceFlusher
	recorder   TransferRecorder
	logger     *slog.Logger
}

// NewPushBinToLocationCommandHandler creates the handler. recorder and logger may be nil.
func NewPushBinToLocationCommandHandler(
	uowFactory TransferUoWFactory,
	flusher ports.PersistenceFlusher,
	recorder TransferRecorder,
	logger *slog.Logger,
) PushBinToLocationCommandHandler {
	return PushBinToLocationCommandHandler{
		uowFactory: uowFactory,
		flusher:    flusher,
		recorder:   orNoopRecorder(recorder),
		logger:     orDiscardLogger(logger).With("component", "PushBinToLocation"),
	}
}

// Handle processes the command.
func (h PushBinToLocationCommandHandler) Handle(ctx context.Context, cmd PushBinToLocationCommand) error {
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

	binID, ok := v.Bin()
	if !ok {
		h.recorder.RecordTransfer(OperationPushBin, OutcomeRejected)
		return fmt.Errorf("%w: %s", vehicle.ErrVehicleCarriesNoBin, v.Name())
	}

	b, err := uow.BinRepository().Get(ctx, binID)
	if err != nil {
		return err
	}

	placement, err := bin.NewPlacement(l.ID(), l.PsbTrack(), l.PstTrack(), l.StackSize())
	if err != nil {
		return err
	}

	nextLocation, err := l.PushBin(binID)
	if errors.Is(err, location.ErrStackCapacityExceeded) {
		h.logger.ErrorContext(ctx, "bin could not be pushed to location",
			"vehicle", v.Name(), "location", l.Name(), "bin", b.Name(), "error", err)
		h.recorder.RecordTransfer(OperationPushBin, OutcomeStackFull)
		return err
	}
	if err != nil {
		return err
	}

	nextBin := b.AttachToLocation(placement)
	nextVehicle := v.WithoutBin()

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
	h.recorder.RecordTransfer(OperationPushBin, OutcomeTransferred)
	h.logger.InfoContext(ctx, "bin pushed to location",
		"vehicle", v.Name(), "location", l.Name(), "bin", nextBin.Name(), "position", placement.Position())

	return nil
}

package http

import (
	"errors"
	"fmt"
	"log/slog"
	"net/http"

	"fleetkernel/internal/adapters/views"
	"fleetkernel/internal/core/application/usecases/commands"
	"fleetkernel/internal/core/application/usecases/queries"
	"fleetkernel/internal/core/domain/model/kernel"
	"fleetkernel/internal/core/domain/model/location"
	"fleetkernel/internal/core/domain/model/transportorder"
	"fleetkernel/internal/core/domain/model/vehicle"
	"fleetkernel/internal/pkg/errs"

	"github.com/go-playground/validator/v10"
	"github.com/labstack/echo/v4"
	openapi_types "github.com/oapi-codegen/runtime/types"
)

type ErrorResponse struct {
	Code    int               `json:"code"`
	Message string            `json:"message"`
	Fields  map[string]string `json:"fields,omitempty"`
}

type DestinationsResponse struct {
	Objects []any `json:"objects"`
}

type DiscrepancyView struct {
	Kind   string `json:"kind"`
	ID     string `json:"id"`
	Reason string `json:"reason"`
}

var _ ServerInterface = (*Server)(nil)

// Server implements the ServerInterface for handling HTTP requests.
// It coordinates between HTTP handlers and application use cases.
type Server struct {
	// Command handlers
	popBinHandler                 commands.PopBinFromLocationCommandHandler
	pushBinHandler                commands.PushBinToLocationCommandHandler
	updateTransportOrderHandler   commands.UpdateVehicleTransportOrderCommandHandler
	updateEnergyLevelHandler      commands.UpdateVehicleEnergyLevelCommandHandler
	updateIntegrationLevelHandler commands.UpdateVehicleIntegrationLevelCommandHandler

	// Query handlers
	getDestinationsHandler queries.GetDestinationsQueryHandler
	getAllVehiclesHandler  queries.GetAllVehiclesQueryHandler
	auditInventoryHandler  queries.AuditInventoryQueryHandler

	validate *validator.Validate
	logger   *slog.Logger
}

// NewServer creates a new HTTP server with the required command and query handlers.
func NewServer(
	popBinHandler commands.PopBinFromLocationCommandHandler,
	pushBinHandler commands.PushBinToLocationCommandHandler,
	updateTransportOrderHandler commands.UpdateVehicleTransportOrderCommandHandler,
	updateEnergyLevelHandler commands.UpdateVehicleEnergyLevelCommandHandler,
	updateIntegrationLevelHandler commands.UpdateVehicleIntegrationLevelCommandHandler,
	getDestinationsHandler queries.GetDestinationsQueryHandler,
	getAllVehiclesHandler queries.GetAllVehiclesQueryHandler,
	auditInventoryHandler queries.AuditInventoryQueryHandler,
	logger *slog.Logger,
) *Server {
	if logger == nil {
		logger = slog.New(slog.DiscardHandler)
	}
	return &Server{
		popBinHandler:                 popBinHandler,
		pushBinHandler:                pushBinHandler,
		updateTransportOrderHandler:   updateTransportOrderHandler,
		updateEnergyLevelHandler:      updateEnergyLevelHandler,
		updateIntegrationLevelHandler: updateIntegrationLevelHandler,
		getDestinationsHandler:        getDestinationsHandler,
		getAllVehiclesHandler:         getAllVehiclesHandler,
		auditInventoryHandler:         auditInventoryHandler,
		validate:                      newValidator(),
		logger:                        logger.With("component", "HTTPServer"),
	}
}

// GetVehicles handles GET /api/v1/vehicles - lists all vehicles.
func (s *Server) GetVehicles(ctx echo.Context) error {
	vehicles, err := s.getAllVehiclesHandler.Handle(ctx.Request().Context(), queries.NewGetAllVehiclesQuery())
	if err != nil {
		return s.fail(ctx, err)
	}

	response := make([]views.VehicleView, len(vehicles))
	for i, v := range vehicles {
		response[i] = views.FromVehicle(v)
	}
	return ctx.JSON(http.StatusOK, response)
}

// PopBinFromLocation handles POST /api/v1/vehicles/{vehicleId}/bin/pop.
// An empty location is not an error.
func (s *Server) PopBinFromLocation(ctx echo.Context, vehicleId openapi_types.UUID) error {
	var body PopBinRequest
	if err := bindAndValidate(ctx, s.validate, &body); err != nil {
		return s.fail(ctx, err)
	}
	vehicleID, locationID, err := transferIDs(vehicleId, body.LocationID)
	if err != nil {
		return s.fail(ctx, err)
	}

	cmd, err := commands.NewPopBinFromLocationCommand(vehicleID, locationID, body.AfterPick)
	if err != nil {
		return s.fail(ctx, err)
	}
	if err := s.popBinHandler.Handle(ctx.Request().Context(), cmd); err != nil {
		return s.fail(ctx, err)
	}
	return ctx.NoContent(http.StatusNoContent)
}

// PushBinToLocation handles POST /api/v1/vehicles/{vehicleId}/bin/push.
func (s *Server) PushBinToLocation(ctx echo.Context, vehicleId openapi_types.UUID) error {
	var body PushBinRequest
	if err := bindAndValidate(ctx, s.validate, &body); err != nil {
		return s.fail(ctx, err)
	}
	vehicleID, locationID, err := transferIDs(vehicleId, body.LocationID)
	if err != nil {
		return s.fail(ctx, err)
	}

	cmd, err := commands.NewPushBinToLocationCommand(vehicleID, locationID)
	if err != nil {
		return s.fail(ctx, err)
	}
	if err := s.pushBinHandler.Handle(ctx.Request().Context(), cmd); err != nil {
		return s.fail(ctx, err)
	}
	return ctx.NoContent(http.StatusNoContent)
}

func (s *Server) UpdateVehicleTransportOrder(ctx echo.Context, vehicleId openapi_types.UUID) error {
	var body UpdateTransportOrderRequest
	if err := bindAndValidate(ctx, s.validate, &body); err != nil {
		return s.fail(ctx, err)
	}
	vehicleID, err := pathID(vehicleId)
	if err != nil {
		return s.fail(ctx, err)
	}

	var orderID *kernel.UUID
	if body.TransportOrderID != nil {
		id, err := parseID("transportOrderId", *body.TransportOrderID)
		if err != nil {
			return s.fail(ctx, err)
		}
		orderID = &id
	}

	cmd, err := commands.NewUpdateVehicleTransportOrderCommand(vehicleID, orderID)
	if err != nil {
		return s.fail(ctx, err)
	}
	if err := s.updateTransportOrderHandler.Handle(ctx.Request().Context(), cmd); err != nil {
		return s.fail(ctx, err)
	}
	return ctx.NoContent(http.StatusNoContent)
}

func (s *Server) UpdateVehicleEnergyLevel(ctx echo.Context, vehicleId openapi_types.UUID) error {
	var body UpdateEnergyLevelRequest
	if err := bindAndValidate(ctx, s.validate, &body); err != nil {
		return s.fail(ctx, err)
	}
	vehicleID, err := pathID(vehicleId)
	if err != nil {
		return s.fail(ctx, err)
	}

	cmd, err := commands.NewUpdateVehicleEnergyLevelCommand(vehicleID, *body.EnergyLevel)
	if err != nil {
		return s.fail(ctx, err)
	}
	if err := s.updateEnergyLevelHandler.Handle(ctx.Request().Context(), cmd); err != nil {
		return s.fail(ctx, err)
	}
	return ctx.NoContent(http.StatusNoContent)
}

func (s *Server) UpdateVehicleIntegrationLevel(ctx echo.Context, vehicleId openapi_types.UUID) error {
	var body UpdateIntegrationLevelRequest
	if err := bindAndValidate(ctx, s.validate, &body); err != nil {
		return s.fail(ctx, err)
	}
	vehicleID, err := pathID(vehicleId)
	if err != nil {
		return s.fail(ctx, err)
	}
	level, err := vehicle.ParseIntegrationLevel(body.IntegrationLevel)
	if err != nil {
		return s.fail(ctx, err)
	}

	cmd, err := commands.NewUpdateVehicleIntegrationLevelCommand(vehicleID, level)
	if err != nil {
		return s.fail(ctx, err)
	}
	if err := s.updateIntegrationLevelHandler.Handle(ctx.Request().Context(), cmd); err != nil {
		return s.fail(ctx, err)
	}
	return ctx.NoContent(http.StatusNoContent)
}

// GetDestinations handles POST /api/v1/destinations. The response keeps the request
// order and holds null for every reference the pool does not know.
func (s *Server) GetDestinations(ctx echo.Context) error {
	var body DestinationsRequest
	if err := bindAndValidate(ctx, s.validate, &body); err != nil {
		return s.fail(ctx, err)
	}

	refs := make([]kernel.ObjectRef, 0, len(body.References))
	for i, r := range body.References {
		kind, err := kernel.ParseObjectKind(r.Kind)
		if err != nil {
			return s.fail(ctx, err)
		}
		id, err := parseID(fmt.Sprintf("references[%d].id", i), r.ID)
		if err != nil {
			return s.fail(ctx, err)
		}
		refs = append(refs, kernel.RefOf(kind, id))
	}

	query, err := queries.NewGetDestinationsQuery(refs)
	if err != nil {
		return s.fail(ctx, err)
	}
	objects, err := s.getDestinationsHandler.Handle(ctx.Request().Context(), query)
	if err != nil {
		return s.fail(ctx, err)
	}

	response := DestinationsResponse{Objects: make([]any, len(objects))}
	for i, obj := range objects {
		response.Objects[i] = views.FromObject(obj)
	}
	return ctx.JSON(http.StatusOK, response)
}

// AuditInventory handles GET /api/v1/inventory/audit.
func (s *Server) AuditInventory(ctx echo.Context) error {
	found, err := s.auditInventoryHandler.Handle(ctx.Request().Context(), queries.NewAuditInventoryQuery())
	if err != nil {
		return s.fail(ctx, err)
	}

	response := make([]DiscrepancyView, len(found))
	for i, d := range found {
		response[i] = DiscrepancyView{
			Kind:   d.Ref.Kind().String(),
			ID:     d.Ref.ID().String(),
			Reason: d.Reason,
		}
	}
	return ctx.JSON(http.StatusOK, response)
}

func (s *Server) fail(ctx echo.Context, err error) error {
	status := statusOf(err)
	response := ErrorResponse{Code: status, Message: err.Error()}

	var reqErr *requestError
	if errors.As(err, &reqErr) {
		response.Fields = reqErr.fields
	}
	if status == http.StatusInternalServerError {
		s.logger.ErrorContext(ctx.Request().Context(), "request failed",
			"method", ctx.Request().Method, "path", ctx.Path(), "error", err)
		response.Message = "internal error"
	}
	return ctx.JSON(status, response)
}

func statusOf(err error) int {
	var reqErr *requestError
	switch {
	case errors.As(err, &reqErr):
		return http.StatusBadRequest
	case errors.Is(err, errs.ErrObjectNotFound):
		return http.StatusNotFound
	case errors.Is(err, location.ErrStackCapacityExceeded),
		errors.Is(err, vehicle.ErrVehicleAlreadyLoaded),
		errors.Is(err, vehicle.ErrVehicleCarriesNoBin),
		errors.Is(err, vehicle.ErrProcessingOrder),
		errors.Is(err, commands.ErrNoTransportOrder),
		errors.Is(err, transportorder.ErrNoOrderBin):
		return http.StatusConflict
	case errors.Is(err, errs.ErrValueIsInvalid),
		errors.Is(err, errs.ErrValueIsOutOfRange),
		errors.Is(err, errs.ErrValueIsRequired):
		return http.StatusBadRequest
	default:
		return http.StatusInternalServerError
	}
}

func transferIDs(vehicleId openapi_types.UUID, locationID string) (kernel.UUID, kernel.UUID, error) {
	v, err := pathID(vehicleId)
	if err != nil {
		return kernel.UUID{}, kernel.UUID{}, err
	}
	l, err := parseID("locationId", locationID)
	if err != nil {
		return kernel.UUID{}, kernel.UUID{}, err
	}
	return v, l, nil
}

func pathID(vehicleId openapi_types.UUID) (kernel.UUID, error) {
	id, err := kernel.UUIDFromBytes(vehicleId[:])
	if err != nil {
		return kernel.UUID{}, errs.NewValueIsInvalidErrorWithCause("vehicleId", err)
	}
	return id, nil
}

func parseID(param, s string) (kernel.UUID, error) {
	id, err := kernel.UUIDFromString(s)
	if err != nil {
		return kernel.UUID{}, errs.NewValueIsInvalidErrorWithCause(param, err)
	}
	return id, nil
}

package http

import (
	_ "embed"
	"fmt"
	"net/http"

	"github.com/getkin/kin-openapi/openapi3"
	"github.com/labstack/echo/v4"
	"github.com/oapi-codegen/runtime"
	openapi_types "github.com/oapi-codegen/runtime/types"
)

//go:embed openapi.yaml
var openAPIDocument []byte

// ServerInterface represents all server handlers.
type ServerInterface interface {
	// (GET /api/v1/vehicles)
	GetVehicles(ctx echo.Context) error
	// (POST /api/v1/vehicles/{vehicleId}/bin/pop)
	PopBinFromLocation(ctx echo.Context, vehicleId openapi_types.UUID) error
	// (POST /api/v1/vehicles/{vehicleId}/bin/push)
	PushBinToLocation(ctx echo.Context, vehicleId openapi_types.UUID) error
	// (PUT /api/v1/vehicles/{vehicleId}/transport-order)
	UpdateVehicleTransportOrder(ctx echo.Context, vehicleId openapi_types.UUID) error
	// (PUT /api/v1/vehicles/{vehicleId}/energy-level)
	UpdateVehicleEnergyLevel(ctx echo.Context, vehicleId openapi_types.UUID) error
	// (PUT /api/v1/vehicles/{vehicleId}/integration-level)
	UpdateVehicleIntegrationLevel(ctx echo.Context, vehicleId openapi_types.UUID) error
	// (POST /api/v1/destinations)
	GetDestinations(ctx echo.Context) error
	// (GET /api/v1/inventory/audit)
	AuditInventory(ctx echo.Context) error
}

// ServerInterfaceWrapper converts echo contexts to parameters.
type ServerInterfaceWrapper struct {
	Handler ServerInterface
}

func (w *ServerInterfaceWrapper) GetVehicles(ctx echo.Context) error {
	return w.Handler.GetVehicles(ctx)
}

func (w *ServerInterfaceWrapper) PopBinFromLocation(ctx echo.Context) error {
	vehicleId, err := bindVehicleID(ctx)
	if err != nil {
		return err
	}
	return w.Handler.PopBinFromLocation(ctx, vehicleId)
}

func (w *ServerInterfaceWrapper) PushBinToLocation(ctx echo.Context) error {
	vehicleId, err := bindVehicleID(ctx)
	if err != nil {
		return err
	}
	return w.Handler.PushBinToLocation(ctx, vehicleId)
}

func (w *ServerInterfaceWrapper) UpdateVehicleTransportOrder(ctx echo.Context) error {
	vehicleId, err := bindVehicleID(ctx)
	if err != nil {
		return err
	}
	return w.Handler.UpdateVehicleTransportOrder(ctx, vehicleId)
}

func (w *ServerInterfaceWrapper) UpdateVehicleEnergyLevel(ctx echo.Context) error {
	vehicleId, err := bindVehicleID(ctx)
	if err != nil {
		return err
	}
	return w.Handler.UpdateVehicleEnergyLevel(ctx, vehicleId)
}

func (w *ServerInterfaceWrapper) UpdateVehicleIntegrationLevel(ctx echo.Context) error {
	vehicleId, err := bindVehicleID(ctx)
	if err != nil {
		return err
	}
	return w.Handler.UpdateVehicleIntegrationLevel(ctx, vehicleId)
}

func (w *ServerInterfaceWrapper) GetDestinations(ctx echo.Context) error {
	return w.Handler.GetDestinations(ctx)
}

func (w *ServerInterfaceWrapper) AuditInventory(ctx echo.Context) error {
	return w.Handler.AuditInventory(ctx)
}

func bindVehicleID(ctx echo.Context) (openapi_types.UUID, error) {
	var vehicleId openapi_types.UUID
	err := runtime.BindStyledParameterWithOptions("simple", "vehicleId", ctx.Param("vehicleId"), &vehicleId,
		runtime.BindStyledParameterOptions{ParamLocation: runtime.ParamLocationPath, Explode: false, Required: true})
	if err != nil {
		return vehicleId, echo.NewHTTPError(http.StatusBadRequest, fmt.Sprintf("Invalid format for parameter vehicleId: %s", err))
	}
	return vehicleId, nil
}

// EchoRouter is satisfied by both *echo.Echo and *echo.Group.
type EchoRouter interface {
	GET(path string, h echo.HandlerFunc, m ...echo.MiddlewareFunc) *echo.Route
	POST(path string, h echo.HandlerFunc, m ...echo.MiddlewareFunc) *echo.Route
	PUT(path string, h echo.HandlerFunc, m ...echo.MiddlewareFunc) *echo.Route
}

// RegisterHandlers adds each server route to the EchoRouter.
func RegisterHandlers(router EchoRouter, si ServerInterface) {
	RegisterHandlersWithBaseURL(router, si, "")
}

// RegisterHandlersWithBaseURL registers the handlers with baseURL prepended to every path.
func RegisterHandlersWithBaseURL(router EchoRouter, si ServerInterface, baseURL string) {
	wrapper := ServerInterfaceWrapper{
		Handler: si,
	}

	router.GET(baseURL+"/api/v1/vehicles", wrapper.GetVehicles)
	router.POST(baseURL+"/api/v1/vehicles/:vehicleId/bin/pop", wrapper.PopBinFromLocation)
	router.POST(baseURL+"/api/v1/vehicles/:vehicleId/bin/push", wrapper.PushBinToLocation)
	router.PUT(baseURL+"/api/v1/vehicles/:vehicleId/transport-order", wrapper.UpdateVehicleTransportOrder)
	router.PUT(baseURL+"/api/v1/vehicles/:vehicleId/energy-level", wrapper.UpdateVehicleEnergyLevel)
	router.PUT(baseURL+"/api/v1/vehicles/:vehicleId/integration-level", wrapper.UpdateVehicleIntegrationLevel)
	router.POST(baseURL+"/api/v1/destinations", wrapper.GetDestinations)
	router.GET(baseURL+"/api/v1/inventory/audit", wrapper.AuditInventory)
}

// GetSwagger parses and validates the embedded OpenAPI document.
func GetSwagger() (*openapi3.T, error) {
	loader := openapi3.NewLoader()
	doc, err := loader.LoadFromData(openAPIDocument)
	if err != nil {
		return nil, fmt.Errorf("error loading OpenAPI document: %w", err)
	}
	if err := doc.Validate(loader.Context); err != nil {
		return nil, fmt.Errorf("invalid OpenAPI document: %w", err)
	}
	return doc, nil
}

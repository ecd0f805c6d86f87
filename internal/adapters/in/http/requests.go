package http

import (
	"errors"
	"fmt"
	"reflect"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/labstack/echo/v4"
)

type PopBinRequest struct {
	LocationID string `json:"locationId" validate:"required,uuid"`
	AfterPick  bool   `json:"afterPick"`
}

type PushBinRequest struct {
	LocationID string `json:"locationId" validate:"required,uuid"`
}

type ObjectReference struct {
	Kind string `json:"kind" validate:"required,oneof=Vehicle Location Bin TransportOrder TransportOrderBin"`
	ID   string `json:"id" validate:"required,uuid"`
}

type DestinationsRequest struct {
	References []ObjectReference `json:"references" validate:"required,dive"`
}

// UpdateTransportOrderRequest clears the order when TransportOrderID is null or absent.
type UpdateTransportOrderRequest struct {
	TransportOrderID *string `json:"transportOrderId" validate:"omitempty,uuid"`
}

type UpdateEnergyLevelRequest struct {
	EnergyLevel *int `json:"energyLevel" validate:"required,min=0,max=100"`
}

type UpdateIntegrationLevelRequest struct {
	IntegrationLevel string `json:"integrationLevel" validate:"required,oneof=TO_BE_IGNORED TO_BE_NOTICED TO_BE_RESPECTED TO_BE_UTILIZED"`
}

// requestError is a malformed or invalid request body. Fields maps JSON paths to messages.
type requestError struct {
	message string
	fields  map[string]string
}

func (e *requestError) Error() string {
	return e.message
}

func newValidator() *validator.Validate {
	v := validator.New(validator.WithRequiredStructEnabled())
	v.RegisterTagNameFunc(func(fld reflect.StructField) string {
		name, _, _ := strings.Cut(fld.Tag.Get("json"), ",")
		if name == "-" {
			return ""
		}
		return name
	})
	return v
}

func bindAndValidate(ctx echo.Context, v *validator.Validate, dst any) error {
	if err := ctx.Bind(dst); err != nil {
		return &requestError{message: fmt.Sprintf("invalid request body: %v", err)}
	}
	return toRequestError(v.Struct(dst))
}

func toRequestError(err error) error {
	if err == nil {
		return nil
	}
	var validationErrors validator.ValidationErrors
	if !errors.As(err, &validationErrors) {
		return &requestError{message: err.Error()}
	}

	fields := make(map[string]string, len(validationErrors))
	for _, fe := range validationErrors {
		fields[fieldPath(fe)] = fieldMessage(fe)
	}
	return &requestError{message: "validation failed", fields: fields}
}

// fieldPath drops the struct name from the namespace: "references[0].id".
func fieldPath(fe validator.FieldError) string {
	if _, path, ok := strings.Cut(fe.Namespace(), "."); ok {
		return path
	}
	return fe.Field()
}

func fieldMessage(fe validator.FieldError) string {
	field := fe.Field()
	switch fe.Tag() {
	case "required":
		return fmt.Sprintf("%s is required", field)
	case "uuid":
		return fmt.Sprintf("%s must be a valid UUID", field)
	case "oneof":
		return fmt.Sprintf("%s must be one of: %s", field, fe.Param())
	case "min":
		return fmt.Sprintf("%s must be at least %s", field, fe.Param())
	case "max":
		return fmt.Sprintf("%s must be at most %s", field, fe.Param())
	default:
		return fmt.Sprintf("%s is invalid", field)
	}
}

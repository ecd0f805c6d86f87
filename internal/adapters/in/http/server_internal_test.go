package http

import (
	"errors"
	"fmt"
	"net/http"
	"testing"

	"fleetkernel/internal/core/application/usecases/commands"
	"fleetkernel/internal/core/domain/model/location"
	"fleetkernel/internal/core/domain/model/transportorder"
	"fleetkernel/internal/core/domain/model/vehicle"
	"fleetkernel/internal/pkg/errs"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestStatusOf(t *testing.T) {
	tests := []struct {
		name string
		err  error
		want int
	}{
		{"request", &requestError{message: "validation failed"}, http.StatusBadRequest},
		{"unknown object", errs.NewObjectNotFoundError("vehicleID", "x"), http.StatusNotFound},
		{"capacity", fmt.Errorf("push: %w", location.ErrStackCapacityExceeded), http.StatusConflict},
		{"loaded", vehicle.ErrVehicleAlreadyLoaded, http.StatusConflict},
		{"empty vehicle", vehicle.ErrVehicleCarriesNoBin, http.StatusConflict},
		{"processing", vehicle.ErrProcessingOrder, http.StatusConflict},
		{"no order", commands.ErrNoTransportOrder, http.StatusConflict},
		{"no manifest", transportorder.ErrNoOrderBin, http.StatusConflict},
		{"invalid value", errs.NewValueIsInvalidError("kind"), http.StatusBadRequest},
		{"joined required", errors.Join(errs.NewValueIsRequiredError("id")), http.StatusBadRequest},
		{"other", errors.New("boom"), http.StatusInternalServerError},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, statusOf(tt.err))
		})
	}
}

func TestValidator_FieldPaths(t *testing.T) {
	// Given
	v := newValidator()
	req := DestinationsRequest{References: []ObjectReference{
		{Kind: "Location", ID: "6f1c1f0e-8f0a-4a57-9d1c-3f4b5a6c7d8e"},
		{Kind: "Point", ID: "nope"},
	}}

	// When
	err := v.Struct(req)

	// Then
	require.Error(t, err)
	var reqErr *requestError
	require.ErrorAs(t, toRequestError(err), &reqErr)
	assert.Equal(t, map[string]string{
		"references[1].kind": "kind must be one of: Vehicle Location Bin TransportOrder TransportOrderBin",
		"references[1].id":   "id must be a valid UUID",
	}, reqErr.fields)
}

func TestValidator_EnergyLevel(t *testing.T) {
	v := newValidator()
	level := 101

	err := toRequestError(v.Struct(UpdateEnergyLevelRequest{EnergyLevel: &level}))

	var reqErr *requestError
	require.ErrorAs(t, err, &reqErr)
	assert.Equal(t, "energyLevel must be at most 100", reqErr.fields["energyLevel"])

	err = toRequestError(v.Struct(UpdateEnergyLevelRequest{}))
	require.ErrorAs(t, err, &reqErr)
	assert.Equal(t, "energyLevel is required", reqErr.fields["energyLevel"])
}

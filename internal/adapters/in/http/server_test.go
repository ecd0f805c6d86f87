package http_test

import (
	"encoding/json"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync/atomic"
	"testing"

	httpapi "fleetkernel/internal/adapters/in/http"
	"fleetkernel/internal/adapters/in/topology"
	"fleetkernel/internal/adapters/out/metrics"
	"fleetkernel/internal/adapters/out/objectpool"
	"fleetkernel/internal/core/application/usecases/commands"
	"fleetkernel/internal/core/application/usecases/queries"
	"fleetkernel/internal/core/ports"

	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const plant = `
locations:
  - name: RACK-01
    psbTrack: PSB-1
    pstTrack: PST-1
    capacity: 3
    bins: [BIN-01, BIN-02]
  - name: DOCK-01
    psbTrack: PSB-9
    pstTrack: PST-9
    capacity: 1
bins:
  - name: BIN-01
    skus: {A: 10, B: 5}
  - name: BIN-02
    skus: {C: 2}
  - name: BIN-03
    skus: {A: 4}
    locked: true
vehicles:
  - name: AGV-01
    integrationLevel: TO_BE_UTILIZED
    bin: BIN-03
    transportOrder: TOrder-01
  - name: AGV-02
transportOrders:
  - name: TOrder-01
    requirements: {A: 4}
`

type countingFlusher struct {
	triggered atomic.Int32
}

func (f *countingFlusher) TriggerFlush() {
	f.triggered.Add(1)
}

type transferUoWFactory func() commands.TransferUoW

func (f transferUoWFactory) Create() commands.TransferUoW {
	return f()
}

type vehicleUoWFactory func() commands.VehicleUoW

func (f vehicleUoWFactory) Create() commands.VehicleUoW {
	return f()
}

type fixture struct {
	router   *echo.Echo
	flusher  *countingFlusher
	snapshot ports.PoolSnapshot
}

func newFixture(t *testing.T) fixture {
	t.Helper()

	snapshot, err := topology.Load(strings.NewReader(plant))
	require.NoError(t, err)
	pool := objectpool.NewPool(slog.New(slog.DiscardHandler))
	require.NoError(t, pool.Import(t.Context(), snapshot))

	flusher := &countingFlusher{}
	transfers := transferUoWFactory(func() commands.TransferUoW { return pool.Create() })
	vehicles := vehicleUoWFactory(func() commands.VehicleUoW { return pool.Create() })

	server := httpapi.NewServer(
		commands.NewPopBinFromLocationCommandHandler(transfers, flusher, nil, nil),
		commands.NewPushBinToLocationCommandHandler(transfers, flusher, nil, nil),
		commands.NewUpdateVehicleTransportOrderCommandHandler(vehicles, flusher, nil),
		commands.NewUpdateVehicleEnergyLevelCommandHandler(vehicles, flusher, nil),
		commands.NewUpdateVehicleIntegrationLevelCommandHandler(vehicles, flusher, nil),
		queries.NewGetDestinationsQueryHandler(pool),
		queries.NewGetAllVehiclesQueryHandler(pool),
		queries.NewAuditInventoryQueryHandler(pool),
		nil,
	)
	router, err := httpapi.NewRouter(server, metrics.NewMetrics().Handler())
	require.NoError(t, err)

	return fixture{router: router, flusher: flusher, snapshot: snapshot}
}

func (f fixture) id(t *testing.T, name string) string {
	t.Helper()
	for _, v := range f.snapshot.Vehicles {
		if v.Name() == name {
			return v.ID().String()
		}
	}
	for _, l := range f.snapshot.Locations {
		if l.Name() == name {
			return l.ID().String()
		}
	}
	for _, b := range f.snapshot.Bins {
		if b.Name() == name {
			return b.ID().String()
		}
	}
	t.Fatalf("no object named %s", name)
	return ""
}

func (f fixture) do(method, path, body string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(method, path, strings.NewReader(body))
	if body != "" {
		req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	}
	rec := httptest.NewRecorder()
	f.router.ServeHTTP(rec, req)
	return rec
}

func (f fixture) vehicles(t *testing.T) map[string]map[string]any {
	t.Helper()
	rec := f.do(http.MethodGet, "/api/v1/vehicles", "")
	require.Equal(t, http.StatusOK, rec.Code)

	var list []map[string]any
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &list))
	byName := make(map[string]map[string]any, len(list))
	for _, v := range list {
		byName[v["name"].(string)] = v
	}
	return byName
}

func errorCode(t *testing.T, rec *httptest.ResponseRecorder) int {
	t.Helper()
	var resp httpapi.ErrorResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	return resp.Code
}

func TestServer_PopBinFromLocation(t *testing.T) {
	t.Run("loads the top bin onto an empty vehicle", func(t *testing.T) {
		// Given
		f := newFixture(t)
		path := "/api/v1/vehicles/" + f.id(t, "AGV-02") + "/bin/pop"

		// When
		rec := f.do(http.MethodPost, path, `{"locationId":"`+f.id(t, "RACK-01")+`"}`)

		// Then
		require.Equal(t, http.StatusNoContent, rec.Code, rec.Body.String())
		assert.NotNil(t, f.vehicles(t)["AGV-02"]["binId"])
		assert.Equal(t, int32(1), f.flusher.triggered.Load())
	})

	t.Run("an empty location is not an error", func(t *testing.T) {
		f := newFixture(t)
		path := "/api/v1/vehicles/" + f.id(t, "AGV-02") + "/bin/pop"

		rec := f.do(http.MethodPost, path, `{"locationId":"`+f.id(t, "DOCK-01")+`"}`)

		require.Equal(t, http.StatusNoContent, rec.Code)
		assert.Nil(t, f.vehicles(t)["AGV-02"]["binId"])
	})

	t.Run("a loaded vehicle conflicts", func(t *testing.T) {
		f := newFixture(t)
		path := "/api/v1/vehicles/" + f.id(t, "AGV-01") + "/bin/pop"

		rec := f.do(http.MethodPost, path, `{"locationId":"`+f.id(t, "RACK-01")+`"}`)

		assert.Equal(t, http.StatusConflict, rec.Code)
		assert.Equal(t, http.StatusConflict, errorCode(t, rec))
	})

	t.Run("an unknown vehicle is not found", func(t *testing.T) {
		f := newFixture(t)
		path := "/api/v1/vehicles/6f1c1f0e-8f0a-4a57-9d1c-3f4b5a6c7d8e/bin/pop"

		rec := f.do(http.MethodPost, path, `{"locationId":"`+f.id(t, "RACK-01")+`"}`)

		assert.Equal(t, http.StatusNotFound, rec.Code)
	})

	t.Run("a missing location id is rejected", func(t *testing.T) {
		f := newFixture(t)
		path := "/api/v1/vehicles/" + f.id(t, "AGV-02") + "/bin/pop"

		rec := f.do(http.MethodPost, path, `{"afterPick":true}`)

		assert.Equal(t, http.StatusBadRequest, rec.Code)
		assert.Equal(t, int32(0), f.flusher.triggered.Load())
	})

	t.Run("a malformed vehicle id is rejected", func(t *testing.T) {
		f := newFixture(t)

		rec := f.do(http.MethodPost, "/api/v1/vehicles/not-a-uuid/bin/pop", `{"locationId":"`+f.id(t, "RACK-01")+`"}`)

		assert.Equal(t, http.StatusBadRequest, rec.Code)
	})
}

func TestServer_PushBinToLocation(t *testing.T) {
	t.Run("stacks the carried bin", func(t *testing.T) {
		// Given
		f := newFixture(t)
		path := "/api/v1/vehicles/" + f.id(t, "AGV-01") + "/bin/push"

		// When
		rec := f.do(http.MethodPost, path, `{"locationId":"`+f.id(t, "DOCK-01")+`"}`)

		// Then
		require.Equal(t, http.StatusNoContent, rec.Code, rec.Body.String())
		assert.Nil(t, f.vehicles(t)["AGV-01"]["binId"])
	})

	t.Run("a full location conflicts and the bin stays on the vehicle", func(t *testing.T) {
		// Given
		f := newFixture(t)
		dock := `{"locationId":"` + f.id(t, "DOCK-01") + `"}`
		require.Equal(t, http.StatusNoContent,
			f.do(http.MethodPost, "/api/v1/vehicles/"+f.id(t, "AGV-01")+"/bin/push", dock).Code)
		require.Equal(t, http.StatusNoContent,
			f.do(http.MethodPost, "/api/v1/vehicles/"+f.id(t, "AGV-02")+"/bin/pop", `{"locationId":"`+f.id(t, "RACK-01")+`"}`).Code)

		// When
		rec := f.do(http.MethodPost, "/api/v1/vehicles/"+f.id(t, "AGV-02")+"/bin/push", dock)

		// Then
		assert.Equal(t, http.StatusConflict, rec.Code)
		assert.NotNil(t, f.vehicles(t)["AGV-02"]["binId"])
	})

	t.Run("an empty vehicle conflicts", func(t *testing.T) {
		f := newFixture(t)

		rec := f.do(http.MethodPost, "/api/v1/vehicles/"+f.id(t, "AGV-02")+"/bin/push",
			`{"locationId":"`+f.id(t, "DOCK-01")+`"}`)

		assert.Equal(t, http.StatusConflict, rec.Code)
	})
}

func TestServer_GetDestinations(t *testing.T) {
	// Given
	f := newFixture(t)
	body := `{"references":[` +
		`{"kind":"Location","id":"` + f.id(t, "RACK-01") + `"},` +
		`{"kind":"Bin","id":"6f1c1f0e-8f0a-4a57-9d1c-3f4b5a6c7d8e"},` +
		`{"kind":"Vehicle","id":"` + f.id(t, "AGV-02") + `"}]}`

	// When
	rec := f.do(http.MethodPost, "/api/v1/destinations", body)

	// Then
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
	var resp struct {
		Objects []map[string]any `json:"objects"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	require.Len(t, resp.Objects, 3)
	assert.Equal(t, "RACK-01", resp.Objects[0]["name"])
	assert.Nil(t, resp.Objects[1])
	assert.Equal(t, "AGV-02", resp.Objects[2]["name"])
}

func TestServer_GetDestinations_UnknownKind(t *testing.T) {
	f := newFixture(t)

	rec := f.do(http.MethodPost, "/api/v1/destinations",
		`{"references":[{"kind":"Point","id":"6f1c1f0e-8f0a-4a57-9d1c-3f4b5a6c7d8e"}]}`)

	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestServer_VehicleSetters(t *testing.T) {
	tests := []struct {
		name    string
		vehicle string
		path    string
		body    string
		want    int
	}{
		{"energy level", "AGV-02", "energy-level", `{"energyLevel":55}`, http.StatusNoContent},
		{"energy level out of range", "AGV-02", "energy-level", `{"energyLevel":150}`, http.StatusBadRequest},
		{"integration level", "AGV-02", "integration-level", `{"integrationLevel":"TO_BE_RESPECTED"}`, http.StatusNoContent},
		{"integration level below processing", "AGV-01", "integration-level", `{"integrationLevel":"TO_BE_NOTICED"}`, http.StatusConflict},
		{"clear transport order", "AGV-01", "transport-order", `{"transportOrderId":null}`, http.StatusNoContent},
		{"unknown transport order", "AGV-02", "transport-order", `{"transportOrderId":"6f1c1f0e-8f0a-4a57-9d1c-3f4b5a6c7d8e"}`, http.StatusNotFound},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f := newFixture(t)

			rec := f.do(http.MethodPut, "/api/v1/vehicles/"+f.id(t, tt.vehicle)+"/"+tt.path, tt.body)

			assert.Equal(t, tt.want, rec.Code, rec.Body.String())
		})
	}

	t.Run("energy level is visible in the vehicle list", func(t *testing.T) {
		f := newFixture(t)

		rec := f.do(http.MethodPut, "/api/v1/vehicles/"+f.id(t, "AGV-02")+"/energy-level", `{"energyLevel":55}`)

		require.Equal(t, http.StatusNoContent, rec.Code)
		assert.InDelta(t, 55, f.vehicles(t)["AGV-02"]["energyLevel"], 0)
	})

	t.Run("ignored vehicle cannot take a transport order", func(t *testing.T) {
		// Given AGV-02 ignored and the order AGV-01 is processing
		f := newFixture(t)
		orderID, ok := f.vehicles(t)["AGV-01"]["transportOrderId"].(string)
		require.True(t, ok)
		rec := f.do(http.MethodPut, "/api/v1/vehicles/"+f.id(t, "AGV-02")+"/integration-level",
			`{"integrationLevel":"TO_BE_IGNORED"}`)
		require.Equal(t, http.StatusNoContent, rec.Code)

		// When
		rec = f.do(http.MethodPut, "/api/v1/vehicles/"+f.id(t, "AGV-02")+"/transport-order",
			`{"transportOrderId":"`+orderID+`"}`)

		// Then
		assert.Equal(t, http.StatusConflict, rec.Code, rec.Body.String())
		assert.Nil(t, f.vehicles(t)["AGV-02"]["transportOrderId"])
	})
}

func TestServer_AuditInventory(t *testing.T) {
	f := newFixture(t)

	rec := f.do(http.MethodGet, "/api/v1/inventory/audit", "")

	require.Equal(t, http.StatusOK, rec.Code)
	assert.JSONEq(t, `[]`, rec.Body.String())
}

func TestRouter_AmbientEndpoints(t *testing.T) {
	f := newFixture(t)

	health := f.do(http.MethodGet, "/health", "")
	assert.Equal(t, http.StatusOK, health.Code)
	assert.Equal(t, "Healthy", health.Body.String())

	metricsRec := f.do(http.MethodGet, "/metrics", "")
	assert.Equal(t, http.StatusOK, metricsRec.Code)
	assert.Contains(t, metricsRec.Body.String(), "go_goroutines")

	doc := f.do(http.MethodGet, "/swagger/doc.json", "")
	assert.Equal(t, http.StatusOK, doc.Code)
	assert.Contains(t, doc.Body.String(), "Fleet kernel API")
}

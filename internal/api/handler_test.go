package api_test

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"genie/synthdata-api/internal/api"
)

// ─── Test server setup ────────────────────────────────────────────────────────

func newTestServer(t *testing.T) *httptest.Server {
	t.Helper()
	h := api.NewHandler()
	return httptest.NewServer(api.NewRouter(h))
}

func post(t *testing.T, srv *httptest.Server, path string, body any) *http.Response {
	t.Helper()
	b, _ := json.Marshal(body)
	resp, err := http.Post(srv.URL+path, "application/json", bytes.NewReader(b))
	require.NoError(t, err, "POST %s", path)
	return resp
}

func get(t *testing.T, srv *httptest.Server, path string) *http.Response {
	t.Helper()
	resp, err := http.Get(srv.URL + path)
	require.NoError(t, err, "GET %s", path)
	return resp
}

func decodeData(t *testing.T, resp *http.Response) map[string]any {
	t.Helper()
	var env map[string]any
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&env))
	d, ok := env["data"].(map[string]any)
	require.True(t, ok, "response has no 'data' key: %v", env)
	return d
}

func decodeError(t *testing.T, resp *http.Response) map[string]any {
	t.Helper()
	var env map[string]any
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&env))
	e, ok := env["error"].(map[string]any)
	require.True(t, ok, "response has no 'error' key: %v", env)
	return e
}

// ─── POST /api/v1/generate ────────────────────────────────────────────────────

func TestGenerateHappyPath(t *testing.T) {
	srv := newTestServer(t)
	defer srv.Close()

	resp := post(t, srv, "/api/v1/generate", map[string]any{
		"num_records":  100,
		"start_date":   "2024-01-01",
		"end_date":     "2024-12-31",
		"anomaly_rate": 10.0,
		"seed":         42,
	})
	defer resp.Body.Close()
	require.Equal(t, http.StatusOK, resp.StatusCode)

	data := decodeData(t, resp)
	assert.NotEmpty(t, data["dataset_id"])

	txns, ok := data["transactions"].([]any)
	require.True(t, ok)
	assert.Len(t, txns, 100)

	m, ok := data["metrics"].(map[string]any)
	require.True(t, ok)
	breakdown := m["anomaly_breakdown"].(map[string]any)
	assert.Equal(t, float64(10), breakdown["total_anomalies"])
}

func TestGenerateDefaults(t *testing.T) {
	srv := newTestServer(t)
	defer srv.Close()

	// An empty body gets the documented defaults applied.
	resp := post(t, srv, "/api/v1/generate", map[string]any{
		"num_records": 100, // shrink from the 10k default to keep the test fast
	})
	defer resp.Body.Close()
	require.Equal(t, http.StatusOK, resp.StatusCode)

	data := decodeData(t, resp)
	req := data["request"].(map[string]any)
	assert.Equal(t, "2024-01-01", req["start_date"])
	assert.Equal(t, "2024-12-31", req["end_date"])
	assert.Equal(t, 5.0, req["anomaly_rate"])
	assert.Equal(t, "US_MAJOR_CITIES", req["region"])
}

func TestGenerateExplicitZeroRate(t *testing.T) {
	srv := newTestServer(t)
	defer srv.Close()

	resp := post(t, srv, "/api/v1/generate", map[string]any{
		"num_records":  100,
		"anomaly_rate": 0.0,
		"seed":         5,
	})
	defer resp.Body.Close()
	require.Equal(t, http.StatusOK, resp.StatusCode)

	data := decodeData(t, resp)
	m := data["metrics"].(map[string]any)
	breakdown := m["anomaly_breakdown"].(map[string]any)
	assert.Equal(t, float64(0), breakdown["total_anomalies"],
		"an explicit zero rate must not fall back to the default")
}

func TestGenerateReproducible(t *testing.T) {
	srv := newTestServer(t)
	defer srv.Close()

	body := map[string]any{"num_records": 100, "seed": 7, "anomaly_rate": 5.0}

	first := post(t, srv, "/api/v1/generate", body)
	defer first.Body.Close()
	second := post(t, srv, "/api/v1/generate", body)
	defer second.Body.Close()

	a, _ := json.Marshal(decodeData(t, first)["transactions"])
	b, _ := json.Marshal(decodeData(t, second)["transactions"])
	assert.Equal(t, string(a), string(b), "same seed must reproduce the batch across requests")
}

func TestGenerateValidation(t *testing.T) {
	srv := newTestServer(t)
	defer srv.Close()

	tests := []struct {
		name string
		body map[string]any
	}{
		{"too few records", map[string]any{"num_records": 50}},
		{"too many records", map[string]any{"num_records": 200000}},
		{"bad start date", map[string]any{"num_records": 100, "start_date": "01/15/2024"}},
		{"bad end date", map[string]any{"num_records": 100, "end_date": "not-a-date"}},
		{"inverted window", map[string]any{"num_records": 100, "start_date": "2024-12-31", "end_date": "2024-01-01"}},
		{"rate too high", map[string]any{"num_records": 100, "anomaly_rate": 25.0}},
		{"negative rate", map[string]any{"num_records": 100, "anomaly_rate": -1.0}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			resp := post(t, srv, "/api/v1/generate", tt.body)
			defer resp.Body.Close()
			assert.Equal(t, http.StatusBadRequest, resp.StatusCode)

			e := decodeError(t, resp)
			assert.Equal(t, "VALIDATION_ERROR", e["code"])
		})
	}
}

func TestGenerateRejectsMalformedJSON(t *testing.T) {
	srv := newTestServer(t)
	defer srv.Close()

	resp, err := http.Post(srv.URL+"/api/v1/generate", "application/json",
		bytes.NewReader([]byte("{not json")))
	require.NoError(t, err)
	defer resp.Body.Close()

	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
	e := decodeError(t, resp)
	assert.Equal(t, "INVALID_JSON", e["code"])
}

// ─── GET /api/v1/anomaly-types ────────────────────────────────────────────────

func TestAnomalyTypesCatalogue(t *testing.T) {
	srv := newTestServer(t)
	defer srv.Close()

	resp := get(t, srv, "/api/v1/anomaly-types")
	defer resp.Body.Close()
	require.Equal(t, http.StatusOK, resp.StatusCode)

	data := decodeData(t, resp)
	types, ok := data["anomaly_types"].([]any)
	require.True(t, ok)
	assert.Len(t, types, 6)

	first := types[0].(map[string]any)
	assert.Equal(t, "geographic", first["name"])
	assert.NotEmpty(t, first["description"])
}

// ─── GET /health ──────────────────────────────────────────────────────────────

func TestHealthEndpoint(t *testing.T) {
	srv := newTestServer(t)
	defer srv.Close()

	resp := get(t, srv, "/health")
	defer resp.Body.Close()
	require.Equal(t, http.StatusOK, resp.StatusCode)

	data := decodeData(t, resp)
	assert.Equal(t, "ok", data["status"])
}

package server

import (
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/unionprice/union-price-api/internal/dependency"
	"github.com/unionprice/union-price-api/internal/handlers"
	"github.com/unionprice/union-price-api/internal/model"
	"github.com/unionprice/union-price-api/pkg/config"
	"github.com/unionprice/union-price-api/pkg/logger"
)

const lagosDuplexBody = `{"location":"Lagos","houseType":"Duplex","bedrooms":3,"bathrooms":2,"toilets":2}`

func testConfig(mode string) *config.Config {
	return &config.Config{
		Env:      config.EnvDevelopment,
		LogLevel: "error",
		Server: config.ServerConfig{
			Host:            "127.0.0.1",
			Port:            "0",
			ReadTimeout:     5 * time.Second,
			WriteTimeout:    5 * time.Second,
			ShutdownTimeout: time.Second,
			CORSOrigins:     []string{"*"},
		},
		Estimator: config.EstimatorConfig{
			Mode:                mode,
			RentPredictorURL:    "http://127.0.0.1:1/predict",
			SalePredictorURL:    "http://127.0.0.1:1/predict",
			UpstreamErrorStatus: 401,
			RentMin:             100,
			RentMax:             200,
			SaleMin:             1000,
			SaleMax:             2000,
		},
		Rooms: config.RoomBounds{Min: 1, Max: 9},
	}
}

func newTestServer(t *testing.T, cfg *config.Config) *httptest.Server {
	t.Helper()
	srv, err := New(cfg, logger.NewNop())
	require.NoError(t, err)

	ts := httptest.NewServer(srv.Handler())
	t.Cleanup(ts.Close)
	return ts
}

func post(t *testing.T, url, body string) *http.Response {
	t.Helper()
	resp, err := http.Post(url, "application/json", strings.NewReader(body))
	require.NoError(t, err)
	t.Cleanup(func() { resp.Body.Close() })
	return resp
}

func readBody(t *testing.T, resp *http.Response) []byte {
	t.Helper()
	b, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	return b
}

func TestLocalEstimates(t *testing.T) {
	ts := newTestServer(t, testConfig(config.ModeLocal))

	resp := post(t, ts.URL+"/estimated-rent", lagosDuplexBody)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	var rent map[string]float64
	require.NoError(t, json.Unmarshal(readBody(t, resp), &rent))
	assert.GreaterOrEqual(t, rent["estimated-rent"], 100.0)
	assert.LessOrEqual(t, rent["estimated-rent"], 200.0)

	resp = post(t, ts.URL+"/estimated-price", lagosDuplexBody)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	var price []map[string]float64
	require.NoError(t, json.Unmarshal(readBody(t, resp), &price))
	require.Len(t, price, 1)
	assert.GreaterOrEqual(t, price[0]["estimated-price"], 1000.0)
	assert.LessOrEqual(t, price[0]["estimated-price"], 2000.0)
}

func TestValidationFailure(t *testing.T) {
	ts := newTestServer(t, testConfig(config.ModeLocal))

	body := `{"location":"Lagos","houseType":"Duplex","bedrooms":12,"bathrooms":2,"toilets":2}`
	resp := post(t, ts.URL+"/estimated-price", body)
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)

	var out model.APIResponse[any]
	require.NoError(t, json.Unmarshal(readBody(t, resp), &out))
	require.NotNil(t, out.Error)
	assert.Equal(t, `"bedrooms" must be less than or equal to 9`, out.Error.Message)
}

func TestRemoteUpstreamUnreachable(t *testing.T) {
	upstream := httptest.NewServer(http.NotFoundHandler())
	url := upstream.URL + "/predict"
	upstream.Close()

	cfg := testConfig(config.ModeRemote)
	cfg.Estimator.RentPredictorURL = url
	cfg.Estimator.SalePredictorURL = url
	ts := newTestServer(t, cfg)

	resp := post(t, ts.URL+"/estimated-rent", lagosDuplexBody)
	assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)

	var out model.APIResponse[any]
	require.NoError(t, json.Unmarshal(readBody(t, resp), &out))
	require.NotNil(t, out.Error)
	assert.Equal(t, handlers.ErrUpstreamFailed.Error(), out.Error.Code)
}

func TestRemoteRelaysUpstreamBody(t *testing.T) {
	upstream := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"estimated-rent": 99}`))
	}))
	t.Cleanup(upstream.Close)

	cfg := testConfig(config.ModeRemote)
	cfg.Estimator.RentPredictorURL = upstream.URL
	ts := newTestServer(t, cfg)

	resp := post(t, ts.URL+"/estimated-rent", lagosDuplexBody)
	assert.Equal(t, http.StatusOK, resp.StatusCode)
	assert.JSONEq(t, `{"estimated-rent": 99}`, string(readBody(t, resp)))
}

func TestHealthDocsAndMetrics(t *testing.T) {
	ts := newTestServer(t, testConfig(config.ModeLocal))

	resp, err := http.Get(ts.URL + "/health")
	require.NoError(t, err)
	defer resp.Body.Close()
	assert.Equal(t, http.StatusOK, resp.StatusCode)

	resp, err = http.Get(ts.URL + "/api-docs")
	require.NoError(t, err)
	defer resp.Body.Close()
	assert.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Equal(t, "application/json", resp.Header.Get("Content-Type"))
	assert.Contains(t, string(readBody(t, resp)), "Union Price API")

	resp, err = http.Get(ts.URL + "/api-docs?format=yaml")
	require.NoError(t, err)
	defer resp.Body.Close()
	assert.Equal(t, "application/yaml", resp.Header.Get("Content-Type"))
	assert.Contains(t, string(readBody(t, resp)), "swagger:")

	resp, err = http.Get(ts.URL + "/metrics")
	require.NoError(t, err)
	defer resp.Body.Close()
	assert.Contains(t, string(readBody(t, resp)), "union_price_http_requests_total")
}

func TestCORSAndRequestID(t *testing.T) {
	ts := newTestServer(t, testConfig(config.ModeLocal))

	req, err := http.NewRequest(http.MethodOptions, ts.URL+"/estimated-rent", nil)
	require.NoError(t, err)
	req.Header.Set("Origin", "https://example.com")
	req.Header.Set("Access-Control-Request-Method", http.MethodPost)
	resp, err := http.DefaultClient.Do(req)
	require.NoError(t, err)
	defer resp.Body.Close()
	assert.Less(t, resp.StatusCode, 300)
	assert.Equal(t, "*", resp.Header.Get("Access-Control-Allow-Origin"))

	req, err = http.NewRequest(http.MethodGet, ts.URL+"/health", nil)
	require.NoError(t, err)
	req.Header.Set(handlers.RequestIDHeader, "trace-1")
	resp, err = http.DefaultClient.Do(req)
	require.NoError(t, err)
	defer resp.Body.Close()
	assert.Equal(t, "trace-1", resp.Header.Get(handlers.RequestIDHeader))
	assert.Equal(t, "*", resp.Header.Get("Access-Control-Allow-Origin"))

	resp, err = http.Get(ts.URL + "/health")
	require.NoError(t, err)
	defer resp.Body.Close()
	assert.NotEmpty(t, resp.Header.Get(handlers.RequestIDHeader))
}

func TestRateLimit(t *testing.T) {
	cfg := testConfig(config.ModeLocal)
	cfg.Server.RateLimit = 0.01
	cfg.Server.RateBurst = 1
	ts := newTestServer(t, cfg)

	resp := post(t, ts.URL+"/estimated-rent", lagosDuplexBody)
	assert.Equal(t, http.StatusOK, resp.StatusCode)

	resp = post(t, ts.URL+"/estimated-rent", lagosDuplexBody)
	assert.Equal(t, http.StatusTooManyRequests, resp.StatusCode)
	assert.Equal(t, "1", resp.Header.Get("Retry-After"))

	// health is outside the limited group
	hr, err := http.Get(ts.URL + "/health")
	require.NoError(t, err)
	defer hr.Body.Close()
	assert.Equal(t, http.StatusOK, hr.StatusCode)
}

func TestUnknownRouteAndMethod(t *testing.T) {
	ts := newTestServer(t, testConfig(config.ModeLocal))

	resp, err := http.Get(ts.URL + "/nope")
	require.NoError(t, err)
	defer resp.Body.Close()
	assert.Equal(t, http.StatusNotFound, resp.StatusCode)
	var out model.APIResponse[any]
	require.NoError(t, json.Unmarshal(readBody(t, resp), &out))
	assert.Equal(t, handlers.ErrNotFound.Error(), out.Error.Code)

	resp, err = http.Get(ts.URL + "/estimated-rent")
	require.NoError(t, err)
	defer resp.Body.Close()
	assert.Equal(t, http.StatusMethodNotAllowed, resp.StatusCode)
}

func TestNewRejectsUnknownMode(t *testing.T) {
	_, err := New(testConfig("magic"), logger.NewNop())
	assert.ErrorIs(t, err, config.ErrInvalidMode)
}

func TestNewWithDependencies(t *testing.T) {
	cfg := testConfig(config.ModeLocal)
	deps, err := dependency.NewDependencies(cfg, logger.NewNop())
	require.NoError(t, err)

	srv := NewWithDependencies(cfg, deps, logger.NewNop())
	assert.Equal(t, "127.0.0.1:0", srv.HTTPServer.Addr)
	assert.NotNil(t, srv.Handler())
}

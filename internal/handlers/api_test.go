package handlers

import (
	"encoding/json"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"os"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"superstore-dashboard/internal/models"
	"superstore-dashboard/internal/services"
)

func testLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{Level: slog.LevelError}))
}

func date(y int, m time.Month, d int) time.Time {
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

func createTestAnalytics() *services.Analytics {
	a := services.NewAnalytics(services.WithLogger(testLogger()))
	a.SetData([]models.Record{
		{
			OrderID: "E-1", OrderDate: date(2023, 1, 5), ShipDate: date(2023, 1, 7),
			Region: "East", State: "New York", City: "Albany",
			Category: "Technology", SubCategory: "Phones", ProductName: "Phone",
			Sales: 100, Quantity: 1, Profit: 10, ShipMode: "First Class",
		},
		{
			OrderID: "W-1", OrderDate: date(2023, 2, 10), ShipDate: date(2023, 2, 14),
			Region: "West", State: "Oregon", City: "Portland",
			Category: "Furniture", SubCategory: "Chairs", ProductName: "Chair",
			Sales: 50, Quantity: 2, Profit: 5, ShipMode: "Standard Class",
		},
	})
	return a
}

type envelope struct {
	Success bool            `json:"success"`
	Data    json.RawMessage `json:"data"`
	Error   *struct {
		Code    string `json:"code"`
		Message string `json:"message"`
	} `json:"error"`
}

func serveView(h http.HandlerFunc, target string) *httptest.ResponseRecorder {
	mux := http.NewServeMux()
	mux.HandleFunc("GET /api/views/{view}", h)

	w := httptest.NewRecorder()
	mux.ServeHTTP(w, httptest.NewRequest(http.MethodGet, target, nil))
	return w
}

func decode(t *testing.T, w *httptest.ResponseRecorder) envelope {
	t.Helper()
	var env envelope
	require.NoError(t, json.NewDecoder(w.Body).Decode(&env))
	return env
}

func TestNewAPIHandlers(t *testing.T) {
	analytics := createTestAnalytics()
	logger := testLogger()

	handlers := NewAPIHandlers(analytics, logger)

	require.NotNil(t, handlers)
	assert.Same(t, analytics, handlers.analytics)
	assert.Same(t, logger, handlers.logger)
}

func TestAPIHandlers_HandleView(t *testing.T) {
	h := NewAPIHandlers(createTestAnalytics(), testLogger())

	w := serveView(h.HandleView, "/api/views/sales?region=All&start=2023-01-01&end=2023-12-31")

	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "application/json", w.Header().Get("Content-Type"))
	assert.Equal(t, cacheControl, w.Header().Get("Cache-Control"))

	env := decode(t, w)
	require.True(t, env.Success)

	var payload models.ViewPayload
	require.NoError(t, json.Unmarshal(env.Data, &payload))
	assert.Equal(t, models.ViewSales, payload.View)
	assert.Equal(t, 150.0, payload.Summary.TotalSales)
	require.Len(t, payload.Charts, 2)
	assert.Equal(t, []models.Point{{Label: "East", Value: 100}, {Label: "West", Value: 50}}, payload.Charts[1].Points)
}

func TestAPIHandlers_HandleView_Filters(t *testing.T) {
	h := NewAPIHandlers(createTestAnalytics(), testLogger())

	tests := []struct {
		name    string
		target  string
		rows    int
		topCity string
	}{
		{"region", "/api/views/overview?region=East", 1, "Albany"},
		{"city", "/api/views/overview?city=Portland", 1, "Portland"},
		{"excluding range", "/api/views/overview?start=2024-01-01&end=2024-12-31", 0, models.NoValue},
		{"reversed range", "/api/views/overview?start=2023-12-31&end=2023-01-01", 0, models.NoValue},
		{"home alias", "/api/views/home", 2, "Albany"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			w := serveView(h.HandleView, tt.target)
			require.Equal(t, http.StatusOK, w.Code)

			var payload models.ViewPayload
			require.NoError(t, json.Unmarshal(decode(t, w).Data, &payload))
			assert.Equal(t, tt.rows, payload.RowCount)
			assert.Equal(t, tt.topCity, payload.Summary.TopCity)
		})
	}
}

func TestAPIHandlers_HandleView_Errors(t *testing.T) {
	tests := []struct {
		name   string
		loaded bool
		target string
		status int
		code   string
	}{
		{"unknown view", true, "/api/views/returns", http.StatusNotFound, "NOT_FOUND"},
		{"bad start date", true, "/api/views/sales?start=yesterday", http.StatusBadRequest, "BAD_REQUEST"},
		{"bad end date", true, "/api/views/sales?end=2023-13-45", http.StatusBadRequest, "BAD_REQUEST"},
		{"not loaded", false, "/api/views/sales", http.StatusServiceUnavailable, "DATA_SOURCE_ERROR"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			analytics := services.NewAnalytics(services.WithLogger(testLogger()))
			if tt.loaded {
				analytics = createTestAnalytics()
			}
			h := NewAPIHandlers(analytics, testLogger())

			w := serveView(h.HandleView, tt.target)
			require.Equal(t, tt.status, w.Code)

			env := decode(t, w)
			assert.False(t, env.Success)
			require.NotNil(t, env.Error)
			assert.Equal(t, tt.code, env.Error.Code)
		})
	}
}

func TestAPIHandlers_HandleOptions(t *testing.T) {
	h := NewAPIHandlers(createTestAnalytics(), testLogger())

	w := httptest.NewRecorder()
	h.HandleOptions(w, httptest.NewRequest(http.MethodGet, "/api/options", nil))

	require.Equal(t, http.StatusOK, w.Code)

	var opts models.FilterOptions
	require.NoError(t, json.Unmarshal(decode(t, w).Data, &opts))
	assert.Equal(t, []string{models.All, "East", "West"}, opts.Regions)
	assert.Equal(t, []string{models.All, "Albany", "Portland"}, opts.Cities)
	assert.True(t, opts.MinDate.Equal(date(2023, 1, 5)))
	assert.True(t, opts.MaxDate.Equal(date(2023, 2, 10)))
}

func TestAPIHandlers_HandleHealth(t *testing.T) {
	tests := []struct {
		name   string
		a      *services.Analytics
		status string
	}{
		{"loaded", createTestAnalytics(), "healthy"},
		{"empty", services.NewAnalytics(services.WithLogger(testLogger())), "degraded"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			h := NewAPIHandlers(tt.a, testLogger())

			w := httptest.NewRecorder()
			h.HandleHealth(w, httptest.NewRequest(http.MethodGet, "/health", nil))
			require.Equal(t, http.StatusOK, w.Code)

			var health map[string]string
			require.NoError(t, json.Unmarshal(decode(t, w).Data, &health))
			assert.Equal(t, tt.status, health["status"])
			assert.NotEmpty(t, health["timestamp"])
		})
	}
}

func TestAPIHandlers_HandleStats(t *testing.T) {
	h := NewAPIHandlers(createTestAnalytics(), testLogger())

	w := httptest.NewRecorder()
	h.HandleStats(w, httptest.NewRequest(http.MethodGet, "/admin/stats", nil))
	require.Equal(t, http.StatusOK, w.Code)

	var stats map[string]any
	require.NoError(t, json.Unmarshal(decode(t, w).Data, &stats))
	assert.EqualValues(t, 2, stats["record_count"])
}

package tests

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"os"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/shoplytics/shoplytics/internal/config"
	"github.com/shoplytics/shoplytics/internal/datastore"
	"github.com/shoplytics/shoplytics/internal/generator"
	"github.com/shoplytics/shoplytics/internal/httpserver"
)

////////////////////////////////////////////////////////////////////////////////
// END-TO-END TEST SUITE
//
// These tests validate the service end-to-end:
//
//   Client → HTTP API → dataset store → metric engine → Response
//
// The pipeline is pure and in-memory, so the suite self-hosts the router
// against a small generated dataset instead of requiring a running service.
////////////////////////////////////////////////////////////////////////////////

func TestMain(m *testing.M) {
	gin.SetMode(gin.TestMode)
	os.Exit(m.Run())
}

func newTestRouter(t *testing.T, apiKey string) *gin.Engine {
	t.Helper()

	cfg := config.Config{
		Addr:           ":0",
		APIKey:         apiKey,
		AllowedOrigins: []string{"*"},
		Generator: generator.Config{
			Seed:     42,
			NumUsers: 60,
			Days:     90,
			End:      time.Date(2024, 7, 1, 0, 0, 0, 0, time.UTC),
			PriceMin: generator.DefaultPriceMin,
			PriceMax: generator.DefaultPriceMax,
		},
	}
	ds, err := generator.Generate(cfg.Generator)
	require.NoError(t, err)

	return httpserver.NewRouter(cfg, datastore.NewStore(ds))
}

func doGet(t *testing.T, router *gin.Engine, path, apiKey string) (int, []byte) {
	t.Helper()

	req, _ := http.NewRequest("GET", path, nil)
	if apiKey != "" {
		req.Header.Set("X-API-Key", apiKey)
	}
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)
	return w.Code, w.Body.Bytes()
}

func decode(t *testing.T, body []byte, out any) {
	t.Helper()
	require.NoError(t, json.Unmarshal(body, out))
}

func TestHealthAndReady(t *testing.T) {
	router := newTestRouter(t, "")

	code, _ := doGet(t, router, "/health", "")
	assert.Equal(t, http.StatusOK, code)

	code, _ = doGet(t, router, "/ready", "")
	assert.Equal(t, http.StatusOK, code)
}

func TestDatasetEndpoints(t *testing.T) {
	router := newTestRouter(t, "")

	code, body := doGet(t, router, "/datasets", "")
	require.Equal(t, http.StatusOK, code)
	var info struct {
		RunID    string `json:"run_id"`
		Users    int    `json:"users"`
		Products int    `json:"products"`
		Events   int    `json:"events"`
	}
	decode(t, body, &info)
	assert.NotEmpty(t, info.RunID)
	assert.Equal(t, 60, info.Users)
	assert.Equal(t, 25, info.Products)
	assert.Greater(t, info.Events, 0)

	code, body = doGet(t, router, "/datasets/users", "")
	require.Equal(t, http.StatusOK, code)
	var users struct {
		Users []struct {
			UserID  string `json:"user_id"`
			Segment string `json:"segment"`
		} `json:"users"`
	}
	decode(t, body, &users)
	assert.Len(t, users.Users, 60)
	assert.Equal(t, "U000001", users.Users[0].UserID)

	code, body = doGet(t, router, "/datasets/events", "")
	require.Equal(t, http.StatusOK, code)
	var events struct {
		Events []struct {
			EventID string `json:"event_id"`
			Type    string `json:"event_type"`
		} `json:"events"`
	}
	decode(t, body, &events)
	require.NotEmpty(t, events.Events)
	assert.Equal(t, "session_start", events.Events[0].Type)
}

func TestMetricEndpoints(t *testing.T) {
	router := newTestRouter(t, "")

	code, body := doGet(t, router, "/metrics/funnel", "")
	require.Equal(t, http.StatusOK, code)
	var funnel struct {
		TotalSessions int     `json:"total_sessions"`
		ViewRate      float64 `json:"view_rate"`
		PurchaseRate  float64 `json:"purchase_rate"`
	}
	decode(t, body, &funnel)
	assert.Greater(t, funnel.TotalSessions, 0)
	assert.GreaterOrEqual(t, funnel.ViewRate, 0.0)
	assert.LessOrEqual(t, funnel.ViewRate, 100.0)
	assert.LessOrEqual(t, funnel.PurchaseRate, 100.0)

	code, body = doGet(t, router, "/metrics/summary", "")
	require.Equal(t, http.StatusOK, code)
	var summary struct {
		TotalUsers   int     `json:"total_users"`
		TotalRevenue float64 `json:"total_revenue"`
	}
	decode(t, body, &summary)
	assert.Greater(t, summary.TotalUsers, 0)

	code, body = doGet(t, router, "/metrics/clusters", "")
	require.Equal(t, http.StatusOK, code)
	var clusters struct {
		Profiles []struct {
			Cluster int    `json:"cluster"`
			Segment string `json:"segment"`
		} `json:"profiles"`
	}
	decode(t, body, &clusters)
	require.NotEmpty(t, clusters.Profiles)
	for _, p := range clusters.Profiles {
		assert.GreaterOrEqual(t, p.Cluster, 0)
		assert.Less(t, p.Cluster, 4)
		assert.NotEmpty(t, p.Segment)
	}

	code, body = doGet(t, router, "/metrics/rfm", "")
	require.Equal(t, http.StatusOK, code)
	var rfm struct {
		Customers []struct {
			Score   int    `json:"rfm_score"`
			Segment string `json:"segment"`
		} `json:"customers"`
	}
	decode(t, body, &rfm)
	for _, r := range rfm.Customers {
		assert.GreaterOrEqual(t, r.Score, 3)
		assert.LessOrEqual(t, r.Score, 15)
		assert.NotEmpty(t, r.Segment)
	}
}

func TestWindowValidation(t *testing.T) {
	router := newTestRouter(t, "")

	code, _ := doGet(t, router, "/metrics/funnel?from=not-a-time", "")
	assert.Equal(t, http.StatusBadRequest, code)

	code, _ = doGet(t, router, "/metrics/funnel?from=2024-07-01T00:00:00Z&to=2024-06-01T00:00:00Z", "")
	assert.Equal(t, http.StatusBadRequest, code)

	// A valid window with no data reports zeroes, not an error.
	code, body := doGet(t, router, "/metrics/funnel?from=2030-01-01T00:00:00Z&to=2030-02-01T00:00:00Z", "")
	require.Equal(t, http.StatusOK, code)
	var funnel struct {
		TotalSessions int     `json:"total_sessions"`
		ViewRate      float64 `json:"view_rate"`
	}
	decode(t, body, &funnel)
	assert.Zero(t, funnel.TotalSessions)
	assert.Zero(t, funnel.ViewRate)
}

func TestAPIKeyGuard(t *testing.T) {
	router := newTestRouter(t, "sekrit")

	// Health stays public.
	code, _ := doGet(t, router, "/health", "")
	assert.Equal(t, http.StatusOK, code)

	code, _ = doGet(t, router, "/metrics/summary", "")
	assert.Equal(t, http.StatusUnauthorized, code)

	code, _ = doGet(t, router, "/metrics/summary", "sekrit")
	assert.Equal(t, http.StatusOK, code)
}

func TestGenerateEndpoint(t *testing.T) {
	router := newTestRouter(t, "")

	payload := map[string]any{"seed": 7, "num_users": 20, "num_days": 30}
	b, _ := json.Marshal(payload)
	req, _ := http.NewRequest("POST", "/generate", bytes.NewReader(b))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)
	require.Equal(t, http.StatusCreated, w.Code)

	var info struct {
		Seed  uint64 `json:"seed"`
		Users int    `json:"users"`
	}
	decode(t, w.Body.Bytes(), &info)
	assert.Equal(t, uint64(7), info.Seed)
	assert.Equal(t, 20, info.Users)

	// The served dataset was swapped.
	code, body := doGet(t, router, "/datasets", "")
	require.Equal(t, http.StatusOK, code)
	decode(t, body, &info)
	assert.Equal(t, 20, info.Users)
}

func TestGenerateRejectsInvalidParams(t *testing.T) {
	router := newTestRouter(t, "")

	b, _ := json.Marshal(map[string]any{"num_users": -1})
	req, _ := http.NewRequest("POST", "/generate", bytes.NewReader(b))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

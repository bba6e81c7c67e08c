package api

import (
	"bytes"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"testing"
	"time"

	"github.com/iulianpascalau/metrics-dashboard/services/dashboard/alerts"
	"github.com/iulianpascalau/metrics-dashboard/services/dashboard/cache"
	"github.com/iulianpascalau/metrics-dashboard/services/dashboard/common"
	"github.com/iulianpascalau/metrics-dashboard/services/dashboard/process"
	"github.com/iulianpascalau/metrics-dashboard/services/dashboard/settings"
	"github.com/iulianpascalau/metrics-dashboard/services/dashboard/storage"
	"github.com/stretchr/testify/require"
)

type errorResponse struct {
	Error  string            `json:"error"`
	Fields map[string]string `json:"fields"`
}

func setupTestServer(t *testing.T, serviceKey string) *server {
	store, err := storage.NewSQLiteStorage(":memory:")
	require.NoError(t, err)
	t.Cleanup(func() {
		_ = store.Close()
	})

	cacher := cache.NewLocalCache()
	metricsProcessor, err := process.NewMetricsProcessor(process.ArgsMetricsProcessor{
		Storage:         store,
		Cacher:          cacher,
		TimeHandler:     time.Now,
		MaxResults:      1000,
		TopGroups:       10,
		MetricsListTTL:  time.Minute,
		SummaryTTL:      time.Minute,
		TypeOverviewTTL: time.Minute,
	})
	require.NoError(t, err)

	dashboardProcessor, err := process.NewDashboardProcessor(process.ArgsDashboardProcessor{
		Storage:     store,
		Cacher:      cacher,
		TimeHandler: time.Now,
		ListTTL:     time.Minute,
	})
	require.NoError(t, err)

	settingsStore, err := settings.NewFileStore(filepath.Join(t.TempDir(), "settings.json"))
	require.NoError(t, err)

	alertsProvider, err := alerts.NewStaticProvider(time.Now)
	require.NoError(t, err)

	serv, err := NewServer(ArgsWebServer{
		ServiceKeyApi:      serviceKey,
		ListenAddress:      ":0",
		MetricsProcessor:   metricsProcessor,
		DashboardProcessor: dashboardProcessor,
		SettingsStore:      settingsStore,
		AlertsProvider:     alertsProvider,
		GeneralHandler:     func(h http.Handler) http.Handler { return h },
	})
	require.NoError(t, err)

	return serv
}

func doRequest(serv *server, method string, url string, body string, headers map[string]string) *httptest.ResponseRecorder {
	var req *http.Request
	if len(body) > 0 {
		req, _ = http.NewRequest(method, url, bytes.NewBufferString(body))
		req.Header.Set("Content-Type", "application/json")
	} else {
		req, _ = http.NewRequest(method, url, nil)
	}
	for key, value := range headers {
		req.Header.Set(key, value)
	}

	w := httptest.NewRecorder()
	serv.router.ServeHTTP(w, req)

	return w
}

func decodeBody(t *testing.T, w *httptest.ResponseRecorder, dest interface{}) {
	err := json.Unmarshal(w.Body.Bytes(), dest)
	require.NoError(t, err, w.Body.String())
}

func TestSaveMetricEndpoint(t *testing.T) {
	serv := setupTestServer(t, "")

	body := `{"serverName":"WEB-01","environment":"Production","metricType":"CPUUsage","metricValue":"75","source":"AgentX","timestamp":"1999-01-01T00:00:00Z","id":77}`
	w := doRequest(serv, http.MethodPost, "/api/metrics", body, nil)
	require.Equal(t, http.StatusCreated, w.Code)
	require.Equal(t, "/api/metrics/1", w.Header().Get("Location"))

	var saved common.MetricRecord
	decodeBody(t, w, &saved)
	require.Equal(t, int64(1), saved.ID)
	require.Equal(t, "WEB-01", saved.ServerName)
	require.Equal(t, "AgentX", saved.Source)
	require.True(t, saved.Timestamp.Year() > 1999)
	require.WithinDuration(t, time.Now(), saved.Timestamp, time.Minute)

	w = doRequest(serv, http.MethodGet, "/api/metrics/1", "", nil)
	require.Equal(t, http.StatusOK, w.Code)
	var fetched common.MetricRecord
	decodeBody(t, w, &fetched)
	require.Equal(t, saved.ID, fetched.ID)
	require.True(t, saved.Timestamp.Equal(fetched.Timestamp))

	w = doRequest(serv, http.MethodGet, "/api/metrics/2", "", nil)
	require.Equal(t, http.StatusNotFound, w.Code)

	w = doRequest(serv, http.MethodGet, "/api/metrics/abc", "", nil)
	require.Equal(t, http.StatusBadRequest, w.Code)
}

func TestSaveMetricValidation(t *testing.T) {
	serv := setupTestServer(t, "")

	w := doRequest(serv, http.MethodPost, "/api/metrics", `{"serverName":"WEB-01","metricValue":""}`, nil)
	require.Equal(t, http.StatusBadRequest, w.Code)

	var resp errorResponse
	decodeBody(t, w, &resp)
	require.Equal(t, "invalid payload", resp.Error)
	require.Equal(t, map[string]string{
		"environment": "is required",
		"metricType":  "is required",
		"metricValue": "is required",
	}, resp.Fields)

	var blankResp errorResponse
	w = doRequest(serv, http.MethodPost, "/api/metrics", `{"serverName":"   ","environment":" ","metricType":"\t","metricValue":" "}`, nil)
	require.Equal(t, http.StatusBadRequest, w.Code)
	decodeBody(t, w, &blankResp)
	require.Equal(t, map[string]string{
		"serverName":  "is required",
		"environment": "is required",
		"metricType":  "is required",
		"metricValue": "is required",
	}, blankResp.Fields)

	w = doRequest(serv, http.MethodPost, "/api/metrics", `{not json`, nil)
	require.Equal(t, http.StatusBadRequest, w.Code)

	// nothing was stored
	w = doRequest(serv, http.MethodGet, "/api/metrics", "", nil)
	require.Equal(t, http.StatusOK, w.Code)
	require.Equal(t, "[]", w.Body.String())
}

func TestSaveMetricServiceKey(t *testing.T) {
	serv := setupTestServer(t, "test-secret")
	body := `{"serverName":"WEB-01","environment":"Production","metricType":"CPUUsage","metricValue":"75"}`

	w := doRequest(serv, http.MethodPost, "/api/metrics", body, nil)
	require.Equal(t, http.StatusUnauthorized, w.Code)

	w = doRequest(serv, http.MethodPost, "/api/metrics", body, map[string]string{apiKeyHeader: "wrong"})
	require.Equal(t, http.StatusUnauthorized, w.Code)

	w = doRequest(serv, http.MethodPost, "/api/metrics", body, map[string]string{apiKeyHeader: "test-secret"})
	require.Equal(t, http.StatusCreated, w.Code)

	// reads are not guarded
	w = doRequest(serv, http.MethodGet, "/api/metrics", "", nil)
	require.Equal(t, http.StatusOK, w.Code)
}

func TestQueryMetricsEndpoint(t *testing.T) {
	serv := setupTestServer(t, "")

	inputs := []string{
		`{"serverName":"PROD-WEB-01","environment":"Production","metricType":"CPUUsage","metricValue":"10"}`,
		`{"serverName":"DEV-DB-01","environment":"Development","metricType":"MemoryUsage","metricValue":"20"}`,
		`{"serverName":"PROD-WEB-02","environment":"Production","metricType":"MemoryUsage","metricValue":"30"}`,
	}
	for _, input := range inputs {
		w := doRequest(serv, http.MethodPost, "/api/metrics", input, nil)
		require.Equal(t, http.StatusCreated, w.Code)
	}

	var records []common.MetricRecord
	w := doRequest(serv, http.MethodGet, "/api/metrics", "", nil)
	require.Equal(t, http.StatusOK, w.Code)
	decodeBody(t, w, &records)
	require.Len(t, records, 3)
	require.Equal(t, int64(3), records[0].ID)

	w = doRequest(serv, http.MethodGet, "/api/metrics?serverName=WEB&metricType=Memory", "", nil)
	require.Equal(t, http.StatusOK, w.Code)
	decodeBody(t, w, &records)
	require.Len(t, records, 1)
	require.Equal(t, "PROD-WEB-02", records[0].ServerName)

	w = doRequest(serv, http.MethodGet, "/api/metrics?environment=Production&startDate=2000-01-01T00:00:00&endDate=2999-01-01T00:00:00Z", "", nil)
	require.Equal(t, http.StatusOK, w.Code)
	decodeBody(t, w, &records)
	require.Len(t, records, 2)

	w = doRequest(serv, http.MethodGet, "/api/metrics?startDate=yesterday", "", nil)
	require.Equal(t, http.StatusBadRequest, w.Code)
}

func TestAggregateEndpoints(t *testing.T) {
	serv := setupTestServer(t, "")

	var summary common.MetricsSummary
	w := doRequest(serv, http.MethodGet, "/api/metrics/summary", "", nil)
	require.Equal(t, http.StatusOK, w.Code)
	decodeBody(t, w, &summary)
	require.Equal(t, int64(0), summary.TotalMetrics)
	require.Nil(t, summary.LastMetricTime)

	inputs := []string{
		`{"serverName":"WEB-01","environment":"Production","metricType":"CPUUsage","metricValue":"75"}`,
		`{"serverName":"WEB-01","environment":"Production","metricType":"MemoryUsage","metricValue":"512"}`,
		`{"serverName":"DB-01","environment":"QA","metricType":"CPUUsage","metricValue":"12"}`,
	}
	for _, input := range inputs {
		w = doRequest(serv, http.MethodPost, "/api/metrics", input, nil)
		require.Equal(t, http.StatusCreated, w.Code)
	}

	w = doRequest(serv, http.MethodGet, "/api/metrics/summary", "", nil)
	require.Equal(t, http.StatusOK, w.Code)
	decodeBody(t, w, &summary)
	require.Equal(t, int64(3), summary.TotalMetrics)
	require.Equal(t, int64(2), summary.UniqueServers)
	require.Equal(t, int64(2), summary.UniqueMetricTypes)
	require.NotNil(t, summary.LastMetricTime)

	for _, route := range []string{"/api/metrics/overview", "/api/metrics/breakdown"} {
		var overview []common.MetricTypeOverview
		w = doRequest(serv, http.MethodGet, route, "", nil)
		require.Equal(t, http.StatusOK, w.Code)
		decodeBody(t, w, &overview)
		require.Len(t, overview, 2)
		require.Equal(t, "CPUUsage", overview[0].MetricType)
		require.Equal(t, int64(2), overview[0].Quantity)
	}

	var distribution []common.DistributionItem
	w = doRequest(serv, http.MethodGet, "/api/metrics/distribution/environment", "", nil)
	require.Equal(t, http.StatusOK, w.Code)
	decodeBody(t, w, &distribution)
	require.Equal(t, []common.DistributionItem{{Name: "Production", Count: 2}, {Name: "QA", Count: 1}}, distribution)

	w = doRequest(serv, http.MethodGet, "/api/metrics/distribution/server", "", nil)
	require.Equal(t, http.StatusOK, w.Code)
	decodeBody(t, w, &distribution)
	require.Equal(t, "WEB-01", distribution[0].Name)

	w = doRequest(serv, http.MethodGet, "/api/metrics/distribution/color", "", nil)
	require.Equal(t, http.StatusBadRequest, w.Code)
}

func TestAlertsEndpoints(t *testing.T) {
	serv := setupTestServer(t, "")

	var summary common.AlertSummary
	w := doRequest(serv, http.MethodGet, "/api/metrics/alerts/summary", "", nil)
	require.Equal(t, http.StatusOK, w.Code)
	decodeBody(t, w, &summary)
	require.Equal(t, 2, summary.ActiveAlerts)

	var recent []common.Alert
	w = doRequest(serv, http.MethodGet, "/api/metrics/recent-alerts", "", nil)
	require.Equal(t, http.StatusOK, w.Code)
	decodeBody(t, w, &recent)
	require.Len(t, recent, 2)
}

func TestDashboardEndpoints(t *testing.T) {
	serv := setupTestServer(t, "")

	var cfg common.DashboardConfig
	w := doRequest(serv, http.MethodGet, "/api/dashboard/configs/default", "", nil)
	require.Equal(t, http.StatusOK, w.Code)
	decodeBody(t, w, &cfg)
	require.Equal(t, int64(0), cfg.ID)
	require.Equal(t, "Default Dashboard", cfg.Name)

	w = doRequest(serv, http.MethodPost, "/api/dashboard/configs", `{"name":"Ops","layout":"2x2","widgets":"[]","isDefault":true}`, nil)
	require.Equal(t, http.StatusCreated, w.Code)
	require.Equal(t, "/api/dashboard/configs/1", w.Header().Get("Location"))
	decodeBody(t, w, &cfg)
	require.Equal(t, "{}", cfg.Settings)

	w = doRequest(serv, http.MethodPost, "/api/dashboard/configs", `{"name":"Dev","layout":"1x1","widgets":"[{\"id\":\"w\"}]","settings":"{\"theme\":\"dark\"}","isDefault":true}`, nil)
	require.Equal(t, http.StatusCreated, w.Code)

	w = doRequest(serv, http.MethodGet, "/api/dashboard/configs/1", "", nil)
	require.Equal(t, http.StatusOK, w.Code)
	decodeBody(t, w, &cfg)
	require.False(t, cfg.IsDefault)

	w = doRequest(serv, http.MethodGet, "/api/dashboard/configs/default", "", nil)
	require.Equal(t, http.StatusOK, w.Code)
	decodeBody(t, w, &cfg)
	require.Equal(t, int64(2), cfg.ID)

	var resp errorResponse
	w = doRequest(serv, http.MethodDelete, "/api/dashboard/configs/2", "", nil)
	require.Equal(t, http.StatusBadRequest, w.Code)
	decodeBody(t, w, &resp)
	require.Equal(t, common.ErrDefaultDashboardDeletion.Error(), resp.Error)

	w = doRequest(serv, http.MethodPut, "/api/dashboard/configs/1", `{"name":"Ops v2","layout":"2x2","widgets":"{}"}`, nil)
	require.Equal(t, http.StatusBadRequest, w.Code)
	decodeBody(t, w, &resp)
	require.Equal(t, "must be a JSON array", resp.Fields["widgets"])

	w = doRequest(serv, http.MethodPut, "/api/dashboard/configs/1", `{"name":"Ops v2","layout":"2x2","widgets":"[]"}`, nil)
	require.Equal(t, http.StatusOK, w.Code)
	decodeBody(t, w, &cfg)
	require.Equal(t, "Ops v2", cfg.Name)

	w = doRequest(serv, http.MethodPut, "/api/dashboard/configs/9", `{"name":"Ops v2","layout":"2x2","widgets":"[]"}`, nil)
	require.Equal(t, http.StatusNotFound, w.Code)

	w = doRequest(serv, http.MethodPost, "/api/dashboard/configs/1/set-default", "", nil)
	require.Equal(t, http.StatusOK, w.Code)

	var configs []common.DashboardConfig
	w = doRequest(serv, http.MethodGet, "/api/dashboard/configs", "", nil)
	require.Equal(t, http.StatusOK, w.Code)
	decodeBody(t, w, &configs)
	require.Len(t, configs, 2)
	require.Equal(t, int64(1), configs[0].ID)
	require.True(t, configs[0].IsDefault)
	require.False(t, configs[1].IsDefault)

	w = doRequest(serv, http.MethodDelete, "/api/dashboard/configs/2", "", nil)
	require.Equal(t, http.StatusNoContent, w.Code)

	w = doRequest(serv, http.MethodDelete, "/api/dashboard/configs/2", "", nil)
	require.Equal(t, http.StatusNotFound, w.Code)

	w = doRequest(serv, http.MethodGet, "/api/dashboard/configs/x", "", nil)
	require.Equal(t, http.StatusBadRequest, w.Code)
}

func TestDashboardValidation(t *testing.T) {
	serv := setupTestServer(t, "")

	longName := fmt.Sprintf("%0101d", 0)
	w := doRequest(serv, http.MethodPost, "/api/dashboard/configs", `{"name":"`+longName+`","widgets":"[]","settings":"[]"}`, nil)
	require.Equal(t, http.StatusBadRequest, w.Code)

	var resp errorResponse
	decodeBody(t, w, &resp)
	require.Equal(t, "must be at most 100 characters long", resp.Fields["name"])
	require.Equal(t, "is required", resp.Fields["layout"])

	var settingsResp errorResponse
	w = doRequest(serv, http.MethodPost, "/api/dashboard/configs", `{"name":"n","layout":"1x1","widgets":"[]","settings":"[]"}`, nil)
	require.Equal(t, http.StatusBadRequest, w.Code)
	decodeBody(t, w, &settingsResp)
	require.Equal(t, map[string]string{"settings": "must be a JSON object"}, settingsResp.Fields)

	var blankResp errorResponse
	w = doRequest(serv, http.MethodPost, "/api/dashboard/configs", `{"name":"  ","layout":" ","widgets":"[]"}`, nil)
	require.Equal(t, http.StatusBadRequest, w.Code)
	decodeBody(t, w, &blankResp)
	require.Equal(t, map[string]string{"name": "is required", "layout": "is required"}, blankResp.Fields)

	var configs []common.DashboardConfig
	w = doRequest(serv, http.MethodGet, "/api/dashboard/configs", "", nil)
	decodeBody(t, w, &configs)
	require.Empty(t, configs)
}

func TestSettingsEndpoints(t *testing.T) {
	serv := setupTestServer(t, "")

	var loaded common.ApplicationSettings
	w := doRequest(serv, http.MethodGet, "/api/settings", "", nil)
	require.Equal(t, http.StatusOK, w.Code)
	decodeBody(t, w, &loaded)
	require.Equal(t, common.DefaultApplicationSettings(), loaded)

	w = doRequest(serv, http.MethodPost, "/api/settings", `{"themeSelection":"Dark","refreshInterval":30}`, nil)
	require.Equal(t, http.StatusOK, w.Code)
	require.Contains(t, w.Body.String(), "Settings updated successfully.")

	w = doRequest(serv, http.MethodGet, "/api/settings", "", nil)
	require.Equal(t, http.StatusOK, w.Code)
	decodeBody(t, w, &loaded)
	expected := common.DefaultApplicationSettings()
	expected.ThemeSelection = "Dark"
	expected.RefreshInterval = 30
	require.Equal(t, expected, loaded)

	for _, body := range []string{"", "null", "[]"} {
		w = doRequest(serv, http.MethodPost, "/api/settings", body, nil)
		require.Equal(t, http.StatusBadRequest, w.Code, body)
	}

	var resp errorResponse
	w = doRequest(serv, http.MethodPost, "/api/settings", `{"cpuThreshold":-5}`, nil)
	require.Equal(t, http.StatusBadRequest, w.Code)
	decodeBody(t, w, &resp)
	require.Equal(t, "must be at least 0", resp.Fields["cpuThreshold"])

	w = doRequest(serv, http.MethodGet, "/api/settings", "", nil)
	decodeBody(t, w, &loaded)
	require.Equal(t, expected, loaded)
}

func TestHealthAndUnknownRoutes(t *testing.T) {
	serv := setupTestServer(t, "")

	w := doRequest(serv, http.MethodGet, "/api/health", "", nil)
	require.Equal(t, http.StatusOK, w.Code)
	require.JSONEq(t, `{"status":"ok"}`, w.Body.String())

	w = doRequest(serv, http.MethodGet, "/api/unknown", "", nil)
	require.Equal(t, http.StatusNotFound, w.Code)

	w = doRequest(serv, http.MethodGet, "/dashboard", "", nil)
	require.Equal(t, http.StatusNotFound, w.Code)
}

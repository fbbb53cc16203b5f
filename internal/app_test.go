package internal

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"posterd/internal/catalog"
	"posterd/internal/controllers"
	"posterd/internal/gateway"
	"posterd/internal/ledger"
	"posterd/internal/models"
	"posterd/internal/providers"
	"posterd/internal/services"
	"posterd/internal/structures"
	"posterd/internal/testutil"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type stack struct {
	ledger  ledger.LedgerInterface
	service services.PosterServiceInterface
	cache   providers.CacheProviderInterface
	api     *controllers.ApiController
	health  *controllers.HealthController
}

// mockProviderConfig mirrors .env.example: placeholder credentials, so every
// render takes the mock path.
func mockProviderConfig() *structures.Config {
	return &structures.Config{
		AppName:   "PosterDaemon",
		WebServer: structures.Server{Host: "127.0.0.1", Port: 8000},
		Logger:    structures.LoggerConfig{Level: "debug", Mode: 0644, Dir: "/tmp"},
		Provider: structures.ProviderConfig{
			Endpoint:     "http://127.0.0.1:1/v1/render",
			Timeout:      2 * time.Second,
			PrimaryKey:   catalog.PlaceholderKeyMarker,
			SecondaryKey: catalog.PlaceholderKeyMarker,
			TemplateIDs: structures.TemplateIDs{
				V0: catalog.PlaceholderTemplateMarker,
				V1: catalog.PlaceholderTemplateMarker,
				V2: catalog.PlaceholderTemplateMarker,
				V3: catalog.PlaceholderTemplateMarker,
			},
		},
		Cache: structures.CacheConfig{Enabled: true, Size: 1, TTL: time.Minute},
	}
}

func liveProviderConfig(endpoint string) *structures.Config {
	conf := mockProviderConfig()
	conf.Provider.Endpoint = endpoint
	conf.Provider.PrimaryKey = "primary-key"
	conf.Provider.SecondaryKey = "secondary-key"
	conf.Provider.TemplateIDs = structures.TemplateIDs{V0: "tpl-0", V1: "tpl-1", V2: "tpl-2", V3: "tpl-3"}
	return conf
}

func newStackWithLogger(conf *structures.Config, logger providers.Logger) *stack {
	store := ledger.NewLedger()
	metrics := providers.NewMetricsProvider(conf, store)
	cache := providers.NewInstrumentedCacheProvider(conf, logger, metrics)
	cat := catalog.NewCatalog(conf, logger)
	gw := gateway.NewGateway(conf, cat, logger, metrics)
	svc := services.NewPosterService(gw, cat, store, cache, logger)
	return &stack{
		ledger:  store,
		service: svc,
		cache:   cache,
		api:     controllers.NewApiController(logger, svc, cache),
		health:  controllers.NewHealthController(svc, conf, cat),
	}
}

func newStack(conf *structures.Config) *stack {
	return newStackWithLogger(conf, &testutil.MockLogger{})
}

// newTestServer assembles the application the way InitApp does, with the log
// files placed in a temporary directory.
func newTestServer(t *testing.T, conf *structures.Config) (*httptest.Server, *stack) {
	t.Helper()
	conf.Logger.Dir = t.TempDir()

	logger, err := providers.NewLogProvider(conf)
	require.NoError(t, err)

	s := newStackWithLogger(conf, logger)
	metrics := providers.NewMetricsProvider(conf, s.ledger)
	app := NewApp(s.health, conf, logger, InitRoutes(s.api), metrics)

	srv := httptest.NewServer(app.WebServer.Handler)
	t.Cleanup(func() {
		srv.Close()
		app.Close()
	})
	return srv, s
}

func postGenerate(t *testing.T, srv *httptest.Server, body string) *http.Response {
	t.Helper()
	resp, err := http.Post(srv.URL+"/generate-template/", "application/json", bytes.NewBufferString(body))
	require.NoError(t, err)
	t.Cleanup(func() { _ = resp.Body.Close() })
	return resp
}

func getURLs(t *testing.T, srv *httptest.Server, userID string) *http.Response {
	t.Helper()
	resp, err := http.Get(srv.URL + "/get-template-urls/?userId=" + userID)
	require.NoError(t, err)
	t.Cleanup(func() { _ = resp.Body.Close() })
	return resp
}

func TestApp_GenerateThenList_MockMode(t *testing.T) {
	srv, s := newTestServer(t, mockProviderConfig())

	resp := postGenerate(t, srv, `{"templateVersion":1,"userId":"bob","parameters":{}}`)
	require.Equal(t, http.StatusOK, resp.StatusCode)

	var gen models.GenerateResponse
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&gen))
	assert.Equal(t, models.GenerateResponse{
		Status:          "success",
		UserID:          "bob",
		TemplateVersion: 1,
		GeneratedURL:    "https://example.com/poster-preview.jpg",
	}, gen)

	resp = getURLs(t, srv, "bob")
	require.Equal(t, http.StatusOK, resp.StatusCode)

	var list models.UserURLsResponse
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&list))
	assert.Equal(t, "bob", list.UserID)
	assert.Equal(t, []string{"https://example.com/poster-preview.jpg"}, list.GeneratedURLs)

	// a second generation must not be hidden behind the cached list
	resp = postGenerate(t, srv, `{"templateVersion":3,"userId":"bob","parameters":{}}`)
	require.Equal(t, http.StatusOK, resp.StatusCode)

	resp = getURLs(t, srv, "bob")
	list = models.UserURLsResponse{}
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&list))
	assert.Len(t, list.GeneratedURLs, 2)
	assert.Equal(t, 1, s.service.Users())
}

// appendingService lets one generation land after a list has been read and
// before the controller caches it.
type appendingService struct {
	services.PosterServiceInterface
	once sync.Once
	t    *testing.T
}

func (s *appendingService) ListURLs(userID string) ([]string, error) {
	urls, err := s.PosterServiceInterface.ListURLs(userID)
	s.once.Do(func() {
		_, genErr := s.Generate(context.Background(), &models.GenerateRequest{
			TemplateVersion: 2,
			UserID:          userID,
			Parameters:      map[string]any{},
		})
		require.NoError(s.t, genErr)
	})
	return urls, err
}

func TestApp_AppendDuringListIsVisibleNextRead(t *testing.T) {
	s := newStack(mockProviderConfig())
	_, err := s.service.Generate(context.Background(), &models.GenerateRequest{TemplateVersion: 1, UserID: "bob", Parameters: map[string]any{}})
	require.NoError(t, err)

	api := controllers.NewApiController(&testutil.MockLogger{}, &appendingService{PosterServiceInterface: s.service, t: t}, s.cache)
	list := func() []string {
		rr := httptest.NewRecorder()
		api.GetTemplateURLs(rr, httptest.NewRequest(http.MethodGet, "/get-template-urls/?userId=bob", nil))
		require.Equal(t, http.StatusOK, rr.Code)
		var resp models.UserURLsResponse
		require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &resp))
		return resp.GeneratedURLs
	}

	assert.Len(t, list(), 1)
	assert.Equal(t, 2, s.service.URLCount("bob"))
	assert.Len(t, list(), 2)
	assert.Len(t, list(), 2)
}

func TestApp_EmptyUserID(t *testing.T) {
	srv, _ := newTestServer(t, mockProviderConfig())

	resp := getURLs(t, srv, "")
	assert.Equal(t, http.StatusNotFound, resp.StatusCode)

	resp = postGenerate(t, srv, `{"templateVersion":1,"userId":"","parameters":{}}`)
	require.Equal(t, http.StatusOK, resp.StatusCode)

	resp = getURLs(t, srv, "")
	require.Equal(t, http.StatusOK, resp.StatusCode)
	var list models.UserURLsResponse
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&list))
	assert.Equal(t, "", list.UserID)
	assert.Len(t, list.GeneratedURLs, 1)
}

func TestApp_MissingParametersIs422(t *testing.T) {
	srv, s := newTestServer(t, mockProviderConfig())

	resp := postGenerate(t, srv, `{"templateVersion":1,"userId":"bob"}`)
	assert.Equal(t, http.StatusUnprocessableEntity, resp.StatusCode)
	assert.Zero(t, s.service.Users())
}

func TestApp_UnknownUserIs404(t *testing.T) {
	srv, _ := newTestServer(t, mockProviderConfig())

	resp := getURLs(t, srv, "ghost")
	assert.Equal(t, http.StatusNotFound, resp.StatusCode)

	var detail models.ErrorResponse
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&detail))
	assert.Equal(t, "No templates found for given user ID", detail.Detail)
}

func TestApp_InvalidVersionIs422(t *testing.T) {
	srv, s := newTestServer(t, mockProviderConfig())

	resp := postGenerate(t, srv, `{"templateVersion":7,"userId":"bob","parameters":{}}`)
	assert.Equal(t, http.StatusUnprocessableEntity, resp.StatusCode)
	assert.Zero(t, s.service.Users())
}

func TestApp_LiveUpstreamFailure(t *testing.T) {
	var calls atomic.Int32
	provider := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		calls.Add(1)
		assert.Equal(t, "Bearer primary-key", r.Header.Get("Authorization"))
		w.WriteHeader(http.StatusServiceUnavailable)
		_, _ = w.Write([]byte(`{"error":"maintenance"}`))
	}))
	defer provider.Close()

	srv, _ := newTestServer(t, liveProviderConfig(provider.URL))

	resp := postGenerate(t, srv, `{"templateVersion":2,"userId":"carol","parameters":{"price":{"text":"$1"}}}`)
	assert.Equal(t, http.StatusInternalServerError, resp.StatusCode)

	var detail models.ErrorResponse
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&detail))
	assert.Contains(t, detail.Detail, "503")
	assert.Equal(t, int32(1), calls.Load())

	resp = getURLs(t, srv, "carol")
	assert.Equal(t, http.StatusNotFound, resp.StatusCode)
}

func TestApp_LiveSuccess(t *testing.T) {
	provider := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		var body map[string]any
		assert.NoError(t, json.NewDecoder(r.Body).Decode(&body))
		assert.Equal(t, "tpl-0", body["template"])
		assert.Equal(t, "Bearer secondary-key", r.Header.Get("Authorization"))
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"id":"r1","status":"COMPLETED","url":"https://cdn.example.com/r1.jpg"}`))
	}))
	defer provider.Close()

	srv, s := newTestServer(t, liveProviderConfig(provider.URL))

	// version 0 is reachable through the service only; the API accepts 1-3
	_, err := s.service.Generate(t.Context(), &models.GenerateRequest{TemplateVersion: 0, UserID: "dave"})
	require.NoError(t, err)

	resp := getURLs(t, srv, "dave")
	require.Equal(t, http.StatusOK, resp.StatusCode)

	var list models.UserURLsResponse
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&list))
	assert.Equal(t, []string{"https://cdn.example.com/r1.jpg"}, list.GeneratedURLs)
}

func TestApp_Templates(t *testing.T) {
	srv, _ := newTestServer(t, mockProviderConfig())

	resp, err := http.Get(srv.URL + "/templates/")
	require.NoError(t, err)
	defer resp.Body.Close()
	require.Equal(t, http.StatusOK, resp.StatusCode)

	var infos []models.TemplateInfo
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&infos))
	assert.Len(t, infos, 4)
}

func TestApp_Health(t *testing.T) {
	srv, _ := newTestServer(t, mockProviderConfig())

	resp, err := http.Get(srv.URL + "/health")
	require.NoError(t, err)
	defer resp.Body.Close()

	assert.Equal(t, http.StatusOK, resp.StatusCode)
	var body map[string]any
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&body))
	assert.Equal(t, "ok", body["status"])
}

func TestApp_MetricsRouteDisabled(t *testing.T) {
	srv, _ := newTestServer(t, mockProviderConfig())

	resp, err := http.Get(srv.URL + "/metrics")
	require.NoError(t, err)
	defer resp.Body.Close()

	assert.Equal(t, http.StatusNotFound, resp.StatusCode)
}

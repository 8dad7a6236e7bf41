package handler

import (
	"bytes"
	"encoding/json"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/AnTengye/saasledger/config"
	"github.com/AnTengye/saasledger/middleware"
	"github.com/AnTengye/saasledger/pkg/ledger"
	"github.com/AnTengye/saasledger/pkg/metrics"
	"github.com/AnTengye/saasledger/service"
)

func init() {
	gin.SetMode(gin.TestMode)
}

var testNow = time.Date(2026, 10, 16, 15, 30, 0, 0, time.UTC)

type testServer struct {
	router  *gin.Engine
	store   *service.RecordStore
	metrics *metrics.Metrics
}

func newTestServer(t *testing.T, maxApps int) *testServer {
	t.Helper()

	catalog, err := service.LoadCatalog("")
	if err != nil {
		t.Fatalf("Failed to load catalog: %v", err)
	}
	store := service.NewRecordStore(&config.StoreConfig{MaxApps: maxApps})
	m := metrics.New()

	apps := NewAppHandler(catalog)
	selections := NewSelectionHandler(store, catalog, m)
	contracts := NewContractHandler(store)
	records := NewRecordHandler(store, m)
	ledgerHandler := NewLedgerHandler(store, m, ledger.SortNameAsc)
	ledgerHandler.now = func() time.Time { return testNow }

	router := gin.New()
	api := router.Group("/api", middleware.Company())
	api.GET("/apps", apps.List)
	api.POST("/apps/parse", apps.Parse)
	api.GET("/selections", selections.List)
	api.POST("/selections", selections.Select)
	api.DELETE("/selections/:appId", selections.Remove)
	api.PUT("/contracts/:appId", contracts.Update)
	api.POST("/contracts/:appId/services", contracts.AddService)
	api.PUT("/contracts/:appId/services/:serviceId", contracts.UpdateService)
	api.DELETE("/contracts/:appId/services/:serviceId", contracts.RemoveService)
	api.GET("/records", records.Export)
	api.POST("/records/import", records.Import)
	api.GET("/ledger", ledgerHandler.Get)
	api.GET("/ledger/policies", ledgerHandler.Policies)

	return &testServer{router: router, store: store, metrics: m}
}

// do sends a request as company acme and returns the recorder.
func (s *testServer) do(method, path string, body any) *httptest.ResponseRecorder {
	var reader *bytes.Reader
	switch b := body.(type) {
	case nil:
		reader = bytes.NewReader(nil)
	case string:
		reader = bytes.NewReader([]byte(b))
	default:
		raw, _ := json.Marshal(b)
		reader = bytes.NewReader(raw)
	}

	req := httptest.NewRequest(method, path, reader)
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set(middleware.CompanyHeader, "acme")
	w := httptest.NewRecorder()
	s.router.ServeHTTP(w, req)
	return w
}

func decode[T any](t *testing.T, w *httptest.ResponseRecorder) T {
	t.Helper()
	var v T
	if err := json.Unmarshal(w.Body.Bytes(), &v); err != nil {
		t.Fatalf("Failed to parse response %q: %v", w.Body.String(), err)
	}
	return v
}

func expectStatus(t *testing.T, w *httptest.ResponseRecorder, want int) {
	t.Helper()
	if w.Code != want {
		t.Fatalf("Expected status %d, got %d: %s", want, w.Code, w.Body.String())
	}
}

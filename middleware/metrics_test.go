package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/testutil"

	"github.com/AnTengye/saasledger/pkg/metrics"
)

func TestMetricsMiddleware(t *testing.T) {
	m := metrics.New()
	router := gin.New()
	router.Use(Metrics(m))
	router.DELETE("/api/selections/:appId", func(c *gin.Context) {
		c.Status(http.StatusNoContent)
	})

	for _, id := range []string{"slack", "zoom"} {
		w := httptest.NewRecorder()
		router.ServeHTTP(w, httptest.NewRequest(http.MethodDelete, "/api/selections/"+id, nil))
	}
	w := httptest.NewRecorder()
	router.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/nowhere", nil))

	got := testutil.ToFloat64(m.HTTPRequestsTotal.WithLabelValues("DELETE", "/api/selections/:appId", "204"))
	if got != 2 {
		t.Errorf("Expected 2 requests counted under the route template, got %v", got)
	}
	got = testutil.ToFloat64(m.HTTPRequestsTotal.WithLabelValues("GET", "unmatched", "404"))
	if got != 1 {
		t.Errorf("Expected unmatched request counted once, got %v", got)
	}
}

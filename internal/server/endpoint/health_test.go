package endpoint

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"
)

func getEndpoint(handler gin.HandlerFunc, path string) *httptest.ResponseRecorder {
	router := gin.New()
	router.GET(path, handler)
	w := httptest.NewRecorder()
	router.ServeHTTP(w, httptest.NewRequest(http.MethodGet, path, nil))
	return w
}

func TestHealthAllComponentsHealthy(t *testing.T) {
	checker := func(_ context.Context) []ComponentHealth {
		return []ComponentHealth{
			{Name: "storage", Healthy: true},
			{Name: "transcription", Healthy: true},
		}
	}
	w := getEndpoint(Health("insightd", checker), "/health")
	if w.Code != http.StatusOK {
		t.Errorf("status = %d, want 200", w.Code)
	}
	if !strings.Contains(w.Body.String(), `"status":"healthy"`) {
		t.Errorf("body = %s, want healthy", w.Body.String())
	}
}

func TestHealthUnhealthyComponent(t *testing.T) {
	checker := func(_ context.Context) []ComponentHealth {
		return []ComponentHealth{
			{Name: "storage", Healthy: true},
			{Name: "transcription", Healthy: false},
		}
	}
	w := getEndpoint(Health("insightd", checker), "/health")
	if w.Code != http.StatusServiceUnavailable {
		t.Errorf("status = %d, want 503", w.Code)
	}
	if !strings.Contains(w.Body.String(), `"status":"unhealthy"`) {
		t.Errorf("body = %s, want unhealthy", w.Body.String())
	}
}

func TestHealthNilChecker(t *testing.T) {
	w := getEndpoint(Health("insightd", nil), "/health")
	if w.Code != http.StatusOK {
		t.Errorf("status = %d, want 200", w.Code)
	}
}

func TestInfoReportsService(t *testing.T) {
	w := getEndpoint(Info("insightd"), "/info")
	if w.Code != http.StatusOK {
		t.Errorf("status = %d, want 200", w.Code)
	}
	if !strings.Contains(w.Body.String(), `"service":"insightd"`) {
		t.Errorf("body = %s, want service name", w.Body.String())
	}
}

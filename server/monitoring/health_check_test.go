package monitoring

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func ok(context.Context) error   { return nil }
func fail(context.Context) error { return errors.New("database is locked") }

func TestHealthCheckerStatus(t *testing.T) {
	tests := []struct {
		name     string
		register func(hc *HealthChecker)
		want     HealthStatus
	}{
		{
			name:     "no components",
			register: func(*HealthChecker) {},
			want:     HealthStatusHealthy,
		},
		{
			name: "all healthy",
			register: func(hc *HealthChecker) {
				hc.RegisterComponent("journal", false, ok)
			},
			want: HealthStatusHealthy,
		},
		{
			name: "optional component down",
			register: func(hc *HealthChecker) {
				hc.RegisterComponent("journal", false, fail)
			},
			want: HealthStatusDegraded,
		},
		{
			name: "critical component down",
			register: func(hc *HealthChecker) {
				hc.RegisterComponent("journal", false, fail)
				hc.RegisterComponent("renderer", true, fail)
			},
			want: HealthStatusUnhealthy,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			hc := NewHealthChecker("test")
			tt.register(hc)

			result := hc.Check(context.Background())
			assert.Equal(t, tt.want, result.Status)
			assert.Equal(t, "test", result.Version)
		})
	}
}

func TestHealthCheckerComponentMessage(t *testing.T) {
	hc := NewHealthChecker("test")
	hc.RegisterComponent("journal", false, fail)

	result := hc.Check(context.Background())
	require.Contains(t, result.Components, "journal")
	assert.Equal(t, HealthStatusDegraded, result.Components["journal"].Status)
	assert.Contains(t, result.Components["journal"].Message, "database is locked")
}

func TestHealthGinHandler(t *testing.T) {
	gin.SetMode(gin.TestMode)

	hc := NewHealthChecker("test")
	hc.RegisterComponent("journal", false, fail)

	router := gin.New()
	router.GET("/health", hc.GinHandler())
	router.GET("/health/live", hc.LivenessHandler())

	w := httptest.NewRecorder()
	router.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/health", nil))
	assert.Equal(t, http.StatusOK, w.Code)

	var result HealthCheckResult
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &result))
	assert.Equal(t, HealthStatusDegraded, result.Status)

	hc.RegisterComponent("core", true, fail)
	w = httptest.NewRecorder()
	router.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/health", nil))
	assert.Equal(t, http.StatusServiceUnavailable, w.Code)

	w = httptest.NewRecorder()
	router.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/health/live", nil))
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "OK", w.Body.String())
}

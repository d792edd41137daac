package system

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"

	apperrors "procesos/server/errors"
	"procesos/server/middleware"
)

func TestErrorMetricsHandlers(t *testing.T) {
	gin.SetMode(gin.TestMode)
	middleware.InitErrorMetrics()
	middleware.GetErrorMetrics().RecordError(apperrors.NewValidationError("bad", nil), "/liquidacion/procesar", "req-1")

	h := NewErrorMetricsHandler()
	router := gin.New()
	router.GET("/metrics", h.HandleErrorMetrics)
	router.POST("/metrics/reset", h.HandleResetErrorMetrics)

	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/metrics", nil))
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), `"total_errors":1`)
	assert.Contains(t, rec.Body.String(), "/liquidacion/procesar")

	rec = httptest.NewRecorder()
	router.ServeHTTP(rec, httptest.NewRequest(http.MethodPost, "/metrics/reset", nil))
	assert.Equal(t, http.StatusNoContent, rec.Code)
	assert.Zero(t, middleware.GetErrorMetrics().Snapshot().TotalErrors)
}

package middleware

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	apperrors "procesos/server/errors"
)

func newTestRouter(handlers ...gin.HandlerFunc) *gin.Engine {
	gin.SetMode(gin.TestMode)
	router := gin.New()
	router.Use(handlers...)
	return router
}

func TestRequestIDContext(t *testing.T) {
	assert.Empty(t, GetRequestID(context.Background()))
	assert.Empty(t, GetRequestID(nil)) //nolint:staticcheck

	ctx := SetRequestID(context.Background(), "req-1")
	assert.Equal(t, "req-1", GetRequestID(ctx))
}

func TestGinRequestIDMiddleware(t *testing.T) {
	router := newTestRouter(GinRequestIDMiddleware())
	router.GET("/ping", func(c *gin.Context) {
		c.String(http.StatusOK, GetRequestID(c.Request.Context()))
	})

	t.Run("generates id", func(t *testing.T) {
		w := httptest.NewRecorder()
		router.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/ping", nil))

		id := w.Header().Get(RequestIDHeader)
		require.NotEmpty(t, id)
		assert.Equal(t, id, w.Body.String())
	})

	t.Run("keeps incoming id", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodGet, "/ping", nil)
		req.Header.Set(RequestIDHeader, "abc")
		w := httptest.NewRecorder()
		router.ServeHTTP(w, req)

		assert.Equal(t, "abc", w.Header().Get(RequestIDHeader))
		assert.Equal(t, "abc", w.Body.String())
	})
}

func TestGinCORSMiddleware(t *testing.T) {
	router := newTestRouter(GinCORSMiddleware())
	router.POST("/upload", func(c *gin.Context) { c.Status(http.StatusOK) })

	w := httptest.NewRecorder()
	router.ServeHTTP(w, httptest.NewRequest(http.MethodOptions, "/upload", nil))
	assert.Equal(t, http.StatusNoContent, w.Code)
	assert.Equal(t, "*", w.Header().Get("Access-Control-Allow-Origin"))

	w = httptest.NewRecorder()
	router.ServeHTTP(w, httptest.NewRequest(http.MethodPost, "/upload", nil))
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Header().Get("Access-Control-Expose-Headers"), "Content-Disposition")
}

func TestHandleGinError(t *testing.T) {
	InitErrorMetrics()

	tests := []struct {
		name        string
		err         error
		wantCode    int
		wantMessage string
		wantDetails bool
	}{
		{
			name:        "validation with details",
			err:         apperrors.NewValidationError("Faltan columnas", nil).WithDetails(map[string]any{"missing": []string{"CIUDAD"}}),
			wantCode:    http.StatusBadRequest,
			wantMessage: "Faltan columnas",
			wantDetails: true,
		},
		{
			name:        "plain error hidden",
			err:         errors.New("disk on fire"),
			wantCode:    http.StatusInternalServerError,
			wantMessage: "Внутренняя ошибка сервера",
		},
		{
			name:        "wrapped app error",
			err:         fmt.Errorf("reconcile: %w", apperrors.NewServiceUnavailableError("Tiempo agotado", nil)),
			wantCode:    http.StatusServiceUnavailable,
			wantMessage: "Tiempo agotado",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			router := newTestRouter(GinRequestIDMiddleware())
			router.GET("/fail", func(c *gin.Context) { HandleGinError(c, tt.err) })

			w := httptest.NewRecorder()
			router.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/fail", nil))

			assert.Equal(t, tt.wantCode, w.Code)

			var resp ErrorResponse
			require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
			assert.Equal(t, tt.wantMessage, resp.Error)
			assert.NotEmpty(t, resp.RequestID)
			assert.NotEmpty(t, resp.Timestamp)
			if tt.wantDetails {
				assert.NotNil(t, resp.Details)
			} else {
				assert.Nil(t, resp.Details)
			}
		})
	}

	snapshot := GetErrorMetrics().Snapshot()
	assert.Equal(t, int64(3), snapshot.TotalErrors)
	assert.Equal(t, int64(3), snapshot.ErrorsByEndpoint["/fail"])
}

func TestGinRecoveryMiddleware(t *testing.T) {
	router := newTestRouter(GinRequestIDMiddleware(), GinRecoveryMiddleware())
	router.GET("/panic", func(c *gin.Context) { panic("boom") })

	w := httptest.NewRecorder()
	router.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/panic", nil))

	assert.Equal(t, http.StatusInternalServerError, w.Code)
	var resp ErrorResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.Equal(t, "Внутренняя ошибка сервера", resp.Error)
}

func TestGinGzipMiddlewareExcludedPaths(t *testing.T) {
	router := newTestRouter(GinGzipMiddleware("/binary"))
	payload := strings.Repeat("x", 2048)
	router.GET("/json", func(c *gin.Context) { c.String(http.StatusOK, payload) })
	router.GET("/binary", func(c *gin.Context) { c.String(http.StatusOK, payload) })

	req := httptest.NewRequest(http.MethodGet, "/json", nil)
	req.Header.Set("Accept-Encoding", "gzip")
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)
	assert.Equal(t, "gzip", w.Header().Get("Content-Encoding"))

	req = httptest.NewRequest(http.MethodGet, "/binary", nil)
	req.Header.Set("Accept-Encoding", "gzip")
	w = httptest.NewRecorder()
	router.ServeHTTP(w, req)
	assert.Empty(t, w.Header().Get("Content-Encoding"))
	assert.Equal(t, payload, w.Body.String())
}

func TestRateLimiter(t *testing.T) {
	limiter := NewRateLimiter(1, 2)
	now := time.Date(2026, 1, 1, 10, 0, 0, 0, time.UTC)
	limiter.now = func() time.Time { return now }

	assert.True(t, limiter.Allow("a"))
	assert.True(t, limiter.Allow("a"))
	assert.False(t, limiter.Allow("a"))
	assert.True(t, limiter.Allow("b"), "clients are limited independently")

	now = now.Add(time.Second)
	assert.True(t, limiter.Allow("a"))

	now = now.Add(time.Hour)
	limiter.Allow("c")
	assert.NotContains(t, limiter.clients, "a")
	assert.NotContains(t, limiter.clients, "b")
}

func TestRateLimiterDisabled(t *testing.T) {
	limiter := NewRateLimiter(0, 0)
	for i := 0; i < 100; i++ {
		require.True(t, limiter.Allow("a"))
	}
}

func TestRateLimiterMiddleware(t *testing.T) {
	limiter := NewRateLimiter(0.001, 1)
	router := newTestRouter(limiter.Middleware())
	router.GET("/x", func(c *gin.Context) { c.Status(http.StatusOK) })

	w := httptest.NewRecorder()
	router.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/x", nil))
	assert.Equal(t, http.StatusOK, w.Code)

	w = httptest.NewRecorder()
	router.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/x", nil))
	assert.Equal(t, http.StatusTooManyRequests, w.Code)
}

func TestMaxUploadSize(t *testing.T) {
	router := newTestRouter(MaxUploadSize(8))
	router.POST("/upload", func(c *gin.Context) {
		_, err := io.ReadAll(c.Request.Body)
		if IsBodyTooLarge(err) {
			c.Status(http.StatusRequestEntityTooLarge)
			return
		}
		c.Status(http.StatusOK)
	})

	w := httptest.NewRecorder()
	router.ServeHTTP(w, httptest.NewRequest(http.MethodPost, "/upload", strings.NewReader("small")))
	assert.Equal(t, http.StatusOK, w.Code)

	w = httptest.NewRecorder()
	router.ServeHTTP(w, httptest.NewRequest(http.MethodPost, "/upload", strings.NewReader("way too large body")))
	assert.Equal(t, http.StatusRequestEntityTooLarge, w.Code)

	assert.False(t, IsBodyTooLarge(errors.New("other")))
}

package handlers

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSwaggerDocJSON(t *testing.T) {
	gin.SetMode(gin.TestMode)
	router := gin.New()
	RegisterSwaggerRoutes(router, "")

	w := httptest.NewRecorder()
	router.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/swagger/doc.json", nil))
	require.Equal(t, http.StatusOK, w.Code)

	var doc struct {
		Paths map[string]any `json:"paths"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &doc))
	for _, path := range []string{"/agendamiento-v2/procesar", "/liquidacion/procesar", "/api/v1/runs", "/health"} {
		assert.Contains(t, doc.Paths, path)
	}
}

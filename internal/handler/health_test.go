package handler_test

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

	"github.com/AdithyaP-AI72/Urban-Noise-Experience-Survey/internal/handler"
)

func healthRequest(t *testing.T, ping handler.PingFunc) handler.HealthResponse {
	t.Helper()

	router := gin.New()
	router.GET("/health", handler.Health("soundscape-survey", "0.1.0", ping))

	w := httptest.NewRecorder()
	router.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/health", http.NoBody))
	require.Equal(t, http.StatusOK, w.Code)

	var resp handler.HealthResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	return resp
}

func TestHealth_Healthy(t *testing.T) {
	resp := healthRequest(t, func(context.Context) error { return nil })

	assert.Equal(t, "healthy", resp.Status)
	assert.Equal(t, "soundscape-survey", resp.Service)
	assert.Equal(t, "ok", resp.Checks["mongo"])
}

func TestHealth_DegradedWhenStoreDown(t *testing.T) {
	resp := healthRequest(t, func(context.Context) error {
		return errors.New("server selection timeout")
	})

	assert.Equal(t, "degraded", resp.Status)
	assert.Contains(t, resp.Checks["mongo"], "server selection timeout")
}

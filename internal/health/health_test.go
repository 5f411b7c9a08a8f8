package health

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/fd1az/options-arbitrage/internal/logger"
)

func get(t *testing.T, s *Server, path string) *httptest.ResponseRecorder {
	t.Helper()
	rec := httptest.NewRecorder()
	s.Handler().ServeHTTP(rec, httptest.NewRequest(http.MethodGet, path, nil))
	return rec
}

func TestServer_AllHealthy(t *testing.T) {
	s := NewServer(0, "test", logger.NewDiscard())
	s.RegisterCheck("reference_butterfly", func(ctx context.Context) (bool, string) {
		return true, "flags [butterfly]"
	})

	rec := get(t, s, "/health")
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "application/json", rec.Header().Get("Content-Type"))

	var status Status
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &status))
	assert.Equal(t, "ok", status.Status)
	assert.Equal(t, "test", status.Version)
	assert.True(t, status.Checks["reference_butterfly"].Healthy)

	assert.Equal(t, http.StatusOK, get(t, s, "/ready").Code)
	assert.Equal(t, "alive", get(t, s, "/live").Body.String())
}

func TestServer_Degraded(t *testing.T) {
	s := NewServer(0, "test", logger.NewDiscard())
	s.RegisterCheck("ok", func(ctx context.Context) (bool, string) { return true, "" })
	s.RegisterCheck("broken", func(ctx context.Context) (bool, string) { return false, "no flags" })

	rec := get(t, s, "/health")
	require.Equal(t, http.StatusServiceUnavailable, rec.Code)

	var status Status
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &status))
	assert.Equal(t, "degraded", status.Status)
	assert.Equal(t, "no flags", status.Checks["broken"].Message)

	ready := get(t, s, "/ready")
	assert.Equal(t, http.StatusServiceUnavailable, ready.Code)
	assert.Equal(t, "not ready", ready.Body.String())

	assert.Equal(t, http.StatusOK, get(t, s, "/live").Code)
}

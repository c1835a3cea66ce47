package main

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"

	chiTransport "github.com/kailas-cloud/ipadhilfe/internal/transport/chi"
)

// stubServer answers categories and panics on health; other routes are unused.
type stubServer struct {
	chiTransport.ServerInterface
}

func (stubServer) HealthCheck(http.ResponseWriter, *http.Request) {
	panic("boom")
}

func (stubServer) ListCategories(w http.ResponseWriter, _ *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	_, _ = w.Write([]byte("[]"))
}

func TestRouter_RecoversPanicsAsJSON(t *testing.T) {
	core, logs := observer.New(zapcore.ErrorLevel)
	h := newRouter(stubServer{}, []string{"*"}, zap.New(core))

	rr := httptest.NewRecorder()
	h.ServeHTTP(rr, httptest.NewRequest(http.MethodGet, "/api/health", http.NoBody))

	require.Equal(t, http.StatusInternalServerError, rr.Code)
	var body chiTransport.ErrorResponse
	require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &body))
	assert.Equal(t, chiTransport.ErrorCodeInternalError, body.Code)
	assert.Equal(t, 1, logs.FilterMessage("panic recovered").Len())
}

func TestRouter_RequestIDAndAccessLog(t *testing.T) {
	core, logs := observer.New(zapcore.InfoLevel)
	h := newRouter(stubServer{}, []string{"*"}, zap.New(core))

	rr := httptest.NewRecorder()
	h.ServeHTTP(rr, httptest.NewRequest(http.MethodGet, "/api/categories", http.NoBody))

	require.Equal(t, http.StatusOK, rr.Code)
	assert.NotEmpty(t, rr.Header().Get("X-Request-ID"))

	entries := logs.FilterMessage("http_request").All()
	require.Len(t, entries, 1)
	fields := entries[0].ContextMap()
	assert.Equal(t, "/api/categories", fields["path"])
	assert.EqualValues(t, http.StatusOK, fields["status"])
	assert.NotEmpty(t, fields["request_id"])
}

func TestRouter_CORSPreflight(t *testing.T) {
	h := newRouter(stubServer{}, []string{"https://ipad.example.org"}, zap.NewNop())

	req := httptest.NewRequest(http.MethodOptions, "/api/preferences/u1", http.NoBody)
	req.Header.Set("Origin", "https://ipad.example.org")
	req.Header.Set("Access-Control-Request-Method", http.MethodPut)
	rr := httptest.NewRecorder()
	h.ServeHTTP(rr, req)

	assert.Equal(t, "https://ipad.example.org", rr.Header().Get("Access-Control-Allow-Origin"))
	assert.Contains(t, rr.Header().Get("Access-Control-Allow-Methods"), http.MethodPut)
}

func TestRouter_CORSRejectsUnknownOrigin(t *testing.T) {
	h := newRouter(stubServer{}, []string{"https://ipad.example.org"}, zap.NewNop())

	req := httptest.NewRequest(http.MethodGet, "/api/categories", http.NoBody)
	req.Header.Set("Origin", "https://evil.example.com")
	rr := httptest.NewRecorder()
	h.ServeHTTP(rr, req)

	assert.Empty(t, rr.Header().Get("Access-Control-Allow-Origin"))
}

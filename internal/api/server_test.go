// Copyright (c) 2026 Authcore. All rights reserved.

package api_test

import (
	"errors"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/phamduc/authcore/internal/api"
	"github.com/phamduc/authcore/internal/auth"
	"github.com/phamduc/authcore/internal/platform/config"
	"github.com/phamduc/authcore/internal/platform/sec"
)

// newTestServer assembles the full server exactly as main.go does, minus
// PostgreSQL: the in-memory credential store stands in for the database.
func newTestServer(t *testing.T, checkDatabase func() error) *api.Server {
	t.Helper()

	log := slog.New(slog.NewTextHandler(io.Discard, nil))
	cfg := &config.Config{
		ServerPort:  "0",
		Environment: "development",
	}

	tokenService, err := sec.NewTokenService([]byte("server-test-secret"), "authcore", 60*time.Minute, 24*time.Hour)
	require.NoError(t, err)

	liveness, readiness := api.NewHealthHandlers(api.HealthDependencies{
		CheckDatabase: checkDatabase,
	}, log)

	store := auth.NewMemoryCredentialStore()
	authService := auth.NewService(store, tokenService)

	return api.NewServer(cfg, log, tokenService, api.Handlers{
		Liveness:  liveness,
		Readiness: readiness,
		Auth:      auth.NewHandler(authService),
	})
}

/*
TestServer_HealthProbes verifies the orchestration endpoints.
*/
func TestServer_HealthProbes(t *testing.T) {
	t.Run("liveness_always_ok", func(t *testing.T) {
		server := newTestServer(t, func() error { return nil })

		recorder := httptest.NewRecorder()
		server.Router().ServeHTTP(recorder, httptest.NewRequest(http.MethodGet, "/health", nil))

		assert.Equal(t, http.StatusOK, recorder.Code)
		assert.JSONEq(t, `{"status": "ok"}`, recorder.Body.String())
	})

	t.Run("readiness_ok_when_database_healthy", func(t *testing.T) {
		server := newTestServer(t, func() error { return nil })

		recorder := httptest.NewRecorder()
		server.Router().ServeHTTP(recorder, httptest.NewRequest(http.MethodGet, "/ready", nil))

		assert.Equal(t, http.StatusOK, recorder.Code)
		assert.Contains(t, recorder.Body.String(), `"ready"`)
	})

	t.Run("readiness_degraded_when_database_down", func(t *testing.T) {
		server := newTestServer(t, func() error { return errors.New("connection refused") })

		recorder := httptest.NewRecorder()
		server.Router().ServeHTTP(recorder, httptest.NewRequest(http.MethodGet, "/ready", nil))

		assert.Equal(t, http.StatusServiceUnavailable, recorder.Code)
		assert.Contains(t, recorder.Body.String(), `"degraded"`)
	})
}

/*
TestServer_FullStack drives register and login through the complete
middleware chain, as an HTTP client would see it.
*/
func TestServer_FullStack(t *testing.T) {
	server := newTestServer(t, func() error { return nil })
	router := server.Router()

	register := httptest.NewRequest(http.MethodPost, "/api/register/",
		strings.NewReader(`{"username": "alice", "password": "s3cret-password"}`))
	register.Header.Set("Content-Type", "application/json")

	recorder := httptest.NewRecorder()
	router.ServeHTTP(recorder, register)

	require.Equal(t, http.StatusCreated, recorder.Code)

	// Every response carries the correlation ID injected by the chain.
	assert.NotEmpty(t, recorder.Header().Get("X-Request-ID"))

	login := httptest.NewRequest(http.MethodPost, "/api/login/",
		strings.NewReader(`{"username": "alice", "password": "s3cret-password"}`))
	login.Header.Set("Content-Type", "application/json")

	recorder = httptest.NewRecorder()
	router.ServeHTTP(recorder, login)

	assert.Equal(t, http.StatusOK, recorder.Code)
	assert.Contains(t, recorder.Body.String(), `"access"`)
	assert.Contains(t, recorder.Body.String(), `"refresh"`)
}

/*
TestServer_CORSPreflight verifies the browser preflight path through the chain.
*/
func TestServer_CORSPreflight(t *testing.T) {
	server := newTestServer(t, func() error { return nil })

	preflight := httptest.NewRequest(http.MethodOptions, "/api/login/", nil)
	preflight.Header.Set("Origin", "http://localhost:5173")
	preflight.Header.Set("Access-Control-Request-Method", http.MethodPost)

	recorder := httptest.NewRecorder()
	server.Router().ServeHTTP(recorder, preflight)

	// Development mode allows any origin.
	assert.Equal(t, http.StatusNoContent, recorder.Code)
	assert.Equal(t, "http://localhost:5173", recorder.Header().Get("Access-Control-Allow-Origin"))
	assert.Contains(t, recorder.Header().Get("Access-Control-Allow-Headers"), "Authorization")
}

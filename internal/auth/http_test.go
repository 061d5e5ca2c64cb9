// Copyright (c) 2026 Authcore. All rights reserved.

package auth_test

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/phamduc/authcore/internal/auth"
	"github.com/phamduc/authcore/internal/platform/middleware"
	"github.com/phamduc/authcore/internal/platform/sec"
)

// newTestRouter assembles the auth routes behind the real bearer-token
// middleware, backed by the in-memory store and a throwaway signing secret.
func newTestRouter(t *testing.T) http.Handler {
	t.Helper()

	tokenService, err := sec.NewTokenService([]byte("http-test-secret"), "authcore", 60*time.Minute, 24*time.Hour)
	require.NoError(t, err)

	store := auth.NewMemoryCredentialStore()
	service := auth.NewService(store, tokenService)
	handler := auth.NewHandler(service)

	router := chi.NewRouter()
	router.Use(middleware.Authenticate(tokenService))
	router.Route("/api", func(api chi.Router) {
		api.Mount("/", handler.Routes())
	})

	return router
}

func postJSON(t *testing.T, router http.Handler, path, body string) *httptest.ResponseRecorder {
	t.Helper()
	request := httptest.NewRequest(http.MethodPost, path, strings.NewReader(body))
	request.Header.Set("Content-Type", "application/json")
	recorder := httptest.NewRecorder()
	router.ServeHTTP(recorder, request)
	return recorder
}

func decodeBody(t *testing.T, recorder *httptest.ResponseRecorder, target interface{}) {
	t.Helper()
	require.NoError(t, json.Unmarshal(recorder.Body.Bytes(), target))
}

/*
TestRegisterEndpoint covers the POST /api/register/ wire contract.
*/
func TestRegisterEndpoint(t *testing.T) {
	t.Run("success_returns_201_with_message", func(t *testing.T) {
		router := newTestRouter(t)

		recorder := postJSON(t, router, "/api/register/", `{"username": "alice", "password": "s3cret-password"}`)
		assert.Equal(t, http.StatusCreated, recorder.Code)

		var body map[string]string
		decodeBody(t, recorder, &body)
		assert.Equal(t, map[string]string{"message": "User registered successfully"}, body)
	})

	t.Run("duplicate_username_returns_field_error", func(t *testing.T) {
		router := newTestRouter(t)

		first := postJSON(t, router, "/api/register/", `{"username": "alice", "password": "s3cret-password"}`)
		require.Equal(t, http.StatusCreated, first.Code)

		second := postJSON(t, router, "/api/register/", `{"username": "alice", "password": "another-password"}`)
		assert.Equal(t, http.StatusBadRequest, second.Code)

		var body map[string][]string
		decodeBody(t, second, &body)
		assert.Equal(t, []string{"Username already exists."}, body["username"])
	})

	t.Run("missing_fields_return_field_errors", func(t *testing.T) {
		router := newTestRouter(t)

		recorder := postJSON(t, router, "/api/register/", `{}`)
		assert.Equal(t, http.StatusBadRequest, recorder.Code)

		var body map[string][]string
		decodeBody(t, recorder, &body)
		assert.Equal(t, []string{"This field is required."}, body["username"])
		assert.Equal(t, []string{"This field is required."}, body["password"])
	})

	t.Run("short_password_returns_field_error", func(t *testing.T) {
		router := newTestRouter(t)

		recorder := postJSON(t, router, "/api/register/", `{"username": "alice", "password": "short"}`)
		assert.Equal(t, http.StatusBadRequest, recorder.Code)

		var body map[string][]string
		decodeBody(t, recorder, &body)
		assert.Equal(t, []string{"Ensure this field has at least 8 characters."}, body["password"])
	})

	t.Run("overlong_username_returns_field_error", func(t *testing.T) {
		router := newTestRouter(t)

		longUsername := strings.Repeat("a", 151)
		recorder := postJSON(t, router, "/api/register/", `{"username": "`+longUsername+`", "password": "s3cret-password"}`)
		assert.Equal(t, http.StatusBadRequest, recorder.Code)

		var body map[string][]string
		decodeBody(t, recorder, &body)
		assert.Equal(t, []string{"Ensure this field has no more than 150 characters."}, body["username"])
	})

	t.Run("malformed_json_returns_400", func(t *testing.T) {
		router := newTestRouter(t)

		recorder := postJSON(t, router, "/api/register/", `{"username": `)
		assert.Equal(t, http.StatusBadRequest, recorder.Code)
	})
}

/*
TestLoginEndpoint covers the POST /api/login/ wire contract, including the
generic failure body that never distinguishes unknown user from bad password.
*/
func TestLoginEndpoint(t *testing.T) {
	t.Run("success_returns_token_pair", func(t *testing.T) {
		router := newTestRouter(t)

		registered := postJSON(t, router, "/api/register/", `{"username": "alice", "password": "s3cret-password"}`)
		require.Equal(t, http.StatusCreated, registered.Code)

		recorder := postJSON(t, router, "/api/login/", `{"username": "alice", "password": "s3cret-password"}`)
		assert.Equal(t, http.StatusOK, recorder.Code)

		var body map[string]string
		decodeBody(t, recorder, &body)
		assert.NotEmpty(t, body["access"])
		assert.NotEmpty(t, body["refresh"])
		assert.Len(t, body, 2)
	})

	t.Run("wrong_password_and_unknown_user_same_body", func(t *testing.T) {
		router := newTestRouter(t)

		registered := postJSON(t, router, "/api/register/", `{"username": "alice", "password": "s3cret-password"}`)
		require.Equal(t, http.StatusCreated, registered.Code)

		wrongPassword := postJSON(t, router, "/api/login/", `{"username": "alice", "password": "wrong-password"}`)
		unknownUser := postJSON(t, router, "/api/login/", `{"username": "ghost", "password": "s3cret-password"}`)

		assert.Equal(t, http.StatusUnauthorized, wrongPassword.Code)
		assert.Equal(t, http.StatusUnauthorized, unknownUser.Code)
		assert.JSONEq(t, `{"error": "Invalid credentials"}`, wrongPassword.Body.String())
		assert.JSONEq(t, `{"error": "Invalid credentials"}`, unknownUser.Body.String())
	})

	t.Run("missing_fields_return_400", func(t *testing.T) {
		router := newTestRouter(t)

		for _, body := range []string{`{}`, `{"username": "alice"}`, `{"password": "s3cret-password"}`} {
			recorder := postJSON(t, router, "/api/login/", body)
			assert.Equal(t, http.StatusBadRequest, recorder.Code)
			assert.JSONEq(t, `{"error": "Username and password are required"}`, recorder.Body.String())
		}
	})
}

/*
TestMeEndpoint covers the authenticated identity echo at GET /api/me/.
*/
func TestMeEndpoint(t *testing.T) {
	router := newTestRouter(t)

	registered := postJSON(t, router, "/api/register/", `{"username": "alice", "password": "s3cret-password"}`)
	require.Equal(t, http.StatusCreated, registered.Code)

	login := postJSON(t, router, "/api/login/", `{"username": "alice", "password": "s3cret-password"}`)
	require.Equal(t, http.StatusOK, login.Code)

	var tokens map[string]string
	decodeBody(t, login, &tokens)

	t.Run("without_token_returns_401", func(t *testing.T) {
		request := httptest.NewRequest(http.MethodGet, "/api/me/", nil)
		recorder := httptest.NewRecorder()
		router.ServeHTTP(recorder, request)

		assert.Equal(t, http.StatusUnauthorized, recorder.Code)
	})

	t.Run("with_access_token_returns_identity", func(t *testing.T) {
		request := httptest.NewRequest(http.MethodGet, "/api/me/", nil)
		request.Header.Set("Authorization", "Bearer "+tokens["access"])
		recorder := httptest.NewRecorder()
		router.ServeHTTP(recorder, request)

		assert.Equal(t, http.StatusOK, recorder.Code)

		var body map[string]string
		decodeBody(t, recorder, &body)
		assert.Equal(t, "alice", body["username"])
		assert.NotEmpty(t, body["id"])
	})

	t.Run("refresh_token_is_rejected_as_bearer", func(t *testing.T) {
		request := httptest.NewRequest(http.MethodGet, "/api/me/", nil)
		request.Header.Set("Authorization", "Bearer "+tokens["refresh"])
		recorder := httptest.NewRecorder()
		router.ServeHTTP(recorder, request)

		assert.Equal(t, http.StatusUnauthorized, recorder.Code)
	})

	t.Run("garbage_token_is_rejected", func(t *testing.T) {
		request := httptest.NewRequest(http.MethodGet, "/api/me/", nil)
		request.Header.Set("Authorization", "Bearer not-a-jwt")
		recorder := httptest.NewRecorder()
		router.ServeHTTP(recorder, request)

		assert.Equal(t, http.StatusUnauthorized, recorder.Code)
	})
}

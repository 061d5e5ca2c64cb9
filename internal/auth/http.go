// Copyright (c) 2026 Authcore. All rights reserved.

// # HTTP Delivery Layer
//
// The handler acts as a thin mediation layer between the web and the domain
// service:
//   - Protocol: Standard RESTful JSON interface.
//   - Security: Orchestrates JWT issuance on login.
//   - Verification: Enforces strict input validation before passing to [Service].
//
// This layer is strictly responsible for transport concerns (status codes, headers, JSON).

package auth

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/phamduc/authcore/internal/platform/apperr"
	"github.com/phamduc/authcore/internal/platform/middleware"
	requestutil "github.com/phamduc/authcore/internal/platform/request"
	"github.com/phamduc/authcore/internal/platform/respond"
	"github.com/phamduc/authcore/internal/platform/validate"
)

// # Definitions & Constructors

// Handler implements authentication-related HTTP endpoints.
//
// # Scope
//
// This handler manages the account lifecycle entry points (Registration,
// Login) and the authenticated identity echo.
type Handler struct {
	authService *Service
}

// NewHandler constructs a new [Handler] with its service dependency.
func NewHandler(service *Service) *Handler {
	return &Handler{authService: service}
}

// Routes returns a [chi.Router] configured with authentication-specific routes.
//
// # Endpoints
//   - POST /register/ : Creates a new account.
//   - POST /login/    : Authenticates and returns a JWT pair.
//   - GET  /me/       : Returns the authenticated identity.
//
// Paths keep their trailing slash; the client contract includes it.
func (handler *Handler) Routes() chi.Router {
	router := chi.NewRouter()

	// Public endpoints
	router.Post("/register/", handler.register)
	router.Post("/login/", handler.login)

	// Protected endpoints
	router.Group(func(r chi.Router) {
		r.Use(middleware.RequireAuth)
		r.Get("/me/", handler.me)
	})

	return router
}

// # Request Payloads

type registerRequest struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

type loginRequest struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

/*
Register handles the creation of a new account.

POST /api/register/

Description: Validates input, checks for identity conflicts, and persists a
new credential to the database.

Request:
  - Body: registerRequest (Username, Password)

Response:
  - 201: {"message": "User registered successfully"}
  - 400: {"<field>": ["<reason>", ...]} on validation failure or duplicate username
*/
func (handler *Handler) register(writer http.ResponseWriter, request *http.Request) {
	var input registerRequest

	if err := requestutil.DecodeJSON(request, &input); err != nil {
		respond.Error(writer, request, validate.ErrInvalidJSON)
		return
	}

	validator := &validate.Validator{}
	validator.Required(FieldUsername, input.Username).
		MaxLen(FieldUsername, input.Username, UsernameMaxLength).
		Required(FieldPassword, input.Password)

	// Length rule only fires once the field is present, so an empty password
	// reports "required" alone rather than two stacked messages.
	if input.Password != "" {
		validator.MinLen(FieldPassword, input.Password, PasswordMinLength)
	}

	if err := validator.Err(); err != nil {
		respond.Error(writer, request, err)
		return
	}

	_, err := handler.authService.Register(request.Context(), RegisterInput{
		Username: input.Username,
		Password: input.Password,
	})

	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	respond.Created(writer, map[string]string{
		FieldMessage: "User registered successfully",
	})
}

/*
Login authenticates a user and issues a token pair.

POST /api/login/

Description: Verifies credentials and returns the signed access and refresh
JWTs. Every credential failure is the same generic 401 body.

Request:
  - Body: loginRequest (Username, Password)

Response:
  - 200: {"access": "<jwt>", "refresh": "<jwt>"}
  - 400: {"error": "Username and password are required"} when either field is missing
  - 401: {"error": "Invalid credentials"}
*/
func (handler *Handler) login(writer http.ResponseWriter, request *http.Request) {
	var input loginRequest

	if err := requestutil.DecodeJSON(request, &input); err != nil {
		respond.Error(writer, request, validate.ErrInvalidJSON)
		return
	}

	// Missing fields are a malformed request, reported before any credential
	// work. Deliberately NOT field-attributed: the login form shows one line.
	if input.Username == "" || input.Password == "" {
		respond.Error(writer, request, apperr.ValidationError("Username and password are required"))
		return
	}

	tokenPair, err := handler.authService.Login(request.Context(), LoginInput{
		Username: input.Username,
		Password: input.Password,
	})
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	respond.OK(writer, map[string]string{
		FieldAccess:  tokenPair.Access,
		FieldRefresh: tokenPair.Refresh,
	})
}

/*
Me returns the identity of the authenticated caller.

GET /api/me/

Description: Echoes the identity claims carried by the presented access token.
No database round-trip is needed.

Response:
  - 200: {"id": "<uuid>", "username": "<name>"}
  - 401: {"error": "Authentication required"} without a valid bearer token
*/
func (handler *Handler) me(writer http.ResponseWriter, request *http.Request) {
	claims, err := requestutil.RequiredClaims(request)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	respond.OK(writer, map[string]string{
		"id":       claims.UserID,
		"username": claims.Username,
	})
}

// Copyright (c) 2026 Authcore. All rights reserved.

// Package sec provides cryptographic primitives and token management.
//
// # Architecture
//
// This package isolates security-sensitive code (Hashing, JWT Signing) from
// the domain logic. It acts as an Infrastructure service injected into the
// Application layer via the [auth.TokenIssuer] interface.
package sec

import (
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

// TokenUse distinguishes the two token types minted by the service.
//
// The use is carried in the JWT audience claim, so an access token can never
// be replayed where a refresh token is expected and vice versa.
type TokenUse string

const (
	// UseAccess marks short-lived per-request authorization tokens.
	UseAccess TokenUse = "auth:access"

	// UseRefresh marks longer-lived tokens intended only to mint new access
	// tokens. No endpoint consumes them yet; they are issued as a capability.
	UseRefresh TokenUse = "auth:refresh"
)

// AuthClaims represents the payload embedded inside a signed token.
//
// # Why custom claims?
//
// By embedding the UserID and Username directly inside the JWT, the
// [middleware.Authenticate] chain can reconstruct the active user context
// WITHOUT querying the database on every single API request.
type AuthClaims struct {
	jwt.RegisteredClaims

	// Custom application claims are abbreviated to keep the JWT payload small.
	UserID   string `json:"uid"`
	Username string `json:"unm"`
}

// TokenPair bundles the two tokens returned by a successful login.
type TokenPair struct {
	Access  string
	Refresh string
}

// TokenService issues and verifies HMAC-signed (HS256) JWT tokens.
//
// # State
//
// The signing secret and both lifetimes are fixed at construction; the
// service holds no mutable state and is safe for concurrent use.
type TokenService struct {
	secret     []byte
	issuer     string
	accessTTL  time.Duration
	refreshTTL time.Duration
	now        func() time.Time
}

// Option customizes a [TokenService].
type Option func(*TokenService)

// WithClock overrides the time source. Intended for tests that need to
// observe expiry without sleeping.
func WithClock(now func() time.Time) Option {
	return func(service *TokenService) {
		service.now = now
	}
}

// NewTokenService creates a TokenService with an explicit secret and explicit
// per-use lifetimes. There is no ambient configuration: callers inject
// everything, which keeps the service testable with throwaway secrets.
func NewTokenService(secret []byte, issuer string, accessTTL, refreshTTL time.Duration, options ...Option) (*TokenService, error) {
	if len(secret) == 0 {
		return nil, fmt.Errorf("sec: signing secret must not be empty")
	}

	service := &TokenService{
		secret:     secret,
		issuer:     issuer,
		accessTTL:  accessTTL,
		refreshTTL: refreshTTL,
		now:        time.Now,
	}

	for _, option := range options {
		option(service)
	}

	return service, nil
}

/*
IssueTokenPair mints the access and refresh tokens for one authenticated user.

Description: Both tokens bind the same subject identity; only the audience
and the expiry differ. Minting is one call so the two tokens can never be
built from divergent signer state.

Parameters:
  - userID: string (Credential ID, becomes the 'sub' and 'uid' claims)
  - username: string (becomes the 'unm' claim)

Returns:
  - TokenPair: Signed access (60m class) and refresh (24h class) tokens
  - error: Signing failures
*/
func (service *TokenService) IssueTokenPair(userID, username string) (TokenPair, error) {
	issuedAt := service.now()

	accessToken, err := service.sign(userID, username, UseAccess, issuedAt, issuedAt.Add(service.accessTTL))
	if err != nil {
		return TokenPair{}, fmt.Errorf("sec: failed to sign access token: %w", err)
	}

	refreshToken, err := service.sign(userID, username, UseRefresh, issuedAt, issuedAt.Add(service.refreshTTL))
	if err != nil {
		return TokenPair{}, fmt.Errorf("sec: failed to sign refresh token: %w", err)
	}

	return TokenPair{Access: accessToken, Refresh: refreshToken}, nil
}

// sign builds and signs a single token for the given use and expiry.
func (service *TokenService) sign(userID, username string, use TokenUse, issuedAt, expiresAt time.Time) (string, error) {
	claims := AuthClaims{
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   userID,
			Issuer:    service.issuer,
			Audience:  jwt.ClaimStrings{string(use)},
			IssuedAt:  jwt.NewNumericDate(issuedAt),
			ExpiresAt: jwt.NewNumericDate(expiresAt),
		},
		UserID:   userID,
		Username: username,
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString(service.secret)
}

/*
Verify checks the signature, expiry, issuer, and intended use of a token.

Description: A token is valid iff its HMAC verifies under the service secret
AND it has not expired AND its audience matches the expected use. There is no
other validity condition (no revocation list).

Parameters:
  - tokenString: string (Compact JWT)
  - expectedUse: TokenUse

Returns:
  - *AuthClaims: Decoded identity claims
  - error: Any verification failure (signature, expiry, audience, malformed)
*/
func (service *TokenService) Verify(tokenString string, expectedUse TokenUse) (*AuthClaims, error) {
	token, err := jwt.ParseWithClaims(tokenString, &AuthClaims{}, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("sec: unexpected signing method: %v", token.Header["alg"])
		}
		return service.secret, nil
	},
		jwt.WithAudience(string(expectedUse)),
		jwt.WithIssuer(service.issuer),
		jwt.WithTimeFunc(service.now),
	)

	if err != nil {
		return nil, fmt.Errorf("sec: invalid token: %w", err)
	}

	claims, ok := token.Claims.(*AuthClaims)
	if !ok || !token.Valid {
		return nil, fmt.Errorf("sec: invalid token claims")
	}

	return claims, nil
}

// VerifyAccessToken verifies a bearer token presented for per-request
// authorization. It satisfies [middleware.TokenVerifier].
func (service *TokenService) VerifyAccessToken(tokenString string) (*AuthClaims, error) {
	return service.Verify(tokenString, UseAccess)
}

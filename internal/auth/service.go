// Copyright (c) 2026 Authcore. All rights reserved.

package auth

import (
	"context"
	"fmt"

	"github.com/phamduc/authcore/internal/platform/apperr"
	"github.com/phamduc/authcore/internal/platform/sec"
	"github.com/phamduc/authcore/pkg/uuid"
)

// # Contracts & Types

// TokenIssuer defines the contract for minting security tokens.
type TokenIssuer interface {
	// IssueTokenPair creates the signed access and refresh tokens for a user.
	//
	// # Parameters
	//   - userID: The ID of the credential.
	//   - username: The username of the credential.
	//
	// # Returns
	//   - A [sec.TokenPair], or an err if signing fails.
	IssueTokenPair(userID, username string) (sec.TokenPair, error)
}

// ErrInvalidCredentials is the single client-visible login failure.
//
// # Anti-Enumeration
//
// Unknown username and wrong password both map to this exact error, so a
// caller can never distinguish "no such user" from "bad password" by response
// body, status code, or (thanks to the decoy verification) timing.
var ErrInvalidCredentials = apperr.Unauthorized("Invalid credentials")

// Service implements user authentication use cases.
//
// # Review Process
//
// This service is critical for security. Any changes to hashing, registration,
// or login logic must be reviewed by the security team.
type Service struct {
	credentialStore CredentialStore
	tokenIssuer     TokenIssuer
}

// NewService constructs a new [Service] with necessary dependencies.
func NewService(store CredentialStore, issuer TokenIssuer) *Service {
	return &Service{
		credentialStore: store,
		tokenIssuer:     issuer,
	}
}

// # Registration Flow

// RegisterInput holds the data required to enroll a new account.
type RegisterInput struct {
	Username string
	Password string
}

/*
Register validates, hashes, and persists a brand new credential.

Description: Enrollment of a new account. The password is hashed before any
storage write; the plain text never leaves this call.

Parameters:
  - ctx: context.Context
  - input: RegisterInput

Returns:
  - *Credential: Created entity
  - err: ErrDuplicateUsername (if identity exists) or storage errors
*/
func (service *Service) Register(ctx context.Context, input RegisterInput) (*Credential, error) {

	// Fast-path duplicate check for a friendly failure before doing expensive
	// key derivation. Correctness does NOT depend on it: the store's Insert
	// arbitrates concurrent registrations atomically.
	exists, err := service.credentialStore.Exists(ctx, input.Username)
	if err != nil {
		return nil, fmt.Errorf("auth_service_exists_check_failed: %w", err)
	}
	if exists {
		return nil, ErrDuplicateUsername
	}

	// Prevent storing plain-text passwords. Iteration count is tuned to resist
	// offline brute force at acceptable registration latency.
	hashedPassword, err := sec.HashPassword(input.Password)
	if err != nil {
		return nil, fmt.Errorf("auth_service_hash_failed: %w", err)
	}

	// Construct the new Credential entity. Time-sortable ID to prevent PG index fragmentation.
	credential := &Credential{
		ID:           uuid.New(),
		Username:     input.Username,
		PasswordHash: hashedPassword,
	}

	// Persist the credential. A racing duplicate surfaces here as
	// ErrDuplicateUsername and passes through to the client unchanged.
	if err := service.credentialStore.Insert(ctx, credential); err != nil {
		if apperr.IsAppError(err) {
			return nil, err
		}
		return nil, fmt.Errorf("auth_service_register_failed: %w", err)
	}

	return credential, nil
}

// # Authentication Flow

// LoginInput defines credentials for an authentication attempt.
type LoginInput struct {
	Username string
	Password string
}

/*
Login validates user credentials and issues a token pair.

Description: Verifies identity with constant-time password comparison and
mints the access/refresh JWT pair in a single signing step.

Parameters:
  - ctx: context.Context
  - input: LoginInput

Returns:
  - sec.TokenPair: Transport-ready access and refresh tokens
  - err: ErrInvalidCredentials or internal failures
*/
func (service *Service) Login(ctx context.Context, input LoginInput) (sec.TokenPair, error) {
	credential, err := service.credentialStore.Find(ctx, input.Username)

	// Unknown username: burn the same key-derivation work against a decoy
	// hash so this path is not distinguishable from a wrong password by timing.
	if err != nil {
		if apperr.IsAppError(err) {
			sec.VerifyPassword(input.Password, sec.DecoyHash())
			return sec.TokenPair{}, ErrInvalidCredentials
		}
		return sec.TokenPair{}, fmt.Errorf("auth_service_find_failed: %w", err)
	}

	// Verify the password hash with a constant-time comparison.
	if !sec.VerifyPassword(input.Password, credential.PasswordHash) {
		return sec.TokenPair{}, ErrInvalidCredentials
	}

	// Mint the access/refresh pair bound to this identity.
	tokenPair, err := service.tokenIssuer.IssueTokenPair(credential.ID, credential.Username)
	if err != nil {
		return sec.TokenPair{}, fmt.Errorf("auth_service_token_generation_failed: %w", err)
	}

	return tokenPair, nil
}

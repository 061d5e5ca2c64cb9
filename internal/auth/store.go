// Copyright (c) 2026 Authcore. All rights reserved.

package auth

import (
	"context"

	"github.com/phamduc/authcore/internal/platform/apperr"
)

// # Storage Errors

var (
	// ErrDuplicateUsername is returned by Insert when the username is taken.
	//
	// It is field-attributed so the transport layer renders it next to the
	// username input, exactly like any other validation failure.
	ErrDuplicateUsername = apperr.Conflict(FieldUsername, "Username already exists.")

	// ErrCredentialNotFound is returned by Find when no row matches.
	ErrCredentialNotFound = apperr.NotFound("Credential")
)

// # Storage Contract

// CredentialStore abstracts the persistence of [Credential] records.
//
// # Atomicity
//
// Insert must be atomic with respect to the username uniqueness rule: when two
// concurrent inserts race on the same username, exactly one succeeds and the
// other receives [ErrDuplicateUsername]. Implementations must not rely on a
// prior Exists check for correctness.
type CredentialStore interface {
	// Exists reports whether a credential with this username is stored.
	Exists(ctx context.Context, username string) (bool, error)

	// Insert persists a new credential. Returns [ErrDuplicateUsername] if the
	// username is already taken.
	Insert(ctx context.Context, credential *Credential) error

	// Find retrieves a credential by username. Returns [ErrCredentialNotFound]
	// if no such username is stored.
	Find(ctx context.Context, username string) (*Credential, error)
}

// Copyright (c) 2026 Authcore. All rights reserved.

// # Storage Layer (PostgreSQL)
//
// Repositories in this file are strictly separated from domain logic. They
// implement the domain-defined [CredentialStore] interface using the
// [pgxpool.Pool] connection manager.
//
// # err Mapping
//
// Storage-specific errors (like pgx.ErrNoRows or SQLSTATE 23505) are mapped to
// domain-friendly [apperr.AppError] types to avoid leaking storage
// implementation details.

package auth

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/jackc/pgerrcode"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"
)

// PostgresCredentialStore implements [CredentialStore] using pgx.
//
// # Uniqueness
//
// The username uniqueness rule is delegated to the UNIQUE constraint on
// account.credential(username). The database arbitrates concurrent inserts,
// so no application-level locking is needed.
type PostgresCredentialStore struct {
	pool *pgxpool.Pool
}

// NewPostgresCredentialStore creates a new PostgreSQL implementation of [CredentialStore].
func NewPostgresCredentialStore(pool *pgxpool.Pool) *PostgresCredentialStore {
	return &PostgresCredentialStore{pool: pool}
}

/*
Exists reports whether a username is already registered.

Parameters:
  - ctx: context.Context
  - username: string

Returns:
  - bool: true if a credential with this username is stored
  - error: Connectivity or execution errors
*/
func (store *PostgresCredentialStore) Exists(ctx context.Context, username string) (bool, error) {
	const query = `SELECT EXISTS (SELECT 1 FROM account.credential WHERE username = $1)`

	var exists bool
	if err := store.pool.QueryRow(ctx, query, username).Scan(&exists); err != nil {
		return false, fmt.Errorf("postgres_credential_store_exists_failed: %w", err)
	}

	return exists, nil
}

/*
Insert persists a new credential record into the account.credential table.

Description: Atomic enrollment of a new identity. The UNIQUE constraint on
username arbitrates concurrent registrations; a violation is translated to
[ErrDuplicateUsername].

Parameters:
  - ctx: context.Context
  - credential: *Credential (Entity to persist)

Returns:
  - error: ErrDuplicateUsername, or connectivity/execution errors
*/
func (store *PostgresCredentialStore) Insert(ctx context.Context, credential *Credential) error {
	const query = `
		INSERT INTO account.credential (
			id, username, passwordhash, createdat
		) VALUES ($1, $2, $3, $4)`

	if credential.CreatedAt.IsZero() {
		credential.CreatedAt = time.Now()
	}

	_, err := store.pool.Exec(ctx, query,
		credential.ID,
		credential.Username,
		credential.PasswordHash,
		credential.CreatedAt,
	)

	if err != nil {
		var pgError *pgconn.PgError
		if errors.As(err, &pgError) && pgError.Code == pgerrcode.UniqueViolation {
			return ErrDuplicateUsername
		}
		return fmt.Errorf("postgres_credential_store_insert_failed: %w", err)
	}

	return nil
}

/*
Find retrieves a credential record by its unique username.

Description: Standard lookup by username for authentication.

Parameters:
  - ctx: context.Context
  - username: string

Returns:
  - *Credential: Hydrated credential entity
  - error: ErrCredentialNotFound or execution errors
*/
func (store *PostgresCredentialStore) Find(ctx context.Context, username string) (*Credential, error) {
	const query = `
		SELECT id, username, passwordhash, createdat
		FROM account.credential
		WHERE username = $1`

	credential := &Credential{}
	err := store.pool.QueryRow(ctx, query, username).Scan(
		&credential.ID,
		&credential.Username,
		&credential.PasswordHash,
		&credential.CreatedAt,
	)

	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrCredentialNotFound
		}
		return nil, fmt.Errorf("postgres_credential_store_find_failed: %w", err)
	}

	return credential, nil
}

// Copyright (c) 2026 Authcore. All rights reserved.

package auth

import (
	"context"
	"sync"
	"time"
)

// MemoryCredentialStore implements [CredentialStore] with an in-process map.
//
// # Scope
//
// Used by the test suite and for local development without PostgreSQL. A
// single mutex guards the map so the check-and-insert inside Insert is atomic,
// which upholds the uniqueness contract under concurrent registration.
type MemoryCredentialStore struct {
	mu          sync.Mutex
	credentials map[string]*Credential
}

// NewMemoryCredentialStore creates an empty in-memory credential store.
func NewMemoryCredentialStore() *MemoryCredentialStore {
	return &MemoryCredentialStore{
		credentials: make(map[string]*Credential),
	}
}

// Exists reports whether a credential with this username is stored.
func (store *MemoryCredentialStore) Exists(_ context.Context, username string) (bool, error) {
	store.mu.Lock()
	defer store.mu.Unlock()

	_, ok := store.credentials[username]
	return ok, nil
}

// Insert persists a new credential. The duplicate check and the write happen
// under one lock, so exactly one of two racing inserts wins.
func (store *MemoryCredentialStore) Insert(_ context.Context, credential *Credential) error {
	store.mu.Lock()
	defer store.mu.Unlock()

	if _, ok := store.credentials[credential.Username]; ok {
		return ErrDuplicateUsername
	}

	if credential.CreatedAt.IsZero() {
		credential.CreatedAt = time.Now()
	}

	// Store a copy so callers cannot mutate stored state afterwards.
	stored := *credential
	store.credentials[credential.Username] = &stored

	return nil
}

// Find retrieves a credential by username.
func (store *MemoryCredentialStore) Find(_ context.Context, username string) (*Credential, error) {
	store.mu.Lock()
	defer store.mu.Unlock()

	credential, ok := store.credentials[username]
	if !ok {
		return nil, ErrCredentialNotFound
	}

	found := *credential
	return &found, nil
}

// Copyright (c) 2026 Authcore. All rights reserved.

/*
Package auth implements the user identity layer of the Authcore service.

It defines the core domain entity (Credential) and the logic for account
registration and password-based login with JWT issuance.

# Architecture

This layer is the "Truth" of the system. Entities defined here have no external
dependencies and encapsulate all business rules related to user identity.
*/
package auth

import "time"

// # Domain Entities

// Credential represents one registered username with its password material.
type Credential struct {
	ID           string    `json:"id"`
	Username     string    `json:"username"`
	PasswordHash string    `json:"-"` // Explicitly omitted from JSON for security.
	CreatedAt    time.Time `json:"created_at"`
}

// # Field Identifiers

// Global field names for validation and identity mapping in the authentication domain.
const (
	FieldUsername = "username"
	FieldPassword = "password"
	FieldAccess   = "access"
	FieldRefresh  = "refresh"
	FieldMessage  = "message"
)

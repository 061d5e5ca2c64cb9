// Copyright (c) 2026 Authcore. All rights reserved.

package auth

import "time"

// # Authentication Constraints

const (
	// AccessTokenTTL is the duration a JWT access token remains valid.
	// One hour balances token leak exposure against re-login friction.
	AccessTokenTTL = 60 * time.Minute

	// RefreshTokenTTL is the duration a refresh token remains valid.
	// One day; the client is expected to re-authenticate daily.
	RefreshTokenTTL = 24 * time.Hour

	// UsernameMaxLength is the maximum accepted username length in characters.
	UsernameMaxLength = 150

	// PasswordMinLength is the minimum accepted password length in characters.
	PasswordMinLength = 8
)

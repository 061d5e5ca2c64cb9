// Copyright (c) 2026 Authcore. All rights reserved.

package sec_test

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/phamduc/authcore/internal/platform/sec"
)

const (
	testIssuer     = "authcore"
	testAccessTTL  = 60 * time.Minute
	testRefreshTTL = 24 * time.Hour
)

var testSecret = []byte("unit-test-signing-secret")

func newTestTokenService(t *testing.T, options ...sec.Option) *sec.TokenService {
	t.Helper()
	service, err := sec.NewTokenService(testSecret, testIssuer, testAccessTTL, testRefreshTTL, options...)
	require.NoError(t, err)
	return service
}

/*
TestNewTokenService_EmptySecret verifies the constructor rejects a missing secret.
*/
func TestNewTokenService_EmptySecret(t *testing.T) {
	_, err := sec.NewTokenService(nil, testIssuer, testAccessTTL, testRefreshTTL)
	assert.Error(t, err)
}

/*
TestIssueTokenPair verifies both tokens round-trip through Verify with the
identity claims intact and the correct intended use.
*/
func TestIssueTokenPair(t *testing.T) {
	service := newTestTokenService(t)

	pair, err := service.IssueTokenPair("user-123", "alice")
	require.NoError(t, err)
	require.NotEmpty(t, pair.Access)
	require.NotEmpty(t, pair.Refresh)
	assert.NotEqual(t, pair.Access, pair.Refresh)

	t.Run("access_token_claims", func(t *testing.T) {
		claims, err := service.Verify(pair.Access, sec.UseAccess)
		require.NoError(t, err)
		assert.Equal(t, "user-123", claims.UserID)
		assert.Equal(t, "alice", claims.Username)
		assert.Equal(t, "user-123", claims.Subject)
		assert.Equal(t, testIssuer, claims.Issuer)
	})

	t.Run("refresh_token_claims", func(t *testing.T) {
		claims, err := service.Verify(pair.Refresh, sec.UseRefresh)
		require.NoError(t, err)
		assert.Equal(t, "user-123", claims.UserID)
		assert.Equal(t, "alice", claims.Username)
	})
}

/*
TestVerify_UseBinding verifies a token minted for one use is rejected when
presented for the other: a refresh token can never act as an access token.
*/
func TestVerify_UseBinding(t *testing.T) {
	service := newTestTokenService(t)

	pair, err := service.IssueTokenPair("user-123", "alice")
	require.NoError(t, err)

	_, err = service.Verify(pair.Refresh, sec.UseAccess)
	assert.Error(t, err)

	_, err = service.Verify(pair.Access, sec.UseRefresh)
	assert.Error(t, err)

	_, err = service.VerifyAccessToken(pair.Refresh)
	assert.Error(t, err)
}

/*
TestVerify_Expiry moves the injected clock past each token's lifetime and
expects verification to fail without sleeping.
*/
func TestVerify_Expiry(t *testing.T) {
	current := time.Now()
	clock := func() time.Time { return current }

	service := newTestTokenService(t, sec.WithClock(clock))

	pair, err := service.IssueTokenPair("user-123", "alice")
	require.NoError(t, err)

	// Just before access expiry: still valid.
	current = current.Add(testAccessTTL - time.Minute)
	_, err = service.Verify(pair.Access, sec.UseAccess)
	assert.NoError(t, err)

	// Past access expiry: access dead, refresh still alive.
	current = current.Add(2 * time.Minute)
	_, err = service.Verify(pair.Access, sec.UseAccess)
	assert.Error(t, err)

	_, err = service.Verify(pair.Refresh, sec.UseRefresh)
	assert.NoError(t, err)

	// Past refresh expiry: both dead.
	current = current.Add(testRefreshTTL)
	_, err = service.Verify(pair.Refresh, sec.UseRefresh)
	assert.Error(t, err)
}

/*
TestVerify_WrongSecret verifies tokens signed under a different secret are rejected.
*/
func TestVerify_WrongSecret(t *testing.T) {
	service := newTestTokenService(t)

	otherService, err := sec.NewTokenService([]byte("a-completely-different-secret"), testIssuer, testAccessTTL, testRefreshTTL)
	require.NoError(t, err)

	pair, err := otherService.IssueTokenPair("user-123", "alice")
	require.NoError(t, err)

	_, err = service.Verify(pair.Access, sec.UseAccess)
	assert.Error(t, err)
}

/*
TestVerify_Malformed verifies garbage input fails cleanly.
*/
func TestVerify_Malformed(t *testing.T) {
	service := newTestTokenService(t)

	for _, tokenString := range []string{"", "not-a-jwt", "a.b.c"} {
		_, err := service.Verify(tokenString, sec.UseAccess)
		assert.Error(t, err)
	}
}

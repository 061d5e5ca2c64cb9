// Copyright (c) 2026 Authcore. All rights reserved.

package sec_test

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/phamduc/authcore/internal/platform/sec"
)

/*
TestHashPassword verifies the encoded hash format and that hashing is salted.
*/
func TestHashPassword(t *testing.T) {
	t.Run("encodes_self_describing_format", func(t *testing.T) {
		encoded, err := sec.HashPassword("correct horse battery staple")
		require.NoError(t, err)

		parts := strings.Split(encoded, "$")
		require.Len(t, parts, 4)
		assert.Equal(t, "pbkdf2_sha256", parts[0])
		assert.Equal(t, "600000", parts[1])
		assert.NotEmpty(t, parts[2])
		assert.NotEmpty(t, parts[3])
	})

	t.Run("same_password_different_salts", func(t *testing.T) {
		first, err := sec.HashPassword("repeated-password")
		require.NoError(t, err)

		second, err := sec.HashPassword("repeated-password")
		require.NoError(t, err)

		// Fresh random salt every time, so the encodings must differ.
		assert.NotEqual(t, first, second)
	})
}

/*
TestVerifyPassword exercises the verification matrix: correct password,
wrong password, and every malformed-hash shape must yield false, never panic.
*/
func TestVerifyPassword(t *testing.T) {
	encoded, err := sec.HashPassword("s3cret-password")
	require.NoError(t, err)

	t.Run("correct_password", func(t *testing.T) {
		assert.True(t, sec.VerifyPassword("s3cret-password", encoded))
	})

	t.Run("wrong_password", func(t *testing.T) {
		assert.False(t, sec.VerifyPassword("not-the-password", encoded))
	})

	t.Run("empty_password", func(t *testing.T) {
		assert.False(t, sec.VerifyPassword("", encoded))
	})

	t.Run("malformed_hashes", func(t *testing.T) {
		malformed := []struct {
			name string
			hash string
		}{
			{"empty", ""},
			{"garbage", "not-a-hash"},
			{"wrong_algorithm", "bcrypt$600000$c2FsdA$a2V5"},
			{"missing_parts", "pbkdf2_sha256$600000$c2FsdA"},
			{"non_numeric_iterations", "pbkdf2_sha256$many$c2FsdA$a2V5"},
			{"zero_iterations", "pbkdf2_sha256$0$c2FsdA$a2V5"},
			{"bad_salt_base64", "pbkdf2_sha256$600000$!!!$a2V5"},
			{"bad_key_base64", "pbkdf2_sha256$600000$c2FsdA$!!!"},
			{"empty_key", "pbkdf2_sha256$600000$c2FsdA$"},
		}

		for _, tt := range malformed {
			t.Run(tt.name, func(t *testing.T) {
				assert.False(t, sec.VerifyPassword("s3cret-password", tt.hash))
			})
		}
	})
}

/*
TestDecoyHash verifies the decoy is a valid stored hash that matches nothing
a real caller would send, and that it is stable across calls.
*/
func TestDecoyHash(t *testing.T) {
	decoy := sec.DecoyHash()

	// Must be parseable so verification performs the full key derivation.
	parts := strings.Split(decoy, "$")
	require.Len(t, parts, 4)
	assert.Equal(t, "pbkdf2_sha256", parts[0])

	// Built once, reused everywhere.
	assert.Equal(t, decoy, sec.DecoyHash())

	// An arbitrary password must not verify against it.
	assert.False(t, sec.VerifyPassword("anything", decoy))
}

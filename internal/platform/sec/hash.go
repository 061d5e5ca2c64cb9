// Copyright (c) 2026 Authcore. All rights reserved.

package sec

import (
	"crypto/rand"
	"crypto/sha256"
	"crypto/subtle"
	"encoding/base64"
	"fmt"
	"strconv"
	"strings"
	"sync"

	"golang.org/x/crypto/pbkdf2"
)

// PBKDF2-SHA256 parameters for stored password hashes.
const (
	// pbkdf2Iterations is deliberately expensive to resist offline brute force.
	pbkdf2Iterations = 600_000
	// pbkdf2SaltLength is the per-credential random salt length in bytes.
	pbkdf2SaltLength = 16
	// pbkdf2KeyLength is the derived key length in bytes.
	pbkdf2KeyLength = 32

	// hashAlgorithmTag identifies the algorithm inside the stored hash string.
	hashAlgorithmTag = "pbkdf2_sha256"
)

// HashPassword derives a salted PBKDF2-SHA256 hash of a plain-text password.
//
// # Format
//
// The returned string is self-describing so that verification never depends
// on out-of-band parameters:
//
//	pbkdf2_sha256$<iterations>$<base64 salt>$<base64 key>
func HashPassword(plainTextPassword string) (string, error) {
	salt := make([]byte, pbkdf2SaltLength)
	if _, err := rand.Read(salt); err != nil {
		return "", fmt.Errorf("sec: failed to generate salt: %w", err)
	}

	key := pbkdf2.Key([]byte(plainTextPassword), salt, pbkdf2Iterations, pbkdf2KeyLength, sha256.New)

	encoded := fmt.Sprintf("%s$%d$%s$%s",
		hashAlgorithmTag,
		pbkdf2Iterations,
		base64.RawStdEncoding.EncodeToString(salt),
		base64.RawStdEncoding.EncodeToString(key),
	)

	return encoded, nil
}

// VerifyPassword re-derives the key for a plain-text password using the salt
// and iteration count embedded in the stored hash and compares the result in
// constant time.
//
// # Constant Time
//
// The comparison is [subtle.ConstantTimeCompare] so verification latency does
// not reveal the position of the first differing byte. A malformed stored
// hash yields false.
func VerifyPassword(plainTextPassword, encodedHash string) bool {
	parts := strings.Split(encodedHash, "$")
	if len(parts) != 4 || parts[0] != hashAlgorithmTag {
		return false
	}

	iterations, err := strconv.Atoi(parts[1])
	if err != nil || iterations <= 0 {
		return false
	}

	salt, err := base64.RawStdEncoding.DecodeString(parts[2])
	if err != nil {
		return false
	}

	expectedKey, err := base64.RawStdEncoding.DecodeString(parts[3])
	if err != nil || len(expectedKey) == 0 {
		return false
	}

	computedKey := pbkdf2.Key([]byte(plainTextPassword), salt, iterations, len(expectedKey), sha256.New)

	return subtle.ConstantTimeCompare(computedKey, expectedKey) == 1
}

// decoyHash is built once and reused for every unknown-username login attempt.
var decoyHash = sync.OnceValue(func() string {
	encoded, err := HashPassword("authcore-decoy-credential")
	if err != nil {
		// Entropy failure at this point is an unrecoverable system-level error.
		panic("sec: failed to build decoy hash: " + err.Error())
	}
	return encoded
})

// DecoyHash returns a fixed, valid stored hash that matches no real credential.
//
// Login flows verify the supplied password against this hash when the
// username does not exist, so the unknown-user path performs the same key
// derivation work as the wrong-password path and the two remain
// indistinguishable by timing.
func DecoyHash() string {
	return decoyHash()
}

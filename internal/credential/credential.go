// Package credential hashes and verifies account passwords. Stored values are
// base64 of [1-byte format version][16-byte salt][32-byte PBKDF2-HMAC-SHA256
// key at 100000 iterations]; the version byte leaves room for future work
// factor upgrades without invalidating existing rows.
package credential

import (
	"crypto/rand"
	"crypto/sha256"
	"crypto/subtle"
	"encoding/base64"
	"fmt"
	"strings"

	"golang.org/x/crypto/pbkdf2"
)

const (
	formatVersion = 0x01
	saltSize      = 16
	keySize       = 32
	iterations    = 100_000

	payloadSize = 1 + saltSize + keySize
)

// Hash derives a storable credential from a plaintext password. Empty
// passwords are permitted; policy on emptiness belongs to the caller. The only
// failure mode is the entropy source.
func Hash(password string) (string, error) {
	salt := make([]byte, saltSize)
	if _, err := rand.Read(salt); err != nil {
		return "", fmt.Errorf("generate salt: %w", err)
	}

	key := pbkdf2.Key([]byte(password), salt, iterations, keySize, sha256.New)

	payload := make([]byte, 0, payloadSize)
	payload = append(payload, formatVersion)
	payload = append(payload, salt...)
	payload = append(payload, key...)

	return base64.StdEncoding.EncodeToString(payload), nil
}

// Verify reports whether password matches a stored credential. Malformed
// stored values (bad base64, wrong length or version) verify as false rather
// than erroring; the key comparison is constant-time.
func Verify(password, stored string) bool {
	if strings.TrimSpace(password) == "" || strings.TrimSpace(stored) == "" {
		return false
	}

	payload, err := base64.StdEncoding.DecodeString(stored)
	if err != nil {
		return false
	}
	if len(payload) != payloadSize || payload[0] != formatVersion {
		return false
	}

	salt := payload[1 : 1+saltSize]
	expected := payload[1+saltSize:]

	actual := pbkdf2.Key([]byte(password), salt, iterations, keySize, sha256.New)

	return subtle.ConstantTimeCompare(expected, actual) == 1
}

package credential

import (
	"crypto/sha256"
	"encoding/base64"
	"encoding/hex"
	"strings"
)

// LegacyMatches checks a password against pre-migration storage formats: the
// raw password itself, a hex SHA-256 digest (case-insensitive), or a base64
// SHA-256 digest. It is only consulted after Verify fails and goes away once
// every account has been rewritten to the versioned format.
func LegacyMatches(password, stored string) bool {
	if password == "" || stored == "" {
		return false
	}

	if stored == password {
		return true
	}

	sum := sha256.Sum256([]byte(password))

	if strings.EqualFold(stored, hex.EncodeToString(sum[:])) {
		return true
	}

	return stored == base64.StdEncoding.EncodeToString(sum[:])
}

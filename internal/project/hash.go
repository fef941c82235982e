package project

import (
	"crypto/sha256"
	"encoding/hex"
)

// pathHashLen is the number of hex characters kept from the digest.
const pathHashLen = 16

// PathHash returns the stable identity of a project: the first 16 hex
// characters of the SHA-256 of its absolute path.
func PathHash(absPath string) string {
	sum := sha256.Sum256([]byte(absPath))
	return hex.EncodeToString(sum[:])[:pathHashLen]
}

// String returns a pointer to s, or nil when s is empty. Scanner code uses
// it to turn "no output" into a JSON null.
func String(s string) *string {
	if s == "" {
		return nil
	}
	return &s
}

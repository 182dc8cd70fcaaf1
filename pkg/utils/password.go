package utils

import (
	"crypto/sha256"
	"crypto/subtle"
	"encoding/hex"
)

// HashPassword returns the lowercase hex SHA-256 digest of password.
// The digest is unsalted: equal passwords produce equal digests, matching
// rows written by earlier deployments. Callers trim passwords first, so a
// stored password with surrounding whitespace will not verify.
func HashPassword(password string) string {
	hash := sha256.Sum256([]byte(password))
	return hex.EncodeToString(hash[:])
}

// ComparePassword reports whether password produces hashedPassword.
func ComparePassword(hashedPassword, password string) bool {
	return subtle.ConstantTimeCompare([]byte(hashedPassword), []byte(HashPassword(password))) == 1
}

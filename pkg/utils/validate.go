package utils

import (
	"strings"
	"unicode/utf8"
)

// IsValidEmail applies the registration rule: an "@" followed somewhere
// by a ".". It accepts far more than RFC 5322 allows.
func IsValidEmail(email string) bool {
	at := strings.Index(email, "@")
	if at < 0 {
		return false
	}
	return strings.Contains(email[at+1:], ".")
}

// HasAtSign is the looser check used before relaying mail.
func HasAtSign(email string) bool {
	return strings.Contains(email, "@")
}

// CharCount counts characters rather than bytes.
func CharCount(s string) int {
	return utf8.RuneCountInString(s)
}

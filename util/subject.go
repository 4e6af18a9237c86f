// util/subject.go
package util

import (
	"crypto/sha256"
	"encoding/hex"
	"strings"
)

// NormalizeSubject canonicalizes a principal identifier. Every read, write
// and hash on a subject goes through this first, so differently-cased
// spellings of the same email always name the same principal.
func NormalizeSubject(subject string) string {
	return strings.ToLower(strings.TrimSpace(subject))
}

// SubjectHash returns the hex digest used as the cache key component for a
// subject. The input is normalized before hashing.
func SubjectHash(subject string) string {
	sum := sha256.Sum256([]byte(NormalizeSubject(subject)))
	return hex.EncodeToString(sum[:])
}

package auth

import (
	"crypto/sha256"
	"crypto/subtle"
	"encoding/hex"
)

// HashToken возвращает SHA-256 хэш refresh-токена в hex. В базе хранится
// только хэш, сам токен восстановить нельзя.
func HashToken(token string) string {
	sum := sha256.Sum256([]byte(token))
	return hex.EncodeToString(sum[:])
}

// CompareTokenHash сравнивает сохраненный хэш с токеном в константное время.
func CompareTokenHash(storedHash, token string) bool {
	computed := sha256.Sum256([]byte(token))
	encoded := hex.EncodeToString(computed[:])
	return subtle.ConstantTimeCompare([]byte(storedHash), []byte(encoded)) == 1
}

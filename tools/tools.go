package tools

import (
	"crypto/rand"
	"crypto/sha512"
	"encoding/hex"
	"fmt"
)

const charset = "abcdefghijklmnopqrstuvwxyzABCDEFGHIJKLMNOPQRSTUVWXYZ0123456789"

// maxUnbiased é o maior múltiplo de len(charset) que cabe num byte.
const maxUnbiased = 256 - 256%len(charset)

// EncryptTextSHA512 é usado para guardar apenas o hash dos refresh tokens.
func EncryptTextSHA512(text string) string {
	sum := sha512.Sum512([]byte(text))
	return hex.EncodeToString(sum[:])
}

// RandomString gera um texto de length caracteres de charset usando crypto/rand.
// Bytes >= maxUnbiased são descartados para não favorecer os primeiros caracteres.
func RandomString(length int) (string, error) {
	out := make([]byte, 0, length)
	buf := make([]byte, length+length/4+1)
	for len(out) < length {
		if _, err := rand.Read(buf); err != nil {
			return "", fmt.Errorf("failed to read random bytes: %w", err)
		}
		for _, b := range buf {
			if int(b) >= maxUnbiased {
				continue
			}
			out = append(out, charset[int(b)%len(charset)])
			if len(out) == length {
				break
			}
		}
	}
	return string(out), nil
}

package security

import (
	"crypto/rand"
	"crypto/subtle"
	"fmt"
)

const (
	// AuthCodeLength is the number of digits in an authentication code.
	AuthCodeLength = 4
	// InviteCodeLength is the number of characters in an invite code.
	InviteCodeLength = 6

	digits        = "0123456789"
	lettersDigits = "0123456789abcdefghijklmnopqrstuvwxyzABCDEFGHIJKLMNOPQRSTUVWXYZ"
)

// GenerateAuthCode returns a 4-digit numeric authentication code (e.g. "0421").
// Uses crypto/rand; codes act as one-time authentication secrets.
func GenerateAuthCode() (string, error) {
	return generateCode(AuthCodeLength, digits)
}

// GenerateInviteCode returns a 6-character invite code drawn from digits and
// ASCII letters. Uniqueness across users is enforced by the store, not here.
func GenerateInviteCode() (string, error) {
	return generateCode(InviteCodeLength, lettersDigits)
}

// generateCode draws length characters independently and uniformly from
// alphabet. Rejection sampling avoids modulo bias; alphabet must have at most
// 256 characters.
func generateCode(length int, alphabet string) (string, error) {
	if length <= 0 || len(alphabet) == 0 || len(alphabet) > 256 {
		return "", fmt.Errorf("security: invalid code spec length=%d alphabet=%d", length, len(alphabet))
	}
	max := byte(256 - 256%len(alphabet))
	out := make([]byte, 0, length)
	buf := make([]byte, length)
	for len(out) < length {
		if _, err := rand.Read(buf); err != nil {
			return "", err
		}
		for _, b := range buf {
			if max != 0 && b >= max {
				continue
			}
			out = append(out, alphabet[int(b)%len(alphabet)])
			if len(out) == length {
				break
			}
		}
	}
	return string(out), nil
}

// CodeEqual compares a submitted code with the stored one in constant time.
// Returns false when the stored code is empty (no code outstanding).
func CodeEqual(submitted, stored string) bool {
	if stored == "" {
		return false
	}
	return subtle.ConstantTimeCompare([]byte(submitted), []byte(stored)) == 1
}

package rand

import (
	"crypto/rand"
	"fmt"
)

const alphanumeric = "ABCDEFGHIJKLMNOPQRSTUVWXYZabcdefghijklmnopqrstuvwxyz0123456789"

// String returns a random alphanumeric string of length n read from crypto/rand.
func String(n int) (string, error) {
	return fromAlphabet(alphanumeric, n)
}

// fromAlphabet draws bytes from crypto/rand and keeps the ones that fall inside
// the largest multiple of len(alphabet) so every character is equally likely.
func fromAlphabet(alphabet string, n int) (string, error) {
	if len(alphabet) == 0 || len(alphabet) > 256 {
		return "", fmt.Errorf("alphabet length must be between 1 and 256, got %d", len(alphabet))
	}
	if n <= 0 {
		return "", nil
	}

	limit := 256 - 256%len(alphabet)
	result := make([]byte, 0, n)
	buf := make([]byte, n+n/2)
	for len(result) < n {
		if _, err := rand.Read(buf); err != nil {
			return "", fmt.Errorf("reading random bytes: %w", err)
		}
		for _, b := range buf {
			if int(b) >= limit {
				continue
			}
			result = append(result, alphabet[int(b)%len(alphabet)])
			if len(result) == n {
				break
			}
		}
	}

	return string(result), nil
}

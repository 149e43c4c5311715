package util

import (
	"crypto/rand"
	"encoding/hex"
	"math/big"
)

// GenerateToken returns n random bytes hex-encoded, so the resulting
// string is 2n characters long. Used for session and verification tokens.
func GenerateToken(n int) (string, error) {
	b := make([]byte, n)

	_, err := rand.Read(b)
	if err != nil {
		return "", err
	}

	return hex.EncodeToString(b), nil
}

// GenerateNumericCode returns a string of n random decimal digits for
// OTP-style flows.
func GenerateNumericCode(n int) (string, error) {
	b := make([]byte, n)

	for i := range b {
		d, err := rand.Int(rand.Reader, big.NewInt(10))
		if err != nil {
			return "", err
		}

		b[i] = byte('0' + d.Int64())
	}

	return string(b), nil
}

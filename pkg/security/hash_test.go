package security

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestHashRoundTrip(t *testing.T) {
	h := New()

	passwords := []string{
		"correct horse battery staple",
		"pässwörd-with-ümlauts",
		"日本語のパスワード",
		strings.Repeat("a", 70),
	}

	for _, p := range passwords {
		hashed, err := h.GenerateFromPassword(p)
		require.NoError(t, err)
		require.NotEqual(t, p, hashed)

		ok, err := h.VerifyPasswd(p, hashed)
		require.NoError(t, err)
		assert.True(t, ok, "password %q should verify against its own hash", p)
	}
}

func TestHashMismatchIsNotAnError(t *testing.T) {
	h := New()

	hashed, err := h.GenerateFromPassword("hunter22")
	require.NoError(t, err)

	ok, err := h.VerifyPasswd("hunter23", hashed)
	require.NoError(t, err)
	assert.False(t, ok)
}

func TestHashSingleCharMutations(t *testing.T) {
	h := New()

	const password = "s0me-long-ish-passphrase"

	hashed, err := h.GenerateFromPassword(password)
	require.NoError(t, err)

	for i := range password {
		mutated := []byte(password)
		mutated[i] ^= 0x01

		ok, err := h.VerifyPasswd(string(mutated), hashed)
		require.NoError(t, err)
		assert.False(t, ok, "mutation at index %d should not verify", i)
	}
}

func TestHashMalformedHashIsAnError(t *testing.T) {
	h := New()

	ok, err := h.VerifyPasswd("anything", "not-a-bcrypt-hash")
	assert.Error(t, err)
	assert.False(t, ok)
}

func TestHashesAreSalted(t *testing.T) {
	h := New()

	a, err := h.GenerateFromPassword("same-password")
	require.NoError(t, err)

	b, err := h.GenerateFromPassword("same-password")
	require.NoError(t, err)

	assert.NotEqual(t, a, b)
}

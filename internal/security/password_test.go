package security

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestHashPassword_RoundTrip(t *testing.T) {
	hash, err := HashPassword("passw0rd")
	require.NoError(t, err)

	assert.True(t, VerifyPassword("passw0rd", hash))
	assert.False(t, VerifyPassword("wrongpass", hash))
}

func TestHashPassword_SaltedOutputsDiffer(t *testing.T) {
	h1, err := HashPassword("same-password")
	require.NoError(t, err)
	h2, err := HashPassword("same-password")
	require.NoError(t, err)

	assert.NotEqual(t, h1, h2)
	assert.True(t, VerifyPassword("same-password", h1))
	assert.True(t, VerifyPassword("same-password", h2))
}

func TestVerifyPassword_MalformedHashFailsClosed(t *testing.T) {
	tests := []struct {
		name string
		hash string
	}{
		{"empty", ""},
		{"not a hash", "plaintext"},
		{"wrong algorithm", "$bcrypt$v=19$t=3,m=65536,p=2$c2FsdA$aGFzaA"},
		{"wrong version", "$argon2id$v=18$t=3,m=65536,p=2$c2FsdA$aGFzaA"},
		{"missing sections", "$argon2id$v=19$t=3,m=65536,p=2"},
		{"bad params", "$argon2id$v=19$t=x,m=y,p=z$c2FsdA$aGFzaA"},
		{"bad salt base64", "$argon2id$v=19$t=3,m=65536,p=2$!!!$aGFzaA"},
		{"bad hash base64", "$argon2id$v=19$t=3,m=65536,p=2$c2FsdA$!!!"},
		{"empty hash section", "$argon2id$v=19$t=3,m=65536,p=2$c2FsdA$"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.NotPanics(t, func() {
				assert.False(t, VerifyPassword("passw0rd", tt.hash))
			})
		})
	}
}

package devstore

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestTokenRoundTrip(t *testing.T) {
	user := userRecord{ID: "u1", Email: "a@b.c", DisplayName: "Ada"}
	signed, err := signToken("secret", user)
	require.NoError(t, err)

	sub, err := verifyToken("secret", signed)
	require.NoError(t, err)
	assert.Equal(t, "u1", sub)
}

func TestVerifyTokenRejectsWrongSecret(t *testing.T) {
	signed, err := signToken("secret", userRecord{ID: "u1"})
	require.NoError(t, err)

	_, err = verifyToken("other", signed)
	assert.Error(t, err)
}

func TestVerifyTokenRejectsGarbage(t *testing.T) {
	_, err := verifyToken("secret", "not-a-token")
	assert.Error(t, err)
}

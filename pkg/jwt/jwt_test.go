package jwt

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const testSecret = "test-secret-that-is-long-enough-0123"

func TestGenerateAndValidateToken(t *testing.T) {
	token, err := GenerateToken(42, testSecret)
	require.NoError(t, err)
	require.NotEmpty(t, token)

	claims, err := ValidateToken(token, testSecret)
	require.NoError(t, err)
	assert.Equal(t, uint(42), claims.UserID)
	require.NotNil(t, claims.ExpiresAt)
	assert.True(t, claims.ExpiresAt.After(claims.IssuedAt.Time))
}

func TestValidateToken_WrongSecret(t *testing.T) {
	token, err := GenerateToken(42, testSecret)
	require.NoError(t, err)

	_, err = ValidateToken(token, "a-completely-different-secret-value")
	assert.Error(t, err)
}

func TestValidateToken_Garbage(t *testing.T) {
	_, err := ValidateToken("not.a.token", testSecret)
	assert.Error(t, err)
}

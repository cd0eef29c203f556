package security

import (
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestTokenIssuer_IssueAndVerify(t *testing.T) {
	issuer, err := NewTokenIssuer("test-secret", "bookbazaar", time.Hour)
	require.NoError(t, err)

	token, err := issuer.Issue("user-1", "alice", "alice@example.com", true)
	require.NoError(t, err)
	require.NotEmpty(t, token)

	claims, err := issuer.Verify(token)
	require.NoError(t, err)
	assert.Equal(t, "user-1", claims.Subject)
	assert.Equal(t, "alice", claims.Username)
	assert.Equal(t, "alice@example.com", claims.Email)
	assert.True(t, claims.IsAdmin)
}

func TestTokenIssuer_RejectsBadTokens(t *testing.T) {
	issuer, err := NewTokenIssuer("test-secret", "bookbazaar", time.Hour)
	require.NoError(t, err)

	t.Run("garbage token", func(t *testing.T) {
		_, err := issuer.Verify("not.a.token")
		assert.Error(t, err)
	})

	t.Run("wrong secret", func(t *testing.T) {
		other, err := NewTokenIssuer("other-secret", "bookbazaar", time.Hour)
		require.NoError(t, err)

		token, err := other.Issue("user-1", "alice", "alice@example.com", false)
		require.NoError(t, err)

		_, err = issuer.Verify(token)
		assert.Error(t, err)
	})

	t.Run("wrong issuer", func(t *testing.T) {
		other, err := NewTokenIssuer("test-secret", "someone-else", time.Hour)
		require.NoError(t, err)

		token, err := other.Issue("user-1", "alice", "alice@example.com", false)
		require.NoError(t, err)

		_, err = issuer.Verify(token)
		assert.Error(t, err)
	})

	t.Run("expired token", func(t *testing.T) {
		short, err := NewTokenIssuer("test-secret", "bookbazaar", -time.Minute)
		require.NoError(t, err)

		token, err := short.Issue("user-1", "alice", "alice@example.com", false)
		require.NoError(t, err)

		_, err = issuer.Verify(token)
		assert.Error(t, err)
	})
}

func TestNewTokenIssuer_RequiresSecret(t *testing.T) {
	_, err := NewTokenIssuer("", "bookbazaar", time.Hour)
	assert.Error(t, err)
}

func TestGenerateAPIKey(t *testing.T) {
	key1, err := GenerateAPIKey()
	require.NoError(t, err)
	key2, err := GenerateAPIKey()
	require.NoError(t, err)

	assert.True(t, strings.HasPrefix(key1, "bzk_"))
	assert.NotEqual(t, key1, key2)
	assert.Len(t, key1, 4+2*apiKeyBytes)
}

func TestPasswordHashing(t *testing.T) {
	hash, err := HashPassword("correcthorse")
	require.NoError(t, err)
	assert.NotEqual(t, "correcthorse", hash)

	assert.True(t, CheckPassword(hash, "correcthorse"))
	assert.False(t, CheckPassword(hash, "wrong"))
}

package auth

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/rashmods/helpdesk/internal/domain"
)

func TestTokenRoundTrip(t *testing.T) {
	tm := NewTokenManager("test-secret", 60)

	token, expiresAt, err := tm.GenerateToken("mod-carol", domain.RoleModerator)
	require.NoError(t, err)
	require.NotEmpty(t, token)
	assert.False(t, expiresAt.IsZero())

	claims, err := tm.ParseToken(token)
	require.NoError(t, err)
	assert.Equal(t, "mod-carol", claims.SubjectID)
	assert.Equal(t, domain.RoleModerator, claims.Role)
}

func TestTokenRejectsWrongSecret(t *testing.T) {
	tm := NewTokenManager("test-secret", 60)
	other := NewTokenManager("other-secret", 60)

	token, _, err := tm.GenerateToken("alice", domain.RoleMember)
	require.NoError(t, err)

	_, err = other.ParseToken(token)
	assert.Error(t, err)
}

func TestTokenRejectsGarbage(t *testing.T) {
	tm := NewTokenManager("test-secret", 60)

	_, err := tm.ParseToken("not.a.token")
	assert.Error(t, err)
}

func TestTokenTTLFallback(t *testing.T) {
	tm := NewTokenManager("test-secret", 0)

	token, _, err := tm.GenerateToken("alice", domain.RoleMember)
	require.NoError(t, err)

	claims, err := tm.ParseToken(token)
	require.NoError(t, err)
	assert.Equal(t, domain.RoleMember, claims.Role)
}

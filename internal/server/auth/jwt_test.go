package auth

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestTokenRoundTrip(t *testing.T) {
	secret := []byte("test-secret")

	token, err := GenerateToken("user-1", secret, time.Minute)
	require.NoError(t, err)

	userID, err := GetUserIDFromToken(token, secret)
	require.NoError(t, err)
	assert.Equal(t, "user-1", userID)
}

func TestTokenWrongKey(t *testing.T) {
	token, err := GenerateToken("user-1", []byte("key-a"), time.Minute)
	require.NoError(t, err)

	_, err = GetUserIDFromToken(token, []byte("key-b"))
	assert.Error(t, err)
}

func TestTokenExpired(t *testing.T) {
	secret := []byte("test-secret")

	token, err := GenerateToken("user-1", secret, -time.Minute)
	require.NoError(t, err)

	_, err = GetUserIDFromToken(token, secret)
	assert.Error(t, err)
}

func TestTokenGarbage(t *testing.T) {
	_, err := GetUserIDFromToken("not-a-token", []byte("test-secret"))
	assert.Error(t, err)
}

func TestSubjectContext(t *testing.T) {
	ctx := context.Background()
	assert.Equal(t, "", SubjectFromContext(ctx))

	ctx = ContextWithSubject(ctx, "dispatcher-12")
	assert.Equal(t, "dispatcher-12", SubjectFromContext(ctx))
}

package auth

import (
	"path/filepath"
	"testing"
	"time"

	"github.com/golang-jwt/jwt"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFileTokenStoreRoundTrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nested", "token")
	store := NewFileTokenStore(path)

	assert.Empty(t, store.Token())

	require.NoError(t, store.Save("tok-abc"))
	assert.Equal(t, "tok-abc", store.Token())

	require.NoError(t, store.Save("tok-rotated"))
	assert.Equal(t, "tok-rotated", store.Token())

	require.NoError(t, store.Clear())
	assert.Empty(t, store.Token())
}

func TestFileTokenStoreClearIsIdempotent(t *testing.T) {
	store := NewFileTokenStore(filepath.Join(t.TempDir(), "token"))

	assert.NoError(t, store.Clear())
	assert.NoError(t, store.Clear())
}

func TestMemTokenStore(t *testing.T) {
	store := &MemTokenStore{}

	assert.Empty(t, store.Token())
	require.NoError(t, store.Save("tok"))
	assert.Equal(t, "tok", store.Token())
	require.NoError(t, store.Clear())
	assert.Empty(t, store.Token())
}

func TestTokenExpiry(t *testing.T) {
	expiry := time.Now().Add(2 * time.Hour).Truncate(time.Second)

	signed, err := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.MapClaims{
		"user_id": 1,
		"exp":     expiry.Unix(),
	}).SignedString([]byte("test-secret"))
	require.NoError(t, err)

	got, err := TokenExpiry(signed)
	require.NoError(t, err)
	assert.True(t, got.Equal(expiry), "got %v, want %v", got, expiry)
}

func TestTokenExpiryWithoutClaim(t *testing.T) {
	signed, err := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.MapClaims{
		"user_id": 1,
	}).SignedString([]byte("test-secret"))
	require.NoError(t, err)

	_, err = TokenExpiry(signed)
	assert.Error(t, err)
}

func TestTokenExpiryGarbage(t *testing.T) {
	_, err := TokenExpiry("not-a-jwt")
	assert.Error(t, err)
}

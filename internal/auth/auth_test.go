package auth

import (
	"encoding/hex"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestHashAndVerifyPassword(t *testing.T) {
	hash, err := HashPassword("correct horse battery staple")
	require.NoError(t, err)
	assert.Contains(t, hash, "$argon2id$")

	ok, err := VerifyPassword(hash, "correct horse battery staple")
	require.NoError(t, err)
	assert.True(t, ok)

	ok, err = VerifyPassword(hash, "wrong password")
	require.NoError(t, err)
	assert.False(t, ok)
}

func TestHashPassword_RejectsEmptyAndHuge(t *testing.T) {
	_, err := HashPassword("")
	assert.Error(t, err)

	huge := make([]byte, maxPasswordLength+1)
	_, err = HashPassword(string(huge))
	assert.Error(t, err)
}

func TestVerifyPassword_MalformedHash(t *testing.T) {
	ok, err := VerifyPassword("not-a-real-hash", "password")
	require.NoError(t, err)
	assert.False(t, ok)
}

func TestTokenService_RoundTrip(t *testing.T) {
	key := make([]byte, keyBytesSize)
	for i := range key {
		key[i] = byte(i)
	}

	svc, err := NewTokenService(hex.EncodeToString(key), time.Hour)
	require.NoError(t, err)

	token, err := svc.GenerateToken("operator")
	require.NoError(t, err)
	require.NotEmpty(t, token)

	claims, err := svc.VerifyToken(token)
	require.NoError(t, err)
	assert.Equal(t, "operator", claims.Username)
	assert.Equal(t, "operator", claims.Subject)
	assert.Equal(t, tokenIssuer, claims.Issuer)
	assert.NotEmpty(t, claims.TokenID)
}

func TestTokenService_RejectsExpiredToken(t *testing.T) {
	key := make([]byte, keyBytesSize)
	svc, err := NewTokenService(hex.EncodeToString(key), -time.Minute)
	require.NoError(t, err)

	token, err := svc.GenerateToken("operator")
	require.NoError(t, err)

	_, err = svc.VerifyToken(token)
	assert.Error(t, err)
}

func TestTokenService_RejectsGarbage(t *testing.T) {
	key := make([]byte, keyBytesSize)
	svc, err := NewTokenService(hex.EncodeToString(key), time.Hour)
	require.NoError(t, err)

	_, err = svc.VerifyToken("v4.local.garbage")
	assert.Error(t, err)
}

func TestNewTokenService_RejectsBadKeys(t *testing.T) {
	_, err := NewTokenService("short", time.Hour)
	assert.Error(t, err)

	_, err = NewTokenService(string(make([]byte, keyHexSize)), time.Hour)
	assert.Error(t, err)
}

func TestLoadOrGenerateKey(t *testing.T) {
	dir := t.TempDir()

	key, err := LoadOrGenerateKey(dir)
	require.NoError(t, err)
	assert.Len(t, key, keyLength)

	// Second load returns the same key.
	again, err := LoadOrGenerateKey(dir)
	require.NoError(t, err)
	assert.Equal(t, key, again)

	// Corrupt key file is rejected rather than silently regenerated.
	require.NoError(t, os.WriteFile(filepath.Join(dir, "auth.key"), []byte("nonsense"), 0o600))
	_, err = LoadOrGenerateKey(dir)
	assert.Error(t, err)
}

package utils

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dangtoan2205/asset-manager-sub000/config"
)

func init() {
	config.JWTKey = []byte("test-signing-key")
	config.JWTExpiration = time.Hour
}

func TestPasswordHashRoundTrip(t *testing.T) {
	hash, err := HashPassword("correct horse battery staple")
	require.NoError(t, err)
	assert.NotEqual(t, "correct horse battery staple", hash)

	assert.True(t, CheckPasswordHash("correct horse battery staple", hash))
	assert.False(t, CheckPasswordHash("wrong password", hash))
}

func TestGenerateRandomPassword(t *testing.T) {
	a := GenerateRandomPassword(16)
	b := GenerateRandomPassword(16)
	assert.Len(t, a, 16)
	assert.NotEqual(t, a, b)
}

func TestJWTRoundTrip(t *testing.T) {
	token, err := GenerateJWT("64f000000000000000000001", "alice", "manager")
	require.NoError(t, err)

	claims, err := ValidateJWT(token)
	require.NoError(t, err)
	assert.Equal(t, "64f000000000000000000001", claims.UserID)
	assert.Equal(t, "alice", claims.Name)
	assert.Equal(t, "manager", claims.Role)
}

func TestJWTRejectsTampering(t *testing.T) {
	token, err := GenerateJWT("64f000000000000000000001", "alice", "manager")
	require.NoError(t, err)

	_, err = ValidateJWT(token + "x")
	assert.Error(t, err)

	_, err = ValidateJWT("not.a.token")
	assert.Error(t, err)
}

func TestJWTExpiry(t *testing.T) {
	orig := config.JWTExpiration
	config.JWTExpiration = -time.Minute
	defer func() { config.JWTExpiration = orig }()

	token, err := GenerateJWT("64f000000000000000000001", "alice", "manager")
	require.NoError(t, err)

	_, err = ValidateJWT(token)
	assert.Error(t, err)
}

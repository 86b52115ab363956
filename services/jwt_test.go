package services

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestJWT() *JWTService {
	return &JWTService{
		AccessTokenDuration: time.Hour,
		jwtSecretKey:        "test-secret",
	}
}

func TestJWTRoundTrip(t *testing.T) {
	svc := newTestJWT()

	token, err := svc.ToJWT("u1")
	require.NoError(t, err)

	userID, err := svc.VerifyJWTToken(token)
	require.NoError(t, err)
	assert.Equal(t, "u1", userID)
}

func TestVerifyJWTTokenRejectsWrongSecret(t *testing.T) {
	token, err := newTestJWT().ToJWT("u1")
	require.NoError(t, err)

	other := &JWTService{AccessTokenDuration: time.Hour, jwtSecretKey: "different"}
	_, err = other.VerifyJWTToken(token)
	assert.Error(t, err)
}

func TestVerifyJWTTokenRejectsExpired(t *testing.T) {
	svc := newTestJWT()
	svc.AccessTokenDuration = -time.Minute

	token, err := svc.ToJWT("u1")
	require.NoError(t, err)

	_, err = svc.VerifyJWTToken(token)
	assert.Error(t, err)
}

func TestVerifyJWTTokenRejectsGarbage(t *testing.T) {
	_, err := newTestJWT().VerifyJWTToken("not.a.token")
	assert.Error(t, err)
}

func TestExtractTokenFromHeader(t *testing.T) {
	svc := newTestJWT()

	token, err := svc.ExtractTokenFromHeader("Bearer abc123")
	require.NoError(t, err)
	assert.Equal(t, "abc123", token)

	_, err = svc.ExtractTokenFromHeader("")
	assert.Error(t, err)

	_, err = svc.ExtractTokenFromHeader("Basic abc123")
	assert.Error(t, err)
}

func TestGenerateTokenPair(t *testing.T) {
	svc := newTestJWT()

	pair, err := svc.GenerateTokenPair("u1")
	require.NoError(t, err)
	assert.NotEmpty(t, pair.AccessToken)
	assert.Equal(t, int64(3600), pair.ExpiresIn)
}

package auth

import (
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/require"
)

func signTestToken(t *testing.T, exp time.Time) string {
	t.Helper()
	tok := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.MapClaims{
		"id":  float64(42),
		"exp": exp.Unix(),
	})
	s, err := tok.SignedString([]byte("test-secret"))
	require.NoError(t, err)
	return s
}

func TestSignAndParseToken(t *testing.T) {
	t.Setenv("JWT_SECRET", "test-secret")
	t.Setenv("JWT_EXPIRE", "1h")

	token, err := SignToken(42)
	require.NoError(t, err)

	id, err := ParseToken(token)
	require.NoError(t, err)
	require.Equal(t, uint(42), id)
}

func TestParseTokenRejectsBadInput(t *testing.T) {
	t.Setenv("JWT_SECRET", "test-secret")

	_, err := ParseToken("not-a-token")
	require.Error(t, err)

	// Signed with a different secret.
	other := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.MapClaims{"id": float64(1), "exp": time.Now().Add(time.Hour).Unix()})
	s, err := other.SignedString([]byte("wrong-secret"))
	require.NoError(t, err)
	_, err = ParseToken(s)
	require.Error(t, err)

	// Expired.
	_, err = ParseToken(signTestToken(t, time.Now().Add(-time.Minute)))
	require.Error(t, err)
}

func TestTTLForToken(t *testing.T) {
	now := time.Now()

	t.Run("ttl tracks token expiry", func(t *testing.T) {
		ttl := ttlForToken(signTestToken(t, now.Add(time.Hour)), now)
		require.InDelta(t, time.Hour, ttl, float64(2*time.Second))
	})

	t.Run("expired token has no ttl", func(t *testing.T) {
		ttl := ttlForToken(signTestToken(t, now.Add(-time.Minute)), now)
		require.LessOrEqual(t, ttl, time.Duration(0))
	})

	t.Run("garbage token has no ttl", func(t *testing.T) {
		require.Zero(t, ttlForToken("garbage", now))
	})
}

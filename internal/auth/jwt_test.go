package auth

import (
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/fleetline/taller/internal/auth/domain"
	"github.com/fleetline/taller/internal/config"
)

const testSecret = "test-secret-key"

func mintToken(t *testing.T, secret string, claims jwt.MapClaims) string {
	t.Helper()
	token, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString([]byte(secret))
	require.NoError(t, err)
	return token
}

func TestVerify(t *testing.T) {
	verifier := NewVerifier(config.Config{AuthJWTSecret: testSecret})

	token := mintToken(t, testSecret, jwt.MapClaims{
		"sub":   "12345",
		"email": "laura@taller.local",
		"role":  "revisor",
		"exp":   time.Now().Add(time.Hour).Unix(),
	})

	user, err := verifier.Verify(token)
	require.NoError(t, err)
	assert.Equal(t, int64(12345), user.ID)
	assert.Equal(t, "laura@taller.local", user.Email)
	assert.Equal(t, domain.RoleRevisor, user.Role)
}

func TestVerifyRejections(t *testing.T) {
	verifier := NewVerifier(config.Config{AuthJWTSecret: testSecret})
	exp := time.Now().Add(time.Hour).Unix()

	t.Run("expired token", func(t *testing.T) {
		token := mintToken(t, testSecret, jwt.MapClaims{
			"sub":  "1",
			"role": "ADMIN",
			"exp":  time.Now().Add(-time.Hour).Unix(),
		})
		_, err := verifier.Verify(token)
		assert.ErrorIs(t, err, domain.ErrTokenExpired)
	})

	t.Run("wrong signing key", func(t *testing.T) {
		token := mintToken(t, "other-secret", jwt.MapClaims{"sub": "1", "role": "ADMIN", "exp": exp})
		_, err := verifier.Verify(token)
		assert.ErrorIs(t, err, domain.ErrInvalidToken)
	})

	t.Run("missing role claim", func(t *testing.T) {
		token := mintToken(t, testSecret, jwt.MapClaims{"sub": "1", "exp": exp})
		_, err := verifier.Verify(token)
		assert.ErrorIs(t, err, domain.ErrInvalidToken)
	})

	t.Run("unknown role", func(t *testing.T) {
		token := mintToken(t, testSecret, jwt.MapClaims{"sub": "1", "role": "SUPERVISOR", "exp": exp})
		_, err := verifier.Verify(token)
		assert.ErrorIs(t, err, domain.ErrInvalidToken)
	})

	t.Run("garbage token", func(t *testing.T) {
		_, err := verifier.Verify("not.a.jwt")
		assert.ErrorIs(t, err, domain.ErrInvalidToken)
	})

	t.Run("empty secret refuses everything", func(t *testing.T) {
		empty := NewVerifier(config.Config{})
		token := mintToken(t, testSecret, jwt.MapClaims{"sub": "1", "role": "ADMIN", "exp": exp})
		_, err := empty.Verify(token)
		assert.ErrorIs(t, err, domain.ErrInvalidToken)
	})
}

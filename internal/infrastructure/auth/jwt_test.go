package auth

import (
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"github.com/retail/backend/internal/infrastructure/config"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestService() *JWTService {
	return NewJWTService(config.JWTConfig{
		Secret:          "test-secret-key-that-is-long-enough",
		Issuer:          "retail-backend-test",
		ExpirationHours: 1,
	})
}

func TestJWTService_GenerateToken(t *testing.T) {
	svc := newTestService()
	userID := uuid.New()

	token, expiresAt, err := svc.GenerateToken(userID, RoleCustomer)
	require.NoError(t, err)
	assert.NotEmpty(t, token)
	assert.WithinDuration(t, time.Now().Add(time.Hour), expiresAt, 5*time.Second)
}

func TestJWTService_ValidateToken(t *testing.T) {
	svc := newTestService()
	userID := uuid.New()

	t.Run("round trips claims", func(t *testing.T) {
		token, _, err := svc.GenerateToken(userID, RoleAdmin)
		require.NoError(t, err)

		claims, err := svc.ValidateToken(token)
		require.NoError(t, err)
		assert.Equal(t, userID.String(), claims.UserID)
		assert.Equal(t, RoleAdmin, claims.Role)
		assert.Equal(t, "retail-backend-test", claims.Issuer)
		assert.True(t, claims.IsAdmin())

		parsed, err := claims.GetUserUUID()
		require.NoError(t, err)
		assert.Equal(t, userID, parsed)
	})

	t.Run("rejects garbage", func(t *testing.T) {
		_, err := svc.ValidateToken("not-a-token")
		assert.ErrorIs(t, err, ErrInvalidToken)
	})

	t.Run("rejects token signed with another secret", func(t *testing.T) {
		other := NewJWTService(config.JWTConfig{
			Secret:          "a-completely-different-secret-key",
			Issuer:          "retail-backend-test",
			ExpirationHours: 1,
		})
		token, _, err := other.GenerateToken(userID, RoleCustomer)
		require.NoError(t, err)

		_, err = svc.ValidateToken(token)
		assert.ErrorIs(t, err, ErrInvalidToken)
	})

	t.Run("rejects expired token", func(t *testing.T) {
		now := time.Now()
		claims := &Claims{
			RegisteredClaims: jwt.RegisteredClaims{
				ExpiresAt: jwt.NewNumericDate(now.Add(-time.Hour)),
				IssuedAt:  jwt.NewNumericDate(now.Add(-2 * time.Hour)),
			},
			UserID: userID.String(),
			Role:   RoleCustomer,
		}
		token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
		signed, err := token.SignedString([]byte("test-secret-key-that-is-long-enough"))
		require.NoError(t, err)

		_, err = svc.ValidateToken(signed)
		assert.ErrorIs(t, err, ErrExpiredToken)
	})

	t.Run("rejects token without user_id", func(t *testing.T) {
		now := time.Now()
		claims := &Claims{
			RegisteredClaims: jwt.RegisteredClaims{
				ExpiresAt: jwt.NewNumericDate(now.Add(time.Hour)),
				IssuedAt:  jwt.NewNumericDate(now),
			},
			Role: RoleCustomer,
		}
		token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
		signed, err := token.SignedString([]byte("test-secret-key-that-is-long-enough"))
		require.NoError(t, err)

		_, err = svc.ValidateToken(signed)
		assert.ErrorIs(t, err, ErrMissingUserID)
	})

	t.Run("rejects non-HMAC signing method", func(t *testing.T) {
		// alg=none style tokens must not validate
		token := jwt.NewWithClaims(jwt.SigningMethodNone, &Claims{UserID: userID.String()})
		signed, err := token.SignedString(jwt.UnsafeAllowNoneSignatureType)
		require.NoError(t, err)

		_, err = svc.ValidateToken(signed)
		assert.ErrorIs(t, err, ErrInvalidToken)
	})
}

func TestClaims_IsAdmin(t *testing.T) {
	assert.True(t, (&Claims{Role: RoleAdmin}).IsAdmin())
	assert.False(t, (&Claims{Role: RoleCustomer}).IsAdmin())
	assert.False(t, (&Claims{}).IsAdmin())
}

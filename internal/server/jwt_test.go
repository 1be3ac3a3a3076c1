package server

import (
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jordan/vibe-jobs/internal/config"
)

func testJWTService() *JWTService {
	return NewJWTService(&config.JWTConfig{
		Secret:          "test-secret-key-for-jwt-signing-minimum-32-bytes",
		ExpirationHours: 24,
	})
}

func TestJWTService_GenerateAndValidate(t *testing.T) {
	svc := testJWTService()
	identityID := uuid.New()

	token, err := svc.GenerateToken(identityID)
	require.NoError(t, err)
	require.NotEmpty(t, token)

	claims, err := svc.ValidateToken(token)
	require.NoError(t, err)
	assert.Equal(t, identityID, claims.GetIdentityID())
}

func TestJWTService_ValidateToken_Empty(t *testing.T) {
	svc := testJWTService()

	_, err := svc.ValidateToken("")
	assert.Error(t, err)
}

func TestJWTService_ValidateToken_Malformed(t *testing.T) {
	svc := testJWTService()

	_, err := svc.ValidateToken("not-a-jwt")
	assert.Error(t, err)
}

func TestJWTService_ValidateToken_WrongSecret(t *testing.T) {
	svc := testJWTService()
	other := NewJWTService(&config.JWTConfig{
		Secret:          "a-completely-different-secret-also-32-bytes!",
		ExpirationHours: 24,
	})

	token, err := svc.GenerateToken(uuid.New())
	require.NoError(t, err)

	_, err = other.ValidateToken(token)
	assert.Error(t, err)
}

func TestJWTService_ValidateToken_Expired(t *testing.T) {
	svc := testJWTService()
	identityID := uuid.New()

	// Hand-build an already-expired token with the same secret.
	now := time.Now().Add(-48 * time.Hour)
	claims := &Claims{
		IdentityID: identityID,
		RegisteredClaims: jwt.RegisteredClaims{
			ExpiresAt: jwt.NewNumericDate(now.Add(time.Hour)),
			IssuedAt:  jwt.NewNumericDate(now),
			NotBefore: jwt.NewNumericDate(now),
		},
	}
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	tokenString, err := token.SignedString([]byte("test-secret-key-for-jwt-signing-minimum-32-bytes"))
	require.NoError(t, err)

	_, err = svc.ValidateToken(tokenString)
	assert.Error(t, err)
}

func TestJWTService_AsTokenValidator(t *testing.T) {
	svc := testJWTService()
	identityID := uuid.New()

	token, err := svc.GenerateToken(identityID)
	require.NoError(t, err)

	validator := svc.AsTokenValidator()
	claims, err := validator.ValidateToken(token)
	require.NoError(t, err)
	assert.Equal(t, identityID, claims.GetIdentityID())
}

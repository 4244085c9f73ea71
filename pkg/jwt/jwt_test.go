package jwt_test

import (
	"testing"
	"time"

	"pawhome/backend/internal/config"
	"pawhome/backend/pkg/jwt"

	gojwt "github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func init() {
	config.AppConfig = &config.Config{JWTSecret: "test-secret"}
}

func signToken(t *testing.T, secret string, expiresAt time.Time) string {
	t.Helper()

	claims := gojwt.MapClaims{
		"sub":  float64(7),
		"role": "adopter",
		"exp":  expiresAt.Unix(),
		"iat":  time.Now().Unix(),
	}
	signed, err := gojwt.NewWithClaims(gojwt.SigningMethodHS256, claims).SignedString([]byte(secret))
	require.NoError(t, err)
	return signed
}

func TestGenerateAndParse(t *testing.T) {
	token, err := jwt.GenerateToken(42, "shelter_staff")
	require.NoError(t, err)

	claims, err := jwt.ParseToken(token)
	require.NoError(t, err)
	assert.EqualValues(t, 42, claims.UserID)
	assert.Equal(t, "shelter_staff", claims.Role)
}

func TestParseExpiredToken(t *testing.T) {
	token := signToken(t, "test-secret", time.Now().Add(-time.Minute))

	_, err := jwt.ParseToken(token)
	assert.ErrorIs(t, err, jwt.ErrTokenExpired)
}

func TestParseWrongSecret(t *testing.T) {
	token := signToken(t, "other-secret", time.Now().Add(time.Hour))

	_, err := jwt.ParseToken(token)
	assert.ErrorIs(t, err, jwt.ErrTokenInvalid)
}

func TestParseGarbage(t *testing.T) {
	_, err := jwt.ParseToken("not-a-token")
	assert.ErrorIs(t, err, jwt.ErrTokenInvalid)
}

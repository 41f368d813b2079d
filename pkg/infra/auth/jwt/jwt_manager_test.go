package jwt

import (
	"testing"
	"time"

	jwtlib "github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
)

func signTokenWithSecret(secret string, claims jwtlib.Claims) (string, error) {
	token := jwtlib.NewWithClaims(jwtlib.SigningMethodHS256, claims)
	return token.SignedString([]byte(secret))
}

func TestCreateToken_AndValidate_Success(t *testing.T) {
	mgr := NewJwtManager("test-secret")

	token, err := mgr.CreateToken("ops", time.Hour)
	assert.NoError(t, err)
	assert.NotEmpty(t, token)

	claims, err := mgr.ValidateToken(token)
	assert.NoError(t, err)
	assert.Equal(t, "ops", claims.Actor)
}

func TestValidateToken_InvalidSignature(t *testing.T) {
	claims := &Claims{RegisteredClaims: jwtlib.RegisteredClaims{IssuedAt: jwtlib.NewNumericDate(time.Now())}}
	signed, err := signTokenWithSecret("other-secret", claims)
	assert.NoError(t, err)

	mgr := NewJwtManager("test-secret")
	_, err = mgr.ValidateToken(signed)
	assert.Equal(t, ErrInvalidToken, err)
}

func TestValidateToken_Expired(t *testing.T) {
	secret := "expire-secret"
	claims := &Claims{RegisteredClaims: jwtlib.RegisteredClaims{
		IssuedAt:  jwtlib.NewNumericDate(time.Now().Add(-2 * time.Hour)),
		ExpiresAt: jwtlib.NewNumericDate(time.Now().Add(-1 * time.Hour)),
	}}
	signed, err := signTokenWithSecret(secret, claims)
	assert.NoError(t, err)

	mgr := NewJwtManager(secret)
	_, err = mgr.ValidateToken(signed)
	assert.Equal(t, ErrExpiredToken, err)
}

func TestValidateToken_Garbage(t *testing.T) {
	mgr := NewJwtManager("test-secret")
	_, err := mgr.ValidateToken("not-a-token")
	assert.Equal(t, ErrInvalidToken, err)
}

package jwt

import (
	"errors"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

var (
	ErrInvalidToken = errors.New("invalid token")
	ErrExpiredToken = errors.New("expired token")
)

//go:generate mockery --name=Manager --dir=. --output=mocks/ --filename=jwt_manager_mock.go --case=underscore --with-expecter
type (
	Manager interface {
		CreateToken(actor string, ttl time.Duration) (string, error)
		ValidateToken(tokenString string) (*Claims, error)
	}
	manager struct {
		secret []byte
	}
)

func NewJwtManager(secret string) Manager {
	return &manager{
		secret: []byte(secret),
	}
}

// Claims identify the operator behind an admin request.
type Claims struct {
	Actor string `json:"actor,omitempty"`
	jwt.RegisteredClaims
}

func (m *manager) CreateToken(actor string, ttl time.Duration) (string, error) {
	now := time.Now()
	claims := &Claims{
		Actor: actor,
		RegisteredClaims: jwt.RegisteredClaims{
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(ttl)),
		},
	}
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString(m.secret)
}

func (m *manager) ValidateToken(tokenString string) (*Claims, error) {
	token, err := jwt.ParseWithClaims(
		tokenString,
		&Claims{},
		func(token *jwt.Token) (interface{}, error) {
			if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
				return nil, ErrInvalidToken
			}
			return m.secret, nil
		},
	)
	if err != nil {
		if errors.Is(err, jwt.ErrTokenExpired) {
			return nil, ErrExpiredToken
		}
		return nil, ErrInvalidToken
	}

	claims, ok := token.Claims.(*Claims)
	if !ok || !token.Valid {
		return nil, ErrInvalidToken
	}
	return claims, nil
}

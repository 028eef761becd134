package utils

import (
	"time"

	"github.com/golang-jwt/jwt/v5"
)

// Claims carried by gateway session tokens.
type Claims struct {
	UserID uint `json:"userId"`
	Staff  bool `json:"staff"`
	jwt.RegisteredClaims
}

// GenerateToken issues a session JWT for one end user of the bot gateway.
func GenerateToken(userID uint, staff bool, secret string, ttl time.Duration) (string, error) {
	claims := &Claims{
		UserID: userID,
		Staff:  staff,
		RegisteredClaims: jwt.RegisteredClaims{
			ExpiresAt: jwt.NewNumericDate(time.Now().Add(ttl)),
			IssuedAt:  jwt.NewNumericDate(time.Now()),
		},
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString([]byte(secret))
}

// ParseToken validates a session JWT and returns its claims.
func ParseToken(tokenStr, secret string) (*Claims, error) {
	claims := &Claims{}
	token, err := jwt.ParseWithClaims(tokenStr, claims, func(t *jwt.Token) (any, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, jwt.ErrSignatureInvalid
		}
		return []byte(secret), nil
	})
	if err != nil {
		return nil, err
	}
	if !token.Valid {
		return nil, jwt.ErrTokenInvalidClaims
	}
	return claims, nil
}

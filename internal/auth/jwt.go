package auth

import (
	"errors"
	"time"

	"github.com/golang-jwt/jwt/v5"

	"zoomride/internal/config"
)

// SignToken issues an HS256 token carrying the user id.
func SignToken(userID uint) (string, error) {
	claims := jwt.MapClaims{
		"id":  float64(userID),
		"exp": time.Now().Add(config.JWTExpire()).Unix(),
	}
	tok := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return tok.SignedString([]byte(config.JWTSecret()))
}

// ParseToken validates a bearer token and returns the user id it carries.
func ParseToken(tokenStr string) (uint, error) {
	parsed, err := jwt.Parse(tokenStr, func(t *jwt.Token) (any, error) {
		if t.Method != jwt.SigningMethodHS256 {
			return nil, errors.New("unexpected signing method")
		}
		return []byte(config.JWTSecret()), nil
	})
	if err != nil || !parsed.Valid {
		return 0, errors.New("invalid token")
	}
	claims, ok := parsed.Claims.(jwt.MapClaims)
	if !ok {
		return 0, errors.New("invalid claims")
	}
	id, ok := claims["id"].(float64)
	if !ok || id <= 0 {
		return 0, errors.New("missing user id claim")
	}
	return uint(id), nil
}

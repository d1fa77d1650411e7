package utils

import (
	"errors"
	"time"

	"github.com/golang-jwt/jwt"
)

// Claims identifies the caller of an authenticated request.
type Claims struct {
	Role string `json:"role"`
	jwt.StandardClaims
}

// GenerateToken creates a signed JWT with the given subject (the account id) and role.
// The token expires after the specified duration.
func GenerateToken(secret, subject, role string, duration time.Duration) (string, error) {
	now := time.Now()
	claims := Claims{
		Role: role,
		StandardClaims: jwt.StandardClaims{
			Subject:   subject,
			IssuedAt:  now.Unix(),
			ExpiresAt: now.Add(duration).Unix(),
		},
	}
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString([]byte(secret))
}

// ValidateToken parses and validates a token string and returns its claims.
func ValidateToken(secret, tokenString string) (*Claims, error) {
	claims := &Claims{}
	token, err := jwt.ParseWithClaims(tokenString, claims, func(token *jwt.Token) (interface{}, error) {
		// Ensure that the token's signing method is HMAC.
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, errors.New("unexpected signing method")
		}
		return []byte(secret), nil
	})
	if err != nil {
		return nil, err
	}
	if !token.Valid {
		return nil, errors.New("invalid token")
	}
	if claims.Subject == "" {
		return nil, errors.New("token does not contain a valid 'sub' claim")
	}
	return claims, nil
}

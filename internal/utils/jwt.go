package utils

import (
	"time"

	"github.com/golang-jwt/jwt/v5"
)

var jwtSecret []byte

// SetJWTSecret installs the signing secret. Called once from main before any
// token is issued or validated.
func SetJWTSecret(secret string) {
	jwtSecret = []byte(secret)
}

// Claims carries the authenticated actor identity inside the JWT.
// SalonID is empty for the platform super-admin.
type Claims struct {
	ActorID string `json:"actorId"`
	Email   string `json:"email"`
	Role    string `json:"role"`
	SalonID string `json:"salonId,omitempty"`
	jwt.RegisteredClaims
}

// GenerateJWT issues a signed token valid for 24 hours.
func GenerateJWT(actorID, email, role, salonID string) (string, error) {
	now := time.Now()
	claims := &Claims{
		ActorID: actorID,
		Email:   email,
		Role:    role,
		SalonID: salonID,
		RegisteredClaims: jwt.RegisteredClaims{
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(24 * time.Hour)),
		},
	}
	return jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(jwtSecret)
}

// ValidateJWT parses and verifies a token, returning its claims.
func ValidateJWT(tokenString string) (*Claims, error) {
	token, err := jwt.ParseWithClaims(tokenString, &Claims{}, func(t *jwt.Token) (interface{}, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, ErrInvalidToken
		}
		return jwtSecret, nil
	})
	if err != nil {
		return nil, ErrInvalidToken
	}
	claims, ok := token.Claims.(*Claims)
	if !ok || !token.Valid {
		return nil, ErrInvalidToken
	}
	return claims, nil
}

package utils

import (
	"time"

	"github.com/golang-jwt/jwt/v5"
)

// PrincipalClaims are the claims of an access token. The subject is the principal id.
// PartnerID is set on tokens issued to partner applications.
type PrincipalClaims struct {
	PartnerID string `json:"pid,omitempty"`
	jwt.RegisteredClaims
}

// GenerateJWT generates a new JWT token with the given parameters.
func GenerateJWT(userID string, secret string, expiryDuration time.Duration, issuer string) (string, error) {
	return GeneratePartnerJWT(userID, "", secret, expiryDuration, issuer)
}

// GeneratePartnerJWT generates a token on behalf of a partner application.
func GeneratePartnerJWT(userID, partnerID string, secret string, expiryDuration time.Duration, issuer string) (string, error) {
	now := time.Now()
	claims := PrincipalClaims{
		PartnerID: partnerID,
		RegisteredClaims: jwt.RegisteredClaims{
			Issuer:    issuer,
			Subject:   userID,
			ExpiresAt: jwt.NewNumericDate(now.Add(expiryDuration)),
			IssuedAt:  jwt.NewNumericDate(now),
			NotBefore: jwt.NewNumericDate(now),
		},
	}
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString([]byte(secret))
}

// ParseAndValidateJWT parses a JWT token string, validates its signature and standard claims.
// It returns the claims if the token is valid, or an error otherwise.
func ParseAndValidateJWT(tokenString string, secretKey string) (*PrincipalClaims, error) {
	claims := &PrincipalClaims{}

	token, err := jwt.ParseWithClaims(tokenString, claims, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, jwt.ErrSignatureInvalid
		}
		return []byte(secretKey), nil
	})
	if err != nil {
		return nil, err
	}

	if !token.Valid {
		return nil, jwt.ErrTokenSignatureInvalid
	}

	return claims, nil
}

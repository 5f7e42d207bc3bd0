// Package auth issues and verifies signed session tokens. A token binds the
// user's id to the token version that was current when it was minted; bumping
// the stored version invalidates every previously issued token at once.
package auth

import (
	"errors"
	"time"

	"github.com/dmitrijs2005/matchroom/internal/common"
	"github.com/golang-jwt/jwt/v5"
)

// Claims carries the standard registered claims plus the user identity and
// the revocation witness.
type Claims struct {
	jwt.RegisteredClaims
	UserID       string `json:"user_id"`
	TokenVersion int64  `json:"token_version"`
}

// GenerateToken mints an HS256-signed token for the user. The expiry is a
// backstop lifetime; the version claim is the primary revocation mechanism.
func GenerateToken(userID string, tokenVersion int64, secretKey []byte, validityDuration time.Duration) (string, error) {
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, Claims{
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   userID,
			IssuedAt:  jwt.NewNumericDate(time.Now()),
			ExpiresAt: jwt.NewNumericDate(time.Now().Add(validityDuration)),
		},
		UserID:       userID,
		TokenVersion: tokenVersion,
	})

	tokenString, err := token.SignedString(secretKey)
	if err != nil {
		return "", err
	}

	return tokenString, nil
}

// ParseToken verifies the signature and structure of tokenString and returns
// its claims. Expired tokens yield common.ErrTokenExpired; any other defect
// yields common.ErrInvalidToken. Version checking against the live user
// record is the caller's responsibility, since it needs a storage lookup.
func ParseToken(tokenString string, secretKey []byte) (*Claims, error) {
	claims := &Claims{}

	token, err := jwt.ParseWithClaims(tokenString, claims, func(t *jwt.Token) (interface{}, error) {
		return secretKey, nil
	}, jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}))
	if err != nil {
		if errors.Is(err, jwt.ErrTokenExpired) {
			return nil, common.ErrTokenExpired
		}
		return nil, common.ErrInvalidToken
	}

	if !token.Valid {
		return nil, common.ErrInvalidToken
	}

	return claims, nil
}

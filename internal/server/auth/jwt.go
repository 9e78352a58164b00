// Package auth parses and mints the identity tokens supplied by the
// authentication collaborator. The catalog core only consumes the resulting
// user identity (uid + display name).
package auth

import (
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"

	"github.com/dmitrijs2005/savespace/internal/common"
	"github.com/dmitrijs2005/savespace/internal/server/models"
)

// Claims extends the registered claims with the user id and the display
// name used as the storage namespace.
type Claims struct {
	jwt.RegisteredClaims
	UserID      string `json:"uid"`
	DisplayName string `json:"display_name"`
}

// GenerateToken mints an HS256 token carrying the given identity.
func GenerateToken(user models.User, secretKey []byte, validityDuration time.Duration) (string, error) {
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, Claims{
		RegisteredClaims: jwt.RegisteredClaims{
			ID:        uuid.NewString(),
			ExpiresAt: jwt.NewNumericDate(time.Now().Add(validityDuration)),
		},
		UserID:      user.UID,
		DisplayName: user.DisplayName,
	})

	tokenString, err := token.SignedString(secretKey)
	if err != nil {
		return "", err
	}

	return tokenString, nil
}

// GetUserFromToken validates the token and extracts the identity.
func GetUserFromToken(tokenString string, secretKey []byte) (models.User, error) {
	claims := &Claims{}

	token, err := jwt.ParseWithClaims(tokenString, claims, func(t *jwt.Token) (interface{}, error) {
		return secretKey, nil
	})
	if err != nil {
		return models.User{}, err
	}

	if !token.Valid {
		return models.User{}, common.ErrInvalidToken
	}

	return models.User{UID: claims.UserID, DisplayName: claims.DisplayName}, nil
}

package auth

import (
	"errors"
	"fmt"
	"time"

	"ishan/rms-api/internal/model"

	"github.com/golang-jwt/jwt/v5"
	"github.com/spf13/viper"
)

const sessionTTL = 24 * time.Hour

var ErrBadClaim = errors.New("session claim invalid")

// Claims is the stateless session claim carried by the bearer token. It is
// signed, never persisted, and verified independently on every request.
type Claims struct {
	UserID   string     `json:"id"`
	Role     model.Role `json:"role"`
	Username string     `json:"username"`
	jwt.RegisteredClaims
}

// MintToken signs a session claim for the user, valid for one day.
func MintToken(u *model.User) (string, error) {
	now := time.Now()

	t := jwt.NewWithClaims(jwt.SigningMethodHS256, &Claims{
		UserID:   u.ID,
		Role:     u.Role,
		Username: u.Username,
		RegisteredClaims: jwt.RegisteredClaims{
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(sessionTTL)),
		},
	})

	return t.SignedString([]byte(viper.GetString("jwt.secret")))
}

// ParseToken verifies the signature and expiry of a bearer token and
// returns its claims.
func ParseToken(tokenStr string) (*Claims, error) {
	claims := &Claims{}

	token, err := jwt.ParseWithClaims(tokenStr, claims, func(t *jwt.Token) (any, error) {
		if t.Method.Alg() != jwt.SigningMethodHS256.Alg() {
			return nil, fmt.Errorf("unexpected signing method: %s", t.Method.Alg())
		}

		return []byte(viper.GetString("jwt.secret")), nil
	})
	if err != nil {
		return nil, err
	}

	if !token.Valid || claims.UserID == "" {
		return nil, ErrBadClaim
	}

	return claims, nil
}

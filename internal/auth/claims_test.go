package auth

import (
	"testing"
	"time"

	"ishan/rms-api/internal/model"

	"github.com/golang-jwt/jwt/v5"
	"github.com/spf13/viper"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMintParseRoundtrip(t *testing.T) {
	viper.Set("jwt.secret", "test-secret")

	u := &model.User{ID: "abc123", Username: "alice", Role: model.RoleManager}

	signed, err := MintToken(u)
	require.NoError(t, err)

	claims, err := ParseToken(signed)
	require.NoError(t, err)
	assert.Equal(t, "abc123", claims.UserID)
	assert.Equal(t, "alice", claims.Username)
	assert.Equal(t, model.RoleManager, claims.Role)
	assert.WithinDuration(t, time.Now().Add(24*time.Hour), claims.ExpiresAt.Time, time.Minute)
}

func TestParseToken_WrongSecret(t *testing.T) {
	viper.Set("jwt.secret", "test-secret")

	signed, err := MintToken(&model.User{ID: "abc123", Username: "alice", Role: model.RoleUser})
	require.NoError(t, err)

	viper.Set("jwt.secret", "other-secret")
	defer viper.Set("jwt.secret", "test-secret")

	_, err = ParseToken(signed)
	assert.Error(t, err)
}

func TestParseToken_Expired(t *testing.T) {
	viper.Set("jwt.secret", "test-secret")

	tok := jwt.NewWithClaims(jwt.SigningMethodHS256, &Claims{
		UserID:   "abc123",
		Role:     model.RoleUser,
		Username: "alice",
		RegisteredClaims: jwt.RegisteredClaims{
			ExpiresAt: jwt.NewNumericDate(time.Now().Add(-time.Minute)),
		},
	})
	signed, err := tok.SignedString([]byte("test-secret"))
	require.NoError(t, err)

	_, err = ParseToken(signed)
	assert.Error(t, err)
}

func TestParseToken_WrongAlgorithm(t *testing.T) {
	viper.Set("jwt.secret", "test-secret")

	tok := jwt.NewWithClaims(jwt.SigningMethodNone, &Claims{UserID: "abc123"})

	signed, err := tok.SignedString(jwt.UnsafeAllowNoneSignatureType)
	require.NoError(t, err)

	_, err = ParseToken(signed)
	assert.Error(t, err)
}

func TestParseToken_Garbage(t *testing.T) {
	viper.Set("jwt.secret", "test-secret")

	_, err := ParseToken("not.a.token")
	assert.Error(t, err)
}

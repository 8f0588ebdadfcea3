package security

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGenerateAndVerify(t *testing.T) {
	a := NewArgon()

	encoded, err := a.GenerateFromPassword("pw123456")
	require.NoError(t, err)
	assert.True(t, strings.HasPrefix(encoded, "$argon2id$"))

	ok, err := a.VerifyPasswd("pw123456", encoded)
	require.NoError(t, err)
	assert.True(t, ok)

	ok, err = a.VerifyPasswd("wrongpass", encoded)
	require.NoError(t, err)
	assert.False(t, ok)
}

func TestGenerate_UniqueSalts(t *testing.T) {
	a := NewArgon()

	h1, err := a.GenerateFromPassword("pw123456")
	require.NoError(t, err)
	h2, err := a.GenerateFromPassword("pw123456")
	require.NoError(t, err)

	assert.NotEqual(t, h1, h2)
}

func TestVerify_BadFormat(t *testing.T) {
	a := NewArgon()

	for _, e := range []string{"", "plainhash", "$argon2id$v=19$nope", "$a$b$c$d$e$f$g"} {
		_, err := a.VerifyPasswd("pw123456", e)
		assert.ErrorIs(t, err, ErrBadHashFormat, "input %q", e)
	}
}

package security

import (
	"encoding/hex"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGenerateToken(t *testing.T) {
	t1, err := GenerateToken()
	require.NoError(t, err)
	t2, err := GenerateToken()
	require.NoError(t, err)

	assert.Len(t, t1, tokenSize*2)
	assert.NotEqual(t, t1, t2)

	_, err = hex.DecodeString(t1)
	assert.NoError(t, err)
}

func TestHashToken(t *testing.T) {
	h := HashToken("sometoken")

	// sha256 hex, stable across calls
	assert.Len(t, h, 64)
	assert.Equal(t, h, HashToken("sometoken"))
	assert.NotEqual(t, h, HashToken("someothertoken"))
}

package token

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewVerificationToken(t *testing.T) {
	tok, err := NewVerificationToken()
	require.NoError(t, err)
	assert.Len(t, tok, 64)
	assert.Regexp(t, "^[0-9a-f]{64}$", tok)

	other, err := NewVerificationToken()
	require.NoError(t, err)
	assert.NotEqual(t, tok, other)
}

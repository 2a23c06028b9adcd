package auth

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestHashAndCheckPassword(t *testing.T) {
	hashed, err := HashPassword("password1")
	require.NoError(t, err)
	assert.NotEqual(t, "password1", hashed)

	assert.True(t, CheckPassword(hashed, "password1"))
	assert.False(t, CheckPassword(hashed, "password2"))
	assert.False(t, CheckPassword(hashed, ""))
}

func TestHashPasswordIsSalted(t *testing.T) {
	first, err := HashPassword("password1")
	require.NoError(t, err)
	second, err := HashPassword("password1")
	require.NoError(t, err)

	assert.NotEqual(t, first, second)
}

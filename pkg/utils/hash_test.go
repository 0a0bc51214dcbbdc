package utils

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestHashAndCheckPassword(t *testing.T) {
	hashed, err := HashPassword("s3cret-pass")
	require.NoError(t, err)
	require.NotEqual(t, "s3cret-pass", hashed)

	require.True(t, CheckPassword("s3cret-pass", hashed))
	require.False(t, CheckPassword("wrong", hashed))
	require.False(t, CheckPassword("s3cret-pass", ""))

	_, err = HashPassword("")
	require.ErrorIs(t, err, ErrEmptyPassword)
}

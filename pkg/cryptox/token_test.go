package cryptox

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestGenerateToken(t *testing.T) {
	for _, size := range []int{16, TokenSize256, 24} {
		token, err := GenerateToken(size)
		require.NoError(t, err)
		require.NotEmpty(t, token)

		token2, err := GenerateToken(size)
		require.NoError(t, err)
		require.NotEqual(t, token, token2, "tokens should be unique")
	}

	_, err := GenerateToken(0)
	require.Error(t, err)
}

func TestEqualToken(t *testing.T) {
	require.True(t, EqualToken("s3cret", "s3cret"))
	require.False(t, EqualToken("s3cret", "s3cre"))
	require.False(t, EqualToken("", ""), "unset token never matches")
}

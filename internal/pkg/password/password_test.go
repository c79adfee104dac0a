package password

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestHashAndCompare(t *testing.T) {
	hash, err := Hash("secret123")
	require.NoError(t, err)
	require.NotEqual(t, "secret123", hash)

	require.NoError(t, Compare(hash, "secret123"))
	require.Error(t, Compare(hash, "secret124"))
}

func TestHashIsSalted(t *testing.T) {
	a, err := Hash("same")
	require.NoError(t, err)
	b, err := Hash("same")
	require.NoError(t, err)
	require.NotEqual(t, a, b)
}

func TestCompareMismatch(t *testing.T) {
	hash, err := Hash("right")
	require.NoError(t, err)
	require.ErrorIs(t, Compare(hash, "wrong"), ErrMismatch)
	require.NotErrorIs(t, Compare("not-a-hash", "right"), ErrMismatch)
}

func TestHashTooLong(t *testing.T) {
	long := make([]byte, 100)
	for i := range long {
		long[i] = 'a'
	}
	_, err := Hash(string(long))
	require.ErrorIs(t, err, ErrTooLong)
}

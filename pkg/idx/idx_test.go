package idx_test

import (
	"testing"
	"time"

	"github.com/aussiebroadwan/phoneauth/pkg/idx"
	"github.com/stretchr/testify/require"
)

func TestValid(t *testing.T) {
	require.True(t, idx.Valid(idx.New().String()))

	for _, s := range []string{"", "   ", "not-a-ulid", "01HQ7T3Z1MZ0JQ3M6MZQ1FQ3Z"} {
		require.False(t, idx.Valid(s), s)
	}
}

func TestMonotonicWithinMillisecond(t *testing.T) {
	at := time.UnixMilli(1700000000000).UTC()

	prev := idx.NewAt(at)
	for range 100 {
		next := idx.NewAt(at)
		require.Less(t, prev.String(), next.String())
		prev = next
	}
}

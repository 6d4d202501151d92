package market

import (
	"math/rand"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLimited_ReportsEofAtHorizon(t *testing.T) {
	src := NewLimited(NewProcess(rand.New(rand.NewSource(5)), 1_000, 0.01), 3)

	for i := 0; i < 3; i++ {
		_, _, err := src.Next()
		require.NoError(t, err, "tick %d", i)
	}

	_, _, err := src.Next()
	assert.ErrorIs(t, err, ErrEof)

	// Reset restores the full horizon
	src.Reset()
	_, _, err = src.Next()
	assert.NoError(t, err)
}

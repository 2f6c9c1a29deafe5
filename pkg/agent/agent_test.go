package agent

import (
	"testing"

	"github.com/IlikeChooros/go-connect4/pkg/board"
	"github.com/stretchr/testify/require"
)

func TestRandomStaysLegal(t *testing.T) {
	r := NewRandom(42)
	legal := []int{1, 4, 6}
	for range 200 {
		col, err := r.ChooseMove(board.New(), legal)
		require.NoError(t, err)
		require.True(t, Contains(legal, col))
	}
}

func TestRandomNoLegalMove(t *testing.T) {
	_, err := NewRandom(1).ChooseMove(board.New(), nil)
	require.ErrorIs(t, err, ErrNoLegalMove)
}

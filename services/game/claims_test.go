package game

import (
	"testing"
	"time"

	models "Tambola/models/postgres"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func claimedSquares(indices ...int) []models.CardSquare {
	squares := make([]models.CardSquare, 0, len(indices))
	now := time.Now()
	for _, idx := range indices {
		squares = append(squares, models.CardSquare{CardID: "card-1", Idx: idx, Claimed: true, ClaimedAt: &now})
	}
	return squares
}

func TestClaimedIndexSet(t *testing.T) {
	squares := []models.CardSquare{
		{CardID: "card-1", Idx: 0, Claimed: true},
		{CardID: "card-1", Idx: 1, Claimed: false},
		{CardID: "card-1", Idx: 5, Claimed: true},
	}
	claimed := ClaimedIndexSet(squares)
	assert.Equal(t, map[int]bool{0: true, 5: true}, claimed)
}

func TestAnyPatternComplete(t *testing.T) {
	// 3x9 grid, first row fully claimed
	firstRow := make([]int, 0, 9)
	for idx := 0; idx < 9; idx++ {
		firstRow = append(firstRow, idx)
	}
	claimed := ClaimedIndexSet(claimedSquares(firstRow...))

	assert.True(t, AnyPatternComplete(3, 9, claimed, []string{"row"}))
	assert.True(t, AnyPatternComplete(3, 9, claimed, []string{"full-house", "row"}))
	assert.False(t, AnyPatternComplete(3, 9, claimed, []string{"full-house"}))
	assert.False(t, AnyPatternComplete(3, 9, claimed, nil))
	assert.False(t, AnyPatternComplete(3, 9, claimed, []string{"no-such-pattern"}))
}

// Claiming the first row one square at a time only completes the
// pattern on the final square.
func TestRowPatternCompletesOnLastClaim(t *testing.T) {
	claimed := make(map[int]bool)
	for idx := 0; idx < 9; idx++ {
		claimed[idx] = true
		won := AnyPatternComplete(3, 9, claimed, []string{"row"})
		if idx < 8 {
			require.False(t, won, "won early at square %d", idx)
		} else {
			require.True(t, won, "no win after full first row")
		}
	}
}

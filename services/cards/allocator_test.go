package cards

import (
	"fmt"
	"testing"

	game_constants "Tambola/constants/game"
	models "Tambola/models/postgres"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func makeAssets(n int) []models.Asset {
	assets := make([]models.Asset, n)
	for i := range assets {
		assets[i] = models.Asset{ID: fmt.Sprintf("asset-%d", i)}
	}
	return assets
}

func TestParseGridDimensions(t *testing.T) {
	tests := []struct {
		name     string
		gsName   string
		gsSlug   string
		wantRows int
		wantCols int
	}{
		{"plain slug", "Classic", "3x9", 3, 9},
		{"slug with prefix", "Grid", "grid-5x5", 5, 5},
		{"dimensions in name only", "4x4 Mini", "mini", 4, 4},
		{"uppercase separator", "Board", "7X7", 7, 7},
		{"tambola flavored name", "Tambola Classic", "tambola-classic", 3, 9},
		{"housie flavored name", "Housie Board", "housie-board", 3, 9},
		{"unparseable", "Weird", "weird", 3, 9},
		{"rows clamped", "Big", "20x9", 10, 9},
		{"cols clamped", "Wide", "3x40", 3, 15},
		{"minimum clamp", "Tiny", "0x0", 1, 1},
		{"slug wins over name", "5x5 Special", "3x9", 3, 9},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rows, cols := ParseGridDimensions(tt.gsName, tt.gsSlug)
			assert.Equal(t, tt.wantRows, rows)
			assert.Equal(t, tt.wantCols, cols)
		})
	}
}

func TestBuildSquaresNoDuplicatesWithLargePool(t *testing.T) {
	pool := makeAssets(30)
	squares := BuildSquares(pool, 27)
	require.Len(t, squares, 27)

	seen := make(map[string]bool)
	for _, sq := range squares {
		require.NotNil(t, sq.AssetID)
		assert.False(t, sq.IsCustom)
		assert.False(t, seen[*sq.AssetID], "asset %s assigned twice", *sq.AssetID)
		seen[*sq.AssetID] = true
	}
}

func TestBuildSquaresCyclicReuseWithSmallPool(t *testing.T) {
	pool := makeAssets(5)
	squares := BuildSquares(pool, 27)
	require.Len(t, squares, 27)

	counts := make(map[string]int)
	for _, sq := range squares {
		require.NotNil(t, sq.AssetID)
		counts[*sq.AssetID]++
	}

	// 27 cells over 5 assets: every asset appears either 5 or 6 times
	assert.Len(t, counts, 5)
	for id, n := range counts {
		assert.Contains(t, []int{5, 6}, n, "asset %s appeared %d times", id, n)
	}
}

func TestBuildSquaresEmptyPoolFallsBackToCustom(t *testing.T) {
	squares := BuildSquares(nil, 27)
	require.Len(t, squares, 27)

	for _, sq := range squares {
		assert.Nil(t, sq.AssetID)
		assert.True(t, sq.IsCustom)
		assert.Equal(t, game_constants.DefaultCustomText, sq.CustomText)
	}
}

func TestBuildSquaresIndicesAreRowMajorOrder(t *testing.T) {
	squares := BuildSquares(makeAssets(3), 9)
	for i, sq := range squares {
		assert.Equal(t, i, sq.Idx)
	}
}

func TestBuildSquaresDoesNotMutatePool(t *testing.T) {
	pool := makeAssets(10)
	original := make([]string, len(pool))
	for i, a := range pool {
		original[i] = a.ID
	}

	BuildSquares(pool, 27)

	for i, a := range pool {
		assert.Equal(t, original[i], a.ID)
	}
}

func TestAllowedAccessLevels(t *testing.T) {
	assert.Equal(t, []string{game_constants.AccessFree}, AllowedAccessLevels(false))
	assert.Equal(t, []string{game_constants.AccessFree, game_constants.AccessPremium}, AllowedAccessLevels(true))
}

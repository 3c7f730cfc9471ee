package patterns

import (
	game_constants "Tambola/constants/game"
)

/*
 * Pure pattern matching over a claimed-cell set. Cell index is row-major:
 * index = row*cols + col, zero-based. Unknown pattern names report false
 * instead of failing; every other component relies on that.
 */

// IsPatternComplete reports whether the named pattern is satisfied on a
// rows x cols grid given the set of claimed cell indices.
func IsPatternComplete(rows, cols int, claimed map[int]bool, pattern string) bool {
	if rows <= 0 || cols <= 0 {
		return false
	}

	switch pattern {
	case game_constants.PatternFullHouse:
		return fullHouse(rows, cols, claimed)
	case game_constants.PatternRow:
		for r := 0; r < rows; r++ {
			if rowComplete(r, cols, claimed) {
				return true
			}
		}
		return false
	case game_constants.PatternColumn:
		for c := 0; c < cols; c++ {
			if columnComplete(c, rows, cols, claimed) {
				return true
			}
		}
		return false
	case game_constants.PatternDiagonal:
		return mainDiagonal(rows, cols, claimed) || antiDiagonal(rows, cols, claimed)
	case game_constants.PatternCorners:
		return corners(rows, cols, claimed)
	case game_constants.PatternX:
		return mainDiagonal(rows, cols, claimed) && antiDiagonal(rows, cols, claimed)
	default:
		return false
	}
}

func fullHouse(rows, cols int, claimed map[int]bool) bool {
	for i := 0; i < rows*cols; i++ {
		if !claimed[i] {
			return false
		}
	}
	return true
}

func rowComplete(r, cols int, claimed map[int]bool) bool {
	for c := 0; c < cols; c++ {
		if !claimed[r*cols+c] {
			return false
		}
	}
	return true
}

func columnComplete(c, rows, cols int, claimed map[int]bool) bool {
	for r := 0; r < rows; r++ {
		if !claimed[r*cols+c] {
			return false
		}
	}
	return true
}

// Both diagonals run over min(rows, cols) cells on non-square grids.
func mainDiagonal(rows, cols int, claimed map[int]bool) bool {
	n := min(rows, cols)
	for i := 0; i < n; i++ {
		if !claimed[i*cols+i] {
			return false
		}
	}
	return true
}

func antiDiagonal(rows, cols int, claimed map[int]bool) bool {
	n := min(rows, cols)
	for i := 0; i < n; i++ {
		if !claimed[i*cols+(cols-1-i)] {
			return false
		}
	}
	return true
}

// corners degenerates correctly on 1-row/1-col grids: duplicate corner
// indices collapse into the same map lookup.
func corners(rows, cols int, claimed map[int]bool) bool {
	return claimed[0] &&
		claimed[cols-1] &&
		claimed[(rows-1)*cols] &&
		claimed[(rows-1)*cols+cols-1]
}

func min(a, b int) int {
	if a < b {
		return a
	}
	return b
}

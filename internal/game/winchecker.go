package game

// IsWinningMove reports whether the piece just placed at (row, col) completes
// four-in-a-row for player. It only inspects lines through that cell, which is
// far cheaper than a full board scan and works on any grid, hypothetical or
// real. The cell itself is assumed to already hold player's piece.
func IsWinningMove(g Grid, row, col int, player Player) bool {
	// horizontal: slide the 4-window through the placed column
	for c := max(0, col-3); c < min(col+1, Cols-3); c++ {
		if g[row][c] == player && g[row][c+1] == player && g[row][c+2] == player && g[row][c+3] == player {
			return true
		}
	}

	// vertical: only possible when three rows remain below
	if row <= Rows-4 {
		if g[row][col] == player && g[row+1][col] == player && g[row+2][col] == player && g[row+3][col] == player {
			return true
		}
	}

	// diagonal descending to the right: four window offsets through the cell
	for i := -3; i <= 0; i++ {
		r, c := row+i, col+i
		if r < 0 || r > Rows-4 || c < 0 || c > Cols-4 {
			continue
		}
		if g[r][c] == player && g[r+1][c+1] == player && g[r+2][c+2] == player && g[r+3][c+3] == player {
			return true
		}
	}

	// diagonal ascending to the right
	for i := 0; i <= 3; i++ {
		r, c := row+i, col-i
		if r < 3 || r >= Rows || c < 0 || c > Cols-4 {
			continue
		}
		if g[r][c] == player && g[r-1][c+1] == player && g[r-2][c+2] == player && g[r-3][c+3] == player {
			return true
		}
	}

	return false
}

package bot

import "connect-four-engine/internal/game"

// Heuristic weights. These are a tuned set and the doubling/multiplier rules
// below are part of the same tuning; changing any of them changes the bot's
// play.
const (
	fourScore        = 1_000_000_000.0
	threeScore       = 50_000_000.0
	opponentThree    = 900_000_000.0
	twoScore         = 5_000.0
	opponentWinAhead = 1_000_000_000.0

	centerPieceScore   = 8_000.0
	adjacentPieceScore = 5_000.0
	centerComboScore   = 3_000.0
	trappedScore       = 3_000.0

	// vertical windows are worth slightly more than horizontal ones; the
	// fractional scores this produces are kept as-is
	verticalWeight = 1.2
)

// isPlayable reports whether an empty cell at (row, col) is immediately
// reachable: every cell below it in the column is already filled.
func isPlayable(g game.Grid, row, col int) bool {
	for r := row + 1; r < game.Rows; r++ {
		if g[r][col] == game.Empty {
			return false
		}
	}
	return true
}

// windowScore scores one 4-cell window starting at (row, col) and stepping by
// (dRow, dCol). Windows holding a live threat score far above building
// patterns, and patterns whose empty cells can be played right away count
// double.
func windowScore(g game.Grid, row, col, dRow, dCol int, player, opponent game.Player) float64 {
	var playerCount, opponentCount, emptyCount int
	var emptyCells [4][2]int
	for i := 0; i < 4; i++ {
		r, c := row+i*dRow, col+i*dCol
		switch g[r][c] {
		case player:
			playerCount++
		case opponent:
			opponentCount++
		default:
			emptyCells[emptyCount] = [2]int{r, c}
			emptyCount++
		}
	}

	switch {
	case playerCount == 4:
		return fourScore
	case playerCount == 3 && emptyCount == 1:
		if isPlayable(g, emptyCells[0][0], emptyCells[0][1]) {
			return threeScore * 2
		}
		return threeScore
	case opponentCount == 3 && emptyCount == 1:
		return -opponentThree
	case playerCount == 2 && emptyCount == 2:
		if isPlayable(g, emptyCells[0][0], emptyCells[0][1]) && isPlayable(g, emptyCells[1][0], emptyCells[1][1]) {
			return twoScore * 2
		}
		return twoScore
	}
	return 0
}

// ScorePosition is the leaf heuristic: how favorable g looks for player. It
// is only meaningful for non-terminal positions; won or lost boards are
// handled by the search before this is consulted.
func ScorePosition(g game.Grid, player game.Player) float64 {
	opponent := player.Other()
	score := 0.0

	// any column that hands the opponent an immediate win dominates whatever
	// the windows below say
	for col := 0; col < game.Cols; col++ {
		row, ok := g.NextOpenRow(col)
		if !ok {
			continue
		}
		test := g
		test[row][col] = opponent
		if game.IsWinningMove(test, row, col, opponent) {
			score -= opponentWinAhead
		}
	}

	// center control
	centerCount := 0
	for row := 0; row < game.Rows; row++ {
		if g[row][3] == player {
			centerCount++
		}
	}
	score += float64(centerCount) * centerPieceScore

	for _, col := range []int{2, 4} {
		count := 0
		for row := 0; row < game.Rows; row++ {
			if g[row][col] == player {
				count++
			}
		}
		score += float64(count) * adjacentPieceScore
		if count > 0 && centerCount > 0 {
			score += centerComboScore
		}
	}

	// horizontal windows, plus the 5-cell trapped-opponent check where a
	// fifth cell is in range
	for row := 0; row < game.Rows; row++ {
		for col := 0; col < game.Cols-3; col++ {
			score += windowScore(g, row, col, 0, 1, player, opponent)

			if col < game.Cols-4 {
				opponentCount := 0
				for i := 0; i < 5; i++ {
					if g[row][col+i] == opponent {
						opponentCount++
					}
				}
				if opponentCount >= 2 {
					score += trappedScore
				}
			}
		}
	}

	// vertical windows
	for col := 0; col < game.Cols; col++ {
		for row := 0; row < game.Rows-3; row++ {
			score += windowScore(g, row, col, 1, 0, player, opponent) * verticalWeight
		}
	}

	return score
}

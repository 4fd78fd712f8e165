package bot

import (
	"math"

	"connect-four-engine/internal/game"
)

// searchDepth is the fixed lookahead. Seven columns at depth 6 is at most
// ~118k leaves before pruning, well inside interactive latency.
const searchDepth = 6

// blockScore is the "won but had to block" value: the largest finite float,
// so a forced block always orders below an outright win.
const blockScore = math.MaxFloat64

func legalColumns(g game.Grid) []int {
	cols := make([]int, 0, game.Cols)
	for col := 0; col < game.Cols; col++ {
		if g.IsValidMove(col) {
			cols = append(cols, col)
		}
	}
	return cols
}

// minimax searches g to the given depth with alpha-beta pruning, maximizing
// for ai. Scores are always from ai's perspective. It returns the chosen
// column (-1 at leaf nodes) and the score.
//
// Before descending, every node re-runs the immediate win and forced block
// checks for the side to move, so a tactical shot is never lost to pruning or
// the depth cutoff. A win for the side to move scores ±Inf; a position where
// that side must block scores ±blockScore credited to the side owning the
// threat. Columns are tried left to right; a strictly better score replaces
// the choice, so ties keep the leftmost column.
func minimax(g game.Grid, depth int, alpha, beta float64, maximizing bool, ai, human game.Player) (int, float64) {
	legal := legalColumns(g)

	mover, waiter := ai, human
	moverSign := 1.0
	if !maximizing {
		mover, waiter = human, ai
		moverSign = -1.0
	}

	// side to move can win right now
	for _, col := range legal {
		row, _ := g.NextOpenRow(col)
		test := g
		test[row][col] = mover
		if game.IsWinningMove(test, row, col, mover) {
			return col, moverSign * math.Inf(1)
		}
	}

	// side to move is forced to block; near-won for the threatening side
	for _, col := range legal {
		row, _ := g.NextOpenRow(col)
		test := g
		test[row][col] = waiter
		if game.IsWinningMove(test, row, col, waiter) {
			return col, -moverSign * blockScore
		}
	}

	winner := g.Winner()
	if depth == 0 || winner != game.Empty || g.IsFull() {
		switch winner {
		case ai:
			return -1, math.Inf(1)
		case human:
			return -1, math.Inf(-1)
		}
		if g.IsFull() {
			return -1, 0
		}
		return -1, ScorePosition(g, ai)
	}

	if maximizing {
		value := math.Inf(-1)
		column := legal[0]
		for _, col := range legal {
			row, _ := g.NextOpenRow(col)
			child := g
			child[row][col] = ai
			_, score := minimax(child, depth-1, alpha, beta, false, ai, human)
			if score > value {
				value = score
				column = col
			}
			alpha = math.Max(alpha, value)
			if alpha >= beta {
				break
			}
		}
		return column, value
	}

	value := math.Inf(1)
	column := legal[0]
	for _, col := range legal {
		row, _ := g.NextOpenRow(col)
		child := g
		child[row][col] = human
		_, score := minimax(child, depth-1, alpha, beta, true, ai, human)
		if score < value {
			value = score
			column = col
		}
		beta = math.Min(beta, value)
		if alpha >= beta {
			break
		}
	}
	return column, value
}

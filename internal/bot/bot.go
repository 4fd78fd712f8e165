package bot

import (
	"errors"
	"math"

	"connect-four-engine/internal/game"
)

// ErrNoValidMove is returned when a decision is requested on a full board.
// That is a caller contract violation, not a recoverable game state.
var ErrNoValidMove = errors.New("no valid move available")

// SearchResult is a chosen column and the score the search attached to it.
// The score is ±Inf for a forced win or loss and 0 for a forced draw.
type SearchResult struct {
	Column int     `json:"column"`
	Score  float64 `json:"score"`
}

// Bot picks moves for one side. It never touches a live game: callers hand it
// a grid snapshot and commit the returned column themselves.
type Bot struct {
	ai       game.Player
	opponent game.Player
}

// New returns a bot playing as Player2, the usual second seat.
func New() *Bot {
	b := &Bot{}
	b.SetPlayer(game.Player2)
	return b
}

// SetPlayer assigns the bot's identity; the opponent is inferred as the
// other one.
func (b *Bot) SetPlayer(p game.Player) {
	b.ai = p
	b.opponent = p.Other()
}

// Player returns the identity the bot is playing.
func (b *Bot) Player() game.Player {
	return b.ai
}

// BestMove returns the column the bot wants to play on g.
func (b *Bot) BestMove(g game.Grid) (int, error) {
	result, err := b.Decide(g)
	if err != nil {
		return -1, err
	}
	return result.Column, nil
}

// Decide runs the full decision procedure on g. Cheap tactical checks run
// first and short-circuit the search: an immediate win, then an immediate
// block, then a fork (a move leaving two winning follow-ups, of which the
// opponent can block only one). Only when none of those fire does the
// depth-limited minimax run.
func (b *Bot) Decide(g game.Grid) (SearchResult, error) {
	legal := legalColumns(g)
	if len(legal) == 0 {
		return SearchResult{Column: -1}, ErrNoValidMove
	}

	// immediate win
	for _, col := range legal {
		row, _ := g.NextOpenRow(col)
		test := g
		test[row][col] = b.ai
		if game.IsWinningMove(test, row, col, b.ai) {
			return SearchResult{Column: col, Score: math.Inf(1)}, nil
		}
	}

	// immediate block
	for _, col := range legal {
		row, _ := g.NextOpenRow(col)
		test := g
		test[row][col] = b.opponent
		if game.IsWinningMove(test, row, col, b.opponent) {
			return SearchResult{Column: col, Score: blockScore}, nil
		}
	}

	// fork: after this move, two or more columns win outright next turn
	for _, col := range legal {
		row, _ := g.NextOpenRow(col)
		after := g
		after[row][col] = b.ai

		wins := 0
		for _, next := range legalColumns(after) {
			nextRow, _ := after.NextOpenRow(next)
			test := after
			test[nextRow][next] = b.ai
			if game.IsWinningMove(test, nextRow, next, b.ai) {
				wins++
			}
		}
		if wins >= 2 {
			return SearchResult{Column: col, Score: math.Inf(1)}, nil
		}
	}

	column, score := minimax(g, searchDepth, math.Inf(-1), math.Inf(1), true, b.ai, b.opponent)
	return SearchResult{Column: column, Score: score}, nil
}

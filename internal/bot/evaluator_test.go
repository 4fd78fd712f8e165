package bot

import (
	"math"
	"testing"

	"connect-four-engine/internal/game"
)

func gridFrom(cells [game.Rows][game.Cols]int) game.Grid {
	var g game.Grid
	for r := 0; r < game.Rows; r++ {
		for c := 0; c < game.Cols; c++ {
			g[r][c] = game.Player(cells[r][c])
		}
	}
	return g
}

func TestWindowScoreWeights(t *testing.T) {
	// three in a row on the bottom with the gap playable: doubled
	g := gridFrom([game.Rows][game.Cols]int{
		{0, 0, 0, 0, 0, 0, 0},
		{0, 0, 0, 0, 0, 0, 0},
		{0, 0, 0, 0, 0, 0, 0},
		{0, 0, 0, 0, 0, 0, 0},
		{0, 0, 0, 0, 0, 0, 0},
		{2, 2, 2, 0, 0, 0, 0},
	})
	if got := windowScore(g, 5, 0, 0, 1, game.Player2, game.Player1); got != threeScore*2 {
		t.Fatalf("playable three scored %v, want %v", got, threeScore*2)
	}
	// same window seen by the opponent: must-block penalty, never doubled
	if got := windowScore(g, 5, 0, 0, 1, game.Player1, game.Player2); got != -opponentThree {
		t.Fatalf("opponent three scored %v, want %v", got, -opponentThree)
	}

	// a floating gap is not doubled
	floating := gridFrom([game.Rows][game.Cols]int{
		{0, 0, 0, 0, 0, 0, 0},
		{0, 0, 0, 0, 0, 0, 0},
		{0, 0, 0, 0, 0, 0, 0},
		{0, 0, 0, 0, 0, 0, 0},
		{2, 2, 2, 0, 0, 0, 0},
		{1, 1, 2, 0, 0, 0, 0},
	})
	if got := windowScore(floating, 4, 0, 0, 1, game.Player2, game.Player1); got != threeScore {
		t.Fatalf("floating three scored %v, want %v", got, threeScore)
	}
}

func TestWindowScoreTwoInARow(t *testing.T) {
	g := gridFrom([game.Rows][game.Cols]int{
		{0, 0, 0, 0, 0, 0, 0},
		{0, 0, 0, 0, 0, 0, 0},
		{0, 0, 0, 0, 0, 0, 0},
		{0, 0, 0, 0, 0, 0, 0},
		{0, 0, 0, 0, 0, 0, 0},
		{2, 2, 0, 0, 0, 0, 0},
	})
	// both gaps sit on the bottom row, so the building score is doubled
	if got := windowScore(g, 5, 0, 0, 1, game.Player2, game.Player1); got != twoScore*2 {
		t.Fatalf("playable two scored %v, want %v", got, twoScore*2)
	}

	raised := gridFrom([game.Rows][game.Cols]int{
		{0, 0, 0, 0, 0, 0, 0},
		{0, 0, 0, 0, 0, 0, 0},
		{0, 0, 0, 0, 0, 0, 0},
		{0, 0, 0, 0, 0, 0, 0},
		{2, 2, 0, 0, 0, 0, 0},
		{1, 1, 1, 2, 0, 0, 0},
	})
	if got := windowScore(raised, 4, 0, 0, 1, game.Player2, game.Player1); got != twoScore*2 {
		t.Fatalf("raised playable two scored %v, want %v", got, twoScore*2)
	}
	// row above an empty cell: not immediately playable
	if got := windowScore(raised, 3, 0, 0, 1, game.Player2, game.Player1); got != 0 {
		t.Fatalf("empty window scored %v, want 0", got)
	}
}

func TestScorePositionCenterPreference(t *testing.T) {
	var empty game.Grid

	center := empty
	center[game.Rows-1][3] = game.Player2

	edge := empty
	edge[game.Rows-1][0] = game.Player2

	centerScore := ScorePosition(center, game.Player2)
	edgeScore := ScorePosition(edge, game.Player2)
	if centerScore <= edgeScore {
		t.Fatalf("center piece (%v) not preferred over edge piece (%v)", centerScore, edgeScore)
	}
}

func TestScorePositionCenterComboBonus(t *testing.T) {
	var g game.Grid
	g[game.Rows-1][3] = game.Player2

	withAdjacent := g
	withAdjacent[game.Rows-1][2] = game.Player2

	got := ScorePosition(withAdjacent, game.Player2) - ScorePosition(g, game.Player2)
	// adding the adjacent piece is worth its per-piece score, the combo
	// bonus, and the building windows it creates; it must exceed the flat
	// per-piece value alone
	if got <= adjacentPieceScore+centerComboScore {
		t.Fatalf("adjacent-to-center piece added %v, want more than %v", got, adjacentPieceScore+centerComboScore)
	}
}

func TestScorePositionPenalizesOpponentWinAhead(t *testing.T) {
	// Player1 threatens to complete the column; every evaluation for
	// Player2 must carry the looming-loss penalty
	g := gridFrom([game.Rows][game.Cols]int{
		{0, 0, 0, 0, 0, 0, 0},
		{0, 0, 0, 0, 0, 0, 0},
		{0, 0, 0, 0, 0, 0, 0},
		{0, 1, 0, 0, 0, 0, 0},
		{0, 1, 0, 0, 2, 0, 0},
		{0, 1, 0, 2, 2, 0, 0},
	})
	if got := ScorePosition(g, game.Player2); got >= -opponentWinAhead/2 {
		t.Fatalf("threatened position scored %v, expected a dominant penalty", got)
	}
}

func TestScorePositionVerticalMultiplier(t *testing.T) {
	// a lone vertical pair away from the center columns: the only nonzero
	// term is one vertical building window, which carries the 1.2 weight
	g := gridFrom([game.Rows][game.Cols]int{
		{0, 0, 0, 0, 0, 0, 0},
		{0, 0, 0, 0, 0, 0, 0},
		{0, 0, 0, 0, 0, 0, 0},
		{0, 0, 0, 0, 0, 0, 0},
		{2, 0, 0, 0, 0, 0, 0},
		{2, 0, 0, 0, 0, 0, 0},
	})
	got := ScorePosition(g, game.Player2)
	want := twoScore * verticalWeight
	if math.Abs(got-want) > 1e-6 {
		t.Fatalf("vertical pair scored %v, want %v", got, want)
	}
}

func TestScorePositionTrappedOpponentBonus(t *testing.T) {
	// two opponent pieces on the bottom row: for Player2 every 4-window term
	// is zero, so the score is exactly the extended-window bonuses. The
	// 5-cell stretches starting at columns 0 and 1 both hold the pair; the
	// one at column 2 holds a single piece.
	g := gridFrom([game.Rows][game.Cols]int{
		{0, 0, 0, 0, 0, 0, 0},
		{0, 0, 0, 0, 0, 0, 0},
		{0, 0, 0, 0, 0, 0, 0},
		{0, 0, 0, 0, 0, 0, 0},
		{0, 0, 0, 0, 0, 0, 0},
		{0, 1, 1, 0, 0, 0, 0},
	})
	if got := ScorePosition(g, game.Player2); got != 2*trappedScore {
		t.Fatalf("trapped-opponent board scored %v, want %v", got, 2*trappedScore)
	}

	// the owner of the pair sees ordinary building windows instead: two
	// doubled horizontal twos plus one adjacent-column piece
	want := 2*(twoScore*2) + adjacentPieceScore
	if got := ScorePosition(g, game.Player1); got != want {
		t.Fatalf("pair owner scored %v, want %v", got, want)
	}
}

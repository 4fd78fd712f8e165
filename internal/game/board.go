package game

// Board dimensions are fixed; the 4-in-a-row logic below would generalize,
// but nothing in the engine is parameterized on them.
const (
	Rows = 6
	Cols = 7
)

// Player identifies one of the two sides occupying a cell. Either identity
// can be assigned to the human or the bot at runtime.
type Player int

const (
	Empty Player = iota
	Player1
	Player2
)

// Other returns the opposing player.
func (p Player) Other() Player {
	if p == Player1 {
		return Player2
	}
	return Player1
}

func (p Player) String() string {
	switch p {
	case Player1:
		return "player1"
	case Player2:
		return "player2"
	}
	return "empty"
}

// Grid is the board contents, row 0 at the top. It is a value type on
// purpose: plain assignment copies it, which is what the search relies on
// for its hypothetical boards.
type Grid [Rows][Cols]Player

// IsValidMove reports whether a piece can be dropped into column col.
// Only the grid contents matter here, never whose turn it is.
func (g Grid) IsValidMove(col int) bool {
	if col < 0 || col >= Cols {
		return false
	}
	return g[0][col] == Empty
}

// NextOpenRow scans column col from the bottom up and returns the first
// empty row. ok is false when the column is full.
func (g Grid) NextOpenRow(col int) (row int, ok bool) {
	for row = Rows - 1; row >= 0; row-- {
		if g[row][col] == Empty {
			return row, true
		}
	}
	return -1, false
}

// IsFull reports whether every column is topped out.
func (g Grid) IsFull() bool {
	for col := 0; col < Cols; col++ {
		if g[0][col] == Empty {
			return false
		}
	}
	return true
}

// Winner scans the whole grid for a completed four-in-a-row and returns the
// occupying player of the first match, or Empty. The scan is row-major for
// horizontal and vertical lines, then row-then-column for each diagonal, so
// on a malformed grid holding several completed lines the result is
// scan-order-deterministic, first match wins. In normal play only one line
// can complete per move, so the order never shows.
func (g Grid) Winner() Player {
	// horizontal
	for row := 0; row < Rows; row++ {
		for col := 0; col < Cols-3; col++ {
			p := g[row][col]
			if p != Empty && p == g[row][col+1] && p == g[row][col+2] && p == g[row][col+3] {
				return p
			}
		}
	}

	// vertical
	for row := 0; row < Rows-3; row++ {
		for col := 0; col < Cols; col++ {
			p := g[row][col]
			if p != Empty && p == g[row+1][col] && p == g[row+2][col] && p == g[row+3][col] {
				return p
			}
		}
	}

	// diagonal, descending to the right
	for row := 0; row < Rows-3; row++ {
		for col := 0; col < Cols-3; col++ {
			p := g[row][col]
			if p != Empty && p == g[row+1][col+1] && p == g[row+2][col+2] && p == g[row+3][col+3] {
				return p
			}
		}
	}

	// diagonal, ascending to the right
	for row := 3; row < Rows; row++ {
		for col := 0; col < Cols-3; col++ {
			p := g[row][col]
			if p != Empty && p == g[row-1][col+1] && p == g[row-2][col+2] && p == g[row-3][col+3] {
				return p
			}
		}
	}

	return Empty
}

// State is one live game: the grid plus whose turn it is. All mutation goes
// through Drop, which keeps the no-floating-pieces invariant and the turn
// order.
type State struct {
	Grid          Grid   `json:"grid"`
	CurrentPlayer Player `json:"current_player"`
}

// NewState returns a cleared board with starting to move.
func NewState(starting Player) *State {
	return &State{CurrentPlayer: starting}
}

// IsValidMove reports whether column col can accept a piece.
func (s *State) IsValidMove(col int) bool {
	return s.Grid.IsValidMove(col)
}

// NextOpenRow returns the landing row for column col.
func (s *State) NextOpenRow(col int) (int, bool) {
	return s.Grid.NextOpenRow(col)
}

// Drop places a piece for player in column col and flips the turn. It
// returns false, mutating nothing, when player is not the current player or
// the column is invalid or full. This is the single entry point that keeps
// two consecutive moves by the same side impossible.
func (s *State) Drop(col int, player Player) bool {
	if player != s.CurrentPlayer {
		return false
	}
	if !s.Grid.IsValidMove(col) {
		return false
	}
	row, ok := s.Grid.NextOpenRow(col)
	if !ok {
		return false
	}
	s.Grid[row][col] = player
	s.CurrentPlayer = player.Other()
	return true
}

// CheckWinner scans the whole board, see Grid.Winner.
func (s *State) CheckWinner() Player {
	return s.Grid.Winner()
}

// IsBoardFull reports whether no legal move remains.
func (s *State) IsBoardFull() bool {
	return s.Grid.IsFull()
}

// Reset clears the grid and hands the first move to starting.
func (s *State) Reset(starting Player) {
	s.Grid = Grid{}
	s.CurrentPlayer = starting
}

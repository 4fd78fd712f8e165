package game

import (
	"sync"
	"time"

	"github.com/google/uuid"
)

type SessionStatus int

const (
	StatusPlaying SessionStatus = iota
	StatusFinished
)

// Move records one committed drop.
type Move struct {
	Column    int       `json:"column"`
	Row       int       `json:"row"`
	Player    Player    `json:"player"`
	Timestamp time.Time `json:"timestamp"`
}

// Session is one human-versus-bot game. The engine state inside is only
// mutated through Manager.Move, which funnels everything into the
// turn-enforcing State.
type Session struct {
	ID         uuid.UUID     `json:"id"`
	HumanName  string        `json:"human_name"`
	Human      Player        `json:"human"`
	Bot        Player        `json:"bot"`
	State      *State        `json:"state"`
	Status     SessionStatus `json:"status"`
	Winner     Player        `json:"winner"`
	IsDraw     bool          `json:"is_draw"`
	MoveCount  int           `json:"move_count"`
	LastMove   *Move         `json:"last_move,omitempty"`
	CreatedAt  time.Time     `json:"created_at"`
	FinishedAt *time.Time    `json:"finished_at,omitempty"`
}

// Manager keeps the live sessions in memory. Finished sessions stay around
// until a restart replaces them; nothing is persisted here.
type Manager struct {
	mu       sync.RWMutex
	sessions map[uuid.UUID]*Session
}

func NewManager() *Manager {
	return &Manager{
		sessions: make(map[uuid.UUID]*Session),
	}
}

// Create starts a new session. The human always plays Player1 and the bot
// Player2; humanStarts picks who moves first.
func (m *Manager) Create(humanName string, humanStarts bool) *Session {
	m.mu.Lock()
	defer m.mu.Unlock()

	starting := Player1
	if !humanStarts {
		starting = Player2
	}

	s := &Session{
		ID:        uuid.New(),
		HumanName: humanName,
		Human:     Player1,
		Bot:       Player2,
		State:     NewState(starting),
		Status:    StatusPlaying,
		CreatedAt: time.Now(),
	}
	m.sessions[s.ID] = s
	return s
}

// Get returns the session with the given id.
func (m *Manager) Get(id uuid.UUID) (*Session, bool) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	s, ok := m.sessions[id]
	return s, ok
}

// Remove drops a session, typically on restart.
func (m *Manager) Remove(id uuid.UUID) {
	m.mu.Lock()
	defer m.mu.Unlock()

	delete(m.sessions, id)
}

// Move commits a drop for player into col. The wrong-turn and bad-column
// rejections come back as errors for the transport layer; the underlying
// state is untouched in every error case.
func (m *Manager) Move(id uuid.UUID, player Player, col int) (*Move, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	s, ok := m.sessions[id]
	if !ok {
		return nil, ErrSessionNotFound
	}
	if s.Status != StatusPlaying {
		return nil, ErrSessionOver
	}
	if player != s.State.CurrentPlayer {
		return nil, ErrNotPlayerTurn
	}

	if !s.State.IsValidMove(col) {
		return nil, ErrInvalidMove
	}
	row, _ := s.State.NextOpenRow(col)
	if !s.State.Drop(col, player) {
		return nil, ErrInvalidMove
	}

	move := &Move{
		Column:    col,
		Row:       row,
		Player:    player,
		Timestamp: time.Now(),
	}
	s.MoveCount++
	s.LastMove = move

	if winner := s.State.CheckWinner(); winner != Empty {
		s.Status = StatusFinished
		s.Winner = winner
		now := time.Now()
		s.FinishedAt = &now
	} else if s.State.IsBoardFull() {
		s.Status = StatusFinished
		s.IsDraw = true
		now := time.Now()
		s.FinishedAt = &now
	}

	return move, nil
}

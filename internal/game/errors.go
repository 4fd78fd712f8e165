package game

import "errors"

var (
	ErrSessionNotFound = errors.New("session not found")
	ErrSessionOver     = errors.New("session is not active")
	ErrNotPlayerTurn   = errors.New("not player's turn")
	ErrInvalidMove     = errors.New("invalid move")
)

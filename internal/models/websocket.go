package models

import (
	"math"
	"time"

	"github.com/google/uuid"

	"connect-four-engine/internal/game"
)

// FiniteScore clamps search scores for JSON encoding, which has no
// representation for the infinities the engine uses for forced outcomes.
func FiniteScore(score float64) float64 {
	if math.IsInf(score, 1) {
		return math.MaxFloat64
	}
	if math.IsInf(score, -1) {
		return -math.MaxFloat64
	}
	return score
}

type MessageType string

const (
	// Client messages
	MsgNewGame      MessageType = "new_game"
	MsgMakeMove     MessageType = "make_move"
	MsgGetGameState MessageType = "get_game_state"
	MsgHeartbeat    MessageType = "heartbeat"

	// Server messages
	MsgGameState    MessageType = "game_state"
	MsgMoveResult   MessageType = "move_result"
	MsgBotMove      MessageType = "bot_move"
	MsgGameEnd      MessageType = "game_end"
	MsgError        MessageType = "error"
	MsgHeartbeatAck MessageType = "heartbeat_ack"
)

type WSMessage struct {
	Type      MessageType `json:"type"`
	Payload   interface{} `json:"payload,omitempty"`
	Timestamp time.Time   `json:"timestamp"`
	MessageID string      `json:"message_id"`
}

// NewWSMessage stamps an outgoing message.
func NewWSMessage(msgType MessageType, payload interface{}) WSMessage {
	return WSMessage{
		Type:      msgType,
		Payload:   payload,
		Timestamp: time.Now(),
		MessageID: uuid.New().String(),
	}
}

// Payload structs for the individual message types.

type NewGamePayload struct {
	PlayerName  string `json:"player_name"`
	HumanStarts bool   `json:"human_starts"`
}

type MakeMovePayload struct {
	GameID uuid.UUID `json:"game_id"`
	Column int       `json:"column"`
}

type GetGameStatePayload struct {
	GameID uuid.UUID `json:"game_id"`
}

type GameStatePayload struct {
	Session *game.Session `json:"session"`
}

type MoveResultPayload struct {
	Success    bool          `json:"success"`
	Move       *game.Move    `json:"move,omitempty"`
	Session    *game.Session `json:"session,omitempty"`
	Error      string        `json:"error,omitempty"`
	IsGameOver bool          `json:"is_game_over"`
}

type BotMovePayload struct {
	Move     *game.Move    `json:"move"`
	Column   int           `json:"column"`
	Score    float64       `json:"score"`
	ThinkMs  int64         `json:"think_ms"`
	Session  *game.Session `json:"session"`
	GameOver bool          `json:"game_over"`
}

type GameEndPayload struct {
	GameID   uuid.UUID     `json:"game_id"`
	Winner   game.Player   `json:"winner"`
	IsDraw   bool          `json:"is_draw"`
	Session  *game.Session `json:"session"`
	Duration int64         `json:"duration_seconds"`
}

type ErrorPayload struct {
	Code    string `json:"code"`
	Message string `json:"message"`
	Details string `json:"details,omitempty"`
}

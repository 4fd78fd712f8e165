package handlers

import (
	"encoding/json"
	"log"
	"net/http"
	"time"

	"github.com/google/uuid"
	"github.com/gorilla/websocket"

	"connect-four-engine/internal/bot"
	"connect-four-engine/internal/database"
	"connect-four-engine/internal/game"
	"connect-four-engine/internal/kafka"
	"connect-four-engine/internal/models"
)

// GameHandler owns the WebSocket surface for human-versus-bot play. Each
// connection drives exactly one session at a time; the bot replies in-line
// after every committed human move.
type GameHandler struct {
	gameManager      *game.Manager
	engine           *bot.Bot
	store            *database.Store
	analyticsService *kafka.AnalyticsService
	upgrader         websocket.Upgrader
}

func NewGameHandler(gameManager *game.Manager, engine *bot.Bot, store *database.Store, analyticsService *kafka.AnalyticsService) *GameHandler {
	return &GameHandler{
		gameManager:      gameManager,
		engine:           engine,
		store:            store,
		analyticsService: analyticsService,
		upgrader: websocket.Upgrader{
			CheckOrigin: func(r *http.Request) bool {
				return true // TODO: Add proper origin checking for production
			},
		},
	}
}

func (h *GameHandler) HandleWebSocket(w http.ResponseWriter, r *http.Request) {
	conn, err := h.upgrader.Upgrade(w, r, nil)
	if err != nil {
		log.Printf("WebSocket upgrade failed: %v", err)
		return
	}
	defer conn.Close()

	log.Printf("New WebSocket connection established from %s", r.RemoteAddr)

	var sessionID uuid.UUID

	// Main message loop
	for {
		var msg models.WSMessage
		if err := conn.ReadJSON(&msg); err != nil {
			if websocket.IsUnexpectedCloseError(err, websocket.CloseGoingAway, websocket.CloseAbnormalClosure, websocket.CloseNormalClosure) {
				log.Printf("WebSocket unexpected close: %v", err)
			}
			break
		}

		switch msg.Type {
		case models.MsgNewGame:
			sessionID = h.handleNewGame(conn, msg.Payload)

		case models.MsgMakeMove:
			h.handleMakeMove(conn, msg.Payload)

		case models.MsgGetGameState:
			h.handleGetGameState(conn, msg.Payload)

		case models.MsgHeartbeat:
			h.handleHeartbeat(conn, sessionID)

		default:
			h.sendError(conn, "UNKNOWN_MESSAGE", "Unknown message type", "")
		}
	}

	// Sessions are tied to their connection; there is no reconnect.
	if sessionID != uuid.Nil {
		h.gameManager.Remove(sessionID)
		log.Printf("Session %s closed with its connection", sessionID)
	} else {
		log.Printf("WebSocket connection closed from %s", r.RemoteAddr)
	}
}

func (h *GameHandler) handleNewGame(conn *websocket.Conn, payload interface{}) uuid.UUID {
	var newGamePayload models.NewGamePayload
	if err := h.parsePayload(payload, &newGamePayload); err != nil {
		h.sendError(conn, "INVALID_PAYLOAD", "Invalid new game payload", "")
		return uuid.Nil
	}
	if newGamePayload.PlayerName == "" {
		newGamePayload.PlayerName = "anonymous"
	}

	session := h.gameManager.Create(newGamePayload.PlayerName, newGamePayload.HumanStarts)

	h.analyticsService.EmitGameStarted(session, newGamePayload.HumanStarts)

	conn.WriteJSON(models.NewWSMessage(models.MsgGameState, models.GameStatePayload{
		Session: session,
	}))

	// When the bot has the first move it plays immediately.
	if session.State.CurrentPlayer == session.Bot {
		h.playBotMove(conn, session)
	}

	return session.ID
}

func (h *GameHandler) handleMakeMove(conn *websocket.Conn, payload interface{}) {
	var movePayload models.MakeMovePayload
	if err := h.parsePayload(payload, &movePayload); err != nil {
		h.sendError(conn, "INVALID_PAYLOAD", "Invalid move payload", "")
		return
	}

	session, ok := h.gameManager.Get(movePayload.GameID)
	if !ok {
		h.sendError(conn, "GAME_NOT_FOUND", "Game not found", "")
		return
	}

	move, err := h.gameManager.Move(movePayload.GameID, session.Human, movePayload.Column)
	if err != nil {
		conn.WriteJSON(models.NewWSMessage(models.MsgMoveResult, models.MoveResultPayload{
			Success:    false,
			Error:      err.Error(),
			Session:    session,
			IsGameOver: session.Status == game.StatusFinished,
		}))
		return
	}

	conn.WriteJSON(models.NewWSMessage(models.MsgMoveResult, models.MoveResultPayload{
		Success:    true,
		Move:       move,
		Session:    session,
		IsGameOver: session.Status == game.StatusFinished,
	}))

	h.analyticsService.EmitMovePlayed(session, move)

	if session.Status == game.StatusFinished {
		h.finishGame(conn, session)
		return
	}

	h.playBotMove(conn, session)
}

// playBotMove runs the engine on a snapshot of the session grid, commits the
// chosen column and reports it to the client.
func (h *GameHandler) playBotMove(conn *websocket.Conn, session *game.Session) {
	start := time.Now()
	result, err := h.engine.Decide(session.State.Grid)
	think := time.Since(start)
	if err != nil {
		h.sendError(conn, "BOT_FAILED", "Engine could not pick a move", err.Error())
		return
	}

	move, err := h.gameManager.Move(session.ID, session.Bot, result.Column)
	if err != nil {
		h.sendError(conn, "BOT_FAILED", "Engine move was rejected", err.Error())
		return
	}

	h.analyticsService.EmitBotDecision(session, result.Column, result.Score, think)
	h.analyticsService.EmitMovePlayed(session, move)

	conn.WriteJSON(models.NewWSMessage(models.MsgBotMove, models.BotMovePayload{
		Move:     move,
		Column:   result.Column,
		Score:    models.FiniteScore(result.Score),
		ThinkMs:  think.Milliseconds(),
		Session:  session,
		GameOver: session.Status == game.StatusFinished,
	}))

	if session.Status == game.StatusFinished {
		h.finishGame(conn, session)
	}
}

func (h *GameHandler) finishGame(conn *websocket.Conn, session *game.Session) {
	var duration int64
	if session.FinishedAt != nil {
		duration = int64(session.FinishedAt.Sub(session.CreatedAt).Seconds())
	}

	conn.WriteJSON(models.NewWSMessage(models.MsgGameEnd, models.GameEndPayload{
		GameID:   session.ID,
		Winner:   session.Winner,
		IsDraw:   session.IsDraw,
		Session:  session,
		Duration: duration,
	}))

	h.analyticsService.EmitGameEnded(session)

	if h.store != nil {
		if err := h.store.SaveResult(session); err != nil {
			log.Printf("Failed to save result for session %s: %v", session.ID, err)
		}
	}
}

func (h *GameHandler) handleGetGameState(conn *websocket.Conn, payload interface{}) {
	var statePayload models.GetGameStatePayload
	if err := h.parsePayload(payload, &statePayload); err != nil {
		h.sendError(conn, "INVALID_PAYLOAD", "Invalid game state payload", "")
		return
	}

	session, ok := h.gameManager.Get(statePayload.GameID)
	if !ok {
		h.sendError(conn, "GAME_NOT_FOUND", "Game not found", "")
		return
	}

	conn.WriteJSON(models.NewWSMessage(models.MsgGameState, models.GameStatePayload{
		Session: session,
	}))
}

func (h *GameHandler) handleHeartbeat(conn *websocket.Conn, sessionID uuid.UUID) {
	conn.WriteJSON(models.NewWSMessage(models.MsgHeartbeatAck, map[string]interface{}{
		"server_time": time.Now(),
		"game_id":     sessionID.String(),
	}))
}

func (h *GameHandler) sendError(conn *websocket.Conn, code, message, details string) {
	conn.WriteJSON(models.NewWSMessage(models.MsgError, models.ErrorPayload{
		Code:    code,
		Message: message,
		Details: details,
	}))
}

func (h *GameHandler) parsePayload(payload interface{}, target interface{}) error {
	// Convert payload to JSON and back to parse into target struct
	jsonData, err := json.Marshal(payload)
	if err != nil {
		return err
	}

	return json.Unmarshal(jsonData, target)
}

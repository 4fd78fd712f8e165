package kafka

import (
	"context"
	"encoding/json"
	"fmt"
	"log"
	"time"

	"github.com/google/uuid"
	"github.com/segmentio/kafka-go"

	"connect-four-engine/internal/game"
	"connect-four-engine/internal/models"
)

// EventType labels a game telemetry event.
type EventType string

const (
	EventGameStarted EventType = "game_started"
	EventMovePlayed  EventType = "move_played"
	EventBotDecision EventType = "bot_decision"
	EventGameEnded   EventType = "game_ended"
)

// BaseEvent is the envelope shared by all events.
type BaseEvent struct {
	EventType EventType `json:"event_type"`
	EventID   string    `json:"event_id"`
	Timestamp time.Time `json:"timestamp"`
	GameID    string    `json:"game_id"`
}

type GameStartedEvent struct {
	BaseEvent
	HumanName   string `json:"human_name"`
	HumanStarts bool   `json:"human_starts"`
	BotPlayer   int    `json:"bot_player"`
}

type MovePlayedEvent struct {
	BaseEvent
	Player     int  `json:"player"`
	Column     int  `json:"column"`
	Row        int  `json:"row"`
	MoveNumber int  `json:"move_number"`
	ByBot      bool `json:"by_bot"`
}

// BotDecisionEvent captures what the search decided and how long it took.
type BotDecisionEvent struct {
	BaseEvent
	Column     int     `json:"column"`
	Score      float64 `json:"score"`
	ThinkMs    int64   `json:"think_ms"`
	MoveNumber int     `json:"move_number"`
}

type GameEndedEvent struct {
	BaseEvent
	Winner     int   `json:"winner"`
	BotWon     bool  `json:"bot_won"`
	IsDraw     bool  `json:"is_draw"`
	TotalMoves int   `json:"total_moves"`
	Duration   int64 `json:"duration_seconds"`
}

// ProducerConfig holds the tunables for the event writer.
type ProducerConfig struct {
	Brokers      []string
	Topic        string
	BatchSize    int
	BatchTimeout time.Duration
	RequiredAcks int
	Retries      int
}

// DefaultProducerConfig returns the settings used in production.
func DefaultProducerConfig(brokers []string) ProducerConfig {
	return ProducerConfig{
		Brokers:      brokers,
		Topic:        "connect-four-events",
		BatchSize:    100,
		BatchTimeout: 10 * time.Millisecond,
		RequiredAcks: 1,
		Retries:      3,
	}
}

// Producer writes events asynchronously; a slow or absent broker never
// blocks a move.
type Producer struct {
	writer *kafka.Writer
}

func NewProducer(config ProducerConfig) (*Producer, error) {
	if len(config.Brokers) == 0 {
		return nil, fmt.Errorf("no kafka brokers configured")
	}

	writer := &kafka.Writer{
		Addr:         kafka.TCP(config.Brokers...),
		Topic:        config.Topic,
		Balancer:     &kafka.Hash{},
		RequiredAcks: kafka.RequiredAcks(config.RequiredAcks),
		Async:        true,
		BatchSize:    config.BatchSize,
		BatchTimeout: config.BatchTimeout,
		Compression:  kafka.Snappy,
		MaxAttempts:  config.Retries,
		ErrorLogger:  kafka.LoggerFunc(log.Printf),
	}

	return &Producer{writer: writer}, nil
}

// Send publishes one event keyed by game id, so every game's events land in
// one partition, in order.
func (p *Producer) Send(ctx context.Context, gameID string, event interface{}) error {
	value, err := json.Marshal(event)
	if err != nil {
		return fmt.Errorf("marshal event: %w", err)
	}

	return p.writer.WriteMessages(ctx, kafka.Message{
		Key:   []byte(gameID),
		Value: value,
	})
}

func (p *Producer) Close() error {
	return p.writer.Close()
}

// AnalyticsService is the emission facade the handlers talk to. With no
// producer or when disabled it is a no-op, so gameplay never depends on
// Kafka being reachable.
type AnalyticsService struct {
	producer *Producer
	enabled  bool
}

func NewAnalyticsService(producer *Producer, enabled bool) *AnalyticsService {
	return &AnalyticsService{
		producer: producer,
		enabled:  enabled && producer != nil,
	}
}

func (a *AnalyticsService) IsEnabled() bool {
	return a.enabled
}

func (a *AnalyticsService) EmitGameStarted(s *game.Session, humanStarts bool) {
	if !a.enabled {
		return
	}
	a.send(s.ID.String(), GameStartedEvent{
		BaseEvent:   a.base(EventGameStarted, s.ID.String()),
		HumanName:   s.HumanName,
		HumanStarts: humanStarts,
		BotPlayer:   int(s.Bot),
	})
}

func (a *AnalyticsService) EmitMovePlayed(s *game.Session, move *game.Move) {
	if !a.enabled {
		return
	}
	a.send(s.ID.String(), MovePlayedEvent{
		BaseEvent:  a.base(EventMovePlayed, s.ID.String()),
		Player:     int(move.Player),
		Column:     move.Column,
		Row:        move.Row,
		MoveNumber: s.MoveCount,
		ByBot:      move.Player == s.Bot,
	})
}

func (a *AnalyticsService) EmitBotDecision(s *game.Session, column int, score float64, think time.Duration) {
	if !a.enabled {
		return
	}
	a.send(s.ID.String(), BotDecisionEvent{
		BaseEvent:  a.base(EventBotDecision, s.ID.String()),
		Column:     column,
		Score:      models.FiniteScore(score),
		ThinkMs:    think.Milliseconds(),
		MoveNumber: s.MoveCount,
	})
}

func (a *AnalyticsService) EmitGameEnded(s *game.Session) {
	if !a.enabled {
		return
	}
	var duration int64
	if s.FinishedAt != nil {
		duration = int64(s.FinishedAt.Sub(s.CreatedAt).Seconds())
	}
	a.send(s.ID.String(), GameEndedEvent{
		BaseEvent:  a.base(EventGameEnded, s.ID.String()),
		Winner:     int(s.Winner),
		BotWon:     s.Winner == s.Bot,
		IsDraw:     s.IsDraw,
		TotalMoves: s.MoveCount,
		Duration:   duration,
	})
}

func (a *AnalyticsService) base(eventType EventType, gameID string) BaseEvent {
	return BaseEvent{
		EventType: eventType,
		EventID:   uuid.New().String(),
		Timestamp: time.Now(),
		GameID:    gameID,
	}
}

func (a *AnalyticsService) send(gameID string, event interface{}) {
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := a.producer.Send(ctx, gameID, event); err != nil {
		log.Printf("analytics: failed to send event: %v", err)
	}
}

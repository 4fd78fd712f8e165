package kafka

import (
	"context"
	"encoding/json"
	"log"
	"sync"
	"time"

	"github.com/segmentio/kafka-go"
)

// ConsumerConfig holds the reader settings.
type ConsumerConfig struct {
	Brokers []string
	Topic   string
	GroupID string
}

// DefaultConsumerConfig returns the settings used by the analytics consumer.
func DefaultConsumerConfig(brokers []string) ConsumerConfig {
	return ConsumerConfig{
		Brokers: brokers,
		Topic:   "connect-four-events",
		GroupID: "analytics-processor",
	}
}

// Tally aggregates the event stream in memory: event counts, game outcomes
// and bot decision latency. It is the whole of the consumer-side analytics.
type Tally struct {
	mu sync.Mutex

	EventCounts  map[EventType]int64
	GamesEnded   int64
	BotWins      int64
	HumanWins    int64
	Draws        int64
	Decisions    int64
	TotalThinkMs int64
}

func NewTally() *Tally {
	return &Tally{EventCounts: make(map[EventType]int64)}
}

func (t *Tally) record(raw []byte) {
	var base BaseEvent
	if err := json.Unmarshal(raw, &base); err != nil {
		log.Printf("consumer: undecodable event: %v", err)
		return
	}

	t.mu.Lock()
	defer t.mu.Unlock()
	t.EventCounts[base.EventType]++

	switch base.EventType {
	case EventGameEnded:
		var ev GameEndedEvent
		if err := json.Unmarshal(raw, &ev); err != nil {
			return
		}
		t.GamesEnded++
		switch {
		case ev.IsDraw:
			t.Draws++
		case ev.BotWon:
			t.BotWins++
		default:
			t.HumanWins++
		}
	case EventBotDecision:
		var ev BotDecisionEvent
		if err := json.Unmarshal(raw, &ev); err != nil {
			return
		}
		t.Decisions++
		t.TotalThinkMs += ev.ThinkMs
	}
}

// Snapshot returns a copy safe to log or serve.
func (t *Tally) Snapshot() map[string]int64 {
	t.mu.Lock()
	defer t.mu.Unlock()

	out := map[string]int64{
		"games_ended": t.GamesEnded,
		"bot_wins":    t.BotWins,
		"human_wins":  t.HumanWins,
		"draws":       t.Draws,
	}
	for eventType, n := range t.EventCounts {
		out["events_"+string(eventType)] = n
	}
	if t.Decisions > 0 {
		out["avg_think_ms"] = t.TotalThinkMs / t.Decisions
	}
	return out
}

// Consumer reads the event topic and feeds a Tally.
type Consumer struct {
	reader *kafka.Reader
	tally  *Tally
}

func NewConsumer(config ConsumerConfig, tally *Tally) *Consumer {
	reader := kafka.NewReader(kafka.ReaderConfig{
		Brokers:        config.Brokers,
		Topic:          config.Topic,
		GroupID:        config.GroupID,
		MinBytes:       10e3,
		MaxBytes:       10e6,
		MaxWait:        time.Second,
		StartOffset:    kafka.LastOffset,
		CommitInterval: time.Second,
	})
	return &Consumer{reader: reader, tally: tally}
}

// Run consumes until ctx is cancelled.
func (c *Consumer) Run(ctx context.Context) error {
	for {
		msg, err := c.reader.ReadMessage(ctx)
		if err != nil {
			if ctx.Err() != nil {
				return nil
			}
			return err
		}
		c.tally.record(msg.Value)
	}
}

func (c *Consumer) Close() error {
	return c.reader.Close()
}

package main

import (
	"context"
	"flag"
	"log"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"connect-four-engine/internal/kafka"
)

func main() {
	// Command line flags
	var (
		brokers = flag.String("brokers", getEnv("KAFKA_BROKERS", "localhost:9092"), "Kafka broker addresses")
		topic   = flag.String("topic", getEnv("KAFKA_TOPIC", "connect-four-events"), "Kafka topic to consume")
		groupID = flag.String("group", getEnv("KAFKA_GROUP_ID", "analytics-processor"), "Kafka consumer group ID")
		report  = flag.Duration("report", 30*time.Second, "Interval between tally reports")
	)
	flag.Parse()

	log.Printf("Starting Connect Four Analytics Consumer")
	log.Printf("Brokers: %s", *brokers)
	log.Printf("Topic: %s", *topic)
	log.Printf("Group ID: %s", *groupID)

	config := kafka.DefaultConsumerConfig(strings.Split(*brokers, ","))
	config.Topic = *topic
	config.GroupID = *groupID

	tally := kafka.NewTally()
	consumer := kafka.NewConsumer(config, tally)
	defer consumer.Close()

	// Setup graceful shutdown
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	go func() {
		<-quit
		log.Println("Shutdown signal received")
		cancel()
	}()

	// Periodic tally reports
	go func() {
		ticker := time.NewTicker(*report)
		defer ticker.Stop()
		for {
			select {
			case <-ctx.Done():
				return
			case <-ticker.C:
				log.Printf("Tally: %v", tally.Snapshot())
			}
		}
	}()

	log.Printf("✓ Consuming events")
	if err := consumer.Run(ctx); err != nil {
		log.Fatalf("Consumer failed: %v", err)
	}

	log.Printf("Final tally: %v", tally.Snapshot())
	log.Println("Consumer exited")
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

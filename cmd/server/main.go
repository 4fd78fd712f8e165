package main

import (
	"context"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"

	"connect-four-engine/internal/bot"
	"connect-four-engine/internal/config"
	"connect-four-engine/internal/database"
	"connect-four-engine/internal/game"
	"connect-four-engine/internal/handlers"
	"connect-four-engine/internal/kafka"
	"connect-four-engine/internal/server"
)

func main() {
	// Load environment variables
	if err := godotenv.Load(); err != nil {
		log.Println("No .env file found")
	}

	cfg := config.Load()

	// The results store is optional; without it games still run, only the
	// leaderboard endpoints go dark.
	var store *database.Store
	if cfg.DatabaseURL != "" {
		var err error
		store, err = database.NewStore(cfg.DatabaseURL)
		if err != nil {
			log.Fatal("Failed to connect to database:", err)
		}
		defer store.Close()
	} else {
		log.Println("DATABASE_URL not set, results store disabled")
	}

	// Kafka is equally optional.
	var producer *kafka.Producer
	if cfg.AnalyticsEnabled {
		var err error
		producer, err = kafka.NewProducer(kafka.DefaultProducerConfig(cfg.KafkaBrokers))
		if err != nil {
			log.Fatal("Failed to create Kafka producer:", err)
		}
		defer producer.Close()
	} else {
		log.Println("Analytics disabled")
	}

	// Initialize services
	gameManager := game.NewManager()
	engine := bot.New()
	analyticsService := kafka.NewAnalyticsService(producer, cfg.AnalyticsEnabled)

	// Initialize handlers
	gameHandler := handlers.NewGameHandler(gameManager, engine, store, analyticsService)
	leaderboardHandler := handlers.NewLeaderboardHandler(store)

	// Initialize server
	srv := server.NewServer(cfg, gameHandler, leaderboardHandler)

	// Start server
	go func() {
		log.Printf("Server starting on port %s", cfg.Port)
		if err := srv.Start(); err != nil && err != http.ErrServerClosed {
			log.Fatal("Server failed to start:", err)
		}
	}()

	// Graceful shutdown
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Println("Shutting down server...")
	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := srv.Shutdown(ctx); err != nil {
		log.Fatal("Server forced to shutdown:", err)
	}

	log.Println("Server exited")
}

package main

import (
	"context"
	"fmt"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"gemini-chat-backend/internal/config"
	"gemini-chat-backend/internal/database"
	"gemini-chat-backend/internal/handlers"
	"gemini-chat-backend/internal/repository"
	"gemini-chat-backend/internal/router"
	"gemini-chat-backend/internal/services"
	"gemini-chat-backend/internal/web"
)

func main() {
	log.Println("🚀 Starting Gemini Chat Backend...")

	// ──── Step 1: Load Environment Variables ────
	cfg := config.Load()
	if err := cfg.Validate(); err != nil {
		log.Fatalf("✗ Invalid configuration: %v", err)
	}
	log.Println("✓ Environment variables loaded")

	// ──── Step 2: Open Conversation Store ────
	var store services.TurnStore
	switch cfg.StoreDriver {
	case config.StorePostgres:
		if err := database.RunPostgresMigrations(cfg.DatabaseURL); err != nil {
			log.Fatalf("✗ Database migration failed: %v", err)
		}
		log.Println("✓ Database migrations applied")

		pool, err := database.NewPostgresPool(cfg.DatabaseURL)
		if err != nil {
			log.Fatalf("✗ PostgreSQL connection failed: %v", err)
		}
		defer pool.Close()
		log.Println("✓ PostgreSQL connected")
		store = repository.NewChatTurnRepo(pool)

	case config.StoreSQLite:
		db, err := database.NewSQLiteDB(cfg.SQLitePath)
		if err != nil {
			log.Fatalf("✗ SQLite open failed: %v", err)
		}
		defer db.Close()
		log.Printf("✓ SQLite opened at %s", cfg.SQLitePath)

		if err := database.RunSQLiteMigrations(db); err != nil {
			log.Fatalf("✗ Database migration failed: %v", err)
		}
		log.Println("✓ Database migrations applied")
		store = repository.NewSQLiteChatTurnRepo(db)

	case config.StoreRedis:
		client, err := database.NewRedisClient(cfg.RedisURL)
		if err != nil {
			log.Fatalf("✗ Redis connection failed: %v", err)
		}
		defer client.Close()
		log.Println("✓ Redis connected")
		store = repository.NewRedisChatTurnRepo(client, repository.DefaultChatTurnsKey)
	}

	// ──── Step 3: Initialize Gemini Client ────
	geminiTimeout := time.Duration(cfg.GeminiTimeoutSeconds) * time.Second
	var gen services.Generator
	switch cfg.GeminiTransport {
	case config.TransportSDK:
		sdkClient, err := services.NewGeminiSDKClient(context.Background(), cfg.GeminiAPIKey, cfg.GeminiBaseURL, cfg.GeminiModel, geminiTimeout)
		if err != nil {
			log.Fatalf("✗ Gemini client initialization failed: %v", err)
		}
		defer sdkClient.Close()
		gen = sdkClient
	default:
		gen = services.NewGeminiClient(cfg.GeminiAPIKey, cfg.GeminiBaseURL, cfg.GeminiModel, geminiTimeout)
	}
	log.Printf("✓ Gemini client initialized (%s, %s)", cfg.GeminiModel, cfg.GeminiTransport)

	// ──── Initialize Services & Handlers ────
	chatService := services.NewChatService(gen, store, cfg.HistoryLimit)
	chatHandler := handlers.NewChatHandler(chatService)

	// ──── Step 4: Start HTTP Server ────
	r := router.New(chatHandler, web.Handler(), cfg.FrontendURL)

	// Writes must outlive the slowest provider call.
	writeTimeout := 15 * time.Second
	if t := geminiTimeout + 15*time.Second; t > writeTimeout {
		writeTimeout = t
	}

	server := &http.Server{
		Addr:         fmt.Sprintf(":%s", cfg.Port),
		Handler:      r,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: writeTimeout,
		IdleTimeout:  60 * time.Second,
	}

	// Graceful shutdown
	go func() {
		sigChan := make(chan os.Signal, 1)
		signal.Notify(sigChan, syscall.SIGINT, syscall.SIGTERM)
		shutdownOnSignal(server, sigChan, 30*time.Second)
	}()

	log.Printf("✓ Gemini Chat Backend ready on http://localhost:%s", cfg.Port)
	log.Printf("  API: http://localhost:%s/api", cfg.Port)
	log.Printf("  Store: %s", cfg.StoreDriver)

	if err := server.ListenAndServe(); err != http.ErrServerClosed {
		log.Fatalf("Server error: %v", err)
	}
}

// shutdownOnSignal waits for a signal, then drains server within timeout.
func shutdownOnSignal(server *http.Server, sigChan <-chan os.Signal, timeout time.Duration) error {
	<-sigChan
	log.Println("Shutting down...")

	ctx, cancel := context.WithTimeout(context.Background(), timeout)
	defer cancel()
	if err := server.Shutdown(ctx); err != nil {
		log.Printf("Shutdown error: %v", err)
		return err
	}
	return nil
}

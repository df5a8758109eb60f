package main

import (
	"context"
	"fmt"
	"log"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"github.com/streadway/amqp"

	"shoppinglist/internal/app"
	"shoppinglist/internal/config"
	"shoppinglist/internal/database"
	"shoppinglist/internal/events"
	"shoppinglist/internal/metrics"
	"shoppinglist/internal/services"
	"shoppinglist/pkg/logger"
	"shoppinglist/pkg/rabbitmq"
)

func main() {
	// --- Configuration ---
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}

	// `shoppinglist token [subject]` prints a maintenance token and exits.
	if len(os.Args) > 1 && os.Args[1] == "token" {
		subject := "maintenance"
		if len(os.Args) > 2 {
			subject = os.Args[2]
		}
		token, err := services.NewAuthService(cfg.JWTSecret, app.MaintenanceTokenTTL).IssueToken(subject)
		if err != nil {
			log.Fatalf("Failed to issue token: %v", err)
		}
		fmt.Println(token)
		return
	}

	// --- Logging ---
	appLogger, err := logger.Init(logger.Config{
		Level:    cfg.LogLevel,
		Format:   cfg.LogFormat,
		FilePath: cfg.LogFile,
	})
	if err != nil {
		log.Fatalf("Failed to initialize logger: %v", err)
	}

	// --- Database ---
	db, err := database.Open(cfg.DatabaseDriver, cfg.DatabaseDSN)
	if err != nil {
		log.Fatalf("Failed to open database: %v", err)
	}
	if err := database.Migrate(db); err != nil {
		log.Fatalf("Failed to migrate database: %v", err)
	}

	// --- Change events (optional) ---
	var notifier *events.Notifier
	if cfg.RabbitMQURL != "" {
		mqClient, err := rabbitmq.NewClient(rabbitmq.Config{URL: cfg.RabbitMQURL})
		if err != nil {
			log.Fatalf("Failed to initialize RabbitMQ client: %v", err)
		}
		defer mqClient.Close()
		notifier = events.NewNotifier(mqClient)

		messageHandler := func(msg amqp.Delivery) error {
			appLogger.Debug("change event", "routing_key", msg.RoutingKey, "body", string(msg.Body))
			return nil
		}
		if err := mqClient.ConsumeChangeEvents(messageHandler); err != nil {
			log.Printf("Failed to start RabbitMQ consumer: %v", err)
		}
	} else {
		appLogger.Info("RABBITMQ_URL not set, change events are disabled")
	}

	// --- Application ---
	application := app.New(app.Options{
		DB:              db,
		Notifier:        notifier,
		Metrics:         metrics.New(),
		Logger:          appLogger,
		JWTSecret:       cfg.JWTSecret,
		CleanupInterval: cfg.CleanupInterval,
		RequestLogging:  true,
	})

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	go application.Cleanup.Start(ctx, cfg.CleanupOnStart)

	// --- Start HTTP Server ---
	appLogger.Info("starting server", slog.String("port", cfg.AppPort))

	// Graceful shutdown handling
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)

	go func() {
		if err := application.Fiber.Listen(cfg.AppPort); err != nil {
			log.Fatalf("Server failed to start: %v", err)
		}
	}()

	<-quit
	log.Println("Shutting down server...")
	cancel()

	if err := application.Fiber.Shutdown(); err != nil {
		log.Printf("Error during Fiber shutdown: %v", err)
	}
	if sqlDB, err := db.DB(); err == nil {
		sqlDB.Close()
	}
	log.Println("Server gracefully stopped")
}

package main

import (
	"log"
	"os"
	"os/signal"
	"syscall"

	"go.uber.org/zap"

	"motoparts/internal/config"
	"motoparts/internal/logging"
	"motoparts/internal/sandbox"
	"motoparts/internal/services"
	"motoparts/pkg/rabbitmq"
)

func main() {
	cfg := config.LoadSandbox(config.New())

	logger, err := logging.New(cfg.LogLevel)
	if err != nil {
		log.Fatalf("Failed to build logger: %v", err)
	}
	defer logger.Sync() //nolint:errcheck

	db, err := sandbox.OpenDatabase(cfg.DatabaseDSN)
	if err != nil {
		logger.Fatal("Failed to open database", zap.Error(err))
	}

	// Events are optional; without RABBITMQ_URL the order service runs without a publisher.
	var events services.EventPublisher
	if cfg.RabbitMQURL != "" {
		mqClient, err := rabbitmq.NewClient(rabbitmq.Config{URL: cfg.RabbitMQURL}, logger)
		if err != nil {
			logger.Fatal("Failed to initialize RabbitMQ client", zap.Error(err))
		}
		defer mqClient.Close()
		events = mqClient

		logEvent := func(event rabbitmq.Event) error {
			logger.Info("event received",
				zap.String("type", event.Type),
				zap.String("order", event.OrderID),
				zap.String("status", event.Status),
			)
			return nil
		}
		for _, queue := range []string{rabbitmq.OrderQueue, rabbitmq.PaymentQueue} {
			if err := mqClient.Consume(queue, logEvent); err != nil {
				logger.Warn("Failed to start RabbitMQ consumer", zap.String("queue", queue), zap.Error(err))
			}
		}
	}

	server := sandbox.New(cfg, db, events, logger)
	if err := server.Seed(); err != nil {
		logger.Fatal("Failed to seed sandbox", zap.Error(err))
	}

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)

	go func() {
		logger.Info("Starting server", zap.String("port", cfg.AppPort))
		if err := server.App.Listen(cfg.AppPort); err != nil {
			logger.Fatal("Server failed to start", zap.Error(err))
		}
	}()

	<-quit
	logger.Info("Shutting down server...")
	if err := server.App.Shutdown(); err != nil {
		logger.Error("Error during Fiber shutdown", zap.Error(err))
	}
	logger.Info("Server gracefully stopped")
}

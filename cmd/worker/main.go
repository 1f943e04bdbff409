package main

import (
	"context"
	"errors"
	"os"
	"os/signal"
	"syscall"

	"github.com/Domenick1991/tourtrek/config"
	"github.com/Domenick1991/tourtrek/internal/email"
	"github.com/Domenick1991/tourtrek/internal/kafka"
	"github.com/Domenick1991/tourtrek/internal/logger"
)

func main() {
	cfgPath := os.Getenv("CONFIG_PATH")
	if cfgPath == "" {
		cfgPath = "config.yaml"
	}

	cfg, err := config.LoadConfig(cfgPath)
	if err != nil {
		bootLog := logger.New("info", false)
		bootLog.Fatal().Err(err).Msg("load config")
	}

	log := logger.New(cfg.Log.Level, cfg.Log.Pretty).With().Str("component", "worker").Logger()
	if len(cfg.Kafka.Brokers) == 0 {
		log.Fatal().Msg("kafka.brokers is empty, nothing to consume")
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()
	ctx = log.WithContext(ctx)

	consumer := kafka.NewConsumer(cfg.Kafka.Brokers, cfg.Kafka.GroupID, cfg.Kafka.NotificationsTopic)
	defer consumer.Close()

	sender := email.NewSender(log)

	log.Info().Str("topic", cfg.Kafka.NotificationsTopic).Msg("worker started")
	err = consumer.Consume(ctx, sender.Send)
	if err != nil && !errors.Is(err, context.Canceled) {
		log.Error().Err(err).Msg("consumer stopped")
		return
	}
	log.Info().Msg("worker stopped")
}

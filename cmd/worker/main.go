package main

import (
	"context"
	"flag"
	"os"
	"os/signal"
	"syscall"

	"github.com/dsight/partner-risk-core/internal/partnercore/config"
	"github.com/dsight/partner-risk-core/internal/partnercore/edsclient"
	"github.com/dsight/partner-risk-core/internal/partnercore/events"
	"github.com/dsight/partner-risk-core/internal/partnercore/ingestion"
	"github.com/dsight/partner-risk-core/internal/partnercore/persistence"
	"github.com/dsight/partner-risk-core/internal/partnercore/registry"
	"go.uber.org/zap"
)

func main() {
	logger := initLogger()
	defer func(logger *zap.Logger) {
		if err := logger.Sync(); err != nil {
			logger.Error("failed to sync logger", zap.Error(err))
		}
	}(logger)

	configPath := flag.String("config", "config.yaml", "path to the YAML configuration file")
	flag.Parse()

	cfg, err := config.Load(*configPath)
	if err != nil {
		logger.Fatal("failed to load config", zap.Error(err))
	}

	repo, err := persistence.NewRepository(cfg.DB)
	if err != nil {
		logger.Fatal("failed to initialize database", zap.Error(err))
	}
	defer repo.Close()

	eds := edsclient.New(cfg.EDS, logger)
	if eds.MockMode() {
		logger.Warn("eds client running in mock mode, no live API key configured")
	}

	inboundPublisher, err := events.NewKafkaPublisher(cfg.Kafka.Brokers, cfg.Kafka.InboundTopic, logger)
	if err != nil {
		logger.Fatal("failed to initialize inbound kafka publisher", zap.Error(err))
	}
	defer inboundPublisher.Close()

	restorePublisher, err := events.NewRestoreKafkaPublisher(cfg.Kafka.Brokers, cfg.Kafka.OutboundTopic, logger)
	if err != nil {
		logger.Fatal("failed to initialize restore kafka publisher", zap.Error(err))
	}
	defer restorePublisher.Close()

	coordinator := ingestion.NewCoordinator(repo, eds, logger)
	partnerRegistry := registry.NewRegistry(repo, inboundPublisher, restorePublisher, logger)
	_ = partnerRegistry // exposed as a Go API for callers outside this module's scope

	subscriber := events.NewKafkaSubscriber(cfg.Kafka.Brokers, cfg.Kafka.InboundTopic, cfg.Kafka.ConsumerGroupID, logger)
	subscriber.RegisterHandler(coordinator.Handle)
	defer subscriber.Close()

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	subscriber.Start(ctx)

	logger.Info("worker started",
		zap.String("inbound_topic", cfg.Kafka.InboundTopic),
		zap.String("outbound_topic", cfg.Kafka.OutboundTopic),
		zap.String("consumer_group", cfg.Kafka.ConsumerGroupID),
	)

	waitForShutdown(cancel, logger)
}

func initLogger() *zap.Logger {
	logger, _ := zap.NewProduction()
	return logger
}

func waitForShutdown(cancel context.CancelFunc, logger *zap.Logger) {
	stop := make(chan os.Signal, 1)
	signal.Notify(stop, os.Interrupt, syscall.SIGTERM)
	<-stop

	cancel()
	logger.Info("worker stopped")
}

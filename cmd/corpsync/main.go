// Command corpsync downloads the EDS corp-code archive and idempotently
// upserts it into the CorpCodeDirectory. It is meant to be invoked on a
// schedule (cron, k8s CronJob) outside this module's scope.
package main

import (
	"context"
	"flag"

	"github.com/dsight/partner-risk-core/internal/partnercore/config"
	"github.com/dsight/partner-risk-core/internal/partnercore/edsclient"
	"github.com/dsight/partner-risk-core/internal/partnercore/persistence"
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

	ctx := context.Background()
	archive, err := eds.FetchCorpCodeArchive(ctx)
	if err != nil {
		logger.Fatal("failed to fetch corp code archive", zap.Error(err))
	}

	entries, err := edsclient.ParseCorpCodeArchive(archive)
	if err != nil {
		logger.Fatal("failed to parse corp code archive", zap.Error(err))
	}

	if err := repo.UpsertCorpCodeEntries(ctx, entries); err != nil {
		logger.Fatal("failed to upsert corp code directory", zap.Error(err))
	}

	logger.Info("corp code directory synced", zap.Int("entry_count", len(entries)))
}

func initLogger() *zap.Logger {
	logger, _ := zap.NewProduction()
	return logger
}

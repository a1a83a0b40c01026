// Command provision creates the todo table when it does not exist and waits
// until it is active.
package main

import (
	"context"
	"log"

	"go.uber.org/zap"

	"todo-backend/infrastructure/config"
	"todo-backend/infrastructure/di"
)

func main() {
	ctx := context.Background()

	cfg, err := config.LoadConfig()
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}

	logger, err := di.ProvideLogger(cfg)
	if err != nil {
		log.Fatalf("Failed to create logger: %v", err)
	}
	defer func() { _ = logger.Sync() }()

	awsCfg, err := di.ProvideAWSConfig(ctx, cfg)
	if err != nil {
		logger.Fatal("Failed to load AWS configuration", zap.Error(err))
	}

	repo := di.ProvideDynamoRepository(di.ProvideDynamoDBClient(awsCfg, cfg), cfg, logger)

	if err := repo.EnsureTable(ctx, cfg.TableWaitTimeout); err != nil {
		logger.Fatal("Failed to provision table",
			zap.String("table", cfg.TableName),
			zap.Error(err),
		)
	}
	if err := repo.Ping(ctx); err != nil {
		logger.Fatal("Table is not ready", zap.String("table", cfg.TableName), zap.Error(err))
	}

	logger.Info("Table ready", zap.String("table", repo.TableName()))
}

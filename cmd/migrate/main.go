package main

import (
	"context"
	"flag"
	"log"
	"time"

	"go.uber.org/zap"

	"github.com/pageza/vegandiet/backend/config"
	"github.com/pageza/vegandiet/backend/internal/database"
	"github.com/pageza/vegandiet/backend/pkg/logger"
)

func main() {
	timeout := flag.Duration("timeout", 2*time.Minute, "time allowed for index builds")
	flag.Parse()

	cfg, err := config.LoadConfig()
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}
	zlog := logger.New(logger.Config{Level: cfg.LogLevel, Format: cfg.LogFormat})
	defer func() { _ = zlog.Sync() }()

	ctx, cancel := context.WithTimeout(context.Background(), *timeout)
	defer cancel()

	client, err := database.ConnectMongo(ctx, cfg.MongoURI)
	if err != nil {
		zlog.Fatal("failed to connect to database", zap.Error(err))
	}
	defer func() { _ = client.Disconnect(context.Background()) }()

	if err := database.EnsureIndexes(ctx, client.Database(cfg.MongoDatabase)); err != nil {
		zlog.Fatal("failed to apply indexes", zap.Error(err))
	}
	zlog.Info("indexes applied", zap.String("database", cfg.MongoDatabase))
}

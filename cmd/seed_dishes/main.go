package main

import (
	"context"
	"log"
	"time"

	"go.uber.org/zap"

	"github.com/pageza/vegandiet/backend/config"
	"github.com/pageza/vegandiet/backend/internal/database"
	"github.com/pageza/vegandiet/backend/internal/repository"
	"github.com/pageza/vegandiet/backend/pkg/logger"
)

func main() {
	cfg, err := config.LoadConfig()
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}
	zlog := logger.New(logger.Config{Level: cfg.LogLevel, Format: "console", Development: true})
	defer func() { _ = zlog.Sync() }()

	ctx, cancel := context.WithTimeout(context.Background(), time.Minute)
	defer cancel()

	client, err := database.ConnectMongo(ctx, cfg.MongoURI)
	if err != nil {
		zlog.Fatal("failed to connect to database", zap.Error(err))
	}
	defer func() { _ = client.Disconnect(context.Background()) }()

	db := client.Database(cfg.MongoDatabase)
	if err := database.EnsureIndexes(ctx, db); err != nil {
		zlog.Fatal("failed to ensure indexes", zap.Error(err))
	}

	for i := range seedDishes {
		seedDishes[i].IsVegan = true
	}
	created, err := repository.NewDishRepository(db).UpsertByName(ctx, seedDishes)
	if err != nil {
		zlog.Fatal("failed to seed dishes", zap.Error(err))
	}
	zlog.Info("dishes seeded", zap.Int("total", len(seedDishes)), zap.Int("created", created))

	created, err = repository.NewStoreRepository(db).UpsertByName(ctx, seedStores)
	if err != nil {
		zlog.Fatal("failed to seed stores", zap.Error(err))
	}
	zlog.Info("stores seeded", zap.Int("total", len(seedStores)), zap.Int("created", created))
}

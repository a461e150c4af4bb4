package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"
	"go.uber.org/zap"

	"github.com/cowboys44/panda-pos/internal/config"
	kafkax "github.com/cowboys44/panda-pos/internal/kafka"
	"github.com/cowboys44/panda-pos/internal/kitchen"
	"github.com/cowboys44/panda-pos/internal/orders"
	"github.com/cowboys44/panda-pos/internal/redisx"
)

func main() {
	_ = godotenv.Load()

	cfg := config.Load()
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	logger, err := zap.NewProduction()
	if err != nil {
		panic(err)
	}
	defer logger.Sync()

	// Redis
	rdb := redisx.New(cfg.RedisAddr)
	defer rdb.Close()

	svc := &kitchen.Service{
		Board:       &kitchen.Board{Redis: rdb},
		Redis:       rdb,
		ServiceName: cfg.ServiceName + "-kitchen",
		Logger:      logger,
	}

	cons := kafkax.NewConsumer(cfg.KafkaBrokers, cfg.KitchenGroup, orders.TopicOrderPlaced, cfg.KitchenWorkers, logger)

	go func() {
		logger.Info("kitchen consumer started",
			zap.String("group", cfg.KitchenGroup),
			zap.String("topic", orders.TopicOrderPlaced),
			zap.Int("workers", cfg.KitchenWorkers))
		if err := cons.Start(ctx, svc.HandleOrderPlaced); err != nil {
			logger.Error("consumer exit", zap.Error(err))
			cancel()
		}
	}()

	sig := make(chan os.Signal, 1)
	signal.Notify(sig, syscall.SIGINT, syscall.SIGTERM)
	<-sig
	logger.Info("shutting down consumer")
	cancel()
	time.Sleep(500 * time.Millisecond)
}

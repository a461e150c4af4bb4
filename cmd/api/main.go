package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"
	"go.uber.org/zap"

	"github.com/cowboys44/panda-pos/internal/config"
	"github.com/cowboys44/panda-pos/internal/employees"
	"github.com/cowboys44/panda-pos/internal/httpx"
	"github.com/cowboys44/panda-pos/internal/inventory"
	kafkax "github.com/cowboys44/panda-pos/internal/kafka"
	"github.com/cowboys44/panda-pos/internal/kitchen"
	"github.com/cowboys44/panda-pos/internal/menu"
	"github.com/cowboys44/panda-pos/internal/orders"
	"github.com/cowboys44/panda-pos/internal/payment"
	"github.com/cowboys44/panda-pos/internal/postgres"
	"github.com/cowboys44/panda-pos/internal/redisx"
	"github.com/cowboys44/panda-pos/internal/reports"
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

	// DB
	db, err := postgres.Connect(ctx, cfg.PostgresDSN)
	if err != nil {
		logger.Fatal("db connect", zap.Error(err))
	}
	defer db.Close()

	// Redis
	rdb := redisx.New(cfg.RedisAddr)
	defer rdb.Close()

	// Kafka producer for order.placed events
	prod := kafkax.NewProducer(cfg.KafkaBrokers, orders.TopicOrderPlaced, 1024)
	prod.Start(ctx)

	// Payment core
	store := &payment.PGStore{DB: db, Timezone: cfg.StoreTimezone}
	processor := payment.NewProcessor(store, logger)

	router := httpx.NewRouter()

	oh := &orders.Handler{
		Repo:      &orders.Repo{DB: db, Timezone: cfg.StoreTimezone},
		Processor: processor,
		Producer:  prod,
		Redis:     rdb,
		Service:   cfg.ServiceName,
		Logger:    logger,
	}
	oh.Register(router)

	kh := &kitchen.Handler{Board: &kitchen.Board{Redis: rdb}, Logger: logger}
	kh.Register(router)

	ih := &inventory.Handler{Repo: &inventory.Repo{DB: db}, Logger: logger}
	ih.Register(router)

	mh := &menu.Handler{Repo: &menu.Repo{DB: db}, Logger: logger}
	mh.Register(router)

	eh := &employees.Handler{
		Repo:       &employees.Repo{DB: db, Timezone: cfg.StoreTimezone},
		Logger:     logger,
		HelpDeskID: cfg.HelpDeskEmployeeID,
	}
	eh.Register(router)

	rh := &reports.Handler{
		Repo:   &reports.Repo{DB: db, Timezone: cfg.StoreTimezone},
		Logger: logger,
	}
	rh.Register(router)

	srv := &http.Server{Addr: cfg.HTTPAddr, Handler: router}

	go func() {
		logger.Info("http listening", zap.String("addr", cfg.HTTPAddr))
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logger.Fatal("listen", zap.Error(err))
		}
	}()

	sig := make(chan os.Signal, 1)
	signal.Notify(sig, syscall.SIGINT, syscall.SIGTERM)
	<-sig
	logger.Info("shutting down")

	ctx2, cancel2 := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel2()
	_ = srv.Shutdown(ctx2)
	prod.Close() // close inbox, flush remaining events
	cancel()
	prod.WaitClosed()
}

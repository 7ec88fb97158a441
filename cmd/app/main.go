package main

import (
	"context"
	"log"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/rpawar/slotbook/config"
	"github.com/rpawar/slotbook/internal/bootstrap"
	"github.com/rpawar/slotbook/internal/cache"
	"github.com/rpawar/slotbook/internal/kafka"
	"github.com/rpawar/slotbook/internal/repository"
	"github.com/rpawar/slotbook/internal/service/booking"
	"go.uber.org/zap"
)

func main() {
	cfgPath := os.Getenv("CONFIG_PATH")
	if cfgPath == "" {
		cfgPath = "config.yaml"
	}

	cfg, err := config.LoadConfig(cfgPath)
	if err != nil {
		log.Fatalf("load config: %v", err)
	}

	logger, err := zap.NewProduction()
	if err != nil {
		log.Fatalf("init logger: %v", err)
	}
	defer logger.Sync()

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	poolCfg, err := pgxpool.ParseConfig(cfg.Database.DSN())
	if err != nil {
		logger.Fatal("parse database config", zap.Error(err))
	}
	poolCfg.MaxConns = cfg.Database.MaxConns

	pool, err := pgxpool.NewWithConfig(ctx, poolCfg)
	if err != nil {
		logger.Fatal("connect postgres", zap.Error(err))
	}
	defer pool.Close()

	if err := repository.EnsureSchema(ctx, pool); err != nil {
		logger.Fatal("ensure schema", zap.Error(err))
	}
	bookingRepo := repository.NewBookingRepository(pool)

	redisCache := cache.NewRedisCache(cfg.Redis, time.Duration(cfg.Booking.SlotsCacheTTL)*time.Second)
	producer := kafka.NewProducer(cfg.Kafka.Brokers)
	defer producer.Close()

	bookingService := booking.NewBookingService(
		bookingRepo,
		redisCache,
		producer,
		cfg.Kafka.BookingTopic,
		logger,
		booking.WithNotificationsTopic(cfg.Kafka.NotificationsTopic),
	)

	if err := bootstrap.Run(ctx, cfg, bookingService); err != nil {
		logger.Fatal("server error", zap.Error(err))
	}
}

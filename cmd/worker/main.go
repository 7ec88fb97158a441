package main

import (
	"context"
	"log"
	"os"
	"os/signal"
	"syscall"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/rpawar/slotbook/config"
	"github.com/rpawar/slotbook/internal/kafka"
	"github.com/rpawar/slotbook/internal/notify"
	"github.com/rpawar/slotbook/internal/repository"
	"github.com/rpawar/slotbook/internal/scheduler"
	"github.com/rpawar/slotbook/internal/service/rollover"
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

	pool, err := pgxpool.New(ctx, cfg.Database.DSN())
	if err != nil {
		logger.Fatal("connect postgres", zap.Error(err))
	}
	defer pool.Close()

	producer := kafka.NewProducer(cfg.Kafka.Brokers)
	defer producer.Close()

	bookingRepo := repository.NewBookingRepository(pool)
	rolloverService := rollover.NewService(
		bookingRepo,
		logger,
		rollover.WithProducer(producer, cfg.Kafka.BookingTopic),
		rollover.WithNotificationsTopic(cfg.Kafka.NotificationsTopic),
	)

	sched := scheduler.New()
	if err := sched.AddDailyReset(rolloverService.Run); err != nil {
		logger.Fatal("schedule daily reset", zap.Error(err))
	}
	sched.Start()
	defer func() { <-sched.Stop().Done() }()

	consumer := kafka.NewConsumer(cfg.Kafka.Brokers, cfg.Kafka.GroupID, cfg.Kafka.NotificationsTopic)
	defer consumer.Close()

	sender := notify.NewSender(logger)

	go func() {
		if err := consumer.Consume(ctx, sender.Send); err != nil {
			logger.Info("consumer stopped", zap.Error(err))
		}
	}()

	<-ctx.Done()
	logger.Info("shutting down")
}

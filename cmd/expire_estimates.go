package cmd

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/psds-microservice/marketplace-service/internal/database"
	"github.com/psds-microservice/marketplace-service/internal/jobs"
	"github.com/psds-microservice/marketplace-service/internal/kafka"
	"github.com/psds-microservice/marketplace-service/internal/notify"
	"github.com/psds-microservice/marketplace-service/internal/service"
	"github.com/redis/go-redis/v9"
	"github.com/spf13/cobra"
)

var expireEstimatesCmd = &cobra.Command{
	Use:   "expire-estimates",
	Short: "Run one estimate expiry pass (for cron). Takes the same Redis lock as the api job.",
	RunE:  runExpireEstimates,
}

func runExpireEstimates(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}
	db, err := database.Open(cfg.DSN())
	if err != nil {
		return fmt.Errorf("db: %w", err)
	}
	sqlDB, err := db.DB()
	if err != nil {
		return fmt.Errorf("db: %w", err)
	}
	defer sqlDB.Close()

	// из CLI уведомляем только через Kafka: websocket-клиентов здесь нет
	producer := kafka.NewProducer(cfg.KafkaBrokers, cfg.KafkaTopicEvents)
	defer producer.Close()
	dispatcher := notify.NewDispatcher(notify.Options{Events: producer})

	locker := jobs.LocalLocker
	if cfg.Redis.Addr != "" {
		rdb := redis.NewClient(&redis.Options{Addr: cfg.Redis.Addr, Password: cfg.Redis.Password, DB: cfg.Redis.DB})
		defer rdb.Close()
		locker = jobs.NewRedisLocker(rdb)
	}

	runner := jobs.NewExpiryRunner(service.NewEstimateService(db, dispatcher), locker, jobs.ExpiryConfig{
		Interval:  cfg.Expiry.Interval,
		Timeout:   cfg.Expiry.Timeout,
		BatchSize: cfg.Expiry.BatchSize,
	}, slog.Default())

	ctx := cmd.Context()
	if ctx == nil {
		ctx = context.Background()
	}
	n, err := runner.RunOnce(ctx)
	if closeErr := dispatcher.Close(ctx); closeErr != nil {
		slog.Warn("expire-estimates: pending notifications dropped", "err", closeErr)
	}
	if err != nil {
		return fmt.Errorf("expire estimates: %w", err)
	}
	slog.Info("expire-estimates: done", "expired", n)
	return nil
}

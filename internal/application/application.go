package application

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"log/slog"
	"net"
	"net/http"
	"time"

	"github.com/psds-microservice/marketplace-service/internal/config"
	"github.com/psds-microservice/marketplace-service/internal/database"
	grpcserver "github.com/psds-microservice/marketplace-service/internal/grpc"
	"github.com/psds-microservice/marketplace-service/internal/handler"
	"github.com/psds-microservice/marketplace-service/internal/jobs"
	"github.com/psds-microservice/marketplace-service/internal/kafka"
	"github.com/psds-microservice/marketplace-service/internal/notify"
	"github.com/psds-microservice/marketplace-service/internal/payment"
	"github.com/psds-microservice/marketplace-service/internal/realtime"
	"github.com/psds-microservice/marketplace-service/internal/router"
	"github.com/psds-microservice/marketplace-service/internal/service"
	"github.com/redis/go-redis/v9"
	"gorm.io/gorm"
)

// API приложение: HTTP + gRPC серверы, realtime hub и фоновая задача истечения смет (режим api).
type API struct {
	cfg *config.Config
	log *slog.Logger

	db         *gorm.DB
	sqlDB      *sql.DB
	hub        *realtime.Hub
	producer   *kafka.Producer
	dispatcher *notify.Dispatcher
	redis      *redis.Client
	expiry     *jobs.ExpiryRunner

	httpSrv *http.Server
	grpcSrv *grpcserver.Server
	lis     net.Listener
}

// NewAPI создаёт приложение для режима api.
func NewAPI(ctx context.Context, cfg *config.Config) (*API, error) {
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("config: %w", err)
	}
	if err := database.MigrateUp(cfg.DatabaseURL()); err != nil {
		return nil, fmt.Errorf("migrate: %w", err)
	}
	db, err := database.Open(cfg.DSN())
	if err != nil {
		return nil, fmt.Errorf("database: %w", err)
	}
	sqlDB, err := db.DB()
	if err != nil {
		return nil, fmt.Errorf("database: %w", err)
	}

	a := &API{cfg: cfg, log: slog.Default(), db: db, sqlDB: sqlDB}

	a.hub = realtime.NewHub(cfg.CORSOrigins, a.log)
	a.producer = kafka.NewProducer(cfg.KafkaBrokers, cfg.KafkaTopicEvents)
	if !a.producer.Enabled() {
		a.log.Info("kafka: KAFKA_BROKERS or KAFKA_TOPIC_EVENTS not set, events disabled")
	}

	devices := service.NewDeviceService(db)
	opts := notify.Options{
		Realtime: a.hub,
		Tokens:   devices,
		Events:   a.producer,
		Logger:   a.log,
	}
	if cfg.FirebaseCredentialsFile != "" {
		pusher, err := notify.NewFCMPusher(ctx, cfg.FirebaseCredentialsFile)
		if err != nil {
			a.log.Warn("fcm: push notifications disabled", "err", err)
		} else {
			opts.Push = pusher
		}
	}
	a.dispatcher = notify.NewDispatcher(opts)

	gateway, err := payment.NewMercadoPagoGateway(cfg.MercadoPagoAccessToken, cfg.PaymentGatewayMock)
	if err != nil {
		if !errors.Is(err, payment.ErrMissingAccessToken) {
			return nil, fmt.Errorf("payment: %w", err)
		}
		a.log.Warn("payment: MERCADOPAGO_ACCESS_TOKEN not set, down payments cannot be confirmed")
		gateway = &payment.MercadoPagoGateway{}
	}

	requests := service.NewServiceRequestService(db, a.dispatcher)
	estimates := service.NewEstimateService(db, a.dispatcher)
	disputes := service.NewDisputeService(db, a.dispatcher)
	payments := service.NewPaymentService(db, gateway, a.dispatcher)
	messages := service.NewMessageService(db, a.dispatcher)

	locker := jobs.LocalLocker
	if cfg.Redis.Addr != "" {
		a.redis = redis.NewClient(&redis.Options{
			Addr:     cfg.Redis.Addr,
			Password: cfg.Redis.Password,
			DB:       cfg.Redis.DB,
		})
		pingCtx, cancel := context.WithTimeout(ctx, 3*time.Second)
		err := a.redis.Ping(pingCtx).Err()
		cancel()
		if err != nil {
			a.log.Warn("redis: ping failed, job lock will retry on each run", "addr", cfg.Redis.Addr, "err", err)
		}
		locker = jobs.NewRedisLocker(a.redis)
	}
	a.expiry = jobs.NewExpiryRunner(estimates, locker, jobs.ExpiryConfig{
		Interval:  cfg.Expiry.Interval,
		Timeout:   cfg.Expiry.Timeout,
		BatchSize: cfg.Expiry.BatchSize,
	}, a.log)

	a.httpSrv = &http.Server{
		Addr: cfg.Addr(),
		Handler: router.New(router.Deps{
			JWTSecret:       cfg.JWTSecret,
			CORSOrigins:     cfg.CORSOrigins,
			DB:              sqlDB,
			ServiceRequests: handler.NewServiceRequestHandler(requests, payments),
			Estimates:       handler.NewEstimateHandler(estimates),
			Disputes:        handler.NewDisputeHandler(disputes),
			Messages:        handler.NewMessageHandler(messages),
			Devices:         handler.NewDeviceHandler(devices),
			Realtime:        handler.NewRealtimeHandler(a.hub),
		}),
		ReadHeaderTimeout: 5 * time.Second,
		ReadTimeout:       15 * time.Second,
		WriteTimeout:      30 * time.Second,
		IdleTimeout:       60 * time.Second,
	}

	lis, err := net.Listen("tcp", cfg.GRPCAddr())
	if err != nil {
		return nil, fmt.Errorf("grpc listen %s: %w (порт занят, остановите другой процесс или задайте GRPC_PORT в .env)", cfg.GRPCAddr(), err)
	}
	a.lis = lis
	a.grpcSrv = grpcserver.NewServer(sqlDB, 10*time.Second, a.log)
	return a, nil
}

// Run запускает HTTP и gRPC серверы и задачу истечения смет, блокируется до отмены ctx.
func (a *API) Run(ctx context.Context) error {
	host := a.cfg.AppHost
	if host == "0.0.0.0" {
		host = "localhost"
	}
	base := "http://" + host + ":" + a.cfg.HTTPPort
	a.log.Info("HTTP server listening", "addr", a.httpSrv.Addr)
	a.log.Info("endpoints",
		"swagger", base+"/swagger",
		"health", base+"/health",
		"ready", base+"/ready",
		"api", base+"/api/",
		"ws", "ws://"+host+":"+a.cfg.HTTPPort+"/api/ws")
	a.log.Info("gRPC server listening (health, reflection)", "addr", a.lis.Addr().String())

	errCh := make(chan error, 2)
	go func() {
		if err := a.httpSrv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- fmt.Errorf("http: %w", err)
		}
	}()
	go func() {
		if err := a.grpcSrv.Serve(a.lis); err != nil {
			errCh <- fmt.Errorf("grpc: %w", err)
		}
	}()
	a.expiry.Start(ctx)

	var runErr error
	select {
	case <-ctx.Done():
	case runErr = <-errCh:
		a.log.Error("server failed", "err", runErr)
	}
	return errors.Join(runErr, a.shutdown())
}

// shutdown: сначала перестаём принимать запросы, затем гасим фоновые компоненты.
func (a *API) shutdown() error {
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	var errs []error
	if err := a.httpSrv.Shutdown(shutdownCtx); err != nil {
		errs = append(errs, fmt.Errorf("http shutdown: %w", err))
	}
	a.grpcSrv.GracefulStop()
	a.expiry.Stop()
	if err := a.hub.Close(); err != nil {
		errs = append(errs, fmt.Errorf("realtime hub: %w", err))
	}
	if err := a.dispatcher.Close(shutdownCtx); err != nil {
		errs = append(errs, fmt.Errorf("notify: %w", err))
	}
	if err := a.producer.Close(); err != nil {
		errs = append(errs, fmt.Errorf("kafka: %w", err))
	}
	if a.redis != nil {
		if err := a.redis.Close(); err != nil {
			errs = append(errs, fmt.Errorf("redis: %w", err))
		}
	}
	if err := a.sqlDB.Close(); err != nil {
		errs = append(errs, fmt.Errorf("database: %w", err))
	}
	a.log.Info("shutdown complete")
	return errors.Join(errs...)
}

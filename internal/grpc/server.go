package grpc

import (
	"context"
	"log/slog"
	"net"
	"sync"
	"time"

	"google.golang.org/grpc"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/health"
	healthpb "google.golang.org/grpc/health/grpc_health_v1"
	"google.golang.org/grpc/reflection"
	"google.golang.org/grpc/status"
)

// ServiceName: имя сервиса в grpc.health.v1.
const ServiceName = "marketplace.v1.MarketplaceService"

// Pinger: проверка готовности (БД).
type Pinger interface {
	PingContext(ctx context.Context) error
}

// Server: gRPC-сервер со стандартным health-сервисом и reflection.
// Статус SERVING/NOT_SERVING повторяет /ready.
type Server struct {
	srv    *grpc.Server
	health *health.Server
	db     Pinger
	every  time.Duration
	log    *slog.Logger

	stop chan struct{}
	once sync.Once
	wg   sync.WaitGroup
}

func NewServer(db Pinger, checkEvery time.Duration, log *slog.Logger) *Server {
	if checkEvery <= 0 {
		checkEvery = 10 * time.Second
	}
	if log == nil {
		log = slog.Default()
	}
	s := &Server{
		srv:    grpc.NewServer(grpc.UnaryInterceptor(recoverUnary(log))),
		health: health.NewServer(),
		db:     db,
		every:  checkEvery,
		log:    log,
		stop:   make(chan struct{}),
	}
	healthpb.RegisterHealthServer(s.srv, s.health)
	reflection.Register(s.srv)
	s.health.SetServingStatus("", healthpb.HealthCheckResponse_NOT_SERVING)
	s.health.SetServingStatus(ServiceName, healthpb.HealthCheckResponse_NOT_SERVING)
	return s
}

// Serve блокируется до GracefulStop.
func (s *Server) Serve(lis net.Listener) error {
	s.refresh(context.Background())
	s.wg.Add(1)
	go s.watch()
	return s.srv.Serve(lis)
}

func (s *Server) watch() {
	defer s.wg.Done()
	t := time.NewTicker(s.every)
	defer t.Stop()
	for {
		select {
		case <-s.stop:
			return
		case <-t.C:
			s.refresh(context.Background())
		}
	}
}

func (s *Server) refresh(ctx context.Context) {
	st := healthpb.HealthCheckResponse_SERVING
	if s.db != nil {
		ctx, cancel := context.WithTimeout(ctx, 2*time.Second)
		err := s.db.PingContext(ctx)
		cancel()
		if err != nil {
			st = healthpb.HealthCheckResponse_NOT_SERVING
			s.log.Warn("grpc health: database unavailable", "err", err)
		}
	}
	s.health.SetServingStatus("", st)
	s.health.SetServingStatus(ServiceName, st)
}

func (s *Server) GracefulStop() {
	s.once.Do(func() {
		close(s.stop)
		s.health.Shutdown()
		s.srv.GracefulStop()
	})
	s.wg.Wait()
}

func recoverUnary(log *slog.Logger) grpc.UnaryServerInterceptor {
	return func(ctx context.Context, req interface{}, info *grpc.UnaryServerInfo, handler grpc.UnaryHandler) (resp interface{}, err error) {
		defer func() {
			if r := recover(); r != nil {
				log.Error("grpc panic recovered", "method", info.FullMethod, "panic", r)
				err = status.Error(codes.Internal, "internal error")
			}
		}()
		resp, err = handler(ctx, req)
		return resp, mapError(err)
	}
}

// mapError пропускает status-ошибки; остальное скрывается за codes.Internal.
func mapError(err error) error {
	if err == nil {
		return nil
	}
	if _, ok := status.FromError(err); ok {
		return err
	}
	slog.Error("grpc: unhandled error", "err", err)
	return status.Error(codes.Internal, "internal error")
}

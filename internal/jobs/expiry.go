package jobs

import (
	"context"
	"log/slog"
	"sync"
	"time"
)

const expiryLockKey = "marketplace:jobs:estimate-expiry"

// EstimateExpirer: часть EstimateService, нужная задаче.
type EstimateExpirer interface {
	ExpireDue(ctx context.Context, now time.Time, limit int) (int, error)
}

type ExpiryConfig struct {
	Interval  time.Duration
	Timeout   time.Duration
	BatchSize int
}

// ExpiryRunner периодически переводит просроченные сметы в expired.
type ExpiryRunner struct {
	svc    EstimateExpirer
	locker Locker
	cfg    ExpiryConfig
	log    *slog.Logger
	now    func() time.Time

	cancel context.CancelFunc
	done   chan struct{}
	once   sync.Once
}

func NewExpiryRunner(svc EstimateExpirer, locker Locker, cfg ExpiryConfig, log *slog.Logger) *ExpiryRunner {
	if locker == nil {
		locker = LocalLocker
	}
	if log == nil {
		log = slog.Default()
	}
	return &ExpiryRunner{
		svc:    svc,
		locker: locker,
		cfg:    cfg,
		log:    log.With("component", "estimate-expiry"),
		now:    func() time.Time { return time.Now().UTC() },
	}
}

// RunOnce выполняет один проход под распределённой блокировкой. Возвращает число истёкших смет.
func (r *ExpiryRunner) RunOnce(ctx context.Context) (int, error) {
	runCtx, cancel := context.WithTimeout(ctx, r.cfg.Timeout)
	defer cancel()

	unlock, ok, err := r.locker.TryLock(runCtx, expiryLockKey, r.cfg.Timeout)
	if err != nil {
		r.log.Error("lock failed", "err", err)
		return 0, err
	}
	if !ok {
		r.log.Debug("another replica holds the lock, skipping")
		return 0, nil
	}
	defer unlock()

	n, err := r.svc.ExpireDue(runCtx, r.now(), r.cfg.BatchSize)
	if err != nil {
		r.log.Error("expire due estimates", "expired", n, "err", err)
	} else if n > 0 {
		r.log.Info("expired estimates", "count", n)
	}
	return n, err
}

// Start запускает тикер в отдельной горутине. Stop останавливает его и ждёт текущий прогон.
func (r *ExpiryRunner) Start(ctx context.Context) {
	ctx, r.cancel = context.WithCancel(ctx)
	r.done = make(chan struct{})
	go func() {
		defer close(r.done)
		ticker := time.NewTicker(r.cfg.Interval)
		defer ticker.Stop()

		_, _ = r.RunOnce(ctx)
		for {
			select {
			case <-ctx.Done():
				return
			case <-ticker.C:
				_, _ = r.RunOnce(ctx)
			}
		}
	}()
}

func (r *ExpiryRunner) Stop() {
	r.once.Do(func() {
		if r.cancel == nil {
			return
		}
		r.cancel()
		<-r.done
	})
}

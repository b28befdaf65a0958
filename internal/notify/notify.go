package notify

import (
	"context"
	"fmt"
	"log/slog"
	"strconv"
	"sync"
	"time"
)

// Notification: событие для участников заявки. Доставляется после коммита, без гарантий.
type Notification struct {
	Event            string
	ServiceRequestID uint64
	Recipients       []uint64
	Title            string
	Body             string
	Payload          map[string]interface{}
}

// Notifier принимает уведомления, не блокируя вызывающего.
type Notifier interface {
	Notify(n Notification)
}

// RealtimePusher: часть realtime.Hub, нужная диспетчеру.
type RealtimePusher interface {
	Push(userID uint64, eventType string, data interface{}) int
}

// PushSender отправляет push на устройства.
type PushSender interface {
	Send(ctx context.Context, tokens []string, title, body string, data map[string]string) error
}

// TokenSource возвращает FCM-токены пользователей.
type TokenSource interface {
	TokensFor(ctx context.Context, userIDs []uint64) ([]string, error)
}

// EventProducer: то же, что kafka.EventProducer.
type EventProducer interface {
	ProduceEvent(ctx context.Context, event string, key uint64, payload map[string]interface{})
}

type Options struct {
	Realtime RealtimePusher
	Push     PushSender
	Tokens   TokenSource
	Events   EventProducer
	// Timeout на каждый канал доставки.
	Timeout time.Duration
	// Workers: число воркеров. Заявка всегда обслуживается одним воркером (ServiceRequestID % Workers).
	Workers int
	// QueueSize: ёмкость очереди каждого воркера. При переполнении уведомление отбрасывается.
	QueueSize int
	Logger    *slog.Logger
}

const (
	defaultWorkers   = 4
	defaultQueueSize = 256
)

// Dispatcher рассылает уведомления фиксированным пулом воркеров с ограниченными очередями.
// События одной заявки доставляются в порядке вызова Notify.
type Dispatcher struct {
	opts   Options
	log    *slog.Logger
	queues []chan Notification
	wg     sync.WaitGroup

	mu     sync.RWMutex
	closed bool
}

func NewDispatcher(opts Options) *Dispatcher {
	if opts.Timeout <= 0 {
		opts.Timeout = 5 * time.Second
	}
	if opts.Workers <= 0 {
		opts.Workers = defaultWorkers
	}
	if opts.QueueSize <= 0 {
		opts.QueueSize = defaultQueueSize
	}
	log := opts.Logger
	if log == nil {
		log = slog.Default()
	}
	d := &Dispatcher{
		opts:   opts,
		log:    log.With("component", "notify"),
		queues: make([]chan Notification, opts.Workers),
	}
	for i := range d.queues {
		d.queues[i] = make(chan Notification, opts.QueueSize)
		d.wg.Add(1)
		go d.worker(d.queues[i])
	}
	return d
}

// Notify ставит уведомление в очередь воркера заявки и не блокируется.
func (d *Dispatcher) Notify(n Notification) {
	d.mu.RLock()
	defer d.mu.RUnlock()
	if d.closed {
		d.log.Warn("notification dropped after close", "event", n.Event, "service_request_id", n.ServiceRequestID)
		return
	}
	select {
	case d.queues[n.ServiceRequestID%uint64(len(d.queues))] <- n:
	default:
		d.log.Warn("notification queue full, dropping", "event", n.Event, "service_request_id", n.ServiceRequestID)
	}
}

// Pending возвращает число уведомлений, ожидающих в очередях.
func (d *Dispatcher) Pending() int {
	total := 0
	for _, q := range d.queues {
		total += len(q)
	}
	return total
}

func (d *Dispatcher) worker(queue <-chan Notification) {
	defer d.wg.Done()
	for n := range queue {
		d.safeDeliver(n)
	}
}

func (d *Dispatcher) safeDeliver(n Notification) {
	defer func() {
		if r := recover(); r != nil {
			d.log.Error("notification panic", "event", n.Event, "panic", r)
		}
	}()
	d.deliver(n)
}

func (d *Dispatcher) deliver(n Notification) {
	data := payloadWithRequest(n)

	if d.opts.Realtime != nil {
		for _, uid := range n.Recipients {
			d.opts.Realtime.Push(uid, n.Event, data)
		}
	}

	if d.opts.Push != nil && d.opts.Tokens != nil && len(n.Recipients) > 0 && n.Title != "" {
		ctx, cancel := context.WithTimeout(context.Background(), d.opts.Timeout)
		tokens, err := d.opts.Tokens.TokensFor(ctx, n.Recipients)
		if err != nil {
			d.log.Error("device tokens lookup failed", "event", n.Event, "err", err)
		} else if len(tokens) > 0 {
			if err := d.opts.Push.Send(ctx, tokens, n.Title, n.Body, stringify(data)); err != nil {
				d.log.Error("push send failed", "event", n.Event, "tokens", len(tokens), "err", err)
			}
		}
		cancel()
	}

	if d.opts.Events != nil {
		ctx, cancel := context.WithTimeout(context.Background(), d.opts.Timeout)
		d.opts.Events.ProduceEvent(ctx, n.Event, n.ServiceRequestID, data)
		cancel()
	}
}

// Close перестаёт принимать уведомления, дожидается разбора очередей, но не дольше ctx.
func (d *Dispatcher) Close(ctx context.Context) error {
	d.mu.Lock()
	if !d.closed {
		d.closed = true
		for _, q := range d.queues {
			close(q)
		}
	}
	d.mu.Unlock()

	done := make(chan struct{})
	go func() {
		d.wg.Wait()
		close(done)
	}()
	select {
	case <-done:
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}

func payloadWithRequest(n Notification) map[string]interface{} {
	out := make(map[string]interface{}, len(n.Payload)+1)
	for k, v := range n.Payload {
		out[k] = v
	}
	out["service_request_id"] = n.ServiceRequestID
	return out
}

// stringify приводит payload к map[string]string для FCM data.
func stringify(in map[string]interface{}) map[string]string {
	out := make(map[string]string, len(in))
	for k, v := range in {
		switch t := v.(type) {
		case string:
			out[k] = t
		case uint64:
			out[k] = strconv.FormatUint(t, 10)
		case int:
			out[k] = strconv.Itoa(t)
		case int64:
			out[k] = strconv.FormatInt(t, 10)
		case float64:
			out[k] = strconv.FormatFloat(t, 'f', -1, 64)
		case bool:
			out[k] = strconv.FormatBool(t)
		case fmt.Stringer:
			out[k] = t.String()
		}
		// вложенные структуры в FCM data не передаём
	}
	return out
}

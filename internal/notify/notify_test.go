package notify

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"runtime"
	"sync"
	"testing"
	"time"

	"firebase.google.com/go/messaging"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type recorder struct {
	mu      sync.Mutex
	pushed  []uint64
	sent    []string
	events  []string
	keys    []uint64
	payload map[string]interface{}
	data    map[string]string
}

func (r *recorder) Push(userID uint64, eventType string, data interface{}) int {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.pushed = append(r.pushed, userID)
	return 1
}

func (r *recorder) Send(_ context.Context, tokens []string, _, _ string, data map[string]string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.sent = append(r.sent, tokens...)
	r.data = data
	return errors.New("fcm unavailable")
}

func (r *recorder) TokensFor(_ context.Context, ids []uint64) ([]string, error) {
	out := make([]string, 0, len(ids))
	for range ids {
		out = append(out, "tok")
	}
	return out, nil
}

func (r *recorder) ProduceEvent(_ context.Context, event string, key uint64, payload map[string]interface{}) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.events = append(r.events, event)
	r.keys = append(r.keys, key)
	r.payload = payload
}

func TestDispatcherDeliversToAllSinks(t *testing.T) {
	rec := &recorder{}
	d := NewDispatcher(Options{Realtime: rec, Push: rec, Tokens: rec, Events: rec, Timeout: time.Second})

	d.Notify(Notification{
		Event:            "service_request.status_changed",
		ServiceRequestID: 42,
		Recipients:       []uint64{1, 7},
		Title:            "Mission started",
		Payload:          map[string]interface{}{"status": "in_progress", "artisan_id": uint64(7)},
	})
	require.NoError(t, d.Close(context.Background()))

	rec.mu.Lock()
	defer rec.mu.Unlock()
	assert.ElementsMatch(t, []uint64{1, 7}, rec.pushed)
	assert.Len(t, rec.sent, 2, "push failure must not stop other sinks")
	assert.Equal(t, []string{"service_request.status_changed"}, rec.events)
	assert.Equal(t, []uint64{42}, rec.keys)
	assert.Equal(t, uint64(42), rec.payload["service_request_id"])
	assert.Equal(t, "7", rec.data["artisan_id"])
	assert.Equal(t, "42", rec.data["service_request_id"])
}

func TestDispatcherSkipsPushWithoutTitle(t *testing.T) {
	rec := &recorder{}
	d := NewDispatcher(Options{Push: rec, Tokens: rec})
	d.Notify(Notification{Event: "message.created", ServiceRequestID: 1, Recipients: []uint64{2}})
	require.NoError(t, d.Close(context.Background()))
	assert.Empty(t, rec.sent)
}

func TestDispatcherDropsAfterClose(t *testing.T) {
	rec := &recorder{}
	d := NewDispatcher(Options{Events: rec})
	require.NoError(t, d.Close(context.Background()))
	d.Notify(Notification{Event: "late", ServiceRequestID: 1})
	assert.Empty(t, rec.events)
}

// stalledProducer держит воркер, пока не закрыт release.
type stalledProducer struct {
	release chan struct{}
	mu      sync.Mutex
	count   int
}

func (p *stalledProducer) ProduceEvent(_ context.Context, _ string, _ uint64, _ map[string]interface{}) {
	<-p.release
	p.mu.Lock()
	p.count++
	p.mu.Unlock()
}

func TestDispatcherBoundedWithStalledSink(t *testing.T) {
	before := runtime.NumGoroutine()
	sink := &stalledProducer{release: make(chan struct{})}
	d := NewDispatcher(Options{
		Events: sink, Workers: 1, QueueSize: 2,
		Logger: slog.New(slog.NewTextHandler(io.Discard, nil)),
	})

	for i := 0; i < 5000; i++ {
		d.Notify(Notification{Event: "service_request.status_changed", ServiceRequestID: uint64(i)})
	}
	assert.LessOrEqual(t, runtime.NumGoroutine()-before, 2, "no goroutine per notification")
	assert.LessOrEqual(t, d.Pending(), 2)

	close(sink.release)
	require.NoError(t, d.Close(context.Background()))
	sink.mu.Lock()
	defer sink.mu.Unlock()
	assert.GreaterOrEqual(t, sink.count, 2)
	assert.LessOrEqual(t, sink.count, 3, "one in flight plus a full queue")
}

type orderedProducer struct {
	mu  sync.Mutex
	seq map[uint64][]int
}

func (p *orderedProducer) ProduceEvent(_ context.Context, _ string, key uint64, payload map[string]interface{}) {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.seq[key] = append(p.seq[key], payload["seq"].(int))
}

func TestDispatcherKeepsOrderPerRequest(t *testing.T) {
	sink := &orderedProducer{seq: map[uint64][]int{}}
	d := NewDispatcher(Options{Events: sink, Workers: 4, QueueSize: 1024})

	const n = 200
	for i := 0; i < n; i++ {
		for _, id := range []uint64{42, 43, 44} {
			d.Notify(Notification{Event: "e", ServiceRequestID: id, Payload: map[string]interface{}{"seq": i}})
		}
	}
	require.NoError(t, d.Close(context.Background()))

	want := make([]int, n)
	for i := range want {
		want[i] = i
	}
	for _, id := range []uint64{42, 43, 44} {
		assert.Equal(t, want, sink.seq[id], "request %d", id)
	}
}

func TestDispatcherCloseDrainsQueue(t *testing.T) {
	rec := &recorder{}
	d := NewDispatcher(Options{Events: rec, Workers: 2})
	for i := 0; i < 50; i++ {
		d.Notify(Notification{Event: "e", ServiceRequestID: uint64(i)})
	}
	require.NoError(t, d.Close(context.Background()))
	require.NoError(t, d.Close(context.Background()))
	rec.mu.Lock()
	defer rec.mu.Unlock()
	assert.Len(t, rec.events, 50)
}

type fakeSender struct {
	got []*messaging.Message
	err error
}

func (f *fakeSender) Send(_ context.Context, m *messaging.Message) (string, error) {
	f.got = append(f.got, m)
	if f.err != nil {
		return "", f.err
	}
	return "projects/p/messages/1", nil
}

func TestFCMPusherSend(t *testing.T) {
	s := &fakeSender{}
	p := &FCMPusher{client: s}
	require.NoError(t, p.Send(context.Background(), []string{"a", "b"}, "Title", "Body", map[string]string{"k": "v"}))
	require.Len(t, s.got, 2)
	assert.Equal(t, "a", s.got[0].Token)
	assert.Equal(t, "Title", s.got[0].Notification.Title)
	assert.Equal(t, "v", s.got[1].Data["k"])

	s.err = errors.New("boom")
	err := p.Send(context.Background(), []string{"abcdefghijkl"}, "T", "B", nil)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "abcdefgh...")
}

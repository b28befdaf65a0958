package kafka

import (
	"context"
	"encoding/json"
	"log/slog"
	"strconv"
	"time"

	"github.com/segmentio/kafka-go"
)

// EventProducer: интерфейс отправки доменных событий (подменяется в тестах).
type EventProducer interface {
	ProduceEvent(ctx context.Context, event string, key uint64, payload map[string]interface{})
}

// Producer пишет события маркетплейса в топик Kafka (best-effort, не блокирует API).
type Producer struct {
	writer *kafka.Writer
	topic  string
}

var _ EventProducer = (*Producer)(nil)

// NewProducer создаёт продюсер. Если brokers пустой или topic пустой, методы no-op.
func NewProducer(brokers []string, topic string) *Producer {
	if len(brokers) == 0 || topic == "" {
		return &Producer{}
	}
	return &Producer{
		topic: topic,
		writer: &kafka.Writer{
			Addr:         kafka.TCP(brokers...),
			Topic:        topic,
			Balancer:     &kafka.Hash{},
			BatchTimeout: 10 * time.Millisecond,
			RequiredAcks: kafka.RequireOne,
		},
	}
}

func (p *Producer) Enabled() bool { return p.writer != nil }

// ProduceEvent отправляет событие. key (id заявки) задаёт партицию, чтобы события одной заявки шли по порядку.
func (p *Producer) ProduceEvent(ctx context.Context, event string, key uint64, payload map[string]interface{}) {
	if p.writer == nil {
		return
	}
	body, err := encodeEvent(event, time.Now().UTC(), payload)
	if err != nil {
		slog.Error("kafka: marshal event", "event", event, "err", err)
		return
	}
	msg := kafka.Message{
		Key:   []byte(strconv.FormatUint(key, 10)),
		Value: body,
		Headers: []kafka.Header{
			{Key: "event", Value: []byte(event)},
		},
	}
	if err := p.writer.WriteMessages(ctx, msg); err != nil {
		slog.Error("kafka: write event", "event", event, "key", key, "err", err)
	}
}

func encodeEvent(event string, at time.Time, payload map[string]interface{}) ([]byte, error) {
	msg := make(map[string]interface{}, len(payload)+2)
	for k, v := range payload {
		msg[k] = v
	}
	msg["event"] = event
	msg["occurred_at"] = at.Format(time.RFC3339Nano)
	return json.Marshal(msg)
}

// Close закрывает writer.
func (p *Producer) Close() error {
	if p.writer == nil {
		return nil
	}
	return p.writer.Close()
}

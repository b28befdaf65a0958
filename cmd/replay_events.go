package cmd

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/psds-microservice/marketplace-service/internal/database"
	"github.com/psds-microservice/marketplace-service/internal/kafka"
	"github.com/psds-microservice/marketplace-service/internal/model"
	"github.com/spf13/cobra"
	"gorm.io/gorm"
)

var replayStatus string

var replayEventsCmd = &cobra.Command{
	Use:   "replay-events",
	Short: "Publish a service_request.snapshot event per request to Kafka (rebuild downstream read models)",
	RunE:  runReplayEvents,
}

func init() {
	replayEventsCmd.Flags().StringVar(&replayStatus, "status", "", "only requests in this status")
}

func runReplayEvents(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}
	status := model.RequestStatus(replayStatus)
	if status != "" && !status.Valid() {
		return fmt.Errorf("unknown status %q", replayStatus)
	}
	producer := kafka.NewProducer(cfg.KafkaBrokers, cfg.KafkaTopicEvents)
	if !producer.Enabled() {
		return errors.New("replay-events: KAFKA_BROKERS and KAFKA_TOPIC_EVENTS must be set")
	}
	defer producer.Close()

	conn, err := database.Open(cfg.DSN())
	if err != nil {
		return fmt.Errorf("db: %w", err)
	}

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Minute)
	defer cancel()

	q := conn.WithContext(ctx).Model(&model.ServiceRequest{}).Order("id")
	if status != "" {
		q = q.Where("status = ?", status)
	}
	var batch []model.ServiceRequest
	sent := 0
	res := q.FindInBatches(&batch, 200, func(tx *gorm.DB, _ int) error {
		for i := range batch {
			sr := &batch[i]
			producer.ProduceEvent(ctx, "service_request.snapshot", sr.ID, snapshotPayload(sr))
		}
		sent += len(batch)
		slog.Info("replay-events: progress", "sent", sent)
		return nil
	})
	if res.Error != nil {
		return fmt.Errorf("list service requests: %w", res.Error)
	}
	slog.Info("replay-events: done", "sent", sent)
	return nil
}

func snapshotPayload(sr *model.ServiceRequest) map[string]interface{} {
	p := map[string]interface{}{
		"client_id":         sr.ClientID,
		"status":            string(sr.Status),
		"service_type":      sr.ServiceType,
		"location":          sr.Location,
		"down_payment_paid": sr.DownPaymentPaid,
		"updated_at":        sr.UpdatedAt,
	}
	if sr.AssignedArtisanID != nil {
		p["assigned_artisan_id"] = *sr.AssignedArtisanID
	}
	return p
}

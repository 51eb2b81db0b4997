// Package notify carries slot-available notices from the booking service to
// the notification worker over Kafka.
package notify

import (
	"context"
	"encoding/json"
	"log/slog"
	"time"

	"courtbook/internal/pkg/config"
	"courtbook/internal/pkg/errs"
	"courtbook/internal/usecase/commands"

	"github.com/segmentio/kafka-go"
)

type KafkaNotifier struct {
	writer *kafka.Writer
}

func NewKafkaNotifier(cfg config.KafkaConfig) (*KafkaNotifier, func()) {
	writer := &kafka.Writer{
		Addr:                   kafka.TCP(cfg.Brokers...),
		Topic:                  cfg.NotificationsTopic,
		Balancer:               &kafka.Hash{},
		RequiredAcks:           kafka.RequireOne,
		AllowAutoTopicCreation: true,
		WriteTimeout:           10 * time.Second,
	}

	cleanup := func() {
		if err := writer.Close(); err != nil {
			slog.Warn("failed to close kafka writer", "error", err.Error())
		}
	}
	return &KafkaNotifier{writer: writer}, cleanup
}

// SlotAvailable publishes one notice keyed by user so notices for the same
// user stay ordered within a partition.
func (n *KafkaNotifier) SlotAvailable(ctx context.Context, notice commands.SlotAvailableNotice) error {
	payload, err := json.Marshal(notice)
	if err != nil {
		return errs.Wrap(err, "failed to marshal slot-available notice")
	}

	msg := kafka.Message{
		Key:   []byte(notice.UserID.String()),
		Value: payload,
	}
	if err := n.writer.WriteMessages(ctx, msg); err != nil {
		return errs.Wrap(err, "failed to publish slot-available notice")
	}
	return nil
}

// LogNotifier stands in when no brokers are configured (local development,
// tests). Notices land in the log instead of a topic.
type LogNotifier struct{}

func NewLogNotifier() *LogNotifier {
	return &LogNotifier{}
}

func (n *LogNotifier) SlotAvailable(_ context.Context, notice commands.SlotAvailableNotice) error {
	slog.Info("slot available for waitlisted user",
		"entry_id", notice.EntryID,
		"user_id", notice.UserID,
		"court", notice.CourtName,
		"date", notice.Date,
		"window", notice.StartTime+"-"+notice.EndTime,
		"expires_at", notice.ExpiresAt)
	return nil
}

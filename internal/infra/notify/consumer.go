package notify

import (
	"context"
	"encoding/json"
	"errors"
	"log/slog"

	"courtbook/internal/pkg/config"
	"courtbook/internal/usecase/commands"

	"github.com/segmentio/kafka-go"
)

// EmailSender turns a promoted waitlist entry into an outbound message.
type EmailSender interface {
	SendSlotAvailable(ctx context.Context, notice commands.SlotAvailableNotice) error
}

// Consumer drains the notifications topic and hands each notice to the
// sender. Commits happen only after a successful send, so a crashed worker
// re-delivers rather than drops.
type Consumer struct {
	reader *kafka.Reader
	sender EmailSender
}

func NewConsumer(cfg config.KafkaConfig, sender EmailSender) *Consumer {
	reader := kafka.NewReader(kafka.ReaderConfig{
		Brokers: cfg.Brokers,
		Topic:   cfg.NotificationsTopic,
		GroupID: cfg.GroupID,
	})
	return &Consumer{
		reader: reader,
		sender: sender,
	}
}

func (c *Consumer) Run(ctx context.Context) error {
	defer func() {
		if err := c.reader.Close(); err != nil {
			slog.Warn("failed to close kafka reader", "error", err.Error())
		}
	}()

	for {
		msg, err := c.reader.FetchMessage(ctx)
		if err != nil {
			if errors.Is(err, context.Canceled) {
				return nil
			}
			return err
		}

		var notice commands.SlotAvailableNotice
		if err := json.Unmarshal(msg.Value, &notice); err != nil {
			// Malformed message, commit so it does not poison the partition
			slog.Error("dropping malformed notice", "offset", msg.Offset, "error", err.Error())
			if commitErr := c.reader.CommitMessages(ctx, msg); commitErr != nil {
				return commitErr
			}
			continue
		}

		if err := c.sender.SendSlotAvailable(ctx, notice); err != nil {
			slog.Error("failed to send slot-available notice, will retry",
				"entry_id", notice.EntryID,
				"error", err.Error())
			continue
		}

		if err := c.reader.CommitMessages(ctx, msg); err != nil {
			return err
		}
	}
}

// SlogEmailSender is the default sender: it records the outbound message in
// the structured log. A real SMTP or provider-backed sender satisfies the
// same interface.
type SlogEmailSender struct{}

func NewSlogEmailSender() *SlogEmailSender {
	return &SlogEmailSender{}
}

func (s *SlogEmailSender) SendSlotAvailable(_ context.Context, notice commands.SlotAvailableNotice) error {
	slog.Info("sending slot-available email",
		"user_id", notice.UserID,
		"court", notice.CourtName,
		"date", notice.Date,
		"window", notice.StartTime+"-"+notice.EndTime,
		"respond_by", notice.ExpiresAt)
	return nil
}

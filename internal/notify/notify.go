package notify

import (
	"context"

	"github.com/rpawar/slotbook/internal/kafka"
	"go.uber.org/zap"
)

// Sender turns consumed booking events into visitor notifications. The
// delivery channel is a log line for now; an SMS gateway slots in behind
// the same method.
type Sender struct {
	log *zap.Logger
}

func NewSender(log *zap.Logger) *Sender {
	return &Sender{log: log}
}

func (s *Sender) Send(ctx context.Context, event kafka.BookingEvent) error {
	switch event.Type {
	case "booking_created":
		s.log.Info("booking confirmation",
			zap.String("mobile", maskMobile(event.Mobile)),
			zap.Int("section", event.SectionID),
			zap.Int("slot", event.SlotNumber),
			zap.String("date", event.BookingDate),
		)
	case "daily_reset":
		s.log.Info("daily reset notice", zap.Int64("archived", event.Archived))
	}
	return nil
}

func maskMobile(mobile string) string {
	if len(mobile) < 4 {
		return mobile
	}
	return "******" + mobile[len(mobile)-4:]
}

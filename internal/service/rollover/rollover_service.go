package rollover

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/rpawar/slotbook/internal/domain"
	"github.com/rpawar/slotbook/internal/kafka"
	"github.com/rpawar/slotbook/internal/repository"
	"go.uber.org/zap"
)

type Producer interface {
	Publish(ctx context.Context, topic, key string, value interface{}) error
}

// Service performs the daily rollover: bookings dated before today are
// copied into the archive and removed from the active table.
type Service struct {
	repo               repository.BookingRepository
	producer           Producer
	topic              string
	notificationsTopic string
	now                func() time.Time
	log                *zap.Logger
}

type ServiceOption func(*Service)

func WithClock(now func() time.Time) ServiceOption {
	return func(s *Service) {
		s.now = now
	}
}

func WithProducer(producer Producer, topic string) ServiceOption {
	return func(s *Service) {
		s.producer = producer
		s.topic = topic
	}
}

func WithNotificationsTopic(topic string) ServiceOption {
	return func(s *Service) {
		s.notificationsTopic = topic
	}
}

func NewService(repo repository.BookingRepository, log *zap.Logger, opts ...ServiceOption) *Service {
	service := &Service{
		repo: repo,
		now:  time.Now,
		log:  log,
	}
	for _, opt := range opts {
		opt(service)
	}
	return service
}

// ResetDailyBookings archives and deletes every booking dated strictly
// before today. "Today" is snapshotted once, so a run straddling midnight
// acts on a single consistent cutoff. Running it again the same day is a
// no-op.
func (s *Service) ResetDailyBookings(ctx context.Context) (int64, error) {
	now := s.now()
	today := domain.DayOf(now)

	archived, err := s.repo.ArchiveBefore(ctx, today, now)
	if err != nil {
		return 0, err
	}

	if archived > 0 && s.producer != nil {
		event := kafka.BookingEvent{
			ID:         uuid.NewString(),
			Type:       "daily_reset",
			Archived:   archived,
			OccurredAt: now,
		}
		if s.topic != "" {
			if err := s.producer.Publish(ctx, s.topic, event.ID, event); err != nil {
				s.log.Warn("publish daily_reset failed", zap.String("topic", s.topic), zap.Error(err))
			}
		}
		if s.notificationsTopic != "" {
			if err := s.producer.Publish(ctx, s.notificationsTopic, event.ID, event); err != nil {
				s.log.Warn("publish daily_reset failed", zap.String("topic", s.notificationsTopic), zap.Error(err))
			}
		}
	}
	return archived, nil
}

// Run is the scheduler entry point. A failed run is logged and retried on
// the next firing; it never propagates.
func (s *Service) Run(ctx context.Context) {
	archived, err := s.ResetDailyBookings(ctx)
	if err != nil {
		s.log.Error("daily reset failed", zap.Error(err))
		return
	}
	s.log.Info("daily reset complete", zap.Int64("archived", archived))
}

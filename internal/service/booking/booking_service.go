package booking

import (
	"context"
	"errors"
	"fmt"
	"regexp"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"
	"github.com/rpawar/slotbook/internal/domain"
	"github.com/rpawar/slotbook/internal/kafka"
	"github.com/rpawar/slotbook/internal/repository"
	"go.uber.org/zap"
)

type BookingUseCase interface {
	ListToday(ctx context.Context) (*domain.DaySlots, error)
	CreateBooking(ctx context.Context, input CreateBookingInput) (*domain.Booking, error)
	Stats(ctx context.Context) (*domain.DayStats, error)
	ListForAdmin(ctx context.Context) ([]domain.Booking, error)
	Health(ctx context.Context) (*domain.HealthStatus, error)
}

type Cache interface {
	GetDaySlots(ctx context.Context, day time.Time) ([]domain.SlotRef, error)
	SetDaySlots(ctx context.Context, day time.Time, slots []domain.SlotRef) error
	InvalidateDay(ctx context.Context, day time.Time) error
}

type Producer interface {
	Publish(ctx context.Context, topic, key string, value interface{}) error
}

type BookingService struct {
	repo               repository.BookingRepository
	cache              Cache
	producer           Producer
	bookingTopic       string
	notificationsTopic string
	validate           *validator.Validate
	now                func() time.Time
	log                *zap.Logger
}

type CreateBookingInput struct {
	SectionID  int    `json:"section_id"`
	SlotNumber int    `json:"slot_number"`
	FullName   string `json:"full_name" validate:"required"`
	Place      string `json:"place" validate:"required"`
	Mobile     string `json:"mobile" validate:"required"`
}

type BookingServiceOption func(*BookingService)

func WithClock(now func() time.Time) BookingServiceOption {
	return func(s *BookingService) {
		s.now = now
	}
}

func WithNotificationsTopic(topic string) BookingServiceOption {
	return func(s *BookingService) {
		s.notificationsTopic = topic
	}
}

func NewBookingService(
	repo repository.BookingRepository,
	cache Cache,
	producer Producer,
	bookingTopic string,
	log *zap.Logger,
	opts ...BookingServiceOption,
) *BookingService {
	service := &BookingService{
		repo:         repo,
		cache:        cache,
		producer:     producer,
		bookingTopic: bookingTopic,
		validate:     validator.New(),
		now:          time.Now,
		log:          log,
	}
	for _, opt := range opts {
		opt(service)
	}
	return service
}

var mobilePattern = regexp.MustCompile(`^[0-9]{10}$`)

func (s *BookingService) ListToday(ctx context.Context) (*domain.DaySlots, error) {
	day := domain.DayOf(s.now())

	if s.cache != nil {
		if cached, err := s.cache.GetDaySlots(ctx, day); err == nil && cached != nil {
			return &domain.DaySlots{Date: day, Booked: cached}, nil
		}
	}

	slots, err := s.repo.ListSlots(ctx, day)
	if err != nil {
		return nil, fmt.Errorf("%w: list slots", domain.ErrStoreUnavailable)
	}
	if s.cache != nil && len(slots) > 0 {
		_ = s.cache.SetDaySlots(ctx, day, slots)
	}
	return &domain.DaySlots{Date: day, Booked: slots}, nil
}

func (s *BookingService) CreateBooking(ctx context.Context, input CreateBookingInput) (*domain.Booking, error) {
	if err := s.validateInput(input); err != nil {
		return nil, err
	}

	now := s.now()
	booking := &domain.Booking{
		SectionID:   input.SectionID,
		SlotNumber:  input.SlotNumber,
		FullName:    input.FullName,
		Place:       input.Place,
		Mobile:      input.Mobile,
		BookingDate: domain.DayOf(now),
		CreatedAt:   now,
	}

	if err := s.repo.Create(ctx, booking); err != nil {
		if errors.Is(err, domain.ErrSlotTaken) {
			return nil, domain.ErrSlotTaken
		}
		s.log.Error("create booking failed", zap.Int("section", input.SectionID), zap.Int("slot", input.SlotNumber), zap.Error(err))
		return nil, fmt.Errorf("%w: create booking", domain.ErrStoreUnavailable)
	}

	if s.cache != nil {
		_ = s.cache.InvalidateDay(ctx, booking.BookingDate)
	}

	if err := s.publish(ctx, "booking_created", booking); err != nil {
		s.log.Warn("publish booking_created failed", zap.Int64("booking_id", booking.ID), zap.Error(err))
	}
	return booking, nil
}

func (s *BookingService) Stats(ctx context.Context) (*domain.DayStats, error) {
	day := domain.DayOf(s.now())

	counts, err := s.repo.SectionCounts(ctx, day)
	if err != nil {
		return nil, fmt.Errorf("%w: section counts", domain.ErrStoreUnavailable)
	}

	sections := make(map[int]int, domain.SectionCount)
	total := 0
	for section := 1; section <= domain.SectionCount; section++ {
		sections[section] = counts[section]
		total += counts[section]
	}

	return &domain.DayStats{
		Date:      day,
		Sections:  sections,
		Total:     total,
		Available: domain.TotalSlots - total,
	}, nil
}

func (s *BookingService) ListForAdmin(ctx context.Context) ([]domain.Booking, error) {
	bookings, err := s.repo.ListDetailed(ctx, domain.DayOf(s.now()))
	if err != nil {
		return nil, fmt.Errorf("%w: list bookings", domain.ErrStoreUnavailable)
	}
	return bookings, nil
}

func (s *BookingService) Health(ctx context.Context) (*domain.HealthStatus, error) {
	start := time.Now()
	if err := s.repo.Ping(ctx); err != nil {
		return &domain.HealthStatus{OK: false}, fmt.Errorf("%w: ping", domain.ErrStoreUnavailable)
	}
	return &domain.HealthStatus{OK: true, Latency: time.Since(start)}, nil
}

// validateInput restates the boundary's checks as a precondition enforced
// defensively before any mutation.
func (s *BookingService) validateInput(input CreateBookingInput) error {
	if err := s.validate.Struct(input); err != nil {
		return fmt.Errorf("%w: %v", domain.ErrInvalidInput, err)
	}
	if input.SectionID < 1 || input.SectionID > domain.SectionCount {
		return fmt.Errorf("%w: section_id must be between 1 and %d", domain.ErrInvalidInput, domain.SectionCount)
	}
	if input.SlotNumber < 1 || input.SlotNumber > domain.SlotsPerSection {
		return fmt.Errorf("%w: slot_number must be between 1 and %d", domain.ErrInvalidInput, domain.SlotsPerSection)
	}
	if !mobilePattern.MatchString(input.Mobile) {
		return fmt.Errorf("%w: mobile must be exactly 10 digits", domain.ErrInvalidInput)
	}
	return nil
}

func (s *BookingService) publish(ctx context.Context, eventType string, booking *domain.Booking) error {
	if s.producer == nil || s.bookingTopic == "" {
		return nil
	}
	event := kafka.BookingEvent{
		ID:          uuid.NewString(),
		Type:        eventType,
		BookingID:   booking.ID,
		SectionID:   booking.SectionID,
		SlotNumber:  booking.SlotNumber,
		FullName:    booking.FullName,
		Place:       booking.Place,
		Mobile:      booking.Mobile,
		BookingDate: booking.BookingDate.Format("2006-01-02"),
		OccurredAt:  booking.CreatedAt,
	}
	if err := s.producer.Publish(ctx, s.bookingTopic, event.ID, event); err != nil {
		return err
	}
	if s.notificationsTopic != "" {
		return s.producer.Publish(ctx, s.notificationsTopic, event.ID, event)
	}
	return nil
}

var _ BookingUseCase = (*BookingService)(nil)

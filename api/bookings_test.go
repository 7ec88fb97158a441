package api

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/rpawar/slotbook/internal/domain"
	"github.com/rpawar/slotbook/internal/service/booking"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
)

// MockBookingUseCase is a mock implementation of booking.BookingUseCase
type MockBookingUseCase struct {
	mock.Mock
}

func (m *MockBookingUseCase) ListToday(ctx context.Context) (*domain.DaySlots, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.DaySlots), args.Error(1)
}

func (m *MockBookingUseCase) CreateBooking(ctx context.Context, input booking.CreateBookingInput) (*domain.Booking, error) {
	args := m.Called(ctx, input)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Booking), args.Error(1)
}

func (m *MockBookingUseCase) Stats(ctx context.Context) (*domain.DayStats, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.DayStats), args.Error(1)
}

func (m *MockBookingUseCase) ListForAdmin(ctx context.Context) ([]domain.Booking, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.Booking), args.Error(1)
}

func (m *MockBookingUseCase) Health(ctx context.Context) (*domain.HealthStatus, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.HealthStatus), args.Error(1)
}

func TestBookingHandler_create(t *testing.T) {
	mockService := &MockBookingUseCase{}
	handler := NewBookingHandler(mockService)

	gin.SetMode(gin.TestMode)
	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)

	body, _ := json.Marshal(map[string]interface{}{
		"section_id":  1,
		"slot_number": 1,
		"full_name":   "A",
		"place":       "P",
		"mobile":      "9876543210",
	})
	c.Request = httptest.NewRequest("POST", "/api/bookings/", bytes.NewReader(body))
	c.Request.Header.Set("Content-Type", "application/json")

	day := time.Date(2026, 8, 25, 0, 0, 0, 0, time.UTC)
	created := &domain.Booking{ID: 7, SectionID: 1, SlotNumber: 1, FullName: "A", Place: "P", Mobile: "9876543210", BookingDate: day, CreatedAt: day.Add(10 * time.Hour)}

	mockService.On("CreateBooking", mock.Anything, booking.CreateBookingInput{
		SectionID: 1, SlotNumber: 1, FullName: "A", Place: "P", Mobile: "9876543210",
	}).Return(created, nil)

	handler.create(c)

	assert.Equal(t, http.StatusCreated, w.Code)

	var resp bookingResponse
	assert.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.Equal(t, int64(7), resp.ID)
	assert.Equal(t, 1, resp.SectionID)
	assert.Equal(t, 1, resp.SlotNumber)
	assert.Equal(t, "2026-08-25", resp.BookingDate)

	mockService.AssertExpectations(t)
}

func TestBookingHandler_create_slotTaken(t *testing.T) {
	mockService := &MockBookingUseCase{}
	handler := NewBookingHandler(mockService)

	gin.SetMode(gin.TestMode)
	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)

	body, _ := json.Marshal(map[string]interface{}{
		"section_id":  1,
		"slot_number": 1,
		"full_name":   "A",
		"place":       "P",
		"mobile":      "9876543210",
	})
	c.Request = httptest.NewRequest("POST", "/api/bookings/", bytes.NewReader(body))
	c.Request.Header.Set("Content-Type", "application/json")

	mockService.On("CreateBooking", mock.Anything, mock.Anything).Return(nil, domain.ErrSlotTaken)

	handler.create(c)

	assert.Equal(t, http.StatusConflict, w.Code)
}

func TestBookingHandler_create_invalidInput(t *testing.T) {
	mockService := &MockBookingUseCase{}
	handler := NewBookingHandler(mockService)

	gin.SetMode(gin.TestMode)
	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)

	body, _ := json.Marshal(map[string]interface{}{
		"section_id":  6,
		"slot_number": 1,
		"full_name":   "A",
		"place":       "P",
		"mobile":      "9876543210",
	})
	c.Request = httptest.NewRequest("POST", "/api/bookings/", bytes.NewReader(body))
	c.Request.Header.Set("Content-Type", "application/json")

	mockService.On("CreateBooking", mock.Anything, mock.Anything).Return(nil, domain.ErrInvalidInput)

	handler.create(c)

	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestBookingHandler_create_malformedBody(t *testing.T) {
	mockService := &MockBookingUseCase{}
	handler := NewBookingHandler(mockService)

	gin.SetMode(gin.TestMode)
	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)

	c.Request = httptest.NewRequest("POST", "/api/bookings/", bytes.NewBufferString("{not json"))
	c.Request.Header.Set("Content-Type", "application/json")

	handler.create(c)

	assert.Equal(t, http.StatusBadRequest, w.Code)
	mockService.AssertNotCalled(t, "CreateBooking")
}

func TestBookingHandler_list(t *testing.T) {
	mockService := &MockBookingUseCase{}
	handler := NewBookingHandler(mockService)

	gin.SetMode(gin.TestMode)
	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	c.Request = httptest.NewRequest("GET", "/api/bookings/", nil)

	slots := []domain.SlotRef{{SectionID: 1, SlotNumber: 1}, {SectionID: 5, SlotNumber: 5}}
	day := time.Date(2026, 1, 31, 0, 0, 0, 0, time.UTC)
	mockService.On("ListToday", c.Request.Context()).Return(&domain.DaySlots{Date: day, Booked: slots}, nil)

	handler.list(c)

	assert.Equal(t, http.StatusOK, w.Code)

	var resp slotsResponse
	assert.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.Equal(t, slots, resp.Booked)
	// The date must come from the use case's clock, not the handler's.
	assert.Equal(t, "2026-01-31", resp.Date)

	mockService.AssertExpectations(t)
}

func TestBookingHandler_list_storeUnavailable(t *testing.T) {
	mockService := &MockBookingUseCase{}
	handler := NewBookingHandler(mockService)

	gin.SetMode(gin.TestMode)
	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	c.Request = httptest.NewRequest("GET", "/api/bookings/", nil)

	mockService.On("ListToday", c.Request.Context()).Return(nil, domain.ErrStoreUnavailable)

	handler.list(c)

	assert.Equal(t, http.StatusServiceUnavailable, w.Code)
}

func TestBookingHandler_stats(t *testing.T) {
	mockService := &MockBookingUseCase{}
	handler := NewBookingHandler(mockService)

	gin.SetMode(gin.TestMode)
	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	c.Request = httptest.NewRequest("GET", "/api/bookings/stats", nil)

	stats := &domain.DayStats{
		Date:      time.Date(2026, 8, 25, 0, 0, 0, 0, time.UTC),
		Sections:  map[int]int{1: 2, 2: 0, 3: 1, 4: 0, 5: 0},
		Total:     3,
		Available: domain.TotalSlots - 3,
	}
	mockService.On("Stats", c.Request.Context()).Return(stats, nil)

	handler.stats(c)

	assert.Equal(t, http.StatusOK, w.Code)

	var resp statsResponse
	assert.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.Equal(t, 3, resp.Total)
	assert.Equal(t, domain.TotalSlots-3, resp.Available)
	assert.Len(t, resp.Sections, domain.SectionCount)
	assert.Equal(t, sectionStat{SectionID: 1, Booked: 2}, resp.Sections[0])
}

package api

import (
	"errors"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/rpawar/slotbook/internal/domain"
	"github.com/rpawar/slotbook/internal/service/booking"
)

type BookingHandler struct {
	service booking.BookingUseCase
}

type createBookingRequest struct {
	SectionID  int    `json:"section_id"`
	SlotNumber int    `json:"slot_number"`
	FullName   string `json:"full_name"`
	Place      string `json:"place"`
	Mobile     string `json:"mobile"`
}

type bookingResponse struct {
	ID          int64  `json:"id"`
	SectionID   int    `json:"section_id"`
	SlotNumber  int    `json:"slot_number"`
	BookingDate string `json:"booking_date"`
	CreatedAt   string `json:"created_at"`
}

type slotsResponse struct {
	Date   string           `json:"date"`
	Booked []domain.SlotRef `json:"booked"`
}

type sectionStat struct {
	SectionID int `json:"section_id"`
	Booked    int `json:"booked"`
}

type statsResponse struct {
	Date      string        `json:"date"`
	Sections  []sectionStat `json:"sections"`
	Total     int           `json:"total"`
	Available int           `json:"available"`
}

func NewBookingHandler(service booking.BookingUseCase) *BookingHandler {
	return &BookingHandler{service: service}
}

func (h *BookingHandler) Register(router *gin.RouterGroup) {
	router.GET("/", h.list)
	router.POST("/", h.create)
	router.GET("/stats", h.stats)
}

func (h *BookingHandler) list(c *gin.Context) {
	today, err := h.service.ListToday(c.Request.Context())
	if err != nil {
		c.JSON(statusForError(err), gin.H{"error": err.Error()})
		return
	}

	booked := today.Booked
	if booked == nil {
		booked = []domain.SlotRef{}
	}

	c.JSON(http.StatusOK, slotsResponse{
		Date:   today.Date.Format("2006-01-02"),
		Booked: booked,
	})
}

func (h *BookingHandler) create(c *gin.Context) {
	var req createBookingRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	created, err := h.service.CreateBooking(c.Request.Context(), booking.CreateBookingInput{
		SectionID:  req.SectionID,
		SlotNumber: req.SlotNumber,
		FullName:   req.FullName,
		Place:      req.Place,
		Mobile:     req.Mobile,
	})
	if err != nil {
		c.JSON(statusForError(err), gin.H{"error": err.Error()})
		return
	}

	c.JSON(http.StatusCreated, bookingResponse{
		ID:          created.ID,
		SectionID:   created.SectionID,
		SlotNumber:  created.SlotNumber,
		BookingDate: created.BookingDate.Format("2006-01-02"),
		CreatedAt:   created.CreatedAt.Format(time.RFC3339),
	})
}

func (h *BookingHandler) stats(c *gin.Context) {
	stats, err := h.service.Stats(c.Request.Context())
	if err != nil {
		c.JSON(statusForError(err), gin.H{"error": err.Error()})
		return
	}

	sections := make([]sectionStat, 0, domain.SectionCount)
	for section := 1; section <= domain.SectionCount; section++ {
		sections = append(sections, sectionStat{SectionID: section, Booked: stats.Sections[section]})
	}

	c.JSON(http.StatusOK, statsResponse{
		Date:      stats.Date.Format("2006-01-02"),
		Sections:  sections,
		Total:     stats.Total,
		Available: stats.Available,
	})
}

func statusForError(err error) int {
	switch {
	case errors.Is(err, domain.ErrInvalidInput):
		return http.StatusBadRequest
	case errors.Is(err, domain.ErrSlotTaken):
		return http.StatusConflict
	case errors.Is(err, domain.ErrStoreUnavailable):
		return http.StatusServiceUnavailable
	default:
		return http.StatusInternalServerError
	}
}

package api

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/rpawar/slotbook/internal/service/booking"
)

type AdminHandler struct {
	service booking.BookingUseCase
}

type adminBooking struct {
	ID          int64  `json:"id"`
	SectionID   int    `json:"section_id"`
	SlotNumber  int    `json:"slot_number"`
	FullName    string `json:"full_name"`
	Place       string `json:"place"`
	Mobile      string `json:"mobile"`
	BookingDate string `json:"booking_date"`
	CreatedAt   string `json:"created_at"`
}

func NewAdminHandler(service booking.BookingUseCase) *AdminHandler {
	return &AdminHandler{service: service}
}

func (h *AdminHandler) Register(router *gin.RouterGroup) {
	router.GET("/bookings", h.list)
}

func (h *AdminHandler) list(c *gin.Context) {
	bookings, err := h.service.ListForAdmin(c.Request.Context())
	if err != nil {
		c.JSON(statusForError(err), gin.H{"error": err.Error()})
		return
	}

	out := make([]adminBooking, 0, len(bookings))
	for _, b := range bookings {
		out = append(out, adminBooking{
			ID:          b.ID,
			SectionID:   b.SectionID,
			SlotNumber:  b.SlotNumber,
			FullName:    b.FullName,
			Place:       b.Place,
			Mobile:      b.Mobile,
			BookingDate: b.BookingDate.Format("2006-01-02"),
			CreatedAt:   b.CreatedAt.Format(time.RFC3339),
		})
	}

	c.JSON(http.StatusOK, gin.H{"bookings": out})
}

package api

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/rpawar/slotbook/internal/service/booking"
)

type HealthHandler struct {
	service booking.BookingUseCase
}

func NewHealthHandler(service booking.BookingUseCase) *HealthHandler {
	return &HealthHandler{service: service}
}

func (h *HealthHandler) Register(router *gin.RouterGroup) {
	router.GET("/healthz", h.health)
}

func (h *HealthHandler) health(c *gin.Context) {
	status, err := h.service.Health(c.Request.Context())
	if err != nil {
		c.JSON(http.StatusServiceUnavailable, gin.H{"status": "unavailable"})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"status":     "ok",
		"latency_ms": status.Latency.Milliseconds(),
	})
}

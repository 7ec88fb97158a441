package bootstrap

import (
	"context"
	"fmt"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/rpawar/slotbook/api"
	"github.com/rpawar/slotbook/config"
	"github.com/rpawar/slotbook/internal/service/booking"
)

// Run starts the HTTP server and blocks until the context is canceled or
// the server fails.
func Run(ctx context.Context, cfg *config.Config, bookingSvc booking.BookingUseCase) error {
	srv := &http.Server{
		Addr:    cfg.HTTP.Address,
		Handler: NewRouter(bookingSvc),
	}

	errCh := make(chan error, 1)
	go func() { errCh <- srv.ListenAndServe() }()

	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if err := srv.Shutdown(shutdownCtx); err != nil {
			return fmt.Errorf("shutdown http server: %w", err)
		}
		return nil
	}
}

func NewRouter(bookingSvc booking.BookingUseCase) *gin.Engine {
	router := gin.New()
	router.Use(gin.Recovery())

	api.NewBookingHandler(bookingSvc).Register(router.Group("/api/bookings"))
	api.NewAdminHandler(bookingSvc).Register(router.Group("/api/admin"))
	api.NewHealthHandler(bookingSvc).Register(router.Group("/"))

	return router
}

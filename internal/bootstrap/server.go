package bootstrap

import (
	"context"
	"errors"
	"fmt"
	"log"
	"net/http"
	"path/filepath"
	"time"

	"github.com/Domenick1991/cabinbooking/api"
	"github.com/Domenick1991/cabinbooking/config"
	"github.com/Domenick1991/cabinbooking/internal/service/booking"
	"github.com/Domenick1991/cabinbooking/internal/service/seatplan"
	"github.com/gin-gonic/gin"
	httpSwagger "github.com/swaggo/http-swagger"
)

const swaggerSpecFile = "cabin.swagger.json"

// Run serves the HTTP API and blocks until ctx is cancelled or the server fails.
func Run(ctx context.Context, cfg *config.Config, planSvc seatplan.PlanUseCase, ledger booking.LedgerUseCase) error {
	srv := &http.Server{
		Addr:              cfg.HTTP.Address,
		Handler:           NewRouter(cfg, planSvc, ledger),
		ReadHeaderTimeout: 10 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		log.Printf("HTTP server listening on %s", cfg.HTTP.Address)
		errCh <- srv.ListenAndServe()
	}()

	select {
	case err := <-errCh:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
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

// NewRouter mounts the seat and booking handlers under /api and, when a
// swagger directory is configured, the Swagger UI under /swagger/.
func NewRouter(cfg *config.Config, planSvc seatplan.PlanUseCase, ledger booking.LedgerUseCase) *gin.Engine {
	router := gin.New()
	router.Use(gin.Logger(), gin.Recovery())

	router.GET("/healthz", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})

	apiGroup := router.Group("/api")
	api.NewSeatHandler(planSvc).Register(apiGroup.Group("/seats"))
	api.NewBookingHandler(ledger).Register(apiGroup.Group("/bookings"))

	if cfg.HTTP.SwaggerDir != "" {
		router.StaticFile("/docs/"+swaggerSpecFile, filepath.Join(cfg.HTTP.SwaggerDir, swaggerSpecFile))
		router.GET("/swagger/*any", gin.WrapH(httpSwagger.Handler(
			httpSwagger.URL("/docs/"+swaggerSpecFile),
		)))
	}

	return router
}

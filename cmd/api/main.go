package main

import (
	"context"
	"errors"
	"log"
	"net/http"
	"os"
	"os/signal"
	"time"

	"parcel-delivery/internal/config"
	"parcel-delivery/internal/middleware"
	"parcel-delivery/internal/modules/parcels"
	"parcel-delivery/internal/modules/payments"
	"parcel-delivery/internal/modules/riders"
	"parcel-delivery/internal/modules/users"
	"parcel-delivery/pkg/email"
	"parcel-delivery/pkg/payment"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/labstack/echo/v4"
	echomw "github.com/labstack/echo/v4/middleware"
)

func main() {
	cfg, err := config.LoadConfig(".")
	if err != nil {
		log.Fatalf("failed to load configuration: %v", err)
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	pool, err := pgxpool.New(ctx, cfg.DatabaseURL)
	if err != nil {
		log.Fatalf("failed to create connection pool: %v", err)
	}
	defer pool.Close()
	if err := pool.Ping(ctx); err != nil {
		log.Fatalf("failed to reach database: %v", err)
	}

	var notifier email.ServiceInterface = email.NoopService{}
	if cfg.SESSender != "" {
		sesService, err := email.NewSESService(ctx, cfg.AWSRegion, cfg.SESSender)
		if err != nil {
			log.Printf("SES unavailable, rider notifications disabled: %v", err)
		} else {
			notifier = sesService
		}
	}

	userService := users.NewService(users.NewRepository(pool))
	auth := middleware.NewAuth(cfg.JWTSecret, userService)

	parcelService := parcels.NewService(parcels.NewRepository(pool), userService)
	paymentService := payments.NewService(payments.NewRepository(pool), payment.NewStripeService(cfg.StripeAPIKey))
	riderService := riders.NewService(riders.NewRepository(pool), notifier)

	e := echo.New()
	e.HideBanner = true
	e.Use(echomw.Logger())
	e.Use(echomw.Recover())
	if cfg.ClientOrigin != "" {
		e.Use(echomw.CORSWithConfig(echomw.CORSConfig{AllowOrigins: []string{cfg.ClientOrigin}}))
	} else {
		e.Use(echomw.CORS())
	}

	e.GET("/", func(c echo.Context) error {
		return c.String(http.StatusOK, "Parcel Server is running!")
	})

	parcels.NewHandler(parcelService).RegisterRoutes(e, auth)
	payments.NewHandler(paymentService).RegisterRoutes(e, auth)
	users.NewHandler(userService).RegisterRoutes(e, auth)
	riders.NewHandler(riderService).RegisterRoutes(e, auth)

	go func() {
		if err := e.Start(":" + cfg.ServerPort); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatalf("server stopped: %v", err)
		}
	}()

	<-ctx.Done()

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := e.Shutdown(shutdownCtx); err != nil {
		log.Printf("server shutdown: %v", err)
	}
}

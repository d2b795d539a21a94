// Entry point: loads config, wires module services, starts the HTTP server
// and the window-reminder scheduler.
package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/sirupsen/logrus"

	"pinkauto/internal/config"
	httptransport "pinkauto/internal/http"
	"pinkauto/internal/infra"
	"pinkauto/internal/maps"
	"pinkauto/internal/modules/auth"
	"pinkauto/internal/modules/booking"
	"pinkauto/internal/modules/fare"
	"pinkauto/internal/notify"
	"pinkauto/internal/payment"
	"pinkauto/internal/scheduler"
)

func main() {
	log := logrus.New()
	log.SetFormatter(&logrus.JSONFormatter{})

	configPath := os.Getenv("PINKAUTO_CONFIG")
	if configPath == "" {
		configPath = "config.yaml"
	}
	cfg, err := config.Load(configPath)
	if err != nil {
		log.Fatal(err)
	}
	if err := cfg.Validate(); err != nil {
		log.Fatal(err)
	}
	if level, err := logrus.ParseLevel(cfg.LogLevel); err == nil {
		log.SetLevel(level)
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	loc, err := time.LoadLocation(cfg.Booking.Timezone)
	if err != nil {
		log.Fatalf("load timezone %s: %v", cfg.Booking.Timezone, err)
	}

	dbPool, err := infra.NewDB(ctx, cfg.DB.DSN)
	if err != nil {
		log.Fatal(err)
	}
	defer dbPool.Close()

	redisClient, err := infra.NewRedis(ctx, cfg.Redis.Addr)
	if err != nil {
		log.Fatal(err)
	}

	publisher, err := notify.NewPublisher(cfg.AMQP.URL)
	if err != nil {
		log.Fatal(err)
	}
	defer publisher.Close()

	distanceSvc, err := maps.NewDistanceService(cfg.Maps.APIKey, log)
	if err != nil {
		log.Fatal(err)
	}

	gateway := payment.NewGateway(cfg.Payment.KeyID, cfg.Payment.KeySecret, cfg.Payment.BaseURL)

	fareStore := fare.NewStore(dbPool)
	normalTier, err := fareStore.LoadNormalTier(ctx)
	if err != nil {
		log.Fatal(err)
	}
	fareEngine := fare.NewEngine(normalTier)

	authStore := auth.NewStore(dbPool, redisClient)
	authSvc := auth.NewService(
		authStore,
		publisher,
		cfg.Auth.JWTSecret,
		time.Duration(cfg.Auth.OTPTTLMinutes)*time.Minute,
		cfg.Auth.MaxOTPPerHour,
		time.Duration(cfg.Auth.SessionTTLDays)*24*time.Hour,
	)

	bookingStore := booking.NewStore(dbPool)
	bookingSvc := booking.NewService(bookingStore, fareEngine, distanceSvc, gateway, publisher, loc, log)

	reminder := scheduler.NewReminder(publisher, loc, log)
	if err := reminder.Start(cfg.Reminder.Cron); err != nil {
		log.Fatal(err)
	}
	defer reminder.Stop()

	handler := httptransport.NewRouter(httptransport.ServerDeps{
		Auth:    authSvc,
		Booking: bookingSvc,
		Log:     log,
	})
	server := &http.Server{Addr: cfg.HTTP.Addr, Handler: handler}

	go func() {
		<-ctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		_ = server.Shutdown(shutdownCtx)
	}()

	log.WithField("addr", cfg.HTTP.Addr).Info("listening")
	if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		log.Fatal(err)
	}
}

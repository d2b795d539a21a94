// Package http registers routes and wires handlers to module services.
package http

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"

	"pinkauto/internal/http/handlers"
	"pinkauto/internal/http/middleware"
	"pinkauto/internal/modules/auth"
	"pinkauto/internal/modules/booking"
)

type ServerDeps struct {
	Auth    *auth.Service
	Booking *booking.Service
	Log     *logrus.Logger
}

// NewRouter builds the gin engine with the full middleware chain and routes.
func NewRouter(deps ServerDeps) http.Handler {
	gin.SetMode(gin.ReleaseMode)
	r := gin.New()
	r.Use(middleware.Recovery(deps.Log))
	r.Use(middleware.Logging(deps.Log))

	r.GET("/health", func(c *gin.Context) {
		c.String(http.StatusOK, "OK")
	})

	authHandler := handlers.NewAuthHandler(deps.Auth)
	fareHandler := handlers.NewFareHandler(deps.Booking)
	bookingHandler := handlers.NewBookingHandler(deps.Booking)

	api := r.Group("/api")

	// Public: the marketing site quotes fares before login.
	api.POST("/auth/otp/request", authHandler.RequestOTP)
	api.POST("/auth/otp/verify", authHandler.VerifyOTP)
	api.POST("/fare/estimate", fareHandler.Estimate)
	api.GET("/booking-window", fareHandler.Window)

	authed := api.Group("")
	authed.Use(middleware.Auth(deps.Auth))
	authed.POST("/bookings", bookingHandler.Create)
	authed.GET("/bookings", bookingHandler.List)
	authed.GET("/bookings/:id", bookingHandler.Get)
	authed.POST("/bookings/:id/confirm", bookingHandler.Confirm)
	authed.POST("/bookings/:id/cancel", bookingHandler.Cancel)

	return r
}

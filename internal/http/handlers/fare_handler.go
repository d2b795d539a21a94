package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"pinkauto/internal/modules/booking"
	"pinkauto/internal/modules/fare"
	"pinkauto/internal/types"
)

// FareHandler serves public quote and booking-window endpoints used by the
// marketing site before a rider logs in.
type FareHandler struct {
	booking *booking.Service
}

func NewFareHandler(svc *booking.Service) *FareHandler {
	return &FareHandler{booking: svc}
}

type estimateReq struct {
	PickupLat  float64  `json:"pickup_lat"`
	PickupLng  float64  `json:"pickup_lng"`
	DropLat    float64  `json:"drop_lat"`
	DropLng    float64  `json:"drop_lng"`
	PickupTime string   `json:"pickup_time"`
	Days       []string `json:"days"`
}

type estimateResp struct {
	Quote   booking.Quote `json:"quote"`
	Display struct {
		PerRide     string `json:"per_ride"`
		TotalWeekly string `json:"total_weekly"`
	} `json:"display"`
}

func (h *FareHandler) Estimate(c *gin.Context) {
	var req estimateReq
	if err := c.ShouldBindJSON(&req); err != nil {
		writeError(c, http.StatusBadRequest, "invalid json")
		return
	}
	pickupTime, err := fare.ParseTimeOfDay(req.PickupTime)
	if err != nil {
		writeBookingError(c, err)
		return
	}
	days, err := booking.ParseWeekdays(req.Days)
	if err != nil {
		writeBookingError(c, err)
		return
	}

	quote, err := h.booking.Estimate(c.Request.Context(),
		types.Point{Lat: req.PickupLat, Lng: req.PickupLng},
		types.Point{Lat: req.DropLat, Lng: req.DropLng},
		pickupTime, days)
	if err != nil {
		writeBookingError(c, err)
		return
	}

	var resp estimateResp
	resp.Quote = quote
	resp.Display.PerRide = types.INR(quote.Fare.PerRideFare).Display()
	resp.Display.TotalWeekly = types.INR(quote.Fare.TotalWeeklyFare).Display()
	c.JSON(http.StatusOK, resp)
}

func (h *FareHandler) Window(c *gin.Context) {
	c.JSON(http.StatusOK, h.booking.Window())
}

package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"pinkauto/internal/http/middleware"
	"pinkauto/internal/modules/booking"
	"pinkauto/internal/modules/fare"
	"pinkauto/internal/types"
)

type BookingHandler struct {
	booking *booking.Service
}

func NewBookingHandler(svc *booking.Service) *BookingHandler {
	return &BookingHandler{booking: svc}
}

type createBookingReq struct {
	PickupAddress string   `json:"pickup_address"`
	DropAddress   string   `json:"drop_address"`
	PickupLat     float64  `json:"pickup_lat"`
	PickupLng     float64  `json:"pickup_lng"`
	DropLat       float64  `json:"drop_lat"`
	DropLng       float64  `json:"drop_lng"`
	PickupTime    string   `json:"pickup_time"`
	Days          []string `json:"days"`
}

func (h *BookingHandler) Create(c *gin.Context) {
	var req createBookingReq
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

	b, err := h.booking.Create(c.Request.Context(), booking.CreateCommand{
		RiderID:       middleware.RiderID(c),
		PickupAddress: req.PickupAddress,
		DropAddress:   req.DropAddress,
		Pickup:        types.Point{Lat: req.PickupLat, Lng: req.PickupLng},
		Drop:          types.Point{Lat: req.DropLat, Lng: req.DropLng},
		PickupTime:    pickupTime,
		Days:          days,
	})
	if err != nil {
		writeBookingError(c, err)
		return
	}
	c.JSON(http.StatusCreated, b)
}

type confirmBookingReq struct {
	PaymentID string `json:"payment_id"`
	Signature string `json:"signature"`
}

func (h *BookingHandler) Confirm(c *gin.Context) {
	var req confirmBookingReq
	if err := c.ShouldBindJSON(&req); err != nil {
		writeError(c, http.StatusBadRequest, "invalid json")
		return
	}
	b, err := h.booking.Confirm(c.Request.Context(), booking.ConfirmCommand{
		BookingID: types.ID(c.Param("id")),
		RiderID:   middleware.RiderID(c),
		PaymentID: req.PaymentID,
		Signature: req.Signature,
	})
	if err != nil {
		writeBookingError(c, err)
		return
	}
	c.JSON(http.StatusOK, b)
}

func (h *BookingHandler) Cancel(c *gin.Context) {
	err := h.booking.Cancel(c.Request.Context(), booking.CancelCommand{
		BookingID: types.ID(c.Param("id")),
		RiderID:   middleware.RiderID(c),
	})
	if err != nil {
		writeBookingError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"status": booking.StatusCancelled})
}

func (h *BookingHandler) Get(c *gin.Context) {
	b, err := h.booking.Get(c.Request.Context(), types.ID(c.Param("id")), middleware.RiderID(c))
	if err != nil {
		writeBookingError(c, err)
		return
	}
	c.JSON(http.StatusOK, b)
}

func (h *BookingHandler) List(c *gin.Context) {
	bookings, err := h.booking.ListByRider(c.Request.Context(), middleware.RiderID(c))
	if err != nil {
		writeBookingError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"bookings": bookings})
}

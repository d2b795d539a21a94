// Package booking orchestrates subscription bookings: it validates rider
// input, resolves the trip distance, prices the week, dates the start, and
// drives the payment and notification boundaries.
package booking

import (
	"errors"
	"strings"
	"time"

	"pinkauto/internal/modules/fare"
	"pinkauto/internal/types"
)

var (
	ErrBadRequest          = errors.New("bad request")
	ErrInsufficientDays    = errors.New("select at least two days per week")
	ErrDistanceUnavailable = errors.New("could not resolve trip distance")
	ErrNotFound            = errors.New("booking not found")
	ErrInvalidState        = errors.New("invalid booking state transition")
	ErrPaymentFailed       = errors.New("payment could not be completed")
	ErrForbidden           = errors.New("booking belongs to another rider")
)

// MinDaysPerWeek is the orchestrator's business rule; the fare engine
// itself prices any day count.
const MinDaysPerWeek = 2

type Status string

const (
	StatusPendingPayment Status = "pending_payment"
	StatusConfirmed      Status = "confirmed"
	StatusActive         Status = "active"
	StatusPaymentFailed  Status = "payment_failed"
	StatusCancelled      Status = "cancelled"
)

var allowedTransitions = map[Status][]Status{
	StatusPendingPayment: {StatusConfirmed, StatusPaymentFailed, StatusCancelled},
	StatusConfirmed:      {StatusActive, StatusCancelled},
	StatusActive:         {StatusCancelled},
}

func CanTransition(from, to Status) bool {
	for _, s := range allowedTransitions[from] {
		if s == to {
			return true
		}
	}
	return false
}

// Booking is one priced, dated weekly subscription.
type Booking struct {
	ID             types.ID       `json:"id"`
	RiderID        types.ID       `json:"rider_id"`
	PickupAddress  string         `json:"pickup_address"`
	DropAddress    string         `json:"drop_address"`
	Pickup         types.Point    `json:"pickup"`
	Drop           types.Point    `json:"drop"`
	PickupTime     fare.TimeOfDay `json:"pickup_time"`
	Days           []time.Weekday `json:"days"`
	DistanceKm     float64        `json:"distance_km"`
	Fare           fare.Breakdown `json:"fare"`
	StartDate      time.Time      `json:"start_date"`
	IsNextWeek     bool           `json:"is_next_week"`
	PaymentOrderID string         `json:"payment_order_id,omitempty"`
	PaymentID      string         `json:"payment_id,omitempty"`
	Status         Status         `json:"status"`
	CreatedAt      time.Time      `json:"created_at"`
	ConfirmedAt    *time.Time     `json:"confirmed_at,omitempty"`
	CancelledAt    *time.Time     `json:"cancelled_at,omitempty"`
}

// DisplayOrder is the Monday-first weekday order shown to riders.
// Arithmetic everywhere else uses time.Weekday's Sunday-first numbering;
// never index one with the other.
var DisplayOrder = []time.Weekday{
	time.Monday, time.Tuesday, time.Wednesday, time.Thursday,
	time.Friday, time.Saturday, time.Sunday,
}

var weekdayNames = map[string]time.Weekday{
	"sunday":    time.Sunday,
	"monday":    time.Monday,
	"tuesday":   time.Tuesday,
	"wednesday": time.Wednesday,
	"thursday":  time.Thursday,
	"friday":    time.Friday,
	"saturday":  time.Saturday,
}

// ParseWeekdays converts lowercase day names into a deduplicated weekday
// slice sorted in display order. Unknown names are rejected.
func ParseWeekdays(names []string) ([]time.Weekday, error) {
	var seen [7]bool
	for _, name := range names {
		d, ok := weekdayNames[strings.ToLower(strings.TrimSpace(name))]
		if !ok {
			return nil, ErrBadRequest
		}
		seen[d] = true
	}
	days := make([]time.Weekday, 0, 7)
	for _, d := range DisplayOrder {
		if seen[d] {
			days = append(days, d)
		}
	}
	return days, nil
}

// WeekdayNames renders weekdays back into lowercase names, preserving order.
func WeekdayNames(days []time.Weekday) []string {
	names := make([]string, len(days))
	for i, d := range days {
		names[i] = strings.ToLower(d.String())
	}
	return names
}

// ConfirmedEvent is published to the notification boundary once payment is
// verified.
type ConfirmedEvent struct {
	BookingID   types.ID    `json:"booking_id"`
	RiderID     types.ID    `json:"rider_id"`
	Phone       string      `json:"phone,omitempty"`
	StartDate   string      `json:"start_date"`
	Days        []string    `json:"days"`
	PickupTime  string      `json:"pickup_time"`
	TotalWeekly types.Money `json:"total_weekly"`
	PaymentID   string      `json:"payment_id"`
}

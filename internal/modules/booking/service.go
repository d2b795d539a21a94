package booking

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"

	"pinkauto/internal/modules/fare"
	"pinkauto/internal/modules/window"
	"pinkauto/internal/notify"
	"pinkauto/internal/payment"
	"pinkauto/internal/types"
)

// Repository is the persistence surface the service needs.
type Repository interface {
	Insert(ctx context.Context, b *Booking) error
	Get(ctx context.Context, id types.ID) (*Booking, error)
	UpdateStatus(ctx context.Context, id types.ID, from, to Status, at time.Time) (bool, error)
	AttachPayment(ctx context.Context, id types.ID, paymentID string) error
	ListByRider(ctx context.Context, riderID types.ID) ([]*Booking, error)
}

// DistanceProvider resolves road distance between two coordinates.
type DistanceProvider interface {
	RoadDistanceKm(ctx context.Context, origin, dest types.Point) (float64, error)
}

// PaymentGateway creates payment orders and verifies capture signatures.
type PaymentGateway interface {
	CreateOrder(ctx context.Context, amount types.Money, receipt string) (payment.Order, error)
	VerifySignature(orderID, paymentID, signature string) bool
}

// Notifier queues outbound events; failures are logged, never propagated to
// the rider once payment has been confirmed.
type Notifier interface {
	Publish(ctx context.Context, routingKey string, event any) error
}

type Service struct {
	repo     Repository
	fares    *fare.Engine
	distance DistanceProvider
	gateway  PaymentGateway
	notifier Notifier
	loc      *time.Location
	now      func() time.Time
	log      *logrus.Entry
}

func NewService(
	repo Repository,
	fares *fare.Engine,
	distance DistanceProvider,
	gateway PaymentGateway,
	notifier Notifier,
	loc *time.Location,
	log *logrus.Logger,
) *Service {
	s := &Service{
		repo:     repo,
		fares:    fares,
		distance: distance,
		gateway:  gateway,
		notifier: notifier,
		loc:      loc,
		log:      log.WithField("component", "booking"),
	}
	s.now = func() time.Time { return time.Now().In(loc) }
	return s
}

type CreateCommand struct {
	RiderID       types.ID
	PickupAddress string
	DropAddress   string
	Pickup        types.Point
	Drop          types.Point
	PickupTime    fare.TimeOfDay
	Days          []time.Weekday
}

type ConfirmCommand struct {
	BookingID types.ID
	RiderID   types.ID
	PaymentID string
	Signature string
}

type CancelCommand struct {
	BookingID types.ID
	RiderID   types.ID
}

// Quote is the priced, dated proposal shown before payment.
type Quote struct {
	Fare   fare.Breakdown `json:"fare"`
	Window window.State   `json:"window"`
}

// Estimate prices a trip without creating anything; the website quotes with
// it while the rider is still filling in the form. Distance is resolved the
// same way Create resolves it.
func (s *Service) Estimate(ctx context.Context, origin, dest types.Point, pickup fare.TimeOfDay, days []time.Weekday) (Quote, error) {
	if err := pickup.Validate(); err != nil {
		return Quote{}, err
	}
	km, err := s.distance.RoadDistanceKm(ctx, origin, dest)
	if err != nil {
		return Quote{}, fmt.Errorf("%w: %v", ErrDistanceUnavailable, err)
	}
	if err := fare.ValidateDistance(km); err != nil {
		return Quote{}, err
	}
	return Quote{
		Fare:   s.fares.Calculate(km, pickup, days),
		Window: window.Current(s.now()),
	}, nil
}

// Window returns the current booking-window state.
func (s *Service) Window() window.State {
	return window.Current(s.now())
}

// Create validates the trip, prices it, dates it, opens a payment order and
// persists the booking as pending payment. All validation happens before
// the first external call.
func (s *Service) Create(ctx context.Context, cmd CreateCommand) (*Booking, error) {
	if cmd.RiderID == "" || cmd.PickupAddress == "" || cmd.DropAddress == "" {
		return nil, ErrBadRequest
	}
	if err := cmd.PickupTime.Validate(); err != nil {
		return nil, err
	}
	days := dedupeDays(cmd.Days)
	if len(days) < MinDaysPerWeek {
		return nil, ErrInsufficientDays
	}

	km, err := s.distance.RoadDistanceKm(ctx, cmd.Pickup, cmd.Drop)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrDistanceUnavailable, err)
	}
	if err := fare.ValidateDistance(km); err != nil {
		return nil, err
	}

	now := s.now()
	breakdown := s.fares.Calculate(km, cmd.PickupTime, days)
	win := window.Current(now)

	id := types.ID(uuid.NewString())
	order, err := s.gateway.CreateOrder(ctx, types.INR(breakdown.TotalWeeklyFare), string(id))
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrPaymentFailed, err)
	}

	b := &Booking{
		ID:             id,
		RiderID:        cmd.RiderID,
		PickupAddress:  cmd.PickupAddress,
		DropAddress:    cmd.DropAddress,
		Pickup:         cmd.Pickup,
		Drop:           cmd.Drop,
		PickupTime:     cmd.PickupTime,
		Days:           days,
		DistanceKm:     km,
		Fare:           breakdown,
		StartDate:      win.StartDate,
		IsNextWeek:     win.IsNextWeek,
		PaymentOrderID: order.ID,
		Status:         StatusPendingPayment,
		CreatedAt:      now,
	}
	if err := s.repo.Insert(ctx, b); err != nil {
		return nil, err
	}
	return b, nil
}

// Confirm verifies the payment signature and finalizes the booking. The
// confirmation event is fire-and-forget: once payment is verified the
// booking stays confirmed even if the notifier is down.
func (s *Service) Confirm(ctx context.Context, cmd ConfirmCommand) (*Booking, error) {
	b, err := s.authorized(ctx, cmd.BookingID, cmd.RiderID)
	if err != nil {
		return nil, err
	}
	if !CanTransition(b.Status, StatusConfirmed) {
		return nil, ErrInvalidState
	}

	if !s.gateway.VerifySignature(b.PaymentOrderID, cmd.PaymentID, cmd.Signature) {
		if _, err := s.repo.UpdateStatus(ctx, b.ID, b.Status, StatusPaymentFailed, s.now()); err != nil {
			s.log.WithError(err).WithField("booking_id", b.ID).Error("mark payment failed")
		}
		return nil, ErrPaymentFailed
	}

	now := s.now()
	ok, err := s.repo.UpdateStatus(ctx, b.ID, b.Status, StatusConfirmed, now)
	if err != nil {
		return nil, err
	}
	if !ok {
		return nil, ErrInvalidState
	}
	if err := s.repo.AttachPayment(ctx, b.ID, cmd.PaymentID); err != nil {
		s.log.WithError(err).WithField("booking_id", b.ID).Error("attach payment id")
	}
	b.Status = StatusConfirmed
	b.PaymentID = cmd.PaymentID
	b.ConfirmedAt = &now

	event := ConfirmedEvent{
		BookingID:   b.ID,
		RiderID:     b.RiderID,
		StartDate:   b.StartDate.Format("2006-01-02"),
		Days:        WeekdayNames(b.Days),
		PickupTime:  b.PickupTime.String(),
		TotalWeekly: types.INR(b.Fare.TotalWeeklyFare),
		PaymentID:   cmd.PaymentID,
	}
	if err := s.notifier.Publish(ctx, notify.RouteBookingConfirmed, event); err != nil {
		s.log.WithError(err).WithField("booking_id", b.ID).Warn("confirmation event not queued")
	}
	return b, nil
}

func (s *Service) Cancel(ctx context.Context, cmd CancelCommand) error {
	b, err := s.authorized(ctx, cmd.BookingID, cmd.RiderID)
	if err != nil {
		return err
	}
	if !CanTransition(b.Status, StatusCancelled) {
		return ErrInvalidState
	}
	ok, err := s.repo.UpdateStatus(ctx, b.ID, b.Status, StatusCancelled, s.now())
	if err != nil {
		return err
	}
	if !ok {
		return ErrInvalidState
	}
	return nil
}

func (s *Service) Get(ctx context.Context, id, riderID types.ID) (*Booking, error) {
	return s.authorized(ctx, id, riderID)
}

func (s *Service) ListByRider(ctx context.Context, riderID types.ID) ([]*Booking, error) {
	return s.repo.ListByRider(ctx, riderID)
}

func (s *Service) authorized(ctx context.Context, id, riderID types.ID) (*Booking, error) {
	b, err := s.repo.Get(ctx, id)
	if err != nil {
		return nil, err
	}
	if b.RiderID != riderID {
		return nil, ErrForbidden
	}
	return b, nil
}

func dedupeDays(days []time.Weekday) []time.Weekday {
	var seen [7]bool
	for _, d := range days {
		if d >= 0 && d <= 6 {
			seen[d] = true
		}
	}
	out := make([]time.Weekday, 0, 7)
	for _, d := range DisplayOrder {
		if seen[d] {
			out = append(out, d)
		}
	}
	return out
}

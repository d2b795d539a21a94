// Package scheduler runs the recurring booking-window reminder.
package scheduler

import (
	"context"
	"time"

	"github.com/robfig/cron/v3"
	"github.com/sirupsen/logrus"

	"pinkauto/internal/modules/window"
	"pinkauto/internal/notify"
)

type Notifier interface {
	Publish(ctx context.Context, routingKey string, event any) error
}

// ReminderEvent tells the downstream dispatcher how long the current
// booking window stays open.
type ReminderEvent struct {
	StartDate string           `json:"start_date"`
	Remaining window.Countdown `json:"remaining"`
}

// Reminder publishes a "booking closes soon" event on a cron schedule while
// the window is still open. Runs past the cutoff are silently skipped.
type Reminder struct {
	cron     *cron.Cron
	notifier Notifier
	loc      *time.Location
	log      *logrus.Entry
}

func NewReminder(notifier Notifier, loc *time.Location, log *logrus.Logger) *Reminder {
	return &Reminder{
		cron:     cron.New(cron.WithLocation(loc)),
		notifier: notifier,
		loc:      loc,
		log:      log.WithField("component", "reminder"),
	}
}

// Start registers the cron spec and begins scheduling. Call Stop on
// shutdown.
func (r *Reminder) Start(spec string) error {
	if _, err := r.cron.AddFunc(spec, r.run); err != nil {
		return err
	}
	r.cron.Start()
	r.log.WithField("cron", spec).Info("window reminder scheduled")
	return nil
}

func (r *Reminder) Stop() {
	r.cron.Stop()
}

func (r *Reminder) run() {
	now := time.Now().In(r.loc)
	remaining := window.UntilCutoff(now)
	if remaining == nil {
		return
	}
	event := ReminderEvent{
		StartDate: window.StartDate(now).Format("2006-01-02"),
		Remaining: *remaining,
	}
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := r.notifier.Publish(ctx, notify.RouteWindowReminder, event); err != nil {
		r.log.WithError(err).Warn("reminder not queued")
	}
}

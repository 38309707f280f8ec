package scheduler

import (
	"context"
	"fmt"
	"time"

	"github.com/masonpham16/TalkDoc/internal/logging"
	"github.com/masonpham16/TalkDoc/internal/model"
	"github.com/masonpham16/TalkDoc/internal/notify"
	"github.com/masonpham16/TalkDoc/internal/parser"
	"github.com/masonpham16/TalkDoc/internal/storage"
)

// ReminderChecker fires due reminders. Each (reminder, day, time,
// date) occurrence fires once; the fired repository carries the marks
// across restarts. The mark is written only after the notification is
// recorded, so a failed write leaves the occurrence due on the next
// check.
type ReminderChecker struct {
	reminderRepo *storage.ReminderRepo
	firedRepo    *storage.FiredRepo
	center       *notify.Center
	dispatcher   *notify.Dispatcher
}

// NewReminderChecker creates a new reminder checker. The dispatcher
// may be nil when webhook forwarding is not wanted.
func NewReminderChecker(reminderRepo *storage.ReminderRepo, firedRepo *storage.FiredRepo, center *notify.Center, dispatcher *notify.Dispatcher) *ReminderChecker {
	return &ReminderChecker{
		reminderRepo: reminderRepo,
		firedRepo:    firedRepo,
		center:       center,
		dispatcher:   dispatcher,
	}
}

// Check fires reminders due at the current wall-clock minute.
func (c *ReminderChecker) Check() {
	c.CheckAt(time.Now())
}

// CheckAt fires reminders due at the given instant. The minute is
// matched exactly: a reminder set for 08:00 fires during the 08:00
// minute and at no other time.
func (c *ReminderChecker) CheckAt(now time.Time) {
	reminders, err := c.reminderRepo.List()
	if err != nil {
		logging.Logger().Error("failed to list reminders", "error", err)
		return
	}
	if len(reminders) == 0 {
		return
	}

	day := parser.DayTag(now)
	clock := parser.ClockOf(now)
	dateKey := parser.DateKey(now)

	for _, reminder := range reminders {
		if !reminder.Matches(day, clock) {
			continue
		}

		occurrence := reminder.FiredKey(day, clock, dateKey)
		seen, err := c.firedRepo.Seen(occurrence)
		if err != nil {
			logging.Logger().Error("failed to check fired mark", "error", err)
			continue
		}
		if seen {
			continue
		}

		if !c.fire(reminder, day, clock) {
			continue
		}

		if err := c.firedRepo.Mark(occurrence, now); err != nil {
			logging.Logger().Error("failed to record fired mark", "error", err)
		}
	}
}

// fire records the in-app notification and forwards it to webhooks.
// It reports whether the notification was recorded.
func (c *ReminderChecker) fire(reminder *model.Reminder, day model.Day, clock string) bool {
	n := model.NewNotification(
		"Time to take your pill",
		fmt.Sprintf("%s (%s) — %s (now)", reminder.ItemName, reminder.Slot, parser.ToAmPm(clock)),
	).WithMeta(&model.NotificationMeta{
		ReminderID: reminder.ID(),
		Slot:       reminder.Slot,
		ItemName:   reminder.ItemName,
		Day:        day,
		Time:       clock,
	})

	if err := c.center.Append(n); err != nil {
		logging.Logger().Error("failed to record notification", "error", err)
		return false
	}

	logging.Logger().Info("reminder fired",
		"reminder", reminder.ShortID(),
		"slot", reminder.Slot,
		"time", clock)

	if c.dispatcher != nil && c.dispatcher.HasEnabledWebhooks() {
		ctx, cancel := context.WithTimeout(context.Background(), time.Minute)
		defer cancel()
		for _, result := range c.dispatcher.SendNotification(ctx, n) {
			if result.Error != nil {
				logging.Logger().Warn("webhook delivery failed",
					"webhook", result.WebhookName,
					"error", result.Error)
			}
		}
	}

	return true
}

package scheduler

import (
	"fmt"
	"strings"

	"github.com/masonpham16/TalkDoc/internal/errors"
	"github.com/masonpham16/TalkDoc/internal/model"
	"github.com/masonpham16/TalkDoc/internal/notify"
	"github.com/masonpham16/TalkDoc/internal/parser"
	"github.com/masonpham16/TalkDoc/internal/storage"
	"github.com/masonpham16/TalkDoc/internal/validate"
)

// Author creates reminders against the current inventory. The item
// name is snapshotted at creation time; renaming the item later does
// not update existing reminders.
type Author struct {
	inventory *storage.InventoryRepo
	reminders *storage.ReminderRepo
	center    *notify.Center
}

// NewAuthor creates a reminder author.
func NewAuthor(inventory *storage.InventoryRepo, reminders *storage.ReminderRepo, center *notify.Center) *Author {
	return &Author{
		inventory: inventory,
		reminders: reminders,
		center:    center,
	}
}

// Create validates and persists a reminder for the item in slot, then
// records a "Reminder scheduled" notification. Checks run in a fixed
// order: the slot must hold an item, then at least one day, then at
// least one time.
func (a *Author) Create(slot model.Slot, days []model.Day, times []string) (*model.Reminder, error) {
	item, err := a.inventory.Get(slot)
	if err != nil {
		return nil, err
	}
	if item == nil {
		return nil, errors.ErrEmptySlot
	}

	days, err = validate.ReminderDays(days)
	if err != nil {
		return nil, err
	}

	times, err = validate.ReminderTimes(times)
	if err != nil {
		return nil, err
	}

	reminder := &model.Reminder{
		Slot:     slot,
		ItemName: item.Name,
		Days:     days,
		Times:    times,
	}
	if err := a.reminders.Create(reminder); err != nil {
		return nil, err
	}

	n := model.NewNotification("Reminder scheduled", scheduledBody(reminder)).
		WithMeta(&model.NotificationMeta{
			ReminderID: reminder.ID(),
			Slot:       reminder.Slot,
			ItemName:   reminder.ItemName,
		})
	if err := a.center.Append(n); err != nil {
		return nil, err
	}

	return reminder, nil
}

// Delete removes a reminder by full ID or unambiguous prefix.
func (a *Author) Delete(id string) (*model.Reminder, error) {
	reminder, err := a.reminders.GetByID(id)
	if err != nil {
		return nil, err
	}
	if err := a.reminders.Delete(reminder.Key); err != nil {
		return nil, err
	}
	return reminder, nil
}

// scheduledBody renders the confirmation notification body, e.g.
// "Aspirin (B1) — Mon, Wed @ 8:00 AM, 8:00 PM".
func scheduledBody(r *model.Reminder) string {
	dayTags := make([]string, len(r.Days))
	for i, d := range r.Days {
		dayTags[i] = string(d)
	}

	clock := make([]string, len(r.Times))
	for i, t := range r.Times {
		clock[i] = parser.ToAmPm(t)
	}

	return fmt.Sprintf("%s (%s) — %s @ %s",
		r.ItemName, r.Slot,
		strings.Join(dayTags, ", "),
		strings.Join(clock, ", "))
}

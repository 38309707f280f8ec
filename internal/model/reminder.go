package model

import (
	"fmt"
	"time"
)

// Reminder is a user-defined rule mapping a slot to a set of weekdays
// and times of day. ItemName is a snapshot of the inventory item's
// name at creation time; renaming the item later does not update it.
// Reminders are never mutated after creation, only deleted.
type Reminder struct {
	Key       string    `json:"key"`
	Slot      Slot      `json:"slot"`
	ItemName  string    `json:"item_name"`
	Days      []Day     `json:"days"`
	Times     []string  `json:"times"` // "HH:MM" 24-hour internal form
	CreatedAt time.Time `json:"created_at"`
}

// SetKey sets the database key for this reminder.
func (r *Reminder) SetKey(key string) {
	r.Key = key
}

// GetKey returns the database key for this reminder.
func (r *Reminder) GetKey() string {
	return r.Key
}

// ID returns the reminder's identifier without the key prefix.
func (r *Reminder) ID() string {
	if len(r.Key) > len(PrefixReminder)+1 {
		return r.Key[len(PrefixReminder)+1:]
	}
	return r.Key
}

// ShortID returns the first 6 characters of the UUID for display.
func (r *Reminder) ShortID() string {
	id := r.ID()
	if len(id) > 6 {
		return id[:6]
	}
	return id
}

// Matches returns true if the reminder is scheduled for the given
// weekday and "HH:MM" time.
func (r *Reminder) Matches(day Day, clock string) bool {
	return containsDay(r.Days, day) && containsTime(r.Times, clock)
}

// FiredKey derives the deduplication token for one occurrence of this
// reminder: at most one notification fires per (reminder, day, time,
// calendar date) tuple.
func (r *Reminder) FiredKey(day Day, clock, dateKey string) string {
	return fmt.Sprintf("%s|%s|%s|%s", r.ID(), day, clock, dateKey)
}

// GenerateReminderKey generates a database key for a reminder using UUID.
func GenerateReminderKey(uuid string) string {
	return fmt.Sprintf("%s:%s", PrefixReminder, uuid)
}

func containsDay(days []Day, d Day) bool {
	for _, x := range days {
		if x == d {
			return true
		}
	}
	return false
}

func containsTime(times []string, t string) bool {
	for _, x := range times {
		if x == t {
			return true
		}
	}
	return false
}

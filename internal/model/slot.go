package model

import (
	"strings"

	"github.com/masonpham16/TalkDoc/internal/errors"
)

// Slot identifies one of the 8 fixed dispenser compartments.
// Four bottom (B1-B4) and four top (T1-T4). The set is closed; slots
// are never created or destroyed at runtime.
type Slot string

// The fixed slot identifiers.
const (
	SlotB1 Slot = "B1"
	SlotB2 Slot = "B2"
	SlotB3 Slot = "B3"
	SlotB4 Slot = "B4"
	SlotT1 Slot = "T1"
	SlotT2 Slot = "T2"
	SlotT3 Slot = "T3"
	SlotT4 Slot = "T4"
)

// Slots returns all slot identifiers in display order.
func Slots() []Slot {
	return []Slot{SlotB1, SlotB2, SlotB3, SlotB4, SlotT1, SlotT2, SlotT3, SlotT4}
}

// IsValid returns true if s is one of the 8 fixed slots.
func (s Slot) IsValid() bool {
	switch s {
	case SlotB1, SlotB2, SlotB3, SlotB4, SlotT1, SlotT2, SlotT3, SlotT4:
		return true
	}
	return false
}

// ParseSlot parses a slot identifier, case-insensitively.
func ParseSlot(raw string) (Slot, error) {
	s := Slot(strings.ToUpper(strings.TrimSpace(raw)))
	if !s.IsValid() {
		return "", errors.ErrInvalidSlot
	}
	return s, nil
}

// Day is a weekday tag as used in reminder schedules.
type Day string

// The weekday tags, Monday first.
const (
	Mon Day = "Mon"
	Tue Day = "Tue"
	Wed Day = "Wed"
	Thu Day = "Thu"
	Fri Day = "Fri"
	Sat Day = "Sat"
	Sun Day = "Sun"
)

// Days returns all weekday tags, Monday first.
func Days() []Day {
	return []Day{Mon, Tue, Wed, Thu, Fri, Sat, Sun}
}

// dayLabels maps tags to full weekday names for display.
var dayLabels = map[Day]string{
	Mon: "Monday",
	Tue: "Tuesday",
	Wed: "Wednesday",
	Thu: "Thursday",
	Fri: "Friday",
	Sat: "Saturday",
	Sun: "Sunday",
}

// IsValid returns true if d is one of the 7 weekday tags.
func (d Day) IsValid() bool {
	_, ok := dayLabels[d]
	return ok
}

// Label returns the full weekday name.
func (d Day) Label() string {
	return dayLabels[d]
}

// ParseDay parses a weekday tag. It accepts the three-letter tag or
// the full name, case-insensitively.
func ParseDay(raw string) (Day, error) {
	s := strings.TrimSpace(raw)
	if len(s) >= 3 {
		tag := Day(strings.ToUpper(s[:1]) + strings.ToLower(s[1:]))
		if len(s) > 3 {
			for d, label := range dayLabels {
				if strings.EqualFold(s, label) {
					return d, nil
				}
			}
			return "", errors.NewValidationErrorWithField("day", raw,
				"Invalid day", "Use Mon..Sun or a full weekday name")
		}
		if tag.IsValid() {
			return tag, nil
		}
	}
	return "", errors.NewValidationErrorWithField("day", raw,
		"Invalid day", "Use Mon..Sun or a full weekday name")
}

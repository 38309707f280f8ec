// Package parser provides input parsing helpers for TalkDoc.
package parser

import (
	"fmt"
	"regexp"
	"strconv"
	"strings"
	"time"

	"github.com/masonpham16/TalkDoc/internal/errors"
	"github.com/masonpham16/TalkDoc/internal/model"
)

// ClockResult represents the result of parsing a time-of-day string.
type ClockResult struct {
	Time24 string // "HH:MM" 24-hour internal form
	Valid  bool
}

// Accepted clock grammars. Anything else is rejected outright rather
// than guessed at.
var (
	clockAmPmPattern   = regexp.MustCompile(`^(\d{1,2})\s*:\s*(\d{2})\s*(AM|PM)$`)
	clockHourPattern   = regexp.MustCompile(`^(\d{1,2})\s*(AM|PM)$`)
	clock24HourPattern = regexp.MustCompile(`^(\d{1,2})\s*:\s*(\d{2})$`)
)

// ParseClock parses a time-of-day string into the "HH:MM" 24-hour
// internal form. Supported formats:
//   - "8:05 AM", "08:05pm" (12-hour with minutes)
//   - "8 AM", "12 pm" (12-hour, implies :00)
//   - "14:30" (bare 24-hour)
//
// The meridiem marker is case-insensitive. Out-of-range hours or
// minutes are invalid.
func ParseClock(input string) ClockResult {
	s := strings.ToUpper(strings.TrimSpace(input))
	if s == "" {
		return ClockResult{Valid: false}
	}

	if m := clockAmPmPattern.FindStringSubmatch(s); m != nil {
		h, _ := strconv.Atoi(m[1])
		min, _ := strconv.Atoi(m[2])
		t24, err := Encode24(h, min, m[3])
		if err != nil {
			return ClockResult{Valid: false}
		}
		return ClockResult{Time24: t24, Valid: true}
	}

	if m := clockHourPattern.FindStringSubmatch(s); m != nil {
		h, _ := strconv.Atoi(m[1])
		t24, err := Encode24(h, 0, m[2])
		if err != nil {
			return ClockResult{Valid: false}
		}
		return ClockResult{Time24: t24, Valid: true}
	}

	if m := clock24HourPattern.FindStringSubmatch(s); m != nil {
		hh, _ := strconv.Atoi(m[1])
		mm, _ := strconv.Atoi(m[2])
		if hh < 0 || hh > 23 || mm < 0 || mm > 59 {
			return ClockResult{Valid: false}
		}
		return ClockResult{Time24: fmt.Sprintf("%02d:%02d", hh, mm), Valid: true}
	}

	return ClockResult{Valid: false}
}

// Encode24 converts a 12-hour clock reading to the "HH:MM" internal
// form. meridiem must be "AM" or "PM" (case-insensitive).
func Encode24(hour12, minute int, meridiem string) (string, error) {
	ap := strings.ToUpper(strings.TrimSpace(meridiem))
	if ap != "AM" && ap != "PM" {
		return "", errors.ErrInvalidTime
	}
	if hour12 < 1 || hour12 > 12 {
		return "", errors.ErrInvalidTime
	}
	if minute < 0 || minute > 59 {
		return "", errors.ErrInvalidTime
	}

	hh := hour12 % 12
	if ap == "PM" {
		hh += 12
	}
	return fmt.Sprintf("%02d:%02d", hh, minute), nil
}

// Decode24 converts an "HH:MM" internal time to its 12-hour reading.
// It is total over the valid "HH:MM" domain.
func Decode24(t24 string) (hour12, minute int, meridiem string, err error) {
	hh, mm, ok := splitClock(t24)
	if !ok {
		return 0, 0, "", errors.ErrInvalidTime
	}

	meridiem = "AM"
	if hh >= 12 {
		meridiem = "PM"
	}
	hour12 = hh % 12
	if hour12 == 0 {
		hour12 = 12
	}
	return hour12, mm, meridiem, nil
}

// ToAmPm renders an "HH:MM" internal time in 12-hour display form,
// e.g. "08:05" -> "8:05 AM". Invalid input is returned unchanged.
func ToAmPm(t24 string) string {
	h12, mm, ap, err := Decode24(t24)
	if err != nil {
		return t24
	}
	return fmt.Sprintf("%d:%02d %s", h12, mm, ap)
}

// DayMinutes returns every minute of the day in order, "00:00"
// through "23:59".
func DayMinutes() []string {
	out := make([]string, 0, 24*60)
	for h := 0; h < 24; h++ {
		for m := 0; m < 60; m++ {
			out = append(out, fmt.Sprintf("%02d:%02d", h, m))
		}
	}
	return out
}

// DayTag returns the weekday tag for a wall-clock time.
func DayTag(t time.Time) model.Day {
	switch t.Weekday() {
	case time.Monday:
		return model.Mon
	case time.Tuesday:
		return model.Tue
	case time.Wednesday:
		return model.Wed
	case time.Thursday:
		return model.Thu
	case time.Friday:
		return model.Fri
	case time.Saturday:
		return model.Sat
	default:
		return model.Sun
	}
}

// ClockOf returns the "HH:MM" reading of a wall-clock time.
func ClockOf(t time.Time) string {
	return t.Format("15:04")
}

// DateKey returns the calendar-date component of a fired key.
func DateKey(t time.Time) string {
	return t.Format("2006-01-02")
}

func splitClock(t24 string) (hh, mm int, ok bool) {
	parts := strings.SplitN(t24, ":", 2)
	if len(parts) != 2 {
		return 0, 0, false
	}
	hh, err := strconv.Atoi(parts[0])
	if err != nil {
		return 0, 0, false
	}
	mm, err = strconv.Atoi(parts[1])
	if err != nil {
		return 0, 0, false
	}
	if hh < 0 || hh > 23 || mm < 0 || mm > 59 {
		return 0, 0, false
	}
	return hh, mm, true
}

// Package validate provides input validation helpers for TalkDoc.
package validate

import (
	"net/url"
	"strings"
	"unicode/utf8"

	"github.com/masonpham16/TalkDoc/internal/errors"
	"github.com/masonpham16/TalkDoc/internal/model"
	"github.com/masonpham16/TalkDoc/internal/parser"
)

const (
	// MaxItemNameLength is the maximum length for an inventory item name.
	MaxItemNameLength = 128
	// MaxURLLength is the maximum length for a webhook URL.
	MaxURLLength = 2048
	// MaxSpeechTextLength bounds text sent to the synthesis service.
	MaxSpeechTextLength = 4096
)

// ItemName validates an inventory item name. The name must be
// non-empty after trimming.
func ItemName(name string) error {
	if strings.TrimSpace(name) == "" {
		return errors.NewValidationError("Item name cannot be empty", "Enter an item name")
	}
	if utf8.RuneCountInString(name) > MaxItemNameLength {
		return errors.NewValidationErrorWithField("name", name,
			"Item name too long",
			"Item names must be 128 characters or fewer")
	}
	return nil
}

// Quantity validates an inventory quantity.
func Quantity(qty int) error {
	if qty < 0 {
		return errors.NewValidationError("Quantity must be 0 or greater", "Enter a non-negative number")
	}
	return nil
}

// ReminderDays validates and normalizes a day selection: at least one
// day, duplicates dropped, stable Mon..Sun order.
func ReminderDays(days []model.Day) ([]model.Day, error) {
	seen := make(map[model.Day]bool, len(days))
	for _, d := range days {
		if !d.IsValid() {
			return nil, errors.NewValidationErrorWithField("day", string(d),
				"Invalid day", "Use Mon..Sun")
		}
		seen[d] = true
	}

	var out []model.Day
	for _, d := range model.Days() {
		if seen[d] {
			out = append(out, d)
		}
	}
	if len(out) == 0 {
		return nil, errors.ErrNoDaySelected
	}
	return out, nil
}

// ReminderTimes validates and normalizes a time selection: at least
// one time, each a valid clock reading re-encoded to the zero-padded
// "HH:MM" form, duplicates dropped, sorted. The padded form is what
// the minute checker compares against, so unpadded input like "9:00"
// must not be stored verbatim.
func ReminderTimes(times []string) ([]string, error) {
	seen := make(map[string]bool, len(times))
	var out []string
	for _, t := range times {
		h12, minute, meridiem, err := parser.Decode24(t)
		if err != nil {
			return nil, errors.NewValidationErrorWithField("time", t,
				"Invalid time", "Use the 24-hour HH:MM form")
		}
		canonical, err := parser.Encode24(h12, minute, meridiem)
		if err != nil {
			return nil, errors.NewValidationErrorWithField("time", t,
				"Invalid time", "Use the 24-hour HH:MM form")
		}
		if !seen[canonical] {
			seen[canonical] = true
			out = append(out, canonical)
		}
	}
	if len(out) == 0 {
		return nil, errors.ErrNoTimeSelected
	}
	sortTimes(out)
	return out, nil
}

// SpeechText validates text destined for the synthesis service.
func SpeechText(text string) error {
	if strings.TrimSpace(text) == "" {
		return errors.NewValidationError("Missing text", "Provide the text to speak")
	}
	if utf8.RuneCountInString(text) > MaxSpeechTextLength {
		return errors.NewValidationError("Text too long",
			"Speech requests must be 4096 characters or fewer")
	}
	return nil
}

// WebhookURL validates a URL for use as a webhook endpoint.
func WebhookURL(rawURL string) error {
	if rawURL == "" {
		return errors.NewValidationError("URL cannot be empty", "Provide a valid URL")
	}
	if len(rawURL) > MaxURLLength {
		return errors.NewValidationError("URL too long", "URLs must be 2048 characters or fewer")
	}

	parsed, err := url.Parse(rawURL)
	if err != nil || parsed.Hostname() == "" {
		return errors.NewValidationErrorWithField("url", rawURL,
			"Invalid URL format",
			"Provide a valid URL starting with https://")
	}
	if parsed.Scheme != "https" && parsed.Scheme != "http" {
		return errors.NewValidationErrorWithField("url", rawURL,
			"Invalid URL scheme",
			"URLs must use https:// (or http:// for localhost)")
	}
	return nil
}

// "HH:MM" strings sort correctly as plain strings; insertion sort
// keeps the tiny selections cheap.
func sortTimes(ts []string) {
	for i := 1; i < len(ts); i++ {
		for j := i; j > 0 && ts[j] < ts[j-1]; j-- {
			ts[j], ts[j-1] = ts[j-1], ts[j]
		}
	}
}

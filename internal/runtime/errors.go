package runtime

import (
	"github.com/masonpham16/TalkDoc/internal/errors"
)

// Suggestions provides helpful suggestions for common errors.
var Suggestions = map[error]string{
	errors.ErrEmptySlot:        "Use 'talkdoc inventory set' to put an item in the slot first.",
	errors.ErrNoDaySelected:    "Pass at least one --day (Mon..Sun).",
	errors.ErrNoTimeSelected:   "Pass at least one --time (e.g. '8:00 AM' or '20:00').",
	errors.ErrInvalidSlot:      "Slots are B1-B4 and T1-T4.",
	errors.ErrInvalidTime:      "Try formats like '8:05 AM', '12 pm', or '14:30'.",
	errors.ErrReminderNotFound: "Use 'talkdoc remind list' to see reminder IDs.",
	errors.ErrWebhookNotFound:  "Use 'talkdoc webhook list' to see configured webhooks.",
}

// GetSuggestion returns a suggestion for an error, if available.
func GetSuggestion(err error) string {
	if s := errors.Suggestion(err); s != "" {
		return s
	}
	for knownErr, suggestion := range Suggestions {
		if errors.Is(err, knownErr) {
			return suggestion
		}
	}
	return ""
}

// FormatError formats an error with optional suggestion.
func FormatError(err error) string {
	msg := err.Error()
	if suggestion := GetSuggestion(err); suggestion != "" {
		msg += "\n" + suggestion
	}
	return msg
}

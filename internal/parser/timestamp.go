package parser

import (
	"strings"
	"time"

	"github.com/markusmobius/go-dateparser"
)

// TimestampResult holds the parsed timestamp and any error.
type TimestampResult struct {
	Time  time.Time
	Error error
}

// ParseTimestamp parses a natural language timestamp expression such
// as "yesterday", "last monday" or "2026-08-01". It backs the
// --since filter on the notification log; reminder times of day go
// through ParseClock instead, which never guesses.
func ParseTimestamp(input string) TimestampResult {
	input = strings.TrimSpace(input)
	if input == "" || strings.EqualFold(input, "now") {
		return TimestampResult{Time: time.Now()}
	}

	cfg := &dateparser.Configuration{
		CurrentTime: time.Now(),
	}

	result, err := dateparser.Parse(cfg, input)
	if err != nil {
		return TimestampResult{Error: err}
	}

	return TimestampResult{Time: result.Time}
}

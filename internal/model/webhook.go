package model

import (
	"fmt"
	"regexp"
	"strings"
	"time"
)

// Webhook type constants.
const (
	WebhookTypeDiscord = "discord"
	WebhookTypeSlack   = "slack"
	WebhookTypeGeneric = "generic"
)

// Webhook is an outbound notification endpoint. Reminder firings are
// forwarded to every enabled webhook, best-effort, in addition to the
// in-app notification log.
type Webhook struct {
	Key       string    `json:"key"`
	Name      string    `json:"name"`
	Type      string    `json:"type"`
	URL       string    `json:"url"`
	Enabled   bool      `json:"enabled"`
	Template  string    `json:"template,omitempty"` // For generic webhooks
	CreatedAt time.Time `json:"created_at"`
	LastUsed  time.Time `json:"last_used,omitempty"`
	LastError string    `json:"last_error,omitempty"`
}

// SetKey sets the database key for this webhook.
func (w *Webhook) SetKey(key string) {
	w.Key = key
}

// GetKey returns the database key for this webhook.
func (w *Webhook) GetKey() string {
	return w.Key
}

// MaskedURL returns the URL with the secret tail hidden.
func (w *Webhook) MaskedURL() string {
	if len(w.URL) > 40 {
		return w.URL[:30] + "***"
	}
	return w.URL
}

// GenerateWebhookKey generates a database key for a webhook.
func GenerateWebhookKey(name string) string {
	return fmt.Sprintf("%s:%s", PrefixWebhook, name)
}

// NewWebhook creates a new enabled webhook.
func NewWebhook(name, webhookType, url string) *Webhook {
	return &Webhook{
		Key:       GenerateWebhookKey(name),
		Name:      name,
		Type:      webhookType,
		URL:       url,
		Enabled:   true,
		CreatedAt: time.Now(),
	}
}

// ValidWebhookTypes returns the list of valid webhook types.
func ValidWebhookTypes() []string {
	return []string{WebhookTypeDiscord, WebhookTypeSlack, WebhookTypeGeneric}
}

// IsValidWebhookType checks if a type is valid.
func IsValidWebhookType(t string) bool {
	for _, valid := range ValidWebhookTypes() {
		if t == valid {
			return true
		}
	}
	return false
}

// webhookNameRegex validates webhook names (alphanumeric, dash, underscore).
var webhookNameRegex = regexp.MustCompile(`^[a-zA-Z0-9][a-zA-Z0-9_-]*$`)

// IsValidWebhookName checks if a webhook name is valid.
func IsValidWebhookName(name string) bool {
	if len(name) == 0 || len(name) > 50 {
		return false
	}
	return webhookNameRegex.MatchString(name)
}

// DetectWebhookType attempts to detect the webhook type from the URL.
func DetectWebhookType(url string) string {
	urlLower := strings.ToLower(url)

	switch {
	case strings.Contains(urlLower, "discord.com/api/webhooks"):
		return WebhookTypeDiscord
	case strings.Contains(urlLower, "hooks.slack.com"):
		return WebhookTypeSlack
	default:
		return WebhookTypeGeneric
	}
}

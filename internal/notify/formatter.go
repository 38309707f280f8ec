// Package notify provides the in-app notification center and webhook
// dispatch for reminder events.
package notify

import (
	"github.com/masonpham16/TalkDoc/internal/model"
)

// Formatter formats notifications for a specific webhook type.
type Formatter interface {
	// Format converts a notification into the webhook-specific payload.
	Format(n *model.Notification) ([]byte, error)

	// ContentType returns the HTTP Content-Type for the payload.
	ContentType() string
}

// GetFormatter returns the appropriate formatter for a webhook type.
func GetFormatter(webhookType string) Formatter {
	switch webhookType {
	case model.WebhookTypeDiscord:
		return &DiscordFormatter{}
	case model.WebhookTypeSlack:
		return &SlackFormatter{}
	case model.WebhookTypeGeneric:
		return &GenericFormatter{}
	default:
		return &GenericFormatter{}
	}
}

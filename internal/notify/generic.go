package notify

import (
	"bytes"
	"encoding/json"
	"text/template"

	"github.com/masonpham16/TalkDoc/internal/model"
)

// GenericFormatter formats notifications for generic webhooks.
type GenericFormatter struct {
	// Template is an optional custom template for the payload.
	Template string
}

// genericPayload is the default payload for generic webhooks.
type genericPayload struct {
	Title     string                  `json:"title"`
	Body      string                  `json:"body"`
	Timestamp string                  `json:"timestamp"`
	Meta      *model.NotificationMeta `json:"meta,omitempty"`
}

// Format converts a notification to a generic webhook format.
func (f *GenericFormatter) Format(n *model.Notification) ([]byte, error) {
	if f.Template != "" {
		return f.formatWithTemplate(n)
	}

	payload := genericPayload{
		Title:     n.Title,
		Body:      n.Body,
		Timestamp: n.CreatedAt.UTC().Format("2006-01-02T15:04:05Z"),
		Meta:      n.Meta,
	}

	return json.Marshal(payload)
}

// formatWithTemplate uses a custom template to format the notification.
func (f *GenericFormatter) formatWithTemplate(n *model.Notification) ([]byte, error) {
	tmpl, err := template.New("webhook").Parse(f.Template)
	if err != nil {
		return nil, err
	}

	data := map[string]interface{}{
		"Title":     n.Title,
		"Body":      n.Body,
		"Timestamp": n.CreatedAt,
	}
	if n.Meta != nil {
		data["Slot"] = string(n.Meta.Slot)
		data["ItemName"] = n.Meta.ItemName
		data["Day"] = string(n.Meta.Day)
		data["Time"] = n.Meta.Time
	}

	var buf bytes.Buffer
	if err := tmpl.Execute(&buf, data); err != nil {
		return nil, err
	}

	return buf.Bytes(), nil
}

// ContentType returns the content type for generic webhooks.
func (f *GenericFormatter) ContentType() string {
	return "application/json"
}

// NewGenericFormatter creates a new generic formatter with an optional template.
func NewGenericFormatter(template string) *GenericFormatter {
	return &GenericFormatter{Template: template}
}

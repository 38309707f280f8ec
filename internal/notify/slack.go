package notify

import (
	"encoding/json"
	"fmt"

	"github.com/masonpham16/TalkDoc/internal/model"
)

// SlackFormatter formats notifications for Slack webhooks.
type SlackFormatter struct{}

// slackPayload represents a Slack webhook payload.
type slackPayload struct {
	Text   string       `json:"text,omitempty"`
	Blocks []slackBlock `json:"blocks,omitempty"`
}

// slackBlock represents a Slack block.
type slackBlock struct {
	Type   string           `json:"type"`
	Text   *slackBlockText  `json:"text,omitempty"`
	Fields []slackBlockText `json:"fields,omitempty"`
}

// slackBlockText represents text in a Slack block.
type slackBlockText struct {
	Type string `json:"type"`
	Text string `json:"text"`
}

// Format converts a notification to Slack webhook format.
func (f *SlackFormatter) Format(n *model.Notification) ([]byte, error) {
	blocks := []slackBlock{
		{
			Type: "header",
			Text: &slackBlockText{
				Type: "plain_text",
				Text: n.Title,
			},
		},
		{
			Type: "section",
			Text: &slackBlockText{
				Type: "mrkdwn",
				Text: n.Body,
			},
		},
	}

	if n.Meta != nil && n.Meta.Slot != "" {
		fields := []slackBlockText{
			{Type: "mrkdwn", Text: fmt.Sprintf("*Slot*\n%s", n.Meta.Slot)},
		}
		if n.Meta.ItemName != "" {
			fields = append(fields, slackBlockText{
				Type: "mrkdwn", Text: fmt.Sprintf("*Medication*\n%s", n.Meta.ItemName),
			})
		}
		blocks = append(blocks, slackBlock{
			Type:   "section",
			Fields: fields,
		})
	}

	blocks = append(blocks, slackBlock{
		Type: "context",
		Text: &slackBlockText{
			Type: "mrkdwn",
			Text: fmt.Sprintf("TalkDoc | %s", n.CreatedAt.Format("Jan 2, 3:04 PM")),
		},
	})

	payload := slackPayload{
		Text:   fmt.Sprintf("*%s*", n.Title), // Fallback text
		Blocks: blocks,
	}

	return json.Marshal(payload)
}

// ContentType returns the content type for Slack webhooks.
func (f *SlackFormatter) ContentType() string {
	return "application/json"
}

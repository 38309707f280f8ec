// Package assistant relays chat conversations to a hosted
// OpenAI-compatible completion service.
package assistant

import (
	"context"

	openai "github.com/openai/openai-go/v3"
	"github.com/openai/openai-go/v3/option"

	"github.com/masonpham16/TalkDoc/internal/config"
	"github.com/masonpham16/TalkDoc/internal/errors"
)

// SystemPrompt frames every conversation. It is always the first
// message regardless of what the caller sends.
const SystemPrompt = "You are TalkDoc. Give safe general health info. No diagnosis."

// Role constants for chat messages.
const (
	RoleUser      = "user"
	RoleAssistant = "assistant"
	RoleSystem    = "system"
)

// Message is one turn of a conversation.
type Message struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

// Client relays conversations to the completion service.
type Client struct {
	api   openai.Client
	model string
}

// NewClient creates an assistant client from configuration.
func NewClient(cfg config.AssistantConfig) (*Client, error) {
	if cfg.APIKey == "" {
		return nil, errors.NewConfigurationError("chat assistant", config.EnvGroqKey)
	}

	api := openai.NewClient(
		option.WithAPIKey(cfg.APIKey),
		option.WithBaseURL(cfg.BaseURL),
	)

	return &Client{
		api:   api,
		model: cfg.Model,
	}, nil
}

// Complete sends the conversation, prefixed with the system prompt,
// and returns the assistant's reply. An empty reply from the service
// comes back as "No reply" rather than an error.
func (c *Client) Complete(ctx context.Context, history []Message) (string, error) {
	msgs := make([]openai.ChatCompletionMessageParamUnion, 0, len(history)+1)
	msgs = append(msgs, openai.SystemMessage(SystemPrompt))

	for _, m := range history {
		switch m.Role {
		case RoleAssistant:
			msgs = append(msgs, openai.AssistantMessage(m.Content))
		case RoleSystem:
			msgs = append(msgs, openai.SystemMessage(m.Content))
		default:
			msgs = append(msgs, openai.UserMessage(m.Content))
		}
	}

	resp, err := c.api.Chat.Completions.New(ctx, openai.ChatCompletionNewParams{
		Messages: msgs,
		Model:    c.model,
	})
	if err != nil {
		return "", errors.NewUpstreamError("chat assistant", err.Error())
	}

	if len(resp.Choices) == 0 || resp.Choices[0].Message.Content == "" {
		return "No reply", nil
	}

	return resp.Choices[0].Message.Content, nil
}

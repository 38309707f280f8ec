package notify

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/masonpham16/TalkDoc/internal/config"
	"github.com/masonpham16/TalkDoc/internal/model"
	"github.com/masonpham16/TalkDoc/internal/storage"
)

// Dispatcher forwards notifications to all enabled webhooks.
// Delivery is best-effort: a failing webhook never blocks the in-app
// notification log.
type Dispatcher struct {
	webhookRepo *storage.WebhookRepo
	httpClient  *HTTPClient
}

// NewDispatcher creates a new notification dispatcher.
func NewDispatcher(webhookRepo *storage.WebhookRepo, cfg config.HTTPConfig) *Dispatcher {
	return &Dispatcher{
		webhookRepo: webhookRepo,
		httpClient:  NewHTTPClient(cfg),
	}
}

// DispatchResult contains the result of dispatching to a single webhook.
type DispatchResult struct {
	WebhookName string
	Success     bool
	StatusCode  int
	Duration    time.Duration
	Error       error
}

// SendNotification forwards a notification to all enabled webhooks
// concurrently.
func (d *Dispatcher) SendNotification(ctx context.Context, n *model.Notification) []DispatchResult {
	webhooks, err := d.webhookRepo.ListEnabled()
	if err != nil {
		return []DispatchResult{{
			WebhookName: "all",
			Success:     false,
			Error:       fmt.Errorf("failed to list webhooks: %w", err),
		}}
	}

	if len(webhooks) == 0 {
		return nil
	}

	var wg sync.WaitGroup
	results := make([]DispatchResult, len(webhooks))

	for i, webhook := range webhooks {
		wg.Add(1)
		go func(idx int, wh *model.Webhook) {
			defer wg.Done()
			results[idx] = d.sendToWebhook(ctx, n, wh)
		}(i, webhook)
	}

	wg.Wait()
	return results
}

// sendToWebhook delivers a notification to a single webhook.
func (d *Dispatcher) sendToWebhook(ctx context.Context, n *model.Notification, webhook *model.Webhook) DispatchResult {
	result := DispatchResult{
		WebhookName: webhook.Name,
	}

	var formatter Formatter
	if webhook.Type == model.WebhookTypeGeneric && webhook.Template != "" {
		formatter = NewGenericFormatter(webhook.Template)
	} else {
		formatter = GetFormatter(webhook.Type)
	}

	payload, err := formatter.Format(n)
	if err != nil {
		result.Error = fmt.Errorf("failed to format notification: %w", err)
		d.updateWebhookStatus(webhook.Name, result.Error)
		return result
	}

	sendResult := d.httpClient.Send(ctx, webhook.URL, formatter.ContentType(), payload)

	result.StatusCode = sendResult.StatusCode
	result.Duration = sendResult.Duration
	result.Error = sendResult.Error
	result.Success = sendResult.Error == nil

	d.updateWebhookStatus(webhook.Name, sendResult.Error)

	return result
}

// updateWebhookStatus records the delivery outcome. Status bookkeeping
// failures are ignored.
func (d *Dispatcher) updateWebhookStatus(name string, err error) {
	_ = d.webhookRepo.UpdateLastUsed(name, err)
}

// SendToSingle forwards a notification to one webhook by name.
func (d *Dispatcher) SendToSingle(ctx context.Context, n *model.Notification, webhookName string) DispatchResult {
	webhook, err := d.webhookRepo.Get(webhookName)
	if err != nil {
		return DispatchResult{
			WebhookName: webhookName,
			Success:     false,
			Error:       fmt.Errorf("webhook not found: %w", err),
		}
	}

	return d.sendToWebhook(ctx, n, webhook)
}

// TestWebhook sends a test notification to a specific webhook.
func (d *Dispatcher) TestWebhook(ctx context.Context, webhookName string) DispatchResult {
	n := model.NewNotification(
		"TalkDoc Test",
		"This is a test notification from TalkDoc. If you see this, your webhook is configured correctly!",
	)
	return d.SendToSingle(ctx, n, webhookName)
}

// HasEnabledWebhooks returns true if there are any enabled webhooks.
func (d *Dispatcher) HasEnabledWebhooks() bool {
	webhooks, err := d.webhookRepo.ListEnabled()
	if err != nil {
		return false
	}
	return len(webhooks) > 0
}

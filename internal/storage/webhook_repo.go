package storage

import (
	"time"

	"github.com/masonpham16/TalkDoc/internal/errors"
	"github.com/masonpham16/TalkDoc/internal/model"
)

// WebhookRepo provides operations for webhook configurations.
type WebhookRepo struct {
	db *DB
}

// NewWebhookRepo creates a new webhook repository.
func NewWebhookRepo(db *DB) *WebhookRepo {
	return &WebhookRepo{db: db}
}

// Create persists a webhook. Names are unique; creating over an
// existing name fails.
func (r *WebhookRepo) Create(w *model.Webhook) error {
	exists, err := r.db.Exists(w.GetKey())
	if err != nil {
		return err
	}
	if exists {
		return errors.NewValidationError("webhook already exists: "+w.Name,
			"use a different name or delete the existing webhook first")
	}
	return r.db.Set(w)
}

// Get retrieves a webhook by name.
func (r *WebhookRepo) Get(name string) (*model.Webhook, error) {
	w := &model.Webhook{}
	if err := r.db.Get(model.GenerateWebhookKey(name), w); err != nil {
		if IsErrKeyNotFound(err) {
			return nil, errors.ErrWebhookNotFound
		}
		return nil, err
	}
	return w, nil
}

// List retrieves all webhooks.
func (r *WebhookRepo) List() ([]*model.Webhook, error) {
	return GetAllByPrefix(r.db, model.PrefixWebhook+":", func() *model.Webhook {
		return &model.Webhook{}
	})
}

// ListEnabled retrieves all enabled webhooks.
func (r *WebhookRepo) ListEnabled() ([]*model.Webhook, error) {
	all, err := r.List()
	if err != nil {
		return nil, err
	}

	var enabled []*model.Webhook
	for _, w := range all {
		if w.Enabled {
			enabled = append(enabled, w)
		}
	}
	return enabled, nil
}

// Update persists changes to an existing webhook.
func (r *WebhookRepo) Update(w *model.Webhook) error {
	exists, err := r.db.Exists(w.GetKey())
	if err != nil {
		return err
	}
	if !exists {
		return errors.ErrWebhookNotFound
	}
	return r.db.Set(w)
}

// UpdateLastUsed records the delivery outcome for a webhook.
func (r *WebhookRepo) UpdateLastUsed(name string, deliveryErr error) error {
	w, err := r.Get(name)
	if err != nil {
		return err
	}

	w.LastUsed = time.Now()
	if deliveryErr != nil {
		w.LastError = deliveryErr.Error()
	} else {
		w.LastError = ""
	}
	return r.db.Set(w)
}

// Delete removes a webhook by name.
func (r *WebhookRepo) Delete(name string) error {
	key := model.GenerateWebhookKey(name)
	exists, err := r.db.Exists(key)
	if err != nil {
		return err
	}
	if !exists {
		return errors.ErrWebhookNotFound
	}
	return r.db.Delete(key)
}

package model

import (
	"fmt"
	"time"
)

// NotificationMeta carries optional context about what produced a
// notification, mirroring the original reminder-fire payload.
type NotificationMeta struct {
	ReminderID string `json:"reminder_id,omitempty"`
	Slot       Slot   `json:"slot,omitempty"`
	ItemName   string `json:"item_name,omitempty"`
	Day        Day    `json:"day,omitempty"`
	Time       string `json:"time,omitempty"`
}

// Notification is one entry in the in-app notification log. Records
// are only ever mutated to flip Read to true, in bulk; they are never
// individually deleted.
type Notification struct {
	Key       string            `json:"key"`
	Title     string            `json:"title"`
	Body      string            `json:"body"`
	CreatedAt time.Time         `json:"created_at"`
	Read      bool              `json:"read"`
	Meta      *NotificationMeta `json:"meta,omitempty"`
}

// SetKey sets the database key for this notification.
func (n *Notification) SetKey(key string) {
	n.Key = key
}

// GetKey returns the database key for this notification.
func (n *Notification) GetKey() string {
	return n.Key
}

// NewNotification creates an unread notification stamped with the
// current time.
func NewNotification(title, body string) *Notification {
	return &Notification{
		Title:     title,
		Body:      body,
		CreatedAt: time.Now(),
		Read:      false,
	}
}

// WithMeta attaches reminder context to the notification.
func (n *Notification) WithMeta(meta *NotificationMeta) *Notification {
	n.Meta = meta
	return n
}

// GenerateNotificationKey generates a database key for a notification
// using UUID.
func GenerateNotificationKey(uuid string) string {
	return fmt.Sprintf("%s:%s", PrefixNotification, uuid)
}
